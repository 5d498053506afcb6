// Package sheets provides the tabular storage capability backing the master
// resume and the selection staging table. Column positions are the wire
// contract for reads; header-name-to-index mapping is resolved by consumers.
package sheets

import "fmt"

// ErrTableNotFound is returned when a named table does not exist in the store.
var ErrTableNotFound = fmt.Errorf("table not found")

// Store is the tabular storage contract used by the pipeline.
type Store interface {
	// ReadAllRows returns every row of the named table, top to bottom.
	ReadAllRows(table string) ([][]string, error)
	// WriteRows writes rows starting at the 1-based startRow, overwriting
	// whatever is there.
	WriteRows(table string, rows [][]string, startRow int) error
	// CreateOrReplaceTable creates the named table with the given header row,
	// dropping any existing table of the same name.
	CreateOrReplaceTable(name string, header []string) error
}
