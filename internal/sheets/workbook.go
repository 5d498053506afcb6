package sheets

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Workbook is an excelize-backed Store where each table is a worksheet.
type Workbook struct {
	file *excelize.File
	path string
}

// OpenWorkbook opens an existing .xlsx workbook.
func OpenWorkbook(path string) (*Workbook, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	return &Workbook{file: file, path: path}, nil
}

// NewWorkbook creates a fresh workbook that will be saved to path.
func NewWorkbook(path string) *Workbook {
	return &Workbook{file: excelize.NewFile(), path: path}
}

// ReadAllRows returns every row of the named worksheet.
func (w *Workbook) ReadAllRows(table string) ([][]string, error) {
	if idx, err := w.file.GetSheetIndex(table); err != nil || idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, table)
	}

	rows, err := w.file.GetRows(table)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows from %s: %w", table, err)
	}
	return rows, nil
}

// WriteRows writes rows starting at the 1-based startRow.
func (w *Workbook) WriteRows(table string, rows [][]string, startRow int) error {
	if idx, err := w.file.GetSheetIndex(table); err != nil || idx < 0 {
		return fmt.Errorf("%w: %s", ErrTableNotFound, table)
	}
	if startRow < 1 {
		return fmt.Errorf("start row must be 1-based, got %d", startRow)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, startRow+i)
		if err != nil {
			return fmt.Errorf("failed to compute cell coordinates: %w", err)
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := w.file.SetSheetRow(table, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d to %s: %w", startRow+i, table, err)
		}
	}
	return nil
}

// CreateOrReplaceTable drops any existing worksheet of the same name and
// recreates it with the given header row.
func (w *Workbook) CreateOrReplaceTable(name string, header []string) error {
	if idx, err := w.file.GetSheetIndex(name); err == nil && idx >= 0 {
		if err := w.file.DeleteSheet(name); err != nil {
			return fmt.Errorf("failed to drop existing sheet %s: %w", name, err)
		}
	}
	if _, err := w.file.NewSheet(name); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", name, err)
	}
	if len(header) > 0 {
		return w.WriteRows(name, [][]string{header}, 1)
	}
	return nil
}

// Save persists the workbook back to its path.
func (w *Workbook) Save() error {
	if err := w.file.SaveAs(w.path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", w.path, err)
	}
	return nil
}

// Close releases the underlying file handle.
func (w *Workbook) Close() error {
	return w.file.Close()
}
