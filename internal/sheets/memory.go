package sheets

import "fmt"

// Memory is an in-memory Store used by tests and dry runs.
type Memory struct {
	tables map[string][][]string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{tables: make(map[string][][]string)}
}

// Seed installs a table with the given rows, replacing any existing content.
func (m *Memory) Seed(name string, rows [][]string) {
	copied := make([][]string, len(rows))
	for i, row := range rows {
		copied[i] = append([]string(nil), row...)
	}
	m.tables[name] = copied
}

// ReadAllRows returns every row of the named table.
func (m *Memory) ReadAllRows(table string) ([][]string, error) {
	rows, ok := m.tables[table]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, table)
	}
	copied := make([][]string, len(rows))
	for i, row := range rows {
		copied[i] = append([]string(nil), row...)
	}
	return copied, nil
}

// WriteRows writes rows starting at the 1-based startRow, growing the table as needed.
func (m *Memory) WriteRows(table string, rows [][]string, startRow int) error {
	existing, ok := m.tables[table]
	if !ok {
		return fmt.Errorf("%w: %s", ErrTableNotFound, table)
	}
	if startRow < 1 {
		return fmt.Errorf("start row must be 1-based, got %d", startRow)
	}

	for i, row := range rows {
		idx := startRow - 1 + i
		for len(existing) <= idx {
			existing = append(existing, nil)
		}
		existing[idx] = append([]string(nil), row...)
	}
	m.tables[table] = existing
	return nil
}

// CreateOrReplaceTable resets the named table to just the header row.
func (m *Memory) CreateOrReplaceTable(name string, header []string) error {
	if len(header) > 0 {
		m.tables[name] = [][]string{append([]string(nil), header...)}
	} else {
		m.tables[name] = nil
	}
	return nil
}
