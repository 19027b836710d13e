package models

import (
	"fmt"

	"github.com/tiendc/go-deepcopy"
)

// Table is a rectangular grid of rows over named columns.
type Table struct {
	// Columns holds the header labels in column order. Names may repeat.
	Columns []Label
	// Rows holds cell values in column order. Values are int64, float64,
	// string, bool or nil.
	Rows [][]any
}

// NewTable creates a table with simple column names and the given rows.
func NewTable(columns []string, rows ...[]any) *Table {
	return &Table{Columns: Labels(columns...), Rows: rows}
}

// NumRows returns the number of data rows.
func (t *Table) NumRows() int {
	return len(t.Rows)
}

// NumColumns returns the number of columns.
func (t *Table) NumColumns() int {
	return len(t.Columns)
}

// ColumnNames returns the flattened name of every column.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Flatten()
	}
	return names
}

// ColumnIndex returns the position of the first column whose flattened name
// equals name, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c.Flatten() == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether a column with the flattened name exists.
func (t *Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// Column returns the values of the first column named name.
func (t *Table) Column(name string) ([]any, bool) {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return nil, false
	}
	values := make([]any, len(t.Rows))
	for i, row := range t.Rows {
		if idx < len(row) {
			values[i] = row[idx]
		}
	}
	return values, true
}

// Value returns the cell at row r in column c, or nil when the row is short.
func (t *Table) Value(r, c int) any {
	row := t.Rows[r]
	if c < 0 || c >= len(row) {
		return nil
	}
	return row[c]
}

// Validate returns an error describing the first row whose width differs
// from the number of columns.
func (t *Table) Validate() error {
	for i, row := range t.Rows {
		if len(row) != len(t.Columns) {
			return fmt.Errorf("row %d has %d values, expected %d", i, len(row), len(t.Columns))
		}
	}
	return nil
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() (*Table, error) {
	var out Table
	if err := deepcopy.Copy(&out, *t); err != nil {
		return nil, fmt.Errorf("clone table: %w", err)
	}
	return &out, nil
}
