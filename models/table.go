// File: models/table.go
package models

// Cell is a single column/value pair of a table row.
type Cell struct {
	Column string `json:"column"`
	Value  string `json:"value"`
}

// TableRow is an ordered mapping from column name to value.
type TableRow []Cell

// NewRow builds a row from alternating column/value arguments.
func NewRow(pairs ...string) TableRow {
	row := make(TableRow, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		row = append(row, Cell{Column: pairs[i], Value: pairs[i+1]})
	}
	return row
}

// Get returns the value stored under column.
func (r TableRow) Get(column string) (string, bool) {
	for _, c := range r {
		if c.Column == column {
			return c.Value, true
		}
	}
	return "", false
}

// Columns lists the row's column names in order.
func (r TableRow) Columns() []string {
	cols := make([]string, len(r))
	for i, c := range r {
		cols[i] = c.Column
	}
	return cols
}
