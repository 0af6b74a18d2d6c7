package xltab

import "fmt"

// Table is an ordered 2-D grid of values and expressions with named
// columns. Tables are identified by a name unique within a workbook so
// other tables can reference their columns and cells symbolically.
//
// A cell holds either a literal value or an Expr; expressions are kept
// symbolic until the workbook is resolved.
type Table struct {
	name     string
	columns  []string
	colIndex map[string]int
	rows     [][]any
	header   bool
}

// NewTable creates an empty table with the given name and ordered column
// names. Column names must be unique within the table.
func NewTable(name string, columns []string, opts ...TableOption) (*Table, error) {
	if name == "" {
		return nil, fmt.Errorf("table must have a name")
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("table %q must have at least one column", name)
	}
	idx := make(map[string]int, len(columns))
	for i, c := range columns {
		if _, dup := idx[c]; dup {
			return nil, fmt.Errorf("table %q: duplicate column %q", name, c)
		}
		idx[c] = i
	}
	t := &Table{
		name:     name,
		columns:  append([]string(nil), columns...),
		colIndex: idx,
		header:   true,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Name returns the table name.
func (t *Table) Name() string { return t.name }

// Columns returns the ordered column names.
func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

// RowCount returns the number of data rows.
func (t *Table) RowCount() int { return len(t.rows) }

// Width returns the number of columns.
func (t *Table) Width() int { return len(t.columns) }

// Height returns the total number of rows including the header.
func (t *Table) Height() int { return len(t.rows) + t.HeaderHeight() }

// HeaderHeight returns 1 when the column names are written out, 0 otherwise.
func (t *Table) HeaderHeight() int {
	if t.header {
		return 1
	}
	return 0
}

// AddRow appends a data row. Each cell may be a literal value or an Expr.
// The number of cells must match the number of columns.
func (t *Table) AddRow(cells ...any) error {
	if len(cells) != len(t.columns) {
		return fmt.Errorf("table %q: row has %d cells, want %d", t.name, len(cells), len(t.columns))
	}
	t.rows = append(t.rows, append([]any(nil), cells...))
	return nil
}

// SetCell overwrites a single cell. The row must already exist.
func (t *Table) SetCell(row int, column string, v any) error {
	if row < 0 || row >= len(t.rows) {
		return &RowOffsetError{Table: t.name, Column: column, Offset: row, Rows: len(t.rows)}
	}
	i, err := t.ColumnOffset(column)
	if err != nil {
		return err
	}
	t.rows[row][i] = v
	return nil
}

// CellValue returns the raw (unresolved) content of a cell.
func (t *Table) CellValue(row int, column string) (any, error) {
	if row < 0 || row >= len(t.rows) {
		return nil, &RowOffsetError{Table: t.name, Column: column, Offset: row, Rows: len(t.rows)}
	}
	i, err := t.ColumnOffset(column)
	if err != nil {
		return nil, err
	}
	return t.rows[row][i], nil
}

// ColumnOffset returns the 0-based ordinal of the named column.
func (t *Table) ColumnOffset(column string) (int, error) {
	i, ok := t.colIndex[column]
	if !ok {
		return 0, &ColumnNotFoundError{Table: t.name, Column: column}
	}
	return i, nil
}

// FillColumn sets a whole column from a slice of values, appending rows
// as needed. Convenient when building tables column by column.
func (t *Table) FillColumn(column string, values []any) error {
	i, err := t.ColumnOffset(column)
	if err != nil {
		return err
	}
	for len(t.rows) < len(values) {
		t.rows = append(t.rows, make([]any, len(t.columns)))
	}
	for r, v := range values {
		t.rows[r][i] = v
	}
	return nil
}
