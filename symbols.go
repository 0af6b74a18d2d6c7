package xltab

import "fmt"

// SymbolTable maps table and column names to absolute sheet positions.
// It is built exactly once per resolution pass, after every placement is
// final, and is read-only afterwards. Lookups are hash-based per table;
// cell and range addresses are computed from the entry's anchor and the
// table's own dimensions rather than enumerated cell by cell.
type SymbolTable struct {
	entries map[string]*symbolEntry
}

type symbolEntry struct {
	table *Table
	sheet string
	top   int
	left  int
}

// buildSymbolTable indexes every placement across all sheets, rejecting
// duplicate table names since references resolve by name alone.
func buildSymbolTable(sheets []*Sheet) (*SymbolTable, error) {
	st := &SymbolTable{entries: make(map[string]*symbolEntry)}
	for _, sh := range sheets {
		for _, p := range sh.placements {
			name := p.Table.Name()
			if _, dup := st.entries[name]; dup {
				return nil, &DuplicateTableError{Table: name, Sheet: sh.name}
			}
			st.entries[name] = &symbolEntry{
				table: p.Table,
				sheet: sh.name,
				top:   p.Row,
				left:  p.Col,
			}
		}
	}
	return st, nil
}

func (st *SymbolTable) lookup(name string) (*symbolEntry, error) {
	if name == "" {
		return nil, &UnknownTableError{}
	}
	e, ok := st.entries[name]
	if !ok {
		return nil, &UnknownTableError{Table: name}
	}
	return e, nil
}

// cellAddr returns the absolute address of the cell at the given data row
// offset of a column: anchor row + header height + offset.
func (st *SymbolTable) cellAddr(table, column string, offset int, fixed bool) (string, error) {
	e, err := st.lookup(table)
	if err != nil {
		return "", err
	}
	colOff, err := e.table.ColumnOffset(column)
	if err != nil {
		return "", err
	}
	if offset < 0 || offset >= e.table.RowCount() {
		return "", &RowOffsetError{Table: table, Column: column, Offset: offset, Rows: e.table.RowCount()}
	}
	row := e.top + e.table.HeaderHeight() + offset
	return NewCellRef(e.sheet, row, e.left+colOff).Addr(fixed), nil
}

// columnRange returns the fixed range covering a whole column, optionally
// including the header row.
func (st *SymbolTable) columnRange(table, column string, header bool) (string, error) {
	e, err := st.lookup(table)
	if err != nil {
		return "", err
	}
	colOff, err := e.table.ColumnOffset(column)
	if err != nil {
		return "", err
	}
	first, last, err := st.rowSpan(e, header)
	if err != nil {
		return "", err
	}
	area := NewAreaRef(
		NewCellRef(e.sheet, first, e.left+colOff),
		NewCellRef(e.sheet, last, e.left+colOff),
	)
	return area.RangeAddr(true), nil
}

// tableRange returns the fixed range covering the table's full data
// rectangle, optionally including the header row.
func (st *SymbolTable) tableRange(name string, header bool) (string, error) {
	e, err := st.lookup(name)
	if err != nil {
		return "", err
	}
	first, last, err := st.rowSpan(e, header)
	if err != nil {
		return "", err
	}
	area := NewAreaRef(
		NewCellRef(e.sheet, first, e.left),
		NewCellRef(e.sheet, last, e.left+e.table.Width()-1),
	)
	return area.RangeAddr(true), nil
}

func (st *SymbolTable) rowSpan(e *symbolEntry, header bool) (first, last int, err error) {
	first = e.top + e.table.HeaderHeight()
	if header {
		first = e.top
	}
	last = e.top + e.table.Height() - 1
	if last < first {
		return 0, 0, fmt.Errorf("table %q has no rows to reference", e.table.Name())
	}
	return first, last, nil
}
