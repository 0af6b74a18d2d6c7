package xltab

import "fmt"

// Placement records where a table lands on a sheet: its top-left anchor
// and whether the anchor was supplied explicitly or assigned by flow.
type Placement struct {
	Table    *Table
	Row      int // 0-based anchor row (header row when the table has one)
	Col      int // 0-based anchor column
	Explicit bool
}

// Area returns the rectangle the placement occupies on the given sheet,
// header included.
func (p *Placement) Area(sheet string) AreaRef {
	return NewAreaRef(
		NewCellRef(sheet, p.Row, p.Col),
		NewCellRef(sheet, p.Row+p.Table.Height()-1, p.Col+p.Table.Width()-1),
	)
}

// sheetValue is a free-standing cell placed directly on a sheet, outside
// any table. The value may be a literal or an Expr naming tables
// explicitly.
type sheetValue struct {
	row, col int
	value    any
}

// Sheet is an ordered collection of table placements and free-standing
// values. Tables are placed when added; placement errors surface at the
// construction site rather than at resolution time.
type Sheet struct {
	name       string
	placements []*Placement
	byName     map[string]*Placement
	values     []sheetValue
	nextRow    int
}

// NewSheet creates an empty sheet with the given name.
func NewSheet(name string) *Sheet {
	return &Sheet{
		name:   name,
		byName: make(map[string]*Placement),
	}
}

// Name returns the sheet name.
func (s *Sheet) Name() string { return s.name }

// AddTable places a table on the sheet and returns its anchor (row, col).
//
// With an explicit At anchor the table goes exactly there, validated for
// overlap against every table already on the sheet. Without one the table
// flows to the first free row: directly below the lowest occupied row of
// any previously placed table, leaving a blank-row gap (default 1,
// configurable with WithRowGap). AtCol shifts a flowed table's column.
func (s *Sheet) AddTable(t *Table, opts ...PlaceOption) (row, col int, err error) {
	if _, dup := s.byName[t.Name()]; dup {
		return 0, 0, &DuplicateTableError{Table: t.Name(), Sheet: s.name}
	}

	po := placeOpts{rowGap: 1}
	for _, opt := range opts {
		opt(&po)
	}
	if !po.explicit {
		po.row = s.nextRow
	}
	if po.row < 0 || po.col < 0 {
		return 0, 0, fmt.Errorf("table %q: negative anchor (%d,%d)", t.Name(), po.row, po.col)
	}

	p := &Placement{Table: t, Row: po.row, Col: po.col, Explicit: po.explicit}
	area := p.Area(s.name)
	for _, prev := range s.placements {
		if area.Intersects(prev.Area(s.name)) {
			return 0, 0, &OverlapError{
				Sheet: s.name,
				Table: t.Name(),
				Other: prev.Table.Name(),
				Area:  area,
			}
		}
	}

	s.placements = append(s.placements, p)
	s.byName[t.Name()] = p
	if next := po.row + t.Height() + po.rowGap; next > s.nextRow {
		s.nextRow = next
	}
	return po.row, po.col, nil
}

// AddValue writes a single cell directly on the sheet at (row, col).
// The value may be a literal or an Expr; an Expr must reference tables
// by explicit name since the cell has no owning table.
func (s *Sheet) AddValue(row, col int, v any) {
	s.values = append(s.values, sheetValue{row: row, col: col, value: v})
}

// NextRow returns the row the next auto-placed table would start at.
func (s *Sheet) NextRow() int { return s.nextRow }

// TablePos returns the anchor of the named table.
func (s *Sheet) TablePos(name string) (row, col int, err error) {
	p, ok := s.byName[name]
	if !ok {
		return 0, 0, &UnknownTableError{Table: name}
	}
	return p.Row, p.Col, nil
}

// Placements returns the sheet's placements in addition order.
func (s *Sheet) Placements() []*Placement {
	return append([]*Placement(nil), s.placements...)
}
