package xltab

// ResolvedCell is one cell of the resolved output grid: an absolute
// position holding either a literal value or final formula text.
type ResolvedCell struct {
	Row     int
	Col     int
	Value   any    // literal value; nil for formula cells
	Formula string // formula text including the leading "="; empty for literals
}

// IsFormula reports whether the cell holds resolved formula text.
func (c ResolvedCell) IsFormula() bool { return c.Formula != "" }

// TableExtent is the boundary metadata of one placed table, handed to the
// backend alongside the cells for downstream styling or borders.
type TableExtent struct {
	Name string
	Area AreaRef
}

// ResolvedSheet is the per-sheet output of a resolution pass: cells in
// table-insertion order (header first, then data rows row-major, then
// free-standing values), plus the extent of every table on the sheet.
type ResolvedSheet struct {
	Name   string
	Cells  []ResolvedCell
	Tables []TableExtent
}

// resolveSheet rewrites every formula cell on the sheet against the
// symbol table. Any reference failure aborts with a ResolutionError
// naming the owning table and cell; no partial sheet is produced.
func resolveSheet(s *Sheet, syms *SymbolTable) (*ResolvedSheet, error) {
	rs := &ResolvedSheet{Name: s.name}

	for _, p := range s.placements {
		t := p.Table
		rs.Tables = append(rs.Tables, TableExtent{Name: t.Name(), Area: p.Area(s.name)})

		if t.header {
			for j, col := range t.columns {
				rs.Cells = append(rs.Cells, ResolvedCell{Row: p.Row, Col: p.Col + j, Value: col})
			}
		}

		dataTop := p.Row + t.HeaderHeight()
		for i, row := range t.rows {
			for j, cell := range row {
				abs := ResolvedCell{Row: dataTop + i, Col: p.Col + j}
				switch v := cell.(type) {
				case nil:
					continue
				case Expr:
					rc := &resolveCtx{syms: syms, owner: t.name, rowOffset: i}
					formula, err := formulaText(v, rc)
					if err != nil {
						return nil, &ResolutionError{
							Sheet: s.name, Table: t.name,
							Row: abs.Row, Col: abs.Col, Err: err,
						}
					}
					abs.Formula = formula
				default:
					abs.Value = v
				}
				rs.Cells = append(rs.Cells, abs)
			}
		}
	}

	for _, sv := range s.values {
		abs := ResolvedCell{Row: sv.row, Col: sv.col}
		switch v := sv.value.(type) {
		case nil:
			continue
		case Expr:
			rc := &resolveCtx{syms: syms}
			formula, err := formulaText(v, rc)
			if err != nil {
				return nil, &ResolutionError{Sheet: s.name, Row: sv.row, Col: sv.col, Err: err}
			}
			abs.Formula = formula
		default:
			abs.Value = v
		}
		rs.Cells = append(rs.Cells, abs)
	}

	return rs, nil
}
