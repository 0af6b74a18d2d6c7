package xltab

import "fmt"

// Workbook is an ordered collection of sheets. Callers add all sheets and
// tables first, then resolve; resolution assigns nothing and mutates
// nothing, it derives an addressed view of the symbolic source, so
// resolving the same workbook twice yields identical output.
type Workbook struct {
	sheets []*Sheet
	byName map[string]*Sheet
}

// NewWorkbook creates an empty workbook.
func NewWorkbook() *Workbook {
	return &Workbook{byName: make(map[string]*Sheet)}
}

// AddSheet appends a sheet. Sheet names must be unique.
func (wb *Workbook) AddSheet(s *Sheet) error {
	if _, dup := wb.byName[s.name]; dup {
		return fmt.Errorf("duplicate sheet name %q", s.name)
	}
	wb.sheets = append(wb.sheets, s)
	wb.byName[s.name] = s
	return nil
}

// NewSheet creates a sheet, adds it to the workbook and returns it.
func (wb *Workbook) NewSheet(name string) (*Sheet, error) {
	s := NewSheet(name)
	if err := wb.AddSheet(s); err != nil {
		return nil, err
	}
	return s, nil
}

// Sheet returns the named sheet, or nil if absent.
func (wb *Workbook) Sheet(name string) *Sheet {
	return wb.byName[name]
}

// Sheets returns the sheets in insertion order.
func (wb *Workbook) Sheets() []*Sheet {
	return append([]*Sheet(nil), wb.sheets...)
}

// Resolve runs the full resolution pass: index every placement into a
// symbol table, then rewrite every formula cell of every sheet into
// concrete address syntax. The whole workbook fails as a unit; on error
// no partial output is returned.
func (wb *Workbook) Resolve() ([]*ResolvedSheet, error) {
	syms, err := buildSymbolTable(wb.sheets)
	if err != nil {
		return nil, err
	}
	resolved := make([]*ResolvedSheet, 0, len(wb.sheets))
	for _, s := range wb.sheets {
		rs, err := resolveSheet(s, syms)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, rs)
	}
	return resolved, nil
}

// Render resolves the workbook and feeds the resolved grid to the
// backend writer, sheet by sheet in insertion order. Nothing is written
// when resolution fails.
func (wb *Workbook) Render(w CellWriter) error {
	resolved, err := wb.Resolve()
	if err != nil {
		return err
	}
	for _, rs := range resolved {
		if err := w.AddSheet(rs.Name); err != nil {
			return fmt.Errorf("add sheet %q: %w", rs.Name, err)
		}
		for _, c := range rs.Cells {
			if c.IsFormula() {
				if err := w.WriteFormula(rs.Name, c.Row, c.Col, c.Formula); err != nil {
					return fmt.Errorf("write formula at %s: %w", NewCellRef(rs.Name, c.Row, c.Col), err)
				}
				continue
			}
			if err := w.WriteValue(rs.Name, c.Row, c.Col, c.Value); err != nil {
				return fmt.Errorf("write value at %s: %w", NewCellRef(rs.Name, c.Row, c.Col), err)
			}
		}
		for _, te := range rs.Tables {
			if err := w.MarkTable(rs.Name, te); err != nil {
				return fmt.Errorf("mark table %q: %w", te.Name, err)
			}
		}
	}
	return nil
}
