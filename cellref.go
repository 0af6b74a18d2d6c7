package xltab

import (
	"fmt"
	"strings"
)

// CellRef identifies a single cell by sheet name and 0-based coordinates.
type CellRef struct {
	Sheet string // sheet name (empty = unqualified)
	Row   int    // 0-based row index
	Col   int    // 0-based column index
}

// NewCellRef creates a CellRef with explicit sheet, row, col.
func NewCellRef(sheet string, row, col int) CellRef {
	return CellRef{Sheet: sheet, Row: row, Col: col}
}

// ParseCellRef parses a cell reference string like "A1", "Sheet1!B5", or "$A$1".
func ParseCellRef(s string) (CellRef, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return CellRef{}, fmt.Errorf("empty cell reference")
	}

	var sheet string
	cellPart := s
	if idx := strings.LastIndex(s, "!"); idx >= 0 {
		sheet = strings.Trim(s[:idx], "'")
		cellPart = s[idx+1:]
	}

	cellPart = strings.ReplaceAll(cellPart, "$", "")
	if cellPart == "" {
		return CellRef{}, fmt.Errorf("invalid cell reference: %q", s)
	}

	i := 0
	for i < len(cellPart) && isAlpha(cellPart[i]) {
		i++
	}
	if i == 0 || i == len(cellPart) {
		return CellRef{}, fmt.Errorf("invalid cell reference: %q", s)
	}

	col, err := NameToCol(cellPart[:i])
	if err != nil {
		return CellRef{}, fmt.Errorf("invalid cell reference %q: %w", s, err)
	}

	row := 0
	for _, ch := range cellPart[i:] {
		if ch < '0' || ch > '9' {
			return CellRef{}, fmt.Errorf("invalid row in cell reference: %q", s)
		}
		row = row*10 + int(ch-'0')
	}
	if row < 1 {
		return CellRef{}, fmt.Errorf("invalid row number in cell reference: %q", s)
	}

	return CellRef{Sheet: sheet, Row: row - 1, Col: col}, nil
}

func isAlpha(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

// String formats the CellRef as "'Sheet1'!A1", or "A1" if no sheet is set.
func (c CellRef) String() string {
	return c.Addr(false)
}

// Addr formats the reference in A1 notation. When fixed is true the row and
// column are anchored with "$" markers ("$A$1"); sheet names are always
// quoted, which Excel accepts for any sheet name.
func (c CellRef) Addr(fixed bool) string {
	var b strings.Builder
	if c.Sheet != "" {
		b.WriteByte('\'')
		b.WriteString(strings.ReplaceAll(c.Sheet, "'", "''"))
		b.WriteString("'!")
	}
	if fixed {
		b.WriteByte('$')
	}
	b.WriteString(ColToName(c.Col))
	if fixed {
		b.WriteByte('$')
	}
	fmt.Fprintf(&b, "%d", c.Row+1)
	return b.String()
}

// CellName returns just the cell part like "A1", without sheet name.
func (c CellRef) CellName() string {
	return ColToName(c.Col) + fmt.Sprintf("%d", c.Row+1)
}

// ColToName converts a 0-based column index to a column name.
// 0→"A", 25→"Z", 26→"AA".
func ColToName(col int) string {
	result := ""
	col++
	for col > 0 {
		col--
		result = string(rune('A'+col%26)) + result
		col /= 26
	}
	return result
}

// NameToCol converts a column name to a 0-based column index.
// "A"→0, "Z"→25, "AA"→26.
func NameToCol(name string) (int, error) {
	name = strings.ToUpper(name)
	if name == "" {
		return 0, fmt.Errorf("empty column name")
	}
	col := 0
	for _, ch := range name {
		if ch < 'A' || ch > 'Z' {
			return 0, fmt.Errorf("invalid column name: %q", name)
		}
		col = col*26 + int(ch-'A') + 1
	}
	return col - 1, nil
}

// AreaRef is a rectangular region defined by its first and last cell.
type AreaRef struct {
	First CellRef
	Last  CellRef
}

// NewAreaRef creates an AreaRef from two cell references.
func NewAreaRef(first, last CellRef) AreaRef {
	return AreaRef{First: first, Last: last}
}

// RangeAddr formats the area in A1 range notation, for example
// "'Sheet1'!$A$2:$C$4" when fixed.
func (a AreaRef) RangeAddr(fixed bool) string {
	if a.First.Sheet != "" && a.First.Sheet == a.Last.Sheet {
		last := a.Last
		last.Sheet = ""
		return a.First.Addr(fixed) + ":" + last.Addr(fixed)
	}
	return a.First.Addr(fixed) + ":" + a.Last.Addr(fixed)
}

// String formats the AreaRef as "'Sheet1'!A1:C5".
func (a AreaRef) String() string {
	return a.RangeAddr(false)
}

// Size returns the dimensions of the area.
func (a AreaRef) Size() Size {
	return Size{
		Width:  a.Last.Col - a.First.Col + 1,
		Height: a.Last.Row - a.First.Row + 1,
	}
}

// Contains reports whether the given cell lies within this area.
func (a AreaRef) Contains(ref CellRef) bool {
	if a.First.Sheet != "" && a.First.Sheet != ref.Sheet {
		return false
	}
	return ref.Row >= a.First.Row && ref.Row <= a.Last.Row &&
		ref.Col >= a.First.Col && ref.Col <= a.Last.Col
}

// Intersects reports whether two areas on the same sheet overlap.
// Both the row and the column intervals must intersect.
func (a AreaRef) Intersects(b AreaRef) bool {
	if a.First.Sheet != b.First.Sheet {
		return false
	}
	return a.First.Row <= b.Last.Row && b.First.Row <= a.Last.Row &&
		a.First.Col <= b.Last.Col && b.First.Col <= a.Last.Col
}

// Size represents width (columns) and height (rows).
type Size struct {
	Width  int
	Height int
}

// String formats the Size as "(WxH)".
func (s Size) String() string {
	return fmt.Sprintf("(%dx%d)", s.Width, s.Height)
}
