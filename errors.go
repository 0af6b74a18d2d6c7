package xltab

import "fmt"

// DuplicateTableError reports two tables registered under the same name in
// one workbook.
type DuplicateTableError struct {
	Table string
	Sheet string // sheet of the second registration
}

func (e *DuplicateTableError) Error() string {
	return fmt.Sprintf("duplicate table name %q (sheet %q)", e.Table, e.Sheet)
}

// OverlapError reports two placement rectangles intersecting on one sheet.
type OverlapError struct {
	Sheet string
	Table string // table being placed
	Other string // table already occupying the region
	Area  AreaRef
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("table %q at %s overlaps table %q on sheet %q",
		e.Table, e.Area.RangeAddr(false), e.Other, e.Sheet)
}

// UnknownTableError reports a reference to a table not present in the
// workbook, or an unqualified reference outside any table.
type UnknownTableError struct {
	Table string
}

func (e *UnknownTableError) Error() string {
	if e.Table == "" {
		return "reference has no table name and no owning table"
	}
	return fmt.Sprintf("unknown table %q", e.Table)
}

// ColumnNotFoundError reports a reference to a column absent from the
// target table.
type ColumnNotFoundError struct {
	Table  string
	Column string
}

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("column %q not found in table %q", e.Column, e.Table)
}

// RowOffsetError reports a row offset outside the target table's row count.
type RowOffsetError struct {
	Table  string
	Column string
	Offset int
	Rows   int
}

func (e *RowOffsetError) Error() string {
	return fmt.Sprintf("row offset %d out of range [0,%d) for table %q column %q",
		e.Offset, e.Rows, e.Table, e.Column)
}

// ResolutionError wraps any reference error hit while resolving a formula
// cell. It names the owning sheet, table and cell coordinates so the
// faulty construction site can be located.
type ResolutionError struct {
	Sheet string
	Table string // empty for free-standing sheet values
	Row   int    // absolute 0-based row of the formula cell
	Col   int    // absolute 0-based column of the formula cell
	Err   error
}

func (e *ResolutionError) Error() string {
	at := NewCellRef(e.Sheet, e.Row, e.Col)
	if e.Table != "" {
		return fmt.Sprintf("resolve formula in table %q at %s: %v", e.Table, at, e.Err)
	}
	return fmt.Sprintf("resolve formula at %s: %v", at, e.Err)
}

func (e *ResolutionError) Unwrap() error { return e.Err }
