package xltab

import (
	"fmt"
	"strings"
)

// Expr is a symbolic formula expression. Expressions reference tables and
// columns by name and are rewritten into concrete A1-style formula text
// once every table has been assigned a position.
type Expr interface {
	resolve(rc *resolveCtx) (string, error)
}

// resolveCtx carries the state needed to rewrite one formula cell: the
// workbook-wide symbol table, the owning table (empty for free-standing
// sheet values) and the 0-based data row the formula sits on.
type resolveCtx struct {
	syms      *SymbolTable
	owner     string
	rowOffset int
}

// Literal is a constant operand inside a formula.
type Literal struct {
	Value any
}

// Lit wraps a constant value as an expression.
func Lit(v any) Literal { return Literal{Value: v} }

func (l Literal) resolve(*resolveCtx) (string, error) {
	switch v := l.Value.(type) {
	case nil:
		return "", nil
	case string:
		return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`, nil
	case bool:
		if v {
			return "TRUE", nil
		}
		return "FALSE", nil
	default:
		return fmt.Sprintf("%v", v), nil
	}
}

// Column references a column of a table by name.
//
// As a direct operand it is row-aligned: a formula on data row r resolves
// the reference to the single cell of that column on row r. As an argument
// to a range function (see Call) it resolves to the whole column range
// instead. Whole is fixed at construction time, never inferred during
// resolution.
type Column struct {
	Name   string // column name
	Table  string // owning table; empty means the formula's own table
	Whole  bool   // whole-range mode
	Header bool   // include the header row in whole-range mode
}

// Col references a column of the formula's own table.
func Col(name string) Column { return Column{Name: name} }

// ColOf references a column of the named table.
func ColOf(table, name string) Column { return Column{Name: name, Table: table} }

func (c Column) resolve(rc *resolveCtx) (string, error) {
	table := c.Table
	if table == "" {
		table = rc.owner
	}
	if c.Whole {
		return rc.syms.columnRange(table, c.Name, c.Header)
	}
	return rc.syms.cellAddr(table, c.Name, rc.rowOffset, false)
}

// Cell references a single cell of a table by column name and row offset
// relative to the table's first data row.
type Cell struct {
	Column string
	Table  string // empty means the formula's own table
	Offset int    // 0-based data row offset
	Fixed  bool   // anchor the resolved address with "$" markers
}

// CellAt references a cell of the formula's own table.
func CellAt(column string, offset int) Cell {
	return Cell{Column: column, Offset: offset}
}

// CellOf references a cell of the named table.
func CellOf(table, column string, offset int) Cell {
	return Cell{Column: column, Table: table, Offset: offset}
}

func (c Cell) resolve(rc *resolveCtx) (string, error) {
	table := c.Table
	if table == "" {
		table = rc.owner
	}
	return rc.syms.cellAddr(table, c.Column, c.Offset, c.Fixed)
}

// TableRef references a table's full data range.
type TableRef struct {
	Name   string
	Header bool // include the header row
}

// Tbl references the named table's data range.
func Tbl(name string) TableRef { return TableRef{Name: name} }

func (t TableRef) resolve(rc *resolveCtx) (string, error) {
	name := t.Name
	if name == "" {
		name = rc.owner
	}
	return rc.syms.tableRange(name, t.Header)
}

// BinOp combines two expressions with a binary operator in Excel syntax
// ("+", "-", "*", "/", "^", "&", "=", "<>", "<", "<=", ">", ">=").
type BinOp struct {
	Operator string
	Left     Expr
	Right    Expr
}

// Op combines two expressions with the given Excel operator.
func Op(operator string, left, right Expr) BinOp {
	return BinOp{Operator: operator, Left: left, Right: right}
}

// Add returns left + right.
func Add(left, right Expr) BinOp { return Op("+", left, right) }

// Sub returns left - right.
func Sub(left, right Expr) BinOp { return Op("-", left, right) }

// Mul returns left * right.
func Mul(left, right Expr) BinOp { return Op("*", left, right) }

// Div returns left / right.
func Div(left, right Expr) BinOp { return Op("/", left, right) }

func (b BinOp) resolve(rc *resolveCtx) (string, error) {
	left, err := b.Left.resolve(rc)
	if err != nil {
		return "", err
	}
	right, err := b.Right.resolve(rc)
	if err != nil {
		return "", err
	}
	return "(" + left + b.Operator + right + ")", nil
}

// Neg negates an expression.
type Neg struct {
	Operand Expr
}

func (n Neg) resolve(rc *resolveCtx) (string, error) {
	s, err := n.Operand.resolve(rc)
	if err != nil {
		return "", err
	}
	return "-" + s, nil
}

// Fn is an Excel function call such as SUM or SUMPRODUCT.
type Fn struct {
	Name string
	Args []Expr
}

// rangeFuncs are the functions whose Column arguments aggregate over the
// whole column rather than the formula's own row.
var rangeFuncs = map[string]bool{
	"SUM":        true,
	"SUMPRODUCT": true,
	"AVERAGE":    true,
	"MIN":        true,
	"MAX":        true,
	"COUNT":      true,
	"COUNTA":     true,
	"MEDIAN":     true,
	"STDEV":      true,
	"PRODUCT":    true,
}

// Call builds a function-call expression. For range functions, Column
// arguments are switched to whole-range mode; everywhere else they stay
// row-aligned.
func Call(name string, args ...Expr) Fn {
	name = strings.ToUpper(name)
	if rangeFuncs[name] {
		marked := make([]Expr, len(args))
		for i, a := range args {
			if col, ok := a.(Column); ok {
				col.Whole = true
				marked[i] = col
				continue
			}
			marked[i] = a
		}
		args = marked
	}
	return Fn{Name: name, Args: args}
}

func (f Fn) resolve(rc *resolveCtx) (string, error) {
	parts := make([]string, len(f.Args))
	for i, a := range f.Args {
		if a == nil {
			continue
		}
		s, err := a.resolve(rc)
		if err != nil {
			return "", err
		}
		parts[i] = stripOuterParens(s)
	}
	return f.Name + "(" + strings.Join(parts, ",") + ")", nil
}

// formulaText resolves an expression into final formula text with a
// leading "=" and the outermost parentheses stripped.
func formulaText(e Expr, rc *resolveCtx) (string, error) {
	s, err := e.resolve(rc)
	if err != nil {
		return "", err
	}
	return "=" + stripOuterParens(s), nil
}

// stripOuterParens removes one pair of enclosing parentheses when they
// match each other, so "(A1+B1)" becomes "A1+B1" but "(A1)+(B1)" is
// left alone.
func stripOuterParens(s string) string {
	if len(s) < 2 || s[0] != '(' || s[len(s)-1] != ')' {
		return s
	}
	depth := 0
	for i := 0; i < len(s)-1; i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return s // outer parens close before the end
			}
		}
	}
	return s[1 : len(s)-1]
}
