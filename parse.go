package xltab

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/parser"
)

// ParseFormula parses a symbolic formula from its string form into an
// expression tree. Identifiers name columns of the formula's own table,
// dotted identifiers name columns of other tables, and function calls go
// through Call so range functions take whole columns:
//
//	ParseFormula("col_1 + col_2")          // row-aligned sum of two columns
//	ParseFormula("SUM(totals.amount)")     // whole column of another table
//	ParseFormula("price > 100 ? 1 : 0")    // conditionals become IF(...)
//
// A leading "=" is accepted and ignored. Formulas are never evaluated;
// parsing only builds the symbolic tree that resolution rewrites into
// cell addresses.
func ParseFormula(src string) (Expr, error) {
	trimmed := strings.TrimSpace(src)
	trimmed = strings.TrimPrefix(trimmed, "=")
	if strings.TrimSpace(trimmed) == "" {
		return nil, fmt.Errorf("empty formula")
	}
	tree, err := parser.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse formula %q: %w", src, err)
	}
	e, err := fromNode(tree.Node)
	if err != nil {
		return nil, fmt.Errorf("formula %q: %w", src, err)
	}
	return e, nil
}

// binaryOps maps expr-lang operators to their Excel spelling.
var binaryOps = map[string]string{
	"+":  "+",
	"-":  "-",
	"*":  "*",
	"/":  "/",
	"^":  "^",
	"**": "^",
	"==": "=",
	"!=": "<>",
	"<":  "<",
	"<=": "<=",
	">":  ">",
	">=": ">=",
}

func fromNode(n ast.Node) (Expr, error) {
	switch node := n.(type) {
	case *ast.NilNode:
		return Lit(nil), nil
	case *ast.IntegerNode:
		return Lit(node.Value), nil
	case *ast.FloatNode:
		return Lit(node.Value), nil
	case *ast.BoolNode:
		return Lit(node.Value), nil
	case *ast.StringNode:
		return Lit(node.Value), nil
	case *ast.ConstantNode:
		return Lit(node.Value), nil

	case *ast.IdentifierNode:
		return Col(node.Value), nil

	case *ast.MemberNode:
		base, ok := node.Node.(*ast.IdentifierNode)
		if !ok {
			return nil, fmt.Errorf("unsupported reference %s", node.String())
		}
		prop, ok := node.Property.(*ast.StringNode)
		if !ok {
			return nil, fmt.Errorf("unsupported reference %s", node.String())
		}
		return ColOf(base.Value, prop.Value), nil

	case *ast.UnaryNode:
		operand, err := fromNode(node.Node)
		if err != nil {
			return nil, err
		}
		switch node.Operator {
		case "-":
			return Neg{Operand: operand}, nil
		case "+":
			return operand, nil
		case "not", "!":
			return Call("NOT", operand), nil
		}
		return nil, fmt.Errorf("unsupported unary operator %q", node.Operator)

	case *ast.BinaryNode:
		left, err := fromNode(node.Left)
		if err != nil {
			return nil, err
		}
		right, err := fromNode(node.Right)
		if err != nil {
			return nil, err
		}
		switch node.Operator {
		case "and", "&&":
			return Call("AND", left, right), nil
		case "or", "||":
			return Call("OR", left, right), nil
		case "%":
			return Call("MOD", left, right), nil
		}
		op, ok := binaryOps[node.Operator]
		if !ok {
			return nil, fmt.Errorf("unsupported operator %q", node.Operator)
		}
		return Op(op, left, right), nil

	case *ast.ConditionalNode:
		cond, err := fromNode(node.Cond)
		if err != nil {
			return nil, err
		}
		then, err := fromNode(node.Exp1)
		if err != nil {
			return nil, err
		}
		otherwise, err := fromNode(node.Exp2)
		if err != nil {
			return nil, err
		}
		return Call("IF", cond, then, otherwise), nil

	case *ast.CallNode:
		callee, ok := node.Callee.(*ast.IdentifierNode)
		if !ok {
			return nil, fmt.Errorf("unsupported call %s", node.String())
		}
		args, err := fromNodes(node.Arguments)
		if err != nil {
			return nil, err
		}
		return Call(callee.Value, args...), nil

	case *ast.BuiltinNode:
		args, err := fromNodes(node.Arguments)
		if err != nil {
			return nil, err
		}
		return Call(node.Name, args...), nil
	}

	return nil, fmt.Errorf("unsupported syntax %s", n.String())
}

func fromNodes(nodes []ast.Node) ([]Expr, error) {
	args := make([]Expr, len(nodes))
	for i, n := range nodes {
		e, err := fromNode(n)
		if err != nil {
			return nil, err
		}
		args[i] = e
	}
	return args, nil
}
