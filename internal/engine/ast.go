package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// NodePosition records where a node came from in the formula text
type NodePosition struct {
	Start int
	End   int
}

// Expr is the closed set of formula AST nodes. Each node exclusively owns
// its children; formulas are trees, never graphs. The AST enables
// evaluation and transformation through tree traversal rather than
// string manipulation.
type Expr interface {
	Eval(ev *Evaluator) (float64, error)
	Position() NodePosition
	Text() string
}

// Formula is a parsed expression tree. Its textual form is always
// prefixed by '='.
type Formula struct {
	Root Expr
}

// Text renders the formula back to canonical text: uppercase references
// and function names, no whitespace.
func (f *Formula) Text() string {
	return "=" + f.Root.Text()
}

// BinaryOp represents binary operators in AST nodes
type BinaryOp int

const (
	BinOpAdd BinaryOp = iota
	BinOpSubtract
	BinOpMultiply
	BinOpDivide
	BinOpPower
)

func (op BinaryOp) String() string {
	switch op {
	case BinOpAdd:
		return "+"
	case BinOpSubtract:
		return "-"
	case BinOpMultiply:
		return "*"
	case BinOpDivide:
		return "/"
	case BinOpPower:
		return "^"
	}
	return "?"
}

// NumberNode represents a numeric literal
type NumberNode struct {
	Value float64
	Pos   NodePosition
}

func (n *NumberNode) Position() NodePosition {
	return n.Pos
}

func (n *NumberNode) Text() string {
	// plain decimal notation only: the grammar has no exponent form, so
	// the canonical text must stay parseable by this parser
	return strconv.FormatFloat(n.Value, 'f', -1, 64)
}

// CellRefNode represents a single cell reference
type CellRefNode struct {
	Addr CellAddress
	Pos  NodePosition
}

func (n *CellRefNode) Position() NodePosition {
	return n.Pos
}

func (n *CellRefNode) Text() string {
	return n.Addr.String()
}

// RangeNode represents an inclusive cell range. It never produces a
// scalar on its own; it is only meaningful as a function argument.
type RangeNode struct {
	Start CellAddress
	End   CellAddress
	Pos   NodePosition
}

func (n *RangeNode) Position() NodePosition {
	return n.Pos
}

func (n *RangeNode) Text() string {
	return fmt.Sprintf("%s:%s", n.Start, n.End)
}

// BinaryOpNode represents a binary operation
type BinaryOpNode struct {
	Op    BinaryOp
	Left  Expr
	Right Expr
	Pos   NodePosition
}

func (n *BinaryOpNode) Position() NodePosition {
	return n.Pos
}

func (n *BinaryOpNode) Text() string {
	return n.Left.Text() + n.Op.String() + n.Right.Text()
}

// FunctionCallNode represents a function call. Name is stored uppercase.
type FunctionCallNode struct {
	Name string
	Args []Expr
	Pos  NodePosition
}

func (n *FunctionCallNode) Position() NodePosition {
	return n.Pos
}

func (n *FunctionCallNode) Text() string {
	args := make([]string, len(n.Args))
	for i, arg := range n.Args {
		args[i] = arg.Text()
	}
	return fmt.Sprintf("%s(%s)", strings.ToUpper(n.Name), strings.Join(args, ","))
}

// GroupNode represents explicit parentheses. It contributes no semantics
// beyond preserving the parens for round-tripping.
type GroupNode struct {
	Inner Expr
	Pos   NodePosition
}

func (n *GroupNode) Position() NodePosition {
	return n.Pos
}

func (n *GroupNode) Text() string {
	return fmt.Sprintf("(%s)", n.Inner.Text())
}
