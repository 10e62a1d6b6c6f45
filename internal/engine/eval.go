package engine

import (
	"fmt"
	"math"
	"strings"
)

// Evaluator walks an expression tree against a Grid and a function
// Registry. Evaluation is a pure recursive walk: no node is mutated and
// no Grid state changes as a side effect.
type Evaluator struct {
	grid      *Grid
	functions *Registry
	depth     int
}

// NewEvaluator creates an evaluator bound to a grid and a registry. The
// registry is passed in explicitly so user-registered functions stay
// visible across evaluations.
func NewEvaluator(grid *Grid, functions *Registry) *Evaluator {
	return &Evaluator{grid: grid, functions: functions}
}

// Evaluate evaluates a parsed formula to a scalar
func Evaluate(formula *Formula, grid *Grid, functions *Registry) (float64, error) {
	return NewEvaluator(grid, functions).Eval(formula)
}

// Eval evaluates a parsed formula to a scalar
func (ev *Evaluator) Eval(formula *Formula) (float64, error) {
	ev.depth = 0
	return formula.Root.Eval(ev)
}

func (ev *Evaluator) enter() error {
	ev.depth++
	if ev.depth > MaxFormulaDepth {
		return NewSheetError(ErrorCodeFormulaTooComplex, "")
	}
	return nil
}

func (ev *Evaluator) leave() {
	ev.depth--
}

func (n *NumberNode) Eval(ev *Evaluator) (float64, error) {
	return n.Value, nil
}

func (n *CellRefNode) Eval(ev *Evaluator) (float64, error) {
	return ev.grid.Value(n.Addr)
}

// Eval on a bare range fails: a range is only meaningful as a function
// argument, where it resolves to a sequence instead of a scalar.
func (n *RangeNode) Eval(ev *Evaluator) (float64, error) {
	return 0, NewSheetError(ErrorCodeMalformedRange,
		fmt.Sprintf("range %s is only valid as a function argument", n.Text()))
}

func (n *BinaryOpNode) Eval(ev *Evaluator) (float64, error) {
	if err := ev.enter(); err != nil {
		return 0, err
	}
	defer ev.leave()

	// both operands evaluate eagerly, no short-circuit
	left, err := n.Left.Eval(ev)
	if err != nil {
		return 0, err
	}
	right, err := n.Right.Eval(ev)
	if err != nil {
		return 0, err
	}

	switch n.Op {
	case BinOpAdd:
		return left + right, nil
	case BinOpSubtract:
		return left - right, nil
	case BinOpMultiply:
		return left * right, nil
	case BinOpDivide:
		if right == 0 {
			return 0, NewSheetError(ErrorCodeDivisionByZero, "")
		}
		return left / right, nil
	case BinOpPower:
		// unreachable from the grammar, but defined for AST consumers
		return math.Pow(left, right), nil
	default:
		return 0, fmt.Errorf("unknown binary operator: %d", n.Op)
	}
}

func (n *FunctionCallNode) Eval(ev *Evaluator) (float64, error) {
	if err := ev.enter(); err != nil {
		return 0, err
	}
	defer ev.leave()

	fn, ok := ev.functions.Lookup(strings.ToUpper(n.Name))
	if !ok {
		return 0, NewSheetError(ErrorCodeUnknownFunction,
			fmt.Sprintf("unknown function: %s", strings.ToUpper(n.Name)))
	}

	// each argument resolves according to its own kind: a range yields
	// the sequence of bound values it covers, anything else yields a
	// scalar wrapped as a single-element sequence
	args := make([][]float64, len(n.Args))
	for i, argNode := range n.Args {
		if rangeNode, ok := argNode.(*RangeNode); ok {
			args[i] = ev.resolveRange(rangeNode)
			continue
		}
		value, err := argNode.Eval(ev)
		if err != nil {
			return 0, err
		}
		args[i] = []float64{value}
	}

	return fn.Call(args)
}

func (n *GroupNode) Eval(ev *Evaluator) (float64, error) {
	if err := ev.enter(); err != nil {
		return 0, err
	}
	defer ev.leave()

	// purely a parsing artifact, no semantics of its own
	return n.Inner.Eval(ev)
}

// resolveRange collects the bound values covered by a range in row-major
// order, inclusive of both endpoints. Unbound addresses inside a range
// are skipped, not errors: ranges tolerate holes while bare cell
// references do not.
func (ev *Evaluator) resolveRange(n *RangeNode) []float64 {
	// normalize per axis so iteration works however the range was written
	startRow, endRow := n.Start.Row, n.End.Row
	if startRow > endRow {
		startRow, endRow = endRow, startRow
	}
	startCol, endCol := n.Start.Col, n.End.Col
	if startCol > endCol {
		startCol, endCol = endCol, startCol
	}

	var values []float64
	for row := startRow; row <= endRow; row++ {
		for col := startCol; col <= endCol; col++ {
			if v, ok := ev.grid.valueAt(CellAddress{Row: row, Col: col}); ok {
				values = append(values, v)
			}
		}
	}
	return values
}
