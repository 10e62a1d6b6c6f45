package engine

import (
	"fmt"
	"sort"
)

// StorageMode selects how cell writes are placed within a column
type StorageMode uint8

const (
	// StorageRowIndexed writes each value at its parsed row index.
	StorageRowIndexed StorageMode = iota
	// StorageSequentialAppend reproduces the legacy behavior of appending
	// values in write order, discarding the parsed row. Kept as an
	// explicit, named variant for compatibility only.
	StorageSequentialAppend
)

// Grid owns the column storage and the address-to-formula mapping. A cell
// may hold a stored value, a formula, or both; the two are never kept
// consistent automatically. Reading a formula cell's value requires
// explicit evaluation and is never cached back into the column.
//
// The Grid provides no internal locking; callers sharing one Grid must
// serialize access.
type Grid struct {
	mode     StorageMode
	columns  map[int]*Column
	formulas map[CellAddress]*Formula
}

// NewGrid creates an empty grid with row-indexed storage
func NewGrid() *Grid {
	return NewGridWithMode(StorageRowIndexed)
}

// NewGridWithMode creates an empty grid with the given storage mode
func NewGridWithMode(mode StorageMode) *Grid {
	return &Grid{
		mode:     mode,
		columns:  make(map[int]*Column),
		formulas: make(map[CellAddress]*Formula),
	}
}

// SetValue writes a numeric value at addr, creating the column lazily
func (g *Grid) SetValue(addr CellAddress, value float64) error {
	if !addr.IsValid() {
		return NewSheetError(ErrorCodeOutOfBounds,
			fmt.Sprintf("cell address out of Excel bounds: %s", addr))
	}

	column, exists := g.columns[addr.Col]
	if !exists {
		column = NewColumn()
		g.columns[addr.Col] = column
	}

	if g.mode == StorageSequentialAppend {
		column.Append(value)
		return nil
	}
	column.Set(addr.Row, value)
	return nil
}

// Value returns the value stored at addr. A cell that has never been
// written fails with ErrorCodeUnboundCell; there is no implicit zero.
func (g *Grid) Value(addr CellAddress) (float64, error) {
	if !addr.IsValid() {
		return 0, NewSheetError(ErrorCodeOutOfBounds,
			fmt.Sprintf("cell address out of Excel bounds: %s", addr))
	}
	if v, ok := g.valueAt(addr); ok {
		return v, nil
	}
	return 0, NewSheetError(ErrorCodeUnboundCell,
		fmt.Sprintf("cell %s has no value", addr))
}

// valueAt is the non-error lookup used by range iteration, where holes
// are skipped rather than reported
func (g *Grid) valueAt(addr CellAddress) (float64, bool) {
	column, exists := g.columns[addr.Col]
	if !exists {
		return 0, false
	}
	return column.Get(addr.Row)
}

// SetFormula parses formulaText and stores the AST keyed by addr,
// replacing any prior formula there. The formula is not evaluated and no
// value is written.
func (g *Grid) SetFormula(addr CellAddress, formulaText string) error {
	if !addr.IsValid() {
		return NewSheetError(ErrorCodeOutOfBounds,
			fmt.Sprintf("cell address out of Excel bounds: %s", addr))
	}

	formula, err := Parse(formulaText)
	if err != nil {
		return err
	}

	g.formulas[addr] = formula
	return nil
}

// FormulaAt returns the formula stored at addr, or nil if none
func (g *Grid) FormulaAt(addr CellAddress) *Formula {
	return g.formulas[addr]
}

// Column returns the column at the given 1-based index, or nil if it has
// never been written
func (g *Grid) Column(col int) *Column {
	return g.columns[col]
}

// ColumnIndexes returns the indices of all existing columns, sorted
func (g *Grid) ColumnIndexes() []int {
	indexes := make([]int, 0, len(g.columns))
	for col := range g.columns {
		indexes = append(indexes, col)
	}
	sort.Ints(indexes)
	return indexes
}

// FormulaAddresses returns the addresses that hold formulas, in row-major
// order for deterministic iteration
func (g *Grid) FormulaAddresses() []CellAddress {
	addrs := make([]CellAddress, 0, len(g.formulas))
	for addr := range g.formulas {
		addrs = append(addrs, addr)
	}
	sort.Slice(addrs, func(i, j int) bool {
		if addrs[i].Row != addrs[j].Row {
			return addrs[i].Row < addrs[j].Row
		}
		return addrs[i].Col < addrs[j].Col
	})
	return addrs
}

// ColumnSum returns the sum of the column's stored values in O(1)
func (g *Grid) ColumnSum(col int) float64 {
	if c, ok := g.columns[col]; ok {
		return c.Sum()
	}
	return 0
}

// ColumnAverage returns the mean of the column's stored values
func (g *Grid) ColumnAverage(col int) float64 {
	if c, ok := g.columns[col]; ok {
		return c.Average()
	}
	return 0
}

// ColumnCount returns the number of stored values in the column
func (g *Grid) ColumnCount(col int) int {
	if c, ok := g.columns[col]; ok {
		return c.Count()
	}
	return 0
}

// ColumnMin returns the smallest stored value in the column
func (g *Grid) ColumnMin(col int) (float64, bool) {
	if c, ok := g.columns[col]; ok {
		return c.Min()
	}
	return 0, false
}

// ColumnMax returns the largest stored value in the column
func (g *Grid) ColumnMax(col int) (float64, bool) {
	if c, ok := g.columns[col]; ok {
		return c.Max()
	}
	return 0, false
}
