package engine

import (
	"testing"
)

func TestGridSetAndGet(t *testing.T) {
	g := NewGrid()

	addr := CellAddress{Row: 3, Col: 2}
	if err := g.SetValue(addr, 42.5); err != nil {
		t.Fatalf("SetValue failed: %v", err)
	}

	got, err := g.Value(addr)
	if err != nil {
		t.Fatalf("Value failed: %v", err)
	}
	if got != 42.5 {
		t.Errorf("Value = %v, want 42.5", got)
	}
}

func TestGridOverwrite(t *testing.T) {
	g := NewGrid()
	addr := CellAddress{Row: 1, Col: 1}

	mustSet(t, g, "A1", 1)
	if err := g.SetValue(addr, 2); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}

	got, err := g.Value(addr)
	if err != nil {
		t.Fatalf("Value failed: %v", err)
	}
	if got != 2 {
		t.Errorf("Value = %v, want 2", got)
	}
	if c := g.ColumnCount(1); c != 1 {
		t.Errorf("count after overwrite = %d, want 1", c)
	}
}

func TestGridUnboundCell(t *testing.T) {
	g := NewGrid()

	_, err := g.Value(CellAddress{Row: 1, Col: 1})
	if err == nil {
		t.Fatal("expected unbound cell to fail")
	}
	if ErrorCodeOf(err) != ErrorCodeUnboundCell {
		t.Errorf("error = %v, want unbound cell", err)
	}

	// an unbound cell in a populated column is still unbound
	mustSet(t, g, "A1", 1)
	_, err = g.Value(CellAddress{Row: 2, Col: 1})
	if ErrorCodeOf(err) != ErrorCodeUnboundCell {
		t.Errorf("error = %v, want unbound cell", err)
	}
}

func TestGridOutOfBounds(t *testing.T) {
	g := NewGrid()

	tests := []struct {
		name string
		addr CellAddress
	}{
		{"row zero", CellAddress{Row: 0, Col: 1}},
		{"col zero", CellAddress{Row: 1, Col: 0}},
		{"row over max", CellAddress{Row: MaxRow + 1, Col: 1}},
		{"col over max", CellAddress{Row: 1, Col: MaxColumn + 1}},
		{"negative row", CellAddress{Row: -1, Col: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := g.SetValue(tt.addr, 1); ErrorCodeOf(err) != ErrorCodeOutOfBounds {
				t.Errorf("SetValue error = %v, want out of bounds", err)
			}
			if _, err := g.Value(tt.addr); ErrorCodeOf(err) != ErrorCodeOutOfBounds {
				t.Errorf("Value error = %v, want out of bounds", err)
			}
		})
	}

	// the grid stays untouched after rejected writes
	if len(g.ColumnIndexes()) != 0 {
		t.Error("rejected writes must not create columns")
	}
}

func TestGridBoundsExtremes(t *testing.T) {
	g := NewGrid()
	addr := CellAddress{Row: MaxRow, Col: MaxColumn}

	if err := g.SetValue(addr, 1); err != nil {
		t.Fatalf("corner cell rejected: %v", err)
	}
	got, err := g.Value(addr)
	if err != nil || got != 1 {
		t.Errorf("Value = %v, %v; want 1, nil", got, err)
	}
}

func TestGridColumnAggregates(t *testing.T) {
	g := NewGrid()
	mustSet(t, g, "A1", 10)
	mustSet(t, g, "A2", 20)
	mustSet(t, g, "A5", 30)

	if got := g.ColumnSum(1); got != 60 {
		t.Errorf("sum = %v, want 60", got)
	}
	if got := g.ColumnAverage(1); got != 20 {
		t.Errorf("average = %v, want 20", got)
	}
	if got := g.ColumnCount(1); got != 3 {
		t.Errorf("count = %d, want 3", got)
	}
	if got, ok := g.ColumnMin(1); !ok || got != 10 {
		t.Errorf("min = %v, %v; want 10, true", got, ok)
	}
	if got, ok := g.ColumnMax(1); !ok || got != 30 {
		t.Errorf("max = %v, %v; want 30, true", got, ok)
	}
}

func TestGridEmptyColumnAggregates(t *testing.T) {
	g := NewGrid()

	if got := g.ColumnSum(1); got != 0 {
		t.Errorf("sum = %v, want 0", got)
	}
	if got := g.ColumnAverage(1); got != 0 {
		t.Errorf("average = %v, want 0", got)
	}
	if got := g.ColumnCount(1); got != 0 {
		t.Errorf("count = %d, want 0", got)
	}
	if _, ok := g.ColumnMin(1); ok {
		t.Error("min of empty column should report absence")
	}
	if _, ok := g.ColumnMax(1); ok {
		t.Error("max of empty column should report absence")
	}
}

func TestGridAggregatesAfterOverwrite(t *testing.T) {
	g := NewGrid()
	mustSet(t, g, "A1", 10)
	mustSet(t, g, "A2", 20)
	mustSet(t, g, "A3", 30)

	// overwrite the current max with a small value, forcing a rescan
	mustSet(t, g, "A3", 5)

	if got := g.ColumnSum(1); got != 35 {
		t.Errorf("sum = %v, want 35", got)
	}
	if got, ok := g.ColumnMax(1); !ok || got != 20 {
		t.Errorf("max = %v, %v; want 20, true", got, ok)
	}
	if got, ok := g.ColumnMin(1); !ok || got != 5 {
		t.Errorf("min = %v, %v; want 5, true", got, ok)
	}

	// overwrite the min upward as well
	mustSet(t, g, "A3", 25)
	if got, ok := g.ColumnMin(1); !ok || got != 10 {
		t.Errorf("min = %v, %v; want 10, true", got, ok)
	}
	if got := g.ColumnSum(1); got != 55 {
		t.Errorf("sum = %v, want 55", got)
	}
}

func TestGridSequentialAppendMode(t *testing.T) {
	g := NewGridWithMode(StorageSequentialAppend)

	// writes land at the next free row of the column, target row ignored
	if err := g.SetValue(CellAddress{Row: 50, Col: 1}, 10); err != nil {
		t.Fatalf("SetValue failed: %v", err)
	}
	if err := g.SetValue(CellAddress{Row: 7, Col: 1}, 20); err != nil {
		t.Fatalf("SetValue failed: %v", err)
	}

	got, err := g.Value(CellAddress{Row: 1, Col: 1})
	if err != nil || got != 10 {
		t.Errorf("A1 = %v, %v; want 10, nil", got, err)
	}
	got, err = g.Value(CellAddress{Row: 2, Col: 1})
	if err != nil || got != 20 {
		t.Errorf("A2 = %v, %v; want 20, nil", got, err)
	}
	if _, err := g.Value(CellAddress{Row: 50, Col: 1}); ErrorCodeOf(err) != ErrorCodeUnboundCell {
		t.Errorf("A50 error = %v, want unbound cell", err)
	}
}

func TestGridSetFormula(t *testing.T) {
	g := NewGrid()
	addr := CellAddress{Row: 1, Col: 3}

	if err := g.SetFormula(addr, "=A1+B1"); err != nil {
		t.Fatalf("SetFormula failed: %v", err)
	}

	formula := g.FormulaAt(addr)
	if formula == nil {
		t.Fatal("formula not stored")
	}
	if got := formula.Text(); got != "=A1+B1" {
		t.Errorf("formula text = %q, want %q", got, "=A1+B1")
	}

	// storing does not evaluate: A1 and B1 stay unbound and the target
	// cell holds no value
	if _, err := g.Value(addr); ErrorCodeOf(err) != ErrorCodeUnboundCell {
		t.Errorf("formula cell value error = %v, want unbound cell", err)
	}
}

func TestGridSetFormulaParseError(t *testing.T) {
	g := NewGrid()
	addr := CellAddress{Row: 1, Col: 1}

	if err := g.SetFormula(addr, "=1+"); err == nil {
		t.Fatal("expected malformed formula to be rejected")
	}
	if g.FormulaAt(addr) != nil {
		t.Error("rejected formula must not be stored")
	}
}

func TestGridSetFormulaOutOfBounds(t *testing.T) {
	g := NewGrid()

	err := g.SetFormula(CellAddress{Row: MaxRow + 1, Col: 1}, "=1")
	if ErrorCodeOf(err) != ErrorCodeOutOfBounds {
		t.Errorf("error = %v, want out of bounds", err)
	}
}

func TestGridReplaceFormula(t *testing.T) {
	g := NewGrid()
	addr := CellAddress{Row: 1, Col: 1}

	if err := g.SetFormula(addr, "=1+1"); err != nil {
		t.Fatalf("SetFormula failed: %v", err)
	}
	if err := g.SetFormula(addr, "=2*3"); err != nil {
		t.Fatalf("SetFormula failed: %v", err)
	}

	if got := g.FormulaAt(addr).Text(); got != "=2*3" {
		t.Errorf("formula text = %q, want %q", got, "=2*3")
	}
	if addrs := g.FormulaAddresses(); len(addrs) != 1 {
		t.Errorf("formula count = %d, want 1", len(addrs))
	}
}

func TestGridFormulaAddressesOrder(t *testing.T) {
	g := NewGrid()
	for _, ref := range []string{"B2", "A1", "A2", "B1"} {
		addr, err := ParseAddress(ref)
		if err != nil {
			t.Fatalf("bad address %q: %v", ref, err)
		}
		if err := g.SetFormula(addr, "=1"); err != nil {
			t.Fatalf("SetFormula(%q) failed: %v", ref, err)
		}
	}

	got := g.FormulaAddresses()
	want := []string{"A1", "B1", "A2", "B2"}
	if len(got) != len(want) {
		t.Fatalf("got %d addresses, want %d", len(got), len(want))
	}
	for i, addr := range got {
		if addr.String() != want[i] {
			t.Errorf("addresses[%d] = %s, want %s", i, addr.String(), want[i])
		}
	}
}

func TestGridSparseColumns(t *testing.T) {
	g := NewGrid()
	mustSet(t, g, "A1", 1)
	mustSet(t, g, "XFD1", 2)

	idx := g.ColumnIndexes()
	if len(idx) != 2 || idx[0] != 1 || idx[1] != MaxColumn {
		t.Errorf("column indexes = %v, want [1 %d]", idx, MaxColumn)
	}
}
