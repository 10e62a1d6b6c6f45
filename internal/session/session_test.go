package session

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/quantumsheets/quantum-sheets/internal/datagen"
	"github.com/quantumsheets/quantum-sheets/internal/engine"
)

func newTestSession() *Session {
	return NewWithOptions(engine.StorageRowIndexed, datagen.NewWithSeed(1, 2))
}

func TestSessionValues(t *testing.T) {
	s := newTestSession()

	if err := s.SetValue("A1", 10); err != nil {
		t.Fatalf("SetValue failed: %v", err)
	}
	got, err := s.Value("a1")
	if err != nil {
		t.Fatalf("Value failed: %v", err)
	}
	if got != 10 {
		t.Errorf("Value = %v, want 10", got)
	}

	if err := s.SetValue("XFE1", 1); engine.ErrorCodeOf(err) != engine.ErrorCodeOutOfBounds {
		t.Errorf("out-of-column error = %v, want out of bounds", err)
	}
}

func TestSessionFormulas(t *testing.T) {
	s := newTestSession()

	if err := s.SetFormula("C1", "= a1 + b1"); err != nil {
		t.Fatalf("SetFormula failed: %v", err)
	}
	text, err := s.FormulaText("C1")
	if err != nil {
		t.Fatalf("FormulaText failed: %v", err)
	}
	if text != "=A1+B1" {
		t.Errorf("FormulaText = %q, want %q", text, "=A1+B1")
	}

	// a cell without a formula reports empty text, not an error
	text, err = s.FormulaText("D1")
	if err != nil || text != "" {
		t.Errorf("FormulaText(D1) = %q, %v; want empty, nil", text, err)
	}
}

func TestSessionEvaluate(t *testing.T) {
	s := newTestSession()
	if err := s.SetValue("A1", 10); err != nil {
		t.Fatalf("SetValue failed: %v", err)
	}
	if err := s.SetValue("B1", 5); err != nil {
		t.Fatalf("SetValue failed: %v", err)
	}

	got, err := s.EvaluateText("=A1+B1")
	if err != nil {
		t.Fatalf("EvaluateText failed: %v", err)
	}
	if got != 15 {
		t.Errorf("=A1+B1 = %v, want 15", got)
	}
}

func TestSessionColumnStats(t *testing.T) {
	s := newTestSession()
	for ref, v := range map[string]float64{"A1": 10, "A2": 20, "A3": 30} {
		if err := s.SetValue(ref, v); err != nil {
			t.Fatalf("SetValue failed: %v", err)
		}
	}

	stats, err := s.ColumnStats("A")
	if err != nil {
		t.Fatalf("ColumnStats failed: %v", err)
	}
	if stats.Count != 3 || stats.Sum != 60 || stats.Min != 10 || stats.Max != 30 {
		t.Errorf("stats = %+v", stats)
	}

	// untouched columns report zero stats
	stats, err = s.ColumnStats("B")
	if err != nil {
		t.Fatalf("ColumnStats failed: %v", err)
	}
	if stats.Count != 0 {
		t.Errorf("empty column stats = %+v", stats)
	}
}

func TestSessionColumnStatsRejectsCellReference(t *testing.T) {
	s := newTestSession()
	if err := s.SetValue("A1", 10); err != nil {
		t.Fatalf("SetValue failed: %v", err)
	}

	// "A1" would otherwise resolve to column A via the appended row digit
	for _, name := range []string{"A1", "A 1", "1", ""} {
		if _, err := s.ColumnStats(name); err == nil {
			t.Errorf("ColumnStats(%q) expected error, got nil", name)
		}
	}
}

func TestExecuteFormula(t *testing.T) {
	s := newTestSession()

	got, err := s.Execute("=2+3*4")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if got != "14" {
		t.Errorf("Execute = %q, want %q", got, "14")
	}
}

func TestExecuteOperations(t *testing.T) {
	s := newTestSession()

	tests := []struct {
		command string
		want    string
	}{
		{"SET A1 10", "A1 = 10"},
		{"set a1 10", "A1 = 10"},
		{"GET A1", "10"},
		{"SUM 1 2 3", "6"},
		{"SUM 5 A1", "15"},
		{"DOUBLE 21", "21 doubled is 42"},
		{"FORMULA C1 =A1*2", "C1 stores =A1*2"},
	}

	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			got, err := s.Execute(tt.command)
			if err != nil {
				t.Fatalf("Execute(%q) failed: %v", tt.command, err)
			}
			if got != tt.want {
				t.Errorf("Execute(%q) = %q, want %q", tt.command, got, tt.want)
			}
		})
	}
}

func TestExecuteStats(t *testing.T) {
	s := newTestSession()
	for _, cmd := range []string{"SET A1 10", "SET A2 20"} {
		if _, err := s.Execute(cmd); err != nil {
			t.Fatalf("Execute(%q) failed: %v", cmd, err)
		}
	}

	got, err := s.Execute("STATS A")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if got != "count=2 sum=30 min=10 max=20" {
		t.Errorf("STATS A = %q", got)
	}
}

func TestExecuteNaturalLanguage(t *testing.T) {
	s := newTestSession()
	if err := s.SetValue("A1", 10); err != nil {
		t.Fatalf("SetValue failed: %v", err)
	}
	if err := s.SetValue("B2", 5); err != nil {
		t.Fatalf("SetValue failed: %v", err)
	}

	got, err := s.Execute("add A1 and B2")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if got != "=A1+B2 = 15" {
		t.Errorf("Execute = %q", got)
	}

	// explicit NATURAL prefix goes through the same path
	got, err = s.Execute("NATURAL multiply A1 by B2")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if got != "=A1*B2 = 50" {
		t.Errorf("Execute = %q", got)
	}
}

func TestExecuteGenerate(t *testing.T) {
	s := newTestSession()

	got, err := s.Execute("GENERATE 5 rows with phone and city")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !strings.HasPrefix(got, "generated 5 rows") {
		t.Errorf("Execute = %q", got)
	}
	if len(s.LastRecords()) != 5 {
		t.Errorf("LastRecords len = %d, want 5", len(s.LastRecords()))
	}
}

func TestExecuteExport(t *testing.T) {
	s := newTestSession()
	if err := s.SetValue("A1", 10); err != nil {
		t.Fatalf("SetValue failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "grid.csv")
	got, err := s.Execute("EXPORT csv " + path)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if got != "exported to "+path {
		t.Errorf("Execute = %q", got)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if string(data) != "Column,Sum,Count\nA,10.00,1\n" {
		t.Errorf("export content = %q", string(data))
	}
}

func TestExecuteUnknownCommand(t *testing.T) {
	s := newTestSession()

	if _, err := s.Execute("frobnicate the widget"); err == nil {
		t.Error("expected unknown command to fail")
	}
	if _, err := s.Execute(""); err == nil {
		t.Error("expected empty command to fail")
	}
}

func TestRegisterCustomOperation(t *testing.T) {
	s := newTestSession()

	s.RegisterOperation(Operation{
		Name: "ECHO", Kind: KindCustom,
		Description: "Echo arguments",
		Run: func(s *Session, args []string) (string, error) {
			return strings.Join(args, " "), nil
		},
	})

	got, err := s.Execute("ECHO hello world")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if got != "hello world" {
		t.Errorf("ECHO = %q", got)
	}

	found := false
	for _, line := range s.Operations() {
		if strings.HasPrefix(line, "ECHO - ") {
			found = true
		}
	}
	if !found {
		t.Error("ECHO missing from operation listing")
	}
}

func TestUserFunctionThroughSession(t *testing.T) {
	s := newTestSession()
	s.Functions().Register("TRIPLE", engine.FunctionFunc(
		func(args [][]float64) (float64, error) {
			return args[0][0] * 3, nil
		}))

	got, err := s.Execute("=TRIPLE(7)")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if got != "21" {
		t.Errorf("=TRIPLE(7) = %q, want %q", got, "21")
	}
}
