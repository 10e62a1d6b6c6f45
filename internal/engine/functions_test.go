package engine

import (
	"testing"
)

func callBuiltin(t *testing.T, reg *Registry, name string, args ...[]float64) (float64, error) {
	t.Helper()
	fn, ok := reg.Lookup(name)
	if !ok {
		t.Fatalf("builtin %q not registered", name)
	}
	return fn.Call(args)
}

func TestDefaultRegistryBuiltins(t *testing.T) {
	reg := NewDefaultRegistry()

	tests := []struct {
		name string
		args [][]float64
		want float64
	}{
		{"SUM", [][]float64{{1, 2, 3}}, 6},
		{"SUM", [][]float64{{1, 2}, {3}}, 6},
		{"SUM", [][]float64{}, 0},
		{"AVERAGE", [][]float64{{10, 20, 30}}, 20},
		{"COUNT", [][]float64{{1, 2}, {3, 4, 5}}, 5},
		{"COUNT", [][]float64{}, 0},
		{"MIN", [][]float64{{3, 1, 2}}, 1},
		{"MIN", [][]float64{{5}, {2, 9}}, 2},
		{"MAX", [][]float64{{3, 1, 2}}, 3},
		{"MAX", [][]float64{{-5, -2}}, -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := callBuiltin(t, reg, tt.name, tt.args...)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestBuiltinEmptyInputErrors(t *testing.T) {
	reg := NewDefaultRegistry()

	if _, err := callBuiltin(t, reg, "AVERAGE"); ErrorCodeOf(err) != ErrorCodeDivisionByZero {
		t.Errorf("AVERAGE() error = %v, want division by zero", err)
	}
	if _, err := callBuiltin(t, reg, "MIN"); err == nil {
		t.Error("MIN() should fail on empty input")
	}
	if _, err := callBuiltin(t, reg, "MAX"); err == nil {
		t.Error("MAX() should fail on empty input")
	}
}

func TestRegistryCaseInsensitiveLookup(t *testing.T) {
	reg := NewDefaultRegistry()

	for _, name := range []string{"sum", "Sum", "SUM", "sUm"} {
		if _, ok := reg.Lookup(name); !ok {
			t.Errorf("Lookup(%q) missed", name)
		}
	}
	if _, ok := reg.Lookup("MEDIAN"); ok {
		t.Error("Lookup(MEDIAN) should miss")
	}
}

func TestRegistryRegisterAndOverride(t *testing.T) {
	reg := NewRegistry()

	reg.Register("twice", FunctionFunc(func(args [][]float64) (float64, error) {
		return args[0][0] * 2, nil
	}))

	got, err := callBuiltin(t, reg, "TWICE", []float64{21})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 42 {
		t.Errorf("TWICE(21) = %v, want 42", got)
	}

	// later registrations under the same name win
	reg.Register("TWICE", FunctionFunc(func(args [][]float64) (float64, error) {
		return 0, nil
	}))
	got, err = callBuiltin(t, reg, "twice", []float64{21})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0 {
		t.Errorf("overridden TWICE(21) = %v, want 0", got)
	}
}

func TestRegistryNames(t *testing.T) {
	reg := NewDefaultRegistry()

	want := []string{"AVERAGE", "COUNT", "MAX", "MIN", "SUM"}
	got := reg.Names()
	if len(got) != len(want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Names() = %v, want %v", got, want)
		}
	}
}
