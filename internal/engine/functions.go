package engine

import (
	"fmt"
	"sort"
	"strings"
)

// Function is the capability interface implemented by builtins and by
// user-registered entries. Each argument arrives as a resolved sequence:
// a range contributes every bound value it covers, a scalar arrives as a
// single-element sequence.
type Function interface {
	Call(args [][]float64) (float64, error)
}

// FunctionFunc adapts a plain function to the Function interface
type FunctionFunc func(args [][]float64) (float64, error)

func (f FunctionFunc) Call(args [][]float64) (float64, error) {
	return f(args)
}

// Registry maps uppercase function names to implementations. It supports
// runtime registration, so user-defined functions are visible to every
// evaluation that receives the registry.
type Registry struct {
	funcs map[string]Function
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{funcs: make(map[string]Function)}
}

// NewDefaultRegistry creates a registry with the builtin statistical
// functions: SUM, AVERAGE, COUNT, MIN, MAX.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("SUM", FunctionFunc(builtinSum))
	r.Register("AVERAGE", FunctionFunc(builtinAverage))
	r.Register("COUNT", FunctionFunc(builtinCount))
	r.Register("MIN", FunctionFunc(builtinMin))
	r.Register("MAX", FunctionFunc(builtinMax))
	return r
}

// Register adds or replaces a function under the given name. Names are
// stored uppercase; lookup is case-insensitive.
func (r *Registry) Register(name string, fn Function) {
	r.funcs[strings.ToUpper(name)] = fn
}

// Lookup returns the function registered under name
func (r *Registry) Lookup(name string) (Function, bool) {
	fn, ok := r.funcs[strings.ToUpper(name)]
	return fn, ok
}

// Names returns all registered function names, sorted
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func builtinSum(args [][]float64) (float64, error) {
	sum := 0.0
	for _, seq := range args {
		for _, v := range seq {
			sum += v
		}
	}
	return sum, nil
}

func builtinAverage(args [][]float64) (float64, error) {
	sum := 0.0
	count := 0
	for _, seq := range args {
		for _, v := range seq {
			sum += v
			count++
		}
	}
	if count == 0 {
		return 0, NewSheetError(ErrorCodeDivisionByZero, "AVERAGE of no values")
	}
	return sum / float64(count), nil
}

func builtinCount(args [][]float64) (float64, error) {
	count := 0
	for _, seq := range args {
		count += len(seq)
	}
	return float64(count), nil
}

func builtinMin(args [][]float64) (float64, error) {
	min := 0.0
	hasValues := false
	for _, seq := range args {
		for _, v := range seq {
			if !hasValues || v < min {
				min = v
			}
			hasValues = true
		}
	}
	if !hasValues {
		return 0, fmt.Errorf("MIN of no values")
	}
	return min, nil
}

func builtinMax(args [][]float64) (float64, error) {
	max := 0.0
	hasValues := false
	for _, seq := range args {
		for _, v := range seq {
			if !hasValues || v > max {
				max = v
			}
			hasValues = true
		}
	}
	if !hasValues {
		return 0, fmt.Errorf("MAX of no values")
	}
	return max, nil
}
