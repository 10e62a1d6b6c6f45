// Package session owns one spreadsheet working state: a grid, a function
// registry, the phrase translator, the data generator, and a command
// dispatcher over all of them.
package session

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/quantumsheets/quantum-sheets/internal/datagen"
	"github.com/quantumsheets/quantum-sheets/internal/engine"
	"github.com/quantumsheets/quantum-sheets/internal/nlp"
)

// Session is a single spreadsheet instance. It is not safe for
// concurrent use; callers sharing one Session must serialize access.
type Session struct {
	grid       *engine.Grid
	functions  *engine.Registry
	translator *nlp.Translator
	generator  *datagen.Generator
	operations map[string]Operation

	// records from the last data generation, kept for export
	lastRecords []datagen.Record
}

// New creates a session with row-indexed storage and the builtin
// functions and operations
func New() *Session {
	return NewWithOptions(engine.StorageRowIndexed, datagen.New())
}

// NewWithOptions creates a session with an explicit storage mode and data
// generator, used by configuration loading and tests
func NewWithOptions(mode engine.StorageMode, gen *datagen.Generator) *Session {
	s := &Session{
		grid:       engine.NewGridWithMode(mode),
		functions:  engine.NewDefaultRegistry(),
		translator: nlp.New(),
		generator:  gen,
		operations: make(map[string]Operation),
	}
	s.registerBuiltins()
	return s
}

// Grid exposes the underlying grid for export and inspection
func (s *Session) Grid() *engine.Grid {
	return s.grid
}

// Functions exposes the formula function registry so callers can add
// their own functions
func (s *Session) Functions() *engine.Registry {
	return s.functions
}

// LastRecords returns the records produced by the most recent data
// generation, or nil if none has run
func (s *Session) LastRecords() []datagen.Record {
	return s.lastRecords
}

// SetValue writes a numeric value at a cell named in Excel notation
func (s *Session) SetValue(ref string, value float64) error {
	addr, err := engine.ParseAddress(ref)
	if err != nil {
		return err
	}
	return s.grid.SetValue(addr, value)
}

// Value reads the value of a cell named in Excel notation
func (s *Session) Value(ref string) (float64, error) {
	addr, err := engine.ParseAddress(ref)
	if err != nil {
		return 0, err
	}
	return s.grid.Value(addr)
}

// SetFormula parses and stores a formula at a cell named in Excel
// notation. The formula is not evaluated.
func (s *Session) SetFormula(ref, formulaText string) error {
	addr, err := engine.ParseAddress(ref)
	if err != nil {
		return err
	}
	return s.grid.SetFormula(addr, formulaText)
}

// FormulaText returns the canonical text of the formula stored at ref,
// or an empty string if the cell holds none
func (s *Session) FormulaText(ref string) (string, error) {
	addr, err := engine.ParseAddress(ref)
	if err != nil {
		return "", err
	}
	formula := s.grid.FormulaAt(addr)
	if formula == nil {
		return "", nil
	}
	return formula.Text(), nil
}

// EvaluateText parses and evaluates formula text against the session
// grid
func (s *Session) EvaluateText(formulaText string) (float64, error) {
	formula, err := engine.Parse(formulaText)
	if err != nil {
		return 0, err
	}
	return engine.Evaluate(formula, s.grid, s.functions)
}

// Translate converts a natural-language phrase to formula text
func (s *Session) Translate(text string) (string, bool) {
	return s.translator.Translate(text)
}

// GenerateData creates records from a free-form request and remembers
// them for later export
func (s *Session) GenerateData(request string) ([]datagen.Record, error) {
	records, err := s.generator.FromRequest(request)
	if err != nil {
		return nil, err
	}
	s.lastRecords = records
	return records, nil
}

// ColumnStats returns the running aggregates for a column named by its
// letters
func (s *Session) ColumnStats(columnName string) (engine.ColumnStats, error) {
	// a full cell reference like "A1" must not pass as a column name
	for _, r := range columnName {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')) {
			return engine.ColumnStats{}, fmt.Errorf("column name must be letters only, got %q", columnName)
		}
	}
	addr, err := engine.ParseAddress(columnName + "1")
	if err != nil {
		return engine.ColumnStats{}, err
	}
	column := s.grid.Column(addr.Col)
	if column == nil {
		return engine.ColumnStats{}, nil
	}
	return column.Stats(), nil
}

// Execute runs one command: formula text when it starts with '=', a
// natural-language phrase when it reads like one, otherwise an operation
// name followed by arguments.
func (s *Session) Execute(command string) (string, error) {
	command = strings.TrimSpace(command)
	if command == "" {
		return "", fmt.Errorf("empty command")
	}

	if strings.HasPrefix(command, "=") {
		result, err := s.EvaluateText(command)
		if err != nil {
			return "", err
		}
		return formatNumber(result), nil
	}

	parts := strings.Fields(command)
	if op, ok := s.operations[strings.ToUpper(parts[0])]; ok {
		return op.Run(s, parts[1:])
	}

	if s.translator.IsFormulaRequest(command) {
		return s.runNatural(command)
	}

	return "", fmt.Errorf("could not understand command: %s", command)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
