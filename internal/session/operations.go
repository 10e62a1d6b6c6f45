package session

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/quantumsheets/quantum-sheets/internal/export"
)

// OperationKind classifies an operation for listings
type OperationKind uint8

const (
	KindCalculation OperationKind = iota
	KindPrompt
	KindDataGeneration
	KindCustom
)

func (k OperationKind) String() string {
	switch k {
	case KindCalculation:
		return "calculation"
	case KindPrompt:
		return "prompt"
	case KindDataGeneration:
		return "data-generation"
	default:
		return "custom"
	}
}

// OperationFunc executes one named command against the session
type OperationFunc func(s *Session, args []string) (string, error)

// Operation is a named command with a description for listings
type Operation struct {
	Name        string
	Kind        OperationKind
	Description string
	Run         OperationFunc
}

// RegisterOperation adds a custom operation, replacing any builtin of
// the same name
func (s *Session) RegisterOperation(op Operation) {
	s.operations[strings.ToUpper(op.Name)] = op
}

// Operations returns "NAME - description" lines for every registered
// operation, sorted by name
func (s *Session) Operations() []string {
	lines := make([]string, 0, len(s.operations))
	for _, op := range s.operations {
		lines = append(lines, fmt.Sprintf("%s - %s", op.Name, op.Description))
	}
	sort.Strings(lines)
	return lines
}

func (s *Session) registerBuiltins() {
	s.RegisterOperation(Operation{
		Name: "SET", Kind: KindCalculation,
		Description: "Set a cell value: SET A1 10",
		Run:         opSet,
	})
	s.RegisterOperation(Operation{
		Name: "GET", Kind: KindCalculation,
		Description: "Get a cell value: GET A1",
		Run:         opGet,
	})
	s.RegisterOperation(Operation{
		Name: "FORMULA", Kind: KindCalculation,
		Description: "Store a formula: FORMULA C1 =A1+B1",
		Run:         opFormula,
	})
	s.RegisterOperation(Operation{
		Name: "STATS", Kind: KindCalculation,
		Description: "Column aggregates: STATS A",
		Run:         opStats,
	})
	s.RegisterOperation(Operation{
		Name: "SUM", Kind: KindCalculation,
		Description: "Sum numbers: SUM 1 2 3",
		Run:         opSum,
	})
	s.RegisterOperation(Operation{
		Name: "DOUBLE", Kind: KindCalculation,
		Description: "Double a number: DOUBLE 21",
		Run:         opDouble,
	})
	s.RegisterOperation(Operation{
		Name: "GENERATE", Kind: KindDataGeneration,
		Description: "Generate test data: GENERATE 100 phone city gender",
		Run:         opGenerate,
	})
	s.RegisterOperation(Operation{
		Name: "NATURAL", Kind: KindPrompt,
		Description: "Run a natural-language command: NATURAL add A1 and B2",
		Run:         opNatural,
	})
	s.RegisterOperation(Operation{
		Name: "EXPORT", Kind: KindCalculation,
		Description: "Export grid or records: EXPORT csv|json|xlsx <file>",
		Run:         opExport,
	})
	s.RegisterOperation(Operation{
		Name: "OPS", Kind: KindCalculation,
		Description: "List available operations",
		Run: func(s *Session, args []string) (string, error) {
			return strings.Join(s.Operations(), "\n"), nil
		},
	})
}

func opSet(s *Session, args []string) (string, error) {
	if len(args) != 2 {
		return "", fmt.Errorf("usage: SET <cell> <value>")
	}
	value, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return "", fmt.Errorf("%q is not a valid number", args[1])
	}
	if err := s.SetValue(args[0], value); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s = %s", strings.ToUpper(args[0]), formatNumber(value)), nil
}

func opGet(s *Session, args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("usage: GET <cell>")
	}
	value, err := s.Value(args[0])
	if err != nil {
		return "", err
	}
	return formatNumber(value), nil
}

func opFormula(s *Session, args []string) (string, error) {
	if len(args) < 2 {
		return "", fmt.Errorf("usage: FORMULA <cell> <formula>")
	}
	formulaText := strings.Join(args[1:], " ")
	if !strings.HasPrefix(formulaText, "=") {
		return "", fmt.Errorf("formula must start with '='")
	}
	if err := s.SetFormula(args[0], formulaText); err != nil {
		return "", err
	}
	stored, err := s.FormulaText(args[0])
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s stores %s", strings.ToUpper(args[0]), stored), nil
}

func opStats(s *Session, args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("usage: STATS <column>")
	}
	stats, err := s.ColumnStats(args[0])
	if err != nil {
		return "", err
	}
	if stats.Count == 0 {
		return fmt.Sprintf("column %s is empty", strings.ToUpper(args[0])), nil
	}
	return fmt.Sprintf("count=%d sum=%s min=%s max=%s",
		stats.Count, formatNumber(stats.Sum),
		formatNumber(stats.Min), formatNumber(stats.Max)), nil
}

func opSum(s *Session, args []string) (string, error) {
	total := 0.0
	for _, arg := range args {
		num, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			// cell references are accepted alongside literals
			value, cellErr := s.Value(arg)
			if cellErr != nil {
				return "", fmt.Errorf("%q is neither a number nor a bound cell", arg)
			}
			num = value
		}
		total += num
	}
	return formatNumber(total), nil
}

func opDouble(s *Session, args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("usage: DOUBLE <number>")
	}
	num, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return "", fmt.Errorf("%q is not a valid number", args[0])
	}
	return fmt.Sprintf("%s doubled is %s", formatNumber(num), formatNumber(num*2)), nil
}

func opGenerate(s *Session, args []string) (string, error) {
	request := strings.Join(args, " ")
	if request == "" {
		request = "rows with phone, city, gender"
	}
	records, err := s.GenerateData(request)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "generated %d rows\n", len(records))
	shown := len(records)
	if shown > 10 {
		shown = 10
	}
	for _, r := range records[:shown] {
		fmt.Fprintf(&b, "%d,%s,%s,%s\n", r.ID, r.Phone, r.City, r.Gender)
	}
	if len(records) > shown {
		fmt.Fprintf(&b, "... and %d more\n", len(records)-shown)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func (s *Session) runNatural(command string) (string, error) {
	formula, ok := s.Translate(command)
	if !ok {
		return fmt.Sprintf("understood: %s", command), nil
	}
	result, err := s.EvaluateText(formula)
	if err != nil {
		return "", fmt.Errorf("translated to %s but could not evaluate: %w", formula, err)
	}
	return fmt.Sprintf("%s = %s", formula, formatNumber(result)), nil
}

func opNatural(s *Session, args []string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("usage: NATURAL <phrase>")
	}
	return s.runNatural(strings.Join(args, " "))
}

func opExport(s *Session, args []string) (string, error) {
	if len(args) != 2 {
		return "", fmt.Errorf("usage: EXPORT csv|json|xlsx <file>")
	}
	format, path := strings.ToLower(args[0]), args[1]

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	switch format {
	case "csv":
		if s.lastRecords != nil {
			err = export.RecordsCSV(f, s.lastRecords)
		} else {
			err = export.GridCSV(f, s.grid)
		}
	case "json":
		err = export.RecordsJSON(f, s.lastRecords)
	case "xlsx":
		err = export.GridXLSX(f, s.grid)
	default:
		return "", fmt.Errorf("unknown export format %q", format)
	}
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("exported to %s", path), nil
}
