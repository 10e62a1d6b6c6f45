package engine

import "fmt"

// ErrorCode represents numeric constants for engine error kinds
type ErrorCode uint8

const (
	ErrorCodeUnboundCell       ErrorCode = 1 // cell has never been written
	ErrorCodeDivisionByZero    ErrorCode = 2 // division by zero during evaluation
	ErrorCodeUnknownFunction   ErrorCode = 3 // function name not in the registry
	ErrorCodeMalformedRange    ErrorCode = 4 // range used where a scalar is required
	ErrorCodeFormulaTooComplex ErrorCode = 5 // nesting depth limit exceeded
	ErrorCodeOutOfBounds       ErrorCode = 6 // address beyond the Excel ceiling
)

// errorMapper maps error codes to their display representations
var errorMapper = map[ErrorCode]string{
	ErrorCodeUnboundCell:       "unbound cell",
	ErrorCodeDivisionByZero:    "division by zero",
	ErrorCodeUnknownFunction:   "unknown function",
	ErrorCodeMalformedRange:    "malformed range",
	ErrorCodeFormulaTooComplex: "formula too complex",
	ErrorCodeOutOfBounds:       "address out of bounds",
}

// SheetError preserves the error code so callers can distinguish error
// kinds without string matching
type SheetError struct {
	Code    ErrorCode
	Message string
}

func (e *SheetError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return errorMapper[e.Code]
}

func NewSheetError(code ErrorCode, message string) *SheetError {
	if message == "" {
		message = errorMapper[code]
	}
	return &SheetError{
		Code:    code,
		Message: message,
	}
}

// ErrorCodeOf returns the code carried by err, or 0 if err is not
// a *SheetError
func ErrorCodeOf(err error) ErrorCode {
	if se, ok := err.(*SheetError); ok {
		return se.Code
	}
	return 0
}

// AddressErrorKind classifies why a cell address failed to decode
type AddressErrorKind uint8

const (
	MissingColumn AddressErrorKind = iota // no leading letters
	MissingRow                            // no trailing digits
	RowZero                               // row parsed as zero
	MalformedRow                          // digit run is not a valid unsigned integer
)

var addressErrorMapper = map[AddressErrorKind]string{
	MissingColumn: "missing column letters",
	MissingRow:    "missing row number",
	RowZero:       "row number must be at least 1",
	MalformedRow:  "malformed row number",
}

// AddressError reports a cell address that could not be decoded
type AddressError struct {
	Kind  AddressErrorKind
	Input string
}

func (e *AddressError) Error() string {
	return fmt.Sprintf("invalid cell address %q: %s", e.Input, addressErrorMapper[e.Kind])
}

func NewAddressError(kind AddressErrorKind, input string) *AddressError {
	return &AddressError{Kind: kind, Input: input}
}

// ParseError reports a formula that could not be parsed. Position is the
// byte offset into the formula text, and Trailing holds any unconsumed
// input when the parser stopped before the end.
type ParseError struct {
	Expected string
	Position int
	Trailing string
}

func (e *ParseError) Error() string {
	if e.Trailing != "" {
		return fmt.Sprintf("parse error at %d: expected %s, trailing input %q", e.Position, e.Expected, e.Trailing)
	}
	return fmt.Sprintf("parse error at %d: expected %s", e.Position, e.Expected)
}

func NewParseError(expected string, position int) *ParseError {
	return &ParseError{Expected: expected, Position: position}
}
