package engine

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Excel compatibility ceiling. XFD1048576 is the last addressable cell.
const (
	MaxRow    = 1_048_576
	MaxColumn = 16_384
)

// CellAddress is a 1-based (row, column) coordinate with an Excel-style
// text form. It is an immutable value type, copied by value.
type CellAddress struct {
	Row int
	Col int
}

// NewCellAddress creates an address from 1-based row and column indices
func NewCellAddress(row, col int) CellAddress {
	return CellAddress{Row: row, Col: col}
}

// IsValid checks the address against the Excel ceiling. Decoding does not
// enforce bounds, so callers must check before mutating a Grid.
func (a CellAddress) IsValid() bool {
	return a.Row >= 1 && a.Row <= MaxRow &&
		a.Col >= 1 && a.Col <= MaxColumn
}

func (a CellAddress) String() string {
	return EncodeAddress(a.Row, a.Col)
}

// EncodeAddress converts 1-based row and column indices to Excel notation
// ("A1", "AA27"). Column letters use bijective base-26: digits 1..26 map
// to 'A'..'Z' with no zero digit, so decode(encode(row, col)) == (row, col)
// for every address in range.
func EncodeAddress(row, col int) string {
	return ColumnName(col) + strconv.Itoa(row)
}

// ColumnName returns the bijective base-26 letters for a 1-based column
// index ("A", "Z", "AA")
func ColumnName(col int) string {
	var letters []byte
	for col > 0 {
		col--
		letters = append([]byte{byte('A' + col%26)}, letters...)
		col /= 26
	}
	return string(letters)
}

// DecodeAddress parses Excel notation into a CellAddress. Letters are
// case-insensitive. Validation here is purely syntactic; use IsValid or
// ParseAddress for the bounds check.
func DecodeAddress(text string) (CellAddress, error) {
	// split the leading alphabetic run from the trailing digit run
	letterEnd := 0
	for letterEnd < len(text) {
		ch := text[letterEnd]
		if ch >= 'A' && ch <= 'Z' || ch >= 'a' && ch <= 'z' {
			letterEnd++
		} else {
			break
		}
	}

	if letterEnd == 0 {
		return CellAddress{}, NewAddressError(MissingColumn, text)
	}
	if letterEnd == len(text) {
		return CellAddress{}, NewAddressError(MissingRow, text)
	}

	// column letters via bijective base-26 (A=1 .. Z=26)
	col := 0
	for _, ch := range strings.ToUpper(text[:letterEnd]) {
		col = col*26 + int(ch-'A') + 1
	}

	rowStr := text[letterEnd:]
	row, err := strconv.ParseUint(rowStr, 10, 64)
	if err != nil {
		if !errors.Is(err, strconv.ErrRange) {
			return CellAddress{}, NewAddressError(MalformedRow, text)
		}
		// numerically valid but beyond any representable row; keep it
		// over the ceiling so the bounds check reports it
		row = math.MaxInt
	}
	if row == 0 {
		return CellAddress{}, NewAddressError(RowZero, text)
	}
	if row > math.MaxInt {
		row = math.MaxInt
	}

	return CellAddress{Row: int(row), Col: col}, nil
}

// ParseAddress decodes text and rejects addresses beyond the Excel
// ceiling. This is the entry point boundary layers should use before
// touching a Grid.
func ParseAddress(text string) (CellAddress, error) {
	addr, err := DecodeAddress(text)
	if err != nil {
		return CellAddress{}, err
	}
	if !addr.IsValid() {
		return CellAddress{}, NewSheetError(ErrorCodeOutOfBounds,
			fmt.Sprintf("cell address out of Excel bounds: %s", text))
	}
	return addr, nil
}

// CellRange is an inclusive span between two addresses. Both sides are
// kept as written; iteration order is normalized at evaluation time.
type CellRange struct {
	Start CellAddress
	End   CellAddress
}

func (r CellRange) String() string {
	return fmt.Sprintf("%s:%s", r.Start, r.End)
}
