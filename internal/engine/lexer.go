package engine

// TokenType represents different types of tokens in formulas
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenEquals
	TokenNumber
	TokenCell
	TokenFunction
	TokenOperator
	TokenComma
	TokenColon
	TokenLeftParen
	TokenRightParen
)

// Token represents a lexical token with position information
type Token struct {
	Type  TokenType
	Value string
	Pos   int // byte position in input
}

// Lexer tokenizes formula expressions
type Lexer struct {
	input string
	pos   int
}

// NewLexer creates a new lexer for the given formula input
func NewLexer(input string) *Lexer {
	return &Lexer{input: input, pos: 0}
}

// Tokenize scans the whole input and returns the token stream terminated
// by an EOF token. Whitespace between tokens is skipped; whitespace never
// appears inside a token, so "A1" lexes as a cell while "A 1" does not.
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens, nil
		}
	}
}

func (l *Lexer) next() (Token, error) {
	l.skipWhitespace()

	if l.pos >= len(l.input) {
		return Token{Type: TokenEOF, Pos: l.pos}, nil
	}

	start := l.pos
	ch := l.input[l.pos]

	switch {
	case ch == '=':
		l.pos++
		return Token{Type: TokenEquals, Value: "=", Pos: start}, nil

	case ch == '+' || ch == '-' || ch == '*' || ch == '/' || ch == '^':
		l.pos++
		return Token{Type: TokenOperator, Value: string(ch), Pos: start}, nil

	case ch == '(':
		l.pos++
		return Token{Type: TokenLeftParen, Value: "(", Pos: start}, nil

	case ch == ')':
		l.pos++
		return Token{Type: TokenRightParen, Value: ")", Pos: start}, nil

	case ch == ',':
		l.pos++
		return Token{Type: TokenComma, Value: ",", Pos: start}, nil

	case ch == ':':
		l.pos++
		return Token{Type: TokenColon, Value: ":", Pos: start}, nil

	case isDigit(ch):
		return l.lexNumber()

	case isLetter(ch):
		return l.lexReference()

	default:
		return Token{}, NewParseError("valid token", start)
	}
}

// lexNumber scans digits with an optional fractional part. The leading
// minus of a negative literal is handled by the parser, which knows
// whether it sits in operand or operator position.
func (l *Lexer) lexNumber() (Token, error) {
	start := l.pos
	for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
		l.pos++
	}

	// fractional part requires at least one digit after the period
	if l.pos < len(l.input) && l.input[l.pos] == '.' {
		if l.pos+1 >= len(l.input) || !isDigit(l.input[l.pos+1]) {
			return Token{}, NewParseError("digit after decimal point", l.pos + 1)
		}
		l.pos++
		for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
			l.pos++
		}
	}

	return Token{Type: TokenNumber, Value: l.input[start:l.pos], Pos: start}, nil
}

// lexReference scans an alphabetic run and classifies it: letters
// immediately followed by digits form a cell reference, anything else is
// a function name.
func (l *Lexer) lexReference() (Token, error) {
	start := l.pos
	for l.pos < len(l.input) && isLetter(l.input[l.pos]) {
		l.pos++
	}

	if l.pos < len(l.input) && isDigit(l.input[l.pos]) {
		for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
			l.pos++
		}
		return Token{Type: TokenCell, Value: l.input[start:l.pos], Pos: start}, nil
	}

	return Token{Type: TokenFunction, Value: l.input[start:l.pos], Pos: start}, nil
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) {
		switch l.input[l.pos] {
		case ' ', '\t', '\n', '\r':
			l.pos++
		default:
			return
		}
	}
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isLetter(ch byte) bool {
	return ch >= 'A' && ch <= 'Z' || ch >= 'a' && ch <= 'z'
}
