package engine

import (
	"strconv"
	"strings"
)

// MaxFormulaDepth bounds expression nesting in both the parser and the
// evaluator. Pathologically nested formulas fail with
// ErrorCodeFormulaTooComplex instead of exhausting the call stack.
const MaxFormulaDepth = 100

// Parser parses tokens into an AST using recursive descent with
// precedence climbing: Expression handles '+'/'-', Term handles '*'/'/',
// Factor handles operands. Both repetition levels accept zero trailing
// operators, so a bare "=A1" or "=42" parses.
//
// The '^' operator is represented in the AST and the evaluator but is
// not produced by the grammar.
type Parser struct {
	input  string
	tokens []Token
	pos    int
	depth  int
}

// Parse parses formula text (including the leading '=') into a Formula
func Parse(text string) (*Formula, error) {
	lexer := NewLexer(text)
	tokens, err := lexer.Tokenize()
	if err != nil {
		return nil, err
	}

	p := &Parser{input: text, tokens: tokens}

	if p.current().Type != TokenEquals {
		return nil, NewParseError("'=' formula prefix", p.current().Pos)
	}
	p.pos++

	root, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	// the whole input must be consumed
	if tok := p.current(); tok.Type != TokenEOF {
		return nil, &ParseError{
			Expected: "end of formula",
			Position: tok.Pos,
			Trailing: text[tok.Pos:],
		}
	}

	return &Formula{Root: root}, nil
}

// parseExpression handles addition and subtraction
func (p *Parser) parseExpression() (Expr, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	for p.current().Type == TokenOperator {
		var op BinaryOp
		switch p.current().Value {
		case "+":
			op = BinOpAdd
		case "-":
			op = BinOpSubtract
		default:
			return left, nil
		}

		p.pos++
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}

		left = &BinaryOpNode{
			Op:    op,
			Left:  left,
			Right: right,
			Pos:   NodePosition{Start: left.Position().Start, End: right.Position().End},
		}
	}

	return left, nil
}

// parseTerm handles multiplication and division
func (p *Parser) parseTerm() (Expr, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}

	for p.current().Type == TokenOperator {
		var op BinaryOp
		switch p.current().Value {
		case "*":
			op = BinOpMultiply
		case "/":
			op = BinOpDivide
		default:
			return left, nil
		}

		p.pos++
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}

		left = &BinaryOpNode{
			Op:    op,
			Left:  left,
			Right: right,
			Pos:   NodePosition{Start: left.Position().Start, End: right.Position().End},
		}
	}

	return left, nil
}

// parseFactor handles operands: numbers, ranges, cell references,
// function calls, and parenthesized expressions. Ranges are attempted
// before plain cell references so "A1:A10" never parses as a cell
// followed by a dangling colon.
func (p *Parser) parseFactor() (Expr, error) {
	tok := p.current()

	switch tok.Type {
	case TokenOperator:
		// a negative number literal, per the grammar's ['-'] digits
		if tok.Value == "-" && p.peek().Type == TokenNumber {
			p.pos++
			node, err := p.parseNumber()
			if err != nil {
				return nil, err
			}
			num := node.(*NumberNode)
			num.Value = -num.Value
			num.Pos.Start = tok.Pos
			return num, nil
		}
		return nil, NewParseError("number, cell reference, function call, or '('", tok.Pos)

	case TokenNumber:
		return p.parseNumber()

	case TokenCell:
		return p.parseCellOrRange()

	case TokenFunction:
		return p.parseFunctionCall()

	case TokenLeftParen:
		p.pos++
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		closing := p.current()
		if closing.Type != TokenRightParen {
			return nil, NewParseError("closing parenthesis", closing.Pos)
		}
		p.pos++
		return &GroupNode{
			Inner: inner,
			Pos:   NodePosition{Start: tok.Pos, End: closing.Pos + 1},
		}, nil

	default:
		return nil, NewParseError("number, cell reference, function call, or '('", tok.Pos)
	}
}

func (p *Parser) parseNumber() (Expr, error) {
	tok := p.current()
	value, err := strconv.ParseFloat(tok.Value, 64)
	if err != nil {
		return nil, NewParseError("number", tok.Pos)
	}
	p.pos++
	return &NumberNode{
		Value: value,
		Pos:   NodePosition{Start: tok.Pos, End: tok.Pos + len(tok.Value)},
	}, nil
}

func (p *Parser) parseCellOrRange() (Expr, error) {
	tok := p.current()
	start, err := DecodeAddress(tok.Value)
	if err != nil {
		return nil, NewParseError("cell reference", tok.Pos)
	}
	p.pos++

	// range before plain cell reference
	if p.current().Type == TokenColon {
		p.pos++
		endTok := p.current()
		if endTok.Type != TokenCell {
			return nil, NewParseError("cell reference after ':'", endTok.Pos)
		}
		end, err := DecodeAddress(endTok.Value)
		if err != nil {
			return nil, NewParseError("cell reference after ':'", endTok.Pos)
		}
		p.pos++
		return &RangeNode{
			Start: start,
			End:   end,
			Pos:   NodePosition{Start: tok.Pos, End: endTok.Pos + len(endTok.Value)},
		}, nil
	}

	return &CellRefNode{
		Addr: start,
		Pos:  NodePosition{Start: tok.Pos, End: tok.Pos + len(tok.Value)},
	}, nil
}

// parseFunctionCall parses a function call. Names are matched
// case-insensitively and stored uppercase.
func (p *Parser) parseFunctionCall() (Expr, error) {
	funcTok := p.current()
	p.pos++

	if p.current().Type != TokenLeftParen {
		return nil, NewParseError("'(' after function name", p.current().Pos)
	}
	p.pos++

	args := []Expr{}

	// empty argument list
	if p.current().Type == TokenRightParen {
		end := p.current().Pos + 1
		p.pos++
		return &FunctionCallNode{
			Name: strings.ToUpper(funcTok.Value),
			Args: args,
			Pos:  NodePosition{Start: funcTok.Pos, End: end},
		}, nil
	}

	for {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		tok := p.current()
		if tok.Type == TokenRightParen {
			p.pos++
			return &FunctionCallNode{
				Name: strings.ToUpper(funcTok.Value),
				Args: args,
				Pos:  NodePosition{Start: funcTok.Pos, End: tok.Pos + 1},
			}, nil
		}
		if tok.Type != TokenComma {
			return nil, NewParseError("',' or ')' in function arguments", tok.Pos)
		}
		p.pos++
	}
}

func (p *Parser) current() Token {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	return Token{Type: TokenEOF, Pos: len(p.input)}
}

func (p *Parser) peek() Token {
	if p.pos+1 < len(p.tokens) {
		return p.tokens[p.pos+1]
	}
	return Token{Type: TokenEOF, Pos: len(p.input)}
}

func (p *Parser) enter() error {
	p.depth++
	if p.depth > MaxFormulaDepth {
		return NewSheetError(ErrorCodeFormulaTooComplex, "")
	}
	return nil
}

func (p *Parser) leave() {
	p.depth--
}
