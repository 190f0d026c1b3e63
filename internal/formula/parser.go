package formula

import "fmt"

// SyntaxError reports malformed formula text. Offset is a byte offset into
// the parsed substring; callers translate it to a line column.
type SyntaxError struct {
	Offset int
	Want   string // token class expected
	Got    string // offending lexeme, empty at end of input
}

func (e *SyntaxError) Error() string {
	got := e.Got
	if got == "" {
		got = "end of formula"
	}
	return fmt.Sprintf("expected %s, got %s", e.Want, got)
}

// DepthError reports grammar nesting beyond the configured limit.
type DepthError struct {
	Offset int
	Limit  int
}

func (e *DepthError) Error() string {
	return fmt.Sprintf("formula nesting deeper than %d levels", e.Limit)
}

// DefaultMaxDepth bounds grammar recursion (parenthesized groups, stacked
// negations, implication chains) for Parse.
const DefaultMaxDepth = 128

// Parse parses src into a Formula using DefaultMaxDepth.
func Parse(src string) (Formula, error) {
	return ParseDepth(src, DefaultMaxDepth)
}

// ParseDepth parses src, failing with a DepthError once grammar recursion
// exceeds maxDepth.
func ParseDepth(src string, maxDepth int) (Formula, error) {
	tokens, err := NewLexer(src).Tokenize()
	if err != nil {
		return nil, err
	}
	p := NewParser(tokens, maxDepth)
	f, err := p.parseIff()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.Type != TokenEOF {
		return nil, &SyntaxError{Offset: tok.Position, Want: "end of formula", Got: quote(tok)}
	}
	return f, nil
}

// Parser consumes tokens produced by the lexer and builds a Formula.
type Parser struct {
	tokens   []Token
	current  int
	depth    int
	maxDepth int
}

// NewParser creates a new Parser instance. The token slice must be
// terminated by a TokenEOF, as produced by Lexer.Tokenize.
func NewParser(tokens []Token, maxDepth int) *Parser {
	return &Parser{tokens: tokens, maxDepth: maxDepth}
}

func (p *Parser) peek() Token {
	return p.tokens[p.current]
}

func (p *Parser) next() Token {
	tok := p.tokens[p.current]
	if tok.Type != TokenEOF {
		p.current++
	}
	return tok
}

// enter guards every recursion point of the grammar so that adversarial
// nesting fails with a bounded error instead of exhausting the call stack.
func (p *Parser) enter(offset int) error {
	p.depth++
	if p.depth > p.maxDepth {
		return &DepthError{Offset: offset, Limit: p.maxDepth}
	}
	return nil
}

func (p *Parser) leave() { p.depth-- }

func (p *Parser) parseIff() (Formula, error) {
	left, err := p.parseImplication()
	if err != nil {
		return nil, err
	}
	for p.peek().Type == TokenIff {
		p.next()
		right, err := p.parseImplication()
		if err != nil {
			return nil, err
		}
		left = Iff{Left: left, Right: right}
	}
	return left, nil
}

// parseImplication handles => and <= as one right-associative level:
// a => b => c parses as a => (b => c).
func (p *Parser) parseImplication() (Formula, error) {
	left, err := p.parseDisjunction()
	if err != nil {
		return nil, err
	}
	op := p.peek().Type
	if op != TokenImplies && op != TokenConverse {
		return left, nil
	}
	tok := p.next()
	if err := p.enter(tok.Position); err != nil {
		return nil, err
	}
	right, err := p.parseImplication()
	p.leave()
	if err != nil {
		return nil, err
	}
	if op == TokenImplies {
		return Implies{Left: left, Right: right}, nil
	}
	return ConverseImplies{Left: left, Right: right}, nil
}

func (p *Parser) parseDisjunction() (Formula, error) {
	left, err := p.parseConjunction()
	if err != nil {
		return nil, err
	}
	for p.peek().Type == TokenOr {
		p.next()
		right, err := p.parseConjunction()
		if err != nil {
			return nil, err
		}
		left = Or{Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseConjunction() (Formula, error) {
	left, err := p.parseNegation()
	if err != nil {
		return nil, err
	}
	for p.peek().Type == TokenAnd {
		p.next()
		right, err := p.parseNegation()
		if err != nil {
			return nil, err
		}
		left = And{Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseNegation() (Formula, error) {
	if p.peek().Type != TokenNot {
		return p.parseAtom()
	}
	tok := p.next()
	if err := p.enter(tok.Position); err != nil {
		return nil, err
	}
	operand, err := p.parseNegation()
	p.leave()
	if err != nil {
		return nil, err
	}
	return Not{Operand: operand}, nil
}

func (p *Parser) parseAtom() (Formula, error) {
	tok := p.next()
	switch tok.Type {
	case TokenVar:
		return Var{Name: tok.Value[0]}, nil
	case TokenTop:
		return Top{}, nil
	case TokenBottom:
		return Bottom{}, nil
	case TokenLParen:
		if p.peek().Type == TokenRParen {
			return nil, &SyntaxError{Offset: p.peek().Position, Want: "formula", Got: "')'"}
		}
		if err := p.enter(tok.Position); err != nil {
			return nil, err
		}
		inner, err := p.parseIff()
		p.leave()
		if err != nil {
			return nil, err
		}
		if closing := p.next(); closing.Type != TokenRParen {
			return nil, &SyntaxError{Offset: closing.Position, Want: "closing parenthesis", Got: quote(closing)}
		}
		return inner, nil
	default:
		return nil, &SyntaxError{Offset: tok.Position, Want: "operand", Got: quote(tok)}
	}
}

func quote(tok Token) string {
	if tok.Type == TokenEOF {
		return ""
	}
	return "'" + tok.Value + "'"
}
