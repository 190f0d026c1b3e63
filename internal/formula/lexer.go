package formula

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// TokenType defines the token classes produced by the lexer.
type TokenType int

const (
	TokenVar TokenType = iota
	TokenTop
	TokenBottom
	TokenNot
	TokenAnd
	TokenOr
	TokenImplies
	TokenConverse
	TokenIff
	TokenLParen
	TokenRParen
	TokenEOF
)

func (t TokenType) String() string {
	switch t {
	case TokenVar:
		return "variable"
	case TokenTop:
		return "T"
	case TokenBottom:
		return "_"
	case TokenNot:
		return "-"
	case TokenAnd:
		return "^"
	case TokenOr:
		return "v"
	case TokenImplies:
		return "=>"
	case TokenConverse:
		return "<="
	case TokenIff:
		return "<=>"
	case TokenLParen:
		return "("
	case TokenRParen:
		return ")"
	case TokenEOF:
		return "EOF"
	default:
		return "?"
	}
}

// Token represents a single lexical token with type, value, and position.
// Position is the byte offset of the token in the lexed substring.
type Token struct {
	Type     TokenType
	Value    string
	Position int
}

// Lexer scans formula text and produces tokens. Spaces and tabs are
// skipped; they never separate anything meaningful inside a formula.
type Lexer struct {
	input    string
	position int
	tokens   []Token
}

// NewLexer returns a new Lexer with the given input and initializes state.
func NewLexer(input string) *Lexer {
	return &Lexer{
		input:    input,
		position: 0,
		tokens:   make([]Token, 0),
	}
}

// Tokenize processes the entire input and produces the list of tokens,
// terminated by a TokenEOF. It fails on the first byte that cannot start
// a token.
func (l *Lexer) Tokenize() ([]Token, error) {
	for l.position < len(l.input) {
		start := l.position
		r, size := utf8.DecodeRuneInString(l.input[l.position:])

		switch {
		case unicode.IsSpace(r):
			l.position += size

		case r == '(':
			l.addToken(TokenLParen, "(", start)
			l.position += size

		case r == ')':
			l.addToken(TokenRParen, ")", start)
			l.position += size

		case r == '-' || r == '¬':
			l.addToken(TokenNot, l.input[start:start+size], start)
			l.position += size

		case r == '^' || r == '∧':
			l.addToken(TokenAnd, l.input[start:start+size], start)
			l.position += size

		// 'v' is reserved for disjunction, so it must be matched before
		// the variable case below.
		case r == 'v' || r == '∨':
			l.addToken(TokenOr, l.input[start:start+size], start)
			l.position += size

		case r == 'T' || r == '⊤':
			l.addToken(TokenTop, l.input[start:start+size], start)
			l.position += size

		case r == '_' || r == '⊥':
			l.addToken(TokenBottom, l.input[start:start+size], start)
			l.position += size

		case r == '<':
			rest := l.input[l.position:]
			switch {
			case strings.HasPrefix(rest, "<=>"):
				l.addToken(TokenIff, "<=>", start)
				l.position += 3
			case strings.HasPrefix(rest, "<="):
				l.addToken(TokenConverse, "<=", start)
				l.position += 2
			default:
				return nil, &SyntaxError{Offset: start, Want: "'<=' or '<=>'", Got: "'<'"}
			}

		case r == '=':
			if strings.HasPrefix(l.input[l.position:], "=>") {
				l.addToken(TokenImplies, "=>", start)
				l.position += 2
			} else {
				return nil, &SyntaxError{Offset: start, Want: "'=>'", Got: "'='"}
			}

		case r == '⇔':
			l.addToken(TokenIff, l.input[start:start+size], start)
			l.position += size

		case r == '⇒':
			l.addToken(TokenImplies, l.input[start:start+size], start)
			l.position += size

		case r == '⇐':
			l.addToken(TokenConverse, l.input[start:start+size], start)
			l.position += size

		case isASCIILetter(r):
			l.addToken(TokenVar, string(r), start)
			l.position += size

		default:
			return nil, &SyntaxError{Offset: start, Want: "formula character", Got: fmt.Sprintf("%q", r)}
		}
	}

	l.addToken(TokenEOF, "", l.position)
	return l.tokens, nil
}

// addToken is a helper to append a new token to the lexer's token list.
func (l *Lexer) addToken(tokenType TokenType, value string, pos int) {
	l.tokens = append(l.tokens, Token{
		Type:     tokenType,
		Value:    value,
		Position: pos,
	})
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
