package liquid

import "fmt"

// TokenKind discriminates markup tokens.
type TokenKind int

const (
	TokenEof TokenKind = iota
	TokenId
	TokenOperator
	TokenString
	TokenNumber
	TokenDot
	TokenOpenBracket
	TokenCloseBracket
)

func (k TokenKind) String() string {
	switch k {
	case TokenEof:
		return "end of markup"
	case TokenId:
		return "identifier"
	case TokenOperator:
		return "operator"
	case TokenString:
		return "string"
	case TokenNumber:
		return "number"
	case TokenDot:
		return "dot"
	case TokenOpenBracket:
		return "opening bracket"
	case TokenCloseBracket:
		return "closing bracket"
	}
	return "unknown token"
}

// Token is one lexed markup element. String tokens carry their value without
// the quotes; number tokens carry the unparsed digits.
type Token struct {
	Kind  TokenKind
	Value string
}

// Parser is a token cursor over the markup inside one object or tag. The
// token stream always ends with a TokenEof sentinel and the cursor never
// advances past it.
type Parser struct {
	tokens []Token
	i      int
}

// NewParser lexes markup into a Parser. Lexing is eager, so malformed markup
// fails here rather than mid-parse.
func NewParser(markup string) (*Parser, error) {
	tokens, err := tokenizeMarkup(markup)
	if err != nil {
		return nil, err
	}
	return &Parser{tokens: append(tokens, Token{Kind: TokenEof})}, nil
}

// Peek returns the current token without advancing.
func (p *Parser) Peek() Token {
	return p.tokens[p.i]
}

// Look reports whether the current token has the given kind.
func (p *Parser) Look(kind TokenKind) bool {
	return p.tokens[p.i].Kind == kind
}

// Consume returns the current token and advances, failing if its kind does
// not match.
func (p *Parser) Consume(kind TokenKind) (Token, error) {
	tok := p.tokens[p.i]
	if tok.Kind != kind {
		return Token{}, syntaxErrorf("expected %s, got %s", kind, describeToken(tok))
	}
	p.advance()
	return tok, nil
}

func (p *Parser) next() Token {
	tok := p.tokens[p.i]
	p.advance()
	return tok
}

func (p *Parser) advance() {
	if p.i < len(p.tokens)-1 {
		p.i++
	}
}

func describeToken(tok Token) string {
	if tok.Kind == TokenEof {
		return tok.Kind.String()
	}
	return fmt.Sprintf("%s %q", tok.Kind, tok.Value)
}

func tokenizeMarkup(src string) ([]Token, error) {
	var tokens []Token
	i := 0
	for i < len(src) {
		ch := src[i]
		switch {
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			i++
		case isIdentStart(ch):
			start := i
			for i < len(src) && isIdentPart(src[i]) {
				i++
			}
			word := src[start:i]
			switch word {
			case "and", "or", "contains":
				tokens = append(tokens, Token{Kind: TokenOperator, Value: word})
			default:
				tokens = append(tokens, Token{Kind: TokenId, Value: word})
			}
		case isDigit(ch) || ch == '-':
			start := i
			if ch == '-' {
				if i+1 >= len(src) || !isDigit(src[i+1]) {
					return nil, syntaxErrorf("unexpected character %q in markup", ch)
				}
				i++
			}
			for i < len(src) && isDigit(src[i]) {
				i++
			}
			if i+1 < len(src) && src[i] == '.' && isDigit(src[i+1]) {
				i++
				for i < len(src) && isDigit(src[i]) {
					i++
				}
			}
			tokens = append(tokens, Token{Kind: TokenNumber, Value: src[start:i]})
		case ch == '\'' || ch == '"':
			i++
			start := i
			for i < len(src) && src[i] != ch {
				i++
			}
			if i >= len(src) {
				return nil, syntaxErrorf("unterminated string in markup")
			}
			tokens = append(tokens, Token{Kind: TokenString, Value: src[start:i]})
			i++
		case ch == '.':
			tokens = append(tokens, Token{Kind: TokenDot})
			i++
		case ch == '[':
			tokens = append(tokens, Token{Kind: TokenOpenBracket})
			i++
		case ch == ']':
			tokens = append(tokens, Token{Kind: TokenCloseBracket})
			i++
		case ch == '=' || ch == '<' || ch == '>':
			op := string(ch)
			i++
			if i < len(src) && src[i] == '=' {
				op += "="
				i++
			}
			tokens = append(tokens, Token{Kind: TokenOperator, Value: op})
		case ch == '!':
			if i+1 < len(src) && src[i+1] == '=' {
				tokens = append(tokens, Token{Kind: TokenOperator, Value: "!="})
				i += 2
			} else {
				return nil, syntaxErrorf("unexpected character %q in markup", ch)
			}
		default:
			return nil, syntaxErrorf("unexpected character %q in markup", ch)
		}
	}
	return tokens, nil
}

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}
