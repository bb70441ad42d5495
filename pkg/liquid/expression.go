package liquid

import (
	"strconv"
	"strings"
)

// Expression is a parsed object or condition operand: a literal value, a
// single lookup key, or a lookup path.
type Expression interface {
	expression()
	String() string
}

// Literal is a constant value: a quoted string, a number, or one of the
// keywords true, false, nil.
type Literal struct {
	Value Value
}

func (*Literal) expression() {}

func (l *Literal) String() string {
	switch v := l.Value.(type) {
	case StringValue:
		return strconv.Quote(string(v))
	case NilValue:
		return "nil"
	}
	return l.Value.String()
}

// LookupKey is a single name resolved against a hash. On its own it reads a
// context variable; inside a Lookup path it reads a member.
type LookupKey struct {
	Name string
}

func (*LookupKey) expression() {}

func (k *LookupKey) String() string { return k.Name }

// Lookup is a variable path such as a.b[0].c. The first element is always a
// LookupKey naming the root variable; later elements are LookupKeys for dot
// and string subscripts, Literals for static indices, and nested Lookups for
// dynamic subscripts.
type Lookup struct {
	Path []Expression
}

func (*Lookup) expression() {}

func (l *Lookup) String() string {
	var sb strings.Builder
	for i, child := range l.Path {
		if k, ok := child.(*LookupKey); ok && isIdentName(k.Name) {
			if i > 0 {
				sb.WriteByte('.')
			}
			sb.WriteString(k.Name)
			continue
		}
		sb.WriteByte('[')
		if k, ok := child.(*LookupKey); ok {
			sb.WriteString(strconv.Quote(k.Name))
		} else {
			sb.WriteString(child.String())
		}
		sb.WriteByte(']')
	}
	return sb.String()
}

func isIdentName(s string) bool {
	if s == "" || !isIdentStart(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isIdentPart(s[i]) {
			return false
		}
	}
	return true
}

// ParseExpression parses one expression from the markup cursor. It stops at
// the first token that cannot extend the expression; callers decide whether
// what follows is acceptable.
func ParseExpression(p *Parser) (Expression, error) {
	switch tok := p.Peek(); tok.Kind {
	case TokenString:
		p.next()
		return &Literal{Value: StringValue(tok.Value)}, nil
	case TokenNumber:
		p.next()
		return numberLiteral(tok)
	case TokenId:
		switch tok.Value {
		case "true":
			p.next()
			return &Literal{Value: BoolValue(true)}, nil
		case "false":
			p.next()
			return &Literal{Value: BoolValue(false)}, nil
		case "nil":
			p.next()
			return &Literal{Value: NilValue{}}, nil
		}
		return parseLookup(p)
	default:
		return nil, syntaxErrorf("expected expression, got %s", describeToken(tok))
	}
}

func parseLookup(p *Parser) (Expression, error) {
	tok, err := p.Consume(TokenId)
	if err != nil {
		return nil, err
	}
	path := []Expression{&LookupKey{Name: tok.Value}}
	for {
		switch {
		case p.Look(TokenDot):
			p.next()
			tok, err := p.Consume(TokenId)
			if err != nil {
				return nil, err
			}
			path = append(path, &LookupKey{Name: tok.Value})
		case p.Look(TokenOpenBracket):
			p.next()
			sub, err := parseSubscript(p)
			if err != nil {
				return nil, err
			}
			if _, err := p.Consume(TokenCloseBracket); err != nil {
				return nil, err
			}
			path = append(path, sub)
		default:
			return &Lookup{Path: path}, nil
		}
	}
}

// parseSubscript parses the expression inside [ ]. A string subscript is the
// same as a dot member, a number is a static index, and an identifier starts
// a nested lookup resolved at render time.
func parseSubscript(p *Parser) (Expression, error) {
	switch tok := p.Peek(); tok.Kind {
	case TokenNumber:
		p.next()
		return numberLiteral(tok)
	case TokenString:
		p.next()
		return &LookupKey{Name: tok.Value}, nil
	case TokenId:
		return parseLookup(p)
	default:
		return nil, syntaxErrorf("expected subscript, got %s", describeToken(tok))
	}
}

func numberLiteral(tok Token) (Expression, error) {
	if strings.Contains(tok.Value, ".") {
		f, err := strconv.ParseFloat(tok.Value, 64)
		if err != nil {
			return nil, syntaxErrorf("invalid number %q", tok.Value)
		}
		return &Literal{Value: FloatValue(f)}, nil
	}
	n, err := strconv.ParseInt(tok.Value, 10, 64)
	if err != nil {
		return nil, syntaxErrorf("invalid number %q", tok.Value)
	}
	return &Literal{Value: IntValue(n)}, nil
}

// resolveExpression turns a parsed expression into a value: literals yield
// their constant, lookups evaluate against the context.
func resolveExpression(expr Expression, ctx Context) (Value, error) {
	if lit, ok := expr.(*Literal); ok {
		return lit.Value, nil
	}
	return ctx.Evaluate(expr)
}
