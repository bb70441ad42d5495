package liquid

import "strings"

// Node is one parsed template element. Rendering returns the node's text
// under the given context.
type Node interface {
	Render(ctx Context) (string, error)
}

// TextNode is literal template text, emitted verbatim.
type TextNode struct {
	Text string
}

func (n *TextNode) Render(ctx Context) (string, error) {
	return n.Text, nil
}

// ObjectNode is an output object {{ expr }}. It renders the expression's
// value in its text form.
type ObjectNode struct {
	Expr Expression
}

func (n *ObjectNode) Render(ctx Context) (string, error) {
	v, err := resolveExpression(n.Expr, ctx)
	if err != nil {
		return "", err
	}
	return v.String(), nil
}

// UnknownTagHandler decides what happens to tag names the dispatch table
// does not know. Block tags install handlers that recognize their
// terminators and forward everything else outward; the handler at the end of
// the chain is DefaultUnknownTagHandler. The empty name is the end-of-input
// sentinel, passed with a nil markup cursor once the source is exhausted.
// Returning stop ends parsing of the current block body.
type UnknownTagHandler func(name string, markup *Parser) (stop bool, err error)

// DefaultUnknownTagHandler accepts the end-of-input sentinel and rejects
// every real tag name.
func DefaultUnknownTagHandler(name string, markup *Parser) (bool, error) {
	if name == "" {
		return false, nil
	}
	return false, &UnknownTagError{Name: name}
}

// BlockBody is a sequence of nodes: the whole template, or the body of one
// block tag branch.
type BlockBody struct {
	nodes []Node
}

// Nodes returns the parsed children in template order.
func (b *BlockBody) Nodes() []Node {
	return b.nodes
}

// Parse consumes components from the tokenizer until the source ends or the
// handler stops the body at a terminator tag. Known tags dispatch through
// the tag table; unknown names go to the handler. At end of input the
// handler receives the empty sentinel so unterminated blocks can object.
func (b *BlockBody) Parse(tz *Tokenizer, handler UnknownTagHandler) error {
	for {
		comp, err := tz.Next()
		if err != nil {
			return err
		}
		if comp == nil {
			break
		}
		switch comp.Kind {
		case ComponentText:
			b.nodes = append(b.nodes, &TextNode{Text: comp.Text})
		case ComponentObject:
			node, err := parseObject(comp.InnerText)
			if err != nil {
				return err
			}
			b.nodes = append(b.nodes, node)
		case ComponentTag:
			p, err := NewParser(comp.InnerText)
			if err != nil {
				return err
			}
			tok, err := p.Consume(TokenId)
			if err != nil {
				return err
			}
			if factory, ok := tagTable[tok.Value]; ok {
				node, err := factory(p, tz, handler)
				if err != nil {
					return err
				}
				b.nodes = append(b.nodes, node)
				continue
			}
			stop, err := handler(tok.Value, p)
			if err != nil {
				return err
			}
			if stop {
				return nil
			}
		}
	}
	_, err := handler("", nil)
	return err
}

func parseObject(markup string) (Node, error) {
	p, err := NewParser(markup)
	if err != nil {
		return nil, err
	}
	expr, err := ParseExpression(p)
	if err != nil {
		return nil, err
	}
	if _, err := p.Consume(TokenEof); err != nil {
		return nil, err
	}
	return &ObjectNode{Expr: expr}, nil
}

func (b *BlockBody) Render(ctx Context) (string, error) {
	var sb strings.Builder
	for _, n := range b.nodes {
		s, err := n.Render(ctx)
		if err != nil {
			return "", err
		}
		sb.WriteString(s)
	}
	return sb.String(), nil
}
