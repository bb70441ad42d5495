package liquid

import "strconv"

// tagFactory parses one tag into a node. Inline tags only read the markup
// cursor; block tags additionally consume components from the tokenizer
// until their terminator, installing a handler that forwards foreign names
// to the enclosing one.
type tagFactory func(markup *Parser, tz *Tokenizer, outer UnknownTagHandler) (Node, error)

// tagTable is the tag dispatch table, populated in init because the block-tag
// factories recurse through BlockBody.Parse back into the table. Branch
// terminators (else, elsif, endif, and the end* names) are deliberately
// absent: they are only meaningful to the handler of the block being parsed.
var tagTable map[string]tagFactory

func init() {
	tagTable = map[string]tagFactory{
		"assign":    parseAssignTag,
		"capture":   parseCaptureTag,
		"comment":   parseCommentTag,
		"increment": parseIncrementTag,
		"decrement": parseDecrementTag,
		"if":        parseIfTag,
		"unless":    parseUnlessTag,
	}
}

// assignTag binds a variable to an expression's value, producing no output.
type assignTag struct {
	name string
	expr Expression
}

func parseAssignTag(markup *Parser, _ *Tokenizer, _ UnknownTagHandler) (Node, error) {
	name, err := markup.Consume(TokenId)
	if err != nil {
		return nil, err
	}
	op, err := markup.Consume(TokenOperator)
	if err != nil {
		return nil, err
	}
	if op.Value != "=" {
		return nil, syntaxErrorf("expected = in assign, got %q", op.Value)
	}
	expr, err := ParseExpression(markup)
	if err != nil {
		return nil, err
	}
	if _, err := markup.Consume(TokenEof); err != nil {
		return nil, err
	}
	return &assignTag{name: name.Value, expr: expr}, nil
}

func (t *assignTag) Render(ctx Context) (string, error) {
	v, err := resolveExpression(t.expr, ctx)
	if err != nil {
		return "", err
	}
	ctx.Insert(t.name, v)
	return "", nil
}

// incrementTag emits the counter's current value and then adds one. Counters
// live in the context under their plain name, starting from zero.
type incrementTag struct {
	name string
}

func parseIncrementTag(markup *Parser, _ *Tokenizer, _ UnknownTagHandler) (Node, error) {
	name, err := markup.Consume(TokenId)
	if err != nil {
		return nil, err
	}
	if _, err := markup.Consume(TokenEof); err != nil {
		return nil, err
	}
	return &incrementTag{name: name.Value}, nil
}

func (t *incrementTag) Render(ctx Context) (string, error) {
	n := toInt(ctx.member(t.name))
	ctx.Insert(t.name, IntValue(n+1))
	return strconv.FormatInt(n, 10), nil
}

// decrementTag subtracts one from the counter and emits the new value, so a
// fresh counter renders -1 first. It shares its namespace with increment.
type decrementTag struct {
	name string
}

func parseDecrementTag(markup *Parser, _ *Tokenizer, _ UnknownTagHandler) (Node, error) {
	name, err := markup.Consume(TokenId)
	if err != nil {
		return nil, err
	}
	if _, err := markup.Consume(TokenEof); err != nil {
		return nil, err
	}
	return &decrementTag{name: name.Value}, nil
}

func (t *decrementTag) Render(ctx Context) (string, error) {
	n := toInt(ctx.member(t.name)) - 1
	ctx.Insert(t.name, IntValue(n))
	return strconv.FormatInt(n, 10), nil
}
