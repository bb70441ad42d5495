package liquid

// ifBlock is one branch of a conditional tag: the opening condition, an
// elsif, or the trailing else.
type ifBlock struct {
	cond   *Condition
	body   *BlockBody
	isElse bool
}

// ifTag renders the first branch whose condition holds. It backs both if and
// unless; unless only negates the opening condition, elsif branches keep
// their plain sense.
type ifTag struct {
	unless bool
	blocks []*ifBlock
}

func parseIfTag(markup *Parser, tz *Tokenizer, outer UnknownTagHandler) (Node, error) {
	return parseConditionalTag("if", false, markup, tz, outer)
}

func parseUnlessTag(markup *Parser, tz *Tokenizer, outer UnknownTagHandler) (Node, error) {
	return parseConditionalTag("unless", true, markup, tz, outer)
}

func parseConditionalTag(name string, unless bool, markup *Parser, tz *Tokenizer, outer UnknownTagHandler) (Node, error) {
	cond, err := ParseCondition(markup)
	if err != nil {
		return nil, err
	}
	if _, err := markup.Consume(TokenEof); err != nil {
		return nil, err
	}
	tag := &ifTag{unless: unless}
	tag.blocks = append(tag.blocks, &ifBlock{cond: cond})
	end := "end" + name
	for {
		var terminator string
		var termMarkup *Parser
		handler := func(tagName string, m *Parser) (bool, error) {
			switch tagName {
			case "elsif", "else", end:
				terminator = tagName
				termMarkup = m
				return true, nil
			}
			return outer(tagName, m)
		}
		body := &BlockBody{}
		if err := body.Parse(tz, handler); err != nil {
			return nil, err
		}
		tag.blocks[len(tag.blocks)-1].body = body
		switch terminator {
		case end:
			return tag, nil
		case "elsif":
			cond, err := ParseCondition(termMarkup)
			if err != nil {
				return nil, err
			}
			if _, err := termMarkup.Consume(TokenEof); err != nil {
				return nil, err
			}
			tag.blocks = append(tag.blocks, &ifBlock{cond: cond})
		case "else":
			tag.blocks = append(tag.blocks, &ifBlock{isElse: true})
		default:
			return nil, &UnterminatedBlockError{Tag: name}
		}
	}
}

func (t *ifTag) Render(ctx Context) (string, error) {
	for i, block := range t.blocks {
		if block.isElse {
			return block.body.Render(ctx)
		}
		ok, err := block.cond.Evaluate(ctx)
		if err != nil {
			return "", err
		}
		if t.unless && i == 0 {
			ok = !ok
		}
		if ok {
			return block.body.Render(ctx)
		}
	}
	return "", nil
}

// captureTag renders its body into a string variable instead of the output.
type captureTag struct {
	name string
	body *BlockBody
}

func parseCaptureTag(markup *Parser, tz *Tokenizer, outer UnknownTagHandler) (Node, error) {
	name, err := markup.Consume(TokenId)
	if err != nil {
		return nil, err
	}
	if _, err := markup.Consume(TokenEof); err != nil {
		return nil, err
	}
	body, err := parseBlock("capture", "endcapture", tz, outer)
	if err != nil {
		return nil, err
	}
	return &captureTag{name: name.Value, body: body}, nil
}

func (t *captureTag) Render(ctx Context) (string, error) {
	s, err := t.body.Render(ctx)
	if err != nil {
		return "", err
	}
	ctx.Insert(t.name, StringValue(s))
	return "", nil
}

// commentTag discards its body. The body still parses, so malformed markup
// inside a comment is an error, and nested blocks must be terminated.
type commentTag struct {
	body *BlockBody
}

func parseCommentTag(markup *Parser, tz *Tokenizer, outer UnknownTagHandler) (Node, error) {
	if _, err := markup.Consume(TokenEof); err != nil {
		return nil, err
	}
	body, err := parseBlock("comment", "endcomment", tz, outer)
	if err != nil {
		return nil, err
	}
	return &commentTag{body: body}, nil
}

func (t *commentTag) Render(ctx Context) (string, error) {
	return "", nil
}

// parseBlock parses a body up to the named terminator, forwarding every
// other unknown tag to the enclosing handler. Markup after the terminator
// name is ignored.
func parseBlock(name, end string, tz *Tokenizer, outer UnknownTagHandler) (*BlockBody, error) {
	closed := false
	handler := func(tagName string, m *Parser) (bool, error) {
		if tagName == end {
			closed = true
			return true, nil
		}
		return outer(tagName, m)
	}
	body := &BlockBody{}
	if err := body.Parse(tz, handler); err != nil {
		return nil, err
	}
	if !closed {
		return nil, &UnterminatedBlockError{Tag: name}
	}
	return body, nil
}
