package liquid

import "strings"

// ComponentKind discriminates the outer elements of a template.
type ComponentKind int

const (
	ComponentText ComponentKind = iota
	ComponentObject
	ComponentTag
)

// Component is one outer element of a template: literal text, an object
// {{ ... }}, or a tag {% ... %}. Text holds the full source slice including
// delimiters; InnerText holds the markup between them for objects and tags.
type Component struct {
	Kind      ComponentKind
	Text      string
	InnerText string
}

// Tokenizer splits template source into components. It does not touch the
// markup inside delimiters; that is handed to Parser separately.
type Tokenizer struct {
	src string
	i   int
}

func NewTokenizer(src string) *Tokenizer {
	return &Tokenizer{src: src}
}

// Next returns the next component, or nil at the end of input.
func (t *Tokenizer) Next() (*Component, error) {
	if t.i >= len(t.src) {
		return nil, nil
	}
	start := t.i
	for j := t.i; j+1 < len(t.src); j++ {
		if t.src[j] != '{' {
			continue
		}
		switch t.src[j+1] {
		case '{':
			if j > start {
				t.i = j
				return &Component{Kind: ComponentText, Text: t.src[start:j]}, nil
			}
			return t.delimited(j, "}}", ComponentObject)
		case '%':
			if j > start {
				t.i = j
				return &Component{Kind: ComponentText, Text: t.src[start:j]}, nil
			}
			return t.delimited(j, "%}", ComponentTag)
		}
	}
	t.i = len(t.src)
	return &Component{Kind: ComponentText, Text: t.src[start:]}, nil
}

func (t *Tokenizer) delimited(open int, closer string, kind ComponentKind) (*Component, error) {
	inner := open + 2
	rel := strings.Index(t.src[inner:], closer)
	if rel < 0 {
		if kind == ComponentObject {
			return nil, syntaxErrorf("unterminated object {{ ... }}")
		}
		return nil, syntaxErrorf("unterminated tag {%% ... %%}")
	}
	end := inner + rel + 2
	t.i = end
	return &Component{
		Kind:      kind,
		Text:      t.src[open:end],
		InnerText: t.src[inner : inner+rel],
	}, nil
}
