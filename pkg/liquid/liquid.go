// Package liquid implements a small Liquid template engine: literal text,
// output objects {{ ... }} over variable lookups, and the core tag set
// (assign, capture, comment, increment, decrement, if/elsif/else, unless).
//
// Parsing and rendering are separate steps. A parsed Template is immutable
// and renders any number of times; all mutable state lives in the Context it
// renders against.
package liquid

// Template is a parsed template.
type Template struct {
	body *BlockBody
}

// Parse parses template source into a Template.
func Parse(source string) (*Template, error) {
	body := &BlockBody{}
	if err := body.Parse(NewTokenizer(source), DefaultUnknownTagHandler); err != nil {
		return nil, err
	}
	return &Template{body: body}, nil
}

// Render renders the template against the context. Tags that set variables
// mutate the context in place.
func (t *Template) Render(ctx Context) (string, error) {
	return t.body.Render(ctx)
}

// Body exposes the parsed node tree for inspection.
func (t *Template) Body() *BlockBody {
	return t.body
}
