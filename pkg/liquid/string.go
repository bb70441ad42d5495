package liquid

import "fmt"

// TemplateString is a raw template carried inside configuration documents.
// It defers parsing until validated or rendered.
type TemplateString string

// Validate checks that the template parses.
func (s TemplateString) Validate() error {
	if _, err := Parse(string(s)); err != nil {
		return fmt.Errorf("invalid liquid template: %w", err)
	}
	return nil
}

// Render parses and renders in one step.
func (s TemplateString) Render(ctx Context) (string, error) {
	t, err := Parse(string(s))
	if err != nil {
		return "", fmt.Errorf("parsing liquid template: %w", err)
	}
	return t.Render(ctx)
}
