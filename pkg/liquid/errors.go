package liquid

import "fmt"

// SyntaxError reports malformed template source: an unterminated delimiter,
// an unexpected character or token inside markup, or a malformed path or
// condition.
type SyntaxError struct {
	Message string
}

func (e *SyntaxError) Error() string { return "syntax error: " + e.Message }

func syntaxErrorf(format string, args ...any) *SyntaxError {
	return &SyntaxError{Message: fmt.Sprintf(format, args...)}
}

// UnknownTagError reports a tag name that reached the outermost handler
// without anything recognizing it.
type UnknownTagError struct {
	Name string
}

func (e *UnknownTagError) Error() string { return fmt.Sprintf("unknown tag %q", e.Name) }

// UnterminatedBlockError reports a block tag whose terminator never arrived
// before end of input.
type UnterminatedBlockError struct {
	Tag string
}

func (e *UnterminatedBlockError) Error() string {
	return fmt.Sprintf("unterminated %s block", e.Tag)
}

// EvaluationError reports structural misuse of Context.Evaluate, such as
// passing it a literal. Missing data never produces one; lookups that miss
// resolve to Nil.
type EvaluationError struct {
	Message string
}

func (e *EvaluationError) Error() string { return "evaluation error: " + e.Message }
