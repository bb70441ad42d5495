package liquid

import "fmt"

// Context holds the variables a template renders against. Tags that write
// variables (assign, capture, increment, decrement) mutate it in place, so a
// Context carries state across renders if reused.
type Context map[string]Value

// Insert sets a variable, replacing any previous binding.
func (c Context) Insert(name string, v Value) {
	c[name] = v
}

func (c Context) member(name string) Value {
	if v, ok := c[name]; ok {
		return v
	}
	return NilValue{}
}

// Evaluate resolves a lookup expression against the context. A missing
// variable or member yields Nil rather than an error; only structurally
// non-lookup expressions fail.
func (c Context) Evaluate(expr Expression) (Value, error) {
	switch e := expr.(type) {
	case *LookupKey:
		return c.member(e.Name), nil
	case *Lookup:
		cur := Value(HashValue(c))
		for _, child := range e.Path {
			next, err := c.step(cur, child)
			if err != nil {
				return nil, err
			}
			if _, isNil := next.(NilValue); isNil {
				return NilValue{}, nil
			}
			cur = next
		}
		return cur, nil
	}
	return nil, &EvaluationError{Message: fmt.Sprintf("cannot evaluate %T", expr)}
}

// step applies one path element to the current value. Static subscripts are
// Literal children; dynamic subscripts are nested Lookups resolved against
// the root context before being applied.
func (c Context) step(cur Value, child Expression) (Value, error) {
	switch e := child.(type) {
	case *LookupKey:
		if h, ok := cur.(HashValue); ok {
			if v, ok := h[e.Name]; ok {
				return v, nil
			}
		}
		return NilValue{}, nil
	case *Literal:
		return applySubscript(cur, e.Value), nil
	case *Lookup:
		sub, err := c.Evaluate(e)
		if err != nil {
			return nil, err
		}
		return applySubscript(cur, sub), nil
	}
	return nil, &EvaluationError{Message: fmt.Sprintf("cannot evaluate path element %T", child)}
}

func applySubscript(cur, sub Value) Value {
	switch s := sub.(type) {
	case IntValue:
		if a, ok := cur.(ArrayValue); ok {
			i := int64(s)
			if i >= 0 && i < int64(len(a)) {
				return a[i]
			}
		}
	case StringValue:
		if h, ok := cur.(HashValue); ok {
			if v, ok := h[string(s)]; ok {
				return v
			}
		}
	}
	return NilValue{}
}
