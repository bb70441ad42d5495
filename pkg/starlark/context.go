package starlark

import (
	"fmt"

	"github.com/neurodesk/liquid/pkg/liquid"
	"go.starlark.net/starlark"
)

// NewContextEvaluator creates an evaluator whose scripts manipulate a render
// context directly through extra builtins:
//
//	set_variable(name, value)  writes a context variable
//	get_variable(name)         reads a context variable, None when absent
//	render(source)             renders a template snippet against the context
//
// Variables written through set_variable land in ctx immediately; top-level
// script bindings still need ExportContext.
func NewContextEvaluator(ctx liquid.Context) *Evaluator {
	e := NewEvaluator()
	for name, fn := range contextBuiltins(ctx) {
		e.builtins[name] = fn
	}
	return e
}

func contextBuiltins(ctx liquid.Context) starlark.StringDict {
	return starlark.StringDict{
		"set_variable": starlark.NewBuiltin("set_variable", func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var name string
			var value starlark.Value
			if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 2, &name, &value); err != nil {
				return nil, err
			}
			ctx.Insert(name, ConvertFromStarlark(value))
			return starlark.None, nil
		}),

		"get_variable": starlark.NewBuiltin("get_variable", func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var name string
			if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &name); err != nil {
				return nil, err
			}
			v, ok := ctx[name]
			if !ok {
				return starlark.None, nil
			}
			return ConvertToStarlark(v), nil
		}),

		"render": starlark.NewBuiltin("render", func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var source string
			if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &source); err != nil {
				return nil, err
			}
			out, err := liquid.TemplateString(source).Render(ctx)
			if err != nil {
				return nil, fmt.Errorf("rendering snippet: %w", err)
			}
			return starlark.String(out), nil
		}),
	}
}
