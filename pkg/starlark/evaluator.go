package starlark

import (
	"fmt"
	"strings"

	"github.com/neurodesk/liquid/pkg/liquid"
	"go.starlark.net/starlark"
)

// Evaluator runs Starlark expressions and scripts with access to the
// template value system. Globals persist across calls, so a script can stage
// variables that later expressions or exports read back.
type Evaluator struct {
	thread   *starlark.Thread
	builtins starlark.StringDict
	globals  starlark.StringDict
}

// NewEvaluator creates an evaluator with the base builtins.
func NewEvaluator() *Evaluator {
	return &Evaluator{
		thread:   &starlark.Thread{Name: "liquid"},
		builtins: baseBuiltins(),
		globals:  make(starlark.StringDict),
	}
}

func baseBuiltins() starlark.StringDict {
	return starlark.StringDict{
		"print": starlark.NewBuiltin("print", func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			parts := make([]string, 0, len(args))
			for _, arg := range args {
				if s, ok := starlark.AsString(arg); ok {
					parts = append(parts, s)
				} else {
					parts = append(parts, arg.String())
				}
			}
			fmt.Println(strings.Join(parts, " "))
			return starlark.None, nil
		}),
	}
}

func (e *Evaluator) predeclared() starlark.StringDict {
	merged := make(starlark.StringDict, len(e.builtins)+len(e.globals))
	for k, v := range e.builtins {
		merged[k] = v
	}
	for k, v := range e.globals {
		merged[k] = v
	}
	return merged
}

// SetGlobal sets a global from a template value.
func (e *Evaluator) SetGlobal(name string, value liquid.Value) {
	e.globals[name] = ConvertToStarlark(value)
}

// SetGlobalStarlark sets a global from a native Starlark value.
func (e *Evaluator) SetGlobalStarlark(name string, value starlark.Value) {
	e.globals[name] = value
}

// GetGlobal retrieves a global as a template value.
func (e *Evaluator) GetGlobal(name string) (liquid.Value, bool) {
	if val, ok := e.globals[name]; ok {
		return ConvertFromStarlark(val), true
	}
	return nil, false
}

// Eval evaluates a single expression and returns the result as a template
// value.
func (e *Evaluator) Eval(expr string) (liquid.Value, error) {
	val, err := starlark.Eval(e.thread, "<eval>", expr, e.predeclared())
	if err != nil {
		return nil, fmt.Errorf("starlark evaluation error: %w", err)
	}
	return ConvertFromStarlark(val), nil
}

// ExecFile executes a script and folds its top-level bindings into the
// evaluator's globals. src may be nil to read from filename, or hold the
// source as a string or byte slice.
func (e *Evaluator) ExecFile(filename string, src any) (starlark.StringDict, error) {
	globals, err := starlark.ExecFile(e.thread, filename, src, e.predeclared())
	if err != nil {
		return nil, fmt.Errorf("starlark execution error: %w", err)
	}
	for k, v := range globals {
		e.globals[k] = v
	}
	return globals, nil
}

// ExecString executes a script held in a string.
func (e *Evaluator) ExecString(script string) (starlark.StringDict, error) {
	return e.ExecFile("<script>", script)
}

// LoadContext copies template context variables into the globals.
func (e *Evaluator) LoadContext(ctx liquid.Context) {
	for key, value := range ctx {
		e.SetGlobal(key, value)
	}
}

// ExportContext converts the current globals to a template context.
// Underscore-prefixed names stay private to the script.
func (e *Evaluator) ExportContext() liquid.Context {
	ctx := make(liquid.Context)
	for key, value := range e.globals {
		if !exportable(key) {
			continue
		}
		ctx[key] = ConvertFromStarlark(value)
	}
	return ctx
}

func exportable(key string) bool {
	return key != "" && key[0] != '_'
}
