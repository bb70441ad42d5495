// Package starlark bridges Starlark scripts and the liquid value system, so
// render contexts can be computed by a script instead of written out as
// static data.
package starlark

import (
	"github.com/neurodesk/liquid/pkg/liquid"
	"go.starlark.net/starlark"
)

// ConvertToStarlark converts a template value to its Starlark counterpart.
func ConvertToStarlark(val liquid.Value) starlark.Value {
	if val == nil {
		return starlark.None
	}

	switch v := val.(type) {
	case liquid.StringValue:
		return starlark.String(string(v))
	case liquid.IntValue:
		return starlark.MakeInt64(int64(v))
	case liquid.FloatValue:
		return starlark.Float(float64(v))
	case liquid.BoolValue:
		return starlark.Bool(bool(v))
	case liquid.ArrayValue:
		items := make([]starlark.Value, len(v))
		for i, item := range v {
			items[i] = ConvertToStarlark(item)
		}
		return starlark.NewList(items)
	case liquid.HashValue:
		dict := starlark.NewDict(len(v))
		for key, value := range v {
			dict.SetKey(starlark.String(key), ConvertToStarlark(value))
		}
		return dict
	case liquid.NilValue:
		return starlark.None
	default:
		return starlark.String(val.String())
	}
}

// ConvertFromStarlark converts a Starlark value to a template value.
func ConvertFromStarlark(val starlark.Value) liquid.Value {
	if val == nil || val == starlark.None {
		return liquid.NilValue{}
	}

	switch v := val.(type) {
	case starlark.String:
		return liquid.StringValue(string(v))
	case starlark.Int:
		if i, ok := v.Int64(); ok {
			return liquid.IntValue(i)
		}
		// Out of int64 range; keep the digits as text.
		return liquid.StringValue(v.String())
	case starlark.Float:
		return liquid.FloatValue(float64(v))
	case starlark.Bool:
		return liquid.BoolValue(bool(v))
	case *starlark.List:
		items := make(liquid.ArrayValue, v.Len())
		for i := 0; i < v.Len(); i++ {
			items[i] = ConvertFromStarlark(v.Index(i))
		}
		return items
	case *starlark.Dict:
		hash := make(liquid.HashValue)
		for _, item := range v.Items() {
			key, value := item[0], item[1]
			if keyStr, ok := key.(starlark.String); ok {
				hash[string(keyStr)] = ConvertFromStarlark(value)
			} else {
				hash[key.String()] = ConvertFromStarlark(value)
			}
		}
		return hash
	default:
		return liquid.StringValue(val.String())
	}
}

// StarlarkValueWrapper adapts a Starlark value to liquid.Value without
// conversion, keeping Starlark's own notion of truth.
type StarlarkValueWrapper struct {
	Value starlark.Value
}

func (w StarlarkValueWrapper) String() string {
	return w.Value.String()
}

func (w StarlarkValueWrapper) Truth() bool {
	if w.Value == nil {
		return false
	}
	return bool(w.Value.Truth())
}

var _ liquid.Value = StarlarkValueWrapper{}
