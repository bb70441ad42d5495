package liquid

import (
	"fmt"
	"reflect"
	"strconv"
)

// Value is a runtime template value. Exactly one concrete variant exists per
// data kind: NilValue, BoolValue, IntValue, FloatValue, StringValue,
// ArrayValue, HashValue. String is the rendered text form; Truth is the
// conditional form, where every value is truthy except Nil and false.
type Value interface {
	String() string
	Truth() bool
}

// NilValue is the absent value. Lookups that miss resolve to it, and it
// renders as empty text.
type NilValue struct{}

func (NilValue) String() string { return "" }
func (NilValue) Truth() bool    { return false }

// BoolValue wraps a boolean.
type BoolValue bool

func (b BoolValue) String() string {
	if b {
		return "true"
	}
	return "false"
}
func (b BoolValue) Truth() bool { return bool(b) }

// IntValue wraps an integer (64-bit).
type IntValue int64

func (i IntValue) String() string { return strconv.FormatInt(int64(i), 10) }
func (i IntValue) Truth() bool    { return true }

// FloatValue wraps a float (64-bit).
type FloatValue float64

func (f FloatValue) String() string { return strconv.FormatFloat(float64(f), 'g', -1, 64) }
func (f FloatValue) Truth() bool    { return true }

// StringValue wraps a string.
type StringValue string

func (s StringValue) String() string { return string(s) }
func (s StringValue) Truth() bool    { return true }

// ArrayValue wraps an ordered list of values. It renders as empty text; it
// exists to be indexed and tested with contains.
type ArrayValue []Value

func (ArrayValue) String() string { return "" }
func (ArrayValue) Truth() bool    { return true }

// HashValue wraps a string-keyed mapping of values. Like ArrayValue it
// renders as empty text.
type HashValue map[string]Value

func (HashValue) String() string { return "" }
func (HashValue) Truth() bool    { return true }

// Equal reports value equality: same-variant comparison, deep for Array and
// Hash, with Int and Float comparing numerically across representations. All
// other cross-variant pairs are unequal.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case NilValue:
		_, ok := b.(NilValue)
		return ok
	case BoolValue:
		bv, ok := b.(BoolValue)
		return ok && av == bv
	case IntValue:
		switch bv := b.(type) {
		case IntValue:
			return av == bv
		case FloatValue:
			return float64(av) == float64(bv)
		}
		return false
	case FloatValue:
		switch bv := b.(type) {
		case FloatValue:
			return av == bv
		case IntValue:
			return float64(av) == float64(bv)
		}
		return false
	case StringValue:
		bv, ok := b.(StringValue)
		return ok && av == bv
	case ArrayValue:
		bv, ok := b.(ArrayValue)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case HashValue:
		bv, ok := b.(HashValue)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			w, ok := bv[k]
			if !ok || !Equal(v, w) {
				return false
			}
		}
		return true
	}
	return false
}

// FromGo converts a native Go value to a Value. Maps must be string-keyed;
// anything unrecognized falls back to its fmt string form.
func FromGo(v any) Value {
	if v == nil {
		return NilValue{}
	}
	switch t := v.(type) {
	case Value:
		return t
	case string:
		return StringValue(t)
	case bool:
		return BoolValue(t)
	case int:
		return IntValue(int64(t))
	case int32:
		return IntValue(int64(t))
	case int64:
		return IntValue(t)
	case float32:
		return FloatValue(float64(t))
	case float64:
		return FloatValue(t)
	case []byte:
		return StringValue(string(t))
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		n := rv.Len()
		out := make(ArrayValue, 0, n)
		for i := 0; i < n; i++ {
			out = append(out, FromGo(rv.Index(i).Interface()))
		}
		return out
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			out := make(HashValue, rv.Len())
			it := rv.MapRange()
			for it.Next() {
				out[it.Key().String()] = FromGo(it.Value().Interface())
			}
			return out
		}
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return NilValue{}
		}
		return FromGo(rv.Elem().Interface())
	}
	return StringValue(fmt.Sprintf("%v", v))
}

func toInt(v Value) int64 {
	switch t := v.(type) {
	case IntValue:
		return int64(t)
	case FloatValue:
		return int64(t)
	}
	return 0
}

func toFloat(v Value) float64 {
	switch t := v.(type) {
	case IntValue:
		return float64(t)
	case FloatValue:
		return float64(t)
	}
	return 0
}
