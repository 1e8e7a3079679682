// Package value defines the constrained set of runtime values produced by
// evaluating model expressions against a concrete state.
//
// Value is a sealed interface: only Bool, Int and Double implement it. Every
// consumer can therefore switch over the three cases exhaustively.
package value

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Value is a sealed interface representing an evaluated expression.
type Value interface {
	value() // Sealed - only the types in this file implement it
	String() string
}

// Bool is a boolean value.
type Bool bool

func (Bool) value() {}

func (b Bool) String() string {
	return strconv.FormatBool(bool(b))
}

// Int is an integer value. Model integers are always int64.
type Int int64

func (Int) value() {}

func (i Int) String() string {
	return strconv.FormatInt(int64(i), 10)
}

// Double is a floating point value.
type Double float64

func (Double) value() {}

func (d Double) String() string {
	f := float64(d)
	if math.IsInf(f, 1) {
		return "Infinity"
	}
	if math.IsInf(f, -1) {
		return "-Infinity"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// TypeName returns a short name for the dynamic type of v ("bool", "int",
// "double"). A nil value yields "none".
func TypeName(v Value) string {
	switch v.(type) {
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Double:
		return "double"
	default:
		return "none"
	}
}

// AsBool extracts a boolean. Numbers are not coerced.
func AsBool(v Value) (bool, error) {
	if b, ok := v.(Bool); ok {
		return bool(b), nil
	}
	return false, fmt.Errorf("expected bool, got %s", TypeName(v))
}

// AsInt extracts an integer. Doubles are not truncated implicitly.
func AsInt(v Value) (int64, error) {
	if i, ok := v.(Int); ok {
		return int64(i), nil
	}
	return 0, fmt.Errorf("expected int, got %s", TypeName(v))
}

// AsDouble extracts a number, widening Int to float64.
func AsDouble(v Value) (float64, error) {
	switch n := v.(type) {
	case Double:
		return float64(n), nil
	case Int:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("expected number, got %s", TypeName(v))
	}
}

// IsNumeric reports whether v is an Int or a Double.
func IsNumeric(v Value) bool {
	switch v.(type) {
	case Int, Double:
		return true
	}
	return false
}

// Equal compares two values the way the modeling language does: numbers
// compare by magnitude regardless of Int/Double, booleans compare with
// booleans only.
func Equal(a, b Value) bool {
	switch x := a.(type) {
	case Bool:
		y, ok := b.(Bool)
		return ok && x == y
	case Int:
		if y, ok := b.(Int); ok {
			return x == y
		}
		if y, ok := b.(Double); ok {
			return float64(x) == float64(y)
		}
	case Double:
		if y, err := AsDouble(b); err == nil {
			return float64(x) == y
		}
	}
	return false
}

// Parse converts a textual literal into a Value.
// "true"/"false" become Bool, integers become Int, anything else that parses
// as a float becomes Double.
func Parse(s string) (Value, error) {
	s = strings.TrimSpace(s)
	switch s {
	case "true":
		return Bool(true), nil
	case "false":
		return Bool(false), nil
	case "":
		return nil, fmt.Errorf("empty value")
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Int(i), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid value %q: not a bool, int or double", s)
	}
	return Double(f), nil
}

// FromAny converts a decoded Go value (as produced by yaml or json decoding)
// into a Value.
func FromAny(v any) (Value, error) {
	switch x := v.(type) {
	case Value:
		return x, nil
	case bool:
		return Bool(x), nil
	case int:
		return Int(x), nil
	case int64:
		return Int(x), nil
	case uint64:
		if x > math.MaxInt64 {
			return nil, fmt.Errorf("integer out of range: %d", x)
		}
		return Int(x), nil
	case float64:
		return Double(x), nil
	case float32:
		return Double(x), nil
	case string:
		return Parse(x)
	case nil:
		return nil, fmt.Errorf("null is not a value")
	default:
		return nil, fmt.Errorf("unsupported type: %T", v)
	}
}
