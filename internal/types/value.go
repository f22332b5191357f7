package types

import (
	"math"
	"strconv"
)

// Value is a resolved flag value tagged with the flag type it belongs to.
// The zero Value has no kind and is never stored in a snapshot.
type Value struct {
	kind FlagType
	b    bool
	n    float64
	s    string
}

func BoolValue(b bool) Value {
	return Value{kind: FlagTypeBool, b: b}
}

func NumberValue(n float64) Value {
	return Value{kind: FlagTypeNumber, n: n}
}

func StringValue(s string) Value {
	return Value{kind: FlagTypeString, s: s}
}

func EnumValue(s string) Value {
	return Value{kind: FlagTypeEnum, s: s}
}

func (v Value) Kind() FlagType {
	return v.kind
}

func (v Value) IsValid() bool {
	return v.kind != ""
}

// IsEmpty reports whether the payload is the zero value of its kind:
// false, 0 or "".
func (v Value) IsEmpty() bool {
	switch v.kind {
	case FlagTypeBool:
		return !v.b
	case FlagTypeNumber:
		return v.n == 0
	default:
		return v.s == ""
	}
}

func (v Value) Bool() bool {
	return v.b
}

func (v Value) Number() float64 {
	return v.n
}

// Text returns the payload of string and enum values.
func (v Value) Text() string {
	return v.s
}

func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case FlagTypeBool:
		return v.b == other.b
	case FlagTypeNumber:
		return v.n == other.n
	default:
		return v.s == other.s
	}
}

// String renders the value the way it appears in diagnostics.
func (v Value) String() string {
	switch v.kind {
	case FlagTypeBool:
		return strconv.FormatBool(v.b)
	case FlagTypeNumber:
		return strconv.FormatFloat(v.n, 'f', -1, 64)
	case FlagTypeString, FlagTypeEnum:
		return strconv.Quote(v.s)
	default:
		return "<unset>"
	}
}

// Interface returns the plain Go value for encoders. Integral numbers
// come back as int64 so they render without a fractional part.
func (v Value) Interface() any {
	switch v.kind {
	case FlagTypeBool:
		return v.b
	case FlagTypeNumber:
		if v.n == math.Trunc(v.n) && math.Abs(v.n) < 1<<53 {
			return int64(v.n)
		}
		return v.n
	case FlagTypeString, FlagTypeEnum:
		return v.s
	default:
		return nil
	}
}
