package core

import (
	"slices"

	"meet-flagcheck/internal/types"
)

// Coerce converts a raw decoded value into a Value of the flag's type.
// Decoders disagree on number representation (yaml gives int, json gives
// float64, toml gives int64), so every Go numeric kind is accepted for
// number flags. Nothing else is converted: "true" is not a bool.
func Coerce(flag types.Flag, raw any) (types.Value, error) {
	if v, ok := raw.(types.Value); ok {
		return coerceTyped(flag, v)
	}
	switch flag.Type {
	case types.FlagTypeBool:
		if b, ok := raw.(bool); ok {
			return types.BoolValue(b), nil
		}
	case types.FlagTypeNumber:
		if n, ok := toFloat(raw); ok {
			return types.NumberValue(n), nil
		}
	case types.FlagTypeString:
		if s, ok := raw.(string); ok {
			return types.StringValue(s), nil
		}
	case types.FlagTypeEnum:
		if s, ok := raw.(string); ok {
			if !slices.Contains(flag.Values, s) {
				return types.Value{}, enumMemberError(flag.Path, s, flag.Values)
			}
			return types.EnumValue(s), nil
		}
	}
	return types.Value{}, typeMismatchError(flag.Path, flag.Type, raw)
}

func coerceTyped(flag types.Flag, v types.Value) (types.Value, error) {
	kind := v.Kind()
	// a plain string is acceptable for an enum flag if it names a member
	if flag.Type == types.FlagTypeEnum && kind == types.FlagTypeString {
		kind = types.FlagTypeEnum
		v = types.EnumValue(v.Text())
	}
	if kind != flag.Type {
		return types.Value{}, typeMismatchError(flag.Path, flag.Type, v)
	}
	if kind == types.FlagTypeEnum && !slices.Contains(flag.Values, v.Text()) {
		return types.Value{}, enumMemberError(flag.Path, v.Text(), flag.Values)
	}
	return v, nil
}

func toFloat(raw any) (float64, bool) {
	switch n := raw.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

func zeroValue(flag types.Flag) types.Value {
	switch flag.Type {
	case types.FlagTypeBool:
		return types.BoolValue(false)
	case types.FlagTypeNumber:
		return types.NumberValue(0)
	case types.FlagTypeEnum:
		if len(flag.Values) > 0 {
			return types.EnumValue(flag.Values[0])
		}
		return types.EnumValue("")
	default:
		return types.StringValue("")
	}
}
