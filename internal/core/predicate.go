package core

import (
	"fmt"
	"slices"
	"strings"

	"meet-flagcheck/internal/types"
)

// Eq builds an equality predicate.
func Eq(value types.Value) types.Predicate {
	return types.Predicate{Op: types.PredicateOpEq, Operands: []types.Value{value}}
}

// Ne builds an inequality predicate.
func Ne(value types.Value) types.Predicate {
	return types.Predicate{Op: types.PredicateOpNe, Operands: []types.Value{value}}
}

// In builds a membership predicate.
func In(values ...types.Value) types.Predicate {
	return types.Predicate{Op: types.PredicateOpIn, Operands: slices.Clone(values)}
}

// IsSet holds when the value is not the zero value of its type.
func IsSet() types.Predicate {
	return types.Predicate{Op: types.PredicateOpSet}
}

// Evaluate applies the predicate to value. Ordering operators only hold
// for numbers; a predicate that does not fit the value evaluates false.
func Evaluate(p types.Predicate, value types.Value) bool {
	switch p.Op {
	case types.PredicateOpEq:
		return len(p.Operands) == 1 && value.Equal(p.Operands[0])
	case types.PredicateOpNe:
		return len(p.Operands) == 1 && !value.Equal(p.Operands[0])
	case types.PredicateOpIn:
		return containsValue(p.Operands, value)
	case types.PredicateOpNotIn:
		return !containsValue(p.Operands, value)
	case types.PredicateOpGt, types.PredicateOpGte, types.PredicateOpLt, types.PredicateOpLte:
		if len(p.Operands) != 1 || value.Kind() != types.FlagTypeNumber || p.Operands[0].Kind() != types.FlagTypeNumber {
			return false
		}
		return compareNumber(p.Op, value.Number(), p.Operands[0].Number())
	case types.PredicateOpSet:
		return value.IsValid() && !value.IsEmpty()
	case types.PredicateOpUnset:
		return !value.IsValid() || value.IsEmpty()
	default:
		return false
	}
}

// Describe renders the predicate as it reads after a flag name, e.g.
// "== true" or "in [\"a\", \"b\"]".
func Describe(p types.Predicate) string {
	switch p.Op {
	case types.PredicateOpSet:
		return "is set"
	case types.PredicateOpUnset:
		return "is unset"
	case types.PredicateOpIn, types.PredicateOpNotIn:
		items := make([]string, 0, len(p.Operands))
		for _, operand := range p.Operands {
			items = append(items, operand.String())
		}
		word := "in"
		if p.Op == types.PredicateOpNotIn {
			word = "not in"
		}
		return fmt.Sprintf("%s [%s]", word, strings.Join(items, ", "))
	}
	symbol := map[types.PredicateOp]string{
		types.PredicateOpEq:  "==",
		types.PredicateOpNe:  "!=",
		types.PredicateOpGt:  ">",
		types.PredicateOpGte: ">=",
		types.PredicateOpLt:  "<",
		types.PredicateOpLte: "<=",
	}[p.Op]
	if symbol == "" || len(p.Operands) == 0 {
		return string(p.Op)
	}
	return fmt.Sprintf("%s %s", symbol, p.Operands[0])
}

// checkPredicate verifies the predicate is well formed for flag: a known
// operator, the right operand count, and operands of the flag's type.
func checkPredicate(flag types.Flag, p types.Predicate) (types.Predicate, error) {
	want := 0
	switch p.Op {
	case types.PredicateOpEq, types.PredicateOpNe:
		want = 1
	case types.PredicateOpGt, types.PredicateOpGte, types.PredicateOpLt, types.PredicateOpLte:
		if flag.Type != types.FlagTypeNumber {
			return types.Predicate{}, invalidArgument(fmt.Sprintf("operator %s requires a number flag, %s is %s", p.Op, flag.Path, flag.Type))
		}
		want = 1
	case types.PredicateOpIn, types.PredicateOpNotIn:
		if len(p.Operands) == 0 {
			return types.Predicate{}, invalidArgument(fmt.Sprintf("operator %s on %s needs at least one value", p.Op, flag.Path))
		}
		want = len(p.Operands)
	case types.PredicateOpSet, types.PredicateOpUnset:
		want = 0
	default:
		return types.Predicate{}, invalidArgument(fmt.Sprintf("unknown predicate operator %q on %s", p.Op, flag.Path))
	}
	if len(p.Operands) != want {
		return types.Predicate{}, invalidArgument(fmt.Sprintf("operator %s on %s takes %d value(s), got %d", p.Op, flag.Path, want, len(p.Operands)))
	}
	operands := make([]types.Value, 0, len(p.Operands))
	for _, operand := range p.Operands {
		coerced, err := coerceTyped(flag, operand)
		if err != nil {
			return types.Predicate{}, err
		}
		operands = append(operands, coerced)
	}
	return types.Predicate{Op: p.Op, Operands: operands}, nil
}

func containsValue(values []types.Value, value types.Value) bool {
	for _, candidate := range values {
		if candidate.Equal(value) {
			return true
		}
	}
	return false
}

func compareNumber(op types.PredicateOp, left float64, right float64) bool {
	switch op {
	case types.PredicateOpGt:
		return left > right
	case types.PredicateOpGte:
		return left >= right
	case types.PredicateOpLt:
		return left < right
	default:
		return left <= right
	}
}
