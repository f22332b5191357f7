package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"meet-flagcheck/internal/types"
)

func duplicateFlagError(path string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeAlreadyExists).
		WithMsg(fmt.Sprintf("duplicate flag: %s", path))
}

func duplicateRuleError(id string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeAlreadyExists).
		WithMsg(fmt.Sprintf("duplicate rule: %s", id))
}

func unknownFlagError(path string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg(fmt.Sprintf("unknown flag: %s", path))
}

// typeMismatchPrefix marks value/type errors among the other
// CodeInvalidArgument failures.
const typeMismatchPrefix = "type mismatch for "

func typeMismatchError(path string, want types.FlagType, got any) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("%s%s: want %s, got %s", typeMismatchPrefix, path, want, describeRaw(got)))
}

func enumMemberError(path string, value string, allowed []string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("%s%s: %q is not one of %v", typeMismatchPrefix, path, value, allowed))
}

func invalidArgument(msg string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(msg)
}

// IsDuplicateFlag reports whether err was raised for a flag or rule that
// was already registered.
func IsDuplicateFlag(err error) bool {
	return err != nil && errbuilder.CodeOf(err) == errbuilder.CodeAlreadyExists
}

// IsUnknownFlag reports whether err names a path missing from the registry.
func IsUnknownFlag(err error) bool {
	return err != nil && errbuilder.CodeOf(err) == errbuilder.CodeNotFound
}

// IsTypeMismatch reports whether err rejects a value as the wrong type
// for its flag, or an enum value outside the declared members. Other
// invalid input shares the code but not the message prefix.
func IsTypeMismatch(err error) bool {
	if err == nil || errbuilder.CodeOf(err) != errbuilder.CodeInvalidArgument {
		return false
	}
	var builder *errbuilder.ErrBuilder
	return errors.As(err, &builder) && strings.HasPrefix(builder.Msg, typeMismatchPrefix)
}

func describeRaw(value any) string {
	if value == nil {
		return "null"
	}
	if v, ok := value.(types.Value); ok {
		return fmt.Sprintf("%s %s", v.Kind(), v)
	}
	return fmt.Sprintf("%T %v", value, value)
}
