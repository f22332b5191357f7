package core

import (
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"meet-flagcheck/internal/shared"
	"meet-flagcheck/internal/types"
)

const RuleSetSchemaVersion = "v1"

// Compile turns a declarative rule set into a Registry. Flags are
// registered first, in file order, so rules may reference any flag in
// the file regardless of position.
func Compile(file types.RuleSetFile) (*Registry, error) {
	if file.SchemaVersion != RuleSetSchemaVersion {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unsupported rule set schema_version %q (want %s)", file.SchemaVersion, RuleSetSchemaVersion))
	}
	builder := NewRegistryBuilder()
	for _, spec := range file.Flags {
		flag, err := compileFlag(spec)
		if err != nil {
			return nil, err
		}
		if err := builder.Register(flag); err != nil {
			return nil, err
		}
	}
	for _, spec := range file.Rules {
		rule, err := compileRule(builder, spec)
		if err != nil {
			return nil, err
		}
		if err := builder.RegisterRule(rule); err != nil {
			return nil, err
		}
	}
	return builder.Build(), nil
}

func compileFlag(spec types.FlagSpecFile) (types.Flag, error) {
	flag := types.Flag{
		Path:        shared.NormalizeFlagPath(spec.Path),
		Type:        spec.Type,
		Values:      spec.Values,
		Description: spec.Description,
	}
	if spec.Default == nil {
		return flag, nil
	}
	def, err := Coerce(flag, spec.Default)
	if err != nil {
		return types.Flag{}, err
	}
	flag.Default = def
	return flag, nil
}

func compileRule(builder *RegistryBuilder, spec types.RuleSpecFile) (types.DependencyRule, error) {
	severity := spec.Severity
	if severity == "" {
		severity = types.SeverityError
	}
	when, err := compilePredicate(builder, spec.Subject, spec.When)
	if err != nil {
		return types.DependencyRule{}, err
	}
	requires := make([]types.Requirement, 0, len(spec.Requires))
	for _, req := range spec.Requires {
		predicate, err := compilePredicate(builder, req.Flag, req.Predicate)
		if err != nil {
			return types.DependencyRule{}, err
		}
		requires = append(requires, types.Requirement{Flag: req.Flag, Predicate: predicate})
	}
	return types.DependencyRule{
		ID:          spec.ID,
		Subject:     spec.Subject,
		When:        when,
		Requires:    requires,
		Severity:    severity,
		Description: spec.Description,
	}, nil
}

// compilePredicate coerces raw operands against the target flag. An
// unknown target is left for RegisterRule to report.
func compilePredicate(builder *RegistryBuilder, path string, spec types.PredicateFile) (types.Predicate, error) {
	predicate := types.Predicate{Op: spec.Op}
	flag, ok := builder.lookup(shared.NormalizeFlagPath(path))
	if !ok {
		return predicate, nil
	}
	raw := spec.Values
	if spec.Value != nil {
		raw = append([]any{spec.Value}, raw...)
	}
	for _, item := range raw {
		value, err := Coerce(flag, item)
		if err != nil {
			return types.Predicate{}, err
		}
		predicate.Operands = append(predicate.Operands, value)
	}
	return predicate, nil
}
