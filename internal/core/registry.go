package core

import (
	"fmt"
	"iter"
	"slices"

	"github.com/rs/zerolog/log"

	"meet-flagcheck/internal/shared"
	"meet-flagcheck/internal/types"
)

// RegistryBuilder collects flag and rule declarations. Every declaration
// is checked as it is added so a broken rule set fails at construction,
// never while validating a snapshot.
type RegistryBuilder struct {
	flags   []types.Flag
	index   map[string]int
	rules   []types.DependencyRule
	ruleIDs map[string]struct{}
}

func NewRegistryBuilder() *RegistryBuilder {
	return &RegistryBuilder{
		index:   map[string]int{},
		ruleIDs: map[string]struct{}{},
	}
}

// Register adds a flag. The path must be unique and must not nest under
// or above another flag's path. A zero Default resolves to the zero
// value of the type (the first member for enums).
func (b *RegistryBuilder) Register(flag types.Flag) error {
	flag.Path = shared.NormalizeFlagPath(flag.Path)
	if !shared.ValidFlagPath(flag.Path) {
		return invalidArgument(fmt.Sprintf("invalid flag path: %q", flag.Path))
	}
	if _, exists := b.index[flag.Path]; exists {
		return duplicateFlagError(flag.Path)
	}
	for _, existing := range b.flags {
		if shared.PathsOverlap(existing.Path, flag.Path) {
			return invalidArgument(fmt.Sprintf("flag %s overlaps flag %s", flag.Path, existing.Path))
		}
	}
	switch flag.Type {
	case types.FlagTypeBool, types.FlagTypeNumber, types.FlagTypeString:
		if len(flag.Values) > 0 {
			return invalidArgument(fmt.Sprintf("flag %s: values are only allowed for enum flags", flag.Path))
		}
	case types.FlagTypeEnum:
		if len(flag.Values) == 0 {
			return invalidArgument(fmt.Sprintf("enum flag %s must declare values", flag.Path))
		}
		seen := map[string]struct{}{}
		for _, value := range flag.Values {
			if _, dup := seen[value]; dup {
				return invalidArgument(fmt.Sprintf("enum flag %s declares %q twice", flag.Path, value))
			}
			seen[value] = struct{}{}
		}
	default:
		return invalidArgument(fmt.Sprintf("flag %s has invalid type %q", flag.Path, flag.Type))
	}
	flag.Values = slices.Clone(flag.Values)

	if !flag.Default.IsValid() {
		flag.Default = zeroValue(flag)
	} else {
		def, err := coerceTyped(flag, flag.Default)
		if err != nil {
			return err
		}
		flag.Default = def
	}

	b.index[flag.Path] = len(b.flags)
	b.flags = append(b.flags, flag)
	return nil
}

// RegisterRule adds a dependency rule. The subject and every required
// flag must already be registered, and every predicate must fit the
// type of the flag it tests.
func (b *RegistryBuilder) RegisterRule(rule types.DependencyRule) error {
	if rule.ID == "" {
		return invalidArgument("rule id must not be empty")
	}
	if _, exists := b.ruleIDs[rule.ID]; exists {
		return duplicateRuleError(rule.ID)
	}
	switch rule.Severity {
	case types.SeverityError, types.SeverityWarning:
	default:
		return invalidArgument(fmt.Sprintf("rule %s has invalid severity %q", rule.ID, rule.Severity))
	}
	rule.Subject = shared.NormalizeFlagPath(rule.Subject)
	subject, ok := b.lookup(rule.Subject)
	if !ok {
		return unknownFlagError(rule.Subject)
	}
	when, err := checkPredicate(subject, rule.When)
	if err != nil {
		return err
	}
	rule.When = when
	if len(rule.Requires) == 0 {
		return invalidArgument(fmt.Sprintf("rule %s must require at least one flag", rule.ID))
	}
	requires := make([]types.Requirement, 0, len(rule.Requires))
	for _, req := range rule.Requires {
		path := shared.NormalizeFlagPath(req.Flag)
		target, ok := b.lookup(path)
		if !ok {
			return unknownFlagError(path)
		}
		predicate, err := checkPredicate(target, req.Predicate)
		if err != nil {
			return err
		}
		requires = append(requires, types.Requirement{Flag: path, Predicate: predicate})
	}
	rule.Requires = requires

	b.ruleIDs[rule.ID] = struct{}{}
	b.rules = append(b.rules, rule)
	return nil
}

// Build freezes the declarations into a read-only Registry. The builder
// may keep being used; later additions do not leak into the result.
func (b *RegistryBuilder) Build() *Registry {
	index := make(map[string]int, len(b.index))
	for path, i := range b.index {
		index[path] = i
	}
	log.Debug().
		Int("flags", len(b.flags)).
		Int("rules", len(b.rules)).
		Msg("flag registry built")
	return &Registry{
		flags: slices.Clone(b.flags),
		index: index,
		rules: slices.Clone(b.rules),
	}
}

func (b *RegistryBuilder) lookup(path string) (types.Flag, bool) {
	i, ok := b.index[path]
	if !ok {
		return types.Flag{}, false
	}
	return b.flags[i], true
}

// Registry is the immutable set of recognized flags and the rules between
// them. It is safe for concurrent use.
type Registry struct {
	flags []types.Flag
	index map[string]int
	rules []types.DependencyRule
}

// Flag looks up a flag by dotted path.
func (r *Registry) Flag(path string) (types.Flag, bool) {
	i, ok := r.index[shared.NormalizeFlagPath(path)]
	if !ok {
		return types.Flag{}, false
	}
	flag := r.flags[i]
	flag.Values = slices.Clone(flag.Values)
	return flag, true
}

func (r *Registry) Len() int {
	return len(r.flags)
}

// AllFlags yields flags in registration order. The sequence can be
// ranged over any number of times.
func (r *Registry) AllFlags() iter.Seq[types.Flag] {
	return func(yield func(types.Flag) bool) {
		for _, flag := range r.flags {
			flag.Values = slices.Clone(flag.Values)
			if !yield(flag) {
				return
			}
		}
	}
}

// AllRules yields rules in registration order.
func (r *Registry) AllRules() iter.Seq[types.DependencyRule] {
	return func(yield func(types.DependencyRule) bool) {
		for _, rule := range r.rules {
			if !yield(cloneRule(rule)) {
				return
			}
		}
	}
}

func (r *Registry) indexOf(path string) (int, bool) {
	i, ok := r.index[shared.NormalizeFlagPath(path)]
	return i, ok
}

func cloneRule(rule types.DependencyRule) types.DependencyRule {
	rule.When.Operands = slices.Clone(rule.When.Operands)
	requires := make([]types.Requirement, len(rule.Requires))
	for i, req := range rule.Requires {
		req.Predicate.Operands = slices.Clone(req.Predicate.Operands)
		requires[i] = req
	}
	rule.Requires = requires
	return rule
}
