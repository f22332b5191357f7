package core

import (
	"context"
	"iter"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/rs/zerolog/log"

	"meet-flagcheck/internal/types"
)

// ValidationResult holds every violation found in one snapshot, in rule
// registration order.
type ValidationResult struct {
	Snapshot   ConfigSnapshot
	Violations []types.Violation
}

type DependencyValidator struct{}

func NewDependencyValidator() DependencyValidator {
	return DependencyValidator{}
}

// Validate evaluates every rule against snapshot. Rules are independent:
// a violation never stops evaluation, so all problems surface in one
// pass. For a rule whose condition holds, each failing requirement
// yields its own violation. The snapshot must come from Defaults or
// Apply; a zero snapshot would skip every rule and look valid.
func (v DependencyValidator) Validate(ctx context.Context, snapshot ConfigSnapshot, rules iter.Seq[types.DependencyRule]) ValidationResult {
	assert.Assert(ctx, !snapshot.IsZero(), "snapshot must be resolved from a registry")
	result := ValidationResult{Snapshot: snapshot}
	evaluated := 0
	for rule := range rules {
		assert.NotEmpty(ctx, rule.ID, "rule id must be set")
		evaluated++
		subjectValue, ok := snapshot.Get(rule.Subject)
		if !ok {
			log.Ctx(ctx).Warn().Str("rule", rule.ID).Str("flag", rule.Subject).Msg("rule subject not in snapshot, skipped")
			continue
		}
		if !Evaluate(rule.When, subjectValue) {
			continue
		}
		for _, req := range rule.Requires {
			actual, ok := snapshot.Get(req.Flag)
			if !ok {
				log.Ctx(ctx).Warn().Str("rule", rule.ID).Str("flag", req.Flag).Msg("required flag not in snapshot, skipped")
				continue
			}
			if Evaluate(req.Predicate, actual) {
				continue
			}
			result.Violations = append(result.Violations, types.Violation{
				RuleID:         rule.ID,
				Severity:       rule.Severity,
				Description:    rule.Description,
				Subject:        rule.Subject,
				SubjectValue:   subjectValue,
				Required:       req.Flag,
				Expected:       req.Predicate,
				RequiredValue:  actual,
				RequiredSource: snapshot.Source(req.Flag),
			})
		}
	}
	log.Ctx(ctx).Debug().
		Int("rules", evaluated).
		Int("violations", len(result.Violations)).
		Str("fingerprint", snapshot.Fingerprint()).
		Msg("snapshot validated")
	return result
}
