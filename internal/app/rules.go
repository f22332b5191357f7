package app

import (
	"slices"

	"meet-flagcheck/internal/policies"
)

// Rules lists the flags and rules of the active rule set. With Export
// set, the rule set is also written out as YAML; for the built-in set
// this is the starting point for a custom rules file.
func (s Service) Rules(req RulesRequest) (RulesResult, error) {
	registry, err := s.loadRegistry(req.RulesPath)
	if err != nil {
		return RulesResult{}, err
	}
	if req.Export != nil {
		file := policies.MultitrackRuleSet()
		if req.RulesPath != "" {
			file, err = s.RuleSets.Load(req.RulesPath)
			if err != nil {
				return RulesResult{}, err
			}
		}
		if err := s.RuleSets.Export(req.Export, file); err != nil {
			return RulesResult{}, err
		}
	}
	return RulesResult{
		Flags: slices.Collect(registry.AllFlags()),
		Rules: slices.Collect(registry.AllRules()),
	}, nil
}
