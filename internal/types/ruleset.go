package types

// RuleSetFile is the on-disk form of a flag registry. Defaults and
// predicate operands stay untyped until the rule-set compiler coerces
// them against the declared flag types.
type RuleSetFile struct {
	SchemaVersion string         `yaml:"schema_version"`
	Flags         []FlagSpecFile `yaml:"flags"`
	Rules         []RuleSpecFile `yaml:"rules"`
}

type FlagSpecFile struct {
	Path        string   `yaml:"path"`
	Type        FlagType `yaml:"type"`
	Default     any      `yaml:"default"`
	Values      []string `yaml:"values,omitempty"`
	Description string   `yaml:"description,omitempty"`
}

type PredicateFile struct {
	Op     PredicateOp `yaml:"op"`
	Value  any         `yaml:"value,omitempty"`
	Values []any       `yaml:"values,omitempty"`
}

type RequirementFile struct {
	Flag      string        `yaml:"flag"`
	Predicate PredicateFile `yaml:"predicate"`
}

type RuleSpecFile struct {
	ID          string            `yaml:"id"`
	Subject     string            `yaml:"subject"`
	When        PredicateFile     `yaml:"when"`
	Requires    []RequirementFile `yaml:"requires"`
	Severity    Severity          `yaml:"severity"`
	Description string            `yaml:"description,omitempty"`
}
