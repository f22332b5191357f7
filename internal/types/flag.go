package types

// Flag declares a recognized configuration flag. Path is the dotted
// identity, e.g. "transcription.enabled".
type Flag struct {
	Path        string
	Type        FlagType
	Default     Value
	Values      []string
	Description string
}

// Predicate is a test over a single flag value. Operands carry the
// comparison values already coerced to the target flag's type.
type Predicate struct {
	Op       PredicateOp
	Operands []Value
}

// Requirement pairs a flag with the predicate its value must satisfy.
type Requirement struct {
	Flag      string
	Predicate Predicate
}

// DependencyRule states that whenever When holds on Subject, every entry
// in Requires must hold too.
type DependencyRule struct {
	ID          string
	Subject     string
	When        Predicate
	Requires    []Requirement
	Severity    Severity
	Description string
}

// Overlay is one layer of raw overrides keyed by dotted flag path.
// Source names the layer for provenance, e.g. a file path.
type Overlay struct {
	Source string
	Values map[string]any
}

// Violation records one unmet requirement of a rule whose condition held.
type Violation struct {
	RuleID         string
	Severity       Severity
	Description    string
	Subject        string
	SubjectValue   Value
	Required       string
	Expected       Predicate
	RequiredValue  Value
	RequiredSource string
}
