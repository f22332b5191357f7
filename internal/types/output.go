package types

// ReportEntry is the machine-readable form of a single violation.
type ReportEntry struct {
	Rule          string   `json:"rule"`
	Severity      Severity `json:"severity"`
	Description   string   `json:"description,omitempty"`
	Subject       string   `json:"subject"`
	SubjectValue  any      `json:"subject_value"`
	Required      string   `json:"required"`
	Expected      string   `json:"expected"`
	RequiredValue any      `json:"required_value"`
	Source        string   `json:"source"`
	Message       string   `json:"message"`
}

// Report summarises one validation run.
type Report struct {
	Fingerprint string        `json:"fingerprint"`
	Valid       bool          `json:"valid"`
	Errors      int           `json:"errors"`
	Warnings    int           `json:"warnings"`
	Violations  []ReportEntry `json:"violations"`
}

// ConfigSection is one top-level key of a rendered configuration, e.g.
// "transcription" with its nested values.
type ConfigSection struct {
	Key   string
	Value any
}

// RenderedConfig is a resolved snapshot prepared for rendering, with
// sections in flag registration order.
type RenderedConfig struct {
	Fingerprint string
	Sections    []ConfigSection
}
