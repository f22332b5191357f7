package core

import (
	"fmt"

	"meet-flagcheck/internal/types"
)

type ResolutionReporter struct{}

func NewResolutionReporter() ResolutionReporter {
	return ResolutionReporter{}
}

// Format renders one diagnostic line per violation, in result order.
func (r ResolutionReporter) Format(result ValidationResult) []string {
	lines := make([]string, 0, len(result.Violations))
	for _, violation := range result.Violations {
		lines = append(lines, r.FormatViolation(violation))
	}
	return lines
}

// FormatViolation renders e.g.
//
//	[error] recording-requires-transcription: recording.enabled=true requires transcription.enabled == true (actual: false, from default)
func (r ResolutionReporter) FormatViolation(v types.Violation) string {
	return fmt.Sprintf("[%s] %s: %s=%s requires %s %s (actual: %s, from %s)",
		v.Severity, v.RuleID, v.Subject, v.SubjectValue, v.Required, Describe(v.Expected), v.RequiredValue, v.RequiredSource)
}

// HasErrors reports whether any violation has error severity. Warnings
// never make a configuration invalid.
func (r ResolutionReporter) HasErrors(result ValidationResult) bool {
	for _, violation := range result.Violations {
		if violation.Severity == types.SeverityError {
			return true
		}
	}
	return false
}

func (r ResolutionReporter) Errors(result ValidationResult) []string {
	return r.formatSeverity(result, types.SeverityError)
}

func (r ResolutionReporter) Warnings(result ValidationResult) []string {
	return r.formatSeverity(result, types.SeverityWarning)
}

// Report builds the machine-readable summary used for CI output.
func (r ResolutionReporter) Report(result ValidationResult) types.Report {
	report := types.Report{
		Fingerprint: result.Snapshot.Fingerprint(),
		Violations:  make([]types.ReportEntry, 0, len(result.Violations)),
	}
	for _, v := range result.Violations {
		switch v.Severity {
		case types.SeverityError:
			report.Errors++
		case types.SeverityWarning:
			report.Warnings++
		}
		report.Violations = append(report.Violations, types.ReportEntry{
			Rule:          v.RuleID,
			Severity:      v.Severity,
			Description:   v.Description,
			Subject:       v.Subject,
			SubjectValue:  v.SubjectValue.Interface(),
			Required:      v.Required,
			Expected:      Describe(v.Expected),
			RequiredValue: v.RequiredValue.Interface(),
			Source:        v.RequiredSource,
			Message:       r.FormatViolation(v),
		})
	}
	report.Valid = report.Errors == 0
	return report
}

func (r ResolutionReporter) formatSeverity(result ValidationResult, severity types.Severity) []string {
	var lines []string
	for _, violation := range result.Violations {
		if violation.Severity == severity {
			lines = append(lines, r.FormatViolation(violation))
		}
	}
	return lines
}
