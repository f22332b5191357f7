package app

import (
	"io"

	"meet-flagcheck/internal/core"
	"meet-flagcheck/internal/types"
)

// LayerRequest names the inputs that resolve one snapshot: a rule set
// (empty for the built-in multitrack rules), an optional preset, base
// overlay files, and the overrides file applied last.
type LayerRequest struct {
	RulesPath     string
	Preset        string
	BasePaths     []string
	OverridesPath string
}

type ValidateRequest struct {
	LayerRequest
}

type ValidateResult struct {
	Result   core.ValidationResult
	Errors   []string
	Warnings []string
	Hints    []string
	Report   types.Report
}

func (r ValidateResult) Valid() bool {
	return len(r.Errors) == 0
}

type RenderRequest struct {
	LayerRequest
	Format types.RenderFormat
	All    bool
	Force  bool
	// Output receives the rendering; when nil it is written to OutputPath.
	Output     io.Writer
	OutputPath string
}

type RenderResult struct {
	Fingerprint string
	Errors      []string
	Warnings    []string
}

type RulesRequest struct {
	RulesPath string
	Export    io.Writer
}

type RulesResult struct {
	Flags []types.Flag
	Rules []types.DependencyRule
}
