package app

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"meet-flagcheck/internal/core"
	"meet-flagcheck/internal/types"
)

// Render resolves and validates the layers, then writes the snapshot
// for the host. A configuration with error violations is not rendered
// unless Force is set.
func (s Service) Render(ctx context.Context, req RenderRequest) (RenderResult, error) {
	if req.Output == nil && strings.TrimSpace(req.OutputPath) == "" {
		return RenderResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("render output is required")
	}
	registry, snapshot, _, err := s.resolve(req.LayerRequest)
	if err != nil {
		return RenderResult{}, err
	}
	validation := core.NewDependencyValidator().Validate(ctx, snapshot, registry.AllRules())
	reporter := core.NewResolutionReporter()
	result := RenderResult{
		Fingerprint: snapshot.Fingerprint(),
		Errors:      reporter.Errors(validation),
		Warnings:    reporter.Warnings(validation),
	}
	if reporter.HasErrors(validation) && !req.Force {
		return result, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("configuration has %d error violation(s); refusing to render", len(result.Errors)))
	}
	format := req.Format
	if strings.TrimSpace(string(format)) == "" {
		format = types.RenderFormatJS
	}
	config := renderedConfig(snapshot, !req.All)
	if req.Output != nil {
		return result, s.Renderer.Render(req.Output, format, config)
	}
	var buf bytes.Buffer
	if err := s.Renderer.Render(&buf, format, config); err != nil {
		return result, err
	}
	return result, s.Outputs.WriteFile(req.OutputPath, buf.Bytes())
}

// renderedConfig orders top-level sections by the first flag registered
// under each.
func renderedConfig(snapshot core.ConfigSnapshot, changedOnly bool) types.RenderedConfig {
	nested := snapshot.Nested(changedOnly)
	config := types.RenderedConfig{Fingerprint: snapshot.Fingerprint()}
	seen := map[string]struct{}{}
	for path := range snapshot.All() {
		key, _, _ := strings.Cut(path, ".")
		if _, done := seen[key]; done {
			continue
		}
		seen[key] = struct{}{}
		value, ok := nested[key]
		if !ok {
			continue
		}
		config.Sections = append(config.Sections, types.ConfigSection{Key: key, Value: value})
	}
	return config
}
