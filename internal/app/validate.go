package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"meet-flagcheck/internal/core"
)

func (s Service) Validate(ctx context.Context, req ValidateRequest) (ValidateResult, error) {
	if strings.TrimSpace(req.OverridesPath) == "" && strings.TrimSpace(req.Preset) == "" {
		return ValidateResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("overrides file path is required")
	}
	registry, snapshot, hints, err := s.resolve(req.LayerRequest)
	if err != nil {
		return ValidateResult{}, err
	}
	result := core.NewDependencyValidator().Validate(ctx, snapshot, registry.AllRules())
	reporter := core.NewResolutionReporter()
	log.Ctx(ctx).Debug().
		Str("overrides", req.OverridesPath).
		Int("violations", len(result.Violations)).
		Bool("errors", reporter.HasErrors(result)).
		Msg("configuration validated")
	return ValidateResult{
		Result:   result,
		Errors:   reporter.Errors(result),
		Warnings: reporter.Warnings(result),
		Hints:    hints,
		Report:   reporter.Report(result),
	}, nil
}
