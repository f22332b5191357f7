package app

import (
	"meet-flagcheck/internal/adapters"
	"meet-flagcheck/internal/ports"
)

type Service struct {
	Overrides ports.OverridesPort
	RuleSets  ports.RuleSetPort
	Renderer  ports.RendererPort
	Reports   ports.ReportPort
	Outputs   ports.OutputPort
}

func NewService() Service {
	return Service{
		Overrides: adapters.NewOverrideFileAdapter(),
		RuleSets:  adapters.NewRuleSetFileAdapter(),
		Renderer:  adapters.NewConfigRendererAdapter(),
		Reports:   adapters.NewReportWriterAdapter(),
		Outputs:   adapters.NewOutputFileAdapter(),
	}
}
