package core

import (
	"testing"

	"github.com/stretchr/testify/require"

	"meet-flagcheck/internal/types"
)

// sampleRegistry covers all four flag types and a rule per type.
func sampleRegistry(t *testing.T) *Registry {
	t.Helper()
	builder := NewRegistryBuilder()
	for _, flag := range []types.Flag{
		{Path: "transcription.enabled", Type: types.FlagTypeBool},
		{Path: "recording.enabled", Type: types.FlagTypeBool},
		{Path: "fileRecordingsEnabled", Type: types.FlagTypeBool},
		{Path: "recording.mode", Type: types.FlagTypeEnum, Values: []string{"file", "stream"}},
		{Path: "recording.maxParticipants", Type: types.FlagTypeNumber, Default: types.NumberValue(10)},
		{Path: "transcription.language", Type: types.FlagTypeString, Default: types.StringValue("en-US")},
	} {
		require.NoError(t, builder.Register(flag))
	}
	for _, rule := range []types.DependencyRule{
		{
			ID:       "recording-needs-transcription",
			Subject:  "recording.enabled",
			When:     Eq(types.BoolValue(true)),
			Requires: []types.Requirement{{Flag: "transcription.enabled", Predicate: Eq(types.BoolValue(true))}},
			Severity: types.SeverityError,
		},
		{
			ID:      "file-recordings-need-everything",
			Subject: "fileRecordingsEnabled",
			When:    Eq(types.BoolValue(true)),
			Requires: []types.Requirement{
				{Flag: "transcription.enabled", Predicate: Eq(types.BoolValue(true))},
				{Flag: "recording.enabled", Predicate: Eq(types.BoolValue(true))},
			},
			Severity: types.SeverityError,
		},
		{
			ID:       "stream-mode-caps-participants",
			Subject:  "recording.mode",
			When:     Eq(types.EnumValue("stream")),
			Requires: []types.Requirement{{Flag: "recording.maxParticipants", Predicate: types.Predicate{Op: types.PredicateOpLte, Operands: []types.Value{types.NumberValue(5)}}}},
			Severity: types.SeverityWarning,
		},
		{
			ID:       "transcription-needs-language",
			Subject:  "transcription.enabled",
			When:     Eq(types.BoolValue(true)),
			Requires: []types.Requirement{{Flag: "transcription.language", Predicate: IsSet()}},
			Severity: types.SeverityWarning,
		},
	} {
		require.NoError(t, builder.RegisterRule(rule))
	}
	return builder.Build()
}

func overlay(values map[string]any) types.Overlay {
	return types.Overlay{Source: "test", Values: values}
}
