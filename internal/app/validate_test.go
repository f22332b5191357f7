package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meet-flagcheck/internal/core"
	"meet-flagcheck/internal/policies"
)

func TestValidateApp(t *testing.T) {
	service := NewService()
	result, err := service.Validate(t.Context(), ValidateRequest{LayerRequest{
		OverridesPath: fixturePath(t, "multitrack-overrides.yaml"),
	}})
	require.NoError(t, err)
	assert.True(t, result.Valid())
	assert.Empty(t, result.Result.Violations)
	assert.Empty(t, result.Hints)
	assert.True(t, result.Report.Valid)
}

func TestValidateAppFileRecordingsOnly(t *testing.T) {
	service := NewService()
	result, err := service.Validate(t.Context(), ValidateRequest{LayerRequest{
		OverridesPath: fixturePath(t, "file-recordings-only.yaml"),
	}})
	require.NoError(t, err)
	assert.False(t, result.Valid())

	var required []string
	for _, violation := range result.Result.Violations {
		if violation.Severity == "error" {
			required = append(required, violation.Required)
		}
	}
	want := []string{policies.FlagTranscriptionEnabled, policies.FlagRecordingEnabled}
	if diff := cmp.Diff(want, required); diff != "" {
		t.Fatalf("unexpected required flags (-want +got):\n%s", diff)
	}
	require.Len(t, result.Errors, 2)
	require.Len(t, result.Warnings, 2)
	assert.Equal(t, 2, result.Report.Errors)
}

func TestValidateAppAutoTranscribeOnly(t *testing.T) {
	service := NewService()
	result, err := service.Validate(t.Context(), ValidateRequest{LayerRequest{
		OverridesPath: fixturePath(t, "auto-transcribe-only.yaml"),
	}})
	require.NoError(t, err)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], policies.RuleAutoTranscribeNeedsRecord)
	assert.Contains(t, result.Errors[0], "requires recording.enabled == true")
}

func TestValidateAppInputFormats(t *testing.T) {
	service := NewService()
	for _, name := range []string{"multitrack-overrides.yaml", "custom-config.jsonc", "overrides.toml"} {
		t.Run(name, func(t *testing.T) {
			result, err := service.Validate(t.Context(), ValidateRequest{LayerRequest{
				OverridesPath: fixturePath(t, name),
			}})
			require.NoError(t, err)
			assert.True(t, result.Valid())
			assert.Empty(t, result.Warnings)
		})
	}
}

func TestValidateAppRejectsBadInput(t *testing.T) {
	service := NewService()
	tests := []struct {
		name string
		req  LayerRequest
		code errbuilder.ErrCode
	}{
		{
			name: "no overrides",
			req:  LayerRequest{},
			code: errbuilder.CodeInvalidArgument,
		},
		{
			name: "unknown flag",
			req:  LayerRequest{OverridesPath: fixturePath(t, "unknown-flag.yaml")},
			code: errbuilder.CodeNotFound,
		},
		{
			name: "missing file",
			req:  LayerRequest{OverridesPath: fixturePath(t, "missing.yaml")},
			code: errbuilder.CodeNotFound,
		},
		{
			name: "unknown preset",
			req:  LayerRequest{Preset: "livestream"},
			code: errbuilder.CodeInvalidArgument,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.Validate(t.Context(), ValidateRequest{tc.req})
			require.Error(t, err)
			assert.Equal(t, tc.code, errbuilder.CodeOf(err))
		})
	}
}

func TestValidateAppTypeMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overrides.yaml")
	require.NoError(t, os.WriteFile(path, []byte("recording:\n  enabled: \"yes\"\n"), 0644))

	_, err := NewService().Validate(t.Context(), ValidateRequest{LayerRequest{OverridesPath: path}})
	require.Error(t, err)
	assert.True(t, core.IsTypeMismatch(err))
}

func TestValidateAppCustomRules(t *testing.T) {
	service := NewService()
	result, err := service.Validate(t.Context(), ValidateRequest{LayerRequest{
		RulesPath:     fixturePath(t, "rules-sample.yaml"),
		OverridesPath: fixturePath(t, "recording-stream.yaml"),
	}})
	require.NoError(t, err)
	assert.True(t, result.Valid())
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "stream-mode-caps-participants")
	assert.Contains(t, result.Warnings[0], "recording.maxParticipants <= 5")
}

func TestValidateAppPresetAndBase(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "base.yaml")
	require.NoError(t, os.WriteFile(base, []byte("transcription:\n  autoCaptionOnTranscribe: true\n"), 0644))
	overrides := filepath.Join(dir, "overrides.yaml")
	require.NoError(t, os.WriteFile(overrides, []byte("transcription:\n  enabled: false\n"), 0644))

	result, err := NewService().Validate(t.Context(), ValidateRequest{LayerRequest{
		Preset:        PresetMultitrack,
		BasePaths:     []string{base},
		OverridesPath: overrides,
	}})
	require.NoError(t, err)
	assert.False(t, result.Valid())

	for _, violation := range result.Result.Violations {
		if violation.Required == policies.FlagTranscriptionEnabled {
			assert.Equal(t, overrides, violation.RequiredSource)
		}
	}
	source := result.Result.Snapshot.Source(policies.FlagFileRecordingsEnabled)
	assert.Equal(t, policies.MultitrackPresetSource, source)
}

func TestValidateAppRedundantOverrideHints(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overrides.yaml")
	require.NoError(t, os.WriteFile(path, []byte("localRecording:\n  notifyAllParticipants: false\n"), 0644))

	result, err := NewService().Validate(t.Context(), ValidateRequest{LayerRequest{OverridesPath: path}})
	require.NoError(t, err)
	want := []string{
		"hint: localRecording.notifyAllParticipants is already false (from default); you can omit it from " + path,
	}
	if diff := cmp.Diff(want, result.Hints); diff != "" {
		t.Fatalf("unexpected hints (-want +got):\n%s", diff)
	}
}

func TestValidateAppPresetOverlapHints(t *testing.T) {
	result, err := NewService().Validate(t.Context(), ValidateRequest{LayerRequest{
		Preset:        PresetMultitrack,
		OverridesPath: fixturePath(t, "file-recordings-only.yaml"),
	}})
	require.NoError(t, err)
	assert.True(t, result.Valid())
	require.Len(t, result.Hints, 1)
	assert.Contains(t, result.Hints[0], "fileRecordingsEnabled is already true (from preset:multitrack)")
}
