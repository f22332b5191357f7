package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name string, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestOverrideFileAdapterFormats(t *testing.T) {
	want := map[string]any{
		"transcription.enabled":                           true,
		"transcription.inviteJigasiOnBackendTranscribing": false,
		"recording.enabled":                               true,
		"fileRecordingsEnabled":                           true,
	}
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "yaml",
			file: "overrides.yaml",
			content: `
transcription:
  enabled: true
  inviteJigasiOnBackendTranscribing: false
recording:
  enabled: true
fileRecordingsEnabled: true
`,
		},
		{
			name: "jsonc with comments and trailing commas",
			file: "custom-config.jsonc",
			content: `{
  // multitrack recorder piggybacks on transcription
  "transcription": {
    "enabled": true,
    "inviteJigasiOnBackendTranscribing": false, /* not Jigasi */
  },
  "recording": { "enabled": true },
  "fileRecordingsEnabled": true,
}`,
		},
		{
			name: "toml",
			file: "overrides.toml",
			content: `
fileRecordingsEnabled = true

[transcription]
enabled = true
inviteJigasiOnBackendTranscribing = false

[recording]
enabled = true
`,
		},
		{
			name: "dotted keys",
			file: "overrides.json",
			content: `{
  "transcription.enabled": true,
  "transcription.inviteJigasiOnBackendTranscribing": false,
  "recording.enabled": true,
  "fileRecordingsEnabled": true
}`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.file, tt.content)
			overlay, err := NewOverrideFileAdapter().Load(path)
			require.NoError(t, err)
			assert.Equal(t, path, overlay.Source)
			if diff := cmp.Diff(want, overlay.Values); diff != "" {
				t.Fatalf("unexpected overrides (-want +got):\n%s", diff)
			}
		})
	}
}

func TestOverrideFileAdapterNumbers(t *testing.T) {
	adapter := NewOverrideFileAdapter()

	overlay, err := adapter.Parse("inline", "yaml", []byte("recording:\n  maxParticipants: 4\n"))
	require.NoError(t, err)
	assert.Equal(t, 4, overlay.Values["recording.maxParticipants"])

	overlay, err = adapter.Parse("inline", "json", []byte(`{"recording": {"maxParticipants": 4}}`))
	require.NoError(t, err)
	assert.Equal(t, float64(4), overlay.Values["recording.maxParticipants"])

	overlay, err = adapter.Parse("inline", "toml", []byte("[recording]\nmaxParticipants = 4\n"))
	require.NoError(t, err)
	assert.Equal(t, int64(4), overlay.Values["recording.maxParticipants"])
}

func TestOverrideFileAdapterErrors(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		content  string
		wantCode errbuilder.ErrCode
		contains string
	}{
		{
			name:     "malformed yaml",
			file:     "bad.yaml",
			content:  "transcription: [enabled",
			wantCode: errbuilder.CodeInvalidArgument,
			contains: "failed to parse",
		},
		{
			name:     "list value",
			file:     "list.yaml",
			content:  "transcription:\n  translationLanguages: [en, de]\n",
			wantCode: errbuilder.CodeInvalidArgument,
			contains: "lists are not flag values",
		},
		{
			name:     "same path twice",
			file:     "dup.json",
			content:  `{"recording.enabled": true, "recording": {"enabled": false}}`,
			wantCode: errbuilder.CodeInvalidArgument,
			contains: "set more than once",
		},
		{
			name:     "unknown extension",
			file:     "overrides.ini",
			content:  "enabled=true",
			wantCode: errbuilder.CodeInvalidArgument,
			contains: "unsupported overrides format",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewOverrideFileAdapter().Load(writeFile(t, tt.file, tt.content))
			require.Error(t, err)
			if diff := cmp.Diff(tt.wantCode, errbuilder.CodeOf(err)); diff != "" {
				t.Fatalf("unexpected error code (-want +got):\n%s", diff)
			}
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestOverrideFileAdapterMissingFile(t *testing.T) {
	_, err := NewOverrideFileAdapter().Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
}
