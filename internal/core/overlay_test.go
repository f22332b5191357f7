package core

import (
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meet-flagcheck/internal/types"
)

func TestApplyEmptyOverlayIsIdentity(t *testing.T) {
	registry := sampleRegistry(t)
	base := Defaults(registry)

	got, err := NewOverlayApplier().Apply(base, overlay(nil))
	require.NoError(t, err)
	if diff := cmp.Diff(base, got); diff != "" {
		t.Fatalf("empty overlay changed snapshot (-want +got):\n%s", diff)
	}
	for path, value := range got.All() {
		flag, ok := registry.Flag(path)
		require.True(t, ok)
		assert.True(t, flag.Default.Equal(value), path)
		assert.Equal(t, SourceDefault, got.Source(path))
	}
}

func TestApplyDisjointOverlaysCommute(t *testing.T) {
	applier := NewOverlayApplier()
	base := Defaults(sampleRegistry(t))
	o1 := overlay(map[string]any{"recording.enabled": true, "recording.mode": "stream"})
	o2 := overlay(map[string]any{"transcription.language": "de-DE", "recording.maxParticipants": 3})

	left, err := applier.ApplyAll(base, o1, o2)
	require.NoError(t, err)
	right, err := applier.ApplyAll(base, o2, o1)
	require.NoError(t, err)
	if diff := cmp.Diff(left, right); diff != "" {
		t.Fatalf("disjoint overlays do not commute (-o1o2 +o2o1):\n%s", diff)
	}
	assert.Equal(t, left.Fingerprint(), right.Fingerprint())
}

func TestApplyComposesLikeMerge(t *testing.T) {
	applier := NewOverlayApplier()
	base := Defaults(sampleRegistry(t))
	o1 := types.Overlay{Source: "base.yaml", Values: map[string]any{"recording.enabled": true, "recording.maxParticipants": 4}}
	o2 := types.Overlay{Source: "site.yaml", Values: map[string]any{"recording.enabled": false, "fileRecordingsEnabled": true}}

	layered, err := applier.ApplyAll(base, o1, o2)
	require.NoError(t, err)
	merged := MergeOverlays(o1, o2)
	flat, err := applier.Apply(base, merged)
	require.NoError(t, err)

	assert.True(t, layered.Equal(flat))
	assert.Equal(t, "base.yaml+site.yaml", merged.Source)

	value, ok := layered.Get("recording.enabled")
	require.True(t, ok)
	assert.False(t, value.Bool(), "later layer must win")
	assert.Equal(t, "site.yaml", layered.Source("recording.enabled"))
	assert.Equal(t, "base.yaml", layered.Source("recording.maxParticipants"))
}

func TestMergeKeepsInLayerCollision(t *testing.T) {
	applier := NewOverlayApplier()
	base := Defaults(sampleRegistry(t))
	o1 := types.Overlay{Source: "base.yaml", Values: map[string]any{" recording.enabled ": false}}
	o2 := types.Overlay{Source: "site.yaml", Values: map[string]any{"recording.enabled": true, " recording.enabled": false}}

	_, layeredErr := applier.ApplyAll(base, o1, o2)
	require.Error(t, layeredErr)

	for range 20 {
		_, mergedErr := applier.Apply(base, MergeOverlays(o1, o2))
		require.Error(t, mergedErr)
		assert.Equal(t, errbuilder.CodeOf(layeredErr), errbuilder.CodeOf(mergedErr))
	}

	merged := MergeOverlays(o1, types.Overlay{Values: map[string]any{" recording.enabled": true}})
	if diff := cmp.Diff(map[string]any{"recording.enabled": true}, merged.Values); diff != "" {
		t.Fatalf("unexpected merged values (-want +got):\n%s", diff)
	}
}

func TestApplyLeavesBaseUntouched(t *testing.T) {
	base := Defaults(sampleRegistry(t))
	before := base.Fingerprint()

	next, err := NewOverlayApplier().Apply(base, overlay(map[string]any{"recording.enabled": true}))
	require.NoError(t, err)

	assert.Equal(t, before, base.Fingerprint())
	value, _ := base.Get("recording.enabled")
	assert.False(t, value.Bool())
	value, _ = next.Get("recording.enabled")
	assert.True(t, value.Bool())
}

func TestApplyRejectsInvalidOverrides(t *testing.T) {
	tests := []struct {
		name     string
		values   map[string]any
		wantCode errbuilder.ErrCode
		check    func(error) bool
	}{
		{
			name:     "unknown path",
			values:   map[string]any{"recording.enabled": true, "jigasi.enabled": true},
			wantCode: errbuilder.CodeNotFound,
			check:    IsUnknownFlag,
		},
		{
			name:     "string for bool",
			values:   map[string]any{"recording.enabled": "true"},
			wantCode: errbuilder.CodeInvalidArgument,
			check:    IsTypeMismatch,
		},
		{
			name:     "bool for number",
			values:   map[string]any{"recording.maxParticipants": true},
			wantCode: errbuilder.CodeInvalidArgument,
			check:    IsTypeMismatch,
		},
		{
			name:     "enum outside values",
			values:   map[string]any{"recording.mode": "local"},
			wantCode: errbuilder.CodeInvalidArgument,
			check:    IsTypeMismatch,
		},
		{
			name:     "null value",
			values:   map[string]any{"transcription.language": nil},
			wantCode: errbuilder.CodeInvalidArgument,
			check:    IsTypeMismatch,
		},
		{
			name:     "same flag twice",
			values:   map[string]any{"recording.enabled": true, " recording.enabled": false},
			wantCode: errbuilder.CodeInvalidArgument,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			base := Defaults(sampleRegistry(t))
			got, err := NewOverlayApplier().Apply(base, overlay(tt.values))
			require.Error(t, err)
			if diff := cmp.Diff(tt.wantCode, errbuilder.CodeOf(err)); diff != "" {
				t.Fatalf("unexpected error code (-want +got):\n%s", diff)
			}
			if tt.check != nil {
				assert.True(t, tt.check(err))
			}
			assert.True(t, base.Equal(got), "failed overlay must not be partially applied")
		})
	}
}

func TestApplyAcceptsDecoderNumberKinds(t *testing.T) {
	base := Defaults(sampleRegistry(t))
	for _, raw := range []any{3, int64(3), float64(3), uint8(3), float32(3)} {
		got, err := NewOverlayApplier().Apply(base, overlay(map[string]any{"recording.maxParticipants": raw}))
		require.NoError(t, err, "%T", raw)
		value, _ := got.Get("recording.maxParticipants")
		assert.Equal(t, float64(3), value.Number())
	}
}

func TestApplyRequiresResolvedBase(t *testing.T) {
	_, err := NewOverlayApplier().Apply(ConfigSnapshot{}, overlay(nil))
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

func TestApplyAllStopsAtFirstFailingLayer(t *testing.T) {
	base := Defaults(sampleRegistry(t))
	got, err := NewOverlayApplier().ApplyAll(base,
		overlay(map[string]any{"recording.enabled": true}),
		overlay(map[string]any{"unknown": true}),
	)
	require.Error(t, err)
	assert.True(t, IsUnknownFlag(err))
	assert.True(t, base.Equal(got))
}
