package core

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"meet-flagcheck/internal/shared"
	"meet-flagcheck/internal/types"
)

type OverlayApplier struct{}

func NewOverlayApplier() OverlayApplier {
	return OverlayApplier{}
}

// Apply resolves overlay on top of base and returns the new snapshot.
// Every key must name a registered flag and carry a value of its type;
// on any failure nothing is applied and base is returned untouched.
// Keys are checked in sorted order so the reported failure is stable.
func (a OverlayApplier) Apply(base ConfigSnapshot, overlay types.Overlay) (ConfigSnapshot, error) {
	if base.IsZero() {
		return ConfigSnapshot{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("base snapshot is not resolved from a registry")
	}
	source := strings.TrimSpace(overlay.Source)
	if source == "" {
		source = "overrides"
	}
	values, sources := base.clone()
	seen := map[int]string{}
	for _, key := range slices.Sorted(maps.Keys(overlay.Values)) {
		i, ok := base.registry.indexOf(key)
		if !ok {
			return base, unknownFlagError(key)
		}
		if previous, dup := seen[i]; dup {
			return base, invalidArgument(fmt.Sprintf("flag %s is set twice in %s (%q and %q)", base.registry.flags[i].Path, source, previous, key))
		}
		seen[i] = key
		flag := base.registry.flags[i]
		value, err := Coerce(flag, overlay.Values[key])
		if err != nil {
			return base, err
		}
		if values[i].Equal(value) {
			log.Debug().
				Str("flag", flag.Path).
				Str("source", source).
				Msg("override matches current value")
		}
		values[i] = value
		sources[i] = source
	}
	log.Debug().
		Str("source", source).
		Int("overrides", len(overlay.Values)).
		Msg("overlay applied")
	return base.with(values, sources), nil
}

// ApplyAll applies overlays left to right; later layers win.
func (a OverlayApplier) ApplyAll(base ConfigSnapshot, overlays ...types.Overlay) (ConfigSnapshot, error) {
	current := base
	for _, overlay := range overlays {
		next, err := a.Apply(current, overlay)
		if err != nil {
			return base, err
		}
		current = next
	}
	return current, nil
}

// MergeOverlays folds overlays into one, last writer wins per flag.
// Applying the merge equals applying the overlays in order. Keys are
// normalized; when one overlay names a flag twice both keys are kept,
// so Apply rejects the merge exactly as it rejects that overlay.
func MergeOverlays(overlays ...types.Overlay) types.Overlay {
	merged := types.Overlay{Values: map[string]any{}}
	owners := map[string][]string{}
	var sources []string
	for _, overlay := range overlays {
		if overlay.Source != "" {
			sources = append(sources, overlay.Source)
		}
		layer := map[string][]string{}
		for _, key := range slices.Sorted(maps.Keys(overlay.Values)) {
			path := shared.NormalizeFlagPath(key)
			layer[path] = append(layer[path], key)
		}
		for _, path := range slices.Sorted(maps.Keys(layer)) {
			for _, key := range owners[path] {
				delete(merged.Values, key)
			}
			keys := layer[path]
			if len(keys) == 1 {
				merged.Values[path] = overlay.Values[keys[0]]
				owners[path] = []string{path}
				continue
			}
			for _, key := range keys {
				merged.Values[key] = overlay.Values[key]
			}
			owners[path] = keys
		}
	}
	merged.Source = strings.Join(sources, "+")
	return merged
}
