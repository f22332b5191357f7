package app

import (
	"fmt"
	"maps"
	"slices"

	"meet-flagcheck/internal/core"
	"meet-flagcheck/internal/types"
)

// redundantOverrideHints returns hints for overrides in layer that set a
// flag to the value it already has in before. Such entries can be
// dropped from the file without changing the result.
func redundantOverrideHints(before core.ConfigSnapshot, layer types.Overlay) []string {
	registry := before.Registry()
	var hints []string
	for _, key := range slices.Sorted(maps.Keys(layer.Values)) {
		flag, ok := registry.Flag(key)
		if !ok {
			continue
		}
		value, err := core.Coerce(flag, layer.Values[key])
		if err != nil {
			continue
		}
		current, _ := before.Get(flag.Path)
		if !current.Equal(value) {
			continue
		}
		hints = append(hints, fmt.Sprintf(
			"hint: %s is already %s (from %s); you can omit it from %s",
			flag.Path, current, before.Source(flag.Path), layer.Source,
		))
	}
	return hints
}
