package core

import (
	"iter"
	"slices"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"

	"meet-flagcheck/internal/types"
)

// SourceDefault marks a value that no overlay has touched.
const SourceDefault = "default"

// ConfigSnapshot is one fully resolved configuration: a value for every
// flag in its registry. Snapshots are never modified after creation;
// applying an overlay produces a new one.
type ConfigSnapshot struct {
	registry *Registry
	values   []types.Value
	sources  []string
}

// Defaults resolves every flag in the registry to its declared default.
func Defaults(registry *Registry) ConfigSnapshot {
	values := make([]types.Value, len(registry.flags))
	sources := make([]string, len(registry.flags))
	for i, flag := range registry.flags {
		values[i] = flag.Default
		sources[i] = SourceDefault
	}
	return ConfigSnapshot{registry: registry, values: values, sources: sources}
}

func (s ConfigSnapshot) Registry() *Registry {
	return s.registry
}

// IsZero reports whether the snapshot was never resolved from a registry.
func (s ConfigSnapshot) IsZero() bool {
	return s.registry == nil
}

func (s ConfigSnapshot) Get(path string) (types.Value, bool) {
	if s.registry == nil {
		return types.Value{}, false
	}
	i, ok := s.registry.indexOf(path)
	if !ok {
		return types.Value{}, false
	}
	return s.values[i], true
}

// Source names the overlay that supplied the value at path, or
// SourceDefault.
func (s ConfigSnapshot) Source(path string) string {
	if s.registry == nil {
		return ""
	}
	i, ok := s.registry.indexOf(path)
	if !ok {
		return ""
	}
	return s.sources[i]
}

// All yields path/value pairs in registry order.
func (s ConfigSnapshot) All() iter.Seq2[string, types.Value] {
	return func(yield func(string, types.Value) bool) {
		if s.registry == nil {
			return
		}
		for i, flag := range s.registry.flags {
			if !yield(flag.Path, s.values[i]) {
				return
			}
		}
	}
}

// Changed yields the path/value pairs that differ from the flag defaults.
func (s ConfigSnapshot) Changed() iter.Seq2[string, types.Value] {
	return func(yield func(string, types.Value) bool) {
		if s.registry == nil {
			return
		}
		for i, flag := range s.registry.flags {
			if s.values[i].Equal(flag.Default) {
				continue
			}
			if !yield(flag.Path, s.values[i]) {
				return
			}
		}
	}
}

// Equal compares resolved values. Provenance is ignored, so two snapshots
// reached through different overlay orders can still be equal.
func (s ConfigSnapshot) Equal(other ConfigSnapshot) bool {
	if len(s.values) != len(other.values) {
		return false
	}
	if s.registry != other.registry {
		for i := range s.values {
			if s.registry.flags[i].Path != other.registry.flags[i].Path {
				return false
			}
		}
	}
	for i := range s.values {
		if !s.values[i].Equal(other.values[i]) {
			return false
		}
	}
	return true
}

// Fingerprint hashes the ordered path=value pairs. Equal snapshots over
// the same flags share a fingerprint.
func (s ConfigSnapshot) Fingerprint() string {
	h := xxhash.New()
	for path, value := range s.All() {
		h.WriteString(path)
		h.WriteString("=")
		h.WriteString(string(value.Kind()))
		h.WriteString(":")
		h.WriteString(value.String())
		h.Write([]byte{0})
	}
	return strconv.FormatUint(h.Sum64(), 16)
}

// Flatten returns a dotted-path map of plain Go values.
func (s ConfigSnapshot) Flatten() map[string]any {
	out := make(map[string]any, len(s.values))
	for path, value := range s.All() {
		out[path] = value.Interface()
	}
	return out
}

// Nested returns the snapshot as nested maps keyed by path segment, the
// shape the host application reads. With changedOnly, flags still at
// their default are left out.
func (s ConfigSnapshot) Nested(changedOnly bool) map[string]any {
	source := s.All()
	if changedOnly {
		source = s.Changed()
	}
	out := map[string]any{}
	for path, value := range source {
		segments := strings.Split(path, ".")
		node := out
		for _, segment := range segments[:len(segments)-1] {
			child, ok := node[segment].(map[string]any)
			if !ok {
				child = map[string]any{}
				node[segment] = child
			}
			node = child
		}
		node[segments[len(segments)-1]] = value.Interface()
	}
	return out
}

func (s ConfigSnapshot) with(values []types.Value, sources []string) ConfigSnapshot {
	return ConfigSnapshot{registry: s.registry, values: values, sources: sources}
}

func (s ConfigSnapshot) clone() ([]types.Value, []string) {
	return slices.Clone(s.values), slices.Clone(s.sources)
}
