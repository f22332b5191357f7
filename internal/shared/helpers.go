// Package shared provides common utility functions used across multiple
// packages in the meet-flagcheck codebase.
package shared

import (
	"strings"
)

// NormalizeFlagPath trims whitespace around the path and around each
// dotted segment, so " transcription . enabled " becomes
// "transcription.enabled". Empty segments are preserved so callers can
// reject them.
func NormalizeFlagPath(value string) string {
	parts := strings.Split(strings.TrimSpace(value), ".")
	for i, part := range parts {
		parts[i] = strings.TrimSpace(part)
	}
	return strings.Join(parts, ".")
}

// ValidFlagPath reports whether every dotted segment of a normalized
// path is non-empty.
func ValidFlagPath(path string) bool {
	if path == "" {
		return false
	}
	for _, part := range strings.Split(path, ".") {
		if part == "" {
			return false
		}
	}
	return true
}

// JoinFlagPath joins a parent path and a child key with a dot.
func JoinFlagPath(parent string, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}

// PathsOverlap reports whether one path is a proper dotted prefix of the
// other, e.g. "recording" and "recording.enabled".
func PathsOverlap(a string, b string) bool {
	return strings.HasPrefix(a, b+".") || strings.HasPrefix(b, a+".")
}
