package ports

import "meet-flagcheck/internal/types"

// OverridesPort loads one override document as an overlay. Nested
// documents come back flattened to dotted flag paths.
type OverridesPort interface {
	Load(path string) (types.Overlay, error)
}
