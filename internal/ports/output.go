package ports

import (
	"io"

	"meet-flagcheck/internal/types"
)

// RendererPort writes a resolved configuration in a form the host
// application can load.
type RendererPort interface {
	Render(w io.Writer, format types.RenderFormat, config types.RenderedConfig) error
}

// ReportPort writes machine-readable validation reports.
type ReportPort interface {
	WriteReport(w io.Writer, report types.Report) error
}

type OutputPort interface {
	WriteFile(path string, data []byte) error
}
