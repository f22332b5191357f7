package adapters

import (
	"encoding/json"
	"io"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"meet-flagcheck/internal/ports"
	"meet-flagcheck/internal/types"
)

type ReportWriterAdapter struct{}

func NewReportWriterAdapter() ReportWriterAdapter {
	return ReportWriterAdapter{}
}

func (a ReportWriterAdapter) WriteReport(w io.Writer, report types.Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write validation report").
			WithCause(err)
	}
	return nil
}

var _ ports.ReportPort = ReportWriterAdapter{}
