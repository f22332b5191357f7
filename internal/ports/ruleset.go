package ports

import (
	"io"

	"meet-flagcheck/internal/types"
)

type RuleSetPort interface {
	Load(path string) (types.RuleSetFile, error)
	Export(w io.Writer, file types.RuleSetFile) error
}
