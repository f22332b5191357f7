package adapters

import (
	"bytes"
	"errors"
	"io"
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"meet-flagcheck/internal/ports"
	"meet-flagcheck/internal/types"
)

// RuleSetFileAdapter reads and writes rule sets as YAML. Unknown keys are
// rejected so a misspelled "requires" cannot silently drop a rule.
type RuleSetFileAdapter struct{}

func NewRuleSetFileAdapter() RuleSetFileAdapter {
	return RuleSetFileAdapter{}
}

func (a RuleSetFileAdapter) Load(path string) (types.RuleSetFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.RuleSetFile{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("rule set file not found: " + path).
			WithCause(err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	var file types.RuleSetFile
	if err := decoder.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return types.RuleSetFile{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse rule set yaml: " + path).
			WithCause(err)
	}
	if file.SchemaVersion == "" {
		return types.RuleSetFile{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("rule set file missing schema_version: " + path)
	}
	log.Debug().
		Str("path", path).
		Int("flags", len(file.Flags)).
		Int("rules", len(file.Rules)).
		Msg("rule set loaded")
	return file, nil
}

func (a RuleSetFileAdapter) Export(w io.Writer, file types.RuleSetFile) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(file); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode rule set").
			WithCause(err)
	}
	return encoder.Close()
}

var _ ports.RuleSetPort = RuleSetFileAdapter{}
