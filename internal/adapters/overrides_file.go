package adapters

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"meet-flagcheck/internal/ports"
	"meet-flagcheck/internal/shared"
	"meet-flagcheck/internal/types"
)

// OverrideFileAdapter reads override documents in YAML, JSON, JSONC or
// TOML. Nested objects are flattened to dotted paths, so
//
//	transcription:
//	  enabled: true
//
// and "transcription.enabled": true are the same override.
type OverrideFileAdapter struct{}

func NewOverrideFileAdapter() OverrideFileAdapter {
	return OverrideFileAdapter{}
}

func (a OverrideFileAdapter) Load(path string) (types.Overlay, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Overlay{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("overrides file not found: " + path).
			WithCause(err)
	}
	return a.Parse(path, formatFromPath(path), data)
}

// Parse decodes data in the given format ("yaml", "json", "jsonc" or
// "toml") and flattens it into an overlay named source.
func (a OverrideFileAdapter) Parse(source string, format string, data []byte) (types.Overlay, error) {
	doc := map[string]any{}
	var err error
	switch format {
	case "yaml":
		err = yaml.Unmarshal(data, &doc)
	case "json", "jsonc":
		err = json.Unmarshal(jsonc.ToJSON(data), &doc)
	case "toml":
		err = toml.Unmarshal(data, &doc)
	default:
		return types.Overlay{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unsupported overrides format %q for %s", format, source))
	}
	if err != nil {
		return types.Overlay{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("failed to parse %s overrides: %s", format, source)).
			WithCause(err)
	}

	values := map[string]any{}
	if err := flatten("", doc, values); err != nil {
		return types.Overlay{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("%s: %s", source, err))
	}
	log.Debug().
		Str("source", source).
		Str("format", format).
		Int("overrides", len(values)).
		Msg("overrides loaded")
	return types.Overlay{Source: source, Values: values}, nil
}

func flatten(prefix string, node map[string]any, out map[string]any) error {
	for _, key := range slices.Sorted(maps.Keys(node)) {
		path := shared.NormalizeFlagPath(shared.JoinFlagPath(prefix, key))
		switch child := node[key].(type) {
		case map[string]any:
			if err := flatten(path, child, out); err != nil {
				return err
			}
		case map[any]any:
			converted := make(map[string]any, len(child))
			for k, v := range child {
				converted[fmt.Sprint(k)] = v
			}
			if err := flatten(path, converted, out); err != nil {
				return err
			}
		case []any:
			return fmt.Errorf("%s: lists are not flag values", path)
		default:
			if _, exists := out[path]; exists {
				return fmt.Errorf("%s is set more than once", path)
			}
			out[path] = child
		}
	}
	return nil
}

func formatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	case ".json":
		return "json"
	case ".jsonc":
		return "jsonc"
	case ".toml":
		return "toml"
	default:
		return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	}
}

var _ ports.OverridesPort = OverrideFileAdapter{}
