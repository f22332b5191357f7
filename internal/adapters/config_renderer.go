package adapters

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"meet-flagcheck/internal/ports"
	"meet-flagcheck/internal/types"
)

// ConfigRendererAdapter writes resolved configurations. The js format
// produces the assignment form the conferencing web client loads from
// its custom config file:
//
//	config.transcription = {
//	    "enabled": true
//	};
type ConfigRendererAdapter struct{}

func NewConfigRendererAdapter() ConfigRendererAdapter {
	return ConfigRendererAdapter{}
}

func (a ConfigRendererAdapter) Render(w io.Writer, format types.RenderFormat, config types.RenderedConfig) error {
	var err error
	switch format {
	case types.RenderFormatYAML:
		err = renderYAML(w, config)
	case types.RenderFormatJSON:
		err = renderJSON(w, config)
	case types.RenderFormatJS:
		err = renderJS(w, config)
	default:
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unsupported render format: %s", format))
	}
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to render %s config", format)).
			WithCause(err)
	}
	return nil
}

// renderYAML keeps section order by building a mapping node; nested maps
// inside a section are sorted by the encoder.
func renderYAML(w io.Writer, config types.RenderedConfig) error {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, section := range config.Sections {
		value := &yaml.Node{}
		if err := value.Encode(section.Value); err != nil {
			return err
		}
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: section.Key},
			value,
		)
	}
	if len(root.Content) > 0 {
		root.Content[0].HeadComment = "fingerprint: " + config.Fingerprint
	}
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(root); err != nil {
		return err
	}
	return encoder.Close()
}

func renderJSON(w io.Writer, config types.RenderedConfig) error {
	doc := make(map[string]any, len(config.Sections))
	for _, section := range config.Sections {
		doc[section.Key] = section.Value
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(doc)
}

func renderJS(w io.Writer, config types.RenderedConfig) error {
	if _, err := fmt.Fprintf(w, "// Generated by meet-flagcheck (fingerprint %s)\n", config.Fingerprint); err != nil {
		return err
	}
	for _, section := range config.Sections {
		literal, err := json.MarshalIndent(section.Value, "", "    ")
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "\nconfig.%s = %s;\n", section.Key, literal); err != nil {
			return err
		}
	}
	return nil
}

var _ ports.RendererPort = ConfigRendererAdapter{}
