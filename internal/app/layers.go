package app

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"meet-flagcheck/internal/core"
	"meet-flagcheck/internal/policies"
	"meet-flagcheck/internal/types"
)

const PresetMultitrack = "multitrack"

var presets = map[string]func() types.Overlay{
	PresetMultitrack: policies.MultitrackPreset,
}

func (s Service) loadRegistry(rulesPath string) (*core.Registry, error) {
	rulesPath = strings.TrimSpace(rulesPath)
	if rulesPath == "" {
		return policies.MultitrackRegistry()
	}
	file, err := s.RuleSets.Load(rulesPath)
	if err != nil {
		return nil, err
	}
	return core.Compile(file)
}

func (s Service) loadLayers(req LayerRequest) ([]types.Overlay, error) {
	var layers []types.Overlay
	if name := strings.TrimSpace(req.Preset); name != "" {
		preset, ok := presets[name]
		if !ok {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("unknown preset: %s", name))
		}
		layers = append(layers, preset())
	}
	for _, path := range req.BasePaths {
		if strings.TrimSpace(path) == "" {
			continue
		}
		overlay, err := s.Overrides.Load(path)
		if err != nil {
			return nil, err
		}
		layers = append(layers, overlay)
	}
	if path := strings.TrimSpace(req.OverridesPath); path != "" {
		overlay, err := s.Overrides.Load(path)
		if err != nil {
			return nil, err
		}
		layers = append(layers, overlay)
	}
	return layers, nil
}

// resolve builds the snapshot for req, collecting hints for overrides
// that repeat the value already in effect.
func (s Service) resolve(req LayerRequest) (*core.Registry, core.ConfigSnapshot, []string, error) {
	registry, err := s.loadRegistry(req.RulesPath)
	if err != nil {
		return nil, core.ConfigSnapshot{}, nil, err
	}
	layers, err := s.loadLayers(req)
	if err != nil {
		return nil, core.ConfigSnapshot{}, nil, err
	}
	applier := core.NewOverlayApplier()
	snapshot := core.Defaults(registry)
	var hints []string
	for _, layer := range layers {
		next, err := applier.Apply(snapshot, layer)
		if err != nil {
			return nil, core.ConfigSnapshot{}, nil, err
		}
		hints = append(hints, redundantOverrideHints(snapshot, layer)...)
		snapshot = next
	}
	return registry, snapshot, hints, nil
}
