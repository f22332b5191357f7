package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"meet-flagcheck/internal/app"
)

type layerOptions struct {
	Rules  string
	Base   []string
	Preset string
}

func addLayerFlags(cmd *cobra.Command, opts *layerOptions) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.Rules, "rules", "", "Rule set file replacing the built-in multitrack rules")
	flags.StringSliceVar(&opts.Base, "base", nil, "Overlay files applied before the overrides file")
	flags.StringVar(&opts.Preset, "preset", "", "Built-in overlay applied first (multitrack)")
	_ = viper.BindPFlag("rules", flags.Lookup("rules"))
	_ = viper.BindPFlag("base", flags.Lookup("base"))
	_ = viper.BindPFlag("preset", flags.Lookup("preset"))
}

func layerRequest(cmd *cobra.Command, opts *layerOptions, overridesPath string) app.LayerRequest {
	return app.LayerRequest{
		RulesPath:     resolveString(cmd, opts.Rules, "rules", "rules"),
		Preset:        resolveString(cmd, opts.Preset, "preset", "preset"),
		BasePaths:     resolveStrings(cmd, opts.Base, "base", "base"),
		OverridesPath: overridesPath,
	}
}

func resolveString(cmd *cobra.Command, value string, key string, flagName string) string {
	if cmd == nil {
		if value != "" {
			return value
		}
		return viper.GetString(key)
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetString(key)
}

func resolveStrings(cmd *cobra.Command, values []string, key string, flagName string) []string {
	if cmd == nil {
		if len(values) > 0 {
			return values
		}
		return viper.GetStringSlice(key)
	}
	if flagChanged(cmd, flagName) {
		return values
	}
	return viper.GetStringSlice(key)
}

func resolveBool(cmd *cobra.Command, value bool, key string, flagName string) bool {
	if cmd == nil {
		return value
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetBool(key)
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil || strings.TrimSpace(name) == "" {
		return false
	}
	if flag := cmd.Flags().Lookup(name); flag != nil {
		return flag.Changed
	}
	if flag := cmd.PersistentFlags().Lookup(name); flag != nil {
		return flag.Changed
	}
	return false
}
