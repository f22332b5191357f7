package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"meet-flagcheck/internal/app"
	"meet-flagcheck/internal/core"
)

type rulesOptions struct {
	Export bool
}

func newRulesCommand(layers *layerOptions) *cobra.Command {
	opts := rulesOptions{}
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the flags and dependency rules in effect",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRules(cmd, layers, opts)
		},
	}
	cmd.Flags().BoolVar(&opts.Export, "export", false, "Write the rule set as YAML instead of a listing")
	return cmd
}

func runRules(cmd *cobra.Command, layers *layerOptions, opts rulesOptions) error {
	out := cmd.OutOrStdout()
	req := app.RulesRequest{RulesPath: resolveString(cmd, layers.Rules, "rules", "rules")}
	if opts.Export {
		req.Export = out
	}
	service := newAppService()
	result, err := service.Rules(req)
	if err != nil || opts.Export {
		return err
	}

	fmt.Fprintln(out, "flags:")
	for _, flag := range result.Flags {
		line := fmt.Sprintf("- %s (%s) default %s", flag.Path, flag.Type, flag.Default)
		if len(flag.Values) > 0 {
			line += fmt.Sprintf(" [%s]", strings.Join(flag.Values, ", "))
		}
		fmt.Fprintln(out, line)
	}
	fmt.Fprintln(out, "rules:")
	for _, rule := range result.Rules {
		requires := make([]string, 0, len(rule.Requires))
		for _, req := range rule.Requires {
			requires = append(requires, req.Flag+" "+core.Describe(req.Predicate))
		}
		fmt.Fprintf(out, "- [%s] %s: when %s %s, requires %s\n",
			rule.Severity, rule.ID, rule.Subject, core.Describe(rule.When), strings.Join(requires, " and "))
	}
	return nil
}
