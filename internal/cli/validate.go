package cli

import (
	"context"
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"meet-flagcheck/internal/app"
	"meet-flagcheck/internal/types"
)

type validateOptions struct {
	Format string
}

func newValidateCommand(layers *layerOptions) *cobra.Command {
	opts := validateOptions{}
	cmd := &cobra.Command{
		Use:   "validate <overrides-file>",
		Short: "Validate an overrides file against the flag dependency rules",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return runValidate(cmd.Context(), cmd, layers, opts, args[0])
		},
	}
	cmd.Flags().StringVar(&opts.Format, "format", string(types.ReportFormatText), "Report format (text, json)")
	_ = viper.BindPFlag("report_format", cmd.Flags().Lookup("format"))
	return cmd
}

func runValidate(ctx context.Context, cmd *cobra.Command, layers *layerOptions, opts validateOptions, path string) error {
	service := newAppService()
	result, err := service.Validate(ctx, app.ValidateRequest{
		LayerRequest: layerRequest(cmd, layers, path),
	})
	if err != nil {
		return err
	}

	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	for _, hint := range result.Hints {
		fmt.Fprintln(stderr, hint)
	}
	switch format := types.ReportFormat(resolveString(cmd, opts.Format, "report_format", "format")); format {
	case types.ReportFormatJSON:
		if err := service.Reports.WriteReport(stdout, result.Report); err != nil {
			return err
		}
	case types.ReportFormatText, "":
		for _, line := range result.Warnings {
			fmt.Fprintln(stdout, line)
		}
		for _, line := range result.Errors {
			fmt.Fprintln(stderr, line)
		}
		if result.Valid() {
			fmt.Fprintf(stdout, "valid: %s (%d warning(s), fingerprint %s)\n", path, len(result.Warnings), result.Report.Fingerprint)
		}
	default:
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unsupported report format: %s", format))
	}
	if !result.Valid() {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("%s: %d error violation(s)", path, len(result.Errors)))
	}
	return nil
}
