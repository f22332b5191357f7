package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"meet-flagcheck/internal/app"
	"meet-flagcheck/internal/types"
)

type renderOptions struct {
	Format string
	Output string
	All    bool
	Force  bool
}

func newRenderCommand(layers *layerOptions) *cobra.Command {
	opts := renderOptions{}
	cmd := &cobra.Command{
		Use:   "render <overrides-file>",
		Short: "Render the resolved configuration for the host",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return runRender(cmd.Context(), cmd, layers, opts, args[0])
		},
	}
	cmd.Flags().StringVar(&opts.Format, "format", string(types.RenderFormatJS), "Output format (yaml, json, js)")
	cmd.Flags().StringVar(&opts.Output, "output", "", "Output file (default stdout)")
	cmd.Flags().BoolVar(&opts.All, "all", false, "Render every flag, not only overridden ones")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "Render even when error violations remain")
	_ = viper.BindPFlag("format", cmd.Flags().Lookup("format"))
	_ = viper.BindPFlag("render_all", cmd.Flags().Lookup("all"))
	return cmd
}

func runRender(ctx context.Context, cmd *cobra.Command, layers *layerOptions, opts renderOptions, path string) error {
	var out io.Writer
	if opts.Output == "" {
		out = cmd.OutOrStdout()
	}

	service := newAppService()
	result, err := service.Render(ctx, app.RenderRequest{
		LayerRequest: layerRequest(cmd, layers, path),
		Format:       types.RenderFormat(resolveString(cmd, opts.Format, "format", "format")),
		All:          resolveBool(cmd, opts.All, "render_all", "all"),
		Force:        opts.Force,
		Output:       out,
		OutputPath:   opts.Output,
	})
	stderr := cmd.ErrOrStderr()
	for _, line := range result.Errors {
		fmt.Fprintln(stderr, line)
	}
	for _, line := range result.Warnings {
		fmt.Fprintln(stderr, line)
	}
	if err != nil {
		return err
	}
	log.Ctx(ctx).Debug().
		Str("fingerprint", result.Fingerprint).
		Str("output", opts.Output).
		Msg("configuration rendered")
	return nil
}
