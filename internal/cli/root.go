package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"meet-flagcheck/internal/app"
)

// version is set at build time via ldflags.
var version = "dev"

const envPrefix = "MEET_FLAGCHECK"

type RootConfig struct {
	ConfigFile string
	LogLevel   string
}

func Execute() {
	os.Exit(run(newRootCommand()))
}

// ExecuteValidateConfig runs the standalone validate-config tool, the
// validate command without the rest of the tree.
func ExecuteValidateConfig() {
	os.Exit(run(newValidateConfigCommand()))
}

func run(cmd *cobra.Command) int {
	cmd.SilenceErrors = true
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "error: %s\n", errorMessage(err))
		return exitCodeForError(err)
	}
	return 0
}

func newRootCommand() *cobra.Command {
	cfg := RootConfig{}
	layers := &layerOptions{}
	cmd := &cobra.Command{
		Use:     "meet-flagcheck",
		Short:   "Validate feature-flag overrides for the meeting host configuration",
		Version: version,
	}
	addRootFlags(cmd, &cfg)
	addLayerFlags(cmd, layers)

	cmd.AddCommand(newValidateCommand(layers))
	cmd.AddCommand(newRenderCommand(layers))
	cmd.AddCommand(newRulesCommand(layers))
	return cmd
}

func newValidateConfigCommand() *cobra.Command {
	cfg := RootConfig{}
	layers := &layerOptions{}
	cmd := newValidateCommand(layers)
	cmd.Use = "validate-config <overrides-file>"
	cmd.Version = version
	addRootFlags(cmd, &cfg)
	addLayerFlags(cmd, layers)
	return cmd
}

func addRootFlags(cmd *cobra.Command, cfg *RootConfig) {
	cmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		if err := initConfig(cfg.ConfigFile); err != nil {
			return err
		}
		setupLogging(viper.GetString("log_level"))
		return nil
	}
	cmd.PersistentFlags().StringVar(&cfg.ConfigFile, "config", "", "Config file path")
	cmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", "info", "Log level")
	_ = viper.BindPFlag("log_level", cmd.PersistentFlags().Lookup("log-level"))
}

func initConfig(configFile string) error {
	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()

	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("failed to read config file").
				WithCause(err)
		}
		return nil
	}

	viper.SetConfigName("meet-flagcheck")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.config/meet-flagcheck")
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to read config file").
			WithCause(err)
	}
	return nil
}

// setupLogging sends logs to stderr; stdout carries reports and rendered
// configuration.
func setupLogging(level string) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

func newAppService() app.Service {
	return app.NewService()
}

// exitCodeForError maps failures to the documented exit codes: 1 for
// error-severity violations, 2 for bad input, 3 for internal failures.
// Errors without a code come from argument parsing.
func exitCodeForError(err error) int {
	switch errbuilder.CodeOf(err) {
	case errbuilder.CodeFailedPrecondition:
		return 1
	case errbuilder.CodeInvalidArgument, errbuilder.CodeAlreadyExists, errbuilder.CodeNotFound:
		return 2
	case errbuilder.CodeInternal:
		return 3
	default:
		var builder *errbuilder.ErrBuilder
		if errors.As(err, &builder) {
			return 3
		}
		return 2
	}
}

func errorMessage(err error) string {
	var builder *errbuilder.ErrBuilder
	if errors.As(err, &builder) && strings.TrimSpace(builder.Msg) != "" {
		return builder.Msg
	}
	return err.Error()
}
