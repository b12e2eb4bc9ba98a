package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/vk/footprintgen/internal/app"
)

// EnvPrefix prefixes the environment variables that override flag
// defaults, e.g. FOOTPRINTGEN_OUTPUT.
const EnvPrefix = "FOOTPRINTGEN"

// Flag names, also used as config file keys.
const (
	flagDefinitions = "definitions"
	flagGenerators  = "generators"
	flagOutput      = "output"
	flagConstants   = "constants"
	flagLogLevel    = "log-level"
	flagLogFormat   = "log-format"
	flagFailFast    = "fail-fast"
	flagConfig      = "config"
)

// Execute runs the command line. Every returned error is an *ExitError.
func Execute(ctx context.Context, outW io.Writer, args []string) error {
	cmd := newRootCmd(outW)
	cmd.SetArgs(args)
	cmd.SetOut(outW)
	cmd.SetErr(outW)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}
	// Anything cobra reports itself is a usage problem.
	return usageError(err)
}

func newRootCmd(outW io.Writer) *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "footprintgen",
		Short: "Generate KiCad keyswitch footprints from YAML definitions",
		Long: `footprintgen expands YAML definition documents into parameter sets and
runs the named generator once per set, writing one footprint file each.

Running it without a command is the same as "footprintgen generate".`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return loadConfig(v, cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd.Context(), v, outW, false)
		},
	}

	addFlags(cmd.PersistentFlags())

	cmd.AddCommand(
		newGenerateCmd(v, outW),
		newValidateCmd(v, outW),
		newListCmd(v),
	)
	return cmd
}

func addFlags(flags *pflag.FlagSet) {
	flags.StringP(flagDefinitions, "d", "definitions", "Directory containing YAML definition documents.")
	flags.StringP(flagGenerators, "g", "generators", "Directory containing HCL generator manifests.")
	flags.StringP(flagOutput, "o", "generated", "Directory to write generated footprints to.")
	flags.StringP(flagConstants, "c", "", "Directory copied into the output before generation. The output directory is cleared first.")
	flags.StringP(flagLogLevel, "L", "info", "Logging level: 'debug', 'info', 'warn' or 'error'.")
	flags.String(flagLogFormat, "text", "Log output format: 'text' or 'json'.")
	flags.Bool(flagFailFast, false, "Stop after the first definition file that fails.")
	flags.String(flagConfig, "", "Config file (default: ./footprintgen.yaml if present).")
}

// loadConfig binds the parsed flags to v and layers the environment and
// the config file underneath them.
func loadConfig(v *viper.Viper, cmd *cobra.Command) error {
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return usageError(err)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if file := v.GetString(flagConfig); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return usageError(fmt.Errorf("failed to read config file: %w", err))
		}
		return nil
	}

	v.SetConfigName("footprintgen")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return usageError(fmt.Errorf("failed to read config file: %w", err))
		}
	}
	return nil
}

func appConfig(v *viper.Viper, dryRun bool) (*app.Config, error) {
	cfg, err := app.NewConfig(app.Config{
		DefinitionsDir: v.GetString(flagDefinitions),
		GeneratorsDir:  v.GetString(flagGenerators),
		OutputDir:      v.GetString(flagOutput),
		ConstantsDir:   v.GetString(flagConstants),
		LogLevel:       v.GetString(flagLogLevel),
		LogFormat:      v.GetString(flagLogFormat),
		FailFast:       v.GetBool(flagFailFast),
		DryRun:         dryRun,
	})
	if err != nil {
		return nil, usageError(err)
	}
	return cfg, nil
}

func newApp(v *viper.Viper, outW io.Writer, dryRun bool) (*app.App, error) {
	cfg, err := appConfig(v, dryRun)
	if err != nil {
		return nil, err
	}
	a, err := app.NewApp(outW, cfg)
	if err != nil {
		return nil, usageError(err)
	}
	return a, nil
}
