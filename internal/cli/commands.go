package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newGenerateCmd(v *viper.Viper, outW io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Generate footprints for every definition document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd.Context(), v, outW, false)
		},
	}
}

func newValidateCmd(v *viper.Viper, outW io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check every definition document without writing files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd.Context(), v, outW, true)
		},
	}
}

func newListCmd(v *viper.Viper) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the available generators and their parameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Logs would interleave with the listing.
			a, err := newApp(v, io.Discard, true)
			if err != nil {
				return err
			}
			if err := a.WriteGenerators(cmd.OutOrStdout(), format); err != nil {
				return usageError(err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "Output format: 'text' or 'yaml'.")
	return cmd
}

func runGenerate(ctx context.Context, v *viper.Viper, outW io.Writer, dryRun bool) error {
	a, err := newApp(v, outW, dryRun)
	if err != nil {
		return err
	}
	if _, err := a.Run(ctx); err != nil {
		return failure(err)
	}
	return nil
}
