// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/H0llyW00dzZ/x509-certgen/src/internal/helper/posix"
	x509signer "github.com/H0llyW00dzZ/x509-certgen/src/internal/x509/signer"
	"github.com/H0llyW00dzZ/x509-certgen/src/logger"
	"github.com/H0llyW00dzZ/x509-certgen/src/version"
)

// ErrOutputFormatWithoutBuild is returned when --output-format is given
// without --build.
var ErrOutputFormatWithoutBuild = errors.New("cli: --output-format requires --build")

// app holds the state shared by the root command and its subcommands.
type app struct {
	log logger.Logger

	build        bool
	outputFormat string
	logFormat    string
	debug        bool
}

// Execute runs the root command with the process arguments.
//
// Parameters:
//   - ctx: Cancelled on SIGINT/SIGTERM by the caller
//   - version: Reported by --version
//   - log: Logger used for progress output in text mode
//
// Returns:
//   - error: The failure of the selected command, already wrapped for display
func Execute(ctx context.Context, version string, log logger.Logger) error {
	return NewRootCmd(version, log).ExecuteContext(ctx)
}

// NewRootCmd builds the certgen command tree.
func NewRootCmd(ver string, log logger.Logger) *cobra.Command {
	if log == nil {
		log = logger.NewCLILogger()
	}
	a := &app{log: log}

	rootCmd := &cobra.Command{
		Use:   posix.GetExecutableName(),
		Short: "X.509 test certificate chain generator",
		Long: `Creates a root CA, an intermediate signing CA, and a server and a
client certificate signed by the intermediate, for use as test fixtures.`,
		Version:           ver,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE:              a.runRoot,
	}

	rootCmd.Flags().BoolVarP(&a.build, "build", "b", false, "print build information and exit")
	rootCmd.Flags().StringVarP(&a.outputFormat, "output-format", "o", "", "build information format: json or yaml (requires --build)")
	rootCmd.PersistentFlags().StringVar(&a.logFormat, "log-format", logger.FormatText, "log format: text or json (json sends gen prompts to stderr)")
	rootCmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable certificate library debug logging")

	rootCmd.AddCommand(a.newGenCmd(), a.newInspectCmd())

	return rootCmd
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	switch a.logFormat {
	case logger.FormatJSON:
		a.log = logger.New(logger.FormatJSON, cmd.OutOrStdout())
	case logger.FormatText:
		a.log.SetOutput(cmd.OutOrStdout())
	default:
		return fmt.Errorf("cli: unknown log format %q", a.logFormat)
	}
	x509signer.SetDebug(a.debug)
	return nil
}

func (a *app) runRoot(cmd *cobra.Command, _ []string) error {
	if !a.build {
		if a.outputFormat != "" {
			return ErrOutputFormatWithoutBuild
		}
		return cmd.Help()
	}

	out, err := version.Info().Render(a.outputFormat)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), out)
	return err
}
