// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/H0llyW00dzZ/x509-certgen/src/config"
	"github.com/H0llyW00dzZ/x509-certgen/src/internal/generator"
	x509request "github.com/H0llyW00dzZ/x509-certgen/src/internal/x509/request"
	"github.com/H0llyW00dzZ/x509-certgen/src/logger"
)

type genFlags struct {
	rootCN     string
	signingCN  string
	expired    bool
	outDir     string
	configFile string
}

func (a *app) newGenCmd() *cobra.Command {
	f := &genFlags{}

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate a root CA, a signing CA, and server and client certificates",
		Long: `gen prompts for the server and client subject fields, signs the chain and
writes it below the output directory:

  <out>/root-ca.crt, <out>/root-ca.key
  <out>/signing-ca.crt, <out>/signing-ca.key
  <out>/<ts>/server.crt, server.key, server-bundle.crt
  <out>/<ts+1>/client.crt, client.key, client-bundle.crt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runGen(cmd, f)
		},
	}

	cmd.Flags().StringVarP(&f.rootCN, "root-cn", "r", generator.DefaultRootCN, "common name of the root CA")
	cmd.Flags().StringVarP(&f.signingCN, "signing-cn", "s", generator.DefaultSigningCN, "common name of the intermediate signing CA")
	cmd.Flags().BoolVarP(&f.expired, "expired", "e", false, "issue server and client certificates that are already expired")
	cmd.Flags().StringVar(&f.outDir, "out-dir", config.DefaultOutputDir, "output directory (overrides the config file)")
	cmd.Flags().StringVar(&f.configFile, "config", "", "configuration file (.json, .yaml, .yml); defaults to $"+config.EnvConfigFile)

	return cmd
}

func (a *app) runGen(cmd *cobra.Command, f *genFlags) error {
	cfg, err := config.Load(f.configFile)
	if err != nil {
		return fmt.Errorf("unable to create certificates: %w", err)
	}
	if cmd.Flags().Changed("out-dir") {
		cfg.OutputDir = f.outDir
	}
	policy := cfg.ValidityPolicy()

	// Keep stdout pure JSON lines when the JSON logger is selected.
	promptOut := cmd.OutOrStdout()
	if a.logFormat == logger.FormatJSON {
		promptOut = cmd.ErrOrStderr()
	}

	res, err := generator.Run(cmd.Context(), generator.Options{
		RootCN:    f.rootCN,
		SigningCN: f.signingCN,
		Expired:   f.expired,
		OutDir:    cfg.OutputDir,
		Subjects:  NewPrompter(cmd.InOrStdin(), promptOut),
		Policy:    &policy,
		Key:       cfg.Key,
		Logger:    a.log,
	})
	if err != nil {
		return fmt.Errorf("unable to create certificates: %w", err)
	}

	a.log.Printf("server bundle: %s", res.Paths[x509request.ServerLeaf].Bundle)
	a.log.Printf("client bundle: %s", res.Paths[x509request.ClientLeaf].Bundle)
	return nil
}
