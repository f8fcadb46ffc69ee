// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	x509chain "github.com/H0llyW00dzZ/x509-certgen/src/internal/x509/chain"
)

type inspectFlags struct {
	format  string
	at      string
	keyFile string
}

func (a *app) newInspectCmd() *cobra.Command {
	f := &inspectFlags{}

	cmd := &cobra.Command{
		Use:   "inspect BUNDLE_FILE",
		Short: "Verify and display a generated certificate bundle",
		Long: `inspect decodes a leaf-first bundle, verifies every signature and the chain
against its last certificate at the given time, and renders the result.

The chain is rendered before verification errors are reported, so expired
fixtures can still be examined.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInspect(cmd, args[0], f)
		},
	}

	cmd.Flags().StringVarP(&f.format, "format", "f", "table", "output format: table, tree or json")
	cmd.Flags().StringVar(&f.at, "at", "", "verification time in RFC 3339 (default: now)")
	cmd.Flags().StringVar(&f.keyFile, "key", "", "private key file expected to match the leaf")

	return cmd
}

func (a *app) runInspect(cmd *cobra.Command, path string, f *inspectFlags) error {
	at := time.Now()
	if f.at != "" {
		t, err := time.Parse(time.RFC3339, f.at)
		if err != nil {
			return fmt.Errorf("cli: invalid --at: %w", err)
		}
		at = t
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("cli: reading bundle: %w", err)
	}
	chain, err := x509chain.FromBundle(data)
	if err != nil {
		return fmt.Errorf("cli: decoding bundle: %w", err)
	}

	var out string
	switch f.format {
	case "table":
		if out, err = chain.RenderTable(at); err != nil {
			return err
		}
	case "tree":
		out = chain.RenderASCIITree(at)
	case "json":
		raw, err := chain.ToVisualizationJSON(at)
		if err != nil {
			return err
		}
		out = string(raw) + "\n"
	default:
		return fmt.Errorf("cli: unknown inspect format %q", f.format)
	}
	fmt.Fprint(cmd.OutOrStdout(), out)

	if err := chain.VerifyLinks(); err != nil {
		return fmt.Errorf("chain verification failed: %w", err)
	}
	if err := chain.VerifyChain(at); err != nil {
		return fmt.Errorf("chain verification failed: %w", err)
	}

	if f.keyFile != "" {
		key, err := os.ReadFile(f.keyFile)
		if err != nil {
			return fmt.Errorf("cli: reading key: %w", err)
		}
		if err := chain.MatchesKey(key); err != nil {
			return fmt.Errorf("key check failed: %w", err)
		}
		a.log.Printf("private key %s matches %s", f.keyFile, chain.Leaf().Subject.CommonName)
	}

	a.log.Printf("chain of %d certificates verified at %s", len(chain.Certs), at.UTC().Format(time.RFC3339))
	return nil
}
