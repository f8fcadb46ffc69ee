// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/H0llyW00dzZ/x509-certgen/src/config"
	x509request "github.com/H0llyW00dzZ/x509-certgen/src/internal/x509/request"
	x509signer "github.com/H0llyW00dzZ/x509-certgen/src/internal/x509/signer"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		testFunc func(t *testing.T)
	}{
		{
			name: "Defaults",
			testFunc: func(t *testing.T) {
				t.Setenv(config.EnvConfigFile, "")

				cfg, err := config.Load("")
				require.NoError(t, err)
				assert.Equal(t, "certs", cfg.OutputDir)
				assert.Equal(t, x509request.DefaultValidityPolicy(), cfg.ValidityPolicy())
				assert.Equal(t, x509signer.DefaultKeyConfig(), cfg.Key)
			},
		},
		{
			name: "JSON",
			testFunc: func(t *testing.T) {
				path := writeConfig(t, "certgen.json", `{
  "outputDir": "out",
  "validityDays": 90,
  "expired": {"notBeforeDays": 10, "notAfterDays": 2},
  "key": {"algo": "RSA", "size": 4096}
}`)
				cfg, err := config.Load(path)
				require.NoError(t, err)
				assert.Equal(t, "out", cfg.OutputDir)
				assert.Equal(t, x509request.ValidityPolicy{Days: 90, ExpiredNotBefore: 10, ExpiredNotAfter: 2}, cfg.ValidityPolicy())
				assert.Equal(t, x509signer.KeyConfig{Algo: "rsa", Size: 4096}, cfg.Key)
			},
		},
		{
			name: "YAML",
			testFunc: func(t *testing.T) {
				path := writeConfig(t, "certgen.YML", "outputDir: fixtures\nkey:\n  algo: ecdsa\n  size: 384\n")
				cfg, err := config.Load(path)
				require.NoError(t, err)
				assert.Equal(t, "fixtures", cfg.OutputDir)
				assert.Equal(t, 365, cfg.ValidityDays)
				assert.Equal(t, 384, cfg.Key.Size)
			},
		},
		{
			name: "Environment variable",
			testFunc: func(t *testing.T) {
				path := writeConfig(t, "env.yaml", "validityDays: 7\n")
				t.Setenv(config.EnvConfigFile, path)

				cfg, err := config.Load("")
				require.NoError(t, err)
				assert.Equal(t, 7, cfg.ValidityDays)
			},
		},
		{
			name: "Invalid values reset",
			testFunc: func(t *testing.T) {
				path := writeConfig(t, "bad.json", `{
  "outputDir": "  ",
  "validityDays": -1,
  "expired": {"notBeforeDays": 1, "notAfterDays": 5},
  "key": {"algo": "ecdsa", "size": 128}
}`)
				cfg, err := config.Load(path)
				require.NoError(t, err)
				assert.Equal(t, config.Default(), cfg)
			},
		},
		{
			name: "Unknown algorithm",
			testFunc: func(t *testing.T) {
				path := writeConfig(t, "algo.json", `{"key": {"algo": "dsa", "size": 1024}}`)
				cfg, err := config.Load(path)
				require.NoError(t, err)
				assert.Equal(t, x509signer.DefaultKeyConfig(), cfg.Key)
			},
		},
		{
			name: "Weak RSA",
			testFunc: func(t *testing.T) {
				path := writeConfig(t, "rsa.yaml", "key:\n  algo: rsa\n  size: 1024\n")
				cfg, err := config.Load(path)
				require.NoError(t, err)
				assert.Equal(t, 2048, cfg.Key.Size)
			},
		},
		{
			name: "Missing file",
			testFunc: func(t *testing.T) {
				_, err := config.Load(filepath.Join(t.TempDir(), "nope.json"))
				assert.ErrorIs(t, err, os.ErrNotExist)
			},
		},
		{
			name: "Malformed JSON",
			testFunc: func(t *testing.T) {
				_, err := config.Load(writeConfig(t, "broken.json", "{"))
				assert.ErrorContains(t, err, "failed to parse JSON")
			},
		},
		{
			name: "Malformed YAML",
			testFunc: func(t *testing.T) {
				_, err := config.Load(writeConfig(t, "broken.yaml", "key: [unclosed"))
				assert.ErrorContains(t, err, "failed to parse YAML")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.testFunc(t)
		})
	}
}
