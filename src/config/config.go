// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package config loads the optional generator configuration file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	x509request "github.com/H0llyW00dzZ/x509-certgen/src/internal/x509/request"
	x509signer "github.com/H0llyW00dzZ/x509-certgen/src/internal/x509/signer"
)

// EnvConfigFile names the environment variable consulted when no
// configuration path is given.
const EnvConfigFile = "CERTGEN_CONFIG_FILE"

// DefaultOutputDir is where generated material is written by default.
const DefaultOutputDir = "certs"

// format represents supported configuration file formats.
type format int

const (
	// formatJSON represents JSON configuration format (.json)
	formatJSON format = iota
	// formatYAML represents YAML configuration format (.yaml, .yml)
	formatYAML
)

// Config represents the generator configuration.
//
// The configuration can be loaded from a JSON or YAML file given with
// --config or the CERTGEN_CONFIG_FILE environment variable, with defaults
// applied for any missing or invalid values.
// Supported file extensions: .json, .yaml, .yml
type Config struct {
	// OutputDir: Base directory for CA files and timestamped leaf directories
	OutputDir string `json:"outputDir" yaml:"outputDir"`
	// ValidityDays: Lifetime of every certificate in a normal run
	ValidityDays int `json:"validityDays" yaml:"validityDays"`

	// Expired: Offsets in days before now for the expired leaf window
	Expired struct {
		NotBeforeDays int `json:"notBeforeDays" yaml:"notBeforeDays"`
		NotAfterDays  int `json:"notAfterDays" yaml:"notAfterDays"`
	} `json:"expired" yaml:"expired"`

	// Key: Algorithm and size of generated keys
	Key x509signer.KeyConfig `json:"key" yaml:"key"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	policy := x509request.DefaultValidityPolicy()

	c := &Config{
		OutputDir:    DefaultOutputDir,
		ValidityDays: policy.Days,
		Key:          x509signer.DefaultKeyConfig(),
	}
	c.Expired.NotBeforeDays = policy.ExpiredNotBefore
	c.Expired.NotAfterDays = policy.ExpiredNotAfter
	return c
}

// ValidityPolicy returns the validity windows described by c.
func (c *Config) ValidityPolicy() x509request.ValidityPolicy {
	return x509request.ValidityPolicy{
		Days:             c.ValidityDays,
		ExpiredNotBefore: c.Expired.NotBeforeDays,
		ExpiredNotAfter:  c.Expired.NotAfterDays,
	}
}

// detectFormat determines the configuration file format based on file extension.
// Matching is case-insensitive; unknown extensions are read as JSON.
func detectFormat(path string) format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return formatYAML
	default:
		return formatJSON
	}
}

// unmarshal decodes data into config according to f.
func unmarshal(data []byte, config *Config, f format) error {
	switch f {
	case formatYAML:
		if err := yaml.Unmarshal(data, config); err != nil {
			return fmt.Errorf("config: failed to parse YAML config file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, config); err != nil {
			return fmt.Errorf("config: failed to parse JSON config file: %w", err)
		}
	}
	return nil
}

// Load reads the configuration from path or applies defaults.
//
// Parameters:
//   - path: Path to the configuration file (optional, can be empty)
//     Supported formats: .json, .yaml, .yml
//
// Returns:
//   - *Config: The loaded configuration with defaults applied
//   - error: If the file cannot be read or parsed
//
// Configuration Priority:
//  1. Default values are set
//  2. CERTGEN_CONFIG_FILE is checked if path is empty
//  3. File values override defaults
//  4. Invalid values are reset to their defaults
//
// Command line flags are applied by the caller on top of the result.
func Load(path string) (*Config, error) {
	config := Default()

	if path == "" {
		path = os.Getenv(EnvConfigFile)
	}
	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: failed to read config file: %w", err)
	}
	if err := unmarshal(data, config, detectFormat(path)); err != nil {
		return nil, err
	}

	config.sanitize()
	return config, nil
}

func (c *Config) sanitize() {
	def := Default()

	if strings.TrimSpace(c.OutputDir) == "" {
		c.OutputDir = def.OutputDir
	}
	if c.ValidityDays <= 0 {
		c.ValidityDays = def.ValidityDays
	}
	// The expired window must lie strictly in the past and be non-empty.
	if c.Expired.NotAfterDays <= 0 || c.Expired.NotBeforeDays <= c.Expired.NotAfterDays {
		c.Expired = def.Expired
	}

	c.Key.Algo = strings.ToLower(c.Key.Algo)
	switch c.Key.Algo {
	case "ecdsa":
		if c.Key.Size != 256 && c.Key.Size != 384 && c.Key.Size != 521 {
			c.Key.Size = 256
		}
	case "rsa":
		if c.Key.Size < 2048 {
			c.Key.Size = 2048
		}
	default:
		c.Key = def.Key
	}
}
