// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package version provides centralized build information for the certificate
// chain generator.
//
// All values can be overridden at build time using ldflags:
//
//	go build -ldflags "-X github.com/H0llyW00dzZ/x509-certgen/src/version.Commit=$(git rev-parse --short HEAD)"
package version

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	// Version holds the current semantic version.
	Version = "0.1.0"
	// BuildTimestamp is the RFC 3339 time the binary was built.
	BuildTimestamp = "unknown"
	// Branch is the git branch the binary was built from.
	Branch = "unknown"
	// Commit is the short git commit hash.
	Commit = "unknown"
)

// Output formats accepted by [BuildInfo.Render]. Any other value renders text.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatText = "text"
)

// BuildInfo describes the running binary.
type BuildInfo struct {
	BuildTimestamp string `json:"buildTimestamp" yaml:"buildTimestamp"`
	Branch         string `json:"branch" yaml:"branch"`
	Commit         string `json:"commit" yaml:"commit"`
	Version        string `json:"version" yaml:"version"`
}

// Info returns the build information set at link time.
func Info() BuildInfo {
	return BuildInfo{
		BuildTimestamp: BuildTimestamp,
		Branch:         Branch,
		Commit:         Commit,
		Version:        Version,
	}
}

// String returns the text form, one "key: value" line per field.
func (b BuildInfo) String() string {
	return fmt.Sprintf("version: %s\nbuildTimestamp: %s\ncommit: %s\nbranch: %s\n",
		b.Version, b.BuildTimestamp, b.Commit, b.Branch)
}

// Render formats b as pretty-printed JSON, YAML or text, always ending with
// a newline.
func (b BuildInfo) Render(format string) (string, error) {
	switch strings.ToLower(format) {
	case FormatJSON:
		data, err := json.MarshalIndent(b, "", "  ")
		if err != nil {
			return "", fmt.Errorf("version: encode json: %w", err)
		}
		return string(data) + "\n", nil
	case FormatYAML:
		data, err := yaml.Marshal(b)
		if err != nil {
			return "", fmt.Errorf("version: encode yaml: %w", err)
		}
		return string(data), nil
	default:
		return b.String(), nil
	}
}
