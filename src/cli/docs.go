// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package cli provides the command-line interface for the certificate chain generator.
// It implements a Cobra-based CLI with a gen command that prompts for leaf subjects
// and writes the chain, an inspect command that verifies and renders a bundle as a
// table, ASCII tree or JSON, and a --build flag printing build information as text,
// JSON or YAML. Progress goes through the logger package in text or JSON form.
package cli
