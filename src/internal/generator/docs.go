// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package generator runs one certificate chain generation.
//
// A run collects the server and client subjects, signs the root CA, the
// intermediate signing CA and both leaves in dependency order, and writes
// every certificate, key and leaf bundle through the [layout] package.
// The first error stops the run. Files already written stay on disk.
//
// A single clock reading is taken at the start of a run. It drives every
// validity window and names the timestamp directories.
//
// [layout]: https://pkg.go.dev/github.com/H0llyW00dzZ/x509-certgen/src/internal/layout
package generator
