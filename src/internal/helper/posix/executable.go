// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package posix

import (
	"os"
	"strings"
)

// DefaultExecutableName is used when os.Args carries no program name.
const DefaultExecutableName = "certgen"

// GetExecutableName returns the base name of os.Args[0] without a trailing
// .exe, splitting on both '/' and '\' so Windows paths resolve on Unix too.
//
//   - "/usr/local/bin/certgen" → "certgen"
//   - "C:\bin\certgen.exe" → "certgen"
//   - empty → [DefaultExecutableName]
func GetExecutableName() string {
	if len(os.Args) == 0 || os.Args[0] == "" {
		return DefaultExecutableName
	}

	parts := strings.FieldsFunc(os.Args[0], func(r rune) bool {
		return r == '/' || r == '\\'
	})
	if len(parts) == 0 {
		return DefaultExecutableName
	}

	return strings.TrimSuffix(parts[len(parts)-1], ".exe")
}
