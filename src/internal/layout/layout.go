// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package layout

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	x509certs "github.com/H0llyW00dzZ/x509-certgen/src/internal/x509/certs"
	x509request "github.com/H0llyW00dzZ/x509-certgen/src/internal/x509/request"
	x509signer "github.com/H0llyW00dzZ/x509-certgen/src/internal/x509/signer"
)

// ErrIO indicates a failure creating a directory or writing a file.
var ErrIO = errors.New("layout: write failed")

// File permissions used for written material.
const (
	DirMode  os.FileMode = 0o755
	CertMode os.FileMode = 0o644
	KeyMode  os.FileMode = 0o600
)

// Paths holds the certificate and key file of one role, plus the bundle
// file for leaves.
type Paths struct {
	Cert   string `json:"cert" yaml:"cert"`
	Key    string `json:"key" yaml:"key"`
	Bundle string `json:"bundle,omitempty" yaml:"bundle,omitempty"`
}

// Layout resolves file names for a single run.
type Layout struct {
	BaseDir   string
	Timestamp int64
}

// New returns the layout for a run started at ts (Unix seconds).
func New(baseDir string, ts int64) *Layout {
	return &Layout{BaseDir: baseDir, Timestamp: ts}
}

// ServerDir returns base/<ts>.
func (l *Layout) ServerDir() string {
	return filepath.Join(l.BaseDir, strconv.FormatInt(l.Timestamp, 10))
}

// ClientDir returns base/<ts+1>.
func (l *Layout) ClientDir() string {
	return filepath.Join(l.BaseDir, strconv.FormatInt(l.Timestamp+1, 10))
}

// For returns the file locations of role.
func (l *Layout) For(role x509request.Role) (Paths, error) {
	switch role {
	case x509request.RootCA, x509request.IntermediateCA:
		return l.pair(l.BaseDir, role.String(), false), nil
	case x509request.ServerLeaf:
		return l.pair(l.ServerDir(), role.String(), true), nil
	case x509request.ClientLeaf:
		return l.pair(l.ClientDir(), role.String(), true), nil
	}
	return Paths{}, fmt.Errorf("%w: %d", x509request.ErrUnknownRole, int(role))
}

func (l *Layout) pair(dir, name string, bundle bool) Paths {
	p := Paths{
		Cert: filepath.Join(dir, name+".crt"),
		Key:  filepath.Join(dir, name+".key"),
	}
	if bundle {
		p.Bundle = filepath.Join(dir, name+"-bundle.crt")
	}
	return p
}

// WriteCertificate stores the certificate and private key of sc at p.
// Parent directories are created as needed.
func (l *Layout) WriteCertificate(p Paths, sc *x509signer.SignedCertificate) error {
	if !sc.Finalized() {
		return fmt.Errorf("%w: %s: certificate is not signed", ErrIO, p.Cert)
	}
	if err := writeFile(p.Cert, sc.CertPEM, CertMode); err != nil {
		return err
	}
	return writeFile(p.Key, sc.KeyPEM, KeyMode)
}

// WriteBundle stores b at path.
func (l *Layout) WriteBundle(path string, b x509certs.Bundle) error {
	if b.Len() == 0 {
		return fmt.Errorf("%w: %s: %w", ErrIO, path, x509certs.ErrEmptyBundle)
	}
	return writeFile(path, b.Bytes(), CertMode)
}

func writeFile(path string, data []byte, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), DirMode); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	if err := os.WriteFile(path, data, mode); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	// WriteFile keeps the mode of an existing file.
	if err := os.Chmod(path, mode); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}
