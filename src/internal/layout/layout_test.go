// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package layout_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/H0llyW00dzZ/x509-certgen/src/internal/layout"
	x509certs "github.com/H0llyW00dzZ/x509-certgen/src/internal/x509/certs"
	x509request "github.com/H0llyW00dzZ/x509-certgen/src/internal/x509/request"
	x509signer "github.com/H0llyW00dzZ/x509-certgen/src/internal/x509/signer"
)

func TestLayoutPaths(t *testing.T) {
	l := layout.New("certs", 1700000000)

	tests := []struct {
		name string
		role x509request.Role
		want layout.Paths
	}{
		{
			name: "Root CA",
			role: x509request.RootCA,
			want: layout.Paths{Cert: "certs/root-ca.crt", Key: "certs/root-ca.key"},
		},
		{
			name: "Signing CA",
			role: x509request.IntermediateCA,
			want: layout.Paths{Cert: "certs/signing-ca.crt", Key: "certs/signing-ca.key"},
		},
		{
			name: "Server",
			role: x509request.ServerLeaf,
			want: layout.Paths{
				Cert:   "certs/1700000000/server.crt",
				Key:    "certs/1700000000/server.key",
				Bundle: "certs/1700000000/server-bundle.crt",
			},
		},
		{
			name: "Client",
			role: x509request.ClientLeaf,
			want: layout.Paths{
				Cert:   "certs/1700000001/client.crt",
				Key:    "certs/1700000001/client.key",
				Bundle: "certs/1700000001/client-bundle.crt",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := l.For(tt.role)
			require.NoError(t, err)
			assert.Equal(t, filepath.FromSlash(tt.want.Cert), got.Cert)
			assert.Equal(t, filepath.FromSlash(tt.want.Key), got.Key)
			assert.Equal(t, filepath.FromSlash(tt.want.Bundle), got.Bundle)
		})
	}

	_, err := l.For(x509request.Role(42))
	assert.ErrorIs(t, err, x509request.ErrUnknownRole)
}

func TestLayoutWrite(t *testing.T) {
	b := x509request.NewBuilder()
	req, err := b.Build(x509request.RootCA, x509request.CommonNameOnly("Root CA"), false)
	require.NoError(t, err)
	root, err := x509signer.New(x509signer.NewCFSSLEncoder(x509signer.DefaultKeyConfig())).SelfSign(req)
	require.NoError(t, err)

	tests := []struct {
		name     string
		testFunc func(t *testing.T, l *layout.Layout)
	}{
		{
			name: "Certificate and key",
			testFunc: func(t *testing.T, l *layout.Layout) {
				p, err := l.For(x509request.RootCA)
				require.NoError(t, err)
				require.NoError(t, l.WriteCertificate(p, root))

				cert, err := os.ReadFile(p.Cert)
				require.NoError(t, err)
				assert.Equal(t, root.CertPEM, cert)

				key, err := os.ReadFile(p.Key)
				require.NoError(t, err)
				assert.Equal(t, root.KeyPEM, key)

				if runtime.GOOS != "windows" {
					info, err := os.Stat(p.Key)
					require.NoError(t, err)
					assert.Equal(t, layout.KeyMode, info.Mode().Perm())
				}
			},
		},
		{
			name: "Overwrite keeps key private",
			testFunc: func(t *testing.T, l *layout.Layout) {
				if runtime.GOOS == "windows" {
					t.Skip("unix permissions")
				}
				p, err := l.For(x509request.RootCA)
				require.NoError(t, err)
				require.NoError(t, os.MkdirAll(l.BaseDir, layout.DirMode))
				require.NoError(t, os.WriteFile(p.Key, []byte("old"), 0o666))

				require.NoError(t, l.WriteCertificate(p, root))
				info, err := os.Stat(p.Key)
				require.NoError(t, err)
				assert.Equal(t, layout.KeyMode, info.Mode().Perm())
			},
		},
		{
			name: "Bundle in timestamp dir",
			testFunc: func(t *testing.T, l *layout.Layout) {
				p, err := l.For(x509request.ServerLeaf)
				require.NoError(t, err)

				bundle := x509certs.Bundle{[]byte("a\n"), []byte("b\n"), []byte("c\n")}
				require.NoError(t, l.WriteBundle(p.Bundle, bundle))

				data, err := os.ReadFile(p.Bundle)
				require.NoError(t, err)
				assert.Equal(t, "a\nb\nc\n", string(data))
				assert.DirExists(t, l.ServerDir())
				assert.NoDirExists(t, l.ClientDir())
			},
		},
		{
			name: "Empty bundle",
			testFunc: func(t *testing.T, l *layout.Layout) {
				err := l.WriteBundle(filepath.Join(l.BaseDir, "x.crt"), nil)
				assert.ErrorIs(t, err, layout.ErrIO)
				assert.ErrorIs(t, err, x509certs.ErrEmptyBundle)
			},
		},
		{
			name: "Unsigned certificate",
			testFunc: func(t *testing.T, l *layout.Layout) {
				p, err := l.For(x509request.IntermediateCA)
				require.NoError(t, err)
				assert.ErrorIs(t, l.WriteCertificate(p, &x509signer.SignedCertificate{}), layout.ErrIO)
			},
		},
		{
			name: "Base is a file",
			testFunc: func(t *testing.T, l *layout.Layout) {
				require.NoError(t, os.WriteFile(l.BaseDir, []byte("x"), 0o644))
				p, err := l.For(x509request.RootCA)
				require.NoError(t, err)
				assert.ErrorIs(t, l.WriteCertificate(p, root), layout.ErrIO)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := layout.New(filepath.Join(t.TempDir(), "certs"), 1700000000)
			tt.testFunc(t, l)
		})
	}
}
