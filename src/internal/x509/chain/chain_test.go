// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain_test

import (
	"crypto/x509"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	x509certs "github.com/H0llyW00dzZ/x509-certgen/src/internal/x509/certs"
	x509chain "github.com/H0llyW00dzZ/x509-certgen/src/internal/x509/chain"
	x509request "github.com/H0llyW00dzZ/x509-certgen/src/internal/x509/request"
	x509signer "github.com/H0llyW00dzZ/x509-certgen/src/internal/x509/signer"
)

type fixture struct {
	bundle []byte
	leaf   *x509signer.SignedCertificate
	root   *x509signer.SignedCertificate
}

func newFixture(t *testing.T, now time.Time, expired bool) fixture {
	t.Helper()

	b := x509request.NewBuilder(x509request.WithClock(x509request.FixedClock(now)))
	engine := x509signer.New(x509signer.NewCFSSLEncoder(x509signer.DefaultKeyConfig()))

	sign := func(role x509request.Role, subject x509request.Subject, issuer *x509signer.SignedCertificate) *x509signer.SignedCertificate {
		req, err := b.Build(role, subject, expired)
		require.NoError(t, err)

		var sc *x509signer.SignedCertificate
		if issuer == nil {
			sc, err = engine.SelfSign(req)
		} else {
			sc, err = engine.SignWithIssuer(req, issuer)
		}
		require.NoError(t, err)
		return sc
	}

	root := sign(x509request.RootCA, x509request.CommonNameOnly("Root CA"), nil)
	signing := sign(x509request.IntermediateCA, x509request.CommonNameOnly("Signing CA"), root)
	leaf := sign(x509request.ServerLeaf, x509request.CommonNameOnly("srv1"), signing)

	return fixture{
		bundle: x509certs.AssembleBundle(leaf.CertPEM, signing.CertPEM, root.CertPEM).Bytes(),
		leaf:   leaf,
		root:   root,
	}
}

func TestChainOperations(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	fx := newFixture(t, now, false)

	tests := []struct {
		name     string
		testFunc func(t *testing.T, ch *x509chain.Chain)
	}{
		{
			name: "Bundle order",
			testFunc: func(t *testing.T, ch *x509chain.Chain) {
				require.Len(t, ch.Certs, 3)
				assert.Equal(t, "srv1", ch.Leaf().Subject.CommonName)
				assert.True(t, ch.IsRootNode(ch.Certs[2]))
				assert.False(t, ch.IsRootNode(ch.Certs[0]))
			},
		},
		{
			name: "Filter intermediates",
			testFunc: func(t *testing.T, ch *x509chain.Chain) {
				inter := ch.FilterIntermediates()
				require.Len(t, inter, 1)
				assert.Equal(t, "Signing CA", inter[0].Subject.CommonName)
			},
		},
		{
			name: "Verify links",
			testFunc: func(t *testing.T, ch *x509chain.Chain) {
				assert.NoError(t, ch.VerifyLinks())
			},
		},
		{
			name: "Verify chain now",
			testFunc: func(t *testing.T, ch *x509chain.Chain) {
				assert.NoError(t, ch.VerifyChain(now.Add(time.Minute)))
			},
		},
		{
			name: "Verify chain after expiry",
			testFunc: func(t *testing.T, ch *x509chain.Chain) {
				err := ch.VerifyChain(now.Add(400 * 24 * time.Hour))
				var invalid x509.CertificateInvalidError
				require.True(t, errors.As(err, &invalid), "expected CertificateInvalidError, got %v", err)
				assert.Equal(t, x509.Expired, invalid.Reason)
			},
		},
		{
			name: "Matching key",
			testFunc: func(t *testing.T, ch *x509chain.Chain) {
				assert.NoError(t, ch.MatchesKey(fx.leaf.KeyPEM))
			},
		},
		{
			name: "Wrong key",
			testFunc: func(t *testing.T, ch *x509chain.Chain) {
				assert.ErrorIs(t, ch.MatchesKey(fx.root.KeyPEM), x509chain.ErrKeyMismatch)
			},
		},
		{
			name: "Garbage key",
			testFunc: func(t *testing.T, ch *x509chain.Chain) {
				assert.Error(t, ch.MatchesKey([]byte("not a key")))
			},
		},
		{
			name: "ASCII tree",
			testFunc: func(t *testing.T, ch *x509chain.Chain) {
				tree := ch.RenderASCIITree(now.Add(time.Minute))
				lines := strings.Split(strings.TrimSpace(tree), "\n")
				require.Len(t, lines, 3)
				assert.Equal(t, "├── [✓] srv1 (End-Entity (Server/Client) Certificate)", lines[0])
				assert.Equal(t, "└── [✓] Root CA (Root CA Certificate)", lines[2])
			},
		},
		{
			name: "Table",
			testFunc: func(t *testing.T, ch *x509chain.Chain) {
				table, err := ch.RenderTable(now.Add(time.Minute))
				require.NoError(t, err)
				assert.Contains(t, table, "Signing CA")
				assert.Contains(t, table, "256-bit ECDSA")
				assert.Contains(t, table, "valid")
			},
		},
		{
			name: "JSON relationships",
			testFunc: func(t *testing.T, ch *x509chain.Chain) {
				raw, err := ch.ToVisualizationJSON(now.Add(time.Minute))
				require.NoError(t, err)

				var data x509chain.VisualizationData
				require.NoError(t, json.Unmarshal(raw, &data))
				assert.Equal(t, 3, data.ChainLength)
				assert.Equal(t, []x509chain.RelationshipData{
					{FromIndex: 0, ToIndex: 1, Type: "signed_by"},
					{FromIndex: 1, ToIndex: 2, Type: "signed_by"},
					{FromIndex: 2, ToIndex: 2, Type: "self_signed"},
				}, data.Relationships)
				assert.Equal(t, []string{"server auth"}, data.Certificates[0].ExtKeyUsage)
				assert.True(t, data.Certificates[1].IsCA)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ch, err := x509chain.FromBundle(fx.bundle)
			require.NoError(t, err)
			tt.testFunc(t, ch)
		})
	}
}

func TestChainExpiredLeaf(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	fx := newFixture(t, now, true)

	ch, err := x509chain.FromBundle(fx.bundle)
	require.NoError(t, err)

	assert.NoError(t, ch.VerifyLinks(), "signatures stay intact for expired leaves")
	assert.Error(t, ch.VerifyChain(now))
	assert.Contains(t, ch.RenderASCIITree(now), "[✗] srv1")
}

func TestChainBrokenLink(t *testing.T) {
	now := time.Now().UTC()
	a := newFixture(t, now, false)
	b := newFixture(t, now, false)

	// Leaf from one fixture, CAs from another.
	mixed := x509certs.Bundle{a.leaf.CertPEM, b.root.CertPEM}.Bytes()
	ch, err := x509chain.FromBundle(mixed)
	require.NoError(t, err)

	assert.ErrorIs(t, ch.VerifyLinks(), x509chain.ErrBrokenLink)
	assert.Error(t, ch.VerifyChain(now))
}

func TestFromBundle_Invalid(t *testing.T) {
	_, err := x509chain.FromBundle(nil)
	assert.ErrorIs(t, err, x509certs.ErrEmptyBundle)
}
