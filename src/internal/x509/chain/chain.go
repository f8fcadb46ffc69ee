// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain

import (
	"crypto"
	"crypto/x509"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/crypto/ssh"

	x509certs "github.com/H0llyW00dzZ/x509-certgen/src/internal/x509/certs"
)

var (
	// ErrKeyMismatch indicates that a private key does not belong to the leaf certificate.
	ErrKeyMismatch = errors.New("x509chain: private key does not match leaf certificate")

	// ErrBrokenLink indicates a certificate in the bundle not signed by its successor.
	ErrBrokenLink = errors.New("x509chain: certificate is not signed by the next one in the bundle")
)

// Chain manages a leaf-first list of [X.509] certificates.
//
// [X.509]: https://grokipedia.com/page/X.509
type Chain struct {
	mu    sync.RWMutex
	Certs []*x509.Certificate
	*x509certs.Certificate
	Roots         *x509.CertPool
	Intermediates *x509.CertPool
}

// New creates a new Chain from certificates ordered leaf first.
func New(certs []*x509.Certificate) *Chain {
	return &Chain{
		Certs:         certs,
		Certificate:   x509certs.New(),
		Roots:         x509.NewCertPool(),
		Intermediates: x509.NewCertPool(),
	}
}

// FromBundle decodes a PEM or DER bundle into a Chain.
//
// Parameters:
//   - data: Bundle contents, leaf first
//
// Returns:
//   - *Chain: Chain holding every certificate in file order
//   - error: Decoding error from [x509certs.Certificate.DecodeMultiple]
func FromBundle(data []byte) (*Chain, error) {
	certs, err := x509certs.New().DecodeMultiple(data)
	if err != nil {
		return nil, err
	}
	return New(certs), nil
}

// Leaf returns the first certificate in the chain.
func (ch *Chain) Leaf() *x509.Certificate {
	ch.mu.RLock()
	defer ch.mu.RUnlock()
	return ch.Certs[0]
}

// IsSelfSigned checks if a certificate is self-signed by verifying its
// signature against itself.
func (ch *Chain) IsSelfSigned(cert *x509.Certificate) bool {
	return cert.CheckSignatureFrom(cert) == nil
}

// IsRootNode determines if a certificate is a root node in the chain.
// Currently a root is any self-signed certificate.
func (ch *Chain) IsRootNode(cert *x509.Certificate) bool {
	return ch.IsSelfSigned(cert)
}

// FilterIntermediates returns every certificate except the first (leaf) and
// the last (root), or nil when there are none.
//
// Thread Safety: Safe for concurrent use.
func (ch *Chain) FilterIntermediates() []*x509.Certificate {
	ch.mu.RLock()
	defer ch.mu.RUnlock()

	if len(ch.Certs) <= 2 {
		return nil
	}
	return ch.Certs[1 : len(ch.Certs)-1]
}

// VerifyLinks checks that each certificate is signed by the one after it
// and that the last one is self-signed.
//
// Returns:
//   - error: [ErrBrokenLink] naming the first certificate that fails
//
// Thread Safety: Safe for concurrent use.
func (ch *Chain) VerifyLinks() error {
	ch.mu.RLock()
	defer ch.mu.RUnlock()

	for i, cert := range ch.Certs {
		parent := cert
		if i < len(ch.Certs)-1 {
			parent = ch.Certs[i+1]
		}
		if err := cert.CheckSignatureFrom(parent); err != nil {
			return fmt.Errorf("%w: %q: %w", ErrBrokenLink, cert.Subject.CommonName, err)
		}
	}
	return nil
}

// VerifyChain verifies the leaf against the chain itself: the last
// certificate is the trust anchor and the ones in between are intermediates.
//
// The check is done as of at, so a bundle with expired leaves can be
// verified for the time it was still valid.
//
// Parameters:
//   - at: Verification time; zero means now
//
// Returns:
//   - error: The original [x509.Certificate.Verify] error, preserving details
//     such as expiration or unknown authority
//
// Thread Safety: Safe for concurrent use.
func (ch *Chain) VerifyChain(at time.Time) error {
	ch.mu.Lock()
	defer ch.mu.Unlock()

	for i, cert := range ch.Certs {
		if i == len(ch.Certs)-1 {
			ch.Roots.AddCert(cert)
		} else if i > 0 {
			ch.Intermediates.AddCert(cert)
		}
	}

	leaf := ch.Certs[0]
	opts := x509.VerifyOptions{
		Roots:         ch.Roots,
		Intermediates: ch.Intermediates,
		CurrentTime:   at,
		KeyUsages:     []x509.ExtKeyUsage{x509.ExtKeyUsageAny},
	}

	if _, err := leaf.Verify(opts); err != nil {
		return err
	}
	return nil
}

// MatchesKey checks that keyPEM is the private key of the leaf certificate.
//
// Parameters:
//   - keyPEM: PEM encoded private key (PKCS#1, PKCS#8 or SEC 1)
//
// Returns:
//   - error: Parse error, or [ErrKeyMismatch]
func (ch *Chain) MatchesKey(keyPEM []byte) error {
	raw, err := ssh.ParseRawPrivateKey(keyPEM)
	if err != nil {
		return fmt.Errorf("x509chain: parse private key: %w", err)
	}

	signer, ok := raw.(crypto.Signer)
	if !ok {
		return fmt.Errorf("x509chain: unsupported private key type %T", raw)
	}

	pub, ok := signer.Public().(interface{ Equal(crypto.PublicKey) bool })
	if !ok || !pub.Equal(ch.Leaf().PublicKey) {
		return ErrKeyMismatch
	}
	return nil
}

// status classifies a certificate's validity at t.
func status(cert *x509.Certificate, t time.Time) string {
	switch {
	case t.Before(cert.NotBefore):
		return "not yet valid"
	case t.After(cert.NotAfter):
		return "expired"
	default:
		return "valid"
	}
}

// findIssuerIndex returns the index of the certificate that issued the one
// at index, searching from the top of the chain down, or -1.
func (ch *Chain) findIssuerIndex(index int) int {
	cert := ch.Certs[index]
	for i := len(ch.Certs) - 1; i >= 0; i-- {
		if i == index {
			continue
		}
		if err := cert.CheckSignatureFrom(ch.Certs[i]); err == nil {
			return i
		}
	}
	return -1
}
