// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509signer

import (
	"crypto/x509"
	"errors"
	"fmt"
	"slices"

	x509certs "github.com/H0llyW00dzZ/x509-certgen/src/internal/x509/certs"
	x509request "github.com/H0llyW00dzZ/x509-certgen/src/internal/x509/request"
)

// ErrSigning indicates that a certificate could not be encoded or signed,
// or that the issuer handed to the engine cannot sign.
var ErrSigning = errors.New("x509signer: signing failed")

// SignedCertificate is the result of signing a [x509request.Request].
//
// Issuer points at the certificate that signed this one. For a self-signed
// root it points at the certificate itself.
type SignedCertificate struct {
	Request *x509request.Request
	CertPEM []byte
	KeyPEM  []byte
	Issuer  *SignedCertificate

	cert *x509.Certificate
}

// Certificate returns the parsed certificate, or nil if it is not finalized.
func (s *SignedCertificate) Certificate() *x509.Certificate { return s.cert }

// Finalized reports whether the certificate was produced by an [Engine].
func (s *SignedCertificate) Finalized() bool { return s != nil && s.cert != nil }

// SelfSigned reports whether the certificate is its own issuer.
func (s *SignedCertificate) SelfSigned() bool { return s.Issuer == s }

// Depth returns the number of certificates from s up to its root,
// counting both ends.
func (s *SignedCertificate) Depth() int {
	depth := 1
	for cur := s; cur.Issuer != nil && cur.Issuer != cur; cur = cur.Issuer {
		depth++
	}
	return depth
}

// Engine signs requests in chain order.
type Engine struct {
	encoder Encoder
	decoder *x509certs.Certificate
}

// New creates an Engine delegating encoding to enc.
func New(enc Encoder) *Engine {
	return &Engine{
		encoder: enc,
		decoder: x509certs.New(),
	}
}

// SelfSign signs req with its own key. Only CA requests can be self-signed.
//
// Returns:
//   - *SignedCertificate: Finalized certificate whose Issuer is itself
//   - error: [ErrSigning] if req is not a CA or encoding fails
func (e *Engine) SelfSign(req *x509request.Request) (*SignedCertificate, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: nil request", ErrSigning)
	}
	if !req.IsCA {
		return nil, fmt.Errorf("%w: %s: self-signed certificate must be a CA", ErrSigning, req.Role)
	}

	sc, err := e.sign(req, nil)
	if err != nil {
		return nil, err
	}
	sc.Issuer = sc

	if err := sc.cert.CheckSignatureFrom(sc.cert); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSigning, req.Role, err)
	}
	return sc, nil
}

// SignWithIssuer signs req with issuer's key.
//
// The issuer must be a finalized CA certificate; forward references to
// certificates that are still being built are rejected.
//
// Returns:
//   - *SignedCertificate: Finalized certificate referencing issuer
//   - error: [ErrSigning] on a bad issuer or an encoding failure
func (e *Engine) SignWithIssuer(req *x509request.Request, issuer *SignedCertificate) (*SignedCertificate, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: nil request", ErrSigning)
	}
	if !issuer.Finalized() {
		return nil, fmt.Errorf("%w: %s: issuer is not a finalized certificate", ErrSigning, req.Role)
	}
	if !issuer.Request.IsCA || !issuer.cert.IsCA {
		return nil, fmt.Errorf("%w: %s: issuer %q is not a CA", ErrSigning, req.Role, issuer.cert.Subject.CommonName)
	}

	sc, err := e.sign(req, issuer)
	if err != nil {
		return nil, err
	}
	sc.Issuer = issuer

	if err := sc.cert.CheckSignatureFrom(issuer.cert); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSigning, req.Role, err)
	}
	return sc, nil
}

func (e *Engine) sign(req *x509request.Request, issuer *SignedCertificate) (*SignedCertificate, error) {
	ku, err := req.X509KeyUsage()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSigning, req.Role, err)
	}
	ekus, err := req.X509ExtKeyUsages()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSigning, req.Role, err)
	}

	certPEM, keyPEM, err := e.encoder.Encode(req, issuer)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSigning, req.Role, err)
	}

	cert, err := e.decoder.Decode(certPEM)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSigning, req.Role, err)
	}

	// The encoder may drop usages it does not recognise without an error.
	if err := checkIssued(cert, req, ku, ekus); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSigning, req.Role, err)
	}

	return &SignedCertificate{
		Request: req,
		CertPEM: certPEM,
		KeyPEM:  keyPEM,
		cert:    cert,
	}, nil
}

// checkIssued compares the encoded certificate against what was requested.
func checkIssued(cert *x509.Certificate, req *x509request.Request, ku x509.KeyUsage, ekus []x509.ExtKeyUsage) error {
	if cert.KeyUsage != ku {
		return fmt.Errorf("key usage %b, requested %b", cert.KeyUsage, ku)
	}
	if !sameExtKeyUsages(cert.ExtKeyUsage, ekus) {
		return fmt.Errorf("extended key usage %v, requested %v", cert.ExtKeyUsage, ekus)
	}
	if cert.IsCA != req.IsCA {
		return fmt.Errorf("CA flag %t, requested %t", cert.IsCA, req.IsCA)
	}

	want := req.Subject.Name()
	got := cert.Subject
	if got.CommonName != want.CommonName ||
		!slices.Equal(got.Organization, want.Organization) ||
		!slices.Equal(got.OrganizationalUnit, want.OrganizationalUnit) ||
		!slices.Equal(got.Country, want.Country) {
		return fmt.Errorf("subject %q, requested %q", got.String(), want.String())
	}
	return nil
}

func sameExtKeyUsages(a, b []x509.ExtKeyUsage) bool {
	if len(a) != len(b) {
		return false
	}
	a, b = slices.Clone(a), slices.Clone(b)
	slices.Sort(a)
	slices.Sort(b)
	return slices.Equal(a, b)
}
