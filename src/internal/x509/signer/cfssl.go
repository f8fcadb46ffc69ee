// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509signer

import (
	"crypto/x509"
	"fmt"
	"strings"

	"github.com/cloudflare/cfssl/config"
	"github.com/cloudflare/cfssl/csr"
	"github.com/cloudflare/cfssl/helpers"
	cfssllog "github.com/cloudflare/cfssl/log"
	"github.com/cloudflare/cfssl/signer"
	"github.com/cloudflare/cfssl/signer/local"

	x509request "github.com/H0llyW00dzZ/x509-certgen/src/internal/x509/request"
)

// Encoder is the narrow interface to the certificate encoding library.
//
// Encode generates a fresh key pair for req and returns the PEM encoded
// certificate and private key. A nil issuer means the certificate is
// self-signed with its own key.
type Encoder interface {
	Encode(req *x509request.Request, issuer *SignedCertificate) (certPEM, keyPEM []byte, err error)
}

// KeyConfig selects the key algorithm and size for generated keys.
type KeyConfig struct {
	Algo string `json:"algo" yaml:"algo"`
	Size int    `json:"size" yaml:"size"`
}

// DefaultKeyConfig returns ECDSA P-256.
func DefaultKeyConfig() KeyConfig { return KeyConfig{Algo: "ecdsa", Size: 256} }

// SetDebug toggles cfssl's internal logging between debug and error level.
func SetDebug(debug bool) {
	cfssllog.Level = cfssllog.LevelError
	if debug {
		cfssllog.Level = cfssllog.LevelDebug
	}
}

func init() { SetDebug(false) }

// CFSSLEncoder implements [Encoder] on top of cfssl's CSR generator and
// local signer.
type CFSSLEncoder struct {
	key KeyConfig
}

// NewCFSSLEncoder creates an encoder generating keys per key.
// Zero values fall back to [DefaultKeyConfig].
func NewCFSSLEncoder(key KeyConfig) *CFSSLEncoder {
	def := DefaultKeyConfig()
	if key.Algo == "" {
		key.Algo = def.Algo
	}
	if key.Size == 0 {
		key.Size = def.Size
		if strings.EqualFold(key.Algo, "rsa") {
			key.Size = 2048
		}
	}
	return &CFSSLEncoder{key: key}
}

// Encode implements [Encoder].
func (e *CFSSLEncoder) Encode(req *x509request.Request, issuer *SignedCertificate) ([]byte, []byte, error) {
	csrPEM, keyPEM, err := csr.ParseRequest(e.csrRequest(req))
	if err != nil {
		return nil, nil, fmt.Errorf("generate key and csr: %w", err)
	}

	s, err := e.newSigner(req, issuer, keyPEM)
	if err != nil {
		return nil, nil, err
	}

	certPEM, err := s.Sign(signer.SignRequest{
		Request:   string(csrPEM),
		Serial:    req.Serial(),
		NotBefore: req.Validity.NotBefore,
		NotAfter:  req.Validity.NotAfter,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("sign %s: %w", req.Role, err)
	}

	return certPEM, keyPEM, nil
}

// csrRequest maps the request's subject and CA flag onto a cfssl CSR.
func (e *CFSSLEncoder) csrRequest(req *x509request.Request) *csr.CertificateRequest {
	cr := &csr.CertificateRequest{
		CN: req.Subject.CommonName,
		Names: []csr.Name{{
			C:  req.Subject.Country,
			O:  req.Subject.Organization,
			OU: req.Subject.OrganizationalUnit,
		}},
		KeyRequest: &csr.KeyRequest{A: e.key.Algo, S: e.key.Size},
	}
	if req.IsCA {
		// Zero path length without PathLenZero encodes an unconstrained CA.
		cr.CA = &csr.CAConfig{}
	}
	return cr
}

// newSigner creates a cfssl local signer. Without an issuer the signer uses
// the freshly generated key and self-signs.
func (e *CFSSLEncoder) newSigner(req *x509request.Request, issuer *SignedCertificate, keyPEM []byte) (*local.Signer, error) {
	signingKeyPEM := keyPEM
	if issuer != nil {
		signingKeyPEM = issuer.KeyPEM
	}

	priv, err := helpers.ParsePrivateKeyPEM(signingKeyPEM)
	if err != nil {
		return nil, fmt.Errorf("parse signing key: %w", err)
	}

	var parent *x509.Certificate
	if issuer != nil {
		parent = issuer.Certificate()
	}

	s, err := local.NewSigner(priv, parent, signer.DefaultSigAlgo(priv), signingPolicy(req))
	if err != nil {
		return nil, fmt.Errorf("init signer: %w", err)
	}
	return s, nil
}

// signingPolicy builds a single-profile policy that stamps the request's
// usages, CA constraint and serial number onto the certificate.
func signingPolicy(req *x509request.Request) *config.Signing {
	usages := make([]string, 0, len(req.KeyUsages)+len(req.ExtKeyUsages))
	for _, u := range req.KeyUsages {
		usages = append(usages, string(u))
	}
	for _, u := range req.ExtKeyUsages {
		usages = append(usages, string(u))
	}

	profile := &config.SigningProfile{
		Usage:                       usages,
		Expiry:                      req.Validity.Duration(),
		ExpiryString:                req.Validity.Duration().String(),
		CAConstraint:                config.CAConstraint{IsCA: req.IsCA},
		ClientProvidesSerialNumbers: true,
	}

	return &config.Signing{
		Profiles: map[string]*config.SigningProfile{},
		Default:  profile,
	}
}
