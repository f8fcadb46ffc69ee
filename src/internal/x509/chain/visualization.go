// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain

import (
	"crypto/ecdsa"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
)

// RenderASCIITree renders the certificate chain as an ASCII tree diagram.
//
// Each line shows the validity status at the given time, the subject common
// name and the certificate's role in the chain.
//
// Thread Safety: Safe for concurrent use.
func (ch *Chain) RenderASCIITree(at time.Time) string {
	ch.mu.RLock()
	defer ch.mu.RUnlock()

	if len(ch.Certs) == 0 {
		return "No certificates in chain"
	}

	var result strings.Builder
	for i, cert := range ch.Certs {
		connector := "├── "
		if i == len(ch.Certs)-1 {
			connector = "└── "
		}

		statusIcon := "✓"
		if status(cert, at) != "valid" {
			statusIcon = "✗"
		}

		certInfo := fmt.Sprintf("[%s] %s", statusIcon, cert.Subject.CommonName)
		if role := ch.getCertificateRole(i); role != "" {
			certInfo += fmt.Sprintf(" (%s)", role)
		}

		result.WriteString(connector + certInfo + "\n")
	}

	return result.String()
}

// RenderTable renders the certificate chain as a markdown table with role,
// subject, issuer, expiry, key size and validity status at the given time.
//
// Returns:
//   - string: Markdown table representation of the certificate chain
//   - error: Rendering error from tablewriter
//
// Thread Safety: Safe for concurrent use.
func (ch *Chain) RenderTable(at time.Time) (string, error) {
	ch.mu.RLock()
	defer ch.mu.RUnlock()

	if len(ch.Certs) == 0 {
		return "No certificates to display", nil
	}

	var buf strings.Builder
	table := tablewriter.NewTable(&buf,
		tablewriter.WithRenderer(renderer.NewMarkdown(tw.Rendition{Streaming: true})),
	)

	table.Header([]string{"#", "Role", "Subject", "Issuer", "Serial", "Valid Until", "Key", "Status"})

	rows := make([][]string, 0, len(ch.Certs))
	for i, cert := range ch.Certs {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			ch.getCertificateRole(i),
			cert.Subject.CommonName,
			cert.Issuer.CommonName,
			cert.SerialNumber.String(),
			cert.NotAfter.UTC().Format(time.RFC3339),
			keyDescription(cert.PublicKey),
			status(cert, at),
		})
	}

	if err := table.Bulk(rows); err != nil {
		return "", fmt.Errorf("x509chain: render table: %w", err)
	}
	if err := table.Render(); err != nil {
		return "", fmt.Errorf("x509chain: render table: %w", err)
	}
	return buf.String(), nil
}

// CertificateVizData is the JSON view of a single certificate.
type CertificateVizData struct {
	Index              int       `json:"index"`
	Role               string    `json:"role"`
	Subject            string    `json:"subject"`
	Issuer             string    `json:"issuer"`
	SerialNumber       string    `json:"serialNumber"`
	SignatureAlgorithm string    `json:"signatureAlgorithm"`
	PublicKeyAlgorithm string    `json:"publicKeyAlgorithm"`
	KeySize            int       `json:"keySize"`
	NotBefore          time.Time `json:"notBefore"`
	NotAfter           time.Time `json:"notAfter"`
	IsCA               bool      `json:"isCA"`
	KeyUsage           []string  `json:"keyUsage"`
	ExtKeyUsage        []string  `json:"extKeyUsage"`
	Status             string    `json:"status"`
}

// RelationshipData links a certificate to the one that signed it.
type RelationshipData struct {
	FromIndex int    `json:"fromIndex"`
	ToIndex   int    `json:"toIndex"`
	Type      string `json:"type"`
}

// VisualizationData is the JSON document produced by [Chain.ToVisualizationJSON].
type VisualizationData struct {
	Timestamp     string               `json:"timestamp"`
	ChainLength   int                  `json:"chainLength"`
	Certificates  []CertificateVizData `json:"certificates"`
	Relationships []RelationshipData   `json:"relationships"`
}

// ToVisualizationJSON converts the certificate chain to indented JSON.
//
// Relationships are derived from signatures rather than position, so a
// bundle in an unexpected order still reports who signed whom.
//
// Thread Safety: Safe for concurrent use.
func (ch *Chain) ToVisualizationJSON(at time.Time) ([]byte, error) {
	ch.mu.RLock()
	defer ch.mu.RUnlock()

	data := VisualizationData{
		Timestamp:     at.UTC().Format(time.RFC3339),
		ChainLength:   len(ch.Certs),
		Certificates:  make([]CertificateVizData, len(ch.Certs)),
		Relationships: []RelationshipData{},
	}

	for i, cert := range ch.Certs {
		algo, size := keyInfo(cert.PublicKey)
		data.Certificates[i] = CertificateVizData{
			Index:              i,
			Role:               ch.getCertificateRole(i),
			Subject:            cert.Subject.String(),
			Issuer:             cert.Issuer.String(),
			SerialNumber:       cert.SerialNumber.String(),
			SignatureAlgorithm: cert.SignatureAlgorithm.String(),
			PublicKeyAlgorithm: algo,
			KeySize:            size,
			NotBefore:          cert.NotBefore,
			NotAfter:           cert.NotAfter,
			IsCA:               cert.IsCA,
			KeyUsage:           keyUsageNames(cert.KeyUsage),
			ExtKeyUsage:        extKeyUsageNames(cert.ExtKeyUsage),
			Status:             status(cert, at),
		}

		kind := "signed_by"
		j := ch.findIssuerIndex(i)
		if j < 0 {
			if ch.IsSelfSigned(cert) {
				j, kind = i, "self_signed"
			} else {
				continue
			}
		}
		data.Relationships = append(data.Relationships, RelationshipData{FromIndex: i, ToIndex: j, Type: kind})
	}

	return json.MarshalIndent(data, "", "  ")
}

// getCertificateRole describes the certificate's position in the chain.
func (ch *Chain) getCertificateRole(index int) string {
	total := len(ch.Certs)
	switch {
	case total == 1:
		return "Self-Signed Certificate"
	case index == 0:
		return "End-Entity (Server/Client) Certificate"
	case index == total-1:
		return "Root CA Certificate"
	default:
		return "Intermediate CA Certificate"
	}
}

func keyInfo(pub any) (string, int) {
	switch k := pub.(type) {
	case *rsa.PublicKey:
		return "RSA", k.Size() * 8
	case *ecdsa.PublicKey:
		return "ECDSA", k.Curve.Params().BitSize
	default:
		return "unknown", 0
	}
}

func keyDescription(pub any) string {
	algo, size := keyInfo(pub)
	if size == 0 {
		return algo
	}
	return fmt.Sprintf("%d-bit %s", size, algo)
}

var keyUsageLabels = []struct {
	bit  x509.KeyUsage
	name string
}{
	{x509.KeyUsageDigitalSignature, "digital signature"},
	{x509.KeyUsageContentCommitment, "content commitment"},
	{x509.KeyUsageKeyEncipherment, "key encipherment"},
	{x509.KeyUsageDataEncipherment, "data encipherment"},
	{x509.KeyUsageKeyAgreement, "key agreement"},
	{x509.KeyUsageCertSign, "cert sign"},
	{x509.KeyUsageCRLSign, "crl sign"},
	{x509.KeyUsageEncipherOnly, "encipher only"},
	{x509.KeyUsageDecipherOnly, "decipher only"},
}

func keyUsageNames(ku x509.KeyUsage) []string {
	names := []string{}
	for _, l := range keyUsageLabels {
		if ku&l.bit != 0 {
			names = append(names, l.name)
		}
	}
	return names
}

func extKeyUsageNames(ekus []x509.ExtKeyUsage) []string {
	names := make([]string, 0, len(ekus))
	for _, eku := range ekus {
		switch eku {
		case x509.ExtKeyUsageServerAuth:
			names = append(names, "server auth")
		case x509.ExtKeyUsageClientAuth:
			names = append(names, "client auth")
		case x509.ExtKeyUsageCodeSigning:
			names = append(names, "code signing")
		case x509.ExtKeyUsageAny:
			names = append(names, "any")
		default:
			names = append(names, fmt.Sprintf("eku(%d)", eku))
		}
	}
	return names
}
