// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509request

import "crypto/x509"

// Role identifies the position of a certificate in the generated chain.
type Role int

const (
	// RootCA is the self-signed trust anchor.
	RootCA Role = iota
	// IntermediateCA is the signing CA that issues the leaves.
	IntermediateCA
	// ServerLeaf is the end-entity certificate for TLS servers.
	ServerLeaf
	// ClientLeaf is the end-entity certificate for TLS clients.
	ClientLeaf
)

// String implements [fmt.Stringer].
func (r Role) String() string {
	switch r {
	case RootCA:
		return "root-ca"
	case IntermediateCA:
		return "signing-ca"
	case ServerLeaf:
		return "server"
	case ClientLeaf:
		return "client"
	default:
		return "unknown"
	}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool { return r >= RootCA && r <= ClientLeaf }

// IsCA reports whether certificates of this role may sign other certificates.
func (r Role) IsCA() bool { return r == RootCA || r == IntermediateCA }

// IsLeaf reports whether r is an end-entity role.
func (r Role) IsLeaf() bool { return r == ServerLeaf || r == ClientLeaf }

// caKeyUsages is shared by root and intermediate CAs.
var caKeyUsages = []KeyUsage{KeyUsageCertSign, KeyUsageCRLSign, KeyUsageKeyAgreement}

// caExtKeyUsages is shared by root and intermediate CAs. Server and client
// auth are included so TLS stacks that enforce EKU nesting accept the leaves.
var caExtKeyUsages = []ExtKeyUsage{ExtKeyUsageCodeSigning, ExtKeyUsageServerAuth, ExtKeyUsageClientAuth}

// KeyUsages returns the key usage set for the role.
func (r Role) KeyUsages() []KeyUsage {
	switch r {
	case RootCA, IntermediateCA:
		return append([]KeyUsage(nil), caKeyUsages...)
	case ServerLeaf, ClientLeaf:
		return []KeyUsage{KeyUsageDigitalSignature}
	default:
		return nil
	}
}

// ExtKeyUsages returns the extended key usage set for the role.
func (r Role) ExtKeyUsages() []ExtKeyUsage {
	switch r {
	case RootCA, IntermediateCA:
		return append([]ExtKeyUsage(nil), caExtKeyUsages...)
	case ServerLeaf:
		return []ExtKeyUsage{ExtKeyUsageServerAuth}
	case ClientLeaf:
		return []ExtKeyUsage{ExtKeyUsageClientAuth}
	default:
		return nil
	}
}

// KeyUsage is a key usage purpose. The string form is the name cfssl
// signing profiles use.
type KeyUsage string

const (
	KeyUsageDigitalSignature KeyUsage = "digital signature"
	KeyUsageKeyAgreement     KeyUsage = "key agreement"
	KeyUsageCertSign         KeyUsage = "cert sign"
	KeyUsageCRLSign          KeyUsage = "crl sign"
)

// X509 maps the usage to its [x509.KeyUsage] bit. ok is false for a name
// outside the constants above.
func (k KeyUsage) X509() (ku x509.KeyUsage, ok bool) {
	switch k {
	case KeyUsageDigitalSignature:
		return x509.KeyUsageDigitalSignature, true
	case KeyUsageKeyAgreement:
		return x509.KeyUsageKeyAgreement, true
	case KeyUsageCertSign:
		return x509.KeyUsageCertSign, true
	case KeyUsageCRLSign:
		return x509.KeyUsageCRLSign, true
	default:
		return 0, false
	}
}

// ExtKeyUsage is an extended key usage purpose, named as in cfssl profiles.
type ExtKeyUsage string

const (
	ExtKeyUsageServerAuth  ExtKeyUsage = "server auth"
	ExtKeyUsageClientAuth  ExtKeyUsage = "client auth"
	ExtKeyUsageCodeSigning ExtKeyUsage = "code signing"
)

// X509 maps the usage to its [x509.ExtKeyUsage] value. ok is false for a
// name outside the constants above.
func (e ExtKeyUsage) X509() (eku x509.ExtKeyUsage, ok bool) {
	switch e {
	case ExtKeyUsageServerAuth:
		return x509.ExtKeyUsageServerAuth, true
	case ExtKeyUsageClientAuth:
		return x509.ExtKeyUsageClientAuth, true
	case ExtKeyUsageCodeSigning:
		return x509.ExtKeyUsageCodeSigning, true
	default:
		return 0, false
	}
}
