// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// certgen is a command-line tool that generates X.509 certificate chains
// for tests: a root CA, an intermediate signing CA, and a server and a
// client certificate signed by the intermediate.
//
// # Installation
//
// Install with Go 1.25.5 or later:
//
//	go install github.com/H0llyW00dzZ/x509-certgen/cmd/certgen@latest
//
// # Usage
//
//	certgen gen [-r|--root-cn CN] [-s|--signing-cn CN] [-e|--expired] [--out-dir DIR] [--config FILE]
//	certgen inspect BUNDLE_FILE [--format table|tree|json] [--at RFC3339] [--key FILE]
//	certgen -b|--build [-o|--output-format json|yaml]
//
// # Global Flags
//
//	    --log-format  text or json (default text)
//	    --debug       Enable certificate library debug logging
//	    --version     Print the version
//
// # Examples
//
// Generate a chain, answering the subject prompts on stdin:
//
//	printf 'srv1\nAcme\nEng\nUS\ncli1\nAcme\nEng\nUS\n' | certgen gen --root-cn "Root CA" --signing-cn "Signing CA"
//
// Generate leaves that are already expired:
//
//	certgen gen --expired
//
// Inspect a bundle and check its key:
//
//	certgen inspect certs/1767225600/server-bundle.crt --format tree --key certs/1767225600/server.key
//
// Verify the output with OpenSSL:
//
//	openssl verify -CAfile certs/root-ca.crt -untrusted certs/signing-ca.crt certs/1767225600/server.crt
package main
