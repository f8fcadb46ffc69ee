// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509certs encodes, decodes and bundles [X.509] certificates.
//
// The [Certificate] codec reads [PEM], DER and [PKCS7] input and writes PEM.
// [AssembleBundle] orders the PEM blocks of a generated chain leaf first, the
// layout TLS stacks expect in a certificate chain file.
//
// [X.509]: https://grokipedia.com/page/X.509
// [PKCS7]: https://grokipedia.com/page/PKCS_7
// [PEM]: https://grokipedia.com/page/PEM#privacy-enhanced-mail
package x509certs
