// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509chain verifies and renders [X.509] certificate chains read back
// from generated bundle files.
//
// It provides capabilities to:
//   - Verify a leaf-first bundle against its own last certificate as the anchor,
//     at an arbitrary point in time so expired fixtures can be checked too.
//   - Check that a private key belongs to the leaf certificate.
//   - Render the chain as an ASCII tree, a markdown table or JSON.
//
// [X.509]: https://grokipedia.com/page/X.509
package x509chain
