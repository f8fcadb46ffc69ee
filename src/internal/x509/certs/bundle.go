// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509certs

import "github.com/H0llyW00dzZ/x509-certgen/src/internal/helper/gc"

// Bundle is an ordered list of PEM encoded certificates, leaf first.
type Bundle [][]byte

// AssembleBundle orders the PEM blocks of a chain leaf, intermediate, root.
//
// No validation is done here: each argument is expected to be a complete
// PEM block with its own BEGIN/END lines, and the chain's correctness is
// established when the certificates are signed.
func AssembleBundle(leaf, intermediate, root []byte) Bundle {
	return Bundle{leaf, intermediate, root}
}

// Len returns the number of certificates in the bundle.
func (b Bundle) Len() int { return len(b) }

// Bytes concatenates the PEM blocks without separators.
func (b Bundle) Bytes() []byte {
	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()

	for _, block := range b {
		buf.Write(block)
	}

	return append([]byte(nil), buf.Bytes()...)
}
