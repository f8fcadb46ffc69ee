// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509request turns a role, a subject and a validity policy into a
// fully specified [X.509] certificate request.
//
// A [Request] carries everything the signing engine needs apart from key
// material: the distinguished name, the validity window, the serial number,
// the key usage and extended key usage sets, and the CA flag. Time and
// randomness are injected through [Clock] and [RandomSource] so that tests
// can pin both.
//
// [X.509]: https://grokipedia.com/page/X.509
package x509request
