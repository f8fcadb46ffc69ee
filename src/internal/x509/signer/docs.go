// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509signer produces signed [X.509] certificates from requests built
// by [x509request].
//
// The [Engine] owns the chain rules: roots are self-signed, everything else
// is signed by an already finalized issuer. Key generation, signature math
// and PEM encoding are delegated to an [Encoder]; the default one is backed
// by [cfssl].
//
// [X.509]: https://grokipedia.com/page/X.509
// [cfssl]: https://github.com/cloudflare/cfssl
package x509signer
