// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package layout computes where a generation run stores its files and
// writes them.
//
// CA material lives directly in the base directory. Each leaf gets its own
// timestamp named subdirectory so repeated runs never overwrite earlier
// leaves:
//
//	certs/root-ca.crt, certs/root-ca.key
//	certs/signing-ca.crt, certs/signing-ca.key
//	certs/<ts>/server.crt, certs/<ts>/server.key, certs/<ts>/server-bundle.crt
//	certs/<ts+1>/client.crt, certs/<ts+1>/client.key, certs/<ts+1>/client-bundle.crt
//
// Root and intermediate files are overwritten on every run. A failed run
// leaves whatever was already written in place.
package layout
