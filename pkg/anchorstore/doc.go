// Package anchorstore persists sliced batch collections between the
// slice, publish, and verify steps. Files hold a deterministic CBOR
// encoding of the collection behind a brotli-compressed stream, and the
// round trip preserves collection and entry order exactly, since order
// is cryptographically significant for the chain commitment.
//
// This package is part of the HOL Anchor SDK for Go.
// See https://hol.org for more information about the HOL ecosystem.
package anchorstore
