// Package anchor implements the batching, slicing, and chain-commitment
// core of the Anchor SDK. It groups attestation records into per-schema
// batches, partitions each batch into sub-batches that fit under the
// network's per-transaction gas ceiling, and maintains a rolling
// keccak-256 commitment over the full ordered entry sequence so that a
// publisher can resume an interrupted submission and a third party can
// verify a claimed on-ledger commitment against an off-ledger record set.
//
// All functions in this package are pure and synchronous except Slice,
// whose cost probes call an external estimator. The commitment chain is
// strictly sequential: each digest is a function of the previous digest
// and exactly one entry, in collection order.
//
// This package is part of the HOL Anchor SDK for Go.
// See https://hol.org for more information about the HOL ecosystem.
package anchor
