// Package attestor orchestrates anchoring attestation batches to the
// Anchor smart contract on the Hedera ledger. It wires the pkg/anchor
// core to its external collaborators: a mirror-node-backed cost
// estimator, a per-transaction gas ceiling provider, an on-ledger
// commitment reader, and the contract submission sink.
//
// The publisher submits sliced batches one at a time, retrying
// transient failures with exponential backoff, and resumes interrupted
// runs by reading the ledger's current commitment and re-deriving the
// unpublished remainder. A ledger commitment that matches no prefix of
// the local record set blocks publication with a StateMismatchError
// until it is manually reconciled.
//
// This package is part of the HOL Anchor SDK for Go.
// See https://hol.org for more information about the HOL ecosystem.
package attestor
