// Package mirror provides a REST client for Hedera mirror nodes scoped
// to what the Anchor SDK needs: contract call gas estimation, read-only
// contract calls (for reading the on-ledger commitment), contract and
// transaction lookups, and the network fee schedule.
//
// Gas estimation failures are classified into typed errors so callers
// can distinguish "this call cannot fit under the network limits"
// (CallLimitError) from transport or semantic failures (CallError).
//
// This package is part of the HOL Anchor SDK for Go.
// See https://hol.org for more information about the HOL ecosystem.
package mirror
