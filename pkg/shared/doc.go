// Package shared provides common utilities used across the Anchor SDK
// for Go. It includes network normalization, operator environment
// variable loading, Hedera client construction, and key parsing helpers.
//
// This package is typically used internally by other SDK packages but is
// also available for direct use when building custom integrations with the
// Hedera public ledger.
//
// # Environment Variables
//
// The shared package supports loading operator credentials from environment
// variables or .env files. See the SDK README for the full list of supported
// variable names.
//
// This package is part of the HOL Anchor SDK for Go.
// See https://hol.org for more information about the HOL ecosystem.
package shared
