package anchor

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// SchemaID identifies the schema (category) an attestation record
// belongs to. Records sharing a SchemaID share one payload shape.
type SchemaID [32]byte

// Address identifies an attestation recipient. The zero value is the
// well-known "no recipient" address.
type Address [20]byte

// Commitment is a rolling chain digest over an ordered entry sequence.
// The zero value is the genesis commitment, meaning nothing has been
// committed yet.
type Commitment [32]byte

var (
	ZeroSchemaID      SchemaID
	ZeroAddress       Address
	GenesisCommitment Commitment
)

// Record is one attestation to be published, before grouping. Records
// are immutable once created.
type Record struct {
	Schema    SchemaID
	Recipient Address
	Payload   []byte
}

// Entry is the contract-shaped form of a Record. Expiration, Revocable,
// RefID, and Value are fixed by this SDK and participate in the
// commitment with their fixed values.
type Entry struct {
	Recipient  Address
	Expiration uint64
	Revocable  bool
	RefID      [32]byte
	Payload    []byte
	Value      uint64
}

// Batch is an ordered group of entries sharing one schema. Entry order
// is cryptographically significant.
type Batch struct {
	Schema  SchemaID
	Entries []Entry
}

// EntryFromRecord converts a Record into its Entry form with the fixed
// field values this SDK publishes.
func EntryFromRecord(record Record) Entry {
	return Entry{
		Recipient: record.Recipient,
		Payload:   record.Payload,
	}
}

// Flatten returns every entry of every batch in collection order. The
// flattened sequence is the unit over which commitments are computed;
// batch boundaries carry no cryptographic meaning.
func Flatten(batches []Batch) []Entry {
	total := 0
	for _, batch := range batches {
		total += len(batch.Entries)
	}

	entries := make([]Entry, 0, total)
	for _, batch := range batches {
		entries = append(entries, batch.Entries...)
	}
	return entries
}

// SchemaIDFromHex parses the provided input value.
func SchemaIDFromHex(raw string) (SchemaID, error) {
	var schema SchemaID
	decoded, err := decodeFixedHex(raw, len(schema))
	if err != nil {
		return schema, fmt.Errorf("invalid schema ID: %w", err)
	}
	copy(schema[:], decoded)
	return schema, nil
}

// AddressFromHex parses the provided input value.
func AddressFromHex(raw string) (Address, error) {
	var address Address
	decoded, err := decodeFixedHex(raw, len(address))
	if err != nil {
		return address, fmt.Errorf("invalid address: %w", err)
	}
	copy(address[:], decoded)
	return address, nil
}

// CommitmentFromHex parses the provided input value.
func CommitmentFromHex(raw string) (Commitment, error) {
	var commitment Commitment
	decoded, err := decodeFixedHex(raw, len(commitment))
	if err != nil {
		return commitment, fmt.Errorf("invalid commitment: %w", err)
	}
	copy(commitment[:], decoded)
	return commitment, nil
}

// Hex returns the lowercase hex encoding with a 0x prefix.
func (schema SchemaID) Hex() string {
	return "0x" + hex.EncodeToString(schema[:])
}

// Hex returns the lowercase hex encoding with a 0x prefix.
func (address Address) Hex() string {
	return "0x" + hex.EncodeToString(address[:])
}

// Hex returns the lowercase hex encoding with a 0x prefix.
func (commitment Commitment) Hex() string {
	return "0x" + hex.EncodeToString(commitment[:])
}

// IsGenesis reports whether the commitment is the genesis value.
func (commitment Commitment) IsGenesis() bool {
	return commitment == GenesisCommitment
}

func decodeFixedHex(raw string, size int) ([]byte, error) {
	trimmed := strings.TrimSpace(raw)
	trimmed = strings.TrimPrefix(trimmed, "0x")
	if trimmed == "" {
		return nil, fmt.Errorf("value is required")
	}

	decoded, err := hex.DecodeString(trimmed)
	if err != nil {
		return nil, fmt.Errorf("value must be valid hex: %w", err)
	}
	if len(decoded) != size {
		return nil, fmt.Errorf("value must be %d bytes, got %d", size, len(decoded))
	}
	return decoded, nil
}
