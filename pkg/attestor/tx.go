package attestor

import (
	"encoding/binary"
	"fmt"
	"strings"

	hedera "github.com/hashgraph/hedera-sdk-go/v2"
	"golang.org/x/crypto/sha3"

	"github.com/hashgraph-online/anchor-sdk-go/pkg/anchor"
)

const (
	attestBatchSignature       = "attestBatch(bytes32,address[],bytes[])"
	currentCommitmentSignature = "currentCommitment()"
)

// BuildAttestBatchTx builds the contract execution that publishes one
// sliced batch. The calldata carries the schema plus parallel recipient
// and payload arrays; the contract fixes expiration, revocability,
// reference, and value, matching the commitment layout.
func BuildAttestBatchTx(
	contractID hedera.ContractID,
	batch anchor.Batch,
	gasLimit uint64,
	transactionMemo string,
) (*hedera.ContractExecuteTransaction, error) {
	if len(batch.Entries) == 0 {
		return nil, fmt.Errorf("batch has no entries")
	}
	if gasLimit == 0 {
		return nil, fmt.Errorf("gas limit is required")
	}

	transaction := hedera.NewContractExecuteTransaction().
		SetContractID(contractID).
		SetGas(gasLimit).
		SetFunctionParameters(EncodeAttestBatchCall(batch.Schema, batch.Entries))
	if strings.TrimSpace(transactionMemo) != "" {
		transaction.SetTransactionMemo(strings.TrimSpace(transactionMemo))
	}
	return transaction, nil
}

// EncodeAttestBatchCall ABI-encodes the attestBatch calldata for a
// schema and its ordered entries.
func EncodeAttestBatchCall(schema anchor.SchemaID, entries []anchor.Entry) []byte {
	recipients := encodeAddressArray(entries)
	payloads := encodeBytesArray(entries)

	// Head: schema word, then offsets of the two dynamic arrays
	// relative to the start of the argument block.
	call := make([]byte, 0, 4+96+len(recipients)+len(payloads))
	call = append(call, FunctionSelector(attestBatchSignature)...)
	call = append(call, schema[:]...)
	call = append(call, encodeUintWord(96)...)
	call = append(call, encodeUintWord(uint64(96+len(recipients)))...)
	call = append(call, recipients...)
	call = append(call, payloads...)
	return call
}

// EncodeCurrentCommitmentCall ABI-encodes the read-only call that
// returns the contract's current chain commitment.
func EncodeCurrentCommitmentCall() []byte {
	return FunctionSelector(currentCommitmentSignature)
}

// FunctionSelector returns the 4-byte ABI selector for a function
// signature.
func FunctionSelector(signature string) []byte {
	digest := sha3.NewLegacyKeccak256()
	digest.Write([]byte(signature))
	return digest.Sum(nil)[:4]
}

func encodeUintWord(value uint64) []byte {
	word := make([]byte, 32)
	binary.BigEndian.PutUint64(word[24:], value)
	return word
}

func encodeAddressArray(entries []anchor.Entry) []byte {
	encoded := encodeUintWord(uint64(len(entries)))
	for _, entry := range entries {
		word := make([]byte, 32)
		copy(word[12:], entry.Recipient[:])
		encoded = append(encoded, word...)
	}
	return encoded
}

func encodeBytesArray(entries []anchor.Entry) []byte {
	encoded := encodeUintWord(uint64(len(entries)))

	// Element offsets are relative to the start of the array's data
	// area, which begins after the offset words.
	offsets := make([]byte, 0, 32*len(entries))
	tails := make([]byte, 0)
	running := uint64(32 * len(entries))
	for _, entry := range entries {
		offsets = append(offsets, encodeUintWord(running)...)
		tail := encodeDynamicBytes(entry.Payload)
		tails = append(tails, tail...)
		running += uint64(len(tail))
	}

	encoded = append(encoded, offsets...)
	encoded = append(encoded, tails...)
	return encoded
}

func encodeDynamicBytes(payload []byte) []byte {
	padded := (len(payload) + 31) / 32 * 32
	encoded := make([]byte, 32+padded)
	binary.BigEndian.PutUint64(encoded[24:32], uint64(len(payload)))
	copy(encoded[32:], payload)
	return encoded
}
