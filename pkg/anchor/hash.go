package anchor

import (
	"encoding/binary"

	"golang.org/x/crypto/sha3"
)

// HashEntry combines a prior commitment, a schema ID, and one entry
// into the next commitment. The entry is encoded in a canonical fixed
// layout (prior, schema, recipient, expiration, revocable flag, ref ID,
// value, payload length, payload) and digested with keccak-256. The
// function is pure and total; genesis chains start from the zero-value
// commitment.
func HashEntry(prior Commitment, schema SchemaID, entry Entry) Commitment {
	encoded := make([]byte, 0, 32+32+20+8+1+32+8+4+len(entry.Payload))
	encoded = append(encoded, prior[:]...)
	encoded = append(encoded, schema[:]...)
	encoded = append(encoded, entry.Recipient[:]...)
	encoded = binary.BigEndian.AppendUint64(encoded, entry.Expiration)
	if entry.Revocable {
		encoded = append(encoded, 1)
	} else {
		encoded = append(encoded, 0)
	}
	encoded = append(encoded, entry.RefID[:]...)
	encoded = binary.BigEndian.AppendUint64(encoded, entry.Value)
	encoded = binary.BigEndian.AppendUint32(encoded, uint32(len(entry.Payload)))
	encoded = append(encoded, entry.Payload...)

	digest := sha3.NewLegacyKeccak256()
	digest.Write(encoded)

	var commitment Commitment
	copy(commitment[:], digest.Sum(nil))
	return commitment
}

// FoldBatches folds HashEntry across every entry of every batch in
// collection order, starting from the provided commitment. The chain is
// intrinsically sequential, so the fold is strictly left to right.
func FoldBatches(initial Commitment, batches []Batch) Commitment {
	running := initial
	for _, batch := range batches {
		for _, entry := range batch.Entries {
			running = HashEntry(running, batch.Schema, entry)
		}
	}
	return running
}
