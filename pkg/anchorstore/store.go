package anchorstore

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/andybalholm/brotli"
	"github.com/fxamacker/cbor/v2"

	"github.com/hashgraph-online/anchor-sdk-go/pkg/anchor"
)

var fileMagic = []byte{'H', 'O', 'L', 'A'}

const fileVersion byte = 1

// encMode uses CBOR Core Deterministic Encoding so the same collection
// always produces identical bytes on disk.
var encMode cbor.EncMode

var decMode cbor.DecMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("anchorstore: CBOR encoder initialization failed: " + err.Error())
	}
	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("anchorstore: CBOR decoder initialization failed: " + err.Error())
	}
}

type storedEntry struct {
	Recipient  []byte `cbor:"1,keyasint"`
	Expiration uint64 `cbor:"2,keyasint"`
	Revocable  bool   `cbor:"3,keyasint"`
	RefID      []byte `cbor:"4,keyasint"`
	Payload    []byte `cbor:"5,keyasint"`
	Value      uint64 `cbor:"6,keyasint"`
}

type storedBatch struct {
	Schema  []byte        `cbor:"1,keyasint"`
	Entries []storedEntry `cbor:"2,keyasint"`
}

// Save writes a sliced batch collection to path, creating parent
// directories as needed. The write goes through a temporary file and a
// rename so a crash never leaves a half-written collection behind.
func Save(path string, batches []anchor.Batch) error {
	stored := make([]storedBatch, 0, len(batches))
	for _, batch := range batches {
		entries := make([]storedEntry, 0, len(batch.Entries))
		for _, entry := range batch.Entries {
			entries = append(entries, storedEntry{
				Recipient:  append([]byte{}, entry.Recipient[:]...),
				Expiration: entry.Expiration,
				Revocable:  entry.Revocable,
				RefID:      append([]byte{}, entry.RefID[:]...),
				Payload:    append([]byte{}, entry.Payload...),
				Value:      entry.Value,
			})
		}
		stored = append(stored, storedBatch{
			Schema:  append([]byte{}, batch.Schema[:]...),
			Entries: entries,
		})
	}

	encoded, err := encMode.Marshal(stored)
	if err != nil {
		return fmt.Errorf("failed to encode collection: %w", err)
	}

	var compressed bytes.Buffer
	compressed.Write(fileMagic)
	compressed.WriteByte(fileVersion)
	writer := brotli.NewWriter(&compressed)
	if _, err := writer.Write(encoded); err != nil {
		return fmt.Errorf("failed to compress collection: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to compress collection: %w", err)
	}

	directory := filepath.Dir(path)
	if err := os.MkdirAll(directory, 0o755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	temporary, err := os.CreateTemp(directory, ".anchorstore-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	temporaryPath := temporary.Name()
	if _, err := temporary.Write(compressed.Bytes()); err != nil {
		temporary.Close()
		os.Remove(temporaryPath)
		return fmt.Errorf("failed to write collection: %w", err)
	}
	if err := temporary.Close(); err != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf("failed to write collection: %w", err)
	}
	if err := os.Rename(temporaryPath, path); err != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf("failed to finalize collection file: %w", err)
	}
	return nil
}

// Load reads a sliced batch collection previously written by Save.
func Load(path string) ([]anchor.Batch, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read collection file: %w", err)
	}
	if len(raw) < len(fileMagic)+1 || !bytes.Equal(raw[:len(fileMagic)], fileMagic) {
		return nil, fmt.Errorf("not an anchorstore file")
	}
	if raw[len(fileMagic)] != fileVersion {
		return nil, fmt.Errorf("unsupported anchorstore version %d", raw[len(fileMagic)])
	}

	reader := brotli.NewReader(bytes.NewReader(raw[len(fileMagic)+1:]))
	decoded, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress collection: %w", err)
	}

	var stored []storedBatch
	if err := decMode.Unmarshal(decoded, &stored); err != nil {
		return nil, fmt.Errorf("failed to decode collection: %w", err)
	}

	batches := make([]anchor.Batch, 0, len(stored))
	for index, storedValue := range stored {
		batch := anchor.Batch{}
		if len(storedValue.Schema) != len(batch.Schema) {
			return nil, fmt.Errorf("batch %d has a malformed schema ID", index)
		}
		copy(batch.Schema[:], storedValue.Schema)

		for entryIndex, entryValue := range storedValue.Entries {
			entry := anchor.Entry{
				Expiration: entryValue.Expiration,
				Revocable:  entryValue.Revocable,
				Payload:    append([]byte{}, entryValue.Payload...),
				Value:      entryValue.Value,
			}
			if len(entryValue.Recipient) != len(entry.Recipient) {
				return nil, fmt.Errorf("batch %d entry %d has a malformed recipient", index, entryIndex)
			}
			copy(entry.Recipient[:], entryValue.Recipient)
			if len(entryValue.RefID) != len(entry.RefID) {
				return nil, fmt.Errorf("batch %d entry %d has a malformed ref ID", index, entryIndex)
			}
			copy(entry.RefID[:], entryValue.RefID)
			batch.Entries = append(batch.Entries, entry)
		}
		batches = append(batches, batch)
	}
	return batches, nil
}
