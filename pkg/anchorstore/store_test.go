package anchorstore

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashgraph-online/anchor-sdk-go/pkg/anchor"
)

func sampleCollection() []anchor.Batch {
	schemaA := anchor.SchemaID{31: 'A'}
	schemaB := anchor.SchemaID{31: 'B'}
	return []anchor.Batch{
		{
			Schema: schemaA,
			Entries: []anchor.Entry{
				{Payload: []byte("r1"), Recipient: anchor.Address{1}},
				{Payload: []byte("r3")},
			},
		},
		{
			Schema:  schemaB,
			Entries: []anchor.Entry{{Payload: []byte("r2"), RefID: [32]byte{9}}},
		},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "collection.anchor")
	original := sampleCollection()

	if err := Save(path, original); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(loaded) != len(original) {
		t.Fatalf("expected %d batches, got %d", len(original), len(loaded))
	}
	for index, batch := range loaded {
		if batch.Schema != original[index].Schema {
			t.Fatalf("batch %d schema mismatched", index)
		}
		if len(batch.Entries) != len(original[index].Entries) {
			t.Fatalf("batch %d entry count mismatched", index)
		}
		for entryIndex, entry := range batch.Entries {
			expected := original[index].Entries[entryIndex]
			if !bytes.Equal(entry.Payload, expected.Payload) ||
				entry.Recipient != expected.Recipient ||
				entry.RefID != expected.RefID ||
				entry.Expiration != expected.Expiration ||
				entry.Revocable != expected.Revocable ||
				entry.Value != expected.Value {
				t.Fatalf("batch %d entry %d mismatched", index, entryIndex)
			}
		}
	}

	// Order preservation must extend to the chain commitment.
	if anchor.FoldBatches(anchor.GenesisCommitment, loaded) != anchor.FoldBatches(anchor.GenesisCommitment, original) {
		t.Fatal("expected the round trip to preserve the chain commitment")
	}
}

func TestSaveIsDeterministic(t *testing.T) {
	directory := t.TempDir()
	first := filepath.Join(directory, "first.anchor")
	second := filepath.Join(directory, "second.anchor")

	if err := Save(first, sampleCollection()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := Save(second, sampleCollection()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	firstBytes, err := os.ReadFile(first)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	secondBytes, err := os.ReadFile(second)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if !bytes.Equal(firstBytes, secondBytes) {
		t.Fatal("expected identical collections to encode identically")
	}
}

func TestLoadRejectsForeignFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bogus.anchor")
	if err := os.WriteFile(path, []byte("not an anchor file"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for a foreign file")
	}
}

func TestLoadRejectsUnknownVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "future.anchor")
	if err := os.WriteFile(path, []byte{'H', 'O', 'L', 'A', 99}, 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for an unknown version")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.anchor")); err == nil {
		t.Fatal("expected error for a missing file")
	}
}

func TestSaveEmptyCollection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.anchor")
	if err := Save(path, nil); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded) != 0 {
		t.Fatalf("expected no batches, got %d", len(loaded))
	}
}
