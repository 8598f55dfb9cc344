package anchor

import (
	"bytes"
	"errors"
	"testing"
)

func testSchema(tag byte) SchemaID {
	var schema SchemaID
	schema[31] = tag
	return schema
}

func testRecord(tag byte, payload string) Record {
	return Record{
		Schema:  testSchema(tag),
		Payload: []byte(payload),
	}
}

func TestPackGroupsBySchemaInFirstSeenOrder(t *testing.T) {
	records := []Record{
		testRecord('A', "r1"),
		testRecord('B', "r2"),
		testRecord('A', "r3"),
	}

	batches, err := Pack(records)
	if err != nil {
		t.Fatalf("Pack failed: %v", err)
	}
	if len(batches) != 2 {
		t.Fatalf("expected 2 batches, got %d", len(batches))
	}
	if batches[0].Schema != testSchema('A') || batches[1].Schema != testSchema('B') {
		t.Fatal("expected first-seen schema order A, B")
	}
	if len(batches[0].Entries) != 2 || len(batches[1].Entries) != 1 {
		t.Fatalf("unexpected entry counts: %d, %d", len(batches[0].Entries), len(batches[1].Entries))
	}
	if string(batches[0].Entries[0].Payload) != "r1" || string(batches[0].Entries[1].Payload) != "r3" {
		t.Fatal("expected intra-schema record order preserved")
	}
	if string(batches[1].Entries[0].Payload) != "r2" {
		t.Fatal("expected B batch to hold r2")
	}
}

func TestPackPreservesEveryRecordExactlyOnce(t *testing.T) {
	records := make([]Record, 0, 30)
	for index := 0; index < 30; index++ {
		tag := byte('A' + index%3)
		records = append(records, testRecord(tag, string(rune('a'+index))))
	}

	batches, err := Pack(records)
	if err != nil {
		t.Fatalf("Pack failed: %v", err)
	}

	flattened := Flatten(batches)
	if len(flattened) != len(records) {
		t.Fatalf("expected %d entries, got %d", len(records), len(flattened))
	}

	// Entries of each schema must appear in source order.
	for _, batch := range batches {
		previous := -1
		for _, entry := range batch.Entries {
			position := -1
			for recordIndex, record := range records {
				if record.Schema == batch.Schema && bytes.Equal(record.Payload, entry.Payload) && recordIndex > previous {
					position = recordIndex
					break
				}
			}
			if position <= previous {
				t.Fatalf("entry order broken for schema %s", batch.Schema.Hex())
			}
			previous = position
		}
	}
}

func TestPackFixesEntryFields(t *testing.T) {
	batches, err := Pack([]Record{testRecord('A', "r1")})
	if err != nil {
		t.Fatalf("Pack failed: %v", err)
	}

	entry := batches[0].Entries[0]
	if entry.Expiration != 0 || entry.Revocable || entry.RefID != [32]byte{} || entry.Value != 0 {
		t.Fatalf("expected fixed entry fields, got %+v", entry)
	}
	if entry.Recipient != ZeroAddress {
		t.Fatal("expected zero recipient default")
	}
}

func TestPackRejectsZeroSchema(t *testing.T) {
	_, err := Pack([]Record{{Payload: []byte("r1")}})
	if err == nil {
		t.Fatal("expected error for zero schema ID")
	}
	var validationError ValidationError
	if !errors.As(err, &validationError) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if len(validationError.Violations) != 1 {
		t.Fatalf("unexpected violations: %v", validationError.Violations)
	}
}

func TestPackEmptyInput(t *testing.T) {
	batches, err := Pack(nil)
	if err != nil {
		t.Fatalf("Pack failed: %v", err)
	}
	if len(batches) != 0 {
		t.Fatalf("expected no batches, got %d", len(batches))
	}
}
