package anchor

import "fmt"

// Pack groups an ordered sequence of records into batches, one batch
// per schema. Batches appear in first-seen schema order and entries
// keep the relative order of their source records. No record is dropped
// or duplicated. Records with a zero schema ID are rejected.
func Pack(records []Record) ([]Batch, error) {
	violations := make([]string, 0)
	for index, record := range records {
		if record.Schema == ZeroSchemaID {
			violations = append(violations, fmt.Sprintf("record %d has a zero schema ID", index))
		}
	}
	if len(violations) > 0 {
		return nil, NewValidationError("malformed records", violations)
	}

	batches := make([]Batch, 0)
	slots := make(map[SchemaID]int)
	for _, record := range records {
		slot, seen := slots[record.Schema]
		if !seen {
			slot = len(batches)
			slots[record.Schema] = slot
			batches = append(batches, Batch{Schema: record.Schema})
		}
		batches[slot].Entries = append(batches[slot].Entries, EntryFromRecord(record))
	}

	return batches, nil
}
