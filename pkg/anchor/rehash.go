package anchor

// Rehash derives the unpublished remainder of a collection from a
// partially recorded commitment. It folds HashEntry in collection order
// and, at the first point where the running commitment equals the
// target, discards everything up to and including the matching entry.
// The remaining entries are regrouped under their original schemas;
// batches left empty by the truncation are dropped.
//
// A target that never matches is fine only when it is the genesis
// commitment (nothing published yet, the input is returned unchanged).
// A non-genesis target that matches no prefix means the ledger state
// does not correspond to the local record set, and Rehash returns an
// IntegrityError rather than guessing.
func Rehash(target Commitment, batches []Batch) ([]Batch, error) {
	running := GenesisCommitment
	found := false

	remainder := make([]Batch, 0, len(batches))
	for _, batch := range batches {
		var kept []Entry
		if found {
			kept = append([]Entry{}, batch.Entries...)
		} else {
			for index, entry := range batch.Entries {
				running = HashEntry(running, batch.Schema, entry)
				if running == target {
					found = true
					kept = append([]Entry{}, batch.Entries[index+1:]...)
					break
				}
			}
		}
		if len(kept) > 0 {
			remainder = append(remainder, Batch{Schema: batch.Schema, Entries: kept})
		}
	}

	if !found {
		if target.IsGenesis() {
			return batches, nil
		}
		return nil, NewIntegrityError(target)
	}

	return remainder, nil
}
