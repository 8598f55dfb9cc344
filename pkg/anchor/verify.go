package anchor

// Verify recomputes the full chain commitment over the collection from
// genesis and reports whether it equals the target.
func Verify(target Commitment, batches []Batch) bool {
	return FoldBatches(GenesisCommitment, batches) == target
}
