package anchor

import (
	"context"
	"errors"
	"fmt"
)

// CostEstimator estimates the submission cost of a contiguous entry
// range under one schema. Implementations signal "cannot fit" with a
// CostLimitError; any other error aborts the slicer call.
type CostEstimator interface {
	EstimateCost(ctx context.Context, schema SchemaID, entries []Entry) (uint64, error)
}

// CeilingProvider reports the network's current per-submission resource
// ceiling. Slice queries it once per invocation; the ceiling may change
// between invocations and is never persisted.
type CeilingProvider interface {
	CurrentCeiling(ctx context.Context) (uint64, error)
}

// sliceSafetyMargin is the fixed headroom kept under the ceiling so a
// submission estimated at the boundary still fits at execution time.
const sliceSafetyMargin uint64 = 50000

type sliceState int

const (
	sliceStateSearching sliceState = iota
	sliceStateEmitted
	sliceStateDone
)

// Slice partitions a batch into the fewest ordered sub-batches whose
// estimated cost each stays strictly under the current ceiling minus a
// fixed safety margin. Concatenating the returned sub-batches' entries
// reconstructs the input exactly. When even a single entry cannot fit,
// that entry is emitted alone so the scan always advances.
func Slice(
	ctx context.Context,
	batch Batch,
	estimator CostEstimator,
	ceilings CeilingProvider,
) ([]Batch, error) {
	if estimator == nil {
		return nil, NewValidationError("cost estimator is required", nil)
	}
	if ceilings == nil {
		return nil, NewValidationError("ceiling provider is required", nil)
	}
	if len(batch.Entries) == 0 {
		return []Batch{}, nil
	}

	ceiling, err := ceilings.CurrentCeiling(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query resource ceiling: %w", err)
	}
	if ceiling <= sliceSafetyMargin {
		return nil, NewValidationError(
			fmt.Sprintf("ceiling %d leaves no budget under the %d safety margin", ceiling, sliceSafetyMargin),
			nil,
		)
	}
	budget := ceiling - sliceSafetyMargin

	slices := make([]Batch, 0, 1)
	start := 0
	for state := sliceStateSearching; state != sliceStateDone; {
		switch state {
		case sliceStateSearching:
			boundary, searchErr := searchBoundary(ctx, batch, estimator, budget, start)
			if searchErr != nil {
				return nil, searchErr
			}
			slices = append(slices, Batch{
				Schema:  batch.Schema,
				Entries: batch.Entries[start:boundary],
			})
			start = boundary
			state = sliceStateEmitted
		case sliceStateEmitted:
			if start == len(batch.Entries) {
				state = sliceStateDone
			} else {
				state = sliceStateSearching
			}
		}
	}

	return slices, nil
}

// searchBoundary binary-searches for the largest end index such that
// the range [start, end) has estimated cost strictly under the budget.
// An estimator CostLimitError narrows the search like an over-budget
// cost; any other estimator failure is fatal. The returned boundary is
// always greater than start, so the caller makes forward progress even
// when no range fits.
func searchBoundary(
	ctx context.Context,
	batch Batch,
	estimator CostEstimator,
	budget uint64,
	start int,
) (int, error) {
	low := start + 1
	high := len(batch.Entries)
	boundary := start

	for low <= high {
		mid := low + (high-low)/2
		cost, err := estimator.EstimateCost(ctx, batch.Schema, batch.Entries[start:mid])
		if err != nil {
			var limitError CostLimitError
			if errors.As(err, &limitError) {
				high = mid - 1
				continue
			}
			return 0, NewEstimationError(err)
		}
		if cost < budget {
			boundary = mid
			low = mid + 1
		} else {
			high = mid - 1
		}
	}

	if boundary <= start {
		// Even one entry does not fit under the budget; emit it alone
		// rather than looping forever on a zero-width slice.
		return start + 1, nil
	}
	return boundary, nil
}
