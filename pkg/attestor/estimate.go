package attestor

import (
	"context"
	"encoding/hex"
	"errors"
	"sync/atomic"

	"github.com/hashgraph-online/anchor-sdk-go/pkg/anchor"
	"github.com/hashgraph-online/anchor-sdk-go/pkg/mirror"
)

// DefaultMaxGasPerTransaction is the Hedera network's per-transaction
// gas cap for contract calls.
const DefaultMaxGasPerTransaction uint64 = 15000000

// MirrorEstimator implements anchor.CostEstimator against the mirror
// node's contract call estimation endpoint. Limit classifications from
// the mirror node surface as anchor.CostLimitError so the slicer
// narrows its search instead of aborting.
type MirrorEstimator struct {
	mirrorClient    *mirror.Client
	contractAddress string
	senderAddress   string
}

func NewMirrorEstimator(mirrorClient *mirror.Client, contractAddress string, senderAddress string) *MirrorEstimator {
	return &MirrorEstimator{
		mirrorClient:    mirrorClient,
		contractAddress: contractAddress,
		senderAddress:   senderAddress,
	}
}

// EstimateCost estimates the gas one attestBatch submission would
// consume for the given entry range.
func (estimator *MirrorEstimator) EstimateCost(
	ctx context.Context,
	schema anchor.SchemaID,
	entries []anchor.Entry,
) (uint64, error) {
	calldata := EncodeAttestBatchCall(schema, entries)

	gas, err := estimator.mirrorClient.EstimateContractCall(ctx, mirror.ContractCallRequest{
		To:   estimator.contractAddress,
		From: estimator.senderAddress,
		Data: "0x" + hex.EncodeToString(calldata),
	})
	if err != nil {
		var limitError mirror.CallLimitError
		if errors.As(err, &limitError) {
			return 0, anchor.CostLimitError{
				AnchorError: anchor.AnchorError{Message: limitError.Error()},
			}
		}
		return 0, err
	}
	return gas, nil
}

// GasCeiling implements anchor.CeilingProvider over an atomically
// updatable limit, so an operator can lower or raise the cap between
// slicer invocations without rebuilding the client.
type GasCeiling struct {
	limit atomic.Uint64
}

func NewGasCeiling(limit uint64) *GasCeiling {
	ceiling := &GasCeiling{}
	if limit == 0 {
		limit = DefaultMaxGasPerTransaction
	}
	ceiling.limit.Store(limit)
	return ceiling
}

// CurrentCeiling returns the requested value.
func (ceiling *GasCeiling) CurrentCeiling(ctx context.Context) (uint64, error) {
	return ceiling.limit.Load(), nil
}

// SetLimit replaces the ceiling. The new value is observed by the next
// slicer invocation, not by searches already in flight.
func (ceiling *GasCeiling) SetLimit(limit uint64) {
	if limit == 0 {
		limit = DefaultMaxGasPerTransaction
	}
	ceiling.limit.Store(limit)
}
