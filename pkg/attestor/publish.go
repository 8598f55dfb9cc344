package attestor

import (
	"context"
	"fmt"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	hedera "github.com/hashgraph/hedera-sdk-go/v2"

	"github.com/hashgraph-online/anchor-sdk-go/pkg/anchor"
	"github.com/hashgraph-online/anchor-sdk-go/pkg/anchorstore"
)

const defaultMaxAttempts uint64 = 5

// Publish anchors a batch collection to the contract. It first derives
// the unpublished remainder from the ledger's current commitment, so a
// rerun after an interruption never resubmits committed entries. The
// remainder is sliced under the current gas ceiling, persisted when a
// store path is configured, and submitted one slice at a time with
// exponential backoff on transient failures.
func (c *Client) Publish(ctx context.Context, batches []anchor.Batch, options PublishOptions) (PublishResult, error) {
	jobID := uuid.NewString()
	logger := c.logger.With().Str("job", jobID).Logger()

	plan, err := c.Resume(ctx, batches)
	if err != nil {
		return PublishResult{}, err
	}

	result := PublishResult{
		JobID:             jobID,
		StartCommitment:   plan.LedgerCommitment,
		FinalCommitment:   plan.LedgerCommitment,
		ResumedFromLedger: !plan.FreshStart,
	}
	if len(plan.Remainder) == 0 {
		logger.Info().Str("commitment", plan.LedgerCommitment.Hex()).Msg("collection already fully anchored")
		return result, nil
	}
	if !plan.FreshStart {
		logger.Info().Str("commitment", plan.LedgerCommitment.Hex()).Msg("resuming from the ledger commitment")
	}

	estimator := c.Estimator()
	sliced := make([]anchor.Batch, 0, len(plan.Remainder))
	for _, batch := range plan.Remainder {
		slices, sliceErr := anchor.Slice(ctx, batch, estimator, c.ceiling)
		if sliceErr != nil {
			return result, sliceErr
		}
		sliced = append(sliced, slices...)
	}
	logger.Info().Int("batches", len(plan.Remainder)).Int("slices", len(sliced)).Msg("collection sliced")

	if c.storePath != "" {
		if saveErr := anchorstore.Save(c.storePath, sliced); saveErr != nil {
			return result, fmt.Errorf("failed to persist sliced collection: %w", saveErr)
		}
		logger.Info().Str("path", c.storePath).Msg("sliced collection persisted")
	}

	gasLimit, _ := c.ceiling.CurrentCeiling(ctx)
	maxAttempts := options.MaxAttempts
	if maxAttempts == 0 {
		maxAttempts = defaultMaxAttempts
	}

	running := plan.LedgerCommitment
	for index, slice := range sliced {
		transactionID, submitErr := c.submitSlice(ctx, slice, gasLimit, options.TransactionMemo, maxAttempts)
		if submitErr != nil {
			return result, NewSubmissionError(index, submitErr)
		}

		running = anchor.FoldBatches(running, []anchor.Batch{slice})
		result.TransactionIDs = append(result.TransactionIDs, transactionID)
		result.SlicesSubmitted++
		result.EntriesSubmitted += len(slice.Entries)
		result.FinalCommitment = running

		logger.Info().
			Int("slice", index).
			Int("entries", len(slice.Entries)).
			Str("tx", transactionID).
			Str("commitment", running.Hex()).
			Msg("slice anchored")
	}

	return result, nil
}

// VerifyPublished recomputes the full chain commitment over the local
// collection and compares it to the ledger's current commitment.
func (c *Client) VerifyPublished(ctx context.Context, batches []anchor.Batch) (bool, error) {
	ledgerCommitment, err := c.CurrentCommitment(ctx)
	if err != nil {
		return false, err
	}
	return anchor.Verify(ledgerCommitment, batches), nil
}

func (c *Client) submitSlice(
	ctx context.Context,
	slice anchor.Batch,
	gasLimit uint64,
	transactionMemo string,
	maxAttempts uint64,
) (string, error) {
	var transactionID string

	operation := func() error {
		// Rebuilt per attempt: an executed Hedera transaction cannot be
		// replayed.
		transaction, buildErr := BuildAttestBatchTx(c.contractID, slice, gasLimit, transactionMemo)
		if buildErr != nil {
			return backoff.Permanent(buildErr)
		}

		response, execErr := transaction.Execute(c.hederaClient)
		if execErr != nil {
			return execErr
		}
		receipt, receiptErr := response.GetReceipt(c.hederaClient)
		if receiptErr != nil {
			return receiptErr
		}
		if receipt.Status != hedera.StatusSuccess {
			return fmt.Errorf("submission finished with status %s", receipt.Status)
		}

		transactionID = response.TransactionID.String()
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxAttempts), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return "", err
	}
	return transactionID, nil
}
