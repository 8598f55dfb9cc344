package attestor

import (
	"fmt"

	"github.com/hashgraph-online/anchor-sdk-go/pkg/anchor"
)

type AttestorError struct {
	Message string
}

func (errorValue AttestorError) Error() string {
	return errorValue.Message
}

// SubmissionError reports a slice submission that failed after all
// retries were exhausted.
type SubmissionError struct {
	AttestorError
	SliceIndex int
	Err        error
}

func (errorValue SubmissionError) Unwrap() error {
	return errorValue.Err
}

func NewSubmissionError(sliceIndex int, err error) error {
	return SubmissionError{
		AttestorError: AttestorError{Message: fmt.Sprintf("slice %d submission failed: %v", sliceIndex, err)},
		SliceIndex:    sliceIndex,
		Err:           err,
	}
}

// StateMismatchError reports that the ledger's commitment does not
// correspond to any prefix of the local record set. Publication must
// not proceed until the divergence is manually reconciled.
type StateMismatchError struct {
	AttestorError
	LedgerCommitment anchor.Commitment
	Err              error
}

func (errorValue StateMismatchError) Unwrap() error {
	return errorValue.Err
}

func NewStateMismatchError(ledgerCommitment anchor.Commitment, err error) error {
	return StateMismatchError{
		AttestorError: AttestorError{
			Message: fmt.Sprintf(
				"ledger commitment %s does not match the local record set; reconcile before publishing",
				ledgerCommitment.Hex(),
			),
		},
		LedgerCommitment: ledgerCommitment,
		Err:              err,
	}
}
