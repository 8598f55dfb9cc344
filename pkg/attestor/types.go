package attestor

import (
	"github.com/hashgraph-online/anchor-sdk-go/pkg/anchor"
)

type ClientConfig struct {
	OperatorAccountID  string
	OperatorPrivateKey string
	Network            string
	MirrorBaseURL      string
	MirrorAPIKey       string

	// ContractID is the Anchor contract to publish to. When empty the
	// per-network default is resolved.
	ContractID string

	// MaxGasPerTransaction is the per-submission gas ceiling. Zero
	// selects DefaultMaxGasPerTransaction.
	MaxGasPerTransaction uint64

	// StorePath, when set, persists every sliced collection before
	// submission so a verifier can replay it later.
	StorePath string
}

type PublishOptions struct {
	TransactionMemo string

	// MaxAttempts bounds the retries for one slice submission. Zero
	// selects a default of 5.
	MaxAttempts uint64
}

type PublishResult struct {
	JobID             string
	SlicesSubmitted   int
	EntriesSubmitted  int
	StartCommitment   anchor.Commitment
	FinalCommitment   anchor.Commitment
	TransactionIDs    []string
	ResumedFromLedger bool
}

// ResumePlan describes where an interrupted publication stands: the
// ledger's current commitment and the entries it does not yet cover.
type ResumePlan struct {
	LedgerCommitment anchor.Commitment
	Remainder        []anchor.Batch
	FreshStart       bool
}
