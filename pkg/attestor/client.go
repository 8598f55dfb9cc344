package attestor

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	hedera "github.com/hashgraph/hedera-sdk-go/v2"
	"github.com/rs/zerolog"

	"github.com/hashgraph-online/anchor-sdk-go/pkg/anchor"
	"github.com/hashgraph-online/anchor-sdk-go/pkg/mirror"
	"github.com/hashgraph-online/anchor-sdk-go/pkg/shared"
)

type Client struct {
	hederaClient    *hedera.Client
	mirrorClient    *mirror.Client
	operatorID      hedera.AccountID
	operatorKey     hedera.PrivateKey
	contractID      hedera.ContractID
	contractAddress string
	ceiling         *GasCeiling
	storePath       string
	logger          zerolog.Logger
}

// NewClient creates a new Client.
func NewClient(config ClientConfig) (*Client, error) {
	network, err := shared.NormalizeNetwork(config.Network)
	if err != nil {
		return nil, err
	}

	operatorID := strings.TrimSpace(config.OperatorAccountID)
	if operatorID == "" {
		return nil, fmt.Errorf("operator account ID is required")
	}
	operatorKey := strings.TrimSpace(config.OperatorPrivateKey)
	if operatorKey == "" {
		return nil, fmt.Errorf("operator private key is required")
	}

	parsedOperatorID, err := hedera.AccountIDFromString(operatorID)
	if err != nil {
		return nil, fmt.Errorf("invalid operator account ID: %w", err)
	}
	parsedOperatorKey, err := shared.ParsePrivateKey(operatorKey)
	if err != nil {
		return nil, err
	}

	contractID := strings.TrimSpace(config.ContractID)
	if contractID == "" {
		contractID, err = ResolveContract(network)
		if err != nil {
			return nil, err
		}
	}
	parsedContractID, err := hedera.ContractIDFromString(contractID)
	if err != nil {
		return nil, fmt.Errorf("invalid contract ID: %w", err)
	}

	hederaClient, err := shared.NewHederaClient(network)
	if err != nil {
		return nil, err
	}
	hederaClient.SetOperator(parsedOperatorID, parsedOperatorKey)

	mirrorClient, err := mirror.NewClient(mirror.Config{
		Network: network,
		BaseURL: config.MirrorBaseURL,
		APIKey:  config.MirrorAPIKey,
	})
	if err != nil {
		return nil, err
	}

	return &Client{
		hederaClient:    hederaClient,
		mirrorClient:    mirrorClient,
		operatorID:      parsedOperatorID,
		operatorKey:     parsedOperatorKey,
		contractID:      parsedContractID,
		contractAddress: "0x" + parsedContractID.ToSolidityAddress(),
		ceiling:         NewGasCeiling(config.MaxGasPerTransaction),
		storePath:       strings.TrimSpace(config.StorePath),
		logger:          zerolog.New(os.Stderr).With().Timestamp().Str("component", "attestor").Logger(),
	}, nil
}

// HederaClient returns the configured Hedera SDK client.
func (c *Client) HederaClient() *hedera.Client {
	return c.hederaClient
}

// MirrorClient returns the configured mirror node client.
func (c *Client) MirrorClient() *mirror.Client {
	return c.mirrorClient
}

// Ceiling returns the gas ceiling provider used by slicing.
func (c *Client) Ceiling() *GasCeiling {
	return c.ceiling
}

// Estimator returns a cost estimator bound to the anchor contract.
func (c *Client) Estimator() *MirrorEstimator {
	return NewMirrorEstimator(c.mirrorClient, c.contractAddress, "")
}

// SetLogger replaces the client's logger.
func (c *Client) SetLogger(logger zerolog.Logger) {
	c.logger = logger
}

// CurrentCommitment reads the contract's current chain commitment from
// the ledger through the mirror node. The zero value means nothing has
// been committed yet.
func (c *Client) CurrentCommitment(ctx context.Context) (anchor.Commitment, error) {
	var commitment anchor.Commitment

	result, err := c.mirrorClient.ReadContractCall(ctx, mirror.ContractCallRequest{
		To:   c.contractAddress,
		Data: "0x" + hex.EncodeToString(EncodeCurrentCommitmentCall()),
	})
	if err != nil {
		return commitment, fmt.Errorf("failed to read the on-ledger commitment: %w", err)
	}
	if len(result) != len(commitment) {
		return commitment, fmt.Errorf("unexpected commitment length %d", len(result))
	}

	copy(commitment[:], result)
	return commitment, nil
}

// Resume reads the ledger commitment and derives the unpublished
// remainder of the collection. A non-genesis commitment that matches no
// prefix of the collection is a state mismatch and blocks publication.
func (c *Client) Resume(ctx context.Context, batches []anchor.Batch) (ResumePlan, error) {
	ledgerCommitment, err := c.CurrentCommitment(ctx)
	if err != nil {
		return ResumePlan{}, err
	}
	return resumePlanFor(ledgerCommitment, batches)
}

func resumePlanFor(ledgerCommitment anchor.Commitment, batches []anchor.Batch) (ResumePlan, error) {
	remainder, err := anchor.Rehash(ledgerCommitment, batches)
	if err != nil {
		return ResumePlan{}, NewStateMismatchError(ledgerCommitment, err)
	}

	return ResumePlan{
		LedgerCommitment: ledgerCommitment,
		Remainder:        remainder,
		FreshStart:       ledgerCommitment.IsGenesis(),
	}, nil
}
