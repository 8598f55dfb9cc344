package shared

import (
	"fmt"
	"strings"

	hedera "github.com/hashgraph/hedera-sdk-go/v2"
)

const (
	NetworkMainnet    = "mainnet"
	NetworkTestnet    = "testnet"
	NetworkPreviewnet = "previewnet"
)

// NormalizeNetwork lowercases and validates a network name. An empty
// name defaults to testnet.
func NormalizeNetwork(network string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(network))
	if normalized == "" {
		return NetworkTestnet, nil
	}

	switch normalized {
	case NetworkMainnet, NetworkTestnet, NetworkPreviewnet:
		return normalized, nil
	default:
		return "", fmt.Errorf("unsupported network %q", network)
	}
}

// NewHederaClient creates a Hedera SDK client for the named network.
func NewHederaClient(network string) (*hedera.Client, error) {
	normalized, err := NormalizeNetwork(network)
	if err != nil {
		return nil, err
	}

	switch normalized {
	case NetworkMainnet:
		return hedera.ClientForMainnet(), nil
	case NetworkPreviewnet:
		return hedera.ClientForPreviewnet(), nil
	default:
		return hedera.ClientForTestnet(), nil
	}
}
