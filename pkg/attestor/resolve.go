package attestor

import (
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	"golang.org/x/crypto/sha3"

	"github.com/hashgraph-online/anchor-sdk-go/pkg/anchor"
	"github.com/hashgraph-online/anchor-sdk-go/pkg/shared"
)

// anchorContracts are the deployed Anchor contract IDs per network.
var anchorContracts = map[string]string{
	shared.NetworkMainnet:    "0.0.7892301",
	shared.NetworkTestnet:    "0.0.5284410",
	shared.NetworkPreviewnet: "0.0.4419007",
}

// ResolveContract returns the Anchor contract ID deployed on the named
// network.
func ResolveContract(network string) (string, error) {
	normalized, err := shared.NormalizeNetwork(network)
	if err != nil {
		return "", err
	}

	contractID, known := anchorContracts[normalized]
	if !known {
		return "", fmt.Errorf("no anchor contract deployed on %s", normalized)
	}
	return contractID, nil
}

// ComputeSchemaID derives the schema (category) identifier the contract
// assigns to a schema definition: keccak-256 over the canonical
// definition string, the resolver address, and the revocability flag.
func ComputeSchemaID(definition string, resolver anchor.Address, revocable bool) (anchor.SchemaID, error) {
	var schema anchor.SchemaID

	canonical := strings.TrimSpace(definition)
	if canonical == "" {
		return schema, fmt.Errorf("schema definition is required")
	}

	digest := sha3.NewLegacyKeccak256()
	digest.Write([]byte(canonical))
	digest.Write(resolver[:])
	if revocable {
		digest.Write([]byte{1})
	} else {
		digest.Write([]byte{0})
	}

	copy(schema[:], digest.Sum(nil))
	return schema, nil
}

// AddressFromPublicKey derives the 20-byte recipient address for a
// secp256k1 public key (compressed or uncompressed): the last 20 bytes
// of the keccak-256 digest of the uncompressed point.
func AddressFromPublicKey(publicKey []byte) (anchor.Address, error) {
	var address anchor.Address

	parsed, err := btcec.ParsePubKey(publicKey)
	if err != nil {
		return address, fmt.Errorf("invalid secp256k1 public key: %w", err)
	}

	uncompressed := parsed.SerializeUncompressed()
	digest := sha3.NewLegacyKeccak256()
	digest.Write(uncompressed[1:])

	sum := digest.Sum(nil)
	copy(address[:], sum[len(sum)-20:])
	return address, nil
}
