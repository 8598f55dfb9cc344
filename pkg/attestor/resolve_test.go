package attestor

import (
	"testing"

	hedera "github.com/hashgraph/hedera-sdk-go/v2"

	"github.com/hashgraph-online/anchor-sdk-go/pkg/anchor"
)

func TestResolveContractPerNetwork(t *testing.T) {
	for _, network := range []string{"mainnet", "testnet", "previewnet"} {
		contractID, err := ResolveContract(network)
		if err != nil {
			t.Fatalf("ResolveContract(%s) failed: %v", network, err)
		}
		if _, parseErr := hedera.ContractIDFromString(contractID); parseErr != nil {
			t.Fatalf("resolved contract %q does not parse: %v", contractID, parseErr)
		}
	}
}

func TestResolveContractUnknownNetwork(t *testing.T) {
	if _, err := ResolveContract("localnet"); err == nil {
		t.Fatal("expected error for unknown network")
	}
}

func TestComputeSchemaIDDeterministic(t *testing.T) {
	definition := "uint64 score, bytes32 subject"
	first, err := ComputeSchemaID(definition, anchor.ZeroAddress, false)
	if err != nil {
		t.Fatalf("ComputeSchemaID failed: %v", err)
	}
	second, err := ComputeSchemaID(definition, anchor.ZeroAddress, false)
	if err != nil {
		t.Fatalf("ComputeSchemaID failed: %v", err)
	}
	if first != second {
		t.Fatal("expected identical definitions to derive identical schema IDs")
	}
	if first == anchor.ZeroSchemaID {
		t.Fatal("expected a non-zero schema ID")
	}
}

func TestComputeSchemaIDDistinguishesInputs(t *testing.T) {
	base, err := ComputeSchemaID("uint64 score", anchor.ZeroAddress, false)
	if err != nil {
		t.Fatalf("ComputeSchemaID failed: %v", err)
	}

	differentDefinition, _ := ComputeSchemaID("uint64 rank", anchor.ZeroAddress, false)
	if differentDefinition == base {
		t.Fatal("expected the definition to affect the schema ID")
	}

	differentResolver, _ := ComputeSchemaID("uint64 score", anchor.Address{1}, false)
	if differentResolver == base {
		t.Fatal("expected the resolver to affect the schema ID")
	}

	revocable, _ := ComputeSchemaID("uint64 score", anchor.ZeroAddress, true)
	if revocable == base {
		t.Fatal("expected revocability to affect the schema ID")
	}
}

func TestComputeSchemaIDRequiresDefinition(t *testing.T) {
	if _, err := ComputeSchemaID("   ", anchor.ZeroAddress, false); err == nil {
		t.Fatal("expected error for an empty definition")
	}
}

func TestAddressFromPublicKey(t *testing.T) {
	key, err := hedera.PrivateKeyGenerateEcdsa()
	if err != nil {
		t.Fatalf("key generation failed: %v", err)
	}

	address, err := AddressFromPublicKey(key.PublicKey().BytesRaw())
	if err != nil {
		t.Fatalf("AddressFromPublicKey failed: %v", err)
	}
	if address == anchor.ZeroAddress {
		t.Fatal("expected a non-zero address")
	}

	again, err := AddressFromPublicKey(key.PublicKey().BytesRaw())
	if err != nil {
		t.Fatalf("AddressFromPublicKey failed: %v", err)
	}
	if again != address {
		t.Fatal("expected a deterministic derivation")
	}
}

func TestAddressFromPublicKeyRejectsGarbage(t *testing.T) {
	if _, err := AddressFromPublicKey([]byte{1, 2, 3}); err == nil {
		t.Fatal("expected error for a malformed key")
	}
}
