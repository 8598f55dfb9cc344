package mirror

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{Network: "testnet", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	return client
}

func TestNewClientDefaults(t *testing.T) {
	client, err := NewClient(Config{Network: "testnet"})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	if client.BaseURL() != "https://testnet.mirrornode.hedera.com" {
		t.Fatalf("unexpected base URL: %s", client.BaseURL())
	}

	mainnet, err := NewClient(Config{Network: "mainnet"})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	if mainnet.BaseURL() != "https://mainnet-public.mirrornode.hedera.com" {
		t.Fatalf("unexpected base URL: %s", mainnet.BaseURL())
	}
}

func TestNewClientRejectsBadBaseURL(t *testing.T) {
	if _, err := NewClient(Config{Network: "testnet", BaseURL: "ftp://example.com"}); err == nil {
		t.Fatal("expected error for non-http scheme")
	}
	if _, err := NewClient(Config{Network: "bogus"}); err == nil {
		t.Fatal("expected error for unknown network")
	}
}

func TestEstimateContractCall(t *testing.T) {
	client := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
		if request.Method != http.MethodPost || request.URL.Path != "/api/v1/contracts/call" {
			t.Fatalf("unexpected request: %s %s", request.Method, request.URL.Path)
		}
		var body ContractCallRequest
		if err := json.NewDecoder(request.Body).Decode(&body); err != nil {
			t.Fatalf("failed to decode body: %v", err)
		}
		if !body.Estimate {
			t.Fatal("expected estimate=true")
		}
		if body.Block != "latest" {
			t.Fatalf("expected block latest, got %s", body.Block)
		}
		writer.Header().Set("Content-Type", "application/json")
		writer.Write([]byte(`{"result":"0x30d40"}`))
	})

	gas, err := client.EstimateContractCall(context.Background(), ContractCallRequest{
		To:   "0x00000000000000000000000000000000000004d2",
		Data: "0xabcdef",
	})
	if err != nil {
		t.Fatalf("EstimateContractCall failed: %v", err)
	}
	if gas != 200000 {
		t.Fatalf("expected 200000 gas, got %d", gas)
	}
}

func TestEstimateContractCallLimitStatus(t *testing.T) {
	client := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(http.StatusBadRequest)
		writer.Write([]byte(`{"_status":{"messages":[{"message":"MAX_GAS_LIMIT_EXCEEDED"}]}}`))
	})

	_, err := client.EstimateContractCall(context.Background(), ContractCallRequest{To: "0x1", Data: "0x"})
	if err == nil {
		t.Fatal("expected error")
	}
	var limitError CallLimitError
	if !errors.As(err, &limitError) {
		t.Fatalf("expected CallLimitError, got %T: %v", err, err)
	}
	if limitError.Status != "MAX_GAS_LIMIT_EXCEEDED" {
		t.Fatalf("unexpected status: %s", limitError.Status)
	}
}

func TestEstimateContractCallOtherFailure(t *testing.T) {
	client := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(http.StatusBadRequest)
		writer.Write([]byte(`{"_status":{"messages":[{"message":"CONTRACT_REVERT_EXECUTED","detail":"revert"}]}}`))
	})

	_, err := client.EstimateContractCall(context.Background(), ContractCallRequest{To: "0x1", Data: "0x"})
	if err == nil {
		t.Fatal("expected error")
	}
	var limitError CallLimitError
	if errors.As(err, &limitError) {
		t.Fatal("a revert is not a limit error")
	}
	var callError CallError
	if !errors.As(err, &callError) {
		t.Fatalf("expected CallError, got %T", err)
	}
	if callError.Status != "CONTRACT_REVERT_EXECUTED" || callError.StatusCode != http.StatusBadRequest {
		t.Fatalf("unexpected fields: %+v", callError)
	}
}

func TestReadContractCall(t *testing.T) {
	client := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
		var body ContractCallRequest
		if err := json.NewDecoder(request.Body).Decode(&body); err != nil {
			t.Fatalf("failed to decode body: %v", err)
		}
		if body.Estimate {
			t.Fatal("expected estimate=false for reads")
		}
		writer.Header().Set("Content-Type", "application/json")
		writer.Write([]byte(`{"result":"0x0102"}`))
	})

	result, err := client.ReadContractCall(context.Background(), ContractCallRequest{To: "0x1", Data: "0x"})
	if err != nil {
		t.Fatalf("ReadContractCall failed: %v", err)
	}
	if len(result) != 2 || result[0] != 0x01 || result[1] != 0x02 {
		t.Fatalf("unexpected result: %x", result)
	}
}

func TestGetContract(t *testing.T) {
	client := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
		if request.URL.Path != "/api/v1/contracts/0.0.1234" {
			t.Fatalf("unexpected path: %s", request.URL.Path)
		}
		writer.Header().Set("Content-Type", "application/json")
		writer.Write([]byte(`{"contract_id":"0.0.1234","evm_address":"0x00000000000000000000000000000000000004d2"}`))
	})

	info, err := client.GetContract(context.Background(), "0.0.1234")
	if err != nil {
		t.Fatalf("GetContract failed: %v", err)
	}
	if info.ContractID != "0.0.1234" {
		t.Fatalf("unexpected contract: %+v", info)
	}

	if _, err := client.GetContract(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty contract ID")
	}
}

func TestGetTransaction(t *testing.T) {
	client := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		writer.Write([]byte(`{"transactions":[{"transaction_id":"0.0.1-2-3","result":"SUCCESS"}]}`))
	})

	transaction, err := client.GetTransaction(context.Background(), "0.0.1-2-3")
	if err != nil {
		t.Fatalf("GetTransaction failed: %v", err)
	}
	if transaction == nil || transaction.Result != "SUCCESS" {
		t.Fatalf("unexpected transaction: %+v", transaction)
	}
}

func TestGetTransactionNotFound(t *testing.T) {
	client := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		writer.Write([]byte(`{"transactions":[]}`))
	})

	transaction, err := client.GetTransaction(context.Background(), "0.0.1-2-3")
	if err != nil {
		t.Fatalf("GetTransaction failed: %v", err)
	}
	if transaction != nil {
		t.Fatal("expected nil for an unknown transaction")
	}
}

func TestGetNetworkFees(t *testing.T) {
	client := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
		if request.URL.Path != "/api/v1/network/fees" {
			t.Fatalf("unexpected path: %s", request.URL.Path)
		}
		writer.Header().Set("Content-Type", "application/json")
		writer.Write([]byte(`{"fees":[{"gas":853000,"transaction_type":"ContractCall"}],"timestamp":"1.2"}`))
	})

	fees, err := client.GetNetworkFees(context.Background())
	if err != nil {
		t.Fatalf("GetNetworkFees failed: %v", err)
	}
	if len(fees.Fees) != 1 || fees.Fees[0].TransactionType != "ContractCall" {
		t.Fatalf("unexpected fees: %+v", fees)
	}
}

func TestDecodeHexQuantity(t *testing.T) {
	if _, err := decodeHexQuantity(""); err == nil {
		t.Fatal("expected error for empty quantity")
	}
	if _, err := decodeHexQuantity("0xzz"); err == nil {
		t.Fatal("expected error for invalid hex")
	}
	value, err := decodeHexQuantity("0xff")
	if err != nil || value != 255 {
		t.Fatalf("unexpected result: %d, %v", value, err)
	}
}

func TestAPIKeyHeader(t *testing.T) {
	seen := ""
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		seen = request.Header.Get("Authorization")
		writer.Header().Set("Content-Type", "application/json")
		writer.Write([]byte(`{"fees":[],"timestamp":""}`))
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(Config{Network: "testnet", BaseURL: server.URL, APIKey: "secret"})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	if _, err := client.GetNetworkFees(context.Background()); err != nil {
		t.Fatalf("GetNetworkFees failed: %v", err)
	}
	if seen != "Bearer secret" {
		t.Fatalf("unexpected auth header: %s", seen)
	}
}
