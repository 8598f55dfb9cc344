package mirror

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashgraph-online/anchor-sdk-go/pkg/shared"
)

type Config struct {
	Network    string
	BaseURL    string
	HTTPClient *http.Client
	APIKey     string
	Headers    map[string]string
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	apiKey     string
	headers    map[string]string
}

// NewClient creates a new Client.
func NewClient(config Config) (*Client, error) {
	network, err := shared.NormalizeNetwork(config.Network)
	if err != nil {
		return nil, err
	}

	baseURL := strings.TrimRight(config.BaseURL, "/")
	if baseURL == "" {
		switch network {
		case shared.NetworkMainnet:
			baseURL = "https://mainnet-public.mirrornode.hedera.com"
		case shared.NetworkPreviewnet:
			baseURL = "https://previewnet.mirrornode.hedera.com"
		default:
			baseURL = "https://testnet.mirrornode.hedera.com"
		}
	}
	parsedBaseURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid mirror base URL: %w", err)
	}
	if parsedBaseURL.Scheme != "http" && parsedBaseURL.Scheme != "https" {
		return nil, fmt.Errorf("invalid mirror base URL: scheme must be http or https")
	}
	if strings.TrimSpace(parsedBaseURL.Host) == "" {
		return nil, fmt.Errorf("invalid mirror base URL: host is required")
	}
	baseURL = strings.TrimRight(parsedBaseURL.String(), "/")

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	headers := map[string]string{}
	for key, value := range config.Headers {
		headers[key] = value
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		apiKey:     strings.TrimSpace(config.APIKey),
		headers:    headers,
	}, nil
}

// BaseURL returns the resolved mirror node base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// EstimateContractCall asks the mirror node how much gas the call would
// consume. A response status denoting a per-transaction limit is
// returned as a CallLimitError; any other failure is a CallError or a
// transport error.
func (c *Client) EstimateContractCall(ctx context.Context, request ContractCallRequest) (uint64, error) {
	request.Estimate = true
	if strings.TrimSpace(request.Block) == "" {
		request.Block = "latest"
	}

	var response contractCallResponse
	if err := c.postJSON(ctx, "/api/v1/contracts/call", request, &response); err != nil {
		return 0, err
	}

	gas, err := decodeHexQuantity(response.Result)
	if err != nil {
		return 0, fmt.Errorf("failed to decode gas estimate: %w", err)
	}
	return gas, nil
}

// ReadContractCall executes a read-only contract call and returns the
// raw result bytes.
func (c *Client) ReadContractCall(ctx context.Context, request ContractCallRequest) ([]byte, error) {
	request.Estimate = false
	if strings.TrimSpace(request.Block) == "" {
		request.Block = "latest"
	}

	var response contractCallResponse
	if err := c.postJSON(ctx, "/api/v1/contracts/call", request, &response); err != nil {
		return nil, err
	}

	trimmed := strings.TrimPrefix(strings.TrimSpace(response.Result), "0x")
	decoded, err := hex.DecodeString(trimmed)
	if err != nil {
		return nil, fmt.Errorf("failed to decode contract call result: %w", err)
	}
	return decoded, nil
}

// GetContract returns the requested value.
func (c *Client) GetContract(ctx context.Context, contractID string) (ContractInfo, error) {
	var info ContractInfo
	normalized := strings.TrimSpace(contractID)
	if normalized == "" {
		return info, fmt.Errorf("contract ID is required")
	}

	path := fmt.Sprintf("/api/v1/contracts/%s", normalized)
	if err := c.getJSON(ctx, path, &info); err != nil {
		return info, err
	}
	return info, nil
}

// GetTransaction returns the requested value.
func (c *Client) GetTransaction(ctx context.Context, transactionID string) (*Transaction, error) {
	normalized := strings.TrimSpace(transactionID)
	if normalized == "" {
		return nil, fmt.Errorf("transaction ID is required")
	}

	var response transactionsResponse
	path := fmt.Sprintf("/api/v1/transactions/%s", normalized)
	if err := c.getJSON(ctx, path, &response); err != nil {
		return nil, err
	}

	if len(response.Transactions) == 0 {
		return nil, nil
	}
	return &response.Transactions[0], nil
}

// GetNetworkFees returns the current network fee schedule.
func (c *Client) GetNetworkFees(ctx context.Context) (NetworkFees, error) {
	var fees NetworkFees
	if err := c.getJSON(ctx, "/api/v1/network/fees", &fees); err != nil {
		return fees, err
	}
	return fees, nil
}

func (c *Client) getJSON(ctx context.Context, pathOrURL string, target any) error {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, c.resolveURL(pathOrURL), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	return c.doJSON(request, target)
}

func (c *Client) postJSON(ctx context.Context, path string, body any, target any) error {
	encoded, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request body: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.resolveURL(path), bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")
	return c.doJSON(request, target)
}

func (c *Client) doJSON(request *http.Request, target any) error {
	request.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		request.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))
	}
	for key, value := range c.headers {
		request.Header.Set(key, value)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("mirror node request failed: %w", err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return fmt.Errorf("failed to read mirror node response: %w", err)
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return classifyErrorResponse(response.StatusCode, body)
	}

	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("failed to decode mirror node response: %w", err)
	}
	return nil
}

func classifyErrorResponse(statusCode int, body []byte) error {
	var parsed mirrorErrorResponse
	if err := json.Unmarshal(body, &parsed); err != nil || len(parsed.Status.Messages) == 0 {
		return NewCallError(statusCode, "", strings.TrimSpace(string(body)))
	}

	first := parsed.Status.Messages[0]
	status := strings.TrimSpace(first.Message)
	if IsLimitStatus(status) {
		return NewCallLimitError(status)
	}
	return NewCallError(statusCode, status, first.Detail)
}

func (c *Client) resolveURL(pathOrURL string) string {
	if strings.HasPrefix(pathOrURL, "http://") || strings.HasPrefix(pathOrURL, "https://") {
		return pathOrURL
	}

	path := pathOrURL
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + path
}

func decodeHexQuantity(raw string) (uint64, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(raw), "0x")
	if trimmed == "" {
		return 0, fmt.Errorf("empty quantity")
	}

	value, ok := new(big.Int).SetString(trimmed, 16)
	if !ok {
		return 0, fmt.Errorf("invalid hex quantity %q", raw)
	}
	if !value.IsUint64() {
		return 0, fmt.Errorf("quantity %q overflows uint64", raw)
	}
	return value.Uint64(), nil
}
