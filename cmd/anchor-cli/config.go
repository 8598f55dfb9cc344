package main

import (
	"bufio"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/hashgraph-online/anchor-sdk-go/pkg/anchor"
	"github.com/hashgraph-online/anchor-sdk-go/pkg/shared"
)

type operatorConfig struct {
	AccountID  string `toml:"account_id"`
	PrivateKey string `toml:"private_key"`
}

type cliConfig struct {
	Network       string         `toml:"network"`
	MirrorBaseURL string         `toml:"mirror_base_url"`
	MirrorAPIKey  string         `toml:"mirror_api_key"`
	ContractID    string         `toml:"contract_id"`
	MaxGas        uint64         `toml:"max_gas"`
	StorePath     string         `toml:"store_path"`
	Operator      operatorConfig `toml:"operator"`
}

func defaultConfig() cliConfig {
	return cliConfig{
		Network: shared.NetworkTestnet,
	}
}

// loadConfigFile overlays a TOML config file onto the defaults. A
// missing file with an empty path is not an error.
func loadConfigFile(path string, config *cliConfig) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := toml.Unmarshal(raw, config); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

// fillOperatorFromEnv fills the operator credentials from the
// environment when the config file and flags left them empty.
func fillOperatorFromEnv(config *cliConfig) {
	if config.Operator.AccountID != "" && config.Operator.PrivateKey != "" {
		return
	}

	operator, err := shared.OperatorConfigFromEnv()
	if err != nil {
		return
	}
	if config.Operator.AccountID == "" {
		config.Operator.AccountID = operator.AccountID
	}
	if config.Operator.PrivateKey == "" {
		config.Operator.PrivateKey = operator.PrivateKey
	}
	if config.Network == "" {
		config.Network = operator.Network
	}
}

type recordLine struct {
	Schema     string `json:"schema"`
	Recipient  string `json:"recipient,omitempty"`
	Payload    string `json:"payload,omitempty"`
	PayloadHex string `json:"payload_hex,omitempty"`
}

// loadRecords reads attestation records from a JSON-lines file: one
// object per line with a schema ID, an optional recipient, and either a
// UTF-8 payload or a hex payload.
func loadRecords(path string) ([]anchor.Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open records file: %w", err)
	}
	defer file.Close()

	records := make([]anchor.Record, 0)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)

	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		var parsed recordLine
		if err := json.Unmarshal([]byte(line), &parsed); err != nil {
			return nil, fmt.Errorf("line %d: invalid record: %w", lineNumber, err)
		}

		schema, err := anchor.SchemaIDFromHex(parsed.Schema)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNumber, err)
		}

		record := anchor.Record{Schema: schema}
		if strings.TrimSpace(parsed.Recipient) != "" {
			recipient, err := anchor.AddressFromHex(parsed.Recipient)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNumber, err)
			}
			record.Recipient = recipient
		}

		switch {
		case parsed.PayloadHex != "":
			payload, err := decodePayloadHex(parsed.PayloadHex)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNumber, err)
			}
			record.Payload = payload
		default:
			record.Payload = []byte(parsed.Payload)
		}

		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read records file: %w", err)
	}
	return records, nil
}

func decodePayloadHex(raw string) ([]byte, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(raw), "0x")
	decoded, err := hex.DecodeString(trimmed)
	if err != nil {
		return nil, fmt.Errorf("invalid payload hex: %w", err)
	}
	return decoded, nil
}
