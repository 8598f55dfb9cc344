package shared

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	hedera "github.com/hashgraph/hedera-sdk-go/v2"
)

type OperatorConfig struct {
	AccountID  string
	PrivateKey string
	Network    string
}

var dotenvLoadOnce sync.Once

// OperatorConfigFromEnv loads operator credentials from the
// environment, consulting a discovered .env file for any variable not
// already set. ANCHOR_-prefixed names take precedence over the generic
// HEDERA_ names so anchor deployments can run alongside other tooling.
func OperatorConfigFromEnv() (OperatorConfig, error) {
	loadDotEnvIfPresent()

	network := firstNonEmptyEnv("ANCHOR_NETWORK", "HEDERA_NETWORK", "NETWORK")
	if network == "" {
		network = NetworkTestnet
	}

	accountID := firstNonEmptyEnv("ANCHOR_OPERATOR_ID", "HEDERA_ACCOUNT_ID", "HEDERA_OPERATOR_ID", "OPERATOR_ID")
	privateKey := firstNonEmptyEnv("ANCHOR_OPERATOR_KEY", "HEDERA_PRIVATE_KEY", "HEDERA_OPERATOR_KEY", "OPERATOR_KEY")

	if accountID == "" {
		return OperatorConfig{}, fmt.Errorf("ANCHOR_OPERATOR_ID is required")
	}
	if privateKey == "" {
		return OperatorConfig{}, fmt.Errorf("ANCHOR_OPERATOR_KEY is required")
	}

	return OperatorConfig{
		AccountID:  accountID,
		PrivateKey: privateKey,
		Network:    network,
	}, nil
}

func loadDotEnvIfPresent() {
	dotenvLoadOnce.Do(func() {
		cwd, err := os.Getwd()
		if err != nil {
			return
		}

		current := cwd
		for {
			candidate := filepath.Join(current, ".env")
			if _, statErr := os.Stat(candidate); statErr == nil {
				loadDotEnvFile(candidate)
				return
			}

			parent := filepath.Dir(current)
			if parent == current {
				return
			}
			current = parent
		}
	})
}

func loadDotEnvFile(path string) bool {
	file, err := os.Open(path)
	if err != nil {
		return false
	}
	defer file.Close()

	loadedAny := false
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "export ") {
			line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
		}

		separator := strings.Index(line, "=")
		if separator <= 0 {
			continue
		}

		key := strings.TrimSpace(line[:separator])
		if !isValidEnvKey(key) {
			continue
		}
		if _, alreadySet := os.LookupEnv(key); alreadySet {
			continue
		}

		value := strings.TrimSpace(line[separator+1:])
		if len(value) >= 2 {
			first := value[0]
			last := value[len(value)-1]
			if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
				value = value[1 : len(value)-1]
			}
		}

		if setErr := os.Setenv(key, value); setErr == nil {
			loadedAny = true
		}
	}

	return loadedAny
}

func isValidEnvKey(key string) bool {
	if key == "" {
		return false
	}
	for index, character := range key {
		if (character >= 'A' && character <= 'Z') ||
			(character >= 'a' && character <= 'z') ||
			(index > 0 && character >= '0' && character <= '9') ||
			character == '_' {
			continue
		}
		return false
	}
	return true
}

func firstNonEmptyEnv(keys ...string) string {
	for _, key := range keys {
		value := strings.TrimSpace(os.Getenv(key))
		if value != "" {
			return value
		}
	}
	return ""
}

// ParsePrivateKey parses an operator private key, trying ED25519 first,
// then ECDSA, then the generic Hedera parser.
func ParsePrivateKey(raw string) (hedera.PrivateKey, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return hedera.PrivateKey{}, fmt.Errorf("private key cannot be empty")
	}

	ed25519Key, edErr := hedera.PrivateKeyFromStringEd25519(candidate)
	if edErr == nil {
		return ed25519Key, nil
	}

	ecdsaKey, ecdsaErr := hedera.PrivateKeyFromStringECDSA(candidate)
	if ecdsaErr == nil {
		return ecdsaKey, nil
	}

	genericKey, genericErr := hedera.PrivateKeyFromString(candidate)
	if genericErr == nil {
		return genericKey, nil
	}

	return hedera.PrivateKey{}, fmt.Errorf(
		"failed to parse private key as ED25519 (%v), ECDSA (%v), or generic (%v)",
		edErr,
		ecdsaErr,
		genericErr,
	)
}
