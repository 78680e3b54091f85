package secrets

import (
	"errors"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	// “Service” groups this app’s secrets in the OS keychain.
	KeyringService = "recruitin"
	KeyringAccount = "claude_api_key"
	EnvAPIKey      = "CLAUDE_API_KEY"
)

// GetAPIKey resolves the Claude API key: environment first (containers,
// Render-style deploys), then the OS keychain (local desktop runs).
func GetAPIKey() (string, error) {
	if v := strings.TrimSpace(os.Getenv(EnvAPIKey)); v != "" {
		return v, nil
	}

	pw, err := keyring.Get(KeyringService, KeyringAccount)
	if err == nil && strings.TrimSpace(pw) != "" {
		return pw, nil
	}

	return "", errors.New("Claude API key not found (set CLAUDE_API_KEY or store it in the keychain)")
}

func SetAPIKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("api key is empty")
	}
	return keyring.Set(KeyringService, KeyringAccount, key)
}

func DeleteAPIKey() error {
	return keyring.Delete(KeyringService, KeyringAccount)
}
