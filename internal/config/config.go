package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Gateway settings
	GatewayURL   string
	ContractID   string
	APIKey       string
	APIKeyHeader string
	HTTPTimeout  time.Duration

	// Envelope settings
	Network       string
	Blockchain    string
	WalletAddress string

	// Airdrop settings
	ClaimAmount int
}

// NewConfig creates a new configuration with default values
func NewConfig() *Config {
	return &Config{
		GatewayURL:   "https://gateway-api.kalp.studio/v1/contract/kalp",
		APIKeyHeader: "x-api-key",
		HTTPTimeout:  30 * time.Second,
		Network:      "TESTNET",
		Blockchain:   "KALP",
		ClaimAmount:  100,
	}
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() {
	if gatewayURL := os.Getenv("KALP_GATEWAY_URL"); gatewayURL != "" {
		c.GatewayURL = gatewayURL
	}

	if contractID := os.Getenv("KALP_CONTRACT_ID"); contractID != "" {
		c.ContractID = contractID
	}

	if apiKey := os.Getenv("KALP_API_KEY"); apiKey != "" {
		c.APIKey = apiKey
	}

	if header := os.Getenv("KALP_API_KEY_HEADER"); header != "" {
		c.APIKeyHeader = header
	}

	if timeout := os.Getenv("KALP_HTTP_TIMEOUT"); timeout != "" {
		if t, err := strconv.Atoi(timeout); err == nil {
			c.HTTPTimeout = time.Duration(t) * time.Second
		}
	}

	if network := os.Getenv("KALP_NETWORK"); network != "" {
		c.Network = network
	}

	if blockchain := os.Getenv("KALP_BLOCKCHAIN"); blockchain != "" {
		c.Blockchain = blockchain
	}

	if wallet := os.Getenv("KALP_WALLET_ADDRESS"); wallet != "" {
		c.WalletAddress = wallet
	}

	if amount := os.Getenv("KALP_CLAIM_AMOUNT"); amount != "" {
		if a, err := strconv.Atoi(amount); err == nil {
			c.ClaimAmount = a
		}
	}
}

// InvokeEndpoint returns the full URL for a state-changing contract function
func (c *Config) InvokeEndpoint(function string) string {
	return fmt.Sprintf("%s/invoke/%s/%s", strings.TrimRight(c.GatewayURL, "/"), c.ContractID, function)
}

// QueryEndpoint returns the full URL for a read-only contract function
func (c *Config) QueryEndpoint(function string) string {
	return fmt.Sprintf("%s/query/%s/%s", strings.TrimRight(c.GatewayURL, "/"), c.ContractID, function)
}

// Validate checks if the configuration is valid. It must pass before the
// first gateway call is issued.
func (c *Config) Validate() error {
	parsed, err := url.Parse(c.GatewayURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("gateway URL must be a non-empty absolute URL, got: %q", c.GatewayURL)
	}

	if c.ContractID == "" {
		return fmt.Errorf("contract ID cannot be empty")
	}

	if c.APIKey == "" {
		return fmt.Errorf("API key cannot be empty")
	}

	if c.APIKeyHeader == "" {
		return fmt.Errorf("API key header name cannot be empty")
	}

	if c.WalletAddress == "" {
		return fmt.Errorf("wallet address cannot be empty")
	}

	if c.ClaimAmount <= 0 {
		return fmt.Errorf("claim amount must be positive, got: %d", c.ClaimAmount)
	}

	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTP timeout must be positive, got: %v", c.HTTPTimeout)
	}

	return nil
}

// Redacted returns a copy with the API key masked for display
func (c *Config) Redacted() Config {
	redacted := *c
	if len(redacted.APIKey) > 4 {
		redacted.APIKey = redacted.APIKey[:4] + strings.Repeat("*", len(redacted.APIKey)-4)
	} else if redacted.APIKey != "" {
		redacted.APIKey = "****"
	}
	return redacted
}
