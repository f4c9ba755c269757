package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/arijiittt/kalp-airdrop/internal/config"
	"github.com/arijiittt/kalp-airdrop/internal/logger"
	"github.com/arijiittt/kalp-airdrop/internal/models"
)

// Client handles all HTTP communication with the Kalp gateway
type Client struct {
	config     *config.Config
	httpClient *http.Client
}

// NewClient creates a new gateway client with the given configuration
func NewClient(cfg *config.Config) *Client {
	return &Client{
		config: cfg,
		httpClient: &http.Client{
			Timeout: cfg.HTTPTimeout,
		},
	}
}

// Invoke issues one authenticated POST to the given endpoint, wrapping
// args in the fixed request envelope. Exactly one outbound call per
// invocation; no retries.
func (c *Client) Invoke(ctx context.Context, endpoint string, args map[string]any) (*models.Response, error) {
	start := time.Now()
	logger.Debug("Starting POST request to %s", endpoint)

	if args == nil {
		args = map[string]any{}
	}

	envelope := models.Envelope{
		Network:       c.config.Network,
		Blockchain:    c.config.Blockchain,
		WalletAddress: c.config.WalletAddress,
		Args:          args,
	}

	jsonBody, err := json.Marshal(envelope)
	if err != nil {
		return nil, fmt.Errorf("error marshaling request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(c.config.APIKeyHeader, c.config.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		elapsed := time.Since(start)
		logger.Error("Request failed after (%s) %v: %v", endpoint, elapsed, err)
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	elapsed := time.Since(start)
	logger.Debug("Request to %s completed in %v with status %d", endpoint, elapsed, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Error("%s: Error reading response body: %v", endpoint, err)
		return nil, &TransportError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := fmt.Sprintf("gateway returned status %d", resp.StatusCode)
		var errBody models.ErrorBody
		if jsonErr := json.Unmarshal(body, &errBody); jsonErr == nil && errBody.Message != "" {
			message = errBody.Message
		}
		logger.Error("%s: HTTP error %d: %s", endpoint, resp.StatusCode, message)
		return nil, &ProtocolError{StatusCode: resp.StatusCode, Message: message}
	}

	var data json.RawMessage
	if err := json.Unmarshal(body, &data); err != nil {
		logger.Error("%s: Error decoding response: %v", endpoint, err)
		return nil, &DecodeError{Err: err}
	}

	return &models.Response{Status: resp.StatusCode, Data: data}, nil
}

// InvokeInto performs a call and decodes the response data into T
func InvokeInto[T any](ctx context.Context, c *Client, endpoint string, args map[string]any) (*T, error) {
	resp, err := c.Invoke(ctx, endpoint, args)
	if err != nil {
		return nil, err
	}

	var result T
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		logger.Error("%s: Error decoding response data: %v", endpoint, err)
		return nil, &DecodeError{Err: err}
	}

	return &result, nil
}
