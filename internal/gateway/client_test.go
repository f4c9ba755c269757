package gateway_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arijiittt/kalp-airdrop/internal/config"
	"github.com/arijiittt/kalp-airdrop/internal/gateway"
	"github.com/arijiittt/kalp-airdrop/internal/logger"
)

func TestMain(m *testing.M) {
	logger.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func newTestConfig() *config.Config {
	cfg := config.NewConfig()
	cfg.ContractID = "klp-test-cc"
	cfg.APIKey = "test-api-key"
	cfg.WalletAddress = "0xWALLET"
	cfg.HTTPTimeout = 5 * time.Second
	return cfg
}

func TestInvoke(t *testing.T) {
	t.Run("request body is the fixed envelope", testRequestBodyIsTheFixedEnvelope)
	t.Run("nil args are sent as an empty object", testNilArgsAreSentAsEmptyObject)
	t.Run("API key header name is configurable", testAPIKeyHeaderNameIsConfigurable)
	t.Run("2xx reply resolves with status and data", testSuccessResolvesWithStatusAndData)
	t.Run("non-2xx reply fails with the body message", testFailureCarriesBodyMessage)
	t.Run("non-2xx reply without message uses fallback", testFailureWithoutMessageUsesFallback)
	t.Run("invalid JSON on success fails with decode error", testInvalidJSONFailsWithDecodeError)
	t.Run("unreachable host fails with transport error", testUnreachableHostFailsWithTransportError)
}

func testRequestBodyIsTheFixedEnvelope(t *testing.T) {
	var capturedBody []byte
	var capturedHeader http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedBody, _ = io.ReadAll(r.Body)
		capturedHeader = r.Header.Clone()
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	client := gateway.NewClient(newTestConfig())
	_, err := client.Invoke(context.Background(), server.URL, map[string]any{"amount": 100, "address": "0xABC"})
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(capturedBody, &body))
	assert.Equal(t, map[string]any{
		"network":       "TESTNET",
		"blockchain":    "KALP",
		"walletAddress": "0xWALLET",
		"args": map[string]any{
			"amount":  float64(100),
			"address": "0xABC",
		},
	}, body)

	assert.Equal(t, "application/json", capturedHeader.Get("Content-Type"))
	assert.Equal(t, "test-api-key", capturedHeader.Get("x-api-key"))
}

func testNilArgsAreSentAsEmptyObject(t *testing.T) {
	var capturedBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedBody, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := gateway.NewClient(newTestConfig())
	_, err := client.Invoke(context.Background(), server.URL, nil)
	require.NoError(t, err)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(capturedBody, &body))
	assert.JSONEq(t, `{}`, string(body["args"]))
}

func testAPIKeyHeaderNameIsConfigurable(t *testing.T) {
	var capturedHeader http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedHeader = r.Header.Clone()
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	cfg := newTestConfig()
	cfg.APIKeyHeader = "auth"

	client := gateway.NewClient(cfg)
	_, err := client.Invoke(context.Background(), server.URL, nil)
	require.NoError(t, err)

	assert.Equal(t, "test-api-key", capturedHeader.Get("auth"))
	assert.Empty(t, capturedHeader.Get("x-api-key"))
}

func testSuccessResolvesWithStatusAndData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"balance":100}`))
	}))
	defer server.Close()

	client := gateway.NewClient(newTestConfig())
	resp, err := client.Invoke(context.Background(), server.URL, map[string]any{"account": "0xABC"})
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.Status)
	assert.JSONEq(t, `{"balance":100}`, string(resp.Data))
}

func testFailureCarriesBodyMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"account not found"}`))
	}))
	defer server.Close()

	client := gateway.NewClient(newTestConfig())
	resp, err := client.Invoke(context.Background(), server.URL, map[string]any{"account": "0xABC"})
	require.Error(t, err)
	assert.Nil(t, resp)

	var protocolErr *gateway.ProtocolError
	require.ErrorAs(t, err, &protocolErr)
	assert.Equal(t, http.StatusInternalServerError, protocolErr.StatusCode)
	assert.Equal(t, "account not found", err.Error())
}

func testFailureWithoutMessageUsesFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`not json at all`))
	}))
	defer server.Close()

	client := gateway.NewClient(newTestConfig())
	_, err := client.Invoke(context.Background(), server.URL, nil)
	require.Error(t, err)

	var protocolErr *gateway.ProtocolError
	require.ErrorAs(t, err, &protocolErr)
	assert.Equal(t, http.StatusNotFound, protocolErr.StatusCode)
	assert.Equal(t, "gateway returned status 404", err.Error())
}

func testInvalidJSONFailsWithDecodeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>definitely not json</html>`))
	}))
	defer server.Close()

	client := gateway.NewClient(newTestConfig())
	_, err := client.Invoke(context.Background(), server.URL, nil)
	require.Error(t, err)

	var decodeErr *gateway.DecodeError
	assert.ErrorAs(t, err, &decodeErr)
}

func testUnreachableHostFailsWithTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	endpoint := server.URL
	server.Close()

	client := gateway.NewClient(newTestConfig())
	_, err := client.Invoke(context.Background(), endpoint, nil)
	require.Error(t, err)

	var transportErr *gateway.TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Error(t, errors.Unwrap(err))
}

func TestInvokeInto(t *testing.T) {
	t.Run("decodes response data into the target type", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"balance":"250"}`))
		}))
		defer server.Close()

		client := gateway.NewClient(newTestConfig())
		result, err := gateway.InvokeInto[struct {
			Balance string `json:"balance"`
		}](context.Background(), client, server.URL, nil)
		require.NoError(t, err)
		assert.Equal(t, "250", result.Balance)
	})

	t.Run("mismatched shape fails with decode error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"balance":"not-a-number"}`))
		}))
		defer server.Close()

		client := gateway.NewClient(newTestConfig())
		_, err := gateway.InvokeInto[struct {
			Balance int `json:"balance"`
		}](context.Background(), client, server.URL, nil)
		require.Error(t, err)

		var decodeErr *gateway.DecodeError
		assert.ErrorAs(t, err, &decodeErr)
	})
}
