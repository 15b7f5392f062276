package challenge

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"folio/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestTurnstileVerifier_PostsFormAndReadsResult(t *testing.T) {
	var gotSecret, gotResponse string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotSecret = r.PostFormValue("secret")
		gotResponse = r.PostFormValue("response")

		_ = json.NewEncoder(w).Encode(map[string]any{"success": true})
	}))
	defer server.Close()

	v := NewVerifierForEndpoint("sek", server.URL, testLogger())

	result, err := v.Verify(context.Background(), "widget-token")
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "sek", gotSecret)
	assert.Equal(t, "widget-token", gotResponse)
}

func TestTurnstileVerifier_ErrorCodesPassThrough(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success":     false,
			"error-codes": []string{"timeout-or-duplicate", "invalid-input-response"},
		})
	}))
	defer server.Close()

	v := NewVerifierForEndpoint("sek", server.URL, testLogger())

	result, err := v.Verify(context.Background(), "stale")
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, []string{"timeout-or-duplicate", "invalid-input-response"}, result.ErrorCodes)
}

func TestTurnstileVerifier_EmptyTokenShortCircuits(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		called = true
	}))
	defer server.Close()

	v := NewVerifierForEndpoint("sek", server.URL, testLogger())

	result, err := v.Verify(context.Background(), "   ")
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, []string{"missing-input-response"}, result.ErrorCodes)
	assert.False(t, called, "blank tokens never reach the network")
}

func TestTurnstileVerifier_TransportErrorSurfaces(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	v := NewVerifierForEndpoint("sek", server.URL, testLogger())

	_, err := v.Verify(context.Background(), "tok")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "call siteverify")
}

func TestNewVerifier_NoSecretAcceptsNonEmptyTokens(t *testing.T) {
	cfg := &config.Config{}
	v := NewVerifier(cfg, testLogger())

	result, err := v.Verify(context.Background(), "anything")
	require.NoError(t, err)
	assert.True(t, result.Success)

	result, err = v.Verify(context.Background(), "")
	require.NoError(t, err)
	assert.False(t, result.Success)
}
