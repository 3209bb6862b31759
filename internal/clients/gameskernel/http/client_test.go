package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	kernelURL, err := url.Parse(srv.URL)
	require.NoError(t, err)

	return NewClient(srv.Client(), *kernelURL)
}

func TestTransferToWallet_OK(t *testing.T) {
	t.Parallel()

	uid := uuid.New()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/wallet/transfer", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req struct {
			UserID   string `json:"user_id"`
			Currency string `json:"currency"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, uid.String(), req.UserID)
		require.Equal(t, "usd", req.Currency)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"amount": "150.25"}`))
	})

	amount, err := client.TransferToWallet(context.Background(), uid, "usd")
	require.NoError(t, err)
	require.Equal(t, "150.25", amount.String())
}

func TestTransferToWallet_NumericAmount(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		// Сумма числом, без кавычек — тоже валидный ответ провайдера.
		_, _ = w.Write([]byte(`{"amount": 42}`))
	})

	amount, err := client.TransferToWallet(context.Background(), uuid.New(), "usd")
	require.NoError(t, err)
	require.Equal(t, "42", amount.String())
}

func TestTransferToWallet_Non200(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	})

	_, err := client.TransferToWallet(context.Background(), uuid.New(), "usd")
	require.Error(t, err)
	require.Contains(t, err.Error(), "503")
}

func TestTransferToWallet_BadBody(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{broken`))
	})

	_, err := client.TransferToWallet(context.Background(), uuid.New(), "usd")
	require.Error(t, err)
}

func TestTransferToWallet_NegativeAmount(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"amount": "-5"}`))
	})

	_, err := client.TransferToWallet(context.Background(), uuid.New(), "usd")
	require.Error(t, err)
	require.Contains(t, err.Error(), "negative")
}

func TestTransferToWallet_ContextCanceled(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.TransferToWallet(ctx, uuid.New(), "usd")
	require.Error(t, err)
}
