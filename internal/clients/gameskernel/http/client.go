// Пакет http реализует клиент GamesKernel — внутреннего сервиса игрового
// провайдера, который держит in-play балансы игроков. Клиент выполняет
// единственную операцию: перенос in-play средств обратно в кошелёк.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type httpClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	client    httpClient
	kernelURL url.URL
}

func NewClient(client httpClient, kernelURL url.URL) *Client {
	return &Client{
		client:    client,
		kernelURL: kernelURL,
	}
}

type transferRequest struct {
	UserID   string `json:"user_id"`
	Currency string `json:"currency"`
}

type transferResponse struct {
	Amount decimal.Decimal `json:"amount"`
}

// TransferToWallet просит провайдера снять in-play баланс игрока в заданной
// валюте и возвращает высвобожденную сумму.
func (c *Client) TransferToWallet(ctx context.Context, userID uuid.UUID, currency string) (decimal.Decimal, error) {
	const op = "clients.gameskernel.http.TransferToWallet"

	transferURL := c.kernelURL.JoinPath("api/wallet/transfer")

	body, err := json.Marshal(transferRequest{
		UserID:   userID.String(),
		Currency: currency,
	})
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, transferURL.String(), bytes.NewReader(body))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("%s: kernel responded %d", op, resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", op, err)
	}

	var tr transferResponse
	if err := json.Unmarshal(raw, &tr); err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", op, err)
	}

	if tr.Amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("%s: kernel reported negative amount %s", op, tr.Amount)
	}

	return tr.Amount, nil
}
