// Пакет mock — статическая заглушка GamesKernel для локальной разработки:
// любой перенос "высвобождает" фиксированную сумму.
package mock

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Client struct {
}

func NewClient() *Client {
	return &Client{}
}

func (c *Client) TransferToWallet(_ context.Context, _ uuid.UUID, _ string) (decimal.Decimal, error) {
	return decimal.NewFromInt(150), nil
}
