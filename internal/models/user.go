package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultCurrency — валюта кошелька, которая заводится каждому игроку при регистрации.
const DefaultCurrency = "usd"

// User — модель игрока платформы.
//
// Balances хранит балансы кошелька по валютам (как минимум "usd";
// стартовое значение задаётся конфигурацией при регистрации).
// Балансы изменяются игровым процессом и операцией переноса средств
// от внешнего игрового провайдера; пользователи не удаляются.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Balances     map[string]decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
