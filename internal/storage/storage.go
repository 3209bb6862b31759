package storage

import (
	"context"
	"errors"
	"time"

	"github.com/bowie-gaming/auth-service/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrNotFound — запись не найдена (пользователь/токен).
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists — нарушение уникальности (email/refresh-token).
	ErrAlreadyExists = errors.New("already exists")
)

// UserStorage выполняет операции над игроками и их кошельками.
type UserStorage interface {
	// SaveUser создает нового игрока вместе со стартовыми балансами кошелька.
	// Возвращает ErrAlreadyExists при занятом email.
	SaveUser(ctx context.Context, user *models.User) error
	// UserByEmail находит игрока по email (вместе с балансами).
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	// UserByID находит игрока по ID (вместе с балансами).
	UserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	// CreditBalance увеличивает баланс кошелька в заданной валюте.
	CreditBalance(ctx context.Context, userID uuid.UUID, currency string, amount decimal.Decimal) error
}

// RefreshTokenStorage выполняет операции над refresh-токенами.
type RefreshTokenStorage interface {
	// SaveRefreshToken сохраняет новый refresh-токен.
	SaveRefreshToken(ctx context.Context, token *models.RefreshToken) error
	// RefreshTokenByHash находит refresh-токен по его хэшу.
	RefreshTokenByHash(ctx context.Context, hash string) (*models.RefreshToken, error)
	// RevokeRefreshToken пытается отозвать refresh-токен, если он ещё активен.
	// Возвращает (true, nil) при успешном отзыве, (false, nil) если токен уже
	// был отозван, (false, ErrNotFound) если токен не найден.
	RevokeRefreshToken(ctx context.Context, hash string) (bool, error)
	// DeleteExpiredTokens удаляет все просроченные токены.
	DeleteExpiredTokens(ctx context.Context, now time.Time) error
}

// Storage задает контракт работы с БД.
type Storage interface {
	UserStorage
	RefreshTokenStorage
	Close()
}
