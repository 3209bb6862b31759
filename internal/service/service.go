// service содержит бизнес-логику auth-сервиса игровой платформы:
// регистрацию/аутентификацию игроков, выпуск/проверку токенов, работу
// с хранилищем через интерфейсы из пакета storage и перенос средств
// из внешнего игрового провайдера (GamesKernel) в кошелёк.
//
// Основные аспекты:
//   - Пакет не хранит состояние запроса внутри Service; экземпляр Service
//     безопасен для конкурентного использования из разных горутин при условии,
//     что переданное хранилище (storage.Storage) потокобезопасно.
//   - Текущий пользователь всегда передаётся явно (uuid из валидированного
//     токена); сервис не читает никакого ambient-состояния.
//   - Ошибки возвращаются и далее маппятся транспортом на HTTP-коды
//     (см. комментарии к переменным ошибок ниже).
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/bowie-gaming/auth-service/internal/cache"
	"github.com/bowie-gaming/auth-service/internal/config"
	"github.com/bowie-gaming/auth-service/internal/storage"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidCredentials — пара email/пароль неверна или пользователь не найден.
	// Транспорт отвечает единым сообщением без различения причин (HTTP 401).
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken — токен (access/refresh) некорректен по формату/подписи
	// или отсутствует в хранилище. Транспорт: HTTP 401.
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired — срок действия токена истёк. Транспорт: HTTP 401.
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenRevoked — токен отозван (logout/rotation) и недействителен
	// независимо от срока. Транспорт: HTTP 401.
	ErrTokenRevoked = errors.New("token revoked")

	// ErrEmailTaken — e-mail уже занят другим игроком. Транспорт: HTTP 409.
	ErrEmailTaken = errors.New("email already taken")

	// ErrRefreshTokenCollision — исчерпаны попытки сгенерировать уникальный
	// refresh-токен. Транспорт: HTTP 500.
	ErrRefreshTokenCollision = errors.New("refresh token collision")

	// ErrInvalidEmail — e-mail пустой, длиннее 255 символов или имеет
	// некорректный формат. Транспорт: HTTP 422.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrWeakPassword — пароль короче 8 или длиннее 255 символов.
	// Транспорт: HTTP 422.
	ErrWeakPassword = errors.New("password length out of range")

	// ErrEmptyPassword — пароль пустой. Транспорт: HTTP 422.
	ErrEmptyPassword = errors.New("password is empty")

	// ErrEmptyCurrency — не указана валюта для переноса средств.
	// Транспорт: HTTP 422.
	ErrEmptyCurrency = errors.New("currency is empty")

	// ErrGamesKernel — внешний игровой провайдер недоступен или отказал.
	// Транспорт: HTTP 502.
	ErrGamesKernel = errors.New("games kernel transfer failed")
)

// GamesKernel — контракт внешнего игрового провайдера.
// TransferToWallet снимает in-play баланс игрока в заданной валюте
// на стороне провайдера и возвращает высвобожденную сумму.
type GamesKernel interface {
	TransferToWallet(ctx context.Context, userID uuid.UUID, currency string) (decimal.Decimal, error)
}

// Service описывает бизнес-логику auth-сервиса.
type Service struct {
	storage      storage.Storage
	kernel       GamesKernel
	cfg          config.AuthConfig
	startBalance decimal.Decimal
	rcache       cache.RefreshCache // может быть nil, если кэш не сконфигурирован
}

// New создаёт новый экземпляр Service.
// Возвращает ошибку, если стартовый баланс из конфигурации не парсится
// как десятичное число.
func New(storage storage.Storage, kernel GamesKernel, cfg config.AuthConfig, player config.PlayerConfig) (*Service, error) {
	const op = "service.New"

	startBalance, err := decimal.NewFromString(player.StartBalance)
	if err != nil {
		return nil, fmt.Errorf("%s: bad start_balance %q: %w", op, player.StartBalance, err)
	}

	return &Service{
		storage:      storage,
		kernel:       kernel,
		cfg:          cfg,
		startBalance: startBalance,
	}, nil
}

// SetRefreshCache устанавливает кэш refresh-токенов (опционально).
func (s *Service) SetRefreshCache(c cache.RefreshCache) {
	s.rcache = c
}

// AccessTokenTTLSeconds — срок жизни access-токена в целых секундах
// (значение expires_in в ответах login/refresh).
func (s *Service) AccessTokenTTLSeconds() int64 {
	return int64(s.cfg.AccessTokenTTL.Seconds())
}
