package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bowie-gaming/auth-service/internal/models"
	"github.com/bowie-gaming/auth-service/internal/pkg/log"

	"github.com/google/uuid"
)

// TransferToWallet переносит in-play баланс игрока у внешнего провайдера
// обратно в кошелёк и возвращает игрока с актуальными балансами.
//
// Порядок операции:
//  1. GamesKernel снимает in-play средства в заданной валюте и сообщает сумму;
//  2. сумма зачисляется на кошелёк в хранилище;
//  3. игрок перечитывается, чтобы ответ отражал состояние после переноса.
//
// При отказе провайдера ничего не зачисляется, ошибка маппится на ErrGamesKernel.
func (s *Service) TransferToWallet(ctx context.Context, userID uuid.UUID, currency string) (*models.User, error) {
	const op = "service.wallet.TransferToWallet"

	lg := log.From(ctx)

	currency = strings.ToLower(strings.TrimSpace(currency))
	if currency == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrEmptyCurrency)
	}

	amount, err := s.kernel.TransferToWallet(ctx, userID, currency)
	if err != nil {
		lg.Error("games_kernel_transfer_failed",
			slog.String("op", op),
			slog.String("user_id", userID.String()),
			slog.String("currency", currency),
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("%s: %w", op, ErrGamesKernel)
	}

	if amount.IsPositive() {
		if err := s.storage.CreditBalance(ctx, userID, currency, amount); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	lg.Info("wallet_transfer_done",
		slog.String("user_id", userID.String()),
		slog.String("currency", currency),
		slog.String("amount", amount.String()),
	)

	user, err := s.storage.UserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}
