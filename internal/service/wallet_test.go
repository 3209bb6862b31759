package service

import (
	"context"
	"errors"
	"testing"

	"github.com/bowie-gaming/auth-service/internal/models"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestTransferToWallet_OK(t *testing.T) {
	t.Parallel()

	svc, st, kernel, ctrl := newSvc(t)
	defer ctrl.Finish()

	uid := uuid.New()
	amount := decimal.NewFromInt(150)

	kernel.EXPECT().TransferToWallet(gomock.Any(), uid, "usd").Return(amount, nil)
	st.EXPECT().CreditBalance(gomock.Any(), uid, "usd", amount).Return(nil)
	st.EXPECT().UserByID(gomock.Any(), uid).
		Return(&models.User{
			ID:    uid,
			Email: "player@example.com",
			Balances: map[string]decimal.Decimal{
				models.DefaultCurrency: decimal.NewFromInt(1150),
			},
		}, nil)

	user, err := svc.TransferToWallet(context.Background(), uid, "usd")
	require.NoError(t, err)
	require.True(t, user.Balances[models.DefaultCurrency].Equal(decimal.NewFromInt(1150)))
}

func TestTransferToWallet_CurrencyNormalized(t *testing.T) {
	t.Parallel()

	svc, st, kernel, ctrl := newSvc(t)
	defer ctrl.Finish()

	uid := uuid.New()
	amount := decimal.NewFromInt(10)

	// Валюта приводится к нижнему регистру до обращения к провайдеру.
	kernel.EXPECT().TransferToWallet(gomock.Any(), uid, "usd").Return(amount, nil)
	st.EXPECT().CreditBalance(gomock.Any(), uid, "usd", amount).Return(nil)
	st.EXPECT().UserByID(gomock.Any(), uid).Return(&models.User{ID: uid}, nil)

	_, err := svc.TransferToWallet(context.Background(), uid, "  USD ")
	require.NoError(t, err)
}

func TestTransferToWallet_EmptyCurrency(t *testing.T) {
	t.Parallel()

	svc, _, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	_, err := svc.TransferToWallet(context.Background(), uuid.New(), "   ")
	require.ErrorIs(t, err, ErrEmptyCurrency)
}

func TestTransferToWallet_KernelFailure_NothingCredited(t *testing.T) {
	t.Parallel()

	svc, _, kernel, ctrl := newSvc(t)
	defer ctrl.Finish()

	uid := uuid.New()

	// Хранилище не трогается: mock без EXPECT на CreditBalance/UserByID.
	kernel.EXPECT().TransferToWallet(gomock.Any(), uid, "usd").
		Return(decimal.Zero, errors.New("provider down"))

	_, err := svc.TransferToWallet(context.Background(), uid, "usd")
	require.ErrorIs(t, err, ErrGamesKernel)
}

func TestTransferToWallet_ZeroAmount_SkipsCredit(t *testing.T) {
	t.Parallel()

	svc, st, kernel, ctrl := newSvc(t)
	defer ctrl.Finish()

	uid := uuid.New()

	kernel.EXPECT().TransferToWallet(gomock.Any(), uid, "usd").Return(decimal.Zero, nil)
	st.EXPECT().UserByID(gomock.Any(), uid).
		Return(&models.User{
			ID: uid,
			Balances: map[string]decimal.Decimal{
				models.DefaultCurrency: decimal.NewFromInt(1000),
			},
		}, nil)

	user, err := svc.TransferToWallet(context.Background(), uid, "usd")
	require.NoError(t, err)
	require.True(t, user.Balances[models.DefaultCurrency].Equal(decimal.NewFromInt(1000)))
}

func TestTransferToWallet_CreditFailure(t *testing.T) {
	t.Parallel()

	svc, st, kernel, ctrl := newSvc(t)
	defer ctrl.Finish()

	uid := uuid.New()
	amount := decimal.NewFromInt(5)

	kernel.EXPECT().TransferToWallet(gomock.Any(), uid, "usd").Return(amount, nil)
	st.EXPECT().CreditBalance(gomock.Any(), uid, "usd", amount).
		Return(errors.New("db down"))

	_, err := svc.TransferToWallet(context.Background(), uid, "usd")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrGamesKernel)
}
