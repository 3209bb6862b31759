package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/bowie-gaming/auth-service/internal/models"
	"github.com/bowie-gaming/auth-service/internal/pkg/log"

	"github.com/shopspring/decimal"
)

// Типизированные конверты ответов. Каждая операция отдаёт ровно один из них;
// динамических структур нет.

// statusResponse — конверт подтверждений и ошибок: {status, code, message}.
type statusResponse struct {
	Status  string `json:"status"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// validationResponse — ошибка валидации с пофилдовыми сообщениями.
type validationResponse struct {
	Status  string            `json:"status"`
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

// userProfile — публичный профиль игрока (ответ me и вложение в tokenResponse).
type userProfile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// extendedProfile — профиль, расширенный балансами кошелька (balance/transfer).
type extendedProfile struct {
	userProfile
	Balances map[string]decimal.Decimal `json:"balances"`
}

// tokenResponse — конверт выдачи токенов (login/refresh).
type tokenResponse struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	TokenType    string      `json:"token_type"`
	User         userProfile `json:"user"`
	ExpiresIn    int64       `json:"expires_in"`
}

func profileOf(user *models.User) userProfile {
	return userProfile{
		ID:        user.ID.String(),
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}

func extendedProfileOf(user *models.User) extendedProfile {
	balances := user.Balances
	if balances == nil {
		balances = map[string]decimal.Decimal{}
	}

	return extendedProfile{
		userProfile: profileOf(user),
		Balances:    balances,
	}
}

func newTokenResponse(pair *models.TokenPair, user *models.User, expiresIn int64) tokenResponse {
	return tokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "bearer",
		User:         profileOf(user),
		ExpiresIn:    expiresIn,
	}
}

func writeJSON(w http.ResponseWriter, r *http.Request, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.From(r.Context()).Error("response_encode_failed",
			slog.String("err", err.Error()),
		)
	}
}

func writeStatus(w http.ResponseWriter, r *http.Request, code int, status, message string) {
	writeJSON(w, r, code, statusResponse{
		Status:  status,
		Code:    code,
		Message: message,
	})
}

func writeValidation(w http.ResponseWriter, r *http.Request, fields map[string]string) {
	writeJSON(w, r, http.StatusUnprocessableEntity, validationResponse{
		Status:  "error",
		Code:    http.StatusUnprocessableEntity,
		Message: "The given data was invalid.",
		Errors:  fields,
	})
}

func writeInternal(w http.ResponseWriter, r *http.Request) {
	writeStatus(w, r, http.StatusInternalServerError, "error", "Internal server error.")
}
