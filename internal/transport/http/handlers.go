package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/mail"
	"strings"

	"github.com/bowie-gaming/auth-service/internal/service"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type transferRequest struct {
	CurrencyID string `json:"currency_id"`
}

// Login POST /api/auth/login — вход по email+пароль, выдача пары токенов.
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if fields := validateCredentials(req.Email, req.Password); len(fields) > 0 {
		writeValidation(w, r, fields)
		return
	}

	pair, user, err := s.auth.LoginUser(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeStatus(w, r, http.StatusUnauthorized, "error",
				"Incorrect or non-existing credentials entered.")
			return
		}

		writeInternal(w, r)
		return
	}

	writeJSON(w, r, http.StatusOK, newTokenResponse(pair, user, s.auth.AccessTokenTTLSeconds()))
}

// Register POST /api/auth/register — регистрация нового игрока.
// Токены при регистрации не выдаются.
func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if fields := validateCredentials(req.Email, req.Password); len(fields) > 0 {
		writeValidation(w, r, fields)
		return
	}

	_, err := s.auth.RegisterUser(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			writeStatus(w, r, http.StatusConflict, "error",
				"Registration failed. Email already taken.")
		case errors.Is(err, service.ErrInvalidEmail):
			writeValidation(w, r, map[string]string{
				"email": "The email must be a valid email address.",
			})
		case errors.Is(err, service.ErrWeakPassword), errors.Is(err, service.ErrEmptyPassword):
			writeValidation(w, r, map[string]string{
				"password": "The password must be between 8 and 255 characters.",
			})
		default:
			writeInternal(w, r)
		}
		return
	}

	writeStatus(w, r, http.StatusOK, "success", "Created user.")
}

// Me GET /api/auth/me — профиль текущего игрока.
func (s *Server) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := identityFrom(r.Context())
	if !ok {
		writeStatus(w, r, http.StatusUnauthorized, "error", "Unauthorized.")
		return
	}

	user, err := s.auth.UserByID(r.Context(), id.UserID)
	if err != nil {
		writeInternal(w, r)
		return
	}

	writeJSON(w, r, http.StatusOK, profileOf(user))
}

// Balance GET /api/auth/balance — профиль, расширенный балансами кошелька.
func (s *Server) Balance(w http.ResponseWriter, r *http.Request) {
	id, ok := identityFrom(r.Context())
	if !ok {
		writeStatus(w, r, http.StatusUnauthorized, "error", "Unauthorized.")
		return
	}

	user, err := s.auth.UserByID(r.Context(), id.UserID)
	if err != nil {
		writeInternal(w, r)
		return
	}

	writeJSON(w, r, http.StatusOK, extendedProfileOf(user))
}

// TransferToWallet POST /api/auth/transfer-to-wallet — перенос in-play
// баланса от внешнего провайдера в кошелёк; ответ отражает состояние
// после переноса.
func (s *Server) TransferToWallet(w http.ResponseWriter, r *http.Request) {
	id, ok := identityFrom(r.Context())
	if !ok {
		writeStatus(w, r, http.StatusUnauthorized, "error", "Unauthorized.")
		return
	}

	var req transferRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if strings.TrimSpace(req.CurrencyID) == "" {
		writeValidation(w, r, map[string]string{
			"currency_id": "The currency_id field is required.",
		})
		return
	}

	user, err := s.auth.TransferToWallet(r.Context(), id.UserID, req.CurrencyID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyCurrency):
			writeValidation(w, r, map[string]string{
				"currency_id": "The currency_id field is required.",
			})
		case errors.Is(err, service.ErrGamesKernel):
			writeStatus(w, r, http.StatusBadGateway, "error",
				"Game provider is unavailable. Nothing was transferred.")
		default:
			writeInternal(w, r)
		}
		return
	}

	writeJSON(w, r, http.StatusOK, extendedProfileOf(user))
}

// Logout POST /api/auth/logout — отзыв refresh-токена текущей сессии.
// Повторный logout той же сессии также отвечает успехом.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	// Тело необязательно: logout без refresh-токена просто ничего не отзывает.
	_ = json.NewDecoder(r.Body).Decode(&req)

	if req.RefreshToken != "" {
		err := s.auth.RevokeToken(r.Context(), req.RefreshToken)
		if err != nil &&
			!errors.Is(err, service.ErrInvalidToken) &&
			!errors.Is(err, service.ErrTokenRevoked) &&
			!errors.Is(err, service.ErrTokenExpired) {
			writeInternal(w, r)
			return
		}
	}

	writeStatus(w, r, http.StatusOK, "success", "Successfully logged out.")
}

// Refresh POST /api/auth/refresh — ротация пары токенов; конверт ответа
// совпадает с login. Старый refresh-токен после ротации недействителен.
func (s *Server) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if req.RefreshToken == "" {
		writeValidation(w, r, map[string]string{
			"refresh_token": "The refresh_token field is required.",
		})
		return
	}

	pair, user, err := s.auth.RefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, service.ErrInvalidToken) ||
			errors.Is(err, service.ErrTokenExpired) ||
			errors.Is(err, service.ErrTokenRevoked) {
			writeStatus(w, r, http.StatusUnauthorized, "error", "Unauthorized.")
			return
		}

		writeInternal(w, r)
		return
	}

	writeJSON(w, r, http.StatusOK, newTokenResponse(pair, user, s.auth.AccessTokenTTLSeconds()))
}

// decodeBody разбирает JSON-тело запроса; при ошибке отвечает 400 и
// возвращает false.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	defer func() { _ = r.Body.Close() }()

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeStatus(w, r, http.StatusBadRequest, "error", "Malformed request body.")
		return false
	}

	return true
}

// validateCredentials выполняет пофилдовую валидацию email и пароля:
// email обязателен, валиден и не длиннее 255 символов; пароль обязателен,
// длиной 8–255 символов.
func validateCredentials(email, password string) map[string]string {
	fields := make(map[string]string)

	email = strings.TrimSpace(email)
	switch {
	case email == "":
		fields["email"] = "The email field is required."
	case len(email) > 255:
		fields["email"] = "The email may not be greater than 255 characters."
	default:
		if _, err := mail.ParseAddress(email); err != nil {
			fields["email"] = "The email must be a valid email address."
		}
	}

	switch n := len([]rune(password)); {
	case n == 0:
		fields["password"] = "The password field is required."
	case n < 8:
		fields["password"] = "The password must be at least 8 characters."
	case n > 255:
		fields["password"] = "The password may not be greater than 255 characters."
	}

	return fields
}
