package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// identity — идентичность игрока, извлечённая guard'ом из bearer-токена.
// Разрешается один раз на границе запроса и передаётся обработчикам через
// контекст; никакое ambient-состояние не используется.
type identity struct {
	UserID uuid.UUID
	Email  string
}

type identityKey struct{}

func identityInto(ctx context.Context, id identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

func identityFrom(ctx context.Context) (identity, bool) {
	id, ok := ctx.Value(identityKey{}).(identity)
	return id, ok
}

// authGuard отклоняет запросы без валидного bearer access-токена до того,
// как они дойдут до обработчика, и кладёт identity в контекст.
func (s *Server) authGuard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			writeStatus(w, r, http.StatusUnauthorized, "error", "Unauthorized.")
			return
		}

		uid, email, err := s.auth.ValidateToken(r.Context(), token)
		if err != nil {
			writeStatus(w, r, http.StatusUnauthorized, "error", "Unauthorized.")
			return
		}

		ctx := identityInto(r.Context(), identity{UserID: uid, Email: email})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// bearerToken извлекает токен из заголовка Authorization: Bearer <token>.
func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}

	const prefix = "Bearer "
	if !strings.HasPrefix(h, prefix) {
		return ""
	}

	return strings.TrimSpace(strings.TrimPrefix(h, prefix))
}
