// transport/http содержит HTTP/JSON-эндпоинты auth-сервиса.
// Здесь выполняется только разбор запросов, пофилдовая валидация входа и
// маппинг данных и ошибок доменного слоя (service) в типизированные конверты.
// Вся бизнес-логика находится в пакете service.
//
// Принципы:
//   - Контекст запроса прокидывается в сервис без потерь;
//   - Текущий игрок разрешается один раз в authGuard и передаётся
//     обработчикам через контекст (никаких глобальных сессий);
//   - Ошибки сервиса явно транслируются в HTTP-коды:
//   - ErrInvalidEmail/ErrWeakPassword/ErrEmptyPassword/ErrEmptyCurrency -> 422;
//   - ErrEmailTaken -> 409;
//   - ErrInvalidCredentials -> 401 (единое сообщение, без различения
//     "нет пользователя"/"неверный пароль");
//   - ErrInvalidToken/ErrTokenExpired/ErrTokenRevoked -> 401;
//   - ErrGamesKernel -> 502;
//   - иные ошибки -> 500 c единым безопасным сообщением.
//
// Безопасность: для 500 наружу не утекают детали внутренних ошибок;
// подробности попадают в логи через middleware.
package http

import (
	"context"
	"net/http"

	"github.com/bowie-gaming/auth-service/internal/models"

	"github.com/google/uuid"
)

// authService — контракт сервисного слоя, нужный транспорту.
type authService interface {
	RegisterUser(ctx context.Context, email, password string) (*models.User, error)
	LoginUser(ctx context.Context, email, password string) (*models.TokenPair, *models.User, error)
	RefreshToken(ctx context.Context, refreshToken string) (*models.TokenPair, *models.User, error)
	RevokeToken(ctx context.Context, refreshToken string) error
	ValidateToken(ctx context.Context, accessToken string) (uuid.UUID, string, error)
	UserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	TransferToWallet(ctx context.Context, userID uuid.UUID, currency string) (*models.User, error)
	AccessTokenTTLSeconds() int64
}

type Server struct {
	auth authService
}

// NewServer создаёт HTTP-сервер авторизации поверх сервисного слоя.
func NewServer(auth authService) *Server {
	return &Server{auth: auth}
}

// Routes собирает маршруты API. Guard навешивается только на операции,
// требующие аутентификации (всё, кроме login и register).
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/login", s.Login)
	mux.HandleFunc("POST /api/auth/register", s.Register)

	mux.Handle("GET /api/auth/me", s.authGuard(http.HandlerFunc(s.Me)))
	mux.Handle("GET /api/auth/balance", s.authGuard(http.HandlerFunc(s.Balance)))
	mux.Handle("POST /api/auth/transfer-to-wallet", s.authGuard(http.HandlerFunc(s.TransferToWallet)))
	mux.Handle("POST /api/auth/logout", s.authGuard(http.HandlerFunc(s.Logout)))
	mux.Handle("POST /api/auth/refresh", s.authGuard(http.HandlerFunc(s.Refresh)))

	return mux
}
