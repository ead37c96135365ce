package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/pribylovaa/go-task-tracker/internal/metrics"
	"github.com/pribylovaa/go-task-tracker/internal/models"
	"github.com/pribylovaa/go-task-tracker/internal/service"
	apierrors "github.com/pribylovaa/go-task-tracker/internal/transport/http/errors"
)

// Authenticator — срез сервисного слоя, который нужен мидлвару: проверка
// access-токена без похода в хранилище.
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (*models.Claims, error)
}

// Authenticate требует валидный Bearer access-токен и кладёт его claims
// в контекст по ключу CtxClaims.
//
// Любой отказ — отсутствие заголовка, битый или истёкший токен — даёт один
// и тот же ответ 401/unauthenticated: по телу ответа причины неразличимы,
// внутренняя причина остаётся в метриках.
func Authenticate(auth Authenticator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				metrics.AuthFailuresTotal.WithLabelValues("missing_token").Inc()
				apierrors.WriteError(w, r, service.ErrInvalidToken)
				return
			}

			claims, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				metrics.AuthFailuresTotal.WithLabelValues(failureReason(err)).Inc()
				apierrors.WriteError(w, r, service.ErrInvalidToken)
				return
			}

			ctx := context.WithValue(r.Context(), CtxClaims, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFrom достаёт claims аутентифицированного запроса из контекста.
func ClaimsFrom(ctx context.Context) (*models.Claims, bool) {
	claims, ok := ctx.Value(CtxClaims).(*models.Claims)
	return claims, ok
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")

	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) {
		return ""
	}

	return strings.TrimSpace(auth[len(prefix):])
}

func failureReason(err error) string {
	if errors.Is(err, service.ErrTokenExpired) {
		return "token_expired"
	}

	return "token_invalid"
}
