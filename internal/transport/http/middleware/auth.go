package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	apierrors "github.com/pribylovaa/go-calc-service/internal/errors"
	"github.com/pribylovaa/go-calc-service/internal/service"
)

type userIDKey struct{}

// TokenValidator — контракт проверки access-токена, который реализует service.Service.
type TokenValidator interface {
	ValidateAccessToken(ctx context.Context, accessToken string) (uuid.UUID, error)
}

// Authenticate извлекает Bearer-токен из Authorization, валидирует его
// и кладёт ID пользователя в контекст. Запрос без валидного access-токена
// завершается 401 до хендлера.
func Authenticate(v TokenValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				apierrors.WriteError(w, r, service.ErrInvalidToken)
				return
			}

			userID, err := v.ValidateAccessToken(r.Context(), token)
			if err != nil {
				apierrors.WriteError(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey{}, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFrom достаёт ID аутентифицированного пользователя из контекста.
func UserIDFrom(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey{}).(uuid.UUID)
	return id, ok
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")

	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) {
		return ""
	}

	return strings.TrimSpace(auth[len(prefix):])
}
