package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/salon-nv/NV-BookingService/internal/api/handlers"
)

type contextKey string

const userIDKey contextKey = "userID"

// UserIDHeader заголовок с идентификатором пользователя
// Аутентификацию выполняет API gateway, сервис доверяет заголовку
const UserIDHeader = "X-User-ID"

const msgMissingUserID = "отсутствует заголовок X-User-ID"

// Auth извлекает идентификатор пользователя из заголовка и кладет его в контекст
// Запросы без валидного заголовка отклоняются с 401
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userIDStr := r.Header.Get(UserIDHeader)
		if userIDStr == "" {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		userID, err := strconv.ParseInt(userIDStr, 10, 64)
		if err != nil {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID возвращает идентификатор пользователя из контекста
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}
