package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/remedyhq/RMT-SchedulingService/internal/api/handlers"
)

type contextKey string

const (
	userIDKey  contextKey = "userID"
	isStaffKey contextKey = "isStaff"
)

const (
	headerUserID   = "X-User-ID"
	headerUserRole = "X-User-Role"
	roleStaff      = "staff"
)

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// Auth извлекает идентификатор пользователя из заголовка X-User-ID и кладёт
// его в контекст запроса. Роль staff берётся из X-User-Role. Запросы без
// валидного заголовка отклоняются с 401.
func Auth(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rawID := r.Header.Get(headerUserID)
			userID, err := strconv.ParseInt(rawID, 10, 64)
			if err != nil || userID <= 0 {
				logger.Warn("%s %s - missing or invalid %s header", r.Method, r.URL.Path, headerUserID)
				handlers.RespondError(w, http.StatusUnauthorized, handlers.CodeAccessDenied,
					"требуется аутентификация")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			ctx = context.WithValue(ctx, isStaffKey, r.Header.Get(headerUserRole) == roleStaff)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID возвращает идентификатор пользователя из контекста запроса
func UserID(ctx context.Context) int64 {
	id, _ := ctx.Value(userIDKey).(int64)
	return id
}

// IsStaff возвращает true, если запрос пришёл от сотрудника клиники
func IsStaff(ctx context.Context) bool {
	isStaff, _ := ctx.Value(isStaffKey).(bool)
	return isStaff
}
