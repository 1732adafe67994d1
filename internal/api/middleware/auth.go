package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/devbada/sisters-salon-reservation-sub001/internal/api/handlers"
)

// AdminIDHeader заголовок с идентификатором администратора
const AdminIDHeader = "X-Admin-ID"

const msgMissingAdminID = "отсутствует заголовок X-Admin-ID"

type contextKey string

const (
	actorKey     contextKey = "actor"
	requestIDKey contextKey = "request_id"
)

// Auth требует заголовок X-Admin-ID и кладет его в контекст как автора изменений
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor := strings.TrimSpace(r.Header.Get(AdminIDHeader))
		if actor == "" {
			handlers.RespondUnauthorized(w, msgMissingAdminID)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
	})
}

// WithActor кладет автора изменений в контекст
func WithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// GetActor извлекает автора изменений из контекста
func GetActor(ctx context.Context) (string, bool) {
	actor, ok := ctx.Value(actorKey).(string)
	return actor, ok && actor != ""
}
