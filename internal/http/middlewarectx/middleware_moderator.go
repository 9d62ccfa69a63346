package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/unilocal/unilocal/internal/http/response"
)

// ModeratorOnlyMiddleware пропускает запрос только при роли moderator
// в контексте. Остальные получают HTTP 403 Forbidden.
func ModeratorOnlyMiddleware(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := r.Context().Value(Role).(string)
			if !ok || role != "moderator" {
				log.Warn("moderation access denied", slog.String("role", role))
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("moderator role required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
