// Package logout реализует HTTP-обработчик выхода из системы.
package logout

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/unilocal/unilocal/internal/http/middlewarectx"
	"github.com/unilocal/unilocal/internal/http/response"
	"github.com/unilocal/unilocal/internal/lib/sl"
)

// Handler обрабатывает HTTP-запросы выхода из системы.
type Handler struct {
	log      *slog.Logger
	sessions SessionService
}

// SessionService удаляет навигационное состояние пользователя.
type SessionService interface {
	End(ctx context.Context, username string) error
}

// New создает новый экземпляр Handler с заданным логгером и сервисом.
func New(log *slog.Logger, sessions SessionService) *Handler {
	return &Handler{log: log, sessions: sessions}
}

// ServeHTTP godoc
// @Summary Выход из системы
// @Description Удаляет навигационное состояние; токен перестает продлеваться на клиенте
// @Tags Auth
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response "Выход выполнен"
// @Failure 401 {object} response.ErrorResponse "Отсутствует или невалиден токен"
// @Router /logout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	username, ok := r.Context().Value(middlewarectx.User).(string)
	if !ok || username == "" {
		log.Error("username missing in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("user identification missing"))
		return
	}

	if err := h.sessions.End(r.Context(), username); err != nil {
		log.Error("failed to end session", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to end session"))
		return
	}

	log.Info("logout success", slog.String("username", username))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"message": "logged out",
	}))
}
