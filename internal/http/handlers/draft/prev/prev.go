// Package prev реализует HTTP-обработчик возврата на предыдущий шаг мастера.
package prev

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/unilocal/unilocal/internal/http/middlewarectx"
	"github.com/unilocal/unilocal/internal/http/response"
	"github.com/unilocal/unilocal/internal/lib/sl"
	"github.com/unilocal/unilocal/internal/models"
)

// Handler обрабатывает запросы возврата на предыдущий шаг.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики возврата назад.
type Service interface {
	Prev(ctx context.Context, username string) (*models.PlaceDraft, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Предыдущий шаг мастера
// @Description Возвращает черновик на предыдущий шаг, сохраняя введённые данные
// @Tags Draft
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response "Обновлённый черновик"
// @Router /drafts/prev [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.draft.prev"

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

	result, err := h.service.Prev(r.Context(), username)
	if err != nil {
		log.Error("failed to step back", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not step back"))
		return
	}

	log.Info("draft stepped back", slog.Int("step", result.Step))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"draft": result,
	}))
}
