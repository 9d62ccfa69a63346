// Package read реализует HTTP-обработчик получения текущего черновика
// заявки на место.
package read

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

// Handler обрабатывает запросы на чтение черновика.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения черновика.
type Service interface {
	Get(ctx context.Context, username string) (*models.PlaceDraft, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Текущий черновик заявки
// @Description Возвращает черновик пользователя; при его отсутствии — пустой черновик на первом шаге
// @Tags Draft
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response "Черновик"
// @Router /drafts [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.draft.read"

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

	draft, err := h.service.Get(r.Context(), username)
	if err != nil {
		log.Error("failed to read draft", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read draft"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"draft": draft,
	}))
}
