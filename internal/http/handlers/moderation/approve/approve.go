// Package approve реализует HTTP-обработчик одобрения заявки модератором.
package approve

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/unilocal/unilocal/internal/http/response"
	"github.com/unilocal/unilocal/internal/lib/sl"
	"github.com/unilocal/unilocal/internal/services/moderation"
)

// Handler обрабатывает запросы одобрения заявок.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики одобрения заявки.
type Service interface {
	Approve(ctx context.Context, id string) error
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Одобрить заявку
// @Description Переводит заявку из Pending в Approved; решение терминально
// @Tags Moderation
// @Produce  json
// @Security BearerAuth
// @Param id path string true "Идентификатор заявки"
// @Success 200 {object} response.Response "Заявка одобрена"
// @Failure 404 {object} response.ErrorResponse "Заявка не найдена"
// @Failure 409 {object} response.ErrorResponse "Заявка уже получила решение"
// @Router /moderation/places/{id}/approve [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.moderation.approve"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	if id == "" {
		log.Error("missing place id in url")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("missing place id"))
		return
	}

	if err := h.service.Approve(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, moderation.ErrNotFound):
			log.Error("place not found", slog.String("place_id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("place not found"))
		case errors.Is(err, moderation.ErrNotPending):
			log.Error("place already decided", slog.String("place_id", id))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("place already has a decision"))
		default:
			log.Error("failed to approve place", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not approve place"))
		}
		return
	}

	log.Info("place approved", slog.String("place_id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"message": "place approved",
	}))
}
