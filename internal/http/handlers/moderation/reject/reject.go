// Package reject реализует HTTP-обработчик отклонения заявки модератором.
package reject

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

// Handler обрабатывает запросы отклонения заявок.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики отклонения заявки.
type Service interface {
	Reject(ctx context.Context, id string) error
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Отклонить заявку
// @Description Переводит заявку из Pending в Rejected; решение терминально
// @Tags Moderation
// @Produce  json
// @Security BearerAuth
// @Param id path string true "Идентификатор заявки"
// @Success 200 {object} response.Response "Заявка отклонена"
// @Failure 404 {object} response.ErrorResponse "Заявка не найдена"
// @Failure 409 {object} response.ErrorResponse "Заявка уже получила решение"
// @Router /moderation/places/{id}/reject [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.moderation.reject"

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

	if err := h.service.Reject(r.Context(), id); err != nil {
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
			log.Error("failed to reject place", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not reject place"))
		}
		return
	}

	log.Info("place rejected", slog.String("place_id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"message": "place rejected",
	}))
}
