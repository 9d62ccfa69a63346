// Package read реализует HTTP-обработчик карточки опубликованного места.
//
// Обычным пользователям видны только одобренные места: заявка в другом
// статусе неотличима от несуществующей.
package read

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
	"github.com/unilocal/unilocal/internal/models"
	"github.com/unilocal/unilocal/internal/services/moderation"
)

// Handler обрабатывает запросы карточки места.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения опубликованного места.
type Service interface {
	GetApprovedPlace(ctx context.Context, id string) (*models.Place, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Карточка опубликованного места
// @Description Возвращает место по идентификатору; неодобренные места недоступны
// @Tags Places
// @Produce  json
// @Security BearerAuth
// @Param id path string true "Идентификатор места"
// @Success 200 {object} response.Response "Данные места"
// @Failure 404 {object} response.ErrorResponse "Место не найдено"
// @Router /places/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.place.read"

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

	place, err := h.service.GetApprovedPlace(r.Context(), id)
	if err != nil {
		if errors.Is(err, moderation.ErrNotFound) {
			log.Error("place not found", slog.String("place_id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("place not found"))
			return
		}
		log.Error("failed to read place", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read place"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"place": place,
	}))
}
