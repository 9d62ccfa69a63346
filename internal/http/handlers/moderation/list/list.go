// Package list реализует HTTP-обработчик списка заявок для модератора.
//
// Без параметра status возвращаются все заявки; с параметром — только
// заявки в заданном статусе, новые первыми.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/unilocal/unilocal/internal/http/response"
	"github.com/unilocal/unilocal/internal/lib/sl"
	"github.com/unilocal/unilocal/internal/models"
)

// Handler обрабатывает запросы списка заявок.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списков модерации.
type Service interface {
	ListByStatus(ctx context.Context, status models.PlaceStatus) ([]*models.Place, error)
	ListAll(ctx context.Context) ([]*models.Place, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список заявок на модерацию
// @Description Возвращает заявки, новые первыми; параметр status фильтрует по PENDING, APPROVED или REJECTED
// @Tags Moderation
// @Produce  json
// @Security BearerAuth
// @Param status query string false "Фильтр по статусу"
// @Success 200 {object} response.Response "Список заявок"
// @Failure 400 {object} response.ErrorResponse "Неизвестный статус"
// @Failure 403 {object} response.ErrorResponse "Требуется роль модератора"
// @Router /moderation/places [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.moderation.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var (
		places []*models.Place
		err    error
	)
	rawStatus := r.URL.Query().Get("status")
	if rawStatus == "" {
		places, err = h.service.ListAll(r.Context())
	} else {
		status := models.PlaceStatus(strings.ToUpper(rawStatus))
		if !status.Valid() {
			log.Error("unknown status filter", slog.String("status", rawStatus))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("unknown status filter"))
			return
		}
		places, err = h.service.ListByStatus(r.Context(), status)
	}
	if err != nil {
		log.Error("failed to list places", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list places"))
		return
	}

	log.Info("places listed", slog.Int("count", len(places)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"places": places,
	}))
}
