// Package submit реализует HTTP-обработчик отправки заявки на модерацию.
package submit

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/unilocal/unilocal/internal/http/middlewarectx"
	"github.com/unilocal/unilocal/internal/http/response"
	"github.com/unilocal/unilocal/internal/lib/sl"
	"github.com/unilocal/unilocal/internal/models"
	"github.com/unilocal/unilocal/internal/services/draft"
)

// Handler обрабатывает запросы отправки заявки.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики отправки заявки.
type Service interface {
	Submit(ctx context.Context, username string) (*models.Place, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Отправить заявку на модерацию
// @Description Превращает черновик в заявку со статусом Pending и очищает черновик
// @Tags Draft
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response "Созданная заявка"
// @Failure 409 {object} response.ErrorResponse "Черновик не на шаге просмотра"
// @Failure 422 {object} response.ErrorResponse "Черновик не заполнен"
// @Router /drafts/submit [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.draft.submit"

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

	place, err := h.service.Submit(r.Context(), username)
	if err != nil {
		switch {
		case errors.Is(err, draft.ErrNotReady):
			log.Error("draft is not on the review step")
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("draft is not on the review step"))
		case errors.Is(err, draft.ErrIncompleteStep):
			log.Error("draft is incomplete")
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("name, category and description are required"))
		default:
			log.Error("failed to submit place", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not submit place"))
		}
		return
	}

	log.Info("place submitted", slog.String("place_id", place.ID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"place": place,
	}))
}
