// Package next реализует HTTP-обработчик перехода на следующий шаг мастера.
package next

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

// Handler обрабатывает запросы перехода на следующий шаг.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики перехода вперёд.
type Service interface {
	Next(ctx context.Context, username string) (*models.PlaceDraft, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Следующий шаг мастера
// @Description Переход с первого шага требует заполненных названия, категории и описания
// @Tags Draft
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response "Обновлённый черновик"
// @Failure 422 {object} response.ErrorResponse "Первый шаг не заполнен"
// @Router /drafts/next [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.draft.next"

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

	result, err := h.service.Next(r.Context(), username)
	if err != nil {
		if errors.Is(err, draft.ErrIncompleteStep) {
			log.Error("incomplete step", slog.String("username", username))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("name, category and description are required"))
			return
		}
		log.Error("failed to advance draft", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not advance draft"))
		return
	}

	log.Info("draft advanced", slog.Int("step", result.Step))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"draft": result,
	}))
}
