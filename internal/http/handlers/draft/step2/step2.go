// Package step2 реализует HTTP-обработчик второго шага мастера подачи:
// адрес, контакты и часы работы.
package step2

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/unilocal/unilocal/internal/http/middlewarectx"
	"github.com/unilocal/unilocal/internal/http/response"
	"github.com/unilocal/unilocal/internal/lib/sl"
	"github.com/unilocal/unilocal/internal/models"
)

// Handler обрабатывает запросы второго шага мастера.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики второго шага.
type Service interface {
	SaveStep2(ctx context.Context, username string, data models.DummyDraftStep2) (*models.PlaceDraft, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Второй шаг мастера подачи
// @Description Сохраняет адрес, телефон, сайт и часы работы; все поля опциональны
// @Tags Draft
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.DummyDraftStep2 true "Контакты и часы работы"
// @Success 200 {object} response.Response "Обновлённый черновик"
// @Router /drafts/step2 [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.draft.step2"

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

	var req models.DummyDraftStep2
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	result, err := h.service.SaveStep2(r.Context(), username, req)
	if err != nil {
		log.Error("failed to save step", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not save draft"))
		return
	}

	log.Info("draft step saved", slog.String("username", username))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"draft": result,
	}))
}
