// Package step1 реализует HTTP-обработчик первого шага мастера подачи:
// название, категория и описание места.
package step1

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/unilocal/unilocal/internal/http/middlewarectx"
	"github.com/unilocal/unilocal/internal/http/response"
	"github.com/unilocal/unilocal/internal/lib/sl"
	"github.com/unilocal/unilocal/internal/models"
	"github.com/unilocal/unilocal/internal/services/draft"
)

// Handler обрабатывает запросы первого шага мастера.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики первого шага.
type Service interface {
	SaveStep1(ctx context.Context, username string, data models.DummyDraftStep1) (*models.PlaceDraft, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Первый шаг мастера подачи
// @Description Сохраняет название, категорию и описание места в черновик
// @Tags Draft
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.DummyDraftStep1 true "Основные данные места"
// @Success 200 {object} response.Response "Обновлённый черновик"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации или неизвестная категория"
// @Router /drafts/step1 [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.draft.step1"

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

	var req models.DummyDraftStep1
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	result, err := h.service.SaveStep1(r.Context(), username, req)
	if err != nil {
		if errors.Is(err, draft.ErrUnknownCategory) {
			log.Error("unknown category", slog.String("category", req.Category))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("unknown place category"))
			return
		}
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
