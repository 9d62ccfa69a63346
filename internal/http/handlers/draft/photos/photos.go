// Package photos реализует HTTP-обработчик добавления фотографий
// в черновик заявки.
package photos

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/unilocal/unilocal/internal/http/middlewarectx"
	"github.com/unilocal/unilocal/internal/http/response"
	"github.com/unilocal/unilocal/internal/lib/sl"
	"github.com/unilocal/unilocal/internal/models"
)

// Request — входные данные добавления фотографий
type Request struct {
	Photos []string `json:"photos" validate:"required,min=1"`
}

// Handler обрабатывает запросы добавления фотографий.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики добавления фотографий.
type Service interface {
	AddPhotos(ctx context.Context, username string, photos []string) (*models.PlaceDraft, error)
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
// @Summary Добавить фотографии в черновик
// @Description Добавляет фотографии к заявке; сверх лимита в шесть штук добавление молча усекается
// @Tags Draft
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body Request true "Ссылки на фотографии"
// @Success 200 {object} response.Response "Обновлённый черновик"
// @Router /drafts/photos [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.draft.photos"

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

	var req Request
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

	result, err := h.service.AddPhotos(r.Context(), username, req.Photos)
	if err != nil {
		log.Error("failed to add photos", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not add photos"))
		return
	}

	log.Info("photos added", slog.Int("total", len(result.Photos)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"draft": result,
	}))
}
