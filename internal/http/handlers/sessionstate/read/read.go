// Package read реализует HTTP-обработчик получения текущего навигационного
// состояния пользователя.
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
	"github.com/unilocal/unilocal/internal/services/session"
)

// Handler обрабатывает запросы на чтение навигационного состояния.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения состояния.
type Service interface {
	Current(ctx context.Context, username string) (*session.State, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Текущее навигационное состояние
// @Description Возвращает сохранённый экран пользователя; отсутствующее состояние нормализуется на экран входа
// @Tags Session
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response "Текущее состояние"
// @Router /session [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.sessionstate.read"

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

	state, err := h.service.Current(r.Context(), username)
	if err != nil {
		log.Error("failed to read session state", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read session state"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"state": state,
	}))
}
