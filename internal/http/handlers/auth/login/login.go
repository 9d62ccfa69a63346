// Package login реализует HTTP-обработчик входа по email и паролю.
package login

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/unilocal/unilocal/internal/http/response"
	"github.com/unilocal/unilocal/internal/lib/authkind"
	"github.com/unilocal/unilocal/internal/lib/sl"
	"github.com/unilocal/unilocal/internal/models"
	"github.com/unilocal/unilocal/internal/services/session"
)

// Request — входные данные для входа
type Request struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Handler обрабатывает HTTP-запросы входа пользователей.
type Handler struct {
	log      *slog.Logger
	service  Service
	sessions SessionService
	validate *validator.Validate
}

// Service определяет методы бизнес-логики для входа пользователя.
type Service interface {
	Login(ctx context.Context, email, password string) (*models.Session, error)
}

// SessionService инициализирует навигационное состояние после входа.
type SessionService interface {
	Start(ctx context.Context, username string, isModerator bool) (*session.State, error)
}

// New создает новый экземпляр Handler с заданным логгером и сервисами.
func New(log *slog.Logger, service Service, sessions SessionService) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		sessions: sessions,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Вход по email и паролю
// @Description Проверяет учётные данные и возвращает сессию с токеном и стартовым экраном
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Учётные данные"
// @Success 200 {object} response.Response "Сессия с токеном, профилем и экраном"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Неверные учётные данные"
// @Router /login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

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

	sess, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		kind := authkind.KindOf(err)
		log.Error("login failed", slog.String("kind", string(kind)), sl.Err(err))
		w.WriteHeader(kind.HTTPStatus())
		render.JSON(w, r, response.ErrorWithKind(kind.Message(), string(kind)))
		return
	}

	state, err := h.sessions.Start(r.Context(), sess.Profile.Username, sess.IsModerator)
	if err != nil {
		log.Error("failed to start session state", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to start session"))
		return
	}

	log.Info("login success", slog.String("username", sess.Profile.Username))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"session": sess,
		"state":   state,
	}))
}
