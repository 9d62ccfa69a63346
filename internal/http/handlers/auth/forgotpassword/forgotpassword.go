// Package forgotpassword реализует HTTP-обработчик запроса восстановления пароля.
package forgotpassword

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
)

// Request — входные данные запроса восстановления
type Request struct {
	Email string `json:"email" validate:"required,email"`
}

// Handler обрабатывает HTTP-запросы восстановления пароля.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service определяет методы бизнес-логики восстановления пароля.
type Service interface {
	SendPasswordReset(ctx context.Context, email string) error
}

// New создает новый экземпляр Handler с заданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Запрос восстановления пароля
// @Description Создает токен восстановления и ставит письмо в очередь отправки
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Email учётной записи"
// @Success 200 {object} response.Response "Письмо поставлено в очередь"
// @Failure 404 {object} response.ErrorResponse "Учётная запись не найдена"
// @Router /forgot-password [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.forgotpassword"

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

	if err := h.service.SendPasswordReset(r.Context(), req.Email); err != nil {
		kind := authkind.KindOf(err)
		log.Error("password reset failed", slog.String("kind", string(kind)), sl.Err(err))
		w.WriteHeader(kind.HTTPStatus())
		render.JSON(w, r, response.ErrorWithKind(kind.Message(), string(kind)))
		return
	}

	log.Info("password reset email queued")
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"message": "password reset email queued",
	}))
}
