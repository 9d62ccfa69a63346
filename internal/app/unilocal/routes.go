// Package unilocal собирает HTTP-приложение: маршруты, сервисы
// и жизненный цикл сервера.
package unilocal

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/unilocal/unilocal/internal/http/handlers/auth/federated"
	"github.com/unilocal/unilocal/internal/http/handlers/auth/forgotpassword"
	"github.com/unilocal/unilocal/internal/http/handlers/auth/login"
	"github.com/unilocal/unilocal/internal/http/handlers/auth/logout"
	"github.com/unilocal/unilocal/internal/http/handlers/auth/register"
	draftnext "github.com/unilocal/unilocal/internal/http/handlers/draft/next"
	draftphotos "github.com/unilocal/unilocal/internal/http/handlers/draft/photos"
	draftprev "github.com/unilocal/unilocal/internal/http/handlers/draft/prev"
	draftread "github.com/unilocal/unilocal/internal/http/handlers/draft/read"
	draftstep1 "github.com/unilocal/unilocal/internal/http/handlers/draft/step1"
	draftstep2 "github.com/unilocal/unilocal/internal/http/handlers/draft/step2"
	draftsubmit "github.com/unilocal/unilocal/internal/http/handlers/draft/submit"
	"github.com/unilocal/unilocal/internal/http/handlers/health"
	modapprove "github.com/unilocal/unilocal/internal/http/handlers/moderation/approve"
	modlist "github.com/unilocal/unilocal/internal/http/handlers/moderation/list"
	modreject "github.com/unilocal/unilocal/internal/http/handlers/moderation/reject"
	modstats "github.com/unilocal/unilocal/internal/http/handlers/moderation/stats"
	placeread "github.com/unilocal/unilocal/internal/http/handlers/place/read"
	profileread "github.com/unilocal/unilocal/internal/http/handlers/profile/read"
	sessionnavigate "github.com/unilocal/unilocal/internal/http/handlers/sessionstate/navigate"
	sessionread "github.com/unilocal/unilocal/internal/http/handlers/sessionstate/read"
	"github.com/unilocal/unilocal/internal/http/middlewarectx"
	"github.com/unilocal/unilocal/internal/lib/jwt"
	authservice "github.com/unilocal/unilocal/internal/services/auth"
	draftservice "github.com/unilocal/unilocal/internal/services/draft"
	moderationservice "github.com/unilocal/unilocal/internal/services/moderation"
	sessionservice "github.com/unilocal/unilocal/internal/services/session"
	"github.com/unilocal/unilocal/internal/storage/repository"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, jwtMaker jwt.Maker,
	authService *authservice.AuthService, sessionService *sessionservice.SessionService,
	draftService *draftservice.DraftService, moderationService *moderationservice.ModerationService,
	storage *repository.Storage) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Лимит действует и на открытые точки входа (register, login)
		r.Use(middlewarectx.RateLimitMiddleware(logger))

		// Открытые конечные точки
		r.Post("/register", register.New(logger, authService).ServeHTTP)
		r.Post("/login", login.New(logger, authService, sessionService).ServeHTTP)
		r.Post("/login/federated", federated.New(logger, authService, sessionService).ServeHTTP)
		r.Post("/forgot-password", forgotpassword.New(logger, authService).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(jwtMaker, logger))

			r.Post("/logout", logout.New(logger, sessionService).ServeHTTP)
			r.Get("/session", sessionread.New(logger, sessionService).ServeHTTP)
			r.Post("/session/navigate", sessionnavigate.New(logger, sessionService).ServeHTTP)

			r.Get("/profile", profileread.New(logger, storage).ServeHTTP)
			r.Get("/places/{id}", placeread.New(logger, moderationService).ServeHTTP)

			r.Get("/drafts", draftread.New(logger, draftService).ServeHTTP)
			r.Put("/drafts/step1", draftstep1.New(logger, draftService).ServeHTTP)
			r.Put("/drafts/step2", draftstep2.New(logger, draftService).ServeHTTP)
			r.Post("/drafts/photos", draftphotos.New(logger, draftService).ServeHTTP)
			r.Post("/drafts/next", draftnext.New(logger, draftService).ServeHTTP)
			r.Post("/drafts/prev", draftprev.New(logger, draftService).ServeHTTP)
			r.Post("/drafts/submit", draftsubmit.New(logger, draftService).ServeHTTP)

			// Группа модератора
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.ModeratorOnlyMiddleware(logger))
				r.Get("/moderation/places", modlist.New(logger, moderationService).ServeHTTP)
				r.Post("/moderation/places/{id}/approve", modapprove.New(logger, moderationService).ServeHTTP)
				r.Post("/moderation/places/{id}/reject", modreject.New(logger, moderationService).ServeHTTP)
				r.Get("/moderation/stats", modstats.New(logger, moderationService).ServeHTTP)
			})
		})

		r.Get("/health", health.New(logger).ServeHTTP)
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
