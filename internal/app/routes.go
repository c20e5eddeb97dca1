// Package app предоставляет маршруты приложения.
package app

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/renzmontano/grade-tracker/internal/http-server/handlers/health"
	"github.com/renzmontano/grade-tracker/internal/http-server/handlers/login"
	"github.com/renzmontano/grade-tracker/internal/http-server/handlers/logout"
	"github.com/renzmontano/grade-tracker/internal/http-server/handlers/register"
	"github.com/renzmontano/grade-tracker/internal/http-server/handlers/semestercreate"
	"github.com/renzmontano/grade-tracker/internal/http-server/handlers/semesterlist"
	"github.com/renzmontano/grade-tracker/internal/http-server/handlers/semesterremove"
	"github.com/renzmontano/grade-tracker/internal/http-server/handlers/subjectcreate"
	"github.com/renzmontano/grade-tracker/internal/http-server/handlers/subjectread"
	"github.com/renzmontano/grade-tracker/internal/http-server/handlers/subjectremove"
	"github.com/renzmontano/grade-tracker/internal/http-server/handlers/subjectupdate"
	"github.com/renzmontano/grade-tracker/internal/http-server/handlers/summary"
	"github.com/renzmontano/grade-tracker/internal/http-server/mware"
	authservice "github.com/renzmontano/grade-tracker/internal/services/auth"
	ledgerservice "github.com/renzmontano/grade-tracker/internal/services/ledger"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, authService *authservice.Service, ledgerService *ledgerservice.Service) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, authService).ServeHTTP)
		r.Post("/login", login.New(logger, authService).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(mware.JWTMiddleware(authService, logger))
			r.Use(mware.RateLimitMiddleware(logger))
			r.Post("/logout", logout.New(logger, authService).ServeHTTP)
			r.Post("/semesters", semestercreate.New(logger, ledgerService).ServeHTTP)
			r.Get("/semesters", semesterlist.New(logger, ledgerService).ServeHTTP)
			r.Delete("/semesters/{id}", semesterremove.New(logger, ledgerService).ServeHTTP)
			r.Post("/subjects", subjectcreate.New(logger, ledgerService).ServeHTTP)
			r.Get("/subjects/{id}", subjectread.New(logger, ledgerService).ServeHTTP)
			r.Put("/subjects/{id}", subjectupdate.New(logger, ledgerService).ServeHTTP)
			r.Delete("/subjects/{id}", subjectremove.New(logger, ledgerService).ServeHTTP)
			r.Get("/summary", summary.New(logger, ledgerService).ServeHTTP)
		})
	})

	r.Get("/health", health.New(logger).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
