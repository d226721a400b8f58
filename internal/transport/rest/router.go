package rest

import (
	"log/slog"

	"github.com/frahmantamala/employee-admin/internal/console"
	"github.com/frahmantamala/employee-admin/internal/session"
	"github.com/frahmantamala/employee-admin/internal/transport/middleware"
	"github.com/frahmantamala/employee-admin/internal/transport/swagger"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

type SecurityOptions struct {
	ContentSecurityPolicy string
}

func RegisterAllRoutes(router *chi.Mux, healthHandler *HealthHandler, sessionHandler *session.Handler, consoleHandler *console.Handler, security SecurityOptions, logger *slog.Logger) {
	// Apply global middleware
	router.Use(middleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.SecurityHeaders(middleware.SecurityHeadersConfig{}))

	// Swagger UI boots from an inline script the console policy would block
	router.Group(func(r chi.Router) {
		r.Use(middleware.SecurityHeaders(middleware.SecurityHeadersConfig{
			ContentSecurityPolicy: middleware.SwaggerCSP(),
		}))
		r.Handle("/openapi.yml", swagger.SpecHandler())
		r.Handle("/swagger/*", swagger.Handler())
	})

	router.Group(func(app chi.Router) {
		app.Use(middleware.SecurityHeaders(middleware.SecurityHeadersConfig{
			ContentSecurityPolicy: security.ContentSecurityPolicy,
		}))

		app.Route("/api/v1", func(r chi.Router) {
			r.Get("/health", healthHandler.healthCheckHandler)
			r.Get("/ping", healthHandler.pingHandler)
		})

		// Landing pages and the login hand-off
		app.Get("/", consoleHandler.Index)
		app.Get("/login", consoleHandler.Index)
		app.Post("/session", sessionHandler.Open)
		app.Delete("/session", sessionHandler.Close)
		app.Post("/logout", sessionHandler.Close)

		// Any logged-in user
		app.Group(func(r chi.Router) {
			r.Use(sessionHandler.RequireSession)
			r.Get("/me", consoleHandler.Self)
		})

		// Admin console
		app.Group(func(r chi.Router) {
			r.Use(sessionHandler.RequireAdmin)

			r.Route("/employees", func(er chi.Router) {
				er.Get("/", consoleHandler.Employees)
				er.Post("/", consoleHandler.Submit)
				er.Post("/form/show", consoleHandler.ShowForm)
				er.Post("/form/cancel", consoleHandler.CancelForm)
				er.Post("/page/prev", consoleHandler.PrevPage)
				er.Post("/page/next", consoleHandler.NextPage)
				er.Get("/{id}", consoleHandler.Detail)
			})
		})
	})
}
