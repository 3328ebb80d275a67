package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/prodwriter/internal/api"
	apiMiddleware "github.com/phrazzld/prodwriter/internal/api/middleware"
	"github.com/phrazzld/prodwriter/internal/metrics"
	"github.com/phrazzld/prodwriter/internal/web"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// setupRouter creates the router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)
	r.Use(metrics.Middleware)

	descriptionHandler := api.NewDescriptionHandler(app.descriptionService, app.logger)
	webHandler := web.NewHandler(app.descriptionService, app.logger)

	r.Group(func(r chi.Router) {
		// Bounds a request together with all of its retries.
		if secs := app.config.Server.RequestTimeoutSeconds; secs > 0 {
			r.Use(middleware.Timeout(time.Duration(secs) * time.Second))
		}

		r.Get("/", webHandler.Index)
		r.Post("/", webHandler.Submit)

		r.Route("/api", func(r chi.Router) {
			r.Post("/descriptions", descriptionHandler.CreateDescription)
			r.Get("/options", descriptionHandler.GetOptions)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})
	r.Handle("/metrics", promhttp.Handler())

	return r
}
