package serverhttp

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"psutier/internal/config"
	"psutier/internal/middleware"
	"psutier/internal/reftable"
	tierHnd "psutier/internal/tier/handler"
	"psutier/server/http/handlers"
)

func NewRouter(cfg config.Config, logger zerolog.Logger, store *reftable.Store) *chi.Mux {
	r := chi.NewRouter()

	// порядок важен: recover -> requestID -> logging -> metrics -> cors -> limit
	r.Use(middleware.Recover(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(logger))
	r.Use(middleware.Metrics())
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization", middleware.HeaderRequestID},
		ExposedHeaders:   []string{middleware.HeaderRequestID, "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(chimw.RequestSize(cfg.MaxUploadBytes()))

	r.Get("/health", handlers.Health(store))
	r.Handle("/metrics", promhttp.Handler())

	h := tierHnd.New(store, cfg, logger)
	r.Route("/resolve", func(r chi.Router) {
		r.Get("/", h.Resolve)
		r.Post("/", h.Resolve)
		r.Post("/batch", h.Batch)
	})
	r.Post("/explain", h.Explain)
	r.Route("/table", func(r chi.Router) {
		r.Get("/", h.TableStatus)
		r.Post("/reload", h.Reload)
	})

	return r
}
