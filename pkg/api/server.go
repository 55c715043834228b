// Package api exposes the codec and the payload vault over HTTP.
package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/njordgeo/njord/pkg/raster"
	"github.com/njordgeo/njord/pkg/storage"
)

// NewRouter builds the full route tree for a server. Split out from
// StartServer so tests can drive it with httptest.
func NewRouter(s *Server, log zerolog.Logger) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(requestLogger(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Prometheus metrics endpoint (unprotected for scraping)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(apiKeyMiddleware(s.config.APIKey, s.metrics))

		r.Get("/health", s.metrics.InstrumentHandler("GET", "/api/v1/health", s.handleHealth))

		r.Post("/geometry/inspect", s.metrics.InstrumentHandler("POST", "/api/v1/geometry/inspect", s.handleInspectGeometry))
		r.Post("/geometry/strip", s.metrics.InstrumentHandler("POST", "/api/v1/geometry/strip", s.handleStripGeometry))
		r.Post("/geometry/inject", s.metrics.InstrumentHandler("POST", "/api/v1/geometry/inject", s.handleInjectGeometry))

		r.Post("/raster/inspect", s.metrics.InstrumentHandler("POST", "/api/v1/raster/inspect", s.handleInspectRaster))

		r.Post("/payloads", s.metrics.InstrumentHandler("POST", "/api/v1/payloads", s.handleCreatePayload))
		r.Get("/payloads/{id}", s.metrics.InstrumentHandler("GET", "/api/v1/payloads/{id}", s.handleGetPayload))
		r.Delete("/payloads/{id}", s.metrics.InstrumentHandler("DELETE", "/api/v1/payloads/{id}", s.handleDeletePayload))
	})

	return r
}

// StartServer starts the HTTP server with all routes configured and blocks
// until it exits.
func StartServer(vault *storage.Vault, decoder *raster.Decoder, config ServerConfig, log zerolog.Logger) error {
	metrics := NewMetrics()
	server := NewServer(vault, decoder, config, metrics)
	router := NewRouter(server, log)

	addr := fmt.Sprintf("%s:%d", config.Bind, config.Port)
	log.Info().Str("addr", addr).Msg("starting njord API server")
	return http.ListenAndServe(addr, router)
}
