// Package router monta as rotas HTTP da aplicação.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/JeanGrijp/credibility-gateway/internal/adapters/http/handlers"
	httpMiddleware "github.com/JeanGrijp/credibility-gateway/internal/adapters/http/middleware"
	"github.com/JeanGrijp/credibility-gateway/internal/observability/metrics"
)

type Deps struct {
	Logger   *zap.Logger
	Metrics  *metrics.Metrics
	Admit    httpMiddleware.RateLimiterOptions
	Analyze  http.Handler
	Exporter http.Handler
}

func New(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(httpMiddleware.RequestLogger(d.Logger, d.Metrics))
	r.Use(httpMiddleware.Recoverer)
	r.Use(httpMiddleware.CORS)
	r.NotFound(handlers.NotFoundHandler)
	r.MethodNotAllowed(handlers.MethodNotAllowedHandler)

	r.Get("/healthz", handlers.HealthHandler)
	if d.Exporter != nil {
		r.Method(http.MethodGet, "/metrics", d.Exporter)
	}

	r.Options("/analyze", handlers.PreflightHandler)
	r.With(httpMiddleware.NewRateLimiterMiddleware(d.Admit)).Method(http.MethodPost, "/analyze", d.Analyze)

	return r
}
