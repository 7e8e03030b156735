// Package httptransport assembles the public HTTP surface: shared middleware,
// feature handlers and the platform endpoints.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sherialink/internal/platform/config"
	"sherialink/internal/platform/metrics"
	"sherialink/internal/platform/middleware"
	"sherialink/pkg/platform/httputil"
)

// Registrar is implemented by every feature handler.
type Registrar interface {
	Register(r chi.Router)
}

// HealthCheck probes an optional dependency. A nil check reports "disabled".
type HealthCheck func(ctx context.Context) error

// Deps is everything the router needs from main.
type Deps struct {
	Logger         *slog.Logger
	Metrics        *metrics.Metrics
	Gatherer       prometheus.Gatherer
	RequestTimeout time.Duration
	Display        config.Display
	Environment    string
	CacheHealth    HealthCheck
	Handlers       []Registrar
}

// NewRouter wires the middleware chain, then the feature and platform routes.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(d.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.ClientMetadata)
	r.Use(middleware.RequestTime)
	r.Use(middleware.Logger(d.Logger))
	r.Use(middleware.Timeout(d.RequestTimeout))
	r.Use(middleware.LatencyMiddleware(d.Metrics))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusNotFound, httputil.ErrorResponse{Error: "not_found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusMethodNotAllowed, httputil.ErrorResponse{Error: "method_not_allowed"})
	})

	// /metrics keeps the Prometheus exposition content type.
	gatherer := d.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Group(func(r chi.Router) {
		r.Use(middleware.ContentTypeJSON)

		platform := &platformHandler{
			display:     d.Display,
			environment: d.Environment,
			cacheHealth: d.CacheHealth,
		}
		platform.Register(r)

		for _, h := range d.Handlers {
			h.Register(r)
		}
	})

	return r
}
