package httptransport

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"sherialink/internal/platform/config"
	"sherialink/pkg/platform/httputil"
)

const healthCheckTimeout = 2 * time.Second

type platformHandler struct {
	display     config.Display
	environment string
	cacheHealth HealthCheck
}

func (h *platformHandler) Register(r chi.Router) {
	r.Get("/healthz", h.handleHealth)
	r.Get("/config", h.handleConfig)
}

type healthResponse struct {
	Status string `json:"status"`
	Cache  string `json:"cache"`
}

// configResponse is the public display metadata. It never carries credentials.
type configResponse struct {
	config.Display
	GatewayEnvironment string `json:"gatewayEnvironment"`
}

// handleHealth is a liveness probe. The dashboard cache is optional, so an
// unreachable cache is reported without failing the probe.
func (h *platformHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok", Cache: "disabled"}
	if h.cacheHealth != nil {
		ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
		defer cancel()
		if err := h.cacheHealth(ctx); err != nil {
			resp.Cache = "unavailable"
		} else {
			resp.Cache = "ok"
		}
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *platformHandler) handleConfig(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, configResponse{
		Display:            h.display,
		GatewayEnvironment: h.environment,
	})
}
