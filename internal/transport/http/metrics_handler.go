package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"curypulse/internal/services"
)

// MetricsHandler exposes the Prometheus scrape endpoint and system stats
type MetricsHandler struct {
	prometheus http.Handler
	health     *services.HealthService
}

// NewMetricsHandler creates a new metrics handler. The prometheus handler
// may be nil when metrics are disabled.
func NewMetricsHandler(prometheus http.Handler, health *services.HealthService) *MetricsHandler {
	return &MetricsHandler{
		prometheus: prometheus,
		health:     health,
	}
}

// Routes sets up the metrics routes
func (h *MetricsHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Scrape)
	r.Get("/stats", h.GetStats)
	return r
}

// Scrape serves the Prometheus exposition endpoint
func (h *MetricsHandler) Scrape(w http.ResponseWriter, r *http.Request) {
	if h.prometheus == nil {
		http.Error(w, "metrics disabled", http.StatusNotFound)
		return
	}
	h.prometheus.ServeHTTP(w, r)
}

// GetStats returns system statistics as JSON
func (h *MetricsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.health.SystemStats(r.Context())
	if err != nil {
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, map[string]interface{}{"error": err.Error()})
		return
	}
	render.JSON(w, r, stats)
}
