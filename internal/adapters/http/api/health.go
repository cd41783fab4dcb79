// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/okian/adgenius/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// LivenessMessage is returned by GET /.
const LivenessMessage = "AdGenius Backend is Running!"

type livenessResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// RootHandler serves the liveness payload.
type RootHandler struct{}

// NewRootHandler creates a new root handler.
func NewRootHandler() *RootHandler {
	return &RootHandler{}
}

// HandleRoot handles GET / requests. It never consults upstream.
func (h *RootHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, livenessResponse{Status: "online", Message: LivenessMessage})
}

// MetricsHandler exposes the Prometheus registry.
type MetricsHandler struct {
	handler http.Handler
}

// NewMetricsHandler creates a handler over the service metrics registry.
func NewMetricsHandler() *MetricsHandler {
	return &MetricsHandler{handler: promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{})}
}

// HandleMetrics handles GET /metrics requests.
func (h *MetricsHandler) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	h.handler.ServeHTTP(w, r)
}
