package handlers

import (
	"net/http"

	"github.com/ramonehamilton/proxygen/internal/api/response"
	"github.com/ramonehamilton/proxygen/internal/metrics"
)

// SystemHandler reports server health and statistics.
type SystemHandler struct {
	catalog Catalog
	metrics *metrics.DecklistMetrics
	version string
}

// NewSystemHandler creates a new SystemHandler.
func NewSystemHandler(catalog Catalog, m *metrics.DecklistMetrics, version string) *SystemHandler {
	return &SystemHandler{catalog: catalog, metrics: m, version: version}
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Cards   int    `json:"cards"`
}

// Health reports that the server is up and how many cards it indexes.
func (h *SystemHandler) Health(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: h.version,
		Cards:   h.catalog.Len(),
	})
}

// Metrics returns decklist processing statistics.
func (h *SystemHandler) Metrics(w http.ResponseWriter, _ *http.Request) {
	if h.metrics == nil {
		response.Success(w, metrics.NewDecklistMetrics().Snapshot())
		return
	}
	response.Success(w, h.metrics.Snapshot())
}
