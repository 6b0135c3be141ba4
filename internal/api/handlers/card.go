package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ramonehamilton/proxygen/internal/api/response"
	"github.com/ramonehamilton/proxygen/internal/decklist"
	"github.com/ramonehamilton/proxygen/internal/metrics"
)

// CardHandler handles card lookup requests.
type CardHandler struct {
	catalog Catalog
	metrics *metrics.DecklistMetrics
}

// NewCardHandler creates a new CardHandler.
func NewCardHandler(catalog Catalog, m *metrics.DecklistMetrics) *CardHandler {
	return &CardHandler{catalog: catalog, metrics: m}
}

// GetCard resolves a single card by name.
func (h *CardHandler) GetCard(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}
	name = decklist.PrimaryName(name)
	if name == "" {
		response.BadRequest(w, errors.New("card name is required"))
		return
	}

	if h.metrics != nil {
		h.metrics.Lookups.Add(1)
	}

	entity, err := h.catalog.Resolve(name)
	if err != nil {
		response.Detailed(w, describe(h.catalog, err))
		return
	}

	response.Success(w, presentCard(entity))
}

// Suggest lists dataset names resembling the q parameter.
func (h *CardHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		response.BadRequest(w, errors.New("query parameter q is required"))
		return
	}

	limit := suggestionCount
	if s := r.URL.Query().Get("limit"); s != "" {
		if l, err := strconv.Atoi(s); err == nil && l > 0 && l <= 50 {
			limit = l
		}
	}

	response.Success(w, h.catalog.Suggest(query, limit))
}
