package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/ramonehamilton/proxygen/internal/api/response"
	"github.com/ramonehamilton/proxygen/internal/decklist"
	"github.com/ramonehamilton/proxygen/internal/metrics"
	"github.com/ramonehamilton/proxygen/internal/render"
)

// DecklistField is the form field holding the pasted decklist.
const DecklistField = "decklist"

// DecklistHandler parses decklists and renders proxies.
type DecklistHandler struct {
	catalog       Catalog
	maxTotalCount int
	metrics       *metrics.DecklistMetrics
	logger        *zap.Logger
}

// NewDecklistHandler creates a new DecklistHandler. maxTotalCount <= 0
// accepts decklists of any size.
func NewDecklistHandler(catalog Catalog, maxTotalCount int, m *metrics.DecklistMetrics, logger *zap.Logger) *DecklistHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DecklistHandler{catalog: catalog, maxTotalCount: maxTotalCount, metrics: m, logger: logger}
}

func (h *DecklistHandler) parse(text string) ([]decklist.Entry, error) {
	start := time.Now()
	entries, err := decklist.Parse(h.catalog, text, h.maxTotalCount)
	if h.metrics != nil {
		h.metrics.ObserveDecklist(time.Since(start), decklist.TotalCount(entries), err)
	}
	if err != nil {
		h.logger.Debug("Decklist rejected", zap.Error(err))
	}
	return entries, err
}

// ParseRequest is the body of POST /api/v1/decklists/parse.
type ParseRequest struct {
	Decklist string `json:"decklist"`
}

// Parse resolves a decklist and returns its entries as JSON.
func (h *DecklistHandler) Parse(w http.ResponseWriter, r *http.Request) {
	var req ParseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(w, http.StatusRequestEntityTooLarge, errors.New("request body too large"))
			return
		}
		response.BadRequest(w, fmt.Errorf("invalid request body: %w", err))
		return
	}

	entries, err := h.parse(req.Decklist)
	if err != nil {
		resp := describe(h.catalog, err)
		if resp.Code == http.StatusInternalServerError {
			h.logger.Error("Decklist resolution failed", zap.Error(err))
		}
		response.Detailed(w, resp)
		return
	}

	out := DecklistJSON{Entries: make([]EntryJSON, 0, len(entries))}
	for _, e := range entries {
		out.Entries = append(out.Entries, EntryJSON{Count: e.Count, Card: presentCard(e.Entity)})
	}
	out.Total = decklist.TotalCount(entries)

	response.Success(w, out)
}

// Render accepts the form post from the decklist page and responds with a
// printable HTML page of proxies.
func (h *DecklistHandler) Render(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		h.writeErrorPage(w, status, "The decklist could not be read.", nil)
		return
	}

	entries, err := h.parse(r.PostForm.Get(DecklistField))
	if err != nil {
		resp := describe(h.catalog, err)
		if resp.Code == http.StatusInternalServerError {
			h.logger.Error("Decklist resolution failed", zap.Error(err))
		}
		h.writeErrorPage(w, resp.Code, resp.Message, resp.Suggestions)
		return
	}

	start := time.Now()
	var buf bytes.Buffer
	if err := render.Document(&buf, entries); err != nil {
		h.logger.Error("Render failed", zap.Error(err))
		h.writeErrorPage(w, http.StatusInternalServerError, "internal error", nil)
		return
	}
	if h.metrics != nil {
		h.metrics.RenderLatency.Time(start)
	}

	writeHTML(w, http.StatusOK, buf.Bytes())
}

func (h *DecklistHandler) writeErrorPage(w http.ResponseWriter, status int, message string, suggestions []string) {
	var buf bytes.Buffer
	if err := render.ErrorPage(&buf, message, suggestions); err != nil {
		h.logger.Error("Render error page failed", zap.Error(err))
		http.Error(w, message, status)
		return
	}
	writeHTML(w, status, buf.Bytes())
}

func writeHTML(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
