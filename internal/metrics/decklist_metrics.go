package metrics

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ramonehamilton/proxygen/internal/cards"
	"github.com/ramonehamilton/proxygen/internal/decklist"
)

// FailureKind classifies a rejected decklist.
type FailureKind string

const (
	FailureParse        FailureKind = "parse"
	FailureTooManyCards FailureKind = "too_many_cards"
	FailureInvalidName  FailureKind = "invalid_name"
	FailureMalformed    FailureKind = "malformed_card"
	FailureInternal     FailureKind = "internal"
)

// Classify maps a decklist or resolution error to its FailureKind.
func Classify(err error) FailureKind {
	switch {
	case errors.Is(err, decklist.ErrDecklistParse):
		return FailureParse
	case errors.Is(err, decklist.ErrTooManyCards):
		return FailureTooManyCards
	case errors.Is(err, cards.ErrInvalidCardName):
		return FailureInvalidName
	case errors.Is(err, cards.ErrMulticardNoNames), errors.Is(err, cards.ErrMulticardMalformedNames):
		return FailureMalformed
	}
	return FailureInternal
}

// DecklistMetrics tracks decklist processing for the lifetime of a server.
type DecklistMetrics struct {
	ParseLatency  *Histogram
	RenderLatency *Histogram

	Requests      atomic.Uint64
	CardsRendered atomic.Uint64
	Lookups       atomic.Uint64

	mu        sync.RWMutex
	failures  map[FailureKind]uint64
	startTime time.Time
}

// NewDecklistMetrics creates a new metrics collector.
func NewDecklistMetrics() *DecklistMetrics {
	return &DecklistMetrics{
		ParseLatency:  NewHistogram(DefaultSampleSize),
		RenderLatency: NewHistogram(DefaultSampleSize),
		failures:      make(map[FailureKind]uint64),
		startTime:     time.Now(),
	}
}

// ObserveDecklist records one parse-and-resolve attempt. err is nil on
// success, in which case total is the card count of the decklist.
func (m *DecklistMetrics) ObserveDecklist(d time.Duration, total int, err error) {
	m.Requests.Add(1)
	m.ParseLatency.Record(d)

	if err != nil {
		m.RecordFailure(Classify(err))
		return
	}
	m.CardsRendered.Add(uint64(total))
}

// RecordFailure counts a failure of the given kind.
func (m *DecklistMetrics) RecordFailure(kind FailureKind) {
	m.mu.Lock()
	m.failures[kind]++
	m.mu.Unlock()
}

// Failures returns the count recorded for kind.
func (m *DecklistMetrics) Failures(kind FailureKind) uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.failures[kind]
}

// Stats is a point-in-time view of DecklistMetrics.
type Stats struct {
	ParseLatency  LatencyStats           `json:"parse_latency"`
	RenderLatency LatencyStats           `json:"render_latency"`
	Requests      uint64                 `json:"requests"`
	CardsRendered uint64                 `json:"cards_rendered"`
	Lookups       uint64                 `json:"lookups"`
	Failures      map[FailureKind]uint64 `json:"failures"`
	SuccessRate   float64                `json:"success_rate"` // percentage
	Uptime        string                 `json:"uptime"`
}

// Snapshot returns the current statistics.
func (m *DecklistMetrics) Snapshot() *Stats {
	m.mu.RLock()
	failures := make(map[FailureKind]uint64, len(m.failures))
	var failed uint64
	for k, v := range m.failures {
		failures[k] = v
		failed += v
	}
	start := m.startTime
	m.mu.RUnlock()

	requests := m.Requests.Load()
	successRate := 0.0
	if requests > 0 && failed <= requests {
		successRate = float64(requests-failed) / float64(requests) * 100
	}

	return &Stats{
		ParseLatency:  m.ParseLatency.Stats(),
		RenderLatency: m.RenderLatency.Stats(),
		Requests:      requests,
		CardsRendered: m.CardsRendered.Load(),
		Lookups:       m.Lookups.Load(),
		Failures:      failures,
		SuccessRate:   successRate,
		Uptime:        time.Since(start).Round(time.Second).String(),
	}
}

// Reset clears all metrics.
func (m *DecklistMetrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ParseLatency.Reset()
	m.RenderLatency.Reset()
	m.Requests.Store(0)
	m.CardsRendered.Store(0)
	m.Lookups.Store(0)
	m.failures = make(map[FailureKind]uint64)
	m.startTime = time.Now()
}
