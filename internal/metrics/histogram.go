// Package metrics collects in-process latency and counter statistics for
// decklist rendering.
package metrics

import (
	"slices"
	"sync"
	"time"
)

// DefaultSampleSize bounds a histogram when no size is given.
const DefaultSampleSize = 10000

// Histogram keeps the most recent durations in a fixed ring and reports
// their distribution in milliseconds.
type Histogram struct {
	mu       sync.Mutex
	ring     []time.Duration
	next     int
	full     bool
	observed int64
}

// NewHistogram creates a histogram over the last size samples.
func NewHistogram(size int) *Histogram {
	if size <= 0 {
		size = DefaultSampleSize
	}
	return &Histogram{ring: make([]time.Duration, size)}
}

// Record adds a duration, overwriting the oldest once the ring is full.
func (h *Histogram) Record(d time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.ring[h.next] = d
	h.next = (h.next + 1) % len(h.ring)
	if h.next == 0 {
		h.full = true
	}
	h.observed++
}

// Time records the time elapsed since start.
func (h *Histogram) Time(start time.Time) {
	h.Record(time.Since(start))
}

// Count returns the number of samples in the window.
func (h *Histogram) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.lenLocked()
}

// Percentile returns the interpolated value at p (0-100) in milliseconds.
func (h *Histogram) Percentile(p float64) float64 {
	return percentile(h.window(), p)
}

// Stats summarizes the window.
func (h *Histogram) Stats() LatencyStats {
	h.mu.Lock()
	observed := h.observed
	h.mu.Unlock()

	w := h.window()
	if len(w) == 0 {
		return LatencyStats{Observed: observed}
	}

	var sum time.Duration
	for _, d := range w {
		sum += d
	}

	return LatencyStats{
		Mean:     millis(sum) / float64(len(w)),
		P50:      percentile(w, 50),
		P95:      percentile(w, 95),
		P99:      percentile(w, 99),
		Min:      millis(w[0]),
		Max:      millis(w[len(w)-1]),
		Count:    len(w),
		Observed: observed,
	}
}

// Reset empties the window and the observed total.
func (h *Histogram) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.next, h.full, h.observed = 0, false, 0
}

func (h *Histogram) lenLocked() int {
	if h.full {
		return len(h.ring)
	}
	return h.next
}

// window returns a sorted copy of the samples held.
func (h *Histogram) window() []time.Duration {
	h.mu.Lock()
	w := slices.Clone(h.ring[:h.lenLocked()])
	h.mu.Unlock()

	slices.Sort(w)
	return w
}

func percentile(sorted []time.Duration, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}

	rank := p / 100 * float64(len(sorted)-1)
	lo := int(rank)
	if lo >= len(sorted)-1 {
		return millis(sorted[len(sorted)-1])
	}
	frac := rank - float64(lo)
	return millis(sorted[lo])*(1-frac) + millis(sorted[lo+1])*frac
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// LatencyStats is a histogram summary. Durations are milliseconds.
type LatencyStats struct {
	Mean     float64 `json:"mean"`
	P50      float64 `json:"p50"`
	P95      float64 `json:"p95"`
	P99      float64 `json:"p99"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Count    int     `json:"count"`
	Observed int64   `json:"observed"`
}
