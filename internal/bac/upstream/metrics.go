package upstream

import (
	"sync/atomic"
	"time"

	"github.com/bac-interop/interop-backend/internal/bac/domain"
)

type counters struct {
	calls   int64
	errors  int64
	latency int64 // total latency in nanoseconds
}

var globalMetrics = map[string]*counters{
	domain.SystemUsers:        {},
	domain.SystemPublications: {},
}

// Metrics is a snapshot of the call counters of one upstream system
type Metrics struct {
	Calls            int64   `json:"calls"`
	Errors           int64   `json:"errors"`
	AverageLatencyMs float64 `json:"avg_latency_ms"`
	ErrorRate        float64 `json:"error_rate"`
}

// GetMetrics returns the current metrics snapshot keyed by system
func GetMetrics() map[string]Metrics {
	out := make(map[string]Metrics, len(globalMetrics))
	for system, c := range globalMetrics {
		calls := atomic.LoadInt64(&c.calls)
		errs := atomic.LoadInt64(&c.errors)
		lat := atomic.LoadInt64(&c.latency)
		m := Metrics{Calls: calls, Errors: errs}
		if calls > 0 {
			m.AverageLatencyMs = float64(lat) / float64(calls) / 1e6
			m.ErrorRate = float64(errs) / float64(calls) * 100
		}
		out[system] = m
	}
	return out
}

// ResetMetrics resets all metrics (useful for testing)
func ResetMetrics() {
	for _, c := range globalMetrics {
		atomic.StoreInt64(&c.calls, 0)
		atomic.StoreInt64(&c.errors, 0)
		atomic.StoreInt64(&c.latency, 0)
	}
}

func recordUpstreamCall(system string, duration time.Duration, err error) {
	c, ok := globalMetrics[system]
	if !ok {
		return
	}
	atomic.AddInt64(&c.calls, 1)
	atomic.AddInt64(&c.latency, duration.Nanoseconds())
	if err != nil {
		atomic.AddInt64(&c.errors, 1)
	}
}
