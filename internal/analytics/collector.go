// Package analytics collects per-tool invocation counters and latencies,
// exposed both as Prometheus metrics and as an in-memory snapshot for the
// ops /stats endpoint.
package analytics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector tracks tool invocation outcomes.
type Collector struct {
	totalCalls  *prometheus.CounterVec
	callLatency *prometheus.HistogramVec
	activeCalls prometheus.Gauge

	mu      sync.RWMutex
	stats   *Stats
	enabled bool
}

// Stats is the aggregated in-memory view.
type Stats struct {
	TotalCalls   int64            `json:"total_calls"`
	TotalErrors  int64            `json:"total_errors"`
	AvgLatencyMs float64          `json:"avg_latency_ms"`
	CallsByTool  map[string]int64 `json:"calls_by_tool"`

	totalLatency time.Duration
}

// NewCollector creates a collector. When disabled, Record is a no-op and no
// Prometheus metrics are registered.
func NewCollector(enabled bool) *Collector {
	c := &Collector{
		enabled: enabled,
		stats: &Stats{
			CallsByTool: make(map[string]int64),
		},
	}

	if enabled {
		c.totalCalls = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "skycast_tool_calls_total",
				Help: "Total number of tool calls",
			},
			[]string{"tool", "status"},
		)

		c.callLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "skycast_tool_call_latency_seconds",
				Help:    "Tool call latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"tool"},
		)

		c.activeCalls = prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "skycast_active_tool_calls",
				Help: "Number of currently active tool calls",
			},
		)

		// Register metrics (ignore duplicate errors for tests)
		_ = prometheus.DefaultRegisterer.Register(c.totalCalls)
		_ = prometheus.DefaultRegisterer.Register(c.callLatency)
		_ = prometheus.DefaultRegisterer.Register(c.activeCalls)
	}

	return c
}

// Start marks a tool call as in flight.
func (c *Collector) Start() {
	if !c.enabled {
		return
	}
	c.activeCalls.Inc()
}

// Record finishes a tool call started with Start.
func (c *Collector) Record(tool string, duration time.Duration, success bool) {
	if !c.enabled {
		return
	}

	status := "success"
	if !success {
		status = "error"
	}
	c.totalCalls.WithLabelValues(tool, status).Inc()
	c.callLatency.WithLabelValues(tool).Observe(duration.Seconds())
	c.activeCalls.Dec()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.stats.TotalCalls++
	if !success {
		c.stats.TotalErrors++
	}
	c.stats.CallsByTool[tool]++
	c.stats.totalLatency += duration
	c.stats.AvgLatencyMs = float64(c.stats.totalLatency.Milliseconds()) / float64(c.stats.TotalCalls)
}

// GetStats returns a copy of the aggregated statistics.
func (c *Collector) GetStats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := Stats{
		TotalCalls:   c.stats.TotalCalls,
		TotalErrors:  c.stats.TotalErrors,
		AvgLatencyMs: c.stats.AvgLatencyMs,
		CallsByTool:  make(map[string]int64, len(c.stats.CallsByTool)),
	}
	for tool, calls := range c.stats.CallsByTool {
		out.CallsByTool[tool] = calls
	}
	return out
}

// Enabled reports whether collection is active.
func (c *Collector) Enabled() bool {
	return c.enabled
}
