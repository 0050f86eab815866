package weather

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"
)

// breakerGroup keeps one circuit breaker per upstream endpoint so a dead
// geocoding service does not trip calls to the weather API and vice versa.
type breakerGroup struct {
	mu       sync.RWMutex
	breakers map[string]*gobreaker.CircuitBreaker
}

func newBreakerGroup() *breakerGroup {
	return &breakerGroup{
		breakers: make(map[string]*gobreaker.CircuitBreaker),
	}
}

func (g *breakerGroup) get(name string) *gobreaker.CircuitBreaker {
	g.mu.RLock()
	if breaker, exists := g.breakers[name]; exists {
		g.mu.RUnlock()
		return breaker
	}
	g.mu.RUnlock()

	g.mu.Lock()
	defer g.mu.Unlock()

	// Double-check after acquiring write lock
	if breaker, exists := g.breakers[name]; exists {
		return breaker
	}

	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    10 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 5 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Warn().
				Str("upstream", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Circuit breaker state changed")
		},
	}

	breaker := gobreaker.NewCircuitBreaker(settings)
	g.breakers[name] = breaker
	return breaker
}

// execute wraps an upstream call with breaker protection for the named
// endpoint. Open-state errors are rewritten so callers see which upstream
// is unavailable.
func (g *breakerGroup) execute(name string, fn func() (interface{}, error)) (interface{}, error) {
	result, err := g.get(name).Execute(fn)
	if err != nil {
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return nil, fmt.Errorf("%s upstream unavailable: %w", name, err)
		}
		return nil, err
	}
	return result, nil
}

// metrics returns per-upstream breaker counters, surfaced on the ops /stats
// endpoint.
func (g *breakerGroup) metrics() map[string]interface{} {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make(map[string]interface{}, len(g.breakers))
	for name, breaker := range g.breakers {
		counts := breaker.Counts()
		out[name] = map[string]interface{}{
			"state":                breaker.State().String(),
			"requests":             counts.Requests,
			"total_successes":      counts.TotalSuccesses,
			"total_failures":       counts.TotalFailures,
			"consecutive_failures": counts.ConsecutiveFailures,
		}
	}
	return out
}
