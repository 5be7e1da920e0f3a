package catalog

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// Catalog names used for rate limiting.
const (
	NameITunes  = "itunes"
	NameSpotify = "spotify"
)

// Default rate limits per upstream catalog (requests per second). The
// iTunes Search API documents roughly 20 calls per minute for anonymous
// clients; the Spotify share pages tolerate more.
var defaultRateLimits = map[string]rate.Limit{
	NameITunes:  rate.Limit(0.3),
	NameSpotify: 2,
}

// RateLimiterMap holds one rate.Limiter per upstream catalog, created once
// at startup and shared by all requests.
type RateLimiterMap struct {
	mu       sync.RWMutex
	limiters map[string]*rate.Limiter
}

// NewRateLimiterMap creates all catalog rate limiters.
func NewRateLimiterMap() *RateLimiterMap {
	m := &RateLimiterMap{
		limiters: make(map[string]*rate.Limiter, len(defaultRateLimits)),
	}
	for name, limit := range defaultRateLimits {
		m.limiters[name] = rate.NewLimiter(limit, 1)
	}
	return m
}

// Wait blocks until the rate limiter for the given catalog allows a
// request, or the context is canceled.
func (m *RateLimiterMap) Wait(ctx context.Context, name string) error {
	m.mu.RLock()
	limiter, ok := m.limiters[name]
	m.mu.RUnlock()
	if !ok {
		return nil
	}
	return limiter.Wait(ctx)
}
