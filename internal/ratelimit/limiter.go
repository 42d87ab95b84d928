package ratelimit

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// Config is one endpoint's token bucket: sustained requests per second plus
// the burst the aggregator tolerates.
type Config struct {
	PerSecond float64
	Burst     int
}

// Limits maps aggregator endpoint names to their bucket configuration.
type Limits map[string]Config

// DefaultLimits reflects the aggregator's per-endpoint quotas. Shopping
// traffic is cheap to serve upstream; order mutations are metered hard
// because each one can hold inventory.
func DefaultLimits() Limits {
	return Limits{
		"AirShopping":   {PerSecond: 10, Burst: 20},
		"OfferPrice":    {PerSecond: 5, Burst: 10},
		"OrderSell":     {PerSecond: 2, Burst: 5},
		"OrderCreate":   {PerSecond: 2, Burst: 5},
		"OrderRetrieve": {PerSecond: 5, Burst: 10},
	}
}

// EndpointLimiter throttles outbound aggregator calls, one independent token
// bucket per endpoint. Endpoints without a configured limit fall back to the
// fallback bucket.
type EndpointLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limits   Limits
	fallback Config
}

func NewEndpointLimiter(limits Limits, fallback Config) *EndpointLimiter {
	return &EndpointLimiter{
		limiters: make(map[string]*rate.Limiter),
		limits:   limits,
		fallback: fallback,
	}
}

func (l *EndpointLimiter) limiter(endpoint string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if limiter, ok := l.limiters[endpoint]; ok {
		return limiter
	}

	cfg, ok := l.limits[endpoint]
	if !ok {
		cfg = l.fallback
	}
	limiter := rate.NewLimiter(rate.Limit(cfg.PerSecond), cfg.Burst)
	l.limiters[endpoint] = limiter
	return limiter
}

// Wait blocks until the endpoint's bucket grants a token or the context ends.
func (l *EndpointLimiter) Wait(ctx context.Context, endpoint string) error {
	return l.limiter(endpoint).Wait(ctx)
}
