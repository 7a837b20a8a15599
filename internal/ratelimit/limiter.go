package ratelimit

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// EndpointLimiter keeps one token bucket per upstream endpoint so the coarse
// fare queries and the day-grid queries are throttled independently.
type EndpointLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.RWMutex
	defaults Config
}

type Config struct {
	RequestsPerSecond float64
	BurstSize         int
}

func DefaultConfig() Config {
	return Config{
		RequestsPerSecond: 5,
		BurstSize:         10,
	}
}

func NewEndpointLimiter(config Config) *EndpointLimiter {
	return &EndpointLimiter{
		limiters: make(map[string]*rate.Limiter),
		defaults: config,
	}
}

func NewEndpointLimiterWithDefaults() *EndpointLimiter {
	return NewEndpointLimiter(DefaultConfig())
}

func (l *EndpointLimiter) GetLimiter(endpoint string) *rate.Limiter {
	l.mu.RLock()
	limiter, exists := l.limiters[endpoint]
	l.mu.RUnlock()

	if exists {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if limiter, exists = l.limiters[endpoint]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(rate.Limit(l.defaults.RequestsPerSecond), l.defaults.BurstSize)
	l.limiters[endpoint] = limiter
	return limiter
}

func (l *EndpointLimiter) SetEndpointLimit(endpoint string, rps float64, burst int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.limiters[endpoint] = rate.NewLimiter(rate.Limit(rps), burst)
}

func (l *EndpointLimiter) Wait(ctx context.Context, endpoint string) error {
	return l.GetLimiter(endpoint).Wait(ctx)
}
