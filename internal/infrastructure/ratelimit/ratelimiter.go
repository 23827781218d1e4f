// Package ratelimit throttles credential-bearing requests per source key.
package ratelimit

import "time"

type Limits struct {
	RequestsPerMinute int
	RequestsPerHour   int
}

type RateLimiter interface {
	Allow(key string, limits Limits) (bool, error)
	GetRemaining(key string, window time.Duration) (int64, error)
	Reset(key string) error
}
