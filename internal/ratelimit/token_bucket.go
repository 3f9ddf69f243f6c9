// Package ratelimit bounds per-client request rates on the agent endpoint
// with in-memory token buckets.
package ratelimit

import (
	"sync"
	"time"
)

// bucket tracks the remaining allowance for one client.
type bucket struct {
	tokens float64
	seen   time.Time
}

// Store hands out one token bucket per client key. Every bucket refills at
// the same rate and shares the same capacity.
type Store struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	rate    float64 // tokens added per second
	cap     float64
	now     func() time.Time
}

// NewStore creates a Store refilling ratePerSecond tokens/s per client with
// burst capacity. A non-positive burst falls back to ratePerSecond.
func NewStore(ratePerSecond, burst float64) *Store {
	if burst <= 0 {
		burst = ratePerSecond
	}
	return &Store{
		buckets: make(map[string]*bucket),
		rate:    ratePerSecond,
		cap:     burst,
		now:     time.Now,
	}
}

// Allow reports whether the client identified by key may proceed, consuming
// one token when it may. Unknown keys start with a full bucket.
func (s *Store) Allow(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	b, ok := s.buckets[key]
	if !ok {
		b = &bucket{tokens: s.cap, seen: now}
		s.buckets[key] = b
	} else {
		b.tokens += now.Sub(b.seen).Seconds() * s.rate
		if b.tokens > s.cap {
			b.tokens = s.cap
		}
		b.seen = now
	}

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}
