package ratelimit

import (
	"sync"
	"time"
)

// Limiter is a sliding-window request limiter keyed by caller identity
type Limiter struct {
	mu      sync.RWMutex
	buckets map[string]*bucket
	maxReqs int
	window  time.Duration
	cleanup *time.Ticker
	done    chan struct{}
	stopped chan struct{}
}

type bucket struct {
	requests []time.Time
	lastSeen time.Time
}

// NewLimiter creates a limiter allowing maxRequests per window per key
func NewLimiter(maxRequests int, window time.Duration) *Limiter {
	limiter := &Limiter{
		buckets: make(map[string]*bucket),
		maxReqs: maxRequests,
		window:  window,
		cleanup: time.NewTicker(5 * time.Minute),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go limiter.cleanupOldBuckets()
	return limiter
}

// Allow reports whether another request is permitted for the key. An empty
// key is never limited.
func (l *Limiter) Allow(key string) bool {
	if key == "" {
		return true
	}
	return l.allow(key, l.maxReqs, l.window)
}

// AllowStrict applies a tighter limit for sensitive endpoints such as login
// and registration, keyed independently of the regular buckets.
func (l *Limiter) AllowStrict(key string, maxReqs int, window time.Duration) bool {
	return l.allow("strict:"+key, maxReqs, window)
}

func (l *Limiter) allow(key string, maxReqs int, window time.Duration) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	b, exists := l.buckets[key]
	if !exists {
		b = &bucket{requests: []time.Time{}}
		l.buckets[key] = b
	}

	cutoff := now.Add(-window)
	var reqs []time.Time
	for _, t := range b.requests {
		if t.After(cutoff) {
			reqs = append(reqs, t)
		}
	}
	b.requests = reqs
	b.lastSeen = now

	if len(b.requests) >= maxReqs {
		return false
	}

	b.requests = append(b.requests, now)
	return true
}

// cleanupOldBuckets runs until Stop. A stopped ticker's channel never
// closes, so the loop selects on done rather than ranging over cleanup.C.
func (l *Limiter) cleanupOldBuckets() {
	defer close(l.stopped)
	for {
		select {
		case <-l.done:
			return
		case <-l.cleanup.C:
			l.purgeStale()
		}
	}
}

func (l *Limiter) purgeStale() {
	l.mu.Lock()
	defer l.mu.Unlock()
	staleThreshold := time.Now().Add(-15 * time.Minute)
	for key, b := range l.buckets {
		if b.lastSeen.Before(staleThreshold) {
			delete(l.buckets, key)
		}
	}
}

// Stop halts the background cleanup and waits for its goroutine to exit.
// Must be called exactly once.
func (l *Limiter) Stop() {
	l.cleanup.Stop()
	close(l.done)
	<-l.stopped
}
