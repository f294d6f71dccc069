package http

import (
	"sync"
	"time"
)

const (
	idleBucketTTL   = 1 * time.Hour
	cleanupInterval = 30 * time.Minute
)

type bucket struct {
	remaining   int
	windowStart time.Time
}

// RateLimiter grants each client a fixed number of calculations per window.
// The whole allowance comes back at once when the window ends.
type RateLimiter struct {
	mu       sync.Mutex
	capacity int
	window   time.Duration
	buckets  map[string]*bucket
	now      func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

func NewRateLimiter(capacity int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		capacity: capacity,
		window:   window,
		buckets:  make(map[string]*bucket),
		now:      time.Now,
		stop:     make(chan struct{}),
	}
	go rl.sweep()
	return rl
}

func (r *RateLimiter) sweep() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.dropIdle()
		case <-r.stop:
			return
		}
	}
}

func (r *RateLimiter) dropIdle() {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-idleBucketTTL)
	for client, b := range r.buckets {
		if b.windowStart.Before(cutoff) {
			delete(r.buckets, client)
		}
	}
}

// Stop ends the sweeper goroutine. Safe to call more than once.
func (r *RateLimiter) Stop() {
	r.stopOnce.Do(func() { close(r.stop) })
}

// Allow reports whether client may make a request now.
func (r *RateLimiter) Allow(client string) bool {
	ok, _ := r.Reserve(client)
	return ok
}

// Reserve takes one request from client's allowance. When the allowance is
// spent it returns false and the time left until the window resets.
func (r *RateLimiter) Reserve(client string) (bool, time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	b, ok := r.buckets[client]
	if !ok || now.Sub(b.windowStart) >= r.window {
		b = &bucket{remaining: r.capacity, windowStart: now}
		r.buckets[client] = b
	}

	if b.remaining <= 0 {
		return false, b.windowStart.Add(r.window).Sub(now)
	}

	b.remaining--
	return true, 0
}

func (r *RateLimiter) clients() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.buckets)
}
