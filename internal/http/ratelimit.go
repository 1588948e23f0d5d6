package http

import (
	"sync"
	"sync/atomic"
	"time"
)

// rateLimiter caps mutating requests per client IP. Each client gets a
// counter that resets once a full window passes without a request.
type rateLimiter struct {
	limit  int
	window time.Duration

	mu           sync.Mutex
	clients      map[string]*clientCounter
	stopCleanup  chan struct{}
	shutdownOnce sync.Once
}

type clientCounter struct {
	lastSeen time.Time
	count    int
}

func newRateLimiter(limit int, window time.Duration) *rateLimiter {
	rl := &rateLimiter{
		limit:       limit,
		window:      window,
		clients:     make(map[string]*clientCounter),
		stopCleanup: make(chan struct{}),
	}
	go rl.runCleanup()
	return rl
}

// runCleanup periodically forgets clients that went quiet, keeping the map
// bounded.
func (rl *rateLimiter) runCleanup() {
	ticker := time.NewTicker(5 * rl.window)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.dropIdleClients()
		case <-rl.stopCleanup:
			return
		}
	}
}

// dropIdleClients removes counters not touched for ten windows.
func (rl *rateLimiter) dropIdleClients() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-10 * rl.window)
	for ip, client := range rl.clients {
		if client.lastSeen.Before(cutoff) {
			delete(rl.clients, ip)
		}
	}
}

// stop shuts down the cleanup goroutine.
func (rl *rateLimiter) stop() {
	rl.shutdownOnce.Do(func() {
		if rl.stopCleanup != nil {
			close(rl.stopCleanup)
		}
	})
}

// allow records a request from clientIP and reports whether it stays within
// the limit for the current window.
func (rl *rateLimiter) allow(clientIP string, metrics *securityMetrics) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	client, exists := rl.clients[clientIP]

	if !exists {
		rl.clients[clientIP] = &clientCounter{lastSeen: now, count: 1}
		return true
	}

	if now.Sub(client.lastSeen) > rl.window {
		client.count = 1
		client.lastSeen = now
		return true
	}

	client.count++
	client.lastSeen = now

	if client.count > rl.limit {
		if metrics != nil {
			atomic.AddInt64(&metrics.rateLimitHits, 1)
		}
		return false
	}

	return true
}
