// Package dedup provides an in-process guard against rapid duplicate
// submissions of the same logical action. It is a debounce, not
// correctness-level concurrency control; a distributed store can replace it
// behind the same interface for multi-instance deployments.
package dedup

import (
	"sync"
	"time"
)

// Guard rejects a key resubmitted before its previous mark expired.
type Guard interface {
	// CheckAndMark returns true and marks the key if it is not currently
	// held; it returns false if the key was marked within its TTL.
	CheckAndMark(key string, ttl time.Duration) bool
}

// MemoryGuard is a map-and-mutex Guard with lazy expiry.
type MemoryGuard struct {
	mu      sync.Mutex
	entries map[string]time.Time // key -> expiry
	now     func() time.Time
}

// NewMemoryGuard creates an empty MemoryGuard.
func NewMemoryGuard() *MemoryGuard {
	return &MemoryGuard{
		entries: make(map[string]time.Time),
		now:     time.Now,
	}
}

// CheckAndMark implements Guard.
func (g *MemoryGuard) CheckAndMark(key string, ttl time.Duration) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	if expiry, ok := g.entries[key]; ok && now.Before(expiry) {
		return false
	}
	g.entries[key] = now.Add(ttl)

	// Drop stale entries while the lock is held; the map stays small because
	// marks expire within seconds.
	for k, expiry := range g.entries {
		if now.After(expiry) {
			delete(g.entries, k)
		}
	}
	return true
}
