// Package guard provides keyed, TTL-bound mutual exclusion used to coalesce jobs
// and deduplicate notifications.
package guard

import (
	"context"
	"sync"
	"time"
)

// DefaultTTL applies when callers pass a non-positive ttl.
const DefaultTTL = time.Minute

// sweepInterval bounds how often Acquire scans for expired keys.
const sweepInterval = time.Minute

// MemoryGuard is the single-process guard for tests/dev.
type MemoryGuard struct {
	mu        sync.Mutex
	held      map[string]time.Time
	now       func() time.Time
	lastSweep time.Time
}

// NewMemoryGuard constructs an empty guard.
func NewMemoryGuard() *MemoryGuard {
	return &MemoryGuard{held: make(map[string]time.Time), now: time.Now}
}

// Acquire reports whether key was free and is now held for ttl.
func (g *MemoryGuard) Acquire(_ context.Context, key string, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	now := g.now()
	g.sweepLocked(now)
	if expiresAt, ok := g.held[key]; ok && now.Before(expiresAt) {
		return false, nil
	}
	g.held[key] = now.Add(ttl)
	return true, nil
}

func (g *MemoryGuard) sweepLocked(now time.Time) {
	if now.Sub(g.lastSweep) < sweepInterval {
		return
	}
	g.lastSweep = now
	for key, expiresAt := range g.held {
		if !now.Before(expiresAt) {
			delete(g.held, key)
		}
	}
}

// Release frees key.
func (g *MemoryGuard) Release(_ context.Context, key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.held, key)
	return nil
}
