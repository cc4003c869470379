// Package ratelimit gates outbound provider calls by minimum interval.
package ratelimit

import (
	"sync"
	"time"
)

// Window is the externally visible state of one provider gate.
type Window struct {
	Provider         string
	RateLimitPerHour int
	LastAdmittedAt   time.Time
}

type gate struct {
	mu           sync.Mutex
	perHour      int
	lastAdmitted time.Time
}

// Limiter admits at most rateLimitPerHour calls per provider, spread evenly:
// a call is admitted only when a full minimum interval has elapsed since the
// previous admission. State is in-memory only; a restart resets the windows.
type Limiter struct {
	mu    sync.RWMutex
	gates map[string]*gate
	now   func() time.Time
}

// New creates a limiter for the given per-provider hourly limits. A limit of
// zero or less means the provider is not throttled.
func New(limits map[string]int) *Limiter {
	l := &Limiter{
		gates: make(map[string]*gate, len(limits)),
		now:   time.Now,
	}
	for name, perHour := range limits {
		l.gates[name] = &gate{perHour: perHour}
	}
	return l
}

// TryAdmit reports whether a call to the provider may proceed now. It never
// blocks: a denied provider is simply skipped for the current round. The
// check and the timestamp update are atomic under the per-provider lock.
func (l *Limiter) TryAdmit(provider string) bool {
	l.mu.RLock()
	g, ok := l.gates[provider]
	l.mu.RUnlock()

	if !ok || g.perHour <= 0 {
		return true
	}

	minInterval := time.Hour / time.Duration(g.perHour)

	g.mu.Lock()
	defer g.mu.Unlock()

	now := l.now()
	if !g.lastAdmitted.IsZero() && now.Sub(g.lastAdmitted) < minInterval {
		return false
	}

	// lastAdmitted is monotonically non-decreasing even if the wall clock
	// steps backwards.
	if now.After(g.lastAdmitted) {
		g.lastAdmitted = now
	}

	return true
}

// Snapshot returns the current window state of every registered provider.
func (l *Limiter) Snapshot() map[string]Window {
	l.mu.RLock()
	defer l.mu.RUnlock()

	windows := make(map[string]Window, len(l.gates))
	for name, g := range l.gates {
		g.mu.Lock()
		windows[name] = Window{
			Provider:         name,
			RateLimitPerHour: g.perHour,
			LastAdmittedAt:   g.lastAdmitted,
		}
		g.mu.Unlock()
	}

	return windows
}
