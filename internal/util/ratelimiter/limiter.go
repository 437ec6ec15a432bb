package ratelimiter

import (
	"sync"
	"time"
)

// Limiter allows one action per interval for each key. Keys are independent,
// so forced refreshes of different scopes do not throttle each other.
// It is safe for concurrent use. A zero interval disables limiting.
type Limiter struct {
	mu          sync.Mutex
	interval    time.Duration
	lastAllowed map[string]time.Time
	now         func() time.Time
}

// New creates a new rate limiter with the specified interval.
func New(interval time.Duration) *Limiter {
	return &Limiter{
		interval:    interval,
		lastAllowed: make(map[string]time.Time),
		now:         time.Now,
	}
}

// Allow checks if an action for key is allowed at this time.
// Returns true if allowed (and records this as the last allowed time),
// or false with the remaining wait duration if rate-limited.
func (l *Limiter) Allow(key string) (bool, time.Duration) {
	if l.interval <= 0 {
		return true, 0
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	last, seen := l.lastAllowed[key]
	if !seen || now.Sub(last) >= l.interval {
		l.lastAllowed[key] = now
		l.prune(now)
		return true, 0
	}

	return false, l.interval - now.Sub(last)
}

// prune drops keys whose interval has elapsed. Caller holds mu.
func (l *Limiter) prune(now time.Time) {
	for k, t := range l.lastAllowed {
		if now.Sub(t) >= l.interval {
			delete(l.lastAllowed, k)
		}
	}
}

// Reset clears the state of key, allowing its next action immediately.
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	delete(l.lastAllowed, key)
	l.mu.Unlock()
}

// TimeSinceLastAllowed returns the duration since the last allowed action
// for key. Returns a very large duration if none has been allowed yet.
func (l *Limiter) TimeSinceLastAllowed(key string) time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	last, ok := l.lastAllowed[key]
	if !ok {
		return time.Duration(1<<63 - 1) // Max duration
	}
	return l.now().Sub(last)
}

// Interval returns the configured rate limit interval.
func (l *Limiter) Interval() time.Duration {
	return l.interval
}
