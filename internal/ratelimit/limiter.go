// Package ratelimit implements a fixed-window request limiter.
//
// Requests are grouped into classes (standard, creation, mutation,
// deletion), each with its own window length and cap. Within one
// window-sized interval a client may issue at most cap requests of a
// class; the counter resets when the next interval starts.
//
// State is kept in memory per process. Counters are keyed by class and
// client identifier (the client IP at the HTTP layer).
package ratelimit

import (
	"sync"
	"time"

	"github.com/MKhiriev/go-blog-identity/internal/config"
	"github.com/MKhiriev/go-blog-identity/internal/logger"
)

// Class names a request category with its own limit.
type Class string

const (
	// ClassStandard covers reads and login attempts.
	ClassStandard Class = "standard"
	// ClassCreation covers account creation and federation sign-in.
	ClassCreation Class = "creation"
	// ClassMutation covers profile edits and password changes.
	ClassMutation Class = "mutation"
	// ClassDeletion covers account deletion.
	ClassDeletion Class = "deletion"
)

// pruneThreshold bounds the counter map size before expired entries are
// swept out.
const pruneThreshold = 10000

type counter struct {
	windowStart time.Time
	count       int
}

// Limiter tracks request counts per (class, client) pair over fixed
// windows. Safe for concurrent use.
type Limiter struct {
	mu       sync.Mutex
	windows  map[Class]config.Window
	counters map[string]*counter

	// now is replaceable in tests.
	now func() time.Time

	logger *logger.Logger
}

// NewLimiter constructs a [Limiter] from the per-class window settings.
func NewLimiter(cfg config.RateLimit, logger *logger.Logger) *Limiter {
	logger.Debug().Msg("creating rate limiter")
	return &Limiter{
		windows: map[Class]config.Window{
			ClassStandard: cfg.Standard,
			ClassCreation: cfg.Creation,
			ClassMutation: cfg.Mutation,
			ClassDeletion: cfg.Deletion,
		},
		counters: make(map[string]*counter),
		now:      time.Now,
		logger:   logger,
	}
}

// Allow records one request of the given class for the client and reports
// whether it fits within the current window. When the request is denied,
// retryAfter tells how long until the window resets.
//
// A class with a non-positive window or cap is unlimited.
func (l *Limiter) Allow(class Class, client string) (allowed bool, retryAfter time.Duration) {
	window, ok := l.windows[class]
	if !ok || window.Window <= 0 || window.Cap <= 0 {
		return true, 0
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	key := string(class) + "\x00" + client

	c, ok := l.counters[key]
	if !ok || now.Sub(c.windowStart) >= window.Window {
		c = &counter{windowStart: now}
		l.counters[key] = c
	}

	c.count++
	if c.count > window.Cap {
		return false, c.windowStart.Add(window.Window).Sub(now)
	}

	if len(l.counters) > pruneThreshold {
		l.prune(now)
	}

	return true, 0
}

// prune drops counters whose window has long passed. Caller holds l.mu.
func (l *Limiter) prune(now time.Time) {
	for key, c := range l.counters {
		class, _, _ := splitKey(key)
		window := l.windows[Class(class)]
		if now.Sub(c.windowStart) >= 2*window.Window {
			delete(l.counters, key)
		}
	}
}

func splitKey(key string) (class, client string, ok bool) {
	for i := 0; i < len(key); i++ {
		if key[i] == '\x00' {
			return key[:i], key[i+1:], true
		}
	}
	return key, "", false
}
