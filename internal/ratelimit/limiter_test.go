package ratelimit

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/go-blog-identity/internal/config"
	"github.com/MKhiriev/go-blog-identity/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(t *testing.T, cfg config.RateLimit) (*Limiter, *time.Time) {
	t.Helper()
	l := NewLimiter(cfg, logger.NewLogger("test"))

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	return l, &now
}

func TestAllow_UnderCap(t *testing.T) {
	l, _ := newTestLimiter(t, config.RateLimit{
		Standard: config.Window{Window: 15 * time.Minute, Cap: 3},
	})

	for i := 0; i < 3; i++ {
		allowed, _ := l.Allow(ClassStandard, "10.0.0.1")
		require.True(t, allowed, "request %d should be allowed", i+1)
	}
}

func TestAllow_OverCap(t *testing.T) {
	l, _ := newTestLimiter(t, config.RateLimit{
		Standard: config.Window{Window: 15 * time.Minute, Cap: 3},
	})

	for i := 0; i < 3; i++ {
		allowed, _ := l.Allow(ClassStandard, "10.0.0.1")
		require.True(t, allowed)
	}

	allowed, retryAfter := l.Allow(ClassStandard, "10.0.0.1")
	assert.False(t, allowed)
	assert.Equal(t, 15*time.Minute, retryAfter)
}

func TestAllow_WindowReset(t *testing.T) {
	l, now := newTestLimiter(t, config.RateLimit{
		Standard: config.Window{Window: 15 * time.Minute, Cap: 1},
	})

	allowed, _ := l.Allow(ClassStandard, "10.0.0.1")
	require.True(t, allowed)

	allowed, _ = l.Allow(ClassStandard, "10.0.0.1")
	require.False(t, allowed)

	*now = now.Add(15 * time.Minute)

	allowed, _ = l.Allow(ClassStandard, "10.0.0.1")
	assert.True(t, allowed, "counter must reset when the window rolls over")
}

func TestAllow_ClientsAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(t, config.RateLimit{
		Standard: config.Window{Window: 15 * time.Minute, Cap: 1},
	})

	allowed, _ := l.Allow(ClassStandard, "10.0.0.1")
	require.True(t, allowed)

	allowed, _ = l.Allow(ClassStandard, "10.0.0.2")
	assert.True(t, allowed, "limits are tracked per client")
}

func TestAllow_ClassesAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(t, config.RateLimit{
		Standard: config.Window{Window: 15 * time.Minute, Cap: 1},
		Creation: config.Window{Window: 30 * time.Minute, Cap: 1},
	})

	allowed, _ := l.Allow(ClassStandard, "10.0.0.1")
	require.True(t, allowed)

	allowed, _ = l.Allow(ClassCreation, "10.0.0.1")
	assert.True(t, allowed, "each class keeps its own counter")
}

func TestAllow_ZeroWindowIsUnlimited(t *testing.T) {
	l, _ := newTestLimiter(t, config.RateLimit{})

	for i := 0; i < 1000; i++ {
		allowed, _ := l.Allow(ClassStandard, "10.0.0.1")
		require.True(t, allowed)
	}
}

func TestAllow_ConcurrentRequests(t *testing.T) {
	l, _ := newTestLimiter(t, config.RateLimit{
		Standard: config.Window{Window: 15 * time.Minute, Cap: 1},
	})

	const requests = 32

	var admitted atomic.Int64
	var wg sync.WaitGroup
	wg.Add(requests)
	for i := 0; i < requests; i++ {
		go func() {
			defer wg.Done()
			if allowed, _ := l.Allow(ClassStandard, "10.0.0.1"); allowed {
				admitted.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), admitted.Load(), "only one request fits a cap of one")
}

func TestAllow_RetryAfterShrinks(t *testing.T) {
	l, now := newTestLimiter(t, config.RateLimit{
		Deletion: config.Window{Window: 30 * time.Minute, Cap: 1},
	})

	allowed, _ := l.Allow(ClassDeletion, "10.0.0.1")
	require.True(t, allowed)

	*now = now.Add(10 * time.Minute)

	allowed, retryAfter := l.Allow(ClassDeletion, "10.0.0.1")
	require.False(t, allowed)
	assert.Equal(t, 20*time.Minute, retryAfter)
}
