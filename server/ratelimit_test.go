package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestLimiterAllowsUpToBurst(t *testing.T) {
	rl := newIPRateLimiter(rate.Limit(1), 3)

	for i := 0; i < 3; i++ {
		require.True(t, rl.allow("10.0.0.1"), "request %d within burst", i)
	}
	require.False(t, rl.allow("10.0.0.1"), "request beyond burst")
}

func TestLimiterTracksIPsIndependently(t *testing.T) {
	rl := newIPRateLimiter(rate.Limit(1), 1)

	require.True(t, rl.allow("10.0.0.1"))
	require.False(t, rl.allow("10.0.0.1"))
	require.True(t, rl.allow("10.0.0.2"), "a fresh IP gets its own bucket")
}

func TestLimiterSweepsIdleEntries(t *testing.T) {
	rl := newIPRateLimiter(rate.Limit(1), 1)

	current := time.Now()
	rl.now = func() time.Time { return current }

	rl.allow("10.0.0.1")
	require.Len(t, rl.limiters, 1)

	current = current.Add(limiterIdleTTL + time.Minute)
	rl.sweepLocked()
	require.Empty(t, rl.limiters, "idle entries are dropped")
}
