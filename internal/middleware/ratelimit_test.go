package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testLimiter(limit int) *rateLimiter {
	return &rateLimiter{limit: limit, window: time.Minute, hits: make(map[string][]time.Time)}
}

func TestRateLimiter_AllowsUpToLimit(t *testing.T) {
	rl := testLimiter(2)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	require.True(t, rl.allow("10.0.0.1", now))
	require.True(t, rl.allow("10.0.0.1", now.Add(time.Second)))
	require.False(t, rl.allow("10.0.0.1", now.Add(2*time.Second)))
}

func TestRateLimiter_WindowSlides(t *testing.T) {
	rl := testLimiter(1)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	require.True(t, rl.allow("10.0.0.1", now))
	require.False(t, rl.allow("10.0.0.1", now.Add(30*time.Second)))
	require.True(t, rl.allow("10.0.0.1", now.Add(61*time.Second)))
}

func TestRateLimiter_ClientsAreIndependent(t *testing.T) {
	rl := testLimiter(1)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	require.True(t, rl.allow("10.0.0.1", now))
	require.True(t, rl.allow("10.0.0.2", now))
	require.False(t, rl.allow("10.0.0.1", now))
}
