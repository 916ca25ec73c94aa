package google

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRateLimiter_Sheets(t *testing.T) {
	rl := NewRateLimiter(ServiceSheets)
	require.NotNil(t, rl)

	for i := 0; i < DefaultRateLimits[ServiceSheets].BurstSize; i++ {
		assert.True(t, rl.Allow(), "request %d within burst", i)
	}
	assert.False(t, rl.Allow())
}

func TestNewRateLimiter_UnknownService(t *testing.T) {
	rl := NewRateLimiter(ServiceType("unknown"))

	assert.True(t, rl.Allow())
}

func TestNewRateLimiterWithConfig_Disabled(t *testing.T) {
	rl := NewRateLimiterWithConfig(RateLimitConfig{})

	for i := 0; i < 1000; i++ {
		require.True(t, rl.Allow())
	}
}

func TestRateLimiter_WaitHonoursContext(t *testing.T) {
	rl := NewRateLimiterWithConfig(RateLimitConfig{RequestsPerSecond: 0.001, BurstSize: 1})
	require.True(t, rl.Allow())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	assert.Error(t, rl.Wait(ctx))
}
