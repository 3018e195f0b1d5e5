package ratelimit

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(configs []EndpointConfig) *Limiter {
	return NewLimiter(&Config{
		Enabled:         true,
		DefaultLimit:    100,
		DefaultWindow:   time.Minute,
		CleanupInterval: 0,
		Whitelist:       make(map[string]bool),
		Blacklist:       make(map[string]bool),
		EndpointConfigs: configs,
	})
}

func TestTokenBucket_BurstThenRefuse(t *testing.T) {
	tb := newTokenBucket(2, 0.001)

	assert.True(t, tb.allow())
	assert.True(t, tb.allow())
	assert.False(t, tb.allow(), "bucket should be empty after burst")
}

func TestTokenBucket_Refills(t *testing.T) {
	tb := newTokenBucket(1, 1000)

	require.True(t, tb.allow())
	time.Sleep(5 * time.Millisecond)
	assert.True(t, tb.allow(), "bucket should refill at 1000 tokens/sec")
}

func TestLimiter_EnforcesBurstPerEndpoint(t *testing.T) {
	l := newTestLimiter([]EndpointConfig{
		{Path: "/api/generate", Method: "POST", Limit: 10, Window: time.Hour, Burst: 2},
	})
	defer l.Stop()

	allowed, info := l.Allow("client-1", "/api/generate", "POST")
	assert.True(t, allowed)
	assert.Equal(t, 10, info.Limit)

	allowed, _ = l.Allow("client-1", "/api/generate", "POST")
	assert.True(t, allowed)

	allowed, info = l.Allow("client-1", "/api/generate", "POST")
	assert.False(t, allowed, "third request should exceed burst of 2")
	assert.Greater(t, info.RetryAfter, time.Duration(0))
}

func TestLimiter_ClientsAreIndependent(t *testing.T) {
	l := newTestLimiter([]EndpointConfig{
		{Path: "/api/generate", Method: "POST", Limit: 10, Window: time.Hour, Burst: 1},
	})
	defer l.Stop()

	allowed, _ := l.Allow("client-a", "/api/generate", "POST")
	require.True(t, allowed)
	allowed, _ = l.Allow("client-a", "/api/generate", "POST")
	require.False(t, allowed)

	allowed, _ = l.Allow("client-b", "/api/generate", "POST")
	assert.True(t, allowed, "a different client has its own bucket")
}

func TestLimiter_EndpointsAreIndependent(t *testing.T) {
	l := newTestLimiter([]EndpointConfig{
		{Path: "/api/generate", Method: "POST", Limit: 10, Window: time.Hour, Burst: 1},
		{Path: "/api/topics", Method: "POST", Limit: 30, Window: time.Hour, Burst: 1},
	})
	defer l.Stop()

	allowed, _ := l.Allow("client-1", "/api/generate", "POST")
	require.True(t, allowed)
	allowed, _ = l.Allow("client-1", "/api/generate", "POST")
	require.False(t, allowed)

	allowed, _ = l.Allow("client-1", "/api/topics", "POST")
	assert.True(t, allowed, "exhausting one endpoint must not affect another")
}

func TestLimiter_Disabled(t *testing.T) {
	l := NewLimiter(&Config{Enabled: false})
	defer l.Stop()

	for i := 0; i < 50; i++ {
		allowed, _ := l.Allow("client-1", "/api/generate", "POST")
		assert.True(t, allowed)
	}
}

func TestLimiter_Whitelist(t *testing.T) {
	l := newTestLimiter([]EndpointConfig{
		{Path: "/api/generate", Method: "POST", Limit: 10, Window: time.Hour, Burst: 1},
	})
	defer l.Stop()
	l.config.Whitelist["10.0.0.5"] = true

	for i := 0; i < 5; i++ {
		allowed, _ := l.Allow("10.0.0.5", "/api/generate", "POST")
		assert.True(t, allowed)
	}
}

func TestLimiter_Blacklist(t *testing.T) {
	l := newTestLimiter(nil)
	defer l.Stop()
	l.config.Blacklist["10.0.0.6"] = true

	allowed, info := l.Allow("10.0.0.6", "/api/health", "POST")
	assert.False(t, allowed)
	assert.False(t, info.Allowed)
}

func TestLimiter_HealthUnlimited(t *testing.T) {
	l := newTestLimiter(DefaultEndpointConfigs())
	defer l.Stop()

	for i := 0; i < 100; i++ {
		allowed, info := l.Allow("client-1", "/api/health", "GET")
		require.True(t, allowed)
		assert.Equal(t, 0, info.Limit)
	}
}

func TestLimiter_ConcurrentAccess(t *testing.T) {
	l := newTestLimiter([]EndpointConfig{
		{Path: "/api/generate", Method: "POST", Limit: 1000, Window: time.Hour, Burst: 1000},
	})
	defer l.Stop()

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func(id int) {
			for j := 0; j < 20; j++ {
				l.Allow(fmt.Sprintf("client-%d", id), "/api/generate", "POST")
			}
			done <- true
		}(i)
	}
	for i := 0; i < 10; i++ {
		<-done
	}
}

func TestMatchEndpoint(t *testing.T) {
	configs := DefaultEndpointConfigs()

	tests := []struct {
		name      string
		path      string
		method    string
		wantMatch bool
		wantLimit int
	}{
		{name: "generate exact", path: "/api/generate", method: "POST", wantMatch: true, wantLimit: 10},
		{name: "stream exact", path: "/api/generate/stream", method: "POST", wantMatch: true, wantLimit: 10},
		{name: "topics exact", path: "/api/topics", method: "POST", wantMatch: true, wantLimit: 30},
		{name: "auth prefix", path: "/api/auth/token", method: "POST", wantMatch: true, wantLimit: 20},
		{name: "health special case", path: "/api/health", method: "GET", wantMatch: true, wantLimit: 0},
		{name: "unknown path", path: "/api/history", method: "GET", wantMatch: false},
		{name: "wrong method", path: "/api/generate", method: "GET", wantMatch: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := MatchEndpoint(tt.path, tt.method, configs)
			if !tt.wantMatch {
				assert.Nil(t, cfg)
				return
			}
			require.NotNil(t, cfg)
			assert.Equal(t, tt.wantLimit, cfg.Limit)
		})
	}
}
