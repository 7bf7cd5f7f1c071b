package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenBucket_Allow(t *testing.T) {
	bucket := newTokenBucket(10, 1.0)

	for i := 0; i < 10; i++ {
		assert.True(t, bucket.allow(), "request %d should be allowed", i+1)
	}
	assert.False(t, bucket.allow(), "11th request should be denied")
}

func TestTokenBucket_Refill(t *testing.T) {
	bucket := newTokenBucket(10, 1.0)
	for i := 0; i < 10; i++ {
		bucket.allow()
	}

	time.Sleep(1100 * time.Millisecond)

	assert.True(t, bucket.allow(), "request should be allowed after refill")
	assert.False(t, bucket.allow(), "refilled token is consumed")
}

func TestTokenBucket_GetStatus(t *testing.T) {
	bucket := newTokenBucket(10, 1.0)
	for i := 0; i < 5; i++ {
		bucket.allow()
	}

	remaining, resetTime := bucket.getStatus()
	assert.Equal(t, 5, remaining)
	assert.True(t, resetTime.After(time.Now()), "reset time should be in the future")
}

func TestLimiter_Allow(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Minute,
	})
	defer limiter.Stop()

	for i := 0; i < 10; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/api/analyses", "GET")
		require.True(t, allowed, "request %d should be allowed", i+1)
		assert.Equal(t, 10, info.Limit)
		assert.Equal(t, 9-i, info.Remaining)
	}

	allowed, info := limiter.Allow("127.0.0.1", "/api/analyses", "GET")
	assert.False(t, allowed)
	assert.Equal(t, 0, info.Remaining)
	assert.Greater(t, info.RetryAfter, time.Duration(0))
}

func TestLimiter_Whitelist(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
		Whitelist:     map[string]bool{"127.0.0.1": true},
	})
	defer limiter.Stop()

	for i := 0; i < 100; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/api/match", "POST")
		require.True(t, allowed)
		assert.Equal(t, 0, info.Limit)
	}
}

func TestLimiter_Blacklist(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		Blacklist:     map[string]bool{"192.168.1.1": true},
	})
	defer limiter.Stop()

	allowed, _ := limiter.Allow("192.168.1.1", "/api/match", "POST")
	assert.False(t, allowed)
}

func TestLimiter_Disabled(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: false})
	defer limiter.Stop()

	for i := 0; i < 100; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/api/match", "POST")
		require.True(t, allowed)
		assert.Equal(t, 0, info.Limit)
	}
	assert.Equal(t, 0, limiter.BucketCount())
}

func TestLimiter_EndpointSpecific(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:         true,
		DefaultLimit:    1000,
		DefaultWindow:   time.Minute,
		EndpointConfigs: DefaultEndpointConfigs(),
	})
	defer limiter.Stop()

	for i := 0; i < 5; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/api/upload-resume", "POST")
		require.True(t, allowed, "burst request %d should be allowed", i+1)
		assert.Equal(t, 30, info.Limit)
	}

	allowed, info := limiter.Allow("127.0.0.1", "/api/upload-resume", "POST")
	assert.False(t, allowed, "burst of 5 exhausted")
	assert.Equal(t, 30, info.Limit)

	allowed, info = limiter.Allow("127.0.0.1", "/api/analyses/abc", "GET")
	assert.True(t, allowed)
	assert.Equal(t, 1000, info.Limit, "unlisted endpoint uses default limit")

	allowed, info = limiter.Allow("127.0.0.1", HealthPath, "GET")
	assert.True(t, allowed)
	assert.Equal(t, 0, info.Limit, "health check is unlimited")
}

func TestLimiter_Concurrent(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
	})
	defer limiter.Stop()

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowedCount := 0

	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if allowed, _ := limiter.Allow("127.0.0.1", "/api/match", "POST"); allowed {
				mu.Lock()
				allowedCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, allowedCount)
}

func TestLimiter_CleanupRemovesIdleBuckets(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Minute,
		IdleTimeout:   time.Minute,
	})
	defer limiter.Stop()

	for i := 0; i < 10; i++ {
		limiter.Allow(fmt.Sprintf("127.0.0.%d", i+1), "/api/match", "POST")
	}
	require.Equal(t, 10, limiter.BucketCount())

	limiter.cleanupBuckets(time.Now())
	assert.Equal(t, 10, limiter.BucketCount(), "recent buckets are kept")

	limiter.cleanupBuckets(time.Now().Add(2 * time.Minute))
	assert.Equal(t, 0, limiter.BucketCount(), "idle buckets are dropped")
}

func TestLimiter_StopIsIdempotent(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:         true,
		DefaultLimit:    10,
		DefaultWindow:   time.Minute,
		CleanupInterval: 10 * time.Millisecond,
	})

	limiter.Stop()
	assert.NotPanics(t, limiter.Stop)
}

func TestNewLimiter_NilConfig(t *testing.T) {
	limiter := NewLimiter(nil)
	defer limiter.Stop()

	allowed, info := limiter.Allow("127.0.0.1", "/api/match", "POST")
	assert.True(t, allowed)
	assert.Equal(t, 1000, info.Limit)
}

func TestMatchEndpoint(t *testing.T) {
	configs := []EndpointConfig{
		{Path: "/api/optimize-resume", Method: "POST", Limit: 60, Window: time.Minute},
		{Path: "/api/analyses/", Method: "GET", Limit: 100, Window: time.Minute},
	}

	tests := []struct {
		name      string
		path      string
		method    string
		wantLimit int
		wantNil   bool
	}{
		{"exact match", "/api/optimize-resume", "POST", 60, false},
		{"method mismatch", "/api/optimize-resume", "GET", 0, true},
		{"prefix match", "/api/analyses/123", "GET", 100, false},
		{"health unlimited", "/api/health", "GET", 0, false},
		{"no match", "/api/unknown", "POST", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchEndpoint(tt.path, tt.method, configs)
			if tt.wantNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.wantLimit, got.Limit)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("RATE_LIMIT_ENABLED", "")
		t.Setenv("RATE_LIMIT_DEFAULT_LIMIT", "")

		cfg := LoadConfig()

		assert.True(t, cfg.Enabled)
		assert.Equal(t, 1000, cfg.DefaultLimit)
		assert.Equal(t, time.Minute, cfg.DefaultWindow)
		assert.Equal(t, DefaultIdleTimeout, cfg.IdleTimeout)
		assert.NotEmpty(t, cfg.EndpointConfigs)
	})

	t.Run("disabled", func(t *testing.T) {
		t.Setenv("RATE_LIMIT_ENABLED", "false")

		cfg := LoadConfig()

		assert.False(t, cfg.Enabled)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("RATE_LIMIT_ENABLED", "true")
		t.Setenv("RATE_LIMIT_DEFAULT_LIMIT", "50")
		t.Setenv("RATE_LIMIT_DEFAULT_WINDOW", "30s")
		t.Setenv("RATE_LIMIT_WHITELIST", "10.0.0.1, 10.0.0.2")

		cfg := LoadConfig()

		assert.Equal(t, 50, cfg.DefaultLimit)
		assert.Equal(t, 30*time.Second, cfg.DefaultWindow)
		assert.True(t, cfg.Whitelist["10.0.0.1"])
		assert.True(t, cfg.Whitelist["10.0.0.2"])
	})
}

func TestDefaultEndpointConfigs(t *testing.T) {
	configs := DefaultEndpointConfigs()

	upload := MatchEndpoint("/api/upload-resume", "POST", configs)
	require.NotNil(t, upload)
	assert.Equal(t, 5, upload.Burst)

	stream := MatchEndpoint("/api/optimize-resume/stream", "POST", configs)
	require.NotNil(t, stream)
	assert.Equal(t, 60, stream.Limit)

	assert.Nil(t, MatchEndpoint("/api/analyses/abc", "GET", configs))
}
