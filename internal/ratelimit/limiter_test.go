package ratelimit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ZanzyTHEbar/teamsynth/internal/monitoring"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(t *testing.T, config Config) (*RateLimiter, *monitoring.Metrics) {
	t.Helper()
	metrics := monitoring.NewMetrics()
	rl := NewRateLimiter(nil, config, metrics)
	t.Cleanup(rl.Close)
	return rl, metrics
}

func TestRateLimiter_FallbackBlocksAfterBurst(t *testing.T) {
	rl, metrics := newTestLimiter(t, Config{IPLimitPerMin: 10, BurstMultiplier: 1})
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		result, err := rl.AllowIP(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, result.Allowed, "request %d should be allowed", i+1)
		assert.Equal(t, 10, result.Limit)
	}

	result, err := rl.AllowIP(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Greater(t, result.RetryAfter, time.Duration(0))
	assert.Equal(t, 0, result.Remaining)

	other, err := rl.AllowIP(ctx, "10.0.0.2")
	require.NoError(t, err)
	assert.True(t, other.Allowed, "limits are per IP")

	stats := metrics.GetRateLimitStats()
	assert.Equal(t, int64(12), stats["fallback_count"])
}

func TestRateLimiter_OneTokenPerCheck(t *testing.T) {
	rl, _ := newTestLimiter(t, Config{IPLimitPerMin: 6, BurstMultiplier: 1})
	ctx := context.Background()

	first, err := rl.AllowIP(ctx, "ip")
	require.NoError(t, err)
	second, err := rl.AllowIP(ctx, "ip")
	require.NoError(t, err)

	assert.Equal(t, 5, first.Remaining)
	assert.Equal(t, 4, second.Remaining)
}

func TestRateLimiter_MinimumBurst(t *testing.T) {
	rl, _ := newTestLimiter(t, Config{IPLimitPerMin: 1, BurstMultiplier: 1})
	ctx := context.Background()

	allowed := 0
	for i := 0; i < 8; i++ {
		result, err := rl.AllowIP(ctx, "ip")
		require.NoError(t, err)
		if result.Allowed {
			allowed++
		}
	}
	assert.Equal(t, minBurst, allowed)
}

func TestRateLimiter_ZeroLimitDisables(t *testing.T) {
	rl, _ := newTestLimiter(t, Config{})
	for i := 0; i < 50; i++ {
		result, err := rl.AllowIP(context.Background(), "ip")
		require.NoError(t, err)
		require.True(t, result.Allowed)
	}
}

func TestRateLimiter_EvictIdle(t *testing.T) {
	rl, _ := newTestLimiter(t, Config{IPLimitPerMin: 10, BurstMultiplier: 1})
	ctx := context.Background()

	_, _ = rl.AllowIP(ctx, "a")
	_, _ = rl.AllowIP(ctx, "b")

	assert.Equal(t, 0, rl.evictIdle(time.Now(), time.Hour))
	assert.Equal(t, 2, rl.evictIdle(time.Now().Add(2*time.Hour), time.Hour))
	assert.Equal(t, 0, rl.GetStats()["fallback_limiters"])
}

func TestRedisClient_Disabled(t *testing.T) {
	client, err := NewRedisClient(context.Background(), RedisOptions{})
	require.NoError(t, err)
	assert.False(t, client.IsEnabled())
	assert.Error(t, client.HealthCheck(context.Background()))
	assert.NoError(t, client.Close())
	assert.Equal(t, false, client.GetPoolStats()["enabled"])

	var nilClient *RedisClient
	assert.False(t, nilClient.IsEnabled())
	assert.Nil(t, nilClient.GetClient())
}

func TestMiddleware_Returns429(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rl, metrics := newTestLimiter(t, Config{IPLimitPerMin: 5, TeamLimitPerMin: 5, BurstMultiplier: 1})

	router := gin.New()
	router.Use(rl.IPRateLimitMiddleware())
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	var last *httptest.ResponseRecorder
	for i := 0; i < 6; i++ {
		last = httptest.NewRecorder()
		router.ServeHTTP(last, httptest.NewRequest(http.MethodGet, "/ping", nil))
		if i < 5 {
			require.Equal(t, http.StatusOK, last.Code, "request %d", i+1)
			assert.NotEmpty(t, last.Header().Get("X-RateLimit-Limit"))
		}
	}

	assert.Equal(t, http.StatusTooManyRequests, last.Code)
	assert.NotEmpty(t, last.Header().Get("Retry-After"))
	assert.Contains(t, last.Body.String(), "retry_after")
	assert.Equal(t, int64(1), metrics.GetRateLimitStats()["ip_blocks"])
}

func TestEndpointMiddleware_DefaultsToTeamLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rl, metrics := newTestLimiter(t, Config{IPLimitPerMin: 100, TeamLimitPerMin: 5, BurstMultiplier: 1})

	router := gin.New()
	router.POST("/team", rl.EndpointRateLimitMiddleware("team", 0), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 6)
	for i := 0; i < 6; i++ {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/team", nil))
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, http.StatusTooManyRequests, codes[5])
	blocks := metrics.GetRateLimitStats()["endpoint_blocks"].(map[string]int64)
	assert.Equal(t, int64(1), blocks["team"])
}

func TestRateLimiter_RedisFailuresTripBreaker(t *testing.T) {
	client := &RedisClient{
		client: redis.NewClient(&redis.Options{
			Addr:        "127.0.0.1:1",
			MaxRetries:  -1,
			DialTimeout: 100 * time.Millisecond,
		}),
		enabled: true,
		addr:    "127.0.0.1:1",
	}
	t.Cleanup(func() { client.Close() })

	metrics := monitoring.NewMetrics()
	rl := NewRateLimiter(client, Config{IPLimitPerMin: 10, BurstMultiplier: 1}, metrics)
	t.Cleanup(rl.Close)

	for i := 0; i < 6; i++ {
		result, err := rl.AllowIP(context.Background(), "10.0.0.9")
		require.NoError(t, err)
		assert.True(t, result.Allowed, "fallback serves request %d", i+1)
	}

	stats := metrics.GetRateLimitStats()
	assert.Equal(t, int64(3), stats["redis_errors"], "open breaker skips redis")
	assert.Equal(t, int64(6), stats["fallback_count"])
	assert.Equal(t, "open", rl.GetStats()["redis_breaker"].(map[string]interface{})["state"])
}
