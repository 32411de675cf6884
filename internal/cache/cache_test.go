package cache

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ZanzyTHEbar/teamsynth/internal/monitoring"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_SetGet(t *testing.T) {
	c := NewCache(2, time.Minute)

	c.Set("a", Entry{Body: []byte("1")})
	c.Set("b", Entry{Body: []byte("2")})
	c.Set("c", Entry{Body: []byte("3")})

	_, found := c.Get("a")
	assert.False(t, found, "oldest entry should be evicted")

	e, found := c.Get("c")
	require.True(t, found)
	assert.Equal(t, []byte("3"), e.Body)
	assert.Equal(t, 2, c.Size())

	c.Delete("c")
	_, found = c.Get("c")
	assert.False(t, found)

	c.Clear()
	assert.Equal(t, 0, c.Size())
}

func TestCache_Expiry(t *testing.T) {
	c := NewCache(10, 20*time.Millisecond)
	c.Set("k", Entry{Body: []byte("v")})

	assert.Eventually(t, func() bool {
		_, found := c.Get("k")
		return !found
	}, time.Second, 10*time.Millisecond)
}

func TestKey(t *testing.T) {
	assert.Equal(t, Key("/v1/a", []byte("x")), Key("/v1/a", []byte("x")))
	assert.NotEqual(t, Key("/v1/a", []byte("x")), Key("/v1/b", []byte("x")))
	assert.NotEqual(t, Key("/v1/a", []byte("x")), Key("/v1/a", []byte("y")))
}

func TestCache_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c := NewCache(10, time.Minute)

	calls := 0
	router := gin.New()
	router.Use(c.Middleware(monitoring.NewMetrics(), monitoring.NewLogger("error"), "/v1/pure"))
	router.POST("/v1/pure", func(ctx *gin.Context) {
		calls++
		ctx.JSON(http.StatusOK, gin.H{"calls": calls})
	})
	router.POST("/v1/other", func(ctx *gin.Context) {
		calls++
		ctx.JSON(http.StatusOK, gin.H{"calls": calls})
	})

	post := func(path, body string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(rec, req)
		return rec
	}

	first := post("/v1/pure", `{"a":1}`)
	second := post("/v1/pure", `{"a":1}`)
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.JSONEq(t, first.Body.String(), second.Body.String())
	assert.Equal(t, 1, calls)

	post("/v1/pure", `{"a":2}`)
	assert.Equal(t, 2, calls)

	post("/v1/other", `{"a":1}`)
	post("/v1/other", `{"a":1}`)
	assert.Equal(t, 4, calls)
}
