package cache

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"time"

	"github.com/ZanzyTHEbar/teamsynth/internal/monitoring"
	"github.com/gin-gonic/gin"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	defaultSize = 1024
	defaultTTL  = 10 * time.Minute
)

// Entry is one cached response body.
type Entry struct {
	ContentType string
	Body        []byte
}

// Cache is a size-bounded TTL cache of responses keyed by request content.
type Cache struct {
	lru *expirable.LRU[string, Entry]
	ttl time.Duration
}

// NewCache creates a cache. Non-positive arguments use defaults.
func NewCache(size int, ttl time.Duration) *Cache {
	if size <= 0 {
		size = defaultSize
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Cache{
		lru: expirable.NewLRU[string, Entry](size, nil, ttl),
		ttl: ttl,
	}
}

// Key derives a stable key from the route and request body.
func Key(route string, body []byte) string {
	h := sha256.New()
	h.Write([]byte(route))
	h.Write([]byte{0})
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}

// Get retrieves an entry
func (c *Cache) Get(key string) (Entry, bool) {
	return c.lru.Get(key)
}

// Set stores an entry
func (c *Cache) Set(key string, e Entry) {
	c.lru.Add(key, e)
}

// Delete removes an entry
func (c *Cache) Delete(key string) {
	c.lru.Remove(key)
}

// Clear removes every entry
func (c *Cache) Clear() {
	c.lru.Purge()
}

// Size returns the number of live entries
func (c *Cache) Size() int {
	return c.lru.Len()
}

// Stats returns cache statistics
func (c *Cache) Stats() map[string]interface{} {
	return map[string]interface{}{
		"active_items": c.lru.Len(),
		"ttl_seconds":  c.ttl.Seconds(),
	}
}

// Middleware serves repeated POST bodies to the given routes from the cache.
// Only 200 responses are stored. The routes must be pure functions of the body.
func (c *Cache) Middleware(metrics *monitoring.Metrics, logger *monitoring.Logger, routes ...string) gin.HandlerFunc {
	cacheable := make(map[string]bool, len(routes))
	for _, r := range routes {
		cacheable[r] = true
	}

	return func(ctx *gin.Context) {
		route := ctx.FullPath()
		if ctx.Request.Method != http.MethodPost || !cacheable[route] {
			ctx.Next()
			return
		}

		body, err := io.ReadAll(ctx.Request.Body)
		if err != nil {
			ctx.Next()
			return
		}
		ctx.Request.Body = io.NopCloser(bytes.NewBuffer(body))

		key := Key(route, body)

		if entry, found := c.Get(key); found {
			metrics.IncrementCacheHit()
			logger.CacheLogger("get", key, true, c.Size())
			ctx.Header("X-Cache", "HIT")
			ctx.Data(http.StatusOK, entry.ContentType, entry.Body)
			ctx.Abort()
			return
		}

		metrics.IncrementCacheMiss()
		logger.CacheLogger("get", key, false, c.Size())
		ctx.Header("X-Cache", "MISS")

		wrapper := &responseWriter{ResponseWriter: ctx.Writer, body: &bytes.Buffer{}}
		ctx.Writer = wrapper
		ctx.Next()

		if wrapper.Status() == http.StatusOK {
			c.Set(key, Entry{
				ContentType: wrapper.Header().Get("Content-Type"),
				Body:        wrapper.body.Bytes(),
			})
			logger.CacheLogger("set", key, false, c.Size())
		}
	}
}

// responseWriter captures the body while writing it through.
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseWriter) Write(data []byte) (int, error) {
	w.body.Write(data)
	return w.ResponseWriter.Write(data)
}

func (w *responseWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
