package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCompressedRouter(cm *CompressionMiddleware, size int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(cm.Handler())
	router.GET("/json", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"payload": strings.Repeat("x", size)})
	})
	router.GET("/empty", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return router
}

func TestCompression_LargeJSON(t *testing.T) {
	cm := NewCompressionMiddleware(DefaultCompressionConfig())
	router := newCompressedRouter(cm, 4096)

	req := httptest.NewRequest(http.MethodGet, "/json", nil)
	req.Header.Set("Accept-Encoding", "gzip, deflate")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "gzip", w.Header().Get("Content-Encoding"))

	gz, err := gzip.NewReader(w.Body)
	require.NoError(t, err)
	body, err := io.ReadAll(gz)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"payload":"xxxx`)

	stats := cm.GetStats()
	assert.Equal(t, int64(1), stats["compressed_responses"])
	assert.Less(t, stats["compression_ratio"].(float64), 0.5)
}

func TestCompression_SmallResponseUntouched(t *testing.T) {
	cm := NewCompressionMiddleware(DefaultCompressionConfig())
	router := newCompressedRouter(cm, 10)

	req := httptest.NewRequest(http.MethodGet, "/json", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Empty(t, w.Header().Get("Content-Encoding"))
	assert.JSONEq(t, `{"payload":"xxxxxxxxxx"}`, w.Body.String())
}

func TestCompression_ClientWithoutGzip(t *testing.T) {
	cm := NewCompressionMiddleware(DefaultCompressionConfig())
	router := newCompressedRouter(cm, 4096)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/json", nil))

	assert.Empty(t, w.Header().Get("Content-Encoding"))
	assert.Equal(t, int64(0), cm.GetStats()["total_responses"])
}

func TestCompression_EmptyBody(t *testing.T) {
	cm := NewCompressionMiddleware(DefaultCompressionConfig())
	router := newCompressedRouter(cm, 0)

	req := httptest.NewRequest(http.MethodGet, "/empty", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Header().Get("Content-Encoding"))
}
