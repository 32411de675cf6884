package middleware

import (
	"bytes"
	"compress/gzip"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

// CompressionConfig holds configuration for response compression
type CompressionConfig struct {
	MinSize          int      // minimum response size to compress, in bytes
	CompressionLevel int      // gzip level, 1-9
	ContentTypes     []string // content types eligible for compression
}

// DefaultCompressionConfig returns the default compression configuration
func DefaultCompressionConfig() CompressionConfig {
	return CompressionConfig{
		MinSize:          1024,
		CompressionLevel: gzip.DefaultCompression,
		ContentTypes:     []string{"application/json", "text/plain"},
	}
}

// CompressionMiddleware gzips large responses for clients that accept it
type CompressionMiddleware struct {
	config CompressionConfig
	stats  *CompressionStats
	pool   sync.Pool
}

// NewCompressionMiddleware creates a new compression middleware
func NewCompressionMiddleware(config CompressionConfig) *CompressionMiddleware {
	level := config.CompressionLevel
	if level < gzip.HuffmanOnly || level > gzip.BestCompression {
		level = gzip.DefaultCompression
	}

	return &CompressionMiddleware{
		config: config,
		stats:  &CompressionStats{},
		pool: sync.Pool{
			New: func() interface{} {
				gz, _ := gzip.NewWriterLevel(io.Discard, level)
				return gz
			},
		},
	}
}

// Handler buffers the response and writes it gzipped when eligible
func (cm *CompressionMiddleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !strings.Contains(c.GetHeader("Accept-Encoding"), "gzip") {
			c.Next()
			return
		}

		original := c.Writer
		buffered := &bufferedWriter{ResponseWriter: original}
		c.Writer = buffered
		c.Next()
		c.Writer = original

		body := buffered.body.Bytes()
		if len(body) == 0 {
			return
		}

		if len(body) < cm.config.MinSize || !cm.shouldCompress(original.Header().Get("Content-Type")) {
			cm.stats.record(int64(len(body)), 0, false)
			_, _ = original.Write(body)
			return
		}

		var compressed bytes.Buffer
		gz := cm.pool.Get().(*gzip.Writer)
		gz.Reset(&compressed)
		_, err := gz.Write(body)
		if err == nil {
			err = gz.Close()
		}
		cm.pool.Put(gz)

		if err != nil {
			slog.Warn("Response compression failed, sending identity", "error", err)
			cm.stats.record(int64(len(body)), 0, false)
			_, _ = original.Write(body)
			return
		}

		original.Header().Set("Content-Encoding", "gzip")
		original.Header().Add("Vary", "Accept-Encoding")
		original.Header().Set("Content-Length", strconv.Itoa(compressed.Len()))
		cm.stats.record(int64(len(body)), int64(compressed.Len()), true)
		_, _ = original.Write(compressed.Bytes())
	}
}

func (cm *CompressionMiddleware) shouldCompress(contentType string) bool {
	for _, ct := range cm.config.ContentTypes {
		if strings.Contains(contentType, ct) {
			return true
		}
	}
	return false
}

// GetStats returns compression statistics
func (cm *CompressionMiddleware) GetStats() map[string]interface{} {
	return cm.stats.GetStats()
}

// bufferedWriter holds the body until the handler chain finishes.
// WriteHeader passes through because gin only records the status there.
type bufferedWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *bufferedWriter) Write(data []byte) (int, error) {
	return w.body.Write(data)
}

func (w *bufferedWriter) WriteString(s string) (int, error) {
	return w.body.WriteString(s)
}

// CompressionStats tracks compression statistics
type CompressionStats struct {
	TotalResponses      int64
	CompressedResponses int64
	TotalBytes          int64
	CompressedBytes     int64
}

func (cs *CompressionStats) record(originalSize, compressedSize int64, compressed bool) {
	atomic.AddInt64(&cs.TotalResponses, 1)
	atomic.AddInt64(&cs.TotalBytes, originalSize)
	if compressed {
		atomic.AddInt64(&cs.CompressedResponses, 1)
		atomic.AddInt64(&cs.CompressedBytes, compressedSize)
	}
}

// GetStats returns current compression statistics
func (cs *CompressionStats) GetStats() map[string]interface{} {
	total := atomic.LoadInt64(&cs.TotalBytes)
	compressedBytes := atomic.LoadInt64(&cs.CompressedBytes)

	ratio := float64(0)
	if total > 0 {
		ratio = float64(compressedBytes) / float64(total)
	}

	return map[string]interface{}{
		"total_responses":      atomic.LoadInt64(&cs.TotalResponses),
		"compressed_responses": atomic.LoadInt64(&cs.CompressedResponses),
		"total_bytes":          total,
		"compressed_bytes":     compressedBytes,
		"compression_ratio":    ratio,
	}
}
