package monitoring

import (
	"context"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"
)

// Logger provides structured JSON logging with event-specific helpers
type Logger struct {
	*slog.Logger
}

// NewLogger creates a JSON logger at the given level ("debug", "info", "warn", "error")
func NewLogger(level string) *Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:     ParseLevel(level),
		AddSource: true,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{
					Key:   "timestamp",
					Value: slog.StringValue(a.Value.Time().Format(time.RFC3339)),
				}
			}
			return a
		},
	})

	return &Logger{
		Logger: slog.New(handler),
	}
}

// ParseLevel maps a level name to a slog level, defaulting to info
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// RequestLogger logs HTTP request details
func (l *Logger) RequestLogger(method, path, ip, userAgent string, statusCode int, duration time.Duration) {
	l.Info("HTTP Request",
		"method", method,
		"path", path,
		"ip", ip,
		"user_agent", userAgent,
		"status_code", statusCode,
		"duration_ms", duration.Milliseconds(),
	)
}

// ScoringLogger logs one framework scoring
func (l *Logger) ScoringLogger(framework, label string, confidence float64, answered, total int, duration time.Duration) {
	l.Info("Assessment Scored",
		"framework", framework,
		"label", label,
		"confidence", confidence,
		"answered", answered,
		"total", total,
		"duration_ms", duration.Milliseconds(),
	)
}

// SynthesisLogger logs a profile synthesis
func (l *Logger) SynthesisLogger(subjectID string, frameworks []string, confidence float64, fallback bool, duration time.Duration) {
	l.Info("Profile Synthesized",
		"subject_id", subjectID,
		"frameworks", frameworks,
		"confidence", confidence,
		"fallback", fallback,
		"duration_ms", duration.Milliseconds(),
	)
}

// TeamLogger logs a team analysis
func (l *Logger) TeamLogger(teamID string, teamSize int, overallScore float64, conflicts int, fallback bool, duration time.Duration) {
	l.Info("Team Analyzed",
		"team_id", teamID,
		"team_size", teamSize,
		"overall_score", overallScore,
		"conflicts", conflicts,
		"fallback", fallback,
		"duration_ms", duration.Milliseconds(),
	)
}

// FallbackLogger records an engine entry point substituting its default output
func (l *Logger) FallbackLogger(component, reason string) {
	l.Warn("Fallback Used",
		"component", component,
		"reason", reason,
	)
}

// APIErrorLogger logs API errors with context
func (l *Logger) APIErrorLogger(err error, method, path, ip string, statusCode int) {
	_, file, line, ok := runtime.Caller(2)
	caller := "unknown"
	if ok {
		caller = file + ":" + strconv.Itoa(line)
	}

	l.Error("API Error",
		"error", err.Error(),
		"method", method,
		"path", path,
		"ip", ip,
		"status_code", statusCode,
		"caller", caller,
	)
}

// CacheLogger logs cache operations
func (l *Logger) CacheLogger(operation, key string, hit bool, itemCount int) {
	if len(key) > 8 {
		key = key[:8] + "..."
	}
	l.Debug("Cache Operation",
		"operation", operation,
		"key_hash", key,
		"hit", hit,
		"cache_size", itemCount,
	)
}

// SystemLogger logs system-level events
func (l *Logger) SystemLogger(event, details string) {
	l.Info("System Event",
		"event", event,
		"details", details,
		"uptime", time.Since(startTime).String(),
	)
}

// SecurityLogger logs suspicious requests
func (l *Logger) SecurityLogger(event, ip, userAgent string, details map[string]interface{}) {
	attrs := []any{
		"event", event,
		"ip", ip,
		"user_agent", userAgent,
	}
	for key, value := range details {
		attrs = append(attrs, key, value)
	}

	l.Log(context.Background(), slog.LevelWarn, "Security Event", attrs...)
}

// PerformanceLogger logs performance metrics
func (l *Logger) PerformanceLogger(metric string, value float64, unit string) {
	l.Info("Performance Metric",
		"metric", metric,
		"value", value,
		"unit", unit,
	)
}

var startTime = time.Now()
