package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ZanzyTHEbar/teamsynth/internal/analysis"
	"github.com/ZanzyTHEbar/teamsynth/internal/cache"
	"github.com/ZanzyTHEbar/teamsynth/internal/config"
	"github.com/ZanzyTHEbar/teamsynth/internal/database"
	"github.com/ZanzyTHEbar/teamsynth/internal/errors"
	"github.com/ZanzyTHEbar/teamsynth/internal/middleware"
	"github.com/ZanzyTHEbar/teamsynth/internal/monitoring"
	"github.com/ZanzyTHEbar/teamsynth/internal/privacy"
	"github.com/ZanzyTHEbar/teamsynth/internal/ratelimit"
	"github.com/ZanzyTHEbar/teamsynth/internal/scoring"
	"github.com/ZanzyTHEbar/teamsynth/internal/security"
	"github.com/gin-gonic/gin"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	appLogger := monitoring.NewLogger(cfg.LogLevel)
	slog.SetDefault(appLogger.Logger)
	gin.SetMode(cfg.GinMode)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	srv, err := newServer(ctx, cfg, appLogger)
	if err != nil {
		slog.Error("Failed to initialize server", "error", err)
		os.Exit(1)
	}
	defer srv.Close()

	// Daily retention purge
	if srv.privacy != nil && cfg.RetentionDays > 0 {
		srv.privacy.StartRetention(ctx, 24*time.Hour)
	}

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           setupRouter(srv),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Starting server", "port", cfg.Port, "redis", srv.redis.IsEnabled(), "persistence", srv.analyzer.Persistent())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}

	slog.Info("Server exited")
}

// server holds every dependency the HTTP handlers use
type server struct {
	cfg         *config.Config
	logger      *monitoring.Logger
	metrics     *monitoring.Metrics
	db          *database.DB
	repo        *database.Repository
	privacy     *privacy.PrivacyService
	analyzer    *analysis.Analyzer
	redis       *ratelimit.RedisClient
	limiter     *ratelimit.RateLimiter
	cache       *cache.Cache
	compression *middleware.CompressionMiddleware
	security    *security.SecurityMiddleware
}

// newServer opens storage and Redis and wires the analysis pipeline
func newServer(ctx context.Context, cfg *config.Config, logger *monitoring.Logger) (*server, error) {
	s := &server{
		cfg:         cfg,
		logger:      logger,
		metrics:     monitoring.NewMetrics(),
		cache:       cache.NewCache(cfg.CacheSize, cfg.CacheTTL),
		compression: middleware.NewCompressionMiddleware(middleware.DefaultCompressionConfig()),
		security:    security.NewSecurityMiddleware(security.DefaultSecurityConfig()),
	}

	db, err := database.NewDB(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	s.db = db
	s.repo = database.NewRepository(db)
	s.privacy = privacy.NewService(db, cfg.RetentionDays)

	registry := scoring.DefaultRegistry()
	if cfg.MappingDir != "" {
		registry, err = scoring.NewRegistryFromStore(scoring.NewMappingStore(cfg.MappingDir))
		if err != nil {
			errors.SafeClose(db, "database")
			return nil, err
		}
		slog.Info("Loaded question mappings", "dir", cfg.MappingDir)
	}

	s.analyzer = analysis.NewAnalyzer(analysis.Options{
		Registry: registry,
		Store:    s.repo,
		Metrics:  s.metrics,
		Logger:   logger,
	})

	s.redis, err = ratelimit.NewRedisClient(ctx, ratelimit.RedisOptions{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		slog.Warn("Redis unavailable, rate limiting uses in-memory limiters", "error", err)
	}

	s.limiter = ratelimit.NewRateLimiter(s.redis, ratelimit.Config{
		IPLimitPerMin:   cfg.RateLimitPerMin,
		TeamLimitPerMin: cfg.TeamLimitPerMin,
		BurstMultiplier: ratelimit.DefaultConfig().BurstMultiplier,
	}, s.metrics)

	return s, nil
}

// Close releases the limiter, Redis and the database
func (s *server) Close() {
	if s.limiter != nil {
		s.limiter.Close()
	}
	errors.SafeClose(s.redis, "redis")
	if s.db != nil {
		errors.SafeClose(s.db, "database")
	}
}
