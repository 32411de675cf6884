package main

import (
	"net/http/pprof"
	"slices"
	"time"

	"github.com/ZanzyTHEbar/teamsynth/internal/errors"
	"github.com/ZanzyTHEbar/teamsynth/internal/monitoring"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Routes whose response depends only on the request body
var cacheableRoutes = []string{
	"/v1/score",
	"/v1/compatibility",
	"/v1/team/optimize",
	"/v1/team/predict",
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Accept-Encoding", errors.RequestIDHeader},
		ExposeHeaders: []string{errors.RequestIDHeader, "X-Cache", "X-RateLimit-Limit", "X-RateLimit-Remaining", "Retry-After"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

func setupRouter(s *server) *gin.Engine {
	r := gin.New()

	// Monitoring first so every request is counted
	r.Use(monitoring.RequestIDMiddleware())
	r.Use(monitoring.MonitoringMiddleware(s.metrics, s.logger))
	r.Use(monitoring.SecurityMonitoringMiddleware(s.logger))

	r.Use(errors.ErrorHandler())
	r.Use(errors.RecoveryHandler())

	r.Use(cors.New(corsConfig(s.cfg.AllowedOrigins)))
	r.Use(s.compression.Handler())

	r.Use(s.security.SecurityHeaders)
	r.Use(s.security.RequestTimeout)
	r.Use(s.security.ValidateContentType)
	r.Use(s.security.LimitBody)
	r.Use(s.limiter.IPRateLimitMiddleware())

	// Mounted per route so the team limiter runs before a cache hit
	cached := s.cache.Middleware(s.metrics, s.logger, cacheableRoutes...)

	r.GET("/health", s.handleHealth)
	r.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	r.GET("/stats", s.handleStats)

	v1 := r.Group("/v1")
	{
		v1.GET("/frameworks", s.handleFrameworks)
		v1.POST("/score", cached, s.handleScore)
		v1.POST("/synthesize", s.handleSynthesize)
		v1.POST("/compatibility", cached, s.handleCompatibility)

		teams := v1.Group("/team", s.limiter.EndpointRateLimitMiddleware("team", s.cfg.TeamLimitPerMin))
		teams.POST("/optimize", cached, s.handleOptimize)
		teams.POST("/predict", cached, s.handlePredict)
		teams.POST("/analyze", s.handleAnalyzeTeam)
		teams.GET("/:team_id/report", s.security.ValidateIDParam("team_id"), s.handleTeamReport)

		v1.GET("/profiles/:subject_id", s.security.ValidateIDParam("subject_id"), s.handleGetProfile)
		v1.POST("/profiles/:subject_id/rebuild", s.security.ValidateIDParam("subject_id"), s.handleRebuildProfile)

		v1.GET("/privacy/policy", s.handlePrivacyPolicy)
		v1.DELETE("/subjects/:subject_id", s.security.ValidateIDParam("subject_id"), s.handleDeleteSubject)
	}

	if s.cfg.EnableProfiling {
		s.logger.SystemLogger("profiling_enabled", "pprof endpoints mounted under /debug/pprof")
		debug := r.Group("/debug/pprof")
		debug.GET("/", gin.WrapF(pprof.Index))
		debug.GET("/cmdline", gin.WrapF(pprof.Cmdline))
		debug.GET("/profile", gin.WrapF(pprof.Profile))
		debug.GET("/symbol", gin.WrapF(pprof.Symbol))
		debug.GET("/trace", gin.WrapF(pprof.Trace))
		debug.GET("/:profile", gin.WrapF(pprof.Index))
	}

	return r
}
