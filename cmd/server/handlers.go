package main

import (
	"context"
	"net/http"
	"time"

	"github.com/ZanzyTHEbar/teamsynth/internal/errors"
	"github.com/ZanzyTHEbar/teamsynth/internal/scoring"
	"github.com/ZanzyTHEbar/teamsynth/internal/types"
	"github.com/gin-gonic/gin"
)

type validatable interface {
	Validate() error
}

// bind decodes the JSON body into req and validates it. On failure the
// error response has already been written.
func bind(c *gin.Context, req validatable) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		errors.Respond(c, errors.NewValidationError("invalid request body", err.Error()))
		return false
	}
	if err := req.Validate(); err != nil {
		errors.Respond(c, err)
		return false
	}
	return true
}

func (s *server) handleHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := "ok"
	code := http.StatusOK
	services := gin.H{}

	if err := s.db.PingContext(ctx); err != nil {
		services["database"] = gin.H{"status": "down", "error": err.Error()}
		status = "unavailable"
		code = http.StatusServiceUnavailable
	} else {
		services["database"] = gin.H{"status": "up"}
	}

	switch {
	case !s.redis.IsEnabled():
		services["redis"] = gin.H{"status": "disabled"}
	case s.redis.HealthCheck(ctx) != nil:
		services["redis"] = gin.H{"status": "down"}
		if code == http.StatusOK {
			status = "degraded"
		}
	default:
		services["redis"] = gin.H{"status": "up"}
	}

	c.JSON(code, gin.H{
		"status":    status,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   version,
		"services":  services,
	})
}

func (s *server) handleStats(c *gin.Context) {
	stats := gin.H{
		"metrics":     s.metrics.GetStats(),
		"rate_limit":  s.limiter.GetStats(),
		"cache":       s.cache.Stats(),
		"compression": s.compression.GetStats(),
		"database":    s.db.GetPoolStats(),
		"redis":       s.redis.GetPoolStats(),
	}
	if counts, err := s.repo.Counts(c.Request.Context()); err == nil {
		stats["records"] = counts
	}
	c.JSON(http.StatusOK, stats)
}

// frameworkInfo describes one supported instrument
type frameworkInfo struct {
	Framework    scoring.Framework `json:"framework"`
	Name         string            `json:"name"`
	Dimensions   []string          `json:"dimensions"`
	MinQuestions int               `json:"min_questions"`
	Scale        [2]float64        `json:"scale"`
}

func (s *server) handleFrameworks(c *gin.Context) {
	out := make([]frameworkInfo, 0, len(scoring.Frameworks))
	for _, f := range scoring.Frameworks {
		def, ok := scoring.DefinitionFor(f)
		if !ok {
			continue
		}
		out = append(out, frameworkInfo{
			Framework:    f,
			Name:         def.DisplayName,
			Dimensions:   def.Dimensions,
			MinQuestions: def.MinQuestions,
			Scale:        [2]float64{def.MinScale, def.MaxScale},
		})
	}
	c.JSON(http.StatusOK, gin.H{"frameworks": out})
}

func (s *server) handleScore(c *gin.Context) {
	var req types.ScoreRequest
	if !bind(c, &req) {
		return
	}

	res, err := s.analyzer.Score(req.Framework, req.Answers)
	if err != nil {
		errors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *server) handleSynthesize(c *gin.Context) {
	var req types.SynthesizeRequest
	if !bind(c, &req) {
		return
	}
	if req.Persist {
		if err := s.security.ValidateID(req.SubjectID); err != nil {
			errors.Respond(c, errors.NewValidationErrorWithMap(map[string]string{"subject_id": err.Error()}))
			return
		}
	}

	resp, err := s.analyzer.Synthesize(c.Request.Context(), req)
	if err != nil {
		errors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *server) handleCompatibility(c *gin.Context) {
	var req types.CompatibilityRequest
	if !bind(c, &req) {
		return
	}
	c.JSON(http.StatusOK, s.analyzer.Compatibility(*req.A, *req.B))
}

func (s *server) handleOptimize(c *gin.Context) {
	var req types.TeamOptimizeRequest
	if !bind(c, &req) {
		return
	}
	c.JSON(http.StatusOK, s.analyzer.Optimize(req))
}

func (s *server) handlePredict(c *gin.Context) {
	var req types.PredictRequest
	if !bind(c, &req) {
		return
	}
	c.JSON(http.StatusOK, s.analyzer.Predict(req))
}

func (s *server) handleAnalyzeTeam(c *gin.Context) {
	var req types.TeamAnalyzeRequest
	if !bind(c, &req) {
		return
	}
	if req.Persist {
		if err := s.security.ValidateID(req.TeamID); err != nil {
			errors.Respond(c, errors.NewValidationErrorWithMap(map[string]string{"team_id": err.Error()}))
			return
		}
	}

	resp, err := s.analyzer.AnalyzeTeam(c.Request.Context(), req)
	if err != nil {
		errors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *server) handleTeamReport(c *gin.Context) {
	rec, err := s.repo.LatestTeamReport(c.Request.Context(), c.Param("team_id"))
	if err != nil {
		errors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (s *server) handleGetProfile(c *gin.Context) {
	rec, err := s.repo.LatestProfile(c.Request.Context(), c.Param("subject_id"))
	if err != nil {
		errors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (s *server) handleRebuildProfile(c *gin.Context) {
	resp, err := s.analyzer.SynthesizeStored(c.Request.Context(), c.Param("subject_id"))
	if err != nil {
		errors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *server) handlePrivacyPolicy(c *gin.Context) {
	c.JSON(http.StatusOK, s.privacy.GetDataRetentionInfo())
}

func (s *server) handleDeleteSubject(c *gin.Context) {
	report, err := s.privacy.DeleteSubjectData(c.Request.Context(), c.Param("subject_id"))
	if err != nil {
		errors.Respond(c, err)
		return
	}
	s.logger.SystemLogger("subject_deleted", report.SubjectID)
	c.JSON(http.StatusOK, gin.H{
		"message":       "subject data deleted",
		"deleted":       report,
		"total_deleted": report.Total(),
	})
}
