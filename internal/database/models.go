package database

import (
	"time"

	"github.com/ZanzyTHEbar/teamsynth/internal/predict"
	"github.com/ZanzyTHEbar/teamsynth/internal/scoring"
	"github.com/ZanzyTHEbar/teamsynth/internal/synthesis"
	"github.com/ZanzyTHEbar/teamsynth/internal/team"
	"github.com/google/uuid"
)

// AssessmentRecord is one stored raw answer set
type AssessmentRecord struct {
	ID        string            `json:"id"`
	SubjectID string            `json:"subject_id"`
	Framework scoring.Framework `json:"framework"`
	Answers   scoring.AnswerSet `json:"answers"`
	CreatedAt time.Time         `json:"created_at"`
}

// ProfileRecord is one stored unified profile
type ProfileRecord struct {
	ID        string            `json:"id"`
	SubjectID string            `json:"subject_id"`
	Profile   synthesis.Profile `json:"profile"`
	Fallback  bool              `json:"fallback"`
	CreatedAt time.Time         `json:"created_at"`
}

// TeamReportRecord is one stored team report
type TeamReportRecord struct {
	ID        string      `json:"id"`
	TeamID    string      `json:"team_id"`
	Report    team.Report `json:"report"`
	Fallback  bool        `json:"fallback"`
	CreatedAt time.Time   `json:"created_at"`
}

// PredictionRecord is one stored prediction set
type PredictionRecord struct {
	ID          string               `json:"id"`
	TeamID      string               `json:"team_id"`
	Predictions []predict.Prediction `json:"predictions"`
	Fallback    bool                 `json:"fallback"`
	CreatedAt   time.Time            `json:"created_at"`
}

// NewID returns a fresh record id
func NewID() string {
	return uuid.New().String()
}
