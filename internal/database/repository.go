package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ZanzyTHEbar/teamsynth/internal/errors"
	"github.com/ZanzyTHEbar/teamsynth/internal/predict"
	"github.com/ZanzyTHEbar/teamsynth/internal/scoring"
	"github.com/ZanzyTHEbar/teamsynth/internal/synthesis"
	"github.com/ZanzyTHEbar/teamsynth/internal/team"
)

// Repository handles database operations
type Repository struct {
	db  *DB
	now func() time.Time
}

// NewRepository creates a new repository
func NewRepository(db *DB) *Repository {
	return &Repository{db: db, now: time.Now}
}

func (r *Repository) exec(ctx context.Context, stmtName string, args ...any) error {
	stmt, err := r.db.GetPreparedStatement(stmtName)
	if err != nil {
		return err
	}
	_, err = stmt.ExecContext(ctx, args...)
	return err
}

// SaveAssessment stores a raw answer set for a subject and returns its id
func (r *Repository) SaveAssessment(ctx context.Context, subjectID string, framework scoring.Framework, answers scoring.AnswerSet) (string, error) {
	payload, err := json.Marshal(answers)
	if err != nil {
		return "", errors.NewStorageError("encode assessment", err)
	}

	id := NewID()
	if err := r.exec(ctx, stmtInsertAssessment, id, subjectID, string(framework), string(payload), r.now()); err != nil {
		return "", errors.NewStorageError("save assessment", err)
	}
	return id, nil
}

// LatestAssessments returns the newest answer set per framework for a subject
func (r *Repository) LatestAssessments(ctx context.Context, subjectID string) (map[scoring.Framework]scoring.AnswerSet, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT framework, answers
		FROM assessment_responses
		WHERE subject_id = ?
		ORDER BY created_at DESC
	`, subjectID)
	if err != nil {
		return nil, errors.NewStorageError("query assessments", err)
	}
	defer rows.Close()

	out := make(map[scoring.Framework]scoring.AnswerSet)
	for rows.Next() {
		var framework, payload string
		if err := rows.Scan(&framework, &payload); err != nil {
			return nil, errors.NewStorageError("scan assessment", err)
		}
		f := scoring.Framework(framework)
		if _, seen := out[f]; seen {
			continue
		}
		var answers scoring.AnswerSet
		if err := json.Unmarshal([]byte(payload), &answers); err != nil {
			return nil, errors.NewStorageError("decode assessment", err)
		}
		out[f] = answers
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewStorageError("iterate assessments", err)
	}

	if len(out) == 0 {
		return nil, errors.NewNotFoundError("assessments", subjectID)
	}
	return out, nil
}

// SaveProfile stores a unified profile and returns its id
func (r *Repository) SaveProfile(ctx context.Context, subjectID string, p synthesis.Profile, fallback bool) (string, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return "", errors.NewStorageError("encode profile", err)
	}

	id := NewID()
	if err := r.exec(ctx, stmtInsertProfile, id, subjectID, string(payload), p.Confidence, fallback, r.now()); err != nil {
		return "", errors.NewStorageError("save profile", err)
	}
	return id, nil
}

// LatestProfile returns the newest profile stored for a subject
func (r *Repository) LatestProfile(ctx context.Context, subjectID string) (*ProfileRecord, error) {
	stmt, err := r.db.GetPreparedStatement(stmtLatestProfile)
	if err != nil {
		return nil, errors.NewStorageError("load profile", err)
	}

	var rec ProfileRecord
	var payload string
	err = stmt.QueryRowContext(ctx, subjectID).Scan(&rec.ID, &rec.SubjectID, &payload, &rec.Fallback, &rec.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError("profile", subjectID)
	}
	if err != nil {
		return nil, errors.NewStorageError("load profile", err)
	}

	if err := json.Unmarshal([]byte(payload), &rec.Profile); err != nil {
		return nil, errors.NewStorageError("decode profile", err)
	}
	return &rec, nil
}

// SaveTeamReport stores a team report with its roster and returns its id
func (r *Repository) SaveTeamReport(ctx context.Context, teamID string, memberIDs []string, report team.Report, fallback bool) (string, error) {
	payload, err := json.Marshal(report)
	if err != nil {
		return "", errors.NewStorageError("encode team report", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", errors.NewStorageError("begin team report", err)
	}
	defer tx.Rollback()

	insertReport, err := r.db.GetPreparedStatement(stmtInsertTeamReport)
	if err != nil {
		return "", errors.NewStorageError("save team report", err)
	}
	insertMember, err := r.db.GetPreparedStatement(stmtInsertTeamMember)
	if err != nil {
		return "", errors.NewStorageError("save team report", err)
	}

	id := NewID()
	if _, err := tx.StmtContext(ctx, insertReport).ExecContext(ctx, id, teamID, string(payload), report.OverallScore, fallback, r.now()); err != nil {
		return "", errors.NewStorageError("save team report", err)
	}

	memberStmt := tx.StmtContext(ctx, insertMember)
	for _, memberID := range memberIDs {
		if _, err := memberStmt.ExecContext(ctx, id, memberID); err != nil {
			return "", errors.NewStorageError("save team member", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", errors.NewStorageError("commit team report", err)
	}
	return id, nil
}

// LatestTeamReport returns the newest report stored for a team
func (r *Repository) LatestTeamReport(ctx context.Context, teamID string) (*TeamReportRecord, error) {
	stmt, err := r.db.GetPreparedStatement(stmtLatestReport)
	if err != nil {
		return nil, errors.NewStorageError("load team report", err)
	}

	var rec TeamReportRecord
	var payload string
	err = stmt.QueryRowContext(ctx, teamID).Scan(&rec.ID, &rec.TeamID, &payload, &rec.Fallback, &rec.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError("team report", teamID)
	}
	if err != nil {
		return nil, errors.NewStorageError("load team report", err)
	}

	if err := json.Unmarshal([]byte(payload), &rec.Report); err != nil {
		return nil, errors.NewStorageError("decode team report", err)
	}
	return &rec, nil
}

// SavePredictions stores a prediction set for a team and returns its id
func (r *Repository) SavePredictions(ctx context.Context, teamID string, predictions []predict.Prediction, fallback bool) (string, error) {
	payload, err := json.Marshal(predictions)
	if err != nil {
		return "", errors.NewStorageError("encode predictions", err)
	}

	id := NewID()
	if err := r.exec(ctx, stmtInsertPrediction, id, teamID, string(payload), fallback, r.now()); err != nil {
		return "", errors.NewStorageError("save predictions", err)
	}
	return id, nil
}

// Counts reports how many rows each table holds
func (r *Repository) Counts(ctx context.Context) (map[string]int64, error) {
	tables := []string{"assessment_responses", "profiles", "team_reports", "team_members", "predictions"}
	out := make(map[string]int64, len(tables))
	for _, table := range tables {
		var n int64
		if err := r.db.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&n); err != nil {
			return nil, errors.NewStorageError("count "+table, err)
		}
		out[table] = n
	}
	return out, nil
}
