package privacy

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ZanzyTHEbar/teamsynth/internal/database"
	"github.com/ZanzyTHEbar/teamsynth/internal/errors"
)

// DeletionReport counts the rows removed for one subject
type DeletionReport struct {
	SubjectID   string `json:"subject_id"`
	Assessments int64  `json:"assessments_deleted"`
	Profiles    int64  `json:"profiles_deleted"`
	TeamReports int64  `json:"team_reports_deleted"`
}

// Total is the number of rows removed
func (d DeletionReport) Total() int64 {
	return d.Assessments + d.Profiles + d.TeamReports
}

// PrivacyService deletes subject data on request and enforces retention
type PrivacyService struct {
	db            *database.DB
	retentionDays int
}

// NewService creates a new privacy service. retentionDays <= 0 disables purging.
func NewService(db *database.DB, retentionDays int) *PrivacyService {
	return &PrivacyService{db: db, retentionDays: retentionDays}
}

// DeleteSubjectData removes every answer set and profile of a subject and every
// team report the subject was a member of.
func (ps *PrivacyService) DeleteSubjectData(ctx context.Context, subjectID string) (DeletionReport, error) {
	report := DeletionReport{SubjectID: subjectID}

	tx, err := ps.db.BeginTx(ctx, nil)
	if err != nil {
		return report, errors.NewStorageError("begin deletion", err)
	}
	defer tx.Rollback()

	deletes := []struct {
		query string
		count *int64
	}{
		{"DELETE FROM assessment_responses WHERE subject_id = ?", &report.Assessments},
		{"DELETE FROM profiles WHERE subject_id = ?", &report.Profiles},
		{`DELETE FROM team_reports WHERE id IN (
			SELECT report_id FROM team_members WHERE subject_id = ?
		)`, &report.TeamReports},
		{"DELETE FROM team_members WHERE subject_id = ?", nil},
	}

	for _, d := range deletes {
		res, err := tx.ExecContext(ctx, d.query, subjectID)
		if err != nil {
			return report, errors.NewStorageError("delete subject data", err)
		}
		if d.count != nil {
			*d.count, _ = res.RowsAffected()
		}
	}

	if err := tx.Commit(); err != nil {
		return report, errors.NewStorageError("commit deletion", err)
	}

	slog.Info("Subject data deleted",
		"subject_id", subjectID,
		"assessments_deleted", report.Assessments,
		"profiles_deleted", report.Profiles,
		"team_reports_deleted", report.TeamReports,
	)

	return report, nil
}

// PurgeOlderThan removes every record created before cutoff and returns the row count
func (ps *PrivacyService) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tables := []string{"assessment_responses", "profiles", "team_reports", "predictions"}

	var total int64
	for _, table := range tables {
		res, err := ps.db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE created_at < ?", table), cutoff)
		if err != nil {
			return total, errors.NewStorageError("purge "+table, err)
		}
		n, _ := res.RowsAffected()
		total += n
	}

	slog.Info("Data cleanup completed", "cutoff_date", cutoff, "rows_deleted", total)
	return total, nil
}

// Cleanup purges records older than the retention window
func (ps *PrivacyService) Cleanup(ctx context.Context) (int64, error) {
	if ps.retentionDays <= 0 {
		return 0, nil
	}
	return ps.PurgeOlderThan(ctx, time.Now().AddDate(0, 0, -ps.retentionDays))
}

// StartRetention runs Cleanup every interval until ctx is done
func (ps *PrivacyService) StartRetention(ctx context.Context, interval time.Duration) {
	if ps.retentionDays <= 0 {
		slog.Info("Data retention purge disabled")
		return
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := ps.Cleanup(ctx); err != nil {
					slog.Error("Failed to run data cleanup", "error", err)
				}
			}
		}
	}()
}

// GetDataRetentionInfo describes the retention policy
func (ps *PrivacyService) GetDataRetentionInfo() map[string]interface{} {
	return map[string]interface{}{
		"retention_days":       ps.retentionDays,
		"purge_enabled":        ps.retentionDays > 0,
		"purge_interval_hours": 24,
		"deletion_scope":       []string{"assessment_responses", "profiles", "team_reports"},
	}
}
