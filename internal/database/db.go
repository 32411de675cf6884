package database

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const dbFileName = "teamsynth.db"

// DB represents the database connection with pooling
type DB struct {
	*sql.DB
	pool     *ConnectionPool
	prepared map[string]*sql.Stmt
	mutex    sync.RWMutex
}

// ConnectionPool manages database connection pooling
type ConnectionPool struct {
	db           *sql.DB
	maxOpenConns int
	maxIdleConns int
	maxLifetime  time.Duration
}

// NewConnectionPool applies pool limits to db
func NewConnectionPool(db *sql.DB, maxOpen, maxIdle int, maxLifetime time.Duration) *ConnectionPool {
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(maxLifetime)

	return &ConnectionPool{
		db:           db,
		maxOpenConns: maxOpen,
		maxIdleConns: maxIdle,
		maxLifetime:  maxLifetime,
	}
}

// GetStats returns connection pool statistics
func (cp *ConnectionPool) GetStats() map[string]interface{} {
	stats := cp.db.Stats()

	return map[string]interface{}{
		"open_connections":     stats.OpenConnections,
		"in_use":               stats.InUse,
		"idle":                 stats.Idle,
		"max_open_connections": cp.maxOpenConns,
		"max_idle_connections": cp.maxIdleConns,
		"max_lifetime_seconds": cp.maxLifetime.Seconds(),
		"wait_count":           stats.WaitCount,
		"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
	}
}

// NewDB opens (creating if needed) the store under dataDir and migrates it
func NewDB(dataDir string) (*DB, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFileName)
	connStr := fmt.Sprintf("file:%s?_journal_mode=WAL&_synchronous=NORMAL&_foreign_keys=on&_busy_timeout=5000", dbPath)

	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	pool := NewConnectionPool(db, 8, 2, 5*time.Minute)

	database := &DB{
		DB:       db,
		pool:     pool,
		prepared: make(map[string]*sql.Stmt),
	}

	if err := database.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := database.initPreparedStatements(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize prepared statements: %w", err)
	}

	slog.Info("Database initialized",
		"path", dbPath,
		"max_open_conns", pool.maxOpenConns,
		"max_idle_conns", pool.maxIdleConns)

	return database, nil
}

func (db *DB) migrate() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS assessment_responses (
			id TEXT PRIMARY KEY,
			subject_id TEXT NOT NULL,
			framework TEXT NOT NULL,
			answers TEXT NOT NULL, -- JSON answer set
			created_at DATETIME NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS profiles (
			id TEXT PRIMARY KEY,
			subject_id TEXT NOT NULL,
			profile TEXT NOT NULL, -- JSON unified profile
			confidence REAL NOT NULL,
			fallback BOOLEAN DEFAULT FALSE,
			created_at DATETIME NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS team_reports (
			id TEXT PRIMARY KEY,
			team_id TEXT NOT NULL,
			report TEXT NOT NULL, -- JSON team report
			overall_score REAL NOT NULL,
			fallback BOOLEAN DEFAULT FALSE,
			created_at DATETIME NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS team_members (
			report_id TEXT NOT NULL,
			subject_id TEXT NOT NULL,
			PRIMARY KEY (report_id, subject_id),
			FOREIGN KEY (report_id) REFERENCES team_reports(id) ON DELETE CASCADE
		)`,

		`CREATE TABLE IF NOT EXISTS predictions (
			id TEXT PRIMARY KEY,
			team_id TEXT NOT NULL,
			predictions TEXT NOT NULL, -- JSON prediction list
			fallback BOOLEAN DEFAULT FALSE,
			created_at DATETIME NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_assessment_responses_subject ON assessment_responses(subject_id, framework, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_assessment_responses_created ON assessment_responses(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_profiles_subject ON profiles(subject_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_profiles_created ON profiles(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_team_reports_team ON team_reports(team_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_team_members_subject ON team_members(subject_id)`,
		`CREATE INDEX IF NOT EXISTS idx_predictions_team ON predictions(team_id, created_at DESC)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute migration: %w", err)
		}
	}

	return nil
}

// Names of the prepared statements used by the repository.
const (
	stmtInsertAssessment = "insert_assessment"
	stmtInsertProfile    = "insert_profile"
	stmtInsertTeamReport = "insert_team_report"
	stmtInsertTeamMember = "insert_team_member"
	stmtInsertPrediction = "insert_prediction"
	stmtLatestProfile    = "latest_profile"
	stmtLatestReport     = "latest_team_report"
)

func (db *DB) initPreparedStatements() error {
	statements := map[string]string{
		stmtInsertAssessment: `INSERT INTO assessment_responses (id, subject_id, framework, answers, created_at)
			VALUES (?, ?, ?, ?, ?)`,

		stmtInsertProfile: `INSERT INTO profiles (id, subject_id, profile, confidence, fallback, created_at)
			VALUES (?, ?, ?, ?, ?, ?)`,

		stmtInsertTeamReport: `INSERT INTO team_reports (id, team_id, report, overall_score, fallback, created_at)
			VALUES (?, ?, ?, ?, ?, ?)`,

		stmtInsertTeamMember: `INSERT OR IGNORE INTO team_members (report_id, subject_id) VALUES (?, ?)`,

		stmtInsertPrediction: `INSERT INTO predictions (id, team_id, predictions, fallback, created_at)
			VALUES (?, ?, ?, ?, ?)`,

		stmtLatestProfile: `SELECT id, subject_id, profile, fallback, created_at
			FROM profiles WHERE subject_id = ? ORDER BY created_at DESC LIMIT 1`,

		stmtLatestReport: `SELECT id, team_id, report, fallback, created_at
			FROM team_reports WHERE team_id = ? ORDER BY created_at DESC LIMIT 1`,
	}

	db.mutex.Lock()
	defer db.mutex.Unlock()

	for name, query := range statements {
		stmt, err := db.Prepare(query)
		if err != nil {
			return fmt.Errorf("failed to prepare statement %s: %w", name, err)
		}
		db.prepared[name] = stmt

		slog.Debug("Prepared statement initialized", "name", name)
	}

	return nil
}

// GetPreparedStatement retrieves a prepared statement
func (db *DB) GetPreparedStatement(name string) (*sql.Stmt, error) {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	stmt, exists := db.prepared[name]
	if !exists {
		return nil, fmt.Errorf("prepared statement %s not found", name)
	}

	return stmt, nil
}

// GetPoolStats returns database connection pool statistics
func (db *DB) GetPoolStats() map[string]interface{} {
	return db.pool.GetStats()
}

// Close closes the prepared statements and the connection
func (db *DB) Close() error {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	for name, stmt := range db.prepared {
		if err := stmt.Close(); err != nil {
			slog.Warn("Failed to close prepared statement", "name", name, "error", err)
		}
	}
	db.prepared = make(map[string]*sql.Stmt)

	return db.DB.Close()
}
