package recorder

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"ChartBalance/internal/model"
)

// SQLiteRecorder persists assessments to a SQLite database.
type SQLiteRecorder struct {
	db     *sql.DB
	mu     sync.Mutex
	logger *zap.Logger
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string, logger *zap.Logger) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL lets dashboards read while the service writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, logger: logger}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	logger.Info("sqlite recorder opened", zap.String("path", dbPath))
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS assessments (
			id          TEXT PRIMARY KEY,
			timestamp   INTEGER NOT NULL,
			source      TEXT,
			resolved    INTEGER,
			fire        INTEGER,
			earth       INTEGER,
			air         INTEGER,
			water       INTEGER,
			cardinal    INTEGER,
			fixed       INTEGER,
			mutable     INTEGER,
			ruler_bonus TEXT,
			balanced    INTEGER,
			payload     TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_assessments_ts ON assessments(timestamp)`,

		`CREATE TABLE IF NOT EXISTS positions (
			assessment_id TEXT NOT NULL,
			point         TEXT NOT NULL,
			sign          TEXT,
			PRIMARY KEY (assessment_id, point)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_positions_point_sign ON positions(point, sign)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordAssessment(a *model.Assessment) error {
	payload, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("marshal assessment: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	var bonus sql.NullString
	if a.RulerBonus != nil {
		bonus = sql.NullString{String: string(a.RulerBonus.Point), Valid: true}
	}

	_, err = tx.Exec(`INSERT INTO assessments
		(id, timestamp, source, resolved,
		 fire, earth, air, water,
		 cardinal, fixed, mutable,
		 ruler_bonus, balanced, payload)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		a.ID, a.CreatedAt.Unix(), a.Source, a.Positions.Resolved(),
		a.ElementScores[model.Fire], a.ElementScores[model.Earth],
		a.ElementScores[model.Air], a.ElementScores[model.Water],
		a.QualityCounts[model.Cardinal], a.QualityCounts[model.Fixed], a.QualityCounts[model.Mutable],
		bonus, a.Balance.Balanced, string(payload),
	)
	if err != nil {
		return fmt.Errorf("insert assessment: %w", err)
	}

	for _, pt := range model.Points {
		var sign sql.NullString
		if s, ok := a.Positions.Get(pt); ok {
			sign = sql.NullString{String: string(s), Valid: true}
		}
		if _, err := tx.Exec(`INSERT INTO positions (assessment_id, point, sign) VALUES (?,?,?)`,
			a.ID, string(pt), sign); err != nil {
			return fmt.Errorf("insert position %s: %w", pt, err)
		}
	}
	return tx.Commit()
}

func (r *SQLiteRecorder) GetAssessment(id string) (*model.Assessment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var payload string
	err := r.db.QueryRow(`SELECT payload FROM assessments WHERE id = ?`, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query assessment: %w", err)
	}

	var a model.Assessment
	if err := json.Unmarshal([]byte(payload), &a); err != nil {
		return nil, fmt.Errorf("decode assessment %s: %w", id, err)
	}
	return &a, nil
}

func (r *SQLiteRecorder) ListAssessments(limit int) ([]model.AssessmentSummary, error) {
	if limit <= 0 {
		limit = 20
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(`SELECT id, timestamp, source, resolved, fire, earth, air, water
		FROM assessments ORDER BY timestamp DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list assessments: %w", err)
	}
	return scanSummaries(rows)
}

func (r *SQLiteRecorder) FindByPosition(pt model.Point, sign model.Sign, limit int) ([]model.AssessmentSummary, error) {
	if limit <= 0 {
		limit = 20
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(`SELECT a.id, a.timestamp, a.source, a.resolved, a.fire, a.earth, a.air, a.water
		FROM assessments a JOIN positions p ON p.assessment_id = a.id
		WHERE p.point = ? AND p.sign = ?
		ORDER BY a.timestamp DESC, a.rowid DESC LIMIT ?`, string(pt), string(sign), limit)
	if err != nil {
		return nil, fmt.Errorf("find by position: %w", err)
	}
	return scanSummaries(rows)
}

func scanSummaries(rows *sql.Rows) ([]model.AssessmentSummary, error) {
	defer rows.Close()

	var out []model.AssessmentSummary
	for rows.Next() {
		var s model.AssessmentSummary
		var ts int64
		if err := rows.Scan(&s.ID, &ts, &s.Source, &s.Resolved, &s.Fire, &s.Earth, &s.Air, &s.Water); err != nil {
			return nil, fmt.Errorf("scan assessment: %w", err)
		}
		s.CreatedAt = time.Unix(ts, 0).UTC()
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	r.logger.Info("closing sqlite recorder")
	return r.db.Close()
}
