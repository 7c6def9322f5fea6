package grba

import (
	"database/sql"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

var schema = []string{`CREATE TABLE IF NOT EXISTS flux_rows (
	run_id   TEXT NOT NULL,
	tbl      TEXT NOT NULL,
	series   TEXT NOT NULL,
	x        REAL NOT NULL,
	value    REAL,
	kappa    REAL NOT NULL,
	theta_v  REAL NOT NULL,
	y        REAL NOT NULL,
	sigma    REAL NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS flux_runs (
	run_id     TEXT PRIMARY KEY,
	started_at TEXT NOT NULL,
	row_count  INTEGER NOT NULL
)`,
}

// sqliteSink appends rows to a SQLite database, tagged with the run id.
type sqliteSink struct {
	db    *sql.DB
	path  string
	runID string
}

func newSQLiteSink(path, runID string) (*sqliteSink, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// set busy timeout to avoid transient locks when two runs share a file
	if _, err := db.Exec("PRAGMA busy_timeout = 5000;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return &sqliteSink{db: db, path: path, runID: runID}, nil
}

// nullable maps NaN to NULL so failed samples stay distinguishable from zeros.
func nullable(v Real) sql.NullFloat64 {
	return sql.NullFloat64{Float64: v, Valid: !math.IsNaN(v)}
}

func (s *sqliteSink) Write(rows []Row) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare(`INSERT INTO flux_rows (run_id, tbl, series, x, value, kappa, theta_v, y, sigma) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	defer stmt.Close()
	for _, r := range rows {
		if _, err := stmt.Exec(s.runID, r.Table, r.Series, r.X, nullable(r.Value), r.Kappa, r.ThetaV, r.Y, r.Sigma); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert %s row: %w", r.Table, err)
		}
	}
	if _, err := tx.Exec(`INSERT OR REPLACE INTO flux_runs (run_id, started_at, row_count) VALUES (?, ?, ?)`,
		s.runID, time.Now().UTC().Format(time.RFC3339), len(rows)); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (s *sqliteSink) Close() error    { return s.db.Close() }
func (s *sqliteSink) Files() []string { return []string{s.path} }

// LoadRows reads back every row stored for runID, in insertion order.
func LoadRows(db *sql.DB, runID string) ([]Row, error) {
	q := `SELECT tbl, series, x, value, kappa, theta_v, y, sigma FROM flux_rows WHERE run_id = ? ORDER BY rowid`
	rs, err := db.Query(q, runID)
	if err != nil {
		return nil, err
	}
	defer rs.Close()
	var out []Row
	for rs.Next() {
		var r Row
		var v sql.NullFloat64
		if err := rs.Scan(&r.Table, &r.Series, &r.X, &v, &r.Kappa, &r.ThetaV, &r.Y, &r.Sigma); err != nil {
			return nil, err
		}
		r.Value = math.NaN()
		if v.Valid {
			r.Value = v.Float64
		}
		out = append(out, r)
	}
	return out, rs.Err()
}
