// Package store handles SQLite persistence of scored runs.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/ughe/ocreval/accrpt"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Fixed width so that stored times sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Store wraps SQLite access for run history.
type Store struct {
	db *sql.DB
}

// Run is one recorded accuracy measurement.
type Run struct {
	ID         string
	RecordedAt time.Time
	Name       string
	Correct    string
	Generated  string
	Report     *accrpt.Report
}

// CharAggregate is a character's counts over several runs.
type CharAggregate struct {
	Char   rune
	Count  int64
	Missed int64
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			recorded_at TEXT NOT NULL,
			name TEXT NOT NULL,
			correct TEXT NOT NULL,
			generated TEXT NOT NULL,
			characters INTEGER NOT NULL,
			errors INTEGER NOT NULL,
			report TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS run_char_stats (
			run_id TEXT NOT NULL,
			char TEXT NOT NULL,
			count INTEGER NOT NULL,
			missed INTEGER NOT NULL,
			PRIMARY KEY (run_id, char)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_recorded_at ON runs(recorded_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Record stores a run with its per-character stats and returns its ID. The
// ID and time are filled in when empty.
func (s *Store) Record(ctx context.Context, run Run) (id string, err error) {
	if run.Report == nil {
		return "", fmt.Errorf("run %q has no report", run.Name)
	}
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.RecordedAt.IsZero() {
		run.RecordedAt = time.Now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, recorded_at, name, correct, generated, characters, errors, report)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.RecordedAt.UTC().Format(timeLayout),
		run.Name,
		run.Correct,
		run.Generated,
		run.Report.Characters,
		run.Report.Errors,
		accrpt.Format(run.Report),
	)
	if err != nil {
		return "", err
	}

	if len(run.Report.Chars) > 0 {
		stmt, perr := tx.PrepareContext(ctx,
			`INSERT INTO run_char_stats (run_id, char, count, missed) VALUES (?, ?, ?, ?)`)
		if perr != nil {
			err = perr
			return "", err
		}
		defer stmt.Close()
		for _, c := range run.Report.Chars {
			if _, err = stmt.ExecContext(ctx, run.ID, string(c.Char), c.Count, c.Missed); err != nil {
				return "", err
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return "", err
	}
	return run.ID, nil
}

// Runs returns the most recent runs, newest first. A limit of 0 returns all.
func (s *Store) Runs(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, recorded_at, name, correct, generated, report
		 FROM runs ORDER BY recorded_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var at, text string
		if err := rows.Scan(&run.ID, &at, &run.Name, &run.Correct, &run.Generated, &text); err != nil {
			return nil, err
		}
		if run.RecordedAt, err = time.Parse(timeLayout, at); err != nil {
			return nil, fmt.Errorf("run %s: %w", run.ID, err)
		}
		if run.Report, err = accrpt.Parse(text); err != nil {
			return nil, fmt.Errorf("run %s: %w", run.ID, err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return runs, nil
}

// WeakChars aggregates character stats over the most recent runs and returns
// the characters with the most misses first.
func (s *Store) WeakChars(ctx context.Context, window, top int) ([]CharAggregate, error) {
	if window <= 0 || top <= 0 {
		return nil, nil
	}
	query := `WITH recent_runs AS (
		SELECT id FROM runs
		ORDER BY recorded_at DESC, rowid DESC
		LIMIT ?
	)
	SELECT cs.char, SUM(cs.count) AS count, SUM(cs.missed) AS missed
	FROM run_char_stats cs
	JOIN recent_runs r ON r.id = cs.run_id
	GROUP BY cs.char
	HAVING SUM(cs.missed) > 0
	ORDER BY missed DESC, cs.char ASC
	LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, window, top)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []CharAggregate
	for rows.Next() {
		var c string
		var agg CharAggregate
		if err := rows.Scan(&c, &agg.Count, &agg.Missed); err != nil {
			return nil, err
		}
		agg.Char = []rune(c)[0]
		result = append(result, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
