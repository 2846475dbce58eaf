// Package recorder keeps a history of planning runs in a local SQLite
// database, one row per run plus one row per planned parameter.
package recorder

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/funvibe/funrelay/internal/relay"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	created_at TEXT NOT NULL,
	command    TEXT NOT NULL,
	source     TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS plans (
	run_id     TEXT NOT NULL REFERENCES runs(id),
	position   INTEGER NOT NULL,
	source     TEXT NOT NULL,
	category   TEXT NOT NULL,
	forwarding TEXT NOT NULL,
	target     TEXT NOT NULL,
	conversion TEXT NOT NULL
);
`

// Sink is what callers record through. The SQLite Recorder implements
// it; Discard stands in when recording is off, so call sites never
// branch on a nil recorder.
type Sink interface {
	Record(command, source string, plans []relay.Plan) (string, error)
	Close() error
}

// Discard drops every record.
type Discard struct{}

func (Discard) Record(string, string, []relay.Plan) (string, error) { return "", nil }

func (Discard) Close() error { return nil }

type Recorder struct {
	db *sql.DB
}

func Open(path string) (*Recorder, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("recorder: open %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("recorder: init schema: %w", err)
	}
	return &Recorder{db: db}, nil
}

func (r *Recorder) Close() error {
	return r.db.Close()
}

// Record stores one run and its plans and returns the run id.
func (r *Recorder) Record(command, source string, plans []relay.Plan) (string, error) {
	id := uuid.NewString()

	tx, err := r.db.Begin()
	if err != nil {
		return "", fmt.Errorf("recorder: begin: %w", err)
	}
	createdAt := time.Now().UTC().Format(time.RFC3339Nano)
	if _, err := tx.Exec(
		`INSERT INTO runs (id, created_at, command, source) VALUES (?, ?, ?, ?)`,
		id, createdAt, command, source); err != nil {
		tx.Rollback()
		return "", fmt.Errorf("recorder: insert run: %w", err)
	}
	for i, p := range plans {
		if _, err := tx.Exec(
			`INSERT INTO plans (run_id, position, source, category, forwarding, target, conversion)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			id, i, p.Source.String(), p.Desc.Category.String(),
			p.Forwarding.String(), p.Target.String(), p.Conversion.String()); err != nil {
			tx.Rollback()
			return "", fmt.Errorf("recorder: insert plan: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("recorder: commit: %w", err)
	}
	return id, nil
}

// Run is one recorded invocation.
type Run struct {
	ID        string
	CreatedAt time.Time
	Command   string
	Source    string
	Plans     []PlanRow
}

// PlanRow is one stored plan, types rendered as strings.
type PlanRow struct {
	Position   int
	Source     string
	Category   string
	Forwarding string
	Target     string
	Conversion string
}

// Recent returns the latest runs, newest first.
func (r *Recorder) Recent(limit int) ([]Run, error) {
	rows, err := r.db.Query(
		`SELECT id, created_at, command, source FROM runs
		 ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("recorder: query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var createdAt string
		if err := rows.Scan(&run.ID, &createdAt, &run.Command, &run.Source); err != nil {
			return nil, fmt.Errorf("recorder: scan run: %w", err)
		}
		run.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("recorder: bad timestamp %q: %w", createdAt, err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("recorder: iterate runs: %w", err)
	}

	for i := range runs {
		if runs[i].Plans, err = r.plansOf(runs[i].ID); err != nil {
			return nil, err
		}
	}
	return runs, nil
}

func (r *Recorder) plansOf(runID string) ([]PlanRow, error) {
	rows, err := r.db.Query(
		`SELECT position, source, category, forwarding, target, conversion
		 FROM plans WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("recorder: query plans: %w", err)
	}
	defer rows.Close()

	var plans []PlanRow
	for rows.Next() {
		var p PlanRow
		if err := rows.Scan(&p.Position, &p.Source, &p.Category,
			&p.Forwarding, &p.Target, &p.Conversion); err != nil {
			return nil, fmt.Errorf("recorder: scan plan: %w", err)
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}
