// Package archive persists completed test runs to a DuckDB database so
// past submissions survive dashboard restarts.
package archive

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/Akash-N-Exotel/botcepter/internal/result"
)

// schemaDDL holds the archive schema definition.
//
//go:embed schema.sql
var schemaDDL string

// SchemaDDL returns the DDL used for initializing archive databases.
func SchemaDDL() string {
	return schemaDDL
}

// EnsureSchema applies the schema DDL to the provided connection.
func EnsureSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("archive: db is nil")
	}
	_, err := db.Exec(schemaDDL)
	return err
}

// DB is an open archive database.
type DB struct {
	conn *sql.DB
}

// Open opens (creating if needed) the archive at the given path.
func Open(path string) (*DB, error) {
	if path == "" {
		return nil, errors.New("archive: path is required")
	}
	conn, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	if err := EnsureSchema(conn); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("apply archive schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the underlying connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Run is one archived submission: every flattened result of one POST to the
// evaluator, under a single archive run ID.
type Run struct {
	ID          string
	SubmittedAt time.Time
	BotName     string
	Results     []result.QuestionResult
}

// RunSummary is the stored aggregate for one archived run.
type RunSummary struct {
	ID          string
	SubmittedAt time.Time
	BotName     string
	Summary     result.Summary
}

// InsertRun stores a run and its per-question rows in one transaction.
func (db *DB) InsertRun(ctx context.Context, run Run) error {
	if run.ID == "" {
		return errors.New("archive: run id is required")
	}
	summary := result.Summarize(run.Results)

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin archive tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO test_runs (run_id, submitted_at, bot_name, total, passed, failed, pass_rate)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.SubmittedAt.UTC(), run.BotName,
		summary.Total, summary.Passed, summary.Failed, summary.PassRate,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for seq, r := range run.Results {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO question_results (run_id, seq, test_run_id, session_id, question,
			     expected_answer, actual_answer, event, passed,
			     expected_objectives, expected_tools, used_objectives, used_tools)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID, seq, r.TestRunID, r.SessionID, r.Question,
			r.ExpectedAnswer, r.ActualAnswer, r.Event, r.Passed,
			tagsJSON(r.ExpectedObjectives), tagsJSON(r.ExpectedTools),
			tagsJSON(r.UsedObjectives), tagsJSON(r.UsedTools),
		)
		if err != nil {
			return fmt.Errorf("insert result %d: %w", seq, err)
		}
	}
	return tx.Commit()
}

// Summaries lists archived runs, most recent first.
func (db *DB) Summaries(ctx context.Context) ([]RunSummary, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT run_id, submitted_at, bot_name, total, passed, failed, pass_rate
		 FROM test_runs ORDER BY submitted_at DESC, run_id DESC`)
	if err != nil {
		return nil, fmt.Errorf("query run summaries: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var s RunSummary
		if err := rows.Scan(&s.ID, &s.SubmittedAt, &s.BotName,
			&s.Summary.Total, &s.Summary.Passed, &s.Summary.Failed, &s.Summary.PassRate); err != nil {
			return nil, fmt.Errorf("scan run summary: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// RunResults loads the flattened results of one archived run in insertion
// order.
func (db *DB) RunResults(ctx context.Context, runID string) ([]result.QuestionResult, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT test_run_id, session_id, question, expected_answer, actual_answer, event, passed,
		     expected_objectives, expected_tools, used_objectives, used_tools
		 FROM question_results WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, fmt.Errorf("query run results: %w", err)
	}
	defer rows.Close()

	var out []result.QuestionResult
	for rows.Next() {
		var r result.QuestionResult
		var expectedObjectives, expectedTools, usedObjectives, usedTools string
		if err := rows.Scan(&r.TestRunID, &r.SessionID, &r.Question, &r.ExpectedAnswer,
			&r.ActualAnswer, &r.Event, &r.Passed,
			&expectedObjectives, &expectedTools, &usedObjectives, &usedTools); err != nil {
			return nil, fmt.Errorf("scan run result: %w", err)
		}
		r.ExpectedObjectives = tagsFromJSON(expectedObjectives)
		r.ExpectedTools = tagsFromJSON(expectedTools)
		r.UsedObjectives = tagsFromJSON(usedObjectives)
		r.UsedTools = tagsFromJSON(usedTools)
		out = append(out, r)
	}
	return out, rows.Err()
}

func tagsJSON(tags []string) string {
	if tags == nil {
		tags = []string{}
	}
	data, _ := json.Marshal(tags)
	return string(data)
}

func tagsFromJSON(data string) []string {
	var tags []string
	if err := json.Unmarshal([]byte(data), &tags); err != nil || tags == nil {
		return []string{}
	}
	return tags
}
