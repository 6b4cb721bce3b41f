// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

// Package store persists the outcome of batch parses in DuckDB.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/google/uuid"

	"github.com/jcodagnone/coordparse/spatial"
)

// Run is one invocation of a batch parse.
type Run struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
	Total     int       `json:"total"`
	Failed    int       `json:"failed"`
}

// Result is the outcome of parsing one input line. Failed lines have a nil
// Point and a non-empty Error.
type Result struct {
	RunID     string         `json:"run_id"`
	Line      int            `json:"line"`
	Input     string         `json:"input"`
	Format    string         `json:"format,omitempty"`
	Point     *spatial.Point `json:"point,omitempty"`
	H3Cell    uint64         `json:"h3,omitempty"`
	Error     string         `json:"error,omitempty"`
	ErrorType string         `json:"error_type,omitempty"`
}

// ResultRepository handles persistence of batch runs and their results.
type ResultRepository interface {
	// CreateSchema creates the runs and parse_results tables
	CreateSchema() error

	// CreateRun registers a new run for source and returns it
	CreateRun(source string) (*Run, error)

	// SaveResults inserts results under runID in a single transaction
	SaveResults(runID string, results []*Result) error

	// ListResults returns the results of a run ordered by line
	ListResults(runID string, limit, offset int) ([]*Result, error)

	// CountResults returns how many results a run has and how many failed
	CountResults(runID string) (total, failed int, err error)

	// Runs returns every run, newest first, with its counters
	Runs() ([]*Run, error)

	// DB returns the underlying database connection
	DB() *sql.DB
}

type sqlResultRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewResultRepository creates a repository over an open DuckDB handle.
func NewResultRepository(db *sql.DB) ResultRepository {
	return &sqlResultRepository{db: db, now: time.Now}
}

// Open opens (or creates) the DuckDB file at path and makes sure the schema
// exists. An empty path opens an in-memory database.
func Open(path string) (ResultRepository, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("opening duckdb %q: %w", path, err)
	}

	repo := NewResultRepository(db)
	if err := repo.CreateSchema(); err != nil {
		db.Close()

		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return repo, nil
}

// NewRunID returns a fresh run identifier.
func NewRunID() string {
	return uuid.NewString()
}

func (r *sqlResultRepository) DB() *sql.DB {
	return r.db
}

func (r *sqlResultRepository) CreateSchema() error {
	_, err := r.db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id VARCHAR PRIMARY KEY,
			source VARCHAR NOT NULL,
			created_at TIMESTAMP NOT NULL
		);

		CREATE TABLE IF NOT EXISTS parse_results (
			run_id VARCHAR NOT NULL,
			line INTEGER NOT NULL,
			input VARCHAR NOT NULL,
			format VARCHAR,
			point VARCHAR,
			h3_cell UBIGINT,
			error VARCHAR,
			error_type VARCHAR,
			PRIMARY KEY (run_id, line)
		);
	`)

	return err
}

func (r *sqlResultRepository) CreateRun(source string) (*Run, error) {
	run := &Run{ID: NewRunID(), Source: source, CreatedAt: r.now().UTC()}

	_, err := r.db.Exec(`INSERT INTO runs(id, source, created_at) VALUES (?, ?, ?)`,
		run.ID, run.Source, run.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("inserting run: %w", err)
	}

	return run, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func (r *sqlResultRepository) SaveResults(runID string, results []*Result) error {
	if runID == "" {
		return errors.New("run id can't be empty")
	}

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO parse_results(run_id, line, input, format, point, h3_cell, error, error_type)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		if rErr := tx.Rollback(); rErr != nil {
			err = rErr
		}

		return err
	}
	defer stmt.Close()

	for _, res := range results {
		var (
			point any
			cell  any
		)

		if res.Point != nil {
			if err = res.Point.Validate(); err != nil {
				if rErr := tx.Rollback(); rErr != nil {
					err = rErr
				}

				return fmt.Errorf("line %d: %w", res.Line, err)
			}

			if point, err = res.Point.Value(); err != nil {
				if rErr := tx.Rollback(); rErr != nil {
					err = rErr
				}

				return err
			}

			if res.H3Cell != 0 {
				cell = res.H3Cell
			}
		}

		_, err = stmt.Exec(
			runID,
			res.Line,
			res.Input,
			nullString(res.Format),
			point,
			cell,
			nullString(res.Error),
			nullString(res.ErrorType),
		)
		if err != nil {
			if rErr := tx.Rollback(); rErr != nil {
				err = rErr
			}

			return fmt.Errorf("inserting line %d: %w", res.Line, err)
		}

		res.RunID = runID
	}

	return tx.Commit()
}

func (r *sqlResultRepository) ListResults(runID string, limit, offset int) ([]*Result, error) {
	query := `
		SELECT run_id, line, input, format, point, h3_cell, error, error_type
		FROM parse_results
		WHERE run_id = ?
		ORDER BY line
	`
	args := []any{runID}

	if limit > 0 {
		query += " LIMIT ? OFFSET ?"

		args = append(args, limit, offset)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*Result

	for rows.Next() {
		res := &Result{}

		var (
			format, point, errMsg, errType sql.NullString
			cell                           sql.NullInt64
		)

		if err := rows.Scan(&res.RunID, &res.Line, &res.Input, &format, &point, &cell, &errMsg, &errType); err != nil {
			return nil, err
		}

		res.Format = format.String
		res.Error = errMsg.String
		res.ErrorType = errType.String

		if point.Valid {
			res.Point = &spatial.Point{}
			if err := res.Point.Scan(point.String); err != nil {
				return nil, err
			}
		}

		if cell.Valid {
			res.H3Cell = uint64(cell.Int64)
		}

		results = append(results, res)
	}

	return results, rows.Err()
}

func (r *sqlResultRepository) CountResults(runID string) (int, int, error) {
	var total, failed int

	err := r.db.QueryRow(`
		SELECT count(*), count(error)
		FROM parse_results
		WHERE run_id = ?
	`, runID).Scan(&total, &failed)

	return total, failed, err
}

func (r *sqlResultRepository) Runs() ([]*Run, error) {
	rows, err := r.db.Query(`
		SELECT r.id, r.source, r.created_at, count(p.line), count(p.error)
		FROM runs r
		LEFT JOIN parse_results p ON p.run_id = r.id
		GROUP BY r.id, r.source, r.created_at
		ORDER BY r.created_at DESC, r.id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*Run

	for rows.Next() {
		run := &Run{}
		if err := rows.Scan(&run.ID, &run.Source, &run.CreatedAt, &run.Total, &run.Failed); err != nil {
			return nil, err
		}

		runs = append(runs, run)
	}

	return runs, rows.Err()
}
