package store

import (
	"database/sql"
	"time"
)

// FetchRun is the audit record of one forecast API call.
type FetchRun struct {
	ID                int64
	StartedAt         time.Time
	FinishedAt        sql.NullTime
	URL               string
	HTTPStatus        sql.NullInt64
	ResponseSizeBytes sql.NullInt64
	RecordsParsed     sql.NullInt64
	Success           bool
	ErrorMessage      sql.NullString
}

// RecordFetchRun inserts the run and sets its ID.
func (s *Store) RecordFetchRun(run *FetchRun) error {
	result, err := s.db.Exec(`
		INSERT INTO fetch_runs (started_at, finished_at, url, http_status, response_size_bytes, records_parsed, success, error_message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, run.StartedAt, run.FinishedAt, run.URL, run.HTTPStatus, run.ResponseSizeBytes,
		run.RecordsParsed, run.Success, run.ErrorMessage)
	if err != nil {
		return err
	}

	run.ID, err = result.LastInsertId()
	return err
}

// GetLatestFetchRun returns the most recent run, or nil if none exist.
func (s *Store) GetLatestFetchRun() (*FetchRun, error) {
	row := s.db.QueryRow(`
		SELECT id, started_at, finished_at, url, http_status, response_size_bytes, records_parsed, success, error_message
		FROM fetch_runs
		ORDER BY id DESC
		LIMIT 1
	`)

	var run FetchRun
	err := row.Scan(&run.ID, &run.StartedAt, &run.FinishedAt, &run.URL, &run.HTTPStatus,
		&run.ResponseSizeBytes, &run.RecordsParsed, &run.Success, &run.ErrorMessage)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}
