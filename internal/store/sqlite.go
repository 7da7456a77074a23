package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/lox/parisweather/internal/models"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Open opens (creating if needed) the SQLite archive at path and applies
// pending migrations.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set journal mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}

	s := New(db)
	if err := s.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// UpsertRecords stores every row of the table, replacing earlier values for
// the same date.
func (s *Store) UpsertRecords(runID int64, table *models.Table) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	var run sql.NullInt64
	if runID > 0 {
		run = sql.NullInt64{Int64: runID, Valid: true}
	}
	var tz sql.NullString
	if table.Timezone != "" {
		tz = sql.NullString{String: table.Timezone, Valid: true}
	}
	now := time.Now().UTC()

	for _, r := range table.Records {
		_, err := tx.Exec(`
			INSERT INTO daily_records (date, max_temp, min_temp, avg_temp, latitude, longitude, timezone, fetch_run_id, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(date) DO UPDATE SET
				max_temp = excluded.max_temp,
				min_temp = excluded.min_temp,
				avg_temp = excluded.avg_temp,
				latitude = excluded.latitude,
				longitude = excluded.longitude,
				timezone = excluded.timezone,
				fetch_run_id = excluded.fetch_run_id,
				updated_at = excluded.updated_at
		`, r.Date, r.MaxTemp, r.MinTemp, r.AvgTemp, table.Latitude, table.Longitude, tz, run, now)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("upsert record %s: %w", r.Date, err)
		}
	}

	return tx.Commit()
}

// GetRecords returns archived records with from <= date <= to, oldest first.
// Dates are YYYY-MM-DD strings.
func (s *Store) GetRecords(from, to string) ([]models.Record, error) {
	rows, err := s.db.Query(`
		SELECT date, max_temp, min_temp, avg_temp
		FROM daily_records
		WHERE date >= ? AND date <= ?
		ORDER BY date ASC
	`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.Record
	for rows.Next() {
		var r models.Record
		if err := rows.Scan(&r.Date, &r.MaxTemp, &r.MinTemp, &r.AvgTemp); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// CountRecords returns the number of archived days.
func (s *Store) CountRecords() (int, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM daily_records").Scan(&n)
	return n, err
}
