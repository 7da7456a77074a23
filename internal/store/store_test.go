package store

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/lox/parisweather/internal/models"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	store := New(db)
	if err := store.Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return store
}

func twoDays() *models.Table {
	return &models.Table{
		Latitude:  48.86,
		Longitude: 2.36,
		Timezone:  "Europe/Paris",
		Records: []models.Record{
			models.NewRecord("2024-01-01", 5.0, 1.0),
			models.NewRecord("2024-01-02", 7.0, 3.0),
		},
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	store := setupTestStore(t)

	if err := store.Migrate(); err != nil {
		t.Fatalf("second Migrate: %v", err)
	}
	version, err := store.MigrationVersion()
	if err != nil {
		t.Fatalf("MigrationVersion: %v", err)
	}
	if version != len(migrations) {
		t.Errorf("version = %d, want %d", version, len(migrations))
	}
}

func TestOpen_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.UpsertRecords(0, twoDays()); err != nil {
		t.Fatalf("UpsertRecords: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	n, err := s.CountRecords()
	if err != nil {
		t.Fatalf("CountRecords: %v", err)
	}
	if n != 2 {
		t.Errorf("CountRecords = %d after reopen, want 2", n)
	}
}

func TestUpsertAndGetRecords(t *testing.T) {
	store := setupTestStore(t)

	if err := store.UpsertRecords(0, twoDays()); err != nil {
		t.Fatalf("UpsertRecords: %v", err)
	}

	records, err := store.GetRecords("2024-01-01", "2024-01-31")
	if err != nil {
		t.Fatalf("GetRecords: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}
	if records[0] != models.NewRecord("2024-01-01", 5.0, 1.0) {
		t.Errorf("records[0] = %+v", records[0])
	}
	if records[1].AvgTemp != 5.0 {
		t.Errorf("records[1].AvgTemp = %v, want 5.0", records[1].AvgTemp)
	}

	records, err = store.GetRecords("2024-01-02", "2024-01-02")
	if err != nil {
		t.Fatalf("GetRecords single: %v", err)
	}
	if len(records) != 1 || records[0].Date != "2024-01-02" {
		t.Errorf("GetRecords single = %+v", records)
	}
}

func TestUpsertRecords_Replaces(t *testing.T) {
	store := setupTestStore(t)

	if err := store.UpsertRecords(0, twoDays()); err != nil {
		t.Fatal(err)
	}
	updated := &models.Table{Records: []models.Record{models.NewRecord("2024-01-02", 9.0, 4.0)}}
	if err := store.UpsertRecords(0, updated); err != nil {
		t.Fatal(err)
	}

	n, err := store.CountRecords()
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("CountRecords = %d, want 2", n)
	}
	records, err := store.GetRecords("2024-01-02", "2024-01-02")
	if err != nil {
		t.Fatal(err)
	}
	if records[0].MaxTemp != 9.0 || records[0].AvgTemp != 6.5 {
		t.Errorf("record not replaced: %+v", records[0])
	}
}

func TestRecordFetchRun(t *testing.T) {
	store := setupTestStore(t)

	latest, err := store.GetLatestFetchRun()
	if err != nil {
		t.Fatalf("GetLatestFetchRun empty: %v", err)
	}
	if latest != nil {
		t.Fatal("expected no runs")
	}

	started := time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC)
	run := &FetchRun{
		StartedAt:         started,
		FinishedAt:        sql.NullTime{Time: started.Add(300 * time.Millisecond), Valid: true},
		URL:               "https://api.open-meteo.com/v1/forecast?latitude=48.85",
		HTTPStatus:        sql.NullInt64{Int64: 200, Valid: true},
		ResponseSizeBytes: sql.NullInt64{Int64: 512, Valid: true},
		RecordsParsed:     sql.NullInt64{Int64: 7, Valid: true},
		Success:           true,
	}
	if err := store.RecordFetchRun(run); err != nil {
		t.Fatalf("RecordFetchRun: %v", err)
	}
	if run.ID == 0 {
		t.Fatal("run ID not set")
	}

	latest, err = store.GetLatestFetchRun()
	if err != nil {
		t.Fatalf("GetLatestFetchRun: %v", err)
	}
	if latest.ID != run.ID || !latest.Success || latest.RecordsParsed.Int64 != 7 {
		t.Errorf("latest = %+v", latest)
	}
	if !latest.StartedAt.Equal(started) {
		t.Errorf("StartedAt = %v, want %v", latest.StartedAt, started)
	}

	if err := store.UpsertRecords(run.ID, twoDays()); err != nil {
		t.Fatalf("UpsertRecords with run: %v", err)
	}
}

func TestStoreRawPayload(t *testing.T) {
	store := setupTestStore(t)
	payload := []byte(`{"daily":{"time":["2024-01-01"],"temperature_2m_max":[5.0],"temperature_2m_min":[1.0]}}`)

	id, err := store.StoreRawPayload(0, "open-meteo", payload)
	if err != nil {
		t.Fatalf("StoreRawPayload: %v", err)
	}
	if id == 0 {
		t.Fatal("expected a payload id")
	}

	got, err := store.GetRawPayload(id)
	if err != nil {
		t.Fatalf("GetRawPayload: %v", err)
	}
	if string(got) != string(payload) {
		t.Errorf("payload = %s, want %s", got, payload)
	}

	dup, err := store.StoreRawPayload(0, "open-meteo", payload)
	if err != nil {
		t.Fatalf("StoreRawPayload duplicate: %v", err)
	}
	if dup != 0 {
		t.Errorf("duplicate id = %d, want 0", dup)
	}

	p, err := store.GetRawPayloadByHash(HashPayload(payload))
	if err != nil {
		t.Fatalf("GetRawPayloadByHash: %v", err)
	}
	if p == nil || p.ID != id || p.Source != "open-meteo" {
		t.Errorf("GetRawPayloadByHash = %+v", p)
	}

	missing, err := store.GetRawPayloadByHash("nope")
	if err != nil || missing != nil {
		t.Errorf("GetRawPayloadByHash(nope) = %v, %v", missing, err)
	}
}
