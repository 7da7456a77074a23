// Package pipeline runs the weekly Paris weather job end to end.
package pipeline

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"time"

	"github.com/lox/parisweather/internal/charts"
	"github.com/lox/parisweather/internal/export"
	"github.com/lox/parisweather/internal/fsutil"
	"github.com/lox/parisweather/internal/ingest"
	"github.com/lox/parisweather/internal/metrics"
	"github.com/lox/parisweather/internal/models"
	"github.com/lox/parisweather/internal/report"
	"github.com/lox/parisweather/internal/store"
)

// DefaultDataDir is where artifacts are written when no directory is set.
const DefaultDataDir = "data"

// payloadSource tags archived response bodies.
const payloadSource = "open-meteo"

// Fetcher retrieves one table of daily temperatures.
type Fetcher interface {
	FetchDaily(ctx context.Context) (*models.Table, []byte, *ingest.FetchResult, error)
}

// Pipeline fetches the forecast, draws the charts, exports the CSV and
// prints the summary. Steps run in order and the first error stops the run.
type Pipeline struct {
	fetcher  Fetcher
	renderer charts.Renderer
	dataDir  string
	out      io.Writer
	store    *store.Store
}

// New creates a pipeline writing artifacts under dataDir and console output
// to out. An empty dataDir uses DefaultDataDir.
func New(fetcher Fetcher, renderer charts.Renderer, dataDir string, out io.Writer) *Pipeline {
	if dataDir == "" {
		dataDir = DefaultDataDir
	}
	return &Pipeline{
		fetcher:  fetcher,
		renderer: renderer,
		dataDir:  dataDir,
		out:      out,
	}
}

// SetStore enables archiving each fetch into st.
func (p *Pipeline) SetStore(st *store.Store) {
	p.store = st
}

// Run executes one full job.
func (p *Pipeline) Run(ctx context.Context) error {
	fmt.Fprintln(p.out, "Fetching weather data...")
	table, body, result, err := p.fetcher.FetchDaily(ctx)
	if err != nil {
		p.recordFailedFetch(result)
		return fmt.Errorf("fetch weather data: %w", err)
	}

	if err := fsutil.EnsureDir(p.dataDir); err != nil {
		return err
	}

	fmt.Fprintln(p.out, "Generating charts...")
	steps := []struct {
		name   string
		file   string
		render func(*models.Table, string) error
	}{
		{"trend chart", charts.TrendFile, p.renderer.Trend},
		{"histogram", charts.HistogramFile, p.renderer.Histogram},
		{"box plot", charts.BoxPlotFile, p.renderer.BoxPlot},
	}
	for _, step := range steps {
		if err := step.render(table, filepath.Join(p.dataDir, step.file)); err != nil {
			return fmt.Errorf("%s: %w", step.name, err)
		}
	}

	if err := export.WriteCSV(filepath.Join(p.dataDir, export.CSVFile), table); err != nil {
		return fmt.Errorf("export csv: %w", err)
	}

	if p.store != nil {
		if err := p.archive(table, body, result); err != nil {
			return fmt.Errorf("archive: %w", err)
		}
	}

	if err := report.Print(p.out, report.Summarize(table)); err != nil {
		return fmt.Errorf("print summary: %w", err)
	}
	fmt.Fprintf(p.out, "✅ Files saved in '%s' folder\n", p.dataDir)

	metrics.LastSuccess.SetToCurrentTime()
	return nil
}

// archive stores the audit row, the raw body and the parsed days.
func (p *Pipeline) archive(table *models.Table, body []byte, result *ingest.FetchResult) error {
	run := fetchRun(result)
	if err := p.store.RecordFetchRun(run); err != nil {
		return err
	}
	if len(body) > 0 {
		id, err := p.store.StoreRawPayload(run.ID, payloadSource, body)
		if err != nil {
			return err
		}
		if id == 0 {
			p.logUnchangedPayload(body)
		}
	}
	if err := p.store.UpsertRecords(run.ID, table); err != nil {
		return err
	}

	if total, err := p.store.CountRecords(); err == nil {
		log.Printf("pipeline: archived %d days (%d in archive)", table.Len(), total)
	}
	return nil
}

// logUnchangedPayload notes that the forecast matches one already archived.
func (p *Pipeline) logUnchangedPayload(body []byte) {
	prev, err := p.store.GetRawPayloadByHash(store.HashPayload(body))
	if err != nil || prev == nil {
		return
	}
	if prev.FetchRunID.Valid {
		log.Printf("pipeline: forecast unchanged since fetch run %d", prev.FetchRunID.Int64)
	} else {
		log.Printf("pipeline: forecast unchanged since %s", prev.FetchedAt.Format(time.RFC3339))
	}
}

// recordFailedFetch keeps an audit row for a failed fetch. Archive errors
// here are only logged so the fetch error is what the caller sees.
func (p *Pipeline) recordFailedFetch(result *ingest.FetchResult) {
	if p.store == nil || result == nil {
		return
	}
	if err := p.store.RecordFetchRun(fetchRun(result)); err != nil {
		log.Printf("pipeline: record failed fetch: %v", err)
	}
}

func fetchRun(result *ingest.FetchResult) *store.FetchRun {
	if result == nil {
		return &store.FetchRun{StartedAt: time.Now().UTC()}
	}
	run := &store.FetchRun{
		StartedAt: result.StartedAt,
		URL:       result.URL,
		Success:   result.Error == nil,
	}
	if !result.FinishedAt.IsZero() {
		run.FinishedAt = sql.NullTime{Time: result.FinishedAt, Valid: true}
	}
	if result.HTTPStatus != 0 {
		run.HTTPStatus = sql.NullInt64{Int64: int64(result.HTTPStatus), Valid: true}
	}
	run.ResponseSizeBytes = sql.NullInt64{Int64: int64(result.ResponseSize), Valid: true}
	if result.Error == nil {
		run.RecordsParsed = sql.NullInt64{Int64: int64(result.RecordCount), Valid: true}
	} else {
		run.ErrorMessage = sql.NullString{String: result.Error.Error(), Valid: true}
	}
	return run
}
