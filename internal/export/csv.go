// Package export writes the weather record table to CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/lox/parisweather/internal/fsutil"
	"github.com/lox/parisweather/internal/metrics"
	"github.com/lox/parisweather/internal/models"
)

// CSVFile is the export file name inside the data directory.
const CSVFile = "paris_weather.csv"

// Header is the column order of the exported CSV.
var Header = []string{"date", "max_temp", "min_temp", "avg_temp"}

// WriteCSV writes the table to path with a header row and one row per day,
// replacing any existing file.
func WriteCSV(path string, table *models.Table) error {
	f, err := fsutil.Create(path)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if err := w.Write(Header); err != nil {
		f.Close()
		return &fsutil.StorageError{Op: "write", Path: path, Err: err}
	}
	for _, r := range table.Records {
		row := []string{r.Date, formatFloat(r.MaxTemp), formatFloat(r.MinTemp), formatFloat(r.AvgTemp)}
		if err := w.Write(row); err != nil {
			f.Close()
			return &fsutil.StorageError{Op: "write", Path: path, Err: err}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return &fsutil.StorageError{Op: "write", Path: path, Err: err}
	}
	if err := fsutil.Close(f); err != nil {
		return err
	}

	metrics.FilesWritten.WithLabelValues("csv").Inc()
	return nil
}

// ReadCSV loads a table previously written by WriteCSV. The stored average
// column is kept as written rather than recomputed.
func ReadCSV(path string) (*models.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("read csv: %s is empty", path)
	}
	if strings.Join(rows[0], ",") != strings.Join(Header, ",") {
		return nil, fmt.Errorf("read csv: unexpected header %v", rows[0])
	}

	table := &models.Table{Records: make([]models.Record, 0, len(rows)-1)}
	for i, row := range rows[1:] {
		var vals [3]float64
		for j := range vals {
			v, err := strconv.ParseFloat(row[j+1], 64)
			if err != nil {
				return nil, fmt.Errorf("read csv: line %d column %s: %w", i+2, Header[j+1], err)
			}
			vals[j] = v
		}
		table.Records = append(table.Records, models.Record{
			Date:    row[0],
			MaxTemp: vals[0],
			MinTemp: vals[1],
			AvgTemp: vals[2],
		})
	}
	return table, nil
}

// formatFloat writes the shortest representation that parses back to v,
// always keeping a decimal point so whole degrees read as 5.0, not 5.
func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}
