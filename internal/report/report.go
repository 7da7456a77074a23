// Package report prints the run summary to the console.
package report

import (
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/lox/parisweather/internal/models"
	"github.com/lox/parisweather/internal/stats"
)

// Summary holds the three aggregates printed after a run.
type Summary struct {
	MeanAvg float64 // mean of avg_temp
	MaxTemp float64 // max of max_temp
	MinTemp float64 // min of min_temp
}

// Summarize computes the summary for a table. It does not modify the table.
func Summarize(table *models.Table) Summary {
	return Summary{
		MeanAvg: stats.Mean(table.AvgTemps()),
		MaxTemp: stats.Max(table.MaxTemps()),
		MinTemp: stats.Min(table.MinTemps()),
	}
}

// Print writes the summary lines, one decimal place with a °C suffix.
func Print(w io.Writer, s Summary) error {
	p := message.NewPrinter(language.English)
	if _, err := p.Fprintf(w, "Average temperature: %.1f°C\n", s.MeanAvg); err != nil {
		return err
	}
	if _, err := p.Fprintf(w, "Max temperature: %.1f°C\n", s.MaxTemp); err != nil {
		return err
	}
	_, err := p.Fprintf(w, "Min temperature: %.1f°C\n", s.MinTemp)
	return err
}
