// Package charts renders the weekly temperature charts as PNG files.
package charts

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/golang/freetype/truetype"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/lox/parisweather/internal/fsutil"
	"github.com/lox/parisweather/internal/metrics"
	"github.com/lox/parisweather/internal/models"
)

// Output file names inside the data directory.
const (
	TrendFile     = "weather_trend.png"
	HistogramFile = "temperature_histogram.png"
	BoxPlotFile   = "temperature_boxplot.png"
)

// ErrEmptyTable is returned when there is nothing to plot.
var ErrEmptyTable = errors.New("no records to plot")

// Renderer draws the three weekly charts. Each method writes one PNG to path.
type Renderer interface {
	Trend(table *models.Table, path string) error
	Histogram(table *models.Table, path string) error
	BoxPlot(table *models.Table, path string) error
}

var (
	colorMax     = drawing.Color{R: 214, G: 39, B: 40, A: 255}
	colorMin     = drawing.Color{R: 31, G: 119, B: 180, A: 255}
	colorAvg     = drawing.Color{R: 44, G: 160, B: 44, A: 255}
	colorMedian  = drawing.Color{R: 255, G: 127, B: 14, A: 255}
	colorOutline = drawing.Color{R: 40, G: 40, B: 40, A: 255}
	colorBarEdge = drawing.Color{R: 255, G: 255, B: 255, A: 255}
	colorGrid    = drawing.Color{R: 0, G: 0, B: 0, A: 77} // black at 30%
)

// GoChart implements Renderer with go-chart.
type GoChart struct {
	font *truetype.Font
}

// NewGoChart loads the chart font and returns a renderer.
func NewGoChart() (*GoChart, error) {
	f, err := loadFont()
	if err != nil {
		return nil, err
	}
	return &GoChart{font: f}, nil
}

// gridStyle is the light grid used on every chart.
func gridStyle() chart.Style {
	return chart.Style{
		StrokeColor: colorGrid,
		StrokeWidth: 1.0,
	}
}

// save renders c into an in-memory canvas and writes it to path. The canvas
// only lives for the duration of the call.
func save(c chart.Chart, kind, path string) error {
	var buf bytes.Buffer
	if err := c.Render(chart.PNG, &buf); err != nil {
		return fmt.Errorf("render %s chart: %w", kind, err)
	}
	if err := fsutil.WriteFile(path, buf.Bytes()); err != nil {
		return err
	}
	metrics.FilesWritten.WithLabelValues("chart").Inc()
	return nil
}

// paddedRange returns [lo, hi] widened by 10% (at least 1 degree) on each
// side so lines never sit on the canvas edge.
func paddedRange(lo, hi float64) *chart.ContinuousRange {
	pad := (hi - lo) * 0.1
	if pad < 1 {
		pad = 1
	}
	return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}

func formatDegrees(v interface{}) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%.1f", f)
	}
	return ""
}
