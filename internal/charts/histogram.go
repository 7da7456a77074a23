package charts

import (
	"fmt"
	"strconv"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/lox/parisweather/internal/models"
	"github.com/lox/parisweather/internal/stats"
)

// HistogramBins is the number of equal-width bins for average temperature.
const HistogramBins = 8

// Histogram plots the distribution of average temperatures and writes the
// chart to path.
func (g *GoChart) Histogram(table *models.Table, path string) error {
	if table.Len() == 0 {
		return ErrEmptyTable
	}

	edges, counts := stats.Histogram(table.AvgTemps(), HistogramBins)

	centers := make([]float64, len(counts))
	freqs := make([]float64, len(counts))
	maxCount := 0
	for i, c := range counts {
		centers[i] = (edges[i] + edges[i+1]) / 2
		freqs[i] = float64(c)
		if c > maxCount {
			maxCount = c
		}
	}

	xTicks := make([]chart.Tick, len(edges))
	for i, e := range edges {
		xTicks[i] = chart.Tick{Value: e, Label: fmt.Sprintf("%.1f", e)}
	}
	yTicks := make([]chart.Tick, 0, maxCount+2)
	for c := 0; c <= maxCount+1; c++ {
		yTicks = append(yTicks, chart.Tick{Value: float64(c), Label: strconv.Itoa(c)})
	}

	graph := chart.Chart{
		Title:  "Distribution of Average Temperatures",
		Width:  800,
		Height: 500,
		Font:   g.font,
		Background: chart.Style{
			Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:           "Average Temperature (°C)",
			Ticks:          xTicks,
			Range:          &chart.ContinuousRange{Min: edges[0], Max: edges[len(edges)-1]},
			GridMajorStyle: gridStyle(),
		},
		YAxis: chart.YAxis{
			Name:           "Frequency",
			Ticks:          yTicks,
			Range:          &chart.ContinuousRange{Min: 0, Max: float64(maxCount + 1)},
			GridMajorStyle: gridStyle(),
		},
		Series: []chart.Series{
			chart.HistogramSeries{
				Name: "avg_temp",
				Style: chart.Style{
					FillColor:   colorMin,
					StrokeColor: colorBarEdge,
					StrokeWidth: 1.0,
				},
				InnerSeries: chart.ContinuousSeries{
					XValues: centers,
					YValues: freqs,
				},
			},
		},
	}

	return save(graph, "histogram", path)
}
