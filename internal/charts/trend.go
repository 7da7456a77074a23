package charts

import (
	"github.com/wcharczuk/go-chart/v2"

	"github.com/lox/parisweather/internal/models"
	"github.com/lox/parisweather/internal/stats"
)

// Trend plots max, min and average temperature against date and writes the
// chart to path.
func (g *GoChart) Trend(table *models.Table, path string) error {
	if table.Len() == 0 {
		return ErrEmptyTable
	}

	n := table.Len()
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = float64(i)
	}

	// Labelled ticks only; the axis range supplies the half-day margin.
	// Blank ticks break go-chart's rotated label layout.
	ticks := make([]chart.Tick, 0, n)
	for i, d := range table.Dates() {
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: d})
	}

	lo := stats.Min(table.MinTemps())
	hi := stats.Max(table.MaxTemps())

	graph := chart.Chart{
		Title:  "Paris Weather - Past Week",
		Width:  1000,
		Height: 600,
		Font:   g.font,
		Background: chart.Style{
			Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:           "Date",
			Ticks:          ticks,
			Range:          &chart.ContinuousRange{Min: -0.5, Max: float64(n) - 0.5},
			TickStyle:      chart.Style{TextRotationDegrees: 45.0},
			GridMajorStyle: gridStyle(),
		},
		YAxis: chart.YAxis{
			Name:           "Temperature (°C)",
			Range:          paddedRange(lo, hi),
			ValueFormatter: formatDegrees,
			GridMajorStyle: gridStyle(),
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Max",
				XValues: xs,
				YValues: table.MaxTemps(),
				Style: chart.Style{
					StrokeColor: colorMax,
					StrokeWidth: 2.0,
					DotColor:    colorMax,
					DotWidth:    4.0,
				},
			},
			chart.ContinuousSeries{
				Name:    "Min",
				XValues: xs,
				YValues: table.MinTemps(),
				Style: chart.Style{
					StrokeColor: colorMin,
					StrokeWidth: 2.0,
					DotColor:    colorMin,
					DotWidth:    4.0,
				},
			},
			chart.ContinuousSeries{
				Name:    "Average",
				XValues: xs,
				YValues: table.AvgTemps(),
				Style: chart.Style{
					StrokeColor:     colorAvg,
					StrokeWidth:     2.0,
					StrokeDashArray: []float64{6.0, 4.0},
				},
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	return save(graph, "trend", path)
}
