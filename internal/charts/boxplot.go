package charts

import (
	"errors"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/lox/parisweather/internal/models"
	"github.com/lox/parisweather/internal/stats"
)

// BoxPlot summarises the spread of average temperatures as a single box and
// writes the chart to path.
func (g *GoChart) BoxPlot(table *models.Table, path string) error {
	if table.Len() == 0 {
		return ErrEmptyTable
	}

	summary := stats.Box(table.AvgTemps())

	graph := chart.Chart{
		Title:  "Temperature Spread (Box Plot)",
		Width:  600,
		Height: 500,
		Font:   g.font,
		Background: chart.Style{
			Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Ticks: []chart.Tick{
				{Value: 0},
				{Value: 1, Label: "1"},
				{Value: 2},
			},
			Range: &chart.ContinuousRange{Min: 0, Max: 2},
		},
		YAxis: chart.YAxis{
			Name:           "Temperature (°C)",
			Range:          paddedRange(summary.Low(), summary.High()),
			ValueFormatter: formatDegrees,
			GridMajorStyle: gridStyle(),
		},
		Series: []chart.Series{
			boxSeries{
				Name:    "avg_temp",
				Summary: summary,
				X:       1,
				Width:   0.5,
				Style: chart.Style{
					StrokeColor: colorOutline,
					StrokeWidth: 1.5,
					FillColor:   drawing.Color{R: 255, G: 255, B: 255, A: 0},
				},
			},
		},
	}

	return save(graph, "box", path)
}

// boxSeries draws one box-and-whisker glyph centred on X.
type boxSeries struct {
	Name    string
	Style   chart.Style
	Summary stats.BoxSummary
	X       float64
	Width   float64 // box width in x-axis units
}

func (bs boxSeries) GetName() string           { return bs.Name }
func (bs boxSeries) GetStyle() chart.Style     { return bs.Style }
func (bs boxSeries) GetYAxis() chart.YAxisType { return chart.YAxisPrimary }

func (bs boxSeries) Validate() error {
	if bs.Width <= 0 {
		return errors.New("box series width must be positive")
	}
	if bs.Summary.Q1 > bs.Summary.Q3 {
		return errors.New("box series quartiles are inverted")
	}
	return nil
}

// Render draws the box from Q1 to Q3, the median line, the whiskers with
// caps, and one open circle per outlier.
func (bs boxSeries) Render(r chart.Renderer, canvasBox chart.Box, xrange, yrange chart.Range, defaults chart.Style) {
	style := bs.Style.InheritFrom(defaults)
	s := bs.Summary

	px := func(v float64) int { return canvasBox.Left + xrange.Translate(v) }
	py := func(v float64) int { return canvasBox.Bottom - yrange.Translate(v) }

	left, right := px(bs.X-bs.Width/2), px(bs.X+bs.Width/2)
	capLeft, capRight := px(bs.X-bs.Width/4), px(bs.X+bs.Width/4)
	center := px(bs.X)
	top, bottom := py(s.Q3), py(s.Q1)

	r.SetStrokeColor(style.GetStrokeColor())
	r.SetStrokeWidth(style.GetStrokeWidth())
	r.SetStrokeDashArray(nil)
	r.SetFillColor(style.GetFillColor())
	r.MoveTo(left, top)
	r.LineTo(right, top)
	r.LineTo(right, bottom)
	r.LineTo(left, bottom)
	r.LineTo(left, top)
	r.Close()
	r.FillStroke()

	line := func(x0, y0, x1, y1 int) {
		r.MoveTo(x0, y0)
		r.LineTo(x1, y1)
		r.Stroke()
	}

	// whiskers and caps
	line(center, top, center, py(s.UpperWhisker))
	line(capLeft, py(s.UpperWhisker), capRight, py(s.UpperWhisker))
	line(center, bottom, center, py(s.LowerWhisker))
	line(capLeft, py(s.LowerWhisker), capRight, py(s.LowerWhisker))

	for _, o := range s.Outliers {
		r.Circle(4, center, py(o))
		r.Stroke()
	}

	r.SetStrokeColor(colorMedian)
	r.SetStrokeWidth(2.0)
	line(left, py(s.Median), right, py(s.Median))

	r.ResetStyle()
}
