// Package stats holds the small set of descriptive statistics used for the
// weekly charts and summary.
package stats

import (
	"math"
	"sort"
)

// Mean calculates the average of a slice of floats.
func Mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

// Max returns the largest value, or 0 for an empty slice.
func Max(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	m := vals[0]
	for _, v := range vals[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

// Min returns the smallest value, or 0 for an empty slice.
func Min(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	m := vals[0]
	for _, v := range vals[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

// Percentile returns the p-th percentile (0-100) using linear interpolation
// between the closest ranks.
func Percentile(vals []float64, p float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	return percentileSorted(sorted(vals), p)
}

func percentileSorted(s []float64, p float64) float64 {
	if len(s) == 1 {
		return s[0]
	}
	pos := p / 100 * float64(len(s)-1)
	lo := int(math.Floor(pos))
	if lo >= len(s)-1 {
		return s[len(s)-1]
	}
	frac := pos - float64(lo)
	return s[lo] + (s[lo+1]-s[lo])*frac
}

func sorted(vals []float64) []float64 {
	s := make([]float64, len(vals))
	copy(s, vals)
	sort.Float64s(s)
	return s
}

// BoxSummary is the five-number summary drawn by a box plot.
type BoxSummary struct {
	Q1           float64
	Median       float64
	Q3           float64
	LowerWhisker float64 // lowest value within 1.5 IQR of Q1
	UpperWhisker float64 // highest value within 1.5 IQR of Q3
	Outliers     []float64
}

// IQR returns the interquartile range.
func (b BoxSummary) IQR() float64 {
	return b.Q3 - b.Q1
}

// Low returns the lowest point the plot has to show, including outliers.
func (b BoxSummary) Low() float64 {
	low := b.LowerWhisker
	for _, o := range b.Outliers {
		low = math.Min(low, o)
	}
	return low
}

// High returns the highest point the plot has to show, including outliers.
func (b BoxSummary) High() float64 {
	high := b.UpperWhisker
	for _, o := range b.Outliers {
		high = math.Max(high, o)
	}
	return high
}

// Box computes the box plot summary of vals. Whiskers reach the furthest
// data point within 1.5 IQR of the box; anything beyond is an outlier.
func Box(vals []float64) BoxSummary {
	if len(vals) == 0 {
		return BoxSummary{}
	}
	s := sorted(vals)

	b := BoxSummary{
		Q1:     percentileSorted(s, 25),
		Median: percentileSorted(s, 50),
		Q3:     percentileSorted(s, 75),
	}
	lowFence := b.Q1 - 1.5*b.IQR()
	highFence := b.Q3 + 1.5*b.IQR()

	b.LowerWhisker = b.Q1
	b.UpperWhisker = b.Q3
	for _, v := range s {
		if v >= lowFence {
			b.LowerWhisker = math.Min(v, b.Q1)
			break
		}
	}
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] <= highFence {
			b.UpperWhisker = math.Max(s[i], b.Q3)
			break
		}
	}
	for _, v := range s {
		if v < lowFence || v > highFence {
			b.Outliers = append(b.Outliers, v)
		}
	}
	return b
}

// Histogram bins vals into n equal-width bins spanning [min, max]. The last
// bin is closed on both sides so the maximum is counted. When every value is
// equal the range is widened to value±0.5. Returns n+1 edges and n counts.
func Histogram(vals []float64, n int) (edges []float64, counts []int) {
	if n <= 0 {
		return nil, nil
	}
	lo, hi := Min(vals), Max(vals)
	if lo == hi {
		lo -= 0.5
		hi += 0.5
	}
	width := (hi - lo) / float64(n)

	edges = make([]float64, n+1)
	for i := range edges {
		edges[i] = lo + width*float64(i)
	}
	edges[n] = hi

	counts = make([]int, n)
	for _, v := range vals {
		idx := int((v - lo) / width)
		if idx >= n {
			idx = n - 1
		}
		if idx < 0 {
			idx = 0
		}
		counts[idx]++
	}
	return edges, counts
}
