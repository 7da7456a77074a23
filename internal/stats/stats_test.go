package stats

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestMeanMaxMin(t *testing.T) {
	tests := []struct {
		name     string
		vals     []float64
		wantMean float64
		wantMax  float64
		wantMin  float64
	}{
		{"empty", nil, 0, 0, 0},
		{"single", []float64{4.2}, 4.2, 4.2, 4.2},
		{"two days", []float64{3.0, 5.0}, 4.0, 5.0, 3.0},
		{"negatives", []float64{-1.5, -4.5, 0.0}, -2.0, 0.0, -4.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Mean(tt.vals); !almostEqual(got, tt.wantMean) {
				t.Errorf("Mean(%v) = %v, want %v", tt.vals, got, tt.wantMean)
			}
			if got := Max(tt.vals); got != tt.wantMax {
				t.Errorf("Max(%v) = %v, want %v", tt.vals, got, tt.wantMax)
			}
			if got := Min(tt.vals); got != tt.wantMin {
				t.Errorf("Min(%v) = %v, want %v", tt.vals, got, tt.wantMin)
			}
		})
	}
}

func TestPercentile(t *testing.T) {
	vals := []float64{4, 1, 3, 2}
	tests := []struct {
		p    float64
		want float64
	}{
		{0, 1},
		{25, 1.75},
		{50, 2.5},
		{75, 3.25},
		{100, 4},
	}
	for _, tt := range tests {
		if got := Percentile(vals, tt.p); !almostEqual(got, tt.want) {
			t.Errorf("Percentile(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}

	if vals[0] != 4 {
		t.Error("Percentile must not reorder its input")
	}
	if got := Percentile([]float64{7}, 50); got != 7 {
		t.Errorf("Percentile(single, 50) = %v, want 7", got)
	}
}

func TestBox(t *testing.T) {
	b := Box([]float64{8, 1, 2, 3, 100, 4, 5, 6, 7})

	if b.Q1 != 3 || b.Median != 5 || b.Q3 != 7 {
		t.Errorf("quartiles = %v/%v/%v, want 3/5/7", b.Q1, b.Median, b.Q3)
	}
	if b.LowerWhisker != 1 {
		t.Errorf("LowerWhisker = %v, want 1", b.LowerWhisker)
	}
	if b.UpperWhisker != 8 {
		t.Errorf("UpperWhisker = %v, want 8", b.UpperWhisker)
	}
	if len(b.Outliers) != 1 || b.Outliers[0] != 100 {
		t.Errorf("Outliers = %v, want [100]", b.Outliers)
	}
	if b.Low() != 1 || b.High() != 100 {
		t.Errorf("Low/High = %v/%v, want 1/100", b.Low(), b.High())
	}
}

func TestBox_NoSpread(t *testing.T) {
	b := Box([]float64{3, 3, 3})
	if b.Q1 != 3 || b.Q3 != 3 || b.LowerWhisker != 3 || b.UpperWhisker != 3 {
		t.Errorf("Box = %+v, want everything at 3", b)
	}
	if len(b.Outliers) != 0 {
		t.Errorf("Outliers = %v, want none", b.Outliers)
	}
}

func TestHistogram(t *testing.T) {
	edges, counts := Histogram([]float64{1, 2, 3, 4, 5}, 4)

	wantEdges := []float64{1, 2, 3, 4, 5}
	wantCounts := []int{1, 1, 1, 2}
	for i := range wantEdges {
		if !almostEqual(edges[i], wantEdges[i]) {
			t.Errorf("edges[%d] = %v, want %v", i, edges[i], wantEdges[i])
		}
	}
	for i := range wantCounts {
		if counts[i] != wantCounts[i] {
			t.Errorf("counts[%d] = %d, want %d", i, counts[i], wantCounts[i])
		}
	}
}

func TestHistogram_CountsSumToN(t *testing.T) {
	vals := []float64{10.05, 11.2, 9.8, 12.4, 13.0, 8.75, 11.9}
	_, counts := Histogram(vals, 8)
	if len(counts) != 8 {
		t.Fatalf("len(counts) = %d, want 8", len(counts))
	}
	total := 0
	for _, c := range counts {
		total += c
	}
	if total != len(vals) {
		t.Errorf("sum(counts) = %d, want %d", total, len(vals))
	}
	if counts[0] == 0 || counts[7] == 0 {
		t.Errorf("min and max must land in the outer bins: %v", counts)
	}
}

func TestHistogram_Degenerate(t *testing.T) {
	edges, counts := Histogram([]float64{5, 5, 5}, 8)
	if !almostEqual(edges[0], 4.5) || !almostEqual(edges[8], 5.5) {
		t.Errorf("edges span [%v, %v], want [4.5, 5.5]", edges[0], edges[8])
	}
	total := 0
	for _, c := range counts {
		total += c
	}
	if total != 3 {
		t.Errorf("sum(counts) = %d, want 3", total)
	}
}
