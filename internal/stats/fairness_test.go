package stats

import (
	"math"
	"testing"
)

func TestBucketCounts(t *testing.T) {
	values := []float64{0.05, 0.15, 0.95, 0.999999, 0.0, 1.0, -0.1}
	counts := BucketCounts(values, 10)

	if counts[0] != 3 { // 0.05, 0.0, -0.1
		t.Errorf("bucket 0 = %d, want 3", counts[0])
	}
	if counts[1] != 1 {
		t.Errorf("bucket 1 = %d, want 1", counts[1])
	}
	if counts[9] != 3 { // 0.95, 0.999999, 1.0
		t.Errorf("bucket 9 = %d, want 3", counts[9])
	}
}

func TestChiSquareUniform(t *testing.T) {
	// Perfectly uniform counts have a zero statistic.
	if got := ChiSquareUniform([]int{10, 10, 10, 10}); got != 0 {
		t.Errorf("uniform chi-square = %v, want 0", got)
	}

	// All mass in one bucket of ten: chi2 = 9*100 + (1000-100)^2/100 = 9000.
	counts := make([]int, 10)
	counts[0] = 1000
	if got := ChiSquareUniform(counts); math.Abs(got-9000) > 1e-9 {
		t.Errorf("concentrated chi-square = %v, want 9000", got)
	}

	if got := ChiSquareUniform(nil); got != 0 {
		t.Errorf("empty counts chi-square = %v, want 0", got)
	}
}

func TestSummarize(t *testing.T) {
	values := make([]float64, 1000)
	for i := range values {
		values[i] = (float64(i) + 0.5) / 1000
	}

	f := Summarize(values)
	if f.Samples != 1000 {
		t.Errorf("samples = %d", f.Samples)
	}
	if f.ChiSquare != 0 {
		t.Errorf("evenly spread sample chi-square = %v, want 0", f.ChiSquare)
	}
	if f.PValue < 0.99 {
		t.Errorf("p-value = %v, want ~1 for a perfect fit", f.PValue)
	}
	if math.Abs(f.Mean-0.5) > 1e-9 {
		t.Errorf("mean = %v, want 0.5", f.Mean)
	}

	empty := Summarize(nil)
	if empty.Samples != 0 || empty.ChiSquare != 0 {
		t.Errorf("empty summary = %+v", empty)
	}
	single := Summarize([]float64{0.25})
	if single.Mean != 0.25 || single.StdDev != 0 {
		t.Errorf("single-sample summary = %+v", single)
	}
}
