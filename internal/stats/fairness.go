// Package stats computes descriptive fairness telemetry over derived value
// samples. The numbers are illustrative, meant for transparency displays
// and regression tests, not a normative correctness gate.
package stats

import (
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// DefaultBuckets is the bin count used by the uniformity telemetry.
const DefaultBuckets = 10

// Fairness summarizes how uniformly a sample of derived values covers the
// unit interval.
type Fairness struct {
	Samples   int       `json:"samples"`
	Buckets   []int     `json:"buckets"`
	ChiSquare float64   `json:"chi_square"`
	PValue    float64   `json:"p_value"`
	Mean      float64   `json:"mean"`
	StdDev    float64   `json:"std_dev"`
}

// BucketCounts bins values from [0, 1) into n equal-width buckets. Values
// at or above 1 land in the last bucket, values below 0 in the first.
func BucketCounts(values []float64, n int) []int {
	if n < 1 {
		n = 1
	}
	counts := make([]int, n)
	for _, v := range values {
		b := int(v * float64(n))
		if b < 0 {
			b = 0
		}
		if b >= n {
			b = n - 1
		}
		counts[b]++
	}
	return counts
}

// ChiSquareUniform computes the chi-square statistic of the observed counts
// against a uniform expectation.
func ChiSquareUniform(counts []int) float64 {
	total := 0
	for _, c := range counts {
		total += c
	}
	if total == 0 || len(counts) == 0 {
		return 0
	}
	expected := float64(total) / float64(len(counts))
	chi2 := 0.0
	for _, obs := range counts {
		d := float64(obs) - expected
		chi2 += d * d / expected
	}
	return chi2
}

// Summarize computes the full fairness telemetry for a sample.
func Summarize(values []float64) Fairness {
	counts := BucketCounts(values, DefaultBuckets)
	chi2 := ChiSquareUniform(counts)

	f := Fairness{
		Samples:   len(values),
		Buckets:   counts,
		ChiSquare: chi2,
	}
	// A single-value sample has no defined deviation; leave it zero so the
	// struct stays JSON-encodable.
	if len(values) > 1 {
		mean, std := stat.MeanStdDev(values, nil)
		f.Mean = mean
		f.StdDev = std
	} else if len(values) == 1 {
		f.Mean = values[0]
	}
	if len(counts) > 1 {
		dist := distuv.ChiSquared{K: float64(len(counts) - 1)}
		f.PValue = dist.Survival(chi2)
	}
	return f
}
