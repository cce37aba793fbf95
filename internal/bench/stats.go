package bench

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Summary condenses the per-repetition timings of one point.
type Summary struct {
	Mean   float64
	Std    float64
	Min    float64
	Median float64
}

// Summarize computes the summary statistics of a timing sample.
func Summarize(ns []float64) Summary {
	if len(ns) == 0 {
		return Summary{}
	}
	sorted := append([]float64(nil), ns...)
	sort.Float64s(sorted)

	mean, std := stat.MeanStdDev(sorted, nil)
	if len(sorted) == 1 {
		std = 0
	}

	return Summary{
		Mean:   mean,
		Std:    std,
		Min:    sorted[0],
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
	}
}
