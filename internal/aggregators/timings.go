package aggregators

import (
	"sort"

	"serverlog-analyser/internal/models"
)

// ComputeTimings summarizes response times. Percentiles use the nearest-rank index
// floor(q * n) into the ascending sample, without interpolation.
func ComputeTimings(durations []float64) models.Timings {
	n := len(durations)
	if n == 0 {
		return models.Timings{}
	}

	sorted := make([]float64, n)
	copy(sorted, durations)
	sort.Float64s(sorted)

	var sum float64
	for _, d := range sorted {
		sum += d
	}

	return models.Timings{
		Min:    sorted[0],
		Mean:   sum / float64(n),
		Median: median(sorted),
		P95:    nearestRank(sorted, 0.95),
		P99:    nearestRank(sorted, 0.99),
	}
}

func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func nearestRank(sorted []float64, quantile float64) float64 {
	idx := int(quantile * float64(len(sorted)))
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}
