package stats

import (
	"math"
	"sort"

	json "github.com/goccy/go-json"
)

// Summary holds descriptive statistics for one numeric sample. The metric
// fields are meaningful only when Count > 0; use Empty before reading them.
type Summary struct {
	Count    int
	Average  float64
	Median   float64
	StdDev   float64
	Variance float64
	Min      float64
	Max      float64
}

// Empty reports whether the summary was computed from zero samples.
func (s Summary) Empty() bool {
	return s.Count == 0
}

// Summarize computes count, mean, median, population variance, standard
// deviation, and extrema for the sample. The input slice is not mutated;
// sorting happens on a copy. An empty sample yields an empty summary rather
// than zero-valued metrics, so callers can tell "no data" from "all zeros".
func Summarize(samples []float64) Summary {
	n := len(samples)
	if n == 0 {
		return Summary{}
	}

	sorted := append([]float64(nil), samples...)
	sort.Float64s(sorted)

	var sum float64
	for _, v := range sorted {
		sum += v
	}
	mean := sum / float64(n)

	var median float64
	if n%2 == 1 {
		median = sorted[n/2]
	} else {
		median = (sorted[n/2-1] + sorted[n/2]) / 2
	}

	var sumsq float64
	for _, v := range sorted {
		d := v - mean
		sumsq += d * d
	}
	variance := sumsq / float64(n)

	return Summary{
		Count:    n,
		Average:  mean,
		Median:   median,
		StdDev:   math.Sqrt(variance),
		Variance: variance,
		Min:      sorted[0],
		Max:      sorted[n-1],
	}
}

type summaryJSON struct {
	Count    int     `json:"count"`
	Average  float64 `json:"average"`
	Median   float64 `json:"median"`
	StdDev   float64 `json:"std_dev"`
	Variance float64 `json:"variance"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
}

type emptySummaryJSON struct {
	Count int    `json:"count"`
	Error string `json:"error"`
}

// MarshalJSON renders an explicit error marker for empty summaries instead
// of numeric fields that could be mistaken for real data.
func (s Summary) MarshalJSON() ([]byte, error) {
	if s.Empty() {
		return json.Marshal(emptySummaryJSON{Count: 0, Error: "no valid samples"})
	}
	return json.Marshal(summaryJSON{
		Count:    s.Count,
		Average:  s.Average,
		Median:   s.Median,
		StdDev:   s.StdDev,
		Variance: s.Variance,
		Min:      s.Min,
		Max:      s.Max,
	})
}
