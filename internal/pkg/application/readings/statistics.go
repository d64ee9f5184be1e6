package readings

import (
	"math"
	"slices"
	"time"

	"github.com/Icealert/ice-alert-backend/pkg/types"
	"github.com/samber/lo"
)

type Sample struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
}

type Statistics struct {
	Count     int     `json:"count"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
	Mean      float64 `json:"mean"`
	Median    float64 `json:"median"`
	StdDev    float64 `json:"stdDev"`
	Trend     float64 `json:"trend"`
	Stability float64 `json:"stability"`
	Anomalies int     `json:"anomalies"`
}

// SamplesFromReadings extracts one metric from a window of readings, dropping
// readings where that metric is absent. The input order is preserved.
func SamplesFromReadings(window []types.Reading, metric string) []Sample {
	return lo.FilterMap(window, func(r types.Reading, _ int) (Sample, bool) {
		v := r.Metric(metric)
		if v == nil {
			return Sample{}, false
		}
		return Sample{Timestamp: r.CreatedOn, Value: *v}, true
	})
}

// Summarize computes descriptive statistics over samples ordered oldest first.
// An empty input yields the zero-valued Statistics, never an error.
func Summarize(samples []Sample) Statistics {
	n := len(samples)
	if n == 0 {
		return Statistics{}
	}

	values := lo.Map(samples, func(s Sample, _ int) float64 { return s.Value })

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(n)

	var sqSum float64
	for _, v := range values {
		sqSum += (v - mean) * (v - mean)
	}
	stdDev := math.Sqrt(sqSum / float64(n))

	anomalies := lo.CountBy(values, func(v float64) bool {
		return math.Abs(v-mean) > 2*stdDev
	})

	// the middle sample of an odd-length window belongs to the second half
	half := n / 2
	trend := meanOf(values[half:]) - meanOf(values[:half])
	if half == 0 {
		trend = 0
	}

	stability := 0.0
	if mean != 0 {
		stability = (1 - stdDev/mean) * 100
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	median := sorted[n/2]
	if n%2 == 0 {
		median = (sorted[n/2-1] + sorted[n/2]) / 2
	}

	return Statistics{
		Count:     n,
		Min:       sorted[0],
		Max:       sorted[n-1],
		Mean:      mean,
		Median:    median,
		StdDev:    stdDev,
		Trend:     trend,
		Stability: stability,
		Anomalies: anomalies,
	}
}

func meanOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// IsInRange reports whether a sample value lies within the band. A nil value
// is in range, so devices that skip a metric never look unhealthy.
func IsInRange(v *float64, r types.Range) bool {
	return r.Contains(v)
}
