package kpi

import (
	"math"
	"sort"

	"github.com/blaisecz/health-trends/internal/domain"
)

const trendBand = 0.02

// Stats summarizes a metric over records in their given order. Average, min
// and max are rounded to two decimals. Trend compares the mean of the second
// half against the first half with a ±2% band. It returns nil when no record
// carries the metric.
func Stats(records []domain.CanonicalRecord, metric domain.MetricName) *domain.SeriesStats {
	values := make([]float64, 0, len(records))
	for _, r := range records {
		if v := r.Metric(metric); v.Available() && !math.IsNaN(v.Value) && !math.IsInf(v.Value, 0) {
			values = append(values, v.Value)
		}
	}
	if len(values) == 0 {
		return nil
	}

	sum, lo, hi := 0.0, values[0], values[0]
	for _, v := range values {
		sum += v
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	return &domain.SeriesStats{
		Average: round2(sum / float64(len(values))),
		Min:     round2(lo),
		Max:     round2(hi),
		Trend:   trend(values),
		Count:   len(values),
	}
}

func trend(values []float64) domain.Trend {
	mid := len(values) / 2
	if mid == 0 {
		return domain.TrendStable
	}
	first := mean(values[:mid])
	second := mean(values[mid:])
	switch {
	case second > first*(1+trendBand):
		return domain.TrendIncreasing
	case second < first*(1-trendBand):
		return domain.TrendDecreasing
	}
	return domain.TrendStable
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// QualityDistribution counts sleep records per quality label. Records
// without a label are counted as "unknown".
func QualityDistribution(sleep []domain.CanonicalRecord) map[string]int {
	dist := make(map[string]int)
	for _, r := range sleep {
		q := r.Quality
		if q == "" {
			q = "unknown"
		}
		dist[q]++
	}
	return dist
}

// SortedByDate returns a copy of records sorted ascending by date. Ties keep
// their input order.
func SortedByDate(records []domain.CanonicalRecord) []domain.CanonicalRecord {
	out := make([]domain.CanonicalRecord, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}
