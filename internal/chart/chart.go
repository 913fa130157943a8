// Package chart shapes canonical records into chart-ready series.
package chart

import (
	"sort"

	"github.com/blaisecz/health-trends/internal/domain"
)

// Format builds every series from the current period's canonical records.
// Inputs are never mutated and every series is sorted ascending by date.
func Format(set domain.CanonicalSet) domain.ChartData {
	return domain.ChartData{
		WeightData:      Weight(set.Weight),
		CompositionData: Composition(set.Weight),
		SleepData:       Sleep(set.Sleep),
		StepsData:       Steps(set.Steps),
		WaistData:       Waist(set.Waist),
	}
}

// Series returns the series for one source as a JSON-ready value. Weight
// records yield both the weight and composition series.
func Series(source domain.SourceType, records []domain.CanonicalRecord) any {
	switch source {
	case domain.SourceWeight:
		return map[string]any{
			"weightData":      Weight(records),
			"compositionData": Composition(records),
		}
	case domain.SourceSleep:
		return Sleep(records)
	case domain.SourceSteps:
		return Steps(records)
	case domain.SourceWaist:
		return Waist(records)
	}
	return []any{}
}

func Weight(records []domain.CanonicalRecord) []domain.WeightPoint {
	out := make([]domain.WeightPoint, 0, len(records))
	for _, r := range records {
		out = append(out, domain.WeightPoint{
			Date:   domain.ChartTime{Time: r.Date},
			Weight: r.Metric(domain.MetricWeight).Ptr(),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date.Time) })
	return out
}

// Composition emits one muscle point and one fat point per record, muscle
// points first, then stable-sorts the combined series by date.
func Composition(records []domain.CanonicalRecord) []domain.CompositionPoint {
	out := make([]domain.CompositionPoint, 0, 2*len(records))
	for _, r := range records {
		out = append(out, domain.CompositionPoint{
			Date:      domain.ChartTime{Time: r.Date},
			Value:     r.Metric(domain.MetricMuscle).Ptr(),
			Type:      domain.LabelMuscle,
			Breakdown: domain.BreakdownMuscle,
		})
	}
	for _, r := range records {
		out = append(out, domain.CompositionPoint{
			Date:      domain.ChartTime{Time: r.Date},
			Value:     r.Metric(domain.MetricFat).Ptr(),
			Type:      domain.LabelFat,
			Breakdown: domain.BreakdownFat,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date.Time) })
	return out
}

// Sleep reads duration and deep sleep as resolved by the normalizer's deep
// sleep policy.
func Sleep(records []domain.CanonicalRecord) []domain.SleepPoint {
	out := make([]domain.SleepPoint, 0, len(records))
	for _, r := range records {
		deep := r.Metric(domain.MetricDeepSleep)
		out = append(out, domain.SleepPoint{
			Date:               domain.ChartTime{Time: r.Date},
			Duration:           r.Metric(domain.MetricDuration).Ptr(),
			DeepSleep:          deep.Ptr(),
			DeepSleepEstimated: deep.Kind == domain.ValueEstimated,
			Quality:            r.Quality,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date.Time) })
	return out
}

func Steps(records []domain.CanonicalRecord) []domain.StepsPoint {
	out := make([]domain.StepsPoint, 0, len(records))
	for _, r := range records {
		out = append(out, domain.StepsPoint{
			Date:  domain.ChartTime{Time: r.Date},
			Steps: r.Metric(domain.MetricSteps).Ptr(),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date.Time) })
	return out
}

// Waist exposes the waist metric as "measurement".
func Waist(records []domain.CanonicalRecord) []domain.WaistPoint {
	out := make([]domain.WaistPoint, 0, len(records))
	for _, r := range records {
		out = append(out, domain.WaistPoint{
			Date:        domain.ChartTime{Time: r.Date},
			Measurement: r.Metric(domain.MetricWaist).Ptr(),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date.Time) })
	return out
}

// Counts reports the number of points per series.
func Counts(data domain.ChartData) map[string]int {
	return map[string]int{
		"weightData":      len(data.WeightData),
		"compositionData": len(data.CompositionData),
		"sleepData":       len(data.SleepData),
		"stepsData":       len(data.StepsData),
		"waistData":       len(data.WaistData),
	}
}
