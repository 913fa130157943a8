// Package kpi aggregates canonical records into period-over-period KPIs.
package kpi

import (
	"math"

	"github.com/blaisecz/health-trends/internal/domain"
	"github.com/blaisecz/health-trends/internal/normalize"
)

// Average is the arithmetic mean of the finite values of metric. Records
// where the metric is unavailable are skipped, never counted as zero.
// It returns nil when no record carries a usable value.
func Average(records []domain.CanonicalRecord, metric domain.MetricName) *float64 {
	var sum float64
	n := 0
	for _, r := range records {
		v := r.Metric(metric)
		if !v.Available() || math.IsNaN(v.Value) || math.IsInf(v.Value, 0) {
			continue
		}
		sum += v.Value
		n++
	}
	if n == 0 {
		return nil
	}
	avg := sum / float64(n)
	return &avg
}

// PercentChange returns (current-previous)/previous*100. It returns nil when
// either side is nil or zero; a current average of exactly zero is reported
// as no change rather than -100%.
func PercentChange(current, previous *float64) *float64 {
	if current == nil || previous == nil || *current == 0 || *previous == 0 {
		return nil
	}
	change := (*current - *previous) / *previous * 100
	return &change
}

// StepsFallback holds placeholder step averages used when a period has no
// step records at all.
type StepsFallback struct {
	Current  float64
	Previous float64
}

// Engine builds KPI sets. The zero value is ready to use and never
// substitutes placeholder values.
type Engine struct {
	StepsFallback *StepsFallback
	normalizer    *normalize.Normalizer
}

// NewEngine returns an Engine canonicalizing raw records with n.
func NewEngine(n *normalize.Normalizer, fallback *StepsFallback) *Engine {
	return &Engine{StepsFallback: fallback, normalizer: n}
}

// Build computes every KPI from raw current and previous collections.
func (e *Engine) Build(current, previous domain.Collections) domain.KPISet {
	n := e.normalizer
	if n == nil {
		n = normalize.New(nil)
	}
	return e.BuildCanonical(n.NormalizeAll(current), n.NormalizeAll(previous))
}

// BuildCanonical computes every KPI from canonical sets. Each KPI is
// computed independently so a missing metric never blocks the others.
func (e *Engine) BuildCanonical(current, previous domain.CanonicalSet) domain.KPISet {
	return domain.KPISet{
		Weight:     compare(current.Weight, previous.Weight, domain.MetricWeight),
		Muscle:     compare(current.Weight, previous.Weight, domain.MetricMuscle),
		Fat:        compare(current.Weight, previous.Weight, domain.MetricFat),
		TotalSleep: compare(current.Sleep, previous.Sleep, domain.MetricDuration),
		DeepSleep:  compare(current.Sleep, previous.Sleep, domain.MetricDeepSleep),
		Steps:      e.steps(current.Steps, previous.Steps),
		Waist:      compare(current.Waist, previous.Waist, domain.MetricWaist),
	}
}

func compare(current, previous []domain.CanonicalRecord, metric domain.MetricName) domain.KPI {
	cur := Average(current, metric)
	prev := Average(previous, metric)
	return domain.KPI{Current: cur, Previous: prev, Change: PercentChange(cur, prev)}
}

func (e *Engine) steps(current, previous []domain.CanonicalRecord) domain.KPI {
	cur := Average(current, domain.MetricSteps)
	prev := Average(previous, domain.MetricSteps)
	estimated := false

	if e.StepsFallback != nil {
		if len(current) == 0 {
			v := e.StepsFallback.Current
			cur = &v
			estimated = true
		}
		if len(previous) == 0 {
			v := e.StepsFallback.Previous
			prev = &v
			estimated = true
		}
	}
	return domain.KPI{Current: cur, Previous: prev, Change: PercentChange(cur, prev), Estimated: estimated}
}
