package kpi

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/blaisecz/health-trends/internal/domain"
)

func ptr(v float64) *float64 { return &v }

func rec(day int, metrics map[domain.MetricName]domain.MetricValue) domain.CanonicalRecord {
	return domain.CanonicalRecord{
		Date:    time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC),
		Metrics: metrics,
	}
}

func TestAverage(t *testing.T) {
	require.Nil(t, Average(nil, domain.MetricWeight))
	require.Nil(t, Average([]domain.CanonicalRecord{}, domain.MetricWeight))
	require.Nil(t, Average([]domain.CanonicalRecord{
		rec(1, map[domain.MetricName]domain.MetricValue{domain.MetricWeight: domain.Unavailable()}),
		rec(2, nil),
	}, domain.MetricWeight))

	got := Average([]domain.CanonicalRecord{
		rec(1, map[domain.MetricName]domain.MetricValue{domain.MetricWeight: domain.Observed(70)}),
		rec(2, map[domain.MetricName]domain.MetricValue{domain.MetricWeight: domain.Unavailable()}),
		rec(3, map[domain.MetricName]domain.MetricValue{domain.MetricWeight: domain.Observed(72)}),
	}, domain.MetricWeight)
	require.NotNil(t, got)
	require.InDelta(t, 71.0, *got, 1e-9)
}

func TestAverage_IncludesEstimatedValues(t *testing.T) {
	got := Average([]domain.CanonicalRecord{
		rec(1, map[domain.MetricName]domain.MetricValue{domain.MetricDeepSleep: domain.Estimated(88, "duration*0.22")}),
		rec(2, map[domain.MetricName]domain.MetricValue{domain.MetricDeepSleep: domain.Observed(92)}),
	}, domain.MetricDeepSleep)
	require.InDelta(t, 90.0, *got, 1e-9)
}

func TestPercentChange(t *testing.T) {
	tests := []struct {
		name     string
		current  *float64
		previous *float64
		want     *float64
	}{
		{name: "increase", current: ptr(110), previous: ptr(100), want: ptr(10)},
		{name: "decrease", current: ptr(90), previous: ptr(100), want: ptr(-10)},
		{name: "previous nil", current: ptr(90), previous: nil},
		{name: "previous zero", current: ptr(90), previous: ptr(0)},
		{name: "current nil", current: nil, previous: ptr(100)},
		{name: "current zero is no change", current: ptr(0), previous: ptr(100)},
		{name: "both nil"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PercentChange(tt.current, tt.previous)
			if tt.want == nil {
				require.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			require.InDelta(t, *tt.want, *got, 1e-9)
		})
	}
}

func fullCollections(weight, sleep, steps, waist float64) domain.Collections {
	return domain.Collections{
		Weight: []domain.RawRecord{{"date": "2024-01-01", "weight": weight, "muscle": weight / 2, "fat": weight / 4}},
		Sleep:  []domain.RawRecord{{"datetime": "2024-01-01", "duration": sleep}},
		Waist:  []domain.RawRecord{{"measurementTimeStamp": "2024-01-01", "waist": waist}},
		Steps:  []domain.RawRecord{{"date": "2024-01-01", "steps": steps}},
	}
}

func TestBuild(t *testing.T) {
	var e Engine
	kpis := e.Build(fullCollections(110, 440, 11000, 88), fullCollections(100, 400, 10000, 80))

	require.InDelta(t, 10, *kpis.Weight.Change, 1e-9)
	require.InDelta(t, 55, *kpis.Muscle.Current, 1e-9)
	require.InDelta(t, 25, *kpis.Fat.Previous, 1e-9)
	require.InDelta(t, 440, *kpis.TotalSleep.Current, 1e-9)
	require.InDelta(t, 96.8, *kpis.DeepSleep.Current, 1e-9)
	require.InDelta(t, 88, *kpis.DeepSleep.Previous, 1e-9)
	require.InDelta(t, 10, *kpis.Steps.Change, 1e-9)
	require.InDelta(t, 10, *kpis.Waist.Change, 1e-9)
	require.False(t, kpis.Steps.Estimated)
}

func TestBuild_PartialSourceFailure(t *testing.T) {
	current := fullCollections(110, 440, 11000, 88)
	previous := fullCollections(100, 400, 10000, 80)
	current.Waist = nil
	previous.Waist = []domain.RawRecord{}

	var e Engine
	kpis := e.Build(current, previous)

	require.Equal(t, domain.KPI{}, kpis.Waist)
	require.NotNil(t, kpis.Weight.Change)
	require.NotNil(t, kpis.TotalSleep.Change)
	require.NotNil(t, kpis.Steps.Change)

	data, err := json.Marshal(kpis.Waist)
	require.NoError(t, err)
	require.JSONEq(t, `{"current":null,"previous":null,"change":null}`, string(data))
}

func TestBuild_StepsFallback(t *testing.T) {
	current := fullCollections(110, 440, 11000, 88)
	previous := fullCollections(100, 400, 10000, 80)
	current.Steps = nil
	previous.Steps = nil

	var plain Engine
	require.Equal(t, domain.KPI{}, plain.Build(current, previous).Steps)

	withFallback := NewEngine(nil, &StepsFallback{Current: 8500, Previous: 8200})
	steps := withFallback.Build(current, previous).Steps
	require.True(t, steps.Estimated)
	require.Equal(t, 8500.0, *steps.Current)
	require.Equal(t, 8200.0, *steps.Previous)
	require.InDelta(t, 3.658536, *steps.Change, 1e-5)

	previous.Steps = []domain.RawRecord{{"date": "2024-01-01", "steps": 9000.0}}
	steps = withFallback.Build(current, previous).Steps
	require.True(t, steps.Estimated)
	require.Equal(t, 9000.0, *steps.Previous)
}

func TestBuild_NoData(t *testing.T) {
	var e Engine
	kpis := e.Build(domain.Collections{}, domain.Collections{})
	require.Equal(t, domain.KPISet{}, kpis)

	data, err := json.Marshal(kpis)
	require.NoError(t, err)
	require.Contains(t, string(data), `"totalSleep":{"current":null,"previous":null,"change":null}`)
}
