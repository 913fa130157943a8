package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/blaisecz/health-trends/internal/domain"
)

func TestNormalize_WeightLayouts(t *testing.T) {
	n := New(nil)
	raw := []domain.RawRecord{
		{"date": "2024-01-01", "data": map[string]any{"weight": map[string]any{"value": "70.5"}}},
		{"date": "2024-01-02", "weight": 70.3, "muscle": 35.1, "fat": 15.9},
		{"date": map[string]any{"_seconds": 1704240000.0}, "muscle_mass": 35.0, "fat_mass_weight": 16.0, "bone_mass": 3.1},
		{"date": "not a date", "weight": 69.0},
		{"weight": 68.0},
	}

	got := n.Normalize(domain.SourceWeight, raw)
	require.Len(t, got, 3)

	require.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), got[0].Date)
	require.Equal(t, domain.Observed(70.5), got[0].Metric(domain.MetricWeight))
	require.False(t, got[0].Metric(domain.MetricMuscle).Available())

	require.Equal(t, domain.Observed(35.1), got[1].Metric(domain.MetricMuscle))
	require.Equal(t, domain.Observed(15.9), got[1].Metric(domain.MetricFat))

	require.Equal(t, time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), got[2].Date)
	require.Equal(t, domain.Observed(35.0), got[2].Metric(domain.MetricMuscle))
	require.Equal(t, domain.Observed(16.0), got[2].Metric(domain.MetricFat))
	require.Equal(t, domain.Observed(3.1), got[2].Metric(domain.MetricBoneMass))
	require.False(t, got[2].Metric(domain.MetricWeight).Available())
}

func TestNormalize_EnvelopePreferredOverFlat(t *testing.T) {
	n := New(nil)
	got := n.Normalize(domain.SourceWeight, []domain.RawRecord{
		{"date": "2024-01-01", "data": map[string]any{"weight": 71.0}, "weight": 99.0},
	})
	require.Len(t, got, 1)
	require.Equal(t, 71.0, got[0].Metric(domain.MetricWeight).Value)
}

func TestNormalize_FallsThroughUnparseablePath(t *testing.T) {
	n := New(nil)
	got := n.Normalize(domain.SourceWeight, []domain.RawRecord{
		{"date": "2024-01-01", "data": map[string]any{"weight": "n/a"}, "weight": 70.0},
	})
	require.Len(t, got, 1)
	require.Equal(t, 70.0, got[0].Metric(domain.MetricWeight).Value)
}

func TestNormalize_SleepDeepSleepFallback(t *testing.T) {
	n := New(nil)
	got := n.Normalize(domain.SourceSleep, []domain.RawRecord{
		{"datetime": "2024-01-01", "duration": 400.0, "quality": "good"},
	})
	require.Len(t, got, 1)

	deep := got[0].Metric(domain.MetricDeepSleep)
	require.Equal(t, domain.ValueEstimated, deep.Kind)
	require.Equal(t, BasisDurationFrac, deep.Basis)
	require.InDelta(t, 88.0, deep.Value, 1e-9)
	require.Equal(t, "good", got[0].Quality)
}

func TestNormalize_SleepStages(t *testing.T) {
	n := New(nil)
	got := n.Normalize(domain.SourceSleep, []domain.RawRecord{
		{
			"datetime":           "2024-01-01T22:30:00Z",
			"totalMinutesAsleep": 430.0,
			"totalTimeInBed":     460.0,
			"stages":             map[string]any{"deep": 75.0, "light": 250.0, "rem": 95.0, "wake": 40.0},
		},
		{
			"datetime": "2024-01-02T22:30:00Z",
			"data": map[string]any{
				"levels": map[string]any{"summary": map[string]any{
					"deep":  map[string]any{"minutes": 60.0},
					"light": map[string]any{"minutes": 240.0},
					"rem":   map[string]any{"minutes": 100.0},
				}},
			},
		},
	})
	require.Len(t, got, 2)

	deep := got[0].Metric(domain.MetricDeepSleep)
	require.Equal(t, domain.ValueObserved, deep.Kind)
	require.Equal(t, BasisStages, deep.Basis)
	require.Equal(t, 75.0, deep.Value)
	// Reported duration wins over the 420 minute stage sum.
	require.Equal(t, 430.0, got[0].Metric(domain.MetricDuration).Value)
	require.Equal(t, 460.0, got[0].Metric(domain.MetricTimeInBed).Value)

	require.Equal(t, 60.0, got[1].Metric(domain.MetricDeepSleep).Value)
	duration := got[1].Metric(domain.MetricDuration)
	require.Equal(t, domain.ValueObserved, duration.Kind)
	require.Equal(t, BasisStageSum, duration.Basis)
	require.Equal(t, 400.0, duration.Value)
}

func TestNormalize_WaistAndSteps(t *testing.T) {
	n := New(nil)
	waist := n.Normalize(domain.SourceWaist, []domain.RawRecord{
		{"measurementTimeStamp": "2024-01-01", "waist": 85.2},
		{"measurementTimeStamp": map[string]any{"_seconds": 1704153600.0}, "measurementWaistCm": 84.9, "ica": 0.49},
	})
	require.Len(t, waist, 2)
	require.Equal(t, 85.2, waist[0].Metric(domain.MetricWaist).Value)
	require.Equal(t, 84.9, waist[1].Metric(domain.MetricWaist).Value)
	require.Equal(t, 0.49, waist[1].Metric(domain.MetricWaistToHeight).Value)

	steps := n.Normalize(domain.SourceSteps, []domain.RawRecord{
		{"date": "2024-01-01", "steps": 8500.0},
		{"date": "2024-01-02", "data": map[string]any{"steps": map[string]any{"value": "9200"}}},
	})
	require.Len(t, steps, 2)
	require.Equal(t, 9200.0, steps[1].Metric(domain.MetricSteps).Value)
}

func TestNormalize_AnalyticsMarkerCount(t *testing.T) {
	n := New(nil)
	got := n.Normalize(domain.SourceAnalytics, []domain.RawRecord{
		{"id": "1", "date": "2024-01-01", "markers": []any{map[string]any{"name": "Glucose"}, map[string]any{"name": "LDL"}}},
	})
	require.Len(t, got, 1)
	require.Equal(t, 2.0, got[0].Metric(domain.MetricMarkerCount).Value)
}

func TestNormalize_DoesNotMutateInput(t *testing.T) {
	raw := []domain.RawRecord{{"datetime": "2024-01-01", "duration": 400.0}}
	New(nil).Normalize(domain.SourceSleep, raw)
	require.Equal(t, domain.RawRecord{"datetime": "2024-01-01", "duration": 400.0}, raw[0])
}

func TestNormalizeAll(t *testing.T) {
	set := New(nil).NormalizeAll(domain.Collections{
		Weight: []domain.RawRecord{{"date": "2024-01-01", "weight": 70.0}},
		Steps:  []domain.RawRecord{{"date": "2024-01-01", "steps": 1000.0}},
	})
	require.Len(t, set.Weight, 1)
	require.Len(t, set.Steps, 1)
	require.Empty(t, set.Sleep)
	require.NotNil(t, set.Sleep)
}

func TestDeepSleep(t *testing.T) {
	tests := []struct {
		name      string
		explicit  domain.MetricValue
		duration  domain.MetricValue
		stages    map[string]any
		wantKind  domain.ValueKind
		wantValue float64
		wantBasis string
	}{
		{
			name:      "explicit wins over stages",
			explicit:  domain.Observed(90),
			duration:  domain.Observed(400),
			stages:    map[string]any{"deep": 70.0},
			wantKind:  domain.ValueObserved,
			wantValue: 90,
		},
		{
			name:      "rem used when deep missing",
			duration:  domain.Observed(400),
			stages:    map[string]any{"rem": 80.0, "light": 200.0},
			wantKind:  domain.ValueObserved,
			wantValue: 80,
			wantBasis: BasisStagesREM,
		},
		{
			name:      "estimated from duration",
			duration:  domain.Observed(7.5),
			wantKind:  domain.ValueEstimated,
			wantValue: 1.65,
			wantBasis: BasisDurationFrac,
		},
		{
			name:     "nothing to go on",
			wantKind: domain.ValueUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			explicit := tt.explicit
			if explicit.Kind == "" {
				explicit = domain.Unavailable()
			}
			duration := tt.duration
			if duration.Kind == "" {
				duration = domain.Unavailable()
			}
			deep, _ := DeepSleep(explicit, duration, tt.stages)
			require.Equal(t, tt.wantKind, deep.Kind)
			require.InDelta(t, tt.wantValue, deep.Value, 1e-9)
			require.Equal(t, tt.wantBasis, deep.Basis)
		})
	}
}

func TestNormalize_DropsOutOfRangeEpochTimestamp(t *testing.T) {
	n := New(nil)
	got := n.Normalize(domain.SourceSteps, []domain.RawRecord{
		{"date": 1e30, "steps": 9000.0},
		{"date": float64(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli()), "steps": 8000.0},
	})
	require.Len(t, got, 1)
	require.Equal(t, 8000.0, got[0].Metric(domain.MetricSteps).Value)
}
