package chart

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/blaisecz/health-trends/internal/domain"
	"github.com/blaisecz/health-trends/internal/normalize"
)

func TestFormat_WeightRoundTrip(t *testing.T) {
	n := normalize.New(nil)
	set := n.NormalizeAll(domain.Collections{
		Weight: []domain.RawRecord{
			{"date": "2024-01-01", "data": map[string]any{"weight": map[string]any{"value": "70.5"}}},
		},
	})

	data := Format(set)
	require.Len(t, data.WeightData, 1)

	out, err := json.Marshal(data.WeightData[0])
	require.NoError(t, err)
	require.JSONEq(t, `{"date":"2024-01-01T00:00:00.000Z","weight":70.5}`, string(out))
}

func TestComposition_TwoPointsPerRecord(t *testing.T) {
	set := normalize.New(nil).NormalizeAll(domain.Collections{
		Weight: []domain.RawRecord{{"date": "2024-01-01", "muscle": 35.2, "fat": 15.8}},
	})

	points := Composition(set.Weight)
	require.Len(t, points, 2)
	require.True(t, points[0].Date.Equal(points[1].Date.Time))

	require.Equal(t, domain.BreakdownMuscle, points[0].Breakdown)
	require.Equal(t, domain.LabelMuscle, points[0].Type)
	require.Equal(t, 35.2, *points[0].Value)

	require.Equal(t, domain.BreakdownFat, points[1].Breakdown)
	require.Equal(t, domain.LabelFat, points[1].Type)
	require.Equal(t, 15.8, *points[1].Value)
}

func TestComposition_SortedAcrossLabels(t *testing.T) {
	set := normalize.New(nil).NormalizeAll(domain.Collections{
		Weight: []domain.RawRecord{
			{"date": "2024-01-02", "muscle": 35.1, "fat": 15.9},
			{"date": "2024-01-01", "muscle": 35.2, "fat": 15.8},
		},
	})

	points := Composition(set.Weight)
	require.Len(t, points, 4)
	got := make([]string, 0, len(points))
	for _, p := range points {
		got = append(got, p.Date.Format("01-02")+" "+p.Breakdown)
	}
	require.Equal(t, []string{
		"01-01 muscle_mass",
		"01-01 fat_mass_weight",
		"01-02 muscle_mass",
		"01-02 fat_mass_weight",
	}, got)
}

func TestSleep_UsesDeepSleepPolicy(t *testing.T) {
	set := normalize.New(nil).NormalizeAll(domain.Collections{
		Sleep: []domain.RawRecord{
			{"datetime": "2024-01-02", "duration": 400.0},
			{"datetime": "2024-01-01", "totalMinutesAsleep": 420.0, "stages": map[string]any{"deep": 70.0}, "quality": "good"},
		},
	})

	points := Sleep(set.Sleep)
	require.Len(t, points, 2)

	require.Equal(t, 1, points[0].Date.Day())
	require.Equal(t, 70.0, *points[0].DeepSleep)
	require.False(t, points[0].DeepSleepEstimated)
	require.Equal(t, "good", points[0].Quality)

	require.InDelta(t, 88.0, *points[1].DeepSleep, 1e-9)
	require.True(t, points[1].DeepSleepEstimated)
}

func TestWaist_RenamesMeasurement(t *testing.T) {
	set := normalize.New(nil).NormalizeAll(domain.Collections{
		Waist: []domain.RawRecord{{"measurementTimeStamp": "2024-01-01", "waist": 85.2}},
	})

	out, err := json.Marshal(Waist(set.Waist))
	require.NoError(t, err)
	require.JSONEq(t, `[{"date":"2024-01-01T00:00:00.000Z","measurement":85.2}]`, string(out))
}

func TestSteps_KeepsPointsWithMissingValues(t *testing.T) {
	records := []domain.CanonicalRecord{
		{Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Metrics: map[domain.MetricName]domain.MetricValue{}},
		{Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Metrics: map[domain.MetricName]domain.MetricValue{domain.MetricSteps: domain.Observed(8500)}},
	}

	points := Steps(records)
	require.Len(t, points, 2)
	require.Equal(t, 8500.0, *points[0].Steps)
	require.Nil(t, points[1].Steps)
}

func TestFormat_DoesNotMutateInput(t *testing.T) {
	records := []domain.CanonicalRecord{
		{Date: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)},
		{Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	Format(domain.CanonicalSet{Weight: records, Steps: records})
	require.Equal(t, 3, records[0].Date.Day())
	require.Equal(t, 1, records[1].Date.Day())
}

func TestFormat_EmptySeriesAreArrays(t *testing.T) {
	out, err := json.Marshal(Format(domain.CanonicalSet{}))
	require.NoError(t, err)
	require.JSONEq(t, `{"weightData":[],"compositionData":[],"sleepData":[],"stepsData":[],"waistData":[]}`, string(out))
}

func TestCounts(t *testing.T) {
	data := domain.ChartData{WeightData: make([]domain.WeightPoint, 3)}
	require.Equal(t, 3, Counts(data)["weightData"])
	require.Equal(t, 0, Counts(data)["sleepData"])
}

func TestSeries(t *testing.T) {
	records := []domain.CanonicalRecord{{Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}}
	require.IsType(t, []domain.StepsPoint{}, Series(domain.SourceSteps, records))
	require.IsType(t, map[string]any{}, Series(domain.SourceWeight, records))
	require.Equal(t, []any{}, Series(domain.SourceAnalytics, records))
}
