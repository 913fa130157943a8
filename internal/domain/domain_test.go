package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMarker_IsOutOfRange(t *testing.T) {
	tests := []struct {
		name   string
		marker Marker
		want   bool
	}{
		{name: "below upper limit", marker: Marker{Value: 180.0, Reference: "<200"}},
		{name: "above upper limit", marker: Marker{Value: 210.0, Reference: "<200"}, want: true},
		{name: "above lower limit", marker: Marker{Value: 55.0, Reference: "> 40"}},
		{name: "below lower limit", marker: Marker{Value: "35", Reference: ">40"}, want: true},
		{name: "inside range", marker: Marker{Value: 95.0, Reference: "70-100"}},
		{name: "range bounds inclusive", marker: Marker{Value: 100.0, Reference: "70 - 100"}},
		{name: "outside range", marker: Marker{Value: "101 mg/dL", Reference: "70-100"}, want: true},
		{name: "no reference", marker: Marker{Value: 5000.0}},
		{name: "qualitative reference", marker: Marker{Value: "negative", Reference: "negative"}},
		{name: "non numeric value", marker: Marker{Value: "trace", Reference: "<5"}},
		{name: "malformed range", marker: Marker{Value: 3.0, Reference: "a-b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.marker.IsOutOfRange())
		})
	}
}

func TestParseLeadingFloat(t *testing.T) {
	v, ok := ParseLeadingFloat(" -1.5e")
	require.True(t, ok)
	require.Equal(t, -1.5, v)

	v, ok = ParseLeadingFloat("1.2e3 U/L")
	require.True(t, ok)
	require.Equal(t, 1200.0, v)

	v, ok = ParseLeadingFloat("4E-2")
	require.True(t, ok)
	require.Equal(t, 0.04, v)

	_, ok = ParseLeadingFloat("abc")
	require.False(t, ok)
	_, ok = ParseLeadingFloat("-")
	require.False(t, ok)
}

func TestChartTime_JSON(t *testing.T) {
	ct := ChartTime{Time: time.Date(2024, 1, 1, 1, 0, 0, 0, time.FixedZone("CET", 3600))}
	data, err := json.Marshal(ct)
	require.NoError(t, err)
	require.Equal(t, `"2024-01-01T00:00:00.000Z"`, string(data))

	var back ChartTime
	require.NoError(t, json.Unmarshal(data, &back))
	require.True(t, back.Equal(ct.Time))
	require.Equal(t, "2024-01-01T00:00:00.000Z", back.String())
}

func TestMetricValue(t *testing.T) {
	require.Nil(t, Unavailable().Ptr())
	require.Equal(t, 0.0, *Observed(0).Ptr())

	est := Estimated(88, "duration*0.22")
	require.True(t, est.Available())
	require.Equal(t, "duration*0.22", est.Basis)

	var r CanonicalRecord
	require.Equal(t, ValueUnavailable, r.Metric(MetricWeight).Kind)
}

func TestCollections(t *testing.T) {
	var c Collections
	require.True(t, c.Empty())
	c.Set(SourceWaist, []RawRecord{{"waist": 80.0}})
	require.False(t, c.Empty())
	require.Len(t, c.Get(SourceWaist), 1)
	require.Nil(t, c.Get(SourceType("heart")))
	require.False(t, SourceType("heart").IsValid())
}

func TestPeriod_QueryBounds(t *testing.T) {
	p := Period{
		Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		Label: "Last 30 days",
	}
	require.Equal(t, "2024-01-01T00:00:00.000Z", p.QueryFrom())
	require.Equal(t, "2024-01-31T23:59:59.000Z", p.QueryTo())
	require.Equal(t, PeriodView{Start: "2024-01-01", End: "2024-01-31", Label: "Last 30 days"}, p.View())
}

func TestJobStatus_Terminal(t *testing.T) {
	require.False(t, JobPending.Terminal())
	for _, s := range []JobStatus{JobCompleted, JobFailed, JobCancelled} {
		require.True(t, s.Terminal())
	}
}
