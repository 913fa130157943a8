package domain

import (
	"encoding/json"
	"time"
)

// SourceType identifies a provider collection.
type SourceType string

const (
	SourceWeight    SourceType = "weight"
	SourceSleep     SourceType = "sleep"
	SourceWaist     SourceType = "waist"
	SourceSteps     SourceType = "steps"
	SourceAnalytics SourceType = "analytics"
)

// AllSources lists every collection fetched per period, in fetch order.
var AllSources = []SourceType{SourceWeight, SourceSleep, SourceWaist, SourceSteps, SourceAnalytics}

// IsValid reports whether s names a known collection.
func (s SourceType) IsValid() bool {
	switch s {
	case SourceWeight, SourceSleep, SourceWaist, SourceSteps, SourceAnalytics:
		return true
	}
	return false
}

// MetricName is a canonical metric key inside a CanonicalRecord.
type MetricName string

const (
	MetricWeight             MetricName = "weight"
	MetricMuscle             MetricName = "muscle"
	MetricFat                MetricName = "fat"
	MetricBoneMass           MetricName = "boneMass"
	MetricVisceralFat        MetricName = "visceralFat"
	MetricHydration          MetricName = "hydration"
	MetricBasalMetabolicRate MetricName = "basalMetabolicRate"
	MetricDuration           MetricName = "duration"
	MetricDeepSleep          MetricName = "deepSleep"
	MetricTimeInBed          MetricName = "timeInBed"
	MetricWaist              MetricName = "waist"
	MetricWaistToHeight      MetricName = "waistToHeight"
	MetricSteps              MetricName = "steps"
	MetricMarkerCount        MetricName = "markerCount"
)

// RawRecord is one provider record as decoded from JSON. Its shape varies by
// source and by provider API version.
type RawRecord map[string]any

// ValueKind tells whether a metric value was observed, inferred, or missing.
type ValueKind string

const (
	ValueObserved    ValueKind = "observed"
	ValueEstimated   ValueKind = "estimated"
	ValueUnavailable ValueKind = "unavailable"
)

// MetricValue is a tagged numeric value. An unavailable value is never zero-filled.
type MetricValue struct {
	Kind  ValueKind `json:"kind"`
	Value float64   `json:"value"`
	// Basis names the rule an estimated value was derived from.
	Basis string `json:"basis,omitempty"`
}

// Observed wraps a value read directly from a record.
func Observed(v float64) MetricValue {
	return MetricValue{Kind: ValueObserved, Value: v}
}

// Estimated wraps an inferred value together with the rule that produced it.
func Estimated(v float64, basis string) MetricValue {
	return MetricValue{Kind: ValueEstimated, Value: v, Basis: basis}
}

// Unavailable is the zero-information value.
func Unavailable() MetricValue {
	return MetricValue{Kind: ValueUnavailable}
}

// Available reports whether the value carries a number.
func (m MetricValue) Available() bool {
	return m.Kind == ValueObserved || m.Kind == ValueEstimated
}

// Ptr returns the value as a pointer, nil when unavailable.
func (m MetricValue) Ptr() *float64 {
	if !m.Available() {
		return nil
	}
	v := m.Value
	return &v
}

// CanonicalRecord is a schema-stable representation of one raw provider record.
type CanonicalRecord struct {
	Date    time.Time                  `json:"date"`
	Source  SourceType                 `json:"source"`
	Metrics map[MetricName]MetricValue `json:"metrics"`
	// Quality is the free-text sleep quality label, when the provider sends one.
	Quality string `json:"quality,omitempty"`
}

// Metric returns the named value, Unavailable when absent.
func (r CanonicalRecord) Metric(name MetricName) MetricValue {
	if r.Metrics == nil {
		return Unavailable()
	}
	v, ok := r.Metrics[name]
	if !ok {
		return Unavailable()
	}
	return v
}

// Collections holds raw provider records grouped by source.
type Collections struct {
	Weight    []RawRecord `json:"weight"`
	Sleep     []RawRecord `json:"sleep"`
	Waist     []RawRecord `json:"waist"`
	Steps     []RawRecord `json:"steps"`
	Analytics []RawRecord `json:"analytics"`
}

// Get returns the collection for a source.
func (c Collections) Get(source SourceType) []RawRecord {
	switch source {
	case SourceWeight:
		return c.Weight
	case SourceSleep:
		return c.Sleep
	case SourceWaist:
		return c.Waist
	case SourceSteps:
		return c.Steps
	case SourceAnalytics:
		return c.Analytics
	}
	return nil
}

// Set replaces the collection for a source.
func (c *Collections) Set(source SourceType, records []RawRecord) {
	switch source {
	case SourceWeight:
		c.Weight = records
	case SourceSleep:
		c.Sleep = records
	case SourceWaist:
		c.Waist = records
	case SourceSteps:
		c.Steps = records
	case SourceAnalytics:
		c.Analytics = records
	}
}

// Empty reports whether every collection is empty.
func (c Collections) Empty() bool {
	for _, s := range AllSources {
		if len(c.Get(s)) > 0 {
			return false
		}
	}
	return true
}

// CanonicalSet holds canonical records grouped by source.
type CanonicalSet struct {
	Weight    []CanonicalRecord
	Sleep     []CanonicalRecord
	Waist     []CanonicalRecord
	Steps     []CanonicalRecord
	Analytics []CanonicalRecord
}

// Get returns the canonical records for a source.
func (c CanonicalSet) Get(source SourceType) []CanonicalRecord {
	switch source {
	case SourceWeight:
		return c.Weight
	case SourceSleep:
		return c.Sleep
	case SourceWaist:
		return c.Waist
	case SourceSteps:
		return c.Steps
	case SourceAnalytics:
		return c.Analytics
	}
	return nil
}

// Set replaces the canonical records for a source.
func (c *CanonicalSet) Set(source SourceType, records []CanonicalRecord) {
	switch source {
	case SourceWeight:
		c.Weight = records
	case SourceSleep:
		c.Sleep = records
	case SourceWaist:
		c.Waist = records
	case SourceSteps:
		c.Steps = records
	case SourceAnalytics:
		c.Analytics = records
	}
}

// ChartTimeLayout renders chart dates as full ISO-8601 UTC with milliseconds.
const ChartTimeLayout = "2006-01-02T15:04:05.000Z07:00"

// ChartTime marshals as ChartTimeLayout in UTC.
type ChartTime struct {
	time.Time
}

func (t ChartTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.UTC().Format(ChartTimeLayout))
}

func (t *ChartTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return err
	}
	t.Time = parsed.UTC()
	return nil
}

// String renders the chart date.
func (t ChartTime) String() string {
	return t.UTC().Format(ChartTimeLayout)
}
