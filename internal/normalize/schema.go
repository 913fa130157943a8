package normalize

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/blaisecz/health-trends/internal/domain"
)

// SourceSchema tells the normalizer where each canonical field lives in a raw
// record of one source. Every list is ordered by preference; the first path
// that resolves wins.
type SourceSchema struct {
	Timestamp []string                         `yaml:"timestamp"`
	Metrics   map[domain.MetricName][]string `yaml:"metrics"`
	// Stages locates a sleep-stage breakdown object (deep, light, rem, wake).
	Stages  []string `yaml:"stages,omitempty"`
	Quality []string `yaml:"quality,omitempty"`
}

// SchemaTable maps every source to its schema. It is the only place that
// knows provider field names.
type SchemaTable map[domain.SourceType]SourceSchema

// DefaultSchemaTable covers the flat, enveloped and newer provider layouts.
func DefaultSchemaTable() SchemaTable {
	return SchemaTable{
		domain.SourceWeight: {
			Timestamp: []string{"date"},
			Metrics: map[domain.MetricName][]string{
				domain.MetricWeight:             {"data.weight", "weight"},
				domain.MetricMuscle:             {"data.muscle", "data.muscle_mass", "muscle", "muscle_mass"},
				domain.MetricFat:                {"data.fat", "data.fat_mass_weight", "fat", "fat_mass_weight"},
				domain.MetricBoneMass:           {"data.bone_mass", "bone_mass"},
				domain.MetricVisceralFat:        {"data.visceral_fat", "visceral_fat"},
				domain.MetricHydration:          {"data.hydration", "hydration"},
				domain.MetricBasalMetabolicRate: {"data.basal_metabolic_rate", "basal_metabolic_rate"},
			},
		},
		domain.SourceSleep: {
			Timestamp: []string{"datetime", "date"},
			Metrics: map[domain.MetricName][]string{
				domain.MetricDuration:  {"data.duration", "duration", "data.totalMinutesAsleep", "totalMinutesAsleep"},
				domain.MetricDeepSleep: {"data.deepSleep", "deepSleep"},
				domain.MetricTimeInBed: {"data.totalTimeInBed", "totalTimeInBed"},
			},
			Stages:  []string{"data.stages", "stages", "data.levels.summary"},
			Quality: []string{"data.quality", "quality"},
		},
		domain.SourceWaist: {
			Timestamp: []string{"measurementTimeStamp", "date"},
			Metrics: map[domain.MetricName][]string{
				domain.MetricWaist:         {"data.waist", "waist", "measurementWaistCm"},
				domain.MetricWaistToHeight: {"data.ica", "ica"},
			},
		},
		domain.SourceSteps: {
			Timestamp: []string{"date"},
			Metrics: map[domain.MetricName][]string{
				domain.MetricSteps: {"data.steps", "steps"},
			},
		},
		domain.SourceAnalytics: {
			Timestamp: []string{"date", "fechaSubida"},
			Metrics:   map[domain.MetricName][]string{},
		},
	}
}

// ParseSchema decodes a YAML schema document and layers it over the
// defaults. A source present in the document replaces its default entry
// field by field: timestamp and stage lists replace wholesale, metric
// entries replace per metric.
//
//	sleep:
//	  timestamp: [startTime]
//	  metrics:
//	    duration: [minutesAsleep]
func ParseSchema(data []byte) (SchemaTable, error) {
	var override map[domain.SourceType]SourceSchema
	if err := yaml.Unmarshal(data, &override); err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}

	table := DefaultSchemaTable()
	for source, entry := range override {
		if !source.IsValid() {
			return nil, fmt.Errorf("unknown source %q in schema", source)
		}
		merged := table[source]
		if len(entry.Timestamp) > 0 {
			merged.Timestamp = entry.Timestamp
		}
		if len(entry.Stages) > 0 {
			merged.Stages = entry.Stages
		}
		if len(entry.Quality) > 0 {
			merged.Quality = entry.Quality
		}
		metrics := make(map[domain.MetricName][]string, len(merged.Metrics)+len(entry.Metrics))
		for name, paths := range merged.Metrics {
			metrics[name] = paths
		}
		for name, paths := range entry.Metrics {
			metrics[name] = paths
		}
		merged.Metrics = metrics
		table[source] = merged
	}
	return table, nil
}

// LoadSchemaFile reads a YAML override. An empty path yields the defaults.
func LoadSchemaFile(path string) (SchemaTable, error) {
	if path == "" {
		return DefaultSchemaTable(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}
	return ParseSchema(data)
}

// resolve returns the first path in paths that exists in rec.
func resolve(rec domain.RawRecord, paths []string) (any, bool) {
	for _, p := range paths {
		if v, ok := Lookup(rec, p); ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// metric returns the first path that yields a number.
func metric(rec domain.RawRecord, paths []string) domain.MetricValue {
	for _, p := range paths {
		v, ok := Lookup(rec, p)
		if !ok {
			continue
		}
		if mv := ExtractMetric(v); mv.Available() {
			return mv
		}
	}
	return domain.Unavailable()
}
