package normalize

import (
	"strings"

	"github.com/blaisecz/health-trends/internal/domain"
	"github.com/blaisecz/health-trends/internal/logger"
	"github.com/blaisecz/health-trends/internal/observability"
)

// DeepSleepFraction is the share of total sleep assumed to be deep sleep
// when the provider reports neither a deep sleep figure nor stages.
const DeepSleepFraction = 0.22

// Basis labels attached to derived values.
const (
	BasisStages       = "stages"
	BasisStagesREM    = "stages.rem"
	BasisStageSum     = "stages.deep+light+rem"
	BasisDurationFrac = "duration*0.22"
)

// Normalizer canonicalizes raw records using a SchemaTable.
type Normalizer struct {
	schema SchemaTable
	log    *logger.Entry
}

// New creates a Normalizer. A nil table uses DefaultSchemaTable.
func New(schema SchemaTable) *Normalizer {
	if schema == nil {
		schema = DefaultSchemaTable()
	}
	return &Normalizer{
		schema: schema,
		log:    logger.GetLogger().WithComponent("normalizer"),
	}
}

// Normalize returns one canonical record per raw record with a parseable
// timestamp, in input order. Malformed metric fields become unavailable.
func (n *Normalizer) Normalize(source domain.SourceType, raw []domain.RawRecord) []domain.CanonicalRecord {
	schema, ok := n.schema[source]
	if !ok {
		n.log.WithFields(logger.Fields{"source": source}).Warn("no schema for source")
		return []domain.CanonicalRecord{}
	}

	out := make([]domain.CanonicalRecord, 0, len(raw))
	dropped := 0
	for _, rec := range raw {
		cr, ok := n.normalizeRecord(source, schema, rec)
		if !ok {
			dropped++
			continue
		}
		out = append(out, cr)
	}

	if dropped > 0 {
		n.log.WithFields(logger.Fields{
			"source":  source,
			"dropped": dropped,
			"total":   len(raw),
		}).Debug("dropped records without a parseable timestamp")
		observability.RecordDroppedRecords(string(source), dropped)
	}
	return out
}

// NormalizeAll canonicalizes every collection.
func (n *Normalizer) NormalizeAll(c domain.Collections) domain.CanonicalSet {
	var set domain.CanonicalSet
	for _, source := range domain.AllSources {
		set.Set(source, n.Normalize(source, c.Get(source)))
	}
	return set
}

func (n *Normalizer) normalizeRecord(source domain.SourceType, schema SourceSchema, rec domain.RawRecord) (domain.CanonicalRecord, bool) {
	if rec == nil {
		return domain.CanonicalRecord{}, false
	}
	tsField, ok := resolve(rec, schema.Timestamp)
	if !ok {
		return domain.CanonicalRecord{}, false
	}
	date, ok := ExtractTime(tsField)
	if !ok {
		return domain.CanonicalRecord{}, false
	}

	cr := domain.CanonicalRecord{
		Date:    date,
		Source:  source,
		Metrics: make(map[domain.MetricName]domain.MetricValue, len(schema.Metrics)),
	}
	for name, paths := range schema.Metrics {
		if v := metric(rec, paths); v.Available() {
			cr.Metrics[name] = v
		}
	}

	switch source {
	case domain.SourceSleep:
		var stages map[string]any
		if v, ok := resolve(rec, schema.Stages); ok {
			stages = asMap(v)
		}
		deep, duration := DeepSleep(cr.Metric(domain.MetricDeepSleep), cr.Metric(domain.MetricDuration), stages)
		setMetric(cr.Metrics, domain.MetricDeepSleep, deep)
		setMetric(cr.Metrics, domain.MetricDuration, duration)
		observability.RecordDeepSleep(string(deep.Kind))
		if q, ok := resolve(rec, schema.Quality); ok {
			if s, ok := q.(string); ok {
				cr.Quality = strings.TrimSpace(s)
			}
		}
	case domain.SourceAnalytics:
		if markers, ok := rec["markers"].([]any); ok {
			cr.Metrics[domain.MetricMarkerCount] = domain.Observed(float64(len(markers)))
		}
	}
	return cr, true
}

// DeepSleep applies the deep sleep policy and returns the deep sleep and
// total duration values to store. In order of preference deep sleep is the
// explicit figure, the "deep" stage (or "rem" when deep is missing), and
// finally duration times DeepSleepFraction, flagged as estimated. A reported
// duration is kept even when stages exist; only when it is missing does the
// sum of the deep, light and rem stages stand in.
func DeepSleep(explicit, duration domain.MetricValue, stages map[string]any) (deep, total domain.MetricValue) {
	total = duration
	if !total.Available() && stages != nil {
		var sum float64
		found := false
		for _, key := range []string{"deep", "light", "rem"} {
			if v, ok := stageValue(stages, key); ok {
				sum += v
				found = true
			}
		}
		if found {
			total = domain.MetricValue{Kind: domain.ValueObserved, Value: sum, Basis: BasisStageSum}
		}
	}

	if explicit.Available() {
		return explicit, total
	}
	if stages != nil {
		if v, ok := stageValue(stages, "deep"); ok {
			return domain.MetricValue{Kind: domain.ValueObserved, Value: v, Basis: BasisStages}, total
		}
		if v, ok := stageValue(stages, "rem"); ok {
			return domain.MetricValue{Kind: domain.ValueObserved, Value: v, Basis: BasisStagesREM}, total
		}
	}
	if total.Available() {
		return domain.Estimated(total.Value*DeepSleepFraction, BasisDurationFrac), total
	}
	return domain.Unavailable(), total
}

// stageValue reads a stage as a bare number, an envelope, or a
// {"minutes": n} summary object.
func stageValue(stages map[string]any, key string) (float64, bool) {
	raw, ok := stages[key]
	if !ok {
		return 0, false
	}
	if m := asMap(raw); m != nil {
		if minutes, ok := m["minutes"]; ok {
			return ExtractValue(minutes)
		}
	}
	return ExtractValue(raw)
}

func asMap(v any) map[string]any {
	switch m := v.(type) {
	case map[string]any:
		return m
	case domain.RawRecord:
		return m
	}
	return nil
}

func setMetric(metrics map[domain.MetricName]domain.MetricValue, name domain.MetricName, v domain.MetricValue) {
	if v.Available() {
		metrics[name] = v
		return
	}
	delete(metrics, name)
}
