// Package normalize turns heterogeneous provider records into canonical records.
package normalize

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/blaisecz/health-trends/internal/domain"
)

// ExtractValue resolves the number a field denotes. Bare numbers are returned
// as-is, envelopes like {"value": "12.5", "unit": "kg"} yield their parsed
// value, and numeric strings are parsed. Anything else, including NaN and
// infinities, is absent. It never panics.
func ExtractValue(field any) (float64, bool) {
	switch v := field.(type) {
	case nil:
		return 0, false
	case map[string]any:
		return extractEnvelope(v)
	case domain.RawRecord:
		return extractEnvelope(v)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return finite(f)
	}
	return number(field)
}

// ExtractMetric wraps ExtractValue as an observed or unavailable value.
func ExtractMetric(field any) domain.MetricValue {
	if v, ok := ExtractValue(field); ok {
		return domain.Observed(v)
	}
	return domain.Unavailable()
}

func extractEnvelope(m map[string]any) (float64, bool) {
	inner, ok := m["value"]
	if !ok || inner == nil {
		return 0, false
	}
	if s, ok := inner.(string); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			// Unit suffixes such as "95 mg/dL" still carry a usable number.
			var lenient bool
			if f, lenient = domain.ParseLeadingFloat(s); !lenient {
				return 0, false
			}
		}
		return finite(f)
	}
	return number(inner)
}

func number(field any) (float64, bool) {
	switch v := field.(type) {
	case float64:
		return finite(v)
	case float32:
		return finite(float64(v))
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return finite(f)
	}
	return 0, false
}

func finite(f float64) (float64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Epoch timestamps outside years 1 through 9999 are rejected.
const (
	minEpochMillis = -62135596800000
	maxEpochMillis = 253402300799999
)

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ExtractTime resolves a timestamp field. Strings in RFC3339 or calendar-day
// layouts, epoch milliseconds, and Firestore {_seconds, _nanoseconds} maps are
// supported. Layouts without an offset are read as UTC.
func ExtractTime(field any) (time.Time, bool) {
	switch v := field.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		return v.UTC(), !v.IsZero()
	case string:
		s := strings.TrimSpace(v)
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.UTC(), true
			}
		}
		return time.Time{}, false
	case map[string]any:
		return firestoreTime(v)
	case domain.RawRecord:
		return firestoreTime(v)
	}
	ms, ok := number(field)
	if !ok || ms < minEpochMillis || ms > maxEpochMillis {
		return time.Time{}, false
	}
	return time.UnixMilli(int64(ms)).UTC(), true
}

func firestoreTime(m map[string]any) (time.Time, bool) {
	raw, ok := m["_seconds"]
	if !ok {
		raw, ok = m["seconds"]
	}
	if !ok {
		return time.Time{}, false
	}
	sec, ok := number(raw)
	if !ok || sec < minEpochMillis/1000 || sec > maxEpochMillis/1000 {
		return time.Time{}, false
	}
	var nsec float64
	if n, ok := m["_nanoseconds"]; ok {
		nsec, _ = number(n)
	} else if n, ok := m["nanoseconds"]; ok {
		nsec, _ = number(n)
	}
	return time.Unix(int64(sec), int64(nsec)).UTC(), true
}

// Lookup walks a dot-separated path through nested maps.
func Lookup(rec map[string]any, path string) (any, bool) {
	var cur any = rec
	for _, key := range strings.Split(path, ".") {
		var m map[string]any
		switch v := cur.(type) {
		case map[string]any:
			m = v
		case domain.RawRecord:
			m = v
		default:
			return nil, false
		}
		next, ok := m[key]
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}
