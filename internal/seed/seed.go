// Package seed generates deterministic sample health data. It backs the
// fixture provider mode and the sample-data script.
package seed

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/blaisecz/health-trends/internal/domain"
	"github.com/blaisecz/health-trends/internal/provider"
)

const (
	historyDays      = 365
	waistEveryDays   = 7
	analyticsEvery   = 30
	documentIDPrefix = "fx-"
)

// Provider serves generated records. The same user and day always produce
// the same record, whatever window is queried.
type Provider struct {
	now func() time.Time
}

// NewProvider creates a fixture provider anchored at the current time.
func NewProvider() *Provider {
	return &Provider{now: time.Now}
}

var _ provider.Provider = (*Provider)(nil)

// FetchCollection returns one generated record per day in the query window.
func (p *Provider) FetchCollection(ctx context.Context, source domain.SourceType, q provider.Query) ([]domain.RawRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !source.IsValid() {
		return nil, fmt.Errorf("%w: unknown source %q", domain.ErrInvalidInput, source)
	}

	from, to, err := p.window(q)
	if err != nil {
		return nil, err
	}

	records := []domain.RawRecord{}
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		if rec := Record(q.UserID, source, day); rec != nil {
			records = append(records, rec)
		}
	}
	return records, nil
}

// FetchAnalyticsDocument regenerates the document encoded in documentID.
func (p *Provider) FetchAnalyticsDocument(ctx context.Context, userID, documentID string, _ bool) (domain.RawRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	day, err := time.Parse("2006-01-02", strings.TrimPrefix(documentID, documentIDPrefix))
	if err != nil || !strings.HasPrefix(documentID, documentIDPrefix) {
		return nil, fmt.Errorf("%w: analytics document %s", domain.ErrNotFound, documentID)
	}
	rec := Record(userID, domain.SourceAnalytics, day)
	if rec == nil {
		return nil, fmt.Errorf("%w: analytics document %s", domain.ErrNotFound, documentID)
	}
	return rec, nil
}

func (p *Provider) window(q provider.Query) (time.Time, time.Time, error) {
	to := truncateDay(p.now())
	from := to.AddDate(0, 0, -historyDays)

	if q.From != "" {
		t, err := time.Parse(time.RFC3339, q.From)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: from %q", domain.ErrInvalidInput, q.From)
		}
		from = truncateDay(t)
	}
	if q.To != "" {
		t, err := time.Parse(time.RFC3339, q.To)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: to %q", domain.ErrInvalidInput, q.To)
		}
		to = truncateDay(t)
	}
	return from, to, nil
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Record generates the record of one source for one user and day, or nil
// when the source has no record that day. Layouts alternate between the
// flat and the newer provider schemas.
func Record(userID string, source domain.SourceType, day time.Time) domain.RawRecord {
	day = truncateDay(day)
	rng := rngFor(userID, source, day)
	epochDay := int(day.Unix() / 86400)
	// slow drift shared by every metric of a user
	drift := math.Sin(float64(epochDay) / 45)

	switch source {
	case domain.SourceWeight:
		weight := round1(72 + 2*drift + rng.Float64() - 0.5)
		muscle := round1(weight * (0.47 + 0.01*rng.Float64()))
		fat := round1(weight * (0.22 + 0.01*rng.Float64()))
		if epochDay%2 == 0 {
			return domain.RawRecord{
				"date":   day.Format("2006-01-02"),
				"weight": weight,
				"muscle": muscle,
				"fat":    fat,
			}
		}
		return domain.RawRecord{
			"date":                 map[string]any{"_seconds": float64(day.Unix()), "_nanoseconds": 0.0},
			"weight":               map[string]any{"value": fmt.Sprintf("%.1f", weight), "unit": "kg"},
			"muscle_mass":          muscle,
			"fat_mass_weight":      fat,
			"bone_mass":            round1(2.9 + 0.2*rng.Float64()),
			"visceral_fat":         float64(7 + rng.Intn(3)),
			"hydration":            round1(54 + 3*rng.Float64()),
			"basal_metabolic_rate": float64(1550 + rng.Intn(100)),
		}

	case domain.SourceSleep:
		asleep := float64(380 + rng.Intn(100))
		quality := []string{"poor", "fair", "good", "good", "excellent"}[rng.Intn(5)]
		bedtime := day.Add(time.Duration(22*60+rng.Intn(90)) * time.Minute)
		if epochDay%2 == 0 {
			deep := math.Round(asleep * (0.15 + 0.1*rng.Float64()))
			rem := math.Round(asleep * (0.2 + 0.05*rng.Float64()))
			return domain.RawRecord{
				"datetime":           bedtime.Format(time.RFC3339),
				"totalMinutesAsleep": asleep,
				"totalTimeInBed":     asleep + float64(15+rng.Intn(40)),
				"stages": map[string]any{
					"deep":  deep,
					"rem":   rem,
					"light": asleep - deep - rem,
					"wake":  float64(10 + rng.Intn(30)),
				},
				"quality": quality,
			}
		}
		return domain.RawRecord{
			"datetime": bedtime.Format(time.RFC3339),
			"duration": asleep,
			"quality":  quality,
		}

	case domain.SourceWaist:
		if epochDay%waistEveryDays != 0 {
			return nil
		}
		waist := round1(86 + 1.5*drift + rng.Float64() - 0.5)
		return domain.RawRecord{
			"measurementTimeStamp": map[string]any{"_seconds": float64(day.Add(8 * time.Hour).Unix())},
			"measurementWaistCm":   waist,
			"ica":                  math.Round(waist/175*100) / 100,
		}

	case domain.SourceSteps:
		return domain.RawRecord{
			"date":  day.Format("2006-01-02"),
			"steps": float64(6000 + int(1500*drift) + rng.Intn(4000)),
		}

	case domain.SourceAnalytics:
		if epochDay%analyticsEvery != 0 {
			return nil
		}
		return domain.RawRecord{
			"id":      documentIDPrefix + day.Format("2006-01-02"),
			"date":    day.Format("2006-01-02"),
			"type":    "blood_test",
			"summary": "Routine blood panel.",
			"markers": []any{
				marker("Glucose", float64(80+rng.Intn(35)), "mg/dL", "70-100", "biochemistry", "Bioquímica"),
				marker("Cholesterol", float64(170+rng.Intn(50)), "mg/dL", "<200", "lipids", "Perfil lipídico"),
				marker("HDL", float64(38+rng.Intn(25)), "mg/dL", ">40", "lipids", "Perfil lipídico"),
				marker("Hemoglobin", round1(12.5+3*rng.Float64()), "g/dL", "13.5-17.5", "hematology", "Hematología"),
			},
		}
	}
	return nil
}

func marker(name string, value float64, unit, reference, category, display string) map[string]any {
	return map[string]any{
		"analytic":       name,
		"value":          value,
		"unit":           unit,
		"reference":      reference,
		"category":       category,
		"catDisplayName": display,
	}
}

func rngFor(userID string, source domain.SourceType, day time.Time) *rand.Rand {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s|%s|%s", userID, source, day.Format("2006-01-02"))
	return rand.New(rand.NewSource(int64(h.Sum64())))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Collections generates every collection for a user over a period.
func Collections(ctx context.Context, p *Provider, userID string, period domain.Period) (domain.Collections, error) {
	var c domain.Collections
	for _, source := range domain.AllSources {
		records, err := p.FetchCollection(ctx, source, provider.Query{
			UserID: userID,
			From:   period.QueryFrom(),
			To:     period.QueryTo(),
		})
		if err != nil {
			return domain.Collections{}, err
		}
		c.Set(source, records)
	}
	return c, nil
}
