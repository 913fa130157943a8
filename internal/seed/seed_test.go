package seed

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/blaisecz/health-trends/internal/domain"
	"github.com/blaisecz/health-trends/internal/kpi"
	"github.com/blaisecz/health-trends/internal/normalize"
	"github.com/blaisecz/health-trends/internal/provider"
)

func fixedProvider() *Provider {
	return &Provider{now: func() time.Time { return time.Date(2024, 3, 31, 12, 0, 0, 0, time.UTC) }}
}

func TestRecord_Deterministic(t *testing.T) {
	day := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	for _, source := range domain.AllSources {
		require.Equal(t, Record("u1", source, day), Record("u1", source, day), "source %s", source)
	}
	require.NotEqual(t, Record("u1", domain.SourceSteps, day), Record("u2", domain.SourceSteps, day))
}

func TestFetchCollection_OneRecordPerDay(t *testing.T) {
	p := fixedProvider()
	records, err := p.FetchCollection(context.Background(), domain.SourceSteps, provider.Query{
		UserID: "u1",
		From:   "2024-03-01T00:00:00.000Z",
		To:     "2024-03-31T23:59:59.000Z",
	})
	require.NoError(t, err)
	require.Len(t, records, 31)
}

func TestFetchCollection_InvalidBounds(t *testing.T) {
	_, err := fixedProvider().FetchCollection(context.Background(), domain.SourceSteps, provider.Query{UserID: "u1", From: "yesterday"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFixtureDataNormalizesCleanly(t *testing.T) {
	p := fixedProvider()
	current, previous, err := kpi.CurrentAndPreviousRange(p.now(), 30)
	require.NoError(t, err)

	cur, err := Collections(context.Background(), p, "u1", current)
	require.NoError(t, err)
	prev, err := Collections(context.Background(), p, "u1", previous)
	require.NoError(t, err)

	n := normalize.New(nil)
	set := n.NormalizeAll(cur)
	require.Len(t, set.Weight, len(cur.Weight))
	require.Len(t, set.Sleep, len(cur.Sleep))
	require.NotEmpty(t, set.Waist)
	require.NotEmpty(t, set.Analytics)

	kpis := kpi.NewEngine(n, nil).Build(cur, prev)
	require.NotNil(t, kpis.Weight.Change)
	require.NotNil(t, kpis.Muscle.Current)
	require.NotNil(t, kpis.Fat.Current)
	require.NotNil(t, kpis.TotalSleep.Change)
	require.NotNil(t, kpis.DeepSleep.Change)
	require.NotNil(t, kpis.Steps.Change)
	require.NotNil(t, kpis.Waist.Current)
}

func TestFetchAnalyticsDocument(t *testing.T) {
	p := fixedProvider()
	docs, err := p.FetchCollection(context.Background(), domain.SourceAnalytics, provider.Query{UserID: "u1"})
	require.NoError(t, err)
	require.NotEmpty(t, docs)

	id := docs[0]["id"].(string)
	doc, err := p.FetchAnalyticsDocument(context.Background(), "u1", id, false)
	require.NoError(t, err)
	require.Equal(t, docs[0], doc)

	_, err = p.FetchAnalyticsDocument(context.Background(), "u1", "fx-2024-01-02", false)
	require.ErrorIs(t, err, domain.ErrNotFound)
	_, err = p.FetchAnalyticsDocument(context.Background(), "u1", "other", false)
	require.ErrorIs(t, err, domain.ErrNotFound)
}
