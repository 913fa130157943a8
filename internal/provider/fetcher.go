package provider

import (
	"context"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/blaisecz/health-trends/internal/domain"
	"github.com/blaisecz/health-trends/internal/logger"
	"github.com/blaisecz/health-trends/internal/observability"
)

const defaultFetchTimeout = 10 * time.Second

// Period labels used in SourceStatus.
const (
	PeriodCurrent  = "current"
	PeriodPrevious = "previous"
)

// PeriodData holds the raw collections of both periods.
type PeriodData struct {
	Current  domain.Collections
	Previous domain.Collections
	Sources  []domain.SourceStatus
}

// Fetcher loads every collection for two periods in parallel.
type Fetcher struct {
	provider Provider
	timeout  time.Duration
	log      *logger.Entry
}

// NewFetcher creates a Fetcher. Each individual fetch is bounded by timeout.
func NewFetcher(p Provider, timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	return &Fetcher{
		provider: p,
		timeout:  timeout,
		log:      logger.GetLogger().WithComponent("fetcher"),
	}
}

type fetchResult struct {
	period  string
	source  domain.SourceType
	records []domain.RawRecord
	err     error
}

// FetchPeriods issues one fetch per source and period. A failed or timed-out
// fetch degrades to an empty collection and is reported in Sources; it never
// fails the whole call. Only cancellation of ctx is returned as an error.
func (f *Fetcher) FetchPeriods(ctx context.Context, userID string, findByHC bool, current, previous domain.Period) (*PeriodData, error) {
	periods := []struct {
		name   string
		period domain.Period
	}{
		{PeriodCurrent, current},
		{PeriodPrevious, previous},
	}

	var mu sync.Mutex
	results := make([]fetchResult, 0, 2*len(domain.AllSources))

	g, gctx := errgroup.WithContext(ctx)
	for _, p := range periods {
		for _, source := range domain.AllSources {
			p, source := p, source
			g.Go(func() error {
				res := f.fetchOne(gctx, source, Query{
					UserID:   userID,
					From:     p.period.QueryFrom(),
					To:       p.period.QueryTo(),
					FindByHC: findByHC,
				})
				res.period = p.name

				mu.Lock()
				results = append(results, res)
				mu.Unlock()
				return nil
			})
		}
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data := &PeriodData{Sources: make([]domain.SourceStatus, 0, len(results))}
	for _, res := range results {
		target := &data.Current
		if res.period == PeriodPrevious {
			target = &data.Previous
		}
		target.Set(res.source, res.records)

		status := domain.SourceStatus{
			Source:  res.source,
			Period:  res.period,
			OK:      res.err == nil,
			Records: len(res.records),
		}
		if res.err != nil {
			status.Error = res.err.Error()
		}
		data.Sources = append(data.Sources, status)
	}
	sortStatuses(data.Sources)
	return data, nil
}

func (f *Fetcher) fetchOne(ctx context.Context, source domain.SourceType, q Query) fetchResult {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	start := time.Now()
	records, err := f.provider.FetchCollection(ctx, source, q)
	observability.RecordFetchDuration(string(source), time.Since(start))

	if err != nil {
		observability.RecordFetchFailure(string(source))
		f.log.WithError(err).WithFields(logger.Fields{
			"source": source,
			"from":   q.From,
			"to":     q.To,
		}).Warn("provider fetch failed, using empty collection")
		return fetchResult{source: source, records: []domain.RawRecord{}, err: err}
	}
	if records == nil {
		records = []domain.RawRecord{}
	}
	return fetchResult{source: source, records: records}
}

// sortStatuses orders statuses by period (current first) then source order.
func sortStatuses(statuses []domain.SourceStatus) {
	rank := func(s domain.SourceStatus) int {
		r := 0
		if s.Period == PeriodPrevious {
			r = len(domain.AllSources)
		}
		for i, src := range domain.AllSources {
			if src == s.Source {
				return r + i
			}
		}
		return r
	}
	sort.SliceStable(statuses, func(i, j int) bool {
		return rank(statuses[i]) < rank(statuses[j])
	})
}
