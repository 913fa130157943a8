package service

import (
	"context"
	"encoding/json"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/blaisecz/health-trends/internal/chart"
	"github.com/blaisecz/health-trends/internal/domain"
	"github.com/blaisecz/health-trends/internal/kpi"
	"github.com/blaisecz/health-trends/internal/logger"
	"github.com/blaisecz/health-trends/internal/normalize"
	"github.com/blaisecz/health-trends/internal/observability"
	"github.com/blaisecz/health-trends/internal/provider"
)

// DashboardService computes KPIs and chart series for a patient.
type DashboardService interface {
	// Build fetches both periods and returns KPIs, chart data and per-source
	// status. Failed sources degrade to empty collections.
	Build(ctx context.Context, req *domain.DashboardRequest) (*domain.DashboardResponse, error)
	// SummaryContext builds the LLM context for a summary or chat turn.
	SummaryContext(ctx context.Context, patientID string, summaryType domain.SummaryType, periodDays int, lookup string) (*domain.SummaryContext, error)
}

type dashboardService struct {
	fetcher    *provider.Fetcher
	normalizer *normalize.Normalizer
	engine     *kpi.Engine
	now        func() time.Time
	log        *logger.Entry
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(fetcher *provider.Fetcher, normalizer *normalize.Normalizer, engine *kpi.Engine) DashboardService {
	if normalizer == nil {
		normalizer = normalize.New(nil)
	}
	if engine == nil {
		engine = kpi.NewEngine(normalizer, nil)
	}
	return &dashboardService{
		fetcher:    fetcher,
		normalizer: normalizer,
		engine:     engine,
		now:        time.Now,
		log:        logger.GetLogger().WithComponent("dashboard"),
	}
}

// snapshot is one computed view over two periods.
type snapshot struct {
	raw    *provider.PeriodData
	set    domain.CanonicalSet
	kpis   domain.KPISet
	charts domain.ChartData
}

func (s *dashboardService) Build(ctx context.Context, req *domain.DashboardRequest) (*domain.DashboardResponse, error) {
	periodDays := req.PeriodDays
	if periodDays == 0 {
		periodDays = kpi.DefaultLookbackDays
	}

	current, previous, err := kpi.CurrentAndPreviousRange(s.now(), periodDays)
	if err != nil {
		return nil, err
	}

	tracer := otel.Tracer("health-trends-api/dashboard")
	ctx, span := tracer.Start(ctx, "DashboardService.Build",
		trace.WithAttributes(
			attribute.String("patient.id", req.PatientID),
			attribute.Int("period.days", periodDays),
			attribute.String("period.current", current.StartDay()+"/"+current.EndDay()),
		),
	)
	defer span.End()

	start := time.Now()
	snap, err := s.compute(ctx, req.PatientID, req.Lookup, current, previous)
	if err != nil {
		return nil, err
	}

	resp := &domain.DashboardResponse{
		KPIs:           snap.kpis,
		ChartData:      snap.charts,
		PeriodDays:     periodDays,
		CurrentPeriod:  current.View(),
		PreviousPeriod: previous.View(),
		HasData:        !snap.raw.Current.Empty() || !snap.raw.Previous.Empty(),
		Sources:        snap.raw.Sources,
	}

	// Attach output payload for Langfuse
	if outputJSON, err := json.Marshal(resp.KPIs); err == nil {
		span.SetAttributes(attribute.String("langfuse.observation.output", string(outputJSON)))
	}

	observability.RecordDashboardBuilt(s.now())
	logger.LogPerformanceEntry(s.log, "dashboard.build", time.Since(start), logger.Fields{
		"patient_id":  req.PatientID,
		"period_days": periodDays,
		"has_data":    resp.HasData,
	})
	return resp, nil
}

func (s *dashboardService) SummaryContext(ctx context.Context, patientID string, summaryType domain.SummaryType, periodDays int, lookup string) (*domain.SummaryContext, error) {
	if periodDays == 0 {
		periodDays = kpi.DefaultLookbackDays
	}

	var current, previous domain.Period
	if summaryType == domain.SummaryGeneral {
		current, previous = kpi.HistoryRange(s.now())
	} else {
		var err error
		current, previous, err = kpi.CurrentAndPreviousRange(s.now(), periodDays)
		if err != nil {
			return nil, err
		}
	}

	tracer := otel.Tracer("health-trends-api/dashboard")
	ctx, span := tracer.Start(ctx, "DashboardService.SummaryContext",
		trace.WithAttributes(
			attribute.String("patient.id", patientID),
			attribute.String("summary.type", string(summaryType)),
		),
	)
	defer span.End()

	snap, err := s.compute(ctx, patientID, lookup, current, previous)
	if err != nil {
		return nil, err
	}

	sleep := kpi.SortedByDate(snap.set.Sleep)
	weight := kpi.SortedByDate(snap.set.Weight)

	out := &domain.SummaryContext{
		Type:           summaryType,
		PeriodDays:     current.Days(),
		CurrentPeriod:  current.View(),
		PreviousPeriod: previous.View(),
		KPIs:           snap.kpis,
		Weight:         kpi.Stats(weight, domain.MetricWeight),
		Muscle:         kpi.Stats(weight, domain.MetricMuscle),
		Fat:            kpi.Stats(weight, domain.MetricFat),
		Steps:          kpi.Stats(kpi.SortedByDate(snap.set.Steps), domain.MetricSteps),
		Waist:          kpi.Stats(kpi.SortedByDate(snap.set.Waist), domain.MetricWaist),
		Analytics:      AnalyticsSummary(snap.raw.Current.Analytics),
		ChartCounts:    chart.Counts(snap.charts),
	}
	if len(sleep) > 0 {
		out.Sleep = &domain.SleepContext{
			Duration:            kpi.Stats(sleep, domain.MetricDuration),
			DeepSleep:           kpi.Stats(sleep, domain.MetricDeepSleep),
			Records:             len(sleep),
			QualityDistribution: kpi.QualityDistribution(sleep),
		}
	}

	if outputJSON, err := json.Marshal(out); err == nil {
		span.SetAttributes(attribute.String("langfuse.observation.output", string(outputJSON)))
	}
	return out, nil
}

func (s *dashboardService) compute(ctx context.Context, patientID, lookup string, current, previous domain.Period) (*snapshot, error) {
	raw, err := s.fetcher.FetchPeriods(ctx, patientID, lookup == provider.LookupHC, current, previous)
	if err != nil {
		return nil, err
	}

	set := s.normalizer.NormalizeAll(raw.Current)
	prev := s.normalizer.NormalizeAll(raw.Previous)

	return &snapshot{
		raw:    raw,
		set:    set,
		kpis:   s.engine.BuildCanonical(set, prev),
		charts: chart.Format(set),
	}, nil
}
