package mcp

import (
	"context"
	"errors"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/blaisecz/health-trends/internal/domain"
	"github.com/blaisecz/health-trends/internal/kpi"
	"github.com/blaisecz/health-trends/internal/logger"
)

// Chart series names accepted by get_chart_data.
const (
	SeriesAll         = "all"
	SeriesWeight      = "weight"
	SeriesComposition = "composition"
	SeriesSleep       = "sleep"
	SeriesSteps       = "steps"
	SeriesWaist       = "waist"
)

var toolGetHealthKPIs = mcp.NewTool("get_health_kpis",
	mcp.WithDescription("Compare a patient's average weight, muscle mass, fat mass, total sleep, deep sleep, steps and waist between the current period and the previous period of equal length. Each KPI has current, previous and change (signed percent); null means no data."),
	mcp.WithString("patient", mcp.Required(), mcp.Description("Patient email or clinical history number")),
	mcp.WithNumber("period_days", mcp.Description("Lookback in days (1-365). Defaults to 30."), mcp.Min(1), mcp.Max(365)),
	mcp.WithString("lookup", mcp.Description("Identifier lookup mode. Defaults to email."), mcp.Enum("email", "hc")),
)

var toolGetChartData = mcp.NewTool("get_chart_data",
	mcp.WithDescription("Chart-ready series for the current period, sorted ascending by date. Missing values are null."),
	mcp.WithString("patient", mcp.Required(), mcp.Description("Patient email or clinical history number")),
	mcp.WithNumber("period_days", mcp.Description("Lookback in days (1-365). Defaults to 30."), mcp.Min(1), mcp.Max(365)),
	mcp.WithString("series", mcp.Description("Series to return. Defaults to all."),
		mcp.Enum(SeriesAll, SeriesWeight, SeriesComposition, SeriesSleep, SeriesSteps, SeriesWaist)),
	mcp.WithString("lookup", mcp.Description("Identifier lookup mode. Defaults to email."), mcp.Enum("email", "hc")),
)

var toolListAnalytics = mcp.NewTool("list_analytics",
	mcp.WithDescription("Lab analytics documents, newest first, with every marker flagged against its reference range."),
	mcp.WithString("patient", mcp.Required(), mcp.Description("Patient email or clinical history number")),
	mcp.WithString("from", mcp.Description("First day (YYYY-MM-DD). Defaults to one year ago.")),
	mcp.WithString("to", mcp.Description("Last day (YYYY-MM-DD). Defaults to today.")),
	mcp.WithString("lookup", mcp.Description("Identifier lookup mode. Defaults to email."), mcp.Enum("email", "hc")),
)

// kpiResult is the get_health_kpis payload.
type kpiResult struct {
	KPIs           domain.KPISet         `json:"kpis"`
	CurrentPeriod  domain.PeriodView     `json:"currentPeriod"`
	PreviousPeriod domain.PeriodView     `json:"previousPeriod"`
	HasData        bool                  `json:"hasData"`
	Sources        []domain.SourceStatus `json:"sources"`
}

func (h *handlers) dashboardFor(ctx context.Context, req mcp.CallToolRequest) (*domain.DashboardResponse, *mcp.CallToolResult) {
	patient, err := req.RequireString("patient")
	if err != nil || strings.TrimSpace(patient) == "" {
		return nil, mcp.NewToolResultError("patient parameter is required")
	}

	resp, err := h.dashboard.Build(ctx, &domain.DashboardRequest{
		PatientID:  strings.TrimSpace(patient),
		PeriodDays: req.GetInt("period_days", kpi.DefaultLookbackDays),
		Lookup:     req.GetString("lookup", ""),
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return nil, mcp.NewToolResultError(err.Error())
		}
		h.log.WithError(err).WithFields(logger.Fields{"tool": req.Params.Name}).Error("dashboard build failed")
		return nil, mcp.NewToolResultError("dashboard failed: " + err.Error())
	}
	return resp, nil
}

func (h *handlers) getHealthKPIs(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	resp, toolErr := h.dashboardFor(ctx, req)
	if toolErr != nil {
		return toolErr, nil
	}

	result, err := mcp.NewToolResultJSON(kpiResult{
		KPIs:           resp.KPIs,
		CurrentPeriod:  resp.CurrentPeriod,
		PreviousPeriod: resp.PreviousPeriod,
		HasData:        resp.HasData,
		Sources:        resp.Sources,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getChartData(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	series := req.GetString("series", SeriesAll)
	payload, ok := selectSeries(domain.ChartData{}, series)
	if !ok {
		return mcp.NewToolResultError("unknown series " + series), nil
	}

	resp, toolErr := h.dashboardFor(ctx, req)
	if toolErr != nil {
		return toolErr, nil
	}
	payload, _ = selectSeries(resp.ChartData, series)

	result, err := mcp.NewToolResultJSON(payload)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

// selectSeries picks one chart series keyed by its chart-data field name.
func selectSeries(data domain.ChartData, series string) (map[string]any, bool) {
	switch series {
	case SeriesAll, "":
		return map[string]any{
			"weightData":      data.WeightData,
			"compositionData": data.CompositionData,
			"sleepData":       data.SleepData,
			"stepsData":       data.StepsData,
			"waistData":       data.WaistData,
		}, true
	case SeriesWeight:
		return map[string]any{"weightData": data.WeightData}, true
	case SeriesComposition:
		return map[string]any{"compositionData": data.CompositionData}, true
	case SeriesSleep:
		return map[string]any{"sleepData": data.SleepData}, true
	case SeriesSteps:
		return map[string]any{"stepsData": data.StepsData}, true
	case SeriesWaist:
		return map[string]any{"waistData": data.WaistData}, true
	}
	return nil, false
}

func (h *handlers) listAnalytics(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	patient, err := req.RequireString("patient")
	if err != nil || strings.TrimSpace(patient) == "" {
		return mcp.NewToolResultError("patient parameter is required"), nil
	}

	resp, err := h.analytics.List(ctx, &domain.AnalyticsRequest{
		PatientID: strings.TrimSpace(patient),
		From:      req.GetString("from", ""),
		To:        req.GetString("to", ""),
		Lookup:    req.GetString("lookup", ""),
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return mcp.NewToolResultError(err.Error()), nil
		}
		h.log.WithError(err).WithFields(logger.Fields{"tool": req.Params.Name}).Error("analytics list failed")
		return mcp.NewToolResultError("analytics failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(resp)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
