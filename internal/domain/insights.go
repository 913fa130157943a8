package domain

import "time"

// Trend direction of a series, comparing its second half against its first.
type Trend string

const (
	TrendIncreasing Trend = "increasing"
	TrendDecreasing Trend = "decreasing"
	TrendStable     Trend = "stable"
)

// SeriesStats holds basic statistical measures for one metric.
// @Description Basic statistical measures for a metric.
type SeriesStats struct {
	Average float64 `json:"average" example:"70.12"`
	Min     float64 `json:"min" example:"69.6"`
	Max     float64 `json:"max" example:"70.5"`
	Trend   Trend   `json:"trend" example:"decreasing"`
	Count   int     `json:"count" example:"5"`
}

// SleepContext summarizes the sleep collection for the LLM.
type SleepContext struct {
	Duration            *SeriesStats   `json:"duration"`
	DeepSleep           *SeriesStats   `json:"deepSleep"`
	Records             int            `json:"records"`
	QualityDistribution map[string]int `json:"qualityDistribution"`
}

// RecentAnalytic is a compact view of one lab document.
type RecentAnalytic struct {
	Date         string `json:"date"`
	Type         string `json:"type"`
	MarkersCount int    `json:"markersCount"`
}

// AnalyticsContext summarizes lab analytics for the LLM.
type AnalyticsContext struct {
	TotalTests  int              `json:"totalTests"`
	TestTypes   []string         `json:"testTypes"`
	RecentTests []RecentAnalytic `json:"recentTests"`
}

// SummaryContext is the context object sent to the LLM. Values are numbers
// or null, never preformatted strings.
// @Description Context data for AI summary generation.
type SummaryContext struct {
	Type           SummaryType       `json:"summaryType"`
	PeriodDays     int               `json:"periodDays"`
	CurrentPeriod  PeriodView        `json:"currentPeriod"`
	PreviousPeriod PeriodView        `json:"previousPeriod"`
	KPIs           KPISet            `json:"kpis"`
	Weight         *SeriesStats      `json:"weight,omitempty"`
	Muscle         *SeriesStats      `json:"muscle,omitempty"`
	Fat            *SeriesStats      `json:"fat,omitempty"`
	Sleep          *SleepContext     `json:"sleep,omitempty"`
	Steps          *SeriesStats      `json:"steps,omitempty"`
	Waist          *SeriesStats      `json:"waist,omitempty"`
	Analytics      *AnalyticsContext `json:"analytics,omitempty"`
	ChartCounts    map[string]int    `json:"chartCounts"`
}

// ChatMessage is one turn of a chat conversation.
type ChatMessage struct {
	Role    string `json:"role" validate:"required,oneof=user assistant" example:"user"`
	Content string `json:"content" validate:"required,max=4000" example:"How is the patient's sleep?"`
}

// ChatRequest is the request body for the chat endpoint.
// @Description Chat message with prior history.
type ChatRequest struct {
	Message    string        `json:"message" validate:"required,max=4000" example:"Summarize weight trends"`
	History    []ChatMessage `json:"history,omitempty" validate:"omitempty,dive"`
	PeriodDays int           `json:"period_days,omitempty" validate:"omitempty,min=1,max=365" example:"30"`
	Lookup     string        `json:"lookup,omitempty" validate:"omitempty,oneof=email hc"`
}

// ChatResponse is the response body for the chat endpoint.
// @Description Assistant reply.
type ChatResponse struct {
	Reply     string    `json:"reply"`
	Timestamp time.Time `json:"timestamp" example:"2024-01-16T07:05:00Z"`
	TraceID   string    `json:"trace_id,omitempty"`
}

// MaxChatHistory bounds how many prior messages are forwarded to the LLM.
const MaxChatHistory = 10
