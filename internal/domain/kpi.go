package domain

import "time"

// Period is a closed date window. Start is midnight UTC of the first day and
// End is midnight UTC of the last day; query bounds expand End to 23:59:59.
// @Description Date window used for KPI comparison.
type Period struct {
	Start time.Time `json:"-"`
	End   time.Time `json:"-"`
	Label string    `json:"label" example:"Last 30 days"`
}

const dayLayout = "2006-01-02"

// StartDay renders the first calendar day.
func (p Period) StartDay() string {
	return p.Start.UTC().Format(dayLayout)
}

// EndDay renders the last calendar day.
func (p Period) EndDay() string {
	return p.End.UTC().Format(dayLayout)
}

// QueryFrom is the inclusive lower bound sent to the provider.
func (p Period) QueryFrom() string {
	return p.StartDay() + "T00:00:00.000Z"
}

// QueryTo is the inclusive upper bound sent to the provider.
func (p Period) QueryTo() string {
	return p.EndDay() + "T23:59:59.000Z"
}

// Days returns the window length in days.
func (p Period) Days() int {
	return int(p.End.Sub(p.Start).Hours() / 24)
}

// PeriodView is the JSON rendering of a Period.
type PeriodView struct {
	Start string `json:"start" example:"2024-01-01"`
	End   string `json:"end" example:"2024-01-31"`
	Label string `json:"label" example:"Last 30 days"`
}

// View renders the period for API responses.
func (p Period) View() PeriodView {
	return PeriodView{Start: p.StartDay(), End: p.EndDay(), Label: p.Label}
}

// KPI compares a metric average between two periods.
// @Description Current vs previous period average with percent change.
type KPI struct {
	Current  *float64 `json:"current" example:"74.8"`
	Previous *float64 `json:"previous" example:"76.2"`
	// Change is a signed percentage, null when either side is missing or zero.
	Change *float64 `json:"change" example:"-1.84"`
	// Estimated is set when a configured placeholder replaced a missing average.
	Estimated bool `json:"estimated,omitempty"`
}

// KPISet holds the seven tracked KPIs.
// @Description Period-over-period KPIs.
type KPISet struct {
	Weight     KPI `json:"weight"`
	Muscle     KPI `json:"muscle"`
	Fat        KPI `json:"fat"`
	TotalSleep KPI `json:"totalSleep"`
	DeepSleep  KPI `json:"deepSleep"`
	Steps      KPI `json:"steps"`
	Waist      KPI `json:"waist"`
}

// WeightPoint is one point of the weight trend.
type WeightPoint struct {
	Date   ChartTime `json:"date" swaggertype:"string" example:"2024-01-01T00:00:00.000Z"`
	Weight *float64  `json:"weight" example:"70.5"`
}

// Composition breakdown discriminators and labels.
const (
	BreakdownMuscle = "muscle_mass"
	BreakdownFat    = "fat_mass_weight"

	LabelMuscle = "Masa Muscular"
	LabelFat    = "Masa Grasa"
)

// CompositionPoint is one label-tagged point of the muscle/fat dual series.
type CompositionPoint struct {
	Date      ChartTime `json:"date" swaggertype:"string" example:"2024-01-01T00:00:00.000Z"`
	Value     *float64  `json:"value" example:"35.2"`
	Type      string    `json:"type" example:"Masa Muscular"`
	Breakdown string    `json:"breakdown" example:"muscle_mass"`
}

// SleepPoint is one night of the total vs deep sleep dual series.
type SleepPoint struct {
	Date               ChartTime `json:"date" swaggertype:"string" example:"2024-01-01T00:00:00.000Z"`
	Duration           *float64  `json:"duration" example:"7.5"`
	DeepSleep          *float64  `json:"deepSleep" example:"1.65"`
	DeepSleepEstimated bool      `json:"deepSleepEstimated"`
	Quality            string    `json:"quality,omitempty" example:"good"`
}

// StepsPoint is one day of the steps trend.
type StepsPoint struct {
	Date  ChartTime `json:"date" swaggertype:"string" example:"2024-01-01T00:00:00.000Z"`
	Steps *float64  `json:"steps" example:"8500"`
}

// WaistPoint is one waist measurement. The provider field "waist" is exposed
// as "measurement" for existing chart consumers.
type WaistPoint struct {
	Date        ChartTime `json:"date" swaggertype:"string" example:"2024-01-01T00:00:00.000Z"`
	Measurement *float64  `json:"measurement" example:"85.2"`
}

// ChartData holds every chart-ready series for the current period.
// @Description Chart-ready series sorted ascending by date.
type ChartData struct {
	WeightData      []WeightPoint      `json:"weightData"`
	CompositionData []CompositionPoint `json:"compositionData"`
	SleepData       []SleepPoint       `json:"sleepData"`
	StepsData       []StepsPoint       `json:"stepsData"`
	WaistData       []WaistPoint       `json:"waistData"`
}

// SourceStatus reports the fetch outcome of one collection.
type SourceStatus struct {
	Source  SourceType `json:"source" example:"weight"`
	Period  string     `json:"period" example:"current"`
	OK      bool       `json:"ok"`
	Records int        `json:"records" example:"12"`
	Error   string     `json:"error,omitempty"`
}

// DashboardRequest contains query parameters for the dashboard endpoint.
type DashboardRequest struct {
	PatientID  string `json:"patient_id" validate:"required,max=254,patientid"`
	PeriodDays int    `json:"period_days" validate:"min=1,max=365"`
	Lookup     string `json:"lookup" validate:"omitempty,oneof=email hc"`
}

// DashboardResponse is the response for the dashboard endpoint.
// @Description KPIs and chart data for a patient.
type DashboardResponse struct {
	KPIs           KPISet         `json:"kpis"`
	ChartData      ChartData      `json:"chartData"`
	PeriodDays     int            `json:"period" example:"30"`
	CurrentPeriod  PeriodView     `json:"currentPeriod"`
	PreviousPeriod PeriodView     `json:"previousPeriod"`
	HasData        bool           `json:"hasData"`
	Sources        []SourceStatus `json:"sources"`
}
