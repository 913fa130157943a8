package handler

import (
	"net/http"

	"github.com/blaisecz/health-trends/internal/api/validation"
	"github.com/blaisecz/health-trends/internal/domain"
	"github.com/blaisecz/health-trends/internal/kpi"
	"github.com/blaisecz/health-trends/internal/service"
	"github.com/blaisecz/health-trends/pkg/problem"
)

// DashboardHandler serves KPIs and chart data.
type DashboardHandler struct {
	service service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(service service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Get handles GET /v1/patients/{patientId}/dashboard
// @Summary Get patient dashboard
// @Description Compare the current period against the previous one of equal length. Sources that fail to load degrade to empty collections and are reported in sources; the response is still 200.
// @Tags dashboard
// @Produce json
// @Param patientId path string true "Patient email or clinical history number" example(patient@example.com)
// @Param period_days query integer false "Lookback in days" default(30) minimum(1) maximum(365)
// @Param lookup query string false "Identifier lookup mode" Enums(email, hc) default(email)
// @Success 200 {object} domain.DashboardResponse "KPIs and chart data"
// @Failure 400 {object} problem.Problem "Invalid query parameters"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /patients/{patientId}/dashboard [get]
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	periodDays, ok := parseIntParam(r, "period_days", kpi.DefaultLookbackDays)
	if !ok {
		problem.BadRequest("period_days must be an integer").Write(w)
		return
	}

	req := domain.DashboardRequest{
		PatientID:  patientIDParam(r),
		PeriodDays: periodDays,
		Lookup:     r.URL.Query().Get("lookup"),
	}
	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.New(http.StatusBadRequest, "bad-request", "Bad Request", "Invalid query parameters").
			WithErrors(fieldErrors).Write(w)
		return
	}

	response, err := h.service.Build(r.Context(), &req)
	if err != nil {
		writeError(w, r, err, "Failed to build dashboard")
		return
	}

	writeJSON(w, http.StatusOK, response)
}
