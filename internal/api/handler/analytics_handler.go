package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/blaisecz/health-trends/internal/api/validation"
	"github.com/blaisecz/health-trends/internal/domain"
	"github.com/blaisecz/health-trends/internal/service"
	"github.com/blaisecz/health-trends/pkg/problem"
)

type AnalyticsHandler struct {
	service service.AnalyticsService
}

func NewAnalyticsHandler(service service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// List handles GET /v1/patients/{patientId}/analytics
// @Summary List lab analytics
// @Description Lab documents between from and to (default: the last year), newest first. Every marker carries an out-of-range flag.
// @Tags analytics
// @Produce json
// @Param patientId path string true "Patient email or clinical history number" example(patient@example.com)
// @Param from query string false "First day (YYYY-MM-DD)" format(date) example(2024-01-01)
// @Param to query string false "Last day (YYYY-MM-DD)" format(date) example(2024-12-31)
// @Param lookup query string false "Identifier lookup mode" Enums(email, hc) default(email)
// @Success 200 {object} domain.AnalyticsListResponse "Lab documents"
// @Failure 400 {object} problem.Problem "Invalid date range"
// @Failure 422 {object} problem.Problem "Invalid query parameters"
// @Failure 502 {object} problem.Problem "Provider error"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /patients/{patientId}/analytics [get]
func (h *AnalyticsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := domain.AnalyticsRequest{
		PatientID: patientIDParam(r),
		From:      q.Get("from"),
		To:        q.Get("to"),
		Lookup:    q.Get("lookup"),
	}
	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Invalid query parameters", fieldErrors).Write(w)
		return
	}

	response, err := h.service.List(r.Context(), &req)
	if err != nil {
		writeError(w, r, err, "Failed to list analytics")
		return
	}

	writeJSON(w, http.StatusOK, response)
}

// Get handles GET /v1/patients/{patientId}/analytics/{documentId}
// @Summary Get lab analytics document
// @Description One lab document with markers grouped by category in first-seen order.
// @Tags analytics
// @Produce json
// @Param patientId path string true "Patient email or clinical history number" example(patient@example.com)
// @Param documentId path string true "Document ID" example(1)
// @Param lookup query string false "Identifier lookup mode" Enums(email, hc) default(email)
// @Success 200 {object} domain.AnalyticsDocument "Lab document"
// @Failure 400 {object} problem.Problem "Invalid parameters"
// @Failure 404 {object} problem.Problem "Document not found"
// @Failure 502 {object} problem.Problem "Provider error"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /patients/{patientId}/analytics/{documentId} [get]
func (h *AnalyticsHandler) Get(w http.ResponseWriter, r *http.Request) {
	patientID := patientIDParam(r)
	documentID := strings.TrimSpace(chi.URLParam(r, "documentId"))
	if patientID == "" || documentID == "" {
		problem.BadRequest("Patient and document IDs are required").Write(w)
		return
	}
	lookup := r.URL.Query().Get("lookup")
	if lookup != "" && lookup != "email" && lookup != "hc" {
		problem.BadRequest("lookup must be one of: email hc").Write(w)
		return
	}

	doc, err := h.service.Get(r.Context(), patientID, documentID, lookup)
	if err != nil {
		writeError(w, r, err, "Failed to load analytics document")
		return
	}

	writeJSON(w, http.StatusOK, doc)
}
