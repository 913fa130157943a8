package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/blaisecz/health-trends/internal/api/validation"
	"github.com/blaisecz/health-trends/internal/domain"
	"github.com/blaisecz/health-trends/internal/service"
	"github.com/blaisecz/health-trends/pkg/problem"
)

// SummaryHandler handles AI summary job endpoints.
type SummaryHandler struct {
	service service.SummaryService
}

// NewSummaryHandler creates a new SummaryHandler.
func NewSummaryHandler(service service.SummaryService) *SummaryHandler {
	return &SummaryHandler{service: service}
}

// Create handles POST /v1/patients/{patientId}/summaries
// @Summary Start an AI summary
// @Description Start generating a summary in the background. Poll GET /summaries/{jobId} until the status is no longer pending.
// @Tags summaries
// @Accept json
// @Produce json
// @Param patientId path string true "Patient email or clinical history number" example(patient@example.com)
// @Param request body domain.CreateSummaryRequest true "Summary options"
// @Success 202 {object} domain.SummaryJobResponse "Job accepted"
// @Failure 400 {object} problem.Problem "Invalid request body"
// @Failure 422 {object} problem.Problem "Validation error"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /patients/{patientId}/summaries [post]
func (h *SummaryHandler) Create(w http.ResponseWriter, r *http.Request) {
	patientID := patientIDParam(r)
	if patientID == "" {
		problem.BadRequest("Patient ID is required").Write(w)
		return
	}

	var req domain.CreateSummaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	job, err := h.service.Create(r.Context(), patientID, &req)
	if err != nil {
		writeError(w, r, err, "Failed to start summary")
		return
	}

	w.Header().Set("Location", "/v1/summaries/"+job.ID.String())
	writeJSON(w, http.StatusAccepted, job.ToResponse())
}

// List handles GET /v1/patients/{patientId}/summaries
// @Summary List AI summaries
// @Description Paginated summary jobs for a patient, newest first.
// @Tags summaries
// @Produce json
// @Param patientId path string true "Patient email or clinical history number" example(patient@example.com)
// @Param limit query integer false "Results per page (1-100)" default(20) minimum(1) maximum(100)
// @Param cursor query string false "Cursor from previous response's next_cursor"
// @Success 200 {object} domain.SummaryJobListResponse "Summary jobs with pagination"
// @Failure 400 {object} problem.Problem "Invalid cursor"
// @Failure 422 {object} problem.Problem "Invalid query parameters"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /patients/{patientId}/summaries [get]
func (h *SummaryHandler) List(w http.ResponseWriter, r *http.Request) {
	patientID := patientIDParam(r)
	if patientID == "" {
		problem.BadRequest("Patient ID is required").Write(w)
		return
	}

	limit, ok := parseIntParam(r, "limit", 0)
	if !ok || limit < 0 {
		problem.ValidationError("Invalid query parameters", []problem.FieldError{{
			Field:   "limit",
			Message: "must be a positive integer",
		}}).Write(w)
		return
	}

	response, err := h.service.List(r.Context(), patientID, domain.SummaryJobFilter{
		Limit:  limit,
		Cursor: r.URL.Query().Get("cursor"),
	})
	if err != nil {
		writeError(w, r, err, "Failed to list summaries")
		return
	}

	writeJSON(w, http.StatusOK, response)
}

// Get handles GET /v1/summaries/{jobId}
// @Summary Get an AI summary
// @Tags summaries
// @Produce json
// @Param jobId path string true "Job UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Success 200 {object} domain.SummaryJobResponse "Summary job"
// @Failure 400 {object} problem.Problem "Invalid job ID"
// @Failure 404 {object} problem.Problem "Job not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /summaries/{jobId} [get]
func (h *SummaryHandler) Get(w http.ResponseWriter, r *http.Request) {
	jobID, err := uuid.Parse(chi.URLParam(r, "jobId"))
	if err != nil {
		problem.BadRequest("Invalid job ID format").Write(w)
		return
	}

	job, err := h.service.Get(r.Context(), jobID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("Summary job not found").Write(w)
			return
		}
		writeError(w, r, err, "Failed to get summary")
		return
	}

	writeJSON(w, http.StatusOK, job.ToResponse())
}

// Cancel handles DELETE /v1/summaries/{jobId}
// @Summary Cancel an AI summary
// @Description Cancel a pending job. Jobs that already finished are left untouched.
// @Tags summaries
// @Produce json
// @Param jobId path string true "Job UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Success 200 {object} domain.SummaryJobResponse "Cancelled job"
// @Failure 400 {object} problem.Problem "Invalid job ID"
// @Failure 404 {object} problem.Problem "Job not found"
// @Failure 409 {object} problem.Problem "Job already finished"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /summaries/{jobId} [delete]
func (h *SummaryHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	jobID, err := uuid.Parse(chi.URLParam(r, "jobId"))
	if err != nil {
		problem.BadRequest("Invalid job ID format").Write(w)
		return
	}

	job, err := h.service.Cancel(r.Context(), jobID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			problem.NotFound("Summary job not found").Write(w)
		case errors.Is(err, domain.ErrJobFinished) && job != nil:
			problem.Conflict("Summary job already " + string(job.Status)).Write(w)
		default:
			writeError(w, r, err, "Failed to cancel summary")
		}
		return
	}

	writeJSON(w, http.StatusOK, job.ToResponse())
}

// Feedback handles POST /v1/summaries/{jobId}/feedback
// @Summary Rate an AI summary
// @Description Attach a 1-5 rating and optional comment to a completed summary.
// @Tags summaries
// @Accept json
// @Produce json
// @Param jobId path string true "Job UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Param request body domain.FeedbackRequest true "Rating"
// @Success 204 "Feedback submitted"
// @Failure 400 {object} problem.Problem "Invalid request or job not completed"
// @Failure 404 {object} problem.Problem "Job not found"
// @Failure 422 {object} problem.Problem "Validation error"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /summaries/{jobId}/feedback [post]
func (h *SummaryHandler) Feedback(w http.ResponseWriter, r *http.Request) {
	jobID, err := uuid.Parse(chi.URLParam(r, "jobId"))
	if err != nil {
		problem.BadRequest("Invalid job ID format").Write(w)
		return
	}

	var req domain.FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	if err := h.service.Feedback(r.Context(), jobID, &req); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("Summary job not found").Write(w)
			return
		}
		writeError(w, r, err, "Failed to submit feedback")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
