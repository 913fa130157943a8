package handler

import (
	"encoding/json"
	"net/http"

	"github.com/blaisecz/health-trends/internal/api/validation"
	"github.com/blaisecz/health-trends/internal/domain"
	"github.com/blaisecz/health-trends/internal/service"
	"github.com/blaisecz/health-trends/pkg/problem"
)

type ChatHandler struct {
	service service.ChatService
}

func NewChatHandler(service service.ChatService) *ChatHandler {
	return &ChatHandler{service: service}
}

// Post handles POST /v1/patients/{patientId}/chat
// @Summary Chat about patient data
// @Description Ask a question about the patient's current period. Only the last 10 history messages are forwarded to the LLM.
// @Tags chat
// @Accept json
// @Produce json
// @Param patientId path string true "Patient email or clinical history number" example(patient@example.com)
// @Param request body domain.ChatRequest true "Message and history"
// @Success 200 {object} domain.ChatResponse "Assistant reply"
// @Failure 400 {object} problem.Problem "Invalid request body"
// @Failure 422 {object} problem.Problem "Validation error"
// @Failure 502 {object} problem.Problem "LLM error"
// @Failure 503 {object} problem.Problem "LLM service unavailable"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /patients/{patientId}/chat [post]
func (h *ChatHandler) Post(w http.ResponseWriter, r *http.Request) {
	patientID := patientIDParam(r)
	if patientID == "" {
		problem.BadRequest("Patient ID is required").Write(w)
		return
	}

	var req domain.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	response, err := h.service.Reply(r.Context(), patientID, &req)
	if err != nil {
		writeError(w, r, err, "Failed to generate chat reply")
		return
	}

	writeJSON(w, http.StatusOK, response)
}
