package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/blaisecz/health-trends/internal/domain"
	"github.com/blaisecz/health-trends/internal/llm"
	"github.com/blaisecz/health-trends/internal/logger"
	"github.com/blaisecz/health-trends/internal/provider"
	"github.com/blaisecz/health-trends/pkg/problem"
)

// writeError maps service errors to problem+json. fallback is the detail
// used for unexpected errors, which are logged but never echoed.
func writeError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var p *problem.Problem
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		p = problem.BadRequest(strings.TrimPrefix(err.Error(), domain.ErrInvalidInput.Error()+": "))
	case errors.Is(err, domain.ErrNotFound):
		p = problem.NotFound("Resource not found")
	case errors.Is(err, domain.ErrJobFinished):
		p = problem.Conflict("Summary job already finished")
	case errors.Is(err, llm.ErrOpenAIUnavailable):
		p = problem.ServiceUnavailable("OpenAI service is not configured")
	case errors.Is(err, llm.ErrOpenAIRequest), errors.Is(err, llm.ErrOpenAIResponse):
		p = problem.BadGateway("llm-error", "Failed to generate a response from the LLM")
	case errors.Is(err, provider.ErrProviderStatus), errors.Is(err, provider.ErrProviderDecode):
		p = problem.BadGateway("provider-error", "Health data provider request failed")
	case errors.Is(err, context.DeadlineExceeded):
		p = problem.GatewayTimeout("Upstream request timed out")
	default:
		logger.GetLogger().WithComponent("http").WithError(err).WithFields(logger.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		}).Error(fallback)
		p = problem.InternalError(fallback)
	}
	p.WithInstance(r.URL.Path).Write(w)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// patientIDParam returns the unescaped patient identifier from the path.
func patientIDParam(r *http.Request) string {
	return strings.TrimSpace(chi.URLParam(r, "patientId"))
}

// parseIntParam parses an integer query parameter with a default value.
// ok is false when the parameter is present but not an integer.
func parseIntParam(r *http.Request, name string, defaultValue int) (value int, ok bool) {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultValue, true
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue, false
	}
	return parsed, true
}
