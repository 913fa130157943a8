package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/blaisecz/health-trends/internal/domain"
	"github.com/blaisecz/health-trends/internal/llm"
)

func setupChatRouter(svc *MockChatService) *chi.Mux {
	h := NewChatHandler(svc)
	r := chi.NewRouter()
	r.Post("/patients/{patientId}/chat", h.Post)
	return r
}

func TestChat_Post(t *testing.T) {
	ts := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	var gotPatient string
	var gotHistory int
	svc := &MockChatService{
		replyFunc: func(ctx context.Context, patientID string, req *domain.ChatRequest) (*domain.ChatResponse, error) {
			gotPatient = patientID
			gotHistory = len(req.History)
			return &domain.ChatResponse{Reply: "El sueño profundo ha mejorado.", Timestamp: ts}, nil
		},
	}

	body := `{"message": "¿Cómo duermo?", "history": [{"role": "user", "content": "hola"}, {"role": "assistant", "content": "¡Hola!"}]}`
	req := httptest.NewRequest(http.MethodPost, "/patients/12345/chat", bytes.NewBufferString(body))
	w := httptest.NewRecorder()
	setupChatRouter(svc).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if gotPatient != "12345" || gotHistory != 2 {
		t.Errorf("unexpected call: patient %q history %d", gotPatient, gotHistory)
	}

	var resp domain.ChatResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Timestamp.Equal(ts) || resp.Reply == "" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestChat_Post_Validation(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"missing message", `{"history": []}`, http.StatusUnprocessableEntity},
		{"bad history role", `{"message": "hi", "history": [{"role": "system", "content": "x"}]}`, http.StatusUnprocessableEntity},
		{"invalid json", `{`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/patients/p/chat", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()
			setupChatRouter(&MockChatService{}).ServeHTTP(w, req)
			if w.Code != tt.status {
				t.Fatalf("expected status %d, got %d: %s", tt.status, w.Code, w.Body.String())
			}
		})
	}
}

func TestChat_Post_LLMErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not configured", llm.ErrOpenAIUnavailable, http.StatusServiceUnavailable},
		{"request failed", fmt.Errorf("%w: 429", llm.ErrOpenAIRequest), http.StatusBadGateway},
		{"empty response", llm.ErrOpenAIResponse, http.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockChatService{
				replyFunc: func(ctx context.Context, patientID string, req *domain.ChatRequest) (*domain.ChatResponse, error) {
					return nil, tt.err
				},
			}
			req := httptest.NewRequest(http.MethodPost, "/patients/p/chat", bytes.NewBufferString(`{"message": "hi"}`))
			w := httptest.NewRecorder()
			setupChatRouter(svc).ServeHTTP(w, req)
			if w.Code != tt.status {
				t.Fatalf("expected status %d, got %d: %s", tt.status, w.Code, w.Body.String())
			}
		})
	}
}
