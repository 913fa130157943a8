package service

import (
	"context"
	"encoding/json"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/blaisecz/health-trends/internal/domain"
	"github.com/blaisecz/health-trends/internal/llm"
)

// ChatService answers questions about a patient's health data.
type ChatService interface {
	Reply(ctx context.Context, patientID string, req *domain.ChatRequest) (*domain.ChatResponse, error)
}

type chatService struct {
	dashboard DashboardService
	llmClient llm.SummaryLLM
	now       func() time.Time
}

// NewChatService creates a new ChatService.
func NewChatService(dashboard DashboardService, llmClient llm.SummaryLLM) ChatService {
	return &chatService{dashboard: dashboard, llmClient: llmClient, now: time.Now}
}

func (s *chatService) Reply(ctx context.Context, patientID string, req *domain.ChatRequest) (*domain.ChatResponse, error) {
	tracer := otel.Tracer("health-trends-api/chat")
	ctx, span := tracer.Start(ctx, "ChatService.Reply",
		trace.WithAttributes(
			attribute.String("patient.id", patientID),
			attribute.Int("chat.history_length", len(req.History)),
		),
	)
	defer span.End()

	// Attach input payload for Langfuse
	if inputJSON, err := json.Marshal(map[string]any{"message": req.Message, "period_days": req.PeriodDays}); err == nil {
		span.SetAttributes(attribute.String("langfuse.observation.input", string(inputJSON)))
	}

	summaryCtx, err := s.dashboard.SummaryContext(ctx, patientID, domain.SummaryCurrent, req.PeriodDays, req.Lookup)
	if err != nil {
		return nil, err
	}

	history := req.History
	if len(history) > domain.MaxChatHistory {
		history = history[len(history)-domain.MaxChatHistory:]
	}

	reply, err := s.llmClient.Chat(ctx, summaryCtx, history, req.Message)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("langfuse.observation.output", reply))

	resp := &domain.ChatResponse{Reply: reply, Timestamp: s.now().UTC()}
	if span.SpanContext().IsValid() {
		resp.TraceID = span.SpanContext().TraceID().String()
	}
	return resp, nil
}
