package handler

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/blaisecz/health-trends/internal/domain"
)

// MockDashboardService is a mock implementation of DashboardService
type MockDashboardService struct {
	buildFunc func(ctx context.Context, req *domain.DashboardRequest) (*domain.DashboardResponse, error)
}

func (m *MockDashboardService) Build(ctx context.Context, req *domain.DashboardRequest) (*domain.DashboardResponse, error) {
	if m.buildFunc != nil {
		return m.buildFunc(ctx, req)
	}
	return &domain.DashboardResponse{
		PeriodDays: req.PeriodDays,
		ChartData: domain.ChartData{
			WeightData:      []domain.WeightPoint{},
			CompositionData: []domain.CompositionPoint{},
			SleepData:       []domain.SleepPoint{},
			StepsData:       []domain.StepsPoint{},
			WaistData:       []domain.WaistPoint{},
		},
		Sources: []domain.SourceStatus{},
	}, nil
}

func (m *MockDashboardService) SummaryContext(ctx context.Context, patientID string, summaryType domain.SummaryType, periodDays int, lookup string) (*domain.SummaryContext, error) {
	return &domain.SummaryContext{Type: summaryType, PeriodDays: periodDays}, nil
}

// MockAnalyticsService is a mock implementation of AnalyticsService
type MockAnalyticsService struct {
	listFunc func(ctx context.Context, req *domain.AnalyticsRequest) (*domain.AnalyticsListResponse, error)
	getFunc  func(ctx context.Context, patientID, documentID, lookup string) (*domain.AnalyticsDocument, error)
}

func (m *MockAnalyticsService) List(ctx context.Context, req *domain.AnalyticsRequest) (*domain.AnalyticsListResponse, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, req)
	}
	return &domain.AnalyticsListResponse{Data: []domain.AnalyticsDocument{}}, nil
}

func (m *MockAnalyticsService) Get(ctx context.Context, patientID, documentID, lookup string) (*domain.AnalyticsDocument, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, patientID, documentID, lookup)
	}
	return &domain.AnalyticsDocument{ID: documentID, Markers: []domain.Marker{}}, nil
}

// MockSummaryService is a mock implementation of SummaryService
type MockSummaryService struct {
	createFunc   func(ctx context.Context, patientID string, req *domain.CreateSummaryRequest) (*domain.SummaryJob, error)
	getFunc      func(ctx context.Context, id uuid.UUID) (*domain.SummaryJob, error)
	listFunc     func(ctx context.Context, patientID string, filter domain.SummaryJobFilter) (*domain.SummaryJobListResponse, error)
	cancelFunc   func(ctx context.Context, id uuid.UUID) (*domain.SummaryJob, error)
	feedbackFunc func(ctx context.Context, id uuid.UUID, req *domain.FeedbackRequest) error
}

func (m *MockSummaryService) Create(ctx context.Context, patientID string, req *domain.CreateSummaryRequest) (*domain.SummaryJob, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, patientID, req)
	}
	return &domain.SummaryJob{
		ID:         uuid.New(),
		PatientID:  patientID,
		Type:       req.Type,
		PeriodDays: 30,
		Status:     domain.JobPending,
		CreatedAt:  time.Now(),
	}, nil
}

func (m *MockSummaryService) Get(ctx context.Context, id uuid.UUID) (*domain.SummaryJob, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *MockSummaryService) List(ctx context.Context, patientID string, filter domain.SummaryJobFilter) (*domain.SummaryJobListResponse, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, patientID, filter)
	}
	return &domain.SummaryJobListResponse{
		Data:       []domain.SummaryJobResponse{},
		Pagination: domain.PaginationResponse{HasMore: false},
	}, nil
}

func (m *MockSummaryService) Cancel(ctx context.Context, id uuid.UUID) (*domain.SummaryJob, error) {
	if m.cancelFunc != nil {
		return m.cancelFunc(ctx, id)
	}
	return &domain.SummaryJob{ID: id, Status: domain.JobCancelled}, nil
}

func (m *MockSummaryService) Feedback(ctx context.Context, id uuid.UUID, req *domain.FeedbackRequest) error {
	if m.feedbackFunc != nil {
		return m.feedbackFunc(ctx, id, req)
	}
	return nil
}

func (m *MockSummaryService) Shutdown(ctx context.Context) error {
	return nil
}

// MockChatService is a mock implementation of ChatService
type MockChatService struct {
	replyFunc func(ctx context.Context, patientID string, req *domain.ChatRequest) (*domain.ChatResponse, error)
}

func (m *MockChatService) Reply(ctx context.Context, patientID string, req *domain.ChatRequest) (*domain.ChatResponse, error) {
	if m.replyFunc != nil {
		return m.replyFunc(ctx, patientID, req)
	}
	return &domain.ChatResponse{Reply: "ok", Timestamp: time.Now().UTC()}, nil
}
