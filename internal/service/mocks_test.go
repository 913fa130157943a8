package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/blaisecz/health-trends/internal/domain"
	"github.com/blaisecz/health-trends/internal/langfuse"
	"github.com/blaisecz/health-trends/internal/provider"
	"github.com/blaisecz/health-trends/pkg/pagination"
)

// MockSummaryJobRepository is an in-memory SummaryJobRepository. It is safe
// for use by background jobs.
type MockSummaryJobRepository struct {
	mu   sync.Mutex
	jobs map[uuid.UUID]*domain.SummaryJob
	err  error
}

func NewMockSummaryJobRepository() *MockSummaryJobRepository {
	return &MockSummaryJobRepository{jobs: make(map[uuid.UUID]*domain.SummaryJob)}
}

func (m *MockSummaryJobRepository) Create(ctx context.Context, job *domain.SummaryJob) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	job.CreatedAt = time.Now()
	job.UpdatedAt = job.CreatedAt
	stored := *job
	m.jobs[job.ID] = &stored
	return nil
}

func (m *MockSummaryJobRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.SummaryJob, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	job, ok := m.jobs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := *job
	return &out, nil
}

func (m *MockSummaryJobRepository) ListByPatient(ctx context.Context, patientID string, filter domain.SummaryJobFilter) ([]domain.SummaryJob, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}

	var result []domain.SummaryJob
	for _, job := range m.jobs {
		if job.PatientID == patientID {
			result = append(result, *job)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID.String() > result[j].ID.String()
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	if cursor, err := pagination.DecodeCursor(filter.Cursor, patientID); err == nil && cursor != nil {
		for i, job := range result {
			if job.ID == cursor.ID {
				result = result[i+1:]
				break
			}
		}
	}

	limit := pagination.NormalizeLimit(filter.Limit)
	if len(result) > limit+1 {
		result = result[:limit+1]
	}
	return result, nil
}

func (m *MockSummaryJobRepository) Finish(ctx context.Context, job *domain.SummaryJob) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	stored, ok := m.jobs[job.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if stored.Status != domain.JobPending {
		return domain.ErrJobFinished
	}
	now := time.Now()
	job.CompletedAt = &now
	stored.Status = job.Status
	stored.Summary = job.Summary
	stored.Error = job.Error
	stored.TraceID = job.TraceID
	stored.CompletedAt = job.CompletedAt
	stored.UpdatedAt = now
	return nil
}

func (m *MockSummaryJobRepository) FailPending(ctx context.Context, reason string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, job := range m.jobs {
		if job.Status == domain.JobPending {
			job.Status = domain.JobFailed
			job.Error = reason
			n++
		}
	}
	return n, nil
}

func (m *MockSummaryJobRepository) status(id uuid.UUID) domain.JobStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	if job, ok := m.jobs[id]; ok {
		return job.Status
	}
	return ""
}

// mockDashboardService returns a fixed summary context.
type mockDashboardService struct {
	summaryCtx *domain.SummaryContext
	err        error

	mu        sync.Mutex
	lastType  domain.SummaryType
	lastDays  int
	callCount int
}

func (m *mockDashboardService) Build(ctx context.Context, req *domain.DashboardRequest) (*domain.DashboardResponse, error) {
	return nil, m.err
}

func (m *mockDashboardService) SummaryContext(ctx context.Context, patientID string, summaryType domain.SummaryType, periodDays int, lookup string) (*domain.SummaryContext, error) {
	m.mu.Lock()
	m.lastType = summaryType
	m.lastDays = periodDays
	m.callCount++
	m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	if m.summaryCtx != nil {
		return m.summaryCtx, nil
	}
	return &domain.SummaryContext{Type: summaryType, PeriodDays: periodDays}, nil
}

// mockLLM answers immediately, or blocks until released or cancelled when
// block is set.
type mockLLM struct {
	summary string
	reply   string
	err     error
	block   chan struct{}
	started chan struct{}

	mu          sync.Mutex
	lastHistory []domain.ChatMessage
}

func (m *mockLLM) GenerateSummary(ctx context.Context, summaryCtx *domain.SummaryContext) (string, error) {
	if m.started != nil {
		close(m.started)
	}
	if m.block != nil {
		select {
		case <-m.block:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if m.err != nil {
		return "", m.err
	}
	return m.summary, nil
}

func (m *mockLLM) Chat(ctx context.Context, summaryCtx *domain.SummaryContext, history []domain.ChatMessage, message string) (string, error) {
	m.mu.Lock()
	m.lastHistory = history
	m.mu.Unlock()
	if m.err != nil {
		return "", m.err
	}
	return m.reply, nil
}

// mockLangfuseClient records scores and traces.
type mockLangfuseClient struct {
	mu     sync.Mutex
	traces []langfuse.TraceInput
	scores []langfuse.ScoreInput
}

func (m *mockLangfuseClient) IsEnabled() bool { return true }

func (m *mockLangfuseClient) CreateTrace(ctx context.Context, in langfuse.TraceInput) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.traces = append(m.traces, in)
	return in.ID, nil
}

func (m *mockLangfuseClient) Close(ctx context.Context) error { return nil }

func (m *mockLangfuseClient) CreateScore(ctx context.Context, in langfuse.ScoreInput) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scores = append(m.scores, in)
	return nil
}

// stubProvider serves canned collections per source. Queries starting
// before currentFrom are answered from previous.
type stubProvider struct {
	currentFrom string
	collections map[domain.SourceType][]domain.RawRecord
	previous    map[domain.SourceType][]domain.RawRecord
	documents   map[string]domain.RawRecord
	failing     map[domain.SourceType]error

	mu      sync.Mutex
	queries []provider.Query
}

func (p *stubProvider) FetchCollection(ctx context.Context, source domain.SourceType, q provider.Query) ([]domain.RawRecord, error) {
	p.mu.Lock()
	p.queries = append(p.queries, q)
	p.mu.Unlock()
	if err := p.failing[source]; err != nil {
		return nil, err
	}
	if p.currentFrom != "" && q.From < p.currentFrom {
		return p.previous[source], nil
	}
	return p.collections[source], nil
}

func (p *stubProvider) FetchAnalyticsDocument(ctx context.Context, userID, documentID string, findByHC bool) (domain.RawRecord, error) {
	doc, ok := p.documents[documentID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return doc, nil
}
