package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blaisecz/health-trends/internal/domain"
	"github.com/blaisecz/health-trends/internal/llm"
)

func newTestSummaryService(repo *MockSummaryJobRepository, dash *mockDashboardService, model *mockLLM, lf *mockLangfuseClient) *summaryService {
	return NewSummaryService(repo, dash, model, lf, time.Second).(*summaryService)
}

func waitForStatus(t *testing.T, repo *MockSummaryJobRepository, id uuid.UUID, want domain.JobStatus) {
	t.Helper()
	require.Eventually(t, func() bool { return repo.status(id) == want }, 2*time.Second, 5*time.Millisecond,
		"job never reached %s", want)
}

func TestSummaryService_CreateCompletes(t *testing.T) {
	repo := NewMockSummaryJobRepository()
	dash := &mockDashboardService{}
	lf := &mockLangfuseClient{}
	svc := newTestSummaryService(repo, dash, &mockLLM{summary: "Resumen del período"}, lf)

	job, err := svc.Create(context.Background(), "patient@example.com", &domain.CreateSummaryRequest{Type: domain.SummaryCurrent})
	require.NoError(t, err)
	assert.Equal(t, domain.JobPending, job.Status)
	assert.Equal(t, 30, job.PeriodDays)

	waitForStatus(t, repo, job.ID, domain.JobCompleted)
	require.NoError(t, svc.Shutdown(context.Background()))

	stored, err := svc.Get(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, "Resumen del período", stored.Summary)
	assert.Equal(t, job.ID.String(), stored.TraceID)
	assert.NotNil(t, stored.CompletedAt)

	lf.mu.Lock()
	defer lf.mu.Unlock()
	require.Len(t, lf.traces, 1)
	assert.Equal(t, "health-summary", lf.traces[0].Name)
}

func TestSummaryService_GeneralPassesType(t *testing.T) {
	repo := NewMockSummaryJobRepository()
	dash := &mockDashboardService{}
	svc := newTestSummaryService(repo, dash, &mockLLM{summary: "ok"}, &mockLangfuseClient{})

	job, err := svc.Create(context.Background(), "p", &domain.CreateSummaryRequest{Type: domain.SummaryGeneral, PeriodDays: 60})
	require.NoError(t, err)
	waitForStatus(t, repo, job.ID, domain.JobCompleted)

	dash.mu.Lock()
	defer dash.mu.Unlock()
	assert.Equal(t, domain.SummaryGeneral, dash.lastType)
	assert.Equal(t, 60, dash.lastDays)
}

func TestSummaryService_LLMErrorFails(t *testing.T) {
	repo := NewMockSummaryJobRepository()
	svc := newTestSummaryService(repo, &mockDashboardService{}, &mockLLM{err: llm.ErrOpenAIUnavailable}, &mockLangfuseClient{})

	job, err := svc.Create(context.Background(), "p", &domain.CreateSummaryRequest{Type: domain.SummaryCurrent})
	require.NoError(t, err)
	waitForStatus(t, repo, job.ID, domain.JobFailed)

	stored, _ := repo.GetByID(context.Background(), job.ID)
	assert.Contains(t, stored.Error, "OpenAI service unavailable")
	assert.Empty(t, stored.Summary)
}

func TestSummaryService_ContextErrorFails(t *testing.T) {
	repo := NewMockSummaryJobRepository()
	dash := &mockDashboardService{err: errors.New("provider down")}
	svc := newTestSummaryService(repo, dash, &mockLLM{summary: "unused"}, &mockLangfuseClient{})

	job, err := svc.Create(context.Background(), "p", &domain.CreateSummaryRequest{Type: domain.SummaryCurrent})
	require.NoError(t, err)
	waitForStatus(t, repo, job.ID, domain.JobFailed)
}

func TestSummaryService_Cancel(t *testing.T) {
	repo := NewMockSummaryJobRepository()
	model := &mockLLM{summary: "never", block: make(chan struct{}), started: make(chan struct{})}
	svc := newTestSummaryService(repo, &mockDashboardService{}, model, &mockLangfuseClient{})

	job, err := svc.Create(context.Background(), "p", &domain.CreateSummaryRequest{Type: domain.SummaryCurrent})
	require.NoError(t, err)
	<-model.started

	cancelled, err := svc.Cancel(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobCancelled, cancelled.Status)

	require.NoError(t, svc.Shutdown(context.Background()))
	assert.Equal(t, domain.JobCancelled, repo.status(job.ID))

	// A second cancel reports the terminal state.
	_, err = svc.Cancel(context.Background(), job.ID)
	assert.ErrorIs(t, err, domain.ErrJobFinished)
}

func TestSummaryService_CancelUnknown(t *testing.T) {
	svc := newTestSummaryService(NewMockSummaryJobRepository(), &mockDashboardService{}, &mockLLM{}, &mockLangfuseClient{})

	_, err := svc.Cancel(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSummaryService_InvalidPeriod(t *testing.T) {
	svc := newTestSummaryService(NewMockSummaryJobRepository(), &mockDashboardService{}, &mockLLM{}, &mockLangfuseClient{})

	_, err := svc.Create(context.Background(), "p", &domain.CreateSummaryRequest{Type: domain.SummaryCurrent, PeriodDays: 500})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSummaryService_Feedback(t *testing.T) {
	repo := NewMockSummaryJobRepository()
	lf := &mockLangfuseClient{}
	svc := newTestSummaryService(repo, &mockDashboardService{}, &mockLLM{summary: "ok"}, lf)

	job, err := svc.Create(context.Background(), "p", &domain.CreateSummaryRequest{Type: domain.SummaryCurrent})
	require.NoError(t, err)
	waitForStatus(t, repo, job.ID, domain.JobCompleted)

	err = svc.Feedback(context.Background(), job.ID, &domain.FeedbackRequest{Score: 4, Comment: "útil"})
	require.NoError(t, err)

	lf.mu.Lock()
	defer lf.mu.Unlock()
	require.Len(t, lf.scores, 1)
	assert.Equal(t, job.ID.String(), lf.scores[0].TraceID)
	assert.Equal(t, 4.0, lf.scores[0].Value)
	assert.Equal(t, "summary_rating", lf.scores[0].Name)
}

func TestSummaryService_FeedbackRequiresCompletedJob(t *testing.T) {
	repo := NewMockSummaryJobRepository()
	pending := &domain.SummaryJob{ID: uuid.New(), PatientID: "p", Status: domain.JobPending}
	require.NoError(t, repo.Create(context.Background(), pending))
	svc := newTestSummaryService(repo, &mockDashboardService{}, &mockLLM{}, &mockLangfuseClient{})

	err := svc.Feedback(context.Background(), pending.ID, &domain.FeedbackRequest{Score: 5})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSummaryService_ListPagination(t *testing.T) {
	repo := NewMockSummaryJobRepository()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		job := &domain.SummaryJob{ID: uuid.New(), PatientID: "p", Status: domain.JobCompleted}
		require.NoError(t, repo.Create(context.Background(), job))
		repo.jobs[job.ID].CreatedAt = base.Add(time.Duration(i) * time.Hour)
	}
	svc := newTestSummaryService(repo, &mockDashboardService{}, &mockLLM{}, &mockLangfuseClient{})

	page, err := svc.List(context.Background(), "p", domain.SummaryJobFilter{Limit: 2})
	require.NoError(t, err)
	require.Len(t, page.Data, 2)
	assert.True(t, page.Pagination.HasMore)
	assert.NotEmpty(t, page.Pagination.NextCursor)
	assert.True(t, page.Data[0].CreatedAt.After(page.Data[1].CreatedAt))

	next, err := svc.List(context.Background(), "p", domain.SummaryJobFilter{Limit: 2, Cursor: page.Pagination.NextCursor})
	require.NoError(t, err)
	require.Len(t, next.Data, 2)
	assert.True(t, next.Data[0].CreatedAt.Before(page.Data[1].CreatedAt))

	last, err := svc.List(context.Background(), "p", domain.SummaryJobFilter{Limit: 2, Cursor: next.Pagination.NextCursor})
	require.NoError(t, err)
	assert.Len(t, last.Data, 1)
	assert.False(t, last.Pagination.HasMore)
	assert.Empty(t, last.Pagination.NextCursor)
}
