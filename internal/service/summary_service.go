package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/blaisecz/health-trends/internal/domain"
	"github.com/blaisecz/health-trends/internal/kpi"
	"github.com/blaisecz/health-trends/internal/langfuse"
	"github.com/blaisecz/health-trends/internal/llm"
	"github.com/blaisecz/health-trends/internal/logger"
	"github.com/blaisecz/health-trends/internal/observability"
	"github.com/blaisecz/health-trends/internal/repository"
	"github.com/blaisecz/health-trends/pkg/pagination"
)

const (
	// DefaultSummaryTimeout bounds one summary job end to end.
	DefaultSummaryTimeout = 2 * time.Minute

	persistTimeout = 5 * time.Second
)

// SummaryService runs AI summary jobs in the background.
type SummaryService interface {
	// Create persists a pending job and starts generating it.
	Create(ctx context.Context, patientID string, req *domain.CreateSummaryRequest) (*domain.SummaryJob, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.SummaryJob, error)
	List(ctx context.Context, patientID string, filter domain.SummaryJobFilter) (*domain.SummaryJobListResponse, error)
	// Cancel stops a pending job. It returns domain.ErrJobFinished for jobs
	// that already reached a terminal status.
	Cancel(ctx context.Context, id uuid.UUID) (*domain.SummaryJob, error)
	// Feedback attaches a user rating to a completed job's trace.
	Feedback(ctx context.Context, id uuid.UUID, req *domain.FeedbackRequest) error
	// Shutdown cancels running jobs and waits for them to exit.
	Shutdown(ctx context.Context) error
}

type summaryService struct {
	repo           repository.SummaryJobRepository
	dashboard      DashboardService
	llmClient      llm.SummaryLLM
	langfuseClient langfuse.Client
	timeout        time.Duration
	log            *logger.Entry

	mu      sync.Mutex
	running map[uuid.UUID]context.CancelFunc
	wg      sync.WaitGroup
}

// NewSummaryService creates a new SummaryService.
func NewSummaryService(
	repo repository.SummaryJobRepository,
	dashboard DashboardService,
	llmClient llm.SummaryLLM,
	langfuseClient langfuse.Client,
	timeout time.Duration,
) SummaryService {
	if timeout <= 0 {
		timeout = DefaultSummaryTimeout
	}
	return &summaryService{
		repo:           repo,
		dashboard:      dashboard,
		llmClient:      llmClient,
		langfuseClient: langfuseClient,
		timeout:        timeout,
		log:            logger.GetLogger().WithComponent("summary"),
		running:        make(map[uuid.UUID]context.CancelFunc),
	}
}

func (s *summaryService) Create(ctx context.Context, patientID string, req *domain.CreateSummaryRequest) (*domain.SummaryJob, error) {
	periodDays := req.PeriodDays
	if periodDays == 0 {
		periodDays = kpi.DefaultLookbackDays
	}
	if periodDays < kpi.MinLookbackDays || periodDays > kpi.MaxLookbackDays {
		return nil, fmt.Errorf("%w: period_days must be between %d and %d", domain.ErrInvalidInput, kpi.MinLookbackDays, kpi.MaxLookbackDays)
	}

	job := &domain.SummaryJob{
		ID:         uuid.New(),
		PatientID:  patientID,
		Type:       req.Type,
		PeriodDays: periodDays,
		Status:     domain.JobPending,
	}
	if err := s.repo.Create(ctx, job); err != nil {
		return nil, err
	}

	jobCtx, cancel := context.WithTimeout(context.Background(), s.timeout)
	s.mu.Lock()
	s.running[job.ID] = cancel
	s.mu.Unlock()

	s.wg.Add(1)
	go s.run(jobCtx, *job, req.Lookup)

	s.log.WithFields(logger.Fields{
		"job_id":     job.ID,
		"patient_id": patientID,
		"type":       job.Type,
	}).Info("summary job started")
	return job, nil
}

func (s *summaryService) run(ctx context.Context, job domain.SummaryJob, lookup string) {
	defer s.wg.Done()
	defer s.release(job.ID)

	start := time.Now()
	log := s.log.WithFields(logger.Fields{"job_id": job.ID, "patient_id": job.PatientID})

	summaryCtx, err := s.dashboard.SummaryContext(ctx, job.PatientID, job.Type, job.PeriodDays, lookup)
	if err == nil {
		job.Summary, err = s.llmClient.GenerateSummary(ctx, summaryCtx)
	}

	switch {
	case errors.Is(ctx.Err(), context.Canceled):
		// Cancel already persisted the cancelled status.
		log.Info("summary job cancelled")
		return
	case err != nil:
		job.Status = domain.JobFailed
		job.Error = err.Error()
		job.Summary = ""
	default:
		job.Status = domain.JobCompleted
		job.TraceID, _ = s.langfuseClient.CreateTrace(ctx, langfuse.TraceInput{
			ID:        job.ID.String(),
			UserID:    job.PatientID,
			SessionID: job.PatientID,
			Name:      "health-summary",
			Input:     summaryCtx,
			Output:    job.Summary,
			Tags:      []string{"health-trends", string(job.Type)},
			Metadata: map[string]any{
				"period_days": job.PeriodDays,
			},
		})
	}

	persistCtx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	if err := s.repo.Finish(persistCtx, &job); err != nil {
		if errors.Is(err, domain.ErrJobFinished) {
			log.Debug("summary job already finished")
			return
		}
		log.WithError(err).Error("failed to persist summary job")
		return
	}

	observability.RecordSummaryJob(string(job.Status))
	entry := log.WithFields(logger.Fields{"status": job.Status, "duration_ms": time.Since(start).Milliseconds()})
	if job.Status == domain.JobFailed {
		entry.Warn("summary job failed: " + job.Error)
		return
	}
	entry.Info("summary job completed")
}

func (s *summaryService) release(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cancel, ok := s.running[id]; ok {
		cancel()
		delete(s.running, id)
	}
}

func (s *summaryService) Get(ctx context.Context, id uuid.UUID) (*domain.SummaryJob, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *summaryService) List(ctx context.Context, patientID string, filter domain.SummaryJobFilter) (*domain.SummaryJobListResponse, error) {
	jobs, err := s.repo.ListByPatient(ctx, patientID, filter)
	if err != nil {
		return nil, err
	}

	jobs, hasMore := pagination.Trim(jobs, filter.Limit)

	response := &domain.SummaryJobListResponse{
		Data: make([]domain.SummaryJobResponse, len(jobs)),
		Pagination: domain.PaginationResponse{
			HasMore: hasMore,
		},
	}
	for i := range jobs {
		response.Data[i] = jobs[i].ToResponse()
	}

	if hasMore && len(jobs) > 0 {
		last := jobs[len(jobs)-1]
		response.Pagination.NextCursor = pagination.Cursor{
			ID:        last.ID,
			CreatedAt: last.CreatedAt,
			Scope:     patientID,
		}.Encode()
	}

	return response, nil
}

func (s *summaryService) Cancel(ctx context.Context, id uuid.UUID) (*domain.SummaryJob, error) {
	job, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if job.Status.Terminal() {
		return job, domain.ErrJobFinished
	}

	job.Status = domain.JobCancelled
	if err := s.repo.Finish(ctx, job); err != nil {
		if errors.Is(err, domain.ErrJobFinished) {
			// Lost the race against the worker; report the stored state.
			if current, getErr := s.repo.GetByID(ctx, id); getErr == nil {
				return current, domain.ErrJobFinished
			}
		}
		return nil, err
	}
	s.release(id)

	observability.RecordSummaryJob(string(domain.JobCancelled))
	s.log.WithFields(logger.Fields{"job_id": id}).Info("summary job cancel requested")
	return job, nil
}

func (s *summaryService) Feedback(ctx context.Context, id uuid.UUID, req *domain.FeedbackRequest) error {
	job, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if job.Status != domain.JobCompleted {
		return fmt.Errorf("%w: only completed summaries can be rated", domain.ErrInvalidInput)
	}

	traceID := job.TraceID
	if traceID == "" {
		traceID = job.ID.String()
	}

	// Delivery is batched; failures are logged by the client.
	return s.langfuseClient.CreateScore(ctx, langfuse.ScoreInput{
		TraceID: traceID,
		Name:    "summary_rating",
		Value:   float64(req.Score),
		Comment: req.Comment,
	})
}

func (s *summaryService) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	for _, cancel := range s.running {
		cancel()
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
