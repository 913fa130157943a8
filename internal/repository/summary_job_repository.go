package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/blaisecz/health-trends/internal/domain"
	"github.com/blaisecz/health-trends/pkg/pagination"
)

type SummaryJobRepository interface {
	Create(ctx context.Context, job *domain.SummaryJob) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.SummaryJob, error)
	ListByPatient(ctx context.Context, patientID string, filter domain.SummaryJobFilter) ([]domain.SummaryJob, error)
	// Finish moves a pending job to a terminal status. It returns
	// domain.ErrJobFinished when the job already left pending.
	Finish(ctx context.Context, job *domain.SummaryJob) error
	// FailPending marks every job still pending as failed. Used at startup
	// for jobs whose goroutine died with the previous process.
	FailPending(ctx context.Context, reason string) (int64, error)
}

type summaryJobRepository struct {
	db *gorm.DB
}

func NewSummaryJobRepository(db *gorm.DB) SummaryJobRepository {
	return &summaryJobRepository{db: db}
}

func (r *summaryJobRepository) Create(ctx context.Context, job *domain.SummaryJob) error {
	return r.db.WithContext(ctx).Create(job).Error
}

func (r *summaryJobRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.SummaryJob, error) {
	var job domain.SummaryJob
	err := r.db.WithContext(ctx).First(&job, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *summaryJobRepository) ListByPatient(ctx context.Context, patientID string, filter domain.SummaryJobFilter) ([]domain.SummaryJob, error) {
	query := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("created_at DESC").
		Order("id DESC")

	cursor, err := pagination.DecodeCursor(filter.Cursor, patientID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if cursor != nil {
		query = query.Where(
			"(created_at < ?) OR (created_at = ? AND id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}

	// One extra row tells whether another page exists.
	limit := pagination.NormalizeLimit(filter.Limit)
	query = query.Limit(limit + 1)

	var jobs []domain.SummaryJob
	if err := query.Find(&jobs).Error; err != nil {
		return nil, err
	}

	return jobs, nil
}

func (r *summaryJobRepository) Finish(ctx context.Context, job *domain.SummaryJob) error {
	if !job.Status.Terminal() {
		return fmt.Errorf("%w: status %q is not terminal", domain.ErrInvalidInput, job.Status)
	}
	if job.CompletedAt == nil {
		now := time.Now().UTC()
		job.CompletedAt = &now
	}

	result := r.db.WithContext(ctx).
		Model(&domain.SummaryJob{}).
		Where("id = ? AND status = ?", job.ID, domain.JobPending).
		Updates(map[string]any{
			"status":       job.Status,
			"summary":      job.Summary,
			"error":        job.Error,
			"trace_id":     job.TraceID,
			"completed_at": job.CompletedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrJobFinished
	}
	return nil
}

func (r *summaryJobRepository) FailPending(ctx context.Context, reason string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&domain.SummaryJob{}).
		Where("status = ?", domain.JobPending).
		Updates(map[string]any{
			"status":       domain.JobFailed,
			"error":        reason,
			"completed_at": time.Now().UTC(),
		})
	return result.RowsAffected, result.Error
}
