package domain

import (
	"time"

	"github.com/google/uuid"
)

// SummaryType selects the AI summary flavour.
// @Description Summary type: current for the selected period, general for the full history.
type SummaryType string

const (
	SummaryCurrent SummaryType = "current"
	SummaryGeneral SummaryType = "general"
)

// JobStatus is the lifecycle state of a SummaryJob.
type JobStatus string

const (
	JobPending   JobStatus = "pending"
	JobCompleted JobStatus = "completed"
	JobFailed    JobStatus = "failed"
	JobCancelled JobStatus = "cancelled"
)

// Terminal reports whether no further transition is allowed.
func (s JobStatus) Terminal() bool {
	return s == JobCompleted || s == JobFailed || s == JobCancelled
}

type SummaryJob struct {
	ID          uuid.UUID   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID   string      `gorm:"type:varchar(254);not null;index:idx_summary_jobs_patient_created" json:"patient_id"`
	Type        SummaryType `gorm:"type:varchar(10);not null" json:"type"`
	PeriodDays  int         `gorm:"not null" json:"period_days"`
	Status      JobStatus   `gorm:"type:varchar(12);not null;default:'pending'" json:"status"`
	Summary     string      `gorm:"type:text" json:"summary,omitempty"`
	Error       string      `gorm:"type:text" json:"error,omitempty"`
	TraceID     string      `gorm:"type:varchar(64)" json:"trace_id,omitempty"`
	CreatedAt   time.Time   `gorm:"autoCreateTime;index:idx_summary_jobs_patient_created,sort:desc" json:"created_at"`
	UpdatedAt   time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
	CompletedAt *time.Time  `json:"completed_at,omitempty"`
}

func (SummaryJob) TableName() string {
	return "summary_jobs"
}

// CreateSummaryRequest is the request body for starting a summary job.
// @Description Request payload for an AI health summary.
type CreateSummaryRequest struct {
	// Summary type: current (selected period) or general (history)
	Type SummaryType `json:"type" validate:"required,oneof=current general" example:"current" enums:"current,general"`
	// Lookback in days for the current period
	PeriodDays int `json:"period_days" validate:"omitempty,min=1,max=365" example:"30"`
	// Optional identifier lookup mode
	Lookup string `json:"lookup,omitempty" validate:"omitempty,oneof=email hc" example:"email"`
}

// SummaryJobResponse is the response body for summary job endpoints.
// @Description AI summary job state.
type SummaryJobResponse struct {
	ID          uuid.UUID   `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	PatientID   string      `json:"patient_id" example:"patient@example.com"`
	Type        SummaryType `json:"type" example:"current"`
	PeriodDays  int         `json:"period_days" example:"30"`
	Status      JobStatus   `json:"status" example:"pending"`
	Summary     string      `json:"summary,omitempty"`
	Error       string      `json:"error,omitempty"`
	// Trace ID for feedback (only present when Langfuse is enabled)
	TraceID     string      `json:"trace_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	CreatedAt   time.Time   `json:"created_at" example:"2024-01-16T07:05:00Z"`
	UpdatedAt   time.Time   `json:"updated_at" example:"2024-01-16T07:05:03Z"`
	CompletedAt *time.Time  `json:"completed_at,omitempty" example:"2024-01-16T07:05:03Z"`
}

func (j *SummaryJob) ToResponse() SummaryJobResponse {
	return SummaryJobResponse{
		ID:          j.ID,
		PatientID:   j.PatientID,
		Type:        j.Type,
		PeriodDays:  j.PeriodDays,
		Status:      j.Status,
		Summary:     j.Summary,
		Error:       j.Error,
		TraceID:     j.TraceID,
		CreatedAt:   j.CreatedAt,
		UpdatedAt:   j.UpdatedAt,
		CompletedAt: j.CompletedAt,
	}
}

// SummaryJobListResponse is the response body for listing summary jobs.
// @Description Paginated list of summary jobs.
type SummaryJobListResponse struct {
	Data       []SummaryJobResponse `json:"data"`
	Pagination PaginationResponse   `json:"pagination"`
}

// PaginationResponse contains pagination metadata.
// @Description Cursor-based pagination info.
type PaginationResponse struct {
	// Cursor for fetching the next page (empty if no more pages)
	NextCursor string `json:"next_cursor,omitempty" example:"eyJpZCI6IjU1MGU4NDAwLWUyOWItNDFkNC1hNzE2LTQ0NjY1NTQ0MDAwMCJ9"`
	// True if more results are available
	HasMore bool `json:"has_more" example:"true"`
}

// SummaryJobFilter contains filter parameters for listing summary jobs.
type SummaryJobFilter struct {
	Limit  int
	Cursor string
}

// FeedbackRequest is the request body for rating a summary.
// @Description User rating of a generated summary.
type FeedbackRequest struct {
	// Score from 1 (poor) to 5 (excellent)
	Score int `json:"score" validate:"required,min=1,max=5" example:"4" minimum:"1" maximum:"5"`
	// Optional free-text comment
	Comment string `json:"comment,omitempty" validate:"omitempty,max=2000" example:"Helpful and concise"`
}
