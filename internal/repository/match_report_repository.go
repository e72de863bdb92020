package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/skill-exchange-api/internal/models"
)

// MatchReportRepository persists match report job metadata.
type MatchReportRepository struct {
	db *sqlx.DB
}

// NewMatchReportRepository constructs the repository.
func NewMatchReportRepository(db *sqlx.DB) *MatchReportRepository {
	return &MatchReportRepository{db: db}
}

// Create inserts a new report job row with generated defaults.
func (r *MatchReportRepository) Create(ctx context.Context, job *models.MatchReportJob) error {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	if job.Status == "" {
		job.Status = models.ReportStatusQueued
	}
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO match_report_jobs (id, seeker_id, params, status, progress, result_url, created_at, finished_at, error_message)
VALUES (:id, :seeker_id, :params, :status, :progress, :result_url, :created_at, :finished_at, :error_message)`
	if _, err := r.db.NamedExecContext(ctx, query, job); err != nil {
		return fmt.Errorf("create match report job: %w", err)
	}
	return nil
}

// GetByID returns a job row by its identifier.
func (r *MatchReportRepository) GetByID(ctx context.Context, id string) (*models.MatchReportJob, error) {
	const query = `SELECT id, seeker_id, params, status, progress, result_url, created_at, finished_at, error_message
FROM match_report_jobs WHERE id = $1`
	var job models.MatchReportJob
	if err := r.db.GetContext(ctx, &job, query, id); err != nil {
		return nil, err
	}
	return &job, nil
}

// UpdateMatchReportParams defines the mutable fields of a job row.
type UpdateMatchReportParams struct {
	Status       *models.ReportStatus
	Progress     *int
	ResultURL    *string
	ErrorMessage *string
	FinishedAt   *time.Time
}

// Update persists the provided changes for a job row.
func (r *MatchReportRepository) Update(ctx context.Context, id string, params UpdateMatchReportParams) error {
	set := make([]string, 0, 5)
	args := make([]interface{}, 0, 6)
	argPos := 1

	if params.Status != nil {
		set = append(set, fmt.Sprintf("status = $%d", argPos))
		args = append(args, *params.Status)
		argPos++
	}
	if params.Progress != nil {
		set = append(set, fmt.Sprintf("progress = $%d", argPos))
		args = append(args, *params.Progress)
		argPos++
	}
	if params.ResultURL != nil {
		set = append(set, fmt.Sprintf("result_url = $%d", argPos))
		args = append(args, *params.ResultURL)
		argPos++
	}
	if params.ErrorMessage != nil {
		set = append(set, fmt.Sprintf("error_message = $%d", argPos))
		args = append(args, *params.ErrorMessage)
		argPos++
	}
	if params.FinishedAt != nil {
		set = append(set, fmt.Sprintf("finished_at = $%d", argPos))
		args = append(args, *params.FinishedAt)
		argPos++
	}

	if len(set) == 0 {
		return nil
	}

	query := fmt.Sprintf("UPDATE match_report_jobs SET %s WHERE id = $%d", strings.Join(set, ", "), argPos)
	args = append(args, id)

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update match report job: %w", err)
	}
	return nil
}

// ListQueued fetches queued jobs, oldest first (cold start recovery).
func (r *MatchReportRepository) ListQueued(ctx context.Context, limit int) ([]models.MatchReportJob, error) {
	if limit <= 0 {
		limit = 20
	}
	const query = `SELECT id, seeker_id, params, status, progress, result_url, created_at, finished_at, error_message
FROM match_report_jobs WHERE status = 'QUEUED' ORDER BY created_at ASC LIMIT $1`
	var jobs []models.MatchReportJob
	if err := r.db.SelectContext(ctx, &jobs, query, limit); err != nil {
		return nil, fmt.Errorf("list queued match report jobs: %w", err)
	}
	return jobs, nil
}

// ListFinishedBefore retrieves completed jobs prior to cutoff whose export has
// not been cleaned up yet. Cleanup clears result_url per job, which is what
// moves the scan forward across batches.
func (r *MatchReportRepository) ListFinishedBefore(ctx context.Context, cutoff time.Time, limit int) ([]models.MatchReportJob, error) {
	if limit <= 0 {
		limit = 50
	}
	const query = `SELECT id, seeker_id, params, status, progress, result_url, created_at, finished_at, error_message
FROM match_report_jobs WHERE status = 'FINISHED' AND finished_at IS NOT NULL AND finished_at < $1
AND result_url IS NOT NULL AND result_url <> '' ORDER BY finished_at ASC LIMIT $2`
	var jobs []models.MatchReportJob
	if err := r.db.SelectContext(ctx, &jobs, query, cutoff, limit); err != nil {
		return nil, fmt.Errorf("list finished match report jobs: %w", err)
	}
	return jobs, nil
}
