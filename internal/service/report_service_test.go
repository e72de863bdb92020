package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/skill-exchange-api/internal/dto"
	"github.com/noah-isme/skill-exchange-api/internal/models"
	"github.com/noah-isme/skill-exchange-api/internal/repository"
	appErrors "github.com/noah-isme/skill-exchange-api/pkg/errors"
	"github.com/noah-isme/skill-exchange-api/pkg/jobs"
)

type reportRepoStub struct {
	jobs map[string]*models.MatchReportJob
}

func newReportRepoStub() *reportRepoStub {
	return &reportRepoStub{jobs: map[string]*models.MatchReportJob{}}
}

func (r *reportRepoStub) Create(ctx context.Context, job *models.MatchReportJob) error {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	r.jobs[job.ID] = job
	return nil
}

func (r *reportRepoStub) GetByID(ctx context.Context, id string) (*models.MatchReportJob, error) {
	job, ok := r.jobs[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return job, nil
}

func (r *reportRepoStub) Update(ctx context.Context, id string, params repository.UpdateMatchReportParams) error {
	job, ok := r.jobs[id]
	if !ok {
		return errors.New("not found")
	}
	if params.Status != nil {
		job.Status = *params.Status
	}
	if params.Progress != nil {
		job.Progress = *params.Progress
	}
	if params.ResultURL != nil {
		job.ResultURL = params.ResultURL
	}
	if params.ErrorMessage != nil {
		job.ErrorMessage = params.ErrorMessage
	}
	if params.FinishedAt != nil {
		job.FinishedAt = params.FinishedAt
	}
	return nil
}

func (r *reportRepoStub) ListQueued(ctx context.Context, limit int) ([]models.MatchReportJob, error) {
	var queued []models.MatchReportJob
	for _, job := range r.jobs {
		if job.Status == models.ReportStatusQueued {
			queued = append(queued, *job)
		}
	}
	return queued, nil
}

func (r *reportRepoStub) ListFinishedBefore(ctx context.Context, cutoff time.Time, limit int) ([]models.MatchReportJob, error) {
	var stale []models.MatchReportJob
	for _, job := range r.jobs {
		if job.Status != models.ReportStatusFinished {
			continue
		}
		if job.FinishedAt == nil || !job.FinishedAt.Before(cutoff) {
			continue
		}
		if job.ResultURL == nil || *job.ResultURL == "" {
			continue
		}
		stale = append(stale, *job)
		if len(stale) == limit {
			break
		}
	}
	return stale, nil
}

type queueStub struct {
	jobs []jobs.Job
	err  error
}

func (q *queueStub) Enqueue(job jobs.Job) error {
	if q.err != nil {
		return q.err
	}
	q.jobs = append(q.jobs, job)
	return nil
}

type seekerCheckerStub struct {
	err error
}

func (s seekerCheckerStub) Get(ctx context.Context, userID string) (*models.Profile, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.Profile{UserID: userID}, nil
}

func newReportServiceForTest(t *testing.T) (*ReportService, *reportRepoStub, *queueStub, *ExportService) {
	t.Helper()
	repo := newReportRepoStub()
	queue := &queueStub{}
	exportSvc, _ := newExportServiceForTest(t)
	service := NewReportService(repo, seekerCheckerStub{}, queue, exportSvc, zap.NewNop(), ReportServiceConfig{
		ResultTTL:       time.Hour,
		CleanupInterval: time.Hour,
		MaxRetries:      3,
	})
	return service, repo, queue, exportSvc
}

func TestReportServiceCreateJob(t *testing.T) {
	svc, repo, queue, _ := newReportServiceForTest(t)
	resp, err := svc.CreateJob(context.Background(), "seeker-1", dto.MatchReportRequest{
		Format: models.ReportFormatCSV,
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.ID)
	require.Len(t, queue.jobs, 1)
	assert.Equal(t, models.ReportStatusQueued, resp.Status)
	assert.Contains(t, repo.jobs, resp.ID)
}

func TestReportServiceCreateJobRejectsUnknownFormat(t *testing.T) {
	svc, _, _, _ := newReportServiceForTest(t)
	_, err := svc.CreateJob(context.Background(), "seeker-1", dto.MatchReportRequest{
		Format: models.ReportFormat("xlsx"),
	})
	require.Error(t, err)
}

func TestReportServiceCreateJobMissingSeeker(t *testing.T) {
	repo := newReportRepoStub()
	queue := &queueStub{}
	exportSvc, _ := newExportServiceForTest(t)
	svc := NewReportService(repo, seekerCheckerStub{err: appErrors.ErrProfileNotFound}, queue, exportSvc, zap.NewNop(), ReportServiceConfig{})

	_, err := svc.CreateJob(context.Background(), "ghost", dto.MatchReportRequest{Format: models.ReportFormatCSV})
	require.ErrorIs(t, err, appErrors.ErrProfileNotFound)
	require.Empty(t, queue.jobs)
}

func TestReportServiceGetStatus(t *testing.T) {
	svc, repo, _, _ := newReportServiceForTest(t)
	job := &models.MatchReportJob{
		ID:       "job-1",
		SeekerID: "seeker-1",
		Params:   models.MatchReportJobParams{Format: models.ReportFormatCSV},
		Status:   models.ReportStatusFinished,
		Progress: 100,
	}
	repo.jobs[job.ID] = job
	resp, err := svc.GetStatus(context.Background(), job.ID, "seeker-1")
	require.NoError(t, err)
	assert.Equal(t, job.Status, resp.Status)
	assert.Equal(t, job.Progress, resp.Progress)
}

func TestReportServiceGetStatusForbidden(t *testing.T) {
	svc, repo, _, _ := newReportServiceForTest(t)
	repo.jobs["job-1"] = &models.MatchReportJob{ID: "job-1", SeekerID: "seeker-1"}
	_, err := svc.GetStatus(context.Background(), "job-1", "someone-else")
	require.ErrorIs(t, err, appErrors.ErrForbidden)
}

func TestReportServiceResolveDownload(t *testing.T) {
	svc, repo, _, exportSvc := newReportServiceForTest(t)
	job := &models.MatchReportJob{
		ID:       "job-download",
		SeekerID: "seeker-1",
		Params:   models.MatchReportJobParams{Format: models.ReportFormatCSV},
		Status:   models.ReportStatusFinished,
		Progress: 100,
	}
	repo.jobs[job.ID] = job
	result, err := exportSvc.Generate(context.Background(), job)
	require.NoError(t, err)
	job.ResultURL = &result.URL
	now := time.Now()
	job.FinishedAt = &now

	download, err := svc.ResolveDownload(context.Background(), result.Token)
	require.NoError(t, err)
	assert.Equal(t, filepath.Base(result.RelativePath), download.Filename)
	download.File.Close()
}

func TestReportServiceRecoverPendingJobs(t *testing.T) {
	svc, repo, queue, _ := newReportServiceForTest(t)
	repo.jobs["job-1"] = &models.MatchReportJob{ID: "job-1", SeekerID: "seeker-1", Status: models.ReportStatusQueued}
	repo.jobs["job-2"] = &models.MatchReportJob{ID: "job-2", SeekerID: "seeker-1", Status: models.ReportStatusFinished}

	svc.RecoverPendingJobs(context.Background())
	require.Len(t, queue.jobs, 1)
	assert.Equal(t, "job-1", queue.jobs[0].ID)
}

func TestReportServiceCleanupClearsStaleExports(t *testing.T) {
	svc, repo, _, _ := newReportServiceForTest(t)
	finished := time.Now().Add(-2 * time.Hour)
	for i := 0; i < 230; i++ {
		url := fmt.Sprintf("/api/v1/export/token-%03d", i)
		id := fmt.Sprintf("job-%03d", i)
		at := finished
		repo.jobs[id] = &models.MatchReportJob{
			ID:         id,
			SeekerID:   "seeker-1",
			Params:     models.MatchReportJobParams{Format: models.ReportFormatCSV},
			Status:     models.ReportStatusFinished,
			Progress:   100,
			ResultURL:  &url,
			FinishedAt: &at,
		}
	}

	svc.cleanupExpired(context.Background())

	for id, job := range repo.jobs {
		require.NotNil(t, job.ResultURL, id)
		assert.Empty(t, *job.ResultURL, id)
		assert.Equal(t, models.ReportStatusFinished, job.Status, id)
	}
}

func TestReportServiceCleanupKeepsFreshExports(t *testing.T) {
	svc, repo, _, _ := newReportServiceForTest(t)
	url := "/api/v1/export/token-fresh"
	now := time.Now()
	repo.jobs["job-fresh"] = &models.MatchReportJob{
		ID:         "job-fresh",
		SeekerID:   "seeker-1",
		Params:     models.MatchReportJobParams{Format: models.ReportFormatCSV},
		Status:     models.ReportStatusFinished,
		Progress:   100,
		ResultURL:  &url,
		FinishedAt: &now,
	}

	svc.cleanupExpired(context.Background())
	require.NotNil(t, repo.jobs["job-fresh"].ResultURL)
	assert.Equal(t, url, *repo.jobs["job-fresh"].ResultURL)
}

type exportStub struct {
	result *ExportResult
	err    error
}

func (e exportStub) Generate(ctx context.Context, job *models.MatchReportJob) (*ExportResult, error) {
	if e.err != nil {
		return nil, e.err
	}
	return e.result, nil
}

func TestReportWorkerHandleSuccess(t *testing.T) {
	repo := &reportRepoStub{
		jobs: map[string]*models.MatchReportJob{
			"job-1": {
				ID:       "job-1",
				SeekerID: "seeker-1",
				Params:   models.MatchReportJobParams{Format: models.ReportFormatCSV},
				Status:   models.ReportStatusQueued,
			},
		},
	}
	exporter := exportStub{result: &ExportResult{URL: "/api/v1/export/token"}}
	worker := NewReportWorker(repo, exporter, 3, zap.NewNop())

	err := worker.Handle(context.Background(), jobs.Job{ID: "job-1"})
	require.NoError(t, err)
	require.Equal(t, models.ReportStatusFinished, repo.jobs["job-1"].Status)
	require.Equal(t, 100, repo.jobs["job-1"].Progress)
}

func TestReportWorkerHandleFailureRetries(t *testing.T) {
	repo := &reportRepoStub{
		jobs: map[string]*models.MatchReportJob{
			"job-1": {
				ID:       "job-1",
				SeekerID: "seeker-1",
				Params:   models.MatchReportJobParams{Format: models.ReportFormatCSV},
				Status:   models.ReportStatusQueued,
			},
		},
	}
	exporter := exportStub{err: errors.New("boom")}
	worker := NewReportWorker(repo, exporter, 2, zap.NewNop())

	err := worker.Handle(context.Background(), jobs.Job{ID: "job-1", Attempt: 2})
	require.Error(t, err)
	require.Equal(t, models.ReportStatusFailed, repo.jobs["job-1"].Status)
}

func TestReportWorkerRequeuesBeforeMaxRetries(t *testing.T) {
	repo := &reportRepoStub{
		jobs: map[string]*models.MatchReportJob{
			"job-1": {
				ID:       "job-1",
				SeekerID: "seeker-1",
				Params:   models.MatchReportJobParams{Format: models.ReportFormatCSV},
				Status:   models.ReportStatusQueued,
			},
		},
	}
	exporter := exportStub{err: errors.New("boom")}
	worker := NewReportWorker(repo, exporter, 3, zap.NewNop())

	err := worker.Handle(context.Background(), jobs.Job{ID: "job-1", Attempt: 1})
	require.Error(t, err)
	require.Equal(t, models.ReportStatusQueued, repo.jobs["job-1"].Status)
}
