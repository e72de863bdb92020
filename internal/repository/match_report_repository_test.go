package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/skill-exchange-api/internal/models"
)

func newReportMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestMatchReportRepositoryCreateAndGet(t *testing.T) {
	db, mock, cleanup := newReportMock(t)
	defer cleanup()
	repo := NewMatchReportRepository(db)

	mock.ExpectExec("INSERT INTO match_report_jobs").
		WithArgs(sqlmock.AnyArg(), "seeker-1", sqlmock.AnyArg(), string(models.ReportStatusQueued), 0, nil, sqlmock.AnyArg(), nil, nil).
		WillReturnResult(sqlmock.NewResult(1, 1))

	job := &models.MatchReportJob{
		SeekerID: "seeker-1",
		Params:   models.MatchReportJobParams{Format: models.ReportFormatCSV},
	}
	require.NoError(t, repo.Create(context.Background(), job))
	assert.NotEmpty(t, job.ID)
	assert.Equal(t, models.ReportStatusQueued, job.Status)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "seeker_id", "params", "status", "progress", "result_url", "created_at", "finished_at", "error_message"}).
		AddRow(job.ID, "seeker-1", `{"format":"csv"}`, "QUEUED", 0, nil, now, nil, nil)
	mock.ExpectQuery("SELECT id, seeker_id, params, status, progress, result_url, created_at, finished_at, error_message").
		WithArgs(job.ID).
		WillReturnRows(rows)

	loaded, err := repo.GetByID(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReportFormatCSV, loaded.Params.Format)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMatchReportRepositoryUpdate(t *testing.T) {
	db, mock, cleanup := newReportMock(t)
	defer cleanup()
	repo := NewMatchReportRepository(db)

	status := models.ReportStatusFinished
	progress := 100
	url := "/api/v1/export/token"
	finished := time.Now().UTC()

	mock.ExpectExec("UPDATE match_report_jobs SET").
		WithArgs(string(status), progress, url, sqlmock.AnyArg(), "job-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), "job-1", UpdateMatchReportParams{
		Status:     &status,
		Progress:   &progress,
		ResultURL:  &url,
		FinishedAt: &finished,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMatchReportRepositoryUpdateNoFields(t *testing.T) {
	db, mock, cleanup := newReportMock(t)
	defer cleanup()
	repo := NewMatchReportRepository(db)

	// No expectations set: an empty update must not touch the database.
	require.NoError(t, repo.Update(context.Background(), "job-1", UpdateMatchReportParams{}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMatchReportRepositoryListFinishedBefore(t *testing.T) {
	db, mock, cleanup := newReportMock(t)
	defer cleanup()
	repo := NewMatchReportRepository(db)

	cutoff := time.Now().Add(-time.Hour)
	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "seeker_id", "params", "status", "progress", "result_url", "created_at", "finished_at", "error_message"}).
		AddRow("job-1", "seeker-1", `{"format":"csv"}`, "FINISHED", 100, "/api/v1/export/token", now, now, nil)
	// Rows already cleaned (null or empty result_url) must stay out of the
	// batch, otherwise the cleanup loop never advances.
	mock.ExpectQuery(`result_url IS NOT NULL AND result_url <> ''`).
		WithArgs(cutoff, 50).
		WillReturnRows(rows)

	jobs, err := repo.ListFinishedBefore(context.Background(), cutoff, 0)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	require.NotNil(t, jobs[0].ResultURL)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMatchReportRepositoryListQueued(t *testing.T) {
	db, mock, cleanup := newReportMock(t)
	defer cleanup()
	repo := NewMatchReportRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "seeker_id", "params", "status", "progress", "result_url", "created_at", "finished_at", "error_message"}).
		AddRow("job-1", "seeker-1", `{"format":"pdf"}`, "QUEUED", 0, nil, now, nil, nil)
	mock.ExpectQuery("SELECT id, seeker_id, params, status, progress, result_url, created_at, finished_at, error_message").
		WithArgs(20).
		WillReturnRows(rows)

	jobs, err := repo.ListQueued(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, models.ReportFormatPDF, jobs[0].Params.Format)
	assert.NoError(t, mock.ExpectationsWereMet())
}
