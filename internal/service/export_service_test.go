package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/skill-exchange-api/internal/dto"
	"github.com/noah-isme/skill-exchange-api/internal/models"
	"github.com/noah-isme/skill-exchange-api/pkg/export"
	"github.com/noah-isme/skill-exchange-api/pkg/storage"
)

type matchComputerStub struct {
	err error
}

func (s matchComputerStub) FindMatches(ctx context.Context, userID string) (*dto.MatchListResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &dto.MatchListResponse{
		UserID: userID,
		Groups: []dto.MatchGroupResponse{
			{
				Skill: "Guitar",
				Candidates: []models.MatchCandidate{
					{TeacherID: "teacher-a", Skill: "Guitar", Score: 1.0, OverlappingDays: []string{"monday"}, OverlappingSlots: []string{"evening"}},
					{TeacherID: "teacher-b", Skill: "Guitar", Score: 0.5},
				},
			},
			{Skill: "Piano", Candidates: []models.MatchCandidate{}},
		},
	}, nil
}

func (s matchComputerStub) FindMatchesForSkill(ctx context.Context, userID, skill string) (*dto.MatchGroupResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &dto.MatchGroupResponse{
		Skill: skill,
		Candidates: []models.MatchCandidate{
			{TeacherID: "teacher-a", Skill: skill, Score: 0.75},
		},
	}, nil
}

func newExportServiceForTest(t *testing.T) (*ExportService, *storage.LocalStorage) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewLocalStorage(dir)
	require.NoError(t, err)
	signer := storage.NewSignedURLSigner("secret", time.Hour)
	cfg := ExportConfig{APIPrefix: "/api/v1", ResultTTL: time.Hour}
	svc := NewExportService(matchComputerStub{}, store, signer, cfg, zap.NewNop(), export.NewCSVExporter(), export.NewPDFExporter())
	return svc, store
}

func TestExportServiceGenerateCSV(t *testing.T) {
	svc, store := newExportServiceForTest(t)
	job := &models.MatchReportJob{
		ID:       "job-1",
		SeekerID: "seeker-1",
		Params:   models.MatchReportJobParams{Format: models.ReportFormatCSV},
	}
	result, err := svc.Generate(context.Background(), job)
	require.NoError(t, err)
	require.NotEmpty(t, result.RelativePath)
	require.Contains(t, result.URL, "/export/")

	path := store.Path(result.RelativePath)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "teacher-a")
	require.Contains(t, string(data), "1.000")
}

func TestExportServiceGeneratePDF(t *testing.T) {
	svc, store := newExportServiceForTest(t)
	job := &models.MatchReportJob{
		ID:       "job-2",
		SeekerID: "seeker-1",
		Params:   models.MatchReportJobParams{Skill: "Guitar", Format: models.ReportFormatPDF},
	}
	result, err := svc.Generate(context.Background(), job)
	require.NoError(t, err)
	require.Equal(t, models.ReportFormatPDF, result.Format)

	path := filepath.Clean(store.Path(result.RelativePath))
	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Greater(t, info.Size(), int64(0))
}

func TestExportServiceUnsupportedFormat(t *testing.T) {
	svc, _ := newExportServiceForTest(t)
	job := &models.MatchReportJob{
		ID:       "job-3",
		SeekerID: "seeker-1",
		Params:   models.MatchReportJobParams{Format: models.ReportFormat("xlsx")},
	}
	_, err := svc.Generate(context.Background(), job)
	require.Error(t, err)
}
