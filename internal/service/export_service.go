package service

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/skill-exchange-api/internal/dto"
	"github.com/noah-isme/skill-exchange-api/internal/models"
	"github.com/noah-isme/skill-exchange-api/pkg/export"
	"github.com/noah-isme/skill-exchange-api/pkg/storage"
)

type matchComputer interface {
	FindMatches(ctx context.Context, userID string) (*dto.MatchListResponse, error)
	FindMatchesForSkill(ctx context.Context, userID, skill string) (*dto.MatchGroupResponse, error)
}

type fileStorage interface {
	Save(filename string, data []byte) (string, error)
	Open(filename string) (*os.File, error)
	Delete(filename string) error
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportConfig tunes export behaviour.
type ExportConfig struct {
	APIPrefix string
	ResultTTL time.Duration
}

// ExportResult captures successful generation metadata.
type ExportResult struct {
	RelativePath string
	Token        string
	URL          string
	Format       models.ReportFormat
	ExpiresAt    time.Time
}

// ExportService renders match results into downloadable report files.
type ExportService struct {
	matches matchComputer
	storage fileStorage
	csv     csvRenderer
	pdf     pdfRenderer
	signer  *storage.SignedURLSigner
	logger  *zap.Logger
	cfg     ExportConfig
}

// NewExportService constructs an ExportService.
func NewExportService(matches matchComputer, store fileStorage, signer *storage.SignedURLSigner, cfg ExportConfig, logger *zap.Logger, csv csvRenderer, pdf pdfRenderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = 24 * time.Hour
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{
		matches: matches,
		storage: store,
		csv:     csv,
		pdf:     pdf,
		signer:  signer,
		logger:  logger,
		cfg:     cfg,
	}
}

// Generate computes matches per the job definition and stores the rendered export.
func (s *ExportService) Generate(ctx context.Context, job *models.MatchReportJob) (*ExportResult, error) {
	if job == nil {
		return nil, fmt.Errorf("job nil")
	}
	dataset, title, err := s.buildDataset(ctx, job)
	if err != nil {
		return nil, err
	}

	var payload []byte
	switch job.Params.Format {
	case models.ReportFormatCSV:
		payload, err = s.csv.Render(dataset)
	case models.ReportFormatPDF:
		payload, err = s.pdf.Render(dataset, title)
	default:
		err = fmt.Errorf("unsupported format %s", job.Params.Format)
	}
	if err != nil {
		return nil, err
	}

	filename := s.buildFilename(job)
	relPath, err := s.storage.Save(filename, payload)
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := s.signer.Generate(job.ID, relPath)
	if err != nil {
		return nil, err
	}
	signedURL := strings.TrimRight(s.cfg.APIPrefix, "/")
	if signedURL == "" {
		signedURL = "/api/v1"
	}
	signedURL = fmt.Sprintf("%s/export/%s", signedURL, token)

	return &ExportResult{
		RelativePath: relPath,
		Token:        token,
		URL:          signedURL,
		Format:       job.Params.Format,
		ExpiresAt:    expiresAt,
	}, nil
}

// ParseToken validates download token metadata.
func (s *ExportService) ParseToken(token string, allowExpired bool) (jobID, relPath string, expiresAt time.Time, err error) {
	return s.signer.Parse(token, allowExpired)
}

// Open returns a handle to the stored file.
func (s *ExportService) Open(relPath string) (*os.File, error) {
	return s.storage.Open(relPath)
}

// Delete removes a stored export file.
func (s *ExportService) Delete(relPath string) error {
	return s.storage.Delete(relPath)
}

// Cleanup removes files older than ttl (defaults to configured ResultTTL when ttl <= 0).
func (s *ExportService) Cleanup(ttl time.Duration) ([]string, error) {
	if ttl <= 0 {
		ttl = s.cfg.ResultTTL
	}
	return s.storage.CleanupOlderThan(ttl)
}

func (s *ExportService) buildFilename(job *models.MatchReportJob) string {
	timestamp := time.Now().UTC().Format("20060102_150405")
	skillPart := sanitizeFilename(models.NormalizeSkill(job.Params.Skill))
	if skillPart == "" {
		skillPart = "all"
	}
	return fmt.Sprintf("matches_%s_%s_%s.%s", sanitizeFilename(job.SeekerID), skillPart, timestamp, job.Params.Format)
}

func sanitizeFilename(raw string) string {
	if raw == "" {
		return ""
	}
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-", "..", ".", "__", "_")
	result := replacer.Replace(raw)
	if len(result) > 100 {
		return result[:100]
	}
	return result
}

var matchReportHeaders = []string{"Skill", "Teacher ID", "Score", "Overlapping Days", "Overlapping Slots"}

func (s *ExportService) buildDataset(ctx context.Context, job *models.MatchReportJob) (export.Dataset, string, error) {
	var groups []dto.MatchGroupResponse
	if skill := strings.TrimSpace(job.Params.Skill); skill != "" {
		group, err := s.matches.FindMatchesForSkill(ctx, job.SeekerID, skill)
		if err != nil {
			return export.Dataset{}, "", err
		}
		groups = []dto.MatchGroupResponse{*group}
	} else {
		resp, err := s.matches.FindMatches(ctx, job.SeekerID)
		if err != nil {
			return export.Dataset{}, "", err
		}
		groups = resp.Groups
	}

	rows := make([]map[string]string, 0)
	for _, group := range groups {
		for _, candidate := range group.Candidates {
			rows = append(rows, map[string]string{
				"Skill":             group.Skill,
				"Teacher ID":        candidate.TeacherID,
				"Score":             fmt.Sprintf("%.3f", candidate.Score),
				"Overlapping Days":  strings.Join(candidate.OverlappingDays, "; "),
				"Overlapping Slots": strings.Join(candidate.OverlappingSlots, "; "),
			})
		}
	}

	dataset := export.Dataset{Headers: matchReportHeaders, Rows: rows}
	title := fmt.Sprintf("Match Report %s", job.SeekerID)
	return dataset, title, nil
}
