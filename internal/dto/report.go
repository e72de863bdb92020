package dto

import "github.com/noah-isme/skill-exchange-api/internal/models"

// MatchReportRequest captures POST /skills/:userId/matches/export payload.
type MatchReportRequest struct {
	Skill  string              `json:"skill,omitempty" validate:"max=120"`
	Format models.ReportFormat `json:"format" validate:"required,oneof=csv pdf"`
}

// MatchReportJobResponse is returned after enqueueing a report export.
type MatchReportJobResponse struct {
	ID       string              `json:"id"`
	Status   models.ReportStatus `json:"status"`
	Progress int                 `json:"progress"`
}

// MatchReportStatusResponse exposes job progress metadata.
type MatchReportStatusResponse struct {
	ID        string              `json:"id"`
	Status    models.ReportStatus `json:"status"`
	Progress  int                 `json:"progress"`
	ResultURL *string             `json:"resultUrl,omitempty"`
	Error     *string             `json:"error,omitempty"`
}
