package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/skill-exchange-api/internal/dto"
	"github.com/noah-isme/skill-exchange-api/internal/models"
	"github.com/noah-isme/skill-exchange-api/internal/service"
	appErrors "github.com/noah-isme/skill-exchange-api/pkg/errors"
	"github.com/noah-isme/skill-exchange-api/pkg/response"
)

type reportService interface {
	CreateJob(ctx context.Context, seekerID string, req dto.MatchReportRequest) (*dto.MatchReportJobResponse, error)
	GetStatus(ctx context.Context, id string, requesterID string) (*dto.MatchReportStatusResponse, error)
	ResolveDownload(ctx context.Context, token string) (*service.ReportDownload, error)
}

// ReportHandler exposes match report export endpoints.
type ReportHandler struct {
	reports reportService
}

// NewReportHandler constructs handler.
func NewReportHandler(reports reportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// CreateExport godoc
// @Summary Queue an asynchronous match report export
// @Tags Reports
// @Accept json
// @Produce json
// @Param userId path string true "User ID"
// @Param payload body dto.MatchReportRequest true "Export options"
// @Success 202 {object} response.Envelope
// @Router /skills/{userId}/matches/export [post]
func (h *ReportHandler) CreateExport(c *gin.Context) {
	var req dto.MatchReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	resp, err := h.reports.CreateJob(c.Request.Context(), c.Param("userId"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusAccepted, resp, nil)
}

// Status godoc
// @Summary Report job status
// @Tags Reports
// @Produce json
// @Param id path string true "Job ID"
// @Param userId query string false "Requesting user ID"
// @Success 200 {object} response.Envelope
// @Router /reports/{id} [get]
func (h *ReportHandler) Status(c *gin.Context) {
	resp, err := h.reports.GetStatus(c.Request.Context(), c.Param("id"), c.Query("userId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}

// Download godoc
// @Summary Download a finished report via signed token
// @Tags Reports
// @Produce octet-stream
// @Param token path string true "Download token"
// @Success 200 {file} binary
// @Router /export/{token} [get]
func (h *ReportHandler) Download(c *gin.Context) {
	download, err := h.reports.ResolveDownload(c.Request.Context(), c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer download.File.Close()

	contentType := "application/octet-stream"
	switch download.Format {
	case models.ReportFormatCSV:
		contentType = "text/csv"
	case models.ReportFormatPDF:
		contentType = "application/pdf"
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", download.Filename))
	c.Header("Content-Type", contentType)
	c.File(download.File.Name())
}
