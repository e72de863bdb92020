package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// ReportFormat enumerates supported export formats.
type ReportFormat string

const (
	ReportFormatCSV ReportFormat = "csv"
	ReportFormatPDF ReportFormat = "pdf"
)

// ReportStatus captures background job lifecycle states.
type ReportStatus string

const (
	ReportStatusQueued     ReportStatus = "QUEUED"
	ReportStatusProcessing ReportStatus = "PROCESSING"
	ReportStatusFinished   ReportStatus = "FINISHED"
	ReportStatusFailed     ReportStatus = "FAILED"
)

// MatchReportJob is persisted metadata for an asynchronous match report export.
type MatchReportJob struct {
	ID           string               `db:"id" json:"id"`
	SeekerID     string               `db:"seeker_id" json:"seeker_id"`
	Params       MatchReportJobParams `db:"params" json:"params"`
	Status       ReportStatus         `db:"status" json:"status"`
	Progress     int                  `db:"progress" json:"progress"`
	ResultURL    *string              `db:"result_url" json:"result_url,omitempty"`
	CreatedAt    time.Time            `db:"created_at" json:"created_at"`
	FinishedAt   *time.Time           `db:"finished_at" json:"finished_at,omitempty"`
	ErrorMessage *string              `db:"error_message" json:"error_message,omitempty"`
}

// MatchReportJobParams stores request-scoped options persisted as JSONB.
// Skill narrows the report to one requested skill; empty means all.
type MatchReportJobParams struct {
	Skill  string       `json:"skill,omitempty"`
	Format ReportFormat `json:"format"`
}

// Value marshals params to JSON for persistence.
func (p MatchReportJobParams) Value() (driver.Value, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal match report params: %w", err)
	}
	return data, nil
}

// Scan unmarshals JSON payloads into the params struct.
func (p *MatchReportJobParams) Scan(value interface{}) error {
	if value == nil {
		*p = MatchReportJobParams{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for MatchReportJobParams", value)
	}
	if len(data) == 0 {
		*p = MatchReportJobParams{}
		return nil
	}
	if err := json.Unmarshal(data, p); err != nil {
		return fmt.Errorf("unmarshal match report params: %w", err)
	}
	return nil
}
