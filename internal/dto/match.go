package dto

import "github.com/noah-isme/skill-exchange-api/internal/models"

// MatchGroupResponse holds ranked candidates for one requested skill.
type MatchGroupResponse struct {
	Skill      string                  `json:"skill"`
	Candidates []models.MatchCandidate `json:"candidates"`
}

// MatchListResponse is the GET /skills/:userId/matches payload.
type MatchListResponse struct {
	UserID string               `json:"userId"`
	Groups []MatchGroupResponse `json:"groups"`
}

// MatchQuery captures optional per-request tuning parameters.
type MatchQuery struct {
	Limit int `form:"limit"`
}
