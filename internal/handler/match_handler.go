package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/skill-exchange-api/internal/dto"
	"github.com/noah-isme/skill-exchange-api/pkg/response"
)

type matchService interface {
	FindMatches(ctx context.Context, userID string) (*dto.MatchListResponse, error)
	FindMatchesForSkill(ctx context.Context, userID, skill string) (*dto.MatchGroupResponse, error)
}

// MatchHandler exposes match computation endpoints.
type MatchHandler struct {
	matches matchService
}

// NewMatchHandler constructs handler.
func NewMatchHandler(matches matchService) *MatchHandler {
	return &MatchHandler{matches: matches}
}

// ListMatches godoc
// @Summary Ranked teacher matches for every requested skill
// @Tags Matches
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} response.Envelope
// @Router /skills/{userId}/matches [get]
func (h *MatchHandler) ListMatches(c *gin.Context) {
	resp, err := h.matches.FindMatches(c.Request.Context(), c.Param("userId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}

// MatchesForSkill godoc
// @Summary Ranked teacher matches for one requested skill
// @Tags Matches
// @Produce json
// @Param userId path string true "User ID"
// @Param skill path string true "Skill name"
// @Success 200 {object} response.Envelope
// @Router /skills/{userId}/matches/{skill} [get]
func (h *MatchHandler) MatchesForSkill(c *gin.Context) {
	group, err := h.matches.FindMatchesForSkill(c.Request.Context(), c.Param("userId"), c.Param("skill"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, group, nil)
}
