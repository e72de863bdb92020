package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/skill-exchange-api/internal/dto"
	"github.com/noah-isme/skill-exchange-api/internal/models"
	appErrors "github.com/noah-isme/skill-exchange-api/pkg/errors"
	"github.com/noah-isme/skill-exchange-api/pkg/response"
)

type profileService interface {
	Submit(ctx context.Context, userID string, req dto.SubmitProfileRequest) (*models.Profile, error)
	Get(ctx context.Context, userID string) (*models.Profile, error)
	Delete(ctx context.Context, userID string) error
	List(ctx context.Context, filter models.ProfileFilter) ([]models.Profile, *models.Pagination, error)
}

// ProfileHandler exposes skill profile endpoints.
type ProfileHandler struct {
	profiles profileService
}

// NewProfileHandler constructs handler.
func NewProfileHandler(profiles profileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// Submit godoc
// @Summary Submit or replace a skill profile
// @Tags Skills
// @Accept json
// @Produce json
// @Param userId path string true "User ID"
// @Param payload body dto.SubmitProfileRequest true "Profile payload"
// @Success 200 {object} response.Envelope
// @Router /skills/{userId} [put]
func (h *ProfileHandler) Submit(c *gin.Context) {
	var req dto.SubmitProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	profile, err := h.profiles.Submit(c.Request.Context(), c.Param("userId"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, toProfileResponse(profile), nil)
}

// Get godoc
// @Summary Fetch a skill profile
// @Tags Skills
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} response.Envelope
// @Router /skills/{userId} [get]
func (h *ProfileHandler) Get(c *gin.Context) {
	profile, err := h.profiles.Get(c.Request.Context(), c.Param("userId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, toProfileResponse(profile), nil)
}

// Delete godoc
// @Summary Remove a skill profile
// @Tags Skills
// @Produce json
// @Param userId path string true "User ID"
// @Success 204
// @Router /skills/{userId} [delete]
func (h *ProfileHandler) Delete(c *gin.Context) {
	if err := h.profiles.Delete(c.Request.Context(), c.Param("userId")); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// List godoc
// @Summary List skill profiles
// @Tags Skills
// @Produce json
// @Param search query string false "Search term"
// @Param page query int false "Page"
// @Param pageSize query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /skills [get]
func (h *ProfileHandler) List(c *gin.Context) {
	var query dto.ProfileListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid query parameters"))
		return
	}
	profiles, pagination, err := h.profiles.List(c.Request.Context(), models.ProfileFilter{
		Search:   query.Search,
		Page:     query.Page,
		PageSize: query.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	items := make([]dto.ProfileResponse, 0, len(profiles))
	for i := range profiles {
		items = append(items, toProfileResponse(&profiles[i]))
	}
	response.JSON(c, http.StatusOK, items, pagination)
}

func toProfileResponse(profile *models.Profile) dto.ProfileResponse {
	return dto.ProfileResponse{
		UserID:       profile.UserID,
		CanTeach:     profile.CanTeach,
		WantToLearn:  profile.WantToLearn,
		Availability: profile.Availability,
		UpdatedAt:    profile.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
