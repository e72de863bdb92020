package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/skill-exchange-api/internal/dto"
	"github.com/noah-isme/skill-exchange-api/internal/models"
	appErrors "github.com/noah-isme/skill-exchange-api/pkg/errors"
)

type profileRepository interface {
	GetProfile(ctx context.Context, userID string) (*models.Profile, error)
	Upsert(ctx context.Context, profile *models.Profile) error
	Delete(ctx context.Context, userID string) error
	List(ctx context.Context, filter models.ProfileFilter) ([]models.Profile, int, error)
}

// ProfileService handles skill profile use-cases.
type ProfileService struct {
	repo      profileRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
	cacheTTL  time.Duration
}

// NewProfileService constructs the profile service.
func NewProfileService(repo profileRepository, cache *CacheService, validate *validator.Validate, cacheTTL time.Duration, logger *zap.Logger) *ProfileService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileService{repo: repo, cache: cache, validator: validate, logger: logger, cacheTTL: cacheTTL}
}

func profileCacheKey(userID string) string {
	return fmt.Sprintf("profile:%s", userID)
}

// Submit replaces the user's stored profile with the submitted one.
func (s *ProfileService) Submit(ctx context.Context, userID string, req dto.SubmitProfileRequest) (*models.Profile, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "userId is required")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid profile payload")
	}
	profile, err := buildProfile(userID, req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Upsert(ctx, profile); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorageUnavailable.Code, appErrors.ErrStorageUnavailable.Status, "failed to store profile")
	}
	if s.cache.Enabled() {
		_ = s.cache.Invalidate(ctx, profileCacheKey(userID))
	}
	return profile, nil
}

// Get loads one profile, consulting the cache first when enabled.
func (s *ProfileService) Get(ctx context.Context, userID string) (*models.Profile, error) {
	key := profileCacheKey(userID)
	if s.cache.Enabled() {
		var cached models.Profile
		if hit, _ := s.cache.Get(ctx, key, &cached); hit {
			return &cached, nil
		}
	}
	profile, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.ErrProfileNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStorageUnavailable.Code, appErrors.ErrStorageUnavailable.Status, "failed to load profile")
	}
	if s.cache.Enabled() {
		_ = s.cache.Set(ctx, key, profile, s.cacheTTL)
	}
	return profile, nil
}

// Delete removes a profile and its cached copy.
func (s *ProfileService) Delete(ctx context.Context, userID string) error {
	if _, err := s.repo.GetProfile(ctx, userID); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.ErrProfileNotFound
		}
		return appErrors.Wrap(err, appErrors.ErrStorageUnavailable.Code, appErrors.ErrStorageUnavailable.Status, "failed to load profile")
	}
	if err := s.repo.Delete(ctx, userID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrStorageUnavailable.Code, appErrors.ErrStorageUnavailable.Status, "failed to delete profile")
	}
	if s.cache.Enabled() {
		_ = s.cache.Invalidate(ctx, profileCacheKey(userID))
	}
	return nil
}

// List returns profiles and pagination metadata.
func (s *ProfileService) List(ctx context.Context, filter models.ProfileFilter) ([]models.Profile, *models.Pagination, error) {
	profiles, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrStorageUnavailable.Code, appErrors.ErrStorageUnavailable.Status, "failed to list profiles")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}
	pagination := &models.Pagination{Page: page, PageSize: size, TotalCount: total}
	return profiles, pagination, nil
}

func buildProfile(userID string, req dto.SubmitProfileRequest) (*models.Profile, error) {
	teach := make([]models.SkillToTeach, 0, len(req.CanTeach))
	seenTeach := make(map[string]struct{}, len(req.CanTeach))
	for _, entry := range req.CanTeach {
		skill := strings.TrimSpace(entry.Skill)
		if skill == "" {
			return nil, appErrors.Clone(appErrors.ErrValidation, "canTeach entries require a skill name")
		}
		key := models.NormalizeSkill(skill)
		if _, dup := seenTeach[key]; dup {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("duplicate teaching skill %q", skill))
		}
		seenTeach[key] = struct{}{}
		teach = append(teach, models.SkillToTeach{
			Skill:       skill,
			Proficiency: models.Proficiency(entry.Proficiency),
			Description: strings.TrimSpace(entry.Description),
		})
	}

	learn := make([]models.SkillToLearn, 0, len(req.WantToLearn))
	seenLearn := make(map[string]struct{}, len(req.WantToLearn))
	for _, entry := range req.WantToLearn {
		skill := strings.TrimSpace(entry.Skill)
		if skill == "" {
			return nil, appErrors.Clone(appErrors.ErrValidation, "wantToLearn entries require a skill name")
		}
		key := models.NormalizeSkill(skill)
		if _, dup := seenLearn[key]; dup {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("duplicate learning skill %q", skill))
		}
		seenLearn[key] = struct{}{}
		learn = append(learn, models.SkillToLearn{
			Skill:    skill,
			Priority: models.Priority(entry.Priority),
			Reason:   strings.TrimSpace(entry.Reason),
		})
	}

	return &models.Profile{
		UserID:      userID,
		CanTeach:    teach,
		WantToLearn: learn,
		Availability: models.Availability{
			Days:      trimAll(req.Availability.Days),
			TimeSlots: trimAll(req.Availability.TimeSlots),
		},
	}, nil
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}
