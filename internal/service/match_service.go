package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/skill-exchange-api/internal/dto"
	"github.com/noah-isme/skill-exchange-api/internal/matching"
	"github.com/noah-isme/skill-exchange-api/internal/models"
	appErrors "github.com/noah-isme/skill-exchange-api/pkg/errors"
)

type matchProfileRepository interface {
	GetAllProfiles(ctx context.Context) ([]models.Profile, error)
	GetProfile(ctx context.Context, userID string) (*models.Profile, error)
}

// profileSourceAdapter bridges the SQL repository to the engine contract:
// the engine expects (nil, nil) for a missing profile, not sql.ErrNoRows.
type profileSourceAdapter struct {
	repo matchProfileRepository
}

func (a profileSourceAdapter) GetAllProfiles(ctx context.Context) ([]models.Profile, error) {
	return a.repo.GetAllProfiles(ctx)
}

func (a profileSourceAdapter) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	profile, err := a.repo.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return profile, nil
}

// MatchService computes ranked teacher matches for skill seekers.
type MatchService struct {
	engine  *matching.Engine
	metrics *MetricsService
	logger  *zap.Logger
}

// NewMatchService wires the engine against the profile repository.
func NewMatchService(repo matchProfileRepository, cfg matching.EngineConfig, metrics *MetricsService, logger *zap.Logger) *MatchService {
	if logger == nil {
		logger = zap.NewNop()
	}
	engine := matching.NewEngine(profileSourceAdapter{repo: repo}, cfg)
	return &MatchService{engine: engine, metrics: metrics, logger: logger}
}

// FindMatches returns ranked candidate groups for every requested skill.
func (s *MatchService) FindMatches(ctx context.Context, userID string) (*dto.MatchListResponse, error) {
	start := time.Now()
	groups, err := s.engine.FindMatches(ctx, userID)
	if err != nil {
		s.observe("error", -1, start)
		return nil, s.mapEngineError(err, userID)
	}
	resp := &dto.MatchListResponse{UserID: userID, Groups: make([]dto.MatchGroupResponse, 0, len(groups))}
	for _, group := range groups {
		resp.Groups = append(resp.Groups, dto.MatchGroupResponse{Skill: group.Skill, Candidates: group.Candidates})
	}
	s.observe("ok", len(matching.Flatten(groups)), start)
	return resp, nil
}

// FindMatchesForSkill returns the ranked candidates for one requested skill.
func (s *MatchService) FindMatchesForSkill(ctx context.Context, userID, skill string) (*dto.MatchGroupResponse, error) {
	start := time.Now()
	group, err := s.engine.FindMatchesForSkill(ctx, userID, skill)
	if err != nil {
		s.observe("error", -1, start)
		return nil, s.mapEngineError(err, userID)
	}
	s.observe("ok", len(group.Candidates), start)
	return &dto.MatchGroupResponse{Skill: group.Skill, Candidates: group.Candidates}, nil
}

func (s *MatchService) observe(outcome string, candidates int, start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveMatch(outcome, candidates, time.Since(start))
	}
}

func (s *MatchService) mapEngineError(err error, userID string) error {
	switch {
	case errors.Is(err, matching.ErrProfileNotFound):
		return appErrors.ErrProfileNotFound
	case errors.Is(err, matching.ErrSkillNotRequested):
		return appErrors.ErrSkillNotRequested
	default:
		s.logger.Error("match computation failed", zap.String("user_id", userID), zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrStorageUnavailable.Code, appErrors.ErrStorageUnavailable.Status, "failed to scan candidate profiles")
	}
}
