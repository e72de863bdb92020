package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/skill-exchange-api/internal/matching"
	"github.com/noah-isme/skill-exchange-api/internal/models"
	appErrors "github.com/noah-isme/skill-exchange-api/pkg/errors"
)

type matchRepoStub struct {
	profiles map[string]*models.Profile
	failWith error
}

func (r *matchRepoStub) GetAllProfiles(ctx context.Context) ([]models.Profile, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	out := make([]models.Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		out = append(out, *p)
	}
	return out, nil
}

func (r *matchRepoStub) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	profile, ok := r.profiles[userID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return profile, nil
}

func newMatchServiceForTest(repo *matchRepoStub) *MatchService {
	return NewMatchService(repo, matching.EngineConfig{}, nil, zap.NewNop())
}

func matchFixtures() *matchRepoStub {
	return &matchRepoStub{profiles: map[string]*models.Profile{
		"seeker-1": {
			UserID: "seeker-1",
			WantToLearn: []models.SkillToLearn{
				{Skill: "Guitar", Priority: models.PriorityHigh},
			},
			Availability: models.Availability{Days: []string{"monday"}, TimeSlots: []string{"evening"}},
		},
		"teacher-a": {
			UserID: "teacher-a",
			CanTeach: []models.SkillToTeach{
				{Skill: "Guitar", Proficiency: models.ProficiencyAdvanced},
			},
			Availability: models.Availability{Days: []string{"monday"}, TimeSlots: []string{"evening"}},
		},
	}}
}

func TestMatchServiceFindMatches(t *testing.T) {
	svc := newMatchServiceForTest(matchFixtures())

	resp, err := svc.FindMatches(context.Background(), "seeker-1")
	require.NoError(t, err)
	assert.Equal(t, "seeker-1", resp.UserID)
	require.Len(t, resp.Groups, 1)
	require.Len(t, resp.Groups[0].Candidates, 1)
	assert.Equal(t, "teacher-a", resp.Groups[0].Candidates[0].TeacherID)
	assert.InDelta(t, 1.0, resp.Groups[0].Candidates[0].Score, 1e-9)
}

func TestMatchServiceFindMatchesForSkill(t *testing.T) {
	svc := newMatchServiceForTest(matchFixtures())

	group, err := svc.FindMatchesForSkill(context.Background(), "seeker-1", "guitar")
	require.NoError(t, err)
	assert.Equal(t, "Guitar", group.Skill)
	require.Len(t, group.Candidates, 1)
}

func TestMatchServiceMissingSeeker(t *testing.T) {
	svc := newMatchServiceForTest(matchFixtures())

	_, err := svc.FindMatches(context.Background(), "ghost")
	require.ErrorIs(t, err, appErrors.ErrProfileNotFound)
}

func TestMatchServiceSkillNotRequested(t *testing.T) {
	svc := newMatchServiceForTest(matchFixtures())

	_, err := svc.FindMatchesForSkill(context.Background(), "seeker-1", "Piano")
	require.ErrorIs(t, err, appErrors.ErrSkillNotRequested)
}

func TestMatchServiceStorageFailure(t *testing.T) {
	repo := matchFixtures()
	repo.failWith = errors.New("connection refused")
	svc := newMatchServiceForTest(repo)

	_, err := svc.FindMatches(context.Background(), "seeker-1")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrStorageUnavailable.Code, appErr.Code)
}
