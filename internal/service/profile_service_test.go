package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/skill-exchange-api/internal/dto"
	"github.com/noah-isme/skill-exchange-api/internal/models"
	appErrors "github.com/noah-isme/skill-exchange-api/pkg/errors"
)

type profileRepoStub struct {
	profiles map[string]*models.Profile
	failWith error
}

func newProfileRepoStub() *profileRepoStub {
	return &profileRepoStub{profiles: map[string]*models.Profile{}}
}

func (r *profileRepoStub) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	profile, ok := r.profiles[userID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return profile, nil
}

func (r *profileRepoStub) Upsert(ctx context.Context, profile *models.Profile) error {
	if r.failWith != nil {
		return r.failWith
	}
	r.profiles[profile.UserID] = profile
	return nil
}

func (r *profileRepoStub) Delete(ctx context.Context, userID string) error {
	if r.failWith != nil {
		return r.failWith
	}
	delete(r.profiles, userID)
	return nil
}

func (r *profileRepoStub) List(ctx context.Context, filter models.ProfileFilter) ([]models.Profile, int, error) {
	if r.failWith != nil {
		return nil, 0, r.failWith
	}
	out := make([]models.Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		out = append(out, *p)
	}
	return out, len(out), nil
}

func newProfileServiceForTest(repo *profileRepoStub) *ProfileService {
	return NewProfileService(repo, nil, nil, 0, zap.NewNop())
}

func validSubmitRequest() dto.SubmitProfileRequest {
	return dto.SubmitProfileRequest{
		CanTeach: []dto.SkillToTeachInput{
			{Skill: "Guitar", Proficiency: "advanced", Description: "ten years of play"},
		},
		WantToLearn: []dto.SkillToLearnInput{
			{Skill: "Python", Priority: "high", Reason: "career switch"},
		},
		Availability: dto.AvailabilityInput{
			Days:      []string{"monday", "wednesday"},
			TimeSlots: []string{"evening"},
		},
	}
}

func TestProfileServiceSubmit(t *testing.T) {
	repo := newProfileRepoStub()
	svc := newProfileServiceForTest(repo)

	profile, err := svc.Submit(context.Background(), "user-1", validSubmitRequest())
	require.NoError(t, err)
	assert.Equal(t, "user-1", profile.UserID)
	require.Len(t, profile.CanTeach, 1)
	assert.Equal(t, models.ProficiencyAdvanced, profile.CanTeach[0].Proficiency)
	assert.Contains(t, repo.profiles, "user-1")
}

func TestProfileServiceSubmitTrimsSkillNames(t *testing.T) {
	repo := newProfileRepoStub()
	svc := newProfileServiceForTest(repo)

	req := validSubmitRequest()
	req.WantToLearn[0].Skill = "  Python  "
	profile, err := svc.Submit(context.Background(), "user-1", req)
	require.NoError(t, err)
	assert.Equal(t, "Python", profile.WantToLearn[0].Skill)
}

func TestProfileServiceSubmitRejectsInvalidEnum(t *testing.T) {
	svc := newProfileServiceForTest(newProfileRepoStub())

	req := validSubmitRequest()
	req.CanTeach[0].Proficiency = "grandmaster"
	_, err := svc.Submit(context.Background(), "user-1", req)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestProfileServiceSubmitRejectsDuplicateSkills(t *testing.T) {
	svc := newProfileServiceForTest(newProfileRepoStub())

	req := validSubmitRequest()
	req.WantToLearn = append(req.WantToLearn, dto.SkillToLearnInput{Skill: "python", Priority: "low"})
	_, err := svc.Submit(context.Background(), "user-1", req)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestProfileServiceSubmitReplacesWholesale(t *testing.T) {
	repo := newProfileRepoStub()
	svc := newProfileServiceForTest(repo)

	_, err := svc.Submit(context.Background(), "user-1", validSubmitRequest())
	require.NoError(t, err)

	second := dto.SubmitProfileRequest{
		WantToLearn: []dto.SkillToLearnInput{{Skill: "Chess", Priority: "medium"}},
	}
	profile, err := svc.Submit(context.Background(), "user-1", second)
	require.NoError(t, err)
	assert.Empty(t, profile.CanTeach)
	require.Len(t, profile.WantToLearn, 1)
	assert.Equal(t, "Chess", profile.WantToLearn[0].Skill)
}

func TestProfileServiceGetMissing(t *testing.T) {
	svc := newProfileServiceForTest(newProfileRepoStub())
	_, err := svc.Get(context.Background(), "ghost")
	require.ErrorIs(t, err, appErrors.ErrProfileNotFound)
}

func TestProfileServiceGetStorageFailure(t *testing.T) {
	repo := newProfileRepoStub()
	repo.failWith = sql.ErrConnDone
	svc := newProfileServiceForTest(repo)

	_, err := svc.Get(context.Background(), "user-1")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrStorageUnavailable.Code, appErr.Code)
}

func TestProfileServiceDelete(t *testing.T) {
	repo := newProfileRepoStub()
	repo.profiles["user-1"] = &models.Profile{UserID: "user-1"}
	svc := newProfileServiceForTest(repo)

	require.NoError(t, svc.Delete(context.Background(), "user-1"))
	assert.NotContains(t, repo.profiles, "user-1")

	err := svc.Delete(context.Background(), "user-1")
	require.ErrorIs(t, err, appErrors.ErrProfileNotFound)
}

func TestProfileServiceList(t *testing.T) {
	repo := newProfileRepoStub()
	repo.profiles["user-1"] = &models.Profile{UserID: "user-1"}
	repo.profiles["user-2"] = &models.Profile{UserID: "user-2"}
	svc := newProfileServiceForTest(repo)

	profiles, pagination, err := svc.List(context.Background(), models.ProfileFilter{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Len(t, profiles, 2)
	assert.Equal(t, 2, pagination.TotalCount)
}
