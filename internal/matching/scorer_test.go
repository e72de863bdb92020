package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/skill-exchange-api/internal/models"
)

func TestScorerWeightGrid(t *testing.T) {
	scorer := NewScorer(ScorerConfig{})

	cases := []struct {
		priority    models.Priority
		proficiency models.Proficiency
		expected    float64
	}{
		{models.PriorityLow, models.ProficiencyBeginner, 0.15},
		{models.PriorityLow, models.ProficiencyIntermediate, 0.225},
		{models.PriorityLow, models.ProficiencyAdvanced, 0.3},
		{models.PriorityMedium, models.ProficiencyBeginner, 0.3},
		{models.PriorityMedium, models.ProficiencyIntermediate, 0.45},
		{models.PriorityMedium, models.ProficiencyAdvanced, 0.6},
		{models.PriorityHigh, models.ProficiencyBeginner, 0.5},
		{models.PriorityHigh, models.ProficiencyIntermediate, 0.75},
		{models.PriorityHigh, models.ProficiencyAdvanced, 1.0},
	}

	for _, tc := range cases {
		score, ok := scorer.Score(
			models.SkillToLearn{Skill: "guitar", Priority: tc.priority},
			models.SkillToTeach{Skill: "guitar", Proficiency: tc.proficiency},
		)
		require.True(t, ok)
		assert.InDelta(t, tc.expected, score, 1e-9, "priority=%s proficiency=%s", tc.priority, tc.proficiency)
	}
}

func TestScorerProficiencyMonotonic(t *testing.T) {
	scorer := NewScorer(ScorerConfig{})
	for _, priority := range []models.Priority{models.PriorityLow, models.PriorityMedium, models.PriorityHigh} {
		learn := models.SkillToLearn{Skill: "piano", Priority: priority}
		beginner, _ := scorer.Score(learn, models.SkillToTeach{Skill: "piano", Proficiency: models.ProficiencyBeginner})
		intermediate, _ := scorer.Score(learn, models.SkillToTeach{Skill: "piano", Proficiency: models.ProficiencyIntermediate})
		advanced, _ := scorer.Score(learn, models.SkillToTeach{Skill: "piano", Proficiency: models.ProficiencyAdvanced})
		assert.LessOrEqual(t, beginner, intermediate)
		assert.LessOrEqual(t, intermediate, advanced)
	}
}

func TestScorerPriorityMonotonic(t *testing.T) {
	scorer := NewScorer(ScorerConfig{})
	for _, proficiency := range []models.Proficiency{models.ProficiencyBeginner, models.ProficiencyIntermediate, models.ProficiencyAdvanced} {
		teach := models.SkillToTeach{Skill: "piano", Proficiency: proficiency}
		low, _ := scorer.Score(models.SkillToLearn{Skill: "piano", Priority: models.PriorityLow}, teach)
		high, _ := scorer.Score(models.SkillToLearn{Skill: "piano", Priority: models.PriorityHigh}, teach)
		assert.LessOrEqual(t, low, high)
	}
}

func TestScorerUnknownTiersFallBackToLowest(t *testing.T) {
	scorer := NewScorer(ScorerConfig{})

	score, ok := scorer.Score(
		models.SkillToLearn{Skill: "chess", Priority: "urgent"},
		models.SkillToTeach{Skill: "chess", Proficiency: "grandmaster"},
	)
	require.True(t, ok)
	assert.InDelta(t, 0.15, score, 1e-9)
}

func TestScorerRejectUnknownPolicy(t *testing.T) {
	scorer := NewScorer(ScorerConfig{RejectUnknown: true})

	_, ok := scorer.Score(
		models.SkillToLearn{Skill: "chess", Priority: "urgent"},
		models.SkillToTeach{Skill: "chess", Proficiency: models.ProficiencyAdvanced},
	)
	assert.False(t, ok)

	score, ok := scorer.Score(
		models.SkillToLearn{Skill: "chess", Priority: models.PriorityHigh},
		models.SkillToTeach{Skill: "chess", Proficiency: models.ProficiencyAdvanced},
	)
	require.True(t, ok)
	assert.InDelta(t, 1.0, score, 1e-9)
}
