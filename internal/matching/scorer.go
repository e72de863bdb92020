package matching

import (
	"github.com/noah-isme/skill-exchange-api/internal/models"
)

// Default weight tables. Priority drives ranking weight, proficiency drives
// quality weight; the final score is their product, giving values in [0, 1].
var (
	priorityWeights = map[models.Priority]float64{
		models.PriorityLow:    0.3,
		models.PriorityMedium: 0.6,
		models.PriorityHigh:   1.0,
	}
	proficiencyMultipliers = map[models.Proficiency]float64{
		models.ProficiencyBeginner:     0.5,
		models.ProficiencyIntermediate: 0.75,
		models.ProficiencyAdvanced:     1.0,
	}
)

// ScorerConfig tunes the fallback policy for enum values the upstream
// validation did not catch. Zero values keep the lenient default of treating
// unknown tiers as the lowest recognised weight.
type ScorerConfig struct {
	UnknownPriorityWeight    float64
	UnknownProficiencyWeight float64
	RejectUnknown            bool
}

// Scorer computes compatibility between a learn entry and a teach entry for
// the same skill. Scoring is pure: no side effects, deterministic per input.
type Scorer struct {
	unknownPriority    float64
	unknownProficiency float64
	rejectUnknown      bool
}

// NewScorer builds a scorer with sane fallbacks.
func NewScorer(cfg ScorerConfig) *Scorer {
	unknownPriority := cfg.UnknownPriorityWeight
	if unknownPriority <= 0 {
		unknownPriority = priorityWeights[models.PriorityLow]
	}
	unknownProficiency := cfg.UnknownProficiencyWeight
	if unknownProficiency <= 0 {
		unknownProficiency = proficiencyMultipliers[models.ProficiencyBeginner]
	}
	return &Scorer{
		unknownPriority:    unknownPriority,
		unknownProficiency: unknownProficiency,
		rejectUnknown:      cfg.RejectUnknown,
	}
}

// Score returns the compatibility score for a skill pairing. The caller must
// have already established that both entries denote the same skill. The
// second return value is false only when RejectUnknown is set and either enum
// is unrecognised.
func (s *Scorer) Score(learn models.SkillToLearn, teach models.SkillToTeach) (float64, bool) {
	priority, priorityKnown := priorityWeights[learn.Priority]
	if !priorityKnown {
		if s.rejectUnknown {
			return 0, false
		}
		priority = s.unknownPriority
	}

	multiplier, proficiencyKnown := proficiencyMultipliers[teach.Proficiency]
	if !proficiencyKnown {
		if s.rejectUnknown {
			return 0, false
		}
		multiplier = s.unknownProficiency
	}

	return priority * multiplier, true
}
