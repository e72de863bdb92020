package matching

import (
	"sort"
	"strings"

	"github.com/noah-isme/skill-exchange-api/internal/models"
)

const defaultMaxPerSkill = 10

// Aggregator applies the ranking, deduplication and capping policy to raw
// match candidates.
type Aggregator struct {
	maxPerSkill int
}

// NewAggregator builds an aggregator. A cap of zero or less falls back to the
// default of 10 candidates per skill group.
func NewAggregator(maxPerSkill int) *Aggregator {
	if maxPerSkill <= 0 {
		maxPerSkill = defaultMaxPerSkill
	}
	return &Aggregator{maxPerSkill: maxPerSkill}
}

// Group buckets candidates by skill in the seeker's wantToLearn order, ranks
// each bucket by score descending with teacherId ascending as tie-break,
// keeps only the best entry per teacher, and caps the bucket size. Skills the
// seeker requested but nobody teaches yield an empty group, not an error.
func (a *Aggregator) Group(seeker *models.Profile, candidates []models.MatchCandidate) []models.MatchGroup {
	buckets := make(map[string][]models.MatchCandidate)
	for _, candidate := range candidates {
		key := models.NormalizeSkill(candidate.Skill)
		buckets[key] = append(buckets[key], candidate)
	}

	groups := make([]models.MatchGroup, 0, len(seeker.WantToLearn))
	emitted := make(map[string]bool)
	for _, entry := range seeker.WantToLearn {
		key := models.NormalizeSkill(entry.Skill)
		if key == "" || emitted[key] {
			continue
		}
		emitted[key] = true
		groups = append(groups, models.MatchGroup{
			Skill:      strings.TrimSpace(entry.Skill),
			Candidates: a.rank(buckets[key]),
		})
	}
	return groups
}

// rank sorts, deduplicates and caps one skill bucket. Sorting is never left
// to insertion order: store iteration order is not guaranteed stable.
func (a *Aggregator) rank(bucket []models.MatchCandidate) []models.MatchCandidate {
	if len(bucket) == 0 {
		return []models.MatchCandidate{}
	}

	sort.SliceStable(bucket, func(i, j int) bool {
		if bucket[i].Score != bucket[j].Score {
			return bucket[i].Score > bucket[j].Score
		}
		return bucket[i].TeacherID < bucket[j].TeacherID
	})

	// The profile invariant forbids duplicate skills per teacher; keep only
	// the highest-scoring entry anyway in case a store violates it.
	seen := make(map[string]bool, len(bucket))
	ranked := make([]models.MatchCandidate, 0, len(bucket))
	for _, candidate := range bucket {
		if seen[candidate.TeacherID] {
			continue
		}
		seen[candidate.TeacherID] = true
		ranked = append(ranked, candidate)
		if len(ranked) == a.maxPerSkill {
			break
		}
	}
	return ranked
}

// Flatten concatenates group candidates preserving group order.
func Flatten(groups []models.MatchGroup) []models.MatchCandidate {
	out := make([]models.MatchCandidate, 0)
	for _, group := range groups {
		out = append(out, group.Candidates...)
	}
	return out
}
