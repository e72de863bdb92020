package matching

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/noah-isme/skill-exchange-api/internal/models"
)

// Sentinel errors surfaced to callers. Store failures are wrapped instead so
// the transport layer can distinguish usage errors from unavailability.
var (
	ErrProfileNotFound   = errors.New("seeker has no skill profile")
	ErrSkillNotRequested = errors.New("skill is not in the seeker's learn list")
)

// ProfileSource supplies the point-in-time profile snapshot the engine works
// on. Read-only: the engine never mutates profiles and never retries a failed
// fetch, retry policy belongs to the caller.
type ProfileSource interface {
	GetAllProfiles(ctx context.Context) ([]models.Profile, error)
	GetProfile(ctx context.Context, userID string) (*models.Profile, error)
}

// EngineConfig tunes aggregation and scan behaviour.
type EngineConfig struct {
	MaxPerSkill int
	ScanWorkers int
	Scorer      ScorerConfig
}

// Engine pairs seekers with teacher candidates. It is stateless across calls
// and safe for concurrent use; every query re-derives its result from the
// profile source.
type Engine struct {
	source     ProfileSource
	scorer     *Scorer
	aggregator *Aggregator
	workers    int
}

// NewEngine constructs an engine over the given profile source.
func NewEngine(source ProfileSource, cfg EngineConfig) *Engine {
	workers := cfg.ScanWorkers
	if workers <= 0 {
		workers = 4
	}
	return &Engine{
		source:     source,
		scorer:     NewScorer(cfg.Scorer),
		aggregator: NewAggregator(cfg.MaxPerSkill),
		workers:    workers,
	}
}

// FindMatches returns ranked candidate groups for every skill the seeker
// wants to learn, in the seeker's original wantToLearn order.
func (e *Engine) FindMatches(ctx context.Context, seekerID string) ([]models.MatchGroup, error) {
	seeker, candidates, err := e.scan(ctx, seekerID, "")
	if err != nil {
		return nil, err
	}
	return e.aggregator.Group(seeker, candidates), nil
}

// FindMatchesForSkill restricts the query to a single skill. The skill must
// appear in the seeker's learn list.
func (e *Engine) FindMatchesForSkill(ctx context.Context, seekerID, skill string) (*models.MatchGroup, error) {
	key := models.NormalizeSkill(skill)
	if key == "" {
		return nil, ErrSkillNotRequested
	}

	seeker, candidates, err := e.scan(ctx, seekerID, key)
	if err != nil {
		return nil, err
	}
	if !seeker.WantsSkill(skill) {
		return nil, ErrSkillNotRequested
	}

	groups := e.aggregator.Group(seeker, candidates)
	for i := range groups {
		if models.NormalizeSkill(groups[i].Skill) == key {
			return &groups[i], nil
		}
	}
	return &models.MatchGroup{Skill: strings.TrimSpace(skill), Candidates: []models.MatchCandidate{}}, nil
}

// scan loads the snapshot and scores every candidate profile. The per-profile
// work is pure, so it is fanned out across a bounded worker set; results keep
// the profile index, making the merge deterministic regardless of completion
// order.
func (e *Engine) scan(ctx context.Context, seekerID, skillKey string) (*models.Profile, []models.MatchCandidate, error) {
	seeker, err := e.source.GetProfile(ctx, seekerID)
	if err != nil {
		return nil, nil, fmt.Errorf("load seeker profile: %w", err)
	}
	if seeker == nil {
		return nil, nil, ErrProfileNotFound
	}
	if len(seeker.WantToLearn) == 0 {
		return seeker, nil, nil
	}

	profiles, err := e.source.GetAllProfiles(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load profiles: %w", err)
	}

	others := make([]models.Profile, 0, len(profiles))
	for _, profile := range profiles {
		if profile.UserID == seekerID {
			continue
		}
		// Skill-scoped queries only ever score teachers of that skill, so
		// the rest of the pool is filtered out before the fan-out.
		if skillKey != "" && !profile.TeachesSkill(skillKey) {
			continue
		}
		others = append(others, profile)
	}
	if len(others) == 0 {
		return seeker, nil, nil
	}

	perProfile := make([][]models.MatchCandidate, len(others))
	indexes := make(chan int)
	var wg sync.WaitGroup

	workers := e.workers
	if workers > len(others) {
		workers = len(others)
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				perProfile[i] = e.candidatesFor(seeker, &others[i], skillKey)
			}
		}()
	}
	for i := range others {
		indexes <- i
	}
	close(indexes)
	wg.Wait()

	candidates := make([]models.MatchCandidate, 0)
	for _, batch := range perProfile {
		candidates = append(candidates, batch...)
	}
	return seeker, candidates, nil
}

// candidatesFor emits one candidate per (wantToLearn, canTeach) skill match
// between the seeker and a single teacher profile. Availability overlap is
// computed once per pair and shared across that pair's candidates.
func (e *Engine) candidatesFor(seeker, teacher *models.Profile, skillKey string) []models.MatchCandidate {
	overlap := IntersectAvailability(seeker.Availability, teacher.Availability)

	candidates := make([]models.MatchCandidate, 0)
	for _, learn := range seeker.WantToLearn {
		learnKey := models.NormalizeSkill(learn.Skill)
		if learnKey == "" {
			continue
		}
		if skillKey != "" && learnKey != skillKey {
			continue
		}
		for _, teach := range teacher.CanTeach {
			if models.NormalizeSkill(teach.Skill) != learnKey {
				continue
			}
			score, ok := e.scorer.Score(learn, teach)
			if !ok {
				continue
			}
			candidates = append(candidates, models.MatchCandidate{
				TeacherID:        teacher.UserID,
				Skill:            strings.TrimSpace(learn.Skill),
				Score:            score,
				OverlappingSlots: overlap.TimeSlots,
				OverlappingDays:  overlap.Days,
			})
		}
	}
	return candidates
}
