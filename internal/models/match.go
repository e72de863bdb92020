package models

// AvailabilityOverlap carries the shared day and slot sets between a seeker
// and a teacher candidate. Both sets are advisory: an empty overlap never
// disqualifies a candidate, it only means no confirmed common time.
type AvailabilityOverlap struct {
	Days      []string `json:"days"`
	TimeSlots []string `json:"timeSlots"`
}

// MatchCandidate is one ranked pairing of the seeker with a teacher for a
// single skill. Candidates are recomputed on every query and never persisted.
type MatchCandidate struct {
	TeacherID        string   `json:"teacherId"`
	Skill            string   `json:"skill"`
	Score            float64  `json:"score"`
	OverlappingSlots []string `json:"overlappingSlots"`
	OverlappingDays  []string `json:"overlappingDays"`
}

// MatchGroup is the ranked candidate list for one requested skill. Groups are
// returned in the seeker's original wantToLearn order.
type MatchGroup struct {
	Skill      string           `json:"skill"`
	Candidates []MatchCandidate `json:"candidates"`
}
