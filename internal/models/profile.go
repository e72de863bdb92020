package models

import (
	"strings"
	"time"
)

// Proficiency grades how well a user can teach a skill.
type Proficiency string

const (
	ProficiencyBeginner     Proficiency = "beginner"
	ProficiencyIntermediate Proficiency = "intermediate"
	ProficiencyAdvanced     Proficiency = "advanced"
)

// Priority grades how urgently a user wants to learn a skill.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// SkillToTeach is a single entry in a profile's teaching list.
type SkillToTeach struct {
	Skill       string      `json:"skill"`
	Proficiency Proficiency `json:"proficiency"`
	Description string      `json:"description,omitempty"`
}

// SkillToLearn is a single entry in a profile's learning list.
type SkillToLearn struct {
	Skill    string   `json:"skill"`
	Priority Priority `json:"priority"`
	Reason   string   `json:"reason,omitempty"`
}

// Availability lists the weekdays and time slots a user is free for sessions.
// Days and slots are independent sets; the source data does not pin a slot to
// a particular day. Both empty means the user is unavailable.
type Availability struct {
	Days      []string `json:"days"`
	TimeSlots []string `json:"timeSlots"`
}

// Profile is the full skill profile of a single user. Profiles are replaced
// wholesale on every save; there is no field-level merge.
type Profile struct {
	UserID       string         `json:"userId"`
	CanTeach     []SkillToTeach `json:"canTeach"`
	WantToLearn  []SkillToLearn `json:"wantToLearn"`
	Availability Availability   `json:"availability"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// ProfileFilter encapsulates allowed search parameters for listing profiles.
type ProfileFilter struct {
	Search   string
	Page     int
	PageSize int
}

// NormalizeSkill canonicalises a skill name for comparison: surrounding
// whitespace is stripped and the name is lowercased, so "Python " and
// "python" denote the same skill.
func NormalizeSkill(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// TeachesSkill reports whether the profile lists the (normalized) skill in
// its teaching entries.
func (p *Profile) TeachesSkill(skill string) bool {
	want := NormalizeSkill(skill)
	for _, entry := range p.CanTeach {
		if NormalizeSkill(entry.Skill) == want {
			return true
		}
	}
	return false
}

// WantsSkill reports whether the profile lists the (normalized) skill in its
// learning entries.
func (p *Profile) WantsSkill(skill string) bool {
	want := NormalizeSkill(skill)
	for _, entry := range p.WantToLearn {
		if NormalizeSkill(entry.Skill) == want {
			return true
		}
	}
	return false
}
