package dto

import "github.com/noah-isme/skill-exchange-api/internal/models"

// SkillToTeachInput is one offered skill in a profile submission.
type SkillToTeachInput struct {
	Skill       string `json:"skill" validate:"required,max=120"`
	Proficiency string `json:"proficiency" validate:"required,oneof=beginner intermediate advanced"`
	Description string `json:"description,omitempty" validate:"max=500"`
}

// SkillToLearnInput is one requested skill in a profile submission.
type SkillToLearnInput struct {
	Skill    string `json:"skill" validate:"required,max=120"`
	Priority string `json:"priority" validate:"required,oneof=low medium high"`
	Reason   string `json:"reason,omitempty" validate:"max=500"`
}

// AvailabilityInput carries the declared weekly availability.
type AvailabilityInput struct {
	Days      []string `json:"days" validate:"dive,required"`
	TimeSlots []string `json:"timeSlots" validate:"dive,required"`
}

// SubmitProfileRequest captures PUT /skills/:userId payload. The stored
// profile is replaced wholesale with the submitted lists.
type SubmitProfileRequest struct {
	CanTeach     []SkillToTeachInput `json:"canTeach" validate:"dive"`
	WantToLearn  []SkillToLearnInput `json:"wantToLearn" validate:"dive"`
	Availability AvailabilityInput   `json:"availability"`
}

// ProfileResponse exposes a stored skill profile.
type ProfileResponse struct {
	UserID       string                `json:"userId"`
	CanTeach     []models.SkillToTeach `json:"canTeach"`
	WantToLearn  []models.SkillToLearn `json:"wantToLearn"`
	Availability models.Availability   `json:"availability"`
	UpdatedAt    string                `json:"updatedAt"`
}

// ProfileListQuery captures admin list filters.
type ProfileListQuery struct {
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"pageSize"`
}
