// api/model/comment.go
package model

import "gorm.io/datatypes"

type CommentType string

const (
	CommentFollowUp        CommentType = "FollowUp"
	CommentInterview       CommentType = "Interview"
	CommentAgreement       CommentType = "Agreement"
	CommentObservation     CommentType = "Observation"
	CommentReferral        CommentType = "Referral"
	CommentGuardianContact CommentType = "GuardianContact"
	CommentTeamMeeting     CommentType = "TeamMeeting"
	CommentOther           CommentType = "Other"
)

type InterventionComment struct {
	Base
	InterventionID string                      `json:"intervention_id" gorm:"type:varchar(36);not null;index"`
	UserID         string                      `json:"user_id" gorm:"type:varchar(36);not null;index"`
	Content        string                      `json:"content" gorm:"type:text;not null" validate:"required,max=5000"`
	Type           CommentType                 `json:"type" gorm:"size:20;not null;default:FollowUp" validate:"omitempty,oneof=FollowUp Interview Agreement Observation Referral GuardianContact TeamMeeting Other"`
	Evidence       datatypes.JSONSlice[string] `json:"evidence"`
	IsPrivate      bool                        `json:"is_private"`
}

// CommentFilter selects the comments of one intervention.
type CommentFilter struct {
	InterventionID string       `form:"-"`
	UserID         *string      `form:"userId"`
	Type           *CommentType `form:"type"`
	IsPrivate      *bool        `form:"isPrivate"`
}

func (f CommentFilter) Conditions() map[string]any {
	c := map[string]any{"intervention_id": f.InterventionID}
	if f.UserID != nil {
		c["user_id"] = *f.UserID
	}
	if f.Type != nil {
		c["type"] = *f.Type
	}
	if f.IsPrivate != nil {
		c["is_private"] = *f.IsPrivate
	}
	return c
}

// Params leaves out the intervention id, which is part of the key prefix.
func (f CommentFilter) Params() map[string]any {
	return map[string]any{
		"userId":    f.UserID,
		"type":      f.Type,
		"isPrivate": f.IsPrivate,
	}
}
