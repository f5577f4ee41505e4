// api/model/intervention.go
package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type InterventionType string

const (
	InterventionAcademic          InterventionType = "Academic"
	InterventionBehavioral        InterventionType = "Behavioral"
	InterventionEmotional         InterventionType = "Emotional"
	InterventionSocial            InterventionType = "Social"
	InterventionFamily            InterventionType = "Family"
	InterventionAttendance        InterventionType = "Attendance"
	InterventionReferral          InterventionType = "Referral"
	InterventionPIE               InterventionType = "PIE"
	InterventionSchoolCoexistence InterventionType = "SchoolCoexistence"
	InterventionGuidance          InterventionType = "Guidance"
	InterventionOther             InterventionType = "Other"
)

type InterventionStatus string

const (
	StatusPending    InterventionStatus = "Pending"
	StatusInProgress InterventionStatus = "InProgress"
	StatusOnHold     InterventionStatus = "OnHold"
	StatusCompleted  InterventionStatus = "Completed"
	StatusReferred   InterventionStatus = "Referred"
	StatusCancelled  InterventionStatus = "Cancelled"
)

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
	PriorityUrgent Priority = "Urgent"
)

type Intervention struct {
	Base
	Title                    string                      `json:"title" gorm:"size:200;not null" validate:"required,max=200"`
	Description              string                      `json:"description" gorm:"type:text;not null" validate:"required"`
	Type                     InterventionType            `json:"type" gorm:"size:30;not null;index" validate:"required,oneof=Academic Behavioral Emotional Social Family Attendance Referral PIE SchoolCoexistence Guidance Other"`
	Status                   InterventionStatus          `json:"status" gorm:"size:20;not null;default:Pending;index" validate:"omitempty,oneof=Pending InProgress OnHold Completed Referred Cancelled"`
	Priority                 Priority                    `json:"priority" gorm:"size:10;not null;default:Medium;index" validate:"omitempty,oneof=Low Medium High Urgent"`
	DateReported             time.Time                   `json:"date_reported" gorm:"not null"`
	DateResolved             *time.Time                  `json:"date_resolved,omitempty"`
	FollowUpDate             *time.Time                  `json:"follow_up_date,omitempty"`
	Scope                    string                      `json:"scope,omitempty" gorm:"size:20" validate:"omitempty,oneof=Individual Group Course School"`
	ActionsTaken             datatypes.JSONSlice[string] `json:"actions_taken"`
	Outcome                  string                      `json:"outcome,omitempty" gorm:"type:text"`
	RequiresExternalReferral bool                        `json:"requires_external_referral"`
	StudentID                string                      `json:"student_id" gorm:"type:varchar(36);not null;index" validate:"required"`
	InformerID               string                      `json:"informer_id" gorm:"type:varchar(36);index"`
	ResponsibleID            *string                     `json:"responsible_id,omitempty" gorm:"type:varchar(36);index"`
	DeletedAt                gorm.DeletedAt              `json:"-" gorm:"index"`
}

// InterventionFilter selects interventions in list queries.
type InterventionFilter struct {
	StudentID     *string             `form:"studentId"`
	ResponsibleID *string             `form:"responsibleId"`
	InformerID    *string             `form:"informerId"`
	Type          *InterventionType   `form:"type"`
	Status        *InterventionStatus `form:"status"`
	Priority      *Priority           `form:"priority"`
}

func (f InterventionFilter) Conditions() map[string]any {
	c := map[string]any{}
	if f.StudentID != nil {
		c["student_id"] = *f.StudentID
	}
	if f.ResponsibleID != nil {
		c["responsible_id"] = *f.ResponsibleID
	}
	if f.InformerID != nil {
		c["informer_id"] = *f.InformerID
	}
	if f.Type != nil {
		c["type"] = *f.Type
	}
	if f.Status != nil {
		c["status"] = *f.Status
	}
	if f.Priority != nil {
		c["priority"] = *f.Priority
	}
	return c
}

func (f InterventionFilter) Params() map[string]any {
	return map[string]any{
		"studentId":     f.StudentID,
		"responsibleId": f.ResponsibleID,
		"informerId":    f.InformerID,
		"type":          f.Type,
		"status":        f.Status,
		"priority":      f.Priority,
	}
}
