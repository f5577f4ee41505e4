// api/model/student.go
package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type EnrollmentStatus string

const (
	EnrollmentActive      EnrollmentStatus = "Active"
	EnrollmentWithdrawn   EnrollmentStatus = "Withdrawn"
	EnrollmentTransferred EnrollmentStatus = "Transferred"
	EnrollmentGraduated   EnrollmentStatus = "Graduated"
)

type Guardian struct {
	Name         string `json:"name"`
	Relationship string `json:"relationship"`
	Phone        string `json:"phone"`
	Email        string `json:"email,omitempty"`
}

type MedicalInfo struct {
	Conditions  []string `json:"conditions,omitempty"`
	Allergies   []string `json:"allergies,omitempty"`
	Medications []string `json:"medications,omitempty"`
	Notes       string   `json:"notes,omitempty"`
}

type Student struct {
	Base
	FirstName        string                          `json:"first_name" gorm:"size:100;not null" validate:"required,max=100"`
	LastName         string                          `json:"last_name" gorm:"size:100;not null" validate:"required,max=100"`
	RUT              string                          `json:"rut" gorm:"size:12;uniqueIndex;not null" validate:"required,rut"`
	EnrollmentNumber string                          `json:"enrollment_number" gorm:"size:20;uniqueIndex;not null" validate:"required,max=20"`
	Email            string                          `json:"email,omitempty" gorm:"size:255" validate:"omitempty,email"`
	BirthDate        *time.Time                      `json:"birth_date,omitempty"`
	Gender           string                          `json:"gender,omitempty" gorm:"size:20"`
	Grade            string                          `json:"grade" gorm:"size:20;not null;index" validate:"required,max=20"`
	Section          string                          `json:"section" gorm:"size:5;index" validate:"max=5"`
	AcademicYear     int                             `json:"academic_year" gorm:"index" validate:"omitempty,gte=2000,lte=2100"`
	EnrollmentStatus EnrollmentStatus                `json:"enrollment_status" gorm:"size:20;not null;default:Active;index" validate:"omitempty,oneof=Active Withdrawn Transferred Graduated"`
	Address          string                          `json:"address,omitempty" gorm:"size:255"`
	Guardian         datatypes.JSONType[Guardian]    `json:"guardian"`
	MedicalInfo      datatypes.JSONType[MedicalInfo] `json:"medical_info"`
	IsActive         bool                            `json:"is_active" gorm:"not null;default:true;index"`
	DeletedAt        gorm.DeletedAt                  `json:"-" gorm:"index"`
}

// FullName returns "first last".
func (s *Student) FullName() string {
	return s.FirstName + " " + s.LastName
}

// StudentFilter selects students in list queries.
type StudentFilter struct {
	Grade            *string           `form:"grade"`
	Section          *string           `form:"section"`
	AcademicYear     *int              `form:"academicYear"`
	EnrollmentStatus *EnrollmentStatus `form:"enrollmentStatus"`
	IsActive         *bool             `form:"isActive"`
}

func (f StudentFilter) Conditions() map[string]any {
	c := map[string]any{}
	if f.Grade != nil {
		c["grade"] = *f.Grade
	}
	if f.Section != nil {
		c["section"] = *f.Section
	}
	if f.AcademicYear != nil {
		c["academic_year"] = *f.AcademicYear
	}
	if f.EnrollmentStatus != nil {
		c["enrollment_status"] = *f.EnrollmentStatus
	}
	if f.IsActive != nil {
		c["is_active"] = *f.IsActive
	}
	return c
}

func (f StudentFilter) Params() map[string]any {
	return map[string]any{
		"grade":            f.Grade,
		"section":          f.Section,
		"academicYear":     f.AcademicYear,
		"enrollmentStatus": f.EnrollmentStatus,
		"isActive":         f.IsActive,
	}
}
