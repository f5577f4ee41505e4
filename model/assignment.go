// api/model/assignment.go
package model

import "time"

// Assignment links a staff user to a student they are responsible for.
type Assignment struct {
	StudentID  string    `json:"student_id"`
	UserID     string    `json:"user_id"`
	AssignedBy string    `json:"assigned_by"`
	AssignedAt time.Time `json:"assigned_at"`
}
