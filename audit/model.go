// api/audit/model.go
package audit

import (
	"time"

	"gorm.io/datatypes"

	"github.com/dev-mohitbeniwal/intervene/api/model"
)

type Action string

const (
	ActionCreate        Action = "CREATE"
	ActionUpdate        Action = "UPDATE"
	ActionDelete        Action = "DELETE"
	ActionView          Action = "VIEW"
	ActionList          Action = "LIST"
	ActionLogin         Action = "LOGIN"
	ActionLoginFailed   Action = "LOGIN_FAILED"
	ActionLoginBlocked  Action = "LOGIN_BLOCKED"
	ActionTokenRefresh  Action = "TOKEN_REFRESH"
	ActionRefreshFailed Action = "TOKEN_REFRESH_FAILED"
	ActionLogout        Action = "LOGOUT"
	ActionResetPassword Action = "RESET_PASSWORD"
	ActionAssignRole    Action = "ASSIGN_ROLE"
	ActionChangeStatus  Action = "CHANGE_STATUS"
	ActionUpdateProfile Action = "UPDATE_PROFILE"
	ActionAssign        Action = "ASSIGN"
	ActionUnassign      Action = "UNASSIGN"
)

const (
	ModuleStudents      = "STUDENTS"
	ModuleInterventions = "INTERVENTIONS"
	ModuleUsers         = "USERS"
	ModuleSystem        = "SYSTEM"
)

// ModuleFor maps an entity name to the functional module it belongs to.
func ModuleFor(entity string) string {
	switch entity {
	case "student":
		return ModuleStudents
	case "intervention", "comment":
		return ModuleInterventions
	case "user":
		return ModuleUsers
	default:
		return ModuleSystem
	}
}

// AuditRecord is an append-only fact about an operation.
type AuditRecord struct {
	ID         string         `json:"id" gorm:"primaryKey;type:varchar(36)"`
	EntityName string         `json:"entity_name" gorm:"size:50;not null;index"`
	EntityID   *string        `json:"entity_id,omitempty" gorm:"type:varchar(36);index"`
	Action     Action         `json:"action" gorm:"size:30;not null;index"`
	UserID     *string        `json:"user_id,omitempty" gorm:"type:varchar(36);index"`
	OldValues  datatypes.JSON `json:"old_values,omitempty"`
	NewValues  datatypes.JSON `json:"new_values,omitempty"`
	Details    *string        `json:"details,omitempty" gorm:"type:text"`
	IPAddress  string         `json:"ip_address" gorm:"size:45"`
	UserAgent  string         `json:"user_agent" gorm:"size:255"`
	Module     string         `json:"module" gorm:"size:20;not null;index"`
	CreatedAt  time.Time      `json:"created_at" gorm:"index"`
}

func (AuditRecord) TableName() string {
	return "audit_logs"
}

// Entry is what callers hand to Service.Record.
type Entry struct {
	EntityName string
	EntityID   string
	Action     Action
	Actor      *model.Actor
	Origin     model.Origin
	Before     any
	After      any
	Details    string
}

// Query filters the audit trail.
type Query struct {
	EntityName string     `form:"entityName"`
	Action     Action     `form:"action"`
	UserID     string     `form:"userId"`
	Module     string     `form:"module"`
	DateFrom   *time.Time `form:"dateFrom" time_format:"2006-01-02"`
	DateTo     *time.Time `form:"dateTo" time_format:"2006-01-02"`
	Page       model.Page `form:"-"`
}
