package model

import (
	"github.com/dev-mohitbeniwal/intervene/api/model"
)

// Entity is a kind of record guarded by the authorization matrix.
type Entity string

const (
	EntityStudent      Entity = "student"
	EntityIntervention Entity = "intervention"
	EntityComment      Entity = "comment"
	EntityUser         Entity = "user"
	EntityAudit        Entity = "audit"
)

var Entities = []Entity{EntityStudent, EntityIntervention, EntityComment, EntityUser, EntityAudit}

type Operation string

const (
	OperationRead   Operation = "read"
	OperationCreate Operation = "create"
	OperationUpdate Operation = "update"
	OperationDelete Operation = "delete"
)

var Operations = []Operation{OperationRead, OperationCreate, OperationUpdate, OperationDelete}

// Action is a privileged operation outside plain record CRUD.
type Action string

const (
	ActionAssignRole    Action = "assign_role"
	ActionChangeStatus  Action = "change_status"
	ActionResetPassword Action = "reset_password"
	ActionCreateUser    Action = "create_user"
	ActionQueryAudit    Action = "query_audit"
)

var Actions = []Action{ActionAssignRole, ActionChangeStatus, ActionResetPassword, ActionCreateUser, ActionQueryAudit}

// AccessRequest asks whether a role may perform an operation on an entity.
type AccessRequest struct {
	Role      model.Role `json:"role"`
	Entity    Entity     `json:"entity"`
	Operation Operation  `json:"operation"`
}
