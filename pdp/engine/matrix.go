package engine

import (
	"fmt"

	"github.com/dev-mohitbeniwal/intervene/api/model"
	pdp_model "github.com/dev-mohitbeniwal/intervene/api/pdp/model"
)

type operationSet map[pdp_model.Operation]bool

var (
	allOperations = operationSet{
		pdp_model.OperationRead:   true,
		pdp_model.OperationCreate: true,
		pdp_model.OperationUpdate: true,
		pdp_model.OperationDelete: true,
	}
	noDelete = operationSet{
		pdp_model.OperationRead:   true,
		pdp_model.OperationCreate: true,
		pdp_model.OperationUpdate: true,
	}
	readOnly = operationSet{
		pdp_model.OperationRead: true,
	}
)

// matrix lists what each role may do per entity. A missing role or entity
// means deny.
var matrix = map[model.Role]map[pdp_model.Entity]operationSet{
	model.RoleAdmin: {
		pdp_model.EntityStudent:      allOperations,
		pdp_model.EntityIntervention: allOperations,
		pdp_model.EntityComment:      allOperations,
		pdp_model.EntityUser:         allOperations,
		pdp_model.EntityAudit:        allOperations,
	},
	model.RoleUser: {
		pdp_model.EntityStudent:      noDelete,
		pdp_model.EntityIntervention: noDelete,
		pdp_model.EntityComment:      noDelete,
		pdp_model.EntityUser:         noDelete,
		pdp_model.EntityAudit:        noDelete,
	},
	model.RoleViewer: {
		pdp_model.EntityStudent:      readOnly,
		pdp_model.EntityIntervention: noDelete,
		pdp_model.EntityComment:      noDelete,
	},
}

// privileged actions are reserved to these roles.
var privileged = map[pdp_model.Action]model.Role{
	pdp_model.ActionAssignRole:    model.RoleAdmin,
	pdp_model.ActionChangeStatus:  model.RoleAdmin,
	pdp_model.ActionResetPassword: model.RoleAdmin,
	pdp_model.ActionCreateUser:    model.RoleAdmin,
	pdp_model.ActionQueryAudit:    model.RoleAdmin,
}

// Decide evaluates the matrix for one request.
func Decide(role model.Role, entity pdp_model.Entity, op pdp_model.Operation) pdp_model.AccessDecision {
	entities, ok := matrix[role]
	if !ok {
		return pdp_model.Deny(fmt.Sprintf("unknown role %q", role))
	}
	if entities[entity][op] {
		return pdp_model.Allow(fmt.Sprintf("%s may %s %s", role, op, entity))
	}
	return pdp_model.Deny(fmt.Sprintf("%s may not %s %s", role, op, entity))
}

func Allowed(role model.Role, entity pdp_model.Entity, op pdp_model.Operation) bool {
	return Decide(role, entity, op).Allowed
}

// Evaluate is Decide for a request value.
func Evaluate(req pdp_model.AccessRequest) pdp_model.AccessDecision {
	return Decide(req.Role, req.Entity, req.Operation)
}

// AllowedAction reports whether role may perform a privileged action.
func AllowedAction(role model.Role, action pdp_model.Action) bool {
	required, ok := privileged[action]
	return ok && role == required
}
