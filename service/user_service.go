// api/service/user_service.go
package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/dev-mohitbeniwal/intervene/api/audit"
	"github.com/dev-mohitbeniwal/intervene/api/auth"
	"github.com/dev-mohitbeniwal/intervene/api/dao"
	intervene_errors "github.com/dev-mohitbeniwal/intervene/api/errors"
	logger "github.com/dev-mohitbeniwal/intervene/api/logging"
	"github.com/dev-mohitbeniwal/intervene/api/model"
	pdp_model "github.com/dev-mohitbeniwal/intervene/api/pdp/model"
	"github.com/dev-mohitbeniwal/intervene/api/util"
)

// IUserService defines the interface for user operations
type IUserService interface {
	ListUsers(ctx context.Context, actor *model.Actor, filter model.UserFilter, page model.Page) (*model.PageResult[model.UserView], error)
	GetUser(ctx context.Context, actor *model.Actor, id string) (*model.UserView, error)
	CreateUser(ctx context.Context, actor *model.Actor, input model.UserInput) (*model.UserView, error)
	UpdateUser(ctx context.Context, actor *model.Actor, id string, input model.UserInput) (*model.UserView, error)
	DeleteUser(ctx context.Context, actor *model.Actor, id string) error
	ChangeStatus(ctx context.Context, actor *model.Actor, id string, active bool) (*model.UserView, error)
	AssignRole(ctx context.Context, actor *model.Actor, id string, role model.Role) (*model.UserView, error)
	UpdateProfile(ctx context.Context, actor *model.Actor, input model.ProfileInput) (*model.UserView, error)
}

// UserService handles business logic for user operations
type UserService struct {
	userDAO        *dao.UserDAO
	records        *RecordService[model.User, *model.User]
	validationUtil *util.ValidationUtil
	bcryptCost     int
}

var _ IUserService = &UserService{}

// NewUserService creates a new instance of UserService
func NewUserService(userDAO *dao.UserDAO, validationUtil *util.ValidationUtil, cacheService *util.CacheService, auditService audit.Service, eventBus *util.EventBus, bcryptCost int) *UserService {
	return &UserService{
		userDAO: userDAO,
		records: NewRecordService[model.User, *model.User](userDAO, cacheService, auditService, eventBus, RecordOptions[model.User]{
			Entity:   pdp_model.EntityUser,
			Name:     util.CacheUser,
			Patterns: userPatterns,
			Snapshot: func(u *model.User) any { return u.View() },
			Mutator:  userDAO.Mutate,
		}),
		validationUtil: validationUtil,
		bcryptCost:     bcryptCost,
	}
}

// userPatterns covers the old and the new email so a renamed account
// cannot log in through a stale lookup.
func userPatterns(before, after *model.User) []string {
	if before == nil {
		return util.UserPatterns("", "")
	}
	patterns := util.UserPatterns(after.ID, after.Email)
	if before.Email != after.Email {
		patterns = append(patterns, util.LoginKeyByEmail(before.Email))
	}
	return patterns
}

func (s *UserService) ListUsers(ctx context.Context, actor *model.Actor, filter model.UserFilter, page model.Page) (*model.PageResult[model.UserView], error) {
	result, err := s.records.FindAll(ctx, actor, filter, page)
	if err != nil {
		return nil, err
	}
	return model.MapPage(result, func(u model.User) model.UserView { return u.View() }), nil
}

func (s *UserService) GetUser(ctx context.Context, actor *model.Actor, id string) (*model.UserView, error) {
	user, err := s.records.FindOne(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	view := user.View()
	return &view, nil
}

// CreateUser registers a new account. Only administrators may do so.
func (s *UserService) CreateUser(ctx context.Context, actor *model.Actor, input model.UserInput) (*model.UserView, error) {
	if err := authorizeAction(actor, pdp_model.ActionCreateUser); err != nil {
		return nil, err
	}
	if err := s.validationUtil.ValidateUserInput(&input); err != nil {
		return nil, err
	}
	if err := auth.ValidatePasswordComplexity(input.Password); err != nil {
		return nil, err
	}
	input.Email = normalizeEmail(input.Email)
	if err := s.checkIdentity(ctx, input.Email, input.RUT, ""); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		logger.Error("Failed to hash password", zap.Error(err))
		return nil, err
	}
	role := input.Role
	if role == "" {
		role = model.RoleUser
	}

	user := model.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		RUT:          input.RUT,
		PasswordHash: hash,
		Role:         role,
		StaffType:    input.StaffType,
		Department:   input.Department,
		Position:     input.Position,
		Phone:        input.Phone,
		Address:      input.Address,
		IsActive:     true,
	}
	created, err := s.records.create(ctx, actor, &user)
	if err != nil {
		return nil, err
	}
	view := created.View()
	return &view, nil
}

// UpdateUser changes account details. Non-administrators may only update
// themselves; the role is changed through AssignRole.
func (s *UserService) UpdateUser(ctx context.Context, actor *model.Actor, id string, input model.UserInput) (*model.UserView, error) {
	if err := s.records.authorize(actor, pdp_model.OperationUpdate); err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && actor.UserID != id {
		return nil, intervene_errors.ErrForbidden.WithMessage("users may only update their own account")
	}
	input.Role = ""
	if err := s.validationUtil.ValidateUserInput(&input); err != nil {
		return nil, err
	}
	var hash string
	if input.Password != "" {
		if err := auth.ValidatePasswordComplexity(input.Password); err != nil {
			return nil, err
		}
		h, err := auth.HashPassword(input.Password, s.bcryptCost)
		if err != nil {
			return nil, err
		}
		hash = h
	}
	input.Email = normalizeEmail(input.Email)
	if err := s.checkIdentity(ctx, input.Email, input.RUT, id); err != nil {
		return nil, err
	}

	updated, err := s.records.modify(ctx, actor, id, audit.ActionUpdate, func(u *model.User) error {
		u.FirstName = input.FirstName
		u.LastName = input.LastName
		u.Email = input.Email
		u.RUT = input.RUT
		u.StaffType = input.StaffType
		u.Department = input.Department
		u.Position = input.Position
		u.Phone = input.Phone
		u.Address = input.Address
		if hash != "" {
			u.PasswordHash = hash
			u.RefreshTokens = nil
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	view := updated.View()
	return &view, nil
}

// DeleteUser deactivates an account and ends its sessions. The last active
// administrator cannot be removed.
func (s *UserService) DeleteUser(ctx context.Context, actor *model.Actor, id string) error {
	if err := s.records.authorize(actor, pdp_model.OperationDelete); err != nil {
		return err
	}
	_, err := s.records.modify(ctx, actor, id, audit.ActionDelete, func(u *model.User) error {
		if err := s.guardLastAdmin(ctx, u); err != nil {
			return err
		}
		u.IsActive = false
		u.RefreshTokens = nil
		return nil
	})
	return err
}

// ChangeStatus activates or deactivates an account.
func (s *UserService) ChangeStatus(ctx context.Context, actor *model.Actor, id string, active bool) (*model.UserView, error) {
	if err := authorizeAction(actor, pdp_model.ActionChangeStatus); err != nil {
		return nil, err
	}
	updated, err := s.records.modify(ctx, actor, id, audit.ActionChangeStatus, func(u *model.User) error {
		if !active {
			if err := s.guardLastAdmin(ctx, u); err != nil {
				return err
			}
			u.RefreshTokens = nil
		}
		u.IsActive = active
		return nil
	})
	if err != nil {
		return nil, err
	}
	view := updated.View()
	return &view, nil
}

// AssignRole changes the role of an account.
func (s *UserService) AssignRole(ctx context.Context, actor *model.Actor, id string, role model.Role) (*model.UserView, error) {
	if err := authorizeAction(actor, pdp_model.ActionAssignRole); err != nil {
		return nil, err
	}
	if !role.Valid() {
		return nil, intervene_errors.ErrInvalidUserData.WithDetails(map[string]interface{}{"role": "is not a valid role"})
	}
	updated, err := s.records.modify(ctx, actor, id, audit.ActionAssignRole, func(u *model.User) error {
		if role != model.RoleAdmin {
			if err := s.guardLastAdmin(ctx, u); err != nil {
				return err
			}
		}
		u.Role = role
		return nil
	})
	if err != nil {
		return nil, err
	}
	view := updated.View()
	return &view, nil
}

// UpdateProfile lets any authenticated user change their own contact details.
func (s *UserService) UpdateProfile(ctx context.Context, actor *model.Actor, input model.ProfileInput) (*model.UserView, error) {
	if actor == nil {
		return nil, intervene_errors.ErrUnauthorized
	}
	if err := s.validationUtil.ValidateProfile(&input); err != nil {
		return nil, err
	}
	updated, err := s.records.modify(ctx, actor, actor.UserID, audit.ActionUpdateProfile, func(u *model.User) error {
		if input.Phone != nil {
			u.Phone = *input.Phone
		}
		if input.Address != nil {
			u.Address = *input.Address
		}
		if input.EmergencyContact != nil {
			u.EmergencyContact = *input.EmergencyContact
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	view := updated.View()
	return &view, nil
}

// guardLastAdmin refuses to take u out of the active administrators when
// it is the only one left.
func (s *UserService) guardLastAdmin(ctx context.Context, u *model.User) error {
	if u.Role != model.RoleAdmin || !u.IsActive {
		return nil
	}
	admins, err := s.userDAO.CountActiveAdmins(ctx)
	if err != nil {
		return err
	}
	if admins <= 1 {
		return intervene_errors.ErrLastAdmin
	}
	return nil
}

func (s *UserService) checkIdentity(ctx context.Context, email, rut, excludeID string) error {
	taken, err := s.userDAO.IdentityTaken(ctx, email, rut, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return intervene_errors.ErrUserConflict
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
