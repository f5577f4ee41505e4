// api/service/assignment_service.go
package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/dev-mohitbeniwal/intervene/api/audit"
	"github.com/dev-mohitbeniwal/intervene/api/cache"
	"github.com/dev-mohitbeniwal/intervene/api/dao"
	intervene_errors "github.com/dev-mohitbeniwal/intervene/api/errors"
	logger "github.com/dev-mohitbeniwal/intervene/api/logging"
	"github.com/dev-mohitbeniwal/intervene/api/model"
	"github.com/dev-mohitbeniwal/intervene/api/pdp/engine"
	pdp_model "github.com/dev-mohitbeniwal/intervene/api/pdp/model"
	"github.com/dev-mohitbeniwal/intervene/api/util"
)

// IAssignmentService defines the interface for staff to student assignments
type IAssignmentService interface {
	ListStudentAssignments(ctx context.Context, actor *model.Actor, studentID string) ([]model.Assignment, error)
	ListUserStudents(ctx context.Context, actor *model.Actor, userID string) ([]model.Assignment, error)
	AssignUser(ctx context.Context, actor *model.Actor, studentID, userID string) (*model.Assignment, error)
	UnassignUser(ctx context.Context, actor *model.Actor, studentID, userID string) error
}

// AssignmentService keeps the graph of which staff member follows which
// student. Assignments are authorized as student reads and updates.
type AssignmentService struct {
	assignmentDAO *dao.AssignmentDAO
	studentDAO    *dao.StudentDAO
	userDAO       *dao.UserDAO
	cacheService  *util.CacheService
	auditService  audit.Service
	now           func() time.Time
}

var _ IAssignmentService = &AssignmentService{}

func NewAssignmentService(assignmentDAO *dao.AssignmentDAO, studentDAO *dao.StudentDAO, userDAO *dao.UserDAO, cacheService *util.CacheService, auditService audit.Service) *AssignmentService {
	return &AssignmentService{
		assignmentDAO: assignmentDAO,
		studentDAO:    studentDAO,
		userDAO:       userDAO,
		cacheService:  cacheService,
		auditService:  auditService,
		now:           time.Now,
	}
}

func (s *AssignmentService) authorize(actor *model.Actor, op pdp_model.Operation) error {
	if actor == nil {
		return intervene_errors.ErrUnauthorized
	}
	decision := engine.Decide(actor.Role, pdp_model.EntityStudent, op)
	if !decision.Allowed {
		return intervene_errors.ErrForbidden.WithDetails(map[string]interface{}{"reason": decision.Reason})
	}
	return nil
}

func (s *AssignmentService) ListStudentAssignments(ctx context.Context, actor *model.Actor, studentID string) ([]model.Assignment, error) {
	if err := s.authorize(actor, pdp_model.OperationRead); err != nil {
		return nil, err
	}
	if _, err := s.studentDAO.FindOne(ctx, studentID); err != nil {
		return nil, err
	}
	return cache.GetOrFetch(ctx, s.cacheService.Store(), util.StudentAssignmentsKey(studentID), s.cacheService.TTL().Default, func(ctx context.Context) ([]model.Assignment, error) {
		return s.assignmentDAO.ListForStudent(ctx, studentID)
	})
}

// ListUserStudents lists the students a staff member follows. Users other
// than administrators may only list their own.
func (s *AssignmentService) ListUserStudents(ctx context.Context, actor *model.Actor, userID string) ([]model.Assignment, error) {
	if err := s.authorize(actor, pdp_model.OperationRead); err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && actor.UserID != userID {
		return nil, intervene_errors.ErrForbidden.WithMessage("users may only list their own students")
	}
	return cache.GetOrFetch(ctx, s.cacheService.Store(), util.UserStudentsKey(userID), s.cacheService.TTL().Default, func(ctx context.Context) ([]model.Assignment, error) {
		return s.assignmentDAO.ListForUser(ctx, userID)
	})
}

func (s *AssignmentService) AssignUser(ctx context.Context, actor *model.Actor, studentID, userID string) (*model.Assignment, error) {
	if err := s.authorize(actor, pdp_model.OperationUpdate); err != nil {
		return nil, err
	}
	if _, err := s.studentDAO.FindOne(ctx, studentID); err != nil {
		return nil, err
	}
	user, err := s.userDAO.FindOne(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, intervene_errors.ErrInvalidUserData.WithMessage("inactive users cannot be assigned to students")
	}

	assignment, err := s.assignmentDAO.Assign(ctx, model.Assignment{
		StudentID:  studentID,
		UserID:     userID,
		AssignedBy: actor.UserID,
		AssignedAt: s.now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.cacheService.Invalidate(ctx, util.AssignmentPatterns(studentID, userID)...)
	s.auditService.Record(ctx, audit.Entry{
		EntityName: util.CacheStudent,
		EntityID:   studentID,
		Action:     audit.ActionAssign,
		Actor:      actor,
		Origin:     actor.Origin,
		After:      assignment,
	})
	return assignment, nil
}

func (s *AssignmentService) UnassignUser(ctx context.Context, actor *model.Actor, studentID, userID string) error {
	if err := s.authorize(actor, pdp_model.OperationUpdate); err != nil {
		return err
	}
	removed, err := s.assignmentDAO.Unassign(ctx, studentID, userID)
	if err != nil {
		return err
	}
	if !removed {
		return intervene_errors.ErrAssignmentNotFound
	}

	s.cacheService.Invalidate(ctx, util.AssignmentPatterns(studentID, userID)...)
	s.auditService.Record(ctx, audit.Entry{
		EntityName: util.CacheStudent,
		EntityID:   studentID,
		Action:     audit.ActionUnassign,
		Actor:      actor,
		Origin:     actor.Origin,
		Details:    "user " + userID,
	})
	logger.Info("Assignment removed", zap.String("studentID", studentID), zap.String("userID", userID))
	return nil
}
