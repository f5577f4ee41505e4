// api/service/student_service.go
package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/dev-mohitbeniwal/intervene/api/audit"
	"github.com/dev-mohitbeniwal/intervene/api/dao"
	intervene_errors "github.com/dev-mohitbeniwal/intervene/api/errors"
	logger "github.com/dev-mohitbeniwal/intervene/api/logging"
	"github.com/dev-mohitbeniwal/intervene/api/model"
	pdp_model "github.com/dev-mohitbeniwal/intervene/api/pdp/model"
	"github.com/dev-mohitbeniwal/intervene/api/util"
)

// IStudentService defines the interface for student operations
type IStudentService interface {
	ListStudents(ctx context.Context, actor *model.Actor, filter model.StudentFilter, page model.Page) (*model.PageResult[model.Student], error)
	GetStudent(ctx context.Context, actor *model.Actor, id string) (*model.Student, error)
	CreateStudent(ctx context.Context, actor *model.Actor, student model.Student) (*model.Student, error)
	UpdateStudent(ctx context.Context, actor *model.Actor, id string, student model.Student) (*model.Student, error)
	DeleteStudent(ctx context.Context, actor *model.Actor, id string) error
}

// StudentService handles business logic for student records
type StudentService struct {
	studentDAO     *dao.StudentDAO
	assignmentDAO  *dao.AssignmentDAO
	records        *RecordService[model.Student, *model.Student]
	validationUtil *util.ValidationUtil
	cacheService   *util.CacheService
}

var _ IStudentService = &StudentService{}

// NewStudentService creates a new StudentService. assignmentDAO may be nil
// when no graph store is configured.
func NewStudentService(studentDAO *dao.StudentDAO, assignmentDAO *dao.AssignmentDAO, validationUtil *util.ValidationUtil, cacheService *util.CacheService, auditService audit.Service, eventBus *util.EventBus) *StudentService {
	return &StudentService{
		studentDAO:    studentDAO,
		assignmentDAO: assignmentDAO,
		records: NewRecordService[model.Student, *model.Student](studentDAO, cacheService, auditService, eventBus, RecordOptions[model.Student]{
			Entity: pdp_model.EntityStudent,
			Name:   util.CacheStudent,
			Patterns: func(before, after *model.Student) []string {
				if before == nil {
					return util.StudentPatterns("")
				}
				return util.StudentPatterns(after.ID)
			},
		}),
		validationUtil: validationUtil,
		cacheService:   cacheService,
	}
}

func (s *StudentService) ListStudents(ctx context.Context, actor *model.Actor, filter model.StudentFilter, page model.Page) (*model.PageResult[model.Student], error) {
	return s.records.FindAll(ctx, actor, filter, page)
}

func (s *StudentService) GetStudent(ctx context.Context, actor *model.Actor, id string) (*model.Student, error) {
	return s.records.FindOne(ctx, actor, id)
}

// CreateStudent validates and stores a new student. RUT and enrollment
// number must be unique.
func (s *StudentService) CreateStudent(ctx context.Context, actor *model.Actor, student model.Student) (*model.Student, error) {
	if err := s.records.authorize(actor, pdp_model.OperationCreate); err != nil {
		return nil, err
	}
	student.ID = ""
	if student.EnrollmentStatus == "" {
		student.EnrollmentStatus = model.EnrollmentActive
	}
	if err := s.validationUtil.ValidateStudent(&student); err != nil {
		return nil, err
	}
	if err := s.checkIdentity(ctx, &student, ""); err != nil {
		return nil, err
	}
	student.IsActive = student.EnrollmentStatus == model.EnrollmentActive
	return s.records.create(ctx, actor, &student)
}

// UpdateStudent replaces the editable fields of a student.
func (s *StudentService) UpdateStudent(ctx context.Context, actor *model.Actor, id string, student model.Student) (*model.Student, error) {
	if err := s.records.authorize(actor, pdp_model.OperationUpdate); err != nil {
		return nil, err
	}
	if err := s.validationUtil.ValidateStudent(&student); err != nil {
		return nil, err
	}
	if err := s.checkIdentity(ctx, &student, id); err != nil {
		return nil, err
	}
	return s.records.modify(ctx, actor, id, audit.ActionUpdate, func(current *model.Student) error {
		student.Base = current.Base
		student.DeletedAt = current.DeletedAt
		if student.EnrollmentStatus == "" {
			student.EnrollmentStatus = current.EnrollmentStatus
		}
		student.IsActive = student.EnrollmentStatus == model.EnrollmentActive
		*current = student
		return nil
	})
}

// DeleteStudent soft deletes a student and drops its staff assignments.
func (s *StudentService) DeleteStudent(ctx context.Context, actor *model.Actor, id string) error {
	if err := s.records.Delete(ctx, actor, id); err != nil {
		return err
	}
	if s.assignmentDAO == nil {
		return nil
	}
	if err := s.assignmentDAO.RemoveStudent(ctx, id); err != nil {
		logger.Warn("Failed to remove assignments of deleted student", zap.Error(err), zap.String("studentID", id))
		return nil
	}
	s.cacheService.Invalidate(ctx, util.StudentAssignmentsKey(id), util.UserStudentsKey("*"))
	return nil
}

func (s *StudentService) checkIdentity(ctx context.Context, student *model.Student, excludeID string) error {
	taken, err := s.studentDAO.IdentityTaken(ctx, student.RUT, student.EnrollmentNumber, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return intervene_errors.ErrStudentConflict
	}
	return nil
}
