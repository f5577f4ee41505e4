// api/service/intervention_service.go
package service

import (
	"context"
	"time"

	"github.com/dev-mohitbeniwal/intervene/api/audit"
	"github.com/dev-mohitbeniwal/intervene/api/dao"
	intervene_errors "github.com/dev-mohitbeniwal/intervene/api/errors"
	"github.com/dev-mohitbeniwal/intervene/api/model"
	pdp_model "github.com/dev-mohitbeniwal/intervene/api/pdp/model"
	"github.com/dev-mohitbeniwal/intervene/api/util"
)

// IInterventionService defines the interface for intervention operations
type IInterventionService interface {
	ListInterventions(ctx context.Context, actor *model.Actor, filter model.InterventionFilter, page model.Page) (*model.PageResult[model.Intervention], error)
	GetIntervention(ctx context.Context, actor *model.Actor, id string) (*model.Intervention, error)
	CreateIntervention(ctx context.Context, actor *model.Actor, intervention model.Intervention) (*model.Intervention, error)
	UpdateIntervention(ctx context.Context, actor *model.Actor, id string, intervention model.Intervention) (*model.Intervention, error)
	DeleteIntervention(ctx context.Context, actor *model.Actor, id string) error
}

type InterventionService struct {
	interventionDAO *dao.InterventionDAO
	studentDAO      *dao.StudentDAO
	records         *RecordService[model.Intervention, *model.Intervention]
	validationUtil  *util.ValidationUtil
	now             func() time.Time
}

var _ IInterventionService = &InterventionService{}

func NewInterventionService(interventionDAO *dao.InterventionDAO, studentDAO *dao.StudentDAO, validationUtil *util.ValidationUtil, cacheService *util.CacheService, auditService audit.Service, eventBus *util.EventBus) *InterventionService {
	return &InterventionService{
		interventionDAO: interventionDAO,
		studentDAO:      studentDAO,
		records: NewRecordService[model.Intervention, *model.Intervention](interventionDAO, cacheService, auditService, eventBus, RecordOptions[model.Intervention]{
			Entity: pdp_model.EntityIntervention,
			Name:   util.CacheIntervention,
			Patterns: func(before, after *model.Intervention) []string {
				if before == nil {
					return util.InterventionPatterns("")
				}
				return util.InterventionPatterns(after.ID)
			},
		}),
		validationUtil: validationUtil,
		now:            time.Now,
	}
}

func (s *InterventionService) ListInterventions(ctx context.Context, actor *model.Actor, filter model.InterventionFilter, page model.Page) (*model.PageResult[model.Intervention], error) {
	return s.records.FindAll(ctx, actor, filter, page)
}

func (s *InterventionService) GetIntervention(ctx context.Context, actor *model.Actor, id string) (*model.Intervention, error) {
	return s.records.FindOne(ctx, actor, id)
}

// CreateIntervention records a new intervention reported by the actor.
func (s *InterventionService) CreateIntervention(ctx context.Context, actor *model.Actor, intervention model.Intervention) (*model.Intervention, error) {
	if err := s.records.authorize(actor, pdp_model.OperationCreate); err != nil {
		return nil, err
	}

	intervention.ID = ""
	intervention.InformerID = actor.UserID
	if intervention.DateReported.IsZero() {
		intervention.DateReported = s.now().UTC()
	}
	if intervention.Status == "" {
		intervention.Status = model.StatusPending
	}
	if intervention.Priority == "" {
		intervention.Priority = model.PriorityMedium
	}
	if err := s.validationUtil.ValidateIntervention(&intervention); err != nil {
		return nil, err
	}
	if err := s.checkStudent(ctx, intervention.StudentID); err != nil {
		return nil, err
	}
	return s.records.create(ctx, actor, &intervention)
}

// UpdateIntervention replaces the editable fields. The informer never changes.
func (s *InterventionService) UpdateIntervention(ctx context.Context, actor *model.Actor, id string, intervention model.Intervention) (*model.Intervention, error) {
	if err := s.records.authorize(actor, pdp_model.OperationUpdate); err != nil {
		return nil, err
	}
	if err := s.checkStudent(ctx, intervention.StudentID); err != nil {
		return nil, err
	}
	return s.records.modify(ctx, actor, id, audit.ActionUpdate, func(current *model.Intervention) error {
		intervention.Base = current.Base
		intervention.DeletedAt = current.DeletedAt
		intervention.InformerID = current.InformerID
		if intervention.DateReported.IsZero() {
			intervention.DateReported = current.DateReported
		}
		if intervention.Status == "" {
			intervention.Status = current.Status
		}
		if intervention.Priority == "" {
			intervention.Priority = current.Priority
		}
		if err := s.validationUtil.ValidateIntervention(&intervention); err != nil {
			return err
		}
		*current = intervention
		return nil
	})
}

func (s *InterventionService) DeleteIntervention(ctx context.Context, actor *model.Actor, id string) error {
	return s.records.Delete(ctx, actor, id)
}

func (s *InterventionService) checkStudent(ctx context.Context, studentID string) error {
	if studentID == "" {
		return intervene_errors.ErrInvalidInterventionData.WithDetails(map[string]interface{}{"student_id": "is required"})
	}
	if _, err := s.studentDAO.FindOne(ctx, studentID); err != nil {
		return err
	}
	return nil
}
