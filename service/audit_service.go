// api/service/audit_service.go
package service

import (
	"context"

	"github.com/dev-mohitbeniwal/intervene/api/audit"
	intervene_errors "github.com/dev-mohitbeniwal/intervene/api/errors"
	"github.com/dev-mohitbeniwal/intervene/api/model"
	"github.com/dev-mohitbeniwal/intervene/api/pdp/engine"
	pdp_model "github.com/dev-mohitbeniwal/intervene/api/pdp/model"
)

// IAuditQueryService exposes the audit trail to administrators
type IAuditQueryService interface {
	QueryAudit(ctx context.Context, actor *model.Actor, q audit.Query) (*model.PageResult[audit.AuditRecord], error)
}

type AuditQueryService struct {
	auditService audit.Service
}

var _ IAuditQueryService = &AuditQueryService{}

func NewAuditQueryService(auditService audit.Service) *AuditQueryService {
	return &AuditQueryService{auditService: auditService}
}

// QueryAudit searches the trail. Reading it is neither cached nor audited.
func (s *AuditQueryService) QueryAudit(ctx context.Context, actor *model.Actor, q audit.Query) (*model.PageResult[audit.AuditRecord], error) {
	if err := authorizeAction(actor, pdp_model.ActionQueryAudit); err != nil {
		return nil, err
	}
	if !engine.Allowed(actor.Role, pdp_model.EntityAudit, pdp_model.OperationRead) {
		return nil, intervene_errors.ErrForbidden
	}
	if q.DateFrom != nil && q.DateTo != nil && q.DateTo.Before(*q.DateFrom) {
		return nil, intervene_errors.ErrInvalidFilter.WithDetails(map[string]interface{}{"dateTo": "must not be before dateFrom"})
	}
	q.Page = q.Page.Normalize()
	records, total, err := s.auditService.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	return model.NewPageResult(records, total, q.Page), nil
}
