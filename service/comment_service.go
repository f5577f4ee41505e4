// api/service/comment_service.go
package service

import (
	"context"

	"github.com/dev-mohitbeniwal/intervene/api/audit"
	"github.com/dev-mohitbeniwal/intervene/api/dao"
	intervene_errors "github.com/dev-mohitbeniwal/intervene/api/errors"
	"github.com/dev-mohitbeniwal/intervene/api/model"
	pdp_model "github.com/dev-mohitbeniwal/intervene/api/pdp/model"
	"github.com/dev-mohitbeniwal/intervene/api/util"
)

// ICommentService defines the interface for intervention comment operations
type ICommentService interface {
	ListComments(ctx context.Context, actor *model.Actor, interventionID string, filter model.CommentFilter, page model.Page) (*model.PageResult[model.InterventionComment], error)
	AddComment(ctx context.Context, actor *model.Actor, interventionID string, comment model.InterventionComment) (*model.InterventionComment, error)
	UpdateComment(ctx context.Context, actor *model.Actor, id string, comment model.InterventionComment) (*model.InterventionComment, error)
	DeleteComment(ctx context.Context, actor *model.Actor, id string) error
}

type CommentService struct {
	commentDAO      *dao.CommentDAO
	interventionDAO *dao.InterventionDAO
	records         *RecordService[model.InterventionComment, *model.InterventionComment]
	validationUtil  *util.ValidationUtil
}

var _ ICommentService = &CommentService{}

func NewCommentService(commentDAO *dao.CommentDAO, interventionDAO *dao.InterventionDAO, validationUtil *util.ValidationUtil, cacheService *util.CacheService, auditService audit.Service, eventBus *util.EventBus) *CommentService {
	return &CommentService{
		commentDAO:      commentDAO,
		interventionDAO: interventionDAO,
		records: NewRecordService[model.InterventionComment, *model.InterventionComment](commentDAO, cacheService, auditService, eventBus, RecordOptions[model.InterventionComment]{
			Entity: pdp_model.EntityComment,
			Name:   util.CacheComment,
			Patterns: func(before, after *model.InterventionComment) []string {
				if before == nil {
					return util.CommentPatterns(after.InterventionID, "")
				}
				return util.CommentPatterns(after.InterventionID, after.ID)
			},
		}),
		validationUtil: validationUtil,
	}
}

// ListComments returns one page of the comments on an intervention.
func (s *CommentService) ListComments(ctx context.Context, actor *model.Actor, interventionID string, filter model.CommentFilter, page model.Page) (*model.PageResult[model.InterventionComment], error) {
	if err := s.records.authorize(actor, pdp_model.OperationRead); err != nil {
		return nil, err
	}
	if _, err := s.interventionDAO.FindOne(ctx, interventionID); err != nil {
		return nil, err
	}
	filter.InterventionID = interventionID
	page = page.Normalize()
	return s.records.findAllAt(ctx, actor, util.CommentListKey(interventionID, filter, page), filter, page)
}

// AddComment attaches a comment by the actor to an intervention.
func (s *CommentService) AddComment(ctx context.Context, actor *model.Actor, interventionID string, comment model.InterventionComment) (*model.InterventionComment, error) {
	if err := s.records.authorize(actor, pdp_model.OperationCreate); err != nil {
		return nil, err
	}
	if _, err := s.interventionDAO.FindOne(ctx, interventionID); err != nil {
		return nil, err
	}

	comment.ID = ""
	comment.InterventionID = interventionID
	comment.UserID = actor.UserID
	if comment.Type == "" {
		comment.Type = model.CommentFollowUp
	}
	if err := s.validationUtil.ValidateComment(&comment); err != nil {
		return nil, err
	}
	return s.records.create(ctx, actor, &comment)
}

// UpdateComment changes a comment. Only its author or an Admin may do so.
func (s *CommentService) UpdateComment(ctx context.Context, actor *model.Actor, id string, comment model.InterventionComment) (*model.InterventionComment, error) {
	if err := s.records.authorize(actor, pdp_model.OperationUpdate); err != nil {
		return nil, err
	}
	return s.records.modify(ctx, actor, id, audit.ActionUpdate, func(current *model.InterventionComment) error {
		if !actor.IsAdmin() && current.UserID != actor.UserID {
			return intervene_errors.ErrForbidden.WithMessage("only the author or an administrator can edit this comment")
		}
		current.Content = comment.Content
		if comment.Type != "" {
			current.Type = comment.Type
		}
		current.Evidence = comment.Evidence
		current.IsPrivate = comment.IsPrivate
		return s.validationUtil.ValidateComment(current)
	})
}

// DeleteComment removes a comment. The matrix limits deletion to Admins.
func (s *CommentService) DeleteComment(ctx context.Context, actor *model.Actor, id string) error {
	return s.records.Delete(ctx, actor, id)
}
