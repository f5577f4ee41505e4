// api/service/record_service.go
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

type recordPtr[T any] interface {
	*T
	model.Identifiable
}

// Mutator loads the record id, applies mutate and persists the result.
type Mutator[T any] func(ctx context.Context, id string, mutate func(*T) error) (*T, error)

// RecordOptions describe how one entity is cached, audited and invalidated.
type RecordOptions[T any] struct {
	// Entity is the authorization matrix entity.
	Entity pdp_model.Entity
	// Name is the cache namespace and audit entity name.
	Name string
	// Patterns lists the cache patterns a write makes stale. before is nil on create.
	Patterns func(before, after *T) []string
	// Snapshot renders a record for the audit trail. Defaults to the record itself.
	Snapshot func(*T) any
	// Mutator replaces the default read-modify-save update.
	Mutator Mutator[T]
}

// RecordService is the permission-gated, cache-aside CRUD shared by every
// entity service. Reads are memoized; writes go to the repository and then
// purge the affected keys. Every call leaves one audit fact.
type RecordService[T any, PT recordPtr[T]] struct {
	repo     dao.Repository[T]
	cache    *util.CacheService
	audit    audit.Service
	eventBus *util.EventBus
	opts     RecordOptions[T]
}

func NewRecordService[T any, PT recordPtr[T]](repo dao.Repository[T], cacheService *util.CacheService, auditService audit.Service, eventBus *util.EventBus, opts RecordOptions[T]) *RecordService[T, PT] {
	s := &RecordService[T, PT]{
		repo:     repo,
		cache:    cacheService,
		audit:    auditService,
		eventBus: eventBus,
		opts:     opts,
	}
	if s.opts.Snapshot == nil {
		s.opts.Snapshot = func(record *T) any { return record }
	}
	if s.opts.Mutator == nil {
		s.opts.Mutator = s.readModifySave
	}
	return s
}

// authorize consults the authorization matrix.
func (s *RecordService[T, PT]) authorize(actor *model.Actor, op pdp_model.Operation) error {
	if actor == nil {
		return intervene_errors.ErrUnauthorized
	}
	decision := engine.Decide(actor.Role, s.opts.Entity, op)
	if !decision.Allowed {
		logger.Warn("Access denied",
			zap.String("userID", actor.UserID),
			zap.String("role", string(actor.Role)),
			zap.String("entity", string(s.opts.Entity)),
			zap.String("operation", string(op)))
		return intervene_errors.ErrForbidden.WithDetails(map[string]interface{}{"reason": decision.Reason})
	}
	return nil
}

// authorizeAction checks a privileged action outside plain CRUD.
func authorizeAction(actor *model.Actor, action pdp_model.Action) error {
	if actor == nil {
		return intervene_errors.ErrUnauthorized
	}
	if !engine.AllowedAction(actor.Role, action) {
		logger.Warn("Privileged action denied",
			zap.String("userID", actor.UserID),
			zap.String("role", string(actor.Role)),
			zap.String("action", string(action)))
		return intervene_errors.ErrForbidden.WithDetails(map[string]interface{}{"reason": "action " + string(action) + " requires an administrator"})
	}
	return nil
}

// FindAll returns one page of records matching filter.
func (s *RecordService[T, PT]) FindAll(ctx context.Context, actor *model.Actor, filter model.Filter, page model.Page) (*model.PageResult[T], error) {
	page = page.Normalize()
	return s.findAllAt(ctx, actor, util.ListKey(s.opts.Name, filter, page), filter, page)
}

func (s *RecordService[T, PT]) findAllAt(ctx context.Context, actor *model.Actor, key string, filter model.Filter, page model.Page) (*model.PageResult[T], error) {
	if err := s.authorize(actor, pdp_model.OperationRead); err != nil {
		return nil, err
	}
	page = page.Normalize()
	start := time.Now()

	result, err := cache.GetOrFetch(ctx, s.cache.Store(), key, s.cache.TTL().Default, func(ctx context.Context) (*model.PageResult[T], error) {
		records, total, err := s.repo.Find(ctx, filter, page)
		if err != nil {
			return nil, err
		}
		return model.NewPageResult(records, total, page), nil
	})
	if err != nil {
		logger.Error("Error listing records", zap.Error(err), zap.String("entity", s.opts.Name))
		return nil, err
	}
	logger.Debug("Listed records", zap.String("entity", s.opts.Name), zap.String("key", key), elapsed(start))

	s.record(ctx, actor, audit.Entry{EntityName: s.opts.Name, Action: audit.ActionList, Details: key})
	return result, nil
}

// FindOne returns the record id.
func (s *RecordService[T, PT]) FindOne(ctx context.Context, actor *model.Actor, id string) (*T, error) {
	if err := s.authorize(actor, pdp_model.OperationRead); err != nil {
		return nil, err
	}

	record, err := cache.GetOrFetch(ctx, s.cache.Store(), util.DetailKey(s.opts.Name, id), s.cache.TTL().Default, func(ctx context.Context) (*T, error) {
		return s.repo.FindOne(ctx, id)
	})
	if err != nil {
		return nil, err
	}

	s.record(ctx, actor, audit.Entry{EntityName: s.opts.Name, EntityID: id, Action: audit.ActionView})
	return record, nil
}

// Create stores a new record.
func (s *RecordService[T, PT]) Create(ctx context.Context, actor *model.Actor, record *T) (*T, error) {
	if err := s.authorize(actor, pdp_model.OperationCreate); err != nil {
		return nil, err
	}
	return s.create(ctx, actor, record)
}

func (s *RecordService[T, PT]) create(ctx context.Context, actor *model.Actor, record *T) (*T, error) {
	if err := s.repo.Save(ctx, record); err != nil {
		logger.Error("Error creating record", zap.Error(err), zap.String("entity", s.opts.Name))
		return nil, err
	}
	id := PT(record).GetID()

	s.invalidate(ctx, nil, record)
	s.record(ctx, actor, audit.Entry{
		EntityName: s.opts.Name,
		EntityID:   id,
		Action:     audit.ActionCreate,
		After:      s.opts.Snapshot(record),
	})
	s.publish(ctx, actor, id, "created")

	logger.Info("Record created", zap.String("entity", s.opts.Name), zap.String("id", id), zap.String("actorID", actor.UserID))
	return record, nil
}

// Update applies mutate to the stored record id.
func (s *RecordService[T, PT]) Update(ctx context.Context, actor *model.Actor, id string, mutate func(*T) error) (*T, error) {
	if err := s.authorize(actor, pdp_model.OperationUpdate); err != nil {
		return nil, err
	}
	return s.modify(ctx, actor, id, audit.ActionUpdate, mutate)
}

// modify writes without consulting the matrix; callers authorize first.
func (s *RecordService[T, PT]) modify(ctx context.Context, actor *model.Actor, id string, action audit.Action, mutate func(*T) error) (*T, error) {
	var before T
	updated, err := s.opts.Mutator(ctx, id, func(record *T) error {
		before = *record
		return mutate(record)
	})
	if err != nil {
		if intervene_errors.IsClientError(err) {
			return nil, err
		}
		logger.Error("Error updating record", zap.Error(err), zap.String("entity", s.opts.Name), zap.String("id", id))
		return nil, err
	}

	s.invalidate(ctx, &before, updated)
	s.record(ctx, actor, audit.Entry{
		EntityName: s.opts.Name,
		EntityID:   id,
		Action:     action,
		Before:     s.opts.Snapshot(&before),
		After:      s.opts.Snapshot(updated),
	})
	s.publish(ctx, actor, id, "updated")

	logger.Info("Record updated", zap.String("entity", s.opts.Name), zap.String("id", id), zap.String("action", string(action)))
	return updated, nil
}

// Delete removes the record id.
func (s *RecordService[T, PT]) Delete(ctx context.Context, actor *model.Actor, id string) error {
	if err := s.authorize(actor, pdp_model.OperationDelete); err != nil {
		return err
	}

	existing, err := s.repo.FindOne(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Remove(ctx, id); err != nil {
		logger.Error("Error deleting record", zap.Error(err), zap.String("entity", s.opts.Name), zap.String("id", id))
		return err
	}

	s.invalidate(ctx, existing, existing)
	s.record(ctx, actor, audit.Entry{
		EntityName: s.opts.Name,
		EntityID:   id,
		Action:     audit.ActionDelete,
		Before:     s.opts.Snapshot(existing),
	})
	s.publish(ctx, actor, id, "deleted")

	logger.Info("Record deleted", zap.String("entity", s.opts.Name), zap.String("id", id), zap.String("actorID", actor.UserID))
	return nil
}

func (s *RecordService[T, PT]) readModifySave(ctx context.Context, id string, mutate func(*T) error) (*T, error) {
	record, err := s.repo.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := mutate(record); err != nil {
		return nil, err
	}
	PT(record).SetID(id)
	if err := s.repo.Save(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *RecordService[T, PT]) invalidate(ctx context.Context, before, after *T) {
	if s.opts.Patterns == nil {
		return
	}
	if failed := s.cache.Invalidate(ctx, s.opts.Patterns(before, after)...); len(failed) > 0 {
		logger.Warn("Stale cache entries may be served until they expire",
			zap.String("entity", s.opts.Name),
			zap.Strings("patterns", failed),
			zap.Duration("ttl", s.cache.TTL().Default))
	}
}

func (s *RecordService[T, PT]) record(ctx context.Context, actor *model.Actor, entry audit.Entry) {
	entry.Actor = actor
	if actor != nil {
		entry.Origin = actor.Origin
	}
	s.audit.Record(ctx, entry)
}

func (s *RecordService[T, PT]) publish(ctx context.Context, actor *model.Actor, id, change string) {
	if s.eventBus == nil {
		return
	}
	s.eventBus.Publish(ctx, util.EventRecordChanged, util.RecordChangedEvent{
		Entity:     s.opts.Name,
		EntityID:   id,
		ChangeType: change,
		ActorID:    actor.UserID,
	})
}

// elapsed is the time since start as a log field.
func elapsed(start time.Time) zap.Field {
	return zap.Duration("duration", time.Since(start))
}
