// api/dao/repository.go
package dao

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	intervene_errors "github.com/dev-mohitbeniwal/intervene/api/errors"
	logger "github.com/dev-mohitbeniwal/intervene/api/logging"
	"github.com/dev-mohitbeniwal/intervene/api/model"
)

// Repository is the record store seen by the services: find, save, remove
// and count over one entity, keyed by typed filters.
type Repository[T any] interface {
	Find(ctx context.Context, filter model.Filter, page model.Page) ([]T, int64, error)
	FindOne(ctx context.Context, id string) (*T, error)
	Save(ctx context.Context, record *T) error
	Remove(ctx context.Context, id string) error
	Count(ctx context.Context, filter model.Filter) (int64, error)
}

// GormRepository implements Repository for any gorm model embedding model.Base.
type GormRepository[T any] struct {
	db       *gorm.DB
	entity   string
	notFound *intervene_errors.AppError
	conflict *intervene_errors.AppError
}

var _ Repository[model.Student] = &GormRepository[model.Student]{}

func NewGormRepository[T any](db *gorm.DB, entity string, notFound, conflict *intervene_errors.AppError) *GormRepository[T] {
	return &GormRepository[T]{db: db, entity: entity, notFound: notFound, conflict: conflict}
}

// DB exposes the session for entity specific queries.
func (r *GormRepository[T]) DB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

func (r *GormRepository[T]) Find(ctx context.Context, filter model.Filter, page model.Page) ([]T, int64, error) {
	start := time.Now()
	page = page.Normalize()

	tx := r.db.WithContext(ctx).Model(new(T))
	if filter != nil {
		if conditions := filter.Conditions(); len(conditions) > 0 {
			tx = tx.Where(conditions)
		}
	}
	tx = tx.Session(&gorm.Session{})

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, r.mapError("find", err)
	}

	records := make([]T, 0, page.Limit)
	err := tx.Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&records).Error
	if err != nil {
		return nil, 0, r.mapError("find", err)
	}

	logger.Debug("Records listed",
		zap.String("entity", r.entity),
		zap.Int("count", len(records)),
		zap.Int64("total", total),
		zap.Duration("duration", time.Since(start)))
	return records, total, nil
}

func (r *GormRepository[T]) FindOne(ctx context.Context, id string) (*T, error) {
	var record T
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		return nil, r.mapError("find_one", err)
	}
	return &record, nil
}

// FindBy returns the first record matching conditions.
func (r *GormRepository[T]) FindBy(ctx context.Context, conditions map[string]any) (*T, error) {
	var record T
	if err := r.db.WithContext(ctx).Where(conditions).First(&record).Error; err != nil {
		return nil, r.mapError("find_by", err)
	}
	return &record, nil
}

// Save inserts records without an id and updates the rest.
func (r *GormRepository[T]) Save(ctx context.Context, record *T) error {
	start := time.Now()
	tx := r.db.WithContext(ctx)

	var err error
	if identifiable, ok := any(record).(model.Identifiable); ok && identifiable.GetID() != "" {
		err = tx.Save(record).Error
	} else {
		err = tx.Create(record).Error
	}
	if err != nil {
		return r.mapError("save", err)
	}

	logger.Debug("Record saved",
		zap.String("entity", r.entity),
		zap.Duration("duration", time.Since(start)))
	return nil
}

// Remove deletes the record, softly for models with a DeletedAt column.
func (r *GormRepository[T]) Remove(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(new(T), "id = ?", id)
	if res.Error != nil {
		return r.mapError("remove", res.Error)
	}
	if res.RowsAffected == 0 {
		return r.notFound
	}
	return nil
}

func (r *GormRepository[T]) Count(ctx context.Context, filter model.Filter) (int64, error) {
	tx := r.db.WithContext(ctx).Model(new(T))
	if filter != nil {
		if conditions := filter.Conditions(); len(conditions) > 0 {
			tx = tx.Where(conditions)
		}
	}
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return 0, r.mapError("count", err)
	}
	return total, nil
}

// Exists reports whether any record matches the where clause.
func (r *GormRepository[T]) Exists(ctx context.Context, query string, args ...any) (bool, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(new(T)).Where(query, args...).Count(&total).Error; err != nil {
		return false, r.mapError("exists", err)
	}
	return total > 0, nil
}

func (r *GormRepository[T]) mapError(op string, err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return r.notFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return r.conflict.WithCause(err)
	default:
		logger.Error("Database operation failed",
			zap.String("entity", r.entity),
			zap.String("op", op),
			zap.Error(err))
		return intervene_errors.ErrDatabaseOperation.WithCause(err)
	}
}
