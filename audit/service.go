// api/audit/service.go
package audit

import (
	"context"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	logger "github.com/dev-mohitbeniwal/intervene/api/logging"
)

type Service interface {
	// Record appends an audit fact. Sink failures are logged, never returned.
	Record(ctx context.Context, entry Entry)
	Query(ctx context.Context, q Query) ([]AuditRecord, int64, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) Record(ctx context.Context, entry Entry) {
	record := AuditRecord{
		ID:         uuid.NewString(),
		EntityName: entry.EntityName,
		Action:     entry.Action,
		OldValues:  snapshot(entry.Before),
		NewValues:  snapshot(entry.After),
		IPAddress:  entry.Origin.IP,
		UserAgent:  entry.Origin.UserAgent,
		Module:     ModuleFor(entry.EntityName),
		CreatedAt:  s.now().UTC(),
	}
	if entry.EntityID != "" {
		record.EntityID = &entry.EntityID
	}
	if entry.Actor != nil && entry.Actor.UserID != "" {
		userID := entry.Actor.UserID
		record.UserID = &userID
	}
	if entry.Details != "" {
		record.Details = &entry.Details
	}

	if err := s.repo.Append(ctx, record); err != nil {
		logger.Error("Failed to create audit log",
			zap.Error(err),
			zap.String("entity", entry.EntityName),
			zap.String("action", string(entry.Action)))
	}
}

func (s *service) Query(ctx context.Context, q Query) ([]AuditRecord, int64, error) {
	q.Page = q.Page.Normalize()
	return s.repo.Query(ctx, q)
}

func snapshot(v any) datatypes.JSON {
	if v == nil {
		return nil
	}
	data, err := sonic.ConfigStd.Marshal(v)
	if err != nil {
		logger.Warn("Failed to serialize audit snapshot", zap.Error(err))
		return nil
	}
	return datatypes.JSON(data)
}
