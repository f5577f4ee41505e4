// test/mock/audit.go
package mock

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/dev-mohitbeniwal/intervene/api/audit"
)

// MockAuditService is a mock implementation of audit.Service
type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) Record(ctx context.Context, entry audit.Entry) {
	m.Called(ctx, entry)
}

func (m *MockAuditService) Query(ctx context.Context, q audit.Query) ([]audit.AuditRecord, int64, error) {
	args := m.Called(ctx, q)
	records, _ := args.Get(0).([]audit.AuditRecord)
	return records, args.Get(1).(int64), args.Error(2)
}

// RecordingAuditService keeps every entry in memory.
type RecordingAuditService struct {
	mu      sync.Mutex
	entries []audit.Entry
}

func (r *RecordingAuditService) Record(_ context.Context, entry audit.Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
}

func (r *RecordingAuditService) Query(context.Context, audit.Query) ([]audit.AuditRecord, int64, error) {
	return nil, 0, nil
}

// Actions returns the recorded actions in order.
func (r *RecordingAuditService) Actions() []audit.Action {
	r.mu.Lock()
	defer r.mu.Unlock()
	actions := make([]audit.Action, len(r.entries))
	for i, e := range r.entries {
		actions[i] = e.Action
	}
	return actions
}

// Entries returns a copy of the recorded entries.
func (r *RecordingAuditService) Entries() []audit.Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]audit.Entry(nil), r.entries...)
}
