// test/mock/neo4j.go
package mock

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockGraphRunner is a mock implementation of dao.GraphRunner
type MockGraphRunner struct {
	mock.Mock
}

func (m *MockGraphRunner) Read(ctx context.Context, cypher string, params map[string]any) ([]map[string]any, error) {
	args := m.Called(ctx, cypher, params)
	rows, _ := args.Get(0).([]map[string]any)
	return rows, args.Error(1)
}

func (m *MockGraphRunner) Write(ctx context.Context, cypher string, params map[string]any) ([]map[string]any, error) {
	args := m.Called(ctx, cypher, params)
	rows, _ := args.Get(0).([]map[string]any)
	return rows, args.Error(1)
}
