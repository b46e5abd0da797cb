package eventlog

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/Holmiboii/ummorpg/internal/event"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) LogEvents(ctx context.Context, events []event.Event) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

func (m *MockRepository) GetEvents(ctx context.Context, filter Filter) ([]Record, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]Record), args.Error(1)
}

func (m *MockRepository) CleanupOldEvents(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}
