package game

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Holmiboii/ummorpg/internal/world"
)

// MockService is a mock implementation of the Service interface
type MockService struct {
	mock.Mock
}

func (m *MockService) Login(ctx context.Context, id, name string) (world.View, error) {
	args := m.Called(ctx, id, name)
	return args.Get(0).(world.View), args.Error(1)
}

func (m *MockService) Logout(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockService) Submit(ctx context.Context, id string, cmd world.Command) error {
	return m.Called(ctx, id, cmd).Error(0)
}

func (m *MockService) View(ctx context.Context, id string) (world.View, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(world.View), args.Error(1)
}

func (m *MockService) Step(ctx context.Context) {
	m.Called(ctx)
}

func (m *MockService) Autosave(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockService) Shutdown(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
