package repository

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Holmiboii/ummorpg/internal/domain"
)

// MockCharacter is a mock implementation of the Character interface
type MockCharacter struct {
	mock.Mock
}

func (m *MockCharacter) Load(ctx context.Context, id string) (domain.CharacterSnapshot, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.CharacterSnapshot), args.Error(1)
}

func (m *MockCharacter) Save(ctx context.Context, snapshot domain.CharacterSnapshot) error {
	args := m.Called(ctx, snapshot)
	return args.Error(0)
}

func (m *MockCharacter) SaveMany(ctx context.Context, snapshots []domain.CharacterSnapshot) error {
	args := m.Called(ctx, snapshots)
	return args.Error(0)
}
