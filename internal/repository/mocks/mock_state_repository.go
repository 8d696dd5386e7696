package mocks

import (
	"context"

	"docverify/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockStateRepository struct {
	mock.Mock
}

func (m *MockStateRepository) Load(ctx context.Context, key string) (repository.Snapshot, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(repository.Snapshot), args.Error(1)
}

func (m *MockStateRepository) Save(ctx context.Context, key string, data []byte, expectedVersion int64) (int64, error) {
	args := m.Called(ctx, key, data, expectedVersion)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStateRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockStateRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
