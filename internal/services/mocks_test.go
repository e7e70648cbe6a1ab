package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/analytics"
	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/models"
	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/repositories"
)

type mockStore[T any] struct {
	mock.Mock
}

func (m *mockStore[T]) Get(ctx context.Context, id string) (*T, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*T)
	return v, args.Error(1)
}

func (m *mockStore[T]) List(ctx context.Context, p repositories.ListParams) ([]*T, error) {
	args := m.Called(ctx, p)
	v, _ := args.Get(0).([]*T)
	return v, args.Error(1)
}

func (m *mockStore[T]) Count(ctx context.Context, p repositories.ListParams) (int, error) {
	args := m.Called(ctx, p)
	return args.Int(0), args.Error(1)
}

func (m *mockStore[T]) Create(ctx context.Context, e *T) (*T, error) {
	args := m.Called(ctx, e)
	v, _ := args.Get(0).(*T)
	return v, args.Error(1)
}

func (m *mockStore[T]) Update(ctx context.Context, id string, p repositories.Patch) (*T, error) {
	args := m.Called(ctx, id, p)
	v, _ := args.Get(0).(*T)
	return v, args.Error(1)
}

func (m *mockStore[T]) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockZoneRepo struct{ mockStore[models.Zone] }

type mockUserRepo struct{ mockStore[models.User] }

type mockProjectRepo struct{ mockStore[models.Project] }

func (m *mockProjectRepo) Totals(ctx context.Context) (*models.ProjectTotals, error) {
	args := m.Called(ctx)
	v, _ := args.Get(0).(*models.ProjectTotals)
	return v, args.Error(1)
}

func (m *mockProjectRepo) CountByZone(ctx context.Context) ([]analytics.GroupCount, error) {
	args := m.Called(ctx)
	v, _ := args.Get(0).([]analytics.GroupCount)
	return v, args.Error(1)
}

type mockUnitRepo struct{ mockStore[models.Unit] }

func (m *mockUnitRepo) CountByStatus(ctx context.Context) ([]analytics.GroupCount, error) {
	args := m.Called(ctx)
	v, _ := args.Get(0).([]analytics.GroupCount)
	return v, args.Error(1)
}

type mockConversationRepo struct{ mock.Mock }

func (m *mockConversationRepo) List(ctx context.Context, p repositories.ListParams) ([]*models.ConversationMessage, error) {
	args := m.Called(ctx, p)
	v, _ := args.Get(0).([]*models.ConversationMessage)
	return v, args.Error(1)
}
