package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/db"
	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/dtos"
	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/models"
	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/repositories"
	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/utils"
)

func TestUserService_CreateStoresHashOnly(t *testing.T) {
	repo := &mockUserRepo{}
	svc := NewUserService(repo)
	ctx := context.Background()

	var stored *models.User
	repo.On("Create", ctx, mock.AnythingOfType("*models.User")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(*models.User) }).
		Return(&models.User{ID: 1, Username: "ana", Role: "admin", PasswordHash: "h"}, nil)

	resp, err := svc.Create(ctx, dtos.CreateUserRequest{Username: "ana", Role: "admin", Password: "correct-horse"})

	require.NoError(t, err)
	assert.Equal(t, &dtos.UserResponse{ID: 1, Username: "ana", Role: "admin"}, resp)
	require.NotNil(t, stored)
	assert.NotEqual(t, "correct-horse", stored.PasswordHash)
	assert.True(t, utils.CheckPasswordHash("correct-horse", stored.PasswordHash))
}

func TestUserService_UpdateHashesPassword(t *testing.T) {
	repo := &mockUserRepo{}
	svc := NewUserService(repo)
	svc.hash = func(p string) (string, error) { return "hashed-" + p, nil }
	ctx := context.Background()

	repo.On("Update", ctx, "7", mock.MatchedBy(func(p repositories.Patch) bool {
		v, ok := p.Get("password_hash")
		return ok && v == "hashed-new-password" && p.Len() == 1
	})).Return(&models.User{ID: 7, Username: "leo", Role: "sales"}, nil)

	resp, err := svc.Update(ctx, "7", dtos.UpdateUserRequest{Password: dtos.Some("new-password")})

	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.ID)
	repo.AssertExpectations(t)
}

func TestUserService_DeleteMissing(t *testing.T) {
	repo := &mockUserRepo{}
	svc := NewUserService(repo)
	ctx := context.Background()
	repo.On("Delete", ctx, "42").Return(db.NotFound("user", "42"))

	err := svc.Delete(ctx, "42")

	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.StatusCode)
	assert.Equal(t, userNotFound, appErr.Message)
}

func TestUnitService_ListByProjectForcesFilter(t *testing.T) {
	repo := &mockUnitRepo{}
	svc := NewUnitService(repo)
	ctx := context.Background()
	repo.On("List", ctx, repositories.ListParams{
		Limit:   50,
		Filters: map[string]string{"project_id": "p1", "status": "Disponible"},
	}).Return([]*models.Unit{{UnitIdentifier: "A-1"}}, nil)

	units, err := svc.ListByProject(ctx, "p1", repositories.ListParams{
		Limit:   50,
		Filters: map[string]string{"project_id": "other", "status": "Disponible"},
	})

	require.NoError(t, err)
	assert.Len(t, units, 1)
}
