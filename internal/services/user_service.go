package services

import (
	"context"

	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/dtos"
	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/repositories"
	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/utils"
)

const userNotFound = "User not found"

// UserService never returns password hashes to its callers.
type UserService struct {
	repo repositories.UserRepository
	hash func(string) (string, error)
}

func NewUserService(repo repositories.UserRepository) *UserService {
	return &UserService{repo: repo, hash: utils.HashPassword}
}

func (s *UserService) List(ctx context.Context, params repositories.ListParams) ([]dtos.UserResponse, error) {
	users, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, storeError(err, userNotFound, "Failed to list users")
	}
	out := make([]dtos.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, dtos.NewUserResponse(u))
	}
	return out, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*dtos.UserResponse, error) {
	u, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, storeError(err, userNotFound, "Failed to retrieve user")
	}
	resp := dtos.NewUserResponse(u)
	return &resp, nil
}

func (s *UserService) Create(ctx context.Context, req dtos.CreateUserRequest) (*dtos.UserResponse, error) {
	hash, err := s.hash(req.Password)
	if err != nil {
		return nil, storeError(err, userNotFound, "Failed to create user")
	}
	u, err := s.repo.Create(ctx, req.ToModel(hash))
	if err != nil {
		return nil, storeError(err, userNotFound, "Failed to create user")
	}
	resp := dtos.NewUserResponse(u)
	return &resp, nil
}

func (s *UserService) Update(ctx context.Context, id string, req dtos.UpdateUserRequest) (*dtos.UserResponse, error) {
	patch, err := req.ToPatch(s.hash)
	if err != nil {
		return nil, storeError(err, userNotFound, "Failed to update user")
	}
	u, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, storeError(err, userNotFound, "Failed to update user")
	}
	resp := dtos.NewUserResponse(u)
	return &resp, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	return storeError(s.repo.Delete(ctx, id), userNotFound, "Failed to delete user")
}
