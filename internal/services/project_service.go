package services

import (
	"context"

	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/dtos"
	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/models"
	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/repositories"
)

const projectNotFound = "Project not found"

type ProjectService struct {
	repo repositories.ProjectRepository
}

func NewProjectService(repo repositories.ProjectRepository) *ProjectService {
	return &ProjectService{repo: repo}
}

func (s *ProjectService) List(ctx context.Context, params repositories.ListParams) ([]*models.Project, error) {
	projects, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, storeError(err, projectNotFound, "Failed to list projects")
	}
	return projects, nil
}

func (s *ProjectService) Get(ctx context.Context, id string) (*models.Project, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, storeError(err, projectNotFound, "Failed to retrieve project")
	}
	return p, nil
}

func (s *ProjectService) Create(ctx context.Context, req dtos.CreateProjectRequest) (*models.Project, error) {
	p, err := s.repo.Create(ctx, req.ToModel())
	if err != nil {
		return nil, storeError(err, projectNotFound, "Failed to create project")
	}
	return p, nil
}

func (s *ProjectService) Update(ctx context.Context, id string, req dtos.UpdateProjectRequest) (*models.Project, error) {
	patch, err := req.ToPatch()
	if err != nil {
		return nil, storeError(err, projectNotFound, "Failed to update project")
	}
	p, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, storeError(err, projectNotFound, "Failed to update project")
	}
	return p, nil
}

// Delete removes a project. Its units are left in place.
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	return storeError(s.repo.Delete(ctx, id), projectNotFound, "Failed to delete project")
}
