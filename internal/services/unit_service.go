package services

import (
	"context"

	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/dtos"
	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/models"
	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/repositories"
)

const unitNotFound = "Unit not found"

type UnitService struct {
	repo repositories.UnitRepository
}

func NewUnitService(repo repositories.UnitRepository) *UnitService {
	return &UnitService{repo: repo}
}

func (s *UnitService) List(ctx context.Context, params repositories.ListParams) ([]*models.Unit, error) {
	units, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, storeError(err, unitNotFound, "Failed to list units")
	}
	return units, nil
}

// ListByProject lists the units of one project in their default order.
func (s *UnitService) ListByProject(ctx context.Context, projectID string, params repositories.ListParams) ([]*models.Unit, error) {
	filters := map[string]string{}
	for k, v := range params.Filters {
		filters[k] = v
	}
	filters["project_id"] = projectID
	params.Filters = filters
	return s.List(ctx, params)
}

func (s *UnitService) Get(ctx context.Context, id string) (*models.Unit, error) {
	u, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, storeError(err, unitNotFound, "Failed to retrieve unit")
	}
	return u, nil
}

func (s *UnitService) Create(ctx context.Context, req dtos.CreateUnitRequest) (*models.Unit, error) {
	u, err := s.repo.Create(ctx, req.ToModel())
	if err != nil {
		return nil, storeError(err, unitNotFound, "Failed to create unit")
	}
	return u, nil
}

func (s *UnitService) Update(ctx context.Context, id string, req dtos.UpdateUnitRequest) (*models.Unit, error) {
	patch, err := req.ToPatch()
	if err != nil {
		return nil, storeError(err, unitNotFound, "Failed to update unit")
	}
	u, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, storeError(err, unitNotFound, "Failed to update unit")
	}
	return u, nil
}

func (s *UnitService) Delete(ctx context.Context, id string) error {
	return storeError(s.repo.Delete(ctx, id), unitNotFound, "Failed to delete unit")
}
