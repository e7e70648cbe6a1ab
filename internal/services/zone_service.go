package services

import (
	"context"

	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/dtos"
	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/models"
	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/repositories"
)

const zoneNotFound = "Zone not found"

type ZoneService struct {
	repo repositories.ZoneRepository
}

func NewZoneService(repo repositories.ZoneRepository) *ZoneService {
	return &ZoneService{repo: repo}
}

func (s *ZoneService) List(ctx context.Context, params repositories.ListParams) ([]*models.Zone, error) {
	zones, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, storeError(err, zoneNotFound, "Failed to list zones")
	}
	return zones, nil
}

func (s *ZoneService) Get(ctx context.Context, id string) (*models.Zone, error) {
	z, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, storeError(err, zoneNotFound, "Failed to retrieve zone")
	}
	return z, nil
}

func (s *ZoneService) Create(ctx context.Context, req dtos.CreateZoneRequest) (*models.Zone, error) {
	z, err := s.repo.Create(ctx, req.ToModel())
	if err != nil {
		return nil, storeError(err, zoneNotFound, "Failed to create zone")
	}
	return z, nil
}

func (s *ZoneService) Update(ctx context.Context, id string, req dtos.UpdateZoneRequest) (*models.Zone, error) {
	patch, err := req.ToPatch()
	if err != nil {
		return nil, storeError(err, zoneNotFound, "Failed to update zone")
	}
	z, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, storeError(err, zoneNotFound, "Failed to update zone")
	}
	return z, nil
}

// Delete removes a zone; projects that referenced it lose their zone.
func (s *ZoneService) Delete(ctx context.Context, id string) error {
	return storeError(s.repo.Delete(ctx, id), zoneNotFound, "Failed to delete zone")
}
