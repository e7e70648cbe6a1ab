package dtos

import (
	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/models"
	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/repositories"
)

type CreateZoneRequest struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
}

func (r CreateZoneRequest) ToModel() *models.Zone {
	return &models.Zone{Name: r.Name, Description: r.Description}
}

type UpdateZoneRequest struct {
	Name        Optional[string] `json:"name" validate:"omitempty,min=1,max=255"`
	Description Optional[string] `json:"description" validate:"omitempty,max=2000"`
}

func (r UpdateZoneRequest) ToPatch() (repositories.Patch, error) {
	b := newPatchBuilder()
	setField(b, "name", r.Name, false)
	setField(b, "description", r.Description, true)
	return b.build()
}
