package dtos

import (
	"github.com/google/uuid"

	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/models"
	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/repositories"
	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/utils"
)

type CreateUnitRequest struct {
	ProjectID      uuid.UUID `json:"project_id" validate:"required"`
	UnitIdentifier string    `json:"unit_identifier" validate:"required,max=100"`
	Typology       *string   `json:"typology" validate:"omitempty,max=100"`
	Level          *string   `json:"level" validate:"omitempty,max=50"`
	TotalAreaSqm   *float64  `json:"total_area_sqm" validate:"omitempty,gte=0"`
	Status         *string   `json:"status" validate:"omitempty,max=50"`
	DeliveryDate   *string   `json:"delivery_date" validate:"omitempty,max=100"`
	PriceListURL   *string   `json:"price_list_url" validate:"omitempty,max=2048"`
}

// ToModel defaults a missing status to available.
func (r CreateUnitRequest) ToModel() *models.Unit {
	u := &models.Unit{
		ProjectID:      r.ProjectID,
		UnitIdentifier: r.UnitIdentifier,
		Typology:       r.Typology,
		Level:          r.Level,
		TotalAreaSqm:   r.TotalAreaSqm,
		Status:         r.Status,
		DeliveryDate:   r.DeliveryDate,
		PriceListURL:   r.PriceListURL,
	}
	if u.Status == nil {
		u.Status = utils.Ptr(models.UnitStatusAvailable)
	}
	return u
}

// UpdateUnitRequest has no project_id: a unit never changes project.
type UpdateUnitRequest struct {
	UnitIdentifier Optional[string]  `json:"unit_identifier" validate:"omitempty,min=1,max=100"`
	Typology       Optional[string]  `json:"typology" validate:"omitempty,max=100"`
	Level          Optional[string]  `json:"level" validate:"omitempty,max=50"`
	TotalAreaSqm   Optional[float64] `json:"total_area_sqm" validate:"omitempty,gte=0"`
	Status         Optional[string]  `json:"status" validate:"omitempty,max=50"`
	DeliveryDate   Optional[string]  `json:"delivery_date" validate:"omitempty,max=100"`
	PriceListURL   Optional[string]  `json:"price_list_url" validate:"omitempty,max=2048"`
}

func (r UpdateUnitRequest) ToPatch() (repositories.Patch, error) {
	b := newPatchBuilder()
	setField(b, "unit_identifier", r.UnitIdentifier, false)
	setField(b, "typology", r.Typology, true)
	setField(b, "level", r.Level, true)
	setField(b, "total_area_sqm", r.TotalAreaSqm, true)
	setField(b, "status", r.Status, true)
	setField(b, "delivery_date", r.DeliveryDate, true)
	setField(b, "price_list_url", r.PriceListURL, true)
	return b.build()
}
