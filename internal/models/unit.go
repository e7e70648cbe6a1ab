package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	UnitStatusAvailable = "Disponible"
	UnitStatusSold      = "Vendida"
	UnitStatusReserved  = "Reservada"
)

// Unit is a sellable item within a project. ProjectID never changes after
// creation.
type Unit struct {
	ID             uuid.UUID `json:"id"`
	ProjectID      uuid.UUID `json:"project_id"`
	UnitIdentifier string    `json:"unit_identifier"`
	Typology       *string   `json:"typology"`
	Level          *string   `json:"level"`
	TotalAreaSqm   *float64  `json:"total_area_sqm"`
	Status         *string   `json:"status"`
	DeliveryDate   *string   `json:"delivery_date"`
	PriceListURL   *string   `json:"price_list_url"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
