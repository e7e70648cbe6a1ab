package models

import (
	"time"

	"github.com/google/uuid"
)

// Project is a real-estate development. ZoneName is joined from zones on read.
type Project struct {
	ID              uuid.UUID  `json:"id"`
	Name            string     `json:"name"`
	Slug            *string    `json:"slug"`
	ZoneID          *uuid.UUID `json:"zone_id"`
	ZoneName        *string    `json:"zone_name"`
	SubZone         *string    `json:"sub_zone"`
	Developer       *string    `json:"developer"`
	MapsURL         *string    `json:"maps_url"`
	Concept         *string    `json:"concept"`
	TotalUnits      *int       `json:"total_units"`
	DeliverySummary *string    `json:"delivery_summary"`
	BrochureSlug    *string    `json:"brochure_slug"`
	RenderSlug      *string    `json:"render_slug"`
	TourURL         *string    `json:"tour_url"`
	AdminType       *string    `json:"admin_type"`
	AcceptsCrypto   *bool      `json:"accepts_crypto"`
	TurnKey         *bool      `json:"turn_key"`
	HasOceanView    *bool      `json:"has_ocean_view"`
	CondoRegime     *bool      `json:"condo_regime"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// ProjectTotals are portfolio-wide sums over all projects.
type ProjectTotals struct {
	DeclaredUnits int64
	Developers    int
}
