package dtos

import (
	"github.com/google/uuid"

	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/models"
	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/repositories"
	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/utils"
)

type CreateProjectRequest struct {
	Name            string     `json:"name" validate:"required,max=255"`
	Slug            *string    `json:"slug" validate:"omitempty,max=255"`
	ZoneID          *uuid.UUID `json:"zone_id"`
	SubZone         *string    `json:"sub_zone" validate:"omitempty,max=255"`
	Developer       *string    `json:"developer" validate:"omitempty,max=255"`
	MapsURL         *string    `json:"maps_url" validate:"omitempty,max=2048"`
	Concept         *string    `json:"concept"`
	TotalUnits      *int       `json:"total_units" validate:"omitempty,min=0"`
	DeliverySummary *string    `json:"delivery_summary"`
	BrochureSlug    *string    `json:"brochure_slug" validate:"omitempty,max=255"`
	RenderSlug      *string    `json:"render_slug" validate:"omitempty,max=255"`
	TourURL         *string    `json:"tour_url" validate:"omitempty,max=2048"`
	AdminType       *string    `json:"admin_type" validate:"omitempty,max=255"`
	AcceptsCrypto   *bool      `json:"accepts_crypto"`
	TurnKey         *bool      `json:"turn_key"`
	HasOceanView    *bool      `json:"has_ocean_view"`
	CondoRegime     *bool      `json:"condo_regime"`
}

// ToModel applies the creation defaults: zero declared units and every
// flag false.
func (r CreateProjectRequest) ToModel() *models.Project {
	p := &models.Project{
		Name:            r.Name,
		Slug:            r.Slug,
		ZoneID:          r.ZoneID,
		SubZone:         r.SubZone,
		Developer:       r.Developer,
		MapsURL:         r.MapsURL,
		Concept:         r.Concept,
		TotalUnits:      r.TotalUnits,
		DeliverySummary: r.DeliverySummary,
		BrochureSlug:    r.BrochureSlug,
		RenderSlug:      r.RenderSlug,
		TourURL:         r.TourURL,
		AdminType:       r.AdminType,
		AcceptsCrypto:   r.AcceptsCrypto,
		TurnKey:         r.TurnKey,
		HasOceanView:    r.HasOceanView,
		CondoRegime:     r.CondoRegime,
	}
	if p.TotalUnits == nil {
		p.TotalUnits = utils.Ptr(0)
	}
	for _, flag := range []**bool{&p.AcceptsCrypto, &p.TurnKey, &p.HasOceanView, &p.CondoRegime} {
		if *flag == nil {
			*flag = utils.Ptr(false)
		}
	}
	return p
}

type UpdateProjectRequest struct {
	Name            Optional[string]    `json:"name" validate:"omitempty,min=1,max=255"`
	Slug            Optional[string]    `json:"slug" validate:"omitempty,max=255"`
	ZoneID          Optional[uuid.UUID] `json:"zone_id"`
	SubZone         Optional[string]    `json:"sub_zone" validate:"omitempty,max=255"`
	Developer       Optional[string]    `json:"developer" validate:"omitempty,max=255"`
	MapsURL         Optional[string]    `json:"maps_url" validate:"omitempty,max=2048"`
	Concept         Optional[string]    `json:"concept"`
	TotalUnits      Optional[int]       `json:"total_units" validate:"omitempty,min=0"`
	DeliverySummary Optional[string]    `json:"delivery_summary"`
	BrochureSlug    Optional[string]    `json:"brochure_slug" validate:"omitempty,max=255"`
	RenderSlug      Optional[string]    `json:"render_slug" validate:"omitempty,max=255"`
	TourURL         Optional[string]    `json:"tour_url" validate:"omitempty,max=2048"`
	AdminType       Optional[string]    `json:"admin_type" validate:"omitempty,max=255"`
	AcceptsCrypto   Optional[bool]      `json:"accepts_crypto"`
	TurnKey         Optional[bool]      `json:"turn_key"`
	HasOceanView    Optional[bool]      `json:"has_ocean_view"`
	CondoRegime     Optional[bool]      `json:"condo_regime"`
}

func (r UpdateProjectRequest) ToPatch() (repositories.Patch, error) {
	b := newPatchBuilder()
	setField(b, "name", r.Name, false)
	setField(b, "slug", r.Slug, true)
	setField(b, "zone_id", r.ZoneID, true)
	setField(b, "sub_zone", r.SubZone, true)
	setField(b, "developer", r.Developer, true)
	setField(b, "maps_url", r.MapsURL, true)
	setField(b, "concept", r.Concept, true)
	setField(b, "total_units", r.TotalUnits, true)
	setField(b, "delivery_summary", r.DeliverySummary, true)
	setField(b, "brochure_slug", r.BrochureSlug, true)
	setField(b, "render_slug", r.RenderSlug, true)
	setField(b, "tour_url", r.TourURL, true)
	setField(b, "admin_type", r.AdminType, true)
	setField(b, "accepts_crypto", r.AcceptsCrypto, true)
	setField(b, "turn_key", r.TurnKey, true)
	setField(b, "has_ocean_view", r.HasOceanView, true)
	setField(b, "condo_regime", r.CondoRegime, true)
	return b.build()
}
