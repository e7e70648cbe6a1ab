package analytics

import (
	"sort"

	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/models"
	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/utils"
)

const (
	ActionProjectCreated = "Proyecto creado"
	ActionUnitSold       = "Unidad vendida"
	ActionUnitReserved   = "Unidad reservada"
	ActionUnitUpdated    = "Unidad actualizada"
)

// ProjectCreatedEvent describes the creation of p.
func ProjectCreatedEvent(p *models.Project) models.ActivityEvent {
	return models.ActivityEvent{
		Type:        models.ActivityTypeProject,
		Title:       p.Name,
		Action:      ActionProjectCreated,
		Timestamp:   p.CreatedAt,
		Description: p.Developer,
	}
}

// UnitChangedEvent describes the latest state change of u inside the
// project named projectName.
func UnitChangedEvent(u *models.Unit, projectName string) models.ActivityEvent {
	action := ActionUnitUpdated
	switch utils.Val(u.Status) {
	case models.UnitStatusSold:
		action = ActionUnitSold
	case models.UnitStatusReserved:
		action = ActionUnitReserved
	}
	return models.ActivityEvent{
		Type:        models.ActivityTypeUnit,
		Title:       projectName + " - " + u.UnitIdentifier,
		Action:      action,
		Timestamp:   u.UpdatedAt,
		Description: u.Status,
	}
}

// MergeActivity concatenates the streams, orders by timestamp descending and
// keeps at most limit events. Equal timestamps keep their input order.
func MergeActivity(limit int, streams ...[]models.ActivityEvent) []models.ActivityEvent {
	var all []models.ActivityEvent
	for _, s := range streams {
		all = append(all, s...)
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Timestamp.After(all[j].Timestamp)
	})
	if limit >= 0 && len(all) > limit {
		all = all[:limit]
	}
	return all
}
