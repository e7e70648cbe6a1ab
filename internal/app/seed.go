package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/models"
	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/repositories"
	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/utils"
)

const seedUnitsPerProject = 6

type seedZone struct {
	name        string
	description string
}

var seedZones = []seedZone{
	{"Tulum", "Zona turística con cenotes y ruinas mayas"},
	{"Playa del Carmen", "Centro turístico de la Riviera Maya"},
	{"Cozumel", "Isla turística con arrecifes de coral"},
	{"Cancún", "Destino turístico internacional"},
	{"Puerto Morelos", "Pueblo mágico pesquero"},
}

// seedProjects reference seedZones by index.
var seedProjects = []struct {
	zone    int
	project models.Project
}{
	{0, models.Project{
		Name:          "Residencial Marina Bay",
		Slug:          utils.Ptr("marina-bay"),
		Developer:     utils.Ptr("Desarrollos del Caribe"),
		TotalUnits:    utils.Ptr(120),
		Concept:       utils.Ptr("Apartamentos frente al mar con vista a cenotes"),
		AcceptsCrypto: utils.Ptr(true),
		TurnKey:       utils.Ptr(true),
		HasOceanView:  utils.Ptr(true),
		CondoRegime:   utils.Ptr(true),
	}},
	{1, models.Project{
		Name:          "Torres del Centro",
		Slug:          utils.Ptr("torres-centro"),
		Developer:     utils.Ptr("Constructora Moderna"),
		TotalUnits:    utils.Ptr(80),
		Concept:       utils.Ptr("Apartamentos en el centro de la ciudad"),
		AcceptsCrypto: utils.Ptr(false),
		TurnKey:       utils.Ptr(false),
		HasOceanView:  utils.Ptr(false),
		CondoRegime:   utils.Ptr(true),
	}},
	{2, models.Project{
		Name:          "Cozumel Paradise",
		Slug:          utils.Ptr("cozumel-paradise"),
		Developer:     utils.Ptr("Island Developers"),
		TotalUnits:    utils.Ptr(60),
		Concept:       utils.Ptr("Condominios de lujo en isla tropical"),
		AcceptsCrypto: utils.Ptr(true),
		TurnKey:       utils.Ptr(true),
		HasOceanView:  utils.Ptr(true),
		CondoRegime:   utils.Ptr(true),
	}},
}

var (
	seedTypologies = []string{"Studio", "1BR", "2BR", "3BR", "Penthouse"}
	seedAreas      = map[string]float64{"Studio": 42.5, "1BR": 65, "2BR": 85, "3BR": 107.5, "Penthouse": 200}
	seedStatuses   = []string{models.UnitStatusAvailable, models.UnitStatusReserved, models.UnitStatusSold, "En construcción"}
	seedDelivery   = []string{"2024-Q4", "2025-Q1", "2025-Q2", "2025-Q3"}
)

// SeedAllTestData loads sample zones, projects and units. It is a no-op
// when any zone already exists.
func SeedAllTestData(
	ctx context.Context,
	zoneRepo repositories.ZoneRepository,
	projectRepo repositories.ProjectRepository,
	unitRepo repositories.UnitRepository,
) error {
	n, err := zoneRepo.Count(ctx, repositories.ListParams{})
	if err != nil {
		return fmt.Errorf("failed to check for existing zones: %w", err)
	}
	if n > 0 {
		utils.Logger.Info("Seed data already present; skipping seeding.")
		return nil
	}

	zones := make([]*models.Zone, 0, len(seedZones))
	for _, z := range seedZones {
		created, err := zoneRepo.Create(ctx, &models.Zone{Name: z.name, Description: utils.Ptr(z.description)})
		if err != nil {
			return fmt.Errorf("seed zone %q: %w", z.name, err)
		}
		zones = append(zones, created)
	}

	units := 0
	for _, sp := range seedProjects {
		p := sp.project
		p.ZoneID = utils.Ptr(zones[sp.zone].ID)
		created, err := projectRepo.Create(ctx, &p)
		if err != nil {
			return fmt.Errorf("seed project %q: %w", p.Name, err)
		}

		prefix := strings.ToUpper(string([]rune(created.Name)[:3]))
		for i := 1; i <= seedUnitsPerProject; i++ {
			typology := seedTypologies[(i-1)%len(seedTypologies)]
			u := &models.Unit{
				ProjectID:      created.ID,
				UnitIdentifier: fmt.Sprintf("%s-%03d", prefix, i),
				Typology:       utils.Ptr(typology),
				Level:          utils.Ptr(fmt.Sprint(i)),
				TotalAreaSqm:   utils.Ptr(seedAreas[typology]),
				Status:         utils.Ptr(seedStatuses[(i-1)%len(seedStatuses)]),
				DeliveryDate:   utils.Ptr(seedDelivery[(i-1)%len(seedDelivery)]),
			}
			if _, err := unitRepo.Create(ctx, u); err != nil {
				return fmt.Errorf("seed unit %s: %w", u.UnitIdentifier, err)
			}
			units++
		}
	}

	utils.Logger.Infof("Seeded %d zones, %d projects and %d units.", len(zones), len(seedProjects), units)
	return nil
}
