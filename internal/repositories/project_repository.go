package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/analytics"
	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/db"
	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/models"
)

const (
	projectsTable = "projects"
	projectEntity = "project"
)

var projectFields = Fields{
	"name", "slug", "zone_id", "sub_zone", "developer", "maps_url", "concept",
	"total_units", "delivery_summary", "brochure_slug", "render_slug", "tour_url",
	"admin_type", "accepts_crypto", "turn_key", "has_ocean_view", "condo_regime",
}

var projectList = listSpec{
	alias:         "p",
	searchColumns: []string{"name", "developer"},
	filterColumns: Fields{"zone_id", "developer"},
	orders: map[Sort][]db.Order{
		SortDefault: {{Column: "id"}},
		SortRecent:  {{Column: "created_at", Desc: true}, {Column: "id"}},
	},
}

// projectValues lists p's writable columns in projectFields order.
func projectValues(p *models.Project) []any {
	return []any{
		p.Name, p.Slug, p.ZoneID, p.SubZone, p.Developer, p.MapsURL, p.Concept,
		p.TotalUnits, p.DeliverySummary, p.BrochureSlug, p.RenderSlug, p.TourURL,
		p.AdminType, p.AcceptsCrypto, p.TurnKey, p.HasOceanView, p.CondoRegime,
	}
}

type projectRepo struct {
	pool pgProvider
}

func NewProjectPostgresRepository(pool pgProvider) ProjectRepository {
	return &projectRepo{pool: pool}
}

func (r *projectRepo) Get(ctx context.Context, id string) (*models.Project, error) {
	pid, err := parseUUID(id)
	if err != nil {
		return nil, err
	}
	return db.With(ctx, r.pool, func(c db.PGConn) (*models.Project, error) {
		return r.get(ctx, c, pid, "get")
	})
}

func (r *projectRepo) get(ctx context.Context, c db.PGConn, id uuid.UUID, op string) (*models.Project, error) {
	p, err := scanProject(c.QueryRow(ctx, baseSelectProject()+" WHERE p.id = $1", id))
	if err != nil {
		return nil, annotate(err, op, projectEntity, id.String())
	}
	if p == nil {
		return nil, notFound(op, projectEntity, id.String())
	}
	return p, nil
}

func (r *projectRepo) List(ctx context.Context, params ListParams) ([]*models.Project, error) {
	return db.With(ctx, r.pool, func(c db.PGConn) ([]*models.Project, error) {
		out, err := pgList(ctx, c, projectList, baseSelectProject(), "", params, scanProject)
		return out, annotate(err, "list", projectEntity, "")
	})
}

func (r *projectRepo) Count(ctx context.Context, params ListParams) (int, error) {
	return db.With(ctx, r.pool, func(c db.PGConn) (int, error) {
		n, err := pgCount(ctx, c, projectList, projectsTable, params)
		return n, annotate(err, "count", projectEntity, "")
	})
}

func (r *projectRepo) Create(ctx context.Context, p *models.Project) (*models.Project, error) {
	return db.With(ctx, r.pool, func(c db.PGConn) (*models.Project, error) {
		id, err := pgInsert[uuid.UUID](ctx, c, projectsTable, projectFields, projectValues(p))
		if err != nil {
			return nil, annotate(err, "create", projectEntity, p.Name)
		}
		return r.get(ctx, c, id, "create")
	})
}

func (r *projectRepo) Update(ctx context.Context, id string, patch Patch) (*models.Project, error) {
	pid, err := parseUUID(id)
	if err != nil {
		return nil, err
	}
	return db.With(ctx, r.pool, func(c db.PGConn) (*models.Project, error) {
		if !patch.IsEmpty() {
			found, err := pgUpdate(ctx, c, projectsTable, projectFields, true, patch, pid)
			if err != nil {
				return nil, annotate(err, "update", projectEntity, id)
			}
			if !found {
				return nil, notFound("update", projectEntity, id)
			}
		}
		return r.get(ctx, c, pid, "update")
	})
}

func (r *projectRepo) Delete(ctx context.Context, id string) error {
	pid, err := parseUUID(id)
	if err != nil {
		return err
	}
	_, err = db.With(ctx, r.pool, func(c db.PGConn) (struct{}, error) {
		found, err := pgDelete(ctx, c, projectsTable, pid)
		if err != nil {
			return struct{}{}, annotate(err, "delete", projectEntity, id)
		}
		if !found {
			return struct{}{}, notFound("delete", projectEntity, id)
		}
		return struct{}{}, nil
	})
	return err
}

func (r *projectRepo) Totals(ctx context.Context) (*models.ProjectTotals, error) {
	return db.With(ctx, r.pool, func(c db.PGConn) (*models.ProjectTotals, error) {
		var t models.ProjectTotals
		err := c.QueryRow(ctx, `
			SELECT COALESCE(SUM(total_units), 0), COUNT(DISTINCT developer)
			FROM projects`).Scan(&t.DeclaredUnits, &t.Developers)
		if err != nil {
			return nil, annotate(err, "totals", projectEntity, "")
		}
		return &t, nil
	})
}

func (r *projectRepo) CountByZone(ctx context.Context) ([]analytics.GroupCount, error) {
	return db.With(ctx, r.pool, func(c db.PGConn) ([]analytics.GroupCount, error) {
		rows, err := c.Query(ctx, `
			SELECT z.name, COUNT(*)
			FROM projects p
			LEFT JOIN zones z ON z.id = p.zone_id
			GROUP BY z.name
			ORDER BY COUNT(*) DESC, z.name`)
		if err != nil {
			return nil, annotate(err, "count by zone", projectEntity, "")
		}
		out, err := scanGroups(rows, analytics.NoZoneLabel)
		return out, annotate(err, "count by zone", projectEntity, "")
	})
}

func baseSelectProject() string {
	return `
		SELECT p.id, p.name, p.slug, p.zone_id, z.name, p.sub_zone, p.developer,
		       p.maps_url, p.concept, p.total_units, p.delivery_summary,
		       p.brochure_slug, p.render_slug, p.tour_url, p.admin_type,
		       p.accepts_crypto, p.turn_key, p.has_ocean_view, p.condo_regime,
		       p.created_at, p.updated_at
		FROM projects p
		LEFT JOIN zones z ON z.id = p.zone_id`
}

func scanProject(row pgx.Row) (*models.Project, error) {
	var p models.Project
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Slug,
		&p.ZoneID,
		&p.ZoneName,
		&p.SubZone,
		&p.Developer,
		&p.MapsURL,
		&p.Concept,
		&p.TotalUnits,
		&p.DeliverySummary,
		&p.BrochureSlug,
		&p.RenderSlug,
		&p.TourURL,
		&p.AdminType,
		&p.AcceptsCrypto,
		&p.TurnKey,
		&p.HasOceanView,
		&p.CondoRegime,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// scanGroups reads (label, count) rows; NULL labels become missingLabel.
func scanGroups(rows pgx.Rows, missingLabel string) ([]analytics.GroupCount, error) {
	defer rows.Close()
	g := analytics.NewGroupCounter(missingLabel)
	for rows.Next() {
		var label *string
		var n int
		if err := rows.Scan(&label, &n); err != nil {
			return nil, err
		}
		if label == nil {
			g.AddN(missingLabel, n)
		} else {
			g.AddN(*label, n)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return g.Result(), nil
}
