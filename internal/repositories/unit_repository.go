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
	unitsTable = "units"
	unitEntity = "unit"
)

// unitFields excludes project_id, which is fixed at creation.
var unitFields = Fields{
	"unit_identifier", "typology", "level", "total_area_sqm", "status",
	"delivery_date", "price_list_url",
}

var unitInsertColumns = append([]string{"project_id"}, unitFields...)

var unitList = listSpec{
	searchColumns: []string{"unit_identifier", "typology"},
	filterColumns: Fields{"project_id", "status", "typology"},
	orders: map[Sort][]db.Order{
		SortDefault:         {{Column: "project_id"}, {Column: "unit_identifier"}, {Column: "id"}},
		SortRecent:          {{Column: "created_at", Desc: true}, {Column: "id"}},
		SortRecentlyUpdated: {{Column: "updated_at", Desc: true}, {Column: "id"}},
	},
}

func unitValues(u *models.Unit) []any {
	return []any{
		u.ProjectID, u.UnitIdentifier, u.Typology, u.Level, u.TotalAreaSqm,
		u.Status, u.DeliveryDate, u.PriceListURL,
	}
}

type unitRepo struct {
	pool pgProvider
}

func NewUnitPostgresRepository(pool pgProvider) UnitRepository {
	return &unitRepo{pool: pool}
}

func (r *unitRepo) Get(ctx context.Context, id string) (*models.Unit, error) {
	uid, err := parseUUID(id)
	if err != nil {
		return nil, err
	}
	return db.With(ctx, r.pool, func(c db.PGConn) (*models.Unit, error) {
		return r.get(ctx, c, uid, "get")
	})
}

func (r *unitRepo) get(ctx context.Context, c db.PGConn, id uuid.UUID, op string) (*models.Unit, error) {
	u, err := scanUnit(c.QueryRow(ctx, baseSelectUnit()+" WHERE id = $1", id))
	if err != nil {
		return nil, annotate(err, op, unitEntity, id.String())
	}
	if u == nil {
		return nil, notFound(op, unitEntity, id.String())
	}
	return u, nil
}

func (r *unitRepo) List(ctx context.Context, params ListParams) ([]*models.Unit, error) {
	return db.With(ctx, r.pool, func(c db.PGConn) ([]*models.Unit, error) {
		out, err := pgList(ctx, c, unitList, baseSelectUnit(), "", params, scanUnit)
		return out, annotate(err, "list", unitEntity, "")
	})
}

func (r *unitRepo) Count(ctx context.Context, params ListParams) (int, error) {
	return db.With(ctx, r.pool, func(c db.PGConn) (int, error) {
		n, err := pgCount(ctx, c, unitList, unitsTable, params)
		return n, annotate(err, "count", unitEntity, "")
	})
}

func (r *unitRepo) Create(ctx context.Context, u *models.Unit) (*models.Unit, error) {
	return db.With(ctx, r.pool, func(c db.PGConn) (*models.Unit, error) {
		id, err := pgInsert[uuid.UUID](ctx, c, unitsTable, unitInsertColumns, unitValues(u))
		if err != nil {
			return nil, annotate(err, "create", unitEntity, u.UnitIdentifier)
		}
		return r.get(ctx, c, id, "create")
	})
}

func (r *unitRepo) Update(ctx context.Context, id string, patch Patch) (*models.Unit, error) {
	uid, err := parseUUID(id)
	if err != nil {
		return nil, err
	}
	return db.With(ctx, r.pool, func(c db.PGConn) (*models.Unit, error) {
		if !patch.IsEmpty() {
			found, err := pgUpdate(ctx, c, unitsTable, unitFields, true, patch, uid)
			if err != nil {
				return nil, annotate(err, "update", unitEntity, id)
			}
			if !found {
				return nil, notFound("update", unitEntity, id)
			}
		}
		return r.get(ctx, c, uid, "update")
	})
}

func (r *unitRepo) Delete(ctx context.Context, id string) error {
	uid, err := parseUUID(id)
	if err != nil {
		return err
	}
	_, err = db.With(ctx, r.pool, func(c db.PGConn) (struct{}, error) {
		found, err := pgDelete(ctx, c, unitsTable, uid)
		if err != nil {
			return struct{}{}, annotate(err, "delete", unitEntity, id)
		}
		if !found {
			return struct{}{}, notFound("delete", unitEntity, id)
		}
		return struct{}{}, nil
	})
	return err
}

func (r *unitRepo) CountByStatus(ctx context.Context) ([]analytics.GroupCount, error) {
	return db.With(ctx, r.pool, func(c db.PGConn) ([]analytics.GroupCount, error) {
		rows, err := c.Query(ctx, `
			SELECT status, COUNT(*)
			FROM units
			GROUP BY status
			ORDER BY COUNT(*) DESC, status`)
		if err != nil {
			return nil, annotate(err, "count by status", unitEntity, "")
		}
		out, err := scanGroups(rows, analytics.NoStatusLabel)
		return out, annotate(err, "count by status", unitEntity, "")
	})
}

func baseSelectUnit() string {
	return `
		SELECT id, project_id, unit_identifier, typology, level, total_area_sqm,
		       status, delivery_date, price_list_url, created_at, updated_at
		FROM units`
}

func scanUnit(row pgx.Row) (*models.Unit, error) {
	var u models.Unit
	err := row.Scan(
		&u.ID,
		&u.ProjectID,
		&u.UnitIdentifier,
		&u.Typology,
		&u.Level,
		&u.TotalAreaSqm,
		&u.Status,
		&u.DeliveryDate,
		&u.PriceListURL,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}
