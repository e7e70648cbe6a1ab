package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/db"
	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/models"
)

const (
	zonesTable = "zones"
	zoneEntity = "zone"
)

var zoneFields = Fields{"name", "description"}

var zoneList = listSpec{
	alias:         "z",
	searchColumns: []string{"name"},
	orders: map[Sort][]db.Order{
		SortDefault: {{Column: "id"}},
		SortRecent:  {{Column: "created_at", Desc: true}, {Column: "id"}},
	},
}

type zoneRepo struct {
	pool pgProvider
}

func NewZonePostgresRepository(pool pgProvider) ZoneRepository {
	return &zoneRepo{pool: pool}
}

func (r *zoneRepo) Get(ctx context.Context, id string) (*models.Zone, error) {
	zid, err := parseUUID(id)
	if err != nil {
		return nil, err
	}
	return db.With(ctx, r.pool, func(c db.PGConn) (*models.Zone, error) {
		return r.get(ctx, c, zid, "get")
	})
}

func (r *zoneRepo) get(ctx context.Context, c db.PGConn, id uuid.UUID, op string) (*models.Zone, error) {
	z, err := scanZone(c.QueryRow(ctx, baseSelectZone()+" WHERE z.id = $1"+zoneGroupBy, id))
	if err != nil {
		return nil, annotate(err, op, zoneEntity, id.String())
	}
	if z == nil {
		return nil, notFound(op, zoneEntity, id.String())
	}
	return z, nil
}

func (r *zoneRepo) List(ctx context.Context, p ListParams) ([]*models.Zone, error) {
	return db.With(ctx, r.pool, func(c db.PGConn) ([]*models.Zone, error) {
		out, err := pgList(ctx, c, zoneList, baseSelectZone(), zoneGroupBy, p, scanZone)
		return out, annotate(err, "list", zoneEntity, "")
	})
}

func (r *zoneRepo) Count(ctx context.Context, p ListParams) (int, error) {
	return db.With(ctx, r.pool, func(c db.PGConn) (int, error) {
		n, err := pgCount(ctx, c, zoneList, zonesTable, p)
		return n, annotate(err, "count", zoneEntity, "")
	})
}

func (r *zoneRepo) Create(ctx context.Context, z *models.Zone) (*models.Zone, error) {
	return db.With(ctx, r.pool, func(c db.PGConn) (*models.Zone, error) {
		id, err := pgInsert[uuid.UUID](ctx, c, zonesTable, zoneFields, []any{z.Name, z.Description})
		if err != nil {
			return nil, annotate(err, "create", zoneEntity, z.Name)
		}
		return r.get(ctx, c, id, "create")
	})
}

func (r *zoneRepo) Update(ctx context.Context, id string, patch Patch) (*models.Zone, error) {
	zid, err := parseUUID(id)
	if err != nil {
		return nil, err
	}
	return db.With(ctx, r.pool, func(c db.PGConn) (*models.Zone, error) {
		if !patch.IsEmpty() {
			found, err := pgUpdate(ctx, c, zonesTable, zoneFields, true, patch, zid)
			if err != nil {
				return nil, annotate(err, "update", zoneEntity, id)
			}
			if !found {
				return nil, notFound("update", zoneEntity, id)
			}
		}
		return r.get(ctx, c, zid, "update")
	})
}

func (r *zoneRepo) Delete(ctx context.Context, id string) error {
	zid, err := parseUUID(id)
	if err != nil {
		return err
	}
	_, err = db.With(ctx, r.pool, func(c db.PGConn) (struct{}, error) {
		found, err := pgDelete(ctx, c, zonesTable, zid)
		if err != nil {
			return struct{}{}, annotate(err, "delete", zoneEntity, id)
		}
		if !found {
			return struct{}{}, notFound("delete", zoneEntity, id)
		}
		return struct{}{}, nil
	})
	return err
}

const zoneGroupBy = " GROUP BY z.id"

func baseSelectZone() string {
	return `
		SELECT z.id, z.name, z.description, COUNT(p.id) AS project_count,
		       z.created_at, z.updated_at
		FROM zones z
		LEFT JOIN projects p ON p.zone_id = z.id`
}

func scanZone(row pgx.Row) (*models.Zone, error) {
	var z models.Zone
	err := row.Scan(
		&z.ID,
		&z.Name,
		&z.Description,
		&z.ProjectCount,
		&z.CreatedAt,
		&z.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &z, nil
}
