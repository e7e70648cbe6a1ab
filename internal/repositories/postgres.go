package repositories

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/pkg/errors"

	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/db"
)

// pgProvider is the relational provider the Postgres repositories draw from.
type pgProvider = db.Provider[db.PGConn]

func parseUUID(id string) (uuid.UUID, error) {
	u, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return uuid.Nil, db.Invalid("id", "Invalid UUID")
	}
	return u, nil
}

func parseIntID(id string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
	if err != nil || n <= 0 {
		return 0, db.Invalid("id", "Invalid integer id")
	}
	return n, nil
}

// annotate classifies a driver error and prefixes it with the operation,
// entity kind and id.
func annotate(err error, op, entity, id string) error {
	if err == nil {
		return nil
	}
	if id == "" {
		return errors.Wrapf(db.FromPg(err), "%s %s", op, entity)
	}
	return errors.Wrapf(db.FromPg(err), "%s %s %s", op, entity, id)
}

func notFound(op, entity, id string) error {
	return errors.Wrapf(db.NotFound(entity, id), "%s %s", op, entity)
}

// buildInsert renders an INSERT of cols returning the generated id.
func buildInsert(table string, cols []string, idColumn string) string {
	ph := make([]string, len(cols))
	for i := range cols {
		ph[i] = fmt.Sprintf("$%d", i+1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		table, strings.Join(cols, ", "), strings.Join(ph, ", "), idColumn)
}

// collect scans every row with scan.
func collect[T any](rows pgx.Rows, scan func(pgx.Row) (*T, error)) ([]*T, error) {
	defer rows.Close()
	out := []*T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

// pgList runs selectSQL (+ groupBy) with the list where, order and page.
func pgList[T any](
	ctx context.Context,
	conn db.PGConn,
	spec listSpec,
	selectSQL, groupBy string,
	p ListParams,
	scan func(pgx.Row) (*T, error),
) ([]*T, error) {
	where, args, err := spec.sqlWhere(p, nil)
	if err != nil {
		return nil, err
	}
	order, err := spec.sqlOrder(p.Sort)
	if err != nil {
		return nil, err
	}
	page, args := sqlPage(p, args)

	rows, err := conn.Query(ctx, selectSQL+where+groupBy+order+page, args...)
	if err != nil {
		return nil, err
	}
	return collect(rows, scan)
}

func pgCount(ctx context.Context, conn db.PGConn, spec listSpec, table string, p ListParams) (int, error) {
	where, args, err := spec.sqlWhere(p, nil)
	if err != nil {
		return 0, err
	}
	sql := "SELECT COUNT(*) FROM " + table
	if spec.alias != "" {
		sql += " " + spec.alias
	}
	var n int
	if err := conn.QueryRow(ctx, sql+where, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// pgUpdate applies a non-empty patch in a transaction and reports whether a
// row matched.
func pgUpdate(ctx context.Context, conn db.PGConn, table string, fields Fields, touch bool, patch Patch, id any) (bool, error) {
	sql, args, err := buildUpdate(table, fields, touch, patch, "id", id)
	if err != nil {
		return false, err
	}
	var affected int64
	err = conn.BeginFunc(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, sql, args...)
		if err != nil {
			return err
		}
		affected = tag.RowsAffected()
		return nil
	})
	return affected > 0, err
}

func pgDelete(ctx context.Context, conn db.PGConn, table string, id any) (bool, error) {
	var affected int64
	err := conn.BeginFunc(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, "DELETE FROM "+table+" WHERE id = $1", id)
		if err != nil {
			return err
		}
		affected = tag.RowsAffected()
		return nil
	})
	return affected > 0, err
}

func pgInsert[ID any](ctx context.Context, conn db.PGConn, table string, cols []string, vals []any) (ID, error) {
	var id ID
	err := conn.BeginFunc(ctx, func(tx pgx.Tx) error {
		return tx.QueryRow(ctx, buildInsert(table, cols, "id"), vals...).Scan(&id)
	})
	return id, err
}
