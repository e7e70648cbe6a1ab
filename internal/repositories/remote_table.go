package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/db"
)

// remoteProvider is the provider the remote-table repositories draw from.
type remoteProvider = db.Provider[*db.RemoteClient]

// remoteTable implements the EntityStore operations over one PostgREST
// table. Entity repositories embed it and add hydration of derived fields.
type remoteTable[T any] struct {
	pool    remoteProvider
	table   string
	entity  string
	fields  Fields
	touch   bool
	list    listSpec
	parseID func(string) (string, error)
	hydrate func(ctx context.Context, c *db.RemoteClient, items []*T) error
	now     func() time.Time
}

func uuidKey(id string) (string, error) {
	u, err := parseUUID(id)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

func intKey(id string) (string, error) {
	n, err := parseIntID(id)
	if err != nil {
		return "", err
	}
	return fmt.Sprint(n), nil
}

func recordOf(cols []string, vals []any) map[string]any {
	rec := make(map[string]any, len(cols))
	for i, c := range cols {
		rec[c] = vals[i]
	}
	return rec
}

func (t *remoteTable[T]) wrap(err error, op, id string) error {
	if id == "" {
		return errors.Wrapf(err, "%s %s", op, t.entity)
	}
	return errors.Wrapf(err, "%s %s %s", op, t.entity, id)
}

func (t *remoteTable[T]) fill(ctx context.Context, c *db.RemoteClient, items []*T) error {
	if t.hydrate == nil || len(items) == 0 {
		return nil
	}
	return t.hydrate(ctx, c, items)
}

func (t *remoteTable[T]) Get(ctx context.Context, id string) (*T, error) {
	key, err := t.parseID(id)
	if err != nil {
		return nil, err
	}
	return db.With(ctx, t.pool, func(c *db.RemoteClient) (*T, error) {
		return t.get(ctx, c, key, "get")
	})
}

func (t *remoteTable[T]) get(ctx context.Context, c *db.RemoteClient, key, op string) (*T, error) {
	var rows []*T
	if err := c.Select(ctx, t.table, db.Query{Eq: db.Filters{"id": key}, Limit: 1}, &rows); err != nil {
		return nil, t.wrap(err, op, key)
	}
	if len(rows) == 0 {
		return nil, notFound(op, t.entity, key)
	}
	if err := t.fill(ctx, c, rows); err != nil {
		return nil, t.wrap(err, op, key)
	}
	return rows[0], nil
}

func (t *remoteTable[T]) List(ctx context.Context, p ListParams) ([]*T, error) {
	q, err := t.list.remoteQuery(p)
	if err != nil {
		return nil, err
	}
	return db.With(ctx, t.pool, func(c *db.RemoteClient) ([]*T, error) {
		rows := []*T{}
		if err := c.Select(ctx, t.table, q, &rows); err != nil {
			return nil, t.wrap(err, "list", "")
		}
		if err := t.fill(ctx, c, rows); err != nil {
			return nil, t.wrap(err, "list", "")
		}
		return rows, nil
	})
}

func (t *remoteTable[T]) Count(ctx context.Context, p ListParams) (int, error) {
	q, err := t.list.remoteQuery(p)
	if err != nil {
		return 0, err
	}
	q.Select = "id"
	return db.With(ctx, t.pool, func(c *db.RemoteClient) (int, error) {
		n, err := c.Count(ctx, t.table, q)
		if err != nil {
			return 0, t.wrap(err, "count", "")
		}
		return n, nil
	})
}

// insert stores record and returns the hydrated representation.
func (t *remoteTable[T]) insert(ctx context.Context, record map[string]any, label string) (*T, error) {
	return db.With(ctx, t.pool, func(c *db.RemoteClient) (*T, error) {
		var rows []*T
		if err := c.Insert(ctx, t.table, record, &rows); err != nil {
			return nil, t.wrap(err, "create", label)
		}
		if len(rows) == 0 {
			return nil, t.wrap(errors.New("store returned no representation"), "create", label)
		}
		if err := t.fill(ctx, c, rows); err != nil {
			return nil, t.wrap(err, "create", label)
		}
		return rows[0], nil
	})
}

func (t *remoteTable[T]) Update(ctx context.Context, id string, patch Patch) (*T, error) {
	key, err := t.parseID(id)
	if err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return t.Get(ctx, key)
	}
	// The store has no update trigger; updated_at is stamped here as the
	// counterpart of NOW() on the relational side.
	body, err := remotePatch(t.fields, t.touch, patch, t.now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return nil, err
	}

	return db.With(ctx, t.pool, func(c *db.RemoteClient) (*T, error) {
		var rows []*T
		if err := c.Update(ctx, t.table, db.Filters{"id": key}, body, &rows); err != nil {
			return nil, t.wrap(err, "update", key)
		}
		if len(rows) == 0 {
			return nil, notFound("update", t.entity, key)
		}
		if err := t.fill(ctx, c, rows); err != nil {
			return nil, t.wrap(err, "update", key)
		}
		return rows[0], nil
	})
}

// Delete checks the row exists first, since the store may answer a delete
// with an empty 204 whether or not anything matched. An empty
// representation still counts as a missing row.
func (t *remoteTable[T]) Delete(ctx context.Context, id string) error {
	key, err := t.parseID(id)
	if err != nil {
		return err
	}
	_, err = db.With(ctx, t.pool, func(c *db.RemoteClient) (struct{}, error) {
		var found []map[string]any
		q := db.Query{Select: "id", Eq: db.Filters{"id": key}, Limit: 1}
		if err := c.Select(ctx, t.table, q, &found); err != nil {
			return struct{}{}, t.wrap(err, "delete", key)
		}
		if len(found) == 0 {
			return struct{}{}, notFound("delete", t.entity, key)
		}

		var rows []*T
		represented, err := c.Delete(ctx, t.table, db.Filters{"id": key}, &rows)
		if err != nil {
			return struct{}{}, t.wrap(err, "delete", key)
		}
		if represented && len(rows) == 0 {
			return struct{}{}, notFound("delete", t.entity, key)
		}
		return struct{}{}, nil
	})
	return err
}
