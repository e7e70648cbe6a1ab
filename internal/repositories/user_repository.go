package repositories

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v4"

	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/db"
	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/models"
)

const (
	usersTable = "users"
	userEntity = "user"
)

var userFields = Fields{"username", "role", "password_hash"}

var userList = listSpec{
	searchColumns: []string{"username"},
	filterColumns: Fields{"role"},
	orders: map[Sort][]db.Order{
		SortDefault: {{Column: "id"}},
		SortRecent:  {{Column: "id", Desc: true}},
	},
}

type userRepo struct {
	pool pgProvider
}

func NewUserPostgresRepository(pool pgProvider) UserRepository {
	return &userRepo{pool: pool}
}

func (r *userRepo) Get(ctx context.Context, id string) (*models.User, error) {
	uid, err := parseIntID(id)
	if err != nil {
		return nil, err
	}
	return db.With(ctx, r.pool, func(c db.PGConn) (*models.User, error) {
		return r.get(ctx, c, uid, "get")
	})
}

func (r *userRepo) get(ctx context.Context, c db.PGConn, id int64, op string) (*models.User, error) {
	u, err := scanUser(c.QueryRow(ctx, baseSelectUser()+" WHERE id = $1", id))
	if err != nil {
		return nil, annotate(err, op, userEntity, strconv.FormatInt(id, 10))
	}
	if u == nil {
		return nil, notFound(op, userEntity, strconv.FormatInt(id, 10))
	}
	return u, nil
}

func (r *userRepo) List(ctx context.Context, params ListParams) ([]*models.User, error) {
	return db.With(ctx, r.pool, func(c db.PGConn) ([]*models.User, error) {
		out, err := pgList(ctx, c, userList, baseSelectUser(), "", params, scanUser)
		return out, annotate(err, "list", userEntity, "")
	})
}

func (r *userRepo) Count(ctx context.Context, params ListParams) (int, error) {
	return db.With(ctx, r.pool, func(c db.PGConn) (int, error) {
		n, err := pgCount(ctx, c, userList, usersTable, params)
		return n, annotate(err, "count", userEntity, "")
	})
}

func (r *userRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	return db.With(ctx, r.pool, func(c db.PGConn) (*models.User, error) {
		id, err := pgInsert[int64](ctx, c, usersTable, userFields, []any{u.Username, u.Role, u.PasswordHash})
		if err != nil {
			return nil, annotate(err, "create", userEntity, u.Username)
		}
		return r.get(ctx, c, id, "create")
	})
}

func (r *userRepo) Update(ctx context.Context, id string, patch Patch) (*models.User, error) {
	uid, err := parseIntID(id)
	if err != nil {
		return nil, err
	}
	return db.With(ctx, r.pool, func(c db.PGConn) (*models.User, error) {
		if !patch.IsEmpty() {
			found, err := pgUpdate(ctx, c, usersTable, userFields, false, patch, uid)
			if err != nil {
				return nil, annotate(err, "update", userEntity, id)
			}
			if !found {
				return nil, notFound("update", userEntity, id)
			}
		}
		return r.get(ctx, c, uid, "update")
	})
}

func (r *userRepo) Delete(ctx context.Context, id string) error {
	uid, err := parseIntID(id)
	if err != nil {
		return err
	}
	_, err = db.With(ctx, r.pool, func(c db.PGConn) (struct{}, error) {
		found, err := pgDelete(ctx, c, usersTable, uid)
		if err != nil {
			return struct{}{}, annotate(err, "delete", userEntity, id)
		}
		if !found {
			return struct{}{}, notFound("delete", userEntity, id)
		}
		return struct{}{}, nil
	})
	return err
}

func baseSelectUser() string {
	return `SELECT id, username, role, password_hash FROM users`
}

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.Role, &u.PasswordHash)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}
