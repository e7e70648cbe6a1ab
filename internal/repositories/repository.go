package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/analytics"
	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/db"
	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/models"
)

// Sort selects one of the orderings an entity supports.
type Sort string

const (
	SortDefault         Sort = ""
	SortRecent          Sort = "recent"
	SortRecentlyUpdated Sort = "updated"
)

// ListParams bounds and narrows a list query. Filters are equality
// constraints on allow-listed columns.
type ListParams struct {
	Skip    int
	Limit   int
	Search  string
	Filters map[string]string
	Sort    Sort
}

// EntityStore is the uniform CRUD contract every backend implements.
//
// Get and Update report a missing id with an error matching db.ErrNotFound.
// Delete returns nil only when a row was removed. Update with an empty
// patch is a read.
type EntityStore[T any] interface {
	Get(ctx context.Context, id string) (*T, error)
	List(ctx context.Context, params ListParams) ([]*T, error)
	Count(ctx context.Context, params ListParams) (int, error)
	Create(ctx context.Context, entity *T) (*T, error)
	Update(ctx context.Context, id string, patch Patch) (*T, error)
	Delete(ctx context.Context, id string) error
}

type ZoneRepository interface {
	EntityStore[models.Zone]
}

type ProjectRepository interface {
	EntityStore[models.Project]
	Totals(ctx context.Context) (*models.ProjectTotals, error)
	CountByZone(ctx context.Context) ([]analytics.GroupCount, error)
}

type UnitRepository interface {
	EntityStore[models.Unit]
	CountByStatus(ctx context.Context) ([]analytics.GroupCount, error)
}

type UserRepository interface {
	EntityStore[models.User]
}

// ConversationRepository reads the chat history log, newest first.
type ConversationRepository interface {
	List(ctx context.Context, params ListParams) ([]*models.ConversationMessage, error)
}

// Backend names the store an entity is served from.
type Backend string

const (
	BackendPostgres Backend = db.BackendPostgres
	BackendRemote   Backend = db.BackendRemote
)

func ParseBackend(s string) (Backend, error) {
	switch Backend(s) {
	case BackendPostgres, BackendRemote:
		return Backend(s), nil
	}
	return "", fmt.Errorf("unknown backend %q (want %q or %q)", s, BackendPostgres, BackendRemote)
}

func (b *Backend) UnmarshalText(text []byte) error {
	v, err := ParseBackend(strings.ToLower(strings.TrimSpace(string(text))))
	if err != nil {
		return err
	}
	*b = v
	return nil
}
