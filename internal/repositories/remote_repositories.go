package repositories

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/analytics"
	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/db"
	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/models"
)

/* ------------------------------------------------------------------
   Zones
------------------------------------------------------------------ */

type zoneRemoteRepo struct {
	*remoteTable[models.Zone]
}

func NewZoneRemoteRepository(pool remoteProvider) ZoneRepository {
	r := &zoneRemoteRepo{}
	r.remoteTable = &remoteTable[models.Zone]{
		pool:    pool,
		table:   zonesTable,
		entity:  zoneEntity,
		fields:  zoneFields,
		touch:   true,
		list:    zoneList,
		parseID: uuidKey,
		hydrate: r.hydrateProjectCounts,
		now:     time.Now,
	}
	return r
}

func (r *zoneRemoteRepo) Create(ctx context.Context, z *models.Zone) (*models.Zone, error) {
	return r.insert(ctx, recordOf(zoneFields, []any{z.Name, z.Description}), z.Name)
}

// hydrateProjectCounts fills ProjectCount from the projects table.
func (r *zoneRemoteRepo) hydrateProjectCounts(ctx context.Context, c *db.RemoteClient, zones []*models.Zone) error {
	ids := make([]string, len(zones))
	for i, z := range zones {
		ids[i] = z.ID.String()
	}
	var refs []struct {
		ZoneID *uuid.UUID `json:"zone_id"`
	}
	q := db.Query{Select: "zone_id", In: map[string][]string{"zone_id": ids}}
	if err := c.Select(ctx, projectsTable, q, &refs); err != nil {
		return err
	}
	counts := make(map[uuid.UUID]int, len(zones))
	for _, ref := range refs {
		if ref.ZoneID != nil {
			counts[*ref.ZoneID]++
		}
	}
	for _, z := range zones {
		z.ProjectCount = counts[z.ID]
	}
	return nil
}

/* ------------------------------------------------------------------
   Projects
------------------------------------------------------------------ */

type projectRemoteRepo struct {
	*remoteTable[models.Project]
}

func NewProjectRemoteRepository(pool remoteProvider) ProjectRepository {
	r := &projectRemoteRepo{}
	r.remoteTable = &remoteTable[models.Project]{
		pool:    pool,
		table:   projectsTable,
		entity:  projectEntity,
		fields:  projectFields,
		touch:   true,
		list:    projectList,
		parseID: uuidKey,
		hydrate: hydrateZoneNames,
		now:     time.Now,
	}
	return r
}

func (r *projectRemoteRepo) Create(ctx context.Context, p *models.Project) (*models.Project, error) {
	return r.insert(ctx, recordOf(projectFields, projectValues(p)), p.Name)
}

func (r *projectRemoteRepo) Totals(ctx context.Context) (*models.ProjectTotals, error) {
	return db.With(ctx, r.pool, func(c *db.RemoteClient) (*models.ProjectTotals, error) {
		var rows []struct {
			TotalUnits *int    `json:"total_units"`
			Developer  *string `json:"developer"`
		}
		if err := c.Select(ctx, projectsTable, db.Query{Select: "total_units,developer"}, &rows); err != nil {
			return nil, r.wrap(err, "totals", "")
		}
		var t models.ProjectTotals
		developers := make(map[string]struct{})
		for _, row := range rows {
			if row.TotalUnits != nil {
				t.DeclaredUnits += int64(*row.TotalUnits)
			}
			if row.Developer != nil {
				developers[*row.Developer] = struct{}{}
			}
		}
		t.Developers = len(developers)
		return &t, nil
	})
}

func (r *projectRemoteRepo) CountByZone(ctx context.Context) ([]analytics.GroupCount, error) {
	return db.With(ctx, r.pool, func(c *db.RemoteClient) ([]analytics.GroupCount, error) {
		var projects []*models.Project
		if err := c.Select(ctx, projectsTable, db.Query{Select: "id,zone_id"}, &projects); err != nil {
			return nil, r.wrap(err, "count by zone", "")
		}
		if err := hydrateZoneNames(ctx, c, projects); err != nil {
			return nil, r.wrap(err, "count by zone", "")
		}
		labels := make([]*string, len(projects))
		for i, p := range projects {
			labels[i] = p.ZoneName
		}
		sortLabels(labels)
		return analytics.CountLabels(labels, analytics.NoZoneLabel), nil
	})
}

// hydrateZoneNames resolves ZoneName for every project with a zone.
func hydrateZoneNames(ctx context.Context, c *db.RemoteClient, projects []*models.Project) error {
	seen := make(map[uuid.UUID]struct{})
	var ids []string
	for _, p := range projects {
		if p.ZoneID == nil {
			continue
		}
		if _, ok := seen[*p.ZoneID]; !ok {
			seen[*p.ZoneID] = struct{}{}
			ids = append(ids, p.ZoneID.String())
		}
	}
	if len(ids) == 0 {
		return nil
	}

	var zones []struct {
		ID   uuid.UUID `json:"id"`
		Name string    `json:"name"`
	}
	q := db.Query{Select: "id,name", In: map[string][]string{"id": ids}}
	if err := c.Select(ctx, zonesTable, q, &zones); err != nil {
		return err
	}
	names := make(map[uuid.UUID]string, len(zones))
	for _, z := range zones {
		names[z.ID] = z.Name
	}
	for _, p := range projects {
		if p.ZoneID == nil {
			continue
		}
		if name, ok := names[*p.ZoneID]; ok {
			p.ZoneName = &name
		}
	}
	return nil
}

// sortLabels orders labels ascending with nil last, matching SQL's
// ORDER BY ... ASC tie-break.
func sortLabels(labels []*string) {
	sort.SliceStable(labels, func(i, j int) bool {
		switch {
		case labels[i] == nil:
			return false
		case labels[j] == nil:
			return true
		}
		return *labels[i] < *labels[j]
	})
}

/* ------------------------------------------------------------------
   Units
------------------------------------------------------------------ */

type unitRemoteRepo struct {
	*remoteTable[models.Unit]
}

func NewUnitRemoteRepository(pool remoteProvider) UnitRepository {
	return &unitRemoteRepo{&remoteTable[models.Unit]{
		pool:    pool,
		table:   unitsTable,
		entity:  unitEntity,
		fields:  unitFields,
		touch:   true,
		list:    unitList,
		parseID: uuidKey,
		now:     time.Now,
	}}
}

func (r *unitRemoteRepo) Create(ctx context.Context, u *models.Unit) (*models.Unit, error) {
	return r.insert(ctx, recordOf(unitInsertColumns, unitValues(u)), u.UnitIdentifier)
}

func (r *unitRemoteRepo) CountByStatus(ctx context.Context) ([]analytics.GroupCount, error) {
	return db.With(ctx, r.pool, func(c *db.RemoteClient) ([]analytics.GroupCount, error) {
		var rows []struct {
			Status *string `json:"status"`
		}
		if err := c.Select(ctx, unitsTable, db.Query{Select: "status"}, &rows); err != nil {
			return nil, r.wrap(err, "count by status", "")
		}
		labels := make([]*string, len(rows))
		for i := range rows {
			labels[i] = rows[i].Status
		}
		sortLabels(labels)
		return analytics.CountLabels(labels, analytics.NoStatusLabel), nil
	})
}

/* ------------------------------------------------------------------
   Users
------------------------------------------------------------------ */

type userRemoteRepo struct {
	*remoteTable[models.User]
}

func NewUserRemoteRepository(pool remoteProvider) UserRepository {
	return &userRemoteRepo{&remoteTable[models.User]{
		pool:    pool,
		table:   usersTable,
		entity:  userEntity,
		fields:  userFields,
		list:    userList,
		parseID: intKey,
		now:     time.Now,
	}}
}

func (r *userRemoteRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	return r.insert(ctx, recordOf(userFields, []any{u.Username, u.Role, u.PasswordHash}), u.Username)
}

/* ------------------------------------------------------------------
   Conversations
------------------------------------------------------------------ */

type conversationRemoteRepo struct {
	*remoteTable[models.ConversationMessage]
}

func NewConversationRemoteRepository(pool remoteProvider) ConversationRepository {
	return &conversationRemoteRepo{&remoteTable[models.ConversationMessage]{
		pool:    pool,
		table:   conversationsTable,
		entity:  conversationEntity,
		list:    conversationList,
		parseID: intKey,
		now:     time.Now,
	}}
}
