package repositories

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/analytics"
	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/db"
	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/models"
	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/testhelpers/fakerest"
	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/utils"
)

func newRemoteStores(t *testing.T) (*fakerest.Server, Stores) {
	t.Helper()
	srv := fakerest.New()
	t.Cleanup(srv.Close)
	provider := db.NewRemoteProvider(db.RemoteConfig{URL: srv.URL, APIKey: fakerest.APIKey}, srv.Client())
	return srv, Stores{Remote: provider}
}

func TestRemoteZone_CreateGetAndProjectCount(t *testing.T) {
	ctx := context.Background()
	_, stores := newRemoteStores(t)
	zones := NewZoneRepository(BackendRemote, stores)
	projects := NewProjectRepository(BackendRemote, stores)

	created, err := zones.Create(ctx, &models.Zone{Name: "Tulum", Description: utils.Ptr("Riviera Maya")})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, 0, created.ProjectCount)

	got, err := zones.Get(ctx, created.ID.String())
	require.NoError(t, err)
	if diff := cmp.Diff(created, got); diff != "" {
		t.Fatalf("get after create mismatch (-created +got):\n%s", diff)
	}

	p, err := projects.Create(ctx, &models.Project{Name: "Residencial Marina Bay", ZoneID: &created.ID})
	require.NoError(t, err)
	require.NotNil(t, p.ZoneName)
	assert.Equal(t, "Tulum", *p.ZoneName)

	got, err = zones.Get(ctx, created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 1, got.ProjectCount)
}

func TestRemoteZone_DuplicateNameIsConflict(t *testing.T) {
	ctx := context.Background()
	_, stores := newRemoteStores(t)
	zones := NewZoneRepository(BackendRemote, stores)

	_, err := zones.Create(ctx, &models.Zone{Name: "Cozumel"})
	require.NoError(t, err)
	_, err = zones.Create(ctx, &models.Zone{Name: "Cozumel"})

	var ve *db.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, http.StatusConflict, ve.Status)
}

func TestRemoteProject_PartialUpdateTouchesOnlyNamedFields(t *testing.T) {
	ctx := context.Background()
	_, stores := newRemoteStores(t)
	repo := NewProjectRemoteRepository(stores.Remote).(*projectRemoteRepo)
	later := time.Now().Add(time.Hour)
	repo.now = func() time.Time { return later }
	var projects ProjectRepository = repo

	orig, err := projects.Create(ctx, &models.Project{
		Name:       "Torres del Centro",
		Developer:  utils.Ptr("Grupo Inmobiliario"),
		TotalUnits: utils.Ptr(80),
		Slug:       utils.Ptr("torres-centro"),
	})
	require.NoError(t, err)

	patch := NewPatch()
	patch.Set("name", "Torres del Centro II")
	updated, err := projects.Update(ctx, orig.ID.String(), patch)
	require.NoError(t, err)

	assert.Equal(t, "Torres del Centro II", updated.Name)
	assert.Equal(t, orig.Developer, updated.Developer)
	assert.Equal(t, orig.TotalUnits, updated.TotalUnits)
	assert.Equal(t, orig.Slug, updated.Slug)
	assert.Equal(t, orig.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(orig.UpdatedAt))
	assert.True(t, updated.UpdatedAt.Equal(later))

	got, err := projects.Get(ctx, orig.ID.String())
	require.NoError(t, err)
	if diff := cmp.Diff(updated, got); diff != "" {
		t.Fatalf("get after update mismatch (-updated +got):\n%s", diff)
	}
}

func TestRemoteProject_ExplicitNullClearsField(t *testing.T) {
	ctx := context.Background()
	_, stores := newRemoteStores(t)
	projects := NewProjectRepository(BackendRemote, stores)

	orig, err := projects.Create(ctx, &models.Project{Name: "Cozumel Paradise", Concept: utils.Ptr("Eco")})
	require.NoError(t, err)

	patch := NewPatch()
	patch.Set("concept", nil)
	updated, err := projects.Update(ctx, orig.ID.String(), patch)
	require.NoError(t, err)
	assert.Nil(t, updated.Concept)
	assert.Equal(t, "Cozumel Paradise", updated.Name)
}

func TestRemoteUnit_EmptyPatchIsRead(t *testing.T) {
	ctx := context.Background()
	srv, stores := newRemoteStores(t)
	units := NewUnitRepository(BackendRemote, stores)

	u, err := units.Create(ctx, &models.Unit{ProjectID: uuid.New(), UnitIdentifier: "A-101", Status: utils.Ptr("Disponible")})
	require.NoError(t, err)
	before := srv.Rows(unitsTable)

	got, err := units.Update(ctx, u.ID.String(), NewPatch())
	require.NoError(t, err)

	assert.Equal(t, u, got)
	assert.Equal(t, before, srv.Rows(unitsTable))
}

func TestRemoteUnit_UpdateRejectsProjectChange(t *testing.T) {
	ctx := context.Background()
	_, stores := newRemoteStores(t)
	units := NewUnitRepository(BackendRemote, stores)

	u, err := units.Create(ctx, &models.Unit{ProjectID: uuid.New(), UnitIdentifier: "B-2"})
	require.NoError(t, err)

	patch := NewPatch()
	patch.Set("project_id", uuid.New())
	_, err = units.Update(ctx, u.ID.String(), patch)

	var ve *db.ValidationError
	require.True(t, errors.As(err, &ve))
}

func TestRemote_DeleteTwiceReportsNotFound(t *testing.T) {
	ctx := context.Background()
	_, stores := newRemoteStores(t)
	zones := NewZoneRepository(BackendRemote, stores)

	z, err := zones.Create(ctx, &models.Zone{Name: "Puerto Morelos"})
	require.NoError(t, err)

	require.NoError(t, zones.Delete(ctx, z.ID.String()))
	err = zones.Delete(ctx, z.ID.String())
	assert.True(t, db.IsNotFound(err))

	_, err = zones.Get(ctx, z.ID.String())
	assert.True(t, db.IsNotFound(err))
}

func TestRemote_EmptyDeleteResponseStillReportsMissingRows(t *testing.T) {
	ctx := context.Background()
	srv, stores := newRemoteStores(t)
	srv.EmptyDelete = true
	units := NewUnitRepository(BackendRemote, stores)

	u, err := units.Create(ctx, &models.Unit{ProjectID: uuid.New(), UnitIdentifier: "C-3"})
	require.NoError(t, err)

	require.NoError(t, units.Delete(ctx, u.ID.String()))
	assert.Empty(t, srv.Rows(unitsTable))

	assert.True(t, db.IsNotFound(units.Delete(ctx, u.ID.String())))
	assert.True(t, db.IsNotFound(units.Delete(ctx, uuid.NewString())))
}

func TestRemote_UpdateMissingIsNotFound(t *testing.T) {
	ctx := context.Background()
	_, stores := newRemoteStores(t)
	units := NewUnitRepository(BackendRemote, stores)

	patch := NewPatch()
	patch.Set("status", "Vendida")
	_, err := units.Update(ctx, uuid.NewString(), patch)

	assert.True(t, db.IsNotFound(err))
}

func TestRemote_InvalidIDNeverReachesStore(t *testing.T) {
	ctx := context.Background()
	srv, stores := newRemoteStores(t)
	units := NewUnitRepository(BackendRemote, stores)

	_, err := units.Get(ctx, "not-a-uuid")

	var ve *db.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, http.StatusBadRequest, ve.Status)
	assert.Equal(t, "Invalid UUID", ve.Message)
	assert.Zero(t, srv.Hits())
}

func TestRemote_PaginationPartitionsTheFullList(t *testing.T) {
	ctx := context.Background()
	_, stores := newRemoteStores(t)
	units := NewUnitRepository(BackendRemote, stores)

	projectID := uuid.New()
	for i := 0; i < 7; i++ {
		_, err := units.Create(ctx, &models.Unit{ProjectID: projectID, UnitIdentifier: fmt.Sprintf("U-%02d", i)})
		require.NoError(t, err)
	}

	all, err := units.List(ctx, ListParams{})
	require.NoError(t, err)
	require.Len(t, all, 7)

	var paged []*models.Unit
	for skip := 0; skip < 9; skip += 3 {
		page, err := units.List(ctx, ListParams{Skip: skip, Limit: 3})
		require.NoError(t, err)
		paged = append(paged, page...)
	}
	assert.Equal(t, all, paged)

	n, err := units.Count(ctx, ListParams{Filters: map[string]string{"project_id": projectID.String()}})
	require.NoError(t, err)
	assert.Equal(t, 7, n)
}

func TestRemote_SearchAndFilters(t *testing.T) {
	ctx := context.Background()
	_, stores := newRemoteStores(t)
	users := NewUserRepository(BackendRemote, stores)

	for _, u := range []models.User{
		{Username: "ana.lopez", Role: "admin", PasswordHash: "h"},
		{Username: "beto", Role: "ventas", PasswordHash: "h"},
		{Username: "ANA.perez", Role: "ventas", PasswordHash: "h"},
	} {
		_, err := users.Create(ctx, &u)
		require.NoError(t, err)
	}

	found, err := users.List(ctx, ListParams{Search: "ana"})
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, int64(1), found[0].ID)
	assert.Equal(t, int64(3), found[1].ID)

	sales, err := users.List(ctx, ListParams{Filters: map[string]string{"role": "ventas"}})
	require.NoError(t, err)
	assert.Len(t, sales, 2)

	got, err := users.Get(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, "beto", got.Username)

	_, err = users.List(ctx, ListParams{Filters: map[string]string{"password_hash": "h"}})
	assert.Error(t, err)
}

func TestRemote_Aggregates(t *testing.T) {
	ctx := context.Background()
	_, stores := newRemoteStores(t)
	zones := NewZoneRepository(BackendRemote, stores)
	projects := NewProjectRepository(BackendRemote, stores)
	units := NewUnitRepository(BackendRemote, stores)

	tulum, err := zones.Create(ctx, &models.Zone{Name: "Tulum"})
	require.NoError(t, err)
	for _, p := range []*models.Project{
		{Name: "A", ZoneID: &tulum.ID, TotalUnits: utils.Ptr(10), Developer: utils.Ptr("Dev 1")},
		{Name: "B", ZoneID: &tulum.ID, TotalUnits: utils.Ptr(5), Developer: utils.Ptr("Dev 1")},
		{Name: "C", TotalUnits: utils.Ptr(1), Developer: utils.Ptr("Dev 2")},
	} {
		_, err := projects.Create(ctx, p)
		require.NoError(t, err)
	}
	for _, status := range []*string{utils.Ptr("Disponible"), utils.Ptr("Disponible"), utils.Ptr("Vendida"), nil} {
		_, err := units.Create(ctx, &models.Unit{ProjectID: uuid.New(), UnitIdentifier: "X", Status: status})
		require.NoError(t, err)
	}

	totals, err := projects.Totals(ctx)
	require.NoError(t, err)
	assert.Equal(t, &models.ProjectTotals{DeclaredUnits: 16, Developers: 2}, totals)

	byZone, err := projects.CountByZone(ctx)
	require.NoError(t, err)
	assert.Equal(t, []analytics.GroupCount{{Label: "Tulum", Count: 2}, {Label: analytics.NoZoneLabel, Count: 1}}, byZone)

	byStatus, err := units.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, []analytics.GroupCount{
		{Label: "Disponible", Count: 2},
		{Label: "Vendida", Count: 1},
		{Label: analytics.NoStatusLabel, Count: 1},
	}, byStatus)
}

func TestRemote_MissingConfigurationFailsBeforeIO(t *testing.T) {
	ctx := context.Background()
	srv := fakerest.New()
	defer srv.Close()
	provider := db.NewRemoteProvider(db.RemoteConfig{URL: srv.URL}, srv.Client())
	zones := NewZoneRepository(BackendRemote, Stores{Remote: provider})

	_, err := zones.List(ctx, ListParams{})

	var ce *db.ConfigurationError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, []string{"SUPABASE_APIKEY"}, ce.Missing)
	assert.Zero(t, srv.Hits())
}

func TestRemoteConversations_NewestFirst(t *testing.T) {
	ctx := context.Background()
	srv, stores := newRemoteStores(t)
	srv.Seed(conversationsTable,
		fakerest.Row{"id": 1.0, "fecha": "2025-08-01T10:00:00+00:00", "nombreusuario": "Ana", "historial_conversacion": "precio"},
		fakerest.Row{"id": 2.0, "fecha": "2025-08-03T10:00:00+00:00", "nombreusuario": "Luis", "historial_conversacion": "ubicación"},
		fakerest.Row{"id": 3.0, "fecha": "2025-08-02T10:00:00+00:00", "idusuario": "52155", "historial_conversacion": "planos"},
	)
	repo := NewConversationRepository(BackendRemote, stores)

	msgs, err := repo.List(ctx, ListParams{Limit: 2})
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, int64(2), msgs[0].ID)
	assert.Equal(t, int64(3), msgs[1].ID)
	assert.Equal(t, "52155", *msgs[1].UserID)
}

func TestRemote_SearchWildcardsMatchLiterally(t *testing.T) {
	ctx := context.Background()
	_, stores := newRemoteStores(t)
	zones := NewZoneRepository(BackendRemote, stores)

	for _, name := range []string{"Tulum", "Zona_Hotelera", "Centro 100%"} {
		_, err := zones.Create(ctx, &models.Zone{Name: name})
		require.NoError(t, err)
	}

	got, err := zones.List(ctx, ListParams{Limit: 100, Search: "_"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Zona_Hotelera", got[0].Name)

	got, err = zones.List(ctx, ListParams{Limit: 100, Search: "%"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Centro 100%", got[0].Name)
}

func TestRemote_EqualityFilterWithReservedCharacters(t *testing.T) {
	ctx := context.Background()
	_, stores := newRemoteStores(t)
	projects := NewProjectRepository(BackendRemote, stores)

	_, err := projects.Create(ctx, &models.Project{Name: "Marina Bay", Developer: utils.Ptr("Grupo Caribe, S.A. (MX)")})
	require.NoError(t, err)
	_, err = projects.Create(ctx, &models.Project{Name: "Cozumel Paradise", Developer: utils.Ptr("Grupo Caribe")})
	require.NoError(t, err)

	got, err := projects.List(ctx, ListParams{Limit: 100, Filters: map[string]string{"developer": "Grupo Caribe, S.A. (MX)"}})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Marina Bay", got[0].Name)
}
