package app

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/config"
	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/repositories"
	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/testhelpers/fakerest"
	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/utils"
)

func remoteConfig(url, apiKey string) *config.Config {
	r := repositories.BackendRemote
	return &config.Config{
		AppName:         "inventory-service",
		AppUrl:          "http://localhost:3000",
		SupabaseURL:     url,
		SupabaseAPIKey:  apiKey,
		SupabaseTimeout: 5 * time.Second,
		Backends:        config.Backends{Zones: r, Projects: r, Units: r, Users: r, Conversations: r},
	}
}

func newRemoteApp(t *testing.T) (*fakerest.Server, *App, http.Handler) {
	t.Helper()
	srv := fakerest.New()
	t.Cleanup(srv.Close)
	a, err := NewApp(remoteConfig(srv.URL, fakerest.APIKey))
	require.NoError(t, err)
	t.Cleanup(a.Close)
	return srv, a, a.Handler()
}

func do(t *testing.T, h http.Handler, method, path string, body any) (int, map[string]any, []any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var raw any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw), rec.Body.String())
	}
	obj, _ := raw.(map[string]any)
	list, _ := raw.([]any)
	return rec.Code, obj, list
}

func TestInventoryLifecycleOverRemoteStore(t *testing.T) {
	_, _, h := newRemoteApp(t)

	status, zone, _ := do(t, h, http.MethodPost, "/api/zones", map[string]any{"name": "Tulum", "description": "Riviera Maya"})
	require.Equal(t, http.StatusCreated, status)
	zoneID := zone["id"].(string)
	assert.EqualValues(t, 0, zone["project_count"])

	status, project, _ := do(t, h, http.MethodPost, "/api/projects", map[string]any{
		"name":      "Residencial Marina Bay",
		"zone_id":   zoneID,
		"developer": "Desarrollos del Caribe",
	})
	require.Equal(t, http.StatusCreated, status)
	projectID := project["id"].(string)
	assert.Equal(t, "Tulum", project["zone_name"])
	assert.EqualValues(t, 0, project["total_units"])
	assert.Equal(t, false, project["accepts_crypto"])

	status, unit, _ := do(t, h, http.MethodPost, "/api/units", map[string]any{
		"project_id":      projectID,
		"unit_identifier": "MAR-001",
		"typology":        "2BR",
	})
	require.Equal(t, http.StatusCreated, status)
	unitID := unit["id"].(string)
	assert.Equal(t, "Disponible", unit["status"])

	status, unit, _ = do(t, h, http.MethodPatch, "/api/units/"+unitID, map[string]any{"status": "Vendida"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Vendida", unit["status"])
	assert.Equal(t, "2BR", unit["typology"])
	assert.Equal(t, projectID, unit["project_id"])

	status, _, units := do(t, h, http.MethodGet, "/api/units/project/"+projectID, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, units, 1)

	status, stats, _ := do(t, h, http.MethodGet, "/api/dashboard/stats", nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 1, stats["total_projects"])
	assert.EqualValues(t, 1, stats["total_zones"])
	assert.EqualValues(t, 1, stats["sold_units"])
	assert.EqualValues(t, 0, stats["available_units"])
	assert.EqualValues(t, 1, stats["total_developers"])

	status, _, byZone := do(t, h, http.MethodGet, "/api/dashboard/projects-by-zone", nil)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, byZone, 1)
	assert.Equal(t, map[string]any{"zone_name": "Tulum", "project_count": float64(1)}, byZone[0])

	status, _, activity := do(t, h, http.MethodGet, "/api/dashboard/recent-activity?limit=5", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, activity, 2)

	status, msg, _ := do(t, h, http.MethodDelete, "/api/units/"+unitID, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Unit deleted successfully", msg["message"])

	status, errBody, _ := do(t, h, http.MethodDelete, "/api/units/"+unitID, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, utils.ErrCodeNotFound, errBody["code"])
}

func TestRequestValidation(t *testing.T) {
	_, _, h := newRemoteApp(t)

	status, body, _ := do(t, h, http.MethodPost, "/api/zones", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, utils.ErrCodeValidation, body["code"])

	status, body, _ = do(t, h, http.MethodGet, "/api/projects?limit=0", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, utils.ErrCodeValidation, body["code"])

	status, body, _ = do(t, h, http.MethodGet, "/api/projects?sort=cheapest", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, utils.ErrCodeValidation, body["code"])

	status, body, _ = do(t, h, http.MethodPatch, "/api/zones/not-a-uuid", map[string]any{"name": "x"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, utils.ErrCodeValidation, body["code"])
}

func TestUserPasswordsAreHashedAndHidden(t *testing.T) {
	srv, _, h := newRemoteApp(t)

	status, user, _ := do(t, h, http.MethodPost, "/api/users", map[string]any{
		"username": "ana", "role": "admin", "password": "correct-horse",
	})
	require.Equal(t, http.StatusCreated, status)
	assert.NotContains(t, user, "password")
	assert.NotContains(t, user, "password_hash")

	rows := srv.Rows("users")
	require.Len(t, rows, 1)
	hash, _ := rows[0]["password_hash"].(string)
	assert.True(t, utils.CheckPasswordHash("correct-horse", hash))

	status, _, users := do(t, h, http.MethodGet, "/api/users?role=admin", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, users, 1)
}

func TestUnconfiguredRemoteAnswers503WithoutIO(t *testing.T) {
	srv := fakerest.New()
	t.Cleanup(srv.Close)
	a, err := NewApp(remoteConfig("", ""))
	require.NoError(t, err)
	h := a.Handler()

	status, body, _ := do(t, h, http.MethodGet, "/api/zones", nil)
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, utils.ErrCodeServiceUnavailable, body["code"])

	status, _, _ = do(t, h, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Zero(t, srv.Hits())
}

func TestHealthOK(t *testing.T) {
	_, _, h := newRemoteApp(t)

	status, body, _ := do(t, h, http.MethodGet, "/health", nil)

	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "OK", body["status"])
	assert.Equal(t, map[string]any{"remote": "OK"}, body["backends"])
}

func TestSeedAllTestData_Idempotent(t *testing.T) {
	srv, a, _ := newRemoteApp(t)
	ctx := context.Background()

	require.NoError(t, SeedAllTestData(ctx, a.Zones, a.Projects, a.Units))
	require.NoError(t, SeedAllTestData(ctx, a.Zones, a.Projects, a.Units))

	assert.Len(t, srv.Rows("zones"), len(seedZones))
	assert.Len(t, srv.Rows("projects"), len(seedProjects))
	assert.Len(t, srv.Rows("units"), len(seedProjects)*seedUnitsPerProject)

	byZone, err := a.Projects.CountByZone(ctx)
	require.NoError(t, err)
	assert.Len(t, byZone, len(seedProjects))
}
