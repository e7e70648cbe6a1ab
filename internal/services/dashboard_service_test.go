package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/analytics"
	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/db"
	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/dtos"
	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/models"
	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/repositories"
	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/utils"
)

type dashboardFixture struct {
	zones    *mockZoneRepo
	projects *mockProjectRepo
	units    *mockUnitRepo
	convs    *mockConversationRepo
	svc      *DashboardService
}

func newDashboardFixture() *dashboardFixture {
	f := &dashboardFixture{
		zones:    &mockZoneRepo{},
		projects: &mockProjectRepo{},
		units:    &mockUnitRepo{},
		convs:    &mockConversationRepo{},
	}
	f.svc = NewDashboardService(f.zones, f.projects, f.units, f.convs)
	return f
}

func TestDashboardService_Stats(t *testing.T) {
	f := newDashboardFixture()
	ctx := context.Background()
	f.projects.On("Count", ctx, repositories.ListParams{}).Return(3, nil)
	f.zones.On("Count", ctx, repositories.ListParams{}).Return(5, nil)
	f.projects.On("Totals", ctx).Return(&models.ProjectTotals{DeclaredUnits: 120, Developers: 2}, nil)
	f.units.On("CountByStatus", ctx).Return([]analytics.GroupCount{
		{Label: "Disponible", Count: 4},
		{Label: "vendida", Count: 2},
		{Label: "Reservada", Count: 1},
		{Label: "Sin estado", Count: 7},
	}, nil)

	stats, err := f.svc.Stats(ctx)

	require.NoError(t, err)
	assert.Equal(t, &dtos.DashboardStatsResponse{
		TotalProjects:   3,
		TotalUnits:      120,
		TotalZones:      5,
		AvailableUnits:  4,
		SoldUnits:       2,
		ReservedUnits:   1,
		TotalDevelopers: 2,
	}, stats)
}

func TestDashboardService_StatsUnconfiguredStore(t *testing.T) {
	f := newDashboardFixture()
	ctx := context.Background()
	f.projects.On("Count", ctx, mock.Anything).
		Return(0, &db.ConfigurationError{Backend: db.BackendRemote, Missing: []string{"SUPABASE_URL"}})

	_, err := f.svc.Stats(ctx)

	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, utils.ErrCodeServiceUnavailable, appErr.Code)
}

func TestDashboardService_RecentActivitySkipsOrphanUnits(t *testing.T) {
	f := newDashboardFixture()
	ctx := context.Background()
	now := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)

	known := &models.Project{ID: uuid.New(), Name: "Residencial Marina Bay", CreatedAt: now.Add(-2 * time.Hour)}
	older := &models.Project{ID: uuid.New(), Name: "Cozumel Paradise"}
	orphanID := uuid.New()

	f.projects.On("List", ctx, repositories.ListParams{Limit: 3, Sort: repositories.SortRecent}).
		Return([]*models.Project{known}, nil)
	f.units.On("List", ctx, repositories.ListParams{Limit: 3, Sort: repositories.SortRecentlyUpdated}).
		Return([]*models.Unit{
			{ProjectID: known.ID, UnitIdentifier: "A-1", Status: utils.Ptr("Vendida"), UpdatedAt: now},
			{ProjectID: orphanID, UnitIdentifier: "X-9", UpdatedAt: now.Add(-time.Minute)},
			{ProjectID: older.ID, UnitIdentifier: "C-3", Status: utils.Ptr("Reservada"), UpdatedAt: now.Add(-time.Hour)},
		}, nil)
	f.projects.On("Get", ctx, orphanID.String()).Return(nil, db.NotFound("project", orphanID.String()))
	f.projects.On("Get", ctx, older.ID.String()).Return(older, nil)

	events, err := f.svc.RecentActivity(ctx, 3)

	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "Residencial Marina Bay - A-1", events[0].Title)
	assert.Equal(t, analytics.ActionUnitSold, events[0].Action)
	assert.Equal(t, "Cozumel Paradise - C-3", events[1].Title)
	assert.Equal(t, analytics.ActionUnitReserved, events[1].Action)
	assert.Equal(t, models.ActivityTypeProject, events[2].Type)
	f.projects.AssertNumberOfCalls(t, "Get", 2)
}

func TestDashboardService_RecentActivityDefaultLimit(t *testing.T) {
	f := newDashboardFixture()
	ctx := context.Background()
	f.projects.On("List", ctx, repositories.ListParams{Limit: DefaultActivityLimit, Sort: repositories.SortRecent}).
		Return([]*models.Project{}, nil)
	f.units.On("List", ctx, repositories.ListParams{Limit: DefaultActivityLimit, Sort: repositories.SortRecentlyUpdated}).
		Return([]*models.Unit{}, nil)

	events, err := f.svc.RecentActivity(ctx, 0)

	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestDashboardService_ConversationReports(t *testing.T) {
	f := newDashboardFixture()
	ctx := context.Background()
	msgs := []*models.ConversationMessage{
		{ID: 3, Date: "2025-08-02T10:00:00", UserName: utils.Ptr("Ana"), Message: utils.Ptr("Precio del departamento en Tulum")},
		{ID: 2, Date: "2025-08-01T09:00:00", UserName: utils.Ptr("Ana"), Message: utils.Ptr("¿Tienen departamento con vista?")},
		{ID: 1, Date: "2025-08-01T08:00:00", Message: utils.Ptr("hola")},
	}
	f.convs.On("List", ctx, repositories.ListParams{Limit: conversationScanLimit}).Return(msgs, nil)

	daily, err := f.svc.MessagesPerDay(ctx)
	require.NoError(t, err)
	assert.Equal(t, []dtos.DailyMessageCount{{Date: "2025-08-01", Total: 2}, {Date: "2025-08-02", Total: 1}}, daily)

	byUser, err := f.svc.MessagesPerUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, []dtos.UserMessageCount{{User: "Ana", Total: 2}, {User: analytics.UnknownUserLabel, Total: 1}}, byUser)

	faq, err := f.svc.FrequentKeywords(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []dtos.KeywordCount{{Keyword: "departamento", Total: 2}}, faq)
}

func TestDashboardService_LastMessages(t *testing.T) {
	f := newDashboardFixture()
	ctx := context.Background()
	f.convs.On("List", ctx, repositories.ListParams{Limit: DefaultLastMessages}).
		Return([]*models.ConversationMessage{{ID: 9}}, nil)

	msgs, err := f.svc.LastMessages(ctx, -1)

	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, int64(9), msgs[0].ID)
}
