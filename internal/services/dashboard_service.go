package services

import (
	"context"
	"strings"

	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/analytics"
	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/db"
	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/dtos"
	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/models"
	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/repositories"
)

const (
	DefaultActivityLimit = 10
	DefaultKeywordTop    = 10
	DefaultLastMessages  = 20

	// conversationScanLimit bounds how many history rows one report reads.
	conversationScanLimit = 10000
)

type DashboardService struct {
	zones         repositories.ZoneRepository
	projects      repositories.ProjectRepository
	units         repositories.UnitRepository
	conversations repositories.ConversationRepository
}

func NewDashboardService(
	zones repositories.ZoneRepository,
	projects repositories.ProjectRepository,
	units repositories.UnitRepository,
	conversations repositories.ConversationRepository,
) *DashboardService {
	return &DashboardService{
		zones:         zones,
		projects:      projects,
		units:         units,
		conversations: conversations,
	}
}

// Stats summarizes the whole portfolio. Unit status buckets are matched
// case-insensitively.
func (s *DashboardService) Stats(ctx context.Context) (*dtos.DashboardStatsResponse, error) {
	const failMsg = "Failed to compute dashboard stats"

	totalProjects, err := s.projects.Count(ctx, repositories.ListParams{})
	if err != nil {
		return nil, storeError(err, "", failMsg)
	}
	totalZones, err := s.zones.Count(ctx, repositories.ListParams{})
	if err != nil {
		return nil, storeError(err, "", failMsg)
	}
	totals, err := s.projects.Totals(ctx)
	if err != nil {
		return nil, storeError(err, "", failMsg)
	}
	byStatus, err := s.units.CountByStatus(ctx)
	if err != nil {
		return nil, storeError(err, "", failMsg)
	}

	resp := &dtos.DashboardStatsResponse{
		TotalProjects:   totalProjects,
		TotalUnits:      totals.DeclaredUnits,
		TotalZones:      totalZones,
		TotalDevelopers: totals.Developers,
	}
	for _, g := range byStatus {
		switch {
		case strings.EqualFold(g.Label, models.UnitStatusAvailable):
			resp.AvailableUnits += g.Count
		case strings.EqualFold(g.Label, models.UnitStatusSold):
			resp.SoldUnits += g.Count
		case strings.EqualFold(g.Label, models.UnitStatusReserved):
			resp.ReservedUnits += g.Count
		}
	}
	return resp, nil
}

func (s *DashboardService) ProjectsByZone(ctx context.Context) ([]dtos.ZoneProjectCount, error) {
	groups, err := s.projects.CountByZone(ctx)
	if err != nil {
		return nil, storeError(err, "", "Failed to count projects by zone")
	}
	return dtos.NewZoneProjectCounts(groups), nil
}

func (s *DashboardService) UnitsByStatus(ctx context.Context) ([]dtos.StatusUnitCount, error) {
	groups, err := s.units.CountByStatus(ctx)
	if err != nil {
		return nil, storeError(err, "", "Failed to count units by status")
	}
	return dtos.NewStatusUnitCounts(groups), nil
}

// RecentActivity merges the newest project creations with the latest unit
// changes. Units whose project no longer exists are left out.
func (s *DashboardService) RecentActivity(ctx context.Context, limit int) ([]models.ActivityEvent, error) {
	const failMsg = "Failed to load recent activity"
	if limit <= 0 {
		limit = DefaultActivityLimit
	}

	projects, err := s.projects.List(ctx, repositories.ListParams{Limit: limit, Sort: repositories.SortRecent})
	if err != nil {
		return nil, storeError(err, "", failMsg)
	}
	units, err := s.units.List(ctx, repositories.ListParams{Limit: limit, Sort: repositories.SortRecentlyUpdated})
	if err != nil {
		return nil, storeError(err, "", failMsg)
	}

	names := make(map[string]string, len(projects))
	projectEvents := make([]models.ActivityEvent, 0, len(projects))
	for _, p := range projects {
		names[p.ID.String()] = p.Name
		projectEvents = append(projectEvents, analytics.ProjectCreatedEvent(p))
	}

	unitEvents := make([]models.ActivityEvent, 0, len(units))
	missing := map[string]bool{}
	for _, u := range units {
		pid := u.ProjectID.String()
		name, ok := names[pid]
		if !ok && !missing[pid] {
			p, err := s.projects.Get(ctx, pid)
			switch {
			case db.IsNotFound(err):
				missing[pid] = true
			case err != nil:
				return nil, storeError(err, "", failMsg)
			default:
				name, ok = p.Name, true
				names[pid] = name
			}
		}
		if !ok {
			continue
		}
		unitEvents = append(unitEvents, analytics.UnitChangedEvent(u, name))
	}

	return analytics.MergeActivity(limit, projectEvents, unitEvents), nil
}

func (s *DashboardService) loadConversations(ctx context.Context, limit int) ([]*models.ConversationMessage, error) {
	msgs, err := s.conversations.List(ctx, repositories.ListParams{Limit: limit})
	if err != nil {
		return nil, storeError(err, "", "Failed to load conversation history")
	}
	return msgs, nil
}

func (s *DashboardService) MessagesPerDay(ctx context.Context) ([]dtos.DailyMessageCount, error) {
	msgs, err := s.loadConversations(ctx, conversationScanLimit)
	if err != nil {
		return nil, err
	}
	return dtos.NewDailyMessageCounts(analytics.MessagesPerDay(msgs)), nil
}

func (s *DashboardService) MessagesPerUser(ctx context.Context) ([]dtos.UserMessageCount, error) {
	msgs, err := s.loadConversations(ctx, conversationScanLimit)
	if err != nil {
		return nil, err
	}
	return dtos.NewUserMessageCounts(analytics.MessagesPerUser(msgs)), nil
}

// FrequentKeywords reports the top most used words across all messages.
func (s *DashboardService) FrequentKeywords(ctx context.Context, top int) ([]dtos.KeywordCount, error) {
	if top <= 0 {
		top = DefaultKeywordTop
	}
	msgs, err := s.loadConversations(ctx, conversationScanLimit)
	if err != nil {
		return nil, err
	}
	texts := analytics.MessageTexts(msgs)
	return dtos.NewKeywordCounts(analytics.TopKeywords(texts, analytics.DefaultStopWords, top)), nil
}

// LastMessages returns the newest messages first.
func (s *DashboardService) LastMessages(ctx context.Context, limit int) ([]*models.ConversationMessage, error) {
	if limit <= 0 {
		limit = DefaultLastMessages
	}
	return s.loadConversations(ctx, limit)
}
