package controllers

import (
	"net/http"

	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/services"
	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/utils"
)

type DashboardController struct {
	dashboardService *services.DashboardService
}

func NewDashboardController(dashboardService *services.DashboardService) *DashboardController {
	return &DashboardController{dashboardService: dashboardService}
}

// GET /api/dashboard/stats
func (c *DashboardController) StatsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := c.dashboardService.Stats(r.Context())
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, stats)
}

// GET /api/dashboard/recent-activity?limit=
func (c *DashboardController) RecentActivityHandler(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", services.DefaultActivityLimit)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	events, err := c.dashboardService.RecentActivity(r.Context(), limit)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, events)
}

// GET /api/dashboard/projects-by-zone
func (c *DashboardController) ProjectsByZoneHandler(w http.ResponseWriter, r *http.Request) {
	counts, err := c.dashboardService.ProjectsByZone(r.Context())
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, counts)
}

// GET /api/dashboard/units-by-status
func (c *DashboardController) UnitsByStatusHandler(w http.ResponseWriter, r *http.Request) {
	counts, err := c.dashboardService.UnitsByStatus(r.Context())
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, counts)
}

// GET /api/dashboard/whatsapp/daily
func (c *DashboardController) MessagesPerDayHandler(w http.ResponseWriter, r *http.Request) {
	counts, err := c.dashboardService.MessagesPerDay(r.Context())
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, counts)
}

// GET /api/dashboard/whatsapp/by-user
func (c *DashboardController) MessagesPerUserHandler(w http.ResponseWriter, r *http.Request) {
	counts, err := c.dashboardService.MessagesPerUser(r.Context())
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, counts)
}

// GET /api/dashboard/whatsapp/faq?top=
func (c *DashboardController) FrequentKeywordsHandler(w http.ResponseWriter, r *http.Request) {
	top, err := queryInt(r, "top", services.DefaultKeywordTop)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	counts, err := c.dashboardService.FrequentKeywords(r.Context(), top)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, counts)
}

// GET /api/dashboard/whatsapp/last?limit=
func (c *DashboardController) LastMessagesHandler(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", services.DefaultLastMessages)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	msgs, err := c.dashboardService.LastMessages(r.Context(), limit)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, msgs)
}
