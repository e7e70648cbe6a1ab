package app

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/controllers"
	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/middleware"
	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/routes"
	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/services"
	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/utils"
)

// Handler wires services, controllers and routes over the app's
// repositories and wraps them in request logging and CORS.
func (a *App) Handler() http.Handler {
	// Services
	zoneService := services.NewZoneService(a.Zones)
	projectService := services.NewProjectService(a.Projects)
	unitService := services.NewUnitService(a.Units)
	userService := services.NewUserService(a.Users)
	dashboardService := services.NewDashboardService(a.Zones, a.Projects, a.Units, a.Conversations)

	// Controllers
	healthController := controllers.NewHealthController(a)
	zoneController := controllers.NewZoneController(zoneService)
	projectController := controllers.NewProjectController(projectService)
	unitController := controllers.NewUnitController(unitService)
	userController := controllers.NewUserController(userService)
	dashboardController := controllers.NewDashboardController(dashboardService)

	// Router
	router := mux.NewRouter()
	router.Use(middleware.RequestLogger)

	router.HandleFunc(routes.Health, healthController.HealthCheckHandler).Methods(http.MethodGet)

	router.HandleFunc(routes.Zones, zoneController.ListZonesHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.Zones, zoneController.CreateZoneHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.ZoneByID, zoneController.GetZoneHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.ZoneByID, zoneController.UpdateZoneHandler).Methods(http.MethodPut, http.MethodPatch)
	router.HandleFunc(routes.ZoneByID, zoneController.DeleteZoneHandler).Methods(http.MethodDelete)

	router.HandleFunc(routes.Projects, projectController.ListProjectsHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.Projects, projectController.CreateProjectHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.ProjectByID, projectController.GetProjectHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.ProjectByID, projectController.UpdateProjectHandler).Methods(http.MethodPut, http.MethodPatch)
	router.HandleFunc(routes.ProjectByID, projectController.DeleteProjectHandler).Methods(http.MethodDelete)

	router.HandleFunc(routes.Units, unitController.ListUnitsHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.Units, unitController.CreateUnitHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.UnitsByProject, unitController.ListUnitsByProjectHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.UnitByID, unitController.GetUnitHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.UnitByID, unitController.UpdateUnitHandler).Methods(http.MethodPut, http.MethodPatch)
	router.HandleFunc(routes.UnitByID, unitController.DeleteUnitHandler).Methods(http.MethodDelete)

	router.HandleFunc(routes.Users, userController.ListUsersHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.Users, userController.CreateUserHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.UserByID, userController.GetUserHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.UserByID, userController.UpdateUserHandler).Methods(http.MethodPut, http.MethodPatch)
	router.HandleFunc(routes.UserByID, userController.DeleteUserHandler).Methods(http.MethodDelete)

	router.HandleFunc(routes.DashboardStats, dashboardController.StatsHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.DashboardRecentActivity, dashboardController.RecentActivityHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.DashboardProjectsByZone, dashboardController.ProjectsByZoneHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.DashboardUnitsByStatus, dashboardController.UnitsByStatusHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.DashboardWhatsAppDaily, dashboardController.MessagesPerDayHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.DashboardWhatsAppByUser, dashboardController.MessagesPerUserHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.DashboardWhatsAppFAQ, dashboardController.FrequentKeywordsHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.DashboardWhatsAppLast, dashboardController.LastMessagesHandler).Methods(http.MethodGet)

	allowedOrigins := []string{a.Config.AppUrl}
	if !a.Config.LDFlag_CORSHighSecurity {
		allowedOrigins = append(allowedOrigins, utils.CORSLowSecurityAllowedOriginLocalhost)
	}

	// CORS config
	co := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})
	return co.Handler(router)
}
