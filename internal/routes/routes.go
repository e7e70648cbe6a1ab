package routes

const (
	// Health
	Health = "/health"

	// Zones
	Zones    = "/api/zones"
	ZoneByID = "/api/zones/{id}"

	// Projects
	Projects    = "/api/projects"
	ProjectByID = "/api/projects/{id}"

	// Units
	Units          = "/api/units"
	UnitByID       = "/api/units/{id}"
	UnitsByProject = "/api/units/project/{project_id}"

	// Users
	Users    = "/api/users"
	UserByID = "/api/users/{id}"

	// ───────────────────────────────
	// Dashboard
	// ───────────────────────────────
	DashboardStats          = "/api/dashboard/stats"
	DashboardRecentActivity = "/api/dashboard/recent-activity"
	DashboardProjectsByZone = "/api/dashboard/projects-by-zone"
	DashboardUnitsByStatus  = "/api/dashboard/units-by-status"

	DashboardWhatsAppDaily  = "/api/dashboard/whatsapp/daily"
	DashboardWhatsAppByUser = "/api/dashboard/whatsapp/by-user"
	DashboardWhatsAppFAQ    = "/api/dashboard/whatsapp/faq"
	DashboardWhatsAppLast   = "/api/dashboard/whatsapp/last"
)
