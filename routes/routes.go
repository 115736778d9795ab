package routes

import (
	"firewatch/internal/handlers"
	"firewatch/internal/middleware"
	"firewatch/internal/models"

	"github.com/gin-gonic/gin"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth       *handlers.AuthHandler
	Unit       *handlers.UnitHandler
	Report     *handlers.ReportHandler
	Department *handlers.DepartmentHandler
	Station    *handlers.StationHandler
	Personnel  *handlers.PersonnelHandler
	Org        *handlers.OrgHandler
	Chat       *handlers.ChatHandler
}

// SetupRoutes mounts the full API surface under /api/v1.
func SetupRoutes(r *gin.RouterGroup, h *Handlers, jwtSecret string) {
	authRequired := middleware.AuthMiddleware(jwtSecret)
	adminOnly := middleware.RequireRole(string(models.UserRoleAdmin))
	staffOnly := middleware.RequireRole(string(models.UserRoleAdmin), string(models.UserRoleDispatcher))

	setupAuthRoutes(r, h.Auth, authRequired)
	setupUnitRoutes(r, h.Unit, authRequired, staffOnly, adminOnly)
	setupReportRoutes(r, h.Report, authRequired, staffOnly)
	setupOrgRoutes(r, h, authRequired, adminOnly)
	setupChatRoutes(r, h.Chat, authRequired)
}

func setupAuthRoutes(r *gin.RouterGroup, h *handlers.AuthHandler, authRequired gin.HandlerFunc) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/refresh", h.RefreshToken)
		auth.POST("/otp/send", h.SendPhoneOTP)
		auth.POST("/otp/verify", h.VerifyPhoneOTP)
		auth.GET("/me", authRequired, h.GetProfile)
	}
}

func setupUnitRoutes(r *gin.RouterGroup, h *handlers.UnitHandler, authRequired, staffOnly, adminOnly gin.HandlerFunc) {
	units := r.Group("/units")
	units.Use(authRequired, staffOnly)
	{
		units.POST("", h.CreateUnit)
		units.GET("", h.ListUnits)
		units.GET("/:id", h.GetUnit)
		units.PUT("/:id", h.UpdateUnit)
		units.DELETE("/:id", h.DeleteUnit)

		units.POST("/:id/activate", h.ActivateUnit)
		units.POST("/:id/deactivate", h.DeactivateUnit)
	}

	admin := r.Group("/admin/units")
	admin.Use(authRequired, adminOnly)
	{
		admin.POST("/sweep", h.SweepUnits)
	}
}

func setupReportRoutes(r *gin.RouterGroup, h *handlers.ReportHandler, authRequired, staffOnly gin.HandlerFunc) {
	reports := r.Group("/reports")
	reports.Use(authRequired)
	{
		// Any authenticated caller can file or read a report.
		reports.POST("", h.CreateReport)
		reports.GET("", h.ListReports)
		reports.GET("/stats", h.GetStats)
		reports.GET("/:id", h.GetReport)

		reports.PUT("/:id", staffOnly, h.UpdateReport)
		reports.DELETE("/:id", staffOnly, h.DeleteReport)
	}
}

func setupOrgRoutes(r *gin.RouterGroup, h *Handlers, authRequired, adminOnly gin.HandlerFunc) {
	departments := r.Group("/departments")
	departments.Use(authRequired)
	{
		departments.GET("", h.Department.ListDepartments)
		departments.GET("/:id", h.Department.GetDepartment)
		departments.GET("/:id/units", h.Unit.GetDepartmentUnits)

		departments.POST("", adminOnly, h.Department.CreateDepartment)
		departments.PUT("/:id", adminOnly, h.Department.UpdateDepartment)
		departments.DELETE("/:id", adminOnly, h.Department.DeleteDepartment)
	}

	stations := r.Group("/stations")
	stations.Use(authRequired)
	{
		stations.GET("", h.Station.ListStations)
		stations.GET("/:id", h.Station.GetStation)
		stations.GET("/:id/personnel", h.Station.GetStationPersonnel)

		stations.POST("", adminOnly, h.Station.CreateStation)
		stations.PUT("/:id", adminOnly, h.Station.UpdateStation)
		stations.DELETE("/:id", adminOnly, h.Station.DeleteStation)
	}

	personnel := r.Group("/personnel")
	personnel.Use(authRequired, adminOnly)
	{
		personnel.POST("", h.Personnel.CreatePersonnel)
		personnel.GET("", h.Personnel.ListPersonnel)
		personnel.GET("/:id", h.Personnel.GetPersonnel)
		personnel.PUT("/:id", h.Personnel.UpdatePersonnel)
		personnel.DELETE("/:id", h.Personnel.DeletePersonnel)
	}

	ranks := r.Group("/ranks")
	ranks.Use(authRequired)
	{
		ranks.GET("", h.Org.ListRanks)
		ranks.GET("/:id", h.Org.GetRank)
		ranks.POST("", adminOnly, h.Org.CreateRank)
		ranks.PUT("/:id", adminOnly, h.Org.UpdateRank)
		ranks.DELETE("/:id", adminOnly, h.Org.DeleteRank)
	}

	roles := r.Group("/roles")
	roles.Use(authRequired)
	{
		roles.GET("", h.Org.ListRoles)
		roles.GET("/:id", h.Org.GetRole)
		roles.POST("", adminOnly, h.Org.CreateRole)
		roles.PUT("/:id", adminOnly, h.Org.UpdateRole)
		roles.DELETE("/:id", adminOnly, h.Org.DeleteRole)
	}

	groups := r.Group("/groups")
	groups.Use(authRequired)
	{
		groups.GET("", h.Org.ListGroups)
		groups.GET("/:id", h.Org.GetGroup)
		groups.POST("", adminOnly, h.Org.CreateGroup)
		groups.PUT("/:id", adminOnly, h.Org.UpdateGroup)
		groups.DELETE("/:id", adminOnly, h.Org.DeleteGroup)
	}
}

func setupChatRoutes(r *gin.RouterGroup, h *handlers.ChatHandler, authRequired gin.HandlerFunc) {
	chat := r.Group("/chat")
	chat.Use(authRequired)
	{
		chat.POST("/messages", h.SendMessage)
		chat.GET("/conversations", h.ListConversations)
		chat.GET("/conversations/:id", h.GetConversation)
	}
}
