package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/staffing-scheduler/internal/audit"
	"github.com/BruksfildServices01/staffing-scheduler/internal/config"
	"github.com/BruksfildServices01/staffing-scheduler/internal/handlers"
	infraRepo "github.com/BruksfildServices01/staffing-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/staffing-scheduler/internal/middleware"
	"github.com/BruksfildServices01/staffing-scheduler/internal/notify"
	"github.com/BruksfildServices01/staffing-scheduler/internal/session"
	ucAssignment "github.com/BruksfildServices01/staffing-scheduler/internal/usecase/assignment"
	ucAuth "github.com/BruksfildServices01/staffing-scheduler/internal/usecase/auth"
	ucBooking "github.com/BruksfildServices01/staffing-scheduler/internal/usecase/booking"
	ucDashboard "github.com/BruksfildServices01/staffing-scheduler/internal/usecase/dashboard"
	ucProject "github.com/BruksfildServices01/staffing-scheduler/internal/usecase/project"
	ucUser "github.com/BruksfildServices01/staffing-scheduler/internal/usecase/user"
)

// Deps are the long-lived collaborators owned by main.
type Deps struct {
	DB       *gorm.DB
	Config   *config.Config
	Sessions *session.Manager
	Audit    audit.Recorder
	Notifier notify.Notifier

	// HashCost overrides the bcrypt cost when non-zero.
	HashCost int
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware(d.Config.CORSAllowedOrigins))

	// ======================================================
	// INFRA
	// ======================================================
	userRepo := infraRepo.NewUserGormRepository(d.DB)
	bookingRepo := infraRepo.NewBookingGormRepository(d.DB)
	projectRepo := infraRepo.NewProjectGormRepository(d.DB)
	assignmentRepo := infraRepo.NewAssignmentGormRepository(d.DB)
	dashboardRepo := infraRepo.NewDashboardGormRepository(d.DB)

	// ======================================================
	// SERVICES
	// ======================================================
	userSvc := ucUser.NewService(userRepo, d.Audit)
	if d.HashCost != 0 {
		userSvc.WithHashCost(d.HashCost)
	}
	authSvc := ucAuth.NewService(userSvc, userRepo, d.Sessions, d.Audit)
	bookingSvc := ucBooking.NewService(bookingRepo, d.Audit)
	projectSvc := ucProject.NewService(projectRepo, d.Audit)
	assignmentSvc := ucAssignment.NewService(assignmentRepo, d.Audit, d.Notifier)
	dashboardSvc := ucDashboard.NewService(dashboardRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	tz := d.Config.Timezone

	authHandler := handlers.NewAuthHandler(authSvc, d.Config)
	meHandler := handlers.NewMeHandler(userSvc)
	bookingHandler := handlers.NewBookingHandler(bookingSvc, tz)
	projectHandler := handlers.NewProjectHandler(projectSvc, tz)
	assignmentHandler := handlers.NewAssignmentHandler(assignmentSvc, tz)
	userHandler := handlers.NewUserHandler(userSvc)
	dashboardHandler := handlers.NewDashboardHandler(dashboardSvc)
	auditLogsHandler := handlers.NewAuditLogsHandler(audit.New(d.DB), tz)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	api.Use(middleware.Authenticate(authSvc))
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)
		api.POST("/logout", authHandler.Logout)

		// ------------------------------
		// SESSION REQUIRED
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.RequireSession())
		{
			secured.GET("/me", meHandler.GetMe)
			secured.PUT("/me/password", meHandler.ChangePassword)

			secured.GET("/bookings", bookingHandler.List)
			secured.GET("/bookings/mine", bookingHandler.Mine)
			secured.POST("/bookings", bookingHandler.Create)
			secured.PUT("/bookings/:id", bookingHandler.Update)
			secured.DELETE("/bookings/:id", bookingHandler.Delete)

			secured.GET("/projects", projectHandler.List)
			secured.POST("/projects", projectHandler.Create)
			secured.PUT("/projects/:id", projectHandler.Update)
			secured.DELETE("/projects/:id", projectHandler.Delete)

			secured.GET("/assignments", assignmentHandler.List)
			secured.GET("/assignments/all", assignmentHandler.ListDetailed)
			secured.POST("/assignments", assignmentHandler.Create)
			secured.PUT("/assignments/:id", assignmentHandler.Update)
			secured.PUT("/assignments/:id/status", assignmentHandler.UpdateStatus)
			secured.DELETE("/assignments/:id", assignmentHandler.Delete)

			secured.GET("/employee/tasks", assignmentHandler.EmployeeTasks)
			secured.GET("/employees", userHandler.Employees)

			secured.GET("/dashboard", dashboardHandler.Get)

			// ------------------------------
			// ADMIN
			// ------------------------------
			secured.GET("/admin/bookings", bookingHandler.AdminList)
			secured.POST("/admin/bookings", bookingHandler.AdminCreate)
			secured.PUT("/admin/bookings/:id", bookingHandler.AdminUpdate)
			secured.DELETE("/admin/bookings/:id", bookingHandler.AdminDelete)

			secured.GET("/admin/users", userHandler.List)
			secured.POST("/admin/user", userHandler.Create)
			secured.PUT("/admin/user/:id", userHandler.Update)
			secured.DELETE("/admin/user/:id", userHandler.Delete)

			secured.GET("/admin/audit-logs", auditLogsHandler.List)
		}
	}
}
