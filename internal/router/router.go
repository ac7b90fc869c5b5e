package router

import (
	"time"

	"daily-report/internal/config"
	"daily-report/internal/handler"
	"daily-report/internal/middleware"
	"daily-report/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Services is the set of services shared by every handler.
type Services struct {
	Clock     service.Clock
	Creds     *service.Credentials
	Sessions  *service.SessionService
	Employees *service.EmployeeService
	Admins    *service.AdminService
	Auth      *service.AuthService
	Reports   *service.ReportService
}

func NewServices(db *gorm.DB, cfg *config.Config, clock service.Clock) *Services {
	creds := service.NewCredentials(cfg.Auth.BcryptCost)
	sessions := service.NewSessionService(db, clock, cfg.Session.TTL)
	employees := service.NewEmployeeService(db, creds, clock)
	admins := service.NewAdminService(db, creds, clock)
	return &Services{
		Clock:     clock,
		Creds:     creds,
		Sessions:  sessions,
		Employees: employees,
		Admins:    admins,
		Auth:      service.NewAuthService(employees, admins, sessions, creds),
		Reports:   service.NewReportService(db, clock, cfg.Location()),
	}
}

func New(db *gorm.DB, cfg *config.Config, svc *Services) *gin.Engine {
	handler.RegisterValidation()

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLog())
	corsCfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}
	if allowsAny(cfg.Server.AllowOrigins) {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.Server.AllowOrigins
		corsCfg.AllowCredentials = true
	}
	r.Use(cors.New(corsCfg))

	healthH := handler.NewHealthHandler(db)
	authH := handler.NewAuthHandler(svc.Auth)
	reportH := handler.NewReportHandler(svc.Reports)
	adminReportH := handler.NewAdminReportHandler(svc.Reports)
	employeeH := handler.NewEmployeeHandler(svc.Employees)

	api := r.Group("/api")
	api.GET("/health", healthH.Check)
	api.POST("/employee/login", authH.EmployeeLogin)
	api.POST("/admin/login", authH.AdminLogin)

	emp := api.Group("", middleware.RequireEmployee(svc.Auth))
	emp.POST("/employee/logout", authH.Logout)
	emp.GET("/employee/me", authH.EmployeeMe)
	emp.POST("/reports/submit", reportH.Submit)
	emp.GET("/reports/today", reportH.Today)
	emp.GET("/reports/mine", reportH.Mine)

	admin := api.Group("/admin", middleware.RequireAdmin(svc.Auth))
	admin.POST("/logout", authH.Logout)
	admin.GET("/me", authH.AdminMe)

	admin.GET("/reports", adminReportH.List)
	admin.GET("/reports/summary", adminReportH.Summary)
	admin.GET("/reports/export", adminReportH.Export)
	admin.GET("/reports/:id", adminReportH.Get)
	admin.PUT("/reports/:id", adminReportH.Update)
	admin.DELETE("/reports/:id", adminReportH.Delete)

	admin.GET("/employees", employeeH.List)
	admin.POST("/employees", employeeH.Create)
	admin.POST("/employees/import", employeeH.Import)
	admin.GET("/employees/:id", employeeH.Get)
	admin.PUT("/employees/:id", employeeH.Update)
	admin.DELETE("/employees/:id", employeeH.Delete)

	return r
}

func allowsAny(origins []string) bool {
	if len(origins) == 0 {
		return true
	}
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
