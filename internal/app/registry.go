package app

import (
	"database/sql"

	"dayflow/internal/attendance"
	"dayflow/internal/clock"
	"dayflow/internal/dashboard"
	"dayflow/internal/employee"
	"dayflow/internal/leave"
	"dayflow/internal/messaging/kafka"
	"dayflow/internal/middleware"
	"dayflow/internal/rbac"
	"dayflow/internal/shared/counter"
	"dayflow/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	userRepo := user.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Cross-cutting collaborators ---
	enforcer, err := rbac.NewEnforcer()
	if err != nil {
		return err
	}
	presence := attendance.NewUnimplementedProvider()
	clk := clock.System()

	// --- Services ---
	leaveService := leave.NewService(db, leaveRepo, employeeRepo, clk)
	employeeService := employee.NewService(db, employeeRepo, userRepo, counterRepo, outboxRepo, leaveRepo, presence, clk)
	dashboardService := dashboard.NewService(leaveRepo, userRepo, employeeRepo, presence, clk)

	// --- Handlers ---
	leaveHandler := leave.NewHandler(leaveService)
	employeeHandler := employee.NewHandler(employeeService)
	dashboardHandler := dashboard.NewHandler(dashboardService)

	// --- Routes ---
	router.Use(middleware.RequestID())
	router.Use(middleware.RateLimitByIP(rate.Limit(20), 40))

	api := router.Group("/api/v1")
	{
		leave.RegisterRoutes(api, leaveHandler, enforcer, rdb)
		employee.RegisterRoutes(api, employeeHandler, enforcer)
		dashboard.RegisterRoutes(api, dashboardHandler, enforcer)
	}

	return nil
}
