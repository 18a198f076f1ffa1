package app

import (
	"database/sql"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"go-timesheet/internal/auth"
	"go-timesheet/internal/entitlement"
	"go-timesheet/internal/leave"
	"go-timesheet/internal/leavetype"
	"go-timesheet/internal/messaging/kafka"
	"go-timesheet/internal/notification"
	"go-timesheet/internal/project"
	"go-timesheet/internal/rbac"
	"go-timesheet/internal/shared/counter"
	"go-timesheet/internal/timesheet"
	"go-timesheet/internal/user"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	sender notification.Sender,
) error {
	// --- Repositories ---
	userRepo := user.NewRepository(gormDB)
	projectRepo := project.NewRepository(gormDB)
	leaveTypeRepo := leavetype.NewRepository(gormDB)
	entitlementRepo := entitlement.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	timesheetRepo := timesheet.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	draftStore := timesheet.NewDraftStore(rdb)

	// --- RBAC Core ---
	rbacService, err := rbac.NewService()
	if err != nil {
		return err
	}

	// --- Services ---
	userService := user.NewServiceWithOutbox(db, userRepo, counterRepo, outboxRepo)
	authService := auth.NewService(userRepo)
	projectService := project.NewService(projectRepo, rdb)
	leaveTypeService := leavetype.NewService(leaveTypeRepo)
	entitlementService := entitlement.NewService(entitlementRepo, leaveTypeRepo)
	leaveService := leave.NewService(db, leaveRepo, userService, entitlementService, sender)
	timesheetService := timesheet.NewService(db, timesheetRepo, draftStore, projectRepo, leaveService)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	userHandler := user.NewHandler(userService)
	projectHandler := project.NewHandler(projectService)
	leaveTypeHandler := leavetype.NewHandler(leaveTypeService)
	entitlementHandler := entitlement.NewHandler(entitlementService)
	leaveHandler := leave.NewHandler(leaveService)
	timesheetHandler := timesheet.NewHandler(timesheetService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		user.RegisterRoutes(api, userHandler, rbacService)
		project.RegisterRoutes(api, projectHandler, rbacService)
		leavetype.RegisterRoutes(api, leaveTypeHandler, rbacService)
		entitlement.RegisterRoutes(api, entitlementHandler, rbacService)
		leave.RegisterRoutes(api, leaveHandler, rbacService)
		timesheet.RegisterRoutes(api, timesheetHandler, rbacService)
	}

	return nil
}
