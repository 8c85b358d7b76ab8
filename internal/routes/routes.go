package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/platefleet/scheduling/internal/audit"
	"github.com/platefleet/scheduling/internal/config"
	"github.com/platefleet/scheduling/internal/handlers"
	"github.com/platefleet/scheduling/internal/infra/cache"
	infraRepo "github.com/platefleet/scheduling/internal/infra/repository"
	"github.com/platefleet/scheduling/internal/middleware"
	ucSchedule "github.com/platefleet/scheduling/internal/usecase/schedule"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(cors.Default())
	r.Use(middleware.RequestLogger())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	scheduleRepo := infraRepo.NewScheduleGormRepository(db)
	rules := cfg.SchedulingRules()

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	var statsCache cache.StatisticsCache = cache.NewNoopStatisticsCache()
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		statsCache = cache.NewRedisStatisticsCache(client, 5*time.Minute)
	}

	// ======================================================
	// USE CASES - SCHEDULING
	// ======================================================
	createShiftUC := ucSchedule.NewCreateShift(
		scheduleRepo,
		rules,
		auditDispatcher,
		statsCache,
	)

	updateShiftUC := ucSchedule.NewUpdateShift(
		scheduleRepo,
		rules,
		auditDispatcher,
		statsCache,
	)

	deleteShiftUC := ucSchedule.NewDeleteShift(
		scheduleRepo,
		auditDispatcher,
		statsCache,
	)

	cancelShiftUC := ucSchedule.NewCancelShift(
		scheduleRepo,
		auditDispatcher,
		statsCache,
	)

	clockShiftUC := ucSchedule.NewClockShift(
		scheduleRepo,
		auditDispatcher,
	)

	inspectConflictsUC := ucSchedule.NewInspectConflicts(scheduleRepo)

	resolveConflictUC := ucSchedule.NewResolveConflict(
		scheduleRepo,
		auditDispatcher,
	)

	autoScheduleUC := ucSchedule.NewAutoSchedule(
		scheduleRepo,
		rules,
		createShiftUC,
		auditDispatcher,
	)

	statisticsUC := ucSchedule.NewShiftStatistics(
		scheduleRepo,
		statsCache,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	staffHandler := handlers.NewStaffHandler(db)
	availabilityHandler := handlers.NewAvailabilityHandler(db)

	shiftHandler := handlers.NewShiftHandler(
		db,
		createShiftUC,
		updateShiftUC,
		deleteShiftUC,
		cancelShiftUC,
		clockShiftUC,
	)

	conflictHandler := handlers.NewConflictHandler(
		inspectConflictsUC,
		resolveConflictUC,
	)

	scheduleHandler := handlers.NewScheduleHandler(
		autoScheduleUC,
		statisticsUC,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			// ------------------------------
			// STAFF DIRECTORY
			// ------------------------------
			secured.GET("/staff", staffHandler.List)
			secured.POST("/staff", staffHandler.Create)
			secured.GET("/staff/:id", staffHandler.Get)
			secured.PATCH("/staff/:id", staffHandler.Update)
			secured.DELETE("/staff/:id", staffHandler.Deactivate)

			secured.GET("/staff/:id/availability", availabilityHandler.Get)
			secured.PUT("/staff/:id/availability", availabilityHandler.Put)

			// ------------------------------
			// SHIFTS
			// ------------------------------
			secured.POST("/shifts", shiftHandler.Create)
			secured.GET("/shifts", shiftHandler.List)
			secured.GET("/shifts/:id", shiftHandler.Get)
			secured.PATCH("/shifts/:id", shiftHandler.Update)
			secured.DELETE("/shifts/:id", shiftHandler.Delete)
			secured.PATCH("/shifts/:id/cancel", shiftHandler.Cancel)
			secured.PATCH("/shifts/:id/clock-in", shiftHandler.ClockIn)
			secured.PATCH("/shifts/:id/clock-out", shiftHandler.ClockOut)

			// ------------------------------
			// CONFLICTS
			// ------------------------------
			secured.GET("/shifts/:id/conflicts", conflictHandler.ListForShift)
			secured.PATCH("/conflicts/:id/resolve", conflictHandler.Resolve)

			// ------------------------------
			// SCHEDULE OPERATIONS
			// ------------------------------
			secured.POST("/schedule/auto", scheduleHandler.AutoSchedule)
			secured.GET("/schedule/statistics", scheduleHandler.Statistics)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
