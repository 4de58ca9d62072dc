package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/bot-scheduler/internal/audit"
	"github.com/BruksfildServices01/bot-scheduler/internal/config"
	"github.com/BruksfildServices01/bot-scheduler/internal/handlers"
	infraRepo "github.com/BruksfildServices01/bot-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/bot-scheduler/internal/lock"
	"github.com/BruksfildServices01/bot-scheduler/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/bot-scheduler/internal/usecase/appointment"
)

// Infra holds the process-wide collaborators main owns and closes.
type Infra struct {
	Log    *zap.Logger
	Locker lock.Locker
	Audit  *audit.Dispatcher
}

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, infra Infra) {
	log := infra.Log

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	scheduleRepo := infraRepo.NewScheduleGormRepository(db)
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	auditRepo := infraRepo.NewAuditLogGormRepository(db)

	// ======================================================
	// USE CASES
	// ======================================================
	getAvailabilityUC := ucAppointment.NewGetAvailability(scheduleRepo, appointmentRepo, nil, log)

	createAppointmentUC := ucAppointment.NewCreateAppointment(
		scheduleRepo,
		appointmentRepo,
		infra.Locker,
		infra.Audit,
		log,
	)

	updateStatusUC := ucAppointment.NewUpdateAppointmentStatus(
		scheduleRepo,
		appointmentRepo,
		infra.Audit,
		nil,
		log,
	)

	deleteAppointmentUC := ucAppointment.NewDeleteAppointment(
		scheduleRepo,
		appointmentRepo,
		infra.Audit,
		log,
	)

	listAppointmentsUC := ucAppointment.NewListAppointments(scheduleRepo, appointmentRepo)
	checkConflictUC := ucAppointment.NewCheckConflict(scheduleRepo, appointmentRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	availabilityHandler := handlers.NewAvailabilityHandler(getAvailabilityUC, log)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		updateStatusUC,
		deleteAppointmentUC,
		listAppointmentsUC,
		checkConflictUC,
		log,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(scheduleRepo, auditRepo, log)

	writeLimiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute, cfg.RateLimitBurst, log)

	// ======================================================
	// OPS
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware(cfg))
	{
		bots := api.Group("/bots/:botId")

		bots.GET("/availability", availabilityHandler.Get)
		bots.GET("/availability/range", availabilityHandler.Range)
		bots.GET("/conflicts", appointmentHandler.Conflicts)

		// ------------------------------
		// APPOINTMENTS
		// ------------------------------
		bots.GET("/appointments", appointmentHandler.List)
		bots.POST("/appointments", writeLimiter.Middleware(), appointmentHandler.Create)
		bots.PATCH("/appointments/:id/status", writeLimiter.Middleware(), appointmentHandler.UpdateStatus)
		bots.DELETE("/appointments/:id", writeLimiter.Middleware(), appointmentHandler.Delete)

		bots.GET("/audit-logs", auditLogsHandler.List)
	}
}
