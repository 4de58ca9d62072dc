package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/bot-scheduler/internal/audit"
	"github.com/BruksfildServices01/bot-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/bot-scheduler/internal/db"
	infraRepo "github.com/BruksfildServices01/bot-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/bot-scheduler/internal/lock"
	"github.com/BruksfildServices01/bot-scheduler/internal/logger"
	"github.com/BruksfildServices01/bot-scheduler/internal/metrics"
	"github.com/BruksfildServices01/bot-scheduler/internal/middleware"
	"github.com/BruksfildServices01/bot-scheduler/internal/routes"
	"github.com/BruksfildServices01/bot-scheduler/internal/timezone"
)

// how long a booking waits for its bot's writer slot
const bookingLockWait = 5 * time.Second

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Env)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	timezone.SetFallback(cfg.DefaultTimezone)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := dbpkg.NewDB(ctx, cfg, log)
	if err != nil {
		log.Fatal("database init failed", zap.Error(err))
	}

	metrics.Register()

	// ======================================================
	// BOOKING LOCK
	// ======================================================
	var locker lock.Locker = lock.NewLocalLocker(bookingLockWait)
	if cfg.RedisAddr != "" {
		client, err := lock.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Fatal("redis init failed", zap.Error(err))
		}
		defer func() { _ = client.Close() }()

		locker = lock.NewRedisLocker(client, cfg.BookingLockTTL, bookingLockWait, log)
		log.Info("booking lock shared through redis", zap.String("addr", cfg.RedisAddr))
	}

	dispatcher := audit.NewDispatcher(audit.New(infraRepo.NewAuditLogGormRepository(db)), log)

	// ======================================================
	// HTTP
	// ======================================================
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORSMiddleware(cfg.CORSAllowedOrigins))

	routes.RegisterRoutes(r, db, cfg, routes.Infra{
		Log:    log,
		Locker: locker,
		Audit:  dispatcher,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server running", zap.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", zap.Error(err))
	}
	dispatcher.Close()
}
