package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"appointease/core/cache"
	"appointease/core/config"
	"appointease/core/database"
	"appointease/core/logger"
	"appointease/core/middleware"
	"appointease/modules/auth"
	"appointease/modules/booking"
	"appointease/modules/calendar"
	"appointease/modules/notification"
	notifservice "appointease/modules/notification/service"
	"appointease/modules/notification/tasks"
	"appointease/modules/schedule"
	"appointease/modules/template"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
)

// Run boots the full application: config, logging, postgres, redis, the HTTP
// API and the background task worker. It blocks until SIGINT/SIGTERM and then
// shuts everything down gracefully.
func Run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger.Init(cfg.Log.Level)
	logger.Info("starting", "host", cfg.Server.Host, "port", cfg.Server.Port)

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Warn("database close failed", "error", err)
		}
	}()

	c, err := cache.InitRedis(cfg.Redis)
	if err != nil {
		return err
	}
	defer func() {
		if err := c.Close(); err != nil {
			logger.Warn("redis close failed", "error", err)
		}
	}()

	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
	taskClient := asynq.NewClient(redisOpt)
	defer func() {
		if err := taskClient.Close(); err != nil {
			logger.Warn("task client close failed", "error", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	mw := middleware.NewMiddleware(c)
	e.Use(mw.Recover())
	e.Use(mw.RequestLogger())
	e.Use(mw.CORS())

	e.GET("/healthz", func(ctx echo.Context) error {
		if err := c.Ping(ctx.Request().Context()); err != nil {
			return ctx.JSON(http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Module wiring
	notifSvc := notification.Init(e, db, mw)
	auth.Init(e, db, c, mw)
	template.Init(e, db, c, mw)
	schedule.Init(e, db, mw, taskClient)
	calendar.Init(e, db, c, mw, taskClient)
	booking.Init(e, db, mw)

	var worker *asynq.Server
	if cfg.Worker.Enabled {
		worker = asynq.NewServer(redisOpt, asynq.Config{
			Concurrency: cfg.Worker.Concurrency,
		})
		mux := buildTaskMux(notifSvc)
		go func() {
			logger.Info("task worker started", "concurrency", cfg.Worker.Concurrency)
			if err := worker.Run(mux); err != nil {
				logger.Error("task worker stopped with error", "error", err)
			}
		}()
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	errCh := make(chan error, 1)
	go func() {
		errCh <- e.Start(addr)
	}()
	logger.Info("http server started", "addr", addr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
	}

	shutdownTimeout := time.Duration(cfg.Server.ShutdownTimeout) * time.Second
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if worker != nil {
		worker.Shutdown()
	}
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http graceful shutdown failed; forcing close", "error", err)
		return e.Close()
	}
	logger.Info("http server stopped")
	return nil
}

func buildTaskMux(notifSvc *notifservice.NotificationService) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeScheduleSubmitted, notifSvc.HandleScheduleSubmittedTask)
	mux.HandleFunc(tasks.TypeRangesCopied, notifSvc.HandleRangesCopiedTask)
	return mux
}
