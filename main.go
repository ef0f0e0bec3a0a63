// File: accountcleanup/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"accountcleanup/config"
	"accountcleanup/cron"
	"accountcleanup/database"
	"accountcleanup/handlers"
	"accountcleanup/routes"
	"accountcleanup/services/cleanup"
	"accountcleanup/services/user"
	"accountcleanup/utils"

	firebase "firebase.google.com/go/v4"
	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := config.LoadConfig()
	logger, err := utils.NewLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Firebase is needed for the Firestore store and for admin account removal.
	var app *firebase.App
	if cfg.StoreDriver == config.StoreFirestore || cfg.AdminToken != "" {
		app, err = utils.NewFirebaseApp(ctx, cfg)
		if err != nil {
			sugar.Fatalf("main: %v", err)
		}
	}

	store, closeStore, err := database.Open(ctx, cfg, app)
	if err != nil {
		sugar.Fatalf("main: failed to open document store: %v", err)
	}
	defer closeStore(context.Background())

	cacheClient, err := utils.NewCacheClient(ctx, cfg)
	if err != nil {
		sugar.Fatalf("main: %v", err)
	}
	defer cacheClient.Close()

	// cleanup services.
	deleter, err := cleanup.NewCascadeDeleter(store, logger.Named("cascade"))
	if err != nil {
		sugar.Fatalf("main: %v", err)
	}
	ledger := cleanup.NewRedisEventLedger(cacheClient, cfg.EventDedupeTTL)
	processor := cleanup.NewEventProcessor(deleter, ledger, logger)

	worker := cron.NewCleanupWorker(cfg, processor, logger.Named("worker"))
	if err := worker.Start(); err != nil {
		sugar.Fatalf("main: failed to start cleanup worker: %v", err)
	}

	queue := asynq.NewClient(cron.RedisOpt(cfg))
	defer queue.Close()

	var adminHandler *handlers.AdminHandler
	if app != nil && cfg.AdminToken != "" {
		authClient, err := app.Auth(ctx)
		if err != nil {
			sugar.Fatalf("main: error getting Auth client: %v", err)
		}
		userService, err := user.NewDefaultUserService(authClient, queue, cfg.TaskMaxRetry, logger)
		if err != nil {
			sugar.Fatalf("main: %v", err)
		}
		adminHandler = handlers.NewAdminHandler(userService, logger)
	}

	monitor := utils.NewHealthMonitor(cacheClient, 30*time.Second)
	go monitor.Run(ctx)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(utils.ErrorHandler(logger))
	router.Use(gin.Logger())

	eventHandler := handlers.NewAuthEventHandler(processor, logger)
	handlerBundle := &handlers.HandlerBundle{
		Logger: logger,

		EventSigningSecret: []byte(cfg.EventSigningSecret),
		UserDeletedHandler: eventHandler.UserDeletedHandler,

		AdminToken:        cfg.AdminToken,
		MaxRequestsPerMin: cfg.MaxRequestsPerMin,
		AdminHandler:      adminHandler,

		HealthHandler:  handlers.HealthHandler(monitor),
		MetricsHandler: gin.WrapH(promhttp.Handler()),
	}
	routes.RegisterRoutes(router, handlerBundle)

	srv := &http.Server{
		Addr:    "0.0.0.0:" + cfg.AppPort,
		Handler: router,
	}

	sugar.Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			sugar.Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	sugar.Info("main: server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		sugar.Errorf("main: server forced to shutdown: %v", err)
	}
	worker.Shutdown()
	stop()

	sugar.Info("main: server stopped gracefully")
}
