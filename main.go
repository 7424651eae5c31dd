// File: horarios/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"horarios/config"
	"horarios/database"
	teacherRepo "horarios/database/repository/teacher"
	"horarios/handlers"
	"horarios/middleware"
	"horarios/routes"
	"horarios/services/registration"
	"horarios/services/tables"
	"horarios/utils"
)

func main() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger := utils.InitializeLogger(cfg.Env, cfg.LogLevel)
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	healthChecks := map[string]utils.HealthCheck{}

	// Identity store. Without it submissions are refused with 503, as the form
	// must not update the tables for a profile that was never stored.
	var teachers teacherRepo.TeacherRepository
	mongoConn, err := database.Connect(rootCtx, cfg.DatabaseURL, cfg.DatabaseName)
	if err != nil {
		logger.Error("main: MongoDB unavailable, submissions will be rejected", zap.Error(err))
	} else {
		defer mongoConn.Close(context.Background())
		repo, err := teacherRepo.NewMongoTeacherRepo(mongoConn.DB)
		if err != nil {
			logger.Warn("main: failed to create teacher indexes, nue uniqueness is not enforced", zap.Error(err))
		}
		teachers = repo
		healthChecks["mongo"] = repo.Ping
		logger.Info("main: connected to MongoDB", zap.String("database", cfg.DatabaseName))
	}

	// Table lock.
	var locker tables.Locker = tables.NewLocalLocker()
	if cfg.TableLock == "redis" {
		client, err := utils.NewLockClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisLockDB)
		if err != nil {
			logger.Sugar().Fatalf("main: %v", err)
		}
		defer client.Close()
		locker = tables.NewRedisLocker(client, time.Duration(cfg.LockTTLSeconds)*time.Second, logger)
		healthChecks["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
	}

	store, err := tables.Open(tables.Options{
		Backend:       cfg.TableBackend,
		Dir:           cfg.DataDir,
		DBPath:        cfg.TableDBPath,
		CorruptPolicy: tables.CorruptPolicy(cfg.TableCorruptPolicy),
		Locker:        locker,
	}, logger)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to open table store: %v", err)
	}
	defer store.Close()

	// services.
	registrationService := &registration.DefaultRegistrationService{
		Teachers: teachers,
		Tables:   store,
		Profiles: &registration.CSVProfileExporter{Dir: cfg.DataDir},
		Logger:   logger,
	}

	monitor := utils.NewHealthMonitor(healthChecks)
	monitor.Start(rootCtx, 60*time.Second)

	teacherHandler := handlers.NewTeacherHandler(registrationService, logger)
	exportHandler := &handlers.ExportHandler{
		Teachers:     teachers,
		Tables:       store,
		AllowedNames: cfg.ExportAllowList(),
		Logger:       logger,
	}

	handlerBundle := &handlers.HandlerBundle{
		SubmitProfileHandler:  teacherHandler.SubmitProfileHandler,
		ListCompletedHandler:  exportHandler.ListCompletedHandler,
		ExportWorkbookHandler: exportHandler.ExportWorkbookHandler,
		HealthHandler:         handlers.NewHealthHandler(monitor),
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler(logger))
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin, logger))

	routes.RegisterRoutes(router, handlerBundle, cfg.AllowedOrigins())

	port := cfg.AppPort
	if port == "" {
		port = "5000"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("main: server is shutting down...")
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Info("main: server stopped gracefully")
}
