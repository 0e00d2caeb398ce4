// File: autoslot/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"autoslot/config"
	"autoslot/cron"
	"autoslot/database"
	auditRepo "autoslot/database/repository/audit"
	"autoslot/handlers"
	"autoslot/middleware"
	"autoslot/routes"
	"autoslot/services/slots"
	"autoslot/upstream"
	"autoslot/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitAuthCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// Upstream booking-platform client (explicitly constructed, injected below).
	platform := upstream.NewClient(
		config.AppConfig.UpstreamBaseURL,
		config.AppConfig.UpstreamAPIKey,
		time.Duration(config.AppConfig.UpstreamTimeoutSec)*time.Second,
		logger,
	)

	// repositories.
	commitAudit := auditRepo.NewMongoCommitAuditRepo()

	// Async audit pipeline.
	recorder := cron.NewAsynqRecorder()
	defer recorder.Close()
	cron.InitAuditWorker(commitAudit)

	// services.
	sessionStore := slots.NewSessionStore(time.Duration(config.AppConfig.SessionTTLMin) * time.Minute)
	sessionStore.StartSweeper(time.Duration(config.AppConfig.SessionSweepSec) * time.Second)

	editorService, err := slots.NewDefaultEditorService(platform, sessionStore, commitAudit, recorder)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize editor service: %v", err)
	}

	slotHandler := handlers.NewSlotHandler(editorService)

	// Register routes.
	routes.RegisterRoutes(router, slotHandler)

	// Background health sampling.
	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetAuthCacheClient()},
		database.MongoClient,
		platform.Ping,
	)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
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
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
