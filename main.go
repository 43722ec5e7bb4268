package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Floumy/floumy-sub002/internal/config"
	"github.com/Floumy/floumy-sub002/internal/database"
	"github.com/Floumy/floumy-sub002/internal/observability/health"
	"github.com/Floumy/floumy-sub002/internal/observability/metrics"
	"github.com/Floumy/floumy-sub002/internal/observability/tracing"
	"github.com/Floumy/floumy-sub002/internal/router"

	"github.com/gin-gonic/gin"
)

// @title Floumy API
// @version 1.0
// @description Product management backend: OKRs, roadmap initiatives, sprints, work items.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg := config.Load()

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Metrics registry must exist before the db and router hook into it
	reg := metrics.InitRegistry()
	metrics.RegisterDBMetrics(reg)
	metrics.RegisterBusinessMetrics(reg)

	shutdownTracer, err := tracing.InitTracer(context.Background())
	if err != nil {
		log.Fatal("Failed to initialize tracing:", err)
	}

	db, err := database.Initialize(cfg.Database)
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	log.Println("Database initialized")

	r := router.Setup(db)
	health.MarkStartupReady()

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	go func() {
		log.Printf("Server listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server error:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Forced shutdown:", err)
	}
	if err := shutdownTracer(ctx); err != nil {
		log.Printf("Tracer shutdown: %v", err)
	}

	log.Println("Server stopped")
}
