package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/crisisdesk/disaster-response-api/internal/actionplan"
	"github.com/crisisdesk/disaster-response-api/internal/agent"
	"github.com/crisisdesk/disaster-response-api/internal/api"
	"github.com/crisisdesk/disaster-response-api/internal/config"
	"github.com/crisisdesk/disaster-response-api/internal/dashboard"
	"github.com/crisisdesk/disaster-response-api/internal/logging"
	"github.com/crisisdesk/disaster-response-api/internal/notify"
	"github.com/crisisdesk/disaster-response-api/internal/reliefweb"
	"github.com/crisisdesk/disaster-response-api/internal/report"
	"github.com/crisisdesk/disaster-response-api/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Fatal while loading config: %v", err)
	}
	logging.Setup(cfg.Logging.Level)

	slog.Info("Server starting", "host", cfg.Server.Host, "port", cfg.Server.Port)

	db, err := repository.NewSQLiteDB(cfg.DB.Path, cfg.Summaries.Capacity)
	if err != nil {
		logging.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	agentClient := agent.NewGroqClient(cfg.Agent)
	pipeline := report.NewPipeline(agentClient)
	planner := actionplan.NewGenerator(agentClient)
	drafter := notify.NewDrafter(agentClient)
	mailer := notify.NewMailer(notify.NewSMTPSender(cfg.SMTP))

	dash := dashboard.NewService(reliefweb.NewClient(cfg.ReliefWeb), cfg.Dashboard.CacheTTL)
	refresher := dashboard.NewRefresher(cfg.Dashboard, dash)
	refresher.Start(ctx)

	// Periodic sweep of expired summaries
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n, err := db.DeleteExpired(ctx, time.Now()); err != nil {
					slog.Error("expired summary sweep failed", "error", err)
				} else if n > 0 {
					slog.Info("swept expired summaries", "count", n)
				}
			}
		}
	}()

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: false,
	}))
	router.Use(api.RateLimitMiddleware(5)) // 5 req/s global limit

	handler := api.NewHandler(pipeline, planner, drafter, mailer, dash, db, cfg.Summaries.TTL)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}

	go func() {
		slog.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down...")

	cancel()
	refresher.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
}
