package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/unihaven/backend/internal/app"
	"github.com/unihaven/backend/internal/domain/notifier"
	"github.com/unihaven/backend/internal/infra/config"
	idb "github.com/unihaven/backend/internal/infra/database"
	"github.com/unihaven/backend/internal/infra/email"
	"github.com/unihaven/backend/internal/infra/httpapi"
	"github.com/unihaven/backend/internal/infra/logger"
	"github.com/unihaven/backend/internal/infra/scheduler"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatalf("FATAL: Could not load application configuration: %v", err)
	}
	logger.Init(cfg)
	log := logger.Get()
	log.Infof("Configuration loaded. Environment: %s, interval: %s", cfg.Environment, cfg.ReconcileInterval)

	db, err := idb.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to database: %v", err)
	}
	defer db.Close()
	log.Info("Database connection established")

	userRepo := idb.NewPostgresUserRepository(db)
	adRepo := idb.NewPostgresAdRepository(db)
	advertiserRepo := idb.NewPostgresAdvertiserRepository(db)

	var sender notifier.Sender
	if cfg.SMTPHost != "" {
		sender = email.NewSMTPSender(email.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.EmailSender,
		}, log)
	} else {
		log.Warn("SMTP_HOST not set; email delivery disabled, notifications will be logged only")
		sender = email.NewLogSender(log)
	}
	templates := email.NewTemplates(cfg.ClientURL)

	reconciler := app.NewReconcilerService(
		userRepo, adRepo, advertiserRepo,
		sender, templates, log,
		cfg.ReminderWindow, cfg.ReminderThrottle,
	)
	adminService := app.NewAdminService(userRepo)

	reconcileScheduler := scheduler.NewReconcileScheduler(reconciler, log, cfg.ReconcileInterval, cfg.PassTimeout)
	if err := reconcileScheduler.Start(); err != nil {
		log.Fatalf("FATAL: Could not start scheduler: %v", err)
	}

	router := httpapi.NewRouter(httpapi.Handlers{
		Health:     httpapi.NewHealthHandler(db),
		Reconcile:  httpapi.NewReconcileHandler(reconciler, log),
		User:       httpapi.NewUserHandler(adminService, userRepo),
		Advertiser: httpapi.NewAdvertiserHandler(advertiserRepo),
		Ad:         httpapi.NewAdHandler(adRepo, advertiserRepo, cfg.ReminderWindow),
	}, cfg.AdminAPIToken, log)

	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("HTTP server listening on %s", cfg.ListenAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("FATAL: HTTP server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down...")
	reconcileScheduler.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorf("HTTP server shutdown: %v", err)
	}
	log.Info("Shut down gracefully")
}
