package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/BruksfildServices01/staffing-scheduler/internal/audit"
	"github.com/BruksfildServices01/staffing-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/staffing-scheduler/internal/db"
	"github.com/BruksfildServices01/staffing-scheduler/internal/notify"
	"github.com/BruksfildServices01/staffing-scheduler/internal/routes"
	"github.com/BruksfildServices01/staffing-scheduler/internal/session"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	if created, err := dbpkg.SeedAdmin(db, cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	} else if created {
		log.Printf("bootstrap admin %s created", cfg.AdminEmail)
	}

	// ======================================================
	// SESSIONS
	// ======================================================
	var store session.Store = session.NewMemoryStore()
	if cfg.RedisURL != "" {
		rdb, err := session.NewRedisClient(context.Background(), cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect redis: %v", err)
		}
		defer rdb.Close()
		store = session.NewRedisStore(rdb)
		log.Printf("sessions stored in redis")
	}
	sessions := session.NewManager(store, cfg.JWTSecret, cfg.SessionTTL)

	// ======================================================
	// BACKGROUND WORKERS
	// ======================================================
	auditDispatcher := audit.NewDispatcher(audit.New(db), logger.With("worker", "audit"), 0)

	var port notify.Port = notify.NewLogPort(logger.With("port", "log"))
	if cfg.MailEnabled() {
		port = notify.NewSMTPPort(notify.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SenderEmail,
			Password: cfg.EmailPassword,
			From:     cfg.SenderEmail,
		})
	}
	notifier := notify.NewDispatcher(port, logger.With("worker", "notify"), cfg.NotifyQueueSize)

	// ======================================================
	// HTTP
	// ======================================================
	r := gin.Default()
	routes.RegisterRoutes(r, routes.Deps{
		DB:       db,
		Config:   cfg,
		Sessions: sessions,
		Audit:    auditDispatcher,
		Notifier: notifier,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Server running on %s", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Printf("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}

	notifier.Close()
	auditDispatcher.Close()
}
