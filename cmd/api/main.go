// Command api runs the sales-operations HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"salesops_backend/internal/auth"
	"salesops_backend/internal/campaigns"
	"salesops_backend/internal/distribution"
	"salesops_backend/internal/enrichment"
	enrhandler "salesops_backend/internal/enrichment/handler"
	"salesops_backend/internal/events"
	apphttp "salesops_backend/internal/http"
	"salesops_backend/internal/http/router"
	"salesops_backend/internal/leads"
	"salesops_backend/internal/notification"
	"salesops_backend/internal/notification/email"
	"salesops_backend/internal/organization"
	"salesops_backend/internal/scheduler"
	"salesops_backend/migrations"
	"salesops_backend/platform/config"
	"salesops_backend/platform/db"
	"salesops_backend/platform/logger"
	"salesops_backend/platform/validator"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg.Env)
	if cfg.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := connectWithRetry(ctx, cfg, log, 5)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	if err := db.RunMigrations(ctx, cfg, migrations.FS, "."); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	log.Info("migrations applied")

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("parse redis url: %w", err)
		}
		redisClient = redis.NewClient(opts)
		defer redisClient.Close()
	}

	schedClient, err := scheduler.NewClient(cfg, log)
	if err != nil {
		return fmt.Errorf("init scheduler client: %w", err)
	}
	defer schedClient.Close()

	val := validator.New()
	bus := events.NewInMemoryBus(log)

	orgModule := organization.NewModule(pool, val, log)
	authModule := auth.NewModule(pool, cfg, val, log)
	leadsModule := leads.NewModule(pool, val, log)
	campaignsModule := campaigns.NewModule(pool, leadsModule.Repository(), bus, val, log)
	distributionModule := distribution.NewModule(
		leadsModule.Repository(),
		campaignsModule.Service().Repository(),
		orgModule.Service(),
		redisClient,
		bus,
		val,
		log,
	)

	var backfillEnqueuer enrhandler.BackfillEnqueuer
	var emailEnqueuer notification.EmailEnqueuer
	if schedClient != nil {
		backfillEnqueuer = schedClient
		emailEnqueuer = schedClient
	}

	enrichmentModule := enrichment.NewModule(leadsModule.Repository(), cfg, backfillEnqueuer, bus, log)

	notifier := notification.New(emailEnqueuer, email.New(cfg, log), log)
	notifier.Register(bus)

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   db.NewPoolAdapter(pool),
		EventBus: bus,
		Modules: []apphttp.Module{
			orgModule,
			authModule,
			campaignsModule,
			leadsModule,
			distributionModule,
			enrichmentModule,
		},
	}

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router.New(app),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", "addr", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// connectWithRetry waits for the database to come up. Container orchestration
// often starts the API before postgres finishes booting.
func connectWithRetry(ctx context.Context, cfg *config.Config, log *logger.Logger, attempts int) (*pgxpool.Pool, error) {
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		pool, err := db.NewPool(ctx, cfg)
		if err == nil {
			return pool, nil
		}
		lastErr = err
		log.Warn("database not ready, retrying",
			"attempt", attempt,
			"error", err.Error(),
		)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Duration(attempt) * time.Second):
		}
	}
	return nil, lastErr
}
