// Command worker processes background jobs: campaign enrichment backfills and
// consultant notification emails.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"

	"salesops_backend/internal/enrichment/client"
	enrservice "salesops_backend/internal/enrichment/service"
	"salesops_backend/internal/events"
	leadsrepo "salesops_backend/internal/leads/repository"
	"salesops_backend/internal/notification"
	"salesops_backend/internal/notification/email"
	"salesops_backend/internal/scheduler"
	"salesops_backend/platform/config"
	"salesops_backend/platform/db"
	"salesops_backend/platform/logger"
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
	if cfg.RedisURL == "" {
		return fmt.Errorf("REDIS_URL is required for the worker")
	}

	log := logger.New(cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := connectWithRetry(ctx, cfg, log, 5)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	worker, err := scheduler.NewWorker(cfg, log)
	if err != nil {
		return fmt.Errorf("init worker: %w", err)
	}

	bus := events.NewInMemoryBus(log)
	leadStore := leadsrepo.New(pool)
	registry := client.New(cfg.GetRegistryBaseURL())
	enricher := enrservice.New(leadStore, registry, bus, log, cfg.IsEnrichmentEnabled())
	sender := email.New(cfg, log)

	worker.HandleFunc(scheduler.TypeCampaignBackfill, func(ctx context.Context, task *asynq.Task) error {
		var payload scheduler.CampaignBackfillPayload
		if err := json.Unmarshal(task.Payload(), &payload); err != nil {
			return fmt.Errorf("decode backfill payload: %w", err)
		}

		enriched, err := enricher.BackfillCampaign(ctx, payload.CampaignID)
		if err != nil {
			return err
		}
		log.Info("backfill task finished",
			"campaign_id", payload.CampaignID.String(),
			"enriched", enriched,
		)
		return nil
	})

	worker.HandleFunc(scheduler.TypeAssignmentEmail, func(ctx context.Context, task *asynq.Task) error {
		var payload scheduler.AssignmentEmailPayload
		if err := json.Unmarshal(task.Payload(), &payload); err != nil {
			return fmt.Errorf("decode email payload: %w", err)
		}

		subject, body, err := notification.RenderAssignment(payload)
		if err != nil {
			return err
		}
		return sender.Send(ctx, payload.ConsultantEmail, payload.ConsultantName, subject, body)
	})

	log.Info("worker started", "queue", cfg.AsynqQueueName, "concurrency", cfg.AsynqConcurrency)
	return worker.Run(ctx)
}

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
