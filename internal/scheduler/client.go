package scheduler

import (
	"context"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"salesops_backend/platform/config"
	"salesops_backend/platform/logger"
)

// Client enqueues background tasks.
type Client struct {
	client *asynq.Client
	queue  string
	log    *logger.Logger
}

// NewClient creates an enqueue client from the redis URL. Returns nil when no
// redis is configured; callers fall back to synchronous execution.
func NewClient(cfg config.SchedulerConfig, log *logger.Logger) (*Client, error) {
	if cfg.GetRedisURL() == "" {
		return nil, nil
	}

	opt, err := asynq.ParseRedisURI(cfg.GetRedisURL())
	if err != nil {
		return nil, err
	}

	return &Client{
		client: asynq.NewClient(opt),
		queue:  cfg.GetAsynqQueueName(),
		log:    log,
	}, nil
}

// EnqueueCampaignBackfill schedules a campaign-wide enrichment.
func (c *Client) EnqueueCampaignBackfill(ctx context.Context, campaignID uuid.UUID) error {
	task, err := NewCampaignBackfillTask(CampaignBackfillPayload{CampaignID: campaignID})
	if err != nil {
		return err
	}
	return c.enqueue(ctx, task)
}

// EnqueueAssignmentEmail schedules a consultant notification.
func (c *Client) EnqueueAssignmentEmail(ctx context.Context, payload AssignmentEmailPayload) error {
	task, err := NewAssignmentEmailTask(payload)
	if err != nil {
		return err
	}
	return c.enqueue(ctx, task)
}

func (c *Client) enqueue(ctx context.Context, task *asynq.Task) error {
	info, err := c.client.EnqueueContext(ctx, task, asynq.Queue(c.queue))
	if err != nil {
		return err
	}
	c.log.WithContext(ctx).Info("task enqueued",
		"task_id", info.ID,
		"type", task.Type(),
		"queue", info.Queue,
	)
	return nil
}

// Close releases the underlying redis connection.
func (c *Client) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
