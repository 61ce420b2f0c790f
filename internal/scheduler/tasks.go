// Package scheduler provides the asynq task definitions, the enqueue client,
// and the worker that processes background jobs.
package scheduler

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// Task type names. The prefix groups tasks per owning module.
const (
	TypeCampaignBackfill = "enrichment:campaign_backfill"
	TypeAssignmentEmail  = "notification:assignment_email"
)

// CampaignBackfillPayload asks the worker to enrich every lead of a campaign.
type CampaignBackfillPayload struct {
	CampaignID uuid.UUID `json:"campaign_id"`
}

// AssignmentEmailPayload asks the worker to notify a consultant about leads
// they just received.
type AssignmentEmailPayload struct {
	ConsultantName  string `json:"consultant_name"`
	ConsultantEmail string `json:"consultant_email"`
	CampaignName    string `json:"campaign_name"`
	LeadCount       int    `json:"lead_count"`
	Repescagem      bool   `json:"repescagem"`
}

// NewCampaignBackfillTask builds the backfill task. Registry lookups are slow
// and rate limited, so the timeout is generous.
func NewCampaignBackfillTask(payload CampaignBackfillPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeCampaignBackfill, data,
		asynq.MaxRetry(3),
		asynq.Timeout(30*time.Minute),
	), nil
}

// NewAssignmentEmailTask builds the notification task.
func NewAssignmentEmailTask(payload AssignmentEmailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeAssignmentEmail, data,
		asynq.MaxRetry(5),
		asynq.Timeout(time.Minute),
	), nil
}
