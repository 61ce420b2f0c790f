// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"salesops_backend/platform/events"
	"salesops_backend/platform/logger"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
	InMemoryBus = events.InMemoryBus
)

// Re-export platform functions
var (
	NewBaseEvent   = events.NewBaseEvent
	NewInMemoryBus = func(log *logger.Logger) *InMemoryBus { return events.NewInMemoryBus(log) }
)

// =============================================================================
// Distribution Domain Events
// =============================================================================

// ConsultantAllotment describes one consultant's share of a distribution run.
type ConsultantAllotment struct {
	ConsultantID uuid.UUID   `json:"consultantId"`
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	LeadIDs      []uuid.UUID `json:"leadIds"`
}

// LeadsDistributed is published after a distribution run commits at least one
// assignment.
type LeadsDistributed struct {
	BaseEvent
	CampaignID   uuid.UUID             `json:"campaignId"`
	CampaignName string                `json:"campaignName"`
	ActorID      uuid.UUID             `json:"actorId"`
	Allotments   []ConsultantAllotment `json:"allotments"`
}

func (e LeadsDistributed) EventName() string { return "distribution.leads.distributed" }

// LeadsReassigned is published after a repescagem transfers leads between
// consultants.
type LeadsReassigned struct {
	BaseEvent
	CampaignID       uuid.UUID   `json:"campaignId"`
	CampaignName     string      `json:"campaignName"`
	FromConsultantID *uuid.UUID  `json:"fromConsultantId,omitempty"`
	ToConsultantID   uuid.UUID   `json:"toConsultantId"`
	ToName           string      `json:"toName"`
	ToEmail          string      `json:"toEmail"`
	ActorID          uuid.UUID   `json:"actorId"`
	LeadIDs          []uuid.UUID `json:"leadIds"`
}

func (e LeadsReassigned) EventName() string { return "distribution.leads.reassigned" }

// =============================================================================
// Campaign Domain Events
// =============================================================================

// CampaignCreated is published when a new campaign is registered.
type CampaignCreated struct {
	BaseEvent
	CampaignID uuid.UUID `json:"campaignId"`
	Name       string    `json:"name"`
	CreatedBy  uuid.UUID `json:"createdBy"`
}

func (e CampaignCreated) EventName() string { return "campaigns.created" }

// =============================================================================
// Lead Domain Events
// =============================================================================

// LeadEnriched is published when registry data is merged into a lead.
type LeadEnriched struct {
	BaseEvent
	LeadID uuid.UUID `json:"leadId"`
	CNPJ   string    `json:"cnpj"`
}

func (e LeadEnriched) EventName() string { return "leads.enriched" }
