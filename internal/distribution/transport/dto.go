// Package transport defines the request and response shapes for the
// distribution HTTP surface.
package transport

import (
	"time"

	"github.com/google/uuid"
)

// AllotmentRequest asks for a number of leads for one consultant. Order
// matters: earlier entries are filled first when stock runs short.
type AllotmentRequest struct {
	ConsultantID string `json:"consultant_id" validate:"required,uuid"`
	Quantity     int    `json:"quantity" validate:"required,min=1,max=1000"`
}

// DistributeFilters narrows the candidate pool of one run. The two status
// toggles default to true when omitted; the phone toggles default to false.
// OnlyWithPhone accepts any non-empty phone field, IgnoreInvalidPhones is
// stricter and requires a number matching the 8-15 digit pattern.
type DistributeFilters struct {
	OnlyNew             *bool  `json:"only_new"`
	OnlyUnassigned      *bool  `json:"only_unassigned"`
	OnlyWithPhone       bool   `json:"only_with_phone"`
	IgnoreInvalidPhones bool   `json:"ignore_invalid_phones"`
	MinRevenue          *int64 `json:"min_revenue" validate:"omitempty,min=0"`
	MaxRevenue          *int64 `json:"max_revenue" validate:"omitempty,min=0"`
}

// NewOnly resolves the only_new toggle with its default.
func (f DistributeFilters) NewOnly() bool {
	return f.OnlyNew == nil || *f.OnlyNew
}

// UnassignedOnly resolves the only_unassigned toggle with its default.
func (f DistributeFilters) UnassignedOnly() bool {
	return f.OnlyUnassigned == nil || *f.OnlyUnassigned
}

// DistributeRequest triggers a distribution run on a campaign. OfficeID
// optionally narrows the run to a single office within the actor's scope.
type DistributeRequest struct {
	Allotments []AllotmentRequest `json:"allotments" validate:"required,min=1,max=100,dive"`
	OfficeID   *string            `json:"office_id" validate:"omitempty,uuid"`
	Filters    DistributeFilters  `json:"filters"`
}

// AllotmentResult reports how many leads one consultant actually received.
type AllotmentResult struct {
	ConsultantID uuid.UUID   `json:"consultant_id"`
	Requested    int         `json:"requested"`
	Assigned     int         `json:"assigned"`
	LeadIDs      []uuid.UUID `json:"lead_ids"`
}

// DistributeResponse reports the outcome of a distribution run. Assigned may
// be lower than requested when stock or eligibility fall short; that is still
// a successful run.
type DistributeResponse struct {
	CampaignID uuid.UUID         `json:"campaign_id"`
	Requested  int               `json:"requested"`
	Eligible   int               `json:"eligible"`
	Assigned   int               `json:"assigned"`
	Allotments []AllotmentResult `json:"allotments"`
}

// ReassignRequest moves leads from one consultant to another (repescagem).
// When from_consultant_id is omitted, leads are taken from whoever currently
// holds them.
type ReassignRequest struct {
	CampaignID       string  `json:"campaign_id" validate:"required,uuid"`
	FromConsultantID *string `json:"from_consultant_id" validate:"omitempty,uuid"`
	ToConsultantID   string  `json:"to_consultant_id" validate:"required,uuid"`
	Quantity         int     `json:"quantity" validate:"required,min=1,max=1000"`
	OnlyUntouched    bool    `json:"only_untouched"`
}

// ReassignResponse reports the outcome of a repescagem. FromConsultant is
// absent when the transfer was not pinned to one source.
type ReassignResponse struct {
	CampaignID     uuid.UUID   `json:"campaign_id"`
	FromConsultant *uuid.UUID  `json:"from_consultant_id,omitempty"`
	ToConsultant   uuid.UUID   `json:"to_consultant_id"`
	Requested      int         `json:"requested"`
	Transferred    int         `json:"transferred"`
	LeadIDs        []uuid.UUID `json:"lead_ids"`
}

// ConsultantLoadResponse is one consultant's slice in the distribution report.
type ConsultantLoadResponse struct {
	ConsultantID   uuid.UUID  `json:"consultant_id"`
	ConsultantName string     `json:"consultant_name"`
	OfficeID       *uuid.UUID `json:"office_id,omitempty"`
	OfficeName     *string    `json:"office_name,omitempty"`
	Atribuidos     int        `json:"atribuidos"`
	Trabalhados    int        `json:"trabalhados"`
	Restantes      int        `json:"restantes"`
	Fechados       int        `json:"fechados"`
	Perdidos       int        `json:"perdidos"`
	LastActivityAt *time.Time `json:"last_activity_at,omitempty"`
}

// CampaignResumo is the pipeline rollup of one campaign.
type CampaignResumo struct {
	Total      int `json:"total"`
	Estoque    int `json:"estoque"`
	Atribuidos int `json:"atribuidos"`
	Fechados   int `json:"fechados"`
	Perdidos   int `json:"perdidos"`
}

// ReportResponse is the distribution report of one campaign.
type ReportResponse struct {
	CampaignID uuid.UUID                `json:"campaign_id"`
	Resumo     CampaignResumo           `json:"resumo"`
	Loads      []ConsultantLoadResponse `json:"loads"`
}
