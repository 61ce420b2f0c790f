// Package transport defines the request and response shapes for the campaigns
// HTTP surface.
package transport

import (
	"time"

	"github.com/google/uuid"
)

// CreateCampaignRequest creates a campaign, optionally restricted to a set of
// offices.
type CreateCampaignRequest struct {
	Name        string   `json:"name" validate:"required,min=2,max=120"`
	Description *string  `json:"description" validate:"omitempty,max=2000"`
	OfficeIDs   []string `json:"office_ids" validate:"omitempty,max=200,dive,uuid"`
}

// CampaignResponse is the public campaign representation.
type CampaignResponse struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	Description *string     `json:"description,omitempty"`
	Active      bool        `json:"active"`
	CreatedBy   uuid.UUID   `json:"created_by"`
	CreatedAt   time.Time   `json:"created_at"`
	OfficeIDs   []uuid.UUID `json:"office_ids,omitempty"`
}

// ListCampaignsResponse wraps a campaign listing.
type ListCampaignsResponse struct {
	Campaigns []CampaignResponse `json:"campaigns"`
}

// CampaignSummaryResponse is the pipeline snapshot of one campaign.
type CampaignSummaryResponse struct {
	Campaign   CampaignResponse `json:"campaign"`
	Total      int              `json:"total"`
	Estoque    int              `json:"estoque"`
	Atribuidos int              `json:"atribuidos"`
	Fechados   int              `json:"fechados"`
	Perdidos   int              `json:"perdidos"`
}

// SetActiveRequest toggles a campaign on or off.
type SetActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}
