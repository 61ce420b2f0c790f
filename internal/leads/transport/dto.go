// Package transport defines the request and response shapes for the leads
// HTTP surface.
package transport

import (
	"time"

	"github.com/google/uuid"
)

// ImportLeadRow is one row of a lead import payload.
type ImportLeadRow struct {
	CompanyName string  `json:"company_name" validate:"required,min=2,max=200"`
	CNPJ        *string `json:"cnpj" validate:"omitempty,min=11,max=18"`
	Phone1      *string `json:"phone1" validate:"omitempty,max=20"`
	Phone2      *string `json:"phone2" validate:"omitempty,max=20"`
	Phone3      *string `json:"phone3" validate:"omitempty,max=20"`
	Revenue     *string `json:"revenue" validate:"omitempty,max=40"`
	OfficeID    *string `json:"office_id" validate:"omitempty,uuid"`
}

// ImportLeadsRequest bulk-loads leads into a campaign.
type ImportLeadsRequest struct {
	Leads []ImportLeadRow `json:"leads" validate:"required,min=1,max=10000,dive"`
}

// ImportLeadsResponse reports how many rows landed.
type ImportLeadsResponse struct {
	Imported int64 `json:"imported"`
}

// LeadResponse is the public lead representation.
type LeadResponse struct {
	ID                  uuid.UUID   `json:"id"`
	CampaignID          uuid.UUID   `json:"campaign_id"`
	OfficeID            *uuid.UUID  `json:"office_id,omitempty"`
	ConsultantID        *uuid.UUID  `json:"consultant_id,omitempty"`
	Status              string      `json:"status"`
	CompanyName         string      `json:"company_name"`
	CNPJ                *string     `json:"cnpj,omitempty"`
	Phone1              *string     `json:"phone1,omitempty"`
	Phone2              *string     `json:"phone2,omitempty"`
	Phone3              *string     `json:"phone3,omitempty"`
	Revenue             *string     `json:"revenue,omitempty"`
	City                *string     `json:"city,omitempty"`
	State               *string     `json:"state,omitempty"`
	LegalNature         *string     `json:"legal_nature,omitempty"`
	OpenedOn            *time.Time  `json:"opened_on,omitempty"`
	PreviousConsultants []uuid.UUID `json:"previous_consultants,omitempty"`
	CreatedAt           time.Time   `json:"created_at"`
	LastActivityAt      *time.Time  `json:"last_activity_at,omitempty"`
}

// ListLeadsRequest filters a campaign's lead listing.
type ListLeadsRequest struct {
	Status       *string `form:"status" validate:"omitempty,max=20"`
	ConsultantID *string `form:"consultant_id" validate:"omitempty,uuid"`
	Limit        int     `form:"limit" validate:"omitempty,min=1,max=500"`
	Offset       int     `form:"offset" validate:"omitempty,min=0"`
}

// ListLeadsResponse wraps a lead page.
type ListLeadsResponse struct {
	Leads []LeadResponse `json:"leads"`
	Total int            `json:"total"`
}

// RecordActivityRequest registers a tratativa on a lead.
type RecordActivityRequest struct {
	Kind      string  `json:"kind" validate:"required,oneof=LIGACAO WHATSAPP EMAIL VISITA NOTA"`
	Note      *string `json:"note" validate:"omitempty,max=2000"`
	NewStatus *string `json:"new_status" validate:"omitempty,max=20"`
}

// HistoryEntryResponse is one audit record of a lead changing hands.
type HistoryEntryResponse struct {
	ID         uuid.UUID  `json:"id"`
	Action     string     `json:"action"`
	FromUserID *uuid.UUID `json:"from_user_id,omitempty"`
	ToUserID   *uuid.UUID `json:"to_user_id,omitempty"`
	ActorID    uuid.UUID  `json:"actor_id"`
	Note       *string    `json:"note,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// ListHistoryResponse wraps a lead's audit trail.
type ListHistoryResponse struct {
	History []HistoryEntryResponse `json:"history"`
}
