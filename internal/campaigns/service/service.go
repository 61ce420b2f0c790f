// Package service implements campaign management.
package service

import (
	"context"

	"github.com/google/uuid"

	"salesops_backend/internal/campaigns/repository"
	"salesops_backend/internal/campaigns/transport"
	"salesops_backend/internal/events"
	leadsrepo "salesops_backend/internal/leads/repository"
	"salesops_backend/platform/apperr"
	"salesops_backend/platform/logger"
)

// LeadSummarizer aggregates a campaign's lead pipeline. Implemented by the
// leads repository.
type LeadSummarizer interface {
	CampaignSummary(ctx context.Context, campaignID uuid.UUID) (leadsrepo.CampaignSummary, error)
}

// Service coordinates campaign operations.
type Service struct {
	repo      *repository.Repository
	summaries LeadSummarizer
	bus       events.Bus
	log       *logger.Logger
}

// New creates a new campaigns service.
func New(repo *repository.Repository, summaries LeadSummarizer, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, summaries: summaries, bus: bus, log: log}
}

// Repository exposes the campaign store to the distribution module, which
// needs office targeting and the active flag.
func (s *Service) Repository() *repository.Repository {
	return s.repo
}

// Create registers a campaign and publishes CampaignCreated.
func (s *Service) Create(ctx context.Context, actorID uuid.UUID, req transport.CreateCampaignRequest) (transport.CampaignResponse, error) {
	officeIDs := make([]uuid.UUID, 0, len(req.OfficeIDs))
	for _, raw := range req.OfficeIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return transport.CampaignResponse{}, apperr.Wrap(apperr.KindValidation, "invalid office id", err)
		}
		officeIDs = append(officeIDs, id)
	}

	campaign, err := s.repo.Create(ctx, req.Name, req.Description, actorID, officeIDs)
	if err != nil {
		s.log.DatabaseError("create_campaign", err)
		return transport.CampaignResponse{}, apperr.Wrap(apperr.KindInternal, "failed to create campaign", err)
	}

	s.bus.Publish(ctx, events.CampaignCreated{
		BaseEvent:  events.NewBaseEvent(),
		CampaignID: campaign.ID,
		Name:       campaign.Name,
		CreatedBy:  actorID,
	})

	resp := toCampaignResponse(campaign)
	resp.OfficeIDs = officeIDs
	return resp, nil
}

// List returns campaigns, newest first.
func (s *Service) List(ctx context.Context, onlyActive bool) (transport.ListCampaignsResponse, error) {
	campaigns, err := s.repo.List(ctx, onlyActive)
	if err != nil {
		s.log.DatabaseError("list_campaigns", err)
		return transport.ListCampaignsResponse{}, apperr.Wrap(apperr.KindInternal, "failed to list campaigns", err)
	}

	resp := transport.ListCampaignsResponse{Campaigns: make([]transport.CampaignResponse, 0, len(campaigns))}
	for _, campaign := range campaigns {
		resp.Campaigns = append(resp.Campaigns, toCampaignResponse(campaign))
	}
	return resp, nil
}

// Get returns one campaign with its pipeline summary.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (transport.CampaignSummaryResponse, error) {
	campaign, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return transport.CampaignSummaryResponse{}, apperr.NotFound("campaign not found")
		}
		s.log.DatabaseError("get_campaign", err)
		return transport.CampaignSummaryResponse{}, apperr.Wrap(apperr.KindInternal, "failed to load campaign", err)
	}

	summary, err := s.summaries.CampaignSummary(ctx, id)
	if err != nil {
		s.log.DatabaseError("campaign_summary", err)
		return transport.CampaignSummaryResponse{}, apperr.Wrap(apperr.KindInternal, "failed to summarize campaign", err)
	}

	officeIDs, err := s.repo.OfficeIDs(ctx, id)
	if err != nil {
		s.log.DatabaseError("campaign_offices", err)
		return transport.CampaignSummaryResponse{}, apperr.Wrap(apperr.KindInternal, "failed to load campaign offices", err)
	}

	resp := toCampaignResponse(campaign)
	resp.OfficeIDs = officeIDs
	return transport.CampaignSummaryResponse{
		Campaign:   resp,
		Total:      summary.Total,
		Estoque:    summary.Estoque,
		Atribuidos: summary.Atribuidos,
		Fechados:   summary.Fechados,
		Perdidos:   summary.Perdidos,
	}, nil
}

// SetActive toggles a campaign.
func (s *Service) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	if err := s.repo.SetActive(ctx, id, active); err != nil {
		if err == repository.ErrNotFound {
			return apperr.NotFound("campaign not found")
		}
		s.log.DatabaseError("set_campaign_active", err)
		return apperr.Wrap(apperr.KindInternal, "failed to update campaign", err)
	}
	return nil
}

func toCampaignResponse(campaign repository.Campaign) transport.CampaignResponse {
	return transport.CampaignResponse{
		ID:          campaign.ID,
		Name:        campaign.Name,
		Description: campaign.Description,
		Active:      campaign.Active,
		CreatedBy:   campaign.CreatedBy,
		CreatedAt:   campaign.CreatedAt,
	}
}
