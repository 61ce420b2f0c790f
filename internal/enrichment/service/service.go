// Package service merges public registry data into leads.
package service

import (
	"context"
	"errors"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"salesops_backend/internal/enrichment/client"
	"salesops_backend/internal/events"
	leadsrepo "salesops_backend/internal/leads/repository"
	"salesops_backend/platform/apperr"
	"salesops_backend/platform/logger"
)

// backfillWorkers bounds concurrent registry lookups so a campaign backfill
// does not hammer the public API.
const backfillWorkers = 4

// LeadStore is the slice of the lead repository enrichment needs.
type LeadStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (leadsrepo.Lead, error)
	ApplyEnrichment(ctx context.Context, params leadsrepo.EnrichmentParams) error
	ListCNPJsByCampaign(ctx context.Context, campaignID uuid.UUID) (map[uuid.UUID]string, error)
}

// Registry looks up company records. Implemented by client.Client.
type Registry interface {
	Lookup(ctx context.Context, cnpj string) (client.Company, error)
}

// Service enriches leads with registry data.
type Service struct {
	leads    LeadStore
	registry Registry
	bus      events.Bus
	log      *logger.Logger
	enabled  bool
}

// New creates a new enrichment service.
func New(leads LeadStore, registry Registry, bus events.Bus, log *logger.Logger, enabled bool) *Service {
	return &Service{leads: leads, registry: registry, bus: bus, log: log, enabled: enabled}
}

// EnrichResult reports what was merged into a lead.
type EnrichResult struct {
	LeadID      uuid.UUID `json:"lead_id"`
	CNPJ        string    `json:"cnpj"`
	CompanyName string    `json:"company_name,omitempty"`
	City        string    `json:"city,omitempty"`
	State       string    `json:"state,omitempty"`
}

// Enrich looks a lead's CNPJ up in the registry and merges the record into
// the lead.
func (s *Service) Enrich(ctx context.Context, leadID uuid.UUID) (EnrichResult, error) {
	if !s.enabled {
		return EnrichResult{}, apperr.Conflict("enrichment is disabled")
	}

	lead, err := s.leads.GetByID(ctx, leadID)
	if err != nil {
		if errors.Is(err, leadsrepo.ErrNotFound) {
			return EnrichResult{}, apperr.NotFound("lead not found")
		}
		s.log.DatabaseError("get_lead", err)
		return EnrichResult{}, apperr.Wrap(apperr.KindInternal, "failed to load lead", err)
	}
	if lead.CNPJ == nil || *lead.CNPJ == "" {
		return EnrichResult{}, apperr.Validation("lead has no cnpj")
	}

	company, err := s.enrichOne(ctx, leadID, *lead.CNPJ)
	if err != nil {
		return EnrichResult{}, err
	}

	return EnrichResult{
		LeadID:      leadID,
		CNPJ:        company.CNPJ,
		CompanyName: company.LegalName,
		City:        company.City,
		State:       company.State,
	}, nil
}

// BackfillCampaign enriches every lead in a campaign that carries a CNPJ.
// Lookups run concurrently but bounded; individual failures are logged and
// skipped so one bad CNPJ does not sink the batch.
func (s *Service) BackfillCampaign(ctx context.Context, campaignID uuid.UUID) (int, error) {
	if !s.enabled {
		return 0, apperr.Conflict("enrichment is disabled")
	}

	pending, err := s.leads.ListCNPJsByCampaign(ctx, campaignID)
	if err != nil {
		s.log.DatabaseError("list_cnpjs", err)
		return 0, apperr.Wrap(apperr.KindInternal, "failed to list leads for backfill", err)
	}

	var enriched atomic.Int64
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(backfillWorkers)

	for leadID, cnpj := range pending {
		group.Go(func() error {
			if _, err := s.enrichOne(groupCtx, leadID, cnpj); err != nil {
				s.log.WithContext(groupCtx).Warn("backfill enrichment skipped",
					"lead_id", leadID.String(),
					"error", err.Error(),
				)
				return nil
			}
			enriched.Add(1)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return int(enriched.Load()), apperr.Wrap(apperr.KindInternal, "backfill aborted", err)
	}

	s.log.WithContext(ctx).Info("campaign backfill finished",
		"campaign_id", campaignID.String(),
		"pending", len(pending),
		"enriched", enriched.Load(),
	)
	return int(enriched.Load()), nil
}

func (s *Service) enrichOne(ctx context.Context, leadID uuid.UUID, cnpj string) (client.Company, error) {
	company, err := s.registry.Lookup(ctx, cnpj)
	if err != nil {
		switch {
		case errors.Is(err, client.ErrInvalidCNPJ):
			return client.Company{}, apperr.Validation("lead cnpj is malformed")
		case errors.Is(err, client.ErrNotFound):
			return client.Company{}, apperr.NotFound("cnpj not found in registry")
		default:
			return client.Company{}, apperr.Wrap(apperr.KindInternal, "registry lookup failed", err)
		}
	}

	if err := s.leads.ApplyEnrichment(ctx, toEnrichmentParams(leadID, company)); err != nil {
		s.log.DatabaseError("apply_enrichment", err)
		return client.Company{}, apperr.Wrap(apperr.KindInternal, "failed to apply enrichment", err)
	}

	s.bus.Publish(ctx, events.LeadEnriched{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    leadID,
		CNPJ:      company.CNPJ,
	})
	return company, nil
}

func toEnrichmentParams(leadID uuid.UUID, company client.Company) leadsrepo.EnrichmentParams {
	params := leadsrepo.EnrichmentParams{LeadID: leadID}

	if company.LegalName != "" {
		params.CompanyName = &company.LegalName
	}
	if company.City != "" {
		params.City = &company.City
	}
	if company.State != "" {
		params.State = &company.State
	}
	if company.LegalNature != "" {
		params.LegalNature = &company.LegalNature
	}
	if company.OpenedOn != "" {
		if opened, err := time.Parse("2006-01-02", company.OpenedOn); err == nil {
			params.OpenedOn = &opened
		}
	}
	if company.ShareCapital > 0 {
		capital := strconv.FormatFloat(company.ShareCapital, 'f', 2, 64)
		params.Revenue = &capital
	}
	return params
}
