// Package service implements the distribution core: scope authorization,
// eligibility filtering, partitioning, the assignment commit, and the audit
// trail around it.
package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	camprepo "salesops_backend/internal/campaigns/repository"
	"salesops_backend/internal/distribution/transport"
	"salesops_backend/internal/events"
	"salesops_backend/internal/http/middleware"
	"salesops_backend/internal/leads/domain"
	leadsrepo "salesops_backend/internal/leads/repository"
	"salesops_backend/internal/organization/hierarchy"
	orgservice "salesops_backend/internal/organization/service"
	"salesops_backend/platform/apperr"
	"salesops_backend/platform/httpkit"
	"salesops_backend/platform/logger"
)

// History actions recorded for every ownership change.
const (
	actionDistributed = "DISTRIBUIDA"
	actionRepescagem  = "REPESCAGEM"
)

// LeadStore is the slice of the lead repository the distribution core needs.
type LeadStore interface {
	SelectCandidates(ctx context.Context, params leadsrepo.SelectParams) ([]leadsrepo.Candidate, error)
	ClaimForConsultant(ctx context.Context, leadID, consultantID uuid.UUID, expectedOwner *uuid.UUID) error
	InsertHistory(ctx context.Context, params leadsrepo.InsertHistoryParams) error
	ConsultantLoads(ctx context.Context, campaignID uuid.UUID) ([]leadsrepo.ConsultantLoad, error)
	CampaignSummary(ctx context.Context, campaignID uuid.UUID) (leadsrepo.CampaignSummary, error)
}

// CampaignStore is the slice of the campaign repository the core needs.
type CampaignStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (camprepo.Campaign, error)
	OfficeIDs(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error)
}

// Directory resolves consultants and actor scopes. Implemented by the
// organization service.
type Directory interface {
	ConsultantsByIDs(ctx context.Context, ids []uuid.UUID) ([]orgservice.Consultant, error)
	OfficeScopeFor(ctx context.Context, actorID uuid.UUID, role hierarchy.Role) ([]uuid.UUID, error)
}

// Service orchestrates distribution runs and repescagens.
type Service struct {
	leads     LeadStore
	campaigns CampaignStore
	directory Directory
	lock      *CampaignLock
	bus       events.Bus
	log       *logger.Logger
}

// New creates a new distribution service.
func New(leads LeadStore, campaigns CampaignStore, directory Directory, lock *CampaignLock, bus events.Bus, log *logger.Logger) *Service {
	return &Service{
		leads:     leads,
		campaigns: campaigns,
		directory: directory,
		lock:      lock,
		bus:       bus,
		log:       log,
	}
}

// Distribute runs one distribution: authorize, select, filter, partition,
// commit, audit. Falling short of the requested quantity is not an error;
// the response carries the real counts.
func (s *Service) Distribute(ctx context.Context, campaignID uuid.UUID, identity httpkit.Identity, req transport.DistributeRequest) (transport.DistributeResponse, error) {
	role := hierarchy.Role(identity.Role())
	if !role.CanDistribute() {
		return transport.DistributeResponse{}, apperr.Unauthorized("role cannot distribute leads")
	}

	campaign, err := s.campaigns.GetByID(ctx, campaignID)
	if err != nil {
		if errors.Is(err, camprepo.ErrNotFound) {
			return transport.DistributeResponse{}, apperr.NotFound("campaign not found")
		}
		s.log.DatabaseError("get_campaign", err)
		return transport.DistributeResponse{}, apperr.Wrap(apperr.KindInternal, "failed to load campaign", err)
	}
	if !campaign.Active {
		return transport.DistributeResponse{}, apperr.Conflict("campaign is not active")
	}

	quotas, consultantIDs, err := parseQuotas(req.Allotments)
	if err != nil {
		return transport.DistributeResponse{}, err
	}

	consultants, err := s.directory.ConsultantsByIDs(ctx, consultantIDs)
	if err != nil {
		s.log.DatabaseError("consultants_by_ids", err)
		return transport.DistributeResponse{}, apperr.Wrap(apperr.KindInternal, "failed to resolve consultants", err)
	}
	if len(consultants) != len(consultantIDs) {
		return transport.DistributeResponse{}, apperr.Validation("one or more consultants are unknown or inactive")
	}

	actorScope, err := s.directory.OfficeScopeFor(ctx, identity.UserID(), role)
	if err != nil {
		s.log.DatabaseError("office_scope", err)
		return transport.DistributeResponse{}, apperr.Wrap(apperr.KindInternal, "failed to resolve scope", err)
	}
	campaignOffices, err := s.campaigns.OfficeIDs(ctx, campaignID)
	if err != nil {
		s.log.DatabaseError("campaign_offices", err)
		return transport.DistributeResponse{}, apperr.Wrap(apperr.KindInternal, "failed to load campaign offices", err)
	}
	if err := Authorize(role, actorScope, campaignOffices, consultants); err != nil {
		middleware.RecordDistribution("distribuicao", "forbidden", 0)
		return transport.DistributeResponse{}, err
	}

	release, acquired, err := s.lock.Acquire(ctx, campaignID)
	if err != nil {
		return transport.DistributeResponse{}, apperr.Wrap(apperr.KindInternal, "failed to acquire campaign lock", err)
	}
	if !acquired {
		middleware.RecordDistribution("distribuicao", "locked", 0)
		return transport.DistributeResponse{}, apperr.Conflict("a distribution is already running for this campaign")
	}
	defer release()

	required := 0
	for _, quota := range quotas {
		required += quota.Quantity
	}

	offices := EffectiveOffices(actorScope, campaignOffices)
	if req.OfficeID != nil {
		officeID, parseErr := uuid.Parse(*req.OfficeID)
		if parseErr != nil {
			return transport.DistributeResponse{}, apperr.Validation("invalid office id")
		}
		if offices != nil && !containsOffice(offices, officeID) {
			middleware.RecordDistribution("distribuicao", "forbidden", 0)
			return transport.DistributeResponse{}, apperr.Forbidden("office is outside your scope")
		}
		offices = []uuid.UUID{officeID}
	}

	params := leadsrepo.SelectParams{
		CampaignID:     campaignID,
		OnlyUnassigned: req.Filters.UnassignedOnly(),
		OfficeIDs:      offices,
		Limit:          oversample(required),
	}
	if req.Filters.NewOnly() {
		params.Statuses = []string{string(domain.StatusNovo)}
	}

	candidates, err := s.leads.SelectCandidates(ctx, params)
	if err != nil {
		s.log.DatabaseError("select_candidates", err)
		return transport.DistributeResponse{}, apperr.Wrap(apperr.KindInternal, "failed to select leads", err)
	}

	eligible := FilterEligible(candidates, EligibilityParams{
		OnlyWithPhone:       req.Filters.OnlyWithPhone,
		IgnoreInvalidPhones: req.Filters.IgnoreInvalidPhones,
		MinRevenue:          req.Filters.MinRevenue,
		MaxRevenue:          req.Filters.MaxRevenue,
	}, required)
	if len(eligible) == 0 {
		middleware.RecordDistribution("distribuicao", "empty", 0)
		return transport.DistributeResponse{}, apperr.Conflict("no eligible leads in stock")
	}

	// The claim precondition is the owner observed at selection time, so a
	// run that includes assigned leads still cannot race a concurrent one.
	owners := make(map[uuid.UUID]*uuid.UUID, len(eligible))
	for _, candidate := range eligible {
		owners[candidate.ID] = candidate.ConsultantID
	}

	allotments := Partition(eligible, quotas)
	results, totalAssigned, err := s.commit(ctx, identity.UserID(), allotments, owners)
	if err != nil {
		return transport.DistributeResponse{}, err
	}
	if totalAssigned == 0 {
		middleware.RecordDistribution("distribuicao", "empty", 0)
		return transport.DistributeResponse{}, apperr.Conflict("no leads could be assigned")
	}

	s.log.DistributionEvent("distribuicao", campaignID.String(), identity.UserID().String(), len(eligible), totalAssigned)
	middleware.RecordDistribution("distribuicao", "success", totalAssigned)

	s.bus.Publish(ctx, events.LeadsDistributed{
		BaseEvent:    events.NewBaseEvent(),
		CampaignID:   campaignID,
		CampaignName: campaign.Name,
		ActorID:      identity.UserID(),
		Allotments:   toEventAllotments(results, consultants),
	})

	return transport.DistributeResponse{
		CampaignID: campaignID,
		Requested:  required,
		Eligible:   len(eligible),
		Assigned:   totalAssigned,
		Allotments: results,
	}, nil
}

// commit claims each planned lead conditioned on the owner observed during
// selection. Leads lost to a concurrent run are skipped, never reassigned.
// Every successful claim gets an audit record.
func (s *Service) commit(ctx context.Context, actorID uuid.UUID, allotments []Allotment, owners map[uuid.UUID]*uuid.UUID) ([]transport.AllotmentResult, int, error) {
	results := make([]transport.AllotmentResult, 0, len(allotments))
	totalAssigned := 0

	for _, allotment := range allotments {
		result := transport.AllotmentResult{
			ConsultantID: allotment.ConsultantID,
			Requested:    allotment.Requested,
			LeadIDs:      make([]uuid.UUID, 0, len(allotment.LeadIDs)),
		}
		for _, leadID := range allotment.LeadIDs {
			owner := owners[leadID]
			err := s.leads.ClaimForConsultant(ctx, leadID, allotment.ConsultantID, owner)
			if errors.Is(err, leadsrepo.ErrNotClaimed) {
				continue
			}
			if err != nil {
				s.log.DatabaseError("claim_lead", err)
				return nil, 0, apperr.Wrap(apperr.KindInternal, "failed to assign leads", err)
			}

			result.LeadIDs = append(result.LeadIDs, leadID)
			if err := s.leads.InsertHistory(ctx, leadsrepo.InsertHistoryParams{
				LeadID:     leadID,
				Action:     actionDistributed,
				FromUserID: owner,
				ToUserID:   &allotment.ConsultantID,
				ActorID:    actorID,
			}); err != nil {
				s.log.DatabaseError("insert_history", err)
			}
		}
		result.Assigned = len(result.LeadIDs)
		totalAssigned += result.Assigned
		results = append(results, result)
	}
	return results, totalAssigned, nil
}

// Reassign moves up to Quantity leads from one consultant to another
// (repescagem). Terminal leads never move; OnlyUntouched restricts the
// transfer to leads still in NOVO. The source consultant may already be
// deactivated, so only the target is resolved against the directory.
func (s *Service) Reassign(ctx context.Context, identity httpkit.Identity, req transport.ReassignRequest) (transport.ReassignResponse, error) {
	role := hierarchy.Role(identity.Role())
	if !role.CanDistribute() {
		return transport.ReassignResponse{}, apperr.Unauthorized("role cannot reassign leads")
	}

	campaignID, err := uuid.Parse(req.CampaignID)
	if err != nil {
		return transport.ReassignResponse{}, apperr.Validation("invalid campaign id")
	}
	toID, err := uuid.Parse(req.ToConsultantID)
	if err != nil {
		return transport.ReassignResponse{}, apperr.Validation("invalid target consultant id")
	}
	var fromID *uuid.UUID
	if req.FromConsultantID != nil {
		parsed, parseErr := uuid.Parse(*req.FromConsultantID)
		if parseErr != nil {
			return transport.ReassignResponse{}, apperr.Validation("invalid source consultant id")
		}
		if parsed == toID {
			return transport.ReassignResponse{}, apperr.Validation("source and target consultants are the same")
		}
		fromID = &parsed
	}

	campaign, err := s.campaigns.GetByID(ctx, campaignID)
	if err != nil {
		if errors.Is(err, camprepo.ErrNotFound) {
			return transport.ReassignResponse{}, apperr.NotFound("campaign not found")
		}
		s.log.DatabaseError("get_campaign", err)
		return transport.ReassignResponse{}, apperr.Wrap(apperr.KindInternal, "failed to load campaign", err)
	}

	targets, err := s.directory.ConsultantsByIDs(ctx, []uuid.UUID{toID})
	if err != nil {
		s.log.DatabaseError("consultants_by_ids", err)
		return transport.ReassignResponse{}, apperr.Wrap(apperr.KindInternal, "failed to resolve consultant", err)
	}
	if len(targets) == 0 {
		return transport.ReassignResponse{}, apperr.Validation("target consultant is unknown or inactive")
	}
	target := targets[0]

	actorScope, err := s.directory.OfficeScopeFor(ctx, identity.UserID(), role)
	if err != nil {
		s.log.DatabaseError("office_scope", err)
		return transport.ReassignResponse{}, apperr.Wrap(apperr.KindInternal, "failed to resolve scope", err)
	}
	campaignOffices, err := s.campaigns.OfficeIDs(ctx, campaignID)
	if err != nil {
		s.log.DatabaseError("campaign_offices", err)
		return transport.ReassignResponse{}, apperr.Wrap(apperr.KindInternal, "failed to load campaign offices", err)
	}
	if err := Authorize(role, actorScope, campaignOffices, targets); err != nil {
		middleware.RecordDistribution("repescagem", "forbidden", 0)
		return transport.ReassignResponse{}, err
	}

	params := leadsrepo.SelectParams{
		CampaignID:      campaignID,
		ExcludeStatuses: []string{string(domain.StatusFechado), string(domain.StatusPerdido)},
		OnlyAssigned:    true,
		OwnedBy:         fromID,
		OfficeIDs:       EffectiveOffices(actorScope, campaignOffices),
		Limit:           req.Quantity,
	}
	if req.OnlyUntouched {
		params.Statuses = []string{string(domain.StatusNovo)}
	}

	candidates, err := s.leads.SelectCandidates(ctx, params)
	if err != nil {
		s.log.DatabaseError("select_candidates", err)
		return transport.ReassignResponse{}, apperr.Wrap(apperr.KindInternal, "failed to select leads", err)
	}
	if len(candidates) == 0 {
		middleware.RecordDistribution("repescagem", "empty", 0)
		return transport.ReassignResponse{}, apperr.NotFound("no leads to transfer")
	}

	transferred := make([]uuid.UUID, 0, len(candidates))
	for _, candidate := range candidates {
		// Without a pinned source, take the lead from whoever held it at
		// selection time. Leads the target already holds stay put.
		owner := candidate.ConsultantID
		if fromID != nil {
			owner = fromID
		}
		if owner != nil && *owner == toID {
			continue
		}

		err := s.leads.ClaimForConsultant(ctx, candidate.ID, toID, owner)
		if errors.Is(err, leadsrepo.ErrNotClaimed) {
			continue
		}
		if err != nil {
			s.log.DatabaseError("claim_lead", err)
			return transport.ReassignResponse{}, apperr.Wrap(apperr.KindInternal, "failed to transfer leads", err)
		}

		transferred = append(transferred, candidate.ID)
		if err := s.leads.InsertHistory(ctx, leadsrepo.InsertHistoryParams{
			LeadID:     candidate.ID,
			Action:     actionRepescagem,
			FromUserID: owner,
			ToUserID:   &toID,
			ActorID:    identity.UserID(),
		}); err != nil {
			s.log.DatabaseError("insert_history", err)
		}
	}
	if len(transferred) == 0 {
		middleware.RecordDistribution("repescagem", "empty", 0)
		return transport.ReassignResponse{}, apperr.NotFound("no leads to transfer")
	}

	s.log.DistributionEvent("repescagem", campaignID.String(), identity.UserID().String(), len(candidates), len(transferred))
	middleware.RecordDistribution("repescagem", "success", len(transferred))

	s.bus.Publish(ctx, events.LeadsReassigned{
		BaseEvent:        events.NewBaseEvent(),
		CampaignID:       campaignID,
		CampaignName:     campaign.Name,
		FromConsultantID: fromID,
		ToConsultantID:   toID,
		ToName:           target.Name,
		ToEmail:          target.Email,
		ActorID:          identity.UserID(),
		LeadIDs:          transferred,
	})

	return transport.ReassignResponse{
		CampaignID:     campaignID,
		FromConsultant: fromID,
		ToConsultant:   toID,
		Requested:      req.Quantity,
		Transferred:    len(transferred),
		LeadIDs:        transferred,
	}, nil
}

// Report returns the per-consultant view of a campaign's distribution.
func (s *Service) Report(ctx context.Context, campaignID uuid.UUID) (transport.ReportResponse, error) {
	if _, err := s.campaigns.GetByID(ctx, campaignID); err != nil {
		if errors.Is(err, camprepo.ErrNotFound) {
			return transport.ReportResponse{}, apperr.NotFound("campaign not found")
		}
		s.log.DatabaseError("get_campaign", err)
		return transport.ReportResponse{}, apperr.Wrap(apperr.KindInternal, "failed to load campaign", err)
	}

	summary, err := s.leads.CampaignSummary(ctx, campaignID)
	if err != nil {
		s.log.DatabaseError("campaign_summary", err)
		return transport.ReportResponse{}, apperr.Wrap(apperr.KindInternal, "failed to summarize campaign", err)
	}

	loads, err := s.leads.ConsultantLoads(ctx, campaignID)
	if err != nil {
		s.log.DatabaseError("consultant_loads", err)
		return transport.ReportResponse{}, apperr.Wrap(apperr.KindInternal, "failed to load distribution report", err)
	}

	resp := transport.ReportResponse{
		CampaignID: campaignID,
		Resumo: transport.CampaignResumo{
			Total:      summary.Total,
			Estoque:    summary.Estoque,
			Atribuidos: summary.Atribuidos,
			Fechados:   summary.Fechados,
			Perdidos:   summary.Perdidos,
		},
		Loads: make([]transport.ConsultantLoadResponse, 0, len(loads)),
	}
	for _, load := range loads {
		resp.Loads = append(resp.Loads, transport.ConsultantLoadResponse{
			ConsultantID:   load.ConsultantID,
			ConsultantName: load.ConsultantName,
			OfficeID:       load.OfficeID,
			OfficeName:     load.OfficeName,
			Atribuidos:     load.Atribuidos,
			Trabalhados:    load.Trabalhados,
			Restantes:      load.Restantes,
			Fechados:       load.Fechados,
			Perdidos:       load.Perdidos,
			LastActivityAt: load.LastActivityAt,
		})
	}
	return resp, nil
}

func parseQuotas(requests []transport.AllotmentRequest) ([]Quota, []uuid.UUID, error) {
	quotas := make([]Quota, 0, len(requests))
	ids := make([]uuid.UUID, 0, len(requests))
	seen := make(map[uuid.UUID]bool, len(requests))

	for _, request := range requests {
		id, err := uuid.Parse(request.ConsultantID)
		if err != nil {
			return nil, nil, apperr.Validation("invalid consultant id")
		}
		if seen[id] {
			return nil, nil, apperr.Validation("duplicate consultant in allotments")
		}
		seen[id] = true

		quotas = append(quotas, Quota{ConsultantID: id, Quantity: request.Quantity})
		ids = append(ids, id)
	}
	return quotas, ids, nil
}

func toEventAllotments(results []transport.AllotmentResult, consultants []orgservice.Consultant) []events.ConsultantAllotment {
	byID := make(map[uuid.UUID]orgservice.Consultant, len(consultants))
	for _, consultant := range consultants {
		byID[consultant.ID] = consultant
	}

	allotments := make([]events.ConsultantAllotment, 0, len(results))
	for _, result := range results {
		if result.Assigned == 0 {
			continue
		}
		consultant := byID[result.ConsultantID]
		allotments = append(allotments, events.ConsultantAllotment{
			ConsultantID: result.ConsultantID,
			Name:         consultant.Name,
			Email:        consultant.Email,
			LeadIDs:      result.LeadIDs,
		})
	}
	return allotments
}
