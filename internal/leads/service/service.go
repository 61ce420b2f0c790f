// Package service implements lead import, listing, tratativas and the audit
// trail.
package service

import (
	"context"

	"github.com/google/uuid"

	"salesops_backend/internal/leads/domain"
	"salesops_backend/internal/leads/repository"
	"salesops_backend/internal/leads/transport"
	"salesops_backend/internal/organization/hierarchy"
	"salesops_backend/platform/apperr"
	"salesops_backend/platform/httpkit"
	"salesops_backend/platform/logger"
	"salesops_backend/platform/phone"
)

// Service coordinates lead operations.
type Service struct {
	repo *repository.Repository
	log  *logger.Logger
}

// New creates a new leads service.
func New(repo *repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Repository exposes the lead store to sibling modules that operate on leads.
func (s *Service) Repository() *repository.Repository {
	return s.repo
}

// Import bulk-loads leads into a campaign, normalizing phone numbers on the
// way in so the eligibility filter works on a consistent format.
func (s *Service) Import(ctx context.Context, campaignID uuid.UUID, req transport.ImportLeadsRequest) (transport.ImportLeadsResponse, error) {
	rows := make([]repository.ImportRow, 0, len(req.Leads))
	for _, lead := range req.Leads {
		row := repository.ImportRow{
			CompanyName: lead.CompanyName,
			CNPJ:        lead.CNPJ,
			Phone1:      normalizePhone(lead.Phone1),
			Phone2:      normalizePhone(lead.Phone2),
			Phone3:      normalizePhone(lead.Phone3),
			Revenue:     lead.Revenue,
		}
		if lead.OfficeID != nil {
			officeID, err := uuid.Parse(*lead.OfficeID)
			if err != nil {
				return transport.ImportLeadsResponse{}, apperr.Wrap(apperr.KindValidation, "invalid office_id", err)
			}
			row.OfficeID = &officeID
		}
		rows = append(rows, row)
	}

	imported, err := s.repo.ImportLeads(ctx, campaignID, rows)
	if err != nil {
		s.log.DatabaseError("import_leads", err)
		return transport.ImportLeadsResponse{}, apperr.Wrap(apperr.KindInternal, "failed to import leads", err)
	}

	s.log.WithContext(ctx).Info("leads imported",
		"campaign_id", campaignID.String(),
		"count", imported,
	)
	return transport.ImportLeadsResponse{Imported: imported}, nil
}

func normalizePhone(raw *string) *string {
	if raw == nil || *raw == "" {
		return nil
	}
	normalized := phone.NormalizeE164(*raw)
	return &normalized
}

// List returns a campaign's leads. Consultants only ever see their own slice
// regardless of the filters they send.
func (s *Service) List(ctx context.Context, campaignID uuid.UUID, identity httpkit.Identity, req transport.ListLeadsRequest) (transport.ListLeadsResponse, error) {
	params := repository.ListParams{
		CampaignID: campaignID,
		Status:     req.Status,
		Limit:      req.Limit,
		Offset:     req.Offset,
	}
	if params.Limit == 0 {
		params.Limit = 100
	}

	if req.ConsultantID != nil {
		consultantID, err := uuid.Parse(*req.ConsultantID)
		if err != nil {
			return transport.ListLeadsResponse{}, apperr.Wrap(apperr.KindValidation, "invalid consultant_id", err)
		}
		params.ConsultantID = &consultantID
	}
	if hierarchy.Role(identity.Role()) == hierarchy.RoleConsultant {
		userID := identity.UserID()
		params.ConsultantID = &userID
	}

	leads, err := s.repo.List(ctx, params)
	if err != nil {
		s.log.DatabaseError("list_leads", err)
		return transport.ListLeadsResponse{}, apperr.Wrap(apperr.KindInternal, "failed to list leads", err)
	}

	resp := transport.ListLeadsResponse{Leads: make([]transport.LeadResponse, 0, len(leads)), Total: len(leads)}
	for _, lead := range leads {
		resp.Leads = append(resp.Leads, toLeadResponse(lead))
	}
	return resp, nil
}

// Get returns a single lead. Consultants may only read leads assigned to them.
func (s *Service) Get(ctx context.Context, leadID uuid.UUID, identity httpkit.Identity) (transport.LeadResponse, error) {
	lead, err := s.loadVisible(ctx, leadID, identity)
	if err != nil {
		return transport.LeadResponse{}, err
	}
	return toLeadResponse(lead), nil
}

// RecordActivity registers a tratativa and optionally advances the lead's
// status. Only the owning consultant (or an unrestricted role) may work a
// lead, and terminal leads cannot be reopened.
func (s *Service) RecordActivity(ctx context.Context, leadID uuid.UUID, identity httpkit.Identity, req transport.RecordActivityRequest) error {
	lead, err := s.loadVisible(ctx, leadID, identity)
	if err != nil {
		return err
	}

	if req.NewStatus != nil {
		next := domain.Status(*req.NewStatus)
		if !next.Valid() {
			return apperr.Validation("unknown status")
		}
		if domain.Status(lead.Status).Terminal() {
			return apperr.Conflict("lead already closed")
		}
	}

	if err := s.repo.RecordActivity(ctx, repository.RecordActivityParams{
		LeadID:    leadID,
		UserID:    identity.UserID(),
		Kind:      req.Kind,
		Note:      req.Note,
		NewStatus: req.NewStatus,
	}); err != nil {
		s.log.DatabaseError("record_activity", err)
		return apperr.Wrap(apperr.KindInternal, "failed to record activity", err)
	}
	return nil
}

// History returns a lead's audit trail of ownership changes.
func (s *Service) History(ctx context.Context, leadID uuid.UUID, identity httpkit.Identity) (transport.ListHistoryResponse, error) {
	if _, err := s.loadVisible(ctx, leadID, identity); err != nil {
		return transport.ListHistoryResponse{}, err
	}

	entries, err := s.repo.ListHistory(ctx, leadID)
	if err != nil {
		s.log.DatabaseError("list_history", err)
		return transport.ListHistoryResponse{}, apperr.Wrap(apperr.KindInternal, "failed to list history", err)
	}

	resp := transport.ListHistoryResponse{History: make([]transport.HistoryEntryResponse, 0, len(entries))}
	for _, entry := range entries {
		resp.History = append(resp.History, transport.HistoryEntryResponse{
			ID:         entry.ID,
			Action:     entry.Action,
			FromUserID: entry.FromUserID,
			ToUserID:   entry.ToUserID,
			ActorID:    entry.ActorID,
			Note:       entry.Note,
			CreatedAt:  entry.CreatedAt,
		})
	}
	return resp, nil
}

func (s *Service) loadVisible(ctx context.Context, leadID uuid.UUID, identity httpkit.Identity) (repository.Lead, error) {
	lead, err := s.repo.GetByID(ctx, leadID)
	if err != nil {
		if err == repository.ErrNotFound {
			return repository.Lead{}, apperr.NotFound("lead not found")
		}
		s.log.DatabaseError("get_lead", err)
		return repository.Lead{}, apperr.Wrap(apperr.KindInternal, "failed to load lead", err)
	}

	if hierarchy.Role(identity.Role()) == hierarchy.RoleConsultant {
		userID := identity.UserID()
		if lead.ConsultantID == nil || *lead.ConsultantID != userID {
			return repository.Lead{}, apperr.Forbidden("lead belongs to another consultant")
		}
	}
	return lead, nil
}

func toLeadResponse(lead repository.Lead) transport.LeadResponse {
	return transport.LeadResponse{
		ID:                  lead.ID,
		CampaignID:          lead.CampaignID,
		OfficeID:            lead.OfficeID,
		ConsultantID:        lead.ConsultantID,
		Status:              lead.Status,
		CompanyName:         lead.CompanyName,
		CNPJ:                lead.CNPJ,
		Phone1:              lead.Phone1,
		Phone2:              lead.Phone2,
		Phone3:              lead.Phone3,
		Revenue:             lead.Revenue,
		City:                lead.City,
		State:               lead.State,
		LegalNature:         lead.LegalNature,
		OpenedOn:            lead.OpenedOn,
		PreviousConsultants: lead.PreviousConsultants,
		CreatedAt:           lead.CreatedAt,
		LastActivityAt:      lead.LastActivityAt,
	}
}
