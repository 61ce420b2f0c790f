package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	camprepo "salesops_backend/internal/campaigns/repository"
	"salesops_backend/internal/distribution/transport"
	"salesops_backend/internal/events"
	leadsrepo "salesops_backend/internal/leads/repository"
	"salesops_backend/internal/organization/hierarchy"
	orgservice "salesops_backend/internal/organization/service"
	"salesops_backend/platform/apperr"
	"salesops_backend/platform/logger"
)

// ---------------------------------------------------------------------------
// Mocks
// ---------------------------------------------------------------------------

type mockLeadStore struct{ mock.Mock }

func (m *mockLeadStore) SelectCandidates(ctx context.Context, params leadsrepo.SelectParams) ([]leadsrepo.Candidate, error) {
	args := m.Called(ctx, params)
	return args.Get(0).([]leadsrepo.Candidate), args.Error(1)
}

func (m *mockLeadStore) ClaimForConsultant(ctx context.Context, leadID, consultantID uuid.UUID, expectedOwner *uuid.UUID) error {
	args := m.Called(ctx, leadID, consultantID, expectedOwner)
	return args.Error(0)
}

func (m *mockLeadStore) InsertHistory(ctx context.Context, params leadsrepo.InsertHistoryParams) error {
	args := m.Called(ctx, params)
	return args.Error(0)
}

func (m *mockLeadStore) ConsultantLoads(ctx context.Context, campaignID uuid.UUID) ([]leadsrepo.ConsultantLoad, error) {
	args := m.Called(ctx, campaignID)
	return args.Get(0).([]leadsrepo.ConsultantLoad), args.Error(1)
}

func (m *mockLeadStore) CampaignSummary(ctx context.Context, campaignID uuid.UUID) (leadsrepo.CampaignSummary, error) {
	args := m.Called(ctx, campaignID)
	return args.Get(0).(leadsrepo.CampaignSummary), args.Error(1)
}

type mockCampaignStore struct{ mock.Mock }

func (m *mockCampaignStore) GetByID(ctx context.Context, id uuid.UUID) (camprepo.Campaign, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(camprepo.Campaign), args.Error(1)
}

func (m *mockCampaignStore) OfficeIDs(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, id)
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

type mockDirectory struct{ mock.Mock }

func (m *mockDirectory) ConsultantsByIDs(ctx context.Context, ids []uuid.UUID) ([]orgservice.Consultant, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]orgservice.Consultant), args.Error(1)
}

func (m *mockDirectory) OfficeScopeFor(ctx context.Context, actorID uuid.UUID, role hierarchy.Role) ([]uuid.UUID, error) {
	args := m.Called(ctx, actorID, role)
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

type fakeIdentity struct {
	id   uuid.UUID
	role string
}

func (f fakeIdentity) UserID() uuid.UUID        { return f.id }
func (f fakeIdentity) Role() string             { return f.role }
func (f fakeIdentity) OfficeID() *uuid.UUID     { return nil }
func (f fakeIdentity) HasRole(role string) bool { return f.role == role }
func (f fakeIdentity) IsAuthenticated() bool    { return true }

// ---------------------------------------------------------------------------
// Fixture
// ---------------------------------------------------------------------------

type fixture struct {
	leads     *mockLeadStore
	campaigns *mockCampaignStore
	directory *mockDirectory
	svc       *Service

	campaignID uuid.UUID
	officeID   uuid.UUID
	actor      fakeIdentity
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		leads:      &mockLeadStore{},
		campaigns:  &mockCampaignStore{},
		directory:  &mockDirectory{},
		campaignID: uuid.New(),
		officeID:   uuid.New(),
		actor:      fakeIdentity{id: uuid.New(), role: string(hierarchy.RoleMaster)},
	}

	log := logger.New("test")
	f.svc = New(f.leads, f.campaigns, f.directory, NewCampaignLock(nil), events.NewInMemoryBus(log), log)
	return f
}

func (f *fixture) activeCampaign() camprepo.Campaign {
	return camprepo.Campaign{ID: f.campaignID, Name: "Prospecção Q3", Active: true}
}

func (f *fixture) consultant() orgservice.Consultant {
	return orgservice.Consultant{
		ID:       uuid.New(),
		Name:     "Ana",
		Email:    "ana@example.com",
		OfficeID: &f.officeID,
	}
}

func stock(n int) []leadsrepo.Candidate {
	out := make([]leadsrepo.Candidate, n)
	for i := range out {
		out[i] = leadsrepo.Candidate{ID: uuid.New(), Status: "NOVO"}
	}
	return out
}

func distReq(consultants []orgservice.Consultant, each int) transport.DistributeRequest {
	req := transport.DistributeRequest{}
	for _, c := range consultants {
		req.Allotments = append(req.Allotments, transport.AllotmentRequest{
			ConsultantID: c.ID.String(),
			Quantity:     each,
		})
	}
	return req
}

// ---------------------------------------------------------------------------
// Distribute
// ---------------------------------------------------------------------------

func TestDistributeFullRun(t *testing.T) {
	f := newFixture(t)
	first, second := f.consultant(), f.consultant()

	f.campaigns.On("GetByID", mock.Anything, f.campaignID).Return(f.activeCampaign(), nil)
	f.campaigns.On("OfficeIDs", mock.Anything, f.campaignID).Return([]uuid.UUID{}, nil)
	f.directory.On("ConsultantsByIDs", mock.Anything, mock.Anything).Return([]orgservice.Consultant{first, second}, nil)
	f.directory.On("OfficeScopeFor", mock.Anything, f.actor.id, hierarchy.RoleMaster).Return([]uuid.UUID(nil), nil)
	f.leads.On("SelectCandidates", mock.Anything, mock.Anything).Return(stock(10), nil)
	f.leads.On("ClaimForConsultant", mock.Anything, mock.Anything, mock.Anything, (*uuid.UUID)(nil)).Return(nil)
	f.leads.On("InsertHistory", mock.Anything, mock.Anything).Return(nil)

	resp, err := f.svc.Distribute(context.Background(), f.campaignID, f.actor, distReq([]orgservice.Consultant{first, second}, 5))

	require.NoError(t, err)
	require.Equal(t, 10, resp.Requested)
	require.Equal(t, 10, resp.Assigned)
	require.Len(t, resp.Allotments, 2)
	require.Equal(t, 5, resp.Allotments[0].Assigned)
	require.Equal(t, 5, resp.Allotments[1].Assigned)
	f.leads.AssertNumberOfCalls(t, "ClaimForConsultant", 10)
	f.leads.AssertNumberOfCalls(t, "InsertHistory", 10)
}

func TestDistributePartialStockIsSuccess(t *testing.T) {
	f := newFixture(t)
	first, second := f.consultant(), f.consultant()

	f.campaigns.On("GetByID", mock.Anything, f.campaignID).Return(f.activeCampaign(), nil)
	f.campaigns.On("OfficeIDs", mock.Anything, f.campaignID).Return([]uuid.UUID{}, nil)
	f.directory.On("ConsultantsByIDs", mock.Anything, mock.Anything).Return([]orgservice.Consultant{first, second}, nil)
	f.directory.On("OfficeScopeFor", mock.Anything, f.actor.id, hierarchy.RoleMaster).Return([]uuid.UUID(nil), nil)
	f.leads.On("SelectCandidates", mock.Anything, mock.Anything).Return(stock(7), nil)
	f.leads.On("ClaimForConsultant", mock.Anything, mock.Anything, mock.Anything, (*uuid.UUID)(nil)).Return(nil)
	f.leads.On("InsertHistory", mock.Anything, mock.Anything).Return(nil)

	resp, err := f.svc.Distribute(context.Background(), f.campaignID, f.actor, distReq([]orgservice.Consultant{first, second}, 5))

	require.NoError(t, err)
	require.Equal(t, 7, resp.Assigned)
	require.Equal(t, 5, resp.Allotments[0].Assigned, "first quota is filled before the second")
	require.Equal(t, 2, resp.Allotments[1].Assigned)
}

func TestDistributeConsultantRoleUnauthorized(t *testing.T) {
	f := newFixture(t)
	f.actor.role = string(hierarchy.RoleConsultant)

	_, err := f.svc.Distribute(context.Background(), f.campaignID, f.actor, transport.DistributeRequest{
		Allotments: []transport.AllotmentRequest{{ConsultantID: uuid.NewString(), Quantity: 1}},
	})

	require.True(t, apperr.Is(err, apperr.KindUnauthorized))
	f.leads.AssertNotCalled(t, "SelectCandidates", mock.Anything, mock.Anything)
	f.leads.AssertNotCalled(t, "ClaimForConsultant", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDistributeOutOfScopeCommitsNothing(t *testing.T) {
	f := newFixture(t)
	f.actor.role = string(hierarchy.RoleOwner)
	target := f.consultant()

	f.campaigns.On("GetByID", mock.Anything, f.campaignID).Return(f.activeCampaign(), nil)
	f.campaigns.On("OfficeIDs", mock.Anything, f.campaignID).Return([]uuid.UUID{}, nil)
	f.directory.On("ConsultantsByIDs", mock.Anything, mock.Anything).Return([]orgservice.Consultant{target}, nil)
	// The actor owns a different office than the target consultant's.
	f.directory.On("OfficeScopeFor", mock.Anything, f.actor.id, hierarchy.RoleOwner).Return([]uuid.UUID{uuid.New()}, nil)

	_, err := f.svc.Distribute(context.Background(), f.campaignID, f.actor, distReq([]orgservice.Consultant{target}, 5))

	require.True(t, apperr.Is(err, apperr.KindForbidden))
	f.leads.AssertNotCalled(t, "SelectCandidates", mock.Anything, mock.Anything)
	f.leads.AssertNotCalled(t, "ClaimForConsultant", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDistributeEmptyStockConflicts(t *testing.T) {
	f := newFixture(t)
	target := f.consultant()

	f.campaigns.On("GetByID", mock.Anything, f.campaignID).Return(f.activeCampaign(), nil)
	f.campaigns.On("OfficeIDs", mock.Anything, f.campaignID).Return([]uuid.UUID{}, nil)
	f.directory.On("ConsultantsByIDs", mock.Anything, mock.Anything).Return([]orgservice.Consultant{target}, nil)
	f.directory.On("OfficeScopeFor", mock.Anything, f.actor.id, hierarchy.RoleMaster).Return([]uuid.UUID(nil), nil)
	f.leads.On("SelectCandidates", mock.Anything, mock.Anything).Return([]leadsrepo.Candidate{}, nil)

	_, err := f.svc.Distribute(context.Background(), f.campaignID, f.actor, distReq([]orgservice.Consultant{target}, 5))

	require.True(t, apperr.Is(err, apperr.KindConflict))
	f.leads.AssertNotCalled(t, "ClaimForConsultant", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDistributeInactiveCampaignConflicts(t *testing.T) {
	f := newFixture(t)
	paused := f.activeCampaign()
	paused.Active = false

	f.campaigns.On("GetByID", mock.Anything, f.campaignID).Return(paused, nil)

	_, err := f.svc.Distribute(context.Background(), f.campaignID, f.actor, transport.DistributeRequest{
		Allotments: []transport.AllotmentRequest{{ConsultantID: uuid.NewString(), Quantity: 1}},
	})
	require.True(t, apperr.Is(err, apperr.KindConflict))
}

func TestDistributeSkipsLeadsLostToConcurrentRun(t *testing.T) {
	f := newFixture(t)
	target := f.consultant()
	pool := stock(3)

	f.campaigns.On("GetByID", mock.Anything, f.campaignID).Return(f.activeCampaign(), nil)
	f.campaigns.On("OfficeIDs", mock.Anything, f.campaignID).Return([]uuid.UUID{}, nil)
	f.directory.On("ConsultantsByIDs", mock.Anything, mock.Anything).Return([]orgservice.Consultant{target}, nil)
	f.directory.On("OfficeScopeFor", mock.Anything, f.actor.id, hierarchy.RoleMaster).Return([]uuid.UUID(nil), nil)
	f.leads.On("SelectCandidates", mock.Anything, mock.Anything).Return(pool, nil)
	// The middle lead was taken by a concurrent run between select and claim.
	f.leads.On("ClaimForConsultant", mock.Anything, pool[1].ID, target.ID, (*uuid.UUID)(nil)).Return(leadsrepo.ErrNotClaimed)
	f.leads.On("ClaimForConsultant", mock.Anything, mock.Anything, target.ID, (*uuid.UUID)(nil)).Return(nil)
	f.leads.On("InsertHistory", mock.Anything, mock.Anything).Return(nil)

	resp, err := f.svc.Distribute(context.Background(), f.campaignID, f.actor, distReq([]orgservice.Consultant{target}, 3))

	require.NoError(t, err)
	require.Equal(t, 2, resp.Assigned)
	require.NotContains(t, resp.Allotments[0].LeadIDs, pool[1].ID)
	f.leads.AssertNumberOfCalls(t, "InsertHistory", 2)
}

func TestDistributeAllClaimsLostConflicts(t *testing.T) {
	f := newFixture(t)
	target := f.consultant()

	f.campaigns.On("GetByID", mock.Anything, f.campaignID).Return(f.activeCampaign(), nil)
	f.campaigns.On("OfficeIDs", mock.Anything, f.campaignID).Return([]uuid.UUID{}, nil)
	f.directory.On("ConsultantsByIDs", mock.Anything, mock.Anything).Return([]orgservice.Consultant{target}, nil)
	f.directory.On("OfficeScopeFor", mock.Anything, f.actor.id, hierarchy.RoleMaster).Return([]uuid.UUID(nil), nil)
	f.leads.On("SelectCandidates", mock.Anything, mock.Anything).Return(stock(3), nil)
	// A concurrent run drained the whole selected pool between select and claim.
	f.leads.On("ClaimForConsultant", mock.Anything, mock.Anything, target.ID, (*uuid.UUID)(nil)).Return(leadsrepo.ErrNotClaimed)

	_, err := f.svc.Distribute(context.Background(), f.campaignID, f.actor, distReq([]orgservice.Consultant{target}, 3))

	require.True(t, apperr.Is(err, apperr.KindConflict))
	f.leads.AssertNotCalled(t, "InsertHistory", mock.Anything, mock.Anything)
}

func TestDistributeFilterDefaults(t *testing.T) {
	f := newFixture(t)
	target := f.consultant()

	f.campaigns.On("GetByID", mock.Anything, f.campaignID).Return(f.activeCampaign(), nil)
	f.campaigns.On("OfficeIDs", mock.Anything, f.campaignID).Return([]uuid.UUID{}, nil)
	f.directory.On("ConsultantsByIDs", mock.Anything, mock.Anything).Return([]orgservice.Consultant{target}, nil)
	f.directory.On("OfficeScopeFor", mock.Anything, f.actor.id, hierarchy.RoleMaster).Return([]uuid.UUID(nil), nil)
	f.leads.On("SelectCandidates", mock.Anything, mock.MatchedBy(func(p leadsrepo.SelectParams) bool {
		return p.OnlyUnassigned && len(p.Statuses) == 1 && p.Statuses[0] == "NOVO"
	})).Return(stock(2), nil)
	f.leads.On("ClaimForConsultant", mock.Anything, mock.Anything, target.ID, (*uuid.UUID)(nil)).Return(nil)
	f.leads.On("InsertHistory", mock.Anything, mock.Anything).Return(nil)

	_, err := f.svc.Distribute(context.Background(), f.campaignID, f.actor, distReq([]orgservice.Consultant{target}, 2))
	require.NoError(t, err)
}

func TestDistributeFilterTogglesDisableDefaults(t *testing.T) {
	f := newFixture(t)
	target := f.consultant()
	off := false

	f.campaigns.On("GetByID", mock.Anything, f.campaignID).Return(f.activeCampaign(), nil)
	f.campaigns.On("OfficeIDs", mock.Anything, f.campaignID).Return([]uuid.UUID{}, nil)
	f.directory.On("ConsultantsByIDs", mock.Anything, mock.Anything).Return([]orgservice.Consultant{target}, nil)
	f.directory.On("OfficeScopeFor", mock.Anything, f.actor.id, hierarchy.RoleMaster).Return([]uuid.UUID(nil), nil)
	f.leads.On("SelectCandidates", mock.Anything, mock.MatchedBy(func(p leadsrepo.SelectParams) bool {
		return !p.OnlyUnassigned && p.Statuses == nil
	})).Return(stock(1), nil)
	f.leads.On("ClaimForConsultant", mock.Anything, mock.Anything, target.ID, (*uuid.UUID)(nil)).Return(nil)
	f.leads.On("InsertHistory", mock.Anything, mock.Anything).Return(nil)

	req := distReq([]orgservice.Consultant{target}, 1)
	req.Filters.OnlyNew = &off
	req.Filters.OnlyUnassigned = &off

	_, err := f.svc.Distribute(context.Background(), f.campaignID, f.actor, req)
	require.NoError(t, err)
}

func TestDistributeExplicitOfficeNarrowsSelection(t *testing.T) {
	f := newFixture(t)
	f.actor.role = string(hierarchy.RoleBusinessManager)
	target := f.consultant()
	otherOffice := uuid.New()

	f.campaigns.On("GetByID", mock.Anything, f.campaignID).Return(f.activeCampaign(), nil)
	f.campaigns.On("OfficeIDs", mock.Anything, f.campaignID).Return([]uuid.UUID{}, nil)
	f.directory.On("ConsultantsByIDs", mock.Anything, mock.Anything).Return([]orgservice.Consultant{target}, nil)
	f.directory.On("OfficeScopeFor", mock.Anything, f.actor.id, hierarchy.RoleBusinessManager).
		Return([]uuid.UUID{f.officeID, otherOffice}, nil)
	f.leads.On("SelectCandidates", mock.Anything, mock.MatchedBy(func(p leadsrepo.SelectParams) bool {
		return len(p.OfficeIDs) == 1 && p.OfficeIDs[0] == f.officeID
	})).Return(stock(1), nil)
	f.leads.On("ClaimForConsultant", mock.Anything, mock.Anything, target.ID, (*uuid.UUID)(nil)).Return(nil)
	f.leads.On("InsertHistory", mock.Anything, mock.Anything).Return(nil)

	req := distReq([]orgservice.Consultant{target}, 1)
	officeID := f.officeID.String()
	req.OfficeID = &officeID

	_, err := f.svc.Distribute(context.Background(), f.campaignID, f.actor, req)
	require.NoError(t, err)
}

func TestDistributeExplicitOfficeOutsideScopeForbidden(t *testing.T) {
	f := newFixture(t)
	f.actor.role = string(hierarchy.RoleOwner)
	target := f.consultant()

	f.campaigns.On("GetByID", mock.Anything, f.campaignID).Return(f.activeCampaign(), nil)
	f.campaigns.On("OfficeIDs", mock.Anything, f.campaignID).Return([]uuid.UUID{}, nil)
	f.directory.On("ConsultantsByIDs", mock.Anything, mock.Anything).Return([]orgservice.Consultant{target}, nil)
	f.directory.On("OfficeScopeFor", mock.Anything, f.actor.id, hierarchy.RoleOwner).
		Return([]uuid.UUID{f.officeID}, nil)

	req := distReq([]orgservice.Consultant{target}, 1)
	foreignOffice := uuid.NewString()
	req.OfficeID = &foreignOffice

	_, err := f.svc.Distribute(context.Background(), f.campaignID, f.actor, req)

	require.True(t, apperr.Is(err, apperr.KindForbidden))
	f.leads.AssertNotCalled(t, "SelectCandidates", mock.Anything, mock.Anything)
}

func TestDistributeUnknownConsultantRejected(t *testing.T) {
	f := newFixture(t)

	f.campaigns.On("GetByID", mock.Anything, f.campaignID).Return(f.activeCampaign(), nil)
	// The directory resolves nobody: wrong role, inactive, or unknown id.
	f.directory.On("ConsultantsByIDs", mock.Anything, mock.Anything).Return([]orgservice.Consultant{}, nil)

	_, err := f.svc.Distribute(context.Background(), f.campaignID, f.actor, transport.DistributeRequest{
		Allotments: []transport.AllotmentRequest{{ConsultantID: uuid.NewString(), Quantity: 2}},
	})
	require.True(t, apperr.Is(err, apperr.KindValidation))
}

// ---------------------------------------------------------------------------
// Reassign (repescagem)
// ---------------------------------------------------------------------------

func TestReassignTransfersWithOwnerPrecondition(t *testing.T) {
	f := newFixture(t)
	from := uuid.New()
	target := f.consultant()
	pool := stock(2)

	f.campaigns.On("GetByID", mock.Anything, f.campaignID).Return(f.activeCampaign(), nil)
	f.campaigns.On("OfficeIDs", mock.Anything, f.campaignID).Return([]uuid.UUID{}, nil)
	f.directory.On("ConsultantsByIDs", mock.Anything, []uuid.UUID{target.ID}).Return([]orgservice.Consultant{target}, nil)
	f.directory.On("OfficeScopeFor", mock.Anything, f.actor.id, hierarchy.RoleMaster).Return([]uuid.UUID(nil), nil)
	f.leads.On("SelectCandidates", mock.Anything, mock.MatchedBy(func(p leadsrepo.SelectParams) bool {
		return p.OwnedBy != nil && *p.OwnedBy == from && len(p.ExcludeStatuses) == 2
	})).Return(pool, nil)
	f.leads.On("ClaimForConsultant", mock.Anything, mock.Anything, target.ID, &from).Return(nil)
	f.leads.On("InsertHistory", mock.Anything, mock.MatchedBy(func(p leadsrepo.InsertHistoryParams) bool {
		return p.Action == "REPESCAGEM" && p.FromUserID != nil && *p.FromUserID == from
	})).Return(nil)

	resp, err := f.svc.Reassign(context.Background(), f.actor, transport.ReassignRequest{
		CampaignID:       f.campaignID.String(),
		FromConsultantID: ptr(from.String()),
		ToConsultantID:   target.ID.String(),
		Quantity:         2,
	})

	require.NoError(t, err)
	require.Equal(t, 2, resp.Transferred)
}

func TestReassignFromAnyCurrentOwner(t *testing.T) {
	f := newFixture(t)
	target := f.consultant()
	ownerA, ownerB := uuid.New(), uuid.New()
	pool := []leadsrepo.Candidate{
		{ID: uuid.New(), ConsultantID: &ownerA, Status: "EM_CONTATO"},
		{ID: uuid.New(), ConsultantID: &ownerB, Status: "NOVO"},
		{ID: uuid.New(), ConsultantID: &target.ID, Status: "NOVO"}, // already theirs
	}

	f.campaigns.On("GetByID", mock.Anything, f.campaignID).Return(f.activeCampaign(), nil)
	f.campaigns.On("OfficeIDs", mock.Anything, f.campaignID).Return([]uuid.UUID{}, nil)
	f.directory.On("ConsultantsByIDs", mock.Anything, []uuid.UUID{target.ID}).Return([]orgservice.Consultant{target}, nil)
	f.directory.On("OfficeScopeFor", mock.Anything, f.actor.id, hierarchy.RoleMaster).Return([]uuid.UUID(nil), nil)
	// Without a pinned source, the pool is every assigned, non-terminal lead.
	f.leads.On("SelectCandidates", mock.Anything, mock.MatchedBy(func(p leadsrepo.SelectParams) bool {
		return p.OwnedBy == nil && p.OnlyAssigned && len(p.ExcludeStatuses) == 2
	})).Return(pool, nil)
	f.leads.On("ClaimForConsultant", mock.Anything, pool[0].ID, target.ID, &ownerA).Return(nil)
	f.leads.On("ClaimForConsultant", mock.Anything, pool[1].ID, target.ID, &ownerB).Return(nil)
	f.leads.On("InsertHistory", mock.Anything, mock.Anything).Return(nil)

	resp, err := f.svc.Reassign(context.Background(), f.actor, transport.ReassignRequest{
		CampaignID:     f.campaignID.String(),
		ToConsultantID: target.ID.String(),
		Quantity:       3,
	})

	require.NoError(t, err)
	require.Equal(t, 2, resp.Transferred, "leads the target already holds stay put")
	require.Nil(t, resp.FromConsultant)
	f.leads.AssertNotCalled(t, "ClaimForConsultant", mock.Anything, pool[2].ID, mock.Anything, mock.Anything)
}

func TestReassignNoMatchNotFound(t *testing.T) {
	f := newFixture(t)
	target := f.consultant()

	f.campaigns.On("GetByID", mock.Anything, f.campaignID).Return(f.activeCampaign(), nil)
	f.campaigns.On("OfficeIDs", mock.Anything, f.campaignID).Return([]uuid.UUID{}, nil)
	f.directory.On("ConsultantsByIDs", mock.Anything, mock.Anything).Return([]orgservice.Consultant{target}, nil)
	f.directory.On("OfficeScopeFor", mock.Anything, f.actor.id, hierarchy.RoleMaster).Return([]uuid.UUID(nil), nil)
	f.leads.On("SelectCandidates", mock.Anything, mock.Anything).Return([]leadsrepo.Candidate{}, nil)

	_, err := f.svc.Reassign(context.Background(), f.actor, transport.ReassignRequest{
		CampaignID:       f.campaignID.String(),
		FromConsultantID: ptr(uuid.NewString()),
		ToConsultantID:   target.ID.String(),
		Quantity:         5,
	})
	require.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestReassignSameConsultantRejected(t *testing.T) {
	f := newFixture(t)
	same := uuid.NewString()

	_, err := f.svc.Reassign(context.Background(), f.actor, transport.ReassignRequest{
		CampaignID:       f.campaignID.String(),
		FromConsultantID: ptr(same),
		ToConsultantID:   same,
		Quantity:         1,
	})
	require.True(t, apperr.Is(err, apperr.KindValidation))
}

// ---------------------------------------------------------------------------
// Report
// ---------------------------------------------------------------------------

func TestReportCarriesFullResumo(t *testing.T) {
	f := newFixture(t)
	consultantID := uuid.New()

	f.campaigns.On("GetByID", mock.Anything, f.campaignID).Return(f.activeCampaign(), nil)
	f.leads.On("CampaignSummary", mock.Anything, f.campaignID).Return(leadsrepo.CampaignSummary{
		Total:      120,
		Estoque:    40,
		Atribuidos: 80,
		Fechados:   12,
		Perdidos:   7,
	}, nil)
	f.leads.On("ConsultantLoads", mock.Anything, f.campaignID).Return([]leadsrepo.ConsultantLoad{
		{
			ConsultantID:   consultantID,
			ConsultantName: "Ana",
			Atribuidos:     30,
			Trabalhados:    20,
			Restantes:      10,
			Fechados:       5,
			Perdidos:       3,
		},
	}, nil)

	resp, err := f.svc.Report(context.Background(), f.campaignID)

	require.NoError(t, err)
	require.Equal(t, 120, resp.Resumo.Total)
	require.Equal(t, 40, resp.Resumo.Estoque)
	require.Equal(t, 80, resp.Resumo.Atribuidos)
	require.Equal(t, 12, resp.Resumo.Fechados)
	require.Equal(t, 7, resp.Resumo.Perdidos)
	require.Len(t, resp.Loads, 1)
	require.Equal(t, 3, resp.Loads[0].Perdidos)
}
