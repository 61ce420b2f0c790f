package service

import (
	"testing"

	"github.com/google/uuid"

	"salesops_backend/internal/organization/hierarchy"
	orgservice "salesops_backend/internal/organization/service"
	"salesops_backend/platform/apperr"
)

func consultantIn(office uuid.UUID) orgservice.Consultant {
	return orgservice.Consultant{ID: uuid.New(), OfficeID: &office}
}

func TestAuthorizeByRole(t *testing.T) {
	office := uuid.New()
	targets := []orgservice.Consultant{consultantIn(office)}

	tests := []struct {
		role    hierarchy.Role
		scope   []uuid.UUID
		allowed bool
	}{
		{hierarchy.RoleMaster, nil, true},
		{hierarchy.RoleSeniorManager, nil, true},
		{hierarchy.RoleBusinessManager, []uuid.UUID{office}, true},
		{hierarchy.RoleOwner, []uuid.UUID{office}, true},
		{hierarchy.RoleConsultant, nil, false},
		{hierarchy.Role("INVALIDO"), nil, false},
	}

	for _, tt := range tests {
		err := Authorize(tt.role, tt.scope, nil, targets)
		if tt.allowed && err != nil {
			t.Fatalf("%s should be allowed, got %v", tt.role, err)
		}
		// Roles that may never distribute are rejected as unauthenticated-
		// for-this-surface, before any scope reasoning.
		if !tt.allowed && !apperr.Is(err, apperr.KindUnauthorized) {
			t.Fatalf("%s should be unauthorized, got %v", tt.role, err)
		}
	}
}

func TestAuthorizeScopeViolation(t *testing.T) {
	myOffice, otherOffice := uuid.New(), uuid.New()
	outsider := []orgservice.Consultant{consultantIn(otherOffice)}

	err := Authorize(hierarchy.RoleOwner, []uuid.UUID{myOffice}, nil, outsider)
	if !apperr.Is(err, apperr.KindForbidden) {
		t.Fatalf("owner distributing outside their office must be forbidden, got %v", err)
	}
}

func TestAuthorizeCampaignTargeting(t *testing.T) {
	targeted, other := uuid.New(), uuid.New()
	inTarget := []orgservice.Consultant{consultantIn(targeted)}
	outOfTarget := []orgservice.Consultant{consultantIn(other)}

	if err := Authorize(hierarchy.RoleMaster, nil, []uuid.UUID{targeted}, inTarget); err != nil {
		t.Fatalf("consultant inside campaign offices must pass, got %v", err)
	}
	err := Authorize(hierarchy.RoleMaster, nil, []uuid.UUID{targeted}, outOfTarget)
	if !apperr.Is(err, apperr.KindForbidden) {
		t.Fatalf("consultant outside campaign offices must be forbidden, got %v", err)
	}
}

func TestAuthorizeOfficelessConsultant(t *testing.T) {
	err := Authorize(hierarchy.RoleMaster, nil, nil, []orgservice.Consultant{{ID: uuid.New()}})
	if !apperr.Is(err, apperr.KindForbidden) {
		t.Fatalf("consultant without an office must be rejected, got %v", err)
	}
}

func TestEffectiveOffices(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()

	if got := EffectiveOffices(nil, nil); got != nil {
		t.Fatal("unrestricted actor and open campaign must mean no restriction")
	}
	if got := EffectiveOffices(nil, []uuid.UUID{a}); len(got) != 1 || got[0] != a {
		t.Fatal("unrestricted actor must inherit the campaign targeting")
	}
	if got := EffectiveOffices([]uuid.UUID{a, b}, nil); len(got) != 2 {
		t.Fatal("open campaign must inherit the actor scope")
	}

	got := EffectiveOffices([]uuid.UUID{a, b}, []uuid.UUID{b, c})
	if len(got) != 1 || got[0] != b {
		t.Fatalf("expected intersection {b}, got %v", got)
	}

	if got := EffectiveOffices([]uuid.UUID{a}, []uuid.UUID{c}); len(got) != 0 || got == nil {
		t.Fatal("disjoint scopes must produce an empty, non-nil restriction")
	}
}
