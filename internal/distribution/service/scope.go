package service

import (
	"github.com/google/uuid"

	"salesops_backend/internal/organization/hierarchy"
	orgservice "salesops_backend/internal/organization/service"
	"salesops_backend/platform/apperr"
)

// Authorize decides whether an actor may distribute to the given consultants.
// actorScope is the set of offices the actor controls, nil meaning all of
// them. campaignOffices is the campaign's office targeting, empty meaning the
// campaign is open to every office. Pure so it can be tested without a
// database.
func Authorize(role hierarchy.Role, actorScope []uuid.UUID, campaignOffices []uuid.UUID, consultants []orgservice.Consultant) error {
	if !role.CanDistribute() {
		return apperr.Unauthorized("role cannot distribute leads")
	}

	for _, consultant := range consultants {
		if consultant.OfficeID == nil {
			return apperr.Forbidden("consultant " + consultant.ID.String() + " has no office")
		}
		if actorScope != nil && !containsOffice(actorScope, *consultant.OfficeID) {
			return apperr.Forbidden("consultant " + consultant.ID.String() + " is outside your scope")
		}
		if len(campaignOffices) > 0 && !containsOffice(campaignOffices, *consultant.OfficeID) {
			return apperr.Forbidden("consultant " + consultant.ID.String() + " is outside the campaign's offices")
		}
	}
	return nil
}

// EffectiveOffices intersects the actor's scope with the campaign targeting
// for candidate selection. A nil result means no office restriction.
func EffectiveOffices(actorScope, campaignOffices []uuid.UUID) []uuid.UUID {
	switch {
	case actorScope == nil && len(campaignOffices) == 0:
		return nil
	case actorScope == nil:
		return campaignOffices
	case len(campaignOffices) == 0:
		return actorScope
	}

	intersection := make([]uuid.UUID, 0, len(actorScope))
	for _, office := range actorScope {
		if containsOffice(campaignOffices, office) {
			intersection = append(intersection, office)
		}
	}
	return intersection
}

func containsOffice(offices []uuid.UUID, office uuid.UUID) bool {
	for _, candidate := range offices {
		if candidate == office {
			return true
		}
	}
	return false
}
