package service

import (
	"strings"

	leadsrepo "salesops_backend/internal/leads/repository"
	"salesops_backend/platform/currency"
	"salesops_backend/platform/phone"
)

// EligibilityParams are the optional per-run lead filters. OnlyWithPhone
// accepts any non-empty phone field; IgnoreInvalidPhones additionally requires
// a number passing the dialable check.
type EligibilityParams struct {
	OnlyWithPhone       bool
	IgnoreInvalidPhones bool
	MinRevenue          *int64
	MaxRevenue          *int64
}

// oversample decides how many candidates to pull from the store for a run
// needing required leads. Filters drop candidates after selection, so the
// query over-fetches to keep a single round trip in the common case.
func oversample(required int) int {
	doubled := required * 2
	padded := required + 10
	if doubled > padded {
		return doubled
	}
	return padded
}

// FilterEligible applies the run's filters in candidate order and stops once
// required leads pass. Candidates with an unparsable revenue are excluded
// when a revenue bound is active; a lead that cannot be priced cannot be
// proven in range.
func FilterEligible(candidates []leadsrepo.Candidate, params EligibilityParams, required int) []leadsrepo.Candidate {
	eligible := make([]leadsrepo.Candidate, 0, required)
	for _, candidate := range candidates {
		if len(eligible) == required {
			break
		}
		if params.OnlyWithPhone && !hasAnyPhone(candidate) {
			continue
		}
		if params.IgnoreInvalidPhones && !hasDialablePhone(candidate) {
			continue
		}
		if !revenueInRange(candidate.Revenue, params.MinRevenue, params.MaxRevenue) {
			continue
		}
		eligible = append(eligible, candidate)
	}
	return eligible
}

func hasAnyPhone(candidate leadsrepo.Candidate) bool {
	for _, raw := range []*string{candidate.Phone1, candidate.Phone2, candidate.Phone3} {
		if raw != nil && strings.TrimSpace(*raw) != "" {
			return true
		}
	}
	return false
}

func hasDialablePhone(candidate leadsrepo.Candidate) bool {
	for _, raw := range []*string{candidate.Phone1, candidate.Phone2, candidate.Phone3} {
		if raw != nil && phone.IsDialable(*raw) {
			return true
		}
	}
	return false
}

func revenueInRange(raw *string, min, max *int64) bool {
	if min == nil && max == nil {
		return true
	}
	if raw == nil {
		return false
	}
	value, err := currency.ParseBRL(*raw)
	if err != nil {
		return false
	}
	if min != nil && value < float64(*min) {
		return false
	}
	if max != nil && value > float64(*max) {
		return false
	}
	return true
}
