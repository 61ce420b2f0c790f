package service

import (
	"testing"

	leadsrepo "salesops_backend/internal/leads/repository"
)

func ptr(s string) *string { return &s }

func int64ptr(v int64) *int64 { return &v }

func TestFilterEligibleOnlyWithPhone(t *testing.T) {
	pool := []leadsrepo.Candidate{
		{Phone1: ptr("11987654321")},
		{Phone1: ptr("abc"), Phone2: nil}, // garbage, but present
		{Phone2: ptr("   ")},
		{},
	}

	eligible := FilterEligible(pool, EligibilityParams{OnlyWithPhone: true}, 10)
	if len(eligible) != 2 {
		t.Fatalf("expected 2 candidates with any phone, got %d", len(eligible))
	}
}

func TestFilterEligibleIgnoreInvalidPhones(t *testing.T) {
	pool := []leadsrepo.Candidate{
		{Phone1: ptr("11987654321")},
		{Phone1: ptr("abc"), Phone2: nil},
		{Phone2: ptr("+5511912345678")},
		{Phone3: ptr("123")}, // too short for the 8-15 digit pattern
		{},
	}

	eligible := FilterEligible(pool, EligibilityParams{IgnoreInvalidPhones: true}, 10)
	if len(eligible) != 2 {
		t.Fatalf("expected 2 dialable candidates, got %d", len(eligible))
	}
}

func TestFilterEligibleRevenueRange(t *testing.T) {
	pool := []leadsrepo.Candidate{
		{Revenue: ptr("R$ 50.000,00")},
		{Revenue: ptr("1.250.000,00")},
		{Revenue: ptr("n/d")},
		{Revenue: nil},
	}

	eligible := FilterEligible(pool, EligibilityParams{
		MinRevenue: int64ptr(100_000),
		MaxRevenue: int64ptr(2_000_000),
	}, 10)

	if len(eligible) != 1 {
		t.Fatalf("expected only the 1.25M candidate, got %d", len(eligible))
	}
	if eligible[0].Revenue == nil || *eligible[0].Revenue != "1.250.000,00" {
		t.Fatal("wrong candidate survived the revenue filter")
	}
}

func TestFilterEligibleNoBoundsKeepsUnpricedLeads(t *testing.T) {
	pool := []leadsrepo.Candidate{{Revenue: nil}, {Revenue: ptr("n/d")}}
	eligible := FilterEligible(pool, EligibilityParams{}, 10)
	if len(eligible) != 2 {
		t.Fatal("without revenue bounds, unpriced leads must pass")
	}
}

func TestFilterEligibleStopsAtRequired(t *testing.T) {
	pool := make([]leadsrepo.Candidate, 0, 20)
	for i := 0; i < 20; i++ {
		pool = append(pool, leadsrepo.Candidate{Phone1: ptr("11987654321")})
	}

	eligible := FilterEligible(pool, EligibilityParams{IgnoreInvalidPhones: true}, 5)
	if len(eligible) != 5 {
		t.Fatalf("expected filter to stop at 5, got %d", len(eligible))
	}
}

func TestOversample(t *testing.T) {
	tests := []struct {
		required int
		want     int
	}{
		{1, 11},
		{5, 15},
		{10, 20},
		{100, 200},
	}
	for _, tt := range tests {
		if got := oversample(tt.required); got != tt.want {
			t.Fatalf("oversample(%d) = %d, want %d", tt.required, got, tt.want)
		}
	}
}
