package service

import (
	"testing"

	"github.com/google/uuid"

	leadsrepo "salesops_backend/internal/leads/repository"
)

func candidates(n int) []leadsrepo.Candidate {
	out := make([]leadsrepo.Candidate, n)
	for i := range out {
		out[i] = leadsrepo.Candidate{ID: uuid.New()}
	}
	return out
}

func TestPartitionFillsQuotasInOrder(t *testing.T) {
	eligible := candidates(10)
	first, second := uuid.New(), uuid.New()

	allotments := Partition(eligible, []Quota{
		{ConsultantID: first, Quantity: 6},
		{ConsultantID: second, Quantity: 4},
	})

	if len(allotments) != 2 {
		t.Fatalf("expected 2 allotments, got %d", len(allotments))
	}
	if len(allotments[0].LeadIDs) != 6 || len(allotments[1].LeadIDs) != 4 {
		t.Fatalf("expected 6/4 split, got %d/%d", len(allotments[0].LeadIDs), len(allotments[1].LeadIDs))
	}
	if allotments[0].LeadIDs[0] != eligible[0].ID {
		t.Fatal("first quota must receive the oldest leads")
	}
	if allotments[1].LeadIDs[0] != eligible[6].ID {
		t.Fatal("second quota must continue where the first stopped")
	}
}

func TestPartitionNeverAssignsALeadTwice(t *testing.T) {
	eligible := candidates(9)
	allotments := Partition(eligible, []Quota{
		{ConsultantID: uuid.New(), Quantity: 3},
		{ConsultantID: uuid.New(), Quantity: 3},
		{ConsultantID: uuid.New(), Quantity: 3},
	})

	seen := make(map[uuid.UUID]bool)
	for _, allotment := range allotments {
		for _, id := range allotment.LeadIDs {
			if seen[id] {
				t.Fatalf("lead %s assigned twice", id)
			}
			seen[id] = true
		}
	}
	if len(seen) != 9 {
		t.Fatalf("expected all 9 leads assigned, got %d", len(seen))
	}
}

func TestPartitionNeverExceedsQuota(t *testing.T) {
	eligible := candidates(50)
	allotments := Partition(eligible, []Quota{
		{ConsultantID: uuid.New(), Quantity: 5},
		{ConsultantID: uuid.New(), Quantity: 2},
	})

	for _, allotment := range allotments {
		if len(allotment.LeadIDs) > allotment.Requested {
			t.Fatalf("allotment exceeded quota: %d > %d", len(allotment.LeadIDs), allotment.Requested)
		}
	}
}

func TestPartitionShortStockFillsEarlierQuotasFirst(t *testing.T) {
	// 7 eligible leads against 5+5 requested: the first consultant gets a
	// full quota, the second gets the remainder.
	eligible := candidates(7)
	allotments := Partition(eligible, []Quota{
		{ConsultantID: uuid.New(), Quantity: 5},
		{ConsultantID: uuid.New(), Quantity: 5},
	})

	if len(allotments[0].LeadIDs) != 5 {
		t.Fatalf("first quota should be full, got %d", len(allotments[0].LeadIDs))
	}
	if len(allotments[1].LeadIDs) != 2 {
		t.Fatalf("second quota should get the remainder, got %d", len(allotments[1].LeadIDs))
	}
}

func TestPartitionEmptyStock(t *testing.T) {
	allotments := Partition(nil, []Quota{{ConsultantID: uuid.New(), Quantity: 3}})
	if len(allotments) != 1 || len(allotments[0].LeadIDs) != 0 {
		t.Fatal("empty stock must yield empty allotments, not fewer allotments")
	}
}
