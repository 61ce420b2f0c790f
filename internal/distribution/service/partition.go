package service

import (
	"github.com/google/uuid"

	leadsrepo "salesops_backend/internal/leads/repository"
)

// Quota is one consultant's requested share of a run.
type Quota struct {
	ConsultantID uuid.UUID
	Quantity     int
}

// Allotment is the planned assignment of concrete leads to one consultant.
type Allotment struct {
	ConsultantID uuid.UUID
	Requested    int
	LeadIDs      []uuid.UUID
}

// Partition splits the eligible leads across the quotas in request order.
// Each lead lands in exactly one allotment, no allotment exceeds its quota,
// and when stock runs short the earlier quotas are filled first. Pure; the
// committer is the only place that touches the database.
func Partition(eligible []leadsrepo.Candidate, quotas []Quota) []Allotment {
	allotments := make([]Allotment, 0, len(quotas))
	cursor := 0
	for _, quota := range quotas {
		allotment := Allotment{
			ConsultantID: quota.ConsultantID,
			Requested:    quota.Quantity,
			LeadIDs:      make([]uuid.UUID, 0, quota.Quantity),
		}
		for len(allotment.LeadIDs) < quota.Quantity && cursor < len(eligible) {
			allotment.LeadIDs = append(allotment.LeadIDs, eligible[cursor].ID)
			cursor++
		}
		allotments = append(allotments, allotment)
	}
	return allotments
}
