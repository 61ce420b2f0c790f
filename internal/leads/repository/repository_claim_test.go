package repository

import (
	"strings"
	"testing"
)

// The claim query is the concurrency boundary of the whole distribution flow,
// so its shape is pinned here: conditional on the expected owner, appending
// the displaced owner to the history array in the same statement.
func TestClaimLeadQueryShape(t *testing.T) {
	fragments := []string{
		"UPDATE leads",
		"consultant_id IS NOT DISTINCT FROM $3",
		"array_append(previous_consultants, consultant_id)",
		"RETURNING id",
	}
	for _, fragment := range fragments {
		if !strings.Contains(claimLeadQuery, fragment) {
			t.Fatalf("claim query missing %q", fragment)
		}
	}
	if strings.Contains(claimLeadQuery, "SELECT") {
		t.Fatal("claim must be a single update, not a read then write")
	}
}

func TestSelectCandidatesQueryShape(t *testing.T) {
	fragments := []string{
		"ORDER BY created_at ASC",
		"($2::text[] IS NULL OR status = ANY($2))",
		"(NOT $5::bool OR consultant_id IS NOT NULL)",
		"($7::uuid[] IS NULL OR office_id = ANY($7))",
		"LIMIT $8",
	}
	for _, fragment := range fragments {
		if !strings.Contains(selectCandidatesQuery, fragment) {
			t.Fatalf("candidate query missing %q", fragment)
		}
	}
}
