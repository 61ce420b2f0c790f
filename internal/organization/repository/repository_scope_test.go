package repository

import (
	"strings"
	"testing"
)

func TestConsultantLookupIsRoleScoped(t *testing.T) {
	query := strings.ToLower(listConsultantsByIDsQuery)

	requiredFragments := []string{
		"role = 'consultor'",
		"active = true",
		"id = any($1)",
	}

	for _, fragment := range requiredFragments {
		if !strings.Contains(query, fragment) {
			t.Fatalf("expected consultant lookup fragment %q to be present", fragment)
		}
	}
}

func TestManagedOfficesQueryUsesBusinessManagerColumn(t *testing.T) {
	query := strings.ToLower(listOfficesManagedByQuery)

	if !strings.Contains(query, "business_manager_id = $1") {
		t.Fatal("managed offices query must filter by business_manager_id")
	}
	if strings.Contains(query, "owner_id") {
		t.Fatal("managed offices query must not mix in ownership")
	}
}

func TestOwnedOfficesQueryUsesOwnerColumn(t *testing.T) {
	query := strings.ToLower(listOfficesOwnedByQuery)

	if !strings.Contains(query, "owner_id = $1") {
		t.Fatal("owned offices query must filter by owner_id")
	}
}
