package hierarchy

import "testing"

func TestRoleValid(t *testing.T) {
	for _, role := range []Role{RoleMaster, RoleSeniorManager, RoleBusinessManager, RoleOwner, RoleConsultant} {
		if !role.Valid() {
			t.Fatalf("expected %s to be valid", role)
		}
	}
	if Role("ESTAGIARIO").Valid() {
		t.Fatal("unknown role must be invalid")
	}
}

func TestCanDistribute(t *testing.T) {
	if RoleConsultant.CanDistribute() {
		t.Fatal("consultant must not initiate distribution")
	}
	if Role("").CanDistribute() {
		t.Fatal("empty role must not initiate distribution")
	}
	for _, role := range []Role{RoleMaster, RoleSeniorManager, RoleBusinessManager, RoleOwner} {
		if !role.CanDistribute() {
			t.Fatalf("expected %s to distribute", role)
		}
	}
}

func TestUnrestricted(t *testing.T) {
	if !RoleMaster.Unrestricted() || !RoleSeniorManager.Unrestricted() {
		t.Fatal("master and senior manager are unrestricted")
	}
	if RoleBusinessManager.Unrestricted() || RoleOwner.Unrestricted() {
		t.Fatal("office-bound roles are restricted")
	}
}
