// Package hierarchy defines the sales-hierarchy roles shared across modules.
// Kept as a leaf package so transport, middleware, and domain services can all
// import it without pulling in repositories or handlers.
package hierarchy

// Role is a user's position in the sales hierarchy.
type Role string

const (
	// RoleMaster has unrestricted access to every office and campaign.
	RoleMaster Role = "MASTER"
	// RoleSeniorManager (Gerente Sênior) has unrestricted distribution scope.
	RoleSeniorManager Role = "GERENTE_SENIOR"
	// RoleBusinessManager (Gerente de Negócios) manages a set of offices.
	RoleBusinessManager Role = "GERENTE_NEGOCIOS"
	// RoleOwner (Proprietário) manages the consultants of a single office.
	RoleOwner Role = "PROPRIETARIO"
	// RoleConsultant (Consultor) works assigned leads and cannot distribute.
	RoleConsultant Role = "CONSULTOR"
)

// Valid reports whether the role is one of the known hierarchy roles.
func (r Role) Valid() bool {
	switch r {
	case RoleMaster, RoleSeniorManager, RoleBusinessManager, RoleOwner, RoleConsultant:
		return true
	}
	return false
}

// Unrestricted reports whether the role bypasses office scoping entirely.
func (r Role) Unrestricted() bool {
	return r == RoleMaster || r == RoleSeniorManager
}

// CanDistribute reports whether the role may initiate a distribution at all.
// Consultants are rejected before any scope or stock checks run.
func (r Role) CanDistribute() bool {
	return r.Valid() && r != RoleConsultant
}
