// Package domain holds the lead lifecycle model shared by the leads and
// distribution modules.
package domain

// Status is a lead's lifecycle state.
type Status string

const (
	// StatusNovo is the initial state of an imported lead.
	StatusNovo Status = "NOVO"
	// StatusEmContato means a consultant has started working the lead.
	StatusEmContato Status = "EM_CONTATO"
	// StatusQualificado means the prospect matched the campaign's profile.
	StatusQualificado Status = "QUALIFICADO"
	// StatusProposta means a proposal was sent.
	StatusProposta Status = "PROPOSTA"
	// StatusNegociacao means terms are being negotiated.
	StatusNegociacao Status = "NEGOCIACAO"
	// StatusFechado is the terminal won state.
	StatusFechado Status = "FECHADO"
	// StatusPerdido is the terminal lost state.
	StatusPerdido Status = "PERDIDO"
)

// All lists every status in lifecycle order.
func All() []Status {
	return []Status{
		StatusNovo,
		StatusEmContato,
		StatusQualificado,
		StatusProposta,
		StatusNegociacao,
		StatusFechado,
		StatusPerdido,
	}
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	for _, known := range All() {
		if s == known {
			return true
		}
	}
	return false
}

// Terminal reports whether the lead left the working pipeline. Terminal leads
// are excluded from repescagem by default.
func (s Status) Terminal() bool {
	return s == StatusFechado || s == StatusPerdido
}
