package domain

import "testing"

func TestStatusValid(t *testing.T) {
	for _, status := range All() {
		if !status.Valid() {
			t.Fatalf("expected %s to be valid", status)
		}
	}
	if Status("CONGELADO").Valid() {
		t.Fatal("unknown status must be invalid")
	}
}

func TestTerminal(t *testing.T) {
	if !StatusFechado.Terminal() || !StatusPerdido.Terminal() {
		t.Fatal("fechado and perdido are terminal")
	}
	for _, status := range []Status{StatusNovo, StatusEmContato, StatusQualificado, StatusProposta, StatusNegociacao} {
		if status.Terminal() {
			t.Fatalf("%s must not be terminal", status)
		}
	}
}
