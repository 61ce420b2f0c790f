package phone

import "testing"

func TestIsDialable(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  bool
	}{
		{"empty", "", false},
		{"blank", "   ", false},
		{"landline with separators", "(11) 3456-7890", true},
		{"mobile e164", "+5511987654321", true},
		{"bare digits", "11987654321", true},
		{"too short", "1234567", false},
		{"too long", "1234567890123456", false},
		{"letters only", "sem telefone", false},
		{"digits with noise", "tel: 11 98765-4321", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsDialable(tc.input); got != tc.want {
				t.Fatalf("IsDialable(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestDigitsKeepsLeadingPlus(t *testing.T) {
	if got := Digits("+55 (11) 98765-4321"); got != "+5511987654321" {
		t.Fatalf("Digits = %q", got)
	}
	if got := Digits("11 3456+7890"); got != "1134567890" {
		t.Fatalf("Digits dropped inner plus incorrectly: %q", got)
	}
}

func TestNormalizeE164FallsBackToInput(t *testing.T) {
	if got := NormalizeE164("not a phone"); got != "not a phone" {
		t.Fatalf("NormalizeE164 fallback = %q", got)
	}
	if got := NormalizeE164("  +5511987654321  "); got != "+5511987654321" {
		t.Fatalf("NormalizeE164 = %q", got)
	}
}
