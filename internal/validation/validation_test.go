package validation

import "testing"

func TestRequired(t *testing.T) {
	v := make(Violations)
	Required("name", "  ", v)
	if v["name"] != "required" {
		t.Fatalf("expected required violation, got %v", v)
	}
	v = make(Violations)
	Required("name", "ok", v)
	if !v.Empty() {
		t.Fatalf("unexpected violations: %v", v)
	}
}

func TestNumericBounds(t *testing.T) {
	v := make(Violations)
	NonNegativeFloat("price", -0.01, v)
	PositiveInt("qty", 0, v)
	RangeFloat("tax", 100.5, 0, 100, v)
	if v["price"] != "must_not_be_negative" || v["qty"] != "must_be_positive" || v["tax"] != "out_of_range" {
		t.Fatalf("unexpected violations: %v", v)
	}

	v = make(Violations)
	NonNegativeFloat("price", 0, v)
	PositiveInt("qty", 1, v)
	RangeFloat("tax", 0, 0, 100, v)
	RangeFloat("tax2", 100, 0, 100, v)
	if !v.Empty() {
		t.Fatalf("boundary values must pass: %v", v)
	}
}

func TestOneOf(t *testing.T) {
	v := make(Violations)
	OneOf("type", "Devis", []string{"Devis", "Commande"}, v)
	if !v.Empty() {
		t.Fatalf("unexpected violations: %v", v)
	}
	OneOf("type", "devis", []string{"Devis", "Commande"}, v)
	if v["type"] != "invalid_value" {
		t.Fatalf("comparison must be case sensitive: %v", v)
	}
}

func TestSIRET(t *testing.T) {
	cases := map[string]bool{
		"":                true,
		"12345678900011":  true,
		"1234567890001":   false,
		"1234567890001a":  false,
		"123456789000111": false,
	}
	for value, ok := range cases {
		v := make(Violations)
		SIRET("siret", value, v)
		if ok != v.Empty() {
			t.Fatalf("SIRET(%q): violations %v", value, v)
		}
	}
}

func TestEmail(t *testing.T) {
	v := make(Violations)
	Email("email", "", v)
	Email("email2", "jean@example.com", v)
	if !v.Empty() {
		t.Fatalf("unexpected violations: %v", v)
	}
	Email("email", "not-an-email", v)
	if v["email"] != "invalid_email" {
		t.Fatalf("expected invalid_email: %v", v)
	}
}
