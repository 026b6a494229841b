package blacklist

import "testing"

func TestNormalizeAddress(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bare address", "a@x.com", "a@x.com"},
		{"display name", `"B" <b@x.com>`, "b@x.com"},
		{"display name without quotes", "Jane Doe <jane@example.com>", "jane@example.com"},
		{"brackets only", "<c@x.com>", "c@x.com"},
		{"lone opening bracket", "<c@x.com", "<c@x.com"},
		{"lone closing bracket", "c@x.com>", "c@x.com>"},
		{"reversed brackets", ">c@x.com<", ">c@x.com<"},
		{"empty string", "", ""},
		{"empty brackets", "<>", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeAddress(tt.input); got != tt.want {
				t.Errorf("NormalizeAddress(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeAddress_Idempotent(t *testing.T) {
	inputs := []string{
		"a@x.com",
		`"B" <b@x.com>`,
		"Jane Doe <jane@example.com>",
		"<c@x.com",
		"",
	}

	for _, in := range inputs {
		once := NormalizeAddress(in)
		twice := NormalizeAddress(once)
		if once != twice {
			t.Errorf("NormalizeAddress not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}
