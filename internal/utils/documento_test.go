package utils

import "testing"

func TestValidateCPF(t *testing.T) {
	cases := []struct {
		in    string
		valid bool
	}{
		{"529.982.247-25", true},
		{"52998224725", true},
		{"529.982.247-26", false}, // bad check digit
		{"111.111.111-11", false}, // repeated digits
		{"123", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := ValidateCPF(tc.in); got != tc.valid {
			t.Errorf("ValidateCPF(%q) = %v, want %v", tc.in, got, tc.valid)
		}
	}
}

func TestValidateCNPJ(t *testing.T) {
	cases := []struct {
		in    string
		valid bool
	}{
		{"11.222.333/0001-81", true},
		{"11222333000181", true},
		{"00.000.000/0001-91", true}, // valid despite leading zeros
		{"11.222.333/0001-80", false},
		{"11.111.111/1111-11", false}, // repeated digits
		{"11222333", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := ValidateCNPJ(tc.in); got != tc.valid {
			t.Errorf("ValidateCNPJ(%q) = %v, want %v", tc.in, got, tc.valid)
		}
	}
}
