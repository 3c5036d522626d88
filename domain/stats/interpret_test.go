package stats

import "testing"

func TestInterpretCramersV(t *testing.T) {
	cases := []struct {
		strength float64
		want     string
	}{
		{0.05, "Very weak"},
		{0.25, "Weak"},
		{0.45, "Moderate"},
		{0.65, "Strong"},
		{0.85, "Very strong"},
		// Boundary values fall into the upper band.
		{0.1, "Weak"},
		{0.3, "Moderate"},
		{0.5, "Strong"},
		{0.7, "Very strong"},
		{0.0, "Very weak"},
		{1.0, "Very strong"},
	}
	for _, tc := range cases {
		if got := InterpretCramersV(tc.strength); got != tc.want {
			t.Errorf("InterpretCramersV(%v) = %q, want %q", tc.strength, got, tc.want)
		}
	}
}

func TestInterpretModelAccuracy(t *testing.T) {
	cases := []struct {
		accuracy float64
		want     string
	}{
		{0.55, "Poor"},
		{0.65, "Fair"},
		{0.75, "Good"},
		{0.85, "Very good"},
		{0.95, "Excellent"},
		{0.6, "Fair"},
		{0.9, "Excellent"},
	}
	for _, tc := range cases {
		if got := InterpretModelAccuracy(tc.accuracy); got != tc.want {
			t.Errorf("InterpretModelAccuracy(%v) = %q, want %q", tc.accuracy, got, tc.want)
		}
	}
}
