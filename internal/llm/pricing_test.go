package llm

import "testing"

func TestLookupCost(t *testing.T) {
	tests := []struct {
		model string
		want  *ModelCost
	}{
		{"gpt-4o-mini", &ModelCost{0.15, 0.6}},
		{"gpt-4o-mini-2024-07-18", &ModelCost{0.15, 0.6}},
		{"gpt-4o-2024-08-06", &ModelCost{2.5, 10}},
		{"gemini-2.0-flash", &ModelCost{0.1, 0.4}},
		{"mock", nil},
		{"gpt-4ox", nil},
	}
	for _, tt := range tests {
		got := LookupCost(tt.model)
		if (got == nil) != (tt.want == nil) {
			t.Fatalf("LookupCost(%q) = %v, want %v", tt.model, got, tt.want)
		}
		if got != nil && *got != *tt.want {
			t.Errorf("LookupCost(%q) = %+v, want %+v", tt.model, *got, *tt.want)
		}
	}
}

func TestModelCost_Cost(t *testing.T) {
	c := ModelCost{InputPerMTok: 2, OutputPerMTok: 8}
	got := c.Cost(500_000, 250_000)
	if got != 3 {
		t.Fatalf("expected 3, got %v", got)
	}
}
