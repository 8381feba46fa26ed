package search

import "testing"

func TestScore(t *testing.T) {
	tests := []struct {
		name      string
		candidate string
		term      string
		fuzzy     bool
		expected  float64
	}{
		{"exact", "pump", "pump", false, 100},
		{"exact after folding", "  PUMP ", "pump", false, 100},
		{"exact after diacritics", "Café", "cafe", false, 100},
		{"contains", "pump station", "pump", false, 80},
		{"contains mid-word", "riverside", "rivers", false, 80},
		{"no match without fuzzy", "valve", "pump", false, 0},
		{"empty candidate", "", "pump", true, 0},
		{"empty term", "pump", "", true, 0},
		{"both empty", "", "", true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.candidate, tt.term, tt.fuzzy)
			if got != tt.expected {
				t.Errorf("Score(%q, %q, %v) = %v, want %v", tt.candidate, tt.term, tt.fuzzy, got, tt.expected)
			}
		})
	}
}

func TestScoreFuzzyTier(t *testing.T) {
	// "pumps" vs "stump": maxLen 5, distance 3 -> (5-3)/5*100 = 40
	if got := Score("stump", "pumps", true); got != 40 {
		t.Errorf("fuzzy score = %v, want 40", got)
	}
	// Completely different strings floor at 0, never negative
	if got := Score("xyz", "abcdefghij", true); got != 0 {
		t.Errorf("disjoint fuzzy score = %v, want 0", got)
	}
}

func TestScoreBounds(t *testing.T) {
	candidates := []string{"", "a", "pump", "pump station alpha", "Zürich"}
	terms := []string{"", "p", "pump", "stat", "zurich", "completelyunrelated"}
	for _, c := range candidates {
		for _, term := range terms {
			for _, fuzzy := range []bool{false, true} {
				got := Score(c, term, fuzzy)
				if got < 0 || got > 100 {
					t.Errorf("Score(%q, %q, %v) = %v out of [0,100]", c, term, fuzzy, got)
				}
			}
		}
	}
}
