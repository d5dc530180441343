package timeline

import (
	"errors"
	"testing"

	"RiskCockpit/internal/config"
)

func testBands() []config.ScenarioBand {
	return []config.ScenarioBand{
		{ID: "A", Name: "Expansion", FromRound: 1, ToRound: 3, Severity: 0.8, TailWeight: 0.3, MacroGrowth: 1.04, ProvisionMultiplier: 1.1},
		{ID: "B", Name: "Late Cycle", FromRound: 4, ToRound: 6, Severity: 1.2, TailWeight: 0.8, MacroGrowth: 1.04, ProvisionMultiplier: 1.1},
		{ID: "C", Name: "Shock", FromRound: 7, ToRound: 9, Severity: 2.2, TailWeight: 1.5, MacroGrowth: 0.85, ProvisionMultiplier: 1.8},
	}
}

func TestScenarioFor_AllRounds(t *testing.T) {
	tl := New(testBands())
	tests := []struct {
		round int
		id    string
	}{
		{1, "A"}, {2, "A"}, {3, "A"},
		{4, "B"}, {5, "B"}, {6, "B"},
		{7, "C"}, {8, "C"}, {9, "C"},
	}
	for _, tt := range tests {
		sc, err := tl.ScenarioFor(tt.round)
		if err != nil {
			t.Fatalf("round %d: unexpected error: %v", tt.round, err)
		}
		if sc.ID != tt.id {
			t.Errorf("round %d: expected scenario %s, got %s", tt.round, tt.id, sc.ID)
		}
	}
}

func TestScenarioFor_BandEdges(t *testing.T) {
	tl := New(testBands())
	a3, _ := tl.ScenarioFor(3)
	b4, _ := tl.ScenarioFor(4)
	if a3.ID == b4.ID {
		t.Errorf("rounds 3 and 4 should cross a band boundary, both got %s", a3.ID)
	}
	if b4.Severity <= a3.Severity {
		t.Errorf("later band should be more severe: %f vs %f", b4.Severity, a3.Severity)
	}
}

func TestScenarioFor_InvalidRounds(t *testing.T) {
	tl := New(testBands())
	for _, round := range []int{0, -1, 10, 100} {
		if _, err := tl.ScenarioFor(round); !errors.Is(err, ErrInvalidRound) {
			t.Errorf("round %d: expected ErrInvalidRound, got %v", round, err)
		}
	}
}
