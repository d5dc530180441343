package recorder

import (
	"path/filepath"
	"testing"

	"RiskCockpit/internal/model"
)

func TestSQLiteRecorder_RoundTrip(t *testing.T) {
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer r.Close()

	err = r.RecordSettlement(&SettlementRecord{
		SessionID: "s1",
		Settlement: model.Settlement{
			Team: "alpha", Round: 1, Scenario: "A",
			RiskIndex: 1.5, LaggedRisk: 2.5, Receivables: 1102.4,
			Revenue: 142.2, Profit: 36.3, LossRate: 0.55,
			ProvisionRate: 1.31, ROE: 21.0, RAROC: 22.5,
			CapitalRatio: 16.1, EconomicCapital: 146.25,
		},
	})
	if err != nil {
		t.Fatalf("record settlement: %v", err)
	}

	err = r.RecordScore(&ScoreRecord{
		SessionID: "s1", Team: "alpha", Score: -9.7,
		RAROC: -5.4, MeanROE: -19.8, Archetype: "Rescued Zombie",
		CapitalRatio: 9.0, Constrained: true,
	})
	if err != nil {
		t.Fatalf("record score: %v", err)
	}

	var rounds int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM settlements WHERE session_id = 's1'").Scan(&rounds); err != nil {
		t.Fatalf("count settlements: %v", err)
	}
	if rounds != 1 {
		t.Errorf("expected 1 settlement row, got %d", rounds)
	}

	var constrained int
	if err := r.db.QueryRow("SELECT constrained FROM final_scores WHERE team = 'alpha'").Scan(&constrained); err != nil {
		t.Fatalf("query score: %v", err)
	}
	if constrained != 1 {
		t.Errorf("expected constrained flag stored as 1, got %d", constrained)
	}
}

func TestSQLiteRecorder_MigrateIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	for i := 0; i < 2; i++ {
		r, err := NewSQLiteRecorder(path)
		if err != nil {
			t.Fatalf("open %d: %v", i, err)
		}
		if err := r.Close(); err != nil {
			t.Fatalf("close %d: %v", i, err)
		}
	}
}
