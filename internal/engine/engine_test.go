package engine

import (
	"math"
	"path/filepath"
	"testing"

	"RiskCockpit/internal/config"
	"RiskCockpit/internal/model"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	return cfg
}

func testLedger(cfg *config.Config) *model.Ledger {
	s := cfg.Seed
	return model.NewLedger("alpha", s.Receivables, s.PrimeShare, s.CapitalRatio,
		s.RiskIndex, s.LossRate, s.ProvisionRate, s.ROE,
		cfg.Segments.PrimeWeight, cfg.Segments.SubPrimeWeight)
}

func scenarioA() model.Scenario {
	return model.Scenario{ID: "A", Name: "Expansion", Severity: 0.8, TailWeight: 0.3, MacroGrowth: 1.04, ProvisionMultiplier: 1.1}
}

func scenarioC() model.Scenario {
	return model.Scenario{ID: "C", Name: "Shock", Severity: 2.2, TailWeight: 1.5, MacroGrowth: 0.85, ProvisionMultiplier: 1.8}
}

func closeTo(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9*(1+math.Abs(b))
}

func TestSettle_FirstRoundReference(t *testing.T) {
	cfg := testConfig(t)
	e := New(cfg)
	l := testLedger(cfg)

	s := e.Settle(l, model.DefaultDecision(), scenarioA(), 1)

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"risk index", s.RiskIndex, 1.4868000000000001},
		{"lagged risk", s.LaggedRisk, 2.5},
		{"receivables", s.Receivables, 1102.4},
		{"loss rate", s.LossRate, 0.55},
		{"provision rate", s.ProvisionRate, 1.3083840000000002},
		{"profit", s.Profit, 36.28677478400001},
		{"capital ratio", s.CapitalRatio, 16.075580996613446},
		{"roe", s.ROE, 21.000898262822457},
		{"raroc", s.RAROC, 22.50677606837607},
	}
	for _, tt := range tests {
		if !closeTo(tt.got, tt.want) {
			t.Errorf("%s: expected %.15f, got %.15f", tt.name, tt.want, tt.got)
		}
	}
	if s.CapitalInjected != 0 {
		t.Errorf("healthy first round must not trigger a rescue, injected %f", s.CapitalInjected)
	}
}

func TestSettle_Deterministic(t *testing.T) {
	cfg := testConfig(t)
	e := New(cfg)
	a, b := testLedger(cfg), testLedger(cfg)
	dec := model.DefaultDecision()

	sa := e.Settle(a, dec, scenarioA(), 1)
	sb := e.Settle(b, dec, scenarioA(), 1)
	if sa != sb {
		t.Errorf("identical inputs must settle identically:\n%+v\n%+v", sa, sb)
	}
}

// Losses in round n come from round n-1's risk-taking: changing this round's
// risk controls must not move this round's loss rate, only the next one's.
func TestSettle_OneRoundLag(t *testing.T) {
	cfg := testConfig(t)
	e := New(cfg)

	timid := model.DefaultDecision()
	timid.Volume = 1
	timid.Line = model.LineConservative
	timid.Upsell = 1

	bold := model.DefaultDecision()
	bold.Volume = 5
	bold.Line = model.LineAggressive
	bold.Upsell = 5

	lt, lb := testLedger(cfg), testLedger(cfg)
	st1 := e.Settle(lt, timid, scenarioA(), 1)
	sb1 := e.Settle(lb, bold, scenarioA(), 1)
	if st1.LossRate != sb1.LossRate {
		t.Fatalf("round 1 losses must both come from the seed risk: %f vs %f", st1.LossRate, sb1.LossRate)
	}
	if st1.RiskIndex >= sb1.RiskIndex {
		t.Fatalf("bold vector must index more risk: %f vs %f", st1.RiskIndex, sb1.RiskIndex)
	}

	// Shock severity keeps the timid book on the loss floor while the bold
	// book's inherited risk clears it.
	neutral := model.DefaultDecision()
	st2 := e.Settle(lt, neutral, scenarioC(), 2)
	sb2 := e.Settle(lb, neutral, scenarioC(), 2)
	if st2.LaggedRisk != st1.RiskIndex || sb2.LaggedRisk != sb1.RiskIndex {
		t.Fatal("round 2 must charge round 1's settled risk index")
	}
	if st2.LossRate >= sb2.LossRate {
		t.Errorf("round 1 risk appetite must surface in round 2 losses: %f vs %f", st2.LossRate, sb2.LossRate)
	}
}

func TestSettle_RescueLandsOnFloor(t *testing.T) {
	cfg := testConfig(t)
	e := New(cfg)
	l := testLedger(cfg)
	l.Equity = 40 // ~4.1% of seed RWA, doomed this round

	s := e.Settle(l, model.DefaultDecision(), scenarioC(), 1)
	if s.CapitalInjected <= 0 {
		t.Fatal("expected a rescue injection")
	}
	if l.CapitalRatio != cfg.Solvency.Floor {
		t.Errorf("post-rescue ratio must sit exactly on the floor, got %f", l.CapitalRatio)
	}
	if !l.Constrained {
		t.Error("rescued ledger must be constrained")
	}
	rwa := l.RWA(cfg.Segments.PrimeWeight, cfg.Segments.SubPrimeWeight)
	if !closeTo(l.Equity/rwa*100, cfg.Solvency.Floor) {
		t.Errorf("injected equity must back exactly the floor, ratio %f", l.Equity/rwa*100)
	}
}

// Once constrained, always constrained: benign rounds do not lift the regime
// even when the ratio recovers well above the floor.
func TestSettle_ConstrainedIsMonotone(t *testing.T) {
	cfg := testConfig(t)
	e := New(cfg)
	l := testLedger(cfg)
	l.Equity = 40

	e.Settle(l, model.DefaultDecision(), scenarioC(), 1)
	if !l.Constrained {
		t.Fatal("setup: expected a rescue in round 1")
	}
	for round := 2; round <= 5; round++ {
		e.Settle(l, model.DefaultDecision(), scenarioA(), round)
		if !l.Constrained {
			t.Fatalf("round %d: constrained flag must never clear", round)
		}
	}
}

func TestSettle_ConstrainedOverridesDecision(t *testing.T) {
	cfg := testConfig(t)
	e := New(cfg)
	l := testLedger(cfg)
	l.Constrained = true

	bold := model.DefaultDecision()
	bold.Volume = 5
	bold.Line = model.LineAggressive
	e.Settle(l, bold, scenarioA(), 1)

	if l.Decisions[1] != model.ConservativeDecision() {
		t.Errorf("constrained team must settle the conservative vector, got %+v", l.Decisions[1])
	}
}

func TestSettle_ConstrainedUsagePenalty(t *testing.T) {
	cfg := testConfig(t)
	e := New(cfg)
	l := testLedger(cfg)
	l.Constrained = true

	s := e.Settle(l, model.DefaultDecision(), scenarioA(), 1)
	rwa := l.RWA(cfg.Segments.PrimeWeight, cfg.Segments.SubPrimeWeight)
	want := rwa * cfg.Engine.EconomicCapitalRate * (s.LaggedRisk / 2) * cfg.Engine.ConstrainedUsagePenalty
	if !closeTo(s.EconomicCapital, want) {
		t.Errorf("expected penalized usage %f, got %f", want, s.EconomicCapital)
	}
}

func TestSettle_CumulativeUsageNonDecreasing(t *testing.T) {
	cfg := testConfig(t)
	e := New(cfg)
	l := testLedger(cfg)

	prev := 0.0
	for round := 1; round <= 6; round++ {
		sc := scenarioA()
		if round > 3 {
			sc = scenarioC()
		}
		e.Settle(l, model.DefaultDecision(), sc, round)
		if l.CumulativeCapitalUsage <= prev {
			t.Fatalf("round %d: cumulative usage must strictly grow, %f -> %f", round, prev, l.CumulativeCapitalUsage)
		}
		prev = l.CumulativeCapitalUsage
	}
}

func TestSettle_EmptyBookStaysFinite(t *testing.T) {
	cfg := testConfig(t)
	e := New(cfg)
	l := testLedger(cfg)
	l.Prime = 0
	l.SubPrime = 0
	ratio := l.CapitalRatio

	s := e.Settle(l, model.DefaultDecision(), scenarioC(), 1)
	for name, v := range map[string]float64{
		"profit": s.Profit, "roe": s.ROE, "raroc": s.RAROC, "capital ratio": s.CapitalRatio,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Errorf("%s must stay finite on an empty book, got %f", name, v)
		}
	}
	if l.CapitalRatio != ratio {
		t.Errorf("zero RWA must leave the ratio untouched, got %f", l.CapitalRatio)
	}
	if s.CapitalInjected != 0 {
		t.Error("no rescue on an empty book")
	}
}

func TestSettle_HistoryBookkeeping(t *testing.T) {
	cfg := testConfig(t)
	e := New(cfg)
	l := testLedger(cfg)

	e.Settle(l, model.DefaultDecision(), scenarioA(), 1)
	e.Settle(l, model.DefaultDecision(), scenarioA(), 2)

	if l.RoundsSettled != 2 || len(l.RiskHistory) != 2 {
		t.Fatalf("expected 2 settled rounds with 2 risk samples, got %d/%d", l.RoundsSettled, len(l.RiskHistory))
	}
	if len(l.ROEHistory) != 2 || len(l.RAROCHistory) != 2 || len(l.BalanceHistory) != 2 {
		t.Fatal("reporting series must gain one entry per round")
	}
	if len(l.HistoryLog) != 2 || l.HistoryLog[0].Round != 2 {
		t.Errorf("history log must be most-recent-first, got %+v", l.HistoryLog)
	}
}
