package model

// HistoryEntry is one human-readable settlement summary. The ledger keeps
// them most-recent-first.
type HistoryEntry struct {
	Round         int    `json:"round"`
	Scenario      string `json:"scenario"`
	DecisionDelta string `json:"dec_summ"` // arrow summary vs previous round
	MetricSummary string `json:"met_summ"` // settled loss/capital figures
	Decision      string `json:"decision"`
	Impact        string `json:"impact"`
}

// Ledger is one team's full financial state. It is created with seed values
// when the team joins and mutated only by the simulation engine during round
// settlement; a session reset discards it.
type Ledger struct {
	Team string `json:"team"`

	// Receivables by risk grade. Total receivables is the sum.
	Prime    float64 `json:"prime"`
	SubPrime float64 `json:"sub_prime"`

	Equity       float64 `json:"equity"`
	CapitalRatio float64 `json:"capital_ratio"` // equity / RWA, percent

	// Latest settled rates, percent of receivables.
	LossRate      float64 `json:"loss_rate"`
	ProvisionRate float64 `json:"provisions"`
	ROE           float64 `json:"roe"`
	RAROC         float64 `json:"raroc"`

	// SeedRisk feeds the lagged loss computation on the first round, before
	// any settled sample exists.
	SeedRisk float64 `json:"seed_risk"`

	// RiskHistory holds one settled risk sample per round, append-only.
	// Its length always equals RoundsSettled.
	RiskHistory []float64 `json:"risk_history"`

	CumulativeProfit       float64 `json:"cumulative_profit"`
	CumulativeCapitalUsage float64 `json:"cumulative_capital_usage"`

	// Per-round reporting series, one entry per settled round.
	ROEHistory     []float64 `json:"roe_history"`
	RAROCHistory   []float64 `json:"raroc_history"`
	RevenueHistory []float64 `json:"revenue_history"`
	BalanceHistory []float64 `json:"balance_history"`

	// Decisions maps round number to the vector that actually settled
	// (the conservative override for constrained teams).
	Decisions map[int]DecisionVector `json:"decisions"`

	HistoryLog []HistoryEntry `json:"history_log"`

	// Constrained is the zombie flag: once set it never reverts within a
	// session, regardless of later capital ratios.
	Constrained bool `json:"is_constrained"`

	RoundsSettled int `json:"rounds_settled"`

	// Populated only after the terminal round.
	FinalScore float64 `json:"final_score"`
	Archetype  string  `json:"archetype"`
}

// NewLedger seeds a ledger for a joining team.
func NewLedger(team string, receivables, primeShare, capitalRatio, seedRisk, lossRate, provisionRate, roe float64, primeWeight, subWeight float64) *Ledger {
	prime := receivables * primeShare
	sub := receivables - prime
	rwa := prime*primeWeight + sub*subWeight
	return &Ledger{
		Team:          team,
		Prime:         prime,
		SubPrime:      sub,
		Equity:        capitalRatio / 100 * rwa,
		CapitalRatio:  capitalRatio,
		LossRate:      lossRate,
		ProvisionRate: provisionRate,
		ROE:           roe,
		SeedRisk:      seedRisk,
		Decisions:     make(map[int]DecisionVector),
	}
}

// Receivables is total on-balance exposure across segments.
func (l *Ledger) Receivables() float64 {
	return l.Prime + l.SubPrime
}

// RWA is the risk-weighted capital denominator.
func (l *Ledger) RWA(primeWeight, subWeight float64) float64 {
	return l.Prime*primeWeight + l.SubPrime*subWeight
}

// PreviousRisk returns the most recent settled risk sample. ok is false
// before the first settlement; callers then fall back to SeedRisk. This is
// the one-round lag: reading it before appending the current sample yields
// round n-1's value during round n's settlement.
func (l *Ledger) PreviousRisk() (sample float64, ok bool) {
	if len(l.RiskHistory) == 0 {
		return 0, false
	}
	return l.RiskHistory[len(l.RiskHistory)-1], true
}

// LastDecision returns the vector settled in the given round, if any.
func (l *Ledger) LastDecision(round int) *DecisionVector {
	if d, ok := l.Decisions[round]; ok {
		return &d
	}
	return nil
}

// Clone returns a deep copy safe to hand to broadcast/transport readers.
func (l *Ledger) Clone() *Ledger {
	c := *l
	c.RiskHistory = append([]float64(nil), l.RiskHistory...)
	c.ROEHistory = append([]float64(nil), l.ROEHistory...)
	c.RAROCHistory = append([]float64(nil), l.RAROCHistory...)
	c.RevenueHistory = append([]float64(nil), l.RevenueHistory...)
	c.BalanceHistory = append([]float64(nil), l.BalanceHistory...)
	c.HistoryLog = append([]HistoryEntry(nil), l.HistoryLog...)
	c.Decisions = make(map[int]DecisionVector, len(l.Decisions))
	for r, d := range l.Decisions {
		c.Decisions[r] = d
	}
	return &c
}
