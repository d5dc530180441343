package model

// Settlement is the per-team outcome of one round, returned by the engine
// for broadcasting and recording. The ledger itself carries the durable
// state; this is the flat row describing what just happened.
type Settlement struct {
	Team     string
	Round    int
	Scenario string

	RiskIndex  float64 // current-round sample, drives next round's losses
	LaggedRisk float64 // sample actually used for this round's losses

	Receivables   float64
	Revenue       float64
	Profit        float64
	LossRate      float64
	ProvisionRate float64
	ROE           float64
	RAROC         float64
	CapitalRatio  float64

	EconomicCapital float64
	// CapitalInjected is the rescue amount added by solvency adjudication;
	// zero when the floor was not breached.
	CapitalInjected float64
	Constrained     bool
}
