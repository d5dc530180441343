package engine

import "RiskCockpit/internal/model"

// SolvencyAdjudicator enforces the minimum capital-adequacy floor. A breach
// triggers a rescue: the exact equity shortfall is injected so the ratio
// lands precisely on the floor, and the team enters the constrained regime
// for the rest of the session.
type SolvencyAdjudicator struct {
	floor float64 // percent of RWA
}

// NewSolvencyAdjudicator builds an adjudicator for the given floor.
func NewSolvencyAdjudicator(floor float64) *SolvencyAdjudicator {
	return &SolvencyAdjudicator{floor: floor}
}

// Adjudicate inspects a freshly computed capital ratio and rescues the
// ledger when it breaches the floor. Returns the injected equity, zero when
// no breach occurred. The constrained flag is monotone: it is set here and
// never cleared within a session.
func (a *SolvencyAdjudicator) Adjudicate(l *model.Ledger, rwa float64) float64 {
	if rwa <= 0 || l.CapitalRatio >= a.floor {
		return 0
	}
	shortfall := a.floor/100*rwa - l.Equity
	l.Equity += shortfall
	l.CapitalRatio = a.floor
	l.Constrained = true
	return shortfall
}
