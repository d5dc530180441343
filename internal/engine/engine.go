// Package engine settles one round of portfolio state per team: balance
// growth, risk indexing, lagged credit losses, provisions, P&L, capital
// dynamics and solvency adjudication. Settlement is deterministic: same
// ledger, decision and scenario always produce the same advanced ledger.
package engine

import (
	"fmt"

	"RiskCockpit/internal/config"
	"RiskCockpit/internal/model"
)

// Engine advances ledgers by one round at a time.
type Engine struct {
	cfg      *config.Config
	solvency *SolvencyAdjudicator
}

// New builds an engine and its adjudicator from configuration.
func New(cfg *config.Config) *Engine {
	return &Engine{
		cfg:      cfg,
		solvency: NewSolvencyAdjudicator(cfg.Solvency.Floor),
	}
}

// Settle applies one team's decision under the round's scenario and advances
// the ledger by exactly one round. Constrained teams have their vector
// overridden to the conservative values before any term is computed.
func (e *Engine) Settle(l *model.Ledger, dec model.DecisionVector, sc model.Scenario, round int) model.Settlement {
	if l.Constrained {
		dec = model.ConservativeDecision()
	}
	c := e.cfg.Engine.Coefficients

	// Decision-derived multipliers. Each control contributes an independent
	// multiplicative term around its neutral midpoint.
	volMult := 1 + (float64(dec.Volume)-3)*c.VolumeGrowthStep
	lineRisk := 1.0
	switch dec.Line {
	case model.LineConservative:
		lineRisk = c.ConservativeLineRisk
		volMult -= c.ConservativeGrowthDrag
	case model.LineAggressive:
		lineRisk = c.AggressiveLineRisk
		volMult += c.AggressiveGrowthBoost
	}
	upsellBal := 1 + (float64(dec.Upsell)-1)*c.UpsellGrowthStep
	upsellRisk := 1 + (float64(dec.Upsell)-1)*c.UpsellRiskStep
	transferBal := 1 + (float64(dec.BalanceTransfer)-1)*c.TransferGrowthStep
	freeze := 1.0
	switch dec.Freeze {
	case model.FreezeSelective:
		freeze = c.SelectiveFreezeFactor
	case model.FreezeReactive:
		freeze = c.ReactiveFreezeFactor
	}
	collBenefit := float64(dec.Collections) * c.CollectionsBenefitStep
	collCost := float64(dec.Collections) * c.CollectionsCostStep
	acqCost := 0.0
	if dec.Volume > 3 {
		acqCost += float64(dec.Volume-3) * c.AcquisitionVolumeStep
	}
	if dec.BalanceTransfer > 2 {
		acqCost += float64(dec.BalanceTransfer-2) * c.AcquisitionTransferStep
	}

	// Current-round risk index: base term from volume/upsell, tail term from
	// line appetite, weighted by the scenario's tail weight.
	baseRisk := float64(dec.Volume)*c.BaseRiskVolumeWeight + upsellRisk*c.BaseRiskUpsellWeight
	tailRisk := lineRisk*c.TailLineWeight + float64(dec.Upsell)*c.TailUpsellWeight
	riskIndex := c.BaseRiskWeight*baseRisk + sc.TailWeight*tailRisk

	// The lagged sample must be read before the current one is appended:
	// this round's losses come from last round's risk-taking.
	laggedRisk, ok := l.PreviousRisk()
	if !ok {
		laggedRisk = l.SeedRisk
	}
	l.RiskHistory = append(l.RiskHistory, riskIndex)

	// Segmented growth: shared decision growth and macro multiplier, then a
	// per-segment tilt from the line strategy, then recombine.
	growth := volMult * upsellBal * transferBal * freeze
	tilt := e.cfg.Tilt(string(dec.Line))
	l.Prime = l.Prime * growth * sc.MacroGrowth * tilt.Prime
	l.SubPrime = l.SubPrime * growth * sc.MacroGrowth * tilt.SubPrime
	receivables := l.Receivables()

	// Lagged loss rate: convex transform of last round's risk, scaled by
	// scenario severity, net of collections effort, floored.
	rawLoss := e.cfg.Engine.LossQuadCoeff * laggedRisk * laggedRisk * sc.Severity
	lossRate := rawLoss - collBenefit
	if lossRate < e.cfg.Engine.LossFloor {
		lossRate = e.cfg.Engine.LossFloor
	}

	// Forward-looking provisions from the current index. The damping keeps
	// shock-scenario provisioning from double-counting the deterioration
	// already charged through the floored loss rate.
	provisionRate := riskIndex * sc.ProvisionMultiplier * e.cfg.Engine.ProvisionDamping

	// P&L on the settled balance.
	primeShare := 0.0
	if receivables > 0 {
		primeShare = l.Prime / receivables
	}
	yield := primeShare*e.cfg.Segments.PrimeYield + (1-primeShare)*e.cfg.Segments.SubPrimeYield
	revenue := receivables * yield
	funding := receivables * e.cfg.Engine.CostOfFunds
	opEx := receivables * e.cfg.Engine.OpExRate
	creditCost := receivables * (lossRate / 100)
	provisionCost := receivables * (provisionRate / 100)
	collEx := receivables * (collCost / 100)
	acqEx := receivables * (acqCost / 100)
	profit := revenue - funding - opEx - creditCost - provisionCost - collEx - acqEx

	// Capital dynamics: profit accretes to equity while balance growth
	// inflates the risk-weighted denominator.
	l.Equity += profit
	rwa := l.RWA(e.cfg.Segments.PrimeWeight, e.cfg.Segments.SubPrimeWeight)
	if rwa > 0 {
		l.CapitalRatio = l.Equity / rwa * 100
	}

	injected := e.solvency.Adjudicate(l, rwa)

	// Derived metrics, post-adjudication.
	roe := 0.0
	if l.Equity > 0 {
		roe = profit / l.Equity * 100
	}
	l.CumulativeProfit += profit
	usage := rwa * e.cfg.Engine.EconomicCapitalRate * (laggedRisk / 2)
	if l.Constrained {
		usage *= e.cfg.Engine.ConstrainedUsagePenalty
	}
	l.CumulativeCapitalUsage += usage
	raroc := 0.0
	if l.CumulativeCapitalUsage > 0 {
		raroc = l.CumulativeProfit / l.CumulativeCapitalUsage * 100
	}

	l.LossRate = lossRate
	l.ProvisionRate = provisionRate
	l.ROE = roe
	l.RAROC = raroc
	l.ROEHistory = append(l.ROEHistory, roe)
	l.RAROCHistory = append(l.RAROCHistory, raroc)
	l.RevenueHistory = append(l.RevenueHistory, revenue)
	l.BalanceHistory = append(l.BalanceHistory, receivables)
	l.RoundsSettled++

	prev := l.LastDecision(round - 1)
	l.Decisions[round] = dec
	entry := model.HistoryEntry{
		Round:         round,
		Scenario:      sc.ID,
		DecisionDelta: dec.DeltaSummary(prev),
		MetricSummary: fmt.Sprintf("Loss:%.1f%% | Cap:%.1f%%", lossRate, l.CapitalRatio),
		Decision:      fmt.Sprintf("Vol:%d | Line:%s | CLI:%d", dec.Volume, dec.Line, dec.Upsell),
		Impact:        fmt.Sprintf("ROE: %.1f%% | Loss: %.1f%%", roe, lossRate),
	}
	l.HistoryLog = append([]model.HistoryEntry{entry}, l.HistoryLog...)

	return model.Settlement{
		Team:            l.Team,
		Round:           round,
		Scenario:        sc.ID,
		RiskIndex:       riskIndex,
		LaggedRisk:      laggedRisk,
		Receivables:     receivables,
		Revenue:         revenue,
		Profit:          profit,
		LossRate:        lossRate,
		ProvisionRate:   provisionRate,
		ROE:             roe,
		RAROC:           raroc,
		CapitalRatio:    l.CapitalRatio,
		EconomicCapital: usage,
		CapitalInjected: injected,
		Constrained:     l.Constrained,
	}
}
