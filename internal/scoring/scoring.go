// Package scoring computes the end-of-session comparable score and the
// qualitative archetype for each team. Scoring is a pure function of final
// ledger state: re-running it on an unmodified ledger yields the same result.
package scoring

import (
	"math"

	"RiskCockpit/internal/config"
	"RiskCockpit/internal/model"
)

// Archetype labels. Rules are evaluated in a fixed priority order; Passenger
// is the default that catches everything not matched by a sharper rule.
const (
	ArchetypeRescued      = "Rescued Zombie"
	ArchetypeDistressed   = "Distressed"
	ArchetypeOutperformer = "Disciplined Outperformer"
	ArchetypeYieldChaser  = "Yield Chaser"
	ArchetypeLaggard      = "Overcapitalized Laggard"
	ArchetypePassenger    = "Steady Passenger"
)

// Result is one team's final evaluation.
type Result struct {
	Score     float64
	RAROC     float64
	MeanROE   float64
	Archetype string
}

// Scorer blends risk-adjusted and plain returns under configured weights.
type Scorer struct {
	cfg *config.Config
}

// New builds a scorer from configuration.
func New(cfg *config.Config) *Scorer {
	return &Scorer{cfg: cfg}
}

// Score evaluates a terminal ledger. It does not mutate the ledger; the
// coordinator writes the result back.
func (s *Scorer) Score(l *model.Ledger) Result {
	raroc := 0.0
	if l.CumulativeCapitalUsage > 0 {
		raroc = l.CumulativeProfit / l.CumulativeCapitalUsage * 100
	}
	meanROE := 0.0
	if len(l.ROEHistory) > 0 {
		sum := 0.0
		for _, r := range l.ROEHistory {
			sum += r
		}
		meanROE = sum / float64(len(l.ROEHistory))
	}

	score := raroc*s.cfg.Scoring.RarocWeight + meanROE*s.cfg.Scoring.RoeWeight
	if l.CapitalRatio < s.cfg.Scoring.DistressThreshold {
		score -= s.cfg.Scoring.DistressPenalty
	}
	score = math.Round(score*10) / 10

	return Result{
		Score:     score,
		RAROC:     raroc,
		MeanROE:   meanROE,
		Archetype: s.archetype(l, score, raroc, meanROE),
	}
}

// archetype classifies by threshold rules in priority order.
func (s *Scorer) archetype(l *model.Ledger, score, raroc, meanROE float64) string {
	sc := s.cfg.Scoring
	switch {
	case l.Constrained:
		return ArchetypeRescued
	case l.CapitalRatio < sc.DistressThreshold:
		return ArchetypeDistressed
	case score >= sc.OutperformerScore && l.CapitalRatio >= s.cfg.Solvency.Floor:
		return ArchetypeOutperformer
	case meanROE-raroc >= sc.DivergenceGap:
		return ArchetypeYieldChaser
	case l.CapitalRatio >= sc.LaggardCapital && score < sc.LaggardScore:
		return ArchetypeLaggard
	default:
		return ArchetypePassenger
	}
}
