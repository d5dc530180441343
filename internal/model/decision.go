package model

import "fmt"

// DecisionVersion tags the shape of DecisionVector so stored decisions can be
// told apart if fields evolve between sessions.
const DecisionVersion = 1

// LineStrategy is the initial credit line assignment policy.
type LineStrategy string

const (
	LineConservative LineStrategy = "Conservative"
	LineBalanced     LineStrategy = "Balanced"
	LineAggressive   LineStrategy = "Aggressive"
)

// FreezeAction is the portfolio action choice.
type FreezeAction string

const (
	FreezeNone      FreezeAction = "None"
	FreezeSelective FreezeAction = "Selective"
	FreezeReactive  FreezeAction = "Reactive"
)

// DecisionVector is one team's decision for one round. Sliders run 1..5;
// categorical fields come from the closed enums above. Once a round closes
// the settled vector becomes immutable history on the ledger.
type DecisionVector struct {
	Version         int          `json:"version" yaml:"version"`
	Volume          int          `json:"volume" yaml:"volume"`
	Line            LineStrategy `json:"line" yaml:"line"`
	Upsell          int          `json:"upsell" yaml:"upsell"`
	BalanceTransfer int          `json:"balance_transfer" yaml:"balance_transfer"`
	Freeze          FreezeAction `json:"freeze" yaml:"freeze"`
	Collections     int          `json:"collections" yaml:"collections"`
}

// DefaultDecision is the neutral vector substituted for teams that do not
// submit before the window closes.
func DefaultDecision() DecisionVector {
	return DecisionVector{
		Version:         DecisionVersion,
		Volume:          3,
		Line:            LineBalanced,
		Upsell:          3,
		BalanceTransfer: 1,
		Freeze:          FreezeNone,
		Collections:     3,
	}
}

// ConservativeDecision is the forced vector for constrained ("zombie")
// teams: no new risk-taking, maximum collections effort.
func ConservativeDecision() DecisionVector {
	return DecisionVector{
		Version:         DecisionVersion,
		Volume:          1,
		Line:            LineConservative,
		Upsell:          1,
		BalanceTransfer: 1,
		Freeze:          FreezeReactive,
		Collections:     5,
	}
}

// Validate checks slider bounds and enum membership.
func (d DecisionVector) Validate() error {
	checkSlider := func(name string, v int) error {
		if v < 1 || v > 5 {
			return fmt.Errorf("%s must be in [1,5], got %d", name, v)
		}
		return nil
	}
	if err := checkSlider("volume", d.Volume); err != nil {
		return err
	}
	if err := checkSlider("upsell", d.Upsell); err != nil {
		return err
	}
	if err := checkSlider("balance_transfer", d.BalanceTransfer); err != nil {
		return err
	}
	if err := checkSlider("collections", d.Collections); err != nil {
		return err
	}
	switch d.Line {
	case LineConservative, LineBalanced, LineAggressive:
	default:
		return fmt.Errorf("unknown line strategy %q", d.Line)
	}
	switch d.Freeze {
	case FreezeNone, FreezeSelective, FreezeReactive:
	default:
		return fmt.Errorf("unknown freeze action %q", d.Freeze)
	}
	return nil
}

// lineRank orders line strategies by risk appetite for delta arrows.
func lineRank(l LineStrategy) int {
	switch l {
	case LineAggressive:
		return 3
	case LineBalanced:
		return 2
	default:
		return 1
	}
}

// Arrow compares a numeric control between two rounds.
func arrow(cur, prev int) string {
	switch {
	case cur > prev:
		return "↑"
	case cur < prev:
		return "↓"
	default:
		return "↔"
	}
}

// DeltaSummary synthesizes the per-control change summary shown on the
// trajectory chart, e.g. "↑Vol | ↔Line | Bal". prev may be nil on round 1.
func (d DecisionVector) DeltaSummary(prev *DecisionVector) string {
	volArrow, lineArrow := "↔", "↔"
	if prev != nil {
		volArrow = arrow(d.Volume, prev.Volume)
		lineArrow = arrow(lineRank(d.Line), lineRank(prev.Line))
	}
	short := string(d.Line)
	if len(short) > 3 {
		short = short[:3]
	}
	return volArrow + "Vol | " + lineArrow + "Line | " + short
}
