// Package timeline resolves round numbers to the scripted macro scenario.
package timeline

import (
	"errors"
	"fmt"

	"RiskCockpit/internal/config"
	"RiskCockpit/internal/model"
)

// ErrInvalidRound reports a lookup outside the configured round ranges.
var ErrInvalidRound = errors.New("invalid round")

// Timeline is a pure, immutable round-to-scenario table.
type Timeline struct {
	bands []config.ScenarioBand
}

// New builds a timeline from the configured scenario bands.
func New(bands []config.ScenarioBand) *Timeline {
	return &Timeline{bands: append([]config.ScenarioBand(nil), bands...)}
}

// ScenarioFor returns the scenario covering the given round.
func (t *Timeline) ScenarioFor(round int) (model.Scenario, error) {
	if round < 1 {
		return model.Scenario{}, fmt.Errorf("%w: %d", ErrInvalidRound, round)
	}
	for _, b := range t.bands {
		if round >= b.FromRound && round <= b.ToRound {
			return model.Scenario{
				ID:                  b.ID,
				Name:                b.Name,
				Severity:            b.Severity,
				TailWeight:          b.TailWeight,
				MacroGrowth:         b.MacroGrowth,
				ProvisionMultiplier: b.ProvisionMultiplier,
			}, nil
		}
	}
	return model.Scenario{}, fmt.Errorf("%w: %d not covered by any band", ErrInvalidRound, round)
}
