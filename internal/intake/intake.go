// Package intake holds the per-round decision submission window.
package intake

import (
	"errors"
	"fmt"

	"RiskCockpit/internal/model"
)

// ErrWindowClosed reports a submission outside an open window.
var ErrWindowClosed = errors.New("submission window closed")

// Intake accepts at most one decision per team per round while a window is
// open. Resubmission overwrites: last write wins. Callers (the coordinator)
// serialize access, so Intake itself carries no lock.
type Intake struct {
	open    bool
	round   int
	pending map[string]model.DecisionVector
}

// New returns an intake with no open window.
func New() *Intake {
	return &Intake{pending: make(map[string]model.DecisionVector)}
}

// Open begins the acceptance window for a round, discarding any pending
// submissions from a previous window.
func (i *Intake) Open(round int) {
	i.open = true
	i.round = round
	i.pending = make(map[string]model.DecisionVector)
}

// Submit stores a team's decision for the open round. A second submission
// in the same window replaces the first.
func (i *Intake) Submit(team string, round int, d model.DecisionVector) error {
	if !i.open || round != i.round {
		return fmt.Errorf("%w: round %d", ErrWindowClosed, round)
	}
	if err := d.Validate(); err != nil {
		return fmt.Errorf("invalid decision: %w", err)
	}
	if d.Version == 0 {
		d.Version = model.DecisionVersion
	}
	i.pending[team] = d
	return nil
}

// Close ends the window and returns a decision for every listed team,
// substituting the documented default for non-responders so settlement is
// total over the team set.
func (i *Intake) Close(round int, teams []string) map[string]model.DecisionVector {
	i.open = false
	out := make(map[string]model.DecisionVector, len(teams))
	for _, t := range teams {
		if d, ok := i.pending[t]; ok {
			out[t] = d
		} else {
			out[t] = model.DefaultDecision()
		}
	}
	return out
}

// IsOpen reports whether a window is accepting submissions for round.
func (i *Intake) IsOpen(round int) bool {
	return i.open && i.round == round
}

// Pending reports which teams have already submitted this window.
func (i *Intake) Pending() map[string]bool {
	out := make(map[string]bool, len(i.pending))
	for t := range i.pending {
		out[t] = true
	}
	return out
}
