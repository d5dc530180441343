// Package broadcast fans session and ledger snapshots out to observers.
// The coordinator emits on every phase transition and after each per-team
// settlement; nothing is pushed while a window is open.
package broadcast

import (
	"log"

	"RiskCockpit/internal/model"
)

// Broadcaster receives read-only snapshots. Implementations must not block
// the caller for long: the coordinator emits outside its lock but on the
// command goroutine.
type Broadcaster interface {
	SessionUpdate(snap model.SessionSnapshot)
	TeamUpdate(team string, ledger model.Ledger)
}

// LogBroadcaster writes one line per emission, for headless runs.
type LogBroadcaster struct{}

// SessionUpdate implements Broadcaster.
func (LogBroadcaster) SessionUpdate(snap model.SessionSnapshot) {
	log.Printf("[INFO] session %s round %d phase %s scenario %s (%d teams)",
		snap.SessionID, snap.Round, snap.Phase, snap.Scenario, len(snap.Teams))
}

// TeamUpdate implements Broadcaster.
func (LogBroadcaster) TeamUpdate(team string, l model.Ledger) {
	log.Printf("[INFO] team %s settled: recv=%.0f cap=%.1f%% roe=%.1f%% loss=%.1f%%",
		team, l.Receivables(), l.CapitalRatio, l.ROE, l.LossRate)
}

// Multi fans out to several broadcasters in order.
type Multi []Broadcaster

// SessionUpdate implements Broadcaster.
func (m Multi) SessionUpdate(snap model.SessionSnapshot) {
	for _, b := range m {
		b.SessionUpdate(snap)
	}
}

// TeamUpdate implements Broadcaster.
func (m Multi) TeamUpdate(team string, l model.Ledger) {
	for _, b := range m {
		b.TeamUpdate(team, l)
	}
}
