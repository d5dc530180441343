// Package scheduler drives unattended sessions: the engine's submission
// window is soft, so round open/close commands come from cron timers layered
// on top of the coordinator.
package scheduler

import (
	"errors"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"RiskCockpit/internal/intake"
	"RiskCockpit/internal/session"
)

// Autopilot opens and closes rounds on a fixed cadence.
type Autopilot struct {
	Cron  *cron.Cron
	Coord *session.Coordinator
}

// NewAutopilot creates an autopilot over the coordinator.
func NewAutopilot(coord *session.Coordinator) *Autopilot {
	return &Autopilot{
		Cron:  cron.New(cron.WithSeconds()),
		Coord: coord,
	}
}

// Register registers the open and close schedules.
func (a *Autopilot) Register(openCron, closeCron string) error {
	if _, err := a.Cron.AddFunc(openCron, a.openRound); err != nil {
		return fmt.Errorf("register open task: %w", err)
	}
	if _, err := a.Cron.AddFunc(closeCron, a.closeRound); err != nil {
		return fmt.Errorf("register close task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (a *Autopilot) Start() {
	a.Cron.Start()
	log.Println("[INFO] autopilot started")
}

// Stop stops the cron scheduler gracefully.
func (a *Autopilot) Stop() {
	a.Cron.Stop()
	log.Println("[INFO] autopilot stopped")
}

func (a *Autopilot) openRound() {
	if err := a.Coord.StartRound(); err != nil {
		if errors.Is(err, session.ErrAlreadyTerminal) {
			log.Println("[INFO] autopilot: session terminal, standing by")
			return
		}
		log.Printf("[WARN] autopilot open round: %v", err)
	}
}

func (a *Autopilot) closeRound() {
	if err := a.Coord.EndRound(); err != nil {
		// No window open is normal between sessions; anything else is worth a log.
		if !errors.Is(err, intake.ErrWindowClosed) {
			log.Printf("[WARN] autopilot close round: %v", err)
		}
	}
}
