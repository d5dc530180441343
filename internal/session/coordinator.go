// Package session owns the single shared session aggregate and its round
// state machine. Every state-mutating command is serialized through one
// mutex held only for the duration of the transition; snapshots are cloned
// inside the lock and broadcast after it is released.
package session

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sort"
	"sync"

	"github.com/google/uuid"

	"RiskCockpit/internal/broadcast"
	"RiskCockpit/internal/config"
	"RiskCockpit/internal/content"
	"RiskCockpit/internal/engine"
	"RiskCockpit/internal/intake"
	"RiskCockpit/internal/model"
	"RiskCockpit/internal/recorder"
	"RiskCockpit/internal/report"
	"RiskCockpit/internal/scoring"
	"RiskCockpit/internal/timeline"
)

var (
	// ErrUnknownTeam reports a command referencing a team that never joined.
	ErrUnknownTeam = errors.New("unknown team")
	// ErrAlreadyTerminal reports a command other than reset after ENDGAME.
	ErrAlreadyTerminal = errors.New("session already terminal")
)

// Coordinator sequences intake, settlement and scoring across rounds. It is
// the sole entry point the transport layer calls.
type Coordinator struct {
	cfg      *config.Config
	timeline *timeline.Timeline
	engine   *engine.Engine
	scorer   *scoring.Scorer
	intake   *intake.Intake
	library  *content.Library
	rec      recorder.Recorder
	bc       broadcast.Broadcaster
	rng      *rand.Rand

	mu        sync.Mutex
	sessionID string
	round     int
	phase     model.Phase
	scenario  model.Scenario
	news      []string
	teams     map[string]*model.Ledger
}

// New builds a coordinator in LOBBY with no teams.
func New(cfg *config.Config, lib *content.Library, rec recorder.Recorder, bc broadcast.Broadcaster, rng *rand.Rand) *Coordinator {
	c := &Coordinator{
		cfg:       cfg,
		timeline:  timeline.New(cfg.Scenarios),
		engine:    engine.New(cfg),
		scorer:    scoring.New(cfg),
		intake:    intake.New(),
		library:   lib,
		rec:       rec,
		bc:        bc,
		rng:       rng,
		sessionID: uuid.NewString(),
		phase:     model.PhaseLobby,
		teams:     make(map[string]*model.Ledger),
	}
	return c
}

// JoinTeam registers a team, seeding a fresh ledger for unknown names and
// returning the existing one on reconnect. Allowed in any phase.
func (c *Coordinator) JoinTeam(name string) (*model.Ledger, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty team name", ErrUnknownTeam)
	}
	c.mu.Lock()
	l, ok := c.teams[name]
	if !ok {
		seed := c.cfg.Seed
		l = model.NewLedger(name,
			seed.Receivables, seed.PrimeShare, seed.CapitalRatio,
			seed.RiskIndex, seed.LossRate, seed.ProvisionRate, seed.ROE,
			c.cfg.Segments.PrimeWeight, c.cfg.Segments.SubPrimeWeight)
		c.teams[name] = l
	}
	clone := l.Clone()
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.bc.SessionUpdate(snap)
	return clone, nil
}

// SubmitDecision stores a team's decision while the window is open. A second
// submission before close overwrites the first.
func (c *Coordinator) SubmitDecision(team string, d model.DecisionVector) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != model.PhaseOpen {
		return fmt.Errorf("%w: phase %s", intake.ErrWindowClosed, c.phase)
	}
	if _, ok := c.teams[team]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTeam, team)
	}
	return c.intake.Submit(team, c.round, d)
}

// StartRound advances LOBBY/CLOSED to OPEN, or to ENDGAME once the
// configured total has been played.
func (c *Coordinator) StartRound() error {
	c.mu.Lock()
	if c.phase == model.PhaseEndgame {
		c.mu.Unlock()
		return ErrAlreadyTerminal
	}
	if c.phase == model.PhaseOpen {
		c.mu.Unlock()
		return fmt.Errorf("round %d still open", c.round)
	}

	if c.round >= c.cfg.Session.TotalRounds {
		c.finishLocked()
		snap := c.snapshotLocked()
		c.mu.Unlock()
		c.bc.SessionUpdate(snap)
		return nil
	}

	sc, err := c.timeline.ScenarioFor(c.round + 1)
	if err != nil {
		c.mu.Unlock()
		return fmt.Errorf("resolve scenario: %w", err)
	}
	c.round++
	c.scenario = sc
	c.news = c.library.SampleNews(sc.ID, 15, c.rng)
	c.intake.Open(c.round)
	c.phase = model.PhaseOpen
	snap := c.snapshotLocked()
	c.mu.Unlock()

	log.Printf("[INFO] round %d open, scenario %s (%s)", snap.Round, sc.ID, sc.Name)
	c.bc.SessionUpdate(snap)
	return nil
}

// EndRound closes the window, settles every known team with its submitted or
// default decision, and transitions to CLOSED.
func (c *Coordinator) EndRound() error {
	c.mu.Lock()
	if c.phase != model.PhaseOpen {
		c.mu.Unlock()
		return fmt.Errorf("%w: phase %s", intake.ErrWindowClosed, c.phase)
	}

	names := make([]string, 0, len(c.teams))
	for n := range c.teams {
		names = append(names, n)
	}
	sort.Strings(names)

	decisions := c.intake.Close(c.round, names)
	settled := make([]model.Settlement, 0, len(names))
	for _, n := range names {
		s := c.engine.Settle(c.teams[n], decisions[n], c.scenario, c.round)
		settled = append(settled, s)
	}
	c.phase = model.PhaseClosed

	snap := c.snapshotLocked()
	ledgers := make(map[string]*model.Ledger, len(names))
	for _, n := range names {
		ledgers[n] = c.teams[n].Clone()
	}
	sessionID := c.sessionID
	c.mu.Unlock()

	log.Printf("[INFO] round %d settled for %d teams", snap.Round, len(names))
	for _, s := range settled {
		if err := c.rec.RecordSettlement(&recorder.SettlementRecord{SessionID: sessionID, Settlement: s}); err != nil {
			log.Printf("[ERROR] record settlement: %v", err)
		}
	}
	c.bc.SessionUpdate(snap)
	for _, n := range names {
		c.bc.TeamUpdate(n, *ledgers[n])
	}
	return nil
}

// finishLocked transitions to ENDGAME and runs the scoring engine once.
func (c *Coordinator) finishLocked() {
	c.phase = model.PhaseEndgame
	for _, l := range c.teams {
		res := c.scorer.Score(l)
		l.FinalScore = res.Score
		l.Archetype = res.Archetype
		if err := c.rec.RecordScore(&recorder.ScoreRecord{
			SessionID:    c.sessionID,
			Team:         l.Team,
			Score:        res.Score,
			RAROC:        res.RAROC,
			MeanROE:      res.MeanROE,
			Archetype:    res.Archetype,
			CapitalRatio: l.CapitalRatio,
			Constrained:  l.Constrained,
		}); err != nil {
			log.Printf("[ERROR] record score: %v", err)
		}
	}
	if standings := c.standingsLocked(); len(standings) > 0 {
		log.Printf("[INFO] final standings:\n%s", report.RenderStandings(standings))
	}
}

// Reset discards every ledger and returns to LOBBY under a new session id.
func (c *Coordinator) Reset() {
	c.mu.Lock()
	c.sessionID = uuid.NewString()
	c.round = 0
	c.phase = model.PhaseLobby
	c.scenario = model.Scenario{}
	c.news = nil
	c.teams = make(map[string]*model.Ledger)
	c.intake = intake.New()
	snap := c.snapshotLocked()
	c.mu.Unlock()

	log.Printf("[INFO] session reset: %s", snap.SessionID)
	c.bc.SessionUpdate(snap)
}

// Snapshot returns a deep copy of the full session state.
func (c *Coordinator) Snapshot() model.SessionSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// TeamSnapshot returns a deep copy of one team's ledger.
func (c *Coordinator) TeamSnapshot(name string) (*model.Ledger, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	l, ok := c.teams[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTeam, name)
	}
	return l.Clone(), nil
}

// Standings returns the scoreboard, best first. Empty before ENDGAME.
func (c *Coordinator) Standings() []model.Standing {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != model.PhaseEndgame {
		return nil
	}
	return c.standingsLocked()
}

func (c *Coordinator) standingsLocked() []model.Standing {
	out := make([]model.Standing, 0, len(c.teams))
	for _, l := range c.teams {
		out = append(out, model.Standing{
			Team:      l.Team,
			Score:     l.FinalScore,
			RAROC:     l.RAROC,
			Archetype: l.Archetype,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Team < out[j].Team
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

func (c *Coordinator) snapshotLocked() model.SessionSnapshot {
	teams := make(map[string]*model.Ledger, len(c.teams))
	for n, l := range c.teams {
		teams[n] = l.Clone()
	}
	return model.SessionSnapshot{
		SessionID: c.sessionID,
		Round:     c.round,
		Scenario:  c.scenario.ID,
		Phase:     c.phase,
		NewsFeed:  append([]string(nil), c.news...),
		Directive: c.library.Directive(c.round),
		Teams:     teams,
	}
}
