package model

// Phase is the session round-state machine phase.
type Phase string

const (
	PhaseLobby   Phase = "LOBBY"
	PhaseOpen    Phase = "OPEN"
	PhaseClosed  Phase = "CLOSED"
	PhaseEndgame Phase = "ENDGAME"
)

// SessionSnapshot is the read-only copy of session state handed to the
// transport layer on every phase transition.
type SessionSnapshot struct {
	SessionID string             `json:"session_id"`
	Round     int                `json:"round"`
	Scenario  string             `json:"scenario"`
	Phase     Phase              `json:"status"`
	NewsFeed  []string           `json:"news_feed"`
	Directive string             `json:"directive"` // CEO script for the round
	Teams     map[string]*Ledger `json:"teams"`
}

// Standing is one row of the endgame scoreboard.
type Standing struct {
	Rank      int     `json:"rank"`
	Team      string  `json:"team"`
	Score     float64 `json:"score"`
	RAROC     float64 `json:"raroc"`
	Archetype string  `json:"archetype"`
}
