package recorder

import "RiskCockpit/internal/model"

// SettlementRecord is one team-round settlement row.
type SettlementRecord struct {
	SessionID  string
	Settlement model.Settlement
}

// ScoreRecord is one team's final evaluation row.
type ScoreRecord struct {
	SessionID    string
	Team         string
	Score        float64
	RAROC        float64
	MeanROE      float64
	Archetype    string
	CapitalRatio float64
	Constrained  bool
}

// Recorder persists session history for post-hoc analysis. The engine never
// reads anything back: recording is write-only and best-effort.
type Recorder interface {
	RecordSettlement(rec *SettlementRecord) error
	RecordScore(rec *ScoreRecord) error
	Close() error
}
