package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists settlement history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so analysis tools can read while a session is running.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS settlements (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp        INTEGER NOT NULL,
			session_id       TEXT NOT NULL,
			team             TEXT NOT NULL,
			round            INTEGER NOT NULL,
			scenario         TEXT,
			risk_index       REAL,
			lagged_risk      REAL,
			receivables      REAL,
			revenue          REAL,
			profit           REAL,
			loss_rate        REAL,
			provision_rate   REAL,
			roe              REAL,
			raroc            REAL,
			capital_ratio    REAL,
			economic_capital REAL,
			capital_injected REAL,
			constrained      INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_settlements_session ON settlements(session_id, team, round)`,

		`CREATE TABLE IF NOT EXISTS final_scores (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp     INTEGER NOT NULL,
			session_id    TEXT NOT NULL,
			team          TEXT NOT NULL,
			score         REAL,
			raroc         REAL,
			mean_roe      REAL,
			archetype     TEXT,
			capital_ratio REAL,
			constrained   INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_scores_session ON final_scores(session_id)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordSettlement inserts one team-round settlement row.
func (r *SQLiteRecorder) RecordSettlement(rec *SettlementRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := rec.Settlement
	_, err := r.db.Exec(`INSERT INTO settlements
		(timestamp, session_id, team, round, scenario,
		 risk_index, lagged_risk, receivables, revenue, profit,
		 loss_rate, provision_rate, roe, raroc, capital_ratio,
		 economic_capital, capital_injected, constrained)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), rec.SessionID, s.Team, s.Round, s.Scenario,
		s.RiskIndex, s.LaggedRisk, s.Receivables, s.Revenue, s.Profit,
		s.LossRate, s.ProvisionRate, s.ROE, s.RAROC, s.CapitalRatio,
		s.EconomicCapital, s.CapitalInjected, boolToInt(s.Constrained),
	)
	return err
}

// RecordScore inserts one team's final evaluation.
func (r *SQLiteRecorder) RecordScore(rec *ScoreRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO final_scores
		(timestamp, session_id, team, score, raroc, mean_roe, archetype, capital_ratio, constrained)
		VALUES (?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), rec.SessionID, rec.Team,
		rec.Score, rec.RAROC, rec.MeanROE, rec.Archetype,
		rec.CapitalRatio, boolToInt(rec.Constrained),
	)
	return err
}

// Close closes the underlying database.
func (r *SQLiteRecorder) Close() error {
	return r.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
