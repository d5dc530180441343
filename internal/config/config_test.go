package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file must not be an error: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
	if cfg.Session.TotalRounds != 9 {
		t.Errorf("expected 9 default rounds, got %d", cfg.Session.TotalRounds)
	}
	if cfg.Seed.Receivables != 1000 || cfg.Seed.CapitalRatio != 14.0 {
		t.Errorf("unexpected seed defaults: %+v", cfg.Seed)
	}
	if cfg.Solvency.Floor != 9.0 {
		t.Errorf("expected 9.0 solvency floor, got %f", cfg.Solvency.Floor)
	}
	if len(cfg.Scenarios) != 3 {
		t.Fatalf("expected 3 default scenario bands, got %d", len(cfg.Scenarios))
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := []byte("server:\n  addr: \":8081\"\nsession:\n  total_rounds: 6\n")
	if err := os.WriteFile(path, body, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != ":8081" {
		t.Errorf("expected file address, got %s", cfg.Server.Addr)
	}
	if cfg.Session.TotalRounds != 6 {
		t.Errorf("expected 6 rounds from file, got %d", cfg.Session.TotalRounds)
	}
	// Untouched sections keep defaults.
	if cfg.Engine.CostOfFunds != 0.045 {
		t.Errorf("expected default cost of funds, got %f", cfg.Engine.CostOfFunds)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("LISTEN_ADDR", ":9999")
	t.Setenv("TOTAL_ROUNDS", "3")
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != ":9999" {
		t.Errorf("expected env address, got %s", cfg.Server.Addr)
	}
	if cfg.Session.TotalRounds != 3 {
		t.Errorf("expected 3 rounds from env, got %d", cfg.Session.TotalRounds)
	}
}

func TestValidate_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero rounds", func(c *Config) { c.Session.TotalRounds = -1 }},
		{"negative receivables", func(c *Config) { c.Seed.Receivables = -5 }},
		{"prime share above one", func(c *Config) { c.Seed.PrimeShare = 1.2 }},
		{"distress above floor", func(c *Config) { c.Scoring.DistressThreshold = 9.5 }},
		{"overlapping bands", func(c *Config) { c.Scenarios[1].FromRound = 3 }},
		{"uncovered round", func(c *Config) { c.Scenarios[2].ToRound = 8 }},
		{"inverted range", func(c *Config) { c.Scenarios[0].ToRound = 0 }},
		{"zero severity", func(c *Config) { c.Scenarios[0].Severity = 0 }},
	}
	for _, tt := range tests {
		cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		if err != nil {
			t.Fatalf("%s: load: %v", tt.name, err)
		}
		tt.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tt.name)
		}
	}
}

func TestTilt(t *testing.T) {
	cfg, _ := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if tilt := cfg.Tilt("Conservative"); tilt.Prime <= tilt.SubPrime {
		t.Errorf("conservative tilt must favor prime, got %+v", tilt)
	}
	if tilt := cfg.Tilt("Aggressive"); tilt.Prime >= tilt.SubPrime {
		t.Errorf("aggressive tilt must favor sub-prime, got %+v", tilt)
	}
	if tilt := cfg.Tilt("anything else"); tilt != (SegmentTilt{Prime: 1.0, SubPrime: 1.0}) {
		t.Errorf("unknown line must fall back to balanced, got %+v", tilt)
	}
}
