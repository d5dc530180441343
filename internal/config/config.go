package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ScenarioBand maps an inclusive round range to a macro scenario.
type ScenarioBand struct {
	ID                  string  `yaml:"id"`
	Name                string  `yaml:"name"`
	FromRound           int     `yaml:"from_round"`
	ToRound             int     `yaml:"to_round"`
	Severity            float64 `yaml:"severity"`
	TailWeight          float64 `yaml:"tail_weight"`
	MacroGrowth         float64 `yaml:"macro_growth"`
	ProvisionMultiplier float64 `yaml:"provision_multiplier"`
}

// Coefficients are the decision-to-outcome multipliers of the settlement
// engine. They are data, not code: content revisions retune them without
// forking the algorithm.
type Coefficients struct {
	VolumeGrowthStep        float64 `yaml:"volume_growth_step"`
	ConservativeGrowthDrag  float64 `yaml:"conservative_growth_drag"`
	AggressiveGrowthBoost   float64 `yaml:"aggressive_growth_boost"`
	ConservativeLineRisk    float64 `yaml:"conservative_line_risk"`
	AggressiveLineRisk      float64 `yaml:"aggressive_line_risk"`
	UpsellGrowthStep        float64 `yaml:"upsell_growth_step"`
	UpsellRiskStep          float64 `yaml:"upsell_risk_step"`
	TransferGrowthStep      float64 `yaml:"transfer_growth_step"`
	SelectiveFreezeFactor   float64 `yaml:"selective_freeze_factor"`
	ReactiveFreezeFactor    float64 `yaml:"reactive_freeze_factor"`
	CollectionsBenefitStep  float64 `yaml:"collections_benefit_step"`
	CollectionsCostStep     float64 `yaml:"collections_cost_step"`
	AcquisitionVolumeStep   float64 `yaml:"acquisition_volume_step"`
	AcquisitionTransferStep float64 `yaml:"acquisition_transfer_step"`
	BaseRiskVolumeWeight    float64 `yaml:"base_risk_volume_weight"`
	BaseRiskUpsellWeight    float64 `yaml:"base_risk_upsell_weight"`
	BaseRiskWeight          float64 `yaml:"base_risk_weight"`
	TailLineWeight          float64 `yaml:"tail_line_weight"`
	TailUpsellWeight        float64 `yaml:"tail_upsell_weight"`
}

// SegmentTilt shifts segment growth by line strategy, moving the portfolio
// mix toward or away from sub-prime.
type SegmentTilt struct {
	Prime    float64 `yaml:"prime"`
	SubPrime float64 `yaml:"sub_prime"`
}

// Config holds all application configuration.
type Config struct {
	Server struct {
		Addr     string `yaml:"addr"`
		AdminKey string `yaml:"admin_key"`
	} `yaml:"server"`
	Session struct {
		TotalRounds int `yaml:"total_rounds"`
	} `yaml:"session"`
	Seed struct {
		Receivables   float64 `yaml:"receivables"`
		PrimeShare    float64 `yaml:"prime_share"`
		CapitalRatio  float64 `yaml:"capital_ratio"`
		RiskIndex     float64 `yaml:"risk_index"`
		LossRate      float64 `yaml:"loss_rate"`
		ProvisionRate float64 `yaml:"provision_rate"`
		ROE           float64 `yaml:"roe"`
	} `yaml:"seed"`
	Segments struct {
		PrimeWeight      float64     `yaml:"prime_weight"`
		SubPrimeWeight   float64     `yaml:"sub_prime_weight"`
		PrimeYield       float64     `yaml:"prime_yield"`
		SubPrimeYield    float64     `yaml:"sub_prime_yield"`
		TiltConservative SegmentTilt `yaml:"tilt_conservative"`
		TiltBalanced     SegmentTilt `yaml:"tilt_balanced"`
		TiltAggressive   SegmentTilt `yaml:"tilt_aggressive"`
	} `yaml:"segments"`
	Engine struct {
		Coefficients            Coefficients `yaml:"coefficients"`
		CostOfFunds             float64      `yaml:"cost_of_funds"`
		OpExRate                float64      `yaml:"opex_rate"`
		LossFloor               float64      `yaml:"loss_floor"` // percent, never undercut
		LossQuadCoeff           float64      `yaml:"loss_quad_coeff"`
		ProvisionDamping        float64      `yaml:"provision_damping"`
		EconomicCapitalRate     float64      `yaml:"economic_capital_rate"`
		ConstrainedUsagePenalty float64      `yaml:"constrained_usage_penalty"`
	} `yaml:"engine"`
	Solvency struct {
		Floor float64 `yaml:"floor"` // percent of RWA
	} `yaml:"solvency"`
	Scoring struct {
		RarocWeight       float64 `yaml:"raroc_weight"`
		RoeWeight         float64 `yaml:"roe_weight"`
		DistressThreshold float64 `yaml:"distress_threshold"`
		DistressPenalty   float64 `yaml:"distress_penalty"`
		OutperformerScore float64 `yaml:"outperformer_score"`
		DivergenceGap     float64 `yaml:"divergence_gap"`
		LaggardCapital    float64 `yaml:"laggard_capital"`
		LaggardScore      float64 `yaml:"laggard_score"`
	} `yaml:"scoring"`
	Scenarios []ScenarioBand `yaml:"scenarios"`
	Database  struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Autopilot struct {
		Enabled   bool   `yaml:"enabled"`
		OpenCron  string `yaml:"open_cron"`
		CloseCron string `yaml:"close_cron"`
	} `yaml:"autopilot"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file is not an error: defaults describe
// a complete playable session.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("ADMIN_KEY"); v != "" {
		cfg.Server.AdminKey = v
	}
	if v := os.Getenv("TOTAL_ROUNDS"); v != "" {
		var n int
		if _, err := fmt.Sscanf(v, "%d", &n); err == nil {
			cfg.Session.TotalRounds = n
		}
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":3000"
	}
	if c.Server.AdminKey == "" {
		c.Server.AdminKey = "admin"
	}
	if c.Session.TotalRounds == 0 {
		c.Session.TotalRounds = 9
	}
	if c.Seed.Receivables == 0 {
		c.Seed.Receivables = 1000
	}
	if c.Seed.PrimeShare == 0 {
		c.Seed.PrimeShare = 0.70
	}
	if c.Seed.CapitalRatio == 0 {
		c.Seed.CapitalRatio = 14.0
	}
	if c.Seed.RiskIndex == 0 {
		c.Seed.RiskIndex = 2.5
	}
	if c.Seed.LossRate == 0 {
		c.Seed.LossRate = 2.5
	}
	if c.Seed.ProvisionRate == 0 {
		c.Seed.ProvisionRate = 2.5
	}
	if c.Seed.ROE == 0 {
		c.Seed.ROE = 12.0
	}
	if c.Segments.PrimeWeight == 0 {
		c.Segments.PrimeWeight = 0.75
	}
	if c.Segments.SubPrimeWeight == 0 {
		c.Segments.SubPrimeWeight = 1.50
	}
	if c.Segments.PrimeYield == 0 {
		c.Segments.PrimeYield = 0.105
	}
	if c.Segments.SubPrimeYield == 0 {
		c.Segments.SubPrimeYield = 0.185
	}
	if c.Segments.TiltConservative == (SegmentTilt{}) {
		c.Segments.TiltConservative = SegmentTilt{Prime: 1.02, SubPrime: 0.95}
	}
	if c.Segments.TiltBalanced == (SegmentTilt{}) {
		c.Segments.TiltBalanced = SegmentTilt{Prime: 1.0, SubPrime: 1.0}
	}
	if c.Segments.TiltAggressive == (SegmentTilt{}) {
		c.Segments.TiltAggressive = SegmentTilt{Prime: 0.97, SubPrime: 1.08}
	}
	if c.Engine.Coefficients == (Coefficients{}) {
		c.Engine.Coefficients = Coefficients{
			VolumeGrowthStep:        0.08,
			ConservativeGrowthDrag:  0.04,
			AggressiveGrowthBoost:   0.08,
			ConservativeLineRisk:    0.85,
			AggressiveLineRisk:      1.3,
			UpsellGrowthStep:        0.03,
			UpsellRiskStep:          0.07,
			TransferGrowthStep:      0.04,
			SelectiveFreezeFactor:   0.97,
			ReactiveFreezeFactor:    0.92,
			CollectionsBenefitStep:  0.15,
			CollectionsCostStep:     0.25,
			AcquisitionVolumeStep:   0.5,
			AcquisitionTransferStep: 0.3,
			BaseRiskVolumeWeight:    0.6,
			BaseRiskUpsellWeight:    0.4,
			BaseRiskWeight:          0.3,
			TailLineWeight:          1.8,
			TailUpsellWeight:        0.3,
		}
	}
	if c.Engine.CostOfFunds == 0 {
		c.Engine.CostOfFunds = 0.045
	}
	if c.Engine.OpExRate == 0 {
		c.Engine.OpExRate = 0.025
	}
	if c.Engine.LossFloor == 0 {
		c.Engine.LossFloor = 0.5
	}
	if c.Engine.LossQuadCoeff == 0 {
		c.Engine.LossQuadCoeff = 0.2
	}
	if c.Engine.ProvisionDamping == 0 {
		c.Engine.ProvisionDamping = 0.8
	}
	if c.Engine.EconomicCapitalRate == 0 {
		c.Engine.EconomicCapitalRate = 0.12
	}
	if c.Engine.ConstrainedUsagePenalty == 0 {
		c.Engine.ConstrainedUsagePenalty = 1.5
	}
	if c.Solvency.Floor == 0 {
		c.Solvency.Floor = 9.0
	}
	if c.Scoring.RarocWeight == 0 {
		c.Scoring.RarocWeight = 0.7
	}
	if c.Scoring.RoeWeight == 0 {
		c.Scoring.RoeWeight = 0.3
	}
	if c.Scoring.DistressThreshold == 0 {
		c.Scoring.DistressThreshold = 8.0
	}
	if c.Scoring.DistressPenalty == 0 {
		c.Scoring.DistressPenalty = 50.0
	}
	if c.Scoring.OutperformerScore == 0 {
		c.Scoring.OutperformerScore = 25.0
	}
	if c.Scoring.DivergenceGap == 0 {
		c.Scoring.DivergenceGap = 10.0
	}
	if c.Scoring.LaggardCapital == 0 {
		c.Scoring.LaggardCapital = 18.0
	}
	if c.Scoring.LaggardScore == 0 {
		c.Scoring.LaggardScore = 10.0
	}
	if len(c.Scenarios) == 0 {
		c.Scenarios = []ScenarioBand{
			{ID: "A", Name: "Expansion", FromRound: 1, ToRound: 3, Severity: 0.8, TailWeight: 0.3, MacroGrowth: 1.04, ProvisionMultiplier: 1.1},
			{ID: "B", Name: "Late Cycle", FromRound: 4, ToRound: 6, Severity: 1.2, TailWeight: 0.8, MacroGrowth: 1.04, ProvisionMultiplier: 1.1},
			{ID: "C", Name: "Shock", FromRound: 7, ToRound: 9, Severity: 2.2, TailWeight: 1.5, MacroGrowth: 0.85, ProvisionMultiplier: 1.8},
		}
	}
	if c.Autopilot.OpenCron == "" {
		c.Autopilot.OpenCron = "0 0/10 * * * *"
	}
	if c.Autopilot.CloseCron == "" {
		c.Autopilot.CloseCron = "0 5/10 * * * *"
	}
}

// Validate checks internal consistency of the loaded configuration.
func (c *Config) Validate() error {
	if c.Session.TotalRounds < 1 {
		return fmt.Errorf("session.total_rounds must be positive")
	}
	if c.Seed.Receivables <= 0 {
		return fmt.Errorf("seed.receivables must be positive")
	}
	if c.Seed.PrimeShare < 0 || c.Seed.PrimeShare > 1 {
		return fmt.Errorf("seed.prime_share must be in [0,1]")
	}
	if c.Solvency.Floor <= 0 {
		return fmt.Errorf("solvency.floor must be positive")
	}
	if c.Scoring.DistressThreshold >= c.Solvency.Floor {
		return fmt.Errorf("scoring.distress_threshold must sit below solvency.floor")
	}
	if c.Engine.LossFloor <= 0 {
		return fmt.Errorf("engine.loss_floor must be positive")
	}
	covered := make(map[int]bool)
	for _, b := range c.Scenarios {
		if b.FromRound < 1 || b.ToRound < b.FromRound {
			return fmt.Errorf("scenario %s: bad round range [%d,%d]", b.ID, b.FromRound, b.ToRound)
		}
		if b.Severity <= 0 {
			return fmt.Errorf("scenario %s: severity must be positive", b.ID)
		}
		if b.TailWeight < 0 {
			return fmt.Errorf("scenario %s: tail_weight must be non-negative", b.ID)
		}
		for r := b.FromRound; r <= b.ToRound; r++ {
			if covered[r] {
				return fmt.Errorf("scenario %s: round %d covered twice", b.ID, r)
			}
			covered[r] = true
		}
	}
	for r := 1; r <= c.Session.TotalRounds; r++ {
		if !covered[r] {
			return fmt.Errorf("no scenario covers round %d", r)
		}
	}
	return nil
}

// Tilt returns the segment drift for a line strategy choice.
func (c *Config) Tilt(line string) SegmentTilt {
	switch line {
	case "Conservative":
		return c.Segments.TiltConservative
	case "Aggressive":
		return c.Segments.TiltAggressive
	default:
		return c.Segments.TiltBalanced
	}
}
