package model

// Scenario is one macro environment in the scripted timeline. Instances are
// built from the config table at startup and never mutated.
type Scenario struct {
	ID         string
	Name       string
	Severity   float64 // scales the quadratic loss transform
	TailWeight float64 // weight of the tail-risk term in the risk index
	// MacroGrowth multiplies every team's balance growth (contraction < 1).
	MacroGrowth float64
	// ProvisionMultiplier scales forward-looking provisioning. Kept damped
	// relative to the loss floor in shock so the same deterioration is not
	// charged twice through losses and provisions.
	ProvisionMultiplier float64
}
