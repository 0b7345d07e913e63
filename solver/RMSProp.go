package solver

import G "gorgonia.org/gorgonia"

// RMSPropConfig describes a configuration of the RMSProp solver
type RMSPropConfig struct {
	StepSize float64
	Epsilon  float64
	Rho      float64 // Decay of the squared gradient average
	Batch    int
	Clip     float64 // <= 0 if no clipping
}

// NewDefaultRMSProp returns a new RMSProp Solver with ρ = 0.99 and
// ε = 1e-8, without gradient clipping
func NewDefaultRMSProp(stepSize float64, batchSize int) (*Solver, error) {
	return NewRMSProp(stepSize, 1e-8, 0.99, batchSize, -1.0)
}

// NewRMSProp returns a new RMSProp Solver
func NewRMSProp(stepSize, epsilon, rho float64, batchSize int,
	clip float64) (*Solver, error) {
	return newSolver(RMSProp, RMSPropConfig{
		StepSize: stepSize,
		Epsilon:  epsilon,
		Rho:      rho,
		Batch:    batchSize,
		Clip:     clip,
	})
}

// Create returns a new Gorgonia RMSProp Solver as described by the
// RMSPropConfig
func (r RMSPropConfig) Create() G.Solver {
	opts := []G.SolverOpt{
		G.WithLearnRate(r.StepSize),
		G.WithEps(r.Epsilon),
		G.WithRho(r.Rho),
		G.WithBatchSize(float64(r.Batch)),
	}
	return G.NewRMSPropSolver(withClip(opts, r.Clip)...)
}

func (r RMSPropConfig) ValidType(t Type) bool {
	return t == RMSProp
}
