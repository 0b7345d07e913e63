package solver

import G "gorgonia.org/gorgonia"

// VanillaConfig describes a configuration of the vanilla gradient
// descent solver.
type VanillaConfig struct {
	StepSize float64
	Batch    int
	Clip     float64 // <= 0 if no clipping
}

// NewVanilla returns a new Vanilla Solver
func NewVanilla(stepSize float64, batchSize int,
	clip float64) (*Solver, error) {
	return newSolver(Vanilla, VanillaConfig{
		StepSize: stepSize,
		Batch:    batchSize,
		Clip:     clip,
	})
}

// Create returns a Gorgonia Vanilla Solver as described by the
// VanillaConfig
func (v VanillaConfig) Create() G.Solver {
	opts := []G.SolverOpt{
		G.WithLearnRate(v.StepSize),
		G.WithBatchSize(float64(v.Batch)),
	}
	return G.NewVanillaSolver(withClip(opts, v.Clip)...)
}

func (v VanillaConfig) ValidType(t Type) bool {
	return t == Vanilla
}

// withClip adds gradient clipping at clip to opts if clip is positive
func withClip(opts []G.SolverOpt, clip float64) []G.SolverOpt {
	if clip <= 0 {
		return opts
	}
	return append(opts, G.WithClip(clip))
}
