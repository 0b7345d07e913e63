package a2c

import (
	"fmt"

	"github.com/samuelfneumann/a2c/agent"
	"github.com/samuelfneumann/a2c/environment"
	"github.com/samuelfneumann/a2c/initwfn"
	"github.com/samuelfneumann/a2c/network"
	"github.com/samuelfneumann/a2c/solver"
)

// Config implements a configuration of the A2C agent
type Config struct {
	// Number of windows in each batch
	BatchSize int

	// Discount factor. If 0, Gamma is used.
	Gamma float32

	// Architecture of the shared trunk of the actor-critic network
	HiddenSizes []int
	Biases      []bool
	Activations []*network.Activation

	InitWFn *initwfn.InitWFn
	Solver  *solver.Solver
}

// DefaultConfig returns the default configuration for the given batch
// size, solver and weight initializer: two shared hidden layers of 50
// ReLU units with bias units.
func DefaultConfig(batchSize int, s *solver.Solver,
	init *initwfn.InitWFn) Config {
	return Config{
		BatchSize:   batchSize,
		Gamma:       Gamma,
		HiddenSizes: []int{50, 50},
		Biases:      []bool{true, true},
		Activations: []*network.Activation{network.ReLU(), network.ReLU()},
		InitWFn:     init,
		Solver:      s,
	}
}

// CreateAgent creates a new A2C agent from the config
func (c Config) CreateAgent(env environment.Environment) (agent.Agent,
	error) {
	a, err := New(env, c)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Validate checks a Config for errors
func (c Config) Validate() error {
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch size must be positive, got %v", c.BatchSize)
	}
	if c.Gamma < 0 || c.Gamma > 1 {
		return fmt.Errorf("discount must be in [0, 1], got %v", c.Gamma)
	}
	if len(c.HiddenSizes) != len(c.Biases) ||
		len(c.HiddenSizes) != len(c.Activations) {
		return fmt.Errorf("got %v hidden layers with %v biases and %v "+
			"activations", len(c.HiddenSizes), len(c.Biases),
			len(c.Activations))
	}
	if c.InitWFn == nil {
		return fmt.Errorf("no weight initializer")
	}
	if c.Solver == nil {
		return fmt.Errorf("no solver")
	}
	return nil
}
