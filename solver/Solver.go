// Package solver wraps Gorgonia Solvers so that they can be selected by
// name in run files and reported in logs.
package solver

import (
	"fmt"
	"strings"

	G "gorgonia.org/gorgonia"
)

// Type describes different types of solvers that are available
type Type string

// Available solver types
const (
	Adam    Type = "Adam"
	Vanilla Type = "Vanilla"
	RMSProp Type = "RMSProp"
)

// Types returns all available solver types
func Types() []Type {
	return []Type{Adam, Vanilla, RMSProp}
}

// ParseType returns the solver Type with the given name, ignoring case
func ParseType(name string) (Type, error) {
	for _, t := range Types() {
		if strings.EqualFold(string(t), name) {
			return t, nil
		}
	}
	return "", fmt.Errorf("parseType: no such solver %q, want one of %v",
		name, Types())
}

// Solver wraps a Gorgonia Solver together with the Config that created
// it.
type Solver struct {
	G.Solver
	Type
	Config
}

// New returns a solver of type t with default hyperparameters and the
// given step size. Gradients are averaged over batchSize samples
// before each step; a batchSize of 1 applies them unchanged.
func New(t Type, stepSize float64, batchSize int) (*Solver, error) {
	if stepSize <= 0 {
		return nil, fmt.Errorf("new: step size must be positive, got %v",
			stepSize)
	}
	if batchSize <= 0 {
		return nil, fmt.Errorf("new: batch size must be positive, got %v",
			batchSize)
	}

	switch t {
	case Adam:
		return NewDefaultAdam(stepSize, batchSize)
	case Vanilla:
		return NewVanilla(stepSize, batchSize, -1.0)
	case RMSProp:
		return NewDefaultRMSProp(stepSize, batchSize)
	}
	return nil, fmt.Errorf("new: no such solver %q", t)
}

// newSolver returns a new solver with the given type and configuration.
func newSolver(t Type, c Config) (*Solver, error) {
	if !c.ValidType(t) {
		return nil, fmt.Errorf("newSolver: invalid solver type %v for "+
			"configuration %T", t, c)
	}
	solver := Solver{Type: t, Config: c}
	solver.Solver = solver.Config.Create()

	return &solver, nil
}

// String implements the fmt.Stringer interface
func (s *Solver) String() string {
	return fmt.Sprintf("{%v Solver: %+v}", s.Type, s.Config)
}

// Config implements a Gorgonia Solver configuration and can be used to
// create Gorgonia Solvers they describe.
type Config interface {
	Create() G.Solver

	// ValidType returns whether a specific Solver type can be created
	// with the Config
	ValidType(Type) bool
}
