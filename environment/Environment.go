// Package environment outlines the interfaces and sturcts needed to implement
// concrete environments
package environment

import (
	"fmt"
	"image"

	ts "github.com/samuelfneumann/a2c/timestep"
	"gonum.org/v1/gonum/mat"
)

// Starter implements a distribution of starting states and samples starting
// states for environments
type Starter interface {
	Start() *mat.VecDense
}

// Ender determines when an episode should end. End() adjusts the
// TimeStep's StepType and EndType when the episode ends.
type Ender interface {
	End(*ts.TimeStep) bool
}

// Task implements the reward scheme and episode ending conditions for
// taking actions in some environment
type Task interface {
	Starter
	Ender
	GetReward(state, action, nextState mat.Vector) float64
	RewardSpec() Spec
}

// Environment implements a simualted environment, which includes a Task to
// complete
type Environment interface {
	Reset() (ts.TimeStep, error) // Resets between episodes
	Step(action *mat.VecDense) (ts.TimeStep, bool, error)
	CurrentTimeStep() ts.TimeStep

	DiscountSpec() Spec
	ObservationSpec() Spec
	ActionSpec() Spec
}

// Closer is an Environment that holds resources which must be released
// once the Environment is no longer needed
type Closer interface {
	Environment
	Close() error
}

// Renderer is an Environment that can draw its current state
type Renderer interface {
	Environment
	Render() (image.Image, error)
}

// NumActions returns the number of actions in an environment with a
// discrete, one-dimensional action space.
func NumActions(e Environment) (int, error) {
	spec := e.ActionSpec()
	if spec.Cardinality != Discrete {
		return 0, fmt.Errorf("numActions: action space must be discrete, "+
			"have %v", spec.Cardinality)
	}
	if spec.Shape.Len() != 1 {
		return 0, fmt.Errorf("numActions: action space must be "+
			"one-dimensional, have %d dimensions", spec.Shape.Len())
	}
	return int(spec.UpperBound.AtVec(0)-spec.LowerBound.AtVec(0)) + 1, nil
}
