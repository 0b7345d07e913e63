// Package timestep implements timesteps of the agent-environment interaction
package timestep

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// StepType denotes the type of step that a TimeStep can be, either  first
// environmental step, a middle step, or a last step
type StepType int

const (
	First StepType = iota
	Mid
	Last
)

func (s StepType) String() string {
	switch s {
	case First:
		return "First"
	case Last:
		return "Last"
	default:
		return "Mid"
	}
}

// EndType describes why an episode ended
type EndType int

const (
	// Not denotes a TimeStep that did not end an episode
	Not EndType = iota

	// TerminalStateReached denotes an episode that ended in a terminal
	// state of the environment
	TerminalStateReached

	// Timeout denotes an episode that was cut off by a step limit
	Timeout
)

func (e EndType) String() string {
	switch e {
	case TerminalStateReached:
		return "TerminalStateReached"
	case Timeout:
		return "Timeout"
	default:
		return "Not"
	}
}

// TimeStep packages together a single timestep in an environment
type TimeStep struct {
	StepType
	Reward      float64
	Discount    float64
	Observation *mat.VecDense
	Number      int
	endType     EndType
}

// New returns a new TimeStep
func New(t StepType, r, d float64, o *mat.VecDense, n int) TimeStep {
	return TimeStep{t, r, d, o, n, Not}
}

// SetEnd sets the reason the episode ended on this TimeStep
func (t *TimeStep) SetEnd(e EndType) {
	t.endType = e
}

// EndType returns the reason the episode ended on this TimeStep
func (t *TimeStep) EndType() EndType {
	return t.endType
}

// TerminalEnd returns whether the TimeStep ended the episode in a
// terminal state
func (t *TimeStep) TerminalEnd() bool {
	return t.Last() && t.endType == TerminalStateReached
}

// First returns whether a TimeStep is the first in an environment
func (t *TimeStep) First() bool {
	return t.StepType == First
}

// Mid returns whether a TimeStep is a middle step in an environment
func (t *TimeStep) Mid() bool {
	return t.StepType == Mid
}

// Last returns whether a TimeStep is the last step in an environment
func (t *TimeStep) Last() bool {
	return t.StepType == Last
}

// Features returns the observation of the TimeStep as a float32 slice,
// the layout consumed by the function approximators.
func (t *TimeStep) Features() []float32 {
	raw := t.Observation.RawVector()
	features := make([]float32, t.Observation.Len())
	for i := range features {
		features[i] = float32(raw.Data[i*raw.Inc])
	}
	return features
}

func (t TimeStep) String() string {
	str := "TimeStep | Type: %v  |  Reward:  %.2f  |  Discount: %.2f  |  " +
		"Step Number:  %v"

	return fmt.Sprintf(str, t.StepType, t.Reward, t.Discount, t.Number)
}
