package environment

import (
	"github.com/samuelfneumann/a2c/timestep"
	"gonum.org/v1/gonum/mat"
)

// FunctionEnder ends an episode once a predicate of the observation
// holds, such as reaching a goal region.
type FunctionEnder struct {
	done    func(obs *mat.VecDense) bool
	endType timestep.EndType
}

// NewFunctionEnder returns an Ender that marks the timestep as the
// last of its episode, with end type endType, when done returns true
// for its observation.
func NewFunctionEnder(done func(*mat.VecDense) bool,
	endType timestep.EndType) Ender {
	return &FunctionEnder{done: done, endType: endType}
}

// End reports whether t ends the episode, updating its StepType and
// EndType if so.
func (f *FunctionEnder) End(t *timestep.TimeStep) bool {
	if !f.done(t.Observation) {
		return false
	}
	endEpisode(t, f.endType)
	return true
}

// endEpisode marks t as the last step of its episode
func endEpisode(t *timestep.TimeStep, e timestep.EndType) {
	t.StepType = timestep.Last
	t.SetEnd(e)
}
