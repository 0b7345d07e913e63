//go:build gym
// +build gym

// Package gym provides access to OpenAI Gym environments through the
// Go bindings at https://github.com/samuelfneumann/GoGym.
//
// Only environments with discrete or box observation and action spaces
// can be used. Building this package requires a Python installation
// with the gym package, so it is only compiled with the gym build tag.
package gym

import (
	"fmt"

	env "github.com/samuelfneumann/a2c/environment"
	ts "github.com/samuelfneumann/a2c/timestep"
	"github.com/samuelfneumann/gogym"
	"gonum.org/v1/gonum/mat"
)

// GymEnv implements access to an OpenAI Gym environment using GoGym
type GymEnv struct {
	gogym.Environment

	currentStep ts.TimeStep
	discount    float64
	stepLimit   *env.StepLimit
}

// New returns a new GymEnv with the given name, which must be a legal
// name from the OpenAI Gym suite. If episodeSteps > 0, episodes are
// additionally cut off after that many steps.
func New(name string, discount float64, seed uint64,
	episodeSteps int) (*GymEnv, ts.TimeStep, error) {
	goGymEnv, err := gogym.Make(name)
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("new: could not create "+
			"environment: %v", err)
	}

	goGymEnv.Seed(int(seed))

	gymEnv := &GymEnv{
		Environment: goGymEnv,
		discount:    discount,
		stepLimit:   env.NewStepLimit(episodeSteps),
	}

	t, err := gymEnv.Reset()
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("new: %v", err)
	}

	return gymEnv, t, nil
}

// Step takes a single environmental step
func (g *GymEnv) Step(a *mat.VecDense) (ts.TimeStep, bool, error) {
	obs, reward, done, err := g.Environment.Step(a)
	if err != nil {
		return ts.TimeStep{}, true, fmt.Errorf("step: could not step "+
			"GoGym environment: %v", err)
	}

	t := ts.New(ts.Mid, reward, g.discount, obs, g.currentStep.Number+1)
	if done {
		t.StepType = ts.Last
		t.SetEnd(ts.TerminalStateReached)
	} else {
		done = g.stepLimit.End(&t)
	}
	g.currentStep = t

	return t, done, nil
}

// Reset resets the environment to some starting state
func (g *GymEnv) Reset() (ts.TimeStep, error) {
	obs, err := g.Environment.Reset()
	if err != nil {
		return ts.TimeStep{}, fmt.Errorf("reset: could not reset "+
			"environment: %v", err)
	}

	t := ts.New(ts.First, 0, g.discount, obs, 0)
	g.currentStep = t

	return t, nil
}

// CurrentTimeStep returns the current timestep in the environment
func (g *GymEnv) CurrentTimeStep() ts.TimeStep {
	return g.currentStep
}

// ObservationSpec returns the observation spec of the environment
func (g *GymEnv) ObservationSpec() env.Spec {
	return newSpec(g.ObservationSpace(), env.Observation)
}

// ActionSpec returns the action specification of the environment
func (g *GymEnv) ActionSpec() env.Spec {
	return newSpec(g.ActionSpace(), env.Action)
}

// DiscountSpec returns the discount specification of the environment
func (g *GymEnv) DiscountSpec() env.Spec {
	shape := mat.NewVecDense(1, nil)
	low := mat.NewVecDense(1, []float64{g.discount})

	return env.NewSpec(shape, env.Discount, low, low, env.Continuous)
}

// Close performs resource cleanup after the environment is no longer
// needed
func (g *GymEnv) Close() error {
	g.Environment.Close()
	return nil
}

// space is the part of a GoGym space used to construct Specs
type space interface {
	Low() []*mat.VecDense
	High() []*mat.VecDense
}

// newSpec converts a GoGym space into a Spec of type t
func newSpec(s space, t env.SpecType) env.Spec {
	var cardinality env.Cardinality
	switch s.(type) {
	case *gogym.BoxSpace:
		cardinality = env.Continuous
	case *gogym.DiscreteSpace:
		cardinality = env.Discrete
	default:
		panic(fmt.Sprintf("newSpec: invalid space type %T, package gym "+
			"supports only GoGym's BoxSpace or DiscreteSpace", s))
	}

	low := s.Low()[0]
	high := s.High()[0]
	shape := mat.NewVecDense(low.Len(), nil)

	return env.NewSpec(shape, t, low, high, cardinality)
}
