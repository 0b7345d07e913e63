// Package mountaincar implements the discrete action classic control
// environment "Mountain Car"
package mountaincar

import (
	"fmt"
	"math"

	env "github.com/samuelfneumann/a2c/environment"
	ts "github.com/samuelfneumann/a2c/timestep"
	"github.com/samuelfneumann/a2c/utils/floatutils"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
)

const (
	MinPosition float64 = -1.2
	MaxPosition float64 = 0.6
	MaxSpeed    float64 = 0.07
	Power       float64 = 0.001 // Engine power
	Gravity     float64 = 0.0025

	ActionDims        int = 1
	MinDiscreteAction int = 0
	MaxDiscreteAction int = 2
)

// base implements the underlying Mountain Car environment. It tracks
// the Task, the current state, and the physical constants, but does
// not convert actions into forces. Discrete embeds a base and does
// this conversion.
//
// In Mountain Car, the environment state is continuous and consists of
// the car's x position and velocity. The x position and velocity are
// bounded by the constants defined in this package.
type base struct {
	env.Task
	positionBounds r1.Interval
	speedBounds    r1.Interval
	lastStep       ts.TimeStep
	discount       float64
	power          float64
	gravity        float64
}

// newBase creates a new base environment with the argument task
func newBase(t env.Task, discount float64) (*base, ts.TimeStep, error) {
	positionBounds := r1.Interval{Min: MinPosition, Max: MaxPosition}
	speedBounds := r1.Interval{Min: -MaxSpeed, Max: MaxSpeed}

	mountainCar := &base{
		Task:           t,
		positionBounds: positionBounds,
		speedBounds:    speedBounds,
		discount:       discount,
		power:          Power,
		gravity:        Gravity,
	}

	firstStep, err := mountainCar.Reset()
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("newBase: %v", err)
	}
	return mountainCar, firstStep, nil
}

// ObservationSpec returns the observation specification of the
// environment
func (m *base) ObservationSpec() env.Spec {
	shape := mat.NewVecDense(2, nil)
	lowerBound := mat.NewVecDense(2, []float64{m.positionBounds.Min,
		m.speedBounds.Min})
	upperBound := mat.NewVecDense(2, []float64{m.positionBounds.Max,
		m.speedBounds.Max})

	return env.NewSpec(shape, env.Observation, lowerBound,
		upperBound, env.Continuous)
}

// DiscountSpec returns the discounting specification of the environment
func (m *base) DiscountSpec() env.Spec {
	shape := mat.NewVecDense(1, nil)
	bound := mat.NewVecDense(1, []float64{m.discount})

	return env.NewSpec(shape, env.Discount, bound, bound, env.Continuous)
}

// Reset resets the environment and returns a starting state drawn from
// the environment Starter
func (m *base) Reset() (ts.TimeStep, error) {
	state := m.Start()
	if err := validateState(state, m.positionBounds, m.speedBounds); err != nil {
		return ts.TimeStep{}, fmt.Errorf("reset: %v", err)
	}
	startStep := ts.New(ts.First, 0, m.discount, state, 0)
	m.lastStep = startStep

	return startStep, nil
}

// CurrentTimeStep returns the last TimeStep generated by the environment
func (m *base) CurrentTimeStep() ts.TimeStep {
	return m.lastStep
}

// nextState calculates the next state of the environment when the
// given force is applied to the car
func (m *base) nextState(force float64) *mat.VecDense {
	state := m.lastStep.Observation
	position, velocity := state.AtVec(0), state.AtVec(1)

	velocity += force*m.power - m.gravity*math.Cos(3*position)
	velocity = floatutils.Clip(velocity, m.speedBounds.Min, m.speedBounds.Max)

	position += velocity
	position = floatutils.Clip(position, m.positionBounds.Min,
		m.positionBounds.Max)

	// The left wall is inelastic
	if position <= m.positionBounds.Min && velocity < 0 {
		velocity = 0
	}

	return mat.NewVecDense(2, []float64{position, velocity})
}

// update sets the current state to newState and returns the resulting
// TimeStep, with its reward computed and its StepType adjusted by the
// Task, as well as whether the TimeStep is the last in the episode.
func (m *base) update(action, newState *mat.VecDense) (ts.TimeStep, bool) {
	reward := m.GetReward(m.lastStep.Observation, action, newState)
	nextStep := ts.New(ts.Mid, reward, m.discount, newState,
		m.lastStep.Number+1)

	m.End(&nextStep)

	m.lastStep = nextStep
	return nextStep, nextStep.Last()
}

// String returns a string representation of the environment
func (m *base) String() string {
	str := "Mountain Car  |  Position: %v  |  Speed: %v"
	state := m.lastStep.Observation
	return fmt.Sprintf(str, state.AtVec(0), state.AtVec(1))
}

// validateState validates the state to ensure the position and speed
// are within the environmental limits
func validateState(s mat.Vector, positionBounds,
	speedBounds r1.Interval) error {
	position := s.AtVec(0)
	if position < positionBounds.Min || position > positionBounds.Max {
		return fmt.Errorf("illegal position %v ∉ [%v, %v]", position,
			positionBounds.Min, positionBounds.Max)
	}

	speed := s.AtVec(1)
	if speed < speedBounds.Min || speed > speedBounds.Max {
		return fmt.Errorf("illegal speed %v ∉ [%v, %v]", speed,
			speedBounds.Min, speedBounds.Max)
	}
	return nil
}
