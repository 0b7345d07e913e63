// Package cartpole implements the Cartpole classic control environment
package cartpole

import (
	"fmt"
	"math"

	env "github.com/samuelfneumann/a2c/environment"
	ts "github.com/samuelfneumann/a2c/timestep"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
)

const (
	// Physical constants
	Gravity        float64 = 9.8
	CartMass       float64 = 1.0
	PoleMass       float64 = 0.1
	TotalMass      float64 = CartMass + PoleMass
	HalfPoleLength float64 = 0.5  // half of pole length
	ForceMag       float64 = 10.0 // Magnification of force applied
	Dt             float64 = 0.02 // seconds between state updates

	// Bounds (+/-) on state variables
	PositionBounds        float64 = 4.8
	SpeedBounds           float64 = math.MaxFloat64
	AngleBounds           float64 = 2 * FailAngle
	AngularVelocityBounds float64 = math.MaxFloat64

	// Discrete Actions
	ActionDims        int = 1
	MinDiscreteAction int = 0
	MaxDiscreteAction int = 1

	ObservationDims int = 4
)

// base implements the underlying Cartpole dynamics. Discrete embeds a
// base and converts its actions into the direction of the force
// applied to the cart.
//
// The state features are continuous and consist of the cart's x
// position and speed, as well as the pole's angle from the positive
// y-axis and the pole's angular velocity.
type base struct {
	env.Task
	lastStep       ts.TimeStep
	discount       float64
	gravity        float64
	forceMag       float64
	poleMass       float64
	halfPoleLength float64
	cartMass       float64
	dt             float64

	positionBounds        r1.Interval
	speedBounds           r1.Interval
	angleBounds           r1.Interval
	angularVelocityBounds r1.Interval
}

// newBase constructs a new base Cartpole environment
func newBase(t env.Task, discount float64) (*base, ts.TimeStep, error) {
	positionBounds := r1.Interval{Min: -PositionBounds, Max: PositionBounds}
	speedBounds := r1.Interval{Min: -SpeedBounds, Max: SpeedBounds}
	angleBounds := r1.Interval{Min: -AngleBounds, Max: AngleBounds}
	angularVelocityBounds := r1.Interval{Min: -AngularVelocityBounds,
		Max: AngularVelocityBounds}

	c := &base{
		Task:                  t,
		discount:              discount,
		gravity:               Gravity,
		forceMag:              ForceMag,
		poleMass:              PoleMass,
		halfPoleLength:        HalfPoleLength,
		cartMass:              CartMass,
		dt:                    Dt,
		positionBounds:        positionBounds,
		speedBounds:           speedBounds,
		angleBounds:           angleBounds,
		angularVelocityBounds: angularVelocityBounds,
	}

	firstStep, err := c.Reset()
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("newBase: %v", err)
	}
	return c, firstStep, nil
}

// Reset resets the environment and returns a starting state drawn from
// the environment Starter
func (c *base) Reset() (ts.TimeStep, error) {
	state := c.Start()
	if err := c.validateState(state); err != nil {
		return ts.TimeStep{}, fmt.Errorf("reset: %v", err)
	}

	startStep := ts.New(ts.First, 0, c.discount, state, 0)
	c.lastStep = startStep

	return startStep, nil
}

// CurrentTimeStep returns the last TimeStep generated by the environment
func (c *base) CurrentTimeStep() ts.TimeStep {
	return c.lastStep
}

// ObservationSpec returns the observation specification of the
// environment
func (c *base) ObservationSpec() env.Spec {
	shape := mat.NewVecDense(ObservationDims, nil)

	lower := []float64{c.positionBounds.Min, c.speedBounds.Min,
		c.angleBounds.Min, c.angularVelocityBounds.Min}
	lowerBound := mat.NewVecDense(ObservationDims, lower)

	upper := []float64{c.positionBounds.Max, c.speedBounds.Max,
		c.angleBounds.Max, c.angularVelocityBounds.Max}
	upperBound := mat.NewVecDense(ObservationDims, upper)

	return env.NewSpec(shape, env.Observation, lowerBound,
		upperBound, env.Continuous)
}

// DiscountSpec returns the discounting specification of the environment
func (c *base) DiscountSpec() env.Spec {
	shape := mat.NewVecDense(1, nil)
	bound := mat.NewVecDense(1, []float64{c.discount})

	return env.NewSpec(shape, env.Discount, bound, bound, env.Continuous)
}

// nextState calculates the next state of the environment when force
// is applied in the given direction, which should be -1 or 1.
func (c *base) nextState(direction float64) *mat.VecDense {
	state := c.lastStep.Observation
	x, xDot := state.AtVec(0), state.AtVec(1)
	th, thDot := state.AtVec(2), state.AtVec(3)

	force := direction * c.forceMag

	cosTheta := math.Cos(th)
	sinTheta := math.Sin(th)

	totalMass := c.poleMass + c.cartMass
	poleMassLength := c.poleMass * c.halfPoleLength

	temp := (force + poleMassLength*thDot*thDot*sinTheta) / totalMass
	thAcc := (c.gravity*sinTheta - cosTheta*temp) / (c.halfPoleLength *
		(4.0/3.0 - c.poleMass*cosTheta*cosTheta/totalMass))
	xAcc := temp - poleMassLength*thAcc*cosTheta/totalMass

	// Euler kinematic integration
	x += c.dt * xDot
	xDot += c.dt * xAcc
	th += c.dt * thDot
	thDot += c.dt * thAcc

	return mat.NewVecDense(ObservationDims, []float64{x, xDot, th, thDot})
}

// update sets the current state of the environment to newState and
// returns the resulting TimeStep, with its reward computed and its
// StepType adjusted by the Task.
func (c *base) update(action, newState *mat.VecDense) (ts.TimeStep, bool) {
	reward := c.GetReward(c.lastStep.Observation, action, newState)
	nextStep := ts.New(ts.Mid, reward, c.discount, newState,
		c.lastStep.Number+1)

	// Check if the step ends the episode
	c.End(&nextStep)

	c.lastStep = nextStep
	return nextStep, nextStep.Last()
}

// validateState ensures that a state observation is within the
// physical bounds of the Cartpole environment
func (c *base) validateState(obs mat.Vector) error {
	bounds := []r1.Interval{c.positionBounds, c.speedBounds, c.angleBounds,
		c.angularVelocityBounds}
	names := []string{"position", "speed", "angle", "angular velocity"}

	for i := range bounds {
		if obs.AtVec(i) < bounds[i].Min || obs.AtVec(i) > bounds[i].Max {
			return fmt.Errorf("%v %v ∉ [%v, %v]", names[i],
				obs.AtVec(i), bounds[i].Min, bounds[i].Max)
		}
	}
	return nil
}

func (c *base) String() string {
	msg := "Cartpole  |  Position: %v  | Speed: %v  |  Angle: %v" +
		"  |  Angular Velocity: %v"

	state := c.lastStep.Observation
	position, speed := state.AtVec(0), state.AtVec(1)
	angle, velocity := state.AtVec(2), state.AtVec(3)

	return fmt.Sprintf(msg, position, speed, angle, velocity)
}
