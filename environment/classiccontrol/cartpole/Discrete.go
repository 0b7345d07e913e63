package cartpole

import (
	"fmt"

	env "github.com/samuelfneumann/a2c/environment"
	ts "github.com/samuelfneumann/a2c/timestep"
	"gonum.org/v1/gonum/mat"
)

// Discrete implements the classic control environment Cartpole with
// discrete actions. In this environment, a pole is attached to a cart,
// which can move horizontally along a frictionless track. Gravity
// pulls the pole downwards so that balancing it in an upright position
// is difficult.
//
// Actions are discrete, consisting of the direction to apply
// horizontal force to the cart. Legal actions are in {0, 1}:
//
//	Action		Meaning
//	  0			Push cart left
//	  1			Push cart right
//
// Illegal actions will cause the environment to panic.
//
// Discrete implements the environment.Environment interface
type Discrete struct {
	*base
}

// NewDiscrete constructs a new Cartpole environment with discrete
// actions
func NewDiscrete(t env.Task, discount float64) (*Discrete, ts.TimeStep,
	error) {
	base, firstStep, err := newBase(t, discount)
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("newDiscrete: %v", err)
	}

	return &Discrete{base}, firstStep, nil
}

// ActionSpec returns the action specification of the environment
func (c *Discrete) ActionSpec() env.Spec {
	shape := mat.NewVecDense(ActionDims, nil)
	lowerBound := mat.NewVecDense(ActionDims,
		[]float64{float64(MinDiscreteAction)})
	upperBound := mat.NewVecDense(ActionDims,
		[]float64{float64(MaxDiscreteAction)})

	return env.NewSpec(shape, env.Action, lowerBound, upperBound,
		env.Discrete)
}

// Step takes one environmental step given action a and returns the next
// timestep as a timestep.TimeStep and a bool indicating whether or not
// the episode has ended. Legal actions are in the set {0, 1}. Actions
// outside this range will cause the environment to panic.
func (c *Discrete) Step(a *mat.VecDense) (ts.TimeStep, bool, error) {
	if a.Len() > ActionDims {
		panic("Actions should be 1-dimensional")
	}

	intAction := int(a.AtVec(0))
	if intAction < MinDiscreteAction || intAction > MaxDiscreteAction {
		panic(fmt.Sprintf("illegal action %v ∉ (0, 1)", intAction))
	}

	// Convert action (0, 1) to a direction (-1, 1)
	direction := 2*float64(intAction) - 1

	step, done := c.update(a, c.nextState(direction))
	return step, done, nil
}
