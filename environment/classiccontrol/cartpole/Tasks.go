package cartpole

import (
	"math"

	env "github.com/samuelfneumann/a2c/environment"
	ts "github.com/samuelfneumann/a2c/timestep"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
)

const (
	// FailAngle is the pole angle at which the pole is considered
	// fallen, 12 degrees
	FailAngle float64 = 12 * 2 * math.Pi / 360

	// FailPosition is the cart position at which the cart is
	// considered to have left the track
	FailPosition float64 = 2.4
)

// Balance implements the classic control Cartpole Balance task. In this
// Task, the goal of the agent is to keep the pole upright and the cart
// on the track for as long as possible.
//
// The reward is +1 for every timestep, including the one on which the
// pole falls.
//
// Episodes end when the pole falls past the fail angle, when the cart
// leaves the track, or after a step limit. A step limit of 0 lets
// episodes run until the pole falls.
type Balance struct {
	env.Starter
	stepLimiter  *env.StepLimit
	stateLimiter env.Ender
}

// NewBalance creates and returns a new Balance task
func NewBalance(s env.Starter, episodeSteps int, failAngle float64) *Balance {
	stepLimiter := env.NewStepLimit(episodeSteps)

	legal := []r1.Interval{
		{Min: -FailPosition, Max: FailPosition},
		{Min: -failAngle, Max: failAngle},
	}
	featureIndices := []int{0, 2}
	stateLimiter := env.NewIntervalLimit(legal, featureIndices,
		ts.TerminalStateReached)

	return &Balance{s, stepLimiter, stateLimiter}
}

// End checks if a TimeStep is the last in an episode. If so, it adjusts
// the TimeStep's StepType to timestep.Last and returns true. Otherwise,
// the function does not adjust the TimeStep and returns false.
func (b *Balance) End(t *ts.TimeStep) bool {
	if end := b.stateLimiter.End(t); end {
		return true
	}
	if end := b.stepLimiter.End(t); end {
		return true
	}
	return false
}

// GetReward returns the reward for an action taken in some state,
// resulting in a transition to the next state nextState.
func (b *Balance) GetReward(_, _, _ mat.Vector) float64 {
	return 1.0
}

// RewardSpec returns the reward specification for the environment
func (b *Balance) RewardSpec() env.Spec {
	shape := mat.NewVecDense(1, nil)
	bound := mat.NewVecDense(1, []float64{1.0})

	return env.NewSpec(shape, env.Reward, bound, bound, env.Continuous)
}
