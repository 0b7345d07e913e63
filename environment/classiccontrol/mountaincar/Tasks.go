package mountaincar

import (
	env "github.com/samuelfneumann/a2c/environment"
	"github.com/samuelfneumann/a2c/timestep"
	"gonum.org/v1/gonum/mat"
)

const (
	// Commonly used goal position
	GoalPosition float64 = 0.5
)

// Goal implements the classic control task of reaching a goal on
// Mountain Car. In this task, the agent must learn to drive the car
// up the hill and reach the goal state.
//
// Rewards are -1 on every timestep, including the one which reaches
// the goal.
//
// Episodes end after a step limit or when the car reaches the goal
// position. A step limit of 0 lets episodes run until the goal is
// reached.
type Goal struct {
	env.Starter
	goalEnder env.Ender
	stepEnder *env.StepLimit
}

// NewGoal creates and returns a new Goal struct given a Starter, which
// determines the starting states; the maximum number of episode
// steps; and the goal x position.
func NewGoal(s env.Starter, episodeSteps int, goalX float64) *Goal {
	stepEnder := env.NewStepLimit(episodeSteps)

	atGoal := func(state *mat.VecDense) bool {
		return state.AtVec(0) >= goalX
	}
	goalEnder := env.NewFunctionEnder(atGoal, timestep.TerminalStateReached)

	return &Goal{s, goalEnder, stepEnder}
}

// GetReward returns the reward for a given state and action, resulting
// in a given next state.
func (g *Goal) GetReward(_, _, _ mat.Vector) float64 {
	return -1.0
}

// RewardSpec returns the reward specification of the Task
func (g *Goal) RewardSpec() env.Spec {
	shape := mat.NewVecDense(1, nil)
	bound := mat.NewVecDense(1, []float64{-1.0})

	return env.NewSpec(shape, env.Reward, bound, bound, env.Discrete)
}

// End determines if a timestep is the last timestep in the episode.
// If so, it changes the TimeStep's StepType to timestep.Last.
func (g *Goal) End(t *timestep.TimeStep) bool {
	if end := g.goalEnder.End(t); end {
		return true
	}

	if end := g.stepEnder.End(t); end {
		return true
	}
	return false
}
