// Package experience implements collecting n-step experience from an
// agent acting in an environment.
package experience

// Transition is the result of a single environment step: the state the
// action was taken in, the action, the reward for the action, and
// whether the step ended the episode.
type Transition struct {
	State  []float32
	Action int
	Reward float32
	Done   bool
}

// Window is a sequence of consecutive transitions within a single
// episode, oldest first.
type Window []Transition

// First returns the first transition of the window
func (w Window) First() Transition {
	return w[0]
}

// Last returns the last transition of the window
func (w Window) Last() Transition {
	return w[len(w)-1]
}

// Rewards returns the rewards of each transition in the window
func (w Window) Rewards() []float32 {
	rewards := make([]float32, len(w))
	for i := range w {
		rewards[i] = w[i].Reward
	}
	return rewards
}
