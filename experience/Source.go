package experience

import (
	"fmt"

	env "github.com/samuelfneumann/a2c/environment"
	"gonum.org/v1/gonum/mat"
)

// Source generates windows of experience from an agent acting in an
// environment. Windows hold up to steps consecutive transitions.
//
// Each environment step adds a transition to a sliding window. Once
// the window holds steps transitions, a copy of it is emitted on every
// step. When the episode ends, the shorter windows at the end of the
// episode are emitted as well, so that every transition of the episode
// starts exactly one window. The environment is then reset.
type Source struct {
	env   env.Environment
	agent Agent
	steps int

	obs     []float32
	history []Transition
	pending []Window

	episodeReward float64
	episodeSteps  int
	totalRewards  []float64
	totalSteps    []int
}

// NewSource returns a new Source of windows of at most steps
// transitions. The environment's current timestep is taken to be the
// start of the first episode.
func NewSource(e env.Environment, agent Agent, steps int) (*Source, error) {
	if steps < 1 {
		return nil, fmt.Errorf("newSource: steps must be positive, got %v",
			steps)
	}

	step := e.CurrentTimeStep()
	if step.Observation == nil {
		return nil, fmt.Errorf("newSource: environment has no current " +
			"observation")
	}

	return &Source{
		env:     e,
		agent:   agent,
		steps:   steps,
		obs:     step.Features(),
		history: make([]Transition, 0, steps+1),
	}, nil
}

// Next returns the next window of experience. Next steps the
// environment as many times as needed to produce a window. Errors
// from the agent or environment are returned as is; the Source should
// not be used after an error.
func (s *Source) Next() (Window, error) {
	for len(s.pending) == 0 {
		if err := s.step(); err != nil {
			return nil, fmt.Errorf("next: %w", err)
		}
	}

	w := s.pending[0]
	s.pending[0] = nil
	s.pending = s.pending[1:]
	return w, nil
}

// step takes a single environment step, queueing all windows that the
// step completes
func (s *Source) step() error {
	action, err := s.agent.Act(s.obs)
	if err != nil {
		return err
	}

	a := mat.NewVecDense(1, []float64{float64(action)})
	next, done, err := s.env.Step(a)
	if err != nil {
		return err
	}

	s.history = append(s.history, Transition{
		State:  s.obs,
		Action: action,
		Reward: float32(next.Reward),
		Done:   done,
	})
	if len(s.history) > s.steps {
		s.history = s.history[1:]
	}
	if len(s.history) == s.steps {
		s.emit(s.history)
	}

	s.obs = next.Features()
	s.episodeReward += next.Reward
	s.episodeSteps++

	if !done {
		return nil
	}

	// Emit the tail of the episode
	if len(s.history) < s.steps {
		s.emit(s.history)
	}
	for len(s.history) > 1 {
		s.history = s.history[1:]
		s.emit(s.history)
	}

	s.totalRewards = append(s.totalRewards, s.episodeReward)
	s.totalSteps = append(s.totalSteps, s.episodeSteps)
	s.episodeReward = 0
	s.episodeSteps = 0
	s.history = make([]Transition, 0, s.steps+1)

	start, err := s.env.Reset()
	if err != nil {
		return err
	}
	s.obs = start.Features()
	return nil
}

// emit queues a copy of the transitions as a Window
func (s *Source) emit(transitions []Transition) {
	w := make(Window, len(transitions))
	copy(w, transitions)
	s.pending = append(s.pending, w)
}

// PopTotalRewards returns the total rewards of all episodes finished
// since the last call, oldest first, and forgets them.
func (s *Source) PopTotalRewards() []float64 {
	r := s.totalRewards
	s.totalRewards = nil
	return r
}

// PopEpisodeSteps returns the lengths of all episodes finished since
// the last call, oldest first, and forgets them.
func (s *Source) PopEpisodeSteps() []int {
	r := s.totalSteps
	s.totalSteps = nil
	return r
}
