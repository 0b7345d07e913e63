package environment

import ts "github.com/samuelfneumann/a2c/timestep"

// StepLimit implements the Ender interface to end episodes at specific
// timestep limits. A limit of 0 never ends an episode.
type StepLimit struct {
	episodeSteps int
}

// NewStepLimit creates and returns a new step limit
func NewStepLimit(episodeSteps int) *StepLimit {
	return &StepLimit{episodeSteps}
}

// End reports whether t is the last step allowed in an episode. If
// so, t is marked as ending the episode by timeout.
func (s *StepLimit) End(t *ts.TimeStep) bool {
	if s.episodeSteps <= 0 || t.Number < s.episodeSteps {
		return false
	}
	endEpisode(t, ts.Timeout)
	return true
}
