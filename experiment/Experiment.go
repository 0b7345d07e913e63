// Package experiment implements the training loop of an agent which
// learns from batches of experience windows.
package experiment

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/samuelfneumann/a2c/agent"
	"github.com/samuelfneumann/a2c/experience"
	"github.com/samuelfneumann/a2c/experiment/trackers"
)

const (
	// DefaultStopReward is the mean episodic reward above which the
	// experiment ends
	DefaultStopReward float64 = 300

	// DefaultWindow is the number of recent losses and episodic rewards
	// that the reported means are taken over
	DefaultWindow int = 10
)

// Source generates windows of experience and records the total reward
// of each finished episode. A Source returns io.EOF from Next when it
// has no more experience.
type Source interface {
	Next() (experience.Window, error)
	PopTotalRewards() []float64
}

// Config configures an Experiment
type Config struct {
	// Number of windows per update
	BatchSize int

	// The experiment ends when the mean of the most recent episodic
	// rewards exceeds StopReward
	StopReward float64

	// If positive, the experiment ends after this many updates
	MaxIterations int

	// Number of recent values the reported means are taken over. If 0,
	// DefaultWindow is used.
	Window int

	// Progress is written to Output, one line per update. If nil,
	// os.Stdout is used.
	Output io.Writer
}

// Result holds the outcome of an Experiment
type Result struct {
	// Number of updates performed
	Iterations int

	// Loss of each update, in order
	Losses []float64

	// Total reward of each finished episode, in order
	Rewards []float64

	// Whether the mean episodic reward exceeded the stop reward
	Solved bool
}

// Experiment trains a Learner on batches of windows drawn from a
// Source, until the mean reward of recent episodes exceeds a
// threshold.
type Experiment struct {
	source  Source
	learner agent.Learner
	config  Config

	losses  *trackers.Rolling
	rewards *trackers.Rolling
}

// New returns a new Experiment
func New(source Source, learner agent.Learner, c Config) (*Experiment,
	error) {
	if c.BatchSize <= 0 {
		return nil, fmt.Errorf("new: batch size must be positive, got %v",
			c.BatchSize)
	}
	if c.MaxIterations < 0 {
		return nil, fmt.Errorf("new: max iterations must be non-negative, "+
			"got %v", c.MaxIterations)
	}
	if c.Window == 0 {
		c.Window = DefaultWindow
	} else if c.Window < 0 {
		return nil, fmt.Errorf("new: window must be positive, got %v",
			c.Window)
	}
	if c.Output == nil {
		c.Output = os.Stdout
	}

	return &Experiment{
		source:  source,
		learner: learner,
		config:  c,
		losses:  trackers.NewRolling(c.Window),
		rewards: trackers.NewRolling(c.Window),
	}, nil
}

// Run runs the experiment until the mean episodic reward exceeds the
// stop reward, the maximum number of iterations is reached, or the
// source runs out of experience. Any other error from the source or
// learner ends the experiment and is returned together with the
// results so far.
func (e *Experiment) Run() (Result, error) {
	var result Result
	batch := make([]experience.Window, 0, e.config.BatchSize)

	for {
		w, err := e.source.Next()
		if errors.Is(err, io.EOF) {
			return result, nil
		} else if err != nil {
			return result, fmt.Errorf("run: could not get experience: %v", err)
		}

		batch = append(batch, w)
		if len(batch) < e.config.BatchSize {
			continue
		}

		loss, err := e.learner.Step(batch)
		if err != nil {
			return result, fmt.Errorf("run: iteration %v: %v",
				result.Iterations+1, err)
		}
		batch = make([]experience.Window, 0, e.config.BatchSize)
		result.Iterations++

		newRewards := e.source.PopTotalRewards()
		e.losses.Track(loss)
		e.rewards.Track(newRewards...)

		fmt.Fprintf(e.config.Output, "%d: mean_loss=%.3f, mean_reward=%.3f\n",
			result.Iterations, e.losses.Mean(), e.rewards.Mean())

		result.Losses = append(result.Losses, loss)
		result.Rewards = append(result.Rewards, newRewards...)

		if e.rewards.Mean() > e.config.StopReward {
			result.Solved = true
			return result, nil
		}
		if e.config.MaxIterations > 0 &&
			result.Iterations >= e.config.MaxIterations {
			return result, nil
		}
	}
}
