package wrappers

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/fogleman/gg"
	"github.com/samuelfneumann/a2c/environment"
	ts "github.com/samuelfneumann/a2c/timestep"
	"gonum.org/v1/gonum/mat"
)

const (
	// StatsFile is the name of the file in the monitor directory which
	// holds the episode statistics
	StatsFile = "stats.json"

	// MaxFrames is the maximum number of frames recorded per episode
	MaxFrames = 1000
)

// Stats holds the statistics of all episodes completed in a monitored
// environment
type Stats struct {
	Start          time.Time `json:"start"`
	EpisodeLengths []int     `json:"episode_lengths"`
	EpisodeRewards []float64 `json:"episode_rewards"`
	EndTypes       []string  `json:"end_types"`
}

// Monitor wraps an environment and records the length and total
// reward of each episode to a stats file in a directory. If the
// wrapped environment implements environment.Renderer, frames of some
// episodes are also saved to the directory as PNG images. Episodes are
// recorded on a capped cubic schedule: episodes 0, 1, 8, 27, ..., 1000
// and every 1000th episode thereafter.
//
// Monitor itself implements the environment.Environment interface.
type Monitor struct {
	environment.Environment
	dir      string
	renderer environment.Renderer

	stats         Stats
	episode       int
	episodeSteps  int
	episodeReward float64
	frame         int
}

// NewMonitor returns a new Monitor which records statistics of
// episodes of env to dir. The directory is created if it does not
// exist. The current timestep of env is taken to be the first step of
// the first episode.
func NewMonitor(env environment.Environment, dir string) (*Monitor, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("newMonitor: could not create directory: %v",
			err)
	}

	renderer, _ := env.(environment.Renderer)
	m := &Monitor{
		Environment: env,
		dir:         dir,
		renderer:    renderer,
		stats:       Stats{Start: time.Now()},
	}

	if err := m.recordFrame(); err != nil {
		return nil, fmt.Errorf("newMonitor: %v", err)
	}
	return m, nil
}

// Reset resets the environment to some starting state, beginning a
// new episode. An unfinished episode is discarded.
func (m *Monitor) Reset() (ts.TimeStep, error) {
	step, err := m.Environment.Reset()
	if err != nil {
		return step, err
	}

	if m.episodeSteps > 0 {
		m.episode++
	}
	m.episodeSteps = 0
	m.episodeReward = 0
	m.frame = 0

	if err := m.recordFrame(); err != nil {
		return step, fmt.Errorf("reset: %v", err)
	}
	return step, nil
}

// Step takes a single environmental step, recording the episode
// statistics when the episode ends
func (m *Monitor) Step(a *mat.VecDense) (ts.TimeStep, bool, error) {
	step, done, err := m.Environment.Step(a)
	if err != nil {
		return step, done, err
	}

	m.episodeSteps++
	m.episodeReward += step.Reward

	if err := m.recordFrame(); err != nil {
		return step, done, fmt.Errorf("step: %v", err)
	}

	if done {
		m.stats.EpisodeLengths = append(m.stats.EpisodeLengths,
			m.episodeSteps)
		m.stats.EpisodeRewards = append(m.stats.EpisodeRewards,
			m.episodeReward)
		m.stats.EndTypes = append(m.stats.EndTypes, step.EndType().String())

		m.episode++
		m.episodeSteps = 0
		m.episodeReward = 0
		m.frame = 0

		if err := m.flush(); err != nil {
			return step, done, fmt.Errorf("step: %v", err)
		}
	}

	return step, done, nil
}

// Stats returns the statistics of all episodes completed so far
func (m *Monitor) Stats() Stats {
	return m.stats
}

// Close writes the episode statistics and closes the wrapped
// environment if it implements environment.Closer
func (m *Monitor) Close() error {
	if err := m.flush(); err != nil {
		return fmt.Errorf("close: %v", err)
	}

	if c, ok := m.Environment.(environment.Closer); ok {
		return c.Close()
	}
	return nil
}

// flush writes the episode statistics to the stats file
func (m *Monitor) flush() error {
	data, err := json.Marshal(m.stats)
	if err != nil {
		return fmt.Errorf("flush: could not encode stats: %v", err)
	}

	path := filepath.Join(m.dir, StatsFile)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("flush: could not write stats: %v", err)
	}
	return nil
}

// recordFrame saves the current frame of the environment if the
// current episode is scheduled for recording
func (m *Monitor) recordFrame() error {
	if m.renderer == nil || !RecordEpisode(m.episode) ||
		m.frame >= MaxFrames {
		return nil
	}

	img, err := m.renderer.Render()
	if err != nil {
		return fmt.Errorf("recordFrame: %v", err)
	}

	dir := filepath.Join(m.dir, fmt.Sprintf("episode%06d", m.episode))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("recordFrame: could not create directory: %v", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("frame%04d.png", m.frame))
	if err := gg.SavePNG(path, img); err != nil {
		return fmt.Errorf("recordFrame: %v", err)
	}

	m.frame++
	return nil
}

// RecordEpisode returns whether the episode with the given index is
// recorded, following a capped cubic schedule
func RecordEpisode(episode int) bool {
	if episode < 1000 {
		root := int(math.Round(math.Cbrt(float64(episode))))
		return root*root*root == episode
	}
	return episode%1000 == 0
}
