// Package runfile loads the configuration of a training run from a
// run file. Run files are INI files with the sections defaults,
// learning and model:
//
//	[defaults]
//	env=CartPole-v0
//	cuda=False
//	n_steps=4
//
//	[learning]
//	lr=0.0001
//	batch_size=32
//
// YAML and TOML run files with the same layout are also accepted,
// selected by file extension.
package runfile

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/samuelfneumann/a2c/experiment"
	"github.com/samuelfneumann/a2c/initwfn"
	"github.com/samuelfneumann/a2c/solver"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config is the configuration of a training run
type Config struct {
	Defaults Defaults `mapstructure:"defaults" yaml:"defaults"`
	Learning Learning `mapstructure:"learning" yaml:"learning"`
	Model    Model    `mapstructure:"model" yaml:"model"`
}

// Defaults configures the environment and experience collection
type Defaults struct {
	Env             string `mapstructure:"env" yaml:"env"`
	CUDA            bool   `mapstructure:"cuda" yaml:"cuda"`
	Seed            uint64 `mapstructure:"seed" yaml:"seed"`
	NSteps          int    `mapstructure:"n_steps" yaml:"n_steps"`
	MaxEpisodeSteps int    `mapstructure:"max_episode_steps" yaml:"max_episode_steps"`
}

// Learning configures the updates
type Learning struct {
	LR            float64 `mapstructure:"lr" yaml:"lr"`
	BatchSize     int     `mapstructure:"batch_size" yaml:"batch_size"`
	Solver        string  `mapstructure:"solver" yaml:"solver"`
	StopReward    float64 `mapstructure:"stop_reward" yaml:"stop_reward"`
	MaxIterations int     `mapstructure:"max_iterations" yaml:"max_iterations"`
}

// Model configures the actor-critic network
type Model struct {
	Init     string  `mapstructure:"init" yaml:"init"`
	InitGain float64 `mapstructure:"init_gain" yaml:"init_gain"`
}

// required lists the keys every run file must set
var required = []string{
	"defaults.env",
	"defaults.n_steps",
	"learning.lr",
	"learning.batch_size",
}

// Load reads the run file at path. If the run file does not set a
// seed, or sets it to 0, a seed is drawn from the current time.
func Load(path string) (Config, error) {
	vp := viper.New()
	vp.SetConfigFile(path)
	vp.SetConfigType(configType(path))

	vp.SetDefault("defaults.cuda", false)
	vp.SetDefault("defaults.seed", 0)
	vp.SetDefault("defaults.max_episode_steps", 0)
	vp.SetDefault("learning.solver", string(solver.Adam))
	vp.SetDefault("learning.stop_reward", experiment.DefaultStopReward)
	vp.SetDefault("learning.max_iterations", 0)
	vp.SetDefault("model.init", string(initwfn.GlorotU))
	vp.SetDefault("model.init_gain", 1.0)

	if err := vp.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("load: could not read run file: %v", err)
	}

	for _, key := range required {
		if !vp.IsSet(key) {
			return Config{}, fmt.Errorf("load: run file %v is missing "+
				"required key %v", path, key)
		}
	}

	var c Config
	if err := vp.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("load: could not decode run file: %v", err)
	}

	if c.Defaults.Seed == 0 {
		c.Defaults.Seed = uint64(time.Now().UnixNano())
	}

	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("load: %v", err)
	}
	return c, nil
}

// configType returns the viper config type of the run file at path
func configType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	case ".toml":
		return "toml"
	default:
		return "ini"
	}
}

// Validate checks a Config for errors
func (c Config) Validate() error {
	if c.Defaults.Env == "" {
		return fmt.Errorf("validate: environment must be set")
	}
	if c.Defaults.NSteps < 1 {
		return fmt.Errorf("validate: n_steps must be positive, got %v",
			c.Defaults.NSteps)
	}
	if c.Defaults.MaxEpisodeSteps < 0 {
		return fmt.Errorf("validate: max_episode_steps must be "+
			"non-negative, got %v", c.Defaults.MaxEpisodeSteps)
	}
	if c.Learning.LR <= 0 {
		return fmt.Errorf("validate: lr must be positive, got %v",
			c.Learning.LR)
	}
	if c.Learning.BatchSize < 1 {
		return fmt.Errorf("validate: batch_size must be positive, got %v",
			c.Learning.BatchSize)
	}
	if c.Learning.MaxIterations < 0 {
		return fmt.Errorf("validate: max_iterations must be non-negative, "+
			"got %v", c.Learning.MaxIterations)
	}
	if _, err := c.SolverType(); err != nil {
		return fmt.Errorf("validate: %v", err)
	}
	if _, err := c.InitType(); err != nil {
		return fmt.Errorf("validate: %v", err)
	}
	if c.Model.InitGain <= 0 {
		return fmt.Errorf("validate: init_gain must be positive, got %v",
			c.Model.InitGain)
	}
	return nil
}

// SolverType returns the type of solver to train with
func (c Config) SolverType() (solver.Type, error) {
	return solver.ParseType(c.Learning.Solver)
}

// InitType returns the type of weight initializer of the network
func (c Config) InitType() (initwfn.Type, error) {
	return initwfn.ParseType(c.Model.Init)
}

// String returns the Config as YAML
func (c Config) String() string {
	out, err := yaml.Marshal(c)
	if err != nil {
		type plain Config
		return fmt.Sprintf("%+v", plain(c))
	}
	return string(out)
}
