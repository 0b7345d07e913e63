//go:build gym
// +build gym

package envconfig

import (
	"fmt"

	env "github.com/samuelfneumann/a2c/environment"
	"github.com/samuelfneumann/a2c/environment/gym"
	ts "github.com/samuelfneumann/a2c/timestep"
)

// GymPrefix is the id prefix of environments provided by OpenAI Gym,
// for example "gym:Acrobot-v1"
const GymPrefix = "gym:"

func init() {
	RegisterPrefix(GymPrefix, createGym)
}

func createGym(id string, o Options) (env.Environment, ts.TimeStep, error) {
	g, step, err := gym.New(id, o.Discount, o.Seed, o.MaxEpisodeSteps)
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("createGym: %v", err)
	}
	return g, step, nil
}
