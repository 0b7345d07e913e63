// Package envconfig creates environments by id with default physical
// parameters and tasks. Ids follow the OpenAI Gym naming scheme, for
// example "CartPole-v1". Additional environments, such as those
// provided through OpenAI Gym itself, can be registered by id or by
// id prefix.
package envconfig

import (
	"fmt"
	"sort"
	"strings"

	env "github.com/samuelfneumann/a2c/environment"
	"github.com/samuelfneumann/a2c/environment/classiccontrol/cartpole"
	"github.com/samuelfneumann/a2c/environment/classiccontrol/mountaincar"
	ts "github.com/samuelfneumann/a2c/timestep"
	"gonum.org/v1/gonum/spatial/r1"
)

// Environments available by default
const (
	CartPoleV0    = "CartPole-v0"
	CartPoleV1    = "CartPole-v1"
	MountainCarV0 = "MountainCar-v0"
)

// DefaultDiscount is the environmental discount used when Options
// does not specify one. Environment discounts are reported through
// the environment's DiscountSpec only.
const DefaultDiscount float64 = 1.0

// Options configures the environment created by Make
type Options struct {
	Seed uint64

	// MaxEpisodeSteps cuts episodes off after this many steps. If 0,
	// episodes run until the environment reaches a terminal state.
	MaxEpisodeSteps int

	Discount float64
}

// Factory creates the environment with the given id
type Factory func(id string, o Options) (env.Environment, ts.TimeStep,
	error)

var (
	factories = map[string]Factory{
		CartPoleV0:    createCartpole,
		CartPoleV1:    createCartpole,
		MountainCarV0: createMountainCar,
	}
	prefixFactories = map[string]Factory{}
)

// RegisterPrefix registers a Factory for all ids starting with prefix.
// The Factory receives the id with the prefix removed.
func RegisterPrefix(prefix string, f Factory) {
	prefixFactories[prefix] = f
}

// IDs returns the sorted ids of all registered environments
func IDs() []string {
	ids := make([]string, 0, len(factories)+len(prefixFactories))
	for id := range factories {
		ids = append(ids, id)
	}
	for prefix := range prefixFactories {
		ids = append(ids, prefix+"*")
	}
	sort.Strings(ids)
	return ids
}

// Make returns the environment with the given id as well as its first
// timestep.
func Make(id string, o Options) (env.Environment, ts.TimeStep, error) {
	if o.Discount == 0 {
		o.Discount = DefaultDiscount
	}
	if o.MaxEpisodeSteps < 0 {
		return nil, ts.TimeStep{}, fmt.Errorf("make: max episode steps "+
			"must be non-negative, got %v", o.MaxEpisodeSteps)
	}

	if f, ok := factories[id]; ok {
		return f(id, o)
	}
	for prefix, f := range prefixFactories {
		if strings.HasPrefix(id, prefix) {
			return f(strings.TrimPrefix(id, prefix), o)
		}
	}

	return nil, ts.TimeStep{}, fmt.Errorf("make: no such environment %q, "+
		"available environments are %v", id, IDs())
}

// createCartpole is a factory for creating the Cartpole environment
// with default physical parameters and the Balance task.
func createCartpole(_ string, o Options) (env.Environment, ts.TimeStep,
	error) {
	bounds := make([]r1.Interval, cartpole.ObservationDims)
	for i := range bounds {
		bounds[i] = r1.Interval{Min: -0.05, Max: 0.05}
	}
	s := env.NewUniformStarter(bounds, o.Seed)

	task := cartpole.NewBalance(s, o.MaxEpisodeSteps, cartpole.FailAngle)
	c, step, err := cartpole.NewDiscrete(task, o.Discount)
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("createCartpole: %v", err)
	}
	return c, step, nil
}

// createMountainCar is a factory for creating the MountainCar
// environment with default physical parameters and the Goal task.
func createMountainCar(_ string, o Options) (env.Environment, ts.TimeStep,
	error) {
	position := r1.Interval{Min: -0.6, Max: -0.4}
	velocity := r1.Interval{Min: 0.0, Max: 0.0}
	s := env.NewUniformStarter([]r1.Interval{position, velocity}, o.Seed)

	task := mountaincar.NewGoal(s, o.MaxEpisodeSteps, mountaincar.GoalPosition)
	m, step, err := mountaincar.NewDiscrete(task, o.Discount)
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("createMountainCar: %v", err)
	}
	return m, step, nil
}
