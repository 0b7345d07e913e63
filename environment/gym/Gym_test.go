//go:build gym
// +build gym

package gym_test

import (
	"testing"

	env "github.com/samuelfneumann/a2c/environment"
	"github.com/samuelfneumann/a2c/environment/gym"
	ts "github.com/samuelfneumann/a2c/timestep"
	"github.com/samuelfneumann/gogym"
	"gonum.org/v1/gonum/mat"
)

func TestNew(t *testing.T) {
	defer gogym.Close()

	envs := []string{
		"CartPole-v0",
		"CartPole-v1",
		"MountainCar-v0",
		"Acrobot-v1",
	}

	for _, envName := range envs {
		e, step, err := gym.New(envName, 0.99, 123, 10)
		if err != nil {
			t.Errorf("env %v: %v", envName, err)
			continue
		}
		if !step.First() {
			t.Errorf("env %v: first step has type %v", envName,
				step.StepType)
		}

		if _, err := env.NumActions(e); err != nil {
			t.Errorf("env %v: %v", envName, err)
		}

		for i := 0; i < 15; i++ {
			next, done, err := e.Step(mat.NewVecDense(1, nil))
			if err != nil {
				t.Errorf("env %v: %v", envName, err)
			} else if (next == ts.TimeStep{}) {
				t.Errorf("step: timestep %v should be non-empty", i)
			}

			if next.Number > 10 {
				t.Errorf("env %v: step limit exceeded at step %v", envName,
					next.Number)
			}

			if done {
				if _, err := e.Reset(); err != nil {
					t.Errorf("env %v: %v", envName, err)
				}
			}
		}

		e.ObservationSpec()
		e.DiscountSpec()
		e.Close()
	}
}
