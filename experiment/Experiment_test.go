package experiment_test

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/samuelfneumann/a2c/agent/a2c"
	env "github.com/samuelfneumann/a2c/environment"
	"github.com/samuelfneumann/a2c/experience"
	"github.com/samuelfneumann/a2c/experiment"
	"github.com/samuelfneumann/a2c/initwfn"
	"github.com/samuelfneumann/a2c/solver"
	ts "github.com/samuelfneumann/a2c/timestep"
	. "github.com/smartystreets/goconvey/convey"
	"gonum.org/v1/gonum/mat"
)

// flipFlop is a deterministic environment with two states which it
// alternates between on every step, regardless of the action. Every
// step gives a reward of 1 and episodes never end.
type flipFlop struct {
	current ts.TimeStep
}

func newFlipFlop() *flipFlop {
	f := &flipFlop{}
	f.Reset()
	return f
}

func (f *flipFlop) Reset() (ts.TimeStep, error) {
	f.current = ts.New(ts.First, 0, 1, mat.NewVecDense(2, []float64{1, 0}), 0)
	return f.current, nil
}

func (f *flipFlop) Step(*mat.VecDense) (ts.TimeStep, bool, error) {
	obs := f.current.Observation
	next := mat.NewVecDense(2, []float64{obs.AtVec(1), obs.AtVec(0)})
	f.current = ts.New(ts.Mid, 1, 1, next, f.current.Number+1)
	return f.current, false, nil
}

func (f *flipFlop) CurrentTimeStep() ts.TimeStep { return f.current }

func (f *flipFlop) DiscountSpec() env.Spec {
	v := mat.NewVecDense(1, []float64{1})
	return env.NewSpec(v, env.Discount, v, v, env.Continuous)
}

func (f *flipFlop) ObservationSpec() env.Spec {
	shape := mat.NewVecDense(2, nil)
	high := mat.NewVecDense(2, []float64{1, 1})
	return env.NewSpec(shape, env.Observation, shape, high, env.Continuous)
}

func (f *flipFlop) ActionSpec() env.Spec {
	shape := mat.NewVecDense(1, nil)
	high := mat.NewVecDense(1, []float64{1})
	return env.NewSpec(shape, env.Action, shape, high, env.Discrete)
}

// countingLearner counts the updates of the learner it wraps
type countingLearner struct {
	*a2c.A2C
	steps int
}

func (c *countingLearner) Step(batch []experience.Window) (float64, error) {
	c.steps++
	return c.A2C.Step(batch)
}

// episodes is a Source which emits single-transition windows, finishing
// one episode with the given total reward per window, and returns
// io.EOF once out of rewards.
type episodes struct {
	rewards []float64
	popped  []float64
}

func (e *episodes) Next() (experience.Window, error) {
	if len(e.rewards) == 0 {
		return nil, io.EOF
	}
	e.popped = append(e.popped, e.rewards[0])
	e.rewards = e.rewards[1:]
	return experience.Window{{State: []float32{0}, Done: true}}, nil
}

func (e *episodes) PopTotalRewards() []float64 {
	r := e.popped
	e.popped = nil
	return r
}

// constantLearner returns the same loss on every update
type constantLearner float64

func (c constantLearner) Step([]experience.Window) (float64, error) {
	return float64(c), nil
}

type failingLearner struct{}

func (failingLearner) Step([]experience.Window) (float64, error) {
	return 0, errors.New("diverged")
}

func TestEndToEnd(t *testing.T) {
	Convey("Given an A2C agent on a never-ending two-state environment", t,
		func() {
			e := newFlipFlop()

			s, err := solver.New(solver.Adam, 0.001, 1)
			So(err, ShouldBeNil)
			init, err := initwfn.New(initwfn.GlorotU, 1.0)
			So(err, ShouldBeNil)

			agent, err := a2c.New(e, a2c.DefaultConfig(1, s, init))
			So(err, ShouldBeNil)
			defer agent.Close()
			learner := &countingLearner{A2C: agent}

			source, err := experience.NewSource(e,
				experience.NewPolicyAgent(agent, 1), 1)
			So(err, ShouldBeNil)

			var out bytes.Buffer
			exp, err := experiment.New(source, learner, experiment.Config{
				BatchSize:     1,
				StopReward:    experiment.DefaultStopReward,
				MaxIterations: 1,
				Output:        &out,
			})
			So(err, ShouldBeNil)

			Convey("One batch applies exactly one update", func() {
				result, err := exp.Run()
				So(err, ShouldBeNil)
				So(learner.steps, ShouldEqual, 1)
				So(result.Iterations, ShouldEqual, 1)
				So(result.Losses, ShouldHaveLength, 1)
				So(result.Solved, ShouldBeFalse)

				line := out.String()
				So(line, ShouldStartWith, "1: mean_loss=")
				So(line, ShouldEndWith, ", mean_reward=0.000\n")
				So(strings.Count(line, "\n"), ShouldEqual, 1)
				So(line, ShouldNotContainSubstring, "NaN")
			})
		})
}

func TestStopping(t *testing.T) {
	Convey("Given episodes with increasing rewards", t, func() {
		source := &episodes{rewards: []float64{100, 200, 350, 500, 600}}
		var out bytes.Buffer

		exp, err := experiment.New(source, constantLearner(0.5),
			experiment.Config{
				BatchSize:  1,
				StopReward: experiment.DefaultStopReward,
				Output:     &out,
			})
		So(err, ShouldBeNil)

		Convey("The experiment stops once the mean reward exceeds 300", func() {
			result, err := exp.Run()
			So(err, ShouldBeNil)
			So(result.Solved, ShouldBeTrue)

			// Means are 100, 150, 216.7, 287.5, 350
			So(result.Iterations, ShouldEqual, 5)
			So(result.Rewards, ShouldResemble, []float64{100, 200, 350, 500,
				600})
			So(out.String(), ShouldContainSubstring,
				"5: mean_loss=0.500, mean_reward=350.000\n")
		})
	})

	Convey("Given a source which runs out of experience", t, func() {
		source := &episodes{rewards: []float64{1, 2, 3}}
		exp, err := experiment.New(source, constantLearner(1),
			experiment.Config{
				BatchSize:  2,
				StopReward: experiment.DefaultStopReward,
				Output:     io.Discard,
			})
		So(err, ShouldBeNil)

		Convey("The experiment ends normally with the incomplete batch dropped",
			func() {
				result, err := exp.Run()
				So(err, ShouldBeNil)
				So(result.Iterations, ShouldEqual, 1)
				So(result.Solved, ShouldBeFalse)
			})
	})

	Convey("Given a maximum number of iterations", t, func() {
		source := &episodes{rewards: []float64{1, 2, 3, 4, 5, 6}}
		exp, err := experiment.New(source, constantLearner(1),
			experiment.Config{
				BatchSize:     1,
				StopReward:    experiment.DefaultStopReward,
				MaxIterations: 4,
				Output:        io.Discard,
			})
		So(err, ShouldBeNil)

		result, err := exp.Run()
		So(err, ShouldBeNil)
		So(result.Iterations, ShouldEqual, 4)
	})

	Convey("Learner errors end the experiment", t, func() {
		source := &episodes{rewards: []float64{1, 2}}
		exp, err := experiment.New(source, failingLearner{},
			experiment.Config{BatchSize: 1, Output: io.Discard})
		So(err, ShouldBeNil)

		_, err = exp.Run()
		So(err, ShouldNotBeNil)
	})

	Convey("Invalid configurations are rejected", t, func() {
		_, err := experiment.New(&episodes{}, constantLearner(1),
			experiment.Config{BatchSize: 0})
		So(err, ShouldNotBeNil)

		_, err = experiment.New(&episodes{}, constantLearner(1),
			experiment.Config{BatchSize: 1, MaxIterations: -1})
		So(err, ShouldNotBeNil)
	})
}
