package experience_test

import (
	"errors"
	"testing"

	env "github.com/samuelfneumann/a2c/environment"
	"github.com/samuelfneumann/a2c/experience"
	ts "github.com/samuelfneumann/a2c/timestep"
	. "github.com/smartystreets/goconvey/convey"
	"gonum.org/v1/gonum/mat"
)

// counter is an environment whose observation is the step number
// within the episode. Each step gives reward equal to the new step
// number, and episodes end after length steps.
type counter struct {
	length  int
	current ts.TimeStep
	fail    bool
}

func newCounter(length int) *counter {
	c := &counter{length: length}
	c.Reset()
	return c
}

func (c *counter) Reset() (ts.TimeStep, error) {
	c.current = ts.New(ts.First, 0, 1, mat.NewVecDense(1, []float64{0}), 0)
	return c.current, nil
}

func (c *counter) Step(a *mat.VecDense) (ts.TimeStep, bool, error) {
	if c.fail {
		return ts.TimeStep{}, false, errors.New("broken")
	}
	n := c.current.Number + 1
	step := ts.New(ts.Mid, float64(n), 1,
		mat.NewVecDense(1, []float64{float64(n)}), n)
	if n >= c.length {
		step.StepType = ts.Last
		step.SetEnd(ts.TerminalStateReached)
	}
	c.current = step
	return step, step.Last(), nil
}

func (c *counter) CurrentTimeStep() ts.TimeStep { return c.current }

func (c *counter) DiscountSpec() env.Spec    { return c.spec(env.Discount) }
func (c *counter) ObservationSpec() env.Spec { return c.spec(env.Observation) }
func (c *counter) ActionSpec() env.Spec      { return c.spec(env.Action) }

func (c *counter) spec(t env.SpecType) env.Spec {
	v := mat.NewVecDense(1, nil)
	return env.NewSpec(v, t, v, v, env.Discrete)
}

// constant always selects the same action
type constant int

func (c constant) Act([]float32) (int, error) { return int(c), nil }

// states returns the first feature of each transition's state
func states(w experience.Window) []float32 {
	s := make([]float32, len(w))
	for i := range w {
		s[i] = w[i].State[0]
	}
	return s
}

func TestSource(t *testing.T) {
	Convey("Given a source of 3-step windows on 4-step episodes", t, func() {
		source, err := experience.NewSource(newCounter(4), constant(0), 3)
		So(err, ShouldBeNil)

		Convey("Full windows slide by one step, then the tail is emitted", func() {
			want := [][]float32{
				{0, 1, 2},
				{1, 2, 3},
				{2, 3},
				{3},
				{0, 1, 2}, // next episode
			}
			for _, w := range want {
				window, err := source.Next()
				So(err, ShouldBeNil)
				So(states(window), ShouldResemble, w)
			}
		})

		Convey("Only the last transition of an episode is done", func() {
			window, _ := source.Next()
			So(window.Last().Done, ShouldBeFalse)

			window, _ = source.Next()
			So(window.Last().Done, ShouldBeTrue)
			So(window.First().Done, ShouldBeFalse)
			So(window.Rewards(), ShouldResemble, []float32{2, 3, 4})
		})

		Convey("Episode totals are recorded once and drained", func() {
			So(source.PopTotalRewards(), ShouldBeEmpty)
			for i := 0; i < 4; i++ {
				source.Next()
			}
			So(source.PopTotalRewards(), ShouldResemble, []float64{10})
			So(source.PopTotalRewards(), ShouldBeEmpty)
			So(source.PopEpisodeSteps(), ShouldResemble, []int{4})
			So(source.PopEpisodeSteps(), ShouldBeEmpty)
		})
	})

	Convey("Given episodes shorter than the window", t, func() {
		source, err := experience.NewSource(newCounter(2), constant(1), 4)
		So(err, ShouldBeNil)

		Convey("The whole episode and each of its suffixes are emitted", func() {
			window, err := source.Next()
			So(err, ShouldBeNil)
			So(states(window), ShouldResemble, []float32{0, 1})
			So(window.First().Action, ShouldEqual, 1)

			window, _ = source.Next()
			So(states(window), ShouldResemble, []float32{1})
			So(window.Last().Done, ShouldBeTrue)
		})
	})

	Convey("Given single-step windows", t, func() {
		source, err := experience.NewSource(newCounter(3), constant(0), 1)
		So(err, ShouldBeNil)

		Convey("Every transition is emitted exactly once", func() {
			for i := 0; i < 6; i++ {
				window, err := source.Next()
				So(err, ShouldBeNil)
				So(window, ShouldHaveLength, 1)
				So(window.First().State[0], ShouldEqual, float32(i%3))
			}
			So(source.PopTotalRewards(), ShouldResemble, []float64{6, 6})
		})
	})

	Convey("Given a failing environment", t, func() {
		e := newCounter(3)
		source, err := experience.NewSource(e, constant(0), 2)
		So(err, ShouldBeNil)
		e.fail = true

		Convey("Next returns the error", func() {
			_, err := source.Next()
			So(err, ShouldNotBeNil)
		})
	})

	Convey("A source needs at least one step per window", t, func() {
		_, err := experience.NewSource(newCounter(3), constant(0), 0)
		So(err, ShouldNotBeNil)
	})
}
