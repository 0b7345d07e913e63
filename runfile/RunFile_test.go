package runfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/samuelfneumann/a2c/experiment"
	"github.com/samuelfneumann/a2c/initwfn"
	"github.com/samuelfneumann/a2c/solver"
	. "github.com/smartystreets/goconvey/convey"
	"gopkg.in/yaml.v3"
)

func write(t *testing.T, name, contents string) string {
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const minimal = `[defaults]
env=CartPole-v0
cuda=False
n_steps=4

[learning]
lr=0.0001
batch_size=32
`

func TestLoad(t *testing.T) {
	Convey("Given a minimal INI run file", t, func() {
		path := write(t, "cartpole.ini", minimal)

		Convey("The required keys are read", func() {
			c, err := Load(path)
			So(err, ShouldBeNil)
			So(c.Defaults.Env, ShouldEqual, "CartPole-v0")
			So(c.Defaults.CUDA, ShouldBeFalse)
			So(c.Defaults.NSteps, ShouldEqual, 4)
			So(c.Learning.LR, ShouldAlmostEqual, 0.0001)
			So(c.Learning.BatchSize, ShouldEqual, 32)
		})

		Convey("Optional keys take their defaults", func() {
			c, err := Load(path)
			So(err, ShouldBeNil)
			So(c.Learning.StopReward, ShouldEqual, experiment.DefaultStopReward)
			So(c.Learning.MaxIterations, ShouldEqual, 0)
			So(c.Defaults.MaxEpisodeSteps, ShouldEqual, 0)
			So(c.Defaults.Seed, ShouldNotEqual, 0)

			s, err := c.SolverType()
			So(err, ShouldBeNil)
			So(s, ShouldEqual, solver.Adam)

			init, err := c.InitType()
			So(err, ShouldBeNil)
			So(init, ShouldEqual, initwfn.GlorotU)
			So(c.Model.InitGain, ShouldEqual, 1.0)
		})

		Convey("The config is reported as YAML", func() {
			c, err := Load(path)
			So(err, ShouldBeNil)

			var decoded Config
			So(yaml.Unmarshal([]byte(c.String()), &decoded), ShouldBeNil)
			So(decoded, ShouldResemble, c)
		})
	})

	Convey("Given a run file setting optional keys", t, func() {
		path := write(t, "full.ini", minimal+`stop_reward=195
solver=rmsprop
max_iterations=10

[model]
init=HeN
init_gain=2
`)
		c, err := Load(path)
		So(err, ShouldBeNil)
		So(c.Learning.StopReward, ShouldEqual, 195)
		So(c.Learning.MaxIterations, ShouldEqual, 10)

		s, _ := c.SolverType()
		So(s, ShouldEqual, solver.RMSProp)
		init, _ := c.InitType()
		So(init, ShouldEqual, initwfn.HeN)
		So(c.Model.InitGain, ShouldEqual, 2)
	})

	Convey("Given a YAML run file", t, func() {
		path := write(t, "run.yaml", `defaults:
  env: MountainCar-v0
  n_steps: 2
  seed: 42
learning:
  lr: 0.01
  batch_size: 8
`)
		c, err := Load(path)
		So(err, ShouldBeNil)
		So(c.Defaults.Env, ShouldEqual, "MountainCar-v0")
		So(c.Defaults.Seed, ShouldEqual, 42)
		So(c.Learning.BatchSize, ShouldEqual, 8)
	})

	Convey("Missing required keys are errors", t, func() {
		for _, key := range []string{"env", "n_steps", "lr", "batch_size"} {
			var kept []string
			for _, line := range strings.Split(minimal, "\n") {
				if !strings.HasPrefix(line, key+"=") {
					kept = append(kept, line)
				}
			}
			path := write(t, "missing.ini", strings.Join(kept, "\n"))

			_, err := Load(path)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, key)
		}
	})

	Convey("Invalid values are errors", t, func() {
		for _, bad := range []string{
			strings.Replace(minimal, "n_steps=4", "n_steps=0", 1),
			strings.Replace(minimal, "lr=0.0001", "lr=-1", 1),
			strings.Replace(minimal, "batch_size=32", "batch_size=many", 1),
			minimal + "solver=LBFGS\n",
		} {
			_, err := Load(write(t, "bad.ini", bad))
			So(err, ShouldNotBeNil)
		}
	})

	Convey("A missing run file is an error", t, func() {
		_, err := Load(filepath.Join(t.TempDir(), "missing.ini"))
		So(err, ShouldNotBeNil)
	})
}
