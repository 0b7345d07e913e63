// Command a2c trains an advantage actor-critic agent on a simulated
// control environment and writes a chart of the training loss to
// a2c.html.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/samuelfneumann/a2c/agent/a2c"
	"github.com/samuelfneumann/a2c/environment"
	"github.com/samuelfneumann/a2c/environment/envconfig"
	"github.com/samuelfneumann/a2c/environment/wrappers"
	"github.com/samuelfneumann/a2c/experience"
	"github.com/samuelfneumann/a2c/experiment"
	"github.com/samuelfneumann/a2c/initwfn"
	"github.com/samuelfneumann/a2c/report"
	"github.com/samuelfneumann/a2c/runfile"
	"github.com/samuelfneumann/a2c/solver"
	"github.com/spf13/cobra"
)

// lossTitle is the title of the loss chart in the report
const lossTitle = "Full loss"

func main() {
	if err := command().Execute(); err != nil {
		os.Exit(1)
	}
}

// command returns the root command of the program
func command() *cobra.Command {
	var runfilePath, monitorDir string

	cmd := &cobra.Command{
		Use:   "a2c",
		Short: "Train an advantage actor-critic agent",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if err := run(runfilePath, monitorDir, ".", os.Stdout); err != nil {
				log.Fatalf("a2c: %v", err)
			}
		},
	}

	cmd.Flags().StringVarP(&runfilePath, "runfile", "r", "",
		"run file configuring the experiment")
	cmd.Flags().StringVarP(&monitorDir, "monitor", "m", "",
		"directory to record episode statistics and frames to")
	if err := cmd.MarkFlagRequired("runfile"); err != nil {
		panic(err)
	}

	return cmd
}

// run trains an agent as configured by the run file at runfilePath,
// printing progress to out. If monitorDir is not empty, episodes are
// recorded there. The report is written to outDir.
func run(runfilePath, monitorDir, outDir string, out io.Writer) error {
	c, err := runfile.Load(runfilePath)
	if err != nil {
		return err
	}
	log.Printf("configuration:\n%v", c)
	if c.Defaults.CUDA {
		log.Println("cuda requested, running on the cpu")
	}

	// Create the environment
	var e environment.Environment
	e, _, err = envconfig.Make(c.Defaults.Env, envconfig.Options{
		Seed:            c.Defaults.Seed,
		MaxEpisodeSteps: c.Defaults.MaxEpisodeSteps,
	})
	if err != nil {
		return fmt.Errorf("run: could not create environment: %v", err)
	}

	var monitor *wrappers.Monitor
	if monitorDir != "" {
		monitor, err = wrappers.NewMonitor(e, monitorDir)
		if err != nil {
			return fmt.Errorf("run: could not create monitor: %v", err)
		}
		e = monitor
	}
	defer closeEnv(e)

	// Create the agent
	solverType, err := c.SolverType()
	if err != nil {
		return fmt.Errorf("run: %v", err)
	}
	s, err := solver.New(solverType, c.Learning.LR, 1)
	if err != nil {
		return fmt.Errorf("run: could not create solver: %v", err)
	}

	initType, err := c.InitType()
	if err != nil {
		return fmt.Errorf("run: %v", err)
	}
	init, err := initwfn.New(initType, c.Model.InitGain)
	if err != nil {
		return fmt.Errorf("run: could not create initializer: %v", err)
	}

	agent, err := a2c.DefaultConfig(c.Learning.BatchSize, s,
		init).CreateAgent(e)
	if err != nil {
		return fmt.Errorf("run: could not create agent: %v", err)
	}
	defer agent.Close()

	// Create the experience source
	source, err := experience.NewSource(e,
		experience.NewPolicyAgent(agent, c.Defaults.Seed),
		c.Defaults.NSteps)
	if err != nil {
		return fmt.Errorf("run: could not create experience source: %v", err)
	}

	// Train
	exp, err := experiment.New(source, agent, experiment.Config{
		BatchSize:     c.Learning.BatchSize,
		StopReward:    c.Learning.StopReward,
		MaxIterations: c.Learning.MaxIterations,
		Output:        out,
	})
	if err != nil {
		return fmt.Errorf("run: could not create experiment: %v", err)
	}

	result, err := exp.Run()
	if err != nil {
		return err
	}
	if result.Solved {
		log.Printf("solved in %d iterations", result.Iterations)
	}
	if monitor != nil {
		stats := monitor.Stats()
		log.Printf("monitor recorded %d episodes to %v",
			len(stats.EpisodeLengths), monitorDir)
	}

	path := filepath.Join(outDir, report.DefaultFilename)
	if err := report.WriteLossChart(path, lossTitle, result.Losses); err != nil {
		return fmt.Errorf("run: %v", err)
	}
	log.Printf("wrote %v", path)

	return nil
}

// closeEnv releases the resources held by e
func closeEnv(e environment.Environment) {
	if c, ok := e.(environment.Closer); ok {
		if err := c.Close(); err != nil {
			log.Printf("could not close environment: %v", err)
		}
	}
}
