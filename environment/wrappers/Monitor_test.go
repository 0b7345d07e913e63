package wrappers_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/samuelfneumann/a2c/environment/envconfig"
	"github.com/samuelfneumann/a2c/environment/wrappers"
	"gonum.org/v1/gonum/mat"
)

func TestRecordEpisode(t *testing.T) {
	recorded := []int{0, 1, 8, 27, 64, 125, 216, 343, 512, 729, 1000, 2000}
	skipped := []int{2, 7, 9, 26, 28, 999, 1001, 1728}

	for _, ep := range recorded {
		if !wrappers.RecordEpisode(ep) {
			t.Errorf("episode %v should be recorded", ep)
		}
	}
	for _, ep := range skipped {
		if wrappers.RecordEpisode(ep) {
			t.Errorf("episode %v should not be recorded", ep)
		}
	}
}

func TestMonitor(t *testing.T) {
	dir := t.TempDir()

	e, _, err := envconfig.Make(envconfig.CartPoleV1,
		envconfig.Options{Seed: 1, MaxEpisodeSteps: 3})
	if err != nil {
		t.Fatal(err)
	}
	m, err := wrappers.NewMonitor(e, dir)
	if err != nil {
		t.Fatal(err)
	}

	// Two full episodes of 3 steps each
	action := mat.NewVecDense(1, []float64{0})
	for ep := 0; ep < 2; ep++ {
		for i := 0; i < 3; i++ {
			if _, _, err := m.Step(action); err != nil {
				t.Fatal(err)
			}
		}
		if _, err := m.Reset(); err != nil {
			t.Fatal(err)
		}
	}
	if err := m.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, wrappers.StatsFile))
	if err != nil {
		t.Fatal(err)
	}
	var stats wrappers.Stats
	if err := json.Unmarshal(data, &stats); err != nil {
		t.Fatal(err)
	}

	if len(stats.EpisodeLengths) != 2 || len(stats.EpisodeRewards) != 2 {
		t.Fatalf("want 2 episodes recorded, got %v", stats)
	}
	for i := range stats.EpisodeLengths {
		if stats.EpisodeLengths[i] != 3 || stats.EpisodeRewards[i] != 3 {
			t.Errorf("episode %v: want length 3 and reward 3, got %v and %v",
				i, stats.EpisodeLengths[i], stats.EpisodeRewards[i])
		}
	}

	inMemory := m.Stats()
	if !reflect.DeepEqual(inMemory.EpisodeLengths, stats.EpisodeLengths) ||
		!reflect.DeepEqual(inMemory.EpisodeRewards, stats.EpisodeRewards) {
		t.Errorf("stats file %v does not match monitor stats %v", stats,
			inMemory)
	}

	// Episodes 0 and 1 are both on the schedule, each has an initial
	// frame and one frame per step
	for _, ep := range []string{"episode000000", "episode000001"} {
		frames, err := os.ReadDir(filepath.Join(dir, ep))
		if err != nil {
			t.Fatal(err)
		}
		if len(frames) != 4 {
			t.Errorf("%v: want 4 frames, got %v", ep, len(frames))
		}
	}
}
