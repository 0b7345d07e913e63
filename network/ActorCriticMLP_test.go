package network_test

import (
	"math"
	"testing"

	"github.com/samuelfneumann/a2c/initwfn"
	"github.com/samuelfneumann/a2c/network"
	G "gorgonia.org/gorgonia"
)

func newNet(t *testing.T, batch int) *network.ActorCriticMLP {
	net, err := network.NewActorCriticMLP(4, batch, 3, G.NewGraph(),
		[]int{50, 50}, []bool{true, true},
		[]*network.Activation{network.ReLU(), network.ReLU()},
		G.GlorotU(1.0))
	if err != nil {
		t.Fatalf("newActorCriticMLP: %v", err)
	}
	return net
}

func run(t *testing.T, net *network.ActorCriticMLP, input []float32) {
	if err := net.SetInput(input); err != nil {
		t.Fatal(err)
	}
	vm := G.NewTapeMachine(net.Graph())
	defer vm.Close()
	if err := vm.RunAll(); err != nil {
		t.Fatal(err)
	}
}

func TestProbabilitiesSumToOne(t *testing.T) {
	net := newNet(t, 3)

	input := []float32{
		0, 0, 0, 0,
		1, -2, 3, -4,
		100, -100, 50, 1e3,
	}
	run(t, net, input)

	probs := net.ProbsVal()
	if len(probs) != 9 {
		t.Fatalf("want 9 probabilities, got %v", len(probs))
	}
	for row := 0; row < 3; row++ {
		sum := 0.0
		for _, p := range probs[row*3 : row*3+3] {
			if p < 0 || math.IsNaN(float64(p)) {
				t.Errorf("row %v: illegal probability %v", row, p)
			}
			sum += float64(p)
		}
		if math.Abs(sum-1) > 1e-5 {
			t.Errorf("row %v: probabilities sum to %v", row, sum)
		}
	}

	if got := len(net.ValueVal()); got != 3 {
		t.Errorf("want 3 values, got %v", got)
	}
}

func TestCloneWithBatch(t *testing.T) {
	net := newNet(t, 1)
	clone, err := net.CloneWithBatch(2)
	if err != nil {
		t.Fatal(err)
	}
	if clone.BatchSize() != 2 {
		t.Errorf("clone should have batch size 2, got %v", clone.BatchSize())
	}

	obs := []float32{0.1, -0.2, 0.3, -0.4}
	run(t, net, obs)
	run(t, clone, append(append([]float32{}, obs...), obs...))

	want, got := net.ValueVal(), clone.ValueVal()
	for i := range got {
		if math.Abs(float64(got[i]-want[0])) > 1e-6 {
			t.Errorf("clone value %v = %v, want %v", i, got[i], want[0])
		}
	}
}

func TestSetShapeMismatch(t *testing.T) {
	net := newNet(t, 1)
	other, err := network.NewActorCriticMLP(4, 1, 2, G.NewGraph(),
		[]int{50, 50}, []bool{true, true},
		[]*network.Activation{network.ReLU(), network.ReLU()},
		G.GlorotU(1.0))
	if err != nil {
		t.Fatal(err)
	}

	if err := network.Set(net, other); err == nil {
		t.Error("set should fail for networks with different heads")
	}
}

func TestSetInputLength(t *testing.T) {
	net := newNet(t, 2)
	if err := net.SetInput(make([]float32, 4)); err == nil {
		t.Error("setInput should fail for the wrong number of inputs")
	}
}

func TestInvalidArchitecture(t *testing.T) {
	_, err := network.NewActorCriticMLP(4, 1, 2, G.NewGraph(), []int{50},
		[]bool{true, true}, []*network.Activation{network.ReLU()},
		G.GlorotU(1.0))
	if err == nil {
		t.Error("mismatched biases should return an error")
	}
}

func TestEveryInitializer(t *testing.T) {
	obs := []float32{0.1, -0.2, 0.3, -0.4}
	for _, typ := range initwfn.Types() {
		init, err := initwfn.New(typ, 1.0)
		if err != nil {
			t.Fatalf("new(%v): %v", typ, err)
		}

		net, err := network.NewActorCriticMLP(4, 1, 2, G.NewGraph(),
			[]int{50, 50}, []bool{true, true},
			[]*network.Activation{network.ReLU(), network.ReLU()},
			init.InitWFn())
		if err != nil {
			t.Fatalf("%v: newActorCriticMLP: %v", typ, err)
		}
		run(t, net, obs)

		probs := net.ProbsVal()
		if sum := probs[0] + probs[1]; math.Abs(float64(sum)-1) > 1e-5 {
			t.Errorf("%v: probabilities sum to %v", typ, sum)
		}
	}
}
