package solver

import (
	"testing"

	G "gorgonia.org/gorgonia"
	"gorgonia.org/tensor"
)

func TestNew(t *testing.T) {
	for _, typ := range Types() {
		s, err := New(typ, 0.01, 1)
		if err != nil {
			t.Errorf("new(%v): %v", typ, err)
			continue
		}
		if s.Type != typ {
			t.Errorf("new(%v) has type %v", typ, s.Type)
		}
		if !s.ValidType(typ) {
			t.Errorf("config of %v should be valid for its type", typ)
		}
	}

	if _, err := New(Adam, -1, 1); err == nil {
		t.Error("new should fail for a negative step size")
	}
	if _, err := New(Adam, 0.1, 0); err == nil {
		t.Error("new should fail for a zero batch size")
	}
	if _, err := New("SGD", 0.1, 1); err == nil {
		t.Error("new should fail for an unknown solver")
	}
}

func TestParseType(t *testing.T) {
	if got, err := ParseType("adam"); err != nil || got != Adam {
		t.Errorf("parseType(adam) = %v, %v", got, err)
	}
	if got, err := ParseType("rmsprop"); err != nil || got != RMSProp {
		t.Errorf("parseType(rmsprop) = %v, %v", got, err)
	}
	if _, err := ParseType("lbfgs"); err == nil {
		t.Error("parseType should fail for unknown solvers")
	}
}

// TestVanillaStep checks a single step of gradient descent on
// L(w) = w², which has gradient 2w.
func TestVanillaStep(t *testing.T) {
	g := G.NewGraph()
	w := G.NewScalar(g, tensor.Float32, G.WithName("w"),
		G.WithValue(float32(1.0)))
	loss := G.Must(G.Square(w))
	if _, err := G.Grad(loss, w); err != nil {
		t.Fatal(err)
	}

	s, err := New(Vanilla, 0.1, 1)
	if err != nil {
		t.Fatal(err)
	}

	vm := G.NewTapeMachine(g, G.BindDualValues(w))
	defer vm.Close()
	if err := vm.RunAll(); err != nil {
		t.Fatal(err)
	}
	if err := s.Step(G.NodesToValueGrads(G.Nodes{w})); err != nil {
		t.Fatal(err)
	}

	got := w.Value().Data().(float32)
	if want := float32(0.8); got < want-1e-6 || got > want+1e-6 {
		t.Errorf("want w = %v after one step, got %v", want, got)
	}
}
