package network

import (
	"fmt"

	"github.com/samuelfneumann/a2c/utils/op"
	G "gorgonia.org/gorgonia"
	"gorgonia.org/tensor"
)

// ActorCriticMLP implements a multi-layered perceptron with a shared
// trunk of hidden layers followed by two linear heads: a policy head
// which outputs the log-probabilities of each of a number of discrete
// actions, and a value head which outputs a scalar state value.
//
// Outputs are computed for a whole batch of observations at once. The
// input node is a (batch, features) matrix, the policy outputs are
// (batch, actions) matrices, and the value output is a (batch, 1)
// matrix.
type ActorCriticMLP struct {
	g         *G.ExprGraph
	input     *G.Node
	trunk     []*fcLayer
	policy    *fcLayer
	value     *fcLayer
	features  int
	actions   int
	batchSize int

	hiddenSizes []int
	biases      []bool
	activations []*Activation

	learnables G.Nodes
	model      []G.ValueGrad

	logits    *G.Node
	logProbs  *G.Node
	probs     *G.Node
	valueNode *G.Node

	probsVal G.Value
	valueVal G.Value
}

// NewActorCriticMLP creates and returns a new actor-critic MLP with
// the given number of input features and actions, taking batch inputs
// at once. The graph g is populated with the network.
//
// For index i, hiddenSizes[i] is the number of nodes in shared hidden
// layer i, biases[i] is true if the hidden layer has a bias unit, and
// activations[i] is the activation of hidden layer i. Both heads are
// linear with bias units. The parameter init determines the weight
// initialization scheme.
func NewActorCriticMLP(features, batch, actions int, g *G.ExprGraph,
	hiddenSizes []int, biases []bool, activations []*Activation,
	init G.InitWFn) (*ActorCriticMLP, error) {
	if len(hiddenSizes) != len(activations) {
		msg := "newActorCriticMLP: invalid number of activations" +
			"\n\twant(%d)\n\thave(%d)"
		return nil, fmt.Errorf(msg, len(hiddenSizes), len(activations))
	}
	if len(hiddenSizes) != len(biases) {
		msg := "newActorCriticMLP: invalid number of biases\n\twant(%d)" +
			"\n\thave(%d)"
		return nil, fmt.Errorf(msg, len(hiddenSizes), len(biases))
	}
	if features <= 0 || batch <= 0 || actions <= 0 {
		return nil, fmt.Errorf("newActorCriticMLP: features (%v), batch "+
			"(%v) and actions (%v) must be positive", features, batch, actions)
	}

	input := G.NewMatrix(g, tensor.Float32, G.WithShape(batch, features),
		G.WithName("input"), G.WithInit(G.Zeroes()))

	trunk := addfcLayers(g, features, hiddenSizes, biases, activations, init,
		"hidden")

	trunkOut := features
	if len(hiddenSizes) > 0 {
		trunkOut = hiddenSizes[len(hiddenSizes)-1]
	}
	policy := newFCLayer(g, trunkOut, actions, true, Identity(), init,
		"policy")
	value := newFCLayer(g, trunkOut, 1, true, Identity(), init, "value")

	net := &ActorCriticMLP{
		g:           g,
		input:       input,
		trunk:       trunk,
		policy:      policy,
		value:       value,
		features:    features,
		actions:     actions,
		batchSize:   batch,
		hiddenSizes: hiddenSizes,
		biases:      biases,
		activations: activations,
	}

	if err := net.fwd(); err != nil {
		return nil, fmt.Errorf("newActorCriticMLP: could not compute "+
			"forward pass: %v", err)
	}
	return net, nil
}

// fwd adds the forward pass of the network to its computational graph
func (a *ActorCriticMLP) fwd() error {
	hidden := a.input
	var err error
	for i, l := range a.trunk {
		if hidden, err = l.fwd(hidden); err != nil {
			return fmt.Errorf("fwd: could not compute forward pass of "+
				"layer %v: %v", i, err)
		}
	}

	if a.logits, err = a.policy.fwd(hidden); err != nil {
		return fmt.Errorf("fwd: could not compute policy head: %v", err)
	}
	if a.valueNode, err = a.value.fwd(hidden); err != nil {
		return fmt.Errorf("fwd: could not compute value head: %v", err)
	}

	a.logProbs = op.LogSoftmax(a.logits)
	a.probs = G.Must(G.Exp(a.logProbs))

	G.Read(a.probs, &a.probsVal)
	G.Read(a.valueNode, &a.valueVal)

	return nil
}

// CloneWithBatch returns a network with the same architecture and
// weights as a, on a new computational graph, which takes batch
// inputs at once.
func (a *ActorCriticMLP) CloneWithBatch(batch int) (*ActorCriticMLP, error) {
	net, err := NewActorCriticMLP(a.features, batch, a.actions, G.NewGraph(),
		a.hiddenSizes, a.biases, a.activations, G.Zeroes())
	if err != nil {
		return nil, fmt.Errorf("cloneWithBatch: %v", err)
	}

	if err := Set(net, a); err != nil {
		return nil, fmt.Errorf("cloneWithBatch: %v", err)
	}
	return net, nil
}

// Graph returns the computational graph of the network
func (a *ActorCriticMLP) Graph() *G.ExprGraph {
	return a.g
}

// BatchSize returns the number of observations the network takes as
// input at once
func (a *ActorCriticMLP) BatchSize() int {
	return a.batchSize
}

// Features returns the number of features in a single observation
func (a *ActorCriticMLP) Features() int {
	return a.features
}

// Actions returns the number of actions the policy head predicts
// probabilities for
func (a *ActorCriticMLP) Actions() int {
	return a.actions
}

// SetInput sets the value of the input node before running the forward
// pass. The input should hold BatchSize() observations laid out
// row-major.
func (a *ActorCriticMLP) SetInput(input []float32) error {
	if len(input) != a.features*a.batchSize {
		return fmt.Errorf("setInput: invalid number of inputs\n\twant(%v)"+
			"\n\thave(%v)", a.features*a.batchSize, len(input))
	}

	inputTensor := tensor.New(
		tensor.WithBacking(input),
		tensor.WithShape(a.input.Shape()...),
	)
	return G.Let(a.input, inputTensor)
}

// LogProbs returns the node holding the log-probabilities of each
// action for each observation in the batch
func (a *ActorCriticMLP) LogProbs() *G.Node {
	return a.logProbs
}

// Probs returns the node holding the probabilities of each action for
// each observation in the batch
func (a *ActorCriticMLP) Probs() *G.Node {
	return a.probs
}

// Value returns the node holding the state value of each observation
// in the batch
func (a *ActorCriticMLP) Value() *G.Node {
	return a.valueNode
}

// ProbsVal returns the action probabilities computed in the last run
// of a VM on the network's graph, laid out row-major
func (a *ActorCriticMLP) ProbsVal() []float32 {
	return copyData(a.probsVal)
}

// ValueVal returns the state values computed in the last run of a VM
// on the network's graph
func (a *ActorCriticMLP) ValueVal() []float32 {
	return copyData(a.valueVal)
}

// Learnables returns the learnable nodes of the network. The trunk's
// learnables come first, followed by those of the policy head and then
// the value head.
func (a *ActorCriticMLP) Learnables() G.Nodes {
	// Lazy instantiation
	if a.learnables == nil {
		layers := append(append([]*fcLayer{}, a.trunk...), a.policy, a.value)

		learnables := make(G.Nodes, 0, 2*len(layers))
		for _, l := range layers {
			learnables = append(learnables, l.Weights())
			if bias := l.Bias(); bias != nil {
				learnables = append(learnables, bias)
			}
		}
		a.learnables = learnables
	}
	return a.learnables
}

// Model returns the learnables nodes with their gradients.
func (a *ActorCriticMLP) Model() []G.ValueGrad {
	// Lazy instantiation
	if a.model == nil {
		model := make([]G.ValueGrad, 0, len(a.Learnables()))
		for _, node := range a.Learnables() {
			model = append(model, node)
		}
		a.model = model
	}
	return a.model
}

// copyData returns a copy of the float32 data held by v, which is nil
// if the VM has not yet been run
func copyData(v G.Value) []float32 {
	if v == nil {
		return nil
	}
	switch data := v.Data().(type) {
	case []float32:
		out := make([]float32, len(data))
		copy(out, data)
		return out
	case float32:
		return []float32{data}
	}
	panic(fmt.Sprintf("copyData: expected float32 data, got %T", v.Data()))
}
