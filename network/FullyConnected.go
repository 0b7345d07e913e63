package network

import (
	"fmt"

	G "gorgonia.org/gorgonia"
	"gorgonia.org/tensor"
)

// Layer is a single layer of a feed forward neural network
type Layer interface {
	fwd(*G.Node) (*G.Node, error)
	Weights() *G.Node
	Bias() *G.Node
	Activation() *Activation
}

// fcLayer implements a fully connected layer of a feed forward neural
// network
type fcLayer struct {
	weights *G.Node
	bias    *G.Node
	act     *Activation
}

// newFCLayer adds a fully connected layer mapping inputs features to
// outputs features to the graph g. Biases are initialized to zero.
func newFCLayer(g *G.ExprGraph, inputs, outputs int, bias bool,
	act *Activation, init G.InitWFn, name string) *fcLayer {
	weights := G.NewMatrix(
		g,
		tensor.Float32,
		G.WithShape(inputs, outputs),
		G.WithName(fmt.Sprintf("%sW", name)),
		G.WithInit(init),
	)

	var b *G.Node
	if bias {
		b = G.NewMatrix(
			g,
			tensor.Float32,
			G.WithShape(1, outputs),
			G.WithName(fmt.Sprintf("%sB", name)),
			G.WithInit(G.Zeroes()),
		)
	}

	return &fcLayer{weights: weights, bias: b, act: act}
}

// addfcLayers adds a stack of fully connected layers to the graph g.
// For index i, hiddenSizes[i] is the number of nodes in layer i,
// biases[i] is whether the layer has a bias unit, and activations[i]
// is the layer's activation function.
func addfcLayers(g *G.ExprGraph, features int, hiddenSizes []int,
	biases []bool, activations []*Activation, init G.InitWFn,
	prefix string) []*fcLayer {
	layers := make([]*fcLayer, len(hiddenSizes))

	inputs := features
	for i := range hiddenSizes {
		name := fmt.Sprintf("%s%d", prefix, i)
		layers[i] = newFCLayer(g, inputs, hiddenSizes[i], biases[i],
			activations[i], init, name)
		inputs = hiddenSizes[i]
	}
	return layers
}

// fwd adds the forward pass of the fcLayer to the computational graph
func (f *fcLayer) fwd(x *G.Node) (*G.Node, error) {
	x = G.Must(G.Mul(x, f.Weights()))
	if f.Bias() != nil {
		// Broadcast the bias weights to all samples along the batch
		// dimension
		x = G.Must(G.BroadcastAdd(x, f.Bias(), nil, []byte{0}))
	}
	if f.Activation() == nil || f.Activation().IsIdentity() {
		return x, nil
	}
	return f.Activation().fwd(x)
}

// Activation returns the activation function of the layer
func (f *fcLayer) Activation() *Activation {
	return f.act
}

// Bias returns the bias node of the layer, which is nil if the layer
// has no bias unit
func (f *fcLayer) Bias() *G.Node {
	return f.bias
}

func (f *fcLayer) Weights() *G.Node {
	return f.weights
}
