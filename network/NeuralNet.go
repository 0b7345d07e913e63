// Package network implements function approximators built on Gorgonia
// computational graphs.
package network

import (
	"fmt"

	G "gorgonia.org/gorgonia"
	"gorgonia.org/tensor"
)

// NeuralNet is a neural network whose computation is defined on a
// Gorgonia computational graph
type NeuralNet interface {
	Graph() *G.ExprGraph
	BatchSize() int
	Features() int
	SetInput([]float32) error
	Learnables() G.Nodes
	Model() []G.ValueGrad
}

// Set sets the weights of dest to be equal to the weights of source.
// Both networks must have the same architecture, but may have
// different batch sizes.
func Set(dest, source NeuralNet) error {
	sourceNodes := source.Learnables()
	nodes := dest.Learnables()
	if len(sourceNodes) != len(nodes) {
		return fmt.Errorf("set: cannot set weights of network with %v "+
			"learnables from network with %v learnables", len(nodes),
			len(sourceNodes))
	}

	for i, destLearnable := range nodes {
		if !destLearnable.Shape().Eq(sourceNodes[i].Shape()) {
			return fmt.Errorf("set: learnable %v has shape %v, source has "+
				"shape %v", i, destLearnable.Shape(), sourceNodes[i].Shape())
		}

		weights := sourceNodes[i].Value().(*tensor.Dense).Clone()
		if err := G.Let(destLearnable, weights); err != nil {
			return fmt.Errorf("set: could not set learnable %v: %v", i, err)
		}
	}
	return nil
}
