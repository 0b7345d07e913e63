// Package op provides extended Gorgonia graph operations.
package op

import (
	G "gorgonia.org/gorgonia"
)

// LogSumExp calculates the log of the summation of exponentials of
// all logits along the given axis.
//
// Use this in place of Gorgonia's LogSumExp, which has the final sum
// and log interchanged, which is incorrect.
func LogSumExp(logits *G.Node, along int) *G.Node {
	max := G.Must(G.Max(logits, along))

	exponent := G.Must(G.BroadcastSub(logits, max, nil, []byte{1}))
	exponent = G.Must(G.Exp(exponent))

	sum := G.Must(G.Sum(exponent, along))
	log := G.Must(G.Log(sum))

	return G.Must(G.Add(max, log))
}

// LogSoftmax calculates the log of the softmax of a batch of logits
// of shape (batch, classes), row-wise.
func LogSoftmax(logits *G.Node) *G.Node {
	lse := LogSumExp(logits, 1)
	return G.Must(G.BroadcastSub(logits, lse, nil, []byte{1}))
}

// Pick selects a single column of each row of a (batch, classes) node
// using a one-hot mask of the same shape, returning a vector of size
// batch.
func Pick(values, oneHot *G.Node) *G.Node {
	picked := G.Must(G.HadamardProd(values, oneHot))
	return G.Must(G.Sum(picked, 1))
}
