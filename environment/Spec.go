package environment

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// SpecType is the quantity a Spec describes
type SpecType int

const (
	Action SpecType = iota
	Observation
	Discount
	Reward
)

func (s SpecType) String() string {
	switch s {
	case Action:
		return "Action"
	case Observation:
		return "Observation"
	case Discount:
		return "Discount"
	case Reward:
		return "Reward"
	}
	return fmt.Sprintf("SpecType(%d)", int(s))
}

// Cardinality is whether the values a Spec describes are discrete or
// continuous
type Cardinality string

const (
	Continuous Cardinality = "Continuous"
	Discrete   Cardinality = "Discrete"
)

// Spec describes the shape and bounds of the actions, observations,
// discounts or rewards of an environment. The actor-critic network
// sizes its input from the observation Spec and its policy head from
// a discrete action Spec.
type Spec struct {
	Shape      mat.Vector
	Type       SpecType
	LowerBound mat.Vector
	UpperBound mat.Vector
	Cardinality
}

// NewSpec returns a new Spec. The bounds must have the same length as
// shape.
func NewSpec(shape mat.Vector, t SpecType, lowerBound,
	upperBound mat.Vector, cardinality Cardinality) Spec {
	if lowerBound.Len() != shape.Len() || upperBound.Len() != shape.Len() {
		panic(fmt.Sprintf("newSpec: %v spec of length %d has bounds of "+
			"length %d and %d", t, shape.Len(), lowerBound.Len(),
			upperBound.Len()))
	}
	return Spec{
		Shape:       shape,
		Type:        t,
		LowerBound:  lowerBound,
		UpperBound:  upperBound,
		Cardinality: cardinality,
	}
}
