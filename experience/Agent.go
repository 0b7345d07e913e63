package experience

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Agent selects actions in an environment
type Agent interface {
	Act(obs []float32) (int, error)
}

// Policy computes a probability distribution over discrete actions in
// a state
type Policy interface {
	Probabilities(obs []float32) ([]float32, error)
}

// PolicyAgent is an Agent which samples actions from the distribution
// given by a Policy
type PolicyAgent struct {
	policy Policy
	source rand.Source
}

// NewPolicyAgent returns a new PolicyAgent which samples actions from
// policy, seeded with seed.
func NewPolicyAgent(policy Policy, seed uint64) *PolicyAgent {
	return &PolicyAgent{
		policy: policy,
		source: rand.NewSource(seed),
	}
}

// Act samples an action from the policy's distribution over actions
// in the state obs
func (p *PolicyAgent) Act(obs []float32) (int, error) {
	probs, err := p.policy.Probabilities(obs)
	if err != nil {
		return 0, fmt.Errorf("act: %v", err)
	}
	if len(probs) == 0 {
		return 0, fmt.Errorf("act: policy returned no probabilities")
	}

	weights := make([]float64, len(probs))
	for i, prob := range probs {
		if prob < 0 {
			return 0, fmt.Errorf("act: negative probability %v of action %v",
				prob, i)
		}
		weights[i] = float64(prob)
	}

	dist := distuv.NewCategorical(weights, p.source)
	return int(dist.Rand()), nil
}
