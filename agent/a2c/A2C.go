// Package a2c implements the Advantage Actor-Critic (A2C) algorithm
// with n-step returns and a shared actor-critic network.
//
// The agent holds three copies of its network, each on its own
// computational graph. The training network computes the loss of a
// batch of windows and its gradients. The evaluation network computes
// the state values needed for the n-step returns and advantages of a
// batch, with the first and last states of each window interleaved in
// a single input. The acting network computes action probabilities
// for a single observation. After each update, the weights of the
// training network are copied into the other two.
package a2c

import (
	"fmt"

	env "github.com/samuelfneumann/a2c/environment"
	"github.com/samuelfneumann/a2c/experience"
	"github.com/samuelfneumann/a2c/network"
	"github.com/samuelfneumann/a2c/utils/op"
	G "gorgonia.org/gorgonia"
	"gorgonia.org/tensor"
)

// A2C implements the Advantage Actor-Critic algorithm. The loss of a
// batch of n-step windows is
//
//	L = 1/B Σ [ -log π(a₀|s₀)·(R - V(s₀)) + (V(s₀) - R)² ]
//
// where the advantage R - V(s₀) is treated as a constant, so that the
// policy gradient does not flow into the critic through it.
type A2C struct {
	features  int
	actions   int
	batchSize int
	gamma     float32

	train      *network.ActorCriticMLP
	trainVM    G.VM
	solver     G.Solver
	actionMask *G.Node
	advantages *G.Node
	returns    *G.Node
	loss       *G.Node
	lossVal    G.Value

	eval   *network.ActorCriticMLP
	evalVM G.VM

	act   *network.ActorCriticMLP
	actVM G.VM
}

// New returns a new A2C agent for acting in env, which must have a
// discrete action space.
func New(e env.Environment, c Config) (*A2C, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("new: invalid config: %v", err)
	}
	gamma := c.Gamma
	if gamma == 0 {
		gamma = Gamma
	}

	features := e.ObservationSpec().Shape.Len()
	actions, err := env.NumActions(e)
	if err != nil {
		return nil, fmt.Errorf("new: %v", err)
	}
	batch := c.BatchSize

	g := G.NewGraph()
	train, err := network.NewActorCriticMLP(features, batch, actions, g,
		c.HiddenSizes, c.Biases, c.Activations, c.InitWFn.InitWFn())
	if err != nil {
		return nil, fmt.Errorf("new: could not create training network: %v",
			err)
	}

	actionMask := G.NewMatrix(g, tensor.Float32, G.WithShape(batch, actions),
		G.WithName("actionMask"), G.WithInit(G.Zeroes()))
	advantages := G.NewVector(g, tensor.Float32, G.WithShape(batch),
		G.WithName("advantages"), G.WithInit(G.Zeroes()))
	returns := G.NewVector(g, tensor.Float32, G.WithShape(batch),
		G.WithName("returns"), G.WithInit(G.Zeroes()))

	// Policy loss
	logProb := op.Pick(train.LogProbs(), actionMask)
	policyLoss := G.Must(G.HadamardProd(logProb, advantages))
	policyLoss = G.Must(G.Neg(policyLoss))

	// Value loss
	value := G.Must(G.Reshape(train.Value(), tensor.Shape{batch}))
	valueLoss := G.Must(G.Sub(value, returns))
	valueLoss = G.Must(G.Square(valueLoss))

	loss := G.Must(G.Add(policyLoss, valueLoss))
	loss = G.Must(G.Mean(loss))

	a := &A2C{
		features:   features,
		actions:    actions,
		batchSize:  batch,
		gamma:      gamma,
		train:      train,
		solver:     c.Solver,
		actionMask: actionMask,
		advantages: advantages,
		returns:    returns,
		loss:       loss,
	}
	G.Read(loss, &a.lossVal)

	if _, err := G.Grad(loss, train.Learnables()...); err != nil {
		return nil, fmt.Errorf("new: could not compute gradient: %v", err)
	}
	a.trainVM = G.NewTapeMachine(g, G.BindDualValues(train.Learnables()...))

	if a.eval, err = train.CloneWithBatch(2 * batch); err != nil {
		return nil, fmt.Errorf("new: could not create evaluation network: "+
			"%v", err)
	}
	a.evalVM = G.NewTapeMachine(a.eval.Graph())

	if a.act, err = train.CloneWithBatch(1); err != nil {
		return nil, fmt.Errorf("new: could not create acting network: %v", err)
	}
	a.actVM = G.NewTapeMachine(a.act.Graph())

	return a, nil
}

// Probabilities returns the probability of selecting each action in
// the state obs
func (a *A2C) Probabilities(obs []float32) ([]float32, error) {
	if err := a.act.SetInput(obs); err != nil {
		return nil, fmt.Errorf("probabilities: %v", err)
	}
	if err := a.actVM.RunAll(); err != nil {
		return nil, fmt.Errorf("probabilities: %v", err)
	}
	defer a.actVM.Reset()

	return a.act.ProbsVal(), nil
}

// Step performs a single update on a batch of windows and returns the
// loss of the batch before the update. The batch must hold exactly the
// configured number of windows.
func (a *A2C) Step(batch []experience.Window) (float64, error) {
	if len(batch) != a.batchSize {
		return 0, fmt.Errorf("step: expected batch of %v windows, got %v",
			a.batchSize, len(batch))
	}

	values, err := a.values(batch)
	if err != nil {
		return 0, fmt.Errorf("step: %v", err)
	}

	states := make([]float32, 0, a.batchSize*a.features)
	mask := make([]float32, a.batchSize*a.actions)
	returns := make([]float32, a.batchSize)
	advantages := make([]float32, a.batchSize)
	for i, w := range batch {
		first := w.First()
		if first.Action < 0 || first.Action >= a.actions {
			return 0, fmt.Errorf("step: illegal action %v in window %v",
				first.Action, i)
		}

		var bootstrap float32
		if !w.Last().Done {
			bootstrap = values[2*i+1]
		}
		returns[i] = DiscountedReturn(w.Rewards(), bootstrap, a.gamma)
		advantages[i] = returns[i] - values[2*i]

		states = append(states, first.State...)
		mask[i*a.actions+first.Action] = 1
	}

	if err := a.train.SetInput(states); err != nil {
		return 0, fmt.Errorf("step: %v", err)
	}
	if err := a.let(a.actionMask, mask); err != nil {
		return 0, fmt.Errorf("step: %v", err)
	}
	if err := a.let(a.advantages, advantages); err != nil {
		return 0, fmt.Errorf("step: %v", err)
	}
	if err := a.let(a.returns, returns); err != nil {
		return 0, fmt.Errorf("step: %v", err)
	}

	if err := a.trainVM.RunAll(); err != nil {
		return 0, fmt.Errorf("step: could not run training graph: %v", err)
	}
	if err := a.solver.Step(a.train.Model()); err != nil {
		return 0, fmt.Errorf("step: could not step solver: %v", err)
	}
	loss := a.lossVal.Data().(float32)
	a.trainVM.Reset()

	if err := network.Set(a.eval, a.train); err != nil {
		return 0, fmt.Errorf("step: could not update evaluation network: %v",
			err)
	}
	if err := network.Set(a.act, a.train); err != nil {
		return 0, fmt.Errorf("step: could not update acting network: %v",
			err)
	}

	return float64(loss), nil
}

// values computes the state values of the first and last state of each
// window in the batch. For window i, the value of its first state is at
// index 2i and the value of its last state at index 2i+1.
func (a *A2C) values(batch []experience.Window) ([]float32, error) {
	states := make([]float32, 0, 2*a.batchSize*a.features)
	for i, w := range batch {
		if len(w) == 0 {
			return nil, fmt.Errorf("values: window %v is empty", i)
		}
		states = append(states, w.First().State...)
		states = append(states, w.Last().State...)
	}

	if err := a.eval.SetInput(states); err != nil {
		return nil, fmt.Errorf("values: %v", err)
	}
	if err := a.evalVM.RunAll(); err != nil {
		return nil, fmt.Errorf("values: %v", err)
	}
	defer a.evalVM.Reset()

	return a.eval.ValueVal(), nil
}

// let sets the value of an input node of the training graph
func (a *A2C) let(n *G.Node, data []float32) error {
	t := tensor.NewDense(tensor.Float32, n.Shape(),
		tensor.WithBacking(data))
	if err := G.Let(n, t); err != nil {
		return fmt.Errorf("let: could not set %v: %v", n.Name(), err)
	}
	return nil
}

// Network returns the training network
func (a *A2C) Network() *network.ActorCriticMLP {
	return a.train
}

// Close releases the resources held by the agent's VMs
func (a *A2C) Close() error {
	a.trainVM.Close()
	a.evalVM.Close()
	a.actVM.Close()
	return nil
}
