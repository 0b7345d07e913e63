// Package agent defines the interfaces that learning agents implement
package agent

import "github.com/samuelfneumann/a2c/experience"

// Learner learns from batches of experience windows. Step performs a
// single update and returns the loss of the batch before the update.
type Learner interface {
	Step(batch []experience.Window) (float64, error)
}

// Agent both learns and provides the policy that generates its
// experience
type Agent interface {
	Learner
	experience.Policy
	Close() error
}
