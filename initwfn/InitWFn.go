// Package initwfn wraps Gorgonia InitWFn so that weight initializers
// can be selected by name in run files and reported in logs.
package initwfn

import (
	"fmt"
	"strings"

	G "gorgonia.org/gorgonia"
)

// Type describes different types of InitWFn that are available.
type Type string

// Available InitWFn types
const (
	GlorotU Type = "GlorotU"
	GlorotN Type = "GlorotN"
	HeU     Type = "HeU"
	HeN     Type = "HeN"
	Zeroes  Type = "Zeroes"
	Ones    Type = "Ones"
)

// Types returns all available InitWFn types
func Types() []Type {
	return []Type{GlorotU, GlorotN, HeU, HeN, Zeroes, Ones}
}

// ParseType returns the Type with the given name, ignoring case
func ParseType(name string) (Type, error) {
	for _, t := range Types() {
		if strings.EqualFold(string(t), name) {
			return t, nil
		}
	}
	return "", fmt.Errorf("parseType: no such initializer %q, want one of %v",
		name, Types())
}

// InitWFn wraps a Gorgonia InitWFn together with the Config that
// created it.
type InitWFn struct {
	initWFn G.InitWFn
	Type
	Config
}

// New returns the InitWFn of type t. The gain is used only by
// initializers which scale with the fan of the layer.
func New(t Type, gain float64) (*InitWFn, error) {
	switch t {
	case GlorotU, GlorotN, HeU, HeN:
		if gain <= 0 {
			return nil, fmt.Errorf("new: gain must be positive, got %v", gain)
		}
		return newInitWFn(FanConfig{t, gain})

	case Zeroes:
		return NewZeroes()

	case Ones:
		return NewOnes()
	}
	return nil, fmt.Errorf("new: no such initializer %q", t)
}

// newInitWFn returns a new InitWFn
func newInitWFn(c Config) (*InitWFn, error) {
	init := InitWFn{Type: c.Type(), Config: c}
	init.initWFn = init.Config.Create()

	return &init, nil
}

// InitWFn returns the wrapped Gorgonia InitWFn
func (w *InitWFn) InitWFn() G.InitWFn {
	return w.initWFn
}

// String implements the fmt.Stringer interface
func (w *InitWFn) String() string {
	return fmt.Sprintf("{%v InitWFn: %v}", w.Type, w.Config)
}

// Config implements a Gorgonia InitWFn configuration and can be used to
// create the described Gorgonia InitWFn's.
type Config interface {
	// Create returns the Gorgonia InitWFn that the Config describes
	Create() G.InitWFn

	// Type returns the type of Gorgonia InitWFn that is returned
	Type() Type
}
