package initwfn

import (
	"fmt"

	G "gorgonia.org/gorgonia"
	"gorgonia.org/tensor"
)

// FanConfig implements a configuration of the Glorot and He
// initialization algorithms, which scale weights by the fan in and
// fan out of a layer.
type FanConfig struct {
	Initializer Type
	Gain        float64
}

// NewGlorotU returns a new Glorot Uniform weight initializer
func NewGlorotU(gain float64) (*InitWFn, error) {
	return New(GlorotU, gain)
}

// NewHeU returns a new He Uniform weight initializer
func NewHeU(gain float64) (*InitWFn, error) {
	return New(HeU, gain)
}

// Type returns the type of initialization algorithm described by
// the configuration.
func (f FanConfig) Type() Type {
	return f.Initializer
}

// Create returns the weight initialization algorithm as a Gorgonia
// InitWFn
func (f FanConfig) Create() G.InitWFn {
	switch f.Initializer {
	case GlorotN:
		return G.GlorotN(f.Gain)
	case HeU:
		return he(G.HeEtAlU64, f.Gain)
	case HeN:
		return he(G.HeEtAlN64, f.Gain)
	default:
		return G.GlorotU(f.Gain)
	}
}

// he returns a He initializer drawing weights with sample. Gorgonia
// only provides He initialization of float64 weights, so float32
// weights are sampled as float64 and converted.
func he(sample func(gain float64, s ...int) []float64,
	gain float64) G.InitWFn {
	return func(dt tensor.Dtype, s ...int) interface{} {
		weights := sample(gain, s...)
		switch dt {
		case tensor.Float64:
			return weights
		case tensor.Float32:
			out := make([]float32, len(weights))
			for i, w := range weights {
				out[i] = float32(w)
			}
			return out
		}
		panic(fmt.Sprintf("he: unsupported dtype %v", dt))
	}
}
