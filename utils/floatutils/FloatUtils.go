// Package floatutils provides utilities for working with floats
package floatutils

import (
	"math"
)

// Clip clips a floating point to within a minimum and maximum value.
// If the floating point exceeds max, then the function returns the max
// If min exceeds the floating point, then the function returns the min
func Clip(value, min, max float64) float64 {
	clipped := math.Min(value, max)
	return math.Max(clipped, min)
}

// Float32 converts a slice of float64 to float32
func Float32(values []float64) []float32 {
	out := make([]float32, len(values))
	for i := range values {
		out[i] = float32(values[i])
	}
	return out
}

// Float64 converts a slice of float32 to float64
func Float64(values []float32) []float64 {
	out := make([]float64, len(values))
	for i := range values {
		out[i] = float64(values[i])
	}
	return out
}
