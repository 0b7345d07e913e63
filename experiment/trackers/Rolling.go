// Package trackers implements trackers of statistics over the course
// of an experiment
package trackers

import (
	"gonum.org/v1/gonum/stat"
)

// Rolling tracks the most recent values of some statistic, up to a
// maximum number of values. Once full, tracking a new value forgets
// the oldest one.
type Rolling struct {
	values []float64
	size   int
}

// NewRolling returns a new Rolling tracker which remembers at most
// size values
func NewRolling(size int) *Rolling {
	if size < 1 {
		panic("newRolling: size must be positive")
	}
	return &Rolling{values: make([]float64, 0, size), size: size}
}

// Track adds values to the tracker, oldest first
func (r *Rolling) Track(values ...float64) {
	r.values = append(r.values, values...)
	if over := len(r.values) - r.size; over > 0 {
		kept := make([]float64, r.size)
		copy(kept, r.values[over:])
		r.values = kept
	}
}

// Mean returns the mean of the tracked values, which is 0 if no
// values have been tracked
func (r *Rolling) Mean() float64 {
	if len(r.values) == 0 {
		return 0
	}
	return stat.Mean(r.values, nil)
}

// Len returns the number of values tracked
func (r *Rolling) Len() int {
	return len(r.values)
}

// Values returns a copy of the tracked values, oldest first
func (r *Rolling) Values() []float64 {
	out := make([]float64, len(r.values))
	copy(out, r.values)
	return out
}
