package environment

import (
	"fmt"

	"github.com/samuelfneumann/a2c/timestep"
	"gonum.org/v1/gonum/spatial/r1"
)

// IntervalLimit ends an episode as soon as any watched observation
// feature leaves its legal interval. Cart-pole uses this for its cart
// position and pole angle.
type IntervalLimit struct {
	limits  map[int]r1.Interval
	endType timestep.EndType
}

// NewIntervalLimit returns an Ender which requires feature
// obsIndices[i] to stay within limits[i]. Leaving an interval ends
// the episode with end type endType.
func NewIntervalLimit(limits []r1.Interval, obsIndices []int,
	endType timestep.EndType) Ender {
	if len(limits) != len(obsIndices) {
		panic(fmt.Sprintf("newIntervalLimit: %d limits for %d features",
			len(limits), len(obsIndices)))
	}

	byIndex := make(map[int]r1.Interval, len(limits))
	for i, index := range obsIndices {
		byIndex[index] = limits[i]
	}
	return &IntervalLimit{limits: byIndex, endType: endType}
}

// End reports whether t ends the episode, updating its StepType and
// EndType if so.
func (i *IntervalLimit) End(t *timestep.TimeStep) bool {
	for index, limit := range i.limits {
		x := t.Observation.AtVec(index)
		if x < limit.Min || x > limit.Max {
			endEpisode(t, i.endType)
			return true
		}
	}
	return false
}
