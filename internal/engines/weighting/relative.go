package weighting

import (
	"github.com/mga4all/spores-go/internal/engines/deployment"
	"github.com/mga4all/spores-go/pkg/core"
	"github.com/mga4all/spores-go/pkg/network"
)

// relativeWeighter accumulates the relative deployment of each technology
// across iterations: new = previous + optimized/bound. With normalize set,
// the cumulative snapshot is divided by its single global maximum so the
// largest weight is always 1; an all-zero snapshot is returned unchanged to
// keep division by zero out of the picture.
type relativeWeighter struct {
	normalize bool
}

func (w *relativeWeighter) Weights(in Inputs) (*core.Snapshot, error) {
	out := deployment.Relative(in.Latest, in.Spec)
	if in.Previous != nil {
		for i, key := range in.Spec.Keys() {
			out.SetAt(i, out.At(i)+in.Previous.Value(key))
		}
	}
	if w.normalize {
		if max := out.Max(); max > 0 {
			out.Scale(1 / max)
		}
	}
	return out, nil
}

// FirstIteration is the dedicated first-iteration rule: the relative
// deployment of the least-cost solution itself, before any steady-state
// strategy has history to work from.
func FirstIteration(leastCost network.Network, spec *core.GroupSpec) *core.Snapshot {
	return deployment.Relative(leastCost, spec)
}
