package weighting

import (
	"math"

	"github.com/mga4all/spores-go/internal/engines/deployment"
	"github.com/mga4all/spores-go/pkg/core"
)

const (
	// changeRatioFloor clips the relative change toward zero so a spore
	// that lands exactly on the central tendency yields the cap weight
	// 1/changeRatioFloor = 1000 rather than dividing by zero.
	changeRatioFloor = 0.001
)

// evolvingWeighter rewards technologies that moved away from their
// historical central tendency (mean or median) and penalizes those that
// stayed put: weight = 1 / max(|latest-central|/central, floor). A central
// tendency of zero yields weight 0, never a penalty: a technology that has
// been absent from the whole history should keep getting deployed, not be
// pushed back to zero the moment it appears.
type evolvingWeighter struct {
	aggregate core.Aggregator
}

func (w *evolvingWeighter) Weights(in Inputs) (*core.Snapshot, error) {
	central := w.aggregate(in.History, in.Spec)
	latest := deployment.Extract(in.Latest, in.Spec)

	out := core.NewSnapshot(in.Spec)
	for i := 0; i < in.Spec.Len(); i++ {
		c := central.At(i)
		if c == 0 {
			continue
		}
		change := math.Abs(latest.At(i)-c) / c
		out.SetAt(i, 1/math.Max(change, changeRatioFloor))
	}
	return out, nil
}
