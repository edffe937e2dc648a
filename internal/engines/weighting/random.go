package weighting

import (
	"math/rand/v2"

	"github.com/mga4all/spores-go/pkg/core"
)

// randomWeighter draws every leaf independently and uniformly from
// [0, UpperBound]. Non-deterministic by design: successive calls do not
// compare equal in general.
type randomWeighter struct{}

func (w *randomWeighter) Weights(in Inputs) (*core.Snapshot, error) {
	out := core.NewSnapshot(in.Spec)
	for i := 0; i < in.Spec.Len(); i++ {
		out.SetAt(i, rand.Float64()*in.UpperBound)
	}
	return out, nil
}
