// Package weighting implements the strategies that turn deployment history
// into per-technology objective penalty weights, one per supported
// weighting_method configuration value.
package weighting

import (
	"fmt"

	"github.com/mga4all/spores-go/pkg/core"
	"github.com/mga4all/spores-go/pkg/network"
)

// Method is an enumeration of the supported weighting strategies.
type Method int

const (
	RelativeDeployment Method = iota
	RelativeDeploymentNormalized
	Random
	EvolvingAverage
	EvolvingMedian
)

var methodNames = map[Method]string{
	RelativeDeployment:           "relative_deployment",
	RelativeDeploymentNormalized: "relative_deployment_normalized",
	Random:                       "random",
	EvolvingAverage:              "evolving_average",
	EvolvingMedian:               "evolving_median",
}

func (m Method) String() string {
	if name, ok := methodNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

// ParseMethod maps a weighting_method configuration value onto a Method.
func ParseMethod(name string) (Method, error) {
	for m, n := range methodNames {
		if n == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown weighting method: %q", name)
}

// Inputs carries the state a strategy may consume. Every strategy reads the
// group spec; which of the remaining fields are used depends on the method.
type Inputs struct {
	// Spec fixes the shape of the returned weight snapshot.
	Spec *core.GroupSpec
	// Latest is the most recently solved network.
	Latest network.Network
	// History is the full deployment history including the least-cost
	// entry, oldest first.
	History core.History
	// Previous is the weight snapshot produced by the prior iteration;
	// all-zero before the first strategy call.
	Previous *core.Snapshot
	// UpperBound bounds values drawn by the random strategy.
	UpperBound float64
}

// Weighter produces a new weight snapshot from the iteration state.
type Weighter interface {
	Weights(in Inputs) (*core.Snapshot, error)
}

// New is a factory that creates the Weighter for a method. The switch is
// exhaustive over the Method enumeration.
func New(m Method) (Weighter, error) {
	switch m {
	case RelativeDeployment:
		return &relativeWeighter{}, nil
	case RelativeDeploymentNormalized:
		return &relativeWeighter{normalize: true}, nil
	case Random:
		return &randomWeighter{}, nil
	case EvolvingAverage:
		return &evolvingWeighter{aggregate: core.AverageDeployment}, nil
	case EvolvingMedian:
		return &evolvingWeighter{aggregate: core.MedianDeployment}, nil
	default:
		return nil, fmt.Errorf("unsupported weighting method: %v", m)
	}
}
