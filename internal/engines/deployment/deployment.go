// Package deployment reads realized technology capacities out of a solved
// network into the fixed-shape snapshot representation.
package deployment

import (
	"math"

	"github.com/mga4all/spores-go/pkg/core"
	"github.com/mga4all/spores-go/pkg/network"
)

// Extract builds a deployment snapshot from a solved network: for every leaf
// of spec, the optimized capacity summed across all physical units sharing
// that technology identifier. A technology with no deployed units yields 0.
func Extract(n network.Network, spec *core.GroupSpec) *core.Snapshot {
	out := core.NewSnapshot(spec)
	for _, group := range spec.Groups() {
		records := n.CapacityRecords(group.Kind)
		for _, tech := range group.Technologies {
			key := core.Key{Kind: group.Kind, Attribute: group.Attribute, Technology: tech}
			total := 0.0
			for _, rec := range records {
				if rec.Technology == tech && rec.Attribute == group.Attribute {
					total += rec.Optimized
				}
			}
			out.Set(key, total)
		}
	}
	return out
}

// Relative builds a relative-deployment snapshot: per leaf, the optimized
// capacity divided by the configured upper bound, both summed across the
// technology's units. A technology with no units, an unbounded group, or a
// zero aggregate bound uses a bound of 1.0, so the plain optimized value
// comes through.
func Relative(n network.Network, spec *core.GroupSpec) *core.Snapshot {
	out := core.NewSnapshot(spec)
	for _, group := range spec.Groups() {
		records := n.CapacityRecords(group.Kind)
		for _, tech := range group.Technologies {
			key := core.Key{Kind: group.Kind, Attribute: group.Attribute, Technology: tech}
			opt, bound := 0.0, 0.0
			for _, rec := range records {
				if rec.Technology == tech && rec.Attribute == group.Attribute {
					opt += rec.Optimized
					bound += rec.UpperBound
				}
			}
			if bound <= 0 || math.IsInf(bound, 1) {
				bound = 1.0
			}
			out.Set(key, opt/bound)
		}
	}
	return out
}
