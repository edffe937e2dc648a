package core

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// History is the ordered sequence of deployment snapshots, oldest first,
// with the least-cost solution at index 0. It is append-only and owned by
// the iteration orchestrator.
type History []*Snapshot

// Aggregator reduces a history to a single central-tendency snapshot.
type Aggregator func(History, *GroupSpec) *Snapshot

// AverageDeployment returns the per-leaf mean across the full history. A
// snapshot missing a leaf contributes 0 to the sum and still counts toward
// the divisor, so newly introduced technologies average down rather than
// being skipped. An empty history yields an all-zero snapshot.
func AverageDeployment(history History, spec *GroupSpec) *Snapshot {
	out := NewSnapshot(spec)
	if len(history) == 0 {
		return out
	}
	series := make([]float64, len(history))
	for i, key := range spec.Keys() {
		for j, snap := range history {
			series[j] = snap.Value(key)
		}
		out.SetAt(i, stat.Mean(series, nil))
	}
	return out
}

// MedianDeployment returns the per-leaf median across the full history, with
// the same missing-as-zero padding as AverageDeployment. An even-length
// history yields the arithmetic mean of the two middle values.
func MedianDeployment(history History, spec *GroupSpec) *Snapshot {
	out := NewSnapshot(spec)
	if len(history) == 0 {
		return out
	}
	series := make([]float64, len(history))
	for i, key := range spec.Keys() {
		for j, snap := range history {
			series[j] = snap.Value(key)
		}
		out.SetAt(i, median(series))
	}
	return out
}

func median(vals []float64) float64 {
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
