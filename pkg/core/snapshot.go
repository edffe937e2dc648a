package core

import (
	"gonum.org/v1/gonum/floats"
)

// Snapshot is a GroupSpec-shaped value vector. The same representation
// carries both deployment snapshots (realized capacities) and weight
// snapshots (objective penalties); the shape is fixed by the group spec it was
// created from. A snapshot is treated as immutable once handed off; only its
// producer writes to it.
type Snapshot struct {
	spec   *GroupSpec
	values []float64
}

// NewSnapshot returns an all-zero snapshot shaped by spec.
func NewSnapshot(spec *GroupSpec) *Snapshot {
	return &Snapshot{spec: spec, values: make([]float64, spec.Len())}
}

// Spec returns the shape this snapshot was created from.
func (s *Snapshot) Spec() *GroupSpec { return s.spec }

// Clone returns an independent copy.
func (s *Snapshot) Clone() *Snapshot {
	out := NewSnapshot(s.spec)
	copy(out.values, s.values)
	return out
}

// Value returns the leaf value for key, or 0 when the key is outside this
// snapshot's shape. The zero fallback is what lets histories recorded under
// a narrower spec participate in aggregation.
func (s *Snapshot) Value(key Key) float64 {
	if i, ok := s.spec.Index(key); ok {
		return s.values[i]
	}
	return 0
}

// Set writes the leaf value for key and reports whether the key is part of
// this snapshot's shape.
func (s *Snapshot) Set(key Key, v float64) bool {
	i, ok := s.spec.Index(key)
	if ok {
		s.values[i] = v
	}
	return ok
}

// At returns the value at position i in the fixed leaf order.
func (s *Snapshot) At(i int) float64 { return s.values[i] }

// SetAt writes the value at position i in the fixed leaf order.
func (s *Snapshot) SetAt(i int, v float64) { s.values[i] = v }

// Max returns the largest leaf value across the entire snapshot, or 0 for an
// empty shape.
func (s *Snapshot) Max() float64 {
	if len(s.values) == 0 {
		return 0
	}
	return floats.Max(s.values)
}

// Scale multiplies every leaf by f in place.
func (s *Snapshot) Scale(f float64) {
	floats.Scale(f, s.values)
}
