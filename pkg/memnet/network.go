// Package memnet provides in-memory implementations of the network and
// optimization-model collaborators. The pseudo-solver is deterministic and
// makes no optimality claims; it exists so the iteration engine, the
// weighting strategies, and their tests can run end to end without an
// external solver.
package memnet

import (
	"fmt"
	"math"

	"github.com/mga4all/spores-go/pkg/network"
)

// Network is an in-memory network.Network. Build one with NewNetwork and
// AddUnit, then MarkSolved once its records carry a least-cost solution.
type Network struct {
	records map[string][]network.CapacityRecord
	// attrs records the single capacity attribute per component kind, the
	// shape BuildModel exposes as variable groups.
	attrs     map[string]string
	capital   float64
	operating float64
	solved    bool
	duals     map[string]float64

	// CostPerUnit maps a technology to its capacity cost, used for the
	// native objective of built models. Technologies without an entry
	// cost DefaultUnitCost.
	CostPerUnit map[string]float64

	// SolveHook, when set, replaces the default pseudo-solver of models
	// built from this network. Copies inherit it.
	SolveHook func(m *Model) error
}

// DefaultUnitCost is the per-unit capacity cost assumed for technologies
// without a CostPerUnit entry.
const DefaultUnitCost = 1.0

// NewNetwork returns an empty unsolved network.
func NewNetwork() *Network {
	return &Network{
		records:     make(map[string][]network.CapacityRecord),
		attrs:       make(map[string]string),
		duals:       make(map[string]float64),
		CostPerUnit: make(map[string]float64),
	}
}

// AddUnit adds one physical unit. All units of a kind must share a single
// capacity attribute; upper may be math.Inf(1) for an unbounded unit.
func (n *Network) AddUnit(kind, unit, technology, attribute string, optimized, upper float64) error {
	if prev, ok := n.attrs[kind]; ok && prev != attribute {
		return fmt.Errorf("component kind %s already uses capacity attribute %s", kind, prev)
	}
	n.attrs[kind] = attribute
	n.records[kind] = append(n.records[kind], network.CapacityRecord{
		Unit:       unit,
		Technology: technology,
		Attribute:  attribute,
		Optimized:  optimized,
		UpperBound: upper,
	})
	return nil
}

// SetCostTotals sets the solution's capital and operating cost totals.
func (n *Network) SetCostTotals(capital, operating float64) {
	n.capital, n.operating = capital, operating
}

// MarkSolved flags the network as carrying a solution.
func (n *Network) MarkSolved() { n.solved = true }

// IsSolved implements network.Network.
func (n *Network) IsSolved() bool { return n.solved }

// CapacityRecords implements network.Network.
func (n *Network) CapacityRecords(kind string) []network.CapacityRecord {
	return n.records[kind]
}

// CostTotals implements network.Network.
func (n *Network) CostTotals() (float64, float64) {
	return n.capital, n.operating
}

// Duals returns the dual values assigned from the last solved model, keyed
// by constraint name.
func (n *Network) Duals() map[string]float64 { return n.duals }

// BuildModel implements network.Network: a fresh model with one variable per
// (kind, attribute, technology) and the native cost objective
// sum(cost * capacity).
func (n *Network) BuildModel() (network.OptimizationModel, error) {
	m := &Model{
		net:    n,
		groups: make(map[string]map[string]map[string]bool),
		bounds: make(map[network.Variable]float64),
	}
	var objective network.Expression
	for kind, records := range n.records {
		attr := n.attrs[kind]
		for _, rec := range records {
			v := network.Variable{Kind: kind, Attribute: attr, Technology: rec.Technology}
			if m.groups[kind] == nil {
				m.groups[kind] = make(map[string]map[string]bool)
			}
			if m.groups[kind][attr] == nil {
				m.groups[kind][attr] = make(map[string]bool)
			}
			if m.groups[kind][attr][rec.Technology] {
				// Units sharing a technology share one variable;
				// bounds accumulate below.
				m.bounds[v] += rec.UpperBound
				continue
			}
			m.groups[kind][attr][rec.Technology] = true
			m.bounds[v] = rec.UpperBound
			cost := n.CostPerUnit[rec.Technology]
			if cost == 0 {
				cost = DefaultUnitCost
			}
			objective.Terms = append(objective.Terms, network.Term{Coefficient: cost, Variable: v})
		}
	}
	m.objective = objective
	return m, nil
}

// AssignSolution implements network.Network: the solved model's
// per-technology values are distributed evenly across the technology's
// units.
func (n *Network) AssignSolution(om network.OptimizationModel) error {
	m, ok := om.(*Model)
	if !ok {
		return fmt.Errorf("memnet network cannot assign from %T", om)
	}
	if !m.solved {
		return fmt.Errorf("model has not been solved")
	}
	for kind, records := range n.records {
		attr := n.attrs[kind]
		counts := make(map[string]int)
		for _, rec := range records {
			counts[rec.Technology]++
		}
		for i := range records {
			v := network.Variable{Kind: kind, Attribute: attr, Technology: records[i].Technology}
			records[i].Optimized = m.solution[v] / float64(counts[records[i].Technology])
		}
	}
	n.solved = true
	return nil
}

// AssignDuals implements network.Network.
func (n *Network) AssignDuals(om network.OptimizationModel) error {
	m, ok := om.(*Model)
	if !ok {
		return fmt.Errorf("memnet network cannot assign duals from %T", om)
	}
	if !m.solved {
		return fmt.Errorf("model has not been solved")
	}
	n.duals = make(map[string]float64, len(m.duals))
	for name, d := range m.duals {
		n.duals[name] = d
	}
	return nil
}

// Copy implements network.Network with a deep copy.
func (n *Network) Copy() network.Network {
	out := NewNetwork()
	for kind, records := range n.records {
		out.records[kind] = append([]network.CapacityRecord(nil), records...)
	}
	for kind, attr := range n.attrs {
		out.attrs[kind] = attr
	}
	for tech, cost := range n.CostPerUnit {
		out.CostPerUnit[tech] = cost
	}
	for name, d := range n.duals {
		out.duals[name] = d
	}
	out.capital, out.operating = n.capital, n.operating
	out.solved = n.solved
	out.SolveHook = n.SolveHook
	return out
}

// unboundedCap stands in for an infinite upper bound in the pseudo-solver.
const unboundedCap = 1000.0

func effectiveBound(b float64) float64 {
	if math.IsInf(b, 1) || b <= 0 {
		return unboundedCap
	}
	return b
}
