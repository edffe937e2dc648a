// Package network defines the collaborator contracts the SPORES engine is
// written against: an energy-system network with extendable capacity
// variables, and the linear optimization model built from it. Real
// implementations wrap an external modeling framework and solver; memnet
// provides in-memory implementations for testing.
package network

import (
	"context"
	"fmt"
)

// CapacityRecord is one row of a network's per-component capacity table: a
// physical unit, the technology it belongs to, and the optimizable sizing
// attribute with its realized value and upper bound. Several units may share
// one technology identifier.
type CapacityRecord struct {
	Unit       string
	Technology string
	Attribute  string
	Optimized  float64
	// UpperBound is the configured capacity bound for the unit;
	// math.Inf(1) when unbounded.
	UpperBound float64
}

// Network is the mutable optimization subject. Implementations wrap the
// underlying energy-system model.
type Network interface {
	// IsSolved reports whether the network carries a solution.
	IsSolved() bool

	// CapacityRecords returns the capacity table for one component kind.
	// Unknown kinds return an empty table.
	CapacityRecords(kind string) []CapacityRecord

	// CostTotals returns the total capital and operating cost of the
	// current solution.
	CostTotals() (capital, operating float64)

	// BuildModel returns a fresh optimization model reflecting the
	// network's current topology and bounds, with the network's native
	// least-cost objective installed.
	BuildModel() (OptimizationModel, error)

	// AssignSolution writes a solved model's primal values back onto the
	// network.
	AssignSolution(m OptimizationModel) error

	// AssignDuals writes a solved model's dual values back onto the
	// network.
	AssignDuals(m OptimizationModel) error

	// Copy returns a deep, independent copy of the network.
	Copy() Network
}

// Variable references a capacity decision variable in a model, keyed the
// same way snapshot leaves are.
type Variable struct {
	Kind       string
	Attribute  string
	Technology string
}

// Term is one coefficient*variable entry of a linear expression.
type Term struct {
	Coefficient float64
	Variable    Variable
}

// Expression is a linear expression over model variables.
type Expression struct {
	Terms    []Term
	Constant float64
}

// Sense is the direction of an inequality constraint.
type Sense string

const (
	SenseLE Sense = "<="
	SenseGE Sense = ">="
)

// Constraint is a named linear inequality.
type Constraint struct {
	LHS   Expression
	Sense Sense
	RHS   float64
	Name  string
}

// OptimizationModel is a linear program with named capacity variables and a
// replaceable objective.
type OptimizationModel interface {
	// HasVariableGroup reports whether the model defines capacity
	// variables for the given component kind under the given attribute.
	HasVariableGroup(kind, attribute string) bool

	// Variable looks up the capacity variable for one technology.
	Variable(kind, attribute, technology string) (Variable, bool)

	// Objective returns the model's current objective expression.
	Objective() Expression

	// SetObjective replaces the model's objective expression.
	SetObjective(expr Expression)

	// AddConstraint adds a named inequality constraint.
	AddConstraint(c Constraint) error

	// Solve runs the named external solver with the given options,
	// mutating the model with a solution.
	Solve(ctx context.Context, solver string, options map[string]any) error
}

// SolverConfig maps exactly one solver name to its options.
type SolverConfig map[string]map[string]any

// Solver returns the single configured solver name and its options.
func (c SolverConfig) Solver() (string, map[string]any, error) {
	if len(c) != 1 {
		return "", nil, fmt.Errorf("solver config must contain exactly one solver, got %d", len(c))
	}
	for name, options := range c {
		return name, options, nil
	}
	panic("unreachable")
}
