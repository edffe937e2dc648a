package memnet

import (
	"context"
	"fmt"
	"math"

	"github.com/mga4all/spores-go/pkg/network"
)

// Model is an in-memory network.OptimizationModel built by
// (*Network).BuildModel.
type Model struct {
	net         *Network
	groups      map[string]map[string]map[string]bool // kind -> attr -> tech
	bounds      map[network.Variable]float64
	objective   network.Expression
	constraints []network.Constraint
	solution    map[network.Variable]float64
	duals       map[string]float64
	solved      bool

	// SolveCalls counts Solve invocations. LastSolver and LastOptions
	// record the arguments of the most recent one.
	SolveCalls  int
	LastSolver  string
	LastOptions map[string]any
}

// HasVariableGroup implements network.OptimizationModel.
func (m *Model) HasVariableGroup(kind, attribute string) bool {
	return m.groups[kind][attribute] != nil
}

// Variable implements network.OptimizationModel.
func (m *Model) Variable(kind, attribute, technology string) (network.Variable, bool) {
	if !m.groups[kind][attribute][technology] {
		return network.Variable{}, false
	}
	return network.Variable{Kind: kind, Attribute: attribute, Technology: technology}, true
}

// Objective implements network.OptimizationModel.
func (m *Model) Objective() network.Expression { return m.objective }

// SetObjective implements network.OptimizationModel.
func (m *Model) SetObjective(expr network.Expression) { m.objective = expr }

// AddConstraint implements network.OptimizationModel. Constraint names must
// be unique.
func (m *Model) AddConstraint(c network.Constraint) error {
	for _, existing := range m.constraints {
		if existing.Name == c.Name {
			return fmt.Errorf("constraint %q already exists", c.Name)
		}
	}
	m.constraints = append(m.constraints, c)
	return nil
}

// Constraints returns the constraints added so far.
func (m *Model) Constraints() []network.Constraint { return m.constraints }

// Solution returns the solved per-variable values.
func (m *Model) Solution() map[network.Variable]float64 { return m.solution }

// Solve implements network.OptimizationModel. With a SolveHook installed on
// the originating network the hook decides the outcome; otherwise the
// deterministic pseudo-solver assigns each variable
//
//	value = bound / (1 + |objective coefficient|)
//
// so heavier-penalized technologies receive less capacity. Every constraint
// gets a zero dual. This is a stand-in for a real LP solver, not an
// approximation of one.
func (m *Model) Solve(ctx context.Context, solver string, options map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.SolveCalls++
	m.LastSolver = solver
	m.LastOptions = options

	if m.net != nil && m.net.SolveHook != nil {
		if err := m.net.SolveHook(m); err != nil {
			return err
		}
		m.solved = true
		if m.solution == nil {
			m.solution = make(map[network.Variable]float64)
		}
		m.fillDuals()
		return nil
	}

	m.solution = make(map[network.Variable]float64, len(m.bounds))
	coeffs := make(map[network.Variable]float64, len(m.objective.Terms))
	for _, term := range m.objective.Terms {
		coeffs[term.Variable] += term.Coefficient
	}
	for v, bound := range m.bounds {
		m.solution[v] = effectiveBound(bound) / (1 + math.Abs(coeffs[v]))
	}
	m.solved = true
	m.fillDuals()
	return nil
}

// SetSolution installs a solution from inside a SolveHook.
func (m *Model) SetSolution(values map[network.Variable]float64) {
	m.solution = values
}

func (m *Model) fillDuals() {
	m.duals = make(map[string]float64, len(m.constraints))
	for _, c := range m.constraints {
		m.duals[c.Name] = 0
	}
}
