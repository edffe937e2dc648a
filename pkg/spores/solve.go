package spores

import (
	"context"
	"fmt"

	"github.com/mga4all/spores-go/pkg/network"
)

// SolveAndAssign invokes the configured external solver on the model and
// writes the solution and its dual values back onto the network. Both are
// returned for downstream bookkeeping. Solver failures come back as
// *SolveError; there is no retry or relaxation here.
func SolveAndAssign(ctx context.Context, n network.Network, m network.OptimizationModel, solverCfg network.SolverConfig) (network.Network, network.OptimizationModel, error) {
	name, options, err := solverCfg.Solver()
	if err != nil {
		return nil, nil, err
	}

	if err := m.Solve(ctx, name, options); err != nil {
		return nil, nil, &SolveError{Solver: name, Err: err}
	}

	if err := n.AssignSolution(m); err != nil {
		return nil, nil, fmt.Errorf("assigning solution: %w", err)
	}
	if err := n.AssignDuals(m); err != nil {
		return nil, nil, fmt.Errorf("assigning duals: %w", err)
	}
	return n, m, nil
}
