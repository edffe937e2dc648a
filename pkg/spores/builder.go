package spores

import (
	"fmt"

	"github.com/mga4all/spores-go/pkg/core"
	"github.com/mga4all/spores-go/pkg/network"
)

// BudgetConstraintName names the inequality bounding every spore's total
// cost to within the configured slack of the optimum.
const BudgetConstraintName = "budget-constraint"

// CreateModifiedModel obtains a fresh optimization model from the network,
// caps its native least-cost objective with the budget constraint
//
//	original objective <= (1 + spores_slack) * optimalCost
//
// and then hands the model to ModifyObjective to install the
// diversification term in place of the cost objective.
func CreateModifiedModel(n network.Network, cfg *Config, optimalCost float64, weights *core.Snapshot) (network.OptimizationModel, error) {
	m, err := n.BuildModel()
	if err != nil {
		return nil, fmt.Errorf("building optimization model: %w", err)
	}

	budget := network.Constraint{
		LHS:   m.Objective(),
		Sense: network.SenseLE,
		RHS:   (1 + cfg.Slack) * optimalCost,
		Name:  BudgetConstraintName,
	}
	if err := m.AddConstraint(budget); err != nil {
		return nil, fmt.Errorf("adding budget constraint: %w", err)
	}

	return ModifyObjective(m, weights, cfg)
}
