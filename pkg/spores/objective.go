package spores

import (
	"github.com/mga4all/spores-go/pkg/core"
	"github.com/mga4all/spores-go/pkg/network"
)

// ModifyObjective replaces the model's objective with the SPORES
// diversification term built from the weight snapshot: the sum over all
// tracked technologies of coefficient * capacity variable. Cost containment
// is not this function's job; the budget constraint added by
// CreateModifiedModel keeps spores near the optimum.
//
// Per leaf, coefficient = diversification_coefficient * weight, plus the
// flat intensification_coefficient for intensifiable technologies in
// intensify-and-diversify mode, negated when the objective sense is max.
//
// A weight group naming a capacity attribute the model has no variable
// group for fails with *AttributeMismatchError.
func ModifyObjective(m network.OptimizationModel, weights *core.Snapshot, cfg *Config) (network.OptimizationModel, error) {
	sign := 1.0
	if cfg.ObjectiveSense == SenseMax {
		sign = -1.0
	}
	intensify := cfg.Mode == ModeIntensifyAndDiversify

	var expr network.Expression
	for _, group := range weights.Spec().Groups() {
		if !m.HasVariableGroup(group.Kind, group.Attribute) {
			return nil, &AttributeMismatchError{Kind: group.Kind, Attribute: group.Attribute}
		}
		for _, tech := range group.Technologies {
			v, ok := m.Variable(group.Kind, group.Attribute, tech)
			if !ok {
				continue
			}
			key := core.Key{Kind: group.Kind, Attribute: group.Attribute, Technology: tech}
			coeff := cfg.DiversificationCoefficient * weights.Value(key)
			if intensify && cfg.intensifiable(tech) {
				coeff += cfg.IntensificationCoefficient
			}
			expr.Terms = append(expr.Terms, network.Term{Coefficient: sign * coeff, Variable: v})
		}
	}
	m.SetObjective(expr)
	return m, nil
}
