package spores

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mga4all/spores-go/internal/engines/deployment"
	"github.com/mga4all/spores-go/internal/engines/weighting"
	"github.com/mga4all/spores-go/internal/logging"
	"github.com/mga4all/spores-go/internal/observability"
	"github.com/mga4all/spores-go/pkg/core"
	"github.com/mga4all/spores-go/pkg/network"
)

// ErrUnsolvedNetwork is returned when the least-cost network handed to Run
// does not carry a solution.
var ErrUnsolvedNetwork = errors.New("least-cost network must be solved")

// Result carries everything a SPORES run produces. Networks and Models are
// keyed spore_1..spore_N and model_1..model_N; Weights holds the weight
// snapshot used for each iteration in order; History has NumSpores+1
// entries, with the least-cost snapshot at index 0.
type Result struct {
	Networks map[string]network.Network
	Weights  []*core.Snapshot
	Models   map[string]network.OptimizationModel
	History  core.History
}

// Run generates cfg.NumSpores near-optimal alternatives to the solved
// least-cost network. Each iteration derives penalty weights from the
// deployment history, builds a budget-constrained model with the perturbed
// objective on a fresh copy of the base network, solves it, and appends the
// resulting deployment snapshot to the history.
//
// The first iteration always uses the dedicated first-iteration rule; the
// configured weighting_method takes over from the second iteration on.
// Iterations are strictly sequential: every strategy but random consumes
// state produced by the previous solve.
func Run(ctx context.Context, leastCost network.Network, cfg *Config, solverCfg network.SolverConfig) (*Result, error) {
	log := logging.FromContext(ctx)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if leastCost == nil || !leastCost.IsSolved() {
		return nil, ErrUnsolvedNetwork
	}
	method, err := cfg.method()
	if err != nil {
		// Validate already vetted the method name.
		return nil, err
	}
	spec, err := cfg.GroupSpec()
	if err != nil {
		return nil, err
	}

	metrics, _ := observability.NewEngineCollector(nil)
	if metrics != nil {
		metrics.RunsTotal.Inc()
	}

	capital, operating := leastCost.CostTotals()
	optimalCost := capital + operating
	log.V(logging.DEBUG).Info("starting SPORES run",
		"numSpores", cfg.NumSpores, "method", method.String(), "optimalCost", optimalCost)

	result := &Result{
		Networks: make(map[string]network.Network, cfg.NumSpores),
		Models:   make(map[string]network.OptimizationModel, cfg.NumSpores),
		Weights:  make([]*core.Snapshot, 0, cfg.NumSpores),
		History:  core.History{deployment.Extract(leastCost, spec)},
	}

	previous := core.NewSnapshot(spec)
	latest := leastCost

	for i := 1; i <= cfg.NumSpores; i++ {
		var weights *core.Snapshot
		if i == 1 {
			weights = weighting.FirstIteration(latest, spec)
		} else {
			weighter, err := weighting.New(method)
			if err != nil {
				return nil, err
			}
			weights, err = weighter.Weights(weighting.Inputs{
				Spec:       spec,
				Latest:     latest,
				History:    result.History,
				Previous:   previous,
				UpperBound: cfg.RandomUpperBound,
			})
			if err != nil {
				return nil, fmt.Errorf("weighting iteration %d: %w", i, err)
			}
		}

		spore := leastCost.Copy()
		model, err := CreateModifiedModel(spore, cfg, optimalCost, weights)
		if err != nil {
			return nil, fmt.Errorf("iteration %d: %w", i, err)
		}

		start := time.Now()
		spore, model, err = SolveAndAssign(ctx, spore, model, solverCfg)
		if metrics != nil {
			metrics.SolveDuration.Observe(time.Since(start).Seconds())
		}
		if err != nil {
			if metrics != nil {
				metrics.SolveFailures.Inc()
			}
			return nil, fmt.Errorf("iteration %d: %w", i, err)
		}

		result.Networks[fmt.Sprintf("spore_%d", i)] = spore
		result.Models[fmt.Sprintf("model_%d", i)] = model
		result.Weights = append(result.Weights, weights)
		result.History = append(result.History, deployment.Extract(spore, spec))

		previous = weights
		latest = spore
		if metrics != nil {
			metrics.IterationsTotal.WithLabelValues(method.String()).Inc()
		}
		log.V(logging.DEBUG).Info("spore iteration complete", "iteration", i)
	}

	return result, nil
}
