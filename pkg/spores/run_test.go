package spores

import (
	"context"
	"errors"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mga4all/spores-go/internal/engines/deployment"
	"github.com/mga4all/spores-go/internal/logging"
	"github.com/mga4all/spores-go/pkg/core"
	"github.com/mga4all/spores-go/pkg/memnet"
	"github.com/mga4all/spores-go/pkg/network"
)

// leastCostFixture builds a solved three-technology network resembling a
// least-cost investment solution.
func leastCostFixture() *memnet.Network {
	n := memnet.NewNetwork()
	must := func(err error) {
		ExpectWithOffset(2, err).NotTo(HaveOccurred())
	}
	must(n.AddUnit("Generator", "solar_bus1", "solar", "p_nom", 600, 1000))
	must(n.AddUnit("Generator", "solar_bus2", "solar", "p_nom", 200, 1000))
	must(n.AddUnit("Generator", "wind_bus1", "wind", "p_nom", 150, 1000))
	must(n.AddUnit("Generator", "OCGT", "gas", "p_nom", 0, 1000))
	n.CostPerUnit["solar"] = 400
	n.CostPerUnit["wind"] = 500
	n.CostPerUnit["gas"] = 2000
	n.SetCostTotals(1000, 500)
	n.MarkSolved()
	return n
}

func fixtureConfig(method string) *Config {
	return &Config{
		NumSpores:       5,
		Mode:            ModeDiversify,
		WeightingMethod: method,
		SporeTechs: map[string]map[string][]string{
			"Generator": {"p_nom": {"solar", "wind", "gas"}},
		},
		Slack:                      0.1,
		DiversificationCoefficient: 10,
	}
}

func snapshotValues(s *core.Snapshot) map[string]float64 {
	out := make(map[string]float64, s.Spec().Len())
	for _, key := range s.Spec().Keys() {
		out[key.Technology] = s.Value(key)
	}
	return out
}

var _ = Describe("Run", func() {
	var (
		ctx       context.Context
		leastCost *memnet.Network
		solverCfg network.SolverConfig
	)

	BeforeEach(func() {
		ctx = logging.IntoContext(context.Background(), logging.NewTestLogger())
		leastCost = leastCostFixture()
		solverCfg = network.SolverConfig{"highs": {}}
	})

	It("produces the full set of spores, weights, models, and history", func() {
		result, err := Run(ctx, leastCost, fixtureConfig("random"), solverCfg)
		Expect(err).NotTo(HaveOccurred())

		Expect(result.Networks).To(HaveLen(5))
		Expect(result.Models).To(HaveLen(5))
		Expect(result.Weights).To(HaveLen(5))
		Expect(result.History).To(HaveLen(6))

		for i := 1; i <= 5; i++ {
			Expect(result.Networks).To(HaveKey(fmt.Sprintf("spore_%d", i)))
			Expect(result.Models).To(HaveKey(fmt.Sprintf("model_%d", i)))
		}
	})

	It("seeds the history with the least-cost deployment snapshot", func() {
		result, err := Run(ctx, leastCost, fixtureConfig("random"), solverCfg)
		Expect(err).NotTo(HaveOccurred())

		Expect(snapshotValues(result.History[0])).To(Equal(map[string]float64{
			"solar": 800.0,
			"wind":  150.0,
			"gas":   0.0,
		}))
	})

	It("uses the first-iteration rule before the configured method", func() {
		result, err := Run(ctx, leastCost, fixtureConfig("random"), solverCfg)
		Expect(err).NotTo(HaveOccurred())

		// The first weight snapshot is the least-cost solution's relative
		// deployment, not a random draw.
		Expect(snapshotValues(result.Weights[0])).To(Equal(map[string]float64{
			"solar": 800.0 / 2000.0,
			"wind":  150.0 / 1000.0,
			"gas":   0.0,
		}))
	})

	It("dispatches the configured method from the second iteration on", func() {
		cfg := fixtureConfig("relative_deployment")
		result, err := Run(ctx, leastCost, cfg, solverCfg)
		Expect(err).NotTo(HaveOccurred())

		// relative_deployment accumulates: weights[1] is weights[0] plus
		// the relative deployment of the first spore.
		spec, err := cfg.GroupSpec()
		Expect(err).NotTo(HaveOccurred())
		spore1 := result.Networks["spore_1"]
		expected := deployment.Relative(spore1, spec)
		for i, key := range spec.Keys() {
			expected.SetAt(i, expected.At(i)+result.Weights[0].Value(key))
		}
		Expect(snapshotValues(result.Weights[1])).To(Equal(snapshotValues(expected)))
	})

	It("supports every weighting method end to end", func() {
		for _, method := range []string{
			"relative_deployment",
			"relative_deployment_normalized",
			"random",
			"evolving_average",
			"evolving_median",
		} {
			result, err := Run(ctx, leastCost, fixtureConfig(method), solverCfg)
			Expect(err).NotTo(HaveOccurred(), "method %s", method)
			Expect(result.Networks).To(HaveLen(5), "method %s", method)
			Expect(result.History).To(HaveLen(6), "method %s", method)
		}
	})

	It("leaves the least-cost network untouched", func() {
		before := snapshotValues(deployment.Extract(leastCost, mustGroupSpec(fixtureConfig("random"))))

		_, err := Run(ctx, leastCost, fixtureConfig("random"), solverCfg)
		Expect(err).NotTo(HaveOccurred())

		after := snapshotValues(deployment.Extract(leastCost, mustGroupSpec(fixtureConfig("random"))))
		Expect(after).To(Equal(before))
	})

	It("gives every iteration its own network and model", func() {
		result, err := Run(ctx, leastCost, fixtureConfig("random"), solverCfg)
		Expect(err).NotTo(HaveOccurred())

		seenNetworks := map[network.Network]bool{}
		seenModels := map[network.OptimizationModel]bool{}
		for i := 1; i <= 5; i++ {
			n := result.Networks[fmt.Sprintf("spore_%d", i)]
			m := result.Models[fmt.Sprintf("model_%d", i)]
			Expect(seenNetworks[n]).To(BeFalse())
			Expect(seenModels[m]).To(BeFalse())
			seenNetworks[n] = true
			seenModels[m] = true
			Expect(n).NotTo(BeIdenticalTo(network.Network(leastCost)))
		}
	})

	It("rejects an invalid configuration before any solve", func() {
		cfg := fixtureConfig("random")
		cfg.NumSpores = 0

		_, err := Run(ctx, leastCost, cfg, solverCfg)
		var cerr *ConfigError
		Expect(errors.As(err, &cerr)).To(BeTrue())

		// No spore model was ever built or solved.
		Expect(leastCost.Duals()).To(BeEmpty())
	})

	It("rejects an unsolved least-cost network", func() {
		unsolved := memnet.NewNetwork()
		Expect(unsolved.AddUnit("Generator", "solar_bus1", "solar", "p_nom", 0, 1000)).To(Succeed())

		_, err := Run(ctx, unsolved, fixtureConfig("random"), solverCfg)
		Expect(err).To(MatchError(ErrUnsolvedNetwork))
	})

	It("propagates solver failures", func() {
		calls := 0
		leastCost.SolveHook = func(m *memnet.Model) error {
			calls++
			if calls == 3 {
				return errors.New("model infeasible")
			}
			return nil
		}

		_, err := Run(ctx, leastCost, fixtureConfig("random"), solverCfg)
		var serr *SolveError
		Expect(errors.As(err, &serr)).To(BeTrue())
		Expect(serr.Solver).To(Equal("highs"))
	})
})

func mustGroupSpec(cfg *Config) *core.GroupSpec {
	spec, err := cfg.GroupSpec()
	ExpectWithOffset(1, err).NotTo(HaveOccurred())
	return spec
}
