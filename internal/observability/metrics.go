// Package observability bundles Prometheus metrics for the SPORES iteration
// engine.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// EngineCollector holds the engine's Prometheus metrics.
type EngineCollector struct {
	RunsTotal       prometheus.Counter
	IterationsTotal *prometheus.CounterVec
	SolveDuration   prometheus.Histogram
	SolveFailures   prometheus.Counter
}

// NewEngineCollector registers engine metrics against the provided
// registerer, defaulting to the global Prometheus registry when nil.
// Re-registration of identical metrics is tolerated so multiple engine
// instances can share one registry.
func NewEngineCollector(reg prometheus.Registerer) (*EngineCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := &EngineCollector{
		RunsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "spores_runs_total",
			Help: "Total number of SPORES runs started.",
		}),
		IterationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "spores_iterations_total",
			Help: "Completed spore iterations, labeled by weighting method.",
		}, []string{"method"}),
		SolveDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "spores_solve_duration_seconds",
			Help:    "Wall-clock duration of one solver invocation in seconds.",
			Buckets: []float64{0.1, 0.5, 1, 5, 15, 60, 300, 900, 3600},
		}),
		SolveFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "spores_solve_failures_total",
			Help: "Solver invocations that ended in failure.",
		}),
	}

	var err error
	if c.RunsTotal, err = registerCounter(reg, c.RunsTotal); err != nil {
		return nil, err
	}
	if c.IterationsTotal, err = registerCounterVec(reg, c.IterationsTotal); err != nil {
		return nil, err
	}
	if c.SolveDuration, err = registerHistogram(reg, c.SolveDuration); err != nil {
		return nil, err
	}
	if c.SolveFailures, err = registerCounter(reg, c.SolveFailures); err != nil {
		return nil, err
	}
	return c, nil
}

func registerCounter(reg prometheus.Registerer, m prometheus.Counter) (prometheus.Counter, error) {
	if err := reg.Register(m); err != nil {
		var are prometheus.AlreadyRegisteredError
		if ok := asAlreadyRegistered(err, &are); ok {
			return are.ExistingCollector.(prometheus.Counter), nil
		}
		return nil, err
	}
	return m, nil
}

func registerCounterVec(reg prometheus.Registerer, m *prometheus.CounterVec) (*prometheus.CounterVec, error) {
	if err := reg.Register(m); err != nil {
		var are prometheus.AlreadyRegisteredError
		if ok := asAlreadyRegistered(err, &are); ok {
			return are.ExistingCollector.(*prometheus.CounterVec), nil
		}
		return nil, err
	}
	return m, nil
}

func registerHistogram(reg prometheus.Registerer, m prometheus.Histogram) (prometheus.Histogram, error) {
	if err := reg.Register(m); err != nil {
		var are prometheus.AlreadyRegisteredError
		if ok := asAlreadyRegistered(err, &are); ok {
			return are.ExistingCollector.(prometheus.Histogram), nil
		}
		return nil, err
	}
	return m, nil
}

func asAlreadyRegistered(err error, target *prometheus.AlreadyRegisteredError) bool {
	if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
		*target = are
		return true
	}
	return false
}
