package spores

import "fmt"

// ConfigError reports a missing or invalid SPORES configuration field. It is
// raised during validation, before any solve.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid SPORES configuration: %s: %s", e.Field, e.Reason)
}

// AttributeMismatchError reports a weight leaf whose capacity attribute does
// not match the attribute the model actually uses for that component kind.
// This is a configuration or programmer error, not a runtime condition.
type AttributeMismatchError struct {
	Kind      string
	Attribute string
}

func (e *AttributeMismatchError) Error() string {
	return fmt.Sprintf("unknown capacity attribute %s for %s", e.Attribute, e.Kind)
}

// SolveError wraps a failure reported by the external solver: infeasible,
// unbounded, or a solver-level error. Fatal for the current run.
type SolveError struct {
	Solver string
	Err    error
}

func (e *SolveError) Error() string {
	return fmt.Sprintf("solver %q failed: %v", e.Solver, e.Err)
}

func (e *SolveError) Unwrap() error { return e.Err }
