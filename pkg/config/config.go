// Package config loads SPORES and solver configuration documents from YAML
// files.
package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mga4all/spores-go/pkg/network"
	"github.com/mga4all/spores-go/pkg/spores"
)

// SporesKey is the top-level document key holding the SPORES configuration.
const SporesKey = "SPORES"

// EnvPrefix is the prefix for environment-variable overrides of scalar
// SPORES settings, e.g. SPORES_NUM_SPORES=20.
const EnvPrefix = "SPORES"

// Load reads and validates a SPORES configuration from a YAML file of the
// form
//
//	SPORES:
//	  num_spores: 5
//	  spores_mode: diversify
//	  ...
//
// The documents are decoded with yaml.v3 rather than viper because component
// kinds and technology names are case sensitive and viper lowercases map
// keys. Scalar fields may still be overridden through SPORES_-prefixed
// environment variables.
func Load(path string) (*spores.Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading SPORES config %s: %w", path, err)
	}

	var doc struct {
		Spores *spores.Config `yaml:"SPORES"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parsing SPORES config %s: %w", path, err)
	}
	if doc.Spores == nil {
		return nil, fmt.Errorf("config %s has no %s document", path, SporesKey)
	}

	applyEnvOverrides(doc.Spores)
	if err := doc.Spores.Validate(); err != nil {
		return nil, err
	}
	return doc.Spores, nil
}

func applyEnvOverrides(cfg *spores.Config) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if v.IsSet("num_spores") {
		cfg.NumSpores = v.GetInt("num_spores")
	}
	if v.IsSet("spores_slack") {
		cfg.Slack = v.GetFloat64("spores_slack")
	}
	if v.IsSet("spores_mode") {
		cfg.Mode = spores.Mode(v.GetString("spores_mode"))
	}
	if v.IsSet("weighting_method") {
		cfg.WeightingMethod = v.GetString("weighting_method")
	}
	if v.IsSet("random_upper_bound") {
		cfg.RandomUpperBound = v.GetFloat64("random_upper_bound")
	}
}

// LoadSolverOptions reads a solver configuration from a YAML file holding a
// single-entry mapping from solver name to solver-specific options, e.g.
//
//	highs:
//	  threads: 4
//
// Option names pass through verbatim; some solvers treat them case
// sensitively.
func LoadSolverOptions(path string) (network.SolverConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading solver config %s: %w", path, err)
	}

	out := network.SolverConfig{}
	if err := yaml.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("parsing solver config %s: %w", path, err)
	}
	if _, _, err := out.Solver(); err != nil {
		return nil, fmt.Errorf("solver config %s: %w", path, err)
	}
	return out, nil
}
