package spores

import (
	"fmt"

	"github.com/mga4all/spores-go/internal/engines/weighting"
	"github.com/mga4all/spores-go/pkg/core"
)

// Mode selects how the modified objective treats technologies.
type Mode string

const (
	// ModeDiversify perturbs the objective with diversification weights
	// only.
	ModeDiversify Mode = "diversify"
	// ModeIntensifyAndDiversify additionally rewards a configured subset
	// of technologies with a flat intensification incentive.
	ModeIntensifyAndDiversify Mode = "intensify and diversify"
)

// Sense is the optimization direction of the underlying problem.
type Sense string

const (
	SenseMin Sense = "min"
	SenseMax Sense = "max"
)

// DefaultRandomUpperBound bounds weights drawn by the random strategy when
// random_upper_bound is not configured.
const DefaultRandomUpperBound = 1.0

// Config is the validated SPORES configuration.
type Config struct {
	// NumSpores is the number of alternative solutions to generate.
	NumSpores int `yaml:"num_spores" mapstructure:"num_spores"`

	// Mode is the spores_mode: diversify, or intensify and diversify.
	Mode Mode `yaml:"spores_mode" mapstructure:"spores_mode"`

	// WeightingMethod names the strategy used from the second iteration
	// on.
	WeightingMethod string `yaml:"weighting_method" mapstructure:"weighting_method"`

	// SporeTechs is the technology group specification:
	// {component kind: {capacity attribute: [technology, ...]}}.
	SporeTechs map[string]map[string][]string `yaml:"spore_techs" mapstructure:"spore_techs"`

	// Slack is the allowed cost premium over the optimum, as a fraction.
	Slack float64 `yaml:"spores_slack" mapstructure:"spores_slack"`

	// ObjectiveSense is the direction of the underlying problem;
	// defaults to min.
	ObjectiveSense Sense `yaml:"objective_sense" mapstructure:"objective_sense"`

	DiversificationCoefficient float64 `yaml:"diversification_coefficient" mapstructure:"diversification_coefficient"`

	// IntensificationCoefficient and IntensifiableTechnologies are
	// consulted only in intensify-and-diversify mode.
	IntensificationCoefficient float64  `yaml:"intensification_coefficient" mapstructure:"intensification_coefficient"`
	IntensifiableTechnologies  []string `yaml:"intensifiable_technologies" mapstructure:"intensifiable_technologies"`

	// RandomUpperBound bounds the random strategy's draws; defaults to
	// DefaultRandomUpperBound.
	RandomUpperBound float64 `yaml:"random_upper_bound" mapstructure:"random_upper_bound"`
}

// Validate checks required fields and enumeration values, applying defaults
// for optional ones. All failures are reported as *ConfigError.
func (c *Config) Validate() error {
	if c.NumSpores <= 0 {
		return &ConfigError{Field: "num_spores", Reason: fmt.Sprintf("must be a positive integer, got %d", c.NumSpores)}
	}
	switch c.Mode {
	case ModeDiversify:
	case ModeIntensifyAndDiversify:
		if len(c.IntensifiableTechnologies) == 0 {
			return &ConfigError{Field: "intensifiable_technologies", Reason: "required in intensify and diversify mode"}
		}
	default:
		return &ConfigError{Field: "spores_mode", Reason: fmt.Sprintf("unrecognized value %q", c.Mode)}
	}
	if _, err := weighting.ParseMethod(c.WeightingMethod); err != nil {
		return &ConfigError{Field: "weighting_method", Reason: err.Error()}
	}
	if c.SporeTechs == nil {
		return &ConfigError{Field: "spore_techs", Reason: "is required"}
	}
	if c.Slack < 0 {
		return &ConfigError{Field: "spores_slack", Reason: fmt.Sprintf("must be non-negative, got %g", c.Slack)}
	}
	switch c.ObjectiveSense {
	case SenseMin, SenseMax:
	case "":
		c.ObjectiveSense = SenseMin
	default:
		return &ConfigError{Field: "objective_sense", Reason: fmt.Sprintf("must be %q or %q, got %q", SenseMin, SenseMax, c.ObjectiveSense)}
	}
	if c.RandomUpperBound < 0 {
		return &ConfigError{Field: "random_upper_bound", Reason: fmt.Sprintf("must be non-negative, got %g", c.RandomUpperBound)}
	}
	if c.RandomUpperBound == 0 {
		c.RandomUpperBound = DefaultRandomUpperBound
	}
	return nil
}

// GroupSpec builds the fixed leaf ordering from spore_techs.
func (c *Config) GroupSpec() (*core.GroupSpec, error) {
	spec, err := core.NewGroupSpec(c.SporeTechs)
	if err != nil {
		return nil, &ConfigError{Field: "spore_techs", Reason: err.Error()}
	}
	return spec, nil
}

func (c *Config) method() (weighting.Method, error) {
	return weighting.ParseMethod(c.WeightingMethod)
}

func (c *Config) intensifiable(tech string) bool {
	for _, t := range c.IntensifiableTechnologies {
		if t == tech {
			return true
		}
	}
	return false
}
