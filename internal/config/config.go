// Package config defines the clustering tool configuration and its loading.
//
// Conventions:
// - New() returns a Config populated with defaults.
// - Load layers defaults, an optional YAML file and FOREL_ environment variables.
// - Errors are wrapped with this package's sentinels.
package config

import (
	"fmt"
	"math"
	"strings"

	"github.com/okian/forel/internal/domain/forel"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// InputPath is the dataset to cluster.
	InputPath string `koanf:"input_path"`

	// OutputPath receives one line per clustered point.
	OutputPath string `koanf:"output_path"`

	// PlotPath, when set, receives an HTML scatter plot of the result.
	PlotPath string `koanf:"plot_path"`

	// MetricsPath, when set, receives the run metrics in Prometheus text format.
	MetricsPath string `koanf:"metrics_path"`

	// Epsilon is the center movement below which a search has converged.
	Epsilon float64 `koanf:"epsilon"`

	// MaxIterations caps the centroid recomputations of one cluster search.
	MaxIterations int `koanf:"max_iterations"`

	// MaxAttempts caps the radius-shrink retries of a run.
	MaxAttempts int `koanf:"max_attempts"`

	// InitialRadius overrides the starting normalized radius; 0 means sqrt(D)/2.
	InitialRadius float64 `koanf:"initial_radius"`

	// OutputPrecision fixes the decimals of written coordinates; -1 writes
	// integers as integers and other values in their shortest form.
	OutputPrecision int `koanf:"output_precision"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		LogFormat:       "text",
		InputPath:       "input.csv",
		OutputPath:      "output.csv",
		Epsilon:         forel.DefaultEpsilon,
		MaxIterations:   forel.DefaultMaxIterations,
		MaxAttempts:     forel.DefaultMaxAttempts,
		InitialRadius:   0,
		OutputPrecision: -1,
	}
}

// Validate checks the values that have no safe fallback.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.InputPath) == "":
		return fmt.Errorf("%w: input_path must not be empty", ErrInvalidConfig)
	case strings.TrimSpace(c.OutputPath) == "":
		return fmt.Errorf("%w: output_path must not be empty", ErrInvalidConfig)
	case !(c.Epsilon > 0) || math.IsInf(c.Epsilon, 0):
		return fmt.Errorf("%w: epsilon must be positive, got %g", ErrInvalidConfig, c.Epsilon)
	case c.MaxIterations <= 0:
		return fmt.Errorf("%w: max_iterations must be positive, got %d", ErrInvalidConfig, c.MaxIterations)
	case c.MaxAttempts <= 0:
		return fmt.Errorf("%w: max_attempts must be positive, got %d", ErrInvalidConfig, c.MaxAttempts)
	case c.InitialRadius < 0 || math.IsNaN(c.InitialRadius) || math.IsInf(c.InitialRadius, 0):
		return fmt.Errorf("%w: initial_radius must be zero or positive, got %g", ErrInvalidConfig, c.InitialRadius)
	case c.OutputPrecision < -1:
		return fmt.Errorf("%w: output_precision must be -1 or more, got %d", ErrInvalidConfig, c.OutputPrecision)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log_format must be text or json, got %q", ErrInvalidConfig, c.LogFormat)
	}
	return nil
}
