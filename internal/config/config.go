package config

import (
	"github.com/limitlens/limitlens/internal/logcheck"
)

// Config represents the complete application configuration.
// Values are layered: built-in defaults, then the optional config file, then
// LIMITLENS_-prefixed environment variables, then command-line flags.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Scan    ScanConfig    `mapstructure:"scan"`
	Mock    MockConfig    `mapstructure:"mock"`
}

// LoggingConfig contains logging configuration
// - SIMPLE: Console output only, minimal configuration (interactive use)
// - STRUCTURED: JSON to stderr (CI runs)
type LoggingConfig struct {
	// Level controls the minimum log level
	// Valid values: trace, debug, info, warn, error
	Level string `mapstructure:"level"`

	// Profile selects the logging complexity level
	// Valid values: SIMPLE, STRUCTURED
	Profile string `mapstructure:"profile"`
}

// ScanConfig controls how captured logs are classified.
type ScanConfig struct {
	// AllowEndpointError suppresses endpoint connectivity warnings.
	AllowEndpointError bool `mapstructure:"allow_endpoint_error"`

	// Suppress lists additional known-noise patterns, applied after the
	// built-in Trusted Advisor subscription rule.
	Suppress []logcheck.RuleSpec `mapstructure:"suppress"`
}

// MockConfig configures the mock EC2 endpoint.
type MockConfig struct {
	Addr   string   `mapstructure:"addr"`
	Script []string `mapstructure:"script"`
}
