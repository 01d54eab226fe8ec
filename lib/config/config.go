// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"slices"

	"gopkg.in/yaml.v3"
)

// EnvVar names the environment variable [Load] reads the config path
// from.
const EnvVar = "PSTORE_CONFIG"

// Environment represents the deployment environment.
type Environment string

const (
	Development Environment = "development"
	Production  Environment = "production"
)

// Config is the complete pstore configuration.
type Config struct {
	// Environment selects which override section applies.
	Environment Environment `yaml:"environment"`

	// Log configures the logging sink.
	Log LogConfig `yaml:"log"`

	// Limits bounds parsing and decoding work.
	Limits LimitsConfig `yaml:"limits"`

	// Blocks configures the block-stream JSON projection.
	Blocks BlocksConfig `yaml:"blocks"`

	// Input configures how the CLI reads its input.
	Input InputConfig `yaml:"input"`

	// Environment-specific overrides.
	Development *ConfigOverrides `yaml:"development,omitempty"`
	Production  *ConfigOverrides `yaml:"production,omitempty"`
}

// ConfigOverrides holds the fields an environment section may replace.
// Pointer fields distinguish "not set" from an explicit zero.
type ConfigOverrides struct {
	Log    *LogOverrides `yaml:"log,omitempty"`
	Limits *LimitsConfig `yaml:"limits,omitempty"`
}

// LogOverrides is the override form of [LogConfig].
type LogOverrides struct {
	Path    string `yaml:"path,omitempty"`
	Console *bool  `yaml:"console,omitempty"`
	Level   *int   `yaml:"level,omitempty"`
}

// LogConfig configures the logging sink.
type LogConfig struct {
	// Path is the log file. Empty means log to the console only until
	// a destination is configured. Supports ${VAR} and ${VAR:-default}.
	Path string `yaml:"path"`

	// Console echoes file records to stderr as well.
	Console bool `yaml:"console"`

	// Level is the verbosity: -1 errors only, 0 warnings, 1 info,
	// 2 debug, 3 trace, 4 everything.
	Level int `yaml:"level"`
}

// LimitsConfig bounds parsing and decoding. Zero selects the codec
// default.
type LimitsConfig struct {
	MaxDepth             int `yaml:"max_depth"`
	MaxZeroWidthElements int `yaml:"max_zero_width_elements"`
}

// BlocksConfig configures block-stream output.
type BlocksConfig struct {
	// TxEncoding is "hex" or "base64".
	TxEncoding string `yaml:"tx_encoding"`

	// TxField is the name of the transactions field added to each
	// record's section.
	TxField string `yaml:"tx_field"`
}

// InputConfig configures CLI input handling.
type InputConfig struct {
	// Compression is "none", "auto", "zstd" or "lz4".
	Compression string `yaml:"compression"`
}

var (
	txEncodings  = []string{"hex", "base64"}
	compressions = []string{"none", "auto", "zstd", "lz4"}
)

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Environment: Development,
		Blocks: BlocksConfig{
			TxEncoding: "hex",
			TxField:    "txs",
		},
		Input: InputConfig{
			Compression: "auto",
		},
	}
}

// Load loads configuration from the file named by PSTORE_CONFIG.
// There is no discovery: if the variable is unset, Load fails.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvVar)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your pstore.yaml config file, or use --config flag", EnvVar)
	}

	return LoadFile(configPath)
}

// LoadFile loads configuration from path, layered over [Default]. The
// environment section matching Environment is applied, then variables
// in the log path are expanded.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.applyEnvironmentOverrides()
	cfg.expandVariables()

	return cfg, nil
}

func (c *Config) applyEnvironmentOverrides() {
	var overrides *ConfigOverrides

	switch c.Environment {
	case Development:
		overrides = c.Development
	case Production:
		overrides = c.Production
		// Production defaults: errors only, no console echo.
		if overrides == nil {
			quiet, level := false, -1
			overrides = &ConfigOverrides{
				Log: &LogOverrides{Console: &quiet, Level: &level},
			}
		}
	}

	if overrides == nil {
		return
	}

	if overrides.Log != nil {
		if overrides.Log.Path != "" {
			c.Log.Path = overrides.Log.Path
		}
		if overrides.Log.Console != nil {
			c.Log.Console = *overrides.Log.Console
		}
		if overrides.Log.Level != nil {
			c.Log.Level = *overrides.Log.Level
		}
	}

	if overrides.Limits != nil {
		if overrides.Limits.MaxDepth != 0 {
			c.Limits.MaxDepth = overrides.Limits.MaxDepth
		}
		if overrides.Limits.MaxZeroWidthElements != 0 {
			c.Limits.MaxZeroWidthElements = overrides.Limits.MaxZeroWidthElements
		}
	}
}

func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}
	c.Log.Path = expandVars(c.Log.Path, vars)
}

// varPattern matches ${VAR} and ${VAR:-default}.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Provided vars first, then the process environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors. All problems are
// reported together.
func (c *Config) Validate() error {
	var errs []error

	if c.Environment != Development && c.Environment != Production {
		errs = append(errs, fmt.Errorf("invalid environment: %s", c.Environment))
	}

	if c.Log.Level < -1 || c.Log.Level > 4 {
		errs = append(errs, fmt.Errorf("log.level must be between -1 and 4, got %d", c.Log.Level))
	}

	if c.Limits.MaxDepth < 0 {
		errs = append(errs, fmt.Errorf("limits.max_depth must not be negative"))
	}
	if c.Limits.MaxZeroWidthElements < 0 {
		errs = append(errs, fmt.Errorf("limits.max_zero_width_elements must not be negative"))
	}

	if !slices.Contains(txEncodings, c.Blocks.TxEncoding) {
		errs = append(errs, fmt.Errorf("blocks.tx_encoding must be one of: %v", txEncodings))
	}
	if c.Blocks.TxField == "" {
		errs = append(errs, fmt.Errorf("blocks.tx_field is required"))
	}

	if !slices.Contains(compressions, c.Input.Compression) {
		errs = append(errs, fmt.Errorf("input.compression must be one of: %v", compressions))
	}

	return errors.Join(errs...)
}
