package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults → config file → environment variables (env wins)
	Load() (*Config, error)
}

type loader struct {
	rootDir string
}

// NewLoader creates a new configuration loader for the given project root.
func NewLoader(rootDir string) Loader {
	return &loader{
		rootDir: rootDir,
	}
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (UNITYLENS_*)
// 2. Config file (.unitylens/config.yml or .unitylens/config.yaml)
// 3. Default values
func (l *loader) Load() (*Config, error) {
	v := viper.New()

	configDir := filepath.Join(l.rootDir, ".unitylens")
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)

	v.SetEnvPrefix("UNITYLENS")
	v.AutomaticEnv()
	// Replace . with _ in env var names (e.g., UNITYLENS_ANALYSIS_COMPLEXITY_THRESHOLD)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.BindEnv("analysis.complexity_threshold")
	v.BindEnv("analysis.god_class_method_limit")
	v.BindEnv("analysis.god_class_field_limit")
	v.BindEnv("analysis.min_pattern_confidence")
	v.BindEnv("analysis.max_singletons")
	v.BindEnv("analysis.fan_out_limit")
	v.BindEnv("output.format")
	v.BindEnv("output.path")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Config file not found is acceptable - defaults + env vars apply.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setDefaults configures viper with default values.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("analysis.source_extensions", defaults.Analysis.SourceExtensions)
	v.SetDefault("analysis.ignore_patterns", defaults.Analysis.IgnorePatterns)
	v.SetDefault("analysis.complexity_threshold", defaults.Analysis.ComplexityThreshold)
	v.SetDefault("analysis.god_class_method_limit", defaults.Analysis.GodClassMethodLimit)
	v.SetDefault("analysis.god_class_field_limit", defaults.Analysis.GodClassFieldLimit)
	v.SetDefault("analysis.min_pattern_confidence", defaults.Analysis.MinPatternConfidence)
	v.SetDefault("analysis.max_singletons", defaults.Analysis.MaxSingletons)
	v.SetDefault("analysis.fan_out_limit", defaults.Analysis.FanOutLimit)

	v.SetDefault("output.format", defaults.Output.Format)
	v.SetDefault("output.path", defaults.Output.Path)
}

// LoadFromDir loads configuration from a specific project directory.
func LoadFromDir(rootDir string) (*Config, error) {
	return NewLoader(rootDir).Load()
}
