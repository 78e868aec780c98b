package config

// Config represents the complete unitylens configuration.
// It can be loaded from .unitylens/config.yml with environment variable
// overrides.
type Config struct {
	Analysis AnalysisConfig `yaml:"analysis" mapstructure:"analysis"`
	Output   OutputConfig   `yaml:"output" mapstructure:"output"`
}

// AnalysisConfig holds the scan filters and the heuristic thresholds. The
// thresholds are calibration parameters; none of them is a correctness
// requirement.
type AnalysisConfig struct {
	SourceExtensions     []string `yaml:"source_extensions" mapstructure:"source_extensions"` // e.g. [".cs"]
	IgnorePatterns       []string `yaml:"ignore_patterns" mapstructure:"ignore_patterns"`     // path globs relative to the project root
	ComplexityThreshold  int      `yaml:"complexity_threshold" mapstructure:"complexity_threshold"`
	GodClassMethodLimit  int      `yaml:"god_class_method_limit" mapstructure:"god_class_method_limit"`
	GodClassFieldLimit   int      `yaml:"god_class_field_limit" mapstructure:"god_class_field_limit"`
	MinPatternConfidence float64  `yaml:"min_pattern_confidence" mapstructure:"min_pattern_confidence"` // 0..1
	MaxSingletons        int      `yaml:"max_singletons" mapstructure:"max_singletons"`
	FanOutLimit          int      `yaml:"fan_out_limit" mapstructure:"fan_out_limit"`
}

// OutputConfig defines how analysis results are rendered.
type OutputConfig struct {
	Format string `yaml:"format" mapstructure:"format"` // "text", "json", or "markdown"
	Path   string `yaml:"path" mapstructure:"path"`     // output file, "" for stdout
}

// Default returns a configuration with sensible defaults for a Unity
// project layout.
func Default() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			SourceExtensions: []string{".cs"},
			IgnorePatterns: []string{
				"Library/**",
				"Temp/**",
				"Logs/**",
				"obj/**",
				"bin/**",
				"Build/**",
				"Builds/**",
				"UserSettings/**",
				".git/**",
				".vs/**",
				"Packages/**",
			},
			ComplexityThreshold:  10,
			GodClassMethodLimit:  15,
			GodClassFieldLimit:   10,
			MinPatternConfidence: 0.5,
			MaxSingletons:        3,
			FanOutLimit:          8,
		},
		Output: OutputConfig{
			Format: "text",
			Path:   "",
		},
	}
}
