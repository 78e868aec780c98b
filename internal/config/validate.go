package config

import (
	"fmt"
	"strings"
)

var validFormats = map[string]bool{
	"text":     true,
	"json":     true,
	"markdown": true,
}

// Validate checks a configuration for values the pipeline cannot work with.
func Validate(cfg *Config) error {
	if len(cfg.Analysis.SourceExtensions) == 0 {
		return fmt.Errorf("analysis.source_extensions must not be empty")
	}
	for _, ext := range cfg.Analysis.SourceExtensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("analysis.source_extensions entry %q must start with a dot", ext)
		}
	}
	if cfg.Analysis.ComplexityThreshold <= 0 {
		return fmt.Errorf("analysis.complexity_threshold must be positive, got %d", cfg.Analysis.ComplexityThreshold)
	}
	if cfg.Analysis.GodClassMethodLimit <= 0 {
		return fmt.Errorf("analysis.god_class_method_limit must be positive, got %d", cfg.Analysis.GodClassMethodLimit)
	}
	if cfg.Analysis.GodClassFieldLimit <= 0 {
		return fmt.Errorf("analysis.god_class_field_limit must be positive, got %d", cfg.Analysis.GodClassFieldLimit)
	}
	if cfg.Analysis.MinPatternConfidence < 0 || cfg.Analysis.MinPatternConfidence > 1 {
		return fmt.Errorf("analysis.min_pattern_confidence must be within [0, 1], got %g", cfg.Analysis.MinPatternConfidence)
	}
	if !validFormats[cfg.Output.Format] {
		return fmt.Errorf("output.format must be one of text, json, markdown; got %q", cfg.Output.Format)
	}
	return nil
}
