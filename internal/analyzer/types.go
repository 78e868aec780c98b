package analyzer

import (
	"time"

	"github.com/unitylens/unitylens/internal/assets"
	"github.com/unitylens/unitylens/internal/complexity"
	"github.com/unitylens/unitylens/internal/depgraph"
	"github.com/unitylens/unitylens/internal/extract"
	"github.com/unitylens/unitylens/internal/insight"
	"github.com/unitylens/unitylens/internal/patterns"
)

// Pipeline stage names passed to progress callbacks.
const (
	StageDiscovery    = "discovery"
	StageExtraction   = "extraction"
	StageDependencies = "dependencies"
	StagePatterns     = "patterns"
	StageComplexity   = "complexity"
	StageAssets       = "assets"
	StageInsights     = "insights"
)

// ProgressFunc is invoked at each major pipeline stage boundary with the
// stage name and overall completion fraction in [0, 1]. The source and
// asset sub-scans run concurrently, so callbacks may arrive from two
// goroutines; implementations must be safe for that.
type ProgressFunc func(stage string, fraction float64)

// Diagnostic records a non-fatal problem: an unreadable file, an
// unparseable snippet, a sidecar without a guid. Diagnostics never abort
// the run.
type Diagnostic struct {
	Stage   string `json:"stage"`
	Path    string `json:"path,omitempty"`
	Line    int    `json:"line,omitempty"`
	Message string `json:"message"`
}

// Stats summarizes what one run looked at.
type Stats struct {
	SourceFiles       int `json:"source_files"`
	AssetFiles        int `json:"asset_files"`
	Classes           int `json:"classes"`
	Methods           int `json:"methods"`
	MonoBehaviours    int `json:"mono_behaviours"`
	ScriptableObjects int `json:"scriptable_objects"`
}

// Result is the aggregate output of one analysis invocation. It is created
// once per run, immutable after the pipeline completes, and owned by the
// caller. Serializing it to JSON is the caller's business; the engine
// persists nothing.
type Result struct {
	RunID        string        `json:"run_id"`
	AnalyzedAt   time.Time     `json:"analyzed_at"`
	Duration     time.Duration `json:"duration_ns"`
	Success      bool          `json:"success"`
	Cancelled    bool          `json:"cancelled"`
	ErrorMessage string        `json:"error_message,omitempty"`

	Stats       Stats        `json:"stats"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`

	Classes         []extract.ClassDefinition      `json:"classes"`
	Edges           []depgraph.DependencyEdge      `json:"edges"`
	Cycles          []depgraph.Cycle               `json:"cycles"`
	Patterns        []patterns.DetectedPattern     `json:"patterns"`
	Complexity      *complexity.Report             `json:"complexity,omitempty"`
	Assets          []assets.AssetRecord           `json:"assets"`
	Insights        []insight.ProjectInsight       `json:"insights"`
	Recommendations []insight.ProjectRecommendation `json:"recommendations"`
}
