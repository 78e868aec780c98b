// Package insight turns the raw analysis outputs into categorized,
// severity-ranked findings and improvement suggestions. The engine is a
// pure function over its input: the same project state always produces the
// same insights, which is what makes each rule independently testable.
package insight

import (
	"sort"

	"github.com/unitylens/unitylens/internal/assets"
	"github.com/unitylens/unitylens/internal/complexity"
	"github.com/unitylens/unitylens/internal/depgraph"
	"github.com/unitylens/unitylens/internal/extract"
	"github.com/unitylens/unitylens/internal/patterns"
)

// Input carries everything the rule table evaluates.
type Input struct {
	Classes    []extract.ClassDefinition
	Edges      []depgraph.DependencyEdge
	Cycles     []depgraph.Cycle
	Patterns   []patterns.DetectedPattern
	Complexity *complexity.Report
	Assets     []assets.AssetRecord
}

// Thresholds are the tunable trigger points for the rule table. The exact
// numbers are calibration parameters, not correctness requirements.
type Thresholds struct {
	GodClassMethods int // Methods above which a class is oversized
	GodClassFields  int // Fields above which a class is oversized
	MaxSingletons   int // Singleton count above which overuse fires
	FanOutLimit     int // Distinct outgoing dependencies per class
	MaxScenes       int // Scene count above which the project is scene-heavy
	AssetsPerClass  int // Asset-to-class ratio above which the ratio rule fires
	MaxEvidence     int // Evidence entries kept per insight
}

// DefaultThresholds returns the default calibration.
func DefaultThresholds() Thresholds {
	return Thresholds{
		GodClassMethods: 15,
		GodClassFields:  10,
		MaxSingletons:   3,
		FanOutLimit:     8,
		MaxScenes:       30,
		AssetsPerClass:  50,
		MaxEvidence:     10,
	}
}

// Engine evaluates the rule table.
type Engine struct {
	thresholds Thresholds
	rules      []rule
}

// NewEngine creates an engine with the given thresholds. Zero-valued
// threshold fields fall back to defaults.
func NewEngine(t Thresholds) *Engine {
	d := DefaultThresholds()
	if t.GodClassMethods <= 0 {
		t.GodClassMethods = d.GodClassMethods
	}
	if t.GodClassFields <= 0 {
		t.GodClassFields = d.GodClassFields
	}
	if t.MaxSingletons <= 0 {
		t.MaxSingletons = d.MaxSingletons
	}
	if t.FanOutLimit <= 0 {
		t.FanOutLimit = d.FanOutLimit
	}
	if t.MaxScenes <= 0 {
		t.MaxScenes = d.MaxScenes
	}
	if t.AssetsPerClass <= 0 {
		t.AssetsPerClass = d.AssetsPerClass
	}
	if t.MaxEvidence <= 0 {
		t.MaxEvidence = d.MaxEvidence
	}
	return &Engine{
		thresholds: t,
		rules: []rule{
			emptyProjectRule,
			godClassRule,
			circularDependencyRule,
			highComplexityRule,
			unusedAssetRule,
			singletonOveruseRule,
			fanOutRule,
			missingTestsRule,
			namespaceHygieneRule,
			sceneCountRule,
			assetRatioRule,
		},
	}
}

// Evaluate runs every rule and returns insights sorted by severity
// (highest first) and recommendations sorted by priority.
func (e *Engine) Evaluate(in *Input) ([]ProjectInsight, []ProjectRecommendation) {
	var insights []ProjectInsight
	var recommendations []ProjectRecommendation

	for _, r := range e.rules {
		ins, recs := r(in, e.thresholds)
		insights = append(insights, ins...)
		recommendations = append(recommendations, recs...)
	}

	sort.SliceStable(insights, func(i, j int) bool {
		return insights[i].Severity > insights[j].Severity
	})
	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].Priority < recommendations[j].Priority
	})
	return insights, recommendations
}
