package insight

import (
	"fmt"
	"strings"

	"github.com/unitylens/unitylens/internal/assets"
	"github.com/unitylens/unitylens/internal/patterns"
)

// rule is one independently testable trigger: given an input that satisfies
// its condition it must fire with the documented category, severity, and
// message shape.
type rule func(in *Input, t Thresholds) ([]ProjectInsight, []ProjectRecommendation)

// emptyProjectRule distinguishes "nothing found" from "analysis failed".
func emptyProjectRule(in *Input, t Thresholds) ([]ProjectInsight, []ProjectRecommendation) {
	if len(in.Classes) > 0 || len(in.Assets) > 0 {
		return nil, nil
	}
	return []ProjectInsight{{
		Category:   CategoryStructure,
		Severity:   SeverityInfo,
		Confidence: 1,
		Message:    "no content found: the project contains no source files or assets",
	}}, nil
}

// godClassRule flags classes with both a method count and a field count over
// their limits. Severity scales with how far over the method limit the
// class is.
func godClassRule(in *Input, t Thresholds) ([]ProjectInsight, []ProjectRecommendation) {
	var insights []ProjectInsight
	var offenders []string

	for i := range in.Classes {
		c := &in.Classes[i]
		if len(c.Methods) <= t.GodClassMethods || len(c.Fields) <= t.GodClassFields {
			continue
		}
		severity := SeverityMedium
		if len(c.Methods) > 2*t.GodClassMethods {
			severity = SeverityHigh
		}
		offenders = append(offenders, c.Name)
		insights = append(insights, ProjectInsight{
			Category:   CategoryStructure,
			Severity:   severity,
			Confidence: 0.9,
			Message: fmt.Sprintf("class %s has %d methods and %d fields, more than the %d/%d limits",
				c.Name, len(c.Methods), len(c.Fields), t.GodClassMethods, t.GodClassFields),
			Evidence: []string{fmt.Sprintf("%s:%d", c.File, c.StartLine)},
		})
	}
	if len(insights) == 0 {
		return nil, nil
	}
	recs := []ProjectRecommendation{{
		Category: CategoryMaintainability,
		Priority: 2,
		Actions: []string{
			"Identify distinct responsibilities inside " + strings.Join(capList(offenders, t.MaxEvidence), ", "),
			"Extract each responsibility into its own class",
			"Replace direct field access with focused interfaces",
		},
		Effort: "days",
		Skills: []string{"C#", "refactoring"},
	}}
	return insights, recs
}

// circularDependencyRule emits one Architecture/High insight per cycle,
// naming the full path.
func circularDependencyRule(in *Input, t Thresholds) ([]ProjectInsight, []ProjectRecommendation) {
	if len(in.Cycles) == 0 {
		return nil, nil
	}
	var insights []ProjectInsight
	for _, cycle := range in.Cycles {
		insights = append(insights, ProjectInsight{
			Category:   CategoryArchitecture,
			Severity:   SeverityHigh,
			Confidence: 1,
			Message:    "circular dependency: " + strings.Join(cycle.Path, " -> "),
			Evidence:   cycle.Path,
		})
	}
	recs := []ProjectRecommendation{{
		Category: CategoryArchitecture,
		Priority: 1,
		Actions: []string{
			"Break each cycle by introducing an interface on one side",
			"Move shared types into a package neither side owns",
			"Re-run the analysis to confirm the cycles are gone",
		},
		Effort: "days",
		Skills: []string{"C#", "architecture"},
	}}
	return insights, recs
}

// highComplexityRule surfaces methods over the complexity threshold.
// Methods at double the threshold or more are Critical.
func highComplexityRule(in *Input, t Thresholds) ([]ProjectInsight, []ProjectRecommendation) {
	if in.Complexity == nil || len(in.Complexity.HighMethods) == 0 {
		return nil, nil
	}
	var insights []ProjectInsight
	for _, m := range in.Complexity.HighMethods {
		severity := SeverityMedium
		if m.Score >= 2*in.Complexity.Threshold {
			severity = SeverityCritical
		}
		insights = append(insights, ProjectInsight{
			Category:   CategoryCodeQuality,
			Severity:   severity,
			Confidence: 0.8,
			Message: fmt.Sprintf("method %s.%s has cyclomatic complexity %d (threshold %d)",
				m.ClassName, m.MethodName, m.Score, in.Complexity.Threshold),
			Evidence: []string{fmt.Sprintf("%s:%d", m.File, m.Line)},
		})
	}
	recs := []ProjectRecommendation{{
		Category: CategoryCodeQuality,
		Priority: 2,
		Actions: []string{
			"Extract branches of the flagged methods into helper methods",
			"Replace switch ladders with polymorphism or lookup tables",
		},
		Effort: "hours",
		Skills: []string{"C#"},
	}}
	return insights, recs
}

// unusedAssetRule reports assets nothing references as one aggregate
// Performance/Low insight.
func unusedAssetRule(in *Input, t Thresholds) ([]ProjectInsight, []ProjectRecommendation) {
	var unused []string
	var wasted int64
	for i := range in.Assets {
		if in.Assets[i].Unused {
			unused = append(unused, in.Assets[i].Path)
			wasted += in.Assets[i].SizeBytes
		}
	}
	if len(unused) == 0 {
		return nil, nil
	}
	insights := []ProjectInsight{{
		Category:   CategoryPerformance,
		Severity:   SeverityLow,
		Confidence: 0.7,
		Message:    fmt.Sprintf("%d assets (%d bytes) are not referenced by any other asset", len(unused), wasted),
		Evidence:   capList(unused, t.MaxEvidence),
	}}
	recs := []ProjectRecommendation{{
		Category: CategoryMaintainability,
		Priority: 4,
		Actions: []string{
			"Review the unreferenced assets and delete what is dead",
			"Keep intentionally unreferenced assets (Resources, Addressables) out of the cleanup",
		},
		Effort: "hours",
		Skills: []string{"Unity"},
	}}
	return insights, recs
}

// singletonOveruseRule fires when the detector found more singletons than
// the configured tolerance.
func singletonOveruseRule(in *Input, t Thresholds) ([]ProjectInsight, []ProjectRecommendation) {
	var names []string
	for _, p := range in.Patterns {
		if p.Pattern == patterns.Singleton {
			names = append(names, p.ClassName)
		}
	}
	if len(names) <= t.MaxSingletons {
		return nil, nil
	}
	insights := []ProjectInsight{{
		Category:   CategoryArchitecture,
		Severity:   SeverityMedium,
		Confidence: 0.7,
		Message:    fmt.Sprintf("%d singleton classes detected; global state this widespread makes testing and scene reuse harder", len(names)),
		Evidence:   capList(names, t.MaxEvidence),
	}}
	recs := []ProjectRecommendation{{
		Category: CategoryArchitecture,
		Priority: 3,
		Actions: []string{
			"Pick the singletons that only exist for convenient access and inject them instead",
			"Consider a single composition root or service registry",
		},
		Effort: "days",
		Skills: []string{"C#", "architecture"},
	}}
	return insights, recs
}

// fanOutRule flags classes depending on more distinct classes than the
// limit allows.
func fanOutRule(in *Input, t Thresholds) ([]ProjectInsight, []ProjectRecommendation) {
	fanOut := make(map[string]map[string]bool)
	for _, e := range in.Edges {
		if e.From == e.To {
			continue
		}
		if fanOut[e.From] == nil {
			fanOut[e.From] = make(map[string]bool)
		}
		fanOut[e.From][e.To] = true
	}

	var insights []ProjectInsight
	for i := range in.Classes {
		c := &in.Classes[i]
		n := len(fanOut[c.Name])
		if n <= t.FanOutLimit {
			continue
		}
		insights = append(insights, ProjectInsight{
			Category:   CategoryDependencies,
			Severity:   SeverityMedium,
			Confidence: 0.8,
			Message:    fmt.Sprintf("class %s depends on %d other classes (limit %d)", c.Name, n, t.FanOutLimit),
			Evidence:   []string{fmt.Sprintf("%s:%d", c.File, c.StartLine)},
		})
	}
	if len(insights) == 0 {
		return nil, nil
	}
	recs := []ProjectRecommendation{{
		Category: CategoryDependencies,
		Priority: 3,
		Actions: []string{
			"Group the dependencies of high fan-out classes behind facades",
			"Split orchestration classes along feature boundaries",
		},
		Effort: "days",
		Skills: []string{"C#", "architecture"},
	}}
	return insights, recs
}

// missingTestsRule fires when a project with code shows no test classes.
func missingTestsRule(in *Input, t Thresholds) ([]ProjectInsight, []ProjectRecommendation) {
	if len(in.Classes) == 0 {
		return nil, nil
	}
	for i := range in.Classes {
		c := &in.Classes[i]
		if strings.HasSuffix(c.SimpleName(), "Test") || strings.HasSuffix(c.SimpleName(), "Tests") ||
			strings.Contains(c.File, "Tests/") || strings.Contains(c.File, "Editor/Tests") {
			return nil, nil
		}
	}
	insights := []ProjectInsight{{
		Category:   CategoryTesting,
		Severity:   SeverityMedium,
		Confidence: 0.6,
		Message:    "no test classes found in the project",
	}}
	recs := []ProjectRecommendation{{
		Category: CategoryTesting,
		Priority: 3,
		Actions: []string{
			"Add a Unity Test Framework assembly",
			"Start with edit-mode tests for the pure-logic classes",
		},
		Effort: "days",
		Skills: []string{"C#", "Unity Test Framework"},
	}}
	return insights, recs
}

// namespaceHygieneRule nudges projects where most classes live in the
// global namespace.
func namespaceHygieneRule(in *Input, t Thresholds) ([]ProjectInsight, []ProjectRecommendation) {
	if len(in.Classes) < 5 {
		return nil, nil
	}
	bare := 0
	for i := range in.Classes {
		if in.Classes[i].Namespace == "" {
			bare++
		}
	}
	if bare*2 < len(in.Classes) {
		return nil, nil
	}
	insights := []ProjectInsight{{
		Category:   CategoryMaintainability,
		Severity:   SeverityLow,
		Confidence: 0.8,
		Message:    fmt.Sprintf("%d of %d classes are in the global namespace", bare, len(in.Classes)),
	}}
	recs := []ProjectRecommendation{{
		Category: CategoryMaintainability,
		Priority: 4,
		Actions: []string{
			"Adopt a root namespace matching the product name",
			"Move scripts into per-feature namespaces as they are touched",
		},
		Effort: "hours",
		Skills: []string{"C#"},
	}}
	return insights, recs
}

// sceneCountRule flags scene-heavy projects: past a point, scene sprawl
// usually means copies instead of additive scenes or prefab reuse.
func sceneCountRule(in *Input, t Thresholds) ([]ProjectInsight, []ProjectRecommendation) {
	scenes := 0
	for i := range in.Assets {
		if in.Assets[i].Category == assets.CategoryScene {
			scenes++
		}
	}
	if scenes <= t.MaxScenes {
		return nil, nil
	}
	insights := []ProjectInsight{{
		Category:   CategoryStructure,
		Severity:   SeverityLow,
		Confidence: 0.6,
		Message:    fmt.Sprintf("%d scenes in the project (limit %d)", scenes, t.MaxScenes),
	}}
	recs := []ProjectRecommendation{{
		Category: CategoryMaintainability,
		Priority: 4,
		Actions: []string{
			"Check whether near-duplicate scenes can become additive scenes or prefab variants",
			"Archive scenes that no build configuration references",
		},
		Effort: "hours",
		Skills: []string{"Unity"},
	}}
	return insights, recs
}

// assetRatioRule fires when assets outnumber scripts by a wide margin, which
// usually means imported packs were never pruned.
func assetRatioRule(in *Input, t Thresholds) ([]ProjectInsight, []ProjectRecommendation) {
	if len(in.Classes) == 0 || len(in.Assets) <= t.AssetsPerClass*len(in.Classes) {
		return nil, nil
	}
	insights := []ProjectInsight{{
		Category:   CategoryPerformance,
		Severity:   SeverityLow,
		Confidence: 0.5,
		Message: fmt.Sprintf("%d assets against %d classes, more than %d assets per class",
			len(in.Assets), len(in.Classes), t.AssetsPerClass),
	}}
	recs := []ProjectRecommendation{{
		Category: CategoryPerformance,
		Priority: 4,
		Actions: []string{
			"Prune unused content from imported asset packs",
			"Move rarely used content into a separate package",
		},
		Effort: "hours",
		Skills: []string{"Unity"},
	}}
	return insights, recs
}

func capList(items []string, max int) []string {
	if len(items) <= max {
		return items
	}
	out := make([]string, 0, max+1)
	out = append(out, items[:max]...)
	out = append(out, fmt.Sprintf("and %d more", len(items)-max))
	return out
}
