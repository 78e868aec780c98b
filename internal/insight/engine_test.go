package insight

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unitylens/unitylens/internal/assets"
	"github.com/unitylens/unitylens/internal/complexity"
	"github.com/unitylens/unitylens/internal/depgraph"
	"github.com/unitylens/unitylens/internal/extract"
	"github.com/unitylens/unitylens/internal/patterns"
)

// Test Plan for insight Engine:
// - An empty project yields exactly one Info "no content found" insight
// - Each dependency cycle yields exactly one Architecture/High insight
//   naming the full path
// - God classes fire only when both member limits are exceeded
// - High-complexity methods become CodeQuality insights; double the
//   threshold escalates to Critical
// - Unused assets aggregate into one Performance/Low insight
// - Singleton overuse fires above the tolerance, not at it
// - Missing tests fire for code without test classes and stay quiet when
//   a test class or Tests/ path is present
// - Fan-out fires above the limit, not at it, and ignores self-edges
// - Namespace hygiene needs five classes and a bare-namespace majority
// - Evidence lists are capped at MaxEvidence
// - Insights come back sorted by severity, highest first
// - Evaluate is deterministic for a fixed input

func classNamed(name string, methods, fields int) extract.ClassDefinition {
	c := extract.ClassDefinition{Name: name, Kind: extract.KindClass, File: name + ".cs", StartLine: 1}
	for i := 0; i < methods; i++ {
		c.Methods = append(c.Methods, extract.MethodDefinition{Name: fmt.Sprintf("M%d", i), ReturnType: "void"})
	}
	for i := 0; i < fields; i++ {
		c.Fields = append(c.Fields, extract.FieldDefinition{Name: fmt.Sprintf("f%d", i), Type: "int"})
	}
	return c
}

func insightsOf(ins []ProjectInsight, cat Category) []ProjectInsight {
	var out []ProjectInsight
	for _, i := range ins {
		if i.Category == cat {
			out = append(out, i)
		}
	}
	return out
}

func TestEvaluate_EmptyProject(t *testing.T) {
	t.Parallel()

	ins, recs := NewEngine(DefaultThresholds()).Evaluate(&Input{})

	require.Len(t, ins, 1)
	assert.Equal(t, CategoryStructure, ins[0].Category)
	assert.Equal(t, SeverityInfo, ins[0].Severity)
	assert.Contains(t, ins[0].Message, "no content found")
	assert.Empty(t, recs)
}

func TestEvaluate_OneInsightPerCycle(t *testing.T) {
	t.Parallel()

	in := &Input{
		Classes: []extract.ClassDefinition{classNamed("ATests", 1, 0)},
		Cycles: []depgraph.Cycle{
			{Path: []string{"A", "B", "A"}},
			{Path: []string{"C", "D", "E", "C"}},
		},
	}

	ins, recs := NewEngine(DefaultThresholds()).Evaluate(in)

	arch := insightsOf(ins, CategoryArchitecture)
	require.Len(t, arch, 2)
	for _, i := range arch {
		assert.Equal(t, SeverityHigh, i.Severity)
	}
	assert.Equal(t, "circular dependency: A -> B -> A", arch[0].Message)
	assert.Equal(t, "circular dependency: C -> D -> E -> C", arch[1].Message)
	require.NotEmpty(t, recs)
	assert.Equal(t, 1, recs[0].Priority)
}

func TestEvaluate_GodClassNeedsBothLimits(t *testing.T) {
	t.Parallel()

	e := NewEngine(DefaultThresholds())

	// Many methods but few fields: not a god class.
	ins, _ := e.Evaluate(&Input{Classes: []extract.ClassDefinition{classNamed("LeanTests", 20, 2)}})
	assert.Empty(t, insightsOf(ins, CategoryStructure))

	// Both limits exceeded.
	ins, _ = e.Evaluate(&Input{Classes: []extract.ClassDefinition{classNamed("GodTests", 16, 11)}})
	structure := insightsOf(ins, CategoryStructure)
	require.Len(t, structure, 1)
	assert.Equal(t, SeverityMedium, structure[0].Severity)

	// Double the method limit escalates.
	ins, _ = e.Evaluate(&Input{Classes: []extract.ClassDefinition{classNamed("TitanTests", 31, 11)}})
	structure = insightsOf(ins, CategoryStructure)
	require.Len(t, structure, 1)
	assert.Equal(t, SeverityHigh, structure[0].Severity)
}

func TestEvaluate_HighComplexityEscalation(t *testing.T) {
	t.Parallel()

	in := &Input{
		Classes: []extract.ClassDefinition{classNamed("LogicTests", 1, 0)},
		Complexity: &complexity.Report{
			Threshold: 10,
			HighMethods: []complexity.MethodScore{
				{ClassName: "Logic", MethodName: "Simulate", Score: 21, File: "Logic.cs", Line: 10},
				{ClassName: "Logic", MethodName: "Resolve", Score: 13, File: "Logic.cs", Line: 40},
			},
		},
	}

	ins, _ := NewEngine(DefaultThresholds()).Evaluate(in)

	quality := insightsOf(ins, CategoryCodeQuality)
	require.Len(t, quality, 2)
	assert.Equal(t, SeverityCritical, quality[0].Severity)
	assert.Contains(t, quality[0].Message, "Logic.Simulate")
	assert.Contains(t, quality[0].Message, "complexity 21")
	assert.Equal(t, SeverityMedium, quality[1].Severity)
}

func TestEvaluate_UnusedAssetsAggregate(t *testing.T) {
	t.Parallel()

	in := &Input{
		Assets: []assets.AssetRecord{
			{Path: "Assets/a.png", SizeBytes: 100, Unused: true},
			{Path: "Assets/b.png", SizeBytes: 50, Unused: true},
			{Path: "Assets/Main.unity", SizeBytes: 10},
		},
	}

	ins, _ := NewEngine(DefaultThresholds()).Evaluate(in)

	perf := insightsOf(ins, CategoryPerformance)
	require.Len(t, perf, 1)
	assert.Equal(t, SeverityLow, perf[0].Severity)
	assert.Contains(t, perf[0].Message, "2 assets (150 bytes)")
	assert.Equal(t, []string{"Assets/a.png", "Assets/b.png"}, perf[0].Evidence)
}

func TestEvaluate_SingletonOveruse(t *testing.T) {
	t.Parallel()

	singletons := func(n int) []patterns.DetectedPattern {
		out := make([]patterns.DetectedPattern, n)
		for i := range out {
			out[i] = patterns.DetectedPattern{Pattern: patterns.Singleton, ClassName: fmt.Sprintf("Mgr%d", i)}
		}
		return out
	}
	base := []extract.ClassDefinition{classNamed("SomethingTests", 1, 0)}

	e := NewEngine(DefaultThresholds())

	// At the tolerance: quiet.
	ins, _ := e.Evaluate(&Input{Classes: base, Patterns: singletons(3)})
	assert.Empty(t, insightsOf(ins, CategoryArchitecture))

	// Above it: one insight.
	ins, _ = e.Evaluate(&Input{Classes: base, Patterns: singletons(4)})
	arch := insightsOf(ins, CategoryArchitecture)
	require.Len(t, arch, 1)
	assert.Contains(t, arch[0].Message, "4 singleton classes")
}

func TestEvaluate_EvidenceCapped(t *testing.T) {
	t.Parallel()

	var records []assets.AssetRecord
	for i := 0; i < 15; i++ {
		records = append(records, assets.AssetRecord{Path: fmt.Sprintf("Assets/u%02d.png", i), Unused: true})
	}

	th := DefaultThresholds()
	th.MaxEvidence = 5
	ins, _ := NewEngine(th).Evaluate(&Input{Assets: records})

	perf := insightsOf(ins, CategoryPerformance)
	require.Len(t, perf, 1)
	require.Len(t, perf[0].Evidence, 6)
	assert.Equal(t, "and 10 more", perf[0].Evidence[5])
}

func TestEvaluate_SortedBySeverity(t *testing.T) {
	t.Parallel()

	in := &Input{
		Classes: []extract.ClassDefinition{classNamed("MixTests", 1, 0)},
		Cycles:  []depgraph.Cycle{{Path: []string{"A", "B", "A"}}},
		Assets: []assets.AssetRecord{
			{Path: "Assets/u.png", Unused: true},
		},
	}

	ins, _ := NewEngine(DefaultThresholds()).Evaluate(in)
	require.GreaterOrEqual(t, len(ins), 2)
	for i := 1; i < len(ins); i++ {
		assert.GreaterOrEqual(t, ins[i-1].Severity, ins[i].Severity)
	}
}

func TestEvaluate_MissingTests(t *testing.T) {
	t.Parallel()

	e := NewEngine(DefaultThresholds())

	ins, _ := e.Evaluate(&Input{Classes: []extract.ClassDefinition{classNamed("Player", 1, 0)}})
	missing := insightsOf(ins, CategoryTesting)
	require.Len(t, missing, 1)
	assert.Equal(t, SeverityMedium, missing[0].Severity)
	assert.Contains(t, missing[0].Message, "no test classes found")

	// A class named *Tests suppresses the insight.
	ins, _ = e.Evaluate(&Input{Classes: []extract.ClassDefinition{
		classNamed("Player", 1, 0),
		classNamed("PlayerTests", 1, 0),
	}})
	assert.Empty(t, insightsOf(ins, CategoryTesting))

	// So does any class living under a Tests/ path.
	inTestsDir := classNamed("PlayerSpec", 1, 0)
	inTestsDir.File = "Assets/Tests/PlayerSpec.cs"
	ins, _ = e.Evaluate(&Input{Classes: []extract.ClassDefinition{
		classNamed("Player", 1, 0),
		inTestsDir,
	}})
	assert.Empty(t, insightsOf(ins, CategoryTesting))
}

func TestEvaluate_FanOut(t *testing.T) {
	t.Parallel()

	edgesTo := func(n int) []depgraph.DependencyEdge {
		out := make([]depgraph.DependencyEdge, n)
		for i := range out {
			out[i] = depgraph.DependencyEdge{From: "HubTests", To: fmt.Sprintf("T%d", i), Kind: depgraph.RefField}
		}
		return out
	}

	th := DefaultThresholds()
	th.FanOutLimit = 3
	e := NewEngine(th)
	base := []extract.ClassDefinition{classNamed("HubTests", 1, 0)}

	// At the limit: quiet.
	ins, _ := e.Evaluate(&Input{Classes: base, Edges: edgesTo(3)})
	assert.Empty(t, insightsOf(ins, CategoryDependencies))

	// Self-edges never count toward fan-out.
	withSelf := append(edgesTo(3), depgraph.DependencyEdge{From: "HubTests", To: "HubTests", Kind: depgraph.RefField})
	ins, _ = e.Evaluate(&Input{Classes: base, Edges: withSelf})
	assert.Empty(t, insightsOf(ins, CategoryDependencies))

	// One over the limit: fires.
	ins, _ = e.Evaluate(&Input{Classes: base, Edges: edgesTo(4)})
	deps := insightsOf(ins, CategoryDependencies)
	require.Len(t, deps, 1)
	assert.Equal(t, SeverityMedium, deps[0].Severity)
	assert.Contains(t, deps[0].Message, "depends on 4 other classes (limit 3)")
}

func TestEvaluate_NamespaceHygiene(t *testing.T) {
	t.Parallel()

	project := func(total, bare int) []extract.ClassDefinition {
		out := make([]extract.ClassDefinition, total)
		for i := range out {
			out[i] = classNamed(fmt.Sprintf("C%dTests", i), 1, 0)
			if i >= bare {
				out[i].Namespace = "Game.Core"
			}
		}
		return out
	}

	e := NewEngine(DefaultThresholds())

	// Fewer than five classes: quiet regardless of namespaces.
	ins, _ := e.Evaluate(&Input{Classes: project(4, 4)})
	assert.Empty(t, insightsOf(ins, CategoryMaintainability))

	// Bare minority: quiet.
	ins, _ = e.Evaluate(&Input{Classes: project(5, 2)})
	assert.Empty(t, insightsOf(ins, CategoryMaintainability))

	// Bare majority: one Low insight naming the counts.
	ins, _ = e.Evaluate(&Input{Classes: project(6, 4)})
	hygiene := insightsOf(ins, CategoryMaintainability)
	require.Len(t, hygiene, 1)
	assert.Equal(t, SeverityLow, hygiene[0].Severity)
	assert.Contains(t, hygiene[0].Message, "4 of 6 classes are in the global namespace")
}

func TestEvaluate_SceneCount(t *testing.T) {
	t.Parallel()

	sceneAssets := func(n int) []assets.AssetRecord {
		out := make([]assets.AssetRecord, n)
		for i := range out {
			out[i] = assets.AssetRecord{Path: fmt.Sprintf("Assets/S%02d.unity", i), Category: assets.CategoryScene}
		}
		return out
	}

	th := DefaultThresholds()
	th.MaxScenes = 5
	e := NewEngine(th)

	ins, _ := e.Evaluate(&Input{Assets: sceneAssets(5)})
	assert.Empty(t, insightsOf(ins, CategoryStructure))

	ins, _ = e.Evaluate(&Input{Assets: sceneAssets(6)})
	structure := insightsOf(ins, CategoryStructure)
	require.Len(t, structure, 1)
	assert.Contains(t, structure[0].Message, "6 scenes")
}

func TestEvaluate_AssetRatio(t *testing.T) {
	t.Parallel()

	manyAssets := func(n int) []assets.AssetRecord {
		out := make([]assets.AssetRecord, n)
		for i := range out {
			out[i] = assets.AssetRecord{Path: fmt.Sprintf("Assets/a%03d.png", i)}
		}
		return out
	}

	th := DefaultThresholds()
	th.AssetsPerClass = 10
	e := NewEngine(th)
	base := []extract.ClassDefinition{classNamed("RatioTests", 1, 0)}

	ins, _ := e.Evaluate(&Input{Classes: base, Assets: manyAssets(10)})
	assert.Empty(t, insightsOf(ins, CategoryPerformance))

	ins, _ = e.Evaluate(&Input{Classes: base, Assets: manyAssets(11)})
	perf := insightsOf(ins, CategoryPerformance)
	require.Len(t, perf, 1)
	assert.Contains(t, perf[0].Message, "11 assets against 1 classes")
}

func TestEvaluate_Deterministic(t *testing.T) {
	t.Parallel()

	in := &Input{
		Classes: []extract.ClassDefinition{classNamed("GodTests", 16, 11)},
		Cycles:  []depgraph.Cycle{{Path: []string{"A", "B", "A"}}},
	}

	e := NewEngine(DefaultThresholds())
	ins1, recs1 := e.Evaluate(in)
	ins2, recs2 := e.Evaluate(in)
	assert.Equal(t, ins1, ins2)
	assert.Equal(t, recs1, recs2)
}
