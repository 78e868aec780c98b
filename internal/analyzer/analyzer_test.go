package analyzer

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unitylens/unitylens/internal/insight"
)

// Test Plan for Analyzer:
// - A missing root fails the run with an error message, not a panic
// - An empty directory succeeds with empty collections and the
//   "no content found" insight
// - A singleton class is extracted and detected end to end
// - Mutually dependent classes produce one cycle and one High
//   architecture insight
// - Unreadable files become diagnostics, not failures
// - A pre-cancelled context marks the run cancelled
// - Two runs over the same tree agree on everything but run identity
// - Progress callbacks cover the pipeline stages and end at 1

func writeSource(t *testing.T, root, rel, content string) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
}

func TestAnalyzeProject_MissingRoot(t *testing.T) {
	t.Parallel()

	res := New(nil).AnalyzeProject(context.Background(), filepath.Join(t.TempDir(), "nope"))

	assert.False(t, res.Success)
	assert.False(t, res.Cancelled)
	assert.NotEmpty(t, res.ErrorMessage)
	assert.NotEmpty(t, res.RunID)
}

func TestAnalyzeProject_EmptyProject(t *testing.T) {
	t.Parallel()

	res := New(nil).AnalyzeProject(context.Background(), t.TempDir())

	assert.True(t, res.Success)
	assert.Empty(t, res.Classes)
	assert.Empty(t, res.Assets)
	assert.Empty(t, res.Cycles)

	require.Len(t, res.Insights, 1)
	assert.Equal(t, insight.SeverityInfo, res.Insights[0].Severity)
	assert.Contains(t, res.Insights[0].Message, "no content found")
}

func TestAnalyzeProject_SingletonEndToEnd(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeSource(t, root, "Assets/Scripts/Foo.cs", `public class Foo
{
    public static Foo instance;

    public static Foo GetInstance()
    {
        return instance;
    }
}
`)

	res := New(nil).AnalyzeProject(context.Background(), root)

	require.True(t, res.Success)
	assert.Equal(t, 1, res.Stats.SourceFiles)
	assert.Equal(t, 1, res.Stats.Classes)

	require.Len(t, res.Patterns, 1)
	assert.Equal(t, "Singleton", string(res.Patterns[0].Pattern))
	assert.Equal(t, "Foo", res.Patterns[0].ClassName)
	assert.GreaterOrEqual(t, res.Patterns[0].Confidence, 0.8)
}

func TestAnalyzeProject_CycleEndToEnd(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeSource(t, root, "Assets/A.cs", `public class A
{
    private B other;
}
`)
	writeSource(t, root, "Assets/B.cs", `public class B
{
    private A other;
}
`)

	res := New(nil).AnalyzeProject(context.Background(), root)

	require.True(t, res.Success)
	require.Len(t, res.Cycles, 1)
	assert.Equal(t, []string{"A", "B", "A"}, res.Cycles[0].Path)

	var archHigh int
	for _, in := range res.Insights {
		if in.Category == insight.CategoryArchitecture && in.Severity == insight.SeverityHigh {
			archHigh++
			assert.Equal(t, "circular dependency: A -> B -> A", in.Message)
		}
	}
	assert.Equal(t, 1, archHigh)
}

func TestAnalyzeProject_UnreadableFileIsDiagnostic(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeSource(t, root, "Assets/Good.cs", "public class Good { }\n")
	// A dangling symlink is discovered but cannot be loaded.
	require.NoError(t, os.Symlink(
		filepath.Join(root, "missing-target"),
		filepath.Join(root, "Assets", "Bad.cs")))

	res := New(nil).AnalyzeProject(context.Background(), root)

	require.True(t, res.Success)
	assert.Equal(t, 1, res.Stats.Classes)

	found := false
	for _, d := range res.Diagnostics {
		if d.Path == "Assets/Bad.cs" && d.Stage == StageExtraction {
			found = true
		}
	}
	assert.True(t, found, "expected a read diagnostic for the unreadable file")
}

func TestAnalyzeProject_Cancellation(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeSource(t, root, "Assets/One.cs", "public class One { }\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := New(nil).AnalyzeProject(ctx, root)

	assert.False(t, res.Success)
	assert.True(t, res.Cancelled)
	assert.Equal(t, "analysis cancelled", res.ErrorMessage)
}

func TestAnalyzeProject_CancellationBeforeAnyFile(t *testing.T) {
	t.Parallel()

	// An empty project has no file boundaries, so cancellation must be
	// observed before the sub-scans start.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := New(nil).AnalyzeProject(ctx, t.TempDir())

	assert.False(t, res.Success)
	assert.True(t, res.Cancelled)
	assert.Equal(t, "analysis cancelled", res.ErrorMessage)
}

func TestAnalyzeProject_DeterministicModuloIdentity(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeSource(t, root, "Assets/A.cs", `public class A
{
    private B other;

    public void Tick()
    {
        if (other != null) { other.Tick(); }
    }
}
`)
	writeSource(t, root, "Assets/B.cs", `public class B
{
    private A other;

    public void Tick() { }
}
`)

	a := New(nil)
	first := a.AnalyzeProject(context.Background(), root)
	second := a.AnalyzeProject(context.Background(), root)

	require.True(t, first.Success)
	require.True(t, second.Success)
	assert.NotEqual(t, first.RunID, second.RunID)

	assert.Equal(t, first.Stats, second.Stats)
	assert.Equal(t, first.Classes, second.Classes)
	assert.Equal(t, first.Edges, second.Edges)
	assert.Equal(t, first.Cycles, second.Cycles)
	assert.Equal(t, first.Patterns, second.Patterns)
	assert.Equal(t, first.Complexity, second.Complexity)
	assert.Equal(t, first.Insights, second.Insights)
	assert.Equal(t, first.Recommendations, second.Recommendations)
}

func TestAnalyzeProject_ProgressStages(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeSource(t, root, "Assets/A.cs", "public class A { }\n")

	var mu sync.Mutex
	stages := map[string]bool{}
	var last float64
	a := New(nil, WithProgress(func(stage string, fraction float64) {
		mu.Lock()
		defer mu.Unlock()
		stages[stage] = true
		if fraction > last {
			last = fraction
		}
	}))

	res := a.AnalyzeProject(context.Background(), root)
	require.True(t, res.Success)

	var seen []string
	for s := range stages {
		seen = append(seen, s)
	}
	sort.Strings(seen)
	assert.Equal(t, []string{
		StageAssets, StageComplexity, StageDependencies, StageDiscovery,
		StageExtraction, StageInsights, StagePatterns,
	}, seen)
	assert.Equal(t, 1.0, last)
}
