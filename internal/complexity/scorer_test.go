package complexity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unitylens/unitylens/internal/extract"
)

// Test Plan for Scorer:
// - A branch-free method scores exactly 1
// - Each branch token adds 1 (3 ifs -> score 4)
// - Methods above the threshold land in HighMethods, worst first
// - Methods at the threshold are not flagged
// - Class and project aggregates (total, average, max) are correct
// - Classes without methods produce no class score

func methodWithBranches(name string, branches int) extract.MethodDefinition {
	return extract.MethodDefinition{Name: name, ReturnType: "void", BranchCount: branches}
}

func TestScoreMethod_Baseline(t *testing.T) {
	t.Parallel()

	s := NewScorer(DefaultThreshold)
	m := methodWithBranches("Straight", 0)
	assert.Equal(t, 1, s.ScoreMethod(&m))
}

func TestScoreMethod_ThreeBranches(t *testing.T) {
	t.Parallel()

	s := NewScorer(DefaultThreshold)
	m := methodWithBranches("ThreeIfs", 3)
	assert.Equal(t, 4, s.ScoreMethod(&m))
}

func TestScore_HighMethodsSortedWorstFirst(t *testing.T) {
	t.Parallel()

	classes := []extract.ClassDefinition{
		{
			Name: "Combat",
			Kind: extract.KindClass,
			Methods: []extract.MethodDefinition{
				methodWithBranches("Tick", 0),
				methodWithBranches("Resolve", 12),  // score 13
				methodWithBranches("Simulate", 20), // score 21
			},
		},
	}

	report := NewScorer(10).Score(classes)

	require.Len(t, report.HighMethods, 2)
	assert.Equal(t, "Simulate", report.HighMethods[0].MethodName)
	assert.Equal(t, 21, report.HighMethods[0].Score)
	assert.Equal(t, "Resolve", report.HighMethods[1].MethodName)
}

func TestScore_AtThresholdNotFlagged(t *testing.T) {
	t.Parallel()

	classes := []extract.ClassDefinition{
		{
			Name: "Edge",
			Kind: extract.KindClass,
			Methods: []extract.MethodDefinition{
				methodWithBranches("Exact", 9), // score 10 == threshold
			},
		},
	}

	report := NewScorer(10).Score(classes)
	assert.Empty(t, report.HighMethods)
}

func TestScore_Aggregates(t *testing.T) {
	t.Parallel()

	classes := []extract.ClassDefinition{
		{
			Name: "A",
			Kind: extract.KindClass,
			Methods: []extract.MethodDefinition{
				methodWithBranches("M1", 0), // 1
				methodWithBranches("M2", 3), // 4
			},
		},
		{
			Name: "B",
			Kind: extract.KindClass,
			Methods: []extract.MethodDefinition{
				methodWithBranches("M3", 6), // 7
			},
		},
		{Name: "Empty", Kind: extract.KindClass},
	}

	report := NewScorer(DefaultThreshold).Score(classes)

	require.Len(t, report.Methods, 3)
	require.Len(t, report.Classes, 2)

	a := report.Classes[0]
	assert.Equal(t, "A", a.ClassName)
	assert.Equal(t, 5, a.Total)
	assert.InDelta(t, 2.5, a.Average, 0.001)
	assert.Equal(t, 4, a.Max)

	assert.Equal(t, 12, report.Total)
	assert.InDelta(t, 4.0, report.Average, 0.001)
	assert.Equal(t, 7, report.Max)
}

func TestNewScorer_NonPositiveThresholdFallsBack(t *testing.T) {
	t.Parallel()

	report := NewScorer(0).Score(nil)
	assert.Equal(t, DefaultThreshold, report.Threshold)
}
