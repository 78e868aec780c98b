// Package complexity approximates cyclomatic complexity from the branching
// counts collected during extraction. There is no control-flow graph: the
// score is 1 (baseline path) plus the number of branching tokens in the
// method body.
package complexity

import (
	"sort"

	"github.com/unitylens/unitylens/internal/extract"
)

// DefaultThreshold is the score above which a method is flagged as high
// complexity. Empirically chosen, configurable, not load-bearing.
const DefaultThreshold = 10

// MethodScore is the complexity score for one method.
type MethodScore struct {
	ClassName  string `json:"class_name"`
	MethodName string `json:"method_name"`
	File       string `json:"file"`
	Line       int    `json:"line"`
	Score      int    `json:"score"`
}

// ClassScore aggregates method scores per class.
type ClassScore struct {
	ClassName   string  `json:"class_name"`
	MethodCount int     `json:"method_count"`
	Total       int     `json:"total"`
	Average     float64 `json:"average"`
	Max         int     `json:"max"`
}

// Report is the project-wide complexity summary.
type Report struct {
	Methods     []MethodScore `json:"methods"`
	Classes     []ClassScore  `json:"classes"`
	HighMethods []MethodScore `json:"high_methods"` // Score > threshold
	Threshold   int           `json:"threshold"`
	Total       int           `json:"total"`
	Average     float64       `json:"average"`
	Max         int           `json:"max"`
}

// Scorer computes complexity reports.
type Scorer struct {
	threshold int
}

// NewScorer creates a scorer. A non-positive threshold falls back to
// DefaultThreshold.
func NewScorer(threshold int) *Scorer {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Scorer{threshold: threshold}
}

// ScoreMethod returns the cyclomatic approximation for one method.
func (s *Scorer) ScoreMethod(m *extract.MethodDefinition) int {
	return 1 + m.BranchCount
}

// Score computes per-method, per-class, and project aggregates for all
// extracted classes. Output ordering is deterministic.
func (s *Scorer) Score(classes []extract.ClassDefinition) *Report {
	report := &Report{Threshold: s.threshold}

	for i := range classes {
		c := &classes[i]
		if len(c.Methods) == 0 {
			continue
		}
		cs := ClassScore{ClassName: c.Name, MethodCount: len(c.Methods)}
		for j := range c.Methods {
			m := &c.Methods[j]
			score := s.ScoreMethod(m)
			ms := MethodScore{
				ClassName:  c.Name,
				MethodName: m.Name,
				File:       c.File,
				Line:       m.Line,
				Score:      score,
			}
			report.Methods = append(report.Methods, ms)
			if score > s.threshold {
				report.HighMethods = append(report.HighMethods, ms)
			}
			cs.Total += score
			if score > cs.Max {
				cs.Max = score
			}
		}
		cs.Average = float64(cs.Total) / float64(cs.MethodCount)
		report.Classes = append(report.Classes, cs)

		report.Total += cs.Total
		if cs.Max > report.Max {
			report.Max = cs.Max
		}
	}

	if len(report.Methods) > 0 {
		report.Average = float64(report.Total) / float64(len(report.Methods))
	}

	// Worst offenders first so callers can cap evidence lists.
	sort.SliceStable(report.HighMethods, func(i, j int) bool {
		return report.HighMethods[i].Score > report.HighMethods[j].Score
	})

	return report
}
