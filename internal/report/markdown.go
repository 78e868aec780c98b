package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/unitylens/unitylens/internal/analyzer"
)

// maxTableRows caps the per-section tables so reports on large projects
// stay readable.
const maxTableRows = 25

// WriteMarkdown renders the result as a Markdown report: summary,
// dependency cycles, detected patterns, complexity offenders, assets, and
// the insight/recommendation lists.
func WriteMarkdown(w io.Writer, res *analyzer.Result) error {
	var b strings.Builder

	b.WriteString("# Project Analysis Report\n\n")
	if !res.Success {
		if res.Cancelled {
			b.WriteString("**Run cancelled**, partial results below.\n\n")
		} else {
			fmt.Fprintf(&b, "**Analysis failed:** %s\n\n", res.ErrorMessage)
		}
	}
	fmt.Fprintf(&b, "- Analyzed at: %s\n", res.AnalyzedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "- Duration: %s\n", res.Duration)
	fmt.Fprintf(&b, "- Source files: %d, assets: %d\n", res.Stats.SourceFiles, res.Stats.AssetFiles)
	fmt.Fprintf(&b, "- Classes: %d, methods: %d\n", res.Stats.Classes, res.Stats.Methods)
	fmt.Fprintf(&b, "- MonoBehaviours: %d, ScriptableObjects: %d\n\n",
		res.Stats.MonoBehaviours, res.Stats.ScriptableObjects)

	if len(res.Cycles) > 0 {
		b.WriteString("## Circular Dependencies\n\n")
		for _, c := range res.Cycles {
			fmt.Fprintf(&b, "- `%s`\n", strings.Join(c.Path, " -> "))
		}
		b.WriteString("\n")
	}

	if len(res.Patterns) > 0 {
		b.WriteString("## Detected Patterns\n\n")
		b.WriteString("| Pattern | Class | Confidence |\n|---|---|---|\n")
		for i, p := range res.Patterns {
			if i == maxTableRows {
				fmt.Fprintf(&b, "| … | %d more | |\n", len(res.Patterns)-maxTableRows)
				break
			}
			fmt.Fprintf(&b, "| %s | `%s` | %.2f |\n", p.Pattern, p.ClassName, p.Confidence)
		}
		b.WriteString("\n")
	}

	if res.Complexity != nil && len(res.Complexity.HighMethods) > 0 {
		b.WriteString("## High-Complexity Methods\n\n")
		b.WriteString("| Method | Score | Location |\n|---|---|---|\n")
		for i, m := range res.Complexity.HighMethods {
			if i == maxTableRows {
				fmt.Fprintf(&b, "| … | %d more | |\n", len(res.Complexity.HighMethods)-maxTableRows)
				break
			}
			fmt.Fprintf(&b, "| `%s.%s` | %d | %s:%d |\n", m.ClassName, m.MethodName, m.Score, m.File, m.Line)
		}
		b.WriteString("\n")
	}

	unused := 0
	for i := range res.Assets {
		if res.Assets[i].Unused {
			unused++
		}
	}
	if len(res.Assets) > 0 {
		b.WriteString("## Assets\n\n")
		fmt.Fprintf(&b, "%d assets scanned, %d unreferenced.\n\n", len(res.Assets), unused)
	}

	if len(res.Insights) > 0 {
		b.WriteString("## Insights\n\n")
		for _, in := range res.Insights {
			fmt.Fprintf(&b, "- **[%s/%s]** %s\n", in.Category, in.Severity, in.Message)
		}
		b.WriteString("\n")
	}

	if len(res.Recommendations) > 0 {
		b.WriteString("## Recommendations\n\n")
		for _, rec := range res.Recommendations {
			fmt.Fprintf(&b, "### %s (priority %d, effort: %s)\n\n", rec.Category, rec.Priority, rec.Effort)
			for i, action := range rec.Actions {
				fmt.Fprintf(&b, "%d. %s\n", i+1, action)
			}
			b.WriteString("\n")
		}
	}

	if len(res.Diagnostics) > 0 {
		b.WriteString("## Diagnostics\n\n")
		for i, d := range res.Diagnostics {
			if i == maxTableRows {
				fmt.Fprintf(&b, "- and %d more\n", len(res.Diagnostics)-maxTableRows)
				break
			}
			if d.Path != "" {
				fmt.Fprintf(&b, "- %s: %s: %s\n", d.Stage, d.Path, d.Message)
			} else {
				fmt.Fprintf(&b, "- %s: %s\n", d.Stage, d.Message)
			}
		}
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}
