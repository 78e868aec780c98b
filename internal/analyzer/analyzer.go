// Package analyzer runs the full analysis pipeline over a Unity project
// directory: discover files, extract the class model, build the dependency
// graph, classify patterns, score complexity, scan assets, and evaluate
// insights. One invocation produces one immutable Result.
package analyzer

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/unitylens/unitylens/internal/assets"
	"github.com/unitylens/unitylens/internal/complexity"
	"github.com/unitylens/unitylens/internal/config"
	"github.com/unitylens/unitylens/internal/depgraph"
	"github.com/unitylens/unitylens/internal/extract"
	"github.com/unitylens/unitylens/internal/insight"
	"github.com/unitylens/unitylens/internal/patterns"
	"github.com/unitylens/unitylens/internal/scanner"
)

// Analyzer runs analysis passes with a fixed configuration.
type Analyzer struct {
	cfg      *config.Config
	progress ProgressFunc
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithProgress configures progress reporting.
func WithProgress(fn ProgressFunc) Option {
	return func(a *Analyzer) {
		a.progress = fn
	}
}

// New creates an analyzer. A nil config falls back to defaults.
func New(cfg *config.Config, opts ...Option) *Analyzer {
	if cfg == nil {
		cfg = config.Default()
	}
	a := &Analyzer{cfg: cfg}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AnalyzeProject analyzes the project rooted at rootPath. It never returns
// an error for expected conditions: an empty project is a successful run
// with empty collections, and every per-file problem becomes a diagnostic.
// Only a missing root or cancellation produce Success=false.
func (a *Analyzer) AnalyzeProject(ctx context.Context, rootPath string) *Result {
	start := time.Now()
	res := &Result{
		RunID:      uuid.NewString(),
		AnalyzedAt: start,
	}
	finish := func() *Result {
		res.Duration = time.Since(start)
		return res
	}

	sc, err := scanner.New(rootPath, a.cfg.Analysis.SourceExtensions, a.cfg.Analysis.IgnorePatterns)
	if err != nil {
		res.ErrorMessage = err.Error()
		return finish()
	}

	a.report(StageDiscovery, 0)
	disc, err := sc.Discover()
	if err != nil {
		res.ErrorMessage = err.Error()
		return finish()
	}
	for _, w := range disc.Warnings {
		res.Diagnostics = append(res.Diagnostics, Diagnostic{Stage: StageDiscovery, Message: w})
	}
	res.Stats.SourceFiles = len(disc.SourceFiles)
	res.Stats.AssetFiles = len(disc.AssetFiles)
	a.report(StageDiscovery, 0.1)

	// Cancellation is otherwise only observed at file boundaries; without
	// this check an empty project would report a clean success on a
	// context that was cancelled before the run started.
	if err := ctx.Err(); err != nil {
		res.Cancelled = true
		res.ErrorMessage = "analysis cancelled"
		return finish()
	}

	// The two sub-scans read disjoint file sets and write to disjoint
	// collections, so they run concurrently and merge by assignment.
	g, gctx := errgroup.WithContext(ctx)

	var (
		classes     []extract.ClassDefinition
		sourceDiags []Diagnostic
		depResult   *depgraph.Result
		detected    []patterns.DetectedPattern
		complexRpt  *complexity.Report
	)
	g.Go(func() error {
		ex := extract.NewExtractor()
		for _, rel := range disc.SourceFiles {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			sf, err := sc.Load(rel)
			if err != nil {
				sourceDiags = append(sourceDiags, Diagnostic{Stage: StageExtraction, Path: rel, Message: "read failed: " + err.Error()})
				continue
			}
			cls, warns := ex.ExtractFile(rel, sf.Content)
			classes = append(classes, cls...)
			for _, w := range warns {
				sourceDiags = append(sourceDiags, Diagnostic{Stage: StageExtraction, Path: w.File, Line: w.Line, Message: w.Message})
			}
		}
		a.report(StageExtraction, 0.4)

		dep, err := depgraph.NewBuilder().Build(classes)
		if err != nil {
			sourceDiags = append(sourceDiags, Diagnostic{Stage: StageDependencies, Message: err.Error()})
			dep = &depgraph.Result{}
		}
		depResult = dep
		a.report(StageDependencies, 0.55)

		detected = patterns.NewDetector(a.cfg.Analysis.MinPatternConfidence).Detect(classes)
		a.report(StagePatterns, 0.65)

		complexRpt = complexity.NewScorer(a.cfg.Analysis.ComplexityThreshold).Score(classes)
		a.report(StageComplexity, 0.7)
		return nil
	})

	var (
		assetRecords  []assets.AssetRecord
		assetWarnings []assets.Warning
	)
	g.Go(func() error {
		records, warns, err := assets.NewScanner(rootPath).Scan(gctx, disc.AssetFiles)
		assetRecords = records
		assetWarnings = warns
		if err != nil {
			return err
		}
		a.report(StageAssets, 0.85)
		return nil
	})

	waitErr := g.Wait()

	res.Classes = classes
	if depResult != nil {
		res.Edges = depResult.Edges
		res.Cycles = depResult.Cycles
	}
	res.Patterns = detected
	res.Complexity = complexRpt
	res.Assets = assetRecords
	res.Diagnostics = append(res.Diagnostics, sourceDiags...)
	for _, w := range assetWarnings {
		res.Diagnostics = append(res.Diagnostics, Diagnostic{Stage: StageAssets, Path: w.Path, Message: w.Message})
	}
	res.Stats.Classes = len(classes)
	for i := range classes {
		res.Stats.Methods += len(classes[i].Methods)
		switch patterns.ClassifyComponent(&classes[i]) {
		case patterns.ComponentBehaviour:
			res.Stats.MonoBehaviours++
		case patterns.ComponentScriptableObject:
			res.Stats.ScriptableObjects++
		}
	}

	if waitErr != nil {
		if errors.Is(waitErr, context.Canceled) || errors.Is(waitErr, context.DeadlineExceeded) {
			res.Cancelled = true
			res.ErrorMessage = "analysis cancelled"
		} else {
			res.ErrorMessage = waitErr.Error()
		}
		return finish()
	}

	engine := insight.NewEngine(insight.Thresholds{
		GodClassMethods: a.cfg.Analysis.GodClassMethodLimit,
		GodClassFields:  a.cfg.Analysis.GodClassFieldLimit,
		MaxSingletons:   a.cfg.Analysis.MaxSingletons,
		FanOutLimit:     a.cfg.Analysis.FanOutLimit,
	})
	res.Insights, res.Recommendations = engine.Evaluate(&insight.Input{
		Classes:    res.Classes,
		Edges:      res.Edges,
		Cycles:     res.Cycles,
		Patterns:   res.Patterns,
		Complexity: res.Complexity,
		Assets:     res.Assets,
	})
	a.report(StageInsights, 1)

	res.Success = true
	return finish()
}

func (a *Analyzer) report(stage string, fraction float64) {
	if a.progress != nil {
		a.progress(stage, fraction)
	}
}
