package cli

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/unitylens/unitylens/internal/analyzer"
	"github.com/unitylens/unitylens/internal/config"
	"github.com/unitylens/unitylens/internal/insight"
	"github.com/unitylens/unitylens/internal/report"
)

var (
	analyzeFormat string
	analyzeOutput string
	analyzeQuiet  bool
	analyzeWatch  bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [path]",
	Short: "Analyze a Unity project directory",
	Long: `Analyze runs the full static-analysis pipeline over a project directory
(default: current directory) and prints a report. Ctrl-C cancels the run
at the next file boundary and reports partial results.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeFormat, "format", "f", "", "output format: text, json, or markdown (default from config)")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "", "write the report to a file instead of stdout")
	analyzeCmd.Flags().BoolVarP(&analyzeQuiet, "quiet", "q", false, "suppress progress output")
	analyzeCmd.Flags().BoolVarP(&analyzeWatch, "watch", "w", false, "re-run the analysis when project files change")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	cfg, err := config.LoadFromDir(root)
	if err != nil {
		return err
	}
	if analyzeFormat != "" {
		cfg.Output.Format = analyzeFormat
	}
	if analyzeOutput != "" {
		cfg.Output.Path = analyzeOutput
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Machine-readable output on stdout must stay clean of bar redraws.
	machineStdout := cfg.Output.Format != "text" && cfg.Output.Path == ""
	progress := NewCLIProgressReporter(analyzeQuiet || machineStdout)
	a := analyzer.New(cfg, analyzer.WithProgress(progress.Report))

	result := a.AnalyzeProject(ctx, root)
	progress.Finish()
	if err := emit(cfg, result); err != nil {
		return err
	}

	if analyzeWatch && result.Success {
		watcher, err := analyzer.NewWatcher(a, root, func(res *analyzer.Result) {
			if err := emit(cfg, res); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
		})
		if err != nil {
			return err
		}
		watcher.Start(ctx)
		defer watcher.Stop()

		fmt.Fprintln(os.Stderr, "Watching for changes... (Ctrl-C to stop)")
		<-ctx.Done()
		return nil
	}

	if !result.Success {
		os.Exit(1)
	}
	return nil
}

// emit writes one result in the configured format and destination.
func emit(cfg *config.Config, res *analyzer.Result) error {
	var out io.Writer = os.Stdout
	if cfg.Output.Path != "" {
		f, err := os.Create(cfg.Output.Path)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	switch cfg.Output.Format {
	case "json":
		return report.WriteJSON(out, res)
	case "markdown":
		return report.WriteMarkdown(out, res)
	default:
		printSummary(out, res, verbose)
		return nil
	}
}

// printSummary is the human-facing console report. verbose expands the
// diagnostics count into the individual entries.
func printSummary(w io.Writer, res *analyzer.Result, verbose bool) {
	if !res.Success {
		if res.Cancelled {
			fmt.Fprintf(w, "✗ Analysis cancelled after %.1fs; partial results:\n", res.Duration.Seconds())
		} else {
			fmt.Fprintf(w, "✗ Analysis failed: %s\n", res.ErrorMessage)
			return
		}
	} else {
		fmt.Fprintf(w, "✓ Analysis complete in %.1fs\n", res.Duration.Seconds())
	}

	fmt.Fprintf(w, "  Source files: %d  Assets: %d\n", res.Stats.SourceFiles, res.Stats.AssetFiles)
	fmt.Fprintf(w, "  Classes: %d  Methods: %d\n", res.Stats.Classes, res.Stats.Methods)
	if res.Stats.MonoBehaviours > 0 || res.Stats.ScriptableObjects > 0 {
		fmt.Fprintf(w, "  MonoBehaviours: %d  ScriptableObjects: %d\n",
			res.Stats.MonoBehaviours, res.Stats.ScriptableObjects)
	}
	fmt.Fprintf(w, "  Dependency edges: %d  Cycles: %d\n", len(res.Edges), len(res.Cycles))
	fmt.Fprintf(w, "  Patterns detected: %d\n", len(res.Patterns))
	if res.Complexity != nil {
		fmt.Fprintf(w, "  High-complexity methods: %d (threshold %d)\n",
			len(res.Complexity.HighMethods), res.Complexity.Threshold)
	}
	if len(res.Diagnostics) > 0 {
		fmt.Fprintf(w, "  Diagnostics: %d\n", len(res.Diagnostics))
		if verbose {
			for _, d := range res.Diagnostics {
				if d.Path != "" {
					fmt.Fprintf(w, "    %s: %s: %s\n", d.Stage, d.Path, d.Message)
				} else {
					fmt.Fprintf(w, "    %s: %s\n", d.Stage, d.Message)
				}
			}
		}
	}

	if len(res.Insights) > 0 {
		fmt.Fprintln(w)
		for _, in := range res.Insights {
			marker := "·"
			if in.Severity >= insight.SeverityHigh {
				marker = "!"
			}
			fmt.Fprintf(w, "  %s [%s/%s] %s\n", marker, in.Category, in.Severity, in.Message)
		}
	}
}
