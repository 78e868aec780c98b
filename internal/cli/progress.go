package cli

import (
	"fmt"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
)

// CLIProgressReporter renders pipeline progress as a single bar whose
// description follows the active stage. The analyzer invokes it from two
// concurrent sub-scans, so updates are serialized with a mutex.
type CLIProgressReporter struct {
	mu    sync.Mutex
	quiet bool
	bar   *progressbar.ProgressBar
	last  int
}

// NewCLIProgressReporter creates a new CLI progress reporter.
func NewCLIProgressReporter(quiet bool) *CLIProgressReporter {
	c := &CLIProgressReporter{quiet: quiet}
	if !quiet {
		c.bar = progressbar.NewOptions(100,
			progressbar.OptionSetDescription("Analyzing"),
			progressbar.OptionSetWidth(40),
			progressbar.OptionThrottle(65*time.Millisecond),
			progressbar.OptionShowElapsedTimeOnFinish(),
			progressbar.OptionOnCompletion(func() {
				fmt.Println()
			}),
		)
	}
	return c
}

// Report is the analyzer.ProgressFunc hook.
func (c *CLIProgressReporter) Report(stage string, fraction float64) {
	if c.quiet {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.bar.Describe("Analyzing: " + stage)
	percent := int(fraction * 100)
	if percent > c.last {
		c.bar.Set(percent)
		c.last = percent
	}
}

// Finish completes the bar regardless of the last reported fraction.
func (c *CLIProgressReporter) Finish() {
	if c.quiet {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bar.Finish()
}
