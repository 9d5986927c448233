package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/mvp-joe/project-glean/internal/scanner"
)

// CLIProgressReporter implements scanner.ProgressReporter with a progress bar.
// Workers call OnFileProcessed concurrently, so bar updates are serialized.
type CLIProgressReporter struct {
	w       io.Writer
	quiet   bool
	mu      sync.Mutex
	fileBar *progressbar.ProgressBar
	skipped int
}

// NewCLIProgressReporter creates a new CLI progress reporter writing to w.
func NewCLIProgressReporter(w io.Writer, quiet bool) *CLIProgressReporter {
	return &CLIProgressReporter{
		w:     w,
		quiet: quiet,
	}
}

func (c *CLIProgressReporter) OnDiscoveryStart() {
	if c.quiet {
		return
	}
	fmt.Fprintln(c.w, "Discovering files...")
}

func (c *CLIProgressReporter) OnDiscoveryComplete(files int) {
	if c.quiet {
		return
	}
	fmt.Fprintf(c.w, "Scanning %s files\n", formatNumber(files))
}

func (c *CLIProgressReporter) OnFileProcessingStart(totalFiles int) {
	if c.quiet || totalFiles == 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.fileBar = progressbar.NewOptions(totalFiles,
		progressbar.OptionSetWriter(c.w),
		progressbar.OptionSetDescription("Scanning files"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(c.w)
		}),
	)
}

func (c *CLIProgressReporter) OnFileProcessed(fileName string) {
	c.advance()
}

func (c *CLIProgressReporter) OnFileSkipped(fileName string, err error) {
	c.mu.Lock()
	c.skipped++
	c.mu.Unlock()
	c.advance()
}

func (c *CLIProgressReporter) advance() {
	if c.quiet {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.fileBar != nil {
		c.fileBar.Add(1)
	}
}

func (c *CLIProgressReporter) OnComplete(report *scanner.Report) {
	if c.quiet {
		return
	}

	c.mu.Lock()
	if c.fileBar != nil {
		c.fileBar.Finish()
		c.fileBar = nil
	}
	c.mu.Unlock()

	fmt.Fprintf(c.w, "✓ Scan complete: %s files in %.1fs\n",
		formatNumber(len(report.Files)),
		report.Duration.Seconds())
}

// Skipped returns how many files were reported as skipped.
func (c *CLIProgressReporter) Skipped() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.skipped
}
