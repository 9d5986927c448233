package scanner

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/mvp-joe/project-glean/internal/rules"
)

// Config holds the inputs of a scan.
type Config struct {
	RootDir         string
	IncludePatterns []string
	IgnorePatterns  []string

	// Workers bounds concurrent file extractions. Zero means runtime.NumCPU().
	Workers int

	// Categories restricts the scan. Empty means every category.
	Categories []rules.Category
}

// Restrict returns a copy of c scanning only categories. Every requested
// category must be enabled in c; an empty c.Categories enables all.
func (c Config) Restrict(categories ...rules.Category) (Config, error) {
	if len(c.Categories) > 0 {
		enabled := make(map[rules.Category]bool, len(c.Categories))
		for _, cat := range c.Categories {
			enabled[cat] = true
		}
		for _, cat := range categories {
			if !enabled[cat] {
				return Config{}, fmt.Errorf("%w: %s (enabled: %s)", ErrCategoryDisabled, cat, joinCategories(c.Categories))
			}
		}
	}

	out := c
	out.Categories = append([]rules.Category(nil), categories...)
	return out, nil
}

func joinCategories(cats []rules.Category) string {
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

// Scanner runs enumerate → extract → aggregate for one workspace.
type Scanner struct {
	config    Config
	discovery *FileDiscovery
	registry  *rules.Registry
	logger    *log.Logger
	progress  ProgressReporter
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithLogger sets the logger. The default discards output.
func WithLogger(l *log.Logger) Option {
	return func(s *Scanner) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithProgress sets the progress reporter.
func WithProgress(p ProgressReporter) Option {
	return func(s *Scanner) {
		if p != nil {
			s.progress = p
		}
	}
}

// New creates a Scanner. The registry is shared, never copied or mutated.
func New(cfg Config, reg *rules.Registry, opts ...Option) (*Scanner, error) {
	if reg == nil {
		return nil, fmt.Errorf("rule registry is required")
	}
	if cfg.RootDir == "" {
		return nil, fmt.Errorf("root directory is required")
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if len(cfg.Categories) == 0 {
		cfg.Categories = rules.Categories
	}

	discovery, err := NewFileDiscovery(cfg.RootDir, cfg.IncludePatterns, cfg.IgnorePatterns)
	if err != nil {
		return nil, fmt.Errorf("failed to compile glob patterns: %w", err)
	}

	s := &Scanner{
		config:    cfg,
		discovery: discovery,
		registry:  reg,
		logger:    log.New(io.Discard),
		progress:  &NoOpProgressReporter{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Scan enumerates the corpus and extracts from every file with bounded
// parallelism. Results are reassembled in enumeration order, so the output
// does not depend on completion order. Unreadable files are skipped and
// listed in the report. If ctx is cancelled, Scan returns ctx.Err() and no
// report.
func (s *Scanner) Scan(ctx context.Context) (*Report, error) {
	startTime := time.Now()

	s.progress.OnDiscoveryStart()
	files, err := s.discovery.DiscoverFiles()
	if err != nil {
		return nil, fmt.Errorf("failed to discover files: %w", err)
	}
	s.progress.OnDiscoveryComplete(len(files))
	s.logger.Debug("discovered files", "root", s.config.RootDir, "count", len(files))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Each worker writes only its own slot.
	results := make([]FileResult, len(files))

	s.progress.OnFileProcessingStart(len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = s.extract(path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sets, skipped := Aggregate(results, s.config.Categories...)

	report := &Report{
		ID:       uuid.NewString(),
		Root:     s.config.RootDir,
		Files:    files,
		Skipped:  skipped,
		Sets:     sets,
		Duration: time.Since(startTime),
	}

	s.logger.Info("scan complete",
		"files", len(files),
		"skipped", len(skipped),
		"took", report.Duration.Round(time.Millisecond))
	s.progress.OnComplete(report)
	return report, nil
}

func (s *Scanner) extract(path string) FileResult {
	relPath := s.discovery.RelPath(path)
	occs, err := ExtractFile(path, relPath, s.registry, s.config.Categories...)
	if err != nil {
		s.logger.Warn("skipping file", "path", relPath, "err", err)
		s.progress.OnFileSkipped(path, err)
		return FileResult{Path: path, Err: err}
	}
	s.progress.OnFileProcessed(path)
	return FileResult{Path: path, Occurrences: occs}
}
