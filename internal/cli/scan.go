package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/project-glean/internal/config"
	"github.com/mvp-joe/project-glean/internal/rules"
	"github.com/mvp-joe/project-glean/internal/scanner"
)

var scanCommands = []struct {
	category rules.Category
	use      string
	short    string
	example  string
}{
	{rules.Comment, "comments", "List every comment in the workspace", "glean comments --format json"},
	{rules.Log, "logs", "List every logging statement in the workspace", "glean logs -C ./service"},
	{rules.Todo, "todos", "List every TODO line in the workspace", "glean todos --quiet"},
}

func init() {
	for _, sc := range scanCommands {
		rootCmd.AddCommand(&cobra.Command{
			Use:     sc.use,
			Short:   sc.short,
			Example: "  " + sc.example,
			Args:    cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx, cancel := withInterrupt(cmd.Context(), cmd.ErrOrStderr())
				defer cancel()
				return runScan(ctx, currentOptions(), sc.category, cmd.OutOrStdout(), cmd.ErrOrStderr())
			},
		})
	}
}

// runScan scans the workspace for one category and renders the result.
func runScan(ctx context.Context, opts options, category rules.Category, stdout, stderr io.Writer) error {
	report, cfg, err := scanWorkspace(ctx, opts, category, stderr)
	if err != nil {
		return err
	}

	r := newRenderer(stdout, cfg.Output.Format, cfg.Output.Color)
	return r.Report(report, []rules.Category{category})
}

// scanWorkspace loads configuration and runs one scan restricted to
// category. Progress goes to stderr unless quiet.
func scanWorkspace(ctx context.Context, opts options, category rules.Category, stderr io.Writer) (*scanner.Report, *config.Config, error) {
	root, cfg, err := opts.load()
	if err != nil {
		return nil, nil, err
	}

	logger := newLogger(stderr, opts.verbose)
	logger.Debug("loaded configuration", "root", root, "format", cfg.Output.Format)

	sc, err := cfg.ToScannerConfig(root).Restrict(category)
	if err != nil {
		return nil, nil, err
	}

	s, err := scanner.New(sc, rules.Default(),
		scanner.WithLogger(logger),
		scanner.WithProgress(NewCLIProgressReporter(stderr, opts.quiet)),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create scanner: %w", err)
	}

	report, err := s.Scan(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("scan failed: %w", err)
	}

	return report, cfg, nil
}
