package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mvp-joe/project-glean/internal/config"
)

var (
	cfgFile     string
	verbose     bool
	rootFlag    string
	quietFlag   bool
	formatFlag  string
	noColorFlag bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "glean",
	Short: "Glean - list comments, logging statements and TODOs in a workspace",
	Long: `Glean scans the source files of a workspace and lists three kinds of
annotations: comments, logging statements and TODO lines.

Every item is shown as "<relative path>:<line>" followed by its text. TODO
items can be turned back into a source location with "glean goto".

Configuration is read from .glean/config.yml in the workspace root and from
GLEAN_* environment variables.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is <root>/.glean/config.yml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&rootFlag, "root", "C", "", "workspace root (default is the current directory)")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "disable progress bars")
	rootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "", "output format: "+strings.Join(config.Formats, ", "))
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "disable colored output")
}

// options carries the resolved global flags into a command run.
type options struct {
	root       string
	configFile string
	format     string
	noColor    bool
	quiet      bool
	verbose    bool
}

// currentOptions snapshots the global flags.
func currentOptions() options {
	return options{
		root:       rootFlag,
		configFile: cfgFile,
		format:     formatFlag,
		noColor:    noColorFlag,
		quiet:      quietFlag,
		verbose:    verbose,
	}
}

// load resolves the workspace root and loads its configuration, applying
// command-line overrides on top of file and environment settings.
func (o options) load() (string, *config.Config, error) {
	root := o.root
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		root = wd
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return "", nil, fmt.Errorf("failed to resolve root: %w", err)
	}

	loader := config.NewLoader(root)
	if o.configFile != "" {
		loader = config.NewFileLoader(root, o.configFile)
	}
	cfg, err := loader.Load()
	if err != nil {
		return "", nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if o.format != "" {
		cfg.Output.Format = strings.ToLower(o.format)
	}
	if o.noColor {
		cfg.Output.Color = false
	}
	if err := config.Validate(cfg); err != nil {
		return "", nil, err
	}

	return root, cfg, nil
}

// newLogger returns the diagnostics logger. Stdout stays reserved for results.
func newLogger(w io.Writer, verbose bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{Prefix: "glean"})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.WarnLevel)
	}
	return logger
}

// withInterrupt returns a context cancelled on SIGINT or SIGTERM.
func withInterrupt(ctx context.Context, stderr io.Writer) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-sigChan:
			fmt.Fprintln(stderr, "\nInterrupted! Cancelling scan...")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigChan)
	}()

	return ctx, cancel
}
