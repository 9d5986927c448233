package mcp

// Implementation Plan:
// 1. Server struct with session store and metrics
// 2. NewServer - wires config into a workspace runner and registers tools
// 3. Serve - starts MCP server on stdio with graceful shutdown
// 4. Graceful shutdown on SIGTERM/SIGINT
// 5. Close - releases the session store

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mvp-joe/project-glean/internal/config"
	"github.com/mvp-joe/project-glean/internal/rules"
	"github.com/mvp-joe/project-glean/internal/scanner"
	"github.com/mvp-joe/project-glean/internal/session"
)

// ScanRunner runs one scan of the workspace restricted to categories.
type ScanRunner interface {
	Scan(ctx context.Context, categories ...rules.Category) (*scanner.Report, error)
}

// ScanRunnerFunc adapts a function to ScanRunner.
type ScanRunnerFunc func(ctx context.Context, categories ...rules.Category) (*scanner.Report, error)

// Scan calls f.
func (f ScanRunnerFunc) Scan(ctx context.Context, categories ...rules.Category) (*scanner.Report, error) {
	return f(ctx, categories...)
}

// NewWorkspaceRunner returns a runner that builds a fresh Scanner per call,
// so every tool invocation sees the files as they are on disk. Requesting a
// category disabled in cfg fails with scanner.ErrCategoryDisabled.
func NewWorkspaceRunner(cfg scanner.Config, reg *rules.Registry, opts ...scanner.Option) ScanRunner {
	return ScanRunnerFunc(func(ctx context.Context, categories ...rules.Category) (*scanner.Report, error) {
		c, err := cfg.Restrict(categories...)
		if err != nil {
			return nil, err
		}
		s, err := scanner.New(c, reg, opts...)
		if err != nil {
			return nil, err
		}
		return s.Scan(ctx)
	})
}

// Server manages the MCP server lifecycle.
type Server struct {
	root    string
	store   *session.Store
	metrics *ScanMetrics
	logger  *log.Logger
	mcp     *server.MCPServer
}

// NewServer creates an MCP server for the workspace at rootDir.
// A nil logger discards output; stdout is reserved for the protocol.
func NewServer(cfg *config.Config, rootDir, version string, logger *log.Logger) (*Server, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	store, err := session.NewStore(cfg.MCP.SessionCapacity, cfg.MCP.SessionTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to create session store: %w", err)
	}

	runner := NewWorkspaceRunner(cfg.ToScannerConfig(rootDir), rules.Default(), scanner.WithLogger(logger))
	return newServer(rootDir, version, runner, store, logger), nil
}

func newServer(rootDir, version string, runner ScanRunner, store *session.Store, logger *log.Logger) *Server {
	metrics := NewScanMetrics()

	mcpServer := server.NewMCPServer(
		"glean",
		version,
		server.WithToolCapabilities(true),
	)

	for _, c := range rules.Categories {
		AddScanTool(mcpServer, c, runner, store, metrics)
	}
	AddResolveTodoTool(mcpServer, store)
	AddStatusTool(mcpServer, rootDir, metrics)

	return &Server{
		root:    rootDir,
		store:   store,
		metrics: metrics,
		logger:  logger,
		mcp:     mcpServer,
	}
}

// Serve starts the MCP server and blocks until shutdown.
func (s *Server) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting MCP server on stdio", "root", s.root)
		if err := server.ServeStdio(s.mcp); err != nil {
			errCh <- fmt.Errorf("MCP server error: %w", err)
		}
	}()

	select {
	case <-sigCh:
		s.logger.Info("received shutdown signal, stopping")
		return nil
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Metrics returns a snapshot of the scans run so far.
func (s *Server) Metrics() MetricsSnapshot {
	return s.metrics.GetMetrics()
}

// Close releases all resources.
func (s *Server) Close() error {
	if s.store != nil {
		s.store.Close()
	}
	return nil
}
