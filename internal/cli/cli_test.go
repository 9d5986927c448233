package cli

// Test Plan for CLI commands:
// - runScan renders text with labels, descriptions and a scanned-files footer
// - runScan renders explicit empty states (no files vs no matches)
// - runScan reports skipped files in the footer
// - runScan and runGoto refuse categories disabled by scan.categories
// - runScan emits JSON and YAML listings with scan id, status and items
// - runGoto prints "path:line:col" for a live TODO and JSON on request
// - runGoto fails with navigator errors for stale selections and deleted files
// - options.load applies --format/--no-color overrides and validates them
// - options.load honors --config
// - CLIProgressReporter writes discovery and completion lines, stays silent when quiet
// - formatNumber, firstLine and categoryTitle helpers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/mvp-joe/project-glean/internal/config"
	"github.com/mvp-joe/project-glean/internal/navigator"
	"github.com/mvp-joe/project-glean/internal/rules"
	"github.com/mvp-joe/project-glean/internal/scanner"
)

func writeWorkspace(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return dir
}

func testOptions(dir string) options {
	return options{root: dir, quiet: true, noColor: true}
}

func TestRunScan_TextOutput(t *testing.T) {
	dir := writeWorkspace(t, map[string]string{
		"app.js":   "// TODO: refactor\nconsole.log(\"hi\")\n",
		"lib/x.py": "x = 1\n# todo later\n",
	})

	var stdout, stderr bytes.Buffer
	err := runScan(context.Background(), testOptions(dir), rules.Todo, &stdout, &stderr)
	require.NoError(t, err)

	out := stdout.String()
	assert.Contains(t, out, "TODOs (2)")
	assert.Contains(t, out, "app.js:1")
	assert.Contains(t, out, "// TODO: refactor")
	assert.Contains(t, out, "lib/x.py:2")
	assert.Contains(t, out, "# todo later")
	assert.Contains(t, out, "2 files scanned")
	assert.NotContains(t, out, "skipped")
	assert.NotContains(t, out, "\x1b[", "color must be disabled")

	assert.Less(t, strings.Index(out, "app.js:1"), strings.Index(out, "lib/x.py:2"))
}

func TestRunScan_EmptyStates(t *testing.T) {
	t.Run("no files", func(t *testing.T) {
		dir := writeWorkspace(t, map[string]string{"notes.txt": "TODO"})

		var stdout, stderr bytes.Buffer
		require.NoError(t, runScan(context.Background(), testOptions(dir), rules.Todo, &stdout, &stderr))

		assert.Contains(t, stdout.String(), "TODOs (0)")
		assert.Contains(t, stdout.String(), "No files matched the include patterns")
		assert.Contains(t, stdout.String(), "0 files scanned")
	})

	t.Run("no matches", func(t *testing.T) {
		dir := writeWorkspace(t, map[string]string{"a.go": "package a\n"})

		var stdout, stderr bytes.Buffer
		require.NoError(t, runScan(context.Background(), testOptions(dir), rules.Log, &stdout, &stderr))

		assert.Contains(t, stdout.String(), "Logs (0)")
		assert.Contains(t, stdout.String(), "No Logs found")
		assert.Contains(t, stdout.String(), "1 files scanned")
	})
}

func TestRunScan_ReportsSkippedFiles(t *testing.T) {
	dir := writeWorkspace(t, map[string]string{
		"a.go":   "// hello\n",
		"bin.go": "\x00\x01\x02binary",
	})

	var stdout, stderr bytes.Buffer
	require.NoError(t, runScan(context.Background(), testOptions(dir), rules.Comment, &stdout, &stderr))

	assert.Contains(t, stdout.String(), "Comments (1)")
	assert.Contains(t, stdout.String(), "2 files scanned, 1 files skipped")
	assert.Contains(t, stderr.String(), "skipping file")
}

func TestRunScan_JSONOutput(t *testing.T) {
	dir := writeWorkspace(t, map[string]string{
		"app.js": "/* one\n   two */\nconsole.log(1)\n",
	})
	opts := testOptions(dir)
	opts.format = "json"

	var stdout, stderr bytes.Buffer
	require.NoError(t, runScan(context.Background(), opts, rules.Comment, &stdout, &stderr))

	var got struct {
		ScanID string `json:"scan_id"`
		Files  int    `json:"files_scanned"`
		Sets   []struct {
			Category string `json:"category"`
			Status   string `json:"status"`
			Items    []struct {
				Label       string `json:"label"`
				Description string `json:"description"`
				Line        int    `json:"line"`
			} `json:"items"`
		} `json:"sets"`
	}
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &got))

	assert.NotEmpty(t, got.ScanID)
	assert.Equal(t, 1, got.Files)
	require.Len(t, got.Sets, 1)
	assert.Equal(t, "comment", got.Sets[0].Category)
	assert.Equal(t, "ready", got.Sets[0].Status)
	require.Len(t, got.Sets[0].Items, 1)
	assert.Equal(t, "app.js:1", got.Sets[0].Items[0].Label)
	assert.Equal(t, "/* one\n   two */", got.Sets[0].Items[0].Description)
	assert.Equal(t, 0, got.Sets[0].Items[0].Line)
}

func TestRunScan_YAMLOutput(t *testing.T) {
	dir := writeWorkspace(t, map[string]string{"main.go": "package main\n"})
	opts := testOptions(dir)
	opts.format = "YAML"

	var stdout, stderr bytes.Buffer
	require.NoError(t, runScan(context.Background(), opts, rules.Todo, &stdout, &stderr))

	var got struct {
		Sets []struct {
			Category string        `yaml:"category"`
			Status   string        `yaml:"status"`
			Message  string        `yaml:"message"`
			Items    []interface{} `yaml:"items"`
		} `yaml:"sets"`
	}
	require.NoError(t, yaml.Unmarshal(stdout.Bytes(), &got))
	require.Len(t, got.Sets, 1)
	assert.Equal(t, "todo", got.Sets[0].Category)
	assert.Equal(t, "empty", got.Sets[0].Status)
	assert.Equal(t, scanner.ErrNoOccurrences.Error(), got.Sets[0].Message)
	assert.Empty(t, got.Sets[0].Items)
}

func TestRunGoto(t *testing.T) {
	dir := writeWorkspace(t, map[string]string{
		"a.go": "package a\n\n// TODO fix\n",
		"b.go": "package b\n\n// TODO fix\n",
	})

	t.Run("text location", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		sel := navigator.Selection{Label: "b.go:3", Description: "// TODO fix"}
		require.NoError(t, runGoto(context.Background(), testOptions(dir), sel, &stdout, &stderr))
		assert.Equal(t, filepath.Join(dir, "b.go")+":3:1\n", stdout.String())
	})

	t.Run("json location", func(t *testing.T) {
		opts := testOptions(dir)
		opts.format = "json"

		var stdout, stderr bytes.Buffer
		sel := navigator.Selection{Label: "a.go:3", Description: "// TODO fix"}
		require.NoError(t, runGoto(context.Background(), opts, sel, &stdout, &stderr))

		var loc navigator.OpenLocation
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &loc))
		assert.Equal(t, navigator.OpenLocation{Path: filepath.Join(dir, "a.go"), Line: 2, Column: 0}, loc)
	})

	t.Run("stale description", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		sel := navigator.Selection{Label: "a.go:3", Description: "// TODO something else"}
		err := runGoto(context.Background(), testOptions(dir), sel, &stdout, &stderr)
		assert.ErrorIs(t, err, navigator.ErrNotFound)
		assert.Empty(t, stdout.String())
	})

	t.Run("unknown label", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		sel := navigator.Selection{Label: "c.go:3", Description: "// TODO fix"}
		err := runGoto(context.Background(), testOptions(dir), sel, &stdout, &stderr)
		assert.ErrorIs(t, err, navigator.ErrNotFound)
		assert.Empty(t, stdout.String())
	})
}

func TestRunScan_CancelledContext(t *testing.T) {
	dir := writeWorkspace(t, map[string]string{"a.go": "// TODO\n"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var stdout, stderr bytes.Buffer
	err := runScan(ctx, testOptions(dir), rules.Todo, &stdout, &stderr)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, stdout.String())
}

func TestRunScan_DisabledCategory(t *testing.T) {
	dir := writeWorkspace(t, map[string]string{
		"a.go":              "// hello comment\n// TODO keep\n",
		".glean/config.yml": "scan:\n  categories: [todo]\n",
	})

	var stdout, stderr bytes.Buffer
	err := runScan(context.Background(), testOptions(dir), rules.Comment, &stdout, &stderr)
	require.ErrorIs(t, err, scanner.ErrCategoryDisabled)
	assert.Empty(t, stdout.String())

	stdout.Reset()
	err = runScan(context.Background(), testOptions(dir), rules.Todo, &stdout, &stderr)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "TODOs (1)")
	assert.NotContains(t, stdout.String(), "hello comment")
}

func TestRunGoto_TodoDisabled(t *testing.T) {
	dir := writeWorkspace(t, map[string]string{
		"a.go":              "// TODO keep\n",
		".glean/config.yml": "scan:\n  categories: [comment, log]\n",
	})

	var stdout, stderr bytes.Buffer
	sel := navigator.Selection{Label: "a.go:1", Description: "// TODO keep"}
	err := runGoto(context.Background(), testOptions(dir), sel, &stdout, &stderr)
	assert.ErrorIs(t, err, scanner.ErrCategoryDisabled)
	assert.Empty(t, stdout.String())
}

func TestOptionsLoad(t *testing.T) {
	dir := t.TempDir()

	t.Run("format override", func(t *testing.T) {
		opts := testOptions(dir)
		opts.format = "JSON"
		root, cfg, err := opts.load()
		require.NoError(t, err)
		assert.Equal(t, dir, root)
		assert.Equal(t, "json", cfg.Output.Format)
		assert.False(t, cfg.Output.Color)
	})

	t.Run("invalid format", func(t *testing.T) {
		opts := testOptions(dir)
		opts.format = "xml"
		_, _, err := opts.load()
		assert.ErrorIs(t, err, config.ErrInvalidFormat)
	})

	t.Run("explicit config file", func(t *testing.T) {
		path := filepath.Join(dir, "glean.yml")
		require.NoError(t, os.WriteFile(path, []byte("scan:\n  workers: 3\noutput:\n  format: yaml\n"), 0644))

		opts := testOptions(dir)
		opts.configFile = path
		_, cfg, err := opts.load()
		require.NoError(t, err)
		assert.Equal(t, 3, cfg.Scan.Workers)
		assert.Equal(t, "yaml", cfg.Output.Format)
	})

	t.Run("missing config file", func(t *testing.T) {
		opts := testOptions(dir)
		opts.configFile = filepath.Join(dir, "nope.yml")
		_, _, err := opts.load()
		assert.Error(t, err)
	})
}

func TestCLIProgressReporter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := NewCLIProgressReporter(&buf, false)

	p.OnDiscoveryStart()
	p.OnDiscoveryComplete(3)
	p.OnFileProcessingStart(3)

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.OnFileProcessed("f.go")
		}()
	}
	wg.Wait()
	p.OnFileSkipped("bad.go", errors.New("unreadable"))
	p.OnComplete(&scanner.Report{Files: []string{"a", "b", "c"}})

	out := buf.String()
	assert.Contains(t, out, "Discovering files...")
	assert.Contains(t, out, "Scanning 3 files")
	assert.Contains(t, out, "✓ Scan complete: 3 files")
	assert.Equal(t, 1, p.Skipped())
}

func TestCLIProgressReporter_Quiet(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := NewCLIProgressReporter(&buf, true)

	p.OnDiscoveryStart()
	p.OnDiscoveryComplete(1)
	p.OnFileProcessingStart(1)
	p.OnFileProcessed("a.go")
	p.OnComplete(&scanner.Report{Files: []string{"a.go"}})

	assert.Empty(t, buf.String())
}

func TestFormatNumber(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0", formatNumber(0))
	assert.Equal(t, "999", formatNumber(999))
	assert.Equal(t, "1,234", formatNumber(1234))
	assert.Equal(t, "1,234,567", formatNumber(1234567))
}

func TestFirstLine(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "// one", firstLine("// one"))
	assert.Equal(t, "/* a ... (+2 lines)", firstLine("/* a\n b\n c */"))
}

func TestCategoryTitle(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Comments", categoryTitle(rules.Comment))
	assert.Equal(t, "Logs", categoryTitle(rules.Log))
	assert.Equal(t, "TODOs", categoryTitle(rules.Todo))
}
