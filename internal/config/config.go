// Package config provides configuration loading for glean.
//
// Configuration Hierarchy (highest to lowest priority):
//  1. Environment variables (GLEAN_*)
//  2. Project config (.glean/config.yml or .glean/config.yaml), or an
//     explicit file given with --config
//  3. Built-in defaults
//
// Environment Variable Convention:
//   - Prefix: GLEAN_
//   - Nested fields: Use underscores (GLEAN_SCAN_WORKERS)
package config

import (
	"time"

	"github.com/mvp-joe/project-glean/internal/rules"
	"github.com/mvp-joe/project-glean/internal/scanner"
)

// DefaultExtensions is the set of source-file extensions scanned by default.
var DefaultExtensions = []string{
	"js", "ts", "jsx", "tsx", "java", "py", "html", "css", "cpp", "c", "cs", "php", "rb", "go",
}

// Config represents the complete glean configuration.
type Config struct {
	Paths  PathsConfig  `yaml:"paths" mapstructure:"paths"`
	Scan   ScanConfig   `yaml:"scan" mapstructure:"scan"`
	Output OutputConfig `yaml:"output" mapstructure:"output"`
	MCP    MCPConfig    `yaml:"mcp" mapstructure:"mcp"`
}

// PathsConfig defines which files to scan and which to ignore.
type PathsConfig struct {
	Include []string `yaml:"include" mapstructure:"include"` // glob patterns for scanned files
	Ignore  []string `yaml:"ignore" mapstructure:"ignore"`   // glob patterns to ignore
}

// ScanConfig controls extraction.
type ScanConfig struct {
	Workers    int      `yaml:"workers" mapstructure:"workers"`       // 0 means one per CPU
	Categories []string `yaml:"categories" mapstructure:"categories"` // comment, log, todo
}

// OutputConfig controls how results are rendered by the CLI.
type OutputConfig struct {
	Format string `yaml:"format" mapstructure:"format"` // text, json or yaml
	Color  bool   `yaml:"color" mapstructure:"color"`
}

// MCPConfig bounds the scans retained by the MCP server for resolution.
type MCPConfig struct {
	SessionCapacity int           `yaml:"session_capacity" mapstructure:"session_capacity"`
	SessionTTL      time.Duration `yaml:"session_ttl" mapstructure:"session_ttl"`
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	include := make([]string, 0, len(DefaultExtensions))
	for _, ext := range DefaultExtensions {
		include = append(include, "**/*."+ext)
	}

	return &Config{
		Paths: PathsConfig{
			Include: include,
			Ignore: []string{
				"**/node_modules/**",
				"**/vendor/**",
				"**/bower_components/**",
				"**/.git/**",
			},
		},
		Scan: ScanConfig{
			Workers:    0,
			Categories: []string{"comment", "log", "todo"},
		},
		Output: OutputConfig{
			Format: "text",
			Color:  true,
		},
		MCP: MCPConfig{
			SessionCapacity: 32,
			SessionTTL:      30 * time.Minute,
		},
	}
}

// ParsedCategories converts Scan.Categories into rule categories.
// Call Validate first; unknown names are skipped here.
func (c *Config) ParsedCategories() []rules.Category {
	var out []rules.Category
	seen := make(map[rules.Category]bool)
	for _, name := range c.Scan.Categories {
		cat, err := rules.ParseCategory(name)
		if err != nil || seen[cat] {
			continue
		}
		seen[cat] = true
		out = append(out, cat)
	}
	return out
}

// ToScannerConfig converts a Config to a scanner.Config.
// The rootDir parameter specifies the workspace root to scan.
func (c *Config) ToScannerConfig(rootDir string) scanner.Config {
	return scanner.Config{
		RootDir:         rootDir,
		IncludePatterns: c.Paths.Include,
		IgnorePatterns:  c.Paths.Ignore,
		Workers:         c.Scan.Workers,
		Categories:      c.ParsedCategories(),
	}
}
