package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gobwas/glob"

	"github.com/mvp-joe/project-glean/internal/rules"
)

var (
	// ErrEmptyInclude indicates no include patterns were configured
	ErrEmptyInclude = errors.New("empty include patterns")

	// ErrInvalidPattern indicates a glob pattern that does not compile
	ErrInvalidPattern = errors.New("invalid glob pattern")

	// ErrInvalidWorkers indicates a negative worker count
	ErrInvalidWorkers = errors.New("invalid worker count")

	// ErrInvalidCategory indicates an unknown scan category
	ErrInvalidCategory = errors.New("invalid category")

	// ErrInvalidFormat indicates an unsupported output format
	ErrInvalidFormat = errors.New("invalid output format")

	// ErrInvalidSession indicates invalid MCP session settings
	ErrInvalidSession = errors.New("invalid session settings")
)

// Formats lists the supported output formats.
var Formats = []string{"text", "json", "yaml"}

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	if err := validatePaths(&cfg.Paths); err != nil {
		errs = append(errs, err)
	}
	if err := validateScan(&cfg.Scan); err != nil {
		errs = append(errs, err)
	}
	if err := validateOutput(&cfg.Output); err != nil {
		errs = append(errs, err)
	}
	if err := validateMCP(&cfg.MCP); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validatePaths(cfg *PathsConfig) error {
	var errs []error

	if len(cfg.Include) == 0 {
		errs = append(errs, fmt.Errorf("%w: at least one include pattern required", ErrEmptyInclude))
	}

	for _, p := range append(append([]string{}, cfg.Include...), cfg.Ignore...) {
		if _, err := glob.Compile(p, '/'); err != nil {
			errs = append(errs, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, p, err))
		}
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateScan(cfg *ScanConfig) error {
	var errs []error

	if cfg.Workers < 0 {
		errs = append(errs, fmt.Errorf("%w: workers cannot be negative, got %d", ErrInvalidWorkers, cfg.Workers))
	}

	if len(cfg.Categories) == 0 {
		errs = append(errs, fmt.Errorf("%w: at least one category required", ErrInvalidCategory))
	}
	for _, name := range cfg.Categories {
		if _, err := rules.ParseCategory(name); err != nil {
			errs = append(errs, fmt.Errorf("%w: %v", ErrInvalidCategory, err))
		}
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateOutput(cfg *OutputConfig) error {
	format := strings.ToLower(cfg.Format)
	for _, f := range Formats {
		if format == f {
			return nil
		}
	}
	return fmt.Errorf("%w: must be one of %s, got '%s'", ErrInvalidFormat, strings.Join(Formats, ", "), cfg.Format)
}

func validateMCP(cfg *MCPConfig) error {
	var errs []error

	if cfg.SessionCapacity <= 0 {
		errs = append(errs, fmt.Errorf("%w: session_capacity must be positive, got %d", ErrInvalidSession, cfg.SessionCapacity))
	}
	if cfg.SessionTTL <= 0 {
		errs = append(errs, fmt.Errorf("%w: session_ttl must be positive, got %s", ErrInvalidSession, cfg.SessionTTL))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

// joinErrors combines multiple errors into a single error with clear
// formatting. Wrapped sentinels remain reachable through errors.Is.
func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	if len(errs) == 1 {
		return errs[0]
	}

	var msgs []string
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}

	return &validationError{msg: "validation failed:\n  - " + strings.Join(msgs, "\n  - "), errs: errs}
}

type validationError struct {
	msg  string
	errs []error
}

func (e *validationError) Error() string   { return e.msg }
func (e *validationError) Unwrap() []error { return e.errs }
