package scanner

import (
	"time"

	"github.com/mvp-joe/project-glean/internal/rules"
)

// Occurrence is one extracted annotation.
//
// Text is trimmed and never empty. For Todo occurrences Text is the whole
// trimmed line; for Comment and Log occurrences it is the matched substring.
// Line is the 0-based line index where the match starts.
type Occurrence struct {
	Path     string         `json:"path" yaml:"path"`
	RelPath  string         `json:"rel_path" yaml:"rel_path"`
	Category rules.Category `json:"category" yaml:"category"`
	Rule     string         `json:"rule" yaml:"rule"`
	Text     string         `json:"text" yaml:"text"`
	Line     int            `json:"line" yaml:"line"`
}

// Status distinguishes a ResultSet that has not been produced yet from one
// that was produced with zero occurrences.
type Status int

const (
	StatusPending Status = iota
	StatusEmpty
	StatusReady
)

func (s Status) String() string {
	switch s {
	case StatusEmpty:
		return "empty"
	case StatusReady:
		return "ready"
	default:
		return "pending"
	}
}

// MarshalText lets JSON and YAML encoders render the status by name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ResultSet is the ordered collection of occurrences for one category.
// The zero value is a pending set.
type ResultSet struct {
	Category    rules.Category `json:"category" yaml:"category"`
	Status      Status         `json:"status" yaml:"status"`
	Occurrences []Occurrence   `json:"occurrences" yaml:"occurrences"`
}

// Len returns the number of occurrences.
func (rs ResultSet) Len() int {
	return len(rs.Occurrences)
}

// SkippedFile records a file that could not be read or decoded.
type SkippedFile struct {
	Path string `json:"path" yaml:"path"`
	Err  error  `json:"-" yaml:"-"`

	// Reason is Err rendered as text for encoders.
	Reason string `json:"reason" yaml:"reason"`
}

// FileResult is the extraction output for a single file.
type FileResult struct {
	Path        string
	Occurrences []Occurrence
	Err         error
}

// Report is the complete result of one scan.
type Report struct {
	ID       string                       `json:"id" yaml:"id"`
	Root     string                       `json:"root" yaml:"root"`
	Files    []string                     `json:"files" yaml:"files"`
	Skipped  []SkippedFile                `json:"skipped" yaml:"skipped"`
	Sets     map[rules.Category]ResultSet `json:"sets" yaml:"sets"`
	Duration time.Duration                `json:"duration" yaml:"duration"`
}

// Set returns the result set for a category. Categories that were not
// scanned yield a pending set.
func (r *Report) Set(c rules.Category) ResultSet {
	if rs, ok := r.Sets[c]; ok {
		return rs
	}
	return ResultSet{Category: c, Status: StatusPending}
}

// CorpusEmpty reports whether no files matched the include/ignore globs.
func (r *Report) CorpusEmpty() bool {
	return len(r.Files) == 0
}

// SkippedCount returns the number of files that were skipped.
func (r *Report) SkippedCount() int {
	return len(r.Skipped)
}

// Summary holds per-category occurrence counts.
type Summary struct {
	Files    int                    `json:"files" yaml:"files"`
	Skipped  int                    `json:"skipped" yaml:"skipped"`
	Counts   map[rules.Category]int `json:"counts" yaml:"counts"`
	Duration time.Duration          `json:"duration" yaml:"duration"`
}

// Summary returns counts for the report.
func (r *Report) Summary() Summary {
	s := Summary{
		Files:    len(r.Files),
		Skipped:  len(r.Skipped),
		Counts:   make(map[rules.Category]int, len(r.Sets)),
		Duration: r.Duration,
	}
	for c, rs := range r.Sets {
		s.Counts[c] = rs.Len()
	}
	return s
}
