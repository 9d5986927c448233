package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/mvp-joe/project-glean/internal/navigator"
	"github.com/mvp-joe/project-glean/internal/rules"
	"github.com/mvp-joe/project-glean/internal/scanner"
)

// listing is the structured form of a scan written by --format json|yaml.
type listing struct {
	ScanID  string                `json:"scan_id" yaml:"scan_id"`
	Root    string                `json:"root" yaml:"root"`
	Files   int                   `json:"files_scanned" yaml:"files_scanned"`
	Skipped []scanner.SkippedFile `json:"skipped" yaml:"skipped"`
	Sets    []setListing          `json:"sets" yaml:"sets"`
}

type setListing struct {
	Category rules.Category `json:"category" yaml:"category"`
	Status   scanner.Status `json:"status" yaml:"status"`
	Message  string         `json:"message,omitempty" yaml:"message,omitempty"`
	Items    []listingItem  `json:"items" yaml:"items"`
}

type listingItem struct {
	navigator.Selection `yaml:",inline"`
	Path                string `json:"path" yaml:"path"`
	Line                int    `json:"line" yaml:"line"`
	Rule                string `json:"rule" yaml:"rule"`
}

// renderer writes scan results and locations in the configured format.
type renderer struct {
	w      io.Writer
	format string
	color  bool
}

func newRenderer(w io.Writer, format string, useColor bool) *renderer {
	return &renderer{w: w, format: strings.ToLower(format), color: useColor}
}

// Report writes the requested categories of report.
func (r *renderer) Report(report *scanner.Report, categories []rules.Category) error {
	switch r.format {
	case "json", "yaml":
		return r.encode(buildListing(report, categories))
	default:
		r.reportText(report, categories)
		return nil
	}
}

// Location writes a resolved navigation target.
func (r *renderer) Location(loc navigator.OpenLocation) error {
	switch r.format {
	case "json", "yaml":
		return r.encode(loc)
	default:
		_, err := fmt.Fprintln(r.w, loc.String())
		return err
	}
}

func (r *renderer) encode(v interface{}) error {
	if r.format == "yaml" {
		enc := yaml.NewEncoder(r.w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	}

	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode json: %w", err)
	}
	return nil
}

func buildListing(report *scanner.Report, categories []rules.Category) listing {
	l := listing{
		ScanID:  report.ID,
		Root:    report.Root,
		Files:   len(report.Files),
		Skipped: report.Skipped,
		Sets:    make([]setListing, 0, len(categories)),
	}
	if l.Skipped == nil {
		l.Skipped = []scanner.SkippedFile{}
	}

	for _, c := range categories {
		rs := report.Set(c)
		set := setListing{
			Category: c,
			Status:   rs.Status,
			Items:    make([]listingItem, 0, rs.Len()),
		}
		if reason := scanner.EmptyReason(report, rs); reason != nil {
			set.Message = reason.Error()
		}
		for _, o := range rs.Occurrences {
			set.Items = append(set.Items, listingItem{
				Selection: navigator.SelectionFor(o),
				Path:      o.Path,
				Line:      o.Line,
				Rule:      o.Rule,
			})
		}
		l.Sets = append(l.Sets, set)
	}

	return l
}

func (r *renderer) reportText(report *scanner.Report, categories []rules.Category) {
	bold := color.New(color.Bold)
	cyan := color.New(color.FgCyan)
	dim := color.New(color.FgHiBlack)
	yellow := color.New(color.FgYellow)
	// With color enabled, fatih/color still turns itself off for non-terminals.
	if !r.color {
		for _, c := range []*color.Color{bold, cyan, dim, yellow} {
			c.DisableColor()
		}
	}

	for i, c := range categories {
		if i > 0 {
			fmt.Fprintln(r.w)
		}

		rs := report.Set(c)
		bold.Fprintf(r.w, "%s (%s)\n", categoryTitle(c), formatNumber(rs.Len()))

		if reason := scanner.EmptyReason(report, rs); reason != nil {
			dim.Fprintf(r.w, "  %s\n", emptyMessage(c, reason))
			continue
		}

		width := 0
		for _, o := range rs.Occurrences {
			width = max(width, len(navigator.Label(o)))
		}
		for _, o := range rs.Occurrences {
			sel := navigator.SelectionFor(o)
			fmt.Fprintf(r.w, "  %s  %s\n", cyan.Sprintf("%-*s", width, sel.Label), firstLine(sel.Description))
		}
	}

	fmt.Fprintln(r.w)
	fmt.Fprintf(r.w, "%s files scanned", formatNumber(len(report.Files)))
	if n := report.SkippedCount(); n > 0 {
		fmt.Fprint(r.w, ", ")
		yellow.Fprintf(r.w, "%s files skipped", formatNumber(n))
	}
	fmt.Fprintln(r.w)
}

func categoryTitle(c rules.Category) string {
	switch c {
	case rules.Comment:
		return "Comments"
	case rules.Log:
		return "Logs"
	case rules.Todo:
		return "TODOs"
	default:
		return string(c)
	}
}

func emptyMessage(c rules.Category, reason error) string {
	if errors.Is(reason, scanner.ErrCorpusEmpty) {
		return "No files matched the include patterns"
	}
	return fmt.Sprintf("No %s found", categoryTitle(c))
}

// firstLine shortens multi-line text to its first line.
func firstLine(s string) string {
	head, rest, found := strings.Cut(s, "\n")
	if !found {
		return s
	}
	return fmt.Sprintf("%s ... (+%d lines)", strings.TrimRight(head, "\r"), strings.Count(rest, "\n")+1)
}

// formatNumber formats integer with thousand separators.
// Examples: 1234 -> "1,234", 1234567 -> "1,234,567"
func formatNumber(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}

	str := fmt.Sprintf("%d", n)
	var result string
	for i, c := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			result += ","
		}
		result += string(c)
	}
	return result
}
