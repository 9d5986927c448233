// Package navigator maps a displayed TODO item back to its source location.
//
// A TODO occurrence is displayed as a label ("<relpath>:<1-based line>") with
// the trimmed line text as description. Resolve recovers the occurrence from
// that pair; Navigate additionally checks the file can still be opened and
// returns an OpenLocation command for the host to carry out.
package navigator

import (
	"errors"
	"fmt"
	"os"

	"github.com/mvp-joe/project-glean/internal/scanner"
)

var (
	// ErrNotFound indicates the selection does not identify exactly one
	// occurrence in the result set.
	ErrNotFound = errors.New("selection not found")

	// ErrTargetGone indicates the resolved file can no longer be opened.
	ErrTargetGone = errors.New("navigation target no longer available")
)

// Selection is what the user picked from a rendered list.
type Selection struct {
	Label       string `json:"label" yaml:"label"`
	Description string `json:"description" yaml:"description"`
}

// OpenLocation is the command a host dispatches to move the caret: open Path,
// place the caret at (Line, Column) and reveal it. Line is 0-based.
type OpenLocation struct {
	Path   string `json:"path" yaml:"path"`
	Line   int    `json:"line" yaml:"line"`
	Column int    `json:"column" yaml:"column"`
}

// String renders the location as "path:line:col" with 1-based line and
// column, the form most editors accept on the command line.
func (l OpenLocation) String() string {
	return fmt.Sprintf("%s:%d:%d", l.Path, l.Line+1, l.Column+1)
}

// Label builds the display label for an occurrence.
func Label(o scanner.Occurrence) string {
	return fmt.Sprintf("%s:%d", o.RelPath, o.Line+1)
}

// SelectionFor builds the selection a renderer would display for o.
func SelectionFor(o scanner.Occurrence) Selection {
	return Selection{Label: Label(o), Description: o.Text}
}

// Resolve finds the occurrence the selection was built from. The label is
// the primary key; the description must also equal the occurrence's text.
// If more than one occurrence reconstructs to the label, the selection is
// ambiguous and ErrNotFound is returned rather than guessing.
func Resolve(sel Selection, rs scanner.ResultSet) (scanner.Occurrence, error) {
	var (
		match scanner.Occurrence
		hits  int
	)
	for _, o := range rs.Occurrences {
		if Label(o) != sel.Label {
			continue
		}
		hits++
		if hits > 1 {
			return scanner.Occurrence{}, fmt.Errorf("%w: label %q is ambiguous", ErrNotFound, sel.Label)
		}
		match = o
	}

	if hits == 0 {
		return scanner.Occurrence{}, fmt.Errorf("%w: no item labelled %q", ErrNotFound, sel.Label)
	}
	if match.Text != sel.Description {
		return scanner.Occurrence{}, fmt.Errorf("%w: %q no longer reads %q", ErrNotFound, sel.Label, sel.Description)
	}
	return match, nil
}

// Navigate resolves the selection and confirms the file can still be opened.
// It never returns a location for the wrong occurrence: on any failure the
// host must take no navigation action.
func Navigate(sel Selection, rs scanner.ResultSet) (OpenLocation, error) {
	o, err := Resolve(sel, rs)
	if err != nil {
		return OpenLocation{}, err
	}

	f, err := os.Open(o.Path)
	if err != nil {
		return OpenLocation{}, fmt.Errorf("%w: %w", ErrTargetGone, err)
	}
	f.Close()

	return OpenLocation{Path: o.Path, Line: o.Line, Column: 0}, nil
}
