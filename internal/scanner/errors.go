package scanner

import "errors"

var (
	// ErrCorpusEmpty indicates no files matched the include/ignore globs.
	// Scans report it through empty result sets, never as a returned error.
	ErrCorpusEmpty = errors.New("no files matched")

	// ErrFileUnreadable indicates a file could not be opened or decoded.
	ErrFileUnreadable = errors.New("file unreadable")

	// ErrNoOccurrences indicates a category produced zero matches.
	ErrNoOccurrences = errors.New("no occurrences found")

	// ErrCategoryDisabled indicates a category outside Config.Categories
	// was requested.
	ErrCategoryDisabled = errors.New("category disabled")
)

// EmptyReason explains why a set has no occurrences. It returns nil for
// sets that have occurrences or are still pending.
func EmptyReason(r *Report, rs ResultSet) error {
	if rs.Status != StatusEmpty {
		return nil
	}
	if r != nil && r.CorpusEmpty() {
		return ErrCorpusEmpty
	}
	return ErrNoOccurrences
}
