package scanner

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/mvp-joe/project-glean/internal/rules"
)

// binarySniffLen is how many leading bytes are checked for NUL.
const binarySniffLen = 512

// Extract applies the registry to one file's text. Comment and Log rules run
// over the full text, in registry order, and every non-overlapping match
// becomes an occurrence. The Todo rule runs per physical line and yields at
// most one occurrence per line. Matches that are blank after trimming are
// dropped.
func Extract(path, relPath, content string, reg *rules.Registry, categories ...rules.Category) []Occurrence {
	if len(categories) == 0 {
		categories = rules.Categories
	}

	var out []Occurrence
	for _, c := range categories {
		if c == rules.Todo {
			out = append(out, extractLines(path, relPath, content, reg.Rules(c))...)
			continue
		}
		out = append(out, extractMatches(path, relPath, content, reg.Rules(c))...)
	}
	return out
}

func extractMatches(path, relPath, content string, rs []rules.Rule) []Occurrence {
	var out []Occurrence
	var lines lineIndex
	for _, rule := range rs {
		for _, loc := range rule.Pattern.FindAllStringIndex(content, -1) {
			text := strings.TrimSpace(content[loc[0]:loc[1]])
			if text == "" {
				continue
			}
			if lines == nil {
				lines = newLineIndex(content)
			}
			out = append(out, Occurrence{
				Path:     path,
				RelPath:  relPath,
				Category: rule.Category,
				Rule:     rule.Label,
				Text:     text,
				Line:     lines.lineAt(loc[0]),
			})
		}
	}
	return out
}

func extractLines(path, relPath, content string, rs []rules.Rule) []Occurrence {
	if len(rs) == 0 {
		return nil
	}

	var out []Occurrence
	for i, line := range splitLines(content) {
		for _, rule := range rs {
			if !rule.Pattern.MatchString(line) {
				continue
			}
			text := strings.TrimSpace(line)
			if text == "" {
				break
			}
			out = append(out, Occurrence{
				Path:     path,
				RelPath:  relPath,
				Category: rule.Category,
				Rule:     rule.Label,
				Text:     text,
				Line:     i,
			})
			// One occurrence per line.
			break
		}
	}
	return out
}

// splitLines splits on LF and strips a trailing CR from each line.
func splitLines(content string) []string {
	lines := strings.Split(content, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// lineIndex holds the byte offset at which each line starts.
type lineIndex []int

func newLineIndex(content string) lineIndex {
	idx := lineIndex{0}
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			idx = append(idx, i+1)
		}
	}
	return idx
}

// lineAt returns the 0-based line containing byte offset off.
func (li lineIndex) lineAt(off int) int {
	lo, hi := 0, len(li)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if li[mid] <= off {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

// ExtractFile reads and decodes a file, then extracts from it. A file that
// cannot be read, or is not UTF-8 text, returns an error wrapping
// ErrFileUnreadable.
func ExtractFile(path, relPath string, reg *rules.Registry, categories ...rules.Category) ([]Occurrence, error) {
	content, err := readText(path)
	if err != nil {
		return nil, err
	}
	return Extract(path, relPath, content, reg, categories...), nil
}

// readText reads a whole file and rejects binary or non-UTF-8 content.
func readText(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrFileUnreadable, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrFileUnreadable, err)
	}

	// Check for null bytes (0x00) - indicates binary
	if bytes.IndexByte(data[:min(len(data), binarySniffLen)], 0) >= 0 {
		return "", fmt.Errorf("%w: binary content", ErrFileUnreadable)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: not valid UTF-8", ErrFileUnreadable)
	}

	return string(data), nil
}
