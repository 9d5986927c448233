package rules

import (
	"fmt"
	"regexp"
	"strings"
)

// Category identifies one of the independent extraction concerns.
type Category string

const (
	Comment Category = "comment"
	Log     Category = "log"
	Todo    Category = "todo"
)

// Categories lists every category in presentation order.
var Categories = []Category{Comment, Log, Todo}

// ParseCategory converts a user-supplied name into a Category.
// Plural forms ("comments", "logs", "todos") are accepted.
func ParseCategory(name string) (Category, error) {
	n := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(name)), "s")
	switch Category(n) {
	case Comment, Log, Todo:
		return Category(n), nil
	}
	return "", fmt.Errorf("unknown category %q (valid: comment, log, todo)", name)
}

// Rule is a single lexical pattern. Label is only used for diagnostics.
type Rule struct {
	Category Category
	Label    string
	Pattern  *regexp.Regexp
}

// Registry is an immutable, ordered table of rules grouped by category.
// Build one at startup and share it; nothing mutates it afterwards.
type Registry struct {
	byCategory map[Category][]Rule
}

// NewRegistry groups rules by category, preserving their order.
func NewRegistry(rules ...Rule) (*Registry, error) {
	r := &Registry{byCategory: make(map[Category][]Rule)}
	for _, rule := range rules {
		if rule.Pattern == nil {
			return nil, fmt.Errorf("rule %q has no pattern", rule.Label)
		}
		if _, err := ParseCategory(string(rule.Category)); err != nil {
			return nil, fmt.Errorf("rule %q: %w", rule.Label, err)
		}
		r.byCategory[rule.Category] = append(r.byCategory[rule.Category], rule)
	}
	return r, nil
}

// Rules returns a copy of the rules for a category in application order.
func (r *Registry) Rules(c Category) []Rule {
	src := r.byCategory[c]
	out := make([]Rule, len(src))
	copy(out, src)
	return out
}

// Default returns the built-in rule table.
//
// Comment and Log rules are applied to a file's full text. The single Todo
// rule is applied to one physical line at a time.
func Default() *Registry {
	r, err := NewRegistry(
		Rule{Comment, "line-comment", regexp.MustCompile(`//.*`)},
		Rule{Comment, "block-comment", regexp.MustCompile(`(?s)/\*.*?\*/`)},
		Rule{Comment, "hash-comment", regexp.MustCompile(`#.*`)},
		Rule{Comment, "triple-quoted", regexp.MustCompile(`(?s)""".*?"""|'''.*?'''`)},

		Rule{Log, "console.log", regexp.MustCompile(`console\.log\(.*?\)`)},
		Rule{Log, "System.out.println", regexp.MustCompile(`System\.out\.println\(.*?\)`)},
		Rule{Log, "logger.info", regexp.MustCompile(`(?i)logger\.info\(.*?\)`)},
		Rule{Log, "logger.debug", regexp.MustCompile(`(?i)logger\.debug\(.*?\)`)},
		Rule{Log, "logger.error", regexp.MustCompile(`(?i)logger\.error\(.*?\)`)},
		Rule{Log, "print", regexp.MustCompile(`print\(.*?\)`)},

		Rule{Todo, "todo", regexp.MustCompile(`(?i)todo`)},
	)
	if err != nil {
		panic(err)
	}
	return r
}
