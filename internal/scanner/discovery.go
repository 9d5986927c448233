package scanner

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// alwaysIgnored directories are never scanned regardless of configuration.
var alwaysIgnored = []string{".glean", ".git"}

// compiledPattern holds the pattern string, its compiled glob and, for
// patterns starting with "**/", a compiled form without that prefix.
type compiledPattern struct {
	pattern    string
	glob       glob.Glob
	simplified glob.Glob
}

// FileDiscovery resolves include and ignore globs into the ordered corpus.
type FileDiscovery struct {
	rootDir        string
	includePattern []compiledPattern
	ignorePatterns []compiledPattern
}

// NewFileDiscovery creates a new file discovery instance.
func NewFileDiscovery(rootDir string, includePatterns, ignorePatterns []string) (*FileDiscovery, error) {
	fd := &FileDiscovery{
		rootDir: rootDir,
	}

	var err error
	if fd.includePattern, err = compilePatterns(includePatterns); err != nil {
		return nil, err
	}
	if fd.ignorePatterns, err = compilePatterns(ignorePatterns); err != nil {
		return nil, err
	}

	return fd, nil
}

func compilePatterns(patterns []string) ([]compiledPattern, error) {
	compiled := make([]compiledPattern, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, err
		}
		cp := compiledPattern{pattern: pattern, glob: g}

		// "**/x" should also match "x" at the root: gobwas requires at least
		// one separator for the "**/" prefix.
		if rest, ok := strings.CutPrefix(pattern, "**/"); ok {
			if cp.simplified, err = glob.Compile(rest, '/'); err != nil {
				return nil, err
			}
		}
		compiled = append(compiled, cp)
	}
	return compiled, nil
}

// RootDir returns the workspace root being enumerated.
func (fd *FileDiscovery) RootDir() string {
	return fd.rootDir
}

// DiscoverFiles walks the workspace and returns the absolute paths of all
// matching files, sorted by slash-separated relative path.
func (fd *FileDiscovery) DiscoverFiles() ([]string, error) {
	type entry struct {
		abs string
		rel string
	}
	var found []entry

	err := filepath.WalkDir(fd.rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subdirectories are left out; only a bad root fails.
			if path == fd.rootDir {
				return err
			}
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		relPath, err := filepath.Rel(fd.rootDir, path)
		if err != nil {
			return err
		}
		// Normalize path separators for glob matching
		relPath = filepath.ToSlash(relPath)

		if d.IsDir() {
			if relPath != "." && fd.shouldIgnore(relPath) {
				return filepath.SkipDir
			}
			return nil
		}

		if fd.shouldIgnore(relPath) {
			return nil
		}
		if fd.matchesAnyPattern(relPath, fd.includePattern) {
			found = append(found, entry{abs: path, rel: relPath})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(found, func(i, j int) bool { return found[i].rel < found[j].rel })

	files := make([]string, len(found))
	for i, e := range found {
		files[i] = e.abs
	}
	return files, nil
}

// RelPath returns path relative to the root with forward slashes.
// Paths outside the root are returned unchanged.
func (fd *FileDiscovery) RelPath(path string) string {
	rel, err := filepath.Rel(fd.rootDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// shouldIgnore checks if a path matches any ignore pattern.
func (fd *FileDiscovery) shouldIgnore(relPath string) bool {
	for _, dir := range alwaysIgnored {
		if relPath == dir || strings.HasPrefix(relPath, dir+"/") {
			return true
		}
	}

	if fd.matchesAnyPattern(relPath, fd.ignorePatterns) {
		return true
	}

	// Directories match their "dir/**" patterns through a synthetic suffix,
	// e.g. "node_modules" against "**/node_modules/**".
	return fd.matchesAnyPattern(relPath+"/**", fd.ignorePatterns)
}

// matchesAnyPattern checks if a path matches any of the given patterns.
func (fd *FileDiscovery) matchesAnyPattern(path string, patterns []compiledPattern) bool {
	for _, cp := range patterns {
		if cp.glob.Match(path) {
			return true
		}
		if cp.simplified != nil && cp.simplified.Match(path) {
			return true
		}
	}
	return false
}
