package rncss

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
)

// DefaultIncludes are the patterns used when a config names none
var DefaultIncludes = []string{"**/*.css", "**/*.scss", "**/*.sass"}

// ScanStats tracks file discovery statistics
type ScanStats struct {
	FilesDiscovered int // Files matched by include patterns
	FilesSkipped    int // Excluded, gitignored or Sass partials
}

// ScanSources expands sources into the list of stylesheets to convert.
// A source may be a single file (taken as-is) or a directory, which is
// searched with the include patterns. Excluded, gitignored and Sass
// partial files are dropped. The result is sorted and free of duplicates.
func ScanSources(sources, includes, excludes []string) ([]string, ScanStats, error) {
	var stats ScanStats
	if len(includes) == 0 {
		includes = DefaultIncludes
	}

	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		path = filepath.Clean(path)
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, source := range sources {
		info, err := os.Stat(source)
		if err != nil {
			return nil, stats, fmt.Errorf("stat source %s: %w", source, err)
		}

		if !info.IsDir() {
			stats.FilesDiscovered++
			add(source)
			continue
		}

		gi := loadGitIgnore(source)

		for _, pattern := range includes {
			// Use doublestar for ** glob support
			matches, err := doublestar.FilepathGlob(filepath.Join(source, pattern))
			if err != nil {
				return nil, stats, fmt.Errorf("glob pattern %q: %w", pattern, err)
			}

			for _, match := range matches {
				if seen[filepath.Clean(match)] {
					continue
				}
				if fi, err := os.Stat(match); err != nil || fi.IsDir() {
					continue
				}
				stats.FilesDiscovered++

				rel, err := filepath.Rel(source, match)
				if err != nil {
					rel = match
				}
				rel = filepath.ToSlash(rel)

				if shouldSkipSource(rel, excludes, gi) {
					stats.FilesSkipped++
					continue
				}
				add(match)
			}
		}
	}

	sort.Strings(files)
	return files, stats, nil
}

// loadGitIgnore loads root/.gitignore, or nil when there is none
func loadGitIgnore(root string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		// No .gitignore is fine
		return nil
	}
	return gi
}

// shouldSkipSource determines if a discovered file should be excluded.
// rel is slash-separated and relative to the scanned directory.
func shouldSkipSource(rel string, excludes []string, gi *ignore.GitIgnore) bool {
	// Sass partials are only compiled through the files importing them
	if IsSassPartial(rel) {
		return true
	}

	for _, pattern := range excludes {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}

	return gi != nil && gi.MatchesPath(rel)
}
